// Package auth drives the phone/OTP sign-in flow. OTP issuance and checking
// happen entirely on the backend; this service only sequences the calls and
// owns where the token lands.
package auth

import (
	"context"
	"fmt"

	"github.com/Krontiva/rider-web-app/internal/apperr"
	"github.com/Krontiva/rider-web-app/internal/credentials"
	"github.com/Krontiva/rider-web-app/internal/domain"
	"github.com/Krontiva/rider-web-app/internal/logx"
)

// Service coordinates the sign-in flow against the backend.
type Service struct {
	gw     authGateway
	creds  credentials.Store
	logger logx.Logger

	pending domain.User
	started bool
}

// NewService creates the sign-in service. Nil dependencies return nil.
func NewService(gw authGateway, creds credentials.Store, logger logx.Logger) *Service {
	if gw == nil || creds == nil {
		return nil
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Service{gw: gw, creds: creds, logger: logger}
}

// Start signs the rider in by phone number. The backend sends an OTP to the
// phone as a side effect; the flow is not complete until Confirm succeeds.
// Non-rider accounts are rejected and leave no stored credential behind.
func (s *Service) Start(ctx context.Context, phone string) (domain.User, error) {
	token, err := s.gw.LoginByPhone(ctx, phone)
	if err != nil {
		return domain.User{}, err
	}
	if err := s.creds.Set(token); err != nil {
		return domain.User{}, fmt.Errorf("store token: %w", err)
	}

	user, err := s.gw.Me(ctx)
	if err != nil {
		s.clear()
		return domain.User{}, err
	}
	if !user.IsRider() {
		s.clear()
		return domain.User{}, fmt.Errorf("role %q is not allowed: %w", user.Role, apperr.Unauthorized)
	}

	s.pending = user
	s.started = true
	s.logger.Info("sign-in started", logx.String("user_id", user.ID))
	return user, nil
}

// Resend asks the backend to send a fresh OTP to the same phone number.
func (s *Service) Resend(ctx context.Context, phone string) error {
	if !s.started {
		return apperr.Invalid
	}
	token, err := s.gw.LoginByPhone(ctx, phone)
	if err != nil {
		return err
	}
	return s.creds.Set(token)
}

// Confirm checks the OTP the rider received. On success the stored token
// becomes the session credential and the rider is marked off trip (best
// effort). On failure the prior state is unchanged and the rider may retry.
func (s *Service) Confirm(ctx context.Context, phone string, code int) (domain.User, error) {
	if !s.started {
		return domain.User{}, apperr.Invalid
	}

	ok, err := s.gw.VerifyOTP(ctx, phone, code)
	if err != nil {
		return domain.User{}, err
	}
	if !ok {
		return domain.User{}, fmt.Errorf("otp rejected: %w", apperr.Invalid)
	}

	if err := s.gw.MarkOffTrip(ctx, s.pending.ID); err != nil {
		s.logger.Warn("off-trip mark failed", logx.String("user_id", s.pending.ID), logx.Err(err))
	}

	user := s.pending
	s.pending = domain.User{}
	s.started = false
	s.logger.Info("sign-in confirmed", logx.String("user_id", user.ID))
	return user, nil
}

// CurrentUser resolves the identity behind the stored credential.
func (s *Service) CurrentUser(ctx context.Context) (domain.User, error) {
	return s.gw.Me(ctx)
}

// SignOut drops the stored credential.
func (s *Service) SignOut() error {
	s.pending = domain.User{}
	s.started = false
	return s.creds.Clear()
}

func (s *Service) clear() {
	if err := s.creds.Clear(); err != nil {
		s.logger.Warn("credential clear failed", logx.Err(err))
	}
}
