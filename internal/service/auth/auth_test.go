package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Krontiva/rider-web-app/internal/apperr"
	"github.com/Krontiva/rider-web-app/internal/credentials"
	"github.com/Krontiva/rider-web-app/internal/domain"
	"github.com/Krontiva/rider-web-app/internal/logx"
	testlog "github.com/Krontiva/rider-web-app/internal/testutil"
)

type stubGateway struct {
	loginFn      func(ctx context.Context, phone string) (string, error)
	verifyFn     func(ctx context.Context, phone string, code int) (bool, error)
	meFn         func(ctx context.Context) (domain.User, error)
	markOffFn    func(ctx context.Context, userID string) error
	markOffCalls int
}

func (s *stubGateway) LoginByPhone(ctx context.Context, phone string) (string, error) {
	return s.loginFn(ctx, phone)
}

func (s *stubGateway) VerifyOTP(ctx context.Context, phone string, code int) (bool, error) {
	return s.verifyFn(ctx, phone, code)
}

func (s *stubGateway) Me(ctx context.Context) (domain.User, error) {
	return s.meFn(ctx)
}

func (s *stubGateway) MarkOffTrip(ctx context.Context, userID string) error {
	s.markOffCalls++
	if s.markOffFn == nil {
		return nil
	}
	return s.markOffFn(ctx, userID)
}

func rider() domain.User {
	return domain.User{ID: "u-1", FullName: "Ama Mensah", PhoneNumber: "+233200000001", Role: "Rider"}
}

func TestNewService_NilDeps_ReturnsNil(t *testing.T) {
	t.Parallel()

	require.Nil(t, NewService(nil, credentials.NewMemoryStore(), logx.Nop()))
	require.Nil(t, NewService(&stubGateway{}, nil, logx.Nop()))
}

func TestService_StartAndConfirm(t *testing.T) {
	t.Parallel()

	creds := credentials.NewMemoryStore()
	gw := &stubGateway{
		loginFn: func(ctx context.Context, phone string) (string, error) {
			require.Equal(t, "+233200000001", phone)
			return "tok-1", nil
		},
		meFn: func(ctx context.Context) (domain.User, error) {
			return rider(), nil
		},
		verifyFn: func(ctx context.Context, phone string, code int) (bool, error) {
			require.Equal(t, 1234, code)
			return true, nil
		},
	}
	s := NewService(gw, creds, logx.Nop())
	require.NotNil(t, s)

	user, err := s.Start(context.Background(), "+233200000001")
	require.NoError(t, err)
	require.Equal(t, "u-1", user.ID)

	token, err := creds.Get()
	require.NoError(t, err)
	require.Equal(t, "tok-1", token)

	confirmed, err := s.Confirm(context.Background(), "+233200000001", 1234)
	require.NoError(t, err)
	require.Equal(t, user, confirmed)
	require.Equal(t, 1, gw.markOffCalls)
}

func TestService_Start_NonRiderRejected(t *testing.T) {
	t.Parallel()

	creds := credentials.NewMemoryStore()
	gw := &stubGateway{
		loginFn: func(ctx context.Context, phone string) (string, error) { return "tok-1", nil },
		meFn: func(ctx context.Context) (domain.User, error) {
			return domain.User{ID: "u-2", Role: "Manager"}, nil
		},
	}
	s := NewService(gw, creds, logx.Nop())

	_, err := s.Start(context.Background(), "+233200000001")
	require.ErrorIs(t, err, apperr.Unauthorized)

	_, err = creds.Get()
	require.ErrorIs(t, err, credentials.ErrNoToken)
}

func TestService_Start_MeFails_ClearsToken(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("boom")
	creds := credentials.NewMemoryStore()
	gw := &stubGateway{
		loginFn: func(ctx context.Context, phone string) (string, error) { return "tok-1", nil },
		meFn: func(ctx context.Context) (domain.User, error) {
			return domain.User{}, wantErr
		},
	}
	s := NewService(gw, creds, logx.Nop())

	_, err := s.Start(context.Background(), "+233200000001")
	require.ErrorIs(t, err, wantErr)

	_, err = creds.Get()
	require.ErrorIs(t, err, credentials.ErrNoToken)
}

func TestService_Confirm_BeforeStart_Invalid(t *testing.T) {
	t.Parallel()

	s := NewService(&stubGateway{}, credentials.NewMemoryStore(), logx.Nop())

	_, err := s.Confirm(context.Background(), "+233200000001", 1234)
	require.ErrorIs(t, err, apperr.Invalid)
}

func TestService_Confirm_RejectedOTP_KeepsFlowOpen(t *testing.T) {
	t.Parallel()

	creds := credentials.NewMemoryStore()
	codeOK := false
	gw := &stubGateway{
		loginFn: func(ctx context.Context, phone string) (string, error) { return "tok-1", nil },
		meFn:    func(ctx context.Context) (domain.User, error) { return rider(), nil },
		verifyFn: func(ctx context.Context, phone string, code int) (bool, error) {
			return codeOK, nil
		},
	}
	s := NewService(gw, creds, logx.Nop())

	_, err := s.Start(context.Background(), "+233200000001")
	require.NoError(t, err)

	_, err = s.Confirm(context.Background(), "+233200000001", 1111)
	require.ErrorIs(t, err, apperr.Invalid)

	// The rider retries with the right code; no restart needed.
	codeOK = true
	user, err := s.Confirm(context.Background(), "+233200000001", 1234)
	require.NoError(t, err)
	require.Equal(t, "u-1", user.ID)
}

func TestService_Confirm_OffTripFailureTolerated(t *testing.T) {
	t.Parallel()

	gw := &stubGateway{
		loginFn:  func(ctx context.Context, phone string) (string, error) { return "tok-1", nil },
		meFn:     func(ctx context.Context) (domain.User, error) { return rider(), nil },
		verifyFn: func(ctx context.Context, phone string, code int) (bool, error) { return true, nil },
		markOffFn: func(ctx context.Context, userID string) error {
			return errors.New("trips api down")
		},
	}
	rec := testlog.New()
	s := NewService(gw, credentials.NewMemoryStore(), rec.Logger())

	_, err := s.Start(context.Background(), "+233200000001")
	require.NoError(t, err)

	user, err := s.Confirm(context.Background(), "+233200000001", 1234)
	require.NoError(t, err)
	require.Equal(t, "u-1", user.ID)
	require.True(t, rec.HasMessage("warn", "off-trip mark failed"))
}

func TestService_Resend_BeforeStart_Invalid(t *testing.T) {
	t.Parallel()

	s := NewService(&stubGateway{}, credentials.NewMemoryStore(), logx.Nop())
	require.ErrorIs(t, s.Resend(context.Background(), "+233200000001"), apperr.Invalid)
}

func TestService_Resend_RefreshesToken(t *testing.T) {
	t.Parallel()

	creds := credentials.NewMemoryStore()
	tokens := []string{"tok-1", "tok-2"}
	gw := &stubGateway{
		loginFn: func(ctx context.Context, phone string) (string, error) {
			token := tokens[0]
			tokens = tokens[1:]
			return token, nil
		},
		meFn: func(ctx context.Context) (domain.User, error) { return rider(), nil },
	}
	s := NewService(gw, creds, logx.Nop())

	_, err := s.Start(context.Background(), "+233200000001")
	require.NoError(t, err)

	require.NoError(t, s.Resend(context.Background(), "+233200000001"))
	token, err := creds.Get()
	require.NoError(t, err)
	require.Equal(t, "tok-2", token)
}

func TestService_SignOut(t *testing.T) {
	t.Parallel()

	creds := credentials.NewMemoryStore()
	require.NoError(t, creds.Set("tok-1"))

	s := NewService(&stubGateway{}, creds, logx.Nop())
	require.NoError(t, s.SignOut())

	_, err := creds.Get()
	require.ErrorIs(t, err, credentials.ErrNoToken)
}
