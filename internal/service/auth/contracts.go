package auth

import (
	"context"

	"github.com/Krontiva/rider-web-app/internal/domain"
)

// authGateway defines the backend operations required by the sign-in flow.
type authGateway interface {
	LoginByPhone(ctx context.Context, phone string) (string, error)
	VerifyOTP(ctx context.Context, phone string, code int) (bool, error)
	Me(ctx context.Context) (domain.User, error)
	MarkOffTrip(ctx context.Context, userID string) error
}
