package orders

import (
	"context"

	"github.com/Krontiva/rider-web-app/internal/domain"
)

// ordersGateway defines the backend operations required by the order feed.
type ordersGateway interface {
	Me(ctx context.Context) (domain.User, error)
	ListOrders(ctx context.Context) ([]domain.Order, error)
	GetOrder(ctx context.Context, id string) (domain.Order, error)
	PatchOrderStatus(ctx context.Context, id string, patch domain.StatusPatch) error
	VerifyCompletion(ctx context.Context, orderOTP string) (bool, error)
}
