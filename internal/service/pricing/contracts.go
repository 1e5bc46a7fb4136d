package pricing

import (
	"context"

	"github.com/Krontiva/rider-web-app/internal/domain"
)

type pricingGateway interface {
	Me(ctx context.Context) (domain.User, error)
	ListPricing(ctx context.Context) ([]domain.PriceSubmission, error)
	StandardPricing(ctx context.Context) ([]domain.PriceEntry, error)
	CreatePricing(ctx context.Context, userID string, entries []domain.PriceEntry) (string, error)
	UpdatePricing(ctx context.Context, id, userID string, entries []domain.PriceEntry) error
}
