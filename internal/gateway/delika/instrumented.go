package delika

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Krontiva/rider-web-app/internal/domain"
)

// backend is the full surface of the Delika client.
type backend interface {
	LoginByPhone(ctx context.Context, phone string) (string, error)
	VerifyOTP(ctx context.Context, phone string, code int) (bool, error)
	Me(ctx context.Context) (domain.User, error)
	MarkOffTrip(ctx context.Context, userID string) error
	ListOrders(ctx context.Context) ([]domain.Order, error)
	GetOrder(ctx context.Context, id string) (domain.Order, error)
	PatchOrderStatus(ctx context.Context, id string, patch domain.StatusPatch) error
	VerifyCompletion(ctx context.Context, orderOTP string) (bool, error)
	ListPricing(ctx context.Context) ([]domain.PriceSubmission, error)
	StandardPricing(ctx context.Context) ([]domain.PriceEntry, error)
	CreatePricing(ctx context.Context, userID string, entries []domain.PriceEntry) (string, error)
	UpdatePricing(ctx context.Context, id, userID string, entries []domain.PriceEntry) error
}

var _ backend = (*Client)(nil)

// Instrumented decorates a backend with request/failure counters per method.
type Instrumented struct {
	next     backend
	requests *prometheus.CounterVec
	failures *prometheus.CounterVec
}

// NewInstrumented wraps next with Prometheus instrumentation. A nil next
// makes the constructor return nil.
func NewInstrumented(next backend, requests, failures *prometheus.CounterVec) *Instrumented {
	if next == nil {
		return nil
	}
	return &Instrumented{next: next, requests: requests, failures: failures}
}

func (g *Instrumented) observe(method string, err error) {
	if g.requests != nil {
		g.requests.WithLabelValues(method).Inc()
	}
	if err != nil && g.failures != nil {
		g.failures.WithLabelValues(method).Inc()
	}
}

// LoginByPhone counts then delegates.
func (g *Instrumented) LoginByPhone(ctx context.Context, phone string) (string, error) {
	token, err := g.next.LoginByPhone(ctx, phone)
	g.observe("LoginByPhone", err)
	return token, err
}

// VerifyOTP counts then delegates.
func (g *Instrumented) VerifyOTP(ctx context.Context, phone string, code int) (bool, error) {
	ok, err := g.next.VerifyOTP(ctx, phone, code)
	g.observe("VerifyOTP", err)
	return ok, err
}

// Me counts then delegates.
func (g *Instrumented) Me(ctx context.Context) (domain.User, error) {
	u, err := g.next.Me(ctx)
	g.observe("Me", err)
	return u, err
}

// MarkOffTrip counts then delegates.
func (g *Instrumented) MarkOffTrip(ctx context.Context, userID string) error {
	err := g.next.MarkOffTrip(ctx, userID)
	g.observe("MarkOffTrip", err)
	return err
}

// ListOrders counts then delegates.
func (g *Instrumented) ListOrders(ctx context.Context) ([]domain.Order, error) {
	orders, err := g.next.ListOrders(ctx)
	g.observe("ListOrders", err)
	return orders, err
}

// GetOrder counts then delegates.
func (g *Instrumented) GetOrder(ctx context.Context, id string) (domain.Order, error) {
	o, err := g.next.GetOrder(ctx, id)
	g.observe("GetOrder", err)
	return o, err
}

// PatchOrderStatus counts then delegates.
func (g *Instrumented) PatchOrderStatus(ctx context.Context, id string, patch domain.StatusPatch) error {
	err := g.next.PatchOrderStatus(ctx, id, patch)
	g.observe("PatchOrderStatus", err)
	return err
}

// VerifyCompletion counts then delegates.
func (g *Instrumented) VerifyCompletion(ctx context.Context, orderOTP string) (bool, error) {
	ok, err := g.next.VerifyCompletion(ctx, orderOTP)
	g.observe("VerifyCompletion", err)
	return ok, err
}

// ListPricing counts then delegates.
func (g *Instrumented) ListPricing(ctx context.Context) ([]domain.PriceSubmission, error) {
	subs, err := g.next.ListPricing(ctx)
	g.observe("ListPricing", err)
	return subs, err
}

// StandardPricing counts then delegates.
func (g *Instrumented) StandardPricing(ctx context.Context) ([]domain.PriceEntry, error) {
	entries, err := g.next.StandardPricing(ctx)
	g.observe("StandardPricing", err)
	return entries, err
}

// CreatePricing counts then delegates.
func (g *Instrumented) CreatePricing(ctx context.Context, userID string, entries []domain.PriceEntry) (string, error) {
	id, err := g.next.CreatePricing(ctx, userID, entries)
	g.observe("CreatePricing", err)
	return id, err
}

// UpdatePricing counts then delegates.
func (g *Instrumented) UpdatePricing(ctx context.Context, id, userID string, entries []domain.PriceEntry) error {
	err := g.next.UpdatePricing(ctx, id, userID, entries)
	g.observe("UpdatePricing", err)
	return err
}

var _ backend = (*Instrumented)(nil)
