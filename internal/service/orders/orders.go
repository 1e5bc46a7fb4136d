// Package orders serves the rider order feed and the status transitions a
// rider performs on an order. The backend owns every record; the service
// recomputes its views from scratch on each fetch.
package orders

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/Krontiva/rider-web-app/internal/apperr"
	"github.com/Krontiva/rider-web-app/internal/domain"
	"github.com/Krontiva/rider-web-app/internal/logx"
)

// Feed is one rendering of the rider's order list.
type Feed struct {
	Tab    domain.Tab
	Groups []domain.OrderGroup
	Counts map[domain.Tab]int
}

// Service coordinates order fetching, grouping and transitions.
type Service struct {
	gw     ordersGateway
	logger logx.Logger
	now    func() time.Time
}

// NewService creates the orders service. A nil gateway returns nil; a nil
// clock falls back to time.Now.
func NewService(gw ordersGateway, logger logx.Logger, now func() time.Time) *Service {
	if gw == nil {
		return nil
	}
	if logger == nil {
		logger = logx.Nop()
	}
	if now == nil {
		now = time.Now
	}
	return &Service{gw: gw, logger: logger, now: now}
}

// Feed fetches the rider's orders and renders one tab of the feed. Orders
// are scoped to the authenticated courier by name, tab counts cover all
// tabs, and batched shipments collapse into one group each.
func (s *Service) Feed(ctx context.Context, tab domain.Tab, bf domain.BatchFilter) (Feed, error) {
	user, err := s.gw.Me(ctx)
	if err != nil {
		return Feed{}, err
	}

	all, err := s.gw.ListOrders(ctx)
	if err != nil {
		return Feed{}, err
	}

	mine := make([]domain.Order, 0, len(all))
	for _, o := range all {
		if o.CourierName == user.FullName {
			mine = append(mine, o)
		}
	}

	counts := map[domain.Tab]int{
		domain.TabPending:  len(domain.FilterByTab(mine, domain.TabPending)),
		domain.TabActive:   len(domain.FilterByTab(mine, domain.TabActive)),
		domain.TabComplete: len(domain.FilterByTab(mine, domain.TabComplete)),
	}

	visible := domain.FilterByBatch(domain.FilterByTab(mine, tab), bf)

	return Feed{
		Tab:    tab,
		Groups: domain.GroupByBatch(visible),
		Counts: counts,
	}, nil
}

// Detail fetches one order by id.
func (s *Service) Detail(ctx context.Context, id string) (domain.Order, error) {
	return s.gw.GetOrder(ctx, id)
}

// Pickup moves an assigned order to Pickup, stamping the pickup time.
func (s *Service) Pickup(ctx context.Context, order domain.Order) (domain.Order, error) {
	if order.Status != domain.StatusAssigned {
		return order, fmt.Errorf("pickup from status %q: %w", order.Status, apperr.Invalid)
	}
	patch := domain.StatusPatch{Status: domain.StatusPickup, PickedUpAt: s.now()}
	return s.apply(ctx, order, patch)
}

// StartDelivery moves a picked-up order to OnTheWay, stamping the on-my-way
// time.
func (s *Service) StartDelivery(ctx context.Context, order domain.Order) (domain.Order, error) {
	if order.Status != domain.StatusPickup {
		return order, fmt.Errorf("deliver from status %q: %w", order.Status, apperr.Invalid)
	}
	patch := domain.StatusPatch{Status: domain.StatusOnTheWay, OnMyWayAt: s.now()}
	return s.apply(ctx, order, patch)
}

// CompleteDelivery verifies the customer's dropoff code and, only when the
// code checks out, moves the order to Delivered with the completion time.
func (s *Service) CompleteDelivery(ctx context.Context, order domain.Order, orderOTP string) (domain.Order, error) {
	if order.Status != domain.StatusOnTheWay {
		return order, fmt.Errorf("complete from status %q: %w", order.Status, apperr.Invalid)
	}

	ok, err := s.gw.VerifyCompletion(ctx, orderOTP)
	if err != nil {
		return order, err
	}
	if !ok {
		return order, fmt.Errorf("dropoff code rejected: %w", apperr.Invalid)
	}

	patch := domain.StatusPatch{Status: domain.StatusDelivered, CompletedAt: s.now()}
	return s.apply(ctx, order, patch)
}

// Cancel moves an order to Cancelled. Orders already delivered, completed
// or cancelled cannot be cancelled.
func (s *Service) Cancel(ctx context.Context, order domain.Order) (domain.Order, error) {
	switch order.Status {
	case domain.StatusDelivered, domain.StatusCompleted, domain.StatusCancelled:
		return order, fmt.Errorf("cancel from status %q: %w", order.Status, apperr.Invalid)
	}
	return s.apply(ctx, order, domain.StatusPatch{Status: domain.StatusCancelled})
}

// apply sends the patch and folds it into the local copy on success. A
// failed patch leaves the prior state unchanged.
func (s *Service) apply(ctx context.Context, order domain.Order, patch domain.StatusPatch) (domain.Order, error) {
	if err := s.gw.PatchOrderStatus(ctx, order.ID, patch); err != nil {
		return order, err
	}

	order.Status = patch.Status
	if !patch.PickedUpAt.IsZero() {
		order.PickedUpAt = patch.PickedUpAt
	}
	if !patch.OnMyWayAt.IsZero() {
		order.OnMyWayAt = patch.OnMyWayAt
	}
	if !patch.CompletedAt.IsZero() {
		order.CompletedAt = patch.CompletedAt
	}

	s.logger.Info("order transition",
		logx.String("order_id", order.ID),
		logx.String("status", string(order.Status)),
	)
	return order, nil
}

// RouteURL builds the external map-directions link for a group: origin is
// the group's pickup, destination is the last dropoff, and batched groups
// route through the earlier dropoffs as waypoints.
func RouteURL(g domain.OrderGroup) string {
	origin := url.QueryEscape(g.Representative.PickupAddress())
	if len(g.DropOffs) == 0 {
		return "https://www.google.com/maps/dir/?api=1&origin=" + origin
	}

	dests := make([]string, 0, len(g.DropOffs))
	for _, d := range g.DropOffs {
		dests = append(dests, url.QueryEscape(d.Address))
	}
	final := dests[len(dests)-1]

	u := "https://www.google.com/maps/dir/?api=1&origin=" + origin + "&destination=" + final
	if len(dests) > 1 {
		via := make([]string, 0, len(dests)-1)
		for _, d := range dests[:len(dests)-1] {
			via = append(via, "via:"+d)
		}
		u += "&waypoints=" + strings.Join(via, "|")
	}
	return u
}
