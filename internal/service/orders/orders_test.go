package orders

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Krontiva/rider-web-app/internal/apperr"
	"github.com/Krontiva/rider-web-app/internal/domain"
)

type stubGateway struct {
	me           func(ctx context.Context) (domain.User, error)
	listOrders   func(ctx context.Context) ([]domain.Order, error)
	getOrder     func(ctx context.Context, id string) (domain.Order, error)
	patchStatus  func(ctx context.Context, id string, patch domain.StatusPatch) error
	verifyFinish func(ctx context.Context, orderOTP string) (bool, error)
}

func (s *stubGateway) Me(ctx context.Context) (domain.User, error) {
	if s.me == nil {
		return domain.User{FullName: "Ama Mensah", Role: domain.RoleRider}, nil
	}
	return s.me(ctx)
}

func (s *stubGateway) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return s.listOrders(ctx)
}

func (s *stubGateway) GetOrder(ctx context.Context, id string) (domain.Order, error) {
	return s.getOrder(ctx, id)
}

func (s *stubGateway) PatchOrderStatus(ctx context.Context, id string, patch domain.StatusPatch) error {
	if s.patchStatus == nil {
		return nil
	}
	return s.patchStatus(ctx, id, patch)
}

func (s *stubGateway) VerifyCompletion(ctx context.Context, orderOTP string) (bool, error) {
	return s.verifyFinish(ctx, orderOTP)
}

func fixedNow() time.Time {
	return time.Date(2025, time.March, 14, 9, 30, 0, 0, time.UTC)
}

func TestNewService_NilGateway(t *testing.T) {
	t.Parallel()

	require.Nil(t, NewService(nil, nil, nil))
}

func TestFeed_ScopesAndCounts(t *testing.T) {
	t.Parallel()

	gw := &stubGateway{
		listOrders: func(context.Context) ([]domain.Order, error) {
			return []domain.Order{
				{ID: "a", CourierName: "Ama Mensah", Status: domain.StatusAssigned},
				{ID: "b", CourierName: "Ama Mensah", Status: domain.StatusPickup, BatchID: "bt1"},
				{ID: "c", CourierName: "Ama Mensah", Status: domain.StatusOnTheWay, BatchID: "bt1"},
				{ID: "d", CourierName: "Ama Mensah", Status: domain.StatusCompleted},
				{ID: "e", CourierName: "Kojo Owusu", Status: domain.StatusAssigned},
			}, nil
		},
	}
	svc := NewService(gw, nil, fixedNow)

	feed, err := svc.Feed(context.Background(), domain.TabActive, domain.BatchAll)
	require.NoError(t, err)

	require.Equal(t, 1, feed.Counts[domain.TabPending])
	require.Equal(t, 2, feed.Counts[domain.TabActive])
	require.Equal(t, 1, feed.Counts[domain.TabComplete])

	require.Len(t, feed.Groups, 1)
	require.True(t, feed.Groups[0].IsBatch())
	require.Len(t, feed.Groups[0].Orders, 2)
}

func TestFeed_BatchFilter(t *testing.T) {
	t.Parallel()

	gw := &stubGateway{
		listOrders: func(context.Context) ([]domain.Order, error) {
			return []domain.Order{
				{ID: "a", CourierName: "Ama Mensah", Status: domain.StatusAssigned},
				{ID: "b", CourierName: "Ama Mensah", Status: domain.StatusAssigned, BatchID: "bt1"},
			}, nil
		},
	}
	svc := NewService(gw, nil, fixedNow)

	feed, err := svc.Feed(context.Background(), domain.TabPending, domain.BatchBatched)
	require.NoError(t, err)
	require.Len(t, feed.Groups, 1)
	require.Equal(t, "b", feed.Groups[0].Representative.ID)

	feed, err = svc.Feed(context.Background(), domain.TabPending, domain.BatchSingle)
	require.NoError(t, err)
	require.Len(t, feed.Groups, 1)
	require.Equal(t, "a", feed.Groups[0].Representative.ID)
}

func TestFeed_MeFails(t *testing.T) {
	t.Parallel()

	gw := &stubGateway{
		me: func(context.Context) (domain.User, error) {
			return domain.User{}, apperr.Unauthorized
		},
	}
	svc := NewService(gw, nil, fixedNow)

	_, err := svc.Feed(context.Background(), domain.TabPending, domain.BatchAll)
	require.ErrorIs(t, err, apperr.Unauthorized)
}

func TestPickup(t *testing.T) {
	t.Parallel()

	var got domain.StatusPatch
	gw := &stubGateway{
		patchStatus: func(_ context.Context, id string, patch domain.StatusPatch) error {
			require.Equal(t, "ord-1", id)
			got = patch
			return nil
		},
	}
	svc := NewService(gw, nil, fixedNow)

	updated, err := svc.Pickup(context.Background(), domain.Order{ID: "ord-1", Status: domain.StatusAssigned})
	require.NoError(t, err)
	require.Equal(t, domain.StatusPickup, updated.Status)
	require.Equal(t, fixedNow(), updated.PickedUpAt)
	require.Equal(t, domain.StatusPickup, got.Status)
	require.Equal(t, fixedNow(), got.PickedUpAt)
	require.True(t, got.OnMyWayAt.IsZero())
}

func TestPickup_WrongStatus(t *testing.T) {
	t.Parallel()

	svc := NewService(&stubGateway{}, nil, fixedNow)

	_, err := svc.Pickup(context.Background(), domain.Order{ID: "ord-1", Status: domain.StatusOnTheWay})
	require.ErrorIs(t, err, apperr.Invalid)
}

func TestStartDelivery(t *testing.T) {
	t.Parallel()

	svc := NewService(&stubGateway{}, nil, fixedNow)

	updated, err := svc.StartDelivery(context.Background(), domain.Order{ID: "ord-1", Status: domain.StatusPickup})
	require.NoError(t, err)
	require.Equal(t, domain.StatusOnTheWay, updated.Status)
	require.Equal(t, fixedNow(), updated.OnMyWayAt)
}

func TestStartDelivery_WrongStatus(t *testing.T) {
	t.Parallel()

	svc := NewService(&stubGateway{}, nil, fixedNow)

	_, err := svc.StartDelivery(context.Background(), domain.Order{Status: domain.StatusAssigned})
	require.ErrorIs(t, err, apperr.Invalid)
}

func TestCompleteDelivery(t *testing.T) {
	t.Parallel()

	gw := &stubGateway{
		verifyFinish: func(_ context.Context, orderOTP string) (bool, error) {
			require.Equal(t, "4821", orderOTP)
			return true, nil
		},
	}
	svc := NewService(gw, nil, fixedNow)

	updated, err := svc.CompleteDelivery(context.Background(), domain.Order{ID: "ord-1", Status: domain.StatusOnTheWay}, "4821")
	require.NoError(t, err)
	require.Equal(t, domain.StatusDelivered, updated.Status)
	require.Equal(t, fixedNow(), updated.CompletedAt)
}

func TestCompleteDelivery_CodeRejected(t *testing.T) {
	t.Parallel()

	var patched bool
	gw := &stubGateway{
		verifyFinish: func(context.Context, string) (bool, error) { return false, nil },
		patchStatus: func(context.Context, string, domain.StatusPatch) error {
			patched = true
			return nil
		},
	}
	svc := NewService(gw, nil, fixedNow)

	order := domain.Order{ID: "ord-1", Status: domain.StatusOnTheWay}
	got, err := svc.CompleteDelivery(context.Background(), order, "0000")
	require.ErrorIs(t, err, apperr.Invalid)
	require.Equal(t, domain.StatusOnTheWay, got.Status)
	require.False(t, patched)
}

func TestCompleteDelivery_VerifyFails(t *testing.T) {
	t.Parallel()

	gw := &stubGateway{
		verifyFinish: func(context.Context, string) (bool, error) {
			return false, apperr.RequestFailed
		},
	}
	svc := NewService(gw, nil, fixedNow)

	_, err := svc.CompleteDelivery(context.Background(), domain.Order{Status: domain.StatusOnTheWay}, "4821")
	require.ErrorIs(t, err, apperr.RequestFailed)
}

func TestCompleteDelivery_WrongStatus(t *testing.T) {
	t.Parallel()

	svc := NewService(&stubGateway{}, nil, fixedNow)

	_, err := svc.CompleteDelivery(context.Background(), domain.Order{Status: domain.StatusPickup}, "4821")
	require.ErrorIs(t, err, apperr.Invalid)
}

func TestCancel(t *testing.T) {
	t.Parallel()

	svc := NewService(&stubGateway{}, nil, fixedNow)

	updated, err := svc.Cancel(context.Background(), domain.Order{ID: "ord-1", Status: domain.StatusAssigned})
	require.NoError(t, err)
	require.Equal(t, domain.StatusCancelled, updated.Status)
}

func TestCancel_TerminalStatuses(t *testing.T) {
	t.Parallel()

	svc := NewService(&stubGateway{}, nil, fixedNow)

	for _, status := range []domain.OrderStatus{
		domain.StatusDelivered,
		domain.StatusCompleted,
		domain.StatusCancelled,
	} {
		_, err := svc.Cancel(context.Background(), domain.Order{Status: status})
		require.ErrorIs(t, err, apperr.Invalid, "status %s", status)
	}
}

func TestApply_PatchFails(t *testing.T) {
	t.Parallel()

	gw := &stubGateway{
		patchStatus: func(context.Context, string, domain.StatusPatch) error {
			return errors.New("boom")
		},
	}
	svc := NewService(gw, nil, fixedNow)

	order := domain.Order{ID: "ord-1", Status: domain.StatusAssigned}
	got, err := svc.Pickup(context.Background(), order)
	require.Error(t, err)
	require.Equal(t, domain.StatusAssigned, got.Status)
	require.True(t, got.PickedUpAt.IsZero())
}

func TestDetail(t *testing.T) {
	t.Parallel()

	gw := &stubGateway{
		getOrder: func(_ context.Context, id string) (domain.Order, error) {
			require.Equal(t, "ord-9", id)
			return domain.Order{ID: "ord-9"}, nil
		},
	}
	svc := NewService(gw, nil, fixedNow)

	got, err := svc.Detail(context.Background(), "ord-9")
	require.NoError(t, err)
	require.Equal(t, "ord-9", got.ID)
}

func TestRouteURL_Singleton(t *testing.T) {
	t.Parallel()

	g := domain.OrderGroup{
		Representative: domain.Order{
			Pickup: []domain.PickupPoint{{Address: "Osu Oxford St"}},
		},
		DropOffs: []domain.DropOffPoint{{Address: "East Legon"}},
	}

	require.Equal(t,
		"https://www.google.com/maps/dir/?api=1&origin=Osu+Oxford+St&destination=East+Legon",
		RouteURL(g),
	)
}

func TestRouteURL_BatchWaypoints(t *testing.T) {
	t.Parallel()

	g := domain.OrderGroup{
		Representative: domain.Order{
			BatchID: "bt1",
			Pickup:  []domain.PickupPoint{{Address: "Accra Mall"}},
		},
		DropOffs: []domain.DropOffPoint{
			{Address: "Labone"},
			{Address: "Cantonments"},
			{Address: "Airport Residential"},
		},
	}

	require.Equal(t,
		"https://www.google.com/maps/dir/?api=1&origin=Accra+Mall&destination=Airport+Residential&waypoints=via:Labone|via:Cantonments",
		RouteURL(g),
	)
}

func TestRouteURL_NoDropOffs(t *testing.T) {
	t.Parallel()

	g := domain.OrderGroup{
		Representative: domain.Order{
			Pickup: []domain.PickupPoint{{Address: "Accra Mall"}},
		},
	}

	require.Equal(t, "https://www.google.com/maps/dir/?api=1&origin=Accra+Mall", RouteURL(g))
}
