package pricing

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Krontiva/rider-web-app/internal/domain"
)

func TestAverageByRoute(t *testing.T) {
	t.Parallel()

	subs := []domain.PriceSubmission{
		{
			UserID: "u1",
			Prices: []domain.PriceEntry{
				{Name: "Abeka to Awoshie", Price: 10},
				{Name: "Lapaz Total to Kwashieman", Price: 7},
			},
		},
		{
			UserID: "u2",
			Prices: []domain.PriceEntry{
				{Name: "Abeka to Awoshie", Price: 20},
			},
		},
	}

	avg := AverageByRoute(subs)

	got, ok := avg.Get("Abeka to Awoshie")
	require.True(t, ok)
	require.InDelta(t, 15, got, 1e-9)

	got, ok = avg.Get("Lapaz Total to Kwashieman")
	require.True(t, ok)
	require.InDelta(t, 7, got, 1e-9)
}

func TestAverageByRoute_UnpricedRouteIsAbsent(t *testing.T) {
	t.Parallel()

	avg := AverageByRoute([]domain.PriceSubmission{
		{UserID: "u1", Prices: []domain.PriceEntry{{Name: "Abeka to Awoshie", Price: 10}}},
	})

	_, ok := avg.Get("Tudu, Accra Central to Legon University")
	require.False(t, ok)
}

func TestAverageByRoute_Empty(t *testing.T) {
	t.Parallel()

	avg := AverageByRoute(nil)
	require.Empty(t, avg)
}
