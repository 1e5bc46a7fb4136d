package pricing

import "github.com/Krontiva/rider-web-app/internal/domain"

// RouteAverages maps a route name to the mean price quoted for it across
// every submission seen. A route nobody has priced has no entry; an absent
// route is "unavailable", never zero.
type RouteAverages map[string]float64

// Get returns the mean price for the route name and whether any rider has
// priced it.
func (a RouteAverages) Get(name string) (float64, bool) {
	v, ok := a[name]
	return v, ok
}

// AverageByRoute computes the mean quoted price per route name over all
// entries of all submissions.
func AverageByRoute(subs []domain.PriceSubmission) RouteAverages {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, sub := range subs {
		for _, e := range sub.Prices {
			sums[e.Name] += e.Price
			counts[e.Name]++
		}
	}

	out := make(RouteAverages, len(sums))
	for name, sum := range sums {
		out[name] = sum / float64(counts[name])
	}
	return out
}
