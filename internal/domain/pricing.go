package domain

import "time"

// Currency code attached to every rider price entry.
const CurrencyGHS = "GHS"

// PriceEntry is one priced route inside a submission.
type PriceEntry struct {
	// Name is the route name, "<pickup> to <dropoff>".
	Name string
	// Price is a non-negative decimal amount in Currency.
	Price float64
	// Currency is the ISO-style currency code.
	Currency string
	// AmountInWords spells the price for display and receipts.
	AmountInWords string
	// DistanceKm is the straight-line route distance; nil when the
	// submission predates distance capture.
	DistanceKm *float64
}

// PriceSubmission is one rider's full set of route prices. At most one
// submission exists per user; it is fetched from the backend and only
// constructed client-side as the outgoing upsert payload.
type PriceSubmission struct {
	ID        string
	CreatedAt time.Time
	UserID    string
	Prices    []PriceEntry
}

// EntryByName returns the entry with the given route name, or nil.
func (s *PriceSubmission) EntryByName(name string) *PriceEntry {
	if s == nil {
		return nil
	}
	for i := range s.Prices {
		if s.Prices[i].Name == name {
			return &s.Prices[i]
		}
	}
	return nil
}
