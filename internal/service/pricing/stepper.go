// Package pricing drives the zone pricing form: a fixed route catalog walked
// one route at a time, prefilled from the rider's existing submission and
// upserted as a whole on the final step.
package pricing

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Krontiva/rider-web-app/internal/apperr"
	"github.com/Krontiva/rider-web-app/internal/domain"
	"github.com/Krontiva/rider-web-app/internal/geo"
	"github.com/Krontiva/rider-web-app/internal/logx"
	"github.com/Krontiva/rider-web-app/internal/words"
)

// ErrStale reports that a Load was superseded by a newer one before it
// finished; its results were discarded.
var ErrStale = errors.New("pricing load superseded")

// Phase is the lifecycle state of a pricing session.
type Phase string

// List of session phases
const (
	PhaseIdle       Phase = "Idle"
	PhaseLoading    Phase = "Loading"
	PhaseNoPricing  Phase = "NoPricing"
	PhaseHasPricing Phase = "HasPricing"
	PhaseEditing    Phase = "Editing"
	PhaseSubmitting Phase = "Submitting"
	PhaseClosed     Phase = "Closed"
)

const wordsSuffix = " Ghana cedis"

// Session holds one rider's pass through the pricing form. It is a plain
// state machine for a single goroutine; overlapping Loads are serialized by
// the caller and stale completions are discarded by generation.
type Session struct {
	gw     pricingGateway
	logger logx.Logger

	routes   []domain.Route
	phase    Phase
	step     int
	inputs   []string
	user     domain.User
	existing *domain.PriceSubmission
	averages RouteAverages
	standard map[string]float64

	gen int
}

// NewSession creates a pricing session over the default route catalog. A nil
// gateway returns nil.
func NewSession(gw pricingGateway, logger logx.Logger) *Session {
	if gw == nil {
		return nil
	}
	if logger == nil {
		logger = logx.Nop()
	}
	routes := domain.DefaultRoutes()
	return &Session{
		gw:     gw,
		logger: logger,
		routes: routes,
		phase:  PhaseIdle,
		inputs: make([]string, len(routes)),
	}
}

// Load fetches the rider's profile, every submission, and the standard
// price list, then resets the form to step zero with inputs prefilled from
// the rider's own submission. A Load started while an earlier one is still
// in flight wins; the earlier completion is dropped with ErrStale. A failed
// standard-price fetch degrades to an empty list.
func (s *Session) Load(ctx context.Context) error {
	s.gen++
	gen := s.gen
	prev := s.phase
	s.phase = PhaseLoading

	user, err := s.gw.Me(ctx)
	if err != nil {
		return s.loadFailed(gen, prev, fmt.Errorf("load profile: %w", err))
	}

	subs, err := s.gw.ListPricing(ctx)
	if err != nil {
		return s.loadFailed(gen, prev, fmt.Errorf("load pricing: %w", err))
	}

	standard := make(map[string]float64)
	std, err := s.gw.StandardPricing(ctx)
	if err != nil {
		s.logger.Warn("standard pricing unavailable", logx.Err(err))
	} else {
		for _, e := range std {
			standard[e.Name] = e.Price
		}
	}

	if gen != s.gen {
		return ErrStale
	}

	s.user = user
	s.averages = AverageByRoute(subs)
	s.standard = standard
	s.existing = nil
	for i := range subs {
		if subs[i].UserID == user.ID {
			s.existing = &subs[i]
			break
		}
	}

	s.inputs = make([]string, len(s.routes))
	for i, r := range s.routes {
		if e := s.existing.EntryByName(r.Name()); e != nil {
			s.inputs[i] = strconv.FormatFloat(e.Price, 'f', -1, 64)
		}
	}
	s.step = 0

	if s.existing != nil {
		s.phase = PhaseHasPricing
	} else {
		s.phase = PhaseNoPricing
	}
	return nil
}

func (s *Session) loadFailed(gen int, prev Phase, err error) error {
	if gen != s.gen {
		return ErrStale
	}
	s.phase = prev
	return err
}

// StartEditing opens the form. Valid once a load has settled.
func (s *Session) StartEditing() error {
	if s.phase != PhaseNoPricing && s.phase != PhaseHasPricing {
		return fmt.Errorf("edit in phase %q: %w", s.phase, apperr.Invalid)
	}
	s.phase = PhaseEditing
	s.step = 0
	return nil
}

// SetPrice records the raw input for the current step.
func (s *Session) SetPrice(raw string) error {
	if s.phase != PhaseEditing {
		return fmt.Errorf("set price in phase %q: %w", s.phase, apperr.Invalid)
	}
	s.inputs[s.step] = raw
	return nil
}

// Next advances to the next route. At the last route it is a no-op.
func (s *Session) Next() {
	if s.step < len(s.routes)-1 {
		s.step++
	}
}

// Previous steps back one route. At the first route it is a no-op.
func (s *Session) Previous() {
	if s.step > 0 {
		s.step--
	}
}

// IsLastStep reports whether the form is on its final route.
func (s *Session) IsLastStep() bool {
	return s.step == len(s.routes)-1
}

// Phase returns the session phase.
func (s *Session) Phase() Phase { return s.phase }

// StepIndex returns the zero-based current step.
func (s *Session) StepIndex() int { return s.step }

// StepCount returns the number of routes in the form.
func (s *Session) StepCount() int { return len(s.routes) }

// CurrentRoute returns the route under edit.
func (s *Session) CurrentRoute() domain.Route { return s.routes[s.step] }

// Input returns the raw input for the current step.
func (s *Session) Input() string { return s.inputs[s.step] }

// User returns the rider loaded into the session.
func (s *Session) User() domain.User { return s.user }

// Existing returns the rider's stored submission, or nil.
func (s *Session) Existing() *domain.PriceSubmission { return s.existing }

// AverageFor returns the mean quoted price for a route name across all
// riders, and whether anyone has priced it.
func (s *Session) AverageFor(name string) (float64, bool) {
	return s.averages.Get(name)
}

// StandardFor returns the platform standard price for a route name.
func (s *Session) StandardFor(name string) (float64, bool) {
	v, ok := s.standard[name]
	return v, ok
}

// Submit builds the full entry list from the inputs and upserts it: a new
// submission when the rider has none, an update of the stored one
// otherwise. Only valid on the final step. On failure the form stays open
// on the final step.
func (s *Session) Submit(ctx context.Context) error {
	if s.phase != PhaseEditing {
		return fmt.Errorf("submit in phase %q: %w", s.phase, apperr.Invalid)
	}
	if !s.IsLastStep() {
		return fmt.Errorf("submit at step %d of %d: %w", s.step+1, len(s.routes), apperr.Invalid)
	}

	s.phase = PhaseSubmitting
	entries := make([]domain.PriceEntry, len(s.routes))
	for i, r := range s.routes {
		price := parsePrice(s.inputs[i])
		dist := geo.Round2(r.DistanceKm())
		entries[i] = domain.PriceEntry{
			Name:          r.Name(),
			Price:         price,
			Currency:      domain.CurrencyGHS,
			AmountInWords: words.FromAmount(price) + wordsSuffix,
			DistanceKm:    &dist,
		}
	}

	if s.existing != nil && s.existing.ID != "" {
		if err := s.gw.UpdatePricing(ctx, s.existing.ID, s.user.ID, entries); err != nil {
			s.phase = PhaseEditing
			return err
		}
		s.existing.Prices = entries
	} else {
		id, err := s.gw.CreatePricing(ctx, s.user.ID, entries)
		if err != nil {
			s.phase = PhaseEditing
			return err
		}
		s.existing = &domain.PriceSubmission{ID: id, UserID: s.user.ID, Prices: entries}
	}

	s.logger.Info("pricing submitted",
		logx.String("user_id", s.user.ID),
		logx.Int("routes", len(entries)),
	)
	s.phase = PhaseClosed
	return nil
}

// parsePrice turns a raw form input into an amount. Blank, malformed, and
// negative inputs all collapse to zero so a partial form still submits.
func parsePrice(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}
