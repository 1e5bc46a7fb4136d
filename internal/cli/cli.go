// Package cli is the interactive terminal surface of the rider client. It
// owns prompting and rendering only; every rule lives in the services.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Krontiva/rider-web-app/internal/apperr"
	"github.com/Krontiva/rider-web-app/internal/domain"
	"github.com/Krontiva/rider-web-app/internal/logx"
	"github.com/Krontiva/rider-web-app/internal/service/orders"
	"github.com/Krontiva/rider-web-app/internal/service/pricing"
)

type authService interface {
	Start(ctx context.Context, phone string) (domain.User, error)
	Resend(ctx context.Context, phone string) error
	Confirm(ctx context.Context, phone string, code int) (domain.User, error)
	SignOut() error
}

type orderService interface {
	Feed(ctx context.Context, tab domain.Tab, bf domain.BatchFilter) (orders.Feed, error)
	Detail(ctx context.Context, id string) (domain.Order, error)
	Pickup(ctx context.Context, order domain.Order) (domain.Order, error)
	StartDelivery(ctx context.Context, order domain.Order) (domain.Order, error)
	CompleteDelivery(ctx context.Context, order domain.Order, orderOTP string) (domain.Order, error)
	Cancel(ctx context.Context, order domain.Order) (domain.Order, error)
}

// Runner drives the terminal session.
type Runner struct {
	auth    authService
	orders  orderService
	pricing *pricing.Session
	logger  logx.Logger

	in  *bufio.Scanner
	out io.Writer

	tab   domain.Tab
	batch domain.BatchFilter
}

// NewRunner creates the terminal runner. Nil services return nil.
func NewRunner(auth authService, ord orderService, pr *pricing.Session, logger logx.Logger, in io.Reader, out io.Writer) *Runner {
	if auth == nil || ord == nil || pr == nil {
		return nil
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Runner{
		auth:    auth,
		orders:  ord,
		pricing: pr,
		logger:  logger,
		in:      bufio.NewScanner(in),
		out:     out,
		tab:     domain.TabPending,
		batch:   domain.BatchAll,
	}
}

// Run walks sign-in and then the main loop until the rider quits or the
// context is cancelled.
func (r *Runner) Run(ctx context.Context) error {
	if err := r.signIn(ctx); err != nil {
		return err
	}
	defer func() {
		if err := r.auth.SignOut(); err != nil {
			r.logger.Warn("sign out", logx.Err(err))
		}
	}()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprintf(r.out, "\n[1] Pending  [2] Active  [3] Complete  [b] batch filter  [p] zone pricing  [q] quit\n")
		choice, ok := r.prompt("> ")
		if !ok {
			return nil
		}
		switch choice {
		case "1":
			r.tab = domain.TabPending
			r.showFeed(ctx)
		case "2":
			r.tab = domain.TabActive
			r.showFeed(ctx)
		case "3":
			r.tab = domain.TabComplete
			r.showFeed(ctx)
		case "b":
			r.chooseBatchFilter()
			r.showFeed(ctx)
		case "p":
			r.runPricing(ctx)
		case "q":
			return nil
		}
	}
}

func (r *Runner) signIn(ctx context.Context) error {
	phone, ok := r.prompt("Phone number: ")
	if !ok {
		return errors.New("sign-in aborted")
	}
	user, err := r.auth.Start(ctx, phone)
	if err != nil {
		return fmt.Errorf("sign in: %w", err)
	}
	fmt.Fprintf(r.out, "Hello %s, a code was sent to %s.\n", user.FullName, phone)

	for {
		raw, ok := r.prompt("Code (or 'resend'): ")
		if !ok {
			return errors.New("sign-in aborted")
		}
		if raw == "resend" {
			if err := r.auth.Resend(ctx, phone); err != nil {
				fmt.Fprintf(r.out, "resend failed: %v\n", err)
			}
			continue
		}
		code, err := strconv.Atoi(raw)
		if err != nil {
			fmt.Fprintln(r.out, "enter the numeric code")
			continue
		}
		user, err = r.auth.Confirm(ctx, phone, code)
		if errors.Is(err, apperr.Invalid) {
			fmt.Fprintln(r.out, "wrong code, try again")
			continue
		}
		if err != nil {
			return fmt.Errorf("confirm code: %w", err)
		}
		fmt.Fprintf(r.out, "Signed in as %s.\n", user.FullName)
		return nil
	}
}

func (r *Runner) chooseBatchFilter() {
	raw, ok := r.prompt("Filter [a]ll / [b]atched / [s]ingle: ")
	if !ok {
		return
	}
	switch raw {
	case "b":
		r.batch = domain.BatchBatched
	case "s":
		r.batch = domain.BatchSingle
	default:
		r.batch = domain.BatchAll
	}
}

func (r *Runner) showFeed(ctx context.Context) {
	feed, err := r.orders.Feed(ctx, r.tab, r.batch)
	if err != nil {
		fmt.Fprintf(r.out, "load orders: %v\n", err)
		return
	}

	fmt.Fprintf(r.out, "\n%s orders (Pending %d / Active %d / Complete %d)\n",
		feed.Tab,
		feed.Counts[domain.TabPending],
		feed.Counts[domain.TabActive],
		feed.Counts[domain.TabComplete],
	)
	if len(feed.Groups) == 0 {
		fmt.Fprintln(r.out, "nothing here")
		return
	}
	for i, g := range feed.Groups {
		label := g.Representative.OrderNumber
		if g.IsBatch() {
			label = fmt.Sprintf("batch of %d", len(g.Orders))
		}
		fmt.Fprintf(r.out, "%2d. #%s  %s  %s  GHS %.2f\n",
			i+1, label, g.Representative.CustomerName, g.Representative.Status, g.TotalPrice())
	}

	raw, ok := r.prompt("Open order number (enter to go back): ")
	if !ok || raw == "" {
		return
	}
	idx, err := strconv.Atoi(raw)
	if err != nil || idx < 1 || idx > len(feed.Groups) {
		fmt.Fprintln(r.out, "no such order")
		return
	}
	r.showGroup(ctx, feed.Groups[idx-1])
}

func (r *Runner) showGroup(ctx context.Context, g domain.OrderGroup) {
	order, err := r.orders.Detail(ctx, g.Representative.ID)
	if err != nil {
		fmt.Fprintf(r.out, "load order: %v\n", err)
		return
	}

	colors := order.Status.Colors()
	fmt.Fprintf(r.out, "\nOrder #%s  %s (%s on %s)\n", order.OrderNumber, order.Status, colors.Text, colors.Background)
	fmt.Fprintf(r.out, "Customer: %s  %s\n", order.CustomerName, order.CustomerPhone)
	fmt.Fprintf(r.out, "Pickup:   %s\n", order.PickupAddress())
	for _, d := range g.DropOffs {
		fmt.Fprintf(r.out, "Dropoff:  %s\n", d.Address)
	}
	fmt.Fprintf(r.out, "Price:    GHS %.2f\n", g.TotalPrice())
	fmt.Fprintf(r.out, "Map:      %s\n", orders.RouteURL(g))

	raw, ok := r.prompt("[p]ickup  [d]eliver  [c]omplete  [x] cancel  (enter to go back): ")
	if !ok || raw == "" {
		return
	}

	switch raw {
	case "p":
		order, err = r.orders.Pickup(ctx, order)
	case "d":
		order, err = r.orders.StartDelivery(ctx, order)
	case "c":
		otp, ok := r.prompt("Customer code: ")
		if !ok {
			return
		}
		order, err = r.orders.CompleteDelivery(ctx, order, otp)
	case "x":
		order, err = r.orders.Cancel(ctx, order)
	default:
		return
	}

	if errors.Is(err, apperr.Invalid) {
		fmt.Fprintf(r.out, "not allowed: %v\n", err)
		return
	}
	if err != nil {
		fmt.Fprintf(r.out, "update failed: %v\n", err)
		return
	}
	fmt.Fprintf(r.out, "Order #%s is now %s.\n", order.OrderNumber, order.Status)
}

func (r *Runner) runPricing(ctx context.Context) {
	if err := r.pricing.Load(ctx); err != nil {
		if errors.Is(err, pricing.ErrStale) {
			return
		}
		fmt.Fprintf(r.out, "load pricing: %v\n", err)
		return
	}

	if r.pricing.Phase() == pricing.PhaseHasPricing {
		fmt.Fprintln(r.out, "\nYou already priced your routes; entries are prefilled.")
	} else {
		fmt.Fprintln(r.out, "\nNo prices yet; walk the routes and set yours.")
	}
	if err := r.pricing.StartEditing(); err != nil {
		fmt.Fprintf(r.out, "open form: %v\n", err)
		return
	}

	for {
		route := r.pricing.CurrentRoute()
		fmt.Fprintf(r.out, "\nRoute %d/%d: %s (%.2f km)\n",
			r.pricing.StepIndex()+1, r.pricing.StepCount(), route.Name(), route.DistanceKm())
		if avg, ok := r.pricing.AverageFor(route.Name()); ok {
			fmt.Fprintf(r.out, "Riders ask GHS %.2f on average.\n", avg)
		} else {
			fmt.Fprintln(r.out, "No rider has priced this route yet.")
		}
		if std, ok := r.pricing.StandardFor(route.Name()); ok {
			fmt.Fprintf(r.out, "Standard price: GHS %.2f.\n", std)
		}
		if cur := r.pricing.Input(); cur != "" {
			fmt.Fprintf(r.out, "Your price: GHS %s\n", cur)
		}

		raw, ok := r.prompt("Price / [n]ext / [b]ack / [s]ubmit / [q]uit: ")
		if !ok {
			return
		}
		switch raw {
		case "n":
			r.pricing.Next()
		case "b":
			r.pricing.Previous()
		case "q":
			return
		case "s":
			err := r.pricing.Submit(ctx)
			if errors.Is(err, apperr.Invalid) {
				fmt.Fprintln(r.out, "reach the last route before submitting")
				continue
			}
			if err != nil {
				fmt.Fprintf(r.out, "submit failed: %v\n", err)
				continue
			}
			fmt.Fprintln(r.out, "Prices saved.")
			return
		default:
			if err := r.pricing.SetPrice(raw); err != nil {
				fmt.Fprintf(r.out, "set price: %v\n", err)
			}
		}
	}
}

// prompt reads one trimmed line. ok is false when the input stream ends.
func (r *Runner) prompt(label string) (string, bool) {
	fmt.Fprint(r.out, label)
	if !r.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(r.in.Text()), true
}
