package checkout

import (
	"context"
	"sync"
	"time"

	"github.com/Javohirbek070/toliq-shop-reimagined/internal/cart"
	"github.com/Javohirbek070/toliq-shop-reimagined/internal/geocode"
	"github.com/Javohirbek070/toliq-shop-reimagined/internal/logger"

	"go.uber.org/zap"
)

// State of the order submission flow.
type State string

const (
	StateIdle       State = "idle"
	StateSubmitting State = "submitting"
	StateSuccess    State = "success"
)

// confirmationDelay is how long the success confirmation stays visible
// before the cart is cleared and the flow returns to idle.
const confirmationDelay = 3 * time.Second

// Submitter accepts a finalized order built from the validated form and the
// cart snapshot at submission time. It returns the created order's id.
type Submitter interface {
	Submit(ctx context.Context, form Form, lines []cart.Line, total int64) (string, error)
}

// Flow drives one checkout surface: form editing, location fill, validation
// and the submission state machine. States move Idle -> Submitting ->
// Success and back to Idle, either after the confirmation delay (success) or
// immediately with the form preserved (failure).
//
// A second Submit while one is in flight is rejected, so a session can never
// create two orders from the same cart by rapid double submission.
type Flow struct {
	validator *Validator
	submitter Submitter
	geocoder  geocode.Reverser

	// after schedules the confirmation-delay callback; replaced in tests.
	after  func(time.Duration, func())
	onDone func()

	mu          sync.Mutex
	state       State
	form        Form
	fields      map[string]string
	cart        *cart.Cart
	addrGen     int
	lastOrderID string
}

func NewFlow(c *cart.Cart, v *Validator, submitter Submitter, geocoder geocode.Reverser) *Flow {
	return &Flow{
		validator: v,
		submitter: submitter,
		geocoder:  geocoder,
		after:     func(d time.Duration, fn func()) { time.AfterFunc(d, fn) },
		state:     StateIdle,
		cart:      c,
	}
}

// OnComplete registers a callback fired after a successful submission's
// confirmation delay, once the flow is back to idle.
func (fl *Flow) OnComplete(fn func()) {
	fl.mu.Lock()
	fl.onDone = fn
	fl.mu.Unlock()
}

// boundTo reports whether the flow snapshots from the given cart.
func (fl *Flow) boundTo(c *cart.Cart) bool {
	fl.mu.Lock()
	defer fl.mu.Unlock()
	return fl.cart == c
}

// SetForm replaces the form while the flow is idle. Field errors are cleared
// for every field the edit touched, and an address edit supersedes any
// pending location lookup. Returns false when the flow is not editable.
func (fl *Flow) SetForm(f Form) bool {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.state != StateIdle {
		return false
	}

	if f.Name != fl.form.Name {
		delete(fl.fields, "customer_name")
	}
	if f.Phone != fl.form.Phone {
		delete(fl.fields, "phone")
	}
	if f.Address != fl.form.Address {
		delete(fl.fields, "address")
		fl.addrGen++
	}

	fl.form = f
	return true
}

// FillLocation resolves coordinates into an address and writes it into the
// form. The result is discarded when the user edited the address while the
// lookup was running, or when the flow left the idle state. Lookup failure
// falls back to the raw coordinates as text; it never blocks submission.
func (fl *Flow) FillLocation(ctx context.Context, lat, lon float64) (string, bool) {
	fl.mu.Lock()
	gen := fl.addrGen
	fl.mu.Unlock()

	addr, err := fl.geocoder.Reverse(ctx, lat, lon)
	if err != nil {
		logger.FromCtx(ctx).Warn("location lookup failed, using coordinates",
			zap.String("layer", "checkout"),
			zap.Error(err),
		)
		addr = geocode.Fallback(lat, lon)
	}

	fl.mu.Lock()
	defer fl.mu.Unlock()

	if gen != fl.addrGen || fl.state != StateIdle {
		return addr, false
	}

	fl.form.Address = addr
	delete(fl.fields, "address")
	return addr, true
}

// Submit validates the form and, when it passes, hands the form plus the
// current cart snapshot to the submitter.
//
// Outcomes: ErrSubmitInFlight while an earlier submission is still running
// or confirming; an invalid Result with nil error on validation failure (the
// flow returns to idle with field errors set); the submitter's error on
// rejection, with form and cart preserved for retry; on acceptance the order
// id, with the cart scheduled to clear after the confirmation delay.
func (fl *Flow) Submit(ctx context.Context) (string, Result, error) {
	fl.mu.Lock()
	if fl.state != StateIdle {
		fl.mu.Unlock()
		return "", Result{}, ErrSubmitInFlight
	}

	res := fl.validator.Validate(fl.form)
	if !res.Valid {
		fl.fields = res.Fields
		fl.mu.Unlock()
		return "", res, nil
	}

	if fl.cart.Empty() {
		fl.mu.Unlock()
		return "", res, ErrEmptyCart
	}

	fl.form = res.Form
	fl.fields = nil
	lines := fl.cart.Lines()
	total := fl.cart.Total()
	fl.state = StateSubmitting
	fl.mu.Unlock()

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "checkout"),
		zap.String("method", "Submit"),
	)

	orderID, err := fl.submitter.Submit(ctx, res.Form, lines, total)
	if err != nil {
		fl.mu.Lock()
		fl.state = StateIdle
		fl.mu.Unlock()

		log.Error("order submission failed", zap.Error(err))
		return "", res, err
	}

	fl.mu.Lock()
	fl.state = StateSuccess
	fl.lastOrderID = orderID
	fl.mu.Unlock()

	log.Info("order submitted", zap.String("order_id", orderID))

	fl.after(confirmationDelay, fl.finish)
	return orderID, res, nil
}

// finish ends the success confirmation: cart cleared, form reset, back to
// idle, completion callback fired.
func (fl *Flow) finish() {
	fl.mu.Lock()
	fl.cart.Clear()
	fl.form = Form{}
	fl.fields = nil
	fl.state = StateIdle
	done := fl.onDone
	fl.mu.Unlock()

	if done != nil {
		done()
	}
}

// Close reports whether the checkout surface may close. Closing is
// suppressed while a submission is in flight or the confirmation is showing.
func (fl *Flow) Close() bool {
	fl.mu.Lock()
	defer fl.mu.Unlock()
	return fl.state == StateIdle
}

func (fl *Flow) State() State {
	fl.mu.Lock()
	defer fl.mu.Unlock()
	return fl.state
}

func (fl *Flow) FormValue() Form {
	fl.mu.Lock()
	defer fl.mu.Unlock()
	return fl.form
}

// FieldErrors returns a copy of the current per-field validation messages.
func (fl *Flow) FieldErrors() map[string]string {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	out := make(map[string]string, len(fl.fields))
	for k, v := range fl.fields {
		out[k] = v
	}
	return out
}

func (fl *Flow) OrderID() string {
	fl.mu.Lock()
	defer fl.mu.Unlock()
	return fl.lastOrderID
}
