package transaction

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/AlexZinkM/wallet-txcore/currency"
	"github.com/AlexZinkM/wallet-txcore/market"
)

// State of a Workflow.
type State string

const (
	StateDrafting     State = "DRAFTING"
	StateValidating   State = "VALIDATING"
	StateFeePending   State = "FEE_PENDING"
	StateReadyToBuild State = "READY_TO_BUILD"
	StateBuilding     State = "BUILDING"
	StateSubmitted    State = "SUBMITTED"
	StateFailed       State = "FAILED"
	StateCancelled    State = "CANCELLED"
)

// Terminal reports whether no further transition is possible.
func (s State) Terminal() bool {
	return s == StateSubmitted || s == StateCancelled
}

// Transition is reported to the observer on every state change.
type Transition struct {
	Key  Key
	Kind string
	From State
	To   State
	At   time.Time
}

// BuildResult is the outcome of a Submit: either the signable transaction
// or the field errors that kept it from being built.
type BuildResult struct {
	Signable *Signable  `json:"signable,omitempty"`
	Errors   FieldErrors `json:"errors,omitempty"`
}

// Handoff receives the built transaction together with the secrets needed to
// sign it. The workflow wipes its own copy of the secrets once it returns.
type Handoff func(ctx context.Context, signable Signable, creds Credentials) error

type Option func(*Workflow)

func WithLogger(log *zap.Logger) Option {
	return func(w *Workflow) {
		if log != nil {
			w.log = log
		}
	}
}

func WithTranslator(t Translator) Option {
	return func(w *Workflow) {
		if t != nil {
			w.translator = t
		}
	}
}

// WithCurrency sets the provider of the display currency context. It is
// called at fee time so the latest prices are used.
func WithCurrency(provider func() currency.Context) Option {
	return func(w *Workflow) { w.currency = provider }
}

func WithHandoff(h Handoff) Option {
	return func(w *Workflow) { w.handoff = h }
}

// WithObserver registers a transition callback. It runs with the workflow
// locked and must not call back into it.
func WithObserver(fn func(Transition)) Option {
	return func(w *Workflow) { w.observer = fn }
}

func WithReturnObject(v bool) Option {
	return func(w *Workflow) { w.returnObject = v }
}

// WithPrefill seeds the draft asset, for example with the current business
// when updating it. Fields the kind does not declare are ignored.
func WithPrefill(asset Asset) Option {
	return func(w *Workflow) { w.prefill = asset.Clone() }
}

// Workflow drives one form from draft to a built transaction.
type Workflow struct {
	mu sync.Mutex

	desc    Descriptor
	builder Builder

	state      State
	draft      Draft
	errors     FieldErrors
	generation uint64

	log          *zap.Logger
	translator   Translator
	currency     func() currency.Context
	handoff      Handoff
	observer     func(Transition)
	returnObject bool
	prefill      Asset
}

// NewWorkflow opens a form for the kind registered under key.
func NewWorkflow(reg *Registry, bindings Bindings, key Key, opts ...Option) (*Workflow, error) {
	desc, err := reg.Lookup(key.Group, key.Type)
	if err != nil {
		return nil, err
	}
	builder, err := bindings.Resolve(desc)
	if err != nil {
		return nil, err
	}

	w := &Workflow{
		desc:       desc,
		builder:    builder,
		state:      StateDrafting,
		log:        zap.NewNop(),
		translator: identityTranslator{},
	}
	for _, opt := range opts {
		opt(w)
	}

	w.draft = Draft{
		FeeMode: FeeModeFixed,
		Asset:   desc.Defaults(),
	}
	for name, v := range w.prefill {
		if _, ok := desc.Field(name); ok {
			w.draft.Asset[name] = cloneValue(v)
		}
	}
	w.prefill = nil

	w.log = w.log.With(zap.String("kind", desc.Name), zap.Stringer("key", desc.Key))
	return w, nil
}

// Descriptor returns the kind's descriptor.
func (w *Workflow) Descriptor() Descriptor {
	return w.desc.clone()
}

func (w *Workflow) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Draft returns a copy of the draft without secrets.
func (w *Workflow) Draft() Draft {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.draft.Redacted()
}

// Errors returns the field errors of the last submission.
func (w *Workflow) Errors() FieldErrors {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append(FieldErrors(nil), w.errors...)
}

// Edit applies fn to the draft. Only allowed while drafting.
func (w *Workflow) Edit(fn func(*Draft)) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch {
	case w.state.Terminal():
		return ErrWorkflowClosed
	case w.state != StateDrafting:
		return ErrNotEditable
	}
	fn(&w.draft)
	if w.draft.Asset == nil {
		w.draft.Asset = Asset{}
	}
	return nil
}

// Submit validates the draft, computes the fee and calls the build
// capability. Validation and fee problems come back as BuildResult.Errors
// with the workflow returned to drafting.
func (w *Workflow) Submit(ctx context.Context) (BuildResult, error) {
	w.mu.Lock()

	switch {
	case w.state.Terminal():
		w.mu.Unlock()
		return BuildResult{}, ErrWorkflowClosed
	case w.state != StateDrafting:
		w.mu.Unlock()
		return BuildResult{}, ErrSubmissionInProgress
	}

	w.transition(StateValidating)
	w.errors = nil
	draft := w.draft.Redacted()

	asset, errs := Validate(w.desc, draft.Asset)
	if errs != nil {
		w.errors = errs
		w.transition(StateFailed)
		w.transition(StateDrafting)
		w.log.Debug("draft rejected", zap.Strings("fields", errs.Fields()))
		w.mu.Unlock()
		return BuildResult{Errors: errs}, nil
	}

	w.transition(StateFeePending)
	fee, err := w.computeFee(draft)
	if err != nil {
		reason, ok := feeReason(err)
		if !ok {
			w.transition(StateDrafting)
			w.mu.Unlock()
			return BuildResult{}, err
		}
		errs := FieldErrors{{Field: FeeField, Reason: reason}}
		w.errors = errs
		w.transition(StateDrafting)
		w.log.Debug("fee rejected", zap.Error(err))
		w.mu.Unlock()
		return BuildResult{Errors: errs}, nil
	}

	w.transition(StateReadyToBuild)
	w.transition(StateBuilding)

	w.generation++
	gen := w.generation
	builder, key, returnObject := w.builder, w.desc.Key, w.returnObject
	w.mu.Unlock()

	signable, buildErr := builder.Build(ctx, key, Payload{Fee: fee, Asset: asset}, draft.FeeMode.IsAdvanced(), returnObject)

	w.mu.Lock()
	if w.generation != gen || w.state != StateBuilding {
		w.mu.Unlock()
		return BuildResult{}, ErrCancelled
	}

	if buildErr == nil && signable == nil {
		buildErr = errors.New("build capability returned no transaction")
	}
	if buildErr != nil {
		be := &BuildError{
			Key:     key,
			Kind:    w.desc.Name,
			Message: w.translator.Translate(w.desc.ErrorKey),
			Err:     buildErr,
		}
		w.transition(StateFailed)
		w.transition(StateDrafting)
		w.log.Warn("build failed", zap.Object("draft", draft), zap.Error(buildErr))
		w.mu.Unlock()
		return BuildResult{}, be
	}

	result := *signable
	result.Key = key
	result.Name = w.desc.Name
	result.Fee = fee
	if result.Asset == nil {
		result.Asset = asset
	}

	w.transition(StateSubmitted)
	creds := w.draft.credentials()
	w.draft.wipe()
	handoff := w.handoff
	w.mu.Unlock()

	w.log.Info("transaction built", zap.Uint64("fee", fee), zap.Bool("advancedFee", draft.FeeMode.IsAdvanced()))

	if handoff != nil {
		err := handoff(ctx, result, creds)
		creds.Wipe()
		if err != nil {
			return BuildResult{Signable: &result}, fmt.Errorf("failed to hand off %s transaction: %w", w.desc.Name, err)
		}
	} else {
		creds.Wipe()
	}

	return BuildResult{Signable: &result}, nil
}

// Cancel closes the workflow. An in-flight build keeps running; its result,
// when it arrives, is discarded.
func (w *Workflow) Cancel() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state.Terminal() {
		return ErrWorkflowClosed
	}
	w.generation++
	w.transition(StateCancelled)
	w.draft.wipe()
	return nil
}

func (w *Workflow) computeFee(draft Draft) (uint64, error) {
	if draft.FeeMode.IsAdvanced() && draft.FiatFee != nil {
		var ctx currency.Context
		if w.currency != nil {
			ctx = w.currency()
		}
		return ComputeFiatFee(w.desc, *draft.FiatFee, ctx)
	}
	if draft.FeeMode == "" {
		draft.FeeMode = FeeModeFixed
	}
	return ComputeFee(w.desc, draft.FeeMode, draft.Fee)
}

func feeReason(err error) (string, bool) {
	switch {
	case errors.Is(err, ErrFeeOutOfRange):
		return ReasonOutOfRange, true
	case errors.Is(err, ErrFeeRequired):
		return ReasonRequired, true
	case errors.Is(err, market.ErrPriceUnavailable):
		return ReasonPriceUnavailable, true
	}
	return "", false
}

func (w *Workflow) transition(to State) {
	from := w.state
	w.state = to
	w.log.Debug("state changed", zap.String("from", string(from)), zap.String("to", string(to)))
	if w.observer != nil {
		w.observer(Transition{Key: w.desc.Key, Kind: w.desc.Name, From: from, To: to, At: time.Now()})
	}
}
