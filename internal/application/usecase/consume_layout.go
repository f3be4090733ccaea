package usecase

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/bnema/tessellate/internal/application/port"
	"github.com/bnema/tessellate/internal/domain/entity"
	"github.com/bnema/tessellate/internal/domain/resolver"
	"github.com/bnema/tessellate/internal/domain/strategy"
	"github.com/bnema/tessellate/internal/logging"
)

// ConsumerConfig tunes how the consumer copes with a misbehaving producer.
type ConsumerConfig struct {
	// ResponseTimeout bounds the wait for an answer. Zero or negative uses
	// DefaultResponseTimeout; a consumer never waits forever.
	ResponseTimeout time.Duration
	// MaxMalformed consecutive unparsable messages close the channel.
	// Zero disables the limit.
	MaxMalformed int
	// Fallback lays windows out locally when the producer cannot and the
	// last known-good geometry does not cover the current windows.
	Fallback strategy.Strategy
}

// DefaultResponseTimeout is used when no positive timeout is configured.
const DefaultResponseTimeout = 250 * time.Millisecond

// DefaultConsumerConfig returns the defaults used by the CLI.
func DefaultConsumerConfig() ConsumerConfig {
	return ConsumerConfig{
		ResponseTimeout: DefaultResponseTimeout,
		MaxMalformed:    5,
		Fallback:        strategy.Fair{Direction: entity.DirectionColumn},
	}
}

// ConsumeLayoutUseCase is the compositor side of the layout protocol. It keeps
// one OutputLayout per output, issues requests, validates answers and applies
// them atomically through the GeometryApplier.
//
// The applier is called with the consumer's lock held and must not call back
// into the consumer.
type ConsumeLayoutUseCase struct {
	mu        sync.Mutex
	requester port.LayoutRequester
	applier   port.GeometryApplier
	cfg       ConsumerConfig
	outputs   map[entity.OutputName]*entity.OutputLayout
	timers    map[entity.OutputName]*time.Timer
	lastID    entity.RequestID
	malformed int
	detached  bool
	now       func() time.Time
}

// NewConsumeLayoutUseCase creates a consumer. requester may be nil until
// Attach is called; requests made meanwhile fall back locally.
func NewConsumeLayoutUseCase(requester port.LayoutRequester, applier port.GeometryApplier, cfg ConsumerConfig) *ConsumeLayoutUseCase {
	if cfg.Fallback == nil {
		cfg.Fallback = DefaultConsumerConfig().Fallback
	}
	if cfg.ResponseTimeout <= 0 {
		cfg.ResponseTimeout = DefaultResponseTimeout
	}
	return &ConsumeLayoutUseCase{
		requester: requester,
		applier:   applier,
		cfg:       cfg,
		outputs:   make(map[entity.OutputName]*entity.OutputLayout),
		timers:    make(map[entity.OutputName]*time.Timer),
		detached:  requester == nil,
		now:       time.Now,
	}
}

// Attach connects a (new) producer channel and clears the malformed count.
func (uc *ConsumeLayoutUseCase) Attach(requester port.LayoutRequester) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.requester = requester
	uc.detached = requester == nil
	uc.malformed = 0
}

// RequestLayout starts a new round for need.Output. It supersedes any request
// still outstanding for that output and returns the id of the new one.
// If the producer cannot be reached the local fallback is applied where the
// last known-good geometry does not cover the windows, and the returned error
// wraps ErrProducerUnavailable.
func (uc *ConsumeLayoutUseCase) RequestLayout(ctx context.Context, need entity.LayoutNeed) (entity.RequestID, error) {
	log := logging.FromContext(ctx)
	need.Windows = slices.Clone(need.Windows)
	need.Tags = slices.Clone(need.Tags)

	uc.mu.Lock()
	state := uc.stateLocked(need.Output)
	uc.lastID++
	id := uc.lastID
	state.Begin(id, need)
	uc.stopTimerLocked(need.Output)

	if uc.detached {
		state.Abandon(id)
		uc.keepWindowsLocked(ctx, state, need)
		uc.mu.Unlock()
		return id, fmt.Errorf("request %d for %s: %w: no channel", id, need.Output, entity.ErrProducerUnavailable)
	}
	requester := uc.requester
	timeoutCtx := context.WithoutCancel(ctx)
	uc.timers[need.Output] = time.AfterFunc(uc.cfg.ResponseTimeout, func() {
		uc.onTimeout(timeoutCtx, need.Output, id)
	})
	uc.mu.Unlock()

	log.Debug().
		Str("output", string(need.Output)).
		Uint64("request_id", uint64(id)).
		Int("windows", need.WindowCount()).
		Msg("requesting layout")

	req := entity.LayoutRequest{
		ID:          id,
		Output:      need.Output,
		WindowCount: need.WindowCount(),
		Tags:        need.Tags,
		Area:        need.Area,
	}
	if err := requester.SendRequest(ctx, req); err != nil {
		uc.mu.Lock()
		defer uc.mu.Unlock()
		if state.Abandon(id) {
			uc.stopTimerLocked(need.Output)
			log.Warn().Err(err).Str("output", string(need.Output)).Msg("layout producer unreachable")
			uc.keepWindowsLocked(ctx, state, need)
		}
		return id, fmt.Errorf("request %d for %s: %w: %w", id, need.Output, entity.ErrProducerUnavailable, err)
	}
	return id, nil
}

// HandleResponse applies a producer answer. Answers that do not match the
// latest outstanding request of their output return ErrStaleResponse and
// change nothing. Answers that violate the strategy contract leave the
// previous geometry in place.
func (uc *ConsumeLayoutUseCase) HandleResponse(ctx context.Context, resp entity.LayoutResponse) error {
	log := logging.FromContext(ctx)
	output, id := resp.RequestKey()

	uc.mu.Lock()
	defer uc.mu.Unlock()

	state, ok := uc.outputs[output]
	if !ok {
		log.Debug().Str("output", string(output)).Uint64("request_id", uint64(id)).Msg("response for unknown output")
		return fmt.Errorf("%w: unknown output %s", entity.ErrStaleResponse, output)
	}
	need, err := state.Accept(id)
	if err != nil {
		log.Debug().Err(err).Msg("discarding stale layout response")
		return err
	}
	uc.stopTimerLocked(output)
	uc.malformed = 0

	placements, err := uc.placementsLocked(ctx, resp, need)
	if err != nil {
		log.Error().Err(err).
			Str("output", string(output)).
			Uint64("request_id", uint64(id)).
			Msg("rejecting layout response")
		state.Abandon(id)
		uc.keepWindowsLocked(ctx, state, need)
		return err
	}

	if err := uc.applier.Apply(ctx, output, placements); err != nil {
		state.Abandon(id)
		return fmt.Errorf("apply layout %d on %s: %w", id, output, err)
	}
	state.MarkApplied(id, placements, uc.now())
	state.Settle()

	log.Debug().
		Str("output", string(output)).
		Uint64("request_id", uint64(id)).
		Int("windows", len(placements)).
		Msg("layout applied")
	return nil
}

func (uc *ConsumeLayoutUseCase) placementsLocked(ctx context.Context, resp entity.LayoutResponse, need entity.LayoutNeed) ([]entity.Placement, error) {
	var rects []entity.Rect
	switch r := resp.(type) {
	case entity.TreeLayout:
		res, err := resolver.Compute(r.Root, need.Area, need.WindowCount())
		if err != nil {
			return nil, fmt.Errorf("tree %s: %w", r.TreeID, err)
		}
		if res.DegenerateSplits > 0 {
			logging.FromContext(ctx).Debug().
				Err(entity.ErrDegenerateSplit).
				Int("count", res.DegenerateSplits).
				Str("tree_id", r.TreeID).
				Msg("gaps larger than the space available")
		}
		rects = res.Rects
	case entity.GeometryLayout:
		if len(r.Geometries) != need.WindowCount() {
			return nil, fmt.Errorf("%w: %d geometries for %d windows",
				entity.ErrStrategyContract, len(r.Geometries), need.WindowCount())
		}
		rects = r.Geometries
	default:
		return nil, fmt.Errorf("%w: unsupported response %T", entity.ErrMalformedMessage, resp)
	}
	return AssignWindows(need.Windows, rects)
}

// HandleMalformed counts a message that could not be parsed. Reaching
// MaxMalformed in a row closes the channel and lays every known output out
// with the local fallback.
func (uc *ConsumeLayoutUseCase) HandleMalformed(ctx context.Context, err error) {
	log := logging.FromContext(ctx)

	uc.mu.Lock()
	defer uc.mu.Unlock()

	uc.malformed++
	log.Warn().Err(err).Int("consecutive", uc.malformed).Msg("malformed layout message")

	if uc.cfg.MaxMalformed <= 0 || uc.malformed < uc.cfg.MaxMalformed || uc.detached {
		return
	}

	log.Error().Int("consecutive", uc.malformed).Msg("closing layout channel after repeated corruption")
	uc.detached = true
	if uc.requester != nil {
		if cerr := uc.requester.Close(); cerr != nil {
			log.Warn().Err(cerr).Msg("failed to close layout channel")
		}
	}
	for _, name := range uc.outputNamesLocked() {
		state := uc.outputs[name]
		uc.stopTimerLocked(name)
		state.Abandon(state.Pending)
		uc.applyFallbackLocked(ctx, state, state.LastNeed)
	}
}

// ProducerLost marks the channel gone. Outstanding requests are abandoned
// and outputs whose windows are not covered get the local fallback.
func (uc *ConsumeLayoutUseCase) ProducerLost(ctx context.Context, err error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	logging.FromContext(ctx).Warn().Err(err).Msg("layout producer lost")
	uc.detached = true
	for _, name := range uc.outputNamesLocked() {
		state := uc.outputs[name]
		uc.stopTimerLocked(name)
		if state.Abandon(state.Pending) {
			uc.keepWindowsLocked(ctx, state, state.LastNeed)
		}
	}
}

// ForceLayout starts a new round for output with its last known need.
// Outputs that never asked for a layout are ignored.
func (uc *ConsumeLayoutUseCase) ForceLayout(ctx context.Context, output entity.OutputName) error {
	uc.mu.Lock()
	state, ok := uc.outputs[output]
	var need entity.LayoutNeed
	if ok {
		need = state.LastNeed
	}
	uc.mu.Unlock()

	if !ok {
		logging.FromContext(ctx).Debug().Str("output", string(output)).Msg("force layout for unknown output")
		return nil
	}
	_, err := uc.RequestLayout(ctx, need)
	return err
}

// ForceLayoutAll starts a new round on every known output.
func (uc *ConsumeLayoutUseCase) ForceLayoutAll(ctx context.Context) error {
	uc.mu.Lock()
	names := uc.outputNamesLocked()
	uc.mu.Unlock()

	var errs []error
	for _, name := range names {
		if err := uc.ForceLayout(ctx, name); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Snapshot returns a copy of the state of output.
func (uc *ConsumeLayoutUseCase) Snapshot(output entity.OutputName) (entity.OutputLayout, bool) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	state, ok := uc.outputs[output]
	if !ok {
		return entity.OutputLayout{}, false
	}
	snap := *state
	snap.LastGood = slices.Clone(state.LastGood)
	return snap, true
}

// Close stops all timers. The requester is left to its owner.
func (uc *ConsumeLayoutUseCase) Close() {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	for name := range uc.timers {
		uc.stopTimerLocked(name)
	}
}

func (uc *ConsumeLayoutUseCase) onTimeout(ctx context.Context, output entity.OutputName, id entity.RequestID) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	state, ok := uc.outputs[output]
	if !ok || !state.Abandon(id) {
		return
	}
	delete(uc.timers, output)
	logging.FromContext(ctx).Warn().
		Err(entity.ErrProducerUnavailable).
		Str("output", string(output)).
		Uint64("request_id", uint64(id)).
		Dur("timeout", uc.cfg.ResponseTimeout).
		Msg("layout response timed out")
	uc.keepWindowsLocked(ctx, state, state.PendingNeed)
}

// keepWindowsLocked leaves the last known-good geometry alone when it still
// covers every window and applies the fallback otherwise.
func (uc *ConsumeLayoutUseCase) keepWindowsLocked(ctx context.Context, state *entity.OutputLayout, need entity.LayoutNeed) {
	if state.Covers(need.Windows) {
		logging.FromContext(ctx).Debug().
			Str("output", string(state.Output)).
			Uint64("last_good", uint64(state.LastGoodID)).
			Msg("keeping last known-good layout")
		return
	}
	uc.applyFallbackLocked(ctx, state, need)
}

func (uc *ConsumeLayoutUseCase) applyFallbackLocked(ctx context.Context, state *entity.OutputLayout, need entity.LayoutNeed) {
	log := logging.FromContext(ctx)
	n := need.WindowCount()

	rects, err := resolver.Resolve(uc.cfg.Fallback.Layout(n), need.Area, n)
	if err != nil {
		log.Error().Err(err).Str("strategy", uc.cfg.Fallback.Name()).Msg("fallback layout failed")
		return
	}
	placements, err := AssignWindows(need.Windows, rects)
	if err != nil {
		log.Error().Err(err).Msg("fallback layout failed")
		return
	}
	if err := uc.applier.Apply(ctx, state.Output, placements); err != nil {
		log.Error().Err(err).Str("output", string(state.Output)).Msg("failed to apply fallback layout")
		return
	}
	state.MarkApplied(state.Pending, placements, uc.now())
	state.Settle()
	log.Info().
		Str("output", string(state.Output)).
		Str("strategy", uc.cfg.Fallback.Name()).
		Int("windows", n).
		Msg("applied fallback layout")
}

func (uc *ConsumeLayoutUseCase) stateLocked(output entity.OutputName) *entity.OutputLayout {
	state, ok := uc.outputs[output]
	if !ok {
		state = entity.NewOutputLayout(output)
		uc.outputs[output] = state
	}
	return state
}

func (uc *ConsumeLayoutUseCase) stopTimerLocked(output entity.OutputName) {
	if t, ok := uc.timers[output]; ok {
		t.Stop()
		delete(uc.timers, output)
	}
}

func (uc *ConsumeLayoutUseCase) outputNamesLocked() []entity.OutputName {
	names := make([]entity.OutputName, 0, len(uc.outputs))
	for name := range uc.outputs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
