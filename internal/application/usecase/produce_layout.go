package usecase

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/bnema/tessellate/internal/application/port"
	"github.com/bnema/tessellate/internal/domain/entity"
	"github.com/bnema/tessellate/internal/domain/resolver"
	"github.com/bnema/tessellate/internal/domain/strategy"
	"github.com/bnema/tessellate/internal/logging"
)

// ResponseMode selects the payload a producer answers with.
type ResponseMode string

const (
	// ModeTree answers with a layout tree the consumer resolves.
	ModeTree ResponseMode = "tree"
	// ModeGeometry answers with rectangles resolved against the request's
	// usable area.
	ModeGeometry ResponseMode = "geometry"
)

// ParseResponseMode converts a configuration value. Empty means tree.
func ParseResponseMode(s string) (ResponseMode, error) {
	switch ResponseMode(s) {
	case "", ModeTree:
		return ModeTree, nil
	case ModeGeometry:
		return ModeGeometry, nil
	default:
		return "", fmt.Errorf("invalid response mode %q (must be tree or geometry)", s)
	}
}

// GeometryKey identifies one resolved layout. Builtin strategies are pure,
// so the same key always resolves to the same rectangles.
type GeometryKey struct {
	Strategy string
	Windows  int
	Area     entity.Rect
}

// UntaggedContext is the tag used for requests that carry no tag at all.
const UntaggedContext entity.TagID = 0

// ProduceLayoutUseCase answers layout requests with the strategy selected for
// the request's primary tag.
type ProduceLayoutUseCase struct {
	cycle    *strategy.Cycle
	notifier port.ForceNotifier
	newID    func() string

	mu         sync.Mutex
	mode       ResponseMode
	geometries port.Cache[GeometryKey, []entity.Rect]
	// seen remembers which tag each output showed last, so cycling a tag
	// can force a new round on exactly those outputs.
	seen map[entity.OutputName]entity.TagID
}

// NewProduceLayoutUseCase creates a producer. notifier may be nil when no
// consumer needs to be told about strategy changes.
func NewProduceLayoutUseCase(cycle *strategy.Cycle, mode ResponseMode, notifier port.ForceNotifier) *ProduceLayoutUseCase {
	if mode == "" {
		mode = ModeTree
	}
	return &ProduceLayoutUseCase{
		cycle:    cycle,
		notifier: notifier,
		newID:    uuid.NewString,
		mode:     mode,
		seen:     make(map[entity.OutputName]entity.TagID),
	}
}

// SetNotifier replaces the force-layout notifier.
func (uc *ProduceLayoutUseCase) SetNotifier(n port.ForceNotifier) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.notifier = n
}

// SetMode switches between tree and geometry answers.
func (uc *ProduceLayoutUseCase) SetMode(mode ResponseMode) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.mode = mode
}

// SetGeometryCache installs a cache for geometry-mode answers. nil disables it.
func (uc *ProduceLayoutUseCase) SetGeometryCache(c port.Cache[GeometryKey, []entity.Rect]) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.geometries = c
}

// Produce builds the response for one request.
func (uc *ProduceLayoutUseCase) Produce(ctx context.Context, req entity.LayoutRequest) (entity.LayoutResponse, error) {
	log := logging.FromContext(ctx)

	if req.WindowCount < 0 {
		return nil, fmt.Errorf("%w: negative window count %d", entity.ErrMalformedMessage, req.WindowCount)
	}

	tag, ok := req.PrimaryTag()
	if !ok {
		tag = UntaggedContext
	}

	uc.mu.Lock()
	uc.seen[req.Output] = tag
	mode := uc.mode
	geometries := uc.geometries
	uc.mu.Unlock()

	root, s := uc.cycle.LayoutFor(tag, req.WindowCount)
	name := "none"
	if s != nil {
		name = s.Name()
	}

	log.Debug().
		Str("output", string(req.Output)).
		Uint64("request_id", uint64(req.ID)).
		Uint32("tag", uint32(tag)).
		Int("windows", req.WindowCount).
		Str("strategy", name).
		Str("mode", string(mode)).
		Msg("producing layout")

	if mode == ModeGeometry {
		rects, err := resolveCached(geometries, s, root, req)
		if err != nil {
			return nil, fmt.Errorf("resolve %s for %s: %w", name, req.Output, err)
		}
		return entity.GeometryLayout{RequestID: req.ID, Output: req.Output, Geometries: rects}, nil
	}

	return entity.TreeLayout{
		RequestID: req.ID,
		Output:    req.Output,
		TreeID:    uc.newID(),
		Root:      root,
	}, nil
}

// resolveCached resolves root, going through c when a strategy is known.
// Callers get their own copy of cached rectangles.
func resolveCached(
	c port.Cache[GeometryKey, []entity.Rect],
	s strategy.Strategy,
	root *entity.LayoutNode,
	req entity.LayoutRequest,
) ([]entity.Rect, error) {
	if c == nil || s == nil {
		return resolver.Resolve(root, req.Area, req.WindowCount)
	}
	key := GeometryKey{Strategy: s.Name(), Windows: req.WindowCount, Area: req.Area}
	if rects, ok := c.Get(key); ok {
		return slices.Clone(rects), nil
	}
	rects, err := resolver.Resolve(root, req.Area, req.WindowCount)
	if err != nil {
		return nil, err
	}
	c.Set(key, slices.Clone(rects))
	return rects, nil
}

// CycleForward selects the next strategy for tag and asks every output last
// seen on that tag for a new round.
func (uc *ProduceLayoutUseCase) CycleForward(ctx context.Context, tag entity.TagID) error {
	s := uc.cycle.CycleForward(tag)
	return uc.afterCycle(ctx, tag, s)
}

// CycleBackward selects the previous strategy for tag and asks every output
// last seen on that tag for a new round.
func (uc *ProduceLayoutUseCase) CycleBackward(ctx context.Context, tag entity.TagID) error {
	s := uc.cycle.CycleBackward(tag)
	return uc.afterCycle(ctx, tag, s)
}

func (uc *ProduceLayoutUseCase) afterCycle(ctx context.Context, tag entity.TagID, s strategy.Strategy) error {
	if s == nil {
		return fmt.Errorf("%w: cycle is empty", entity.ErrUnknownStrategy)
	}
	logging.FromContext(ctx).Info().
		Uint32("tag", uint32(tag)).
		Str("strategy", s.Name()).
		Msg("strategy changed")

	return uc.notify(ctx, func(shown entity.TagID) bool { return shown == tag })
}

// Reload swaps the strategy list and forces a new round everywhere.
func (uc *ProduceLayoutUseCase) Reload(ctx context.Context, strategies []strategy.Strategy, mode ResponseMode) error {
	uc.cycle.Replace(strategies...)
	uc.mu.Lock()
	uc.mode = mode
	if uc.geometries != nil {
		// Same names may now carry different parameters.
		uc.geometries.Clear()
	}
	uc.mu.Unlock()
	logging.FromContext(ctx).Info().
		Strs("strategies", uc.cycle.Names()).
		Str("mode", string(mode)).
		Msg("strategies reloaded")
	return uc.notify(ctx, func(entity.TagID) bool { return true })
}

// CurrentStrategy returns the name of the strategy selected for tag.
func (uc *ProduceLayoutUseCase) CurrentStrategy(tag entity.TagID) string {
	if s := uc.cycle.Current(tag); s != nil {
		return s.Name()
	}
	return ""
}

func (uc *ProduceLayoutUseCase) notify(ctx context.Context, match func(entity.TagID) bool) error {
	uc.mu.Lock()
	notifier := uc.notifier
	outputs := make([]entity.OutputName, 0, len(uc.seen))
	for out, shown := range uc.seen {
		if match(shown) {
			outputs = append(outputs, out)
		}
	}
	uc.mu.Unlock()

	if notifier == nil {
		return nil
	}
	slices.Sort(outputs)

	var errs []error
	for _, out := range outputs {
		if err := notifier.NotifyForceLayout(ctx, out); err != nil {
			errs = append(errs, fmt.Errorf("force layout on %s: %w", out, err))
		}
	}
	return errors.Join(errs...)
}
