package strategy

import (
	"fmt"
	"slices"

	"github.com/bnema/tessellate/internal/domain/entity"
)

// Params carries every tunable a builtin strategy may read. Fields that do not
// apply to a strategy are ignored by it.
type Params struct {
	Direction entity.Direction
	OuterGaps entity.Edges
	InnerGaps int
	Reversed  bool

	MasterFactor float64
	MasterSide   Side
	MasterCount  int

	SplitFactors []float64

	CornerWidthFactor  float64
	CornerHeightFactor float64
	CornerLocation     CornerLocation
}

type builder func(Params) Strategy

var builtins = map[string]builder{
	NameLine: func(p Params) Strategy {
		return Line{Direction: p.Direction, OuterGaps: p.OuterGaps, InnerGaps: p.InnerGaps, Reversed: p.Reversed}
	},
	NameMasterStack: func(p Params) Strategy {
		return MasterStack{
			MasterFactor: p.MasterFactor,
			MasterSide:   p.MasterSide,
			MasterCount:  p.MasterCount,
			OuterGaps:    p.OuterGaps,
			InnerGaps:    p.InnerGaps,
			Reversed:     p.Reversed,
		}
	},
	NameDwindle: func(p Params) Strategy {
		return Dwindle{OuterGaps: p.OuterGaps, InnerGaps: p.InnerGaps, SplitFactors: slices.Clone(p.SplitFactors)}
	},
	NameSpiral: func(p Params) Strategy {
		return Spiral{OuterGaps: p.OuterGaps, InnerGaps: p.InnerGaps, SplitFactors: slices.Clone(p.SplitFactors)}
	},
	NameCorner: func(p Params) Strategy {
		return Corner{
			WidthFactor:  p.CornerWidthFactor,
			HeightFactor: p.CornerHeightFactor,
			Location:     p.CornerLocation,
			OuterGaps:    p.OuterGaps,
			InnerGaps:    p.InnerGaps,
		}
	},
	NameFair: func(p Params) Strategy {
		return Fair{Direction: p.Direction, OuterGaps: p.OuterGaps, InnerGaps: p.InnerGaps}
	},
}

// Names returns the builtin strategy names, sorted.
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// IsBuiltin reports whether name is a registered strategy.
func IsBuiltin(name string) bool {
	_, ok := builtins[name]
	return ok
}

// Build constructs the builtin strategy called name.
func Build(name string, p Params) (Strategy, error) {
	build, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", entity.ErrUnknownStrategy, name)
	}
	return build(p), nil
}

// BuildCycle constructs a Cycle over the named strategies. params supplies the
// parameters per name; a missing entry uses zero Params.
func BuildCycle(names []string, params map[string]Params) (*Cycle, error) {
	strategies, err := BuildAll(names, params)
	if err != nil {
		return nil, err
	}
	return NewCycle(strategies...), nil
}

// BuildAll constructs the named strategies in order.
func BuildAll(names []string, params map[string]Params) ([]Strategy, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: empty strategy list", entity.ErrUnknownStrategy)
	}
	strategies := make([]Strategy, 0, len(names))
	for _, name := range names {
		s, err := Build(name, params[name])
		if err != nil {
			return nil, err
		}
		strategies = append(strategies, s)
	}
	return strategies, nil
}
