package usecase

import (
	"fmt"

	"github.com/bnema/tessellate/internal/domain/entity"
)

// AssignWindows pairs window i with rectangle i. The window order is owned by
// the caller; nothing here reorders or matches.
func AssignWindows(windows []entity.WindowID, rects []entity.Rect) ([]entity.Placement, error) {
	if len(windows) != len(rects) {
		return nil, fmt.Errorf("%w: %d windows for %d rectangles",
			entity.ErrStrategyContract, len(windows), len(rects))
	}
	placements := make([]entity.Placement, len(windows))
	for i, w := range windows {
		placements[i] = entity.Placement{Window: w, Rect: rects[i]}
	}
	return placements, nil
}
