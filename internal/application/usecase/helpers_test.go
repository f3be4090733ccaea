package usecase_test

import (
	"context"

	"github.com/bnema/tessellate/internal/domain/entity"
	"github.com/bnema/tessellate/internal/logging"
)

func testContext() context.Context {
	logger := logging.NewFromConfigValues("debug", "console")
	return logging.WithContext(context.Background(), logger)
}

func rect(x, y, w, h int) entity.Rect {
	return entity.Rect{X: x, Y: y, Width: w, Height: h}
}

func windows(ids ...string) []entity.WindowID {
	out := make([]entity.WindowID, len(ids))
	for i, id := range ids {
		out[i] = entity.WindowID(id)
	}
	return out
}
