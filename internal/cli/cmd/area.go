package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bnema/tessellate/internal/domain/entity"
)

// parseArea reads an area written WIDTHxHEIGHT or WIDTHxHEIGHT+X+Y.
func parseArea(s string) (entity.Rect, error) {
	size, offset, hasOffset := strings.Cut(strings.TrimSpace(s), "+")

	ws, hs, ok := strings.Cut(size, "x")
	if !ok {
		return entity.Rect{}, fmt.Errorf("invalid area %q: want WIDTHxHEIGHT[+X+Y]", s)
	}
	w, err := strconv.Atoi(ws)
	if err != nil || w <= 0 {
		return entity.Rect{}, fmt.Errorf("invalid area width %q", ws)
	}
	h, err := strconv.Atoi(hs)
	if err != nil || h <= 0 {
		return entity.Rect{}, fmt.Errorf("invalid area height %q", hs)
	}

	var x, y int
	if hasOffset {
		xs, ys, ok := strings.Cut(offset, "+")
		if !ok {
			return entity.Rect{}, fmt.Errorf("invalid area offset %q: want +X+Y", offset)
		}
		if x, err = strconv.Atoi(xs); err != nil {
			return entity.Rect{}, fmt.Errorf("invalid area x %q", xs)
		}
		if y, err = strconv.Atoi(ys); err != nil {
			return entity.Rect{}, fmt.Errorf("invalid area y %q", ys)
		}
	}
	return entity.NewRect(x, y, w, h), nil
}

// windowIDs names count windows win-1..win-count.
func windowIDs(count int) []entity.WindowID {
	ids := make([]entity.WindowID, max(count, 0))
	for i := range ids {
		ids[i] = entity.WindowID("win-" + strconv.Itoa(i+1))
	}
	return ids
}

func tagIDs(tags []uint) []entity.TagID {
	out := make([]entity.TagID, len(tags))
	for i, t := range tags {
		out[i] = entity.TagID(t)
	}
	return out
}
