package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/tessellate/internal/domain/entity"
)

func TestParseArea(t *testing.T) {
	tests := []struct {
		in      string
		want    entity.Rect
		wantErr bool
	}{
		{in: "1920x1080", want: entity.NewRect(0, 0, 1920, 1080)},
		{in: " 800x600+10+20 ", want: entity.NewRect(10, 20, 800, 600)},
		{in: "100x50+-5+0", want: entity.NewRect(-5, 0, 100, 50)},
		{in: "1920", wantErr: true},
		{in: "0x100", wantErr: true},
		{in: "100x-1", wantErr: true},
		{in: "100x100+5", wantErr: true},
		{in: "axb", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseArea(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWindowIDs(t *testing.T) {
	assert.Equal(t, []entity.WindowID{"win-1", "win-2"}, windowIDs(2))
	assert.Empty(t, windowIDs(-1))
}
