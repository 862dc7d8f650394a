package mosaic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanGridEqualSizedSources(t *testing.T) {
	sources := []Source{
		{Path: "a", Present: true, Width: 640, Height: 360},
		{Path: "b", Present: true, Width: 640, Height: 360},
		{Path: "c", Present: true, Width: 640, Height: 360},
		{Path: "d", Present: true, Width: 640, Height: 360},
		{Path: "e", Present: true, Width: 640, Height: 360},
		{Path: "f", Present: true, Width: 640, Height: 360},
	}

	g, err := PlanGrid(3, 2, 30, sources)
	require.NoError(t, err)

	assert.Equal(t, 640, g.CellW)
	assert.Equal(t, 360, g.CellH)
	assert.Equal(t, 1920, g.CanvasW())
	assert.Equal(t, 720, g.CanvasH())
	assert.Equal(t, 6, g.Capacity())
}

func TestPlanGridOddDimensionsRoundUpToEven(t *testing.T) {
	sources := []Source{{Path: "a", Present: true, Width: 641, Height: 361}}

	g, err := PlanGrid(2, 2, 30, sources)
	require.NoError(t, err)

	assert.Equal(t, 642, g.CellW)
	assert.Equal(t, 362, g.CellH)
}

func TestPlanGridUsesMaxAcrossSources(t *testing.T) {
	sources := []Source{
		{Path: "a", Present: true, Width: 640, Height: 480},
		{Path: "b", Present: true, Width: 1280, Height: 360},
		{Path: "c", Present: false},          // missing file contributes nothing
		{Path: "d", Present: true, Width: 0}, // unreadable probe contributes nothing
	}

	g, err := PlanGrid(2, 2, 30, sources)
	require.NoError(t, err)

	assert.Equal(t, 1280, g.CellW)
	assert.Equal(t, 480, g.CellH)
}

func TestPlanGridNoReadableSources(t *testing.T) {
	sources := []Source{
		{Path: "a", Present: false},
		{Path: "b", Present: true, Width: 0, Height: 0},
	}
	_, err := PlanGrid(2, 2, 30, sources)
	assert.ErrorIs(t, err, ErrNoSources)
}

func TestPlanGridRejectsBadShape(t *testing.T) {
	sources := []Source{{Present: true, Width: 64, Height: 64}}
	for _, shape := range [][2]int{{0, 2}, {2, 0}, {-1, 1}} {
		_, err := PlanGrid(shape[0], shape[1], 30, sources)
		assert.Error(t, err, "shape %v", shape)
	}
}

func TestFallbackDuration(t *testing.T) {
	tests := []struct {
		name    string
		sources []Source
		want    float64
	}{
		{
			"max of present sources",
			[]Source{
				{Present: true, Duration: 4.5},
				{Present: true, Duration: 12.25},
				{Present: false, Duration: 99}, // absent files never contribute
			},
			12.25,
		},
		{
			"no durations known",
			[]Source{{Present: true}, {Present: false}},
			DefaultFallbackDuration,
		},
		{
			"empty list",
			nil,
			DefaultFallbackDuration,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FallbackDuration(tt.sources, DefaultFallbackDuration))
		})
	}
}

func TestEvenCeil(t *testing.T) {
	cases := map[int]int{0: 0, 1: 2, 2: 2, 3: 4, 640: 640, 641: 642, 361: 362}
	for in, want := range cases {
		assert.Equal(t, want, evenCeil(in), "evenCeil(%d)", in)
	}
}
