package pitch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CarrascoOlmedoDevs/zzockerrrrr/common/utils/vector"
)

func TestDefaultFieldDefValidates(t *testing.T) {
	def := DefaultFieldDef()

	require.NoError(t, def.Validate())
	assert.Equal(t, 105.0, def.Length)
	assert.Equal(t, 68.0, def.Width)
	assert.Equal(t, 7.32, def.GoalWidth)
}

func TestValidateRejectsBadGeometry(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*FieldDef)
	}{
		{"zero length", func(def *FieldDef) { def.Length = 0 }},
		{"negative width", func(def *FieldDef) { def.Width = -10 }},
		{"zero goal", func(def *FieldDef) { def.GoalWidth = 0 }},
		{"goal wider than field", func(def *FieldDef) { def.GoalWidth = def.Width + 1 }},
		{"negative margin", func(def *FieldDef) { def.Margin = -0.1 }},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			def := DefaultFieldDef()
			c.mutate(&def)
			assert.Error(t, def.Validate())

			_, err := MakeField(def)
			assert.Error(t, err)
		})
	}
}

func TestContains(t *testing.T) {
	field, err := MakeField(DefaultFieldDef())
	require.NoError(t, err)

	assert.True(t, field.Contains(vector.MakeNullVector2()))
	assert.True(t, field.Contains(vector.MakeVector2(52.5, 34)), "corner is on the line, in play")
	assert.False(t, field.Contains(vector.MakeVector2(52.6, 0)))

	assert.True(t, field.ContainsWithMargin(vector.MakeVector2(52.9, 0)))
	assert.False(t, field.ContainsWithMargin(vector.MakeVector2(53.5, 0)))
}

func TestClampToBounds(t *testing.T) {
	field, err := MakeField(DefaultFieldDef())
	require.NoError(t, err)

	radius := 0.4

	inside := vector.MakeVector2(10, -5)
	assert.True(t, field.ClampToBounds(inside, radius).Equals(inside))

	clamped := field.ClampToBounds(vector.MakeVector2(60, 40), radius)
	assert.InDelta(t, 52.5-radius, clamped.GetX(), 1e-12)
	assert.InDelta(t, 34.0-radius, clamped.GetY(), 1e-12)
}

func TestGoalMouths(t *testing.T) {
	field, err := MakeField(DefaultFieldDef())
	require.NoError(t, err)

	east := field.Goal(GoalEast)
	assert.Equal(t, GoalEast, east.Side)
	assert.InDelta(t, 52.5, east.Mouth.GetPointA().GetX(), 1e-12)
	assert.InDelta(t, 7.32, east.Mouth.Length(), 1e-12)

	west := field.Goal(GoalWest)
	assert.InDelta(t, -52.5, west.Mouth.Center().GetX(), 1e-12)
	assert.InDelta(t, 0.0, west.Mouth.Center().GetY(), 1e-12)
}

func TestSearchSweepFindsGoalMouth(t *testing.T) {
	field, err := MakeField(DefaultFieldDef())
	require.NoError(t, err)

	// sweep crossing the east goal line at y=0
	objects := field.SearchSweep(vector.MakeVector2(50, 0), vector.MakeVector2(54, 0), 0.11)

	foundMouth := false
	for _, object := range objects {
		if object.Kind == BoundaryGoalMouth && object.Side == GoalEast {
			foundMouth = true
		}
	}

	assert.True(t, foundMouth, "east goal mouth must be a candidate for a sweep through it")
}

func TestSearchSweepMidfieldHitsNothing(t *testing.T) {
	field, err := MakeField(DefaultFieldDef())
	require.NoError(t, err)

	objects := field.SearchSweep(vector.MakeVector2(-1, -1), vector.MakeVector2(1, 1), 0.11)

	assert.Empty(t, objects)
}

func TestBoundarySegments(t *testing.T) {
	field, err := MakeField(DefaultFieldDef())
	require.NoError(t, err)

	segments := field.BoundarySegments()
	assert.Len(t, segments, 4)

	total := 0.0
	for _, seg := range segments {
		total += seg.Length()
	}

	assert.InDelta(t, 2*(105+68), total, 1e-9)
}
