package action

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/CarrascoOlmedoDevs/zzockerrrrr/common/utils/vector"
	"github.com/CarrascoOlmedoDevs/zzockerrrrr/pitch"
)

func testLimits() Limits {
	return Limits{
		Field:    pitch.DefaultFieldDef(),
		MaxSpeed: 8.0,
	}
}

func TestClampMoveToTargetOntoField(t *testing.T) {
	clamped := Clamp(MoveTo{Target: vector.MakeVector2(500, -500), Speed: 5}, testLimits())

	moveto, ok := clamped.(MoveTo)
	assert.True(t, ok)
	assert.True(t, moveto.Target.Equals(vector.MakeVector2(52.5, -34)))
	assert.Equal(t, 5.0, moveto.Speed)
}

func TestClampMoveToSpeed(t *testing.T) {
	clamped := Clamp(MoveTo{Target: vector.MakeNullVector2(), Speed: 99}, testLimits())
	assert.Equal(t, 8.0, clamped.(MoveTo).Speed)

	clamped = Clamp(MoveTo{Target: vector.MakeNullVector2(), Speed: -4}, testLimits())
	assert.Equal(t, 0.0, clamped.(MoveTo).Speed)
}

func TestClampNaNFallsBackToZero(t *testing.T) {
	clamped := Clamp(MoveTo{
		Target: vector.MakeVector2(math.NaN(), math.Inf(1)),
		Speed:  math.NaN(),
	}, testLimits())

	moveto := clamped.(MoveTo)
	assert.True(t, moveto.Target.IsNull())
	assert.Equal(t, 0.0, moveto.Speed)
}

func TestClampPower(t *testing.T) {
	assert.Equal(t, 1.0, Clamp(Shoot{Target: vector.MakeVector2(52.5, 0), Power: 7}, testLimits()).(Shoot).Power)
	assert.Equal(t, 0.0, Clamp(PassTo{Target: 3, Power: -2}, testLimits()).(PassTo).Power)
	assert.Equal(t, 0.0, Clamp(PassTo{Target: 3, Power: math.Inf(1)}, testLimits()).(PassTo).Power)
}

func TestClampNilAndUnknownBecomeHold(t *testing.T) {
	assert.Equal(t, KindHold, Clamp(nil, testLimits()).Kind())
}

func TestKindStrings(t *testing.T) {
	assert.Equal(t, "hold", KindHold.String())
	assert.Equal(t, "moveto", KindMoveTo.String())
	assert.Equal(t, "passto", KindPassTo.String())
	assert.Equal(t, "shoot", KindShoot.String())
	assert.Equal(t, "tackle", KindTackle.String())
}
