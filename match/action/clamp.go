package action

import (
	"github.com/CarrascoOlmedoDevs/zzockerrrrr/common/utils/number"
	"github.com/CarrascoOlmedoDevs/zzockerrrrr/common/utils/vector"
	"github.com/CarrascoOlmedoDevs/zzockerrrrr/pitch"
)

// Limits are the physical ranges an action's parameters are coerced into.
// Parameters are never trusted from the agent: malformed values are clamped
// to the nearest valid one rather than rejected, so a bad agent cannot
// stall the loop.
type Limits struct {
	Field    pitch.FieldDef
	MaxSpeed float64
}

func clampToField(target vector.Vector2, field pitch.FieldDef) vector.Vector2 {
	x, y := target.Get()

	halfLength := field.Length / 2
	halfWidth := field.Width / 2

	return vector.MakeVector2(
		number.Clamp(x, -halfLength, halfLength),
		number.Clamp(y, -halfWidth, halfWidth),
	)
}

func sanitize(v vector.Vector2) vector.Vector2 {
	x, y := v.Get()
	if !number.IsFinite(x) || !number.IsFinite(y) {
		return vector.MakeNullVector2()
	}
	return v
}

// Clamp coerces an action's parameters to physically meaningful ranges.
// Degenerate numeric input (NaN, Inf) falls back to the field center or
// zero, a valid if useless intent.
func Clamp(a Action, limits Limits) Action {
	switch concrete := a.(type) {
	case MoveTo:
		speed := concrete.Speed
		if !number.IsFinite(speed) {
			speed = 0
		}
		return MoveTo{
			Target: clampToField(sanitize(concrete.Target), limits.Field),
			Speed:  number.Clamp(speed, 0, limits.MaxSpeed),
		}
	case PassTo:
		power := concrete.Power
		if !number.IsFinite(power) {
			power = 0
		}
		return PassTo{
			Target: concrete.Target,
			Power:  number.Clamp01(power),
		}
	case Shoot:
		power := concrete.Power
		if !number.IsFinite(power) {
			power = 0
		}
		return Shoot{
			Target: clampToField(sanitize(concrete.Target), limits.Field),
			Power:  number.Clamp01(power),
		}
	case Tackle:
		return concrete
	case Hold:
		return concrete
	case nil:
		return Hold{}
	}

	// unknown concrete type from agent code: treat as no-op
	return Hold{}
}
