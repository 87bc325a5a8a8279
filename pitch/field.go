package pitch

import (
	"github.com/pkg/errors"

	"github.com/CarrascoOlmedoDevs/zzockerrrrr/common/utils/vector"
)

// FieldDef is the raw field geometry as found in the match configuration.
// Dimensions follow the Laws of the Game defaults (105x68, 7.32m goal mouth).
type FieldDef struct {
	Length             float64 `json:"length" yaml:"length"`
	Width              float64 `json:"width" yaml:"width"`
	GoalWidth          float64 `json:"goalwidth" yaml:"goalwidth"`
	CenterCircleRadius float64 `json:"centercircleradius" yaml:"centercircleradius"`

	// Overrun margin tolerated outside the touchlines before the boundary
	// pass clamps an entity back onto the field.
	Margin float64 `json:"margin" yaml:"margin"`
}

func DefaultFieldDef() FieldDef {
	return FieldDef{
		Length:             105.0,
		Width:              68.0,
		GoalWidth:          7.32,
		CenterCircleRadius: 9.15,
		Margin:             0.5,
	}
}

func (def FieldDef) Validate() error {
	if def.Length <= 0 || def.Width <= 0 {
		return errors.Errorf("pitch: invalid dimensions %.2fx%.2f", def.Length, def.Width)
	}

	if def.GoalWidth <= 0 {
		return errors.New("pitch: goal width must be positive")
	}

	if def.GoalWidth >= def.Width {
		return errors.Errorf("pitch: goal width %.2f does not fit in field width %.2f", def.GoalWidth, def.Width)
	}

	if def.Margin < 0 {
		return errors.New("pitch: margin must not be negative")
	}

	return nil
}

// GoalSide identifies one of the two goal mouths. West sits on the -X goal
// line, East on +X. The origin is the center spot.
type GoalSide int

const (
	GoalWest GoalSide = iota
	GoalEast
)

func (side GoalSide) String() string {
	if side == GoalWest {
		return "west"
	}
	return "east"
}

type Goal struct {
	Side  GoalSide
	Mouth vector.Segment2
}

// Field is the immutable match geometry. Built once at match setup; all
// accessors are read-only.
type Field struct {
	def   FieldDef
	goals [2]Goal
	index *staticIndex
}

func MakeField(def FieldDef) (*Field, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}

	halfLength := def.Length / 2.0
	halfGoal := def.GoalWidth / 2.0

	goals := [2]Goal{
		{
			Side:  GoalWest,
			Mouth: vector.MakeSegment2(vector.MakeVector2(-halfLength, -halfGoal), vector.MakeVector2(-halfLength, halfGoal)),
		},
		{
			Side:  GoalEast,
			Mouth: vector.MakeSegment2(vector.MakeVector2(halfLength, -halfGoal), vector.MakeVector2(halfLength, halfGoal)),
		},
	}

	field := &Field{
		def:   def,
		goals: goals,
	}

	index, err := makeStaticIndex(field)
	if err != nil {
		return nil, err
	}
	field.index = index

	return field, nil
}

func (f *Field) Def() FieldDef {
	return f.def
}

func (f *Field) Length() float64 {
	return f.def.Length
}

func (f *Field) Width() float64 {
	return f.def.Width
}

func (f *Field) Margin() float64 {
	return f.def.Margin
}

func (f *Field) CenterSpot() vector.Vector2 {
	return vector.MakeNullVector2()
}

func (f *Field) Goal(side GoalSide) Goal {
	return f.goals[side]
}

func (f *Field) Goals() [2]Goal {
	return f.goals
}

// Contains reports whether pos lies on the playable surface.
func (f *Field) Contains(pos vector.Vector2) bool {
	x, y := pos.Get()
	return x >= -f.def.Length/2 && x <= f.def.Length/2 &&
		y >= -f.def.Width/2 && y <= f.def.Width/2
}

// ContainsWithMargin reports whether pos lies inside the extended bounds
// (playable surface plus the overrun margin).
func (f *Field) ContainsWithMargin(pos vector.Vector2) bool {
	x, y := pos.Get()
	maxX := f.def.Length/2 + f.def.Margin
	maxY := f.def.Width/2 + f.def.Margin
	return x >= -maxX && x <= maxX && y >= -maxY && y <= maxY
}

// ClampToBounds returns pos pushed back onto the playable surface, keeping
// the entity radius fully inside.
func (f *Field) ClampToBounds(pos vector.Vector2, radius float64) vector.Vector2 {
	x, y := pos.Get()

	maxX := f.def.Length/2 - radius
	maxY := f.def.Width/2 - radius

	if x < -maxX {
		x = -maxX
	} else if x > maxX {
		x = maxX
	}

	if y < -maxY {
		y = -maxY
	} else if y > maxY {
		y = maxY
	}

	return vector.MakeVector2(x, y)
}

// BoundarySegments returns the four touch/goal lines, ordered west, east,
// south, north.
func (f *Field) BoundarySegments() []vector.Segment2 {
	halfLength := f.def.Length / 2.0
	halfWidth := f.def.Width / 2.0

	nw := vector.MakeVector2(-halfLength, halfWidth)
	ne := vector.MakeVector2(halfLength, halfWidth)
	sw := vector.MakeVector2(-halfLength, -halfWidth)
	se := vector.MakeVector2(halfLength, -halfWidth)

	return []vector.Segment2{
		vector.MakeSegment2(sw, nw),
		vector.MakeSegment2(se, ne),
		vector.MakeSegment2(sw, se),
		vector.MakeSegment2(nw, ne),
	}
}
