package pitch

import (
	"math"

	"github.com/dhconnelly/rtreego"

	"github.com/CarrascoOlmedoDevs/zzockerrrrr/common/utils/vector"
)

// BoundaryKind discriminates the static geometry objects indexed for the
// boundary collision pass.
type BoundaryKind int

const (
	BoundaryTouchline BoundaryKind = iota
	BoundaryGoalLine
	BoundaryGoalMouth
)

type BoundaryObject struct {
	Kind    BoundaryKind
	Side    GoalSide // meaningful for goal lines and goal mouths
	Segment vector.Segment2

	bounds rtreego.Rect
}

/* implements rtreego.Spatial */
func (o *BoundaryObject) Bounds() rtreego.Rect {
	return o.bounds
}

// thickness given to degenerate (axis-aligned) segment bounding boxes so
// rtreego accepts them.
const flatBoundsPadding = 0.01

func makeBoundaryObject(kind BoundaryKind, side GoalSide, seg vector.Segment2) (*BoundaryObject, error) {
	ax, ay := seg.GetPointA().Get()
	bx, by := seg.GetPointB().Get()

	minX := math.Min(ax, bx) - flatBoundsPadding
	minY := math.Min(ay, by) - flatBoundsPadding
	lenX := math.Abs(bx-ax) + 2*flatBoundsPadding
	lenY := math.Abs(by-ay) + 2*flatBoundsPadding

	bounds, err := rtreego.NewRect(rtreego.Point{minX, minY}, []float64{lenX, lenY})
	if err != nil {
		return nil, err
	}

	return &BoundaryObject{
		Kind:    kind,
		Side:    side,
		Segment: seg,
		bounds:  bounds,
	}, nil
}

// staticIndex holds the immutable field geometry in an rtree, so the
// boundary pass only runs fine segment intersection against geometry
// overlapping the swept bounding box of a moving entity.
type staticIndex struct {
	rtree *rtreego.Rtree
}

func makeStaticIndex(field *Field) (*staticIndex, error) {
	rt := rtreego.NewTree(2, 4, 8)

	segments := field.BoundarySegments()
	kinds := []BoundaryKind{BoundaryGoalLine, BoundaryGoalLine, BoundaryTouchline, BoundaryTouchline}
	sides := []GoalSide{GoalWest, GoalEast, GoalWest, GoalEast}

	for i, seg := range segments {
		obj, err := makeBoundaryObject(kinds[i], sides[i], seg)
		if err != nil {
			return nil, err
		}
		rt.Insert(obj)
	}

	for _, goal := range field.Goals() {
		obj, err := makeBoundaryObject(BoundaryGoalMouth, goal.Side, goal.Mouth)
		if err != nil {
			return nil, err
		}
		rt.Insert(obj)
	}

	return &staticIndex{rtree: rt}, nil
}

// SearchSweep returns the static geometry overlapping the bounding box of a
// circle of the given radius swept from a to b.
func (f *Field) SearchSweep(a vector.Vector2, b vector.Vector2, radius float64) []*BoundaryObject {
	ax, ay := a.Get()
	bx, by := b.Get()

	minX := math.Min(ax, bx) - radius
	minY := math.Min(ay, by) - radius
	lenX := math.Abs(bx-ax) + 2*radius
	lenY := math.Abs(by-ay) + 2*radius

	region, err := rtreego.NewRect(rtreego.Point{minX, minY}, []float64{lenX, lenY})
	if err != nil {
		return nil
	}

	matches := f.index.rtree.SearchIntersect(region)

	objects := make([]*BoundaryObject, 0, len(matches))
	for _, match := range matches {
		objects = append(objects, match.(*BoundaryObject))
	}

	return objects
}
