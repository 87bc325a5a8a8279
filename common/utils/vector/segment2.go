package vector

type Segment2 struct {
	a Vector2
	b Vector2
}

func MakeSegment2(a Vector2, b Vector2) Segment2 {
	return Segment2{a, b}
}

func (s Segment2) Get() (Vector2, Vector2) {
	return s.a, s.b
}

func (s Segment2) GetPointA() Vector2 {
	return s.a
}

func (s Segment2) GetPointB() Vector2 {
	return s.b
}

func (s Segment2) Center() Vector2 {
	return s.a.Add(s.b).MultScalar(0.5)
}

func (s Segment2) Length() float64 {
	return s.b.Sub(s.a).Mag()
}

// ClosestPointTo returns the point of the segment nearest to p.
func (s Segment2) ClosestPointTo(p Vector2) Vector2 {
	ab := s.b.Sub(s.a)
	den := ab.MagSq()
	if den == 0 {
		return s.a
	}

	t := p.Sub(s.a).Dot(ab) / den
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}

	return s.a.Add(ab.MultScalar(t))
}
