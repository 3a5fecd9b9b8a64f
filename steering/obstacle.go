package steering

import (
	"math"

	"github.com/jakecoffman/cp"
)

const epsilon = 1e-9

// PolygonObstacle is a static solid polygon. Vertices are copied at
// construction and never change.
type PolygonObstacle struct {
	vertices []cp.Vector
	bb       cp.BB
	ccw      bool
}

func NewPolygonObstacle(vertices []cp.Vector) *PolygonObstacle {
	verts := append([]cp.Vector(nil), vertices...)
	o := &PolygonObstacle{vertices: verts}
	if len(verts) == 0 {
		return o
	}
	o.bb = cp.BB{L: verts[0].X, B: verts[0].Y, R: verts[0].X, T: verts[0].Y}
	for _, v := range verts[1:] {
		o.bb.L = math.Min(o.bb.L, v.X)
		o.bb.R = math.Max(o.bb.R, v.X)
		o.bb.B = math.Min(o.bb.B, v.Y)
		o.bb.T = math.Max(o.bb.T, v.Y)
	}
	o.ccw = signedArea(verts) >= 0
	return o
}

// NewBoxObstacle builds an axis-aligned rectangle centered at center.
func NewBoxObstacle(center cp.Vector, width, height float64) *PolygonObstacle {
	hw, hh := width/2, height/2
	return NewPolygonObstacle([]cp.Vector{
		{X: center.X - hw, Y: center.Y - hh},
		{X: center.X + hw, Y: center.Y - hh},
		{X: center.X + hw, Y: center.Y + hh},
		{X: center.X - hw, Y: center.Y + hh},
	})
}

// Vertices returns a copy of the outline.
func (o *PolygonObstacle) Vertices() []cp.Vector {
	return append([]cp.Vector(nil), o.vertices...)
}

func (o *PolygonObstacle) VertexCount() int {
	return len(o.vertices)
}

func (o *PolygonObstacle) BB() cp.BB {
	return o.bb
}

// Center is the middle of the bounding box.
func (o *PolygonObstacle) Center() cp.Vector {
	return cp.Vector{X: (o.bb.L + o.bb.R) / 2, Y: (o.bb.B + o.bb.T) / 2}
}

func (o *PolygonObstacle) edge(i int) (cp.Vector, cp.Vector) {
	return o.vertices[i], o.vertices[(i+1)%len(o.vertices)]
}

// Contains reports whether p lies strictly inside the polygon.
func (o *PolygonObstacle) Contains(p cp.Vector) bool {
	if len(o.vertices) < 3 || p.X < o.bb.L || p.X > o.bb.R || p.Y < o.bb.B || p.Y > o.bb.T {
		return false
	}
	inside := false
	for i := range o.vertices {
		a, b := o.edge(i)
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := a.X + (p.Y-a.Y)/(b.Y-a.Y)*(b.X-a.X)
			if p.X < x {
				inside = !inside
			}
		}
	}
	return inside
}

// ClosestToSegment returns the point of the outline nearest the segment
// p..q, the matching point on the segment, and their distance.
func (o *PolygonObstacle) ClosestToSegment(p, q cp.Vector) (onObstacle, onSegment cp.Vector, dist float64) {
	dist = math.Inf(1)
	for i := range o.vertices {
		a, b := o.edge(i)
		c1, c2 := closestPointsOnSegments(p, q, a, b)
		if d := c1.Distance(c2); d < dist {
			dist = d
			onSegment = c1
			onObstacle = c2
		}
	}
	return onObstacle, onSegment, dist
}

// Blocks reports whether the segment p..q passes through the polygon.
// Touching the outline does not block.
func (o *PolygonObstacle) Blocks(p, q cp.Vector) bool {
	if len(o.vertices) < 3 {
		return false
	}
	if math.Max(p.X, q.X) < o.bb.L || math.Min(p.X, q.X) > o.bb.R ||
		math.Max(p.Y, q.Y) < o.bb.B || math.Min(p.Y, q.Y) > o.bb.T {
		return false
	}
	for i := range o.vertices {
		a, b := o.edge(i)
		if segmentsCross(p, q, a, b) {
			return true
		}
	}
	for _, t := range []float64{0.25, 0.5, 0.75} {
		if o.Contains(p.Lerp(q, t)) {
			return true
		}
	}
	return false
}

// buffered returns the outline pushed outward by r at every vertex.
func (o *PolygonObstacle) buffered(r float64) []cp.Vector {
	n := len(o.vertices)
	out := make([]cp.Vector, 0, n)
	for i := range o.vertices {
		prev := o.vertices[(i+n-1)%n]
		cur := o.vertices[i]
		next := o.vertices[(i+1)%n]
		n1 := o.outwardNormal(prev, cur)
		n2 := o.outwardNormal(cur, next)
		miter := n1.Add(n2)
		if miter.LengthSq() < epsilon {
			miter = n1
		}
		miter = miter.Normalize()
		cos := math.Max(miter.Dot(n1), 0.2)
		out = append(out, cur.Add(miter.Mult(r/cos)))
	}
	return out
}

func (o *PolygonObstacle) outwardNormal(a, b cp.Vector) cp.Vector {
	d := b.Sub(a)
	n := cp.Vector{X: d.Y, Y: -d.X}
	if !o.ccw {
		n = n.Neg()
	}
	return n.Normalize()
}

func signedArea(verts []cp.Vector) float64 {
	var area float64
	for i := range verts {
		a := verts[i]
		b := verts[(i+1)%len(verts)]
		area += a.Cross(b)
	}
	return area / 2
}

func orientation(a, b, c cp.Vector) float64 {
	return b.Sub(a).Cross(c.Sub(a))
}

// segmentsCross reports a proper crossing: each segment's endpoints lie
// strictly on opposite sides of the other.
func segmentsCross(p1, p2, q1, q2 cp.Vector) bool {
	d1 := orientation(q1, q2, p1)
	d2 := orientation(q1, q2, p2)
	d3 := orientation(p1, p2, q1)
	d4 := orientation(p1, p2, q2)
	return ((d1 > epsilon && d2 < -epsilon) || (d1 < -epsilon && d2 > epsilon)) &&
		((d3 > epsilon && d4 < -epsilon) || (d3 < -epsilon && d4 > epsilon))
}

// closestPointsOnSegments returns the closest pair of points between the
// segments p1..q1 and p2..q2.
func closestPointsOnSegments(p1, q1, p2, q2 cp.Vector) (cp.Vector, cp.Vector) {
	d1 := q1.Sub(p1)
	d2 := q2.Sub(p2)
	r := p1.Sub(p2)
	a := d1.Dot(d1)
	e := d2.Dot(d2)
	f := d2.Dot(r)

	var s, t float64
	switch {
	case a <= epsilon && e <= epsilon:
		return p1, p2
	case a <= epsilon:
		t = clamp01(f / e)
	default:
		c := d1.Dot(r)
		if e <= epsilon {
			s = clamp01(-c / a)
		} else {
			b := d1.Dot(d2)
			denom := a*e - b*b
			if denom != 0 {
				s = clamp01((b*f - c*e) / denom)
			}
			t = (b*s + f) / e
			if t < 0 {
				t = 0
				s = clamp01(-c / a)
			} else if t > 1 {
				t = 1
				s = clamp01((b - c) / a)
			}
		}
	}
	return p1.Add(d1.Mult(s)), p2.Add(d2.Mult(t))
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
