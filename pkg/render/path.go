package render

import "math"

// SegmentKind identifies a path command.
type SegmentKind int

const (
	SegMoveTo SegmentKind = iota
	SegLineTo
	SegQuadTo
	SegClose
)

// Segment is a single path command. CX/CY hold the control point of a quadratic.
type Segment struct {
	Kind   SegmentKind
	X, Y   float64
	CX, CY float64
}

// Point is a 2D position in surface space.
type Point struct {
	X, Y float64
}

// arcTolerance is the maximum distance in pixels between a flattened arc and the true circle.
const arcTolerance = 0.25

// Path is a backend independent outline made of lines and quadratic curves.
// Arcs are flattened into line segments when they are added, so backends only
// need MoveTo, LineTo, QuadTo and Close.
type Path struct {
	segs     []Segment
	cur      Point
	start    Point
	hasPoint bool
	reopen   bool
}

// NewPath returns an empty path.
func NewPath() *Path {
	return &Path{}
}

// Segments returns the recorded commands.
func (p *Path) Segments() []Segment {
	return p.segs
}

// Empty reports whether nothing has been recorded.
func (p *Path) Empty() bool {
	return len(p.segs) == 0
}

// MoveTo starts a new sub-path at (x, y).
func (p *Path) MoveTo(x, y float64) {
	p.segs = append(p.segs, Segment{Kind: SegMoveTo, X: x, Y: y})
	p.cur = Point{x, y}
	p.start = p.cur
	p.hasPoint = true
	p.reopen = false
}

// resume starts a new sub-path at the previous start point after Close.
func (p *Path) resume() {
	if p.reopen {
		p.MoveTo(p.start.X, p.start.Y)
	}
}

// LineTo adds a straight segment. Without a current point it behaves like MoveTo.
func (p *Path) LineTo(x, y float64) {
	if !p.hasPoint {
		p.MoveTo(x, y)
		return
	}
	p.resume()
	p.segs = append(p.segs, Segment{Kind: SegLineTo, X: x, Y: y})
	p.cur = Point{x, y}
}

// QuadTo adds a quadratic Bézier segment with control point (cx, cy).
func (p *Path) QuadTo(cx, cy, x, y float64) {
	if !p.hasPoint {
		p.MoveTo(cx, cy)
	}
	p.resume()
	p.segs = append(p.segs, Segment{Kind: SegQuadTo, CX: cx, CY: cy, X: x, Y: y})
	p.cur = Point{x, y}
}

// Close closes the current sub-path.
func (p *Path) Close() {
	if !p.hasPoint {
		return
	}
	p.segs = append(p.segs, Segment{Kind: SegClose})
	p.cur = p.start
	p.reopen = true
}

// Rect adds a closed rectangle.
func (p *Path) Rect(x, y, w, h float64) {
	p.MoveTo(x, y)
	p.LineTo(x+w, y)
	p.LineTo(x+w, y+h)
	p.LineTo(x, y+h)
	p.Close()
}

// Arc adds a circular arc around (cx, cy) from angle start to end in radians.
// Angles grow clockwise on screen; ccw reverses the sweep direction. A line is
// added from the current point to the start of the arc.
func (p *Path) Arc(cx, cy, r, start, end float64, ccw bool) {
	sweep := arcSweep(start, end, ccw)
	p.LineTo(cx+r*math.Cos(start), cy+r*math.Sin(start))
	p.arc(cx, cy, r, start, sweep)
}

// Circle adds a full closed circle.
func (p *Path) Circle(cx, cy, r float64) {
	p.MoveTo(cx+r, cy)
	p.arc(cx, cy, r, 0, 2*math.Pi)
	p.Close()
}

// ArcTo adds a line towards (x1, y1) that turns into an arc of radius r tangent to
// both the line from the current point to (x1, y1) and the line from (x1, y1) to (x2, y2).
func (p *Path) ArcTo(x1, y1, x2, y2, r float64) {
	if !p.hasPoint {
		p.MoveTo(x1, y1)
		return
	}
	x0, y0 := p.cur.X, p.cur.Y
	v1x, v1y := x0-x1, y0-y1
	v2x, v2y := x2-x1, y2-y1
	l1 := math.Hypot(v1x, v1y)
	l2 := math.Hypot(v2x, v2y)
	cross := v1x*v2y - v1y*v2x
	if r <= 0 || l1 == 0 || l2 == 0 || math.Abs(cross) < 1e-9 {
		p.LineTo(x1, y1)
		return
	}
	v1x, v1y = v1x/l1, v1y/l1
	v2x, v2y = v2x/l2, v2y/l2

	theta := math.Acos(clampUnit(v1x*v2x + v1y*v2y))
	d := r / math.Tan(theta/2)
	t1x, t1y := x1+v1x*d, y1+v1y*d
	t2x, t2y := x1+v2x*d, y1+v2y*d

	bx, by := v1x+v2x, v1y+v2y
	bl := math.Hypot(bx, by)
	h := r / math.Sin(theta/2)
	cx, cy := x1+bx/bl*h, y1+by/bl*h

	a0 := math.Atan2(t1y-cy, t1x-cx)
	a1 := math.Atan2(t2y-cy, t2x-cx)
	sweep := a1 - a0
	for sweep > math.Pi {
		sweep -= 2 * math.Pi
	}
	for sweep < -math.Pi {
		sweep += 2 * math.Pi
	}

	p.LineTo(t1x, t1y)
	p.arc(cx, cy, r, a0, sweep)
}

func (p *Path) arc(cx, cy, r, start, sweep float64) {
	n := arcSteps(r, sweep)
	for i := 1; i <= n; i++ {
		a := start + sweep*float64(i)/float64(n)
		p.LineTo(cx+r*math.Cos(a), cy+r*math.Sin(a))
	}
}

// Flatten converts the path into polylines, one per sub-path. Quadratic curves are
// subdivided into steps segments. closed reports whether each polyline was closed.
func (p *Path) Flatten(steps int) (polys [][]Point, closed []bool) {
	if steps < 1 {
		steps = 1
	}
	var cur []Point
	flush := func(c bool) {
		if len(cur) > 1 {
			polys = append(polys, cur)
			closed = append(closed, c)
		}
		cur = nil
	}
	var last Point
	for _, s := range p.segs {
		switch s.Kind {
		case SegMoveTo:
			flush(false)
			last = Point{s.X, s.Y}
			cur = []Point{last}
		case SegLineTo:
			last = Point{s.X, s.Y}
			cur = append(cur, last)
		case SegQuadTo:
			for i := 1; i <= steps; i++ {
				t := float64(i) / float64(steps)
				mt := 1 - t
				x := mt*mt*last.X + 2*mt*t*s.CX + t*t*s.X
				y := mt*mt*last.Y + 2*mt*t*s.CY + t*t*s.Y
				cur = append(cur, Point{x, y})
			}
			last = Point{s.X, s.Y}
		case SegClose:
			if len(cur) > 0 {
				start := cur[0]
				flush(true)
				last = start
				cur = []Point{start}
			}
		}
	}
	flush(false)
	return polys, closed
}

// Bounds returns the bounding box of all path vertices and control points.
func (p *Path) Bounds() (minX, minY, maxX, maxY float64) {
	if len(p.segs) == 0 {
		return 0, 0, 0, 0
	}
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	grow := func(x, y float64) {
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}
	for _, s := range p.segs {
		switch s.Kind {
		case SegMoveTo, SegLineTo:
			grow(s.X, s.Y)
		case SegQuadTo:
			grow(s.CX, s.CY)
			grow(s.X, s.Y)
		}
	}
	return minX, minY, maxX, maxY
}

func arcSweep(start, end float64, ccw bool) float64 {
	sweep := end - start
	if !ccw {
		if sweep >= 2*math.Pi {
			return 2 * math.Pi
		}
		for sweep < 0 {
			sweep += 2 * math.Pi
		}
		return sweep
	}
	if sweep <= -2*math.Pi {
		return -2 * math.Pi
	}
	for sweep > 0 {
		sweep -= 2 * math.Pi
	}
	return sweep
}

func arcSteps(r, sweep float64) int {
	step := math.Pi / 2
	if r > arcTolerance {
		step = math.Min(step, 2*math.Acos(1-arcTolerance/r))
	}
	n := int(math.Ceil(math.Abs(sweep) / step))
	if n < 1 {
		n = 1
	}
	return n
}

func clampUnit(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}
