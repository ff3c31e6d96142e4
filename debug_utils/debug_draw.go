package debug_utils

import (
	"math"

	"gostraightskeleton/common"
)

type DuDebugDrawPrimitives int

const (
	DU_DRAW_POINTS DuDebugDrawPrimitives = iota
	DU_DRAW_LINES
	DU_DRAW_TRIS
	// vertices between Begin and End form one closed polygon
	DU_DRAW_POLY
)

// DuDebugDraw receives flat drawing primitives in world units.
type DuDebugDraw interface {
	/// Begin drawing primitives.
	///  @param prim [in] primitive type to draw, one of DuDebugDrawPrimitives.
	///  @param size [in] size of a primitive, applies to point size and line width only.
	Begin(prim DuDebugDrawPrimitives, size ...float64)

	/// Submit a vertex
	///  @param x,y [in] position of the vertex.
	///  @param color [in] color of the vertex.
	Vertex(x, y float64, color Colorb)

	/// End drawing primitives.
	End()
}

// DuDebugLabeler is implemented by backends able to render text.
type DuDebugLabeler interface {
	Label(x, y float64, text string, color Colorb)
}

// DuDisplayList records primitives and replays them on another DuDebugDraw.
type DuDisplayList struct {
	m_pos   []common.Vec2
	m_color []Colorb

	m_prim     DuDebugDrawPrimitives
	m_primSize float64
}

func NewDuDisplayList(cap int) *DuDisplayList {
	if cap < 8 {
		cap = 8
	}
	return &DuDisplayList{
		m_pos:      make([]common.Vec2, 0, cap),
		m_color:    make([]Colorb, 0, cap),
		m_prim:     DU_DRAW_LINES,
		m_primSize: 1.0,
	}
}

func (d *DuDisplayList) Begin(prim DuDebugDrawPrimitives, size ...float64) {
	d.m_pos = d.m_pos[:0]
	d.m_color = d.m_color[:0]
	d.m_prim = prim
	d.m_primSize = 1.0
	if len(size) > 0 {
		d.m_primSize = size[0]
	}
}

func (d *DuDisplayList) Vertex(x, y float64, color Colorb) {
	d.m_pos = append(d.m_pos, common.Vec2{x, y})
	d.m_color = append(d.m_color, color)
}

func (d *DuDisplayList) End() {}

func (d *DuDisplayList) Size() int { return len(d.m_pos) }

func (d *DuDisplayList) Draw(dd DuDebugDraw) {
	if dd == nil || len(d.m_pos) == 0 {
		return
	}
	dd.Begin(d.m_prim, d.m_primSize)
	for i, p := range d.m_pos {
		dd.Vertex(p[0], p[1], d.m_color[i])
	}
	dd.End()
}

func DuAppendCircle(dd DuDebugDraw, x, y, r float64, col Colorb) {
	const NUM_SEG = 40
	var dir [NUM_SEG * 2]float64
	for i := 0; i < NUM_SEG; i++ {
		a := float64(i) / NUM_SEG * math.Pi * 2
		dir[i*2] = math.Cos(a)
		dir[i*2+1] = math.Sin(a)
	}
	for i, j := 0, NUM_SEG-1; i < NUM_SEG; j, i = i, i+1 {
		dd.Vertex(x+dir[j*2+0]*r, y+dir[j*2+1]*r, col)
		dd.Vertex(x+dir[i*2+0]*r, y+dir[i*2+1]*r, col)
	}
}

func DuAppendCross(dd DuDebugDraw, x, y, s float64, col Colorb) {
	dd.Vertex(x-s, y, col)
	dd.Vertex(x+s, y, col)
	dd.Vertex(x, y-s, col)
	dd.Vertex(x, y+s, col)
}

func DuDebugDrawCircle(dd DuDebugDraw, x, y, r float64, col Colorb, lineWidth float64) {
	if dd == nil {
		return
	}
	dd.Begin(DU_DRAW_LINES, lineWidth)
	DuAppendCircle(dd, x, y, r, col)
	dd.End()
}

func DuDebugDrawCross(dd DuDebugDraw, x, y, size float64, col Colorb, lineWidth float64) {
	if dd == nil {
		return
	}
	dd.Begin(DU_DRAW_LINES, lineWidth)
	DuAppendCross(dd, x, y, size, col)
	dd.End()
}

// DuDebugDrawPolyLine draws the closed outline of a ring.
func DuDebugDrawPolyLine(dd DuDebugDraw, ring []common.Vec2, col Colorb, lineWidth float64) {
	if dd == nil || len(ring) < 2 {
		return
	}
	dd.Begin(DU_DRAW_LINES, lineWidth)
	for i, j := 0, len(ring)-1; i < len(ring); j, i = i, i+1 {
		dd.Vertex(ring[j][0], ring[j][1], col)
		dd.Vertex(ring[i][0], ring[i][1], col)
	}
	dd.End()
}

func DuDebugDrawPolygon(dd DuDebugDraw, ring []common.Vec2, col Colorb) {
	if dd == nil || len(ring) < 3 {
		return
	}
	dd.Begin(DU_DRAW_POLY)
	for _, p := range ring {
		dd.Vertex(p[0], p[1], col)
	}
	dd.End()
}
