package debug_utils

import (
	"fmt"
	"image/png"
	"io"
	"os"

	"gostraightskeleton/common"
	"gostraightskeleton/skeleton"
)

type DrawSkeletonFlags int

const (
	DRAW_FACES DrawSkeletonFlags = 1 << iota
	DRAW_INPUT_EDGES
	DRAW_SKELETON
	DRAW_POINTS
	DRAW_LABELS

	DRAW_ALL = DRAW_FACES | DRAW_INPUT_EDGES | DRAW_SKELETON | DRAW_POINTS | DRAW_LABELS
)

// skeletonBounds covers every face point.
func skeletonBounds(sk *skeleton.Skeleton) (common.Vec2, common.Vec2) {
	return common.Bounds(sk.Points())
}

// heightColor shades a point from ColorLow at 0 to ColorHigh at maxHeight.
func heightColor(h, maxHeight float64) Colorb {
	if maxHeight <= 0 {
		return ColorLow
	}
	u := common.Clamp(h/maxHeight, 0, 1)
	return DuLerpCol(ColorLow, ColorHigh, uint8(u*255))
}

func DuDebugDrawSkeleton(dd DuDebugDraw, sk *skeleton.Skeleton, flags DrawSkeletonFlags) {
	if dd == nil || sk == nil {
		return
	}

	if flags&DRAW_FACES != 0 {
		for i, e := range sk.Edges {
			DuDebugDrawPolygon(dd, e.Polygon, DuIntToCol(i+1, 96))
		}
	}
	if flags&DRAW_SKELETON != 0 {
		for _, e := range sk.Edges {
			DuDebugDrawPolyLine(dd, e.Polygon, ColorSkeleton, 1.5)
		}
	}
	if flags&DRAW_INPUT_EDGES != 0 {
		dd.Begin(DU_DRAW_LINES, 2.5)
		for _, e := range sk.Edges {
			dd.Vertex(e.Edge.Begin[0], e.Edge.Begin[1], ColorInputEdge)
			dd.Vertex(e.Edge.End[0], e.Edge.End[1], ColorInputEdge)
		}
		dd.End()
	}

	maxHeight := sk.MaxHeight()
	if flags&DRAW_POINTS != 0 {
		dd.Begin(DU_DRAW_POINTS, 5)
		for _, p := range sk.Points() {
			h, _ := sk.Height(p)
			dd.Vertex(p[0], p[1], heightColor(h, maxHeight))
		}
		dd.End()
	}
	if l, ok := dd.(DuDebugLabeler); ok && flags&DRAW_LABELS != 0 {
		for _, p := range sk.Points() {
			if h, _ := sk.Height(p); h > 0 {
				l.Label(p[0], p[1], fmt.Sprintf("%.2f", h), ColorLabel)
			}
		}
	}
}

// WriteSkeletonPNG renders the skeleton into a width x height PNG.
func WriteSkeletonPNG(w io.Writer, sk *skeleton.Skeleton, width, height int, flags DrawSkeletonFlags) error {
	bmin, bmax := skeletonBounds(sk)
	dd, err := NewImageDebugDraw(width, height, bmin, bmax)
	if err != nil {
		return err
	}
	DuDebugDrawSkeleton(dd, sk, flags)
	if err := png.Encode(w, dd.Image()); err != nil {
		return fmt.Errorf("debug_utils: encode png: %w", err)
	}
	return nil
}

func SaveSkeletonPNG(path string, sk *skeleton.Skeleton, width, height int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return WriteSkeletonPNG(f, sk, width, height, DRAW_ALL)
}
