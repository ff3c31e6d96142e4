package common

import "github.com/go-gl/mathgl/mgl64"

type Vec2 = mgl64.Vec2

type IT interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// FlattenVec2 packs points as x0,y0,x1,y1...
func FlattenVec2(points []Vec2) []float64 {
	ret := make([]float64, 0, len(points)*2)
	for _, p := range points {
		ret = append(ret, p[0], p[1])
	}
	return ret
}

// UnflattenVec2 is the inverse of FlattenVec2. A trailing odd value is ignored.
func UnflattenVec2(values []float64) []Vec2 {
	ret := make([]Vec2, 0, len(values)/2)
	for i := 0; i+1 < len(values); i += 2 {
		ret = append(ret, Vec2{values[i], values[i+1]})
	}
	return ret
}

func CopyRing(ring []Vec2) []Vec2 {
	ret := make([]Vec2, len(ring))
	copy(ret, ring)
	return ret
}

func CopyRings(rings [][]Vec2) [][]Vec2 {
	ret := make([][]Vec2, len(rings))
	for i, r := range rings {
		ret[i] = CopyRing(r)
	}
	return ret
}
