package skeleton

import "gostraightskeleton/common"

// EdgeSegment is an input edge of the polygon.
type EdgeSegment struct {
	Begin, End common.Vec2
}

// EdgeResult is the face swept by one input edge. Polygon is open and starts
// at one of the edge end points.
type EdgeResult struct {
	Edge    EdgeSegment
	Polygon []common.Vec2
}

// Skeleton is the result of a build.
type Skeleton struct {
	Edges []EdgeResult
	// Distances maps every face point to the offset at which the wavefront
	// reached it. Input points are at 0.
	Distances map[common.Vec2]float64

	order []common.Vec2
}

func newSkeleton() *Skeleton {
	return &Skeleton{Distances: make(map[common.Vec2]float64)}
}

// addDistance keeps the first recorded distance of a point.
func (s *Skeleton) addDistance(p common.Vec2, distance float64) {
	if _, ok := s.Distances[p]; ok {
		return
	}
	s.Distances[p] = distance
	s.order = append(s.order, p)
}

// Points returns the distinct face points in the order they were found.
func (s *Skeleton) Points() []common.Vec2 {
	return common.CopyRing(s.order)
}

// Height is the distance of p, false when p is not a skeleton point.
func (s *Skeleton) Height(p common.Vec2) (float64, bool) {
	d, ok := s.Distances[p]
	return d, ok
}

// MaxHeight returns the largest distance of the skeleton.
func (s *Skeleton) MaxHeight() float64 {
	ret := 0.0
	for _, p := range s.order {
		ret = max(ret, s.Distances[p])
	}
	return ret
}
