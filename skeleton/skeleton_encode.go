package skeleton

import (
	"errors"
	"fmt"

	"github.com/peterstace/simplefeatures/geom"
	"google.golang.org/protobuf/types/known/structpb"

	"gostraightskeleton/common"
	"gostraightskeleton/common/message"
	"gostraightskeleton/common/rw"
)

const (
	SKELETON_MAGIC   = 'S'<<24 | 'K'<<16 | 'E'<<8 | 'L'
	SKELETON_VERSION = 1
)

var ErrWrongMagic = errors.New("skeleton: wrong magic number")
var ErrWrongVersion = errors.New("skeleton: wrong version number")

// ToBin serializes the skeleton into a little-endian binary blob.
//
// Layout:
//
//	magic, version, edge count (int32)
//	per edge: begin, end (2 x float64 each), point count (int32), points
//	distance count (int32), per point: x, y, distance (float64)
func (s *Skeleton) ToBin() []byte {
	w := rw.NewBinWriter()
	w.WriteInt32(SKELETON_MAGIC)
	w.WriteInt32(SKELETON_VERSION)
	w.WriteInt32(len(s.Edges))
	for _, e := range s.Edges {
		w.WriteFloat64s([]float64{e.Edge.Begin[0], e.Edge.Begin[1], e.Edge.End[0], e.Edge.End[1]})
		w.WriteInt32(len(e.Polygon))
		w.WriteFloat64s(common.FlattenVec2(e.Polygon))
	}
	w.WriteInt32(len(s.order))
	for _, p := range s.order {
		w.WriteFloat64s([]float64{p[0], p[1], s.Distances[p]})
	}
	return w.GetWriteBytes()
}

func FromBin(data []byte) (*Skeleton, error) {
	r := newBinReader(data)
	if magic := r.ReadInt32(); r.Err() == nil && magic != SKELETON_MAGIC {
		return nil, ErrWrongMagic
	}
	if version := r.ReadInt32(); r.Err() == nil && version != SKELETON_VERSION {
		return nil, fmt.Errorf("%w: %d", ErrWrongVersion, version)
	}

	s := newSkeleton()
	edgeCount := r.readCount()
	for i := 0; i < edgeCount && r.Err() == nil; i++ {
		ends := make([]float64, 4)
		r.ReadFloat64s(ends)
		pointCount := r.readCount()
		values := make([]float64, 2*pointCount)
		r.ReadFloat64s(values)
		s.Edges = append(s.Edges, EdgeResult{
			Edge:    EdgeSegment{Begin: common.Vec2{ends[0], ends[1]}, End: common.Vec2{ends[2], ends[3]}},
			Polygon: common.UnflattenVec2(values),
		})
	}
	distanceCount := r.readCount()
	for i := 0; i < distanceCount && r.Err() == nil; i++ {
		values := make([]float64, 3)
		r.ReadFloat64s(values)
		s.addDistance(common.Vec2{values[0], values[1]}, values[2])
	}
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("skeleton: decode binary: %w", err)
	}
	return s, nil
}

// binReader rejects counts that can't fit in the remaining data.
type binReader struct {
	*rw.ReaderWriter
	err error
}

func newBinReader(data []byte) *binReader {
	return &binReader{ReaderWriter: rw.NewBinReader(data)}
}

func (r *binReader) Err() error {
	if r.err != nil {
		return r.err
	}
	return r.ReaderWriter.Err()
}

func (r *binReader) readCount() int {
	n := int(r.ReadInt32())
	if r.Err() != nil {
		return 0
	}
	if n < 0 || n*8 > r.Size() {
		r.err = fmt.Errorf("count %d exceeds remaining %d bytes", n, r.Size())
		return 0
	}
	return n
}

// ToProto converts the skeleton into a protobuf Struct:
//
//	{"version": 1,
//	 "edges": [{"begin": [x, y], "end": [x, y], "polygon": [x0, y0, ...]}],
//	 "distances": [x0, y0, d0, ...]}
func (s *Skeleton) ToProto() (*structpb.Struct, error) {
	edges := make([]interface{}, 0, len(s.Edges))
	for _, e := range s.Edges {
		edges = append(edges, map[string]interface{}{
			"begin":   float64sToList(e.Edge.Begin[:]),
			"end":     float64sToList(e.Edge.End[:]),
			"polygon": float64sToList(common.FlattenVec2(e.Polygon)),
		})
	}
	distances := make([]float64, 0, 3*len(s.order))
	for _, p := range s.order {
		distances = append(distances, p[0], p[1], s.Distances[p])
	}
	st, err := structpb.NewStruct(map[string]interface{}{
		"version":   SKELETON_VERSION,
		"edges":     edges,
		"distances": float64sToList(distances),
	})
	if err != nil {
		return nil, fmt.Errorf("skeleton: encode proto: %w", err)
	}
	return st, nil
}

func FromProto(st *structpb.Struct) (*Skeleton, error) {
	fields := st.GetFields()
	if v := fields["version"].GetNumberValue(); v != SKELETON_VERSION {
		return nil, fmt.Errorf("%w: %v", ErrWrongVersion, v)
	}

	s := newSkeleton()
	for i, ev := range fields["edges"].GetListValue().GetValues() {
		ef := ev.GetStructValue().GetFields()
		begin, err := listToFloat64s(ef["begin"], 2)
		if err != nil {
			return nil, fmt.Errorf("skeleton: decode proto edge %d begin: %w", i, err)
		}
		end, err := listToFloat64s(ef["end"], 2)
		if err != nil {
			return nil, fmt.Errorf("skeleton: decode proto edge %d end: %w", i, err)
		}
		polygon, err := listToFloat64s(ef["polygon"], -2)
		if err != nil {
			return nil, fmt.Errorf("skeleton: decode proto edge %d polygon: %w", i, err)
		}
		s.Edges = append(s.Edges, EdgeResult{
			Edge:    EdgeSegment{Begin: common.Vec2{begin[0], begin[1]}, End: common.Vec2{end[0], end[1]}},
			Polygon: common.UnflattenVec2(polygon),
		})
	}

	distances, err := listToFloat64s(fields["distances"], -3)
	if err != nil {
		return nil, fmt.Errorf("skeleton: decode proto distances: %w", err)
	}
	for i := 0; i < len(distances); i += 3 {
		s.addDistance(common.Vec2{distances[i], distances[i+1]}, distances[i+2])
	}
	return s, nil
}

// MarshalProto returns the wire bytes of ToProto.
func (s *Skeleton) MarshalProto() ([]byte, error) {
	st, err := s.ToProto()
	if err != nil {
		return nil, err
	}
	return message.Encode(st)
}

func UnmarshalProto(data []byte) (*Skeleton, error) {
	var st structpb.Struct
	if err := message.Decode(data, &st); err != nil {
		return nil, err
	}
	return FromProto(&st)
}

func float64sToList(values []float64) []interface{} {
	ret := make([]interface{}, len(values))
	for i, v := range values {
		ret[i] = v
	}
	return ret
}

// listToFloat64s reads a numeric list. A positive size is the exact length,
// a negative one the required multiple.
func listToFloat64s(v *structpb.Value, size int) ([]float64, error) {
	values := v.GetListValue().GetValues()
	if size > 0 && len(values) != size {
		return nil, fmt.Errorf("expected %d values, got %d", size, len(values))
	}
	if size < 0 && len(values)%(-size) != 0 {
		return nil, fmt.Errorf("expected a multiple of %d values, got %d", -size, len(values))
	}
	ret := make([]float64, len(values))
	for i, value := range values {
		n, ok := value.GetKind().(*structpb.Value_NumberValue)
		if !ok {
			return nil, fmt.Errorf("value %d is not a number", i)
		}
		ret[i] = n.NumberValue
	}
	return ret, nil
}

// ToWKT renders the faces as a GEOMETRYCOLLECTION of POLYGONs, in edge
// order. Faces share edges, so they can't form a valid MULTIPOLYGON.
func (s *Skeleton) ToWKT() (string, error) {
	geoms := make([]geom.Geometry, 0, len(s.Edges))
	for i, e := range s.Edges {
		ring, err := ringToLineString(e.Polygon)
		if err != nil {
			return "", fmt.Errorf("skeleton: face %d: %w", i, err)
		}
		poly, err := geom.NewPolygon([]geom.LineString{ring})
		if err != nil {
			return "", fmt.Errorf("skeleton: face %d: %w", i, err)
		}
		geoms = append(geoms, poly.AsGeometry())
	}
	return geom.NewGeometryCollection(geoms).AsText(), nil
}

func ringToLineString(ring []common.Vec2) (geom.LineString, error) {
	// faces may repeat a point where a split vertex and its clone meet
	closed := make([]common.Vec2, 0, len(ring)+1)
	for _, p := range ring {
		if len(closed) == 0 || closed[len(closed)-1] != p {
			closed = append(closed, p)
		}
	}
	if len(closed) > 1 && closed[0] == closed[len(closed)-1] {
		closed = closed[:len(closed)-1]
	}
	if len(closed) < 3 {
		return geom.LineString{}, fmt.Errorf("ring has %d distinct points", len(closed))
	}
	closed = append(closed, closed[0])
	return geom.NewLineString(geom.NewSequence(common.FlattenVec2(closed), geom.DimXY))
}

// PolygonFromWKT parses a WKT POLYGON into an open outer ring and open hole
// rings ready for BuildWithHoles.
func PolygonFromWKT(wkt string) ([]common.Vec2, [][]common.Vec2, error) {
	g, err := geom.UnmarshalWKT(wkt)
	if err != nil {
		return nil, nil, fmt.Errorf("skeleton: parse wkt: %w", err)
	}
	poly, ok := g.AsPolygon()
	if !ok {
		return nil, nil, &BuildError{Kind: ErrInvalidPolygon, Op: "PolygonFromWKT", Msg: fmt.Sprintf("expected Polygon, got %v", g.Type())}
	}
	if poly.IsEmpty() {
		return nil, nil, &BuildError{Kind: ErrInvalidPolygon, Op: "PolygonFromWKT", Msg: "empty polygon"}
	}
	outer := openRing(poly.ExteriorRing())
	holes := make([][]common.Vec2, 0, poly.NumInteriorRings())
	for i := 0; i < poly.NumInteriorRings(); i++ {
		holes = append(holes, openRing(poly.InteriorRingN(i)))
	}
	return outer, holes, nil
}

// openRing drops the closing point of a WKT ring.
func openRing(ls geom.LineString) []common.Vec2 {
	seq := ls.Coordinates()
	n := seq.Length()
	if n > 1 && seq.GetXY(0) == seq.GetXY(n-1) {
		n--
	}
	ret := make([]common.Vec2, n)
	for i := 0; i < n; i++ {
		xy := seq.GetXY(i)
		ret[i] = common.Vec2{xy.X, xy.Y}
	}
	return ret
}
