package debug_utils

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"gostraightskeleton/common"
	"gostraightskeleton/common/rw"
	"gostraightskeleton/skeleton"
)

// DuDumpSkeletonToObj writes the faces as an OBJ mesh. Face points are lifted
// to their distance, which is the y axis of the OBJ file.
func DuDumpSkeletonToObj(sk *skeleton.Skeleton, w *rw.ReaderWriter) error {
	if w == nil {
		common.Logger().Info("DuDumpSkeletonToObj: input IO is null")
		return errors.New("debug_utils: nil writer")
	}

	w.WriteString("# Straight skeleton\n")
	w.WriteString("o Skeleton\n")
	w.WriteString("\n")

	index := make(map[common.Vec2]int, len(sk.Distances))
	for i, p := range sk.Points() {
		index[p] = i + 1
		h, _ := sk.Height(p)
		w.WriteString(fmt.Sprintf("v %f %f %f\n", p[0], h, -p[1]))
	}

	w.WriteString("\n")

	faces := 0
	for i, e := range sk.Edges {
		line := "f"
		for _, p := range e.Polygon {
			idx, ok := index[p]
			if !ok {
				return fmt.Errorf("debug_utils: face %d point %v has no distance", i, p)
			}
			line += fmt.Sprintf(" %d", idx)
		}
		w.WriteString(line + "\n")
		faces++
	}
	common.Logger().Debug("skeleton dumped to obj", zap.Int("vertices", len(index)), zap.Int("faces", faces))
	return nil
}
