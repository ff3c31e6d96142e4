package config

import (
	"testing"

	"go.uber.org/zap/zapcore"

	"gostraightskeleton/skeleton"
)

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(`
log_level: debug
skeleton:
  max_iterations: 50
jobs:
  - wkt: POLYGON((0 0,2 0,2 2,0 2,0 0))
    outputs:
      png: square.png
  - name: rect
    wkt: POLYGON((0 0,4 0,4 2,0 2,0 0))
    image_width: 100
    outputs: {obj: rect.obj, bin: rect.bin}
`))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Level() != zapcore.DebugLevel {
		t.Errorf("level %v", cfg.Level())
	}
	opts := cfg.SkeletonOptions()
	if opts.MaxIterations != 50 || opts.SplitEpsilon != skeleton.DefaultSplitEpsilon {
		t.Errorf("skeleton options %+v", opts)
	}
	if len(cfg.Jobs) != 2 || cfg.Jobs[0].Name != "job0" || cfg.Jobs[1].Name != "rect" {
		t.Fatalf("jobs %+v", cfg.Jobs)
	}
	if cfg.Jobs[0].ImageWidth != 800 || cfg.Jobs[1].ImageWidth != 100 || cfg.Jobs[1].ImageHeight != 600 {
		t.Errorf("image defaults %+v", cfg.Jobs)
	}
	if cfg.Jobs[1].Outputs.OBJ != "rect.obj" || cfg.Jobs[1].Outputs.Bin != "rect.bin" {
		t.Errorf("outputs %+v", cfg.Jobs[1].Outputs)
	}
}

func TestParseErrors(t *testing.T) {
	for name, data := range map[string]string{
		"syntax":     "jobs: [",
		"level":      "log_level: loud",
		"epsilon":    "skeleton: {split_epsilon: -1}",
		"noWKT":      "jobs: [{outputs: {png: a.png}}]",
		"noOutputs":  "jobs: [{wkt: 'POLYGON((0 0,1 0,1 1,0 0))'}]",
		"badImgSize": "jobs: [{wkt: x, image_height: -5, outputs: {png: a.png}}]",
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse([]byte(data)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestDefaults(t *testing.T) {
	cfg := NewConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	if cfg.SkeletonOptions() != skeleton.DefaultConfig() {
		t.Error("defaults match the skeleton package")
	}
}
