package main

import (
	"os"
	"path/filepath"
	"testing"
)

func assertTrue(t *testing.T, value bool, msg string) {
	t.Helper()
	if !value {
		t.Fatal(msg)
	}
}

func TestLoadConfigFlags(t *testing.T) {
	_, err := loadConfig("jobs.yaml", "POLYGON((0 0,1 0,1 1,0 0))", "x")
	assertTrue(t, err != nil, "config and wkt together")
	_, err = loadConfig("", "", "x")
	assertTrue(t, err != nil, "no input")

	cfg, err := loadConfig("", "POLYGON((0 0,1 0,1 1,0 0))", "x")
	assertTrue(t, err == nil, "wkt job")
	assertTrue(t, len(cfg.Jobs) == 1 && cfg.Jobs[0].Name == "x", "one named job")
	o := cfg.Jobs[0].Outputs
	assertTrue(t, o.Bin == "x.bin" && o.Proto == "x.pb" && o.WKT == "x.wkt" && o.PNG == "x.png" && o.OBJ == "x.obj", "output names")
}

func TestRunExitCode(t *testing.T) {
	assertTrue(t, run(nil) == 2, "usage error")
	assertTrue(t, run([]string{"-undefined-flag"}) == 2, "bad flag")

	dir := t.TempDir()
	out := filepath.Join(dir, "square")
	code := run([]string{"-wkt", "POLYGON((0 0,4 0,4 4,0 4,0 0))", "-out", out, "-log-file", filepath.Join(dir, "demo.log")})
	assertTrue(t, code == 0, "square builds")
	for _, ext := range []string{".bin", ".pb", ".wkt", ".png", ".obj"} {
		st, err := os.Stat(out + ext)
		assertTrue(t, err == nil && st.Size() > 0, "wrote "+ext)
	}
	_, err := os.Stat(filepath.Join(dir, "demo.log"))
	assertTrue(t, err == nil, "log file flushed")

	code = run([]string{"-wkt", "POINT(1 1)", "-out", filepath.Join(dir, "point")})
	assertTrue(t, code == 1, "non polygon input fails the job")
}
