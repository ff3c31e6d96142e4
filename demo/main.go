package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/natefinch/lumberjack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"gostraightskeleton/common"
	"gostraightskeleton/common/rw"
	"gostraightskeleton/debug_utils"
	"gostraightskeleton/demo/config"
	"gostraightskeleton/skeleton"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run returns the process exit code: 2 for usage errors, 1 when any job fails.
func run(args []string) int {
	fs := flag.NewFlagSet("demo", flag.ContinueOnError)
	configPath := fs.String("config", "", "YAML job file")
	wkt := fs.String("wkt", "", "single WKT POLYGON to build")
	out := fs.String("out", "skeleton", "output prefix for -wkt, writes .bin .pb .wkt .png and .obj")
	logFile := fs.String("log-file", "", "rotating log file, overrides the job file")
	verbose := fs.Bool("v", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := loadConfig(*configPath, *wkt, *out)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		fs.Usage()
		return 2
	}
	if *logFile != "" {
		cfg.LogFile = *logFile
	}
	if *verbose {
		cfg.LogLevel = "debug"
	}

	logger := newLogger(cfg)
	defer logger.Sync()
	common.SetLogger(logger)

	failed := 0
	b := skeleton.NewBuilder(ptr(cfg.SkeletonOptions()))
	for _, job := range cfg.Jobs {
		if err := runJob(b, job); err != nil {
			logger.Error("job failed", zap.String("job", job.Name), zap.Error(err))
			failed++
		}
	}
	if failed > 0 {
		return 1
	}
	return 0
}

func ptr[T any](v T) *T { return &v }

func loadConfig(path, wkt, out string) (*config.Config, error) {
	switch {
	case path != "" && wkt != "":
		return nil, fmt.Errorf("use either -config or -wkt")
	case path != "":
		return config.Load(path)
	case wkt != "":
		cfg := config.NewConfig()
		cfg.Jobs = []config.Job{{
			Name:        out,
			WKT:         wkt,
			ImageWidth:  800,
			ImageHeight: 600,
			Outputs: config.Outputs{
				Bin:   out + ".bin",
				Proto: out + ".pb",
				WKT:   out + ".wkt",
				PNG:   out + ".png",
				OBJ:   out + ".obj",
			},
		}}
		return cfg, cfg.Validate()
	}
	return nil, fmt.Errorf("nothing to do")
}

// newLogger logs to the console and, with a log file, to a rotating file.
func newLogger(cfg *config.Config) *zap.Logger {
	level := zap.NewAtomicLevelAt(cfg.Level())
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.Lock(os.Stderr), level),
	}
	if cfg.LogFile != "" {
		w := zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    cfg.LogMaxSizeMB,
			MaxBackups: 3,
			MaxAge:     28,
		})
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), w, level))
	}
	return zap.New(zapcore.NewTee(cores...))
}

func runJob(b *skeleton.Builder, job config.Job) error {
	outer, holes, err := skeleton.PolygonFromWKT(job.WKT)
	if err != nil {
		return err
	}
	start := time.Now()
	sk, err := b.Build(outer, holes)
	if err != nil {
		return err
	}
	stats := b.Stats()
	common.Logger().Info("job built",
		zap.String("job", job.Name),
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("faces", len(sk.Edges)),
		zap.Float64("max_height", sk.MaxHeight()),
		zap.Int("levels", stats.Levels),
		zap.Int("multi_split_events", stats.MultiSplitEvents),
		zap.Int("multi_edge_events", stats.MultiEdgeEvents),
		zap.Int("pick_events", stats.PickEvents))

	return writeOutputs(sk, job)
}

func writeOutputs(sk *skeleton.Skeleton, job config.Job) error {
	o := job.Outputs
	if o.Bin != "" {
		if err := os.WriteFile(o.Bin, sk.ToBin(), 0o644); err != nil {
			return err
		}
	}
	if o.Proto != "" {
		data, err := sk.MarshalProto()
		if err != nil {
			return err
		}
		if err := os.WriteFile(o.Proto, data, 0o644); err != nil {
			return err
		}
	}
	if o.WKT != "" {
		text, err := sk.ToWKT()
		if err != nil {
			return err
		}
		if err := os.WriteFile(o.WKT, []byte(text+"\n"), 0o644); err != nil {
			return err
		}
	}
	if o.PNG != "" {
		if err := debug_utils.SaveSkeletonPNG(o.PNG, sk, job.ImageWidth, job.ImageHeight); err != nil {
			return err
		}
	}
	if o.OBJ != "" {
		w := rw.NewBinWriter()
		if err := debug_utils.DuDumpSkeletonToObj(sk, w); err != nil {
			return err
		}
		if err := os.WriteFile(o.OBJ, w.GetWriteBytes(), 0o644); err != nil {
			return err
		}
	}
	common.Logger().Debug("outputs written", zap.String("job", job.Name))
	return nil
}
