package config

import (
	"fmt"
	"os"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"gostraightskeleton/skeleton"
)

// Config is the job file of the demo.
//
//	log_file: skeleton.log
//	log_level: debug
//	skeleton:
//	  split_epsilon: 5e-6
//	jobs:
//	  - name: square
//	    wkt: POLYGON((0 0,2 0,2 2,0 2,0 0))
//	    outputs: {png: square.png, obj: square.obj}
type Config struct {
	LogFile      string         `yaml:"log_file"`
	LogLevel     string         `yaml:"log_level"`
	LogMaxSizeMB int            `yaml:"log_max_size_mb"`
	Skeleton     SkeletonConfig `yaml:"skeleton"`
	Jobs         []Job          `yaml:"jobs"`
}

type SkeletonConfig struct {
	SplitEpsilon          float64 `yaml:"split_epsilon"`
	MaxIterations         int     `yaml:"max_iterations"`
	AntiParallelThreshold float64 `yaml:"anti_parallel_threshold"`
}

type Job struct {
	Name        string  `yaml:"name"`
	WKT         string  `yaml:"wkt"`
	ImageWidth  int     `yaml:"image_width"`
	ImageHeight int     `yaml:"image_height"`
	Outputs     Outputs `yaml:"outputs"`
}

// Outputs are file paths, empty ones are skipped.
type Outputs struct {
	Bin   string `yaml:"bin"`
	Proto string `yaml:"proto"`
	WKT   string `yaml:"wkt"`
	PNG   string `yaml:"png"`
	OBJ   string `yaml:"obj"`
}

func (o Outputs) Empty() bool {
	return o == Outputs{}
}

func NewConfig() *Config {
	c := &Config{}
	c.Reset()
	return c
}

func (cfg *Config) Reset() {
	def := skeleton.DefaultConfig()
	cfg.LogLevel = "info"
	cfg.LogMaxSizeMB = 10
	cfg.Skeleton = SkeletonConfig{
		SplitEpsilon:          def.SplitEpsilon,
		MaxIterations:         def.MaxIterations,
		AntiParallelThreshold: def.AntiParallelThreshold,
	}
	cfg.Jobs = nil
}

// Parse reads a YAML job file on top of the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := NewConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	cfg.applyJobDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return Parse(data)
}

func (cfg *Config) applyJobDefaults() {
	for i := range cfg.Jobs {
		job := &cfg.Jobs[i]
		if job.Name == "" {
			job.Name = fmt.Sprintf("job%d", i)
		}
		if job.ImageWidth == 0 {
			job.ImageWidth = 800
		}
		if job.ImageHeight == 0 {
			job.ImageHeight = 600
		}
	}
}

func (cfg *Config) Validate() error {
	if _, err := zapcore.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("config: log_level: %w", err)
	}
	if err := cfg.SkeletonOptions().Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	for _, job := range cfg.Jobs {
		if job.WKT == "" {
			return fmt.Errorf("config: job %q has no wkt", job.Name)
		}
		if job.Outputs.Empty() {
			return fmt.Errorf("config: job %q has no outputs", job.Name)
		}
		if job.ImageWidth <= 0 || job.ImageHeight <= 0 {
			return fmt.Errorf("config: job %q has invalid image size", job.Name)
		}
	}
	return nil
}

func (cfg *Config) SkeletonOptions() skeleton.Config {
	return skeleton.Config{
		SplitEpsilon:          cfg.Skeleton.SplitEpsilon,
		MaxIterations:         cfg.Skeleton.MaxIterations,
		AntiParallelThreshold: cfg.Skeleton.AntiParallelThreshold,
	}
}

func (cfg *Config) Level() zapcore.Level {
	l, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return zapcore.InfoLevel
	}
	return l
}
