package skeleton

import "fmt"

const (
	DefaultSplitEpsilon          = 5e-6
	DefaultMaxIterations         = 10000
	DefaultAntiParallelThreshold = -0.97
)

// Config specifies a configuration to use when building a skeleton.
type Config struct {
	/// Tolerance used for every near-zero geometric decision: level
	/// clustering, point proximity and half-plane tests. [Limit: > 0] [Units: wu]
	SplitEpsilon float64

	/// Maximum number of processed levels before the build is aborted.
	/// [Limit: > 0]
	MaxIterations int

	/// Dot product of the two edge normals below which the edges around a
	/// new split vertex are treated as anti-parallel and its bisector
	/// direction is checked against the surrounding vertices.
	/// [Limits: -1 < value < 0]
	AntiParallelThreshold float64
}

func DefaultConfig() Config {
	return Config{
		SplitEpsilon:          DefaultSplitEpsilon,
		MaxIterations:         DefaultMaxIterations,
		AntiParallelThreshold: DefaultAntiParallelThreshold,
	}
}

func (c Config) Validate() error {
	if !(c.SplitEpsilon > 0) {
		return fmt.Errorf("skeleton: split epsilon must be positive, got %v", c.SplitEpsilon)
	}
	if c.MaxIterations <= 0 {
		return fmt.Errorf("skeleton: max iterations must be positive, got %d", c.MaxIterations)
	}
	if !(c.AntiParallelThreshold > -1 && c.AntiParallelThreshold < 0) {
		return fmt.Errorf("skeleton: anti-parallel threshold must be in (-1, 0), got %v", c.AntiParallelThreshold)
	}
	return nil
}

type Option func(*Config)

func WithSplitEpsilon(eps float64) Option {
	return func(c *Config) { c.SplitEpsilon = eps }
}

func WithMaxIterations(n int) Option {
	return func(c *Config) { c.MaxIterations = n }
}

func WithAntiParallelThreshold(t float64) Option {
	return func(c *Config) { c.AntiParallelThreshold = t }
}
