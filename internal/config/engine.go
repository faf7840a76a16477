package config

// EngineConfig bounds the fixpoint and proof engine.
type EngineConfig struct {
	// Upper bound on the length of the descending chain from top; 0 keeps
	// the default.
	MaxIterations int `yaml:"max_iterations"`

	// Alias unfoldings allowed while resolving a symmetry witness; 0 keeps
	// the default.
	SymmetryDepth int `yaml:"symmetry_depth"`
}
