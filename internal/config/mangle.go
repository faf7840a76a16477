package config

// MangleConfig configures the Mangle oracle.
type MangleConfig struct {
	FactLimit    int    `yaml:"fact_limit"` // 0 disables the limit
	QueryTimeout string `yaml:"query_timeout"`
}
