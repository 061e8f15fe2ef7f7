package config

import "time"

// Raw mirrors config.yaml. Pointer fields distinguish unset from zero.
type Raw struct {
	HTTPAddr       string         `yaml:"http_addr,omitempty"`
	GRPCAddr       string         `yaml:"grpc_addr,omitempty"`
	RESPAddr       string         `yaml:"resp_addr,omitempty"`
	LogLevel       string         `yaml:"log_level,omitempty"`
	LogFormat      string         `yaml:"log_format,omitempty"`
	Seed           *uint64        `yaml:"seed,omitempty"`
	SeedSequence   []uint64       `yaml:"seed_sequence,omitempty"`
	ReloadInterval *time.Duration `yaml:"reload_interval,omitempty"`
}

// Config is a validated Raw with defaults applied.
type Config struct {
	HTTPAddr       string
	GRPCAddr       string // empty disables the gRPC listener
	RESPAddr       string // empty disables the RESP listener
	LogLevel       string
	LogFormat      string
	Seed           *uint64
	SeedSequence   []uint64
	ReloadInterval time.Duration // 0 disables hot reload
}

const (
	DefaultHTTPAddr  = ":8080"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "console"
)

// SeedSource tells where SeedMaterial took its words from.
type SeedSource string

const (
	FromSeed     SeedSource = "seed"
	FromSequence SeedSource = "seed_sequence"
	FromEntropy  SeedSource = "entropy"
)

// SeedMaterial picks seed, then seed_sequence, then gather. A single seed is
// returned as a one-element sequence, which seeds identically.
func (c Config) SeedMaterial(gather func() ([]uint64, error)) ([]uint64, SeedSource, error) {
	switch {
	case c.Seed != nil:
		return []uint64{*c.Seed}, FromSeed, nil
	case len(c.SeedSequence) > 0:
		return append([]uint64(nil), c.SeedSequence...), FromSequence, nil
	}
	material, err := gather()
	if err != nil {
		return nil, FromEntropy, err
	}
	return material, FromEntropy, nil
}
