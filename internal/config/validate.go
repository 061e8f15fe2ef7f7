package config

import (
	"fmt"
	"net"
	"strings"

	"github.com/xtding233/sparkyrng/internal/logger"
)

// ValidateRaw checks semantic constraints of a Raw config and reports every
// violation at once.
func ValidateRaw(cfg Raw) error {
	var errs []string

	for _, a := range []struct{ key, addr string }{
		{"http_addr", cfg.HTTPAddr},
		{"grpc_addr", cfg.GRPCAddr},
		{"resp_addr", cfg.RESPAddr},
	} {
		if a.addr == "" {
			continue
		}
		if _, _, err := net.SplitHostPort(a.addr); err != nil {
			errs = append(errs, fmt.Sprintf("%s must be host:port, got %q", a.key, a.addr))
		}
	}

	if _, err := logger.ParseLevel(cfg.LogLevel); err != nil {
		errs = append(errs, "log_level must be one of: trace, debug, info, warn, error, silent")
	}
	switch strings.ToLower(cfg.LogFormat) {
	case "", "console", "json":
	default:
		errs = append(errs, "log_format must be one of: console, json")
	}

	if cfg.Seed != nil && len(cfg.SeedSequence) > 0 {
		errs = append(errs, "seed and seed_sequence are mutually exclusive")
	}
	if cfg.ReloadInterval != nil && *cfg.ReloadInterval < 0 {
		errs = append(errs, "reload_interval must be >= 0")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// Normalize validates cfg and fills in defaults.
func Normalize(cfg Raw) (Config, error) {
	if err := ValidateRaw(cfg); err != nil {
		return Config{}, err
	}
	out := Config{
		HTTPAddr:     cfg.HTTPAddr,
		GRPCAddr:     cfg.GRPCAddr,
		RESPAddr:     cfg.RESPAddr,
		LogLevel:     strings.ToLower(cfg.LogLevel),
		LogFormat:    strings.ToLower(cfg.LogFormat),
		Seed:         cfg.Seed,
		SeedSequence: cfg.SeedSequence,
	}
	if out.HTTPAddr == "" {
		out.HTTPAddr = DefaultHTTPAddr
	}
	if out.LogLevel == "" {
		out.LogLevel = DefaultLogLevel
	}
	if out.LogFormat == "" {
		out.LogFormat = DefaultLogFormat
	}
	if cfg.ReloadInterval != nil {
		out.ReloadInterval = *cfg.ReloadInterval
	}
	return out, nil
}
