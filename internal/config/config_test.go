package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoadMerged(t *testing.T) {
	dir := t.TempDir()
	defaults := writeFile(t, dir, "defaults.yaml", `
http_addr: 127.0.0.1:9000
grpc_addr: 127.0.0.1:9001
log_level: debug
seed_sequence: [1, 2, 3]
`)
	override := writeFile(t, dir, "config.yaml", `
http_addr: 127.0.0.1:9100
seed: 18914
reload_interval: 2s
`)
	cfg, err := NewLoader(defaults, override).Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.HTTPAddr != "127.0.0.1:9100" || cfg.GRPCAddr != "127.0.0.1:9001" {
		t.Fatalf("addresses not merged: %+v", cfg)
	}
	if cfg.LogLevel != "debug" || cfg.LogFormat != DefaultLogFormat {
		t.Fatalf("log settings: %+v", cfg)
	}
	if cfg.Seed == nil || *cfg.Seed != 18914 || cfg.SeedSequence != nil {
		t.Fatalf("override seed should replace default sequence: %+v", cfg)
	}
	if cfg.ReloadInterval != 2*time.Second {
		t.Fatalf("reload interval: got %v", cfg.ReloadInterval)
	}
}

func TestLoadMissingFiles(t *testing.T) {
	dir := t.TempDir()
	cfg, err := NewLoader("", filepath.Join(dir, "nope.yaml")).Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.HTTPAddr != DefaultHTTPAddr || cfg.LogLevel != DefaultLogLevel || cfg.ReloadInterval != 0 {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
}

func TestLoadCacheAndInvalidate(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "config.yaml", "log_level: warn\n")
	l := NewLoader("", p)
	if cfg, err := l.Load(); err != nil || cfg.LogLevel != "warn" {
		t.Fatalf("first load: %+v %v", cfg, err)
	}
	writeFile(t, dir, "config.yaml", "log_level: error\n")
	if cfg, _ := l.Load(); cfg.LogLevel != "warn" {
		t.Fatalf("cached load should not reread: %+v", cfg)
	}
	l.Invalidate()
	if cfg, _ := l.Load(); cfg.LogLevel != "error" {
		t.Fatalf("load after invalidate: %+v", cfg)
	}
}

func TestLoadBadYAML(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "config.yaml", "seed: [not, a, number\n")
	if _, err := NewLoader("", p).Load(); err == nil {
		t.Fatalf("broken yaml should fail")
	}
}

func TestValidateRaw(t *testing.T) {
	seed := uint64(1)
	neg := -time.Second
	err := ValidateRaw(Raw{
		HTTPAddr:       "nocolon",
		LogLevel:       "loud",
		LogFormat:      "xml",
		Seed:           &seed,
		SeedSequence:   []uint64{1},
		ReloadInterval: &neg,
	})
	if err == nil {
		t.Fatalf("invalid config accepted")
	}
	for _, want := range []string{"http_addr", "log_level", "log_format", "mutually exclusive", "reload_interval"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("error %q does not mention %s", err, want)
		}
	}
	if err := ValidateRaw(Raw{HTTPAddr: ":8080", RESPAddr: "localhost:6380"}); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
}

func TestSeedMaterial(t *testing.T) {
	gather := func() ([]uint64, error) { return []uint64{7, 7, 7, 7}, nil }

	seed := uint64(5)
	m, src, err := Config{Seed: &seed, SeedSequence: []uint64{9}}.SeedMaterial(gather)
	if err != nil || src != FromSeed || len(m) != 1 || m[0] != 5 {
		t.Fatalf("seed: got %v %s %v", m, src, err)
	}
	m, src, _ = Config{SeedSequence: []uint64{9, 8}}.SeedMaterial(gather)
	if src != FromSequence || len(m) != 2 {
		t.Fatalf("sequence: got %v %s", m, src)
	}
	m, src, _ = Config{}.SeedMaterial(gather)
	if src != FromEntropy || len(m) != 4 {
		t.Fatalf("entropy: got %v %s", m, src)
	}
	boom := errors.New("boom")
	if _, _, err := (Config{}).SeedMaterial(func() ([]uint64, error) { return nil, boom }); !errors.Is(err, boom) {
		t.Fatalf("gather error: got %v", err)
	}
}

func TestWatcher(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "config.yaml", "log_level: info\n")
	later := filepath.Join(dir, "later.yaml")

	changed := make(chan string, 4)
	w := NewWatcher(5*time.Millisecond, func(path string) { changed <- path }, p, later)
	w.Start()
	defer w.Stop()

	future := time.Now().Add(time.Hour)
	if err := os.Chtimes(p, future, future); err != nil {
		t.Fatal(err)
	}
	expectChange(t, changed, p)

	writeFile(t, dir, "later.yaml", "seed: 1\n")
	expectChange(t, changed, later)

	w.Stop()
	w.Stop()
}

func expectChange(t *testing.T, ch <-chan string, want string) {
	t.Helper()
	select {
	case got := <-ch:
		if got != want {
			t.Fatalf("changed path: got %s want %s", got, want)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("no change reported for %s", want)
	}
}
