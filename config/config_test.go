package config

import "testing"

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.CapacityMain != 100_000 {
		t.Fatalf("CapacityMain: got %d", cfg.CapacityMain)
	}
	if cfg.CapacityGhostLFU != cfg.CapacityMain || cfg.CapacityGhostLRU != cfg.CapacityMain {
		t.Fatalf("ghost capacities should default to CapacityMain, got lfu=%d lru=%d main=%d",
			cfg.CapacityGhostLFU, cfg.CapacityGhostLRU, cfg.CapacityMain)
	}
	if cfg.ListenAddr != ":8081" || cfg.MetricsAddr != ":8080" {
		t.Fatalf("unexpected addrs: listen=%q metrics=%q", cfg.ListenAddr, cfg.MetricsAddr)
	}
}

func TestParseFlagsOverrideDefaults(t *testing.T) {
	cfg, err := Parse([]string{"-cap=10", "-ghost_lfu=5", "-listen=:9000"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.CapacityMain != 10 {
		t.Fatalf("CapacityMain: got %d", cfg.CapacityMain)
	}
	if cfg.CapacityGhostLFU != 5 {
		t.Fatalf("CapacityGhostLFU: got %d", cfg.CapacityGhostLFU)
	}
	if cfg.CapacityGhostLRU != 10 {
		t.Fatalf("CapacityGhostLRU should default to cap, got %d", cfg.CapacityGhostLRU)
	}
	if cfg.ListenAddr != ":9000" {
		t.Fatalf("ListenAddr: got %q", cfg.ListenAddr)
	}
}

func TestParseEnvOverridesDefault(t *testing.T) {
	t.Setenv("LECAR_CAP", "42")
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.CapacityMain != 42 {
		t.Fatalf("CapacityMain: got %d, want env override 42", cfg.CapacityMain)
	}
}

func TestParseRejectsZeroCapacity(t *testing.T) {
	if _, err := Parse([]string{"-cap=0"}); err == nil {
		t.Fatal("want an error for -cap=0")
	}
}
