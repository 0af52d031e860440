package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Fatalf("unexpected addr: %s", cfg.Server.Addr)
	}
	if cfg.Agent.MaxSteps != 10 {
		t.Fatalf("unexpected max steps: %d", cfg.Agent.MaxSteps)
	}
	if cfg.Store.Driver != DriverMemory {
		t.Fatalf("unexpected store driver: %s", cfg.Store.Driver)
	}
}

func TestLoadPortVariants(t *testing.T) {
	t.Setenv("PORT", "9090")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}
	if cfg.Server.Addr != ":9090" {
		t.Fatalf("unexpected addr: %s", cfg.Server.Addr)
	}

	t.Setenv("PORT", "127.0.0.1:9090")
	cfg, err = Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}
	if cfg.Server.Addr != "127.0.0.1:9090" {
		t.Fatalf("unexpected addr: %s", cfg.Server.Addr)
	}

	t.Setenv("PORT", "bad port")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid PORT")
	}
}

func TestLoadAgentMaxSteps(t *testing.T) {
	t.Setenv("AGENT_MAX_STEPS", "25")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}
	if cfg.Agent.MaxSteps != 25 {
		t.Fatalf("unexpected max steps: %d", cfg.Agent.MaxSteps)
	}

	t.Setenv("AGENT_MAX_STEPS", "0")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for AGENT_MAX_STEPS below 1")
	}

	t.Setenv("AGENT_MAX_STEPS", "abc")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for non-numeric AGENT_MAX_STEPS")
	}
}

func TestLoadStoreDriver(t *testing.T) {
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("STORE_PATH", "/tmp/test.db")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}
	if cfg.Store.Driver != DriverSQLite {
		t.Fatalf("unexpected driver: %s", cfg.Store.Driver)
	}
	if cfg.Store.Path != "/tmp/test.db" {
		t.Fatalf("unexpected path: %s", cfg.Store.Path)
	}

	t.Setenv("STORE_DRIVER", "postgres")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for unsupported STORE_DRIVER")
	}
}
