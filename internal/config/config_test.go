package config

import (
	"errors"
	"testing"
)

func TestValidate_Valid(t *testing.T) {
	cfg := &Config{
		Port:     3000,
		BuildDir: "./build",
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v, want nil", err)
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	tests := []struct {
		name string
		port int
	}{
		{"zero", 0},
		{"negative", -1},
		{"too high", 65536},
		{"way too high", 100000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Port:     tt.port,
				BuildDir: "./build",
			}
			err := cfg.Validate()
			if err == nil {
				t.Fatalf("Validate() expected error for port=%d, got nil", tt.port)
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestValidate_ValidPortBoundaries(t *testing.T) {
	tests := []struct {
		name string
		port int
	}{
		{"min", 1},
		{"max", 65535},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Port:     tt.port,
				BuildDir: "./build",
			}
			if err := cfg.Validate(); err != nil {
				t.Fatalf("Validate() error = %v, want nil for port=%d", err, tt.port)
			}
		})
	}
}

func TestValidate_EmptyBuildDir(t *testing.T) {
	cfg := &Config{
		Port: 3000,
	}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() expected error for empty build dir, got nil")
	}
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Validate() error = %v, want ErrInvalidConfig", err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Port != 3000 {
		t.Errorf("Port = %d, want default 3000", cfg.Port)
	}
	if cfg.BuildDir != "./build" {
		t.Errorf("BuildDir = %q, want default ./build", cfg.BuildDir)
	}
	if cfg.LiveReloadOrigin == "" {
		t.Error("LiveReloadOrigin should have a default")
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("SPASERVER_PORT", "8081")
	t.Setenv("SPASERVER_BUILD_DIR", "/srv/app/build")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Port != 8081 {
		t.Errorf("Port = %d, want 8081 from env", cfg.Port)
	}
	if cfg.BuildDir != "/srv/app/build" {
		t.Errorf("BuildDir = %q, want /srv/app/build from env", cfg.BuildDir)
	}
}

func TestLoad_InvalidPortFromEnv(t *testing.T) {
	t.Setenv("SPASERVER_PORT", "70000")

	if _, err := Load(); err == nil {
		t.Fatal("Load() expected error for out-of-range port")
	}
}
