package main

import (
	"strings"
	"testing"

	"accounting_docs_service/internal/infra/config"
)

// Start-up failures come back from run, after its deferred cleanup, instead
// of exiting the process mid-way.
func TestRunReturnsStartupError(t *testing.T) {
	cfg := &config.AppConfig{
		// Port 1 refuses connections, so the ping fails immediately.
		DatabaseURL: "postgres://app@127.0.0.1:1/app?sslmode=disable&connect_timeout=2",
		DBMaxConns:  1,
		JWTSecret:   "secret",
		HTTPAddr:    "127.0.0.1:0",
	}

	err := run(cfg)
	if err == nil {
		t.Fatal("run() returned nil for an unreachable database")
	}
	if !strings.Contains(err.Error(), "could not connect to database") {
		t.Errorf("run() error = %v, want connection failure", err)
	}
}
