package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "neuronet.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg != Default() {
		t.Errorf("got %+v, want defaults", cfg)
	}
}

func TestLoadOverridesAndExpandsEnv(t *testing.T) {
	t.Setenv("NEURONET_TEST_TOKEN", "s3cret")
	path := writeConfig(t, `
server:
  http_addr: "127.0.0.1:7000"
  auth_token: "${NEURONET_TEST_TOKEN}"
graph:
  preload: /data/web-Google.txt
  skip_malformed: true
log:
  level: debug
  format: json
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.HTTPAddr != "127.0.0.1:7000" || cfg.Server.AuthToken != "s3cret" {
		t.Errorf("server = %+v", cfg.Server)
	}
	if cfg.Graph.Preload != "/data/web-Google.txt" || !cfg.Graph.SkipMalformed {
		t.Errorf("graph = %+v", cfg.Graph)
	}
	// Keys absent from the file keep their defaults.
	if cfg.Graph.MaxSubgraphNodes != 500 {
		t.Errorf("max_subgraph_nodes = %d, want default 500", cfg.Graph.MaxSubgraphNodes)
	}
	if lvl, _ := cfg.Log.SlogLevel(); lvl != slog.LevelDebug {
		t.Errorf("level = %v", lvl)
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	path := writeConfig(t, "graph:\n  preolad: typo.txt\n")
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "preolad") {
		t.Errorf("err = %v, want unknown field error", err)
	}
}

func TestLoadValidation(t *testing.T) {
	for name, body := range map[string]string{
		"level":  "log:\n  level: loud\n",
		"format": "log:\n  format: xml\n",
		"limit":  "graph:\n  max_subgraph_nodes: -1\n",
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, body)); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := LogConfig{Level: "warn", Format: "json"}.NewLogger(&buf)
	if err != nil {
		t.Fatal(err)
	}
	logger.Info("dropped")
	logger.Warn("kept", "k", 1)
	out := buf.String()
	if strings.Contains(out, "dropped") || !strings.Contains(out, `"msg":"kept"`) {
		t.Errorf("unexpected log output: %s", out)
	}
}
