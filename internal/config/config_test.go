package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"a2dp-bridge/internal/a2dp"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("from env: %v", err)
	}
	if cfg.Adapter != "hci0" {
		t.Fatalf("expected default adapter hci0, got %q", cfg.Adapter)
	}
	if cfg.MaxConnectedDevices != 1 {
		t.Fatalf("expected default max connected devices 1, got %d", cfg.MaxConnectedDevices)
	}
	if cfg.PrefsPath != "" || cfg.CodecPriorityPath != "" {
		t.Fatalf("expected empty paths by default, got %+v", cfg)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("A2DP_BRIDGE_ADAPTER", "hci1")
	t.Setenv("A2DP_BRIDGE_MAX_CONNECTED_DEVICES", "2")
	t.Setenv("A2DP_BRIDGE_PREFS_DB", "/var/lib/a2dp/prefs.db")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("from env: %v", err)
	}
	if cfg.Adapter != "hci1" || cfg.MaxConnectedDevices != 2 || cfg.PrefsPath != "/var/lib/a2dp/prefs.db" {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestFromEnvError(t *testing.T) {
	t.Setenv("A2DP_BRIDGE_MAX_CONNECTED_DEVICES", "not-an-int")

	_, err := FromEnv()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "codecs.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}
	return path
}

func TestLoadCodecPriorities(t *testing.T) {
	path := writeFile(t, `
priorities:
  - codec: ldac
    priority: 1000000
  - codec: aptx-hd
    priority: 500
  - codec: sbc
offload:
  - codec: aac
`)

	priorities, offload, err := LoadCodecPriorities(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := []a2dp.CodecConfig{
		{CodecType: a2dp.CodecTypeLDAC, Priority: 1000000},
		{CodecType: a2dp.CodecTypeAptXHD, Priority: 500},
		{CodecType: a2dp.CodecTypeSBC, Priority: 0},
	}
	if len(priorities) != len(want) {
		t.Fatalf("expected %d priorities, got %d", len(want), len(priorities))
	}
	for i := range want {
		if priorities[i] != want[i] {
			t.Fatalf("priority %d: expected %+v, got %+v", i, want[i], priorities[i])
		}
	}
	if len(offload) != 1 || offload[0].CodecType != a2dp.CodecTypeAAC {
		t.Fatalf("unexpected offload %+v", offload)
	}
}

func TestLoadCodecPrioritiesUnknownCodec(t *testing.T) {
	path := writeFile(t, "priorities:\n  - codec: flac\n")

	_, _, err := LoadCodecPriorities(path)
	if err == nil || !strings.Contains(err.Error(), `unknown codec "flac"`) {
		t.Fatalf("expected unknown codec error, got %v", err)
	}
}

func TestLoadCodecPrioritiesMissingFile(t *testing.T) {
	_, _, err := LoadCodecPriorities(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error")
	}
}
