package appcfg

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "whacamole.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DeviceID != "" || cfg.Wire != "" {
		t.Errorf("expected empty identity and wire, got %+v", cfg)
	}
	if !cfg.Panel {
		t.Error("panel must default to enabled")
	}
}

func TestLoadYAMLFile(t *testing.T) {
	path := writeConfig(t, "device_id: cafe0000deadbeef\nwire: /dev/ttyUSB0\npanel: false\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DeviceID != "cafe0000deadbeef" {
		t.Errorf("device_id: got %q", cfg.DeviceID)
	}
	if cfg.Wire != "/dev/ttyUSB0" {
		t.Errorf("wire: got %q", cfg.Wire)
	}
	if cfg.Panel {
		t.Error("expected panel disabled by file")
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "device_id: cafe0000deadbeef\nwire: /dev/ttyUSB0\n")
	t.Setenv("WHAC_DEVICE_ID", "0123456789abcdef")
	t.Setenv("WHAC_PANEL", "false")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DeviceID != "0123456789abcdef" {
		t.Errorf("expected env to win over file, got %q", cfg.DeviceID)
	}
	if cfg.Wire != "/dev/ttyUSB0" {
		t.Errorf("file value without an env override must survive, got %q", cfg.Wire)
	}
	if cfg.Panel {
		t.Error("expected WHAC_PANEL=false to disable the panel")
	}
}

func TestLoadMissingFileIsFine(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Panel {
		t.Error("defaults must apply when the file is absent")
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := writeConfig(t, "device_id: [\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected a parse error")
	}
}
