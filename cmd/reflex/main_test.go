package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/taigrr/reflex/pkg/config"
	"github.com/taigrr/reflex/pkg/game"
)

// testSetup parses args like the root command and merges them with the
// config file they name.
func testSetup(t *testing.T, args ...string) *setup {
	t.Helper()
	t.Setenv(config.EnvPath, "")

	cmd := newRootCmd()
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	opts := options{}
	f := cmd.Flags()
	opts.configPath, _ = f.GetString("config")
	opts.variant, _ = f.GetString("variant")
	opts.fps, _ = f.GetInt("fps")
	opts.batModel, _ = f.GetString("bat-model")
	opts.logFile, _ = f.GetString("log-file")
	opts.logLevel, _ = f.GetString("log-level")
	opts.noShake, _ = f.GetBool("no-shake")

	s, err := loadSetup(cmd, opts)
	if err != nil {
		t.Fatalf("loadSetup: %v", err)
	}
	return s
}

func TestLoadSetupDefaults(t *testing.T) {
	s := testSetup(t)

	if s.variant != game.VariantScoring {
		t.Errorf("variant = %v, want scoring", s.variant)
	}
	if s.game != game.DefaultConfig() {
		t.Errorf("game config = %+v, want defaults", s.game)
	}
	if s.file.Display.FPS != 60 || !s.file.Display.Shake {
		t.Errorf("display = %+v", s.file.Display)
	}
}

func TestLoadSetupFlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reflex.toml")
	body := `
[game]
variant = "cooldown"
max_pitches = 4

[display]
fps = 30
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	s := testSetup(t, "--config", path, "--fps", "90", "--no-shake")

	if s.variant != game.VariantCooldown {
		t.Errorf("variant = %v, want cooldown from the file", s.variant)
	}
	if s.game.MaxPitches != 4 {
		t.Errorf("MaxPitches = %d, want 4", s.game.MaxPitches)
	}
	if s.file.Display.FPS != 90 {
		t.Errorf("FPS = %d, want the flag value 90", s.file.Display.FPS)
	}
	if s.file.Display.Shake {
		t.Error("--no-shake did not disable shake")
	}
}

func TestLoadSetupRejectsBadVariant(t *testing.T) {
	t.Setenv(config.EnvPath, "")
	cmd := newRootCmd()
	if err := cmd.ParseFlags([]string{"--variant", "slowpitch"}); err != nil {
		t.Fatal(err)
	}
	if _, err := loadSetup(cmd, options{variant: "slowpitch"}); err == nil {
		t.Error("expected an error for an unknown variant")
	}
}

func TestLoadSetupWritesLogFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "reflex.log")
	s := testSetup(t, "--log-file", logPath)
	_ = s.log.Sync()

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if len(data) == 0 {
		t.Error("log file is empty, want the config loaded entry")
	}
}
