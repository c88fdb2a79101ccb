package env

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestReelConfigDefaults(t *testing.T) {
	path := writeConfig(t, "reels:\n  overshoot: 3\n")

	cfg, err := NewReelConfigFromYAML(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ReelCount() != 5 || cfg.RowCount() != 3 {
		t.Errorf("expected default 5x3, got %dx%d", cfg.ReelCount(), cfg.RowCount())
	}
	if cfg.ReelDelay() != 300*time.Millisecond {
		t.Errorf("expected default delay 300ms, got %v", cfg.ReelDelay())
	}
	if cfg.Overshoot() != 3 {
		t.Errorf("expected overshoot 3 from file, got %v", cfg.Overshoot())
	}
	if len(cfg.Symbols()) != 9 {
		t.Errorf("expected 9 default symbols, got %d", len(cfg.Symbols()))
	}
}

func TestReelConfigDurations(t *testing.T) {
	path := writeConfig(t, `
reels:
  count: 3
  rows: 4
  delay: 150ms
  min_run_time: 1.5s
  duration_step: -100ms
  symbols: [A, B]
`)

	cfg, err := NewReelConfigFromYAML(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ReelCount() != 3 || cfg.RowCount() != 4 {
		t.Errorf("expected 3x4, got %dx%d", cfg.ReelCount(), cfg.RowCount())
	}
	if cfg.ReelDelay() != 150*time.Millisecond {
		t.Errorf("expected 150ms, got %v", cfg.ReelDelay())
	}
	if cfg.MinRunTime() != 1500*time.Millisecond {
		t.Errorf("expected 1.5s, got %v", cfg.MinRunTime())
	}
	if cfg.DurationStep() != -100*time.Millisecond {
		t.Errorf("expected -100ms, got %v", cfg.DurationStep())
	}
	if got := cfg.Symbols(); len(got) != 2 || got[0] != "A" {
		t.Errorf("expected symbols [A B], got %v", got)
	}
}

func TestReelConfigErrors(t *testing.T) {
	if _, err := NewReelConfigFromYAML(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Errorf("expected error for a missing file")
	}
	if _, err := NewReelConfigFromYAML(writeConfig(t, "reels:\n  count: 0\n")); err == nil {
		t.Errorf("expected error for zero reels")
	}
	if _, err := NewReelConfigFromYAML(writeConfig(t, "reels: [1, 2\n")); err == nil {
		t.Errorf("expected parse error")
	}
}

func TestBoardConfigFillsUniformWeights(t *testing.T) {
	path := writeConfig(t, `
board:
  response_delay_min: 100ms
  response_delay_max: 200ms
  weights:
    - {"1": 10, "K": 1}
`)

	cfg, err := NewBoardConfigFromYAML(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	w := cfg.SymbolWeights()
	if len(w) != 5 {
		t.Fatalf("expected a weight table per reel, got %d", len(w))
	}
	if w[0]["1"] != 10 || w[0]["K"] != 1 {
		t.Errorf("expected reel 0 weights from file, got %v", w[0])
	}
	if len(w[4]) != 9 || w[4]["K"] != 1 {
		t.Errorf("expected uniform weights on reel 4, got %v", w[4])
	}
	lo, hi := cfg.ResponseDelay()
	if lo != 100*time.Millisecond || hi != 200*time.Millisecond {
		t.Errorf("expected delay [100ms, 200ms], got [%v, %v]", lo, hi)
	}
}

func TestBoardConfigErrors(t *testing.T) {
	tests := map[string]string{
		"inverted delay": "board:\n  response_delay_min: 2s\n  response_delay_max: 1s\n",
		"short fixed":    "board:\n  fixed: [\"1\", \"2\"]\n",
		"too many reels": "reels:\n  count: 1\nboard:\n  weights: [{A: 1}, {B: 1}]\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := NewBoardConfigFromYAML(writeConfig(t, body)); err == nil {
				t.Errorf("expected error")
			}
		})
	}
}

func TestLogConfigFromEnv(t *testing.T) {
	t.Setenv(logLevelEnvName, "debug")
	t.Setenv(logFileEnvName, "true")
	t.Setenv(logModeEnvName, "prod")
	t.Setenv(logAppEnvName, "")

	cfg, err := NewLogConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Level() != "debug" || !cfg.File() || !cfg.Production() {
		t.Errorf("expected debug/file/prod, got %s/%v/%v", cfg.Level(), cfg.File(), cfg.Production())
	}
	if cfg.App() != "reelspin" {
		t.Errorf("expected default app name, got %q", cfg.App())
	}

	t.Setenv(logFileEnvName, "maybe")
	if _, err := NewLogConfig(); err == nil {
		t.Errorf("expected error for a bad LOG_FILE")
	}
}

func TestTerminalConfigFromEnv(t *testing.T) {
	t.Setenv(frameIntervalEnvName, "")
	t.Setenv(audioEnabledEnvName, "")
	t.Setenv(configPathEnvName, "")
	cfg, err := NewTerminalConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.FrameInterval() != defaultFrameInterval || !cfg.AudioEnabled() || cfg.ConfigPath() != defaultConfigPath {
		t.Errorf("unexpected defaults: %v %v %q", cfg.FrameInterval(), cfg.AudioEnabled(), cfg.ConfigPath())
	}

	t.Setenv(frameIntervalEnvName, "33ms")
	t.Setenv(audioEnabledEnvName, "false")
	cfg, err = NewTerminalConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.FrameInterval() != 33*time.Millisecond || cfg.AudioEnabled() {
		t.Errorf("expected 33ms without audio, got %v %v", cfg.FrameInterval(), cfg.AudioEnabled())
	}

	t.Setenv(frameIntervalEnvName, "-1s")
	if _, err := NewTerminalConfig(); err == nil {
		t.Errorf("expected error for a negative frame interval")
	}
}
