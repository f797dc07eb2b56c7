package logging_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/runesight/runesight/pkg/logging"
)

func TestNewLoggerFromConfig(t *testing.T) {
	tests := []struct {
		name   string
		config *logging.Config
		check  func(t *testing.T, output string)
	}{
		{
			name: "debug level",
			config: &logging.Config{
				Level:  "debug",
				Format: "json",
			},
			check: func(t *testing.T, output string) {
				if !strings.Contains(output, `"level":"debug"`) {
					t.Errorf("Expected debug level in output, got: %s", output)
				}
			},
		},
		{
			name: "error level only",
			config: &logging.Config{
				Level:  "error",
				Format: "json",
			},
			check: func(t *testing.T, output string) {
				if strings.Contains(output, `"level":"info"`) {
					t.Errorf("Should not contain info level when set to error, got: %s", output)
				}
				if !strings.Contains(output, `"level":"error"`) {
					t.Errorf("Expected error level in output, got: %s", output)
				}
			},
		},
		{
			name: "unknown level falls back to info",
			config: &logging.Config{
				Level:  "loud",
				Format: "json",
			},
			check: func(t *testing.T, output string) {
				if strings.Contains(output, `"level":"debug"`) {
					t.Errorf("Debug should be filtered at info level, got: %s", output)
				}
				if !strings.Contains(output, `"level":"info"`) {
					t.Errorf("Expected info level in output, got: %s", output)
				}
			},
		},
		{
			name: "caller opt-in",
			config: &logging.Config{
				Level:     "info",
				Format:    "json",
				AddCaller: true,
			},
			check: func(t *testing.T, output string) {
				if !strings.Contains(output, `"caller"`) {
					t.Errorf("Expected caller field in output, got: %s", output)
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := logging.NewLoggerFromConfig(tc.config)
			logger = logger.Output(buf)

			logger.Debug().Msg("debug")
			logger.Info().Msg("info")
			logger.Error().Msg("error")

			tc.check(t, buf.String())
		})
	}
}

func TestNewLoggerFromConfig_NilUsesDefaults(t *testing.T) {
	logger := logging.NewLoggerFromConfig(nil)
	if logger.GetLevel() != zerolog.InfoLevel {
		t.Errorf("Expected info level for nil config, got %v", logger.GetLevel())
	}
}

func TestNewLoggerFromConfig_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runesight.log")

	logger := logging.NewLoggerFromConfig(&logging.Config{
		Level:  "info",
		Format: "json",
		Output: path,
	})
	logger.Info().Msg("written to file")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(data), "written to file") {
		t.Errorf("Expected log line in file, got: %s", data)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := logging.DefaultConfig()
	if cfg.Level != "info" {
		t.Errorf("Expected default level info, got %q", cfg.Level)
	}
	if cfg.Format != "auto" {
		t.Errorf("Expected default format auto, got %q", cfg.Format)
	}
	if cfg.Output != "stderr" {
		t.Errorf("Expected default output stderr, got %q", cfg.Output)
	}
}

func TestConfigure(t *testing.T) {
	original := *logging.Default()
	defer logging.SetDefault(original)

	logging.Configure(&logging.Config{
		Level:  "warn",
		Format: "json",
		Output: "discard",
	})

	if logging.Default().GetLevel() != zerolog.WarnLevel {
		t.Errorf("Expected default logger at warn level, got %v", logging.Default().GetLevel())
	}
}
