package logging_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/runesight/runesight/pkg/logging"
)

func TestDefaultLogger(t *testing.T) {
	original := *logging.Default()
	defer logging.SetDefault(original)

	// Capture output from the package-level helpers
	buf := &bytes.Buffer{}
	logger := zerolog.New(buf).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	logging.SetDefault(logger)

	logging.Debug().Msg("debug message")
	logging.Info().Msg("info message")
	logging.Warn().Msg("warning message")
	logging.Error().Msg("error message")

	output := buf.String()
	for _, msg := range []string{"debug message", "info message", "warning message", "error message"} {
		if !strings.Contains(output, msg) {
			t.Errorf("Expected %q in output, got: %s", msg, output)
		}
	}
}

func TestErr(t *testing.T) {
	original := *logging.Default()
	defer logging.SetDefault(original)

	buf := &bytes.Buffer{}
	logging.SetDefault(zerolog.New(buf).Level(zerolog.DebugLevel))

	logging.Err(errors.New("upstream exploded")).Msg("request failed")

	output := buf.String()
	if !strings.Contains(output, "upstream exploded") {
		t.Errorf("Expected wrapped error in output, got: %s", output)
	}
	if !strings.Contains(output, `"level":"error"`) {
		t.Errorf("Expected error level in output, got: %s", output)
	}

	buf.Reset()
	logging.Err(nil).Msg("all good")
	if !strings.Contains(buf.String(), `"level":"info"`) {
		t.Errorf("Expected info level for nil error, got: %s", buf.String())
	}
}

func TestNew(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := logging.New(buf)

	logger.Info().Str("region", "EUROPE").Msg("fetching matches")

	output := buf.String()
	if !strings.Contains(output, `"region":"EUROPE"`) {
		t.Errorf("Expected structured field in output, got: %s", output)
	}
	if !strings.Contains(output, `"time"`) {
		t.Errorf("Expected timestamp in output, got: %s", output)
	}
}

func TestNewConsole(t *testing.T) {
	logger := logging.NewConsole()
	if logger.GetLevel() != zerolog.GlobalLevel() {
		t.Errorf("Expected console logger at global level %v, got %v",
			zerolog.GlobalLevel(), logger.GetLevel())
	}
}
