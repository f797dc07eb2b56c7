package logging_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/runesight/runesight/pkg/logging"
)

func TestContextFunctions(t *testing.T) {
	t.Run("WithLogger round-trips through context", func(t *testing.T) {
		buf := &bytes.Buffer{}
		logger := zerolog.New(buf)

		ctx := logging.WithLogger(context.Background(), &logger)
		got := logging.FromContext(ctx)

		assert.Same(t, &logger, got)
	})

	t.Run("attached logger receives events", func(t *testing.T) {
		buf := &bytes.Buffer{}
		logger := zerolog.New(buf).With().Str("request_id", "abc-123").Logger()

		ctx := logging.WithLogger(context.Background(), &logger)
		logging.Ctx(ctx).Info().Msg("handling request")

		output := buf.String()
		assert.True(t, strings.Contains(output, "handling request"))
		assert.True(t, strings.Contains(output, `"request_id":"abc-123"`))
	})

	t.Run("FromContext falls back to default", func(t *testing.T) {
		got := logging.FromContext(context.Background())
		assert.Same(t, logging.Default(), got)
	})

	t.Run("nil context falls back to default", func(t *testing.T) {
		got := logging.FromContext(nil) //nolint:staticcheck // exercising the nil guard
		assert.Same(t, logging.Default(), got)
	})

	t.Run("nil logger falls back to default", func(t *testing.T) {
		ctx := logging.WithLogger(context.Background(), nil)
		assert.Same(t, logging.Default(), logging.FromContext(ctx))
	})

	t.Run("Ctx is an alias for FromContext", func(t *testing.T) {
		logger := zerolog.Nop()
		ctx := logging.WithLogger(context.Background(), &logger)
		assert.Same(t, logging.FromContext(ctx), logging.Ctx(ctx))
	})
}
