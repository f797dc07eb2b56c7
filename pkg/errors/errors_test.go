package errors_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/runesight/runesight/pkg/errors"
)

func TestNew(t *testing.T) {
	err := pkgerrors.New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestNotFoundError(t *testing.T) {
	t.Run("basic error", func(t *testing.T) {
		err := &pkgerrors.NotFoundError{
			Resource: "match",
			ID:       "EUW1_123",
		}
		assert.Equal(t, "match with ID EUW1_123 not found", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrNotFound))
	})

	t.Run("constructor", func(t *testing.T) {
		err := pkgerrors.NewNotFoundError("account", "Faker#T1")
		assert.Equal(t, "account with ID Faker#T1 not found", err.Error())
		assert.True(t, pkgerrors.IsNotFound(err))
	})

	t.Run("wrapped error", func(t *testing.T) {
		base := pkgerrors.NewNotFoundError("match", "test")
		wrapped := errors.Join(errors.New("lookup failed"), base)
		assert.True(t, pkgerrors.IsNotFound(wrapped))
	})
}

func TestValidationError(t *testing.T) {
	t.Run("with field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{
			Field:   "riot_id",
			Message: "must contain a tag",
		}
		assert.Equal(t, "validation failed for field riot_id: must contain a tag", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrInvalidInput))
	})

	t.Run("without field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{
			Message: "invalid request",
		}
		assert.Equal(t, "validation failed: invalid request", err.Error())
		assert.True(t, pkgerrors.IsValidationError(err))
	})

	t.Run("constructor", func(t *testing.T) {
		err := pkgerrors.NewValidationError("count", 500, "exceeds maximum")
		assert.Contains(t, err.Error(), "count")
		assert.Contains(t, err.Error(), "exceeds maximum")
	})
}

func TestAPIError(t *testing.T) {
	t.Run("with status code", func(t *testing.T) {
		err := &pkgerrors.APIError{
			Service:    "riot",
			StatusCode: 429,
			Message:    "rate limit exceeded",
			Endpoint:   "/lol/match/v5/matches",
		}
		assert.Equal(t, "API error from riot (status 429): rate limit exceeded", err.Error())
	})

	t.Run("without status code", func(t *testing.T) {
		err := &pkgerrors.APIError{
			Service: "gemini",
			Message: "connection refused",
		}
		assert.Equal(t, "API error from gemini: connection refused", err.Error())
	})

	t.Run("unwrap", func(t *testing.T) {
		baseErr := errors.New("connection timeout")
		err := &pkgerrors.APIError{
			Service: "riot",
			Message: "request failed",
			Err:     baseErr,
		}
		assert.Equal(t, baseErr, errors.Unwrap(err))
		assert.True(t, errors.Is(err, baseErr))
	})

	t.Run("constructor", func(t *testing.T) {
		err := pkgerrors.NewAPIError("riot", 403, "forbidden")
		require.NotNil(t, err)
		assert.Equal(t, "riot", err.Service)
		assert.Equal(t, 403, err.StatusCode)
	})
}

func TestAPIError_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		target     error
		matches    bool
	}{
		{"404 maps to not found", 404, pkgerrors.ErrNotFound, true},
		{"404 is not rate limited", 404, pkgerrors.ErrRateLimited, false},
		{"429 maps to rate limited", 429, pkgerrors.ErrRateLimited, true},
		{"429 is not not-found", 429, pkgerrors.ErrNotFound, false},
		{"500 maps to upstream unavailable", 500, pkgerrors.ErrUpstreamUnavailable, true},
		{"503 maps to upstream unavailable", 503, pkgerrors.ErrUpstreamUnavailable, true},
		{"400 maps to nothing", 400, pkgerrors.ErrInvalidInput, false},
		{"403 maps to nothing", 403, pkgerrors.ErrNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := pkgerrors.NewAPIError("riot", tt.statusCode, "upstream said no")
			assert.Equal(t, tt.matches, errors.Is(err, tt.target))
		})
	}
}

func TestConfigError(t *testing.T) {
	t.Run("with component", func(t *testing.T) {
		err := pkgerrors.NewConfigError("server", "port out of range", nil)
		assert.Equal(t, "configuration error in server: port out of range", err.Error())
	})

	t.Run("without component", func(t *testing.T) {
		err := &pkgerrors.ConfigError{Message: "missing file"}
		assert.Equal(t, "configuration error: missing file", err.Error())
	})

	t.Run("unwrap", func(t *testing.T) {
		baseErr := errors.New("no such file")
		err := pkgerrors.NewConfigError("cache", "cannot read config", baseErr)
		assert.True(t, errors.Is(err, baseErr))
	})
}

func TestParseError(t *testing.T) {
	t.Run("with subject", func(t *testing.T) {
		err := &pkgerrors.ParseError{
			Format:  "json",
			Subject: "match response",
			Message: "unexpected EOF",
		}
		assert.Equal(t, "parse error in json match response: unexpected EOF", err.Error())
	})

	t.Run("without subject", func(t *testing.T) {
		err := &pkgerrors.ParseError{
			Format:  "yaml",
			Message: "bad indentation",
		}
		assert.Equal(t, "yaml parse error: bad indentation", err.Error())
	})
}

func TestHelpers(t *testing.T) {
	t.Run("IsRateLimited", func(t *testing.T) {
		assert.True(t, pkgerrors.IsRateLimited(pkgerrors.ErrRateLimited))
		assert.True(t, pkgerrors.IsRateLimited(pkgerrors.NewAPIError("riot", 429, "slow down")))
		assert.False(t, pkgerrors.IsRateLimited(errors.New("other")))
	})

	t.Run("IsUpstreamUnavailable", func(t *testing.T) {
		assert.True(t, pkgerrors.IsUpstreamUnavailable(pkgerrors.NewAPIError("riot", 502, "bad gateway")))
		assert.False(t, pkgerrors.IsUpstreamUnavailable(pkgerrors.NewAPIError("riot", 404, "missing")))
	})

	t.Run("IsTimeout", func(t *testing.T) {
		assert.True(t, pkgerrors.IsTimeout(pkgerrors.ErrTimeout))
		assert.False(t, pkgerrors.IsTimeout(pkgerrors.ErrNotFound))
	})

	t.Run("nil error", func(t *testing.T) {
		assert.False(t, pkgerrors.IsNotFound(nil))
		assert.False(t, pkgerrors.IsValidationError(nil))
	})
}

func TestWrapParse(t *testing.T) {
	t.Run("wraps error", func(t *testing.T) {
		baseErr := errors.New("invalid character '}'")
		err := pkgerrors.WrapParse("json", "account response", baseErr)
		require.Error(t, err)

		var parseErr *pkgerrors.ParseError
		require.True(t, errors.As(err, &parseErr))
		assert.Equal(t, "json", parseErr.Format)
		assert.True(t, errors.Is(err, baseErr))
	})

	t.Run("nil passthrough", func(t *testing.T) {
		assert.NoError(t, pkgerrors.WrapParse("json", "anything", nil))
	})
}

func TestWrapAPI(t *testing.T) {
	t.Run("wraps error", func(t *testing.T) {
		baseErr := errors.New("upstream exploded")
		err := pkgerrors.WrapAPI("riot", 500, baseErr)
		require.Error(t, err)

		var apiErr *pkgerrors.APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, 500, apiErr.StatusCode)
		assert.True(t, errors.Is(err, baseErr))
		assert.True(t, errors.Is(err, pkgerrors.ErrUpstreamUnavailable))
	})

	t.Run("nil passthrough", func(t *testing.T) {
		assert.NoError(t, pkgerrors.WrapAPI("riot", 500, nil))
	})
}
