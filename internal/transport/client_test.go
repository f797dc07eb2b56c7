package transport

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	pkgerrors "github.com/runesight/runesight/pkg/errors"
)

// TestClient_Do tests that the client applies authentication and headers.
func TestClient_Do(t *testing.T) {
	var gotToken, gotAccept string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get("X-Riot-Token")
		gotAccept = r.Header.Get("Accept")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := New(&HeaderAuth{Header: "X-Riot-Token"}, "RGAPI-test-key")

	resp, err := client.Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	_ = resp.Body.Close()

	if gotToken != "RGAPI-test-key" {
		t.Errorf("Expected X-Riot-Token 'RGAPI-test-key', got '%s'", gotToken)
	}
	if gotAccept != "application/json" {
		t.Errorf("Expected Accept 'application/json', got '%s'", gotAccept)
	}
}

// TestClient_Do_NoKey tests that auth is skipped without an API key.
func TestClient_Do_NoKey(t *testing.T) {
	var headers http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		headers = r.Header.Clone()
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := New(&HeaderAuth{Header: "X-Riot-Token"}, "")

	resp, err := client.Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	_ = resp.Body.Close()

	if headers.Get("X-Riot-Token") != "" {
		t.Error("Should not send X-Riot-Token without an API key")
	}
}

// TestDecodeResponse tests JSON decoding and the error mapping for
// non-2xx statuses.
func TestDecodeResponse(t *testing.T) {
	serve := func(status int, body string) *http.Response {
		t.Helper()
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(status)
			_, _ = w.Write([]byte(body))
		}))
		defer server.Close()

		resp, err := http.Get(server.URL)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		return resp
	}

	t.Run("success decodes body", func(t *testing.T) {
		var target struct {
			PUUID string `json:"puuid"`
		}
		resp := serve(http.StatusOK, `{"puuid":"abc-123"}`)
		if err := DecodeResponse("riot", resp, &target); err != nil {
			t.Fatalf("DecodeResponse returned error: %v", err)
		}
		if target.PUUID != "abc-123" {
			t.Errorf("Expected puuid 'abc-123', got '%s'", target.PUUID)
		}
	})

	t.Run("404 maps to not found", func(t *testing.T) {
		var target any
		err := DecodeResponse("riot", serve(http.StatusNotFound, `{"status":{"message":"not found"}}`), &target)
		if !errors.Is(err, pkgerrors.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("429 maps to rate limited", func(t *testing.T) {
		var target any
		err := DecodeResponse("riot", serve(http.StatusTooManyRequests, ``), &target)
		if !errors.Is(err, pkgerrors.ErrRateLimited) {
			t.Errorf("Expected ErrRateLimited, got %v", err)
		}
	})

	t.Run("503 maps to upstream unavailable", func(t *testing.T) {
		var target any
		err := DecodeResponse("riot", serve(http.StatusServiceUnavailable, ``), &target)
		if !errors.Is(err, pkgerrors.ErrUpstreamUnavailable) {
			t.Errorf("Expected ErrUpstreamUnavailable, got %v", err)
		}
	})

	t.Run("api error carries service and status", func(t *testing.T) {
		var target any
		err := DecodeResponse("riot", serve(http.StatusForbidden, `forbidden`), &target)

		var apiErr *pkgerrors.APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("Expected *APIError, got %T", err)
		}
		if apiErr.Service != "riot" || apiErr.StatusCode != http.StatusForbidden {
			t.Errorf("Unexpected APIError: %+v", apiErr)
		}
	})

	t.Run("malformed body maps to parse error", func(t *testing.T) {
		var target any
		err := DecodeResponse("riot", serve(http.StatusOK, `{not json`), &target)

		var parseErr *pkgerrors.ParseError
		if !errors.As(err, &parseErr) {
			t.Fatalf("Expected *ParseError, got %T", err)
		}
		if parseErr.Format != "json" {
			t.Errorf("Expected json format, got '%s'", parseErr.Format)
		}
	})
}
