package transport

import (
	"net/http"
	"testing"
)

// TestHeaderAuth tests custom header authentication.
func TestHeaderAuth(t *testing.T) {
	auth := &HeaderAuth{Header: "X-Riot-Token"}
	req := &http.Request{
		Header: make(http.Header),
	}

	auth.Apply(req, "RGAPI-test-key")

	headerValue := req.Header.Get("X-Riot-Token")
	if headerValue != "RGAPI-test-key" {
		t.Errorf("Expected X-Riot-Token header 'RGAPI-test-key', got '%s'", headerValue)
	}

	// Should not have Authorization header
	if req.Header.Get("Authorization") != "" {
		t.Error("Should not have Authorization header")
	}
}
