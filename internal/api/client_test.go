package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/submeta-tools/submeta-dl/internal/config"
	"github.com/submeta-tools/submeta-dl/internal/logging"
)

// decodedRequest captures what the test server saw
type decodedRequest struct {
	OperationName string         `json:"operationName"`
	Variables     map[string]any `json:"variables"`
	Query         string         `json:"query"`
}

func newClientForServer(server *httptest.Server) *Client {
	cfg := config.Default()
	cfg.APIURL = server.URL
	return NewClient(server.Client(), cfg, logging.NewDiscard())
}

func TestLogin(t *testing.T) {
	var got decodedRequest
	var gotContentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("Failed to decode request: %v", err)
		}
		fmt.Fprint(w, `{"data":{"login":{"token":"bearer-123","user":{"id":"u1"},"errors":null}}}`)
	}))
	defer server.Close()

	client := newClientForServer(server)

	token, err := client.Login(context.Background(), "alice", "s3cret")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if token != "bearer-123" {
		t.Errorf("Expected token 'bearer-123', got %q", token)
	}

	if got.OperationName != "Login" {
		t.Errorf("Expected operation 'Login', got %q", got.OperationName)
	}

	input, ok := got.Variables["input"].(map[string]any)
	if !ok {
		t.Fatalf("Expected input variables map, got %T", got.Variables["input"])
	}
	if input["username"] != "alice" || input["password"] != "s3cret" {
		t.Errorf("Credentials not forwarded: %v", input)
	}

	if gotContentType != "application/json" {
		t.Errorf("Expected JSON content type, got %q", gotContentType)
	}
}

func TestLoginMissingToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":{"login":{"token":null,"user":null,"errors":[{"key":"credentials","message":"invalid"}]}}}`)
	}))
	defer server.Close()

	client := newClientForServer(server)

	if _, err := client.Login(context.Background(), "alice", "wrong"); err == nil {
		t.Error("Expected login failure when token is absent")
	}
}

func TestLoginHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := newClientForServer(server)

	_, err := client.Login(context.Background(), "alice", "s3cret")
	if err == nil {
		t.Fatal("Expected error for HTTP error status")
	}

	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("Expected RequestError, got %T: %v", err, err)
	}
	if reqErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", reqErr.StatusCode)
	}
}

func TestAuthorizeVideo(t *testing.T) {
	var got decodedRequest
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("Failed to decode request: %v", err)
		}
		fmt.Fprint(w, `{"data":{"result":{"video":{"id":"v1","videoRef":"ref-1","token":"stream-xyz"},"isAuthorized":true,"errors":null}}}`)
	}))
	defer server.Close()

	client := newClientForServer(server)

	streamToken, err := client.AuthorizeVideo(context.Background(), "bearer-123", "v1")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if streamToken != "stream-xyz" {
		t.Errorf("Expected stream token 'stream-xyz', got %q", streamToken)
	}

	if gotAuth != "Bearer bearer-123" {
		t.Errorf("Expected bearer authorization header, got %q", gotAuth)
	}

	if got.OperationName != "GetVideoForWatchAuth" {
		t.Errorf("Expected operation 'GetVideoForWatchAuth', got %q", got.OperationName)
	}

	if got.Variables["id"] != "v1" {
		t.Errorf("Expected video id 'v1', got %v", got.Variables["id"])
	}
	if standalone, ok := got.Variables["isStandalone"].(bool); !ok || standalone {
		t.Errorf("Expected isStandalone false, got %v", got.Variables["isStandalone"])
	}
}

func TestAuthorizeVideoMissingToken(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no video", `{"data":{"result":{"video":null,"isAuthorized":false,"errors":[{"key":"auth","message":"denied"}]}}}`},
		{"empty token", `{"data":{"result":{"video":{"id":"v1","videoRef":"r","token":""},"isAuthorized":true,"errors":null}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, tt.body)
			}))
			defer server.Close()

			client := newClientForServer(server)

			if _, err := client.AuthorizeVideo(context.Background(), "bearer-123", "v1"); err == nil {
				t.Error("Expected error when stream token is absent")
			}
		})
	}
}

func TestManifestURL(t *testing.T) {
	cfg := config.Default()
	client := NewClient(nil, cfg, logging.NewDiscard())

	url := client.ManifestURL("stream-xyz")
	expected := cfg.StreamPrefix + "stream-xyz" + "/manifest/video.mpd"
	if url != expected {
		t.Errorf("Expected %q, got %q", expected, url)
	}
}
