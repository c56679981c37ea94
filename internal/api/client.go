package api

// Package api speaks the platform's GraphQL endpoint: the login mutation
// that trades credentials for a bearer token, and the watch-authorization
// query that trades a video identifier for its stream token.

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/submeta-tools/submeta-dl/internal/config"
)

// GraphQL operation documents. These mirror the platform's own web
// client; the API is versioned by the third party and not ours to shape.
const (
	loginQuery = `
	mutation Login($input: LoginInput!) {
	  login(input: $input) {
	    token
	    user {
	      id
	      name
	      username
	      email
	    }
	    errors {
	      key
	      message
	    }
	  }
	}
	`

	videoAuthQuery = `query GetVideoForWatchAuth($id: ID!, $isStandalone: Boolean) {
	  result: getVideoForWatchAuth(id: $id, isStandalone: $isStandalone) {
	    video {
	      ...VideoForWatchAuthData
	      __typename
	    }
	    isAuthorized
	    errors {
	      ...ErrorsFields
	      __typename
	    }
	    __typename
	  }
	}
	fragment VideoForWatchAuthData on Video {
	  id
	  videoRef
	  token
	  __typename
	}
	fragment ErrorsFields on ErrorOutput {
	  key
	  message
	  __typename
	}
	`
)

// RequestError reports a non-2xx response from the API
type RequestError struct {
	Operation  string
	StatusCode int
}

// Error returns the failed operation and status code
func (e *RequestError) Error() string {
	return fmt.Sprintf("%s request failed with status %d", e.Operation, e.StatusCode)
}

// graphQLRequest is the wire shape of every API call
type graphQLRequest struct {
	OperationName string         `json:"operationName"`
	Variables     map[string]any `json:"variables"`
	Query         string         `json:"query"`
}

// apiError is one entry of a GraphQL-level errors list
type apiError struct {
	Key     string `json:"key"`
	Message string `json:"message"`
}

type loginResponse struct {
	Data struct {
		Login struct {
			Token  string     `json:"token"`
			Errors []apiError `json:"errors"`
		} `json:"login"`
	} `json:"data"`
}

type videoAuthResponse struct {
	Data struct {
		Result struct {
			Video *struct {
				ID       string `json:"id"`
				VideoRef string `json:"videoRef"`
				Token    string `json:"token"`
			} `json:"video"`
			IsAuthorized bool       `json:"isAuthorized"`
			Errors       []apiError `json:"errors"`
		} `json:"result"`
	} `json:"data"`
}

// Client is the authenticated API client shared by the run
type Client struct {
	http   *http.Client
	cfg    *config.Config
	logger *logrus.Logger
}

// NewClient creates a new API client on top of the shared HTTP client
func NewClient(httpClient *http.Client, cfg *config.Config, logger *logrus.Logger) *Client {
	return &Client{
		http:   httpClient,
		cfg:    cfg,
		logger: logger,
	}
}

// Login exchanges credentials for a bearer token. A response without a
// token is a login failure; the full body is logged for diagnosis.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	payload := graphQLRequest{
		OperationName: "Login",
		Variables: map[string]any{
			"input": map[string]any{
				"username": username,
				"password": password,
			},
		},
		Query: loginQuery,
	}

	body, err := c.post(ctx, "Login", payload, "")
	if err != nil {
		c.logger.Errorf("Network error during login: %v", err)
		return "", err
	}

	var parsed loginResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		c.logger.Errorf("Failed to decode login response: %v", err)
		return "", fmt.Errorf("failed to decode login response: %w", err)
	}

	for _, apiErr := range parsed.Data.Login.Errors {
		c.logger.Errorf("Login error from API: %s: %s", apiErr.Key, apiErr.Message)
	}

	token := parsed.Data.Login.Token
	if token == "" {
		c.logger.Errorf("Login failed. Response: %s", string(body))
		return "", fmt.Errorf("login failed: no token in response")
	}

	c.logger.Info("Login successful")
	return token, nil
}

// AuthorizeVideo exchanges a video identifier for its stream token using
// the bearer token from Login
func (c *Client) AuthorizeVideo(ctx context.Context, bearerToken, videoID string) (string, error) {
	payload := graphQLRequest{
		OperationName: "GetVideoForWatchAuth",
		Variables: map[string]any{
			"id":           videoID,
			"isStandalone": false,
		},
		Query: videoAuthQuery,
	}

	body, err := c.post(ctx, "GetVideoForWatchAuth", payload, bearerToken)
	if err != nil {
		return "", err
	}

	var parsed videoAuthResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode video auth response: %w", err)
	}

	for _, apiErr := range parsed.Data.Result.Errors {
		c.logger.Errorf("Video auth error from API for %s: %s: %s", videoID, apiErr.Key, apiErr.Message)
	}

	video := parsed.Data.Result.Video
	if video == nil || video.Token == "" {
		return "", fmt.Errorf("no stream token in response for video %s", videoID)
	}

	return video.Token, nil
}

// ManifestURL builds the manifest URL for a resolved stream token
func (c *Client) ManifestURL(streamToken string) string {
	return c.cfg.StreamPrefix + streamToken + c.cfg.ManifestPath
}

// post sends one GraphQL payload and returns the raw response body.
// bearerToken is optional; when set it is sent as an Authorization header.
func (c *Client) post(ctx context.Context, operation string, payload graphQLRequest, bearerToken string) ([]byte, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s payload: %w", operation, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.APIURL, bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("failed to build %s request: %w", operation, err)
	}

	req.Header.Set("User-Agent", c.cfg.UserAgent)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "*/*")
	req.Header.Set("Origin", c.cfg.SiteOrigin)
	req.Header.Set("Referer", c.cfg.SiteReferer)
	if bearerToken != "" {
		req.Header.Set("Authorization", "Bearer "+bearerToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s request failed: %w", operation, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &RequestError{Operation: operation, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s response: %w", operation, err)
	}

	return body, nil
}
