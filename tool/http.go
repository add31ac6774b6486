package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// HTTPTool is a collaborator backed by an HTTP GET endpoint that takes query
// parameters and returns a JSON body. String-valued inputs become query
// parameters; an optional API key is attached under the configured parameter
// name.
//
// Transport-level failures (network error, non-2xx status, malformed JSON)
// are returned to the caller so the invoking stage can convert them into its
// own typed failure; they are never raised as panics.
type HTTPTool struct {
	name        string
	description string
	baseURL     string
	apiKey      string
	keyParam    string
	client      *http.Client
}

// HTTPToolOptions configures construction of an HTTPTool.
type HTTPToolOptions struct {
	// APIKey is attached to every request when non-empty.
	APIKey string
	// KeyParam is the query parameter name the API key is sent under. Defaults to "key".
	KeyParam string
	// Client overrides the HTTP client. Defaults to a 30s-timeout client.
	Client *http.Client
}

// NewHTTPTool constructs an HTTPTool for the given base URL.
func NewHTTPTool(name, description, baseURL string, optFns ...func(o *HTTPToolOptions)) *HTTPTool {
	opts := HTTPToolOptions{
		KeyParam: "key",
		Client:   &http.Client{Timeout: 30 * time.Second},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &HTTPTool{
		name:        name,
		description: description,
		baseURL:     baseURL,
		apiKey:      opts.APIKey,
		keyParam:    opts.KeyParam,
		client:      opts.Client,
	}
}

// Name returns the unique collaborator name.
func (t *HTTPTool) Name() string { return t.name }

// Description returns the human-readable description.
func (t *HTTPTool) Description() string { return t.description }

// Call issues a GET request with the string-valued args as query parameters
// and decodes the JSON response body into the result payload.
func (t *HTTPTool) Call(ctx context.Context, args map[string]any) (Result, error) {
	q := url.Values{}
	for k, v := range args {
		switch val := v.(type) {
		case string:
			q.Set(k, val)
		case fmt.Stringer:
			q.Set(k, val.String())
		case float64, int, bool:
			q.Set(k, fmt.Sprintf("%v", val))
		}
	}
	if t.apiKey != "" {
		q.Set(t.keyParam, t.apiKey)
	}

	reqURL := t.baseURL
	if encoded := q.Encode(); encoded != "" {
		reqURL += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return Result{}, fmt.Errorf("build request: %w", err)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("request %s: %w", t.name, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Errorf("unexpected status %d from %s", resp.StatusCode, t.name), nil
	}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return Result{}, fmt.Errorf("decode response from %s: %w", t.name, err)
	}

	// Upstream APIs report their own failures inside a 200 body.
	if errField, ok := payload["error"].(map[string]any); ok {
		if msg, ok := errField["message"].(string); ok {
			return Errorf("%s", msg), nil
		}
		return Errorf("upstream error from %s", t.name), nil
	}

	return Success(payload), nil
}
