package assist

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"tle_zone_assist/internal/domain/model"
)

// Service is the assistance API as seen by the workflow.
type Service interface {
	Complete(ctx context.Context, req model.AssistanceRequest) (*model.CompletionResponse, error)
	Review(ctx context.Context, req model.ReviewRequest) (*model.ReviewResponse, error)
}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("assistance service returned %d", e.StatusCode)
	}
	return fmt.Sprintf("assistance service returned %d: %s", e.StatusCode, e.Message)
}

// isNotEntitled reports whether err is the service refusing an AI feature.
func isNotEntitled(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Message == model.NotEntitledMessage
}

// HTTPClient talks to the TLE Zone API with a session bearer token.
type HTTPClient struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewHTTPClient(baseURL, token string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) Complete(ctx context.Context, req model.AssistanceRequest) (*model.CompletionResponse, error) {
	var resp model.CompletionResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/ai/completions", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) Review(ctx context.Context, req model.ReviewRequest) (*model.ReviewResponse, error) {
	var resp model.ReviewResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/ai/review", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CurrentUser fetches the signed-in user from the session service.
func (c *HTTPClient) CurrentUser(ctx context.Context) (*SessionUser, error) {
	var u SessionUser
	if err := c.do(ctx, http.MethodGet, "/api/v1/users/me", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// LatestSubmission returns the caller's latest submission for a problem, or
// nil when there is none yet.
func (c *HTTPClient) LatestSubmission(ctx context.Context, problemID string) (*model.Submission, error) {
	var sub model.Submission
	err := c.do(ctx, http.MethodGet, "/api/v1/submissions/problem/"+url.PathEscape(problemID)+"/latest", nil, &sub)
	var se *StatusError
	if errors.As(err, &se) && se.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var failure struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		_ = json.Unmarshal(data, &failure)
		msg := failure.Message
		if msg == "" {
			msg = failure.Error
		}
		return &StatusError{StatusCode: resp.StatusCode, Message: msg}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
