// Package api implements the client of the document-question-answering
// backend. All operations are stateless pass-throughs over HTTP with a
// bounded timeout; there is no retry, no backoff and no response caching.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

// DefaultTimeout bounds every backend call.
const DefaultTimeout = 30 * time.Second

// Client is a stateless HTTP client of the backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New instantiates a client. A zero timeout falls back to DefaultTimeout.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// AskResponse holds the backend answer to a question.
type AskResponse struct {
	Content string `json:"content"`
}

// MessageResponse holds a plain acknowledgement message.
type MessageResponse struct {
	Message string `json:"message"`
}

// SessionInfo holds the metadata of a backend session.
type SessionInfo struct {
	SessionID string   `json:"session_id"`
	CreatedAt float64  `json:"created_at"`
	FileCount int      `json:"file_count"`
	FileNames []string `json:"file_names"`
}

// HealthResponse holds the backend health report.
type HealthResponse struct {
	Status         string `json:"status"`
	ActiveSessions int    `json:"active_sessions"`
	ModelsLoaded   bool   `json:"models_loaded"`
}

// Ask submits a question bound to a session. The session id must be present;
// callers are expected to guard this before reaching for the network.
func (c *Client) Ask(ctx context.Context, sessionID, question, customPrompt string) (*AskResponse, error) {
	if sessionID == "" {
		return nil, errors.New("session id is required")
	}
	request := struct {
		Question     string `json:"question"`
		CustomPrompt string `json:"custom_prompt,omitempty"`
	}{Question: question, CustomPrompt: customPrompt}

	response := &AskResponse{}
	if err := c.doJSON(ctx, http.MethodPost, "/ask/"+sessionID, request, response); err != nil {
		return nil, err
	}
	return response, nil
}

// UpdateSessionPrompt sets the custom prompt of a session.
func (c *Client) UpdateSessionPrompt(ctx context.Context, sessionID, customPrompt string) (*MessageResponse, error) {
	if sessionID == "" {
		return nil, errors.New("session id is required")
	}
	request := struct {
		CustomPrompt string `json:"custom_prompt"`
	}{CustomPrompt: customPrompt}

	response := &MessageResponse{}
	if err := c.doJSON(ctx, http.MethodPost, "/sessions/"+sessionID+"/prompt", request, response); err != nil {
		return nil, err
	}
	return response, nil
}

// GetSessionInfo fetches the metadata of a session.
func (c *Client) GetSessionInfo(ctx context.Context, sessionID string) (*SessionInfo, error) {
	if sessionID == "" {
		return nil, errors.New("session id is required")
	}
	response := &SessionInfo{}
	if err := c.doJSON(ctx, http.MethodGet, "/sessions/"+sessionID, nil, response); err != nil {
		return nil, err
	}
	return response, nil
}

// DeleteSession deletes a session and its indexed documents.
func (c *Client) DeleteSession(ctx context.Context, sessionID string) (*MessageResponse, error) {
	if sessionID == "" {
		return nil, errors.New("session id is required")
	}
	response := &MessageResponse{}
	if err := c.doJSON(ctx, http.MethodDelete, "/sessions/"+sessionID, nil, response); err != nil {
		return nil, err
	}
	return response, nil
}

// Health checks the backend health.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	response := &HealthResponse{}
	if err := c.doJSON(ctx, http.MethodGet, "/health", nil, response); err != nil {
		return nil, err
	}
	return response, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, request, response any) error {
	var body io.Reader
	if request != nil {
		encoded, err := json.Marshal(request)
		if err != nil {
			return errors.Wrap(err, "marshaling request")
		}
		body = bytes.NewReader(encoded)
	}

	httpRequest, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return errors.Wrap(err, "creating request")
	}
	if request != nil {
		httpRequest.Header.Set("Content-Type", "application/json")
	}

	httpResponse, err := c.httpClient.Do(httpRequest)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}
	defer httpResponse.Body.Close()

	if httpResponse.StatusCode != http.StatusOK {
		return newAPIError(httpResponse)
	}

	if err := json.NewDecoder(httpResponse.Body).Decode(response); err != nil {
		return errors.Wrap(err, "decoding response")
	}
	return nil
}

func newAPIError(httpResponse *http.Response) error {
	apiError := &APIError{StatusCode: httpResponse.StatusCode}
	body, err := io.ReadAll(httpResponse.Body)
	if err != nil {
		apiError.Message = httpResponse.Status
		return apiError
	}

	// The backend reports errors as {"detail": "..."}.
	var detail struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &detail); err == nil && detail.Detail != "" {
		apiError.Message = detail.Detail
	} else {
		apiError.Message = fmt.Sprintf("%s: %s", httpResponse.Status, string(body))
	}
	return apiError
}
