package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAsk(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/ask/session-1", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var request struct {
			Question     string `json:"question"`
			CustomPrompt string `json:"custom_prompt"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&request))
		require.Equal(t, "what is this?", request.Question)
		require.Empty(t, request.CustomPrompt)

		json.NewEncoder(w).Encode(map[string]string{"content": "A report."})
	}))
	defer server.Close()

	client := New(server.URL, time.Second)
	response, err := client.Ask(context.Background(), "session-1", "what is this?", "")
	require.NoError(t, err)
	require.Equal(t, "A report.", response.Content)
}

func TestAskOmitsEmptyCustomPrompt(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var request map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&request))
		require.NotContains(t, request, "custom_prompt")
		json.NewEncoder(w).Encode(map[string]string{"content": "ok"})
	}))
	defer server.Close()

	client := New(server.URL, time.Second)
	_, err := client.Ask(context.Background(), "session-1", "q", "")
	require.NoError(t, err)
}

func TestAskRequiresSessionID(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer server.Close()

	client := New(server.URL, time.Second)
	_, err := client.Ask(context.Background(), "", "question", "")
	require.Error(t, err)
	require.Zero(t, requests)
}

func TestAskBackendError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Session not found"})
	}))
	defer server.Close()

	client := New(server.URL, time.Second)
	_, err := client.Ask(context.Background(), "session-1", "q", "")
	require.Error(t, err)

	apiError := &APIError{}
	require.ErrorAs(t, err, &apiError)
	require.Equal(t, http.StatusNotFound, apiError.StatusCode)
	require.Equal(t, "Session not found", apiError.Message)
	require.Contains(t, apiError.Error(), "404")
}

func TestAskBackendErrorWithoutDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("boom"))
	}))
	defer server.Close()

	client := New(server.URL, time.Second)
	_, err := client.Ask(context.Background(), "session-1", "q", "")

	apiError := &APIError{}
	require.ErrorAs(t, err, &apiError)
	require.Equal(t, http.StatusInternalServerError, apiError.StatusCode)
	require.Contains(t, apiError.Message, "boom")
}

func TestUpdateSessionPrompt(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/sessions/session-1/prompt", r.URL.Path)

		var request struct {
			CustomPrompt string `json:"custom_prompt"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&request))
		require.Equal(t, "answer in French", request.CustomPrompt)

		json.NewEncoder(w).Encode(map[string]string{"message": "Prompt updated"})
	}))
	defer server.Close()

	client := New(server.URL, time.Second)
	response, err := client.UpdateSessionPrompt(context.Background(), "session-1", "answer in French")
	require.NoError(t, err)
	require.Equal(t, "Prompt updated", response.Message)
}

func TestGetSessionInfo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/sessions/session-1", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"session_id": "session-1",
			"created_at": 1724800000.5,
			"file_count": 2,
			"file_names": []string{"a.pdf", "b.pdf"},
		})
	}))
	defer server.Close()

	client := New(server.URL, time.Second)
	info, err := client.GetSessionInfo(context.Background(), "session-1")
	require.NoError(t, err)
	require.Equal(t, "session-1", info.SessionID)
	require.Equal(t, 2, info.FileCount)
	require.Equal(t, []string{"a.pdf", "b.pdf"}, info.FileNames)
}

func TestDeleteSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/sessions/session-1", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]string{"message": "Session deleted"})
	}))
	defer server.Close()

	client := New(server.URL, time.Second)
	response, err := client.DeleteSession(context.Background(), "session-1")
	require.NoError(t, err)
	require.Equal(t, "Session deleted", response.Message)
}

func TestHealth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/health", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"status":          "healthy",
			"active_sessions": 3,
			"models_loaded":   true,
		})
	}))
	defer server.Close()

	client := New(server.URL, time.Second)
	health, err := client.Health(context.Background())
	require.NoError(t, err)
	require.Equal(t, "healthy", health.Status)
	require.Equal(t, 3, health.ActiveSessions)
	require.True(t, health.ModelsLoaded)
}

func TestNewDefaultsTimeout(t *testing.T) {
	client := New("http://localhost:8000", 0)
	require.Equal(t, DefaultTimeout, client.httpClient.Timeout)

	client = New("http://localhost:8000", 5*time.Second)
	require.Equal(t, 5*time.Second, client.httpClient.Timeout)
}
