package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	wfmodel "writemaster-api/internal/workflow/model"
	apperrors "writemaster-api/pkg/errors"
)

func newServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClientWithHTTP(srv.URL, srv.Client())
}

func TestClient_Complete_Success(t *testing.T) {
	var got map[string]any
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/generate", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"id":"msg_1","content":[{"type":"text","text":"hello"},{"type":"server_tool_use"},{"type":"text","text":"world"}],"usage":{"input_tokens":3,"output_tokens":5}}`))
	})

	resp, err := c.Complete(context.Background(), wfmodel.UserPrompt("sk-test", "write", "be brief", wfmodel.WebSearchTool))
	require.NoError(t, err)
	assert.Equal(t, "hello\nworld", wfmodel.ExtractText(resp))
	assert.Equal(t, 5, resp.Usage.OutputTokens)

	assert.Equal(t, "sk-test", got["apiKey"])
	assert.Equal(t, "be brief", got["system"])
	tools, ok := got["tools"].([]any)
	require.True(t, ok)
	require.Len(t, tools, 1)
	assert.Equal(t, "web_search", tools[0].(map[string]any)["name"])
	msgs, ok := got["messages"].([]any)
	require.True(t, ok)
	assert.Equal(t, "user", msgs[0].(map[string]any)["role"])
}

func TestClient_Complete_OmitsEmptyToolsAndSystem(t *testing.T) {
	var got map[string]any
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"content":[]}`))
	})

	_, err := c.Complete(context.Background(), wfmodel.UserPrompt("sk-test", "write", ""))
	require.NoError(t, err)
	assert.NotContains(t, got, "tools")
	assert.NotContains(t, got, "system")
}

func TestClient_Complete_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{"gateway error message", http.StatusUnauthorized, `{"error":"invalid x-api-key"}`, "invalid x-api-key"},
		{"no error field", http.StatusBadGateway, `{"detail":"x"}`, "API error: 502"},
		{"empty body", http.StatusInternalServerError, "", "Empty response (status: 500)"},
		{"invalid json", http.StatusOK, "<html>" + strings.Repeat("a", 200), "Invalid JSON: <html>" + strings.Repeat("a", 94)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := c.Complete(context.Background(), wfmodel.UserPrompt("sk-test", "write", ""))
			require.Error(t, err)
			appErr := apperrors.AsAppError(err)
			assert.Equal(t, apperrors.CodeLLMCallFailed, appErr.Code)
			assert.Equal(t, tt.message, apperrors.UserMessage(err))
			assert.Equal(t, tt.status, appErr.HTTPStatus)
		})
	}
}

func TestClient_Complete_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewClientWithHTTP(url, http.DefaultClient)
	_, err := c.Complete(context.Background(), wfmodel.UserPrompt("sk-test", "write", ""))
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(apperrors.UserMessage(err), "Network error: "))
}

func TestResolveEndpoint(t *testing.T) {
	assert.Equal(t, "http://localhost:8080/api/generate", resolveEndpoint("http://localhost:8080"))
	assert.Equal(t, "http://localhost:8080/api/generate", resolveEndpoint("http://localhost:8080/"))
	assert.Equal(t, "http://gw/custom/path", resolveEndpoint("http://gw/custom/path"))
}
