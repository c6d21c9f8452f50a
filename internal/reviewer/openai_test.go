package reviewer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAI_Complete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "gpt-4o", body["model"])
		assert.InDelta(t, 0.1, body["temperature"], 0.0001)
		assert.Equal(t, map[string]any{"type": "json_object"}, body["response_format"])
		messages := body["messages"].([]any)
		require.Len(t, messages, 2)
		assert.Equal(t, "system", messages[0].(map[string]any)["role"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"c1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"{\"status\":\"CLEAN\"}"},"finish_reason":"stop"}]}`))
	}))
	defer server.Close()

	o := NewOpenAI("sk-test", server.URL+"/v1", "gpt-4o")

	out, err := o.Complete(context.Background(), "system", "user")

	require.NoError(t, err)
	assert.Equal(t, `{"status":"CLEAN"}`, out)
}

func TestOpenAI_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"c1","choices":[]}`))
	}))
	defer server.Close()

	_, err := NewOpenAI("sk-test", server.URL+"/v1", "gpt-4o").Complete(context.Background(), "s", "u")

	assert.ErrorContains(t, err, "no choices")
}

func TestOpenAI_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"boom","type":"server_error"}}`))
	}))
	defer server.Close()

	_, err := NewOpenAI("sk-test", server.URL+"/v1", "gpt-4o").Complete(context.Background(), "s", "u")

	assert.ErrorContains(t, err, "chat completion")
}

func TestOpenAI_KeylessEndpoint(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"c1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"{}"},"finish_reason":"stop"}]}`))
	}))
	defer server.Close()

	out, err := NewOpenAI("", server.URL+"/v1", "llama3").Complete(context.Background(), "s", "u")

	require.NoError(t, err)
	assert.Equal(t, "{}", out)
}
