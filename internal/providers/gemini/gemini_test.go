package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	_, err := New(context.Background(), Options{})
	assert.EqualError(t, err, "gemini API key is required")

	p, err := New(context.Background(), Options{APIKey: "key"})
	require.NoError(t, err)
	assert.Equal(t, DefaultModel, p.Model())
}

func TestGenerate(t *testing.T) {
	var gotPath string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"{\"event\":\"E\"}"}]},"finishReason":"STOP"}]}`))
	}))
	defer srv.Close()

	p, err := New(context.Background(), Options{APIKey: "key", Model: "gemini-test", BaseURL: srv.URL})
	require.NoError(t, err)

	out, err := p.Generate(context.Background(), "write a fact")
	require.NoError(t, err)
	assert.Equal(t, `{"event":"E"}`, out)

	assert.True(t, strings.HasSuffix(gotPath, "/models/gemini-test:generateContent"), gotPath)
	assert.Contains(t, gotBody, "contents")
	assert.Contains(t, gotBody, "generationConfig")
}

func TestGenerate_Error(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"code":429,"message":"quota exceeded","status":"RESOURCE_EXHAUSTED"}}`))
	}))
	defer srv.Close()

	p, err := New(context.Background(), Options{APIKey: "key", BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = p.Generate(context.Background(), "write a fact")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gemini generate failed")
}
