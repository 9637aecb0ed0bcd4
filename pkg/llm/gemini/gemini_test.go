package gemini

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient("test-key", "test-model", 2*time.Second).WithBaseURL(srv.URL)
}

func sseChunk(text string) string {
	return fmt.Sprintf("data: {\"candidates\":[{\"content\":{\"parts\":[{\"text\":%q}]}}]}\n\n", text)
}

func TestGenerate(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/test-model:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"yes"}]}}]}`))
	})

	got, err := client.Generate(context.Background(), "is this ML?")
	require.NoError(t, err)
	assert.Equal(t, "yes", got)
}

func TestGenerateUpstreamError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":"quota"}`))
	})

	_, err := client.Generate(context.Background(), "prompt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestGenerateStreamDeliversFragmentsInOrder(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/test-model:streamGenerateContent", r.URL.Path)
		assert.Equal(t, "sse", r.URL.Query().Get("alt"))
		w.Write([]byte(sseChunk("A") + sseChunk("B") + sseChunk("C") + "data: [DONE]\n\n"))
	})

	var fragments []string
	full, err := client.GenerateStream(context.Background(), "prompt", func(text string) error {
		fragments = append(fragments, text)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, fragments)
	assert.Equal(t, "ABC", full)
}

func TestGenerateStreamSkipsMalformedChunks(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sseChunk("ok") + "data: {not json}\n\n" + sseChunk("still ok") + "data: [DONE]\n\n"))
	})

	full, err := client.GenerateStream(context.Background(), "prompt", nil)
	require.NoError(t, err)
	assert.Equal(t, "okstill ok", full)
}

func TestGenerateStreamFragmentErrorAborts(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sseChunk("first") + sseChunk("second") + "data: [DONE]\n\n"))
	})

	wantErr := fmt.Errorf("consumer gone")
	full, err := client.GenerateStream(context.Background(), "prompt", func(text string) error {
		return wantErr
	})
	require.ErrorIs(t, err, wantErr)
	assert.Equal(t, "first", full)
}
