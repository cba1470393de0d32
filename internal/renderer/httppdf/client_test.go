package httppdf

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var fields map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&fields))
		assert.Equal(t, "INV-001", fields["Invoice Number"])

		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.4 rendered"))
	}))
	defer srv.Close()

	client := NewClientWithEndpoint(srv.URL, 5*time.Second)
	pdf, err := client.Render(context.Background(), map[string]any{"Invoice Number": "INV-001"})

	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 rendered", string(pdf))
}

func TestRender_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "template error", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClientWithEndpoint(srv.URL, 5*time.Second)
	_, err := client.Render(context.Background(), map[string]any{})

	assert.Error(t, err)
}
