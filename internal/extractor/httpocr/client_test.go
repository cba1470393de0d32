package httpocr

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gstbooks/internal/port"
)

func TestExtract_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.Header.Get("Content-Type"), "multipart/form-data")

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.Contains(t, string(body), "application/pdf")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"Invoice Number":"BILL-1","Taxable Amount":100}`))
	}))
	defer srv.Close()

	client := NewClientWithEndpoint(srv.URL, 5*time.Second)
	raw, err := client.Extract(context.Background(), port.ExtractInput{
		FileBytes:   []byte("%PDF-1.4"),
		ContentType: "application/pdf",
	})

	require.NoError(t, err)
	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.Equal(t, "BILL-1", fields["Invoice Number"])
}

func TestExtract_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream OCR unavailable", http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClientWithEndpoint(srv.URL, 5*time.Second)
	_, err := client.Extract(context.Background(), port.ExtractInput{
		FileBytes:   []byte("data"),
		ContentType: "image/png",
	})

	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "502"))
}
