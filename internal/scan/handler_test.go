package scan

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	qrgen "github.com/skip2/go-qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scanmart/scanmart/internal/platform/httpx"
	"github.com/scanmart/scanmart/internal/store"
)

type stubResolver struct {
	known map[string]*store.Details
}

func (s *stubResolver) StoreByQRCode(_ context.Context, qrCode string) (*store.Details, error) {
	if d, ok := s.known[qrCode]; ok {
		return d, nil
	}
	return nil, fmt.Errorf("store %q: %w", qrCode, httpx.ErrNotFound)
}

func newDecodeRouter(resolver StoreResolver) http.Handler {
	r := chi.NewRouter()
	r.Route("/api/scan", NewHandler(slog.Default(), resolver).MountRoutes)
	return r
}

func qrUpload(t *testing.T, content string) (*bytes.Buffer, string) {
	t.Helper()
	png, err := qrgen.Encode(content, qrgen.Medium, 256)
	require.NoError(t, err)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("image", "scan.png")
	require.NoError(t, err)
	_, err = part.Write(png)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestDecodeEndpointResolvesStore(t *testing.T) {
	resolver := &stubResolver{known: map[string]*store.Details{
		"store:1:GreenMart:Downtown": {ID: 1, Name: "GreenMart", Branch: "Downtown Branch", QRCode: "store:1:GreenMart:Downtown"},
	}}
	router := newDecodeRouter(resolver)

	body, contentType := qrUpload(t, "store:1:GreenMart:Downtown")
	req := httptest.NewRequest(http.MethodPost, "/api/scan/decode", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"store:1:GreenMart:Downtown"`)
	assert.Contains(t, rec.Body.String(), `"name":"GreenMart"`)
}

func TestDecodeEndpointNonStoreCode(t *testing.T) {
	router := newDecodeRouter(&stubResolver{})

	body, contentType := qrUpload(t, "hello world")
	req := httptest.NewRequest(http.MethodPost, "/api/scan/decode", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"hello world"`)
	assert.NotContains(t, rec.Body.String(), `"store"`)
}

func TestDecodeEndpointRejectsUnreadableImage(t *testing.T) {
	router := newDecodeRouter(&stubResolver{})

	req := httptest.NewRequest(http.MethodPost, "/api/scan/decode", strings.NewReader("not an image"))
	req.Header.Set("Content-Type", "application/octet-stream")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
