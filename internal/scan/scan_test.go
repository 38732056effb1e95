package scan

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	qrgen "github.com/skip2/go-qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scanmart/scanmart/internal/platform/httpx"
)

func TestStoreProviderEmitsStoreCode(t *testing.T) {
	p := NewStoreProvider(0)
	code, err := p.Scan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "store:1:GreenMart:Downtown", code)
}

func TestStoreProviderHonorsCancellation(t *testing.T) {
	p := NewStoreProvider(time.Minute)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := p.Scan(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBarcodeProviderEmitsKnownBarcode(t *testing.T) {
	p := NewBarcodeProvider(0)
	for range 20 {
		code, err := p.Scan(context.Background())
		require.NoError(t, err)
		assert.Contains(t, sampleBarcodes, code)
	}
}

func TestBarcodeProviderHonorsDeadline(t *testing.T) {
	p := NewBarcodeProvider(time.Minute)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()
	_, err := p.Scan(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestDecoderRoundTrip(t *testing.T) {
	png, err := qrgen.Encode("store:1:GreenMart:Downtown", qrgen.Medium, 256)
	require.NoError(t, err)

	text, err := NewDecoder().Decode(bytes.NewReader(png))
	require.NoError(t, err)
	assert.Equal(t, "store:1:GreenMart:Downtown", text)
}

func TestDecoderRejectsGarbage(t *testing.T) {
	_, err := NewDecoder().Decode(strings.NewReader("not an image"))
	assert.ErrorIs(t, err, httpx.ErrDecodeFailure)
}
