package store

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scanmart/scanmart/internal/platform/httpx"
)

const testLayout = `{"sections":[
	{"id":"produce","name":"Produce","color":"bg-green-100","position":{"x":0,"y":0,"width":33,"height":67}},
	{"id":"dairy","name":"Dairy","color":"bg-blue-100","position":{"x":67,"y":0,"width":33,"height":67}}
]}`

func newTestService(t *testing.T) *Service {
	t.Helper()
	repo := NewMemoryRepository()
	_, err := repo.CreateStore(context.Background(), CreateStoreRequest{
		Name:       "GreenMart",
		Branch:     "Downtown Branch",
		QRCode:     "store:1:GreenMart:Downtown",
		LayoutJSON: testLayout,
	})
	require.NoError(t, err)
	return NewService(repo)
}

func TestParseScanCode(t *testing.T) {
	code, ok := ParseScanCode("store:1:GreenMart:Downtown")
	require.True(t, ok)
	assert.Equal(t, int64(1), code.StoreID)
	assert.Equal(t, "GreenMart", code.Name)
	assert.Equal(t, "Downtown", code.Branch)
}

func TestParseScanCodeMalformed(t *testing.T) {
	cases := map[string]string{
		"wrong prefix":   "shop:1:GreenMart:Downtown",
		"too few parts":  "store:1:GreenMart",
		"non-numeric id": "store:one:GreenMart:Downtown",
		"empty":          "",
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, ok := ParseScanCode(raw)
			assert.False(t, ok)
		})
	}
}

func TestStoreParsesLayout(t *testing.T) {
	svc := newTestService(t)

	details, err := svc.Store(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, details.Layout.Sections, 2)
	assert.Equal(t, "Produce", details.Layout.Sections[0].Name)
	assert.Equal(t, 67, details.Layout.Sections[1].Position.X)
}

func TestStoreByQRCode(t *testing.T) {
	svc := newTestService(t)

	details, err := svc.StoreByQRCode(context.Background(), "store:1:GreenMart:Downtown")
	require.NoError(t, err)
	assert.Equal(t, "GreenMart", details.Name)

	_, err = svc.StoreByQRCode(context.Background(), "store:9:Nowhere:Mall")
	assert.ErrorIs(t, err, httpx.ErrNotFound)
}

func TestQRCodePNG(t *testing.T) {
	svc := newTestService(t)

	png, err := svc.QRCodePNG(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))
}

func TestQRCodePNGUnknownStore(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.QRCodePNG(context.Background(), 42)
	assert.ErrorIs(t, err, httpx.ErrNotFound)
}
