// Package scan simulates the device camera. Providers block for the time a
// shopper would take to line up a code, then emit one scanned value. Decoder
// reads QR codes out of uploaded images for clients without camera access.
package scan

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// Provider emits one scanned code per call. Scan blocks until the simulated
// capture completes or ctx is cancelled.
type Provider interface {
	Scan(ctx context.Context) (string, error)
}

// StoreProvider simulates scanning the QR code at the store entrance. It
// always yields the demo store's code.
type StoreProvider struct {
	Code  string
	Delay time.Duration
}

// NewStoreProvider returns a provider for the demo store entrance code.
func NewStoreProvider(delay time.Duration) *StoreProvider {
	return &StoreProvider{
		Code:  "store:1:GreenMart:Downtown",
		Delay: delay,
	}
}

// Scan waits for the capture delay and returns the store code.
func (p *StoreProvider) Scan(ctx context.Context) (string, error) {
	if err := sleep(ctx, p.Delay); err != nil {
		return "", err
	}
	return p.Code, nil
}

// sampleBarcodes are the product barcodes the simulated camera can land on.
var sampleBarcodes = []string{
	"7896080900021",
	"7891234567890",
	"7893210987654",
	"7897890123456",
	"7899876543210",
}

// BarcodeProvider simulates scanning a product barcode. Each call yields a
// random barcode from the demo catalog.
type BarcodeProvider struct {
	Delay time.Duration

	mu  sync.Mutex
	rng *rand.Rand
}

// NewBarcodeProvider returns a provider seeded from the clock.
func NewBarcodeProvider(delay time.Duration) *BarcodeProvider {
	return &BarcodeProvider{
		Delay: delay,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Scan waits for the capture delay and returns a random catalog barcode.
func (p *BarcodeProvider) Scan(ctx context.Context) (string, error) {
	if err := sleep(ctx, p.Delay); err != nil {
		return "", err
	}
	p.mu.Lock()
	code := sampleBarcodes[p.rng.Intn(len(sampleBarcodes))]
	p.mu.Unlock()
	return code, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
