package store

import (
	"context"
	"encoding/json"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// qrImageSize is the pixel size of generated store QR codes.
const qrImageSize = 256

// Service provides store lookups with parsed layouts.
type Service struct {
	repo Repository
}

// NewService constructs a store service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Store retrieves a store by id with its layout parsed.
func (s *Service) Store(ctx context.Context, id int64) (*Details, error) {
	rec, err := s.repo.Store(ctx, id)
	if err != nil {
		return nil, err
	}
	return toDetails(rec)
}

// StoreByQRCode retrieves a store by its scan code with its layout parsed.
func (s *Service) StoreByQRCode(ctx context.Context, qrCode string) (*Details, error) {
	rec, err := s.repo.StoreByQRCode(ctx, qrCode)
	if err != nil {
		return nil, err
	}
	return toDetails(rec)
}

// AllStores lists every store with parsed layouts.
func (s *Service) AllStores(ctx context.Context) ([]Details, error) {
	recs, err := s.repo.AllStores(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Details, 0, len(recs))
	for i := range recs {
		d, err := toDetails(&recs[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, nil
}

// QRCodePNG renders the store's scan code as a QR image.
func (s *Service) QRCodePNG(ctx context.Context, id int64) ([]byte, error) {
	rec, err := s.repo.Store(ctx, id)
	if err != nil {
		return nil, err
	}
	png, err := qrcode.Encode(rec.QRCode, qrcode.Medium, qrImageSize)
	if err != nil {
		return nil, fmt.Errorf("encode store qr: %w", err)
	}
	return png, nil
}

func toDetails(rec *Store) (*Details, error) {
	var layout Layout
	if err := json.Unmarshal([]byte(rec.LayoutJSON), &layout); err != nil {
		return nil, fmt.Errorf("parse store %d layout: %w", rec.ID, err)
	}
	return &Details{
		ID:     rec.ID,
		Name:   rec.Name,
		Branch: rec.Branch,
		QRCode: rec.QRCode,
		Layout: layout,
	}, nil
}
