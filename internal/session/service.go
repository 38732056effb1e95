package session

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/scanmart/scanmart/internal/cart"
	"github.com/scanmart/scanmart/internal/catalog"
	"github.com/scanmart/scanmart/internal/checkout"
	"github.com/scanmart/scanmart/internal/order"
	"github.com/scanmart/scanmart/internal/platform/httpx"
	"github.com/scanmart/scanmart/internal/scan"
	"github.com/scanmart/scanmart/internal/store"
	"github.com/scanmart/scanmart/jobs"
)

// ReceiptEnqueuer submits receipt jobs after checkout. The queue is optional;
// a nil enqueuer means receipts are skipped.
type ReceiptEnqueuer interface {
	EnqueueOrderReceipt(ctx context.Context, payload jobs.OrderReceiptPayload) (*asynq.TaskInfo, error)
}

// CartView is the client-facing snapshot of a session's cart.
type CartView struct {
	Store  *store.Details `json:"store,omitempty"`
	Items  []cart.Line    `json:"items"`
	Totals cart.Totals    `json:"totals"`
}

// Service orchestrates the shopping flow across the catalogue, stores,
// orders, scanning and checkout verification.
type Service struct {
	logger         *slog.Logger
	sessions       *Manager
	stores         *store.Service
	catalog        *catalog.Service
	orders         *order.Service
	storeScanner   scan.Provider
	productScanner scan.Provider
	checkoutCfg    checkout.Config
	receipts       ReceiptEnqueuer
}

// NewService constructs a session service. receipts may be nil.
func NewService(
	logger *slog.Logger,
	sessions *Manager,
	stores *store.Service,
	cat *catalog.Service,
	orders *order.Service,
	storeScanner scan.Provider,
	productScanner scan.Provider,
	checkoutCfg checkout.Config,
	receipts ReceiptEnqueuer,
) *Service {
	return &Service{
		logger:         logger,
		sessions:       sessions,
		stores:         stores,
		catalog:        cat,
		orders:         orders,
		storeScanner:   storeScanner,
		productScanner: productScanner,
		checkoutCfg:    checkoutCfg,
		receipts:       receipts,
	}
}

// Create starts a new shopping session.
func (s *Service) Create() *Session {
	return s.sessions.Create()
}

// End discards a session and cancels any checkout run it still holds.
func (s *Service) End(id string) {
	s.sessions.Delete(id)
}

// ScanStore blocks on the store scanner until a recognizable store code is
// captured, then attaches the store to the session. Codes that do not parse
// are discarded and scanning continues, matching the camera staying open.
func (s *Service) ScanStore(ctx context.Context, sessionID string) (*store.Details, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	for {
		code, err := s.storeScanner.Scan(ctx)
		if err != nil {
			return nil, fmt.Errorf("scan store code: %w", err)
		}
		if _, ok := store.ParseScanCode(code); !ok {
			s.logger.Debug("ignoring unrecognized store code", slog.String("code", code))
			continue
		}
		return s.attachStore(ctx, sess, code)
	}
}

// AttachStore looks up the store for an already-decoded scan code and
// attaches it to the session.
func (s *Service) AttachStore(ctx context.Context, sessionID, code string) (*store.Details, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if _, ok := store.ParseScanCode(code); !ok {
		return nil, fmt.Errorf("unrecognized store code %q: %w", code, httpx.ErrValidation)
	}
	return s.attachStore(ctx, sess, code)
}

func (s *Service) attachStore(ctx context.Context, sess *Session, code string) (*store.Details, error) {
	details, err := s.stores.StoreByQRCode(ctx, code)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	sess.store = details
	sess.mu.Unlock()
	return details, nil
}

// ScanProduct blocks on the product scanner, resolves the captured barcode
// against the catalogue and adds one unit to the session cart.
func (s *Service) ScanProduct(ctx context.Context, sessionID string) (*CartView, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if err := requireStore(sess); err != nil {
		return nil, err
	}
	barcode, err := s.productScanner.Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("scan barcode: %w", err)
	}
	return s.addProduct(ctx, sess, barcode, 0, 1)
}

// AddItem adds a product to the session cart, resolved by barcode when one is
// given, otherwise by product id.
func (s *Service) AddItem(ctx context.Context, sessionID, barcode string, productID int64, quantity int) (*CartView, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if err := requireStore(sess); err != nil {
		return nil, err
	}
	return s.addProduct(ctx, sess, barcode, productID, quantity)
}

func (s *Service) addProduct(ctx context.Context, sess *Session, barcode string, productID int64, quantity int) (*CartView, error) {
	var product *catalog.Product
	var err error
	if barcode != "" {
		product, err = s.catalog.ProductByBarcode(ctx, barcode)
	} else {
		product, err = s.catalog.Product(ctx, productID)
	}
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.cart.AddLine(*product, quantity)
	return viewLocked(sess), nil
}

// UpdateItem overwrites the quantity of a cart line. A quantity of zero or
// less removes the line.
func (s *Service) UpdateItem(sessionID string, productID int64, quantity int) (*CartView, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.cart.SetQuantity(productID, quantity)
	return viewLocked(sess), nil
}

// RemoveItem deletes a cart line.
func (s *Service) RemoveItem(sessionID string, productID int64) (*CartView, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.cart.RemoveLine(productID)
	return viewLocked(sess), nil
}

// Cart returns the current cart snapshot.
func (s *Service) Cart(sessionID string) (*CartView, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return viewLocked(sess), nil
}

// StartCheckout begins a weight verification run for the cart. A run already
// in flight is cancelled and replaced.
func (s *Service) StartCheckout(sessionID string) (checkout.Status, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return checkout.Status{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.store == nil {
		return checkout.Status{}, fmt.Errorf("no store scanned: %w", httpx.ErrConflict)
	}
	if sess.cart.Empty() {
		return checkout.Status{}, fmt.Errorf("cart is empty: %w", httpx.ErrValidation)
	}
	if sess.seq != nil {
		sess.seq.Cancel()
	}
	sess.seq = checkout.NewSequencer(s.checkoutCfg, sess.cart.Totals().Weight)
	return sess.seq.Status(), nil
}

// CheckoutStatus reports the state of the current verification run.
func (s *Service) CheckoutStatus(sessionID string) (checkout.Status, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return checkout.Status{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.seq == nil {
		return checkout.Status{}, fmt.Errorf("no checkout in progress: %w", httpx.ErrNotFound)
	}
	return sess.seq.Status(), nil
}

// CancelCheckout abandons the current verification run. The cart is kept.
func (s *Service) CancelCheckout(sessionID string) error {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.seq == nil {
		return fmt.Errorf("no checkout in progress: %w", httpx.ErrNotFound)
	}
	sess.seq.Cancel()
	sess.seq = nil
	return nil
}

// Confirm completes checkout: the verification run must have reached the
// verified state. Payment is captured by the mock processor, the order is
// recorded, a receipt job is enqueued and the cart is cleared.
func (s *Service) Confirm(ctx context.Context, sessionID string) (*order.WithItems, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.seq == nil {
		return nil, fmt.Errorf("no checkout in progress: %w", httpx.ErrNotFound)
	}
	if !sess.seq.Verified() {
		return nil, fmt.Errorf("weight not verified: %w", httpx.ErrConflict)
	}

	lines := sess.cart.Lines()
	totals := sess.cart.Totals()
	now := time.Now().UTC()

	req := order.CreateOrderRequest{
		StoreID:      sess.store.ID,
		OrderNumber:  fmt.Sprintf("ORD-%d", now.UnixMilli()),
		TotalAmount:  totals.Total,
		TotalTax:     totals.Tax,
		TotalSavings: totals.Savings,
		TotalWeight:  totals.Weight,
		OrderDate:    now.Format(time.RFC3339),
		Status:       order.StatusCompleted,
	}
	for _, line := range lines {
		req.Items = append(req.Items, order.CreateOrderItem{
			ProductID: line.Product.ID,
			Quantity:  line.Quantity,
			Price:     line.Product.Price,
		})
	}

	created, err := s.orders.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	s.enqueueReceipt(ctx, sess, created, lines, totals, now)

	sess.cart.Clear()
	sess.seq = nil

	details, err := s.orders.Get(ctx, created.ID)
	if err != nil {
		return nil, err
	}
	return details, nil
}

func (s *Service) enqueueReceipt(ctx context.Context, sess *Session, o *order.Order, lines []cart.Line, totals cart.Totals, when time.Time) {
	if s.receipts == nil {
		return
	}
	payload := jobs.OrderReceiptPayload{
		OrderID:      o.ID,
		OrderNumber:  o.OrderNumber,
		StoreName:    sess.store.Name,
		StoreBranch:  sess.store.Branch,
		OrderDate:    when,
		Subtotal:     totals.Subtotal,
		TotalTax:     totals.Tax,
		TotalSavings: totals.Savings,
		TotalAmount:  totals.Total,
	}
	for _, line := range lines {
		payload.Lines = append(payload.Lines, jobs.ReceiptLine{
			Name:     line.Product.Name,
			Quantity: line.Quantity,
			Price:    line.Product.Price,
		})
	}
	if _, err := s.receipts.EnqueueOrderReceipt(ctx, payload); err != nil {
		s.logger.Warn("enqueue receipt", slog.String("orderNumber", o.OrderNumber), slog.Any("error", err))
	}
}

func requireStore(sess *Session) error {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.store == nil {
		return fmt.Errorf("no store scanned: %w", httpx.ErrConflict)
	}
	return nil
}

func viewLocked(sess *Session) *CartView {
	return &CartView{
		Store:  sess.store,
		Items:  sess.cart.Lines(),
		Totals: sess.cart.Totals(),
	}
}
