package session

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scanmart/scanmart/internal/catalog"
	"github.com/scanmart/scanmart/internal/checkout"
	"github.com/scanmart/scanmart/internal/order"
	"github.com/scanmart/scanmart/internal/platform/httpx"
	"github.com/scanmart/scanmart/internal/scan"
	"github.com/scanmart/scanmart/internal/seed"
	"github.com/scanmart/scanmart/internal/store"
	"github.com/scanmart/scanmart/internal/user"
	"github.com/scanmart/scanmart/jobs"
)

type captureEnqueuer struct {
	payloads []jobs.OrderReceiptPayload
}

func (c *captureEnqueuer) EnqueueOrderReceipt(_ context.Context, p jobs.OrderReceiptPayload) (*asynq.TaskInfo, error) {
	c.payloads = append(c.payloads, p)
	return nil, nil
}

func newTestService(t *testing.T, receipts ReceiptEnqueuer) *Service {
	t.Helper()
	ctx := context.Background()
	logger := slog.Default()

	storeRepo := store.NewMemoryRepository()
	productRepo := catalog.NewMemoryRepository()
	userSvc := user.NewService(user.NewMemoryRepository())
	require.NoError(t, seed.Load(ctx, logger, storeRepo, productRepo, userSvc))

	cfg := checkout.Config{
		InitialDelay: 5 * time.Millisecond,
		StepWeight:   10,
		StepInterval: 2 * time.Millisecond,
		HoldDuration: 5 * time.Millisecond,
	}
	return NewService(
		logger,
		NewManager(),
		store.NewService(storeRepo),
		catalog.NewService(productRepo),
		order.NewService(order.NewMemoryRepository()),
		scan.NewStoreProvider(0),
		scan.NewBarcodeProvider(0),
		cfg,
		receipts,
	)
}

func TestScanStoreAttachesDemoStore(t *testing.T) {
	svc := newTestService(t, nil)
	sess := svc.Create()

	details, err := svc.ScanStore(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "GreenMart", details.Name)
	assert.Len(t, details.Layout.Sections, 5)
}

func TestScanProductRequiresStore(t *testing.T) {
	svc := newTestService(t, nil)
	sess := svc.Create()

	_, err := svc.ScanProduct(context.Background(), sess.ID)
	assert.ErrorIs(t, err, httpx.ErrConflict)
}

func TestScanProductAddsCatalogueItem(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()
	sess := svc.Create()
	_, err := svc.ScanStore(ctx, sess.ID)
	require.NoError(t, err)

	view, err := svc.ScanProduct(ctx, sess.ID)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 1, view.Items[0].Quantity)
	assert.NotEmpty(t, view.Items[0].Product.Barcode)
}

func TestAddItemByBarcode(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()
	sess := svc.Create()
	_, err := svc.AttachStore(ctx, sess.ID, "store:1:GreenMart:Downtown")
	require.NoError(t, err)

	view, err := svc.AddItem(ctx, sess.ID, "7896080900021", 0, 2)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, "Organic Broccoli", view.Items[0].Product.Name)
	assert.InDelta(t, 4.98, view.Totals.Subtotal, 1e-9)
}

func TestAddItemUnknownBarcode(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()
	sess := svc.Create()
	_, err := svc.AttachStore(ctx, sess.ID, "store:1:GreenMart:Downtown")
	require.NoError(t, err)

	_, err = svc.AddItem(ctx, sess.ID, "0000000000000", 0, 1)
	assert.ErrorIs(t, err, httpx.ErrNotFound)
}

func TestAttachStoreRejectsMalformedCode(t *testing.T) {
	svc := newTestService(t, nil)
	sess := svc.Create()
	_, err := svc.AttachStore(context.Background(), sess.ID, "coupon:50off")
	assert.ErrorIs(t, err, httpx.ErrValidation)
}

func TestStartCheckoutEmptyCart(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()
	sess := svc.Create()
	_, err := svc.AttachStore(ctx, sess.ID, "store:1:GreenMart:Downtown")
	require.NoError(t, err)

	_, err = svc.StartCheckout(sess.ID)
	assert.ErrorIs(t, err, httpx.ErrValidation)
}

func TestConfirmBeforeVerifiedConflicts(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()
	sess := svc.Create()
	_, err := svc.AttachStore(ctx, sess.ID, "store:1:GreenMart:Downtown")
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, sess.ID, "7891234567890", 0, 1)
	require.NoError(t, err)

	status, err := svc.StartCheckout(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, checkout.StateWaiting, status.State)

	_, err = svc.Confirm(ctx, sess.ID)
	assert.ErrorIs(t, err, httpx.ErrConflict)
}

func TestCheckoutFlowCompletesOrder(t *testing.T) {
	receipts := &captureEnqueuer{}
	svc := newTestService(t, receipts)
	ctx := context.Background()
	sess := svc.Create()
	_, err := svc.AttachStore(ctx, sess.ID, "store:1:GreenMart:Downtown")
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, sess.ID, "7896080900021", 0, 1)
	require.NoError(t, err)
	view, err := svc.AddItem(ctx, sess.ID, "7891234567890", 0, 2)
	require.NoError(t, err)

	_, err = svc.StartCheckout(sess.ID)
	require.NoError(t, err)

	deadline := time.Now().Add(2 * time.Second)
	for {
		status, err := svc.CheckoutStatus(sess.ID)
		require.NoError(t, err)
		if status.State == checkout.StateVerified {
			break
		}
		require.True(t, time.Now().Before(deadline), "verification never completed")
		time.Sleep(2 * time.Millisecond)
	}

	created, err := svc.Confirm(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, order.StatusCompleted, created.Status)
	assert.Contains(t, created.OrderNumber, "ORD-")
	assert.InDelta(t, view.Totals.Total, created.TotalAmount, 1e-9)
	assert.InDelta(t, view.Totals.Weight, created.TotalWeight, 1e-9)
	require.Len(t, created.Items, 2)
	assert.Equal(t, 2, created.Items[1].Quantity)

	require.Len(t, receipts.payloads, 1)
	assert.Equal(t, created.OrderNumber, receipts.payloads[0].OrderNumber)
	assert.Equal(t, "GreenMart", receipts.payloads[0].StoreName)

	after, err := svc.Cart(sess.ID)
	require.NoError(t, err)
	assert.Empty(t, after.Items)

	_, err = svc.Confirm(ctx, sess.ID)
	assert.ErrorIs(t, err, httpx.ErrNotFound)
}

func TestCancelCheckoutKeepsCart(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()
	sess := svc.Create()
	_, err := svc.AttachStore(ctx, sess.ID, "store:1:GreenMart:Downtown")
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, sess.ID, "7893210987654", 0, 1)
	require.NoError(t, err)
	_, err = svc.StartCheckout(sess.ID)
	require.NoError(t, err)

	require.NoError(t, svc.CancelCheckout(sess.ID))

	_, err = svc.CheckoutStatus(sess.ID)
	assert.ErrorIs(t, err, httpx.ErrNotFound)

	view, err := svc.Cart(sess.ID)
	require.NoError(t, err)
	assert.Len(t, view.Items, 1)
}

func TestEndSessionRemovesIt(t *testing.T) {
	svc := newTestService(t, nil)
	sess := svc.Create()
	svc.End(sess.ID)
	_, err := svc.Cart(sess.ID)
	assert.ErrorIs(t, err, httpx.ErrNotFound)
}
