package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/fitstack/clubledger/internal/invoice/domain"
	"github.com/fitstack/clubledger/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) (domain.Service, *snowflake.Node) {
	t.Helper()

	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&domain.Invoice{}, &domain.InvoiceItem{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:    conn,
		Log:   zap.NewNop(),
		GenID: node,
	})
	return svc, node
}

func TestCreateInvoiceComputesTotals(t *testing.T) {
	svc, node := newTestService(t)

	resp, err := svc.Create(context.Background(), domain.CreateInvoiceRequest{
		UserID: node.Generate(),
		Items: []domain.LineItem{
			{ItemName: "Whey Protein 1kg", Quantity: 2, UnitPrice: 250000, GSTRate: 18},
			{ItemName: "Shaker", Quantity: 1, UnitPrice: 30000, GSTRate: 12},
		},
		Shipping: 5000,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(530000), resp.Invoice.ItemsSubtotal)
	// 18% of 500000 plus 12% of 30000.
	assert.Equal(t, int64(93600), resp.Invoice.GSTTotal)
	assert.Equal(t, int64(628600), resp.Invoice.FinalTotal)
	assert.Equal(t, domain.InvoiceStatusPending, resp.Invoice.Status)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, int64(500000), resp.Items[0].LineTotal)
}

func TestCreateInvoiceValidation(t *testing.T) {
	svc, node := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateInvoiceRequest{UserID: node.Generate()})
	assert.ErrorIs(t, err, domain.ErrNoItems)

	_, err = svc.Create(ctx, domain.CreateInvoiceRequest{
		UserID: node.Generate(),
		Items:  []domain.LineItem{{ItemName: "", Quantity: 1, UnitPrice: 100}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidItem)

	_, err = svc.Create(ctx, domain.CreateInvoiceRequest{
		UserID: node.Generate(),
		Items:  []domain.LineItem{{ItemName: "Towel", Quantity: 0, UnitPrice: 100}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidItem)

	_, err = svc.Create(ctx, domain.CreateInvoiceRequest{
		UserID: 0,
		Items:  []domain.LineItem{{ItemName: "Towel", Quantity: 1, UnitPrice: 100}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidID)
}

func TestGetByIDReturnsItems(t *testing.T) {
	svc, node := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateInvoiceRequest{
		UserID: node.Generate(),
		Items: []domain.LineItem{
			{ItemName: "Day Pass", Quantity: 1, UnitPrice: 50000, GSTRate: 18},
		},
	})
	require.NoError(t, err)

	found, err := svc.GetByID(ctx, created.Invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Invoice.ID, found.Invoice.ID)
	require.Len(t, found.Items, 1)
	assert.Equal(t, "Day Pass", found.Items[0].ItemName)

	_, err = svc.GetByID(ctx, node.Generate())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMarkPaidLifecycle(t *testing.T) {
	svc, node := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateInvoiceRequest{
		UserID: node.Generate(),
		Items:  []domain.LineItem{{ItemName: "Membership", Quantity: 1, UnitPrice: 150000}},
	})
	require.NoError(t, err)

	paid, err := svc.MarkPaid(ctx, created.Invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceStatusPaid, paid.Status)
	require.NotNil(t, paid.PaidAt)

	_, err = svc.MarkPaid(ctx, created.Invoice.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyPaid)

	_, err = svc.MarkRejected(ctx, created.Invoice.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyPaid)
}

func TestMarkRejectedBlocksPayment(t *testing.T) {
	svc, node := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateInvoiceRequest{
		UserID: node.Generate(),
		Items:  []domain.LineItem{{ItemName: "Membership", Quantity: 1, UnitPrice: 150000}},
	})
	require.NoError(t, err)

	rejected, err := svc.MarkRejected(ctx, created.Invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceStatusRejected, rejected.Status)
	assert.Nil(t, rejected.PaidAt)

	_, err = svc.MarkPaid(ctx, created.Invoice.ID)
	assert.ErrorIs(t, err, domain.ErrNotPayable)
}
