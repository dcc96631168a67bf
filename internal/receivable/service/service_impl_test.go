package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/fitstack/clubledger/internal/receivable/domain"
	"github.com/fitstack/clubledger/internal/receivable/repository"
	userdomain "github.com/fitstack/clubledger/internal/user/domain"
	"github.com/fitstack/clubledger/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) (domain.Service, *snowflake.Node) {
	t.Helper()

	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&userdomain.User{},
		&domain.Receivable{},
		&domain.Transaction{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:    conn,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
	})
	return svc, node
}

func createReceivable(t *testing.T, svc domain.Service, node *snowflake.Node, bill, discount int64) domain.Receivable {
	t.Helper()
	rec, err := svc.CreateReceivable(context.Background(), domain.CreateReceivableRequest{
		UserID:         node.Generate(),
		ReceivableType: domain.ReceivableTypeInvoice,
		SourceID:       node.Generate(),
		BillAmount:     bill,
		DiscountAmount: discount,
	})
	require.NoError(t, err)
	return rec
}

func TestCreateReceivableComputesFinalAmount(t *testing.T) {
	svc, node := newTestService(t)

	rec := createReceivable(t, svc, node, 200000, 20000)

	assert.Equal(t, int64(180000), rec.FinalAmount)
	assert.Equal(t, domain.StatusPending, rec.Status)
}

func TestCreateReceivableValidation(t *testing.T) {
	svc, node := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateReceivable(ctx, domain.CreateReceivableRequest{
		UserID:         node.Generate(),
		ReceivableType: domain.ReceivableTypeInvoice,
		SourceID:       node.Generate(),
		BillAmount:     -1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidBillAmount)

	_, err = svc.CreateReceivable(ctx, domain.CreateReceivableRequest{
		UserID:         node.Generate(),
		ReceivableType: domain.ReceivableTypeInvoice,
		SourceID:       node.Generate(),
		BillAmount:     1000,
		DiscountAmount: 2000,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidDiscount)

	_, err = svc.CreateReceivable(ctx, domain.CreateReceivableRequest{
		UserID:         node.Generate(),
		ReceivableType: domain.ReceivableType("membership"),
		SourceID:       node.Generate(),
		BillAmount:     1000,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidType)
}

func TestCreateReceivableDuplicateSource(t *testing.T) {
	svc, node := newTestService(t)
	ctx := context.Background()

	sourceID := node.Generate()
	req := domain.CreateReceivableRequest{
		UserID:         node.Generate(),
		ReceivableType: domain.ReceivableTypeInvoice,
		SourceID:       sourceID,
		BillAmount:     5000,
	}

	_, err := svc.CreateReceivable(ctx, req)
	require.NoError(t, err)

	_, err = svc.CreateReceivable(ctx, req)
	assert.ErrorIs(t, err, domain.ErrDuplicateSource)

	// Same source under a different type is a distinct receivable.
	req.ReceivableType = domain.ReceivableTypeSubscription
	_, err = svc.CreateReceivable(ctx, req)
	assert.NoError(t, err)
}

func TestBalanceWithNoTransactionsIsPending(t *testing.T) {
	svc, node := newTestService(t)

	rec := createReceivable(t, svc, node, 200000, 0)

	balance, err := svc.GetBalance(context.Background(), rec.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), balance.Received)
	assert.Equal(t, int64(200000), balance.Final)
	assert.Equal(t, domain.StatusPending, balance.Status)
}

func TestSinglePaymentPartialThenPaid(t *testing.T) {
	svc, node := newTestService(t)
	ctx := context.Background()

	rec := createReceivable(t, svc, node, 200000, 0)

	_, err := svc.RecordTransaction(ctx, domain.RecordTransactionRequest{
		ReceivableID: rec.ID,
		Method:       domain.MethodUPI,
		Amount:       150000,
	})
	require.NoError(t, err)

	balance, err := svc.GetBalance(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPartial, balance.Status)
	assert.Equal(t, int64(150000), balance.Received)

	_, err = svc.RecordTransaction(ctx, domain.RecordTransactionRequest{
		ReceivableID: rec.ID,
		Method:       domain.MethodCash,
		Amount:       50000,
	})
	require.NoError(t, err)

	balance, err = svc.GetBalance(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPaid, balance.Status)
	assert.Equal(t, int64(200000), balance.Received)
}

func TestSplitPaymentMarksPaid(t *testing.T) {
	svc, node := newTestService(t)
	ctx := context.Background()

	rec := createReceivable(t, svc, node, 320000, 0)

	txns, err := svc.RecordPaymentLines(ctx, rec.ID, []domain.PaymentLine{
		{Method: domain.MethodCash, Amount: 160000},
		{Method: domain.MethodUPI, Amount: 160000},
	}, nil)
	require.NoError(t, err)
	require.Len(t, txns, 2)

	breakdown, err := svc.GetBreakdown(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(320000), breakdown.Received)
	assert.Equal(t, int64(0), breakdown.Balance)
	assert.Len(t, breakdown.Methods, 2)

	balance, err := svc.GetBalance(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPaid, balance.Status)
}

func TestOverpaymentCollapsesToPaid(t *testing.T) {
	svc, node := newTestService(t)
	ctx := context.Background()

	rec := createReceivable(t, svc, node, 100000, 0)

	_, err := svc.RecordTransaction(ctx, domain.RecordTransactionRequest{
		ReceivableID: rec.ID,
		Method:       domain.MethodCard,
		Amount:       150000,
	})
	require.NoError(t, err)

	balance, err := svc.GetBalance(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPaid, balance.Status)
	assert.Equal(t, int64(150000), balance.Received)
}

func TestRecordPaymentValidation(t *testing.T) {
	svc, node := newTestService(t)
	ctx := context.Background()

	rec := createReceivable(t, svc, node, 100000, 0)

	_, err := svc.RecordPaymentLines(ctx, rec.ID, nil, nil)
	assert.ErrorIs(t, err, domain.ErrNoPaymentLines)

	_, err = svc.RecordPaymentLines(ctx, rec.ID, []domain.PaymentLine{
		{Method: domain.PaymentMethod("crypto"), Amount: 1000},
	}, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidMethod)

	_, err = svc.RecordPaymentLines(ctx, rec.ID, []domain.PaymentLine{
		{Method: domain.MethodCash, Amount: 0},
	}, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = svc.RecordPaymentLines(ctx, node.Generate(), []domain.PaymentLine{
		{Method: domain.MethodCash, Amount: 1000},
	}, nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReversalWalksStatusBack(t *testing.T) {
	svc, node := newTestService(t)
	ctx := context.Background()

	rec := createReceivable(t, svc, node, 200000, 0)

	first, err := svc.RecordTransaction(ctx, domain.RecordTransactionRequest{
		ReceivableID: rec.ID,
		Method:       domain.MethodCash,
		Amount:       120000,
	})
	require.NoError(t, err)
	second, err := svc.RecordTransaction(ctx, domain.RecordTransactionRequest{
		ReceivableID: rec.ID,
		Method:       domain.MethodUPI,
		Amount:       80000,
	})
	require.NoError(t, err)

	balance, err := svc.GetBalance(ctx, rec.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusPaid, balance.Status)

	require.NoError(t, svc.ReverseTransaction(ctx, second.ID))
	balance, err = svc.GetBalance(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPartial, balance.Status)

	require.NoError(t, svc.ReverseTransaction(ctx, first.ID))
	balance, err = svc.GetBalance(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, balance.Status)
	assert.Equal(t, int64(0), balance.Received)
}

func TestReverseUnknownTransaction(t *testing.T) {
	svc, node := newTestService(t)

	err := svc.ReverseTransaction(context.Background(), node.Generate())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetBySource(t *testing.T) {
	svc, node := newTestService(t)
	ctx := context.Background()

	sourceID := node.Generate()
	created, err := svc.CreateReceivable(ctx, domain.CreateReceivableRequest{
		UserID:         node.Generate(),
		ReceivableType: domain.ReceivableTypeSubscription,
		SourceID:       sourceID,
		BillAmount:     90000,
	})
	require.NoError(t, err)

	found, err := svc.GetBySource(ctx, domain.ReceivableTypeSubscription, sourceID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = svc.GetBySource(ctx, domain.ReceivableTypeInvoice, sourceID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecomputeStatusRepairsDrift(t *testing.T) {
	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&userdomain.User{},
		&domain.Receivable{},
		&domain.Transaction{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	svc := New(Params{
		DB:    conn,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
	})
	ctx := context.Background()

	rec, err := svc.CreateReceivable(ctx, domain.CreateReceivableRequest{
		UserID:         node.Generate(),
		ReceivableType: domain.ReceivableTypeInvoice,
		SourceID:       node.Generate(),
		BillAmount:     100000,
	})
	require.NoError(t, err)

	// Corrupt the cached status column behind the service's back.
	require.NoError(t, conn.Exec(
		`UPDATE accounts_receivable SET status = ? WHERE id = ?`,
		domain.StatusPaid, rec.ID,
	).Error)

	status, err := svc.RecomputeStatus(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, status)
}

func TestListOverdue(t *testing.T) {
	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&userdomain.User{},
		&domain.Receivable{},
		&domain.Transaction{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	svc := New(Params{
		DB:    conn,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
	})
	ctx := context.Background()

	member := userdomain.User{
		ID:        node.Generate(),
		FullName:  "Asha Rao",
		FeeStatus: userdomain.FeeStatusUnpaid,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	require.NoError(t, conn.Create(&member).Error)

	pastDue := time.Now().UTC().AddDate(0, 0, -10)
	overdue, err := svc.CreateReceivable(ctx, domain.CreateReceivableRequest{
		UserID:         member.ID,
		ReceivableType: domain.ReceivableTypeInvoice,
		SourceID:       node.Generate(),
		BillAmount:     50000,
		DueDate:        &pastDue,
	})
	require.NoError(t, err)

	settled, err := svc.CreateReceivable(ctx, domain.CreateReceivableRequest{
		UserID:         member.ID,
		ReceivableType: domain.ReceivableTypeInvoice,
		SourceID:       node.Generate(),
		BillAmount:     30000,
		DueDate:        &pastDue,
	})
	require.NoError(t, err)
	_, err = svc.RecordTransaction(ctx, domain.RecordTransactionRequest{
		ReceivableID: settled.ID,
		Method:       domain.MethodCash,
		Amount:       30000,
	})
	require.NoError(t, err)

	rows, err := svc.ListOverdue(ctx, time.Now().UTC())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, overdue.ID, rows[0].ID)
	assert.Equal(t, "Asha Rao", rows[0].FullName)
}
