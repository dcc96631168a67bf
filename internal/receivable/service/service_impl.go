package service

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	obsmetrics "github.com/fitstack/clubledger/internal/observability/metrics"
	"github.com/fitstack/clubledger/internal/receivable/domain"
	"github.com/fitstack/clubledger/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Repo    domain.Repository
	Metrics *obsmetrics.Metrics `optional:"true"`
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	repo    domain.Repository
	metrics *obsmetrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("receivable.service"),
		genID:   p.GenID,
		repo:    p.Repo,
		metrics: p.Metrics,
	}
}

func (s *Service) CreateReceivable(ctx context.Context, req domain.CreateReceivableRequest) (domain.Receivable, error) {
	if req.UserID == 0 {
		return domain.Receivable{}, domain.ErrInvalidID
	}
	if !domain.ValidType(req.ReceivableType) {
		return domain.Receivable{}, domain.ErrInvalidType
	}
	if req.BillAmount < 0 {
		return domain.Receivable{}, domain.ErrInvalidBillAmount
	}
	if req.DiscountAmount < 0 || req.DiscountAmount > req.BillAmount {
		return domain.Receivable{}, domain.ErrInvalidDiscount
	}

	now := time.Now().UTC()
	rec := domain.Receivable{
		ID:             s.genID.Generate(),
		UserID:         req.UserID,
		ReceivableType: req.ReceivableType,
		SourceID:       req.SourceID,
		BillAmount:     req.BillAmount,
		DiscountAmount: req.DiscountAmount,
		// Final amount is computed here, never accepted from callers.
		FinalAmount: req.BillAmount - req.DiscountAmount,
		Status:      domain.StatusPending,
		DueDate:     req.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.InsertReceivable(ctx, s.db, &rec); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Receivable{}, domain.ErrDuplicateSource
		}
		return domain.Receivable{}, err
	}

	if s.metrics != nil {
		s.metrics.ReceivablesCreated.Inc()
	}
	s.log.Info("receivable created",
		zap.String("receivable_id", rec.ID.String()),
		zap.String("type", string(rec.ReceivableType)),
		zap.Int64("final_amount", rec.FinalAmount),
	)
	return rec, nil
}

func (s *Service) RecordTransaction(ctx context.Context, req domain.RecordTransactionRequest) (domain.Transaction, error) {
	txns, err := s.RecordPaymentLines(ctx, req.ReceivableID, []domain.PaymentLine{{
		Method:    req.Method,
		Amount:    req.Amount,
		Reference: req.Reference,
	}}, req.CreatedBy)
	if err != nil {
		return domain.Transaction{}, err
	}
	return txns[0], nil
}

// RecordPaymentLines inserts every line and recomputes the receivable's
// status in one database transaction, so an observer can never see a
// payment without the updated status.
func (s *Service) RecordPaymentLines(ctx context.Context, receivableID snowflake.ID, lines []domain.PaymentLine, createdBy *snowflake.ID) ([]domain.Transaction, error) {
	if receivableID == 0 {
		return nil, domain.ErrInvalidID
	}
	if len(lines) == 0 {
		return nil, domain.ErrNoPaymentLines
	}
	for _, line := range lines {
		if !domain.ValidMethod(line.Method) {
			return nil, domain.ErrInvalidMethod
		}
		if line.Amount <= 0 {
			return nil, domain.ErrInvalidAmount
		}
	}

	var inserted []domain.Transaction
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rec, err := s.repo.FindReceivableByID(ctx, tx, receivableID)
		if err != nil {
			return err
		}
		if rec == nil {
			return domain.ErrNotFound
		}

		now := time.Now().UTC()
		inserted = make([]domain.Transaction, 0, len(lines))
		for _, line := range lines {
			txn := domain.Transaction{
				ID:           s.genID.Generate(),
				ReceivableID: receivableID,
				Method:       line.Method,
				Amount:       line.Amount,
				Reference:    line.Reference,
				CreatedBy:    createdBy,
				CreatedAt:    now,
			}
			if err := s.repo.InsertTransaction(ctx, tx, &txn); err != nil {
				return err
			}
			inserted = append(inserted, txn)
		}

		return s.recomputeStatus(ctx, tx, rec, now)
	})
	if err != nil {
		return nil, err
	}

	for _, txn := range inserted {
		if s.metrics != nil {
			s.metrics.RecordTransaction(string(txn.Method))
		}
	}
	s.log.Info("payment recorded",
		zap.String("receivable_id", receivableID.String()),
		zap.Int("lines", len(inserted)),
	)
	return inserted, nil
}

func (s *Service) GetBalance(ctx context.Context, receivableID snowflake.ID) (domain.Balance, error) {
	if receivableID == 0 {
		return domain.Balance{}, domain.ErrInvalidID
	}

	rec, err := s.repo.FindReceivableByID(ctx, s.db, receivableID)
	if err != nil {
		return domain.Balance{}, err
	}
	if rec == nil {
		return domain.Balance{}, domain.ErrNotFound
	}

	// The stored status column is only a materialized cache; the balance
	// read path always re-derives from the live transaction rows.
	received, err := s.repo.SumReceived(ctx, s.db, receivableID)
	if err != nil {
		return domain.Balance{}, err
	}

	return domain.Balance{
		Received: received,
		Final:    rec.FinalAmount,
		Status:   domain.DeriveStatus(received, rec.FinalAmount),
	}, nil
}

func (s *Service) ReverseTransaction(ctx context.Context, transactionID snowflake.ID) error {
	if transactionID == 0 {
		return domain.ErrInvalidID
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txn, err := s.repo.FindTransactionByID(ctx, tx, transactionID)
		if err != nil {
			return err
		}
		if txn == nil {
			return domain.ErrNotFound
		}

		if err := s.repo.DeleteTransaction(ctx, tx, transactionID); err != nil {
			return err
		}

		rec, err := s.repo.FindReceivableByID(ctx, tx, txn.ReceivableID)
		if err != nil {
			return err
		}
		if rec == nil {
			// Parent cleaned up concurrently; nothing left to recompute.
			return nil
		}
		return s.recomputeStatus(ctx, tx, rec, time.Now().UTC())
	})
	if err != nil {
		return err
	}

	if s.metrics != nil {
		s.metrics.TransactionsReversed.Inc()
	}
	s.log.Info("transaction reversed", zap.String("transaction_id", transactionID.String()))
	return nil
}

func (s *Service) GetBreakdown(ctx context.Context, receivableID snowflake.ID) (domain.Breakdown, error) {
	if receivableID == 0 {
		return domain.Breakdown{}, domain.ErrInvalidID
	}

	rec, err := s.repo.FindReceivableByID(ctx, s.db, receivableID)
	if err != nil {
		return domain.Breakdown{}, err
	}
	if rec == nil {
		return domain.Breakdown{}, domain.ErrNotFound
	}

	methods, err := s.repo.SumByMethod(ctx, s.db, receivableID)
	if err != nil {
		return domain.Breakdown{}, err
	}

	var received int64
	for _, m := range methods {
		received += m.Total
	}

	return domain.Breakdown{
		Receivable: *rec,
		Received:   received,
		Balance:    rec.FinalAmount - received,
		Methods:    methods,
	}, nil
}

func (s *Service) GetBySource(ctx context.Context, receivableType domain.ReceivableType, sourceID snowflake.ID) (domain.Receivable, error) {
	if !domain.ValidType(receivableType) {
		return domain.Receivable{}, domain.ErrInvalidType
	}
	if sourceID == 0 {
		return domain.Receivable{}, domain.ErrInvalidID
	}

	rec, err := s.repo.FindReceivableBySource(ctx, s.db, receivableType, sourceID)
	if err != nil {
		return domain.Receivable{}, err
	}
	if rec == nil {
		return domain.Receivable{}, domain.ErrNotFound
	}
	return *rec, nil
}

func (s *Service) ListOverdue(ctx context.Context, asOf time.Time) ([]domain.OverdueReceivable, error) {
	if asOf.IsZero() {
		asOf = time.Now().UTC()
	}
	return s.repo.ListOverdue(ctx, s.db, asOf)
}

// RecomputeStatus re-derives and persists status from the live transaction
// rows. Audit/repair path for drift between the cached column and source rows.
func (s *Service) RecomputeStatus(ctx context.Context, receivableID snowflake.ID) (domain.ReceivableStatus, error) {
	if receivableID == 0 {
		return "", domain.ErrInvalidID
	}

	var status domain.ReceivableStatus
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rec, err := s.repo.FindReceivableByID(ctx, tx, receivableID)
		if err != nil {
			return err
		}
		if rec == nil {
			return domain.ErrNotFound
		}
		if err := s.recomputeStatus(ctx, tx, rec, time.Now().UTC()); err != nil {
			return err
		}
		status = rec.Status
		return nil
	})
	if err != nil {
		return "", err
	}
	return status, nil
}

// recomputeStatus derives status from SUM(amount) under the caller's
// transaction and persists it. Deriving from the live aggregate inside the
// same unit of work is what keeps concurrent writers from losing updates.
func (s *Service) recomputeStatus(ctx context.Context, tx *gorm.DB, rec *domain.Receivable, at time.Time) error {
	received, err := s.repo.SumReceived(ctx, tx, rec.ID)
	if err != nil {
		return err
	}

	status := domain.DeriveStatus(received, rec.FinalAmount)
	if err := s.repo.UpdateStatus(ctx, tx, rec.ID, status, at); err != nil {
		return err
	}
	rec.Status = status
	rec.UpdatedAt = at
	return nil
}
