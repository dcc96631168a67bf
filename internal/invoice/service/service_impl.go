package service

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/fitstack/clubledger/internal/invoice/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("invoice.service"),
		genID: p.GenID,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateInvoiceRequest) (domain.InvoiceWithItems, error) {
	if req.UserID == 0 {
		return domain.InvoiceWithItems{}, domain.ErrInvalidID
	}
	if len(req.Items) == 0 {
		return domain.InvoiceWithItems{}, domain.ErrNoItems
	}
	for _, item := range req.Items {
		if strings.TrimSpace(item.ItemName) == "" || item.Quantity <= 0 || item.UnitPrice < 0 || item.GSTRate < 0 {
			return domain.InvoiceWithItems{}, domain.ErrInvalidItem
		}
	}
	if req.Shipping < 0 {
		return domain.InvoiceWithItems{}, domain.ErrInvalidItem
	}

	now := time.Now().UTC()
	invoiceID := s.genID.Generate()

	var subtotal, gstTotal int64
	items := make([]domain.InvoiceItem, 0, len(req.Items))
	for _, item := range req.Items {
		lineTotal := item.Quantity * item.UnitPrice
		subtotal += lineTotal
		gstTotal += int64(math.Round(float64(lineTotal) * item.GSTRate / 100))
		items = append(items, domain.InvoiceItem{
			ID:        s.genID.Generate(),
			InvoiceID: invoiceID,
			ItemName:  strings.TrimSpace(item.ItemName),
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			GSTRate:   item.GSTRate,
			LineTotal: lineTotal,
			CreatedAt: now,
		})
	}

	invoice := domain.Invoice{
		ID:            invoiceID,
		UserID:        req.UserID,
		ItemsSubtotal: subtotal,
		GSTTotal:      gstTotal,
		Shipping:      req.Shipping,
		FinalTotal:    subtotal + gstTotal + req.Shipping,
		Status:        domain.InvoiceStatusPending,
		Metadata:      datatypes.JSONMap{},
		CreatedAt:     now,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.WithContext(ctx).Create(&invoice).Error; err != nil {
			return err
		}
		return tx.WithContext(ctx).Create(&items).Error
	})
	if err != nil {
		return domain.InvoiceWithItems{}, err
	}

	s.log.Info("invoice created",
		zap.String("invoice_id", invoice.ID.String()),
		zap.Int64("final_total", invoice.FinalTotal),
	)
	return domain.InvoiceWithItems{Invoice: invoice, Items: items}, nil
}

func (s *Service) GetByID(ctx context.Context, id snowflake.ID) (domain.InvoiceWithItems, error) {
	if id == 0 {
		return domain.InvoiceWithItems{}, domain.ErrInvalidID
	}

	var invoice domain.Invoice
	err := s.db.WithContext(ctx).Raw(
		`SELECT * FROM invoices WHERE id = ?`,
		id,
	).Scan(&invoice).Error
	if err != nil {
		return domain.InvoiceWithItems{}, err
	}
	if invoice.ID == 0 {
		return domain.InvoiceWithItems{}, domain.ErrNotFound
	}

	var items []domain.InvoiceItem
	err = s.db.WithContext(ctx).Raw(
		`SELECT * FROM invoice_items WHERE invoice_id = ? ORDER BY created_at ASC, id ASC`,
		id,
	).Scan(&items).Error
	if err != nil {
		return domain.InvoiceWithItems{}, err
	}

	return domain.InvoiceWithItems{Invoice: invoice, Items: items}, nil
}

func (s *Service) MarkPaid(ctx context.Context, id snowflake.ID) (domain.Invoice, error) {
	return s.setStatus(ctx, id, domain.InvoiceStatusPaid)
}

func (s *Service) MarkRejected(ctx context.Context, id snowflake.ID) (domain.Invoice, error) {
	return s.setStatus(ctx, id, domain.InvoiceStatusRejected)
}

func (s *Service) setStatus(ctx context.Context, id snowflake.ID, status domain.InvoiceStatus) (domain.Invoice, error) {
	if id == 0 {
		return domain.Invoice{}, domain.ErrInvalidID
	}

	var invoice domain.Invoice
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.WithContext(ctx).Raw(
			`SELECT * FROM invoices WHERE id = ?`,
			id,
		).Scan(&invoice).Error; err != nil {
			return err
		}
		if invoice.ID == 0 {
			return domain.ErrNotFound
		}
		if invoice.Status == domain.InvoiceStatusPaid {
			return domain.ErrAlreadyPaid
		}
		if invoice.Status != domain.InvoiceStatusPending {
			return domain.ErrNotPayable
		}

		now := time.Now().UTC()
		invoice.Status = status
		if status == domain.InvoiceStatusPaid {
			invoice.PaidAt = &now
		}
		return tx.WithContext(ctx).Exec(
			`UPDATE invoices SET status = ?, paid_at = ? WHERE id = ?`,
			invoice.Status,
			invoice.PaidAt,
			id,
		).Error
	})
	if err != nil {
		return domain.Invoice{}, err
	}

	s.log.Info("invoice status updated",
		zap.String("invoice_id", id.String()),
		zap.String("status", string(status)),
	)
	return invoice, nil
}
