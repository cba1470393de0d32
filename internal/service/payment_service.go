package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"gstbooks/internal/domain"
	"gstbooks/internal/money"
	"gstbooks/internal/port"
)

// RecordPaymentInput is the DTO for recording a payment receipt.
type RecordPaymentInput struct {
	InvoiceID  uuid.UUID  `json:"invoice_id" binding:"required"`
	Method     string     `json:"method" binding:"required"`
	Provider   string     `json:"provider"`
	TxnID      string     `json:"txn_id"`
	Status     string     `json:"status"`
	Amount     string     `json:"amount" binding:"required"`
	ReceivedAt *time.Time `json:"received_at"`
}

// PaymentService records payments and keeps the invoice payment status
// in step with the accumulated successful amounts. Status moves
// forward only: a failed or reversed payment never demotes paid back
// to partial.
type PaymentService interface {
	Record(ctx context.Context, orgID uuid.UUID, input RecordPaymentInput) (*domain.Payment, error)
	ListByInvoice(ctx context.Context, orgID, invoiceID uuid.UUID) ([]domain.Payment, error)
	ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]domain.Payment, error)
}

type paymentService struct {
	paymentRepo port.PaymentRepository
	invoiceRepo port.InvoiceRepository
	txm         port.TxManager
}

// NewPaymentService creates a PaymentService implementation.
func NewPaymentService(
	paymentRepo port.PaymentRepository,
	invoiceRepo port.InvoiceRepository,
	txm port.TxManager,
) PaymentService {
	return &paymentService{paymentRepo: paymentRepo, invoiceRepo: invoiceRepo, txm: txm}
}

func (s *paymentService) Record(ctx context.Context, orgID uuid.UUID, input RecordPaymentInput) (*domain.Payment, error) {
	amount := money.ParseLoose(input.Amount)
	if !amount.IsPositive() {
		return nil, domain.NewValidationError("amount", "payment amount must be positive")
	}

	status := domain.PaymentState(input.Status)
	if status == "" {
		status = domain.PaymentStateSuccess
	}
	if status != domain.PaymentStateSuccess && status != domain.PaymentStateFailed {
		return nil, domain.NewValidationError("status", "status must be success or failed")
	}

	inv, err := s.invoiceRepo.GetByID(ctx, orgID, input.InvoiceID)
	if err != nil {
		return nil, err
	}

	payment := &domain.Payment{
		InvoiceID: inv.ID,
		Method:    input.Method,
		Provider:  input.Provider,
		TxnID:     input.TxnID,
		Status:    status,
		Amount:    money.Round2(amount),
	}
	if input.ReceivedAt != nil {
		payment.ReceivedAt = *input.ReceivedAt
	}

	err = s.txm.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.paymentRepo.Create(ctx, payment); err != nil {
			return err
		}
		if status != domain.PaymentStateSuccess {
			return nil
		}

		paid, err := s.paymentRepo.SumSuccessfulByInvoice(ctx, inv.ID)
		if err != nil {
			return err
		}

		next := domain.PaymentStatusPartial
		if paid.GreaterThanOrEqual(inv.NetAmount) {
			next = domain.PaymentStatusPaid
		}
		// Monotonic: never step an invoice back down the lifecycle.
		if inv.PaymentStatus.AtLeast(next) {
			return nil
		}
		return s.invoiceRepo.UpdatePaymentStatus(ctx, orgID, inv.ID, next)
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("payment.Record: %w", err)
	}
	return payment, nil
}

func (s *paymentService) ListByInvoice(ctx context.Context, orgID, invoiceID uuid.UUID) ([]domain.Payment, error) {
	if _, err := s.invoiceRepo.GetByID(ctx, orgID, invoiceID); err != nil {
		return nil, err
	}
	return s.paymentRepo.ListByInvoice(ctx, invoiceID)
}

func (s *paymentService) ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]domain.Payment, error) {
	payments, err := s.paymentRepo.ListByOrganization(ctx, orgID)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	for i := range payments {
		payments[i].DisplayStatus = displayStatus(&payments[i], now)
	}
	return payments, nil
}

// displayStatus substitutes "overdue" for an unpaid invoice whose due
// date has passed.
func displayStatus(p *domain.Payment, now time.Time) string {
	if p.PaymentStatus == nil {
		return ""
	}
	if *p.PaymentStatus != domain.PaymentStatusPaid && p.DueDate != nil && p.DueDate.Before(now) {
		return "overdue"
	}
	return string(*p.PaymentStatus)
}
