package service

import (
	"context"

	"github.com/google/uuid"

	"gstbooks/internal/config"
	"gstbooks/internal/domain"
	"gstbooks/internal/port"
)

// BillWithItems pairs a purchase bill with its lines for detail reads.
type BillWithItems struct {
	Bill  *domain.PurchaseBill      `json:"bill"`
	Items []domain.PurchaseBillItem `json:"items"`
}

// BillService serves purchase bill reads and the presigned artifact
// link used by the review screen.
type BillService interface {
	GetByID(ctx context.Context, orgID, billID uuid.UUID) (*BillWithItems, error)
	List(ctx context.Context, orgID uuid.UUID, limit int) ([]domain.PurchaseBill, error)
	ArtifactURL(ctx context.Context, orgID, billID uuid.UUID) (string, error)
	MarkReviewed(ctx context.Context, orgID, billID uuid.UUID) error
}

type billService struct {
	billRepo port.PurchaseBillRepository
	storage  port.ObjectStorage
	s3cfg    config.S3Config
}

// NewBillService creates a BillService implementation.
func NewBillService(billRepo port.PurchaseBillRepository, storage port.ObjectStorage, s3cfg config.S3Config) BillService {
	return &billService{billRepo: billRepo, storage: storage, s3cfg: s3cfg}
}

func (s *billService) GetByID(ctx context.Context, orgID, billID uuid.UUID) (*BillWithItems, error) {
	bill, err := s.billRepo.GetByID(ctx, orgID, billID)
	if err != nil {
		return nil, err
	}
	items, err := s.billRepo.ItemsByBill(ctx, bill.ID)
	if err != nil {
		return nil, err
	}
	return &BillWithItems{Bill: bill, Items: items}, nil
}

func (s *billService) List(ctx context.Context, orgID uuid.UUID, limit int) ([]domain.PurchaseBill, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.billRepo.ListByOrganization(ctx, orgID, limit)
}

func (s *billService) ArtifactURL(ctx context.Context, orgID, billID uuid.UUID) (string, error) {
	bill, err := s.billRepo.GetByID(ctx, orgID, billID)
	if err != nil {
		return "", err
	}
	return s.storage.GetPresignedURL(ctx, s.s3cfg.Bucket, bill.ArtifactKey, s.s3cfg.PresignExpiry)
}

func (s *billService) MarkReviewed(ctx context.Context, orgID, billID uuid.UUID) error {
	return s.billRepo.UpdateStatus(ctx, orgID, billID, domain.BillStatusReviewed)
}
