package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"gstbooks/internal/domain"
	"gstbooks/internal/port"
)

// PartyResolver resolves a customer or vendor identity from extracted
// or user-supplied hints, creating a new record when nothing matches.
// Matching order: case-insensitive name first, then exact GSTIN. Both
// lookups are organization-scoped. Near-duplicate names (trailing
// punctuation, extra spaces inside the name) are a known limitation
// and are not merged.
type PartyResolver interface {
	ResolveOrCreate(ctx context.Context, kind domain.PartyKind, nameHint, gstinHint string, orgID, branchID uuid.UUID) (uuid.UUID, error)
}

type partyResolver struct {
	customerRepo port.CustomerRepository
	vendorRepo   port.VendorRepository
}

// NewPartyResolver creates a PartyResolver over the two party stores.
func NewPartyResolver(customerRepo port.CustomerRepository, vendorRepo port.VendorRepository) PartyResolver {
	return &partyResolver{customerRepo: customerRepo, vendorRepo: vendorRepo}
}

func (r *partyResolver) ResolveOrCreate(ctx context.Context, kind domain.PartyKind, nameHint, gstinHint string, orgID, branchID uuid.UUID) (uuid.UUID, error) {
	name := strings.TrimSpace(nameHint)
	gstin := strings.TrimSpace(gstinHint)
	if name == "" && gstin == "" {
		return uuid.Nil, domain.NewValidationError("party", "a name or GSTIN hint is required")
	}

	switch kind {
	case domain.PartyCustomer:
		return r.resolveCustomer(ctx, name, gstin, orgID, branchID)
	case domain.PartyVendor:
		return r.resolveVendor(ctx, name, gstin, orgID, branchID)
	default:
		return uuid.Nil, domain.NewValidationError("kind", fmt.Sprintf("unknown party kind %q", kind))
	}
}

func (r *partyResolver) resolveCustomer(ctx context.Context, name, gstin string, orgID, branchID uuid.UUID) (uuid.UUID, error) {
	if name != "" {
		c, err := r.customerRepo.FindByName(ctx, orgID, name)
		if err == nil {
			return c.ID, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return uuid.Nil, fmt.Errorf("partyResolver.resolveCustomer: %w", err)
		}
	}
	if gstin != "" {
		c, err := r.customerRepo.FindByGSTIN(ctx, orgID, gstin)
		if err == nil {
			return c.ID, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return uuid.Nil, fmt.Errorf("partyResolver.resolveCustomer: %w", err)
		}
	}

	c := &domain.Customer{
		OrganizationID: orgID,
		BranchID:       branchID,
		Name:           name,
		GSTIN:          gstin,
	}
	if err := r.customerRepo.Create(ctx, c); err != nil {
		return uuid.Nil, fmt.Errorf("partyResolver.resolveCustomer: %w", err)
	}
	return c.ID, nil
}

func (r *partyResolver) resolveVendor(ctx context.Context, name, gstin string, orgID, branchID uuid.UUID) (uuid.UUID, error) {
	if name != "" {
		v, err := r.vendorRepo.FindByName(ctx, orgID, name)
		if err == nil {
			return v.ID, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return uuid.Nil, fmt.Errorf("partyResolver.resolveVendor: %w", err)
		}
	}
	if gstin != "" {
		v, err := r.vendorRepo.FindByGSTIN(ctx, orgID, gstin)
		if err == nil {
			return v.ID, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return uuid.Nil, fmt.Errorf("partyResolver.resolveVendor: %w", err)
		}
	}

	v := &domain.Vendor{
		OrganizationID: orgID,
		BranchID:       branchID,
		Name:           name,
		GSTIN:          gstin,
	}
	if err := r.vendorRepo.Create(ctx, v); err != nil {
		return uuid.Nil, fmt.Errorf("partyResolver.resolveVendor: %w", err)
	}
	return v.ID, nil
}
