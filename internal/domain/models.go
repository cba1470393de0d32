package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Organization is the registered business entity owning all records.
// StateCode is the two-digit GST state code of the registered place of
// business; the tax engine compares it against an invoice's place of
// supply to pick the intra/inter-state tax treatment.
type Organization struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	GSTIN     string    `db:"gstin" json:"gstin"`
	StateCode string    `db:"state_code" json:"state_code"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Branch is a place of business within an organization.
type Branch struct {
	ID             uuid.UUID `db:"id" json:"id"`
	OrganizationID uuid.UUID `db:"organization_id" json:"organization_id"`
	Name           string    `db:"name" json:"name"`
	IsHeadOffice   bool      `db:"is_head_office" json:"is_head_office"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// User is an authenticated member of an organization.
type User struct {
	ID             uuid.UUID `db:"id" json:"id"`
	OrganizationID uuid.UUID `db:"organization_id" json:"organization_id"`
	BranchID       uuid.UUID `db:"branch_id" json:"branch_id"`
	Email          string    `db:"email" json:"email"`
	PasswordHash   string    `db:"password_hash" json:"-"`
	FullName       string    `db:"full_name" json:"full_name"`
	Role           UserRole  `db:"role" json:"role"`
	IsActive       bool      `db:"is_active" json:"is_active"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// Customer is a buyer record. Uniqueness within an organization is
// soft: duplicates are possible and detected by the party resolver,
// not by a database constraint.
type Customer struct {
	ID             uuid.UUID `db:"id" json:"id"`
	OrganizationID uuid.UUID `db:"organization_id" json:"organization_id"`
	BranchID       uuid.UUID `db:"branch_id" json:"branch_id"`
	Name           string    `db:"name" json:"name"`
	GSTIN          string    `db:"gstin" json:"gstin"`
	Email          string    `db:"email" json:"email"`
	Phone          string    `db:"phone" json:"phone"`
	StateCode      string    `db:"state_code" json:"state_code"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// Vendor is a supplier record, resolved from extracted bill text.
type Vendor struct {
	ID             uuid.UUID `db:"id" json:"id"`
	OrganizationID uuid.UUID `db:"organization_id" json:"organization_id"`
	BranchID       uuid.UUID `db:"branch_id" json:"branch_id"`
	Name           string    `db:"name" json:"name"`
	GSTIN          string    `db:"gstin" json:"gstin"`
	Email          string    `db:"email" json:"email"`
	Phone          string    `db:"phone" json:"phone"`
	StateCode      string    `db:"state_code" json:"state_code"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// Product is a catalog entry whose GST rate seeds invoice line items.
type Product struct {
	ID             uuid.UUID       `db:"id" json:"id"`
	OrganizationID uuid.UUID       `db:"organization_id" json:"organization_id"`
	Name           string          `db:"name" json:"name"`
	HSNCode        string          `db:"hsn_code" json:"hsn_code"`
	UnitPrice      decimal.Decimal `db:"unit_price" json:"unit_price"`
	GSTRate        decimal.Decimal `db:"gst_rate" json:"gst_rate"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at" json:"updated_at"`
}

// Invoice is an outward supply document. Invariant: NetAmount equals
// TaxableValue + CGST + SGST + IGST within one minor unit, and the
// CGST/SGST pair is mutually exclusive with IGST across the whole
// invoice.
type Invoice struct {
	ID             uuid.UUID       `db:"id" json:"id"`
	OrganizationID uuid.UUID       `db:"organization_id" json:"organization_id"`
	BranchID       uuid.UUID       `db:"branch_id" json:"branch_id"`
	CustomerID     *uuid.UUID      `db:"customer_id" json:"customer_id"`
	CreatedBy      uuid.UUID       `db:"created_by" json:"created_by"`
	InvoiceNumber  string          `db:"invoice_number" json:"invoice_number"`
	InvoiceType    string          `db:"invoice_type" json:"invoice_type"`
	IssueDate      time.Time       `db:"issue_date" json:"issue_date"`
	DueDate        *time.Time      `db:"due_date" json:"due_date"`
	PlaceOfSupply  string          `db:"place_of_supply" json:"place_of_supply"`
	TaxableValue   decimal.Decimal `db:"taxable_value" json:"taxable_value"`
	CGSTAmount     decimal.Decimal `db:"cgst_amount" json:"cgst_amount"`
	SGSTAmount     decimal.Decimal `db:"sgst_amount" json:"sgst_amount"`
	IGSTAmount     decimal.Decimal `db:"igst_amount" json:"igst_amount"`
	CessAmount     decimal.Decimal `db:"cess_amount" json:"cess_amount"`
	NetAmount      decimal.Decimal `db:"net_amount" json:"net_amount"`
	PaymentStatus  PaymentStatus   `db:"payment_status" json:"payment_status"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at" json:"updated_at"`

	// CustomerName and RecipientGSTIN are populated by list and report
	// queries that join customers.
	CustomerName   *string `db:"customer_name" json:"customer_name,omitempty"`
	RecipientGSTIN *string `db:"recipient_gstin" json:"recipient_gstin,omitempty"`
}

// InvoiceItem is a persisted invoice line.
type InvoiceItem struct {
	ID           uuid.UUID       `db:"id" json:"id"`
	InvoiceID    uuid.UUID       `db:"invoice_id" json:"invoice_id"`
	ProductID    *uuid.UUID      `db:"product_id" json:"product_id"`
	Description  string          `db:"description" json:"description"`
	Quantity     decimal.Decimal `db:"qty" json:"qty"`
	UnitPrice    decimal.Decimal `db:"price" json:"price"`
	GSTRate      decimal.Decimal `db:"gst_rate" json:"gst_rate"`
	LineDiscount decimal.Decimal `db:"line_discount" json:"line_discount"`
	LineTotal    decimal.Decimal `db:"line_total" json:"line_total"`
}

// PurchaseBill is an inward supply document created by ingestion.
// RawExtracted retains the extractor's field map verbatim for audit
// and replay; ArtifactKey points at the stored source document.
type PurchaseBill struct {
	ID             uuid.UUID       `db:"id" json:"id"`
	OrganizationID uuid.UUID       `db:"organization_id" json:"organization_id"`
	BranchID       uuid.UUID       `db:"branch_id" json:"branch_id"`
	VendorID       *uuid.UUID      `db:"vendor_id" json:"vendor_id"`
	UploadedBy     uuid.UUID       `db:"uploaded_by" json:"uploaded_by"`
	BillNumber     string          `db:"bill_number" json:"bill_number"`
	BillDate       *time.Time      `db:"bill_date" json:"bill_date"`
	Subtotal       decimal.Decimal `db:"subtotal" json:"subtotal"`
	CGSTAmount     decimal.Decimal `db:"cgst_amount" json:"cgst_amount"`
	SGSTAmount     decimal.Decimal `db:"sgst_amount" json:"sgst_amount"`
	IGSTAmount     decimal.Decimal `db:"igst_amount" json:"igst_amount"`
	NetAmount      decimal.Decimal `db:"net_amount" json:"net_amount"`
	Status         BillStatus      `db:"status" json:"status"`
	RawExtracted   json.RawMessage `db:"raw_extracted" json:"raw_extracted"`
	ArtifactKey    string          `db:"artifact_key" json:"artifact_key"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at" json:"updated_at"`

	// VendorName is populated by list queries that join vendors.
	VendorName *string `db:"vendor_name" json:"vendor_name,omitempty"`
}

// PurchaseBillItem is a persisted bill line.
type PurchaseBillItem struct {
	ID             uuid.UUID       `db:"id" json:"id"`
	PurchaseBillID uuid.UUID       `db:"purchase_bill_id" json:"purchase_bill_id"`
	Description    string          `db:"description" json:"description"`
	Quantity       decimal.Decimal `db:"qty" json:"qty"`
	UnitPrice      decimal.Decimal `db:"price" json:"price"`
	GSTRate        decimal.Decimal `db:"gst_rate" json:"gst_rate"`
	LineDiscount   decimal.Decimal `db:"line_discount" json:"line_discount"`
	LineTotal      decimal.Decimal `db:"line_total" json:"line_total"`
}

// Expense is a direct business outgoing recorded outside the bill
// ingestion flow, such as rent or utilities.
type Expense struct {
	ID             uuid.UUID       `db:"id" json:"id"`
	OrganizationID uuid.UUID       `db:"organization_id" json:"organization_id"`
	Category       string          `db:"category" json:"category"`
	VendorID       *uuid.UUID      `db:"vendor_id" json:"vendor_id"`
	Amount         decimal.Decimal `db:"amount" json:"amount"`
	GSTPercent     decimal.Decimal `db:"gst_percent" json:"gst_percent"`
	ExpenseDate    time.Time       `db:"expense_date" json:"expense_date"`
	Notes          string          `db:"notes" json:"notes"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at" json:"updated_at"`

	// VendorName is populated by list queries that join vendors.
	VendorName *string `db:"vendor_name" json:"vendor_name,omitempty"`
}

// JournalEntry is a confirmed double-entry bookkeeping record.
type JournalEntry struct {
	ID             uuid.UUID       `db:"id" json:"id"`
	OrganizationID uuid.UUID       `db:"organization_id" json:"organization_id"`
	BranchID       uuid.UUID       `db:"branch_id" json:"branch_id"`
	EntryDate      time.Time       `db:"entry_date" json:"entry_date"`
	ReferenceNo    *string         `db:"reference_no" json:"reference_no"`
	VendorID       *uuid.UUID      `db:"vendor_id" json:"vendor_id"`
	Description    string          `db:"description" json:"description"`
	DebitAccount   string          `db:"debit_account" json:"debit_account"`
	CreditAccount  string          `db:"credit_account" json:"credit_account"`
	Amount         decimal.Decimal `db:"amount" json:"amount"`
	CGSTInput      decimal.Decimal `db:"cgst_input" json:"cgst_input"`
	SGSTInput      decimal.Decimal `db:"sgst_input" json:"sgst_input"`
	IGSTInput      decimal.Decimal `db:"igst_input" json:"igst_input"`
	TotalAmount    decimal.Decimal `db:"total_amount" json:"total_amount"`
	EntryType      EntryType       `db:"entry_type" json:"entry_type"`
	PurchaseBillID *uuid.UUID      `db:"purchase_bill_id" json:"purchase_bill_id"`
	CreatedBy      uuid.UUID       `db:"created_by" json:"created_by"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`

	// VendorName is populated by list queries that join vendors.
	VendorName *string `db:"vendor_name" json:"vendor_name,omitempty"`
}

// JournalEntryDraft is the unposted entry synthesized by ingestion.
// It is a pure value handed back for human review; nothing is written
// until an explicit save turns it into a JournalEntry.
type JournalEntryDraft struct {
	OrganizationID uuid.UUID       `json:"organization_id"`
	BranchID       uuid.UUID       `json:"branch_id"`
	EntryDate      time.Time       `json:"entry_date"`
	ReferenceNo    *string         `json:"reference_no"`
	VendorID       *uuid.UUID      `json:"vendor_id"`
	Description    string          `json:"description"`
	DebitAccount   string          `json:"debit_account"`
	CreditAccount  string          `json:"credit_account"`
	Amount         decimal.Decimal `json:"amount"`
	CGSTInput      decimal.Decimal `json:"cgst_input"`
	SGSTInput      decimal.Decimal `json:"sgst_input"`
	IGSTInput      decimal.Decimal `json:"igst_input"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	EntryType      EntryType       `json:"entry_type"`
	PurchaseBillID uuid.UUID       `json:"purchase_bill_id"`
}

// Payment is a money receipt against an invoice.
type Payment struct {
	ID         uuid.UUID       `db:"id" json:"id"`
	InvoiceID  uuid.UUID       `db:"invoice_id" json:"invoice_id"`
	Method     string          `db:"method" json:"method"`
	Provider   string          `db:"provider" json:"provider"`
	TxnID      string          `db:"txn_id" json:"txn_id"`
	Status     PaymentState    `db:"status" json:"status"`
	Amount     decimal.Decimal `db:"amount" json:"amount"`
	ReceivedAt time.Time       `db:"received_at" json:"received_at"`

	// Populated by org-wide listings that join invoices and customers.
	InvoiceNumber *string        `db:"invoice_number" json:"invoice_number,omitempty"`
	CustomerName  *string        `db:"customer_name" json:"customer_name,omitempty"`
	DueDate       *time.Time     `db:"due_date" json:"due_date,omitempty"`
	PaymentStatus *PaymentStatus `db:"payment_status" json:"payment_status,omitempty"`

	// DisplayStatus is the invoice payment status with "overdue"
	// substituted when the due date has passed unpaid. Computed, not
	// stored.
	DisplayStatus string `db:"-" json:"display_status,omitempty"`
}
