package domain

// UserRole defines the role hierarchy within an organization.
type UserRole string

const (
	RoleAdmin      UserRole = "admin"
	RoleAccountant UserRole = "accountant"
	RoleStaff      UserRole = "staff"
)

// PaymentStatus is the invoice payment lifecycle. Transitions are
// monotonic: pending -> partial -> paid, never backwards.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPartial PaymentStatus = "partial"
	PaymentStatusPaid    PaymentStatus = "paid"
)

// rank orders payment statuses for the monotonicity check.
var paymentStatusRank = map[PaymentStatus]int{
	PaymentStatusPending: 0,
	PaymentStatusPartial: 1,
	PaymentStatusPaid:    2,
}

// AtLeast reports whether s is at or beyond other in the lifecycle.
func (s PaymentStatus) AtLeast(other PaymentStatus) bool {
	return paymentStatusRank[s] >= paymentStatusRank[other]
}

// BillStatus is the purchase bill review lifecycle.
type BillStatus string

const (
	BillStatusParsed   BillStatus = "parsed"
	BillStatusReviewed BillStatus = "reviewed"
)

// PartyKind selects which party table the resolver works against.
type PartyKind string

const (
	PartyCustomer PartyKind = "customer"
	PartyVendor   PartyKind = "vendor"
)

// EntryType classifies a journal entry.
type EntryType string

const (
	EntryTypePurchase EntryType = "purchase"
	EntryTypeExpense  EntryType = "expense"
)

// PaymentState is the state of an individual payment transaction.
type PaymentState string

const (
	PaymentStateSuccess PaymentState = "success"
	PaymentStateFailed  PaymentState = "failed"
)

// FileType represents the allowed upload types for bill ingestion.
type FileType string

const (
	FileTypePDF FileType = "pdf"
	FileTypeJPG FileType = "jpg"
	FileTypePNG FileType = "png"
)

// AllowedContentTypes maps MIME content types back to FileType.
var AllowedContentTypes = map[string]FileType{
	"application/pdf": FileTypePDF,
	"image/jpeg":      FileTypeJPG,
	"image/png":       FileTypePNG,
}
