package domain

// ReferenceKind identifies the entity a transaction record originates from.
type ReferenceKind string

const (
	ReferenceNone    ReferenceKind = ""
	ReferenceSale    ReferenceKind = "sale"
	ReferenceExpense ReferenceKind = "expense"
)

// Reference links a transaction record to its originating entity. The zero
// value means the record is not tied to a sale or payment.
type Reference struct {
	Kind ReferenceKind
	ID   string
}

// SaleReference builds a reference to a sale.
func SaleReference(id string) Reference {
	return Reference{Kind: ReferenceSale, ID: id}
}

// ExpenseReference builds a reference to a payment/expense row.
func ExpenseReference(id string) Reference {
	return Reference{Kind: ReferenceExpense, ID: id}
}

// IsZero reports whether the reference points at nothing.
func (r Reference) IsZero() bool {
	return r.Kind == ReferenceNone && r.ID == ""
}
