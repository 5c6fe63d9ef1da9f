package domain

import "time"

// Interaction is one logged exchange (question + generated answer) from the
// invoices table. The table is append-only and owned by the ingestion side;
// this bot only reads it.
type Interaction struct {
	ID            int64
	InvoiceNumber string
	UserID        int64
	Username      *string
	ChatID        int64
	MessageText   string
	GPTResponse   string
	CreatedAt     time.Time
}

// InteractionSummary is the projection returned by list queries (recent,
// search, retrieval context).
type InteractionSummary struct {
	InvoiceNumber string
	Username      *string
	MessageText   string
	GPTResponse   string
	CreatedAt     time.Time
}

// TotalStats aggregates the whole invoices table.
// First/LastSale are nil when the table is empty.
type TotalStats struct {
	TotalRecords   int64
	TotalInvoices  int64
	TotalCustomers int64
	FirstSale      *time.Time
	LastSale       *time.Time
}

// UserStats is TotalStats scoped to a single username.
type UserStats struct {
	TotalInvoices        int64
	UniqueInvoiceNumbers int64
	FirstSale            *time.Time
	LastSale             *time.Time
}

// CustomerRank is one row of the top-customers aggregate.
type CustomerRank struct {
	Username       string
	TotalPurchases int64
	UniqueInvoices int64
	LastPurchase   time.Time
}

// RetrievalContext is the small set of prior interactions injected into the
// completion prompt to ground conversational answers.
type RetrievalContext struct {
	UserHistory      []InteractionSummary
	SimilarQuestions []InteractionSummary
}

// IsEmpty reports whether there is nothing to inject into the prompt.
func (c RetrievalContext) IsEmpty() bool {
	return len(c.UserHistory) == 0 && len(c.SimilarQuestions) == 0
}
