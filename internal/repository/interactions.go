package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/luiscast/ventasbot/internal/domain"
)

// Interactions is the read-only facade over the invoices table. Every query is
// parameterized; username matching is case-insensitive equality and keyword
// matching is case-insensitive substring over message and response text.
// List queries order newest-first with id as a stable tie-break.
type Interactions struct {
	db *pgxpool.Pool
}

func NewInteractions(db *pgxpool.Pool) *Interactions {
	return &Interactions{db: db}
}

func (r *Interactions) TotalStats(ctx context.Context) (domain.TotalStats, error) {
	var s domain.TotalStats
	err := r.db.QueryRow(ctx, `
		SELECT
			COUNT(*),
			COUNT(DISTINCT invoice_number),
			COUNT(DISTINCT username),
			MIN(created_at),
			MAX(created_at)
		FROM invoices`,
	).Scan(&s.TotalRecords, &s.TotalInvoices, &s.TotalCustomers, &s.FirstSale, &s.LastSale)
	if err != nil {
		return domain.TotalStats{}, fmt.Errorf("total stats: %w", err)
	}
	return s, nil
}

// StatsForUser returns zero-valued stats for an unknown username; that is a
// valid result, not an error.
func (r *Interactions) StatsForUser(ctx context.Context, username string) (domain.UserStats, error) {
	var s domain.UserStats
	err := r.db.QueryRow(ctx, `
		SELECT
			COUNT(*),
			COUNT(DISTINCT invoice_number),
			MIN(created_at),
			MAX(created_at)
		FROM invoices
		WHERE LOWER(username) = LOWER($1)`,
		username,
	).Scan(&s.TotalInvoices, &s.UniqueInvoiceNumbers, &s.FirstSale, &s.LastSale)
	if err != nil {
		return domain.UserStats{}, fmt.Errorf("stats for user: %w", err)
	}
	return s, nil
}

func (r *Interactions) Recent(ctx context.Context, limit int) ([]domain.InteractionSummary, error) {
	rows, err := r.db.Query(ctx, `
		SELECT invoice_number, username, message_text, gpt_response, created_at
		FROM invoices
		ORDER BY created_at DESC, id DESC
		LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("recent: %w", err)
	}
	return scanSummaries(rows)
}

func (r *Interactions) RecentForUser(ctx context.Context, username string, limit int) ([]domain.InteractionSummary, error) {
	rows, err := r.db.Query(ctx, `
		SELECT invoice_number, username, message_text, gpt_response, created_at
		FROM invoices
		WHERE LOWER(username) = LOWER($1)
		ORDER BY created_at DESC, id DESC
		LIMIT $2`,
		username, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("recent for user: %w", err)
	}
	return scanSummaries(rows)
}

func (r *Interactions) SearchByKeyword(ctx context.Context, keyword string, limit int) ([]domain.InteractionSummary, error) {
	pattern := "%" + keyword + "%"
	rows, err := r.db.Query(ctx, `
		SELECT invoice_number, username, message_text, gpt_response, created_at
		FROM invoices
		WHERE message_text ILIKE $1 OR gpt_response ILIKE $1 OR invoice_number ILIKE $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2`,
		pattern, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("search by keyword: %w", err)
	}
	return scanSummaries(rows)
}

func (r *Interactions) SearchByKeywordForUser(ctx context.Context, username, keyword string, limit int) ([]domain.InteractionSummary, error) {
	pattern := "%" + keyword + "%"
	rows, err := r.db.Query(ctx, `
		SELECT invoice_number, username, message_text, gpt_response, created_at
		FROM invoices
		WHERE LOWER(username) = LOWER($1)
		  AND (message_text ILIKE $2 OR gpt_response ILIKE $2)
		ORDER BY created_at DESC, id DESC
		LIMIT $3`,
		username, pattern, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("search by keyword for user: %w", err)
	}
	return scanSummaries(rows)
}

// SearchSimilar finds prior interactions whose question resembles the given
// one. Used only to build retrieval context for the chat path.
func (r *Interactions) SearchSimilar(ctx context.Context, question string, limit int) ([]domain.InteractionSummary, error) {
	pattern := "%" + question + "%"
	rows, err := r.db.Query(ctx, `
		SELECT invoice_number, username, message_text, gpt_response, created_at
		FROM invoices
		WHERE message_text ILIKE $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2`,
		pattern, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("search similar: %w", err)
	}
	return scanSummaries(rows)
}

func (r *Interactions) TopCustomers(ctx context.Context, limit int) ([]domain.CustomerRank, error) {
	rows, err := r.db.Query(ctx, `
		SELECT username, COUNT(*), COUNT(DISTINCT invoice_number), MAX(created_at)
		FROM invoices
		WHERE username IS NOT NULL
		GROUP BY username
		ORDER BY COUNT(*) DESC, username ASC
		LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("top customers: %w", err)
	}
	defer rows.Close()

	out := make([]domain.CustomerRank, 0, limit)
	for rows.Next() {
		var c domain.CustomerRank
		if err := rows.Scan(&c.Username, &c.TotalPurchases, &c.UniqueInvoices, &c.LastPurchase); err != nil {
			return nil, fmt.Errorf("scan customer rank: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("top customers rows: %w", err)
	}
	return out, nil
}

// ByDateRange returns interactions within [from, to]; either bound may be nil
// for an open-ended range.
func (r *Interactions) ByDateRange(ctx context.Context, from, to *time.Time, limit int) ([]domain.InteractionSummary, error) {
	var (
		rows pgx.Rows
		err  error
	)
	switch {
	case from != nil && to != nil:
		rows, err = r.db.Query(ctx, `
			SELECT invoice_number, username, message_text, gpt_response, created_at
			FROM invoices
			WHERE created_at >= $1 AND created_at <= $2
			ORDER BY created_at DESC, id DESC
			LIMIT $3`,
			*from, *to, limit,
		)
	case from != nil:
		rows, err = r.db.Query(ctx, `
			SELECT invoice_number, username, message_text, gpt_response, created_at
			FROM invoices
			WHERE created_at >= $1
			ORDER BY created_at DESC, id DESC
			LIMIT $2`,
			*from, limit,
		)
	default:
		rows, err = r.db.Query(ctx, `
			SELECT invoice_number, username, message_text, gpt_response, created_at
			FROM invoices
			ORDER BY created_at DESC, id DESC
			LIMIT $1`,
			limit,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("by date range: %w", err)
	}
	return scanSummaries(rows)
}

func scanSummaries(rows pgx.Rows) ([]domain.InteractionSummary, error) {
	defer rows.Close()

	out := make([]domain.InteractionSummary, 0)
	for rows.Next() {
		var s domain.InteractionSummary
		if err := rows.Scan(&s.InvoiceNumber, &s.Username, &s.MessageText, &s.GPTResponse, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan interaction: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("interaction rows: %w", err)
	}
	return out, nil
}
