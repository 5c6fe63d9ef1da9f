package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luiscast/ventasbot/internal/config"
	"github.com/luiscast/ventasbot/internal/domain"
)

// scriptedCompleter returns one reply per call, repeating the last one, and
// records every prompt it was given.
type scriptedCompleter struct {
	replies []string
	calls   int
	prompts [][]domain.Turn
}

func (s *scriptedCompleter) Complete(ctx context.Context, turns []domain.Turn) (string, error) {
	s.prompts = append(s.prompts, turns)
	s.calls++
	if s.calls <= len(s.replies) {
		return s.replies[s.calls-1], nil
	}
	return s.replies[len(s.replies)-1], nil
}

type emptyRows struct{}

func (emptyRows) Close()                        {}
func (emptyRows) Err() error                    { return nil }
func (emptyRows) CommandTag() pgconn.CommandTag { return pgconn.CommandTag{} }
func (emptyRows) FieldDescriptions() []pgconn.FieldDescription {
	return []pgconn.FieldDescription{{Name: "count"}}
}
func (emptyRows) Next() bool             { return false }
func (emptyRows) Scan(dest ...any) error { return nil }
func (emptyRows) Values() ([]any, error) { return nil, nil }
func (emptyRows) RawValues() [][]byte    { return nil }
func (emptyRows) Conn() *pgx.Conn        { return nil }

type fakeQuerier struct {
	gotSQL string
}

func (f *fakeQuerier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	f.gotSQL = sql
	return emptyRows{}, nil
}

func TestAskExhaustsIterationBudget(t *testing.T) {
	fc := &scriptedCompleter{replies: []string{"DROP TABLE invoices"}}
	a := NewSQLAgent(fc, nil)

	_, err := a.Ask(context.Background(), "¿cuántas ventas hay?")

	require.ErrorIs(t, err, domain.ErrAgentBudget)
	assert.Equal(t, config.AgentMaxIterations, fc.calls,
		"every iteration must fail validation before touching the database")
}

func TestAskFeedsFailureIntoRetryPrompt(t *testing.T) {
	fc := &scriptedCompleter{replies: []string{"DELETE FROM invoices"}}
	a := NewSQLAgent(fc, nil)

	_, err := a.Ask(context.Background(), "¿cuántas ventas hay?")

	require.Error(t, err)
	require.GreaterOrEqual(t, fc.calls, 2)
	assert.Contains(t, fc.prompts[1][1].Content, "falló",
		"retry prompt must carry the previous failure")
}

func TestAskValidStatementShortCircuits(t *testing.T) {
	fc := &scriptedCompleter{replies: []string{"SELECT COUNT(*) FROM invoices", "hay 0 registros"}}
	q := &fakeQuerier{}
	a := &SQLAgent{completer: fc, db: q}

	out, err := a.Ask(context.Background(), "¿cuántas ventas hay?")

	require.NoError(t, err)
	assert.Equal(t, "hay 0 registros", out)
	assert.Equal(t, 2, fc.calls, "one statement call plus one phrasing call")
	assert.Equal(t, "SELECT COUNT(*) FROM invoices", q.gotSQL)
}

func TestValidateSelect(t *testing.T) {
	valid := []string{
		"SELECT COUNT(*) FROM invoices",
		"select * from invoices limit 5",
		"SELECT COUNT(*) FROM invoices;",
		"WITH t AS (SELECT username FROM invoices) SELECT * FROM t",
		"  SELECT created_at FROM invoices ORDER BY created_at DESC  ",
	}
	for _, stmt := range valid {
		assert.NoError(t, validateSelect(stmt), stmt)
	}

	invalid := []string{
		"",
		"DROP TABLE invoices",
		"DELETE FROM invoices",
		"INSERT INTO invoices VALUES (1)",
		"UPDATE invoices SET username = 'x'",
		"SELECT 1; DROP TABLE invoices",
		"EXPLAIN SELECT 1",
	}
	for _, stmt := range invalid {
		assert.Error(t, validateSelect(stmt), stmt)
	}
}

func TestStripFences(t *testing.T) {
	require.Equal(t, "SELECT 1", stripFences("SELECT 1"))
	require.Equal(t, "SELECT 1", stripFences("```sql\nSELECT 1\n```"))
	require.Equal(t, "SELECT 1", stripFences("```\nSELECT 1\n```"))
	require.Equal(t, "SELECT 1", stripFences("  SELECT 1  "))
}
