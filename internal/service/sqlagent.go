package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/luiscast/ventasbot/internal/config"
	"github.com/luiscast/ventasbot/internal/domain"
)

const tableInfo = `Tabla: invoices
- id: identificador único
- invoice_number: número de factura
- user_id: ID del usuario de Telegram
- username: nombre de usuario (puede ser NULL)
- chat_id: ID del chat
- message_text: texto del mensaje/pregunta
- gpt_response: respuesta generada
- created_at: fecha de creación (timestamptz)`

const agentSystemPrompt = `Eres un asistente experto en análisis de ventas y facturación.
Tienes acceso a una base de datos PostgreSQL con una tabla 'invoices':

` + tableInfo + `

IMPORTANTE:
1. Cuando te pregunten por "ventas", refiérete a los registros en la tabla invoices
2. Usa las funciones SQL apropiadas (COUNT, SUM, AVG, etc.)
3. Cuando busques por username, usa LOWER() para comparaciones insensibles a mayúsculas
4. Responde ÚNICAMENTE con una consulta SELECT de PostgreSQL, sin explicación
5. Una sola sentencia, sin punto y coma final`

const answerSystemPrompt = `Eres un asistente de análisis de ventas. Recibirás una pregunta,
la consulta SQL ejecutada y su resultado. Responde en español de manera clara y profesional,
incluyendo los números relevantes. Formatea las fechas de manera legible.`

// rowQuerier is the slice of the pool the agent needs to run a statement.
type rowQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// SQLAgent answers data questions the fixed queries cannot, by asking the
// completion provider for a read-only SELECT, executing it, and phrasing the
// result. Ask is bounded by an iteration cap and a wall-clock budget; on
// exhaustion the caller falls back to the fixed-query or conversational tier.
type SQLAgent struct {
	completer Completer
	db        rowQuerier
}

func NewSQLAgent(completer Completer, db *pgxpool.Pool) *SQLAgent {
	return &SQLAgent{completer: completer, db: db}
}

// TableInfo describes the consumed schema; the agent never introspects or
// alters it.
func (a *SQLAgent) TableInfo() string {
	return tableInfo
}

func (a *SQLAgent) Ask(ctx context.Context, question string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, config.AgentMaxExecution)
	defer cancel()

	var lastErr error
	for i := 0; i < config.AgentMaxIterations; i++ {
		stmt, err := a.generateStatement(ctx, question, lastErr)
		if err != nil {
			lastErr = err
			continue
		}

		if err := validateSelect(stmt); err != nil {
			lastErr = err
			continue
		}

		result, err := a.runQuery(ctx, stmt)
		if err != nil {
			lastErr = err
			continue
		}

		return a.phraseAnswer(ctx, question, stmt, result)
	}

	return "", fmt.Errorf("%w: %v", domain.ErrAgentBudget, lastErr)
}

func (a *SQLAgent) generateStatement(ctx context.Context, question string, lastErr error) (string, error) {
	prompt := "Pregunta del usuario: " + question
	if lastErr != nil {
		prompt += "\n\nEl intento anterior falló con: " + lastErr.Error() + "\nGenera una consulta corregida."
	}

	out, err := a.completer.Complete(ctx, []domain.Turn{
		domain.SystemTurn(agentSystemPrompt),
		domain.UserTurn(prompt),
	})
	if err != nil {
		return "", fmt.Errorf("generate statement: %w", err)
	}
	return stripFences(out), nil
}

func (a *SQLAgent) runQuery(ctx context.Context, stmt string) (string, error) {
	rows, err := a.db.Query(ctx, stmt)
	if err != nil {
		return "", fmt.Errorf("execute statement: %w", err)
	}
	defer rows.Close()

	var b strings.Builder
	fields := rows.FieldDescriptions()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = string(f.Name)
	}
	b.WriteString(strings.Join(names, " | "))
	b.WriteString("\n")

	count := 0
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return "", fmt.Errorf("read row: %w", err)
		}
		cells := make([]string, len(values))
		for i, v := range values {
			cells[i] = fmt.Sprintf("%v", v)
		}
		b.WriteString(strings.Join(cells, " | "))
		b.WriteString("\n")

		count++
		if count >= config.AgentMaxResultRows {
			b.WriteString("... (resultado truncado)\n")
			break
		}
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("statement rows: %w", err)
	}

	if count == 0 {
		return "(sin filas)", nil
	}
	return b.String(), nil
}

func (a *SQLAgent) phraseAnswer(ctx context.Context, question, stmt, result string) (string, error) {
	out, err := a.completer.Complete(ctx, []domain.Turn{
		domain.SystemTurn(answerSystemPrompt),
		domain.UserTurn(fmt.Sprintf("Pregunta: %s\n\nSQL ejecutado:\n%s\n\nResultado:\n%s", question, stmt, result)),
	})
	if err != nil {
		return "", fmt.Errorf("phrase answer: %w", err)
	}
	return out, nil
}

// validateSelect rejects anything but a single read-only SELECT statement.
func validateSelect(stmt string) error {
	s := strings.TrimSpace(stmt)
	s = strings.TrimSuffix(s, ";")
	if s == "" {
		return domain.ErrUnsafeStatement
	}
	if strings.Contains(s, ";") {
		return domain.ErrUnsafeStatement
	}
	lower := strings.ToLower(s)
	if !strings.HasPrefix(lower, "select") && !strings.HasPrefix(lower, "with") {
		return domain.ErrUnsafeStatement
	}
	for _, kw := range []string{"insert ", "update ", "delete ", "drop ", "alter ", "truncate ", "grant ", "create "} {
		if strings.Contains(lower, kw) {
			return domain.ErrUnsafeStatement
		}
	}
	return nil
}

// stripFences removes markdown code fences the model tends to wrap SQL in.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```sql")
		s = strings.TrimPrefix(s, "```")
		if idx := strings.LastIndex(s, "```"); idx >= 0 {
			s = s[:idx]
		}
	}
	return strings.TrimSpace(s)
}
