// Package dispatcher routes each incoming message through intent
// classification to either the data path (fixed queries + formatter, with the
// SQL agent for questions the fixed tier cannot plan) or the chat path
// (retrieval context + completion provider). One message is one isolation
// unit: every failure is converted to a reply here and never reaches session
// state or other in-flight messages.
package dispatcher

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/luiscast/ventasbot/internal/classifier"
	"github.com/luiscast/ventasbot/internal/config"
	"github.com/luiscast/ventasbot/internal/domain"
	"github.com/luiscast/ventasbot/internal/format"
)

// GenericFailure is the single apology used for transient backend failures.
const GenericFailure = "Lo siento, ocurrió un error al procesar tu mensaje. Por favor, intenta de nuevo."

// DataSource is the read surface the dispatcher needs from the facade.
type DataSource interface {
	TotalStats(ctx context.Context) (domain.TotalStats, error)
	Recent(ctx context.Context, limit int) ([]domain.InteractionSummary, error)
	TopCustomers(ctx context.Context, limit int) ([]domain.CustomerRank, error)
	SearchByKeyword(ctx context.Context, keyword string, limit int) ([]domain.InteractionSummary, error)
	ByDateRange(ctx context.Context, from, to *time.Time, limit int) ([]domain.InteractionSummary, error)
	RecentForUser(ctx context.Context, username string, limit int) ([]domain.InteractionSummary, error)
	SearchSimilar(ctx context.Context, question string, limit int) ([]domain.InteractionSummary, error)
}

// Sessions is the per-user transcript store.
type Sessions interface {
	Get(userID int64) []domain.Turn
	Append(userID int64, turns ...domain.Turn)
	Reset(userID int64)
}

// Responder produces a conversational reply from history plus retrieval
// context.
type Responder interface {
	Respond(ctx context.Context, message string, history []domain.Turn, retrieved domain.RetrievalContext) (string, error)
}

// Agent is the NL-to-SQL collaborator. Optional; may be nil.
type Agent interface {
	Ask(ctx context.Context, question string) (string, error)
}

type Dispatcher struct {
	data      DataSource
	sessions  Sessions
	responder Responder
	agent     Agent
}

func New(data DataSource, sessions Sessions, responder Responder, agent Agent) *Dispatcher {
	return &Dispatcher{
		data:      data,
		sessions:  sessions,
		responder: responder,
		agent:     agent,
	}
}

// Handle processes one message and always returns a non-empty reply.
func (d *Dispatcher) Handle(ctx context.Context, userID int64, username, text string) string {
	log := slog.With("message_id", uuid.NewString(), "user_id", userID)

	intent := classifier.Classify(text)
	log.Info("message classified", "intent", intent.String())

	if intent == classifier.DataQuery {
		if reply, done := d.handleDataQuery(ctx, log, userID, text); done {
			return reply
		}
		log.Info("data path yielded no content, falling through to chat path")
	}

	return d.handleChat(ctx, log, userID, username, text)
}

// handleDataQuery runs the planned sub-queries and formats the result. The
// second return value is false when the attempt produced no usable content
// and the message should fall through to the chat path.
func (d *Dispatcher) handleDataQuery(ctx context.Context, log *slog.Logger, userID int64, text string) (string, bool) {
	plan := classifier.Plan(text)

	// Questions the fixed tier cannot plan beyond bare stats go to the SQL
	// agent first, inside its iteration/time guard.
	if d.agent != nil && plan.Bare() {
		answer, err := d.agent.Ask(ctx, text)
		if err == nil && answer != "" {
			d.sessions.Append(userID, domain.UserTurn(text), domain.AssistantTurn(answer))
			return answer, true
		}
		if err != nil {
			log.Warn("sql agent failed, falling back to fixed queries", "error", err)
		}
	}

	report := format.Report{}

	stats, err := d.data.TotalStats(ctx)
	if err != nil {
		log.Error("total stats query failed", "error", err)
		return GenericFailure, true
	}
	report.Stats = stats

	if plan.Recent {
		rows, err := d.data.Recent(ctx, config.DefaultQueryLimit)
		if err != nil {
			log.Error("recent query failed", "error", err)
			return GenericFailure, true
		}
		report.Recent = rows
	}

	if plan.TopCustomers {
		rows, err := d.data.TopCustomers(ctx, config.DefaultQueryLimit)
		if err != nil {
			log.Error("top customers query failed", "error", err)
			return GenericFailure, true
		}
		report.TopCustomers = rows
	}

	if plan.SinceDays > 0 {
		// Calendar days, not rolling hours: "hoy" starts at local midnight.
		now := time.Now()
		from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
			AddDate(0, 0, -(plan.SinceDays - 1))
		rows, err := d.data.ByDateRange(ctx, &from, nil, config.DefaultQueryLimit)
		if err != nil {
			log.Error("date range query failed", "error", err, "since_days", plan.SinceDays)
			return GenericFailure, true
		}
		report.RangeDays = plan.SinceDays
		report.RangeResults = rows
	}

	if plan.Keyword != "" {
		rows, err := d.data.SearchByKeyword(ctx, plan.Keyword, config.SearchLimit)
		if err != nil {
			log.Error("keyword search failed", "error", err, "keyword", plan.Keyword)
			return GenericFailure, true
		}
		report.Searched = true
		report.SearchKeyword = plan.Keyword
		report.SearchResults = rows
	}

	reply := format.Render(report)
	if reply == "" {
		return "", false
	}

	d.sessions.Append(userID, domain.UserTurn(text), domain.AssistantTurn(reply))
	return reply, true
}

func (d *Dispatcher) handleChat(ctx context.Context, log *slog.Logger, userID int64, username, text string) string {
	// Retrieval context is optional grounding; its failures degrade to an
	// uncontextualized reply instead of failing the message.
	retrieved := domain.RetrievalContext{}
	if username != "" {
		rows, err := d.data.RecentForUser(ctx, username, config.RetrievalUserItems)
		if err != nil {
			log.Warn("user history retrieval failed", "error", err)
		} else {
			retrieved.UserHistory = rows
		}
	}
	rows, err := d.data.SearchSimilar(ctx, text, config.RetrievalSimilarItems)
	if err != nil {
		log.Warn("similar questions retrieval failed", "error", err)
	} else {
		retrieved.SimilarQuestions = rows
	}

	history := d.sessions.Get(userID)

	answer, err := d.responder.Respond(ctx, text, history, retrieved)
	if err != nil {
		log.Error("completion failed", "error", err)
		// Failed turns are not appended; the session stays as it was.
		return GenericFailure
	}

	d.sessions.Append(userID, domain.UserTurn(text), domain.AssistantTurn(answer))
	return answer
}
