package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/luiscast/ventasbot/internal/config"
	"github.com/luiscast/ventasbot/internal/domain"
)

const systemPrompt = `Eres un asistente virtual inteligente de una empresa de ventas.

Tu rol es ayudar a los usuarios con información sobre:
- Consultas de ventas y estadísticas de la empresa
- Preguntas sobre productos y servicios
- Información general del negocio
- Responder preguntas frecuentes basadas en el historial

Directrices de comportamiento:
1. Sé profesional, amable y conciso
2. Si tienes información de la base de datos en el contexto, úsala para dar respuestas precisas
3. Si no tienes información suficiente, sé honesto y sugiere alternativas
4. Mantén un tono conversacional pero profesional
5. Formatea las respuestas de manera clara y legible
6. No inventes datos - si no sabes algo, dilo claramente

Cuando respondas:
- Usa información del contexto proporcionado cuando esté disponible
- Sé específico y basado en datos reales
- Ofrece ayuda adicional cuando sea apropiado
- Mantén las respuestas relevantes y al punto`

// Responder assembles the conversational prompt and performs one provider
// call. Provider failures propagate to the dispatcher, which owns the
// user-facing degradation.
type Responder struct {
	completer Completer
}

func NewResponder(completer Completer) *Responder {
	return &Responder{completer: completer}
}

// Respond builds: system prompt, optional retrieval context, the bounded
// history, then the new user message.
func (r *Responder) Respond(ctx context.Context, message string, history []domain.Turn, retrieved domain.RetrievalContext) (string, error) {
	turns := make([]domain.Turn, 0, len(history)+3)
	turns = append(turns, domain.SystemTurn(systemPrompt))

	if ctxMsg := buildContextMessage(retrieved); ctxMsg != "" {
		turns = append(turns, domain.SystemTurn(ctxMsg))
	}

	turns = append(turns, history...)
	turns = append(turns, domain.UserTurn(message))

	return r.completer.Complete(ctx, turns)
}

// buildContextMessage serializes the retrieval context, truncating every field
// to bound prompt size.
func buildContextMessage(rc domain.RetrievalContext) string {
	if rc.IsEmpty() {
		return ""
	}

	var parts []string
	parts = append(parts, "Contexto de preguntas frecuentes:")

	if len(rc.UserHistory) > 0 {
		parts = append(parts, "Historial previo del usuario:")
		for _, item := range capItems(rc.UserHistory, config.RetrievalUserItems) {
			parts = append(parts, "- Pregunta: "+truncate(item.MessageText, config.RetrievalFieldMaxLen))
			parts = append(parts, "  Respuesta: "+truncate(item.GPTResponse, config.RetrievalFieldMaxLen))
		}
	}

	if len(rc.SimilarQuestions) > 0 {
		parts = append(parts, "\nPreguntas similares anteriores:")
		for _, item := range capItems(rc.SimilarQuestions, config.RetrievalSimilarItems) {
			parts = append(parts, "- Pregunta: "+truncate(item.MessageText, config.RetrievalFieldMaxLen))
			parts = append(parts, "  Respuesta: "+truncate(item.GPTResponse, config.RetrievalFieldMaxLen))
		}
	}

	parts = append(parts, "\nUsa este contexto para dar una respuesta más relevante y consistente.")
	return strings.Join(parts, "\n")
}

func capItems(items []domain.InteractionSummary, max int) []domain.InteractionSummary {
	if len(items) > max {
		return items[:max]
	}
	return items
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}
