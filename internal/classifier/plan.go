package classifier

import (
	"strings"
	"unicode/utf8"
)

// QueryPlan is the second classification tier: which fixed sub-queries to run
// for a message already classified as a data query. Total stats always run;
// the flags add list queries on top.
type QueryPlan struct {
	Recent       bool
	TopCustomers bool
	// Keyword is empty when no keyword search should run, either because no
	// search intent was detected or because no token survived extraction.
	Keyword string
	// SinceDays bounds a date-range fetch; 0 means no range was asked for.
	SinceDays int
}

// Bare reports whether no specific sub-query was detected beyond total stats.
func (p QueryPlan) Bare() bool {
	return !p.Recent && !p.TopCustomers && p.Keyword == "" && p.SinceDays == 0
}

var recencyTokens = []string{"última", "ultimas", "reciente", "recientes", "muestra"}

var customerTokens = []string{"cliente", "clientes", "mejor", "mejores", "top"}

var searchTokens = []string{"busca", "buscar", "encuentra", "contiene", "sobre", "relacionado"}

// rangePhrases map time phrases to a lookback window in days. "hoy" is matched
// as a standalone word to avoid false hits inside longer tokens.
var rangePhrases = []struct {
	phrase string
	days   int
}{
	{"esta semana", 7},
	{"última semana", 7},
	{"ultima semana", 7},
	{"este mes", 30},
	{"último mes", 30},
	{"ultimo mes", 30},
}

// stopwords are skipped during keyword extraction.
var stopwords = map[string]struct{}{
	"venta": {}, "ventas": {}, "factura": {}, "facturas": {},
	"busca": {}, "buscar": {}, "encuentra": {}, "sobre": {},
	"de": {}, "la": {}, "el": {}, "los": {}, "las": {},
}

func Plan(text string) QueryPlan {
	msg := strings.ToLower(text)
	p := QueryPlan{}
	if containsAny(msg, recencyTokens) {
		p.Recent = true
	}
	if containsAny(msg, customerTokens) {
		p.TopCustomers = true
	}
	if containsAny(msg, searchTokens) {
		p.Keyword = ExtractKeyword(text)
	}
	p.SinceDays = sinceDays(msg)
	return p
}

func sinceDays(msg string) int {
	for _, r := range rangePhrases {
		if strings.Contains(msg, r.phrase) {
			return r.days
		}
	}
	for _, token := range strings.Fields(msg) {
		if strings.Trim(token, "¿?¡!.,;:") == "hoy" {
			return 1
		}
	}
	return 0
}

// ExtractKeyword picks the first whitespace token longer than four runes that
// is not a stopword. This is a documented simplification, not a query parser;
// when nothing survives it returns "" and the caller skips the keyword search.
func ExtractKeyword(text string) string {
	for _, token := range strings.Fields(text) {
		if utf8.RuneCountInString(token) <= 4 {
			continue
		}
		if _, ok := stopwords[strings.ToLower(token)]; ok {
			continue
		}
		return token
	}
	return ""
}

func containsAny(msg string, tokens []string) bool {
	for _, t := range tokens {
		if strings.Contains(msg, t) {
			return true
		}
	}
	return false
}
