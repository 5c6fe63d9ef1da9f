// Package classifier decides, per incoming message, whether the user is asking
// about sales data or just chatting. It is a lexical heuristic, not a parser:
// false positives and negatives are expected, the goal is high recall on common
// analytic phrasing and a low false-positive rate on small talk.
package classifier

import "strings"

type Intent int

const (
	Conversational Intent = iota
	DataQuery
)

func (i Intent) String() string {
	if i == DataQuery {
		return "data_query"
	}
	return "conversational"
}

// pair is a token co-occurrence rule: both substrings must appear somewhere in
// the lowercased message.
type pair struct {
	a, b string
}

// Rule tables are data, not control flow; add new patterns here.
var cooccurrencePairs = []pair{
	// Sales statistics
	{"venta", "tenemos"},
	{"venta", "hay"},
	{"venta", "total"},
	{"venta", "cuánta"},
	{"venta", "cuanta"},
	{"factura", "tenemos"},
	{"factura", "total"},
	{"factura", "cuánta"},
	{"estadística", "venta"},
	{"estadística", "empresa"},
	{"resumen", "venta"},

	// Recent sales
	{"última", "venta"},
	{"reciente", "venta"},
	{"última", "factura"},

	// Top customers
	{"mejor", "cliente"},
	{"top", "cliente"},
	{"cliente", "compra"},

	// Searches
	{"busca", "venta"},
	{"encuentra", "venta"},
	{"buscar", "factura"},
}

var dataPhrases = []string{
	"cuántas ventas",
	"cuantas ventas",
	"total de ventas",
	"estadísticas de ventas",
	"últimas ventas",
	"ventas recientes",
	"mejores clientes",
	"top clientes",
	"busca ventas",
	"buscar ventas",
}

// Classify is pure and deterministic; empty or unrecognized text is
// conversational.
func Classify(text string) Intent {
	msg := strings.ToLower(text)
	for _, p := range cooccurrencePairs {
		if strings.Contains(msg, p.a) && strings.Contains(msg, p.b) {
			return DataQuery
		}
	}
	for _, phrase := range dataPhrases {
		if strings.Contains(msg, phrase) {
			return DataQuery
		}
	}
	return Conversational
}
