// Package format turns structured query results into the Spanish text blocks
// sent back to the user. Markdown emphasis here is cosmetic only.
package format

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/luiscast/ventasbot/internal/domain"
)

const (
	dateLayout     = "02/01/2006"
	dateTimeLayout = "02/01/2006 a las 15:04"
	listTimeLayout = "2006-01-02 15:04"

	snippetLen = 60
)

// Report collects the sub-query results of one data-path attempt.
type Report struct {
	Stats         domain.TotalStats
	Recent        []domain.InteractionSummary
	TopCustomers  []domain.CustomerRank
	Searched      bool
	SearchKeyword string
	SearchResults []domain.InteractionSummary
	RangeDays     int
	RangeResults  []domain.InteractionSummary
}

// Render assembles the reply. It returns "" when there is nothing usable to
// say, which tells the dispatcher to fall through to the chat path instead of
// replying "no data". An empty search result is usable content: the user gets
// a specific "no results" message.
func Render(r Report) string {
	if r.Stats.TotalRecords == 0 && len(r.Recent) == 0 && len(r.TopCustomers) == 0 && !r.Searched {
		return ""
	}

	var parts []string

	if r.Stats.TotalRecords > 0 {
		parts = append(parts, TotalStats(r.Stats))
	}
	if len(r.Recent) > 0 {
		parts = append(parts, RecentSales(r.Recent))
	}
	if len(r.TopCustomers) > 0 {
		parts = append(parts, TopCustomers(r.TopCustomers))
	}
	if r.RangeDays > 0 && len(r.RangeResults) > 0 {
		parts = append(parts, RangeSales(r.RangeDays, r.RangeResults))
	}
	if r.Searched {
		parts = append(parts, SearchResults(r.SearchKeyword, r.SearchResults))
	}

	return strings.Join(parts, "\n")
}

func TotalStats(s domain.TotalStats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📊 Estadísticas de la empresa:\n\n")
	fmt.Fprintf(&b, "💰 Total de registros: %d\n", s.TotalRecords)
	fmt.Fprintf(&b, "🧾 Facturas únicas: %d\n", s.TotalInvoices)
	fmt.Fprintf(&b, "👥 Clientes totales: %d", s.TotalCustomers)

	if s.FirstSale != nil {
		fmt.Fprintf(&b, "\n📅 Primera venta: %s", s.FirstSale.Format(dateLayout))
	}
	if s.LastSale != nil {
		fmt.Fprintf(&b, "\n📅 Última venta: %s", s.LastSale.Format(dateTimeLayout))
	}
	return b.String()
}

func UserStats(username string, s domain.UserStats) string {
	if s.TotalInvoices == 0 {
		return fmt.Sprintf("❌ No se encontraron ventas para el usuario @%s", username)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📊 Estadísticas de ventas para @%s:\n\n", username)
	fmt.Fprintf(&b, "💰 Total de registros: %d\n", s.TotalInvoices)
	fmt.Fprintf(&b, "📋 Facturas únicas: %d", s.UniqueInvoiceNumbers)
	if s.FirstSale != nil {
		fmt.Fprintf(&b, "\n📅 Primera venta: %s", s.FirstSale.Format(listTimeLayout))
	}
	if s.LastSale != nil {
		fmt.Fprintf(&b, "\n📅 Última venta: %s", s.LastSale.Format(listTimeLayout))
	}
	return b.String()
}

func RecentSales(items []domain.InteractionSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📋 Últimas %d ventas de la empresa:", len(items))
	for i, sale := range items {
		fmt.Fprintf(&b, "\n%d. 🧾 %s - %s\n   💬 %s",
			i+1, sale.InvoiceNumber, displayName(sale.Username), snippet(sale.MessageText))
	}
	return b.String()
}

func UserRecent(username string, items []domain.InteractionSummary) string {
	if len(items) == 0 {
		return fmt.Sprintf("❌ No se encontraron ventas para @%s", username)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📋 Tus últimas %d ventas:\n", len(items))
	for i, sale := range items {
		fmt.Fprintf(&b, "\n%d. 🧾 Factura: %s\n   💬 Consulta: %s\n   📅 Fecha: %s",
			i+1, sale.InvoiceNumber, snippet(sale.MessageText), sale.CreatedAt.Format(listTimeLayout))
	}
	return b.String()
}

func RangeSales(days int, items []domain.InteractionSummary) string {
	var b strings.Builder
	if days == 1 {
		fmt.Fprintf(&b, "📅 Ventas de hoy (%d):", len(items))
	} else {
		fmt.Fprintf(&b, "📅 Ventas de los últimos %d días (%d):", days, len(items))
	}
	for i, sale := range items {
		fmt.Fprintf(&b, "\n%d. 🧾 %s - %s\n   💬 %s",
			i+1, sale.InvoiceNumber, displayName(sale.Username), snippet(sale.MessageText))
	}
	return b.String()
}

func TopCustomers(customers []domain.CustomerRank) string {
	var b strings.Builder
	fmt.Fprintf(&b, "👑 Top %d clientes:", len(customers))
	for i, c := range customers {
		fmt.Fprintf(&b, "\n%d. @%s: %d compras (%d facturas únicas)",
			i+1, c.Username, c.TotalPurchases, c.UniqueInvoices)
	}
	return b.String()
}

func SearchResults(keyword string, items []domain.InteractionSummary) string {
	if len(items) == 0 {
		return fmt.Sprintf("❌ No se encontraron resultados para '%s'", keyword)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🔍 Encontré %d resultados para '%s':", len(items), keyword)
	for i, sale := range items {
		fmt.Fprintf(&b, "\n%d. 🧾 %s - %s\n   💬 %s",
			i+1, sale.InvoiceNumber, displayName(sale.Username), snippet(sale.MessageText))
	}
	return b.String()
}

func displayName(username *string) string {
	if username == nil || *username == "" {
		return "Cliente"
	}
	return "@" + *username
}

func snippet(s string) string {
	if utf8.RuneCountInString(s) <= snippetLen {
		return s
	}
	return string([]rune(s)[:snippetLen]) + "..."
}
