package format

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luiscast/ventasbot/internal/domain"
)

func ts(s string) *time.Time {
	t, err := time.Parse("2006-01-02 15:04", s)
	if err != nil {
		panic(err)
	}
	return &t
}

func strptr(s string) *string { return &s }

func TestRenderEmptyReportFallsThrough(t *testing.T) {
	assert.Empty(t, Render(Report{}))
}

func TestRenderStatsOnly(t *testing.T) {
	out := Render(Report{
		Stats: domain.TotalStats{
			TotalRecords:   120,
			TotalInvoices:  80,
			TotalCustomers: 15,
			FirstSale:      ts("2024-01-05 09:30"),
			LastSale:       ts("2024-06-20 18:45"),
		},
	})

	assert.Contains(t, out, "Total de registros: 120")
	assert.Contains(t, out, "Facturas únicas: 80")
	assert.Contains(t, out, "Clientes totales: 15")
	assert.Contains(t, out, "Primera venta: 05/01/2024")
	assert.Contains(t, out, "Última venta: 20/06/2024 a las 18:45")
}

func TestRenderSearchNoResults(t *testing.T) {
	out := Render(Report{
		Stats:         domain.TotalStats{TotalRecords: 10},
		Searched:      true,
		SearchKeyword: "zapatos",
	})

	// Empty search results are a specific message, not a fallthrough.
	assert.Contains(t, out, "No se encontraron resultados para 'zapatos'")
}

func TestRenderRecentList(t *testing.T) {
	out := Render(Report{
		Stats: domain.TotalStats{TotalRecords: 3},
		Recent: []domain.InteractionSummary{
			{InvoiceNumber: "INV-001", Username: strptr("ana"), MessageText: "compra de sillas", CreatedAt: *ts("2024-06-01 10:00")},
			{InvoiceNumber: "INV-002", Username: nil, MessageText: "compra de mesas", CreatedAt: *ts("2024-06-02 10:00")},
		},
	})

	assert.Contains(t, out, "Últimas 2 ventas")
	assert.Contains(t, out, "INV-001 - @ana")
	assert.Contains(t, out, "INV-002 - Cliente", "nil username renders as Cliente")
}

func TestRenderTopCustomers(t *testing.T) {
	out := Render(Report{
		Stats: domain.TotalStats{TotalRecords: 3},
		TopCustomers: []domain.CustomerRank{
			{Username: "ana", TotalPurchases: 12, UniqueInvoices: 10},
			{Username: "bruno", TotalPurchases: 5, UniqueInvoices: 5},
		},
	})

	assert.Contains(t, out, "Top 2 clientes")
	idxAna := strings.Index(out, "@ana")
	idxBruno := strings.Index(out, "@bruno")
	require.GreaterOrEqual(t, idxAna, 0)
	require.GreaterOrEqual(t, idxBruno, 0)
	assert.Less(t, idxAna, idxBruno, "order must be preserved")
}

func TestRangeSalesWording(t *testing.T) {
	items := []domain.InteractionSummary{
		{InvoiceNumber: "INV-9", Username: strptr("ana"), MessageText: "compra"},
	}

	assert.Contains(t, RangeSales(1, items), "Ventas de hoy (1)")
	assert.Contains(t, RangeSales(7, items), "últimos 7 días (1)")
}

func TestUserStatsZeroIsNotAnError(t *testing.T) {
	out := UserStats("desconocido", domain.UserStats{})
	assert.Contains(t, out, "No se encontraron ventas para el usuario @desconocido")
}

func TestUserStats(t *testing.T) {
	out := UserStats("ana", domain.UserStats{
		TotalInvoices:        7,
		UniqueInvoiceNumbers: 6,
		FirstSale:            ts("2024-02-01 08:00"),
		LastSale:             ts("2024-03-01 09:00"),
	})
	assert.Contains(t, out, "@ana")
	assert.Contains(t, out, "Total de registros: 7")
	assert.Contains(t, out, "Facturas únicas: 6")
	assert.Contains(t, out, "2024-02-01 08:00")
}

func TestUserRecentEmpty(t *testing.T) {
	out := UserRecent("ana", nil)
	assert.Contains(t, out, "No se encontraron ventas para @ana")
}

func TestSnippetTruncation(t *testing.T) {
	long := strings.Repeat("á", 100)
	out := RecentSales([]domain.InteractionSummary{
		{InvoiceNumber: "INV-1", MessageText: long},
	})
	assert.Contains(t, out, strings.Repeat("á", 60)+"...")
	assert.NotContains(t, out, strings.Repeat("á", 61))
}
