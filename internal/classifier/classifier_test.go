package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Intent
	}{
		{"total sales question", "¿Cuántas ventas totales tenemos?", DataQuery},
		{"cooccurrence venta+total", "dame el total de ventas del mes", DataQuery},
		{"cooccurrence factura+tenemos", "¿cuántas facturas tenemos?", DataQuery},
		{"recent sales", "muéstrame las últimas ventas", DataQuery},
		{"top customers", "¿quiénes son los mejores clientes?", DataQuery},
		{"search phrase", "busca ventas de zapatos", DataQuery},
		{"company stats", "estadísticas de la empresa de ventas", DataQuery},
		{"uppercase is normalized", "CUÁNTAS VENTAS HAY", DataQuery},

		{"small talk", "Hola, ¿cómo estás?", Conversational},
		{"product question", "¿qué me recomiendas para un regalo?", Conversational},
		{"single token no pair", "ventas", Conversational},
		{"empty", "", Conversational},
		{"garbage", "asdf qwerty 12345", Conversational},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.text))
		})
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	text := "¿Cuántas ventas totales tenemos?"
	first := Classify(text)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Classify(text))
	}
}

func TestPlan(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		wantRecent  bool
		wantTop     bool
		wantKeyword string
	}{
		{"recent only", "muéstrame las últimas ventas", true, false, ""},
		{"top customers", "top clientes de la empresa", false, true, ""},
		{"search with keyword", "busca ventas de zapatillas", false, false, "zapatillas"},
		{"search stopwords only", "busca ventas de la factura", false, false, ""},
		{"bare stats", "¿cuántas ventas tenemos?", false, false, ""},
		{"combined", "muestra los mejores clientes", true, true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Plan(tt.text)
			assert.Equal(t, tt.wantRecent, p.Recent, "recent")
			assert.Equal(t, tt.wantTop, p.TopCustomers, "top customers")
			assert.Equal(t, tt.wantKeyword, p.Keyword, "keyword")
		})
	}
}

func TestPlanSinceDays(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"today standalone", "¿Cuántas ventas hubo hoy?", 1},
		{"today with punctuation", "ventas de hoy!", 1},
		{"this week", "¿cuántas ventas hay esta semana?", 7},
		{"last week unaccented", "total de ventas de la ultima semana", 7},
		{"this month", "cuántas facturas tenemos este mes", 30},
		{"no range", "¿cuántas ventas totales tenemos?", 0},
		{"hoy inside longer word is ignored", "busca ventas de hoyos", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Plan(tt.text).SinceDays, "since days")
		})
	}
}

func TestPlanBare(t *testing.T) {
	assert.True(t, Plan("¿cuántas ventas totales hay?").Bare())
	assert.False(t, Plan("últimas ventas").Bare())
}

func TestExtractKeyword(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"first long non-stopword", "busca ventas de producto", "producto"},
		{"skips short tokens", "busca algo de sillas grandes", "sillas"},
		{"stopword skipped case-insensitively", "Buscar Ventas de Zapatos", "Zapatos"},
		{"nothing survives", "busca de la el los", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractKeyword(tt.text))
		})
	}
}
