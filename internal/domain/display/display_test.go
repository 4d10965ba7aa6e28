package display_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stocker-app/stocker-api/internal/domain/display"
	"github.com/stocker-app/stocker-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tablas y columnas por defecto
// ──────────────────────────────────────────────────────────────────────────────

func TestValidTable_TablasConocidas(t *testing.T) {
	for _, table := range display.Tables() {
		assert.True(t, display.ValidTable(table), "la tabla %q debe ser válida", table)
	}
	assert.False(t, display.ValidTable("facturas"), "una tabla desconocida no debe ser válida")
	assert.False(t, display.ValidTable(""), "el nombre vacío no debe ser válido")
}

func TestDefaultColumns_NingunaTablaQuedaVacia(t *testing.T) {
	for _, table := range display.Tables() {
		cols := display.DefaultColumns(table)
		require.NotEmpty(t, cols, "la tabla %q debe tener columnas por defecto", table)
	}
}

func TestDefaultColumns_TablaDesconocidaDevuelveNil(t *testing.T) {
	assert.Nil(t, display.DefaultColumns("no-existe"))
}

// TestDefaultColumns_DevuelveCopia verifica que mutar la lista devuelta no
// contamina los defaults compartidos.
func TestDefaultColumns_DevuelveCopia(t *testing.T) {
	cols := display.DefaultColumns(display.TableProducts)
	require.NotEmpty(t, cols)
	cols[0] = "mutada"

	again := display.DefaultColumns(display.TableProducts)
	assert.NotEqual(t, "mutada", again[0], "los defaults no deben mutarse desde afuera")
}

func TestDefaultAll_CubreTodasLasTablas(t *testing.T) {
	all := display.DefaultAll()
	assert.Len(t, all, len(display.Tables()))
	for _, table := range display.Tables() {
		assert.NotEmpty(t, all[table], "DefaultAll debe incluir la tabla %q", table)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Columnas efectivas (guardadas vs fallback)
// ──────────────────────────────────────────────────────────────────────────────

func TestVisibleColumns_SinRegistroUsaDefaults(t *testing.T) {
	cols := display.VisibleColumns(nil, display.TableClients)
	assert.Equal(t, display.DefaultColumns(display.TableClients), cols)
}

func TestVisibleColumns_ListaGuardada(t *testing.T) {
	s := &entity.Settings{
		Columns: map[string][]string{
			display.TableProducts: {"sku", "stock"},
		},
	}
	assert.Equal(t, []string{"sku", "stock"}, display.VisibleColumns(s, display.TableProducts))
}

func TestVisibleColumns_ListaVaciaCaeAlDefault(t *testing.T) {
	s := &entity.Settings{
		Columns: map[string][]string{
			display.TableSales: {},
		},
	}
	assert.Equal(t, display.DefaultColumns(display.TableSales), display.VisibleColumns(s, display.TableSales))
}

func TestVisibleColumns_TablaSinListaCaeAlDefault(t *testing.T) {
	s := &entity.Settings{Columns: map[string][]string{}}
	assert.Equal(t, display.DefaultColumns(display.TableHistory), display.VisibleColumns(s, display.TableHistory))
}

// ──────────────────────────────────────────────────────────────────────────────
// Tamaños de página
// ──────────────────────────────────────────────────────────────────────────────

func TestValidPageSize(t *testing.T) {
	for _, n := range display.PageSizes {
		assert.True(t, display.ValidPageSize(n), "%d debe ser un tamaño admitido", n)
	}
	assert.False(t, display.ValidPageSize(0))
	assert.False(t, display.ValidPageSize(17))
	assert.False(t, display.ValidPageSize(-10))
}

func TestDefaultPageSize_EsAdmitido(t *testing.T) {
	assert.True(t, display.ValidPageSize(display.DefaultPageSize),
		"el tamaño por defecto debe estar en la lista de admitidos")
}
