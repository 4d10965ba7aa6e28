// Package display define las preferencias de visualización de los listados:
// qué tablas existen, qué columnas muestra cada una por defecto y qué
// tamaños de página se admiten. Es lógica de dominio pura, sin persistencia.
package display

import "github.com/stocker-app/stocker-api/internal/domain/entity"

// Tablas con columnas configurables.
const (
	TableProducts    = "products"
	TableClients     = "clients"
	TableSales       = "sales"
	TableAssignments = "assignments"
	TableHistory     = "history"
	TableSellers     = "sellers"
)

// Tamaños de página admitidos y valor por defecto.
var PageSizes = []int{10, 25, 50, 100}

const DefaultPageSize = 10

// defaultColumns columnas visibles por defecto de cada tabla. Ninguna lista
// puede quedar vacía: es el fallback cuando el usuario aún no eligió.
var defaultColumns = map[string][]string{
	TableProducts:    {"name", "sku", "price", "stock"},
	TableClients:     {"name", "email", "phone"},
	TableSales:       {"product", "client", "quantity", "total", "soldAt"},
	TableAssignments: {"product", "seller", "quantity", "remaining", "status"},
	TableHistory:     {"action", "entityType", "detail", "createdAt"},
	TableSellers:     {"name", "email", "status"},
}

// Tables devuelve los nombres de tabla conocidos, en orden estable.
func Tables() []string {
	return []string{
		TableProducts, TableClients, TableSales,
		TableAssignments, TableHistory, TableSellers,
	}
}

// ValidTable indica si name es una tabla con preferencias configurables.
func ValidTable(name string) bool {
	_, ok := defaultColumns[name]
	return ok
}

// DefaultColumns devuelve una copia de las columnas por defecto de la tabla.
// Para tablas desconocidas devuelve nil.
func DefaultColumns(table string) []string {
	cols, ok := defaultColumns[table]
	if !ok {
		return nil
	}
	out := make([]string, len(cols))
	copy(out, cols)
	return out
}

// DefaultAll devuelve el mapa completo tabla -> columnas por defecto, con el
// que se siembra un registro de preferencias nuevo.
func DefaultAll() map[string][]string {
	out := make(map[string][]string, len(defaultColumns))
	for table := range defaultColumns {
		out[table] = DefaultColumns(table)
	}
	return out
}

// VisibleColumns devuelve la lista guardada para la tabla, o la lista por
// defecto cuando no hay registro, la tabla no tiene lista o la lista quedó
// vacía.
func VisibleColumns(s *entity.Settings, table string) []string {
	if s == nil {
		return DefaultColumns(table)
	}
	cols, ok := s.Columns[table]
	if !ok || len(cols) == 0 {
		return DefaultColumns(table)
	}
	return cols
}

// ValidPageSize indica si n es uno de los tamaños de página admitidos.
func ValidPageSize(n int) bool {
	for _, s := range PageSizes {
		if n == s {
			return true
		}
	}
	return false
}
