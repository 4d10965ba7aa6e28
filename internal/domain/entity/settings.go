package entity

import "time"

// Settings preferencias de visualización por usuario: columnas visibles por
// tabla y tamaño de página. Existe exactamente un registro por usuario
// (constraint único en user_id, creado perezosamente en el primer acceso).
type Settings struct {
	ID        string
	UserID    string
	Columns   map[string][]string // tabla -> columnas visibles, en orden
	PageSize  int                 // 10, 25, 50 o 100
	CreatedAt time.Time
	UpdatedAt time.Time
}
