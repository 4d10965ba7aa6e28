package dto

// SettingsResponse preferencias de visualización del usuario. Columns trae
// la lista efectiva por tabla (la guardada, o la de defecto si no hay).
type SettingsResponse struct {
	UserID   string              `json:"user_id"`
	Columns  map[string][]string `json:"columns"`
	PageSize int                 `json:"page_size"`
}

// SetColumnsRequest reemplaza las columnas visibles de una tabla.
// La lista no puede quedar vacía.
type SetColumnsRequest struct {
	Columns []string `json:"columns"`
}

// SetPageSizeRequest cambia el tamaño de página (10, 25, 50 o 100).
type SetPageSizeRequest struct {
	PageSize int `json:"page_size"`
}
