package dto

import "time"

// HistoryEntryResponse entrada del registro de actividad.
type HistoryEntryResponse struct {
	ID         string         `json:"id"`
	OwnerID    string         `json:"owner_id"`
	ActorID    string         `json:"actor_id"`
	Action     string         `json:"action"`
	EntityType string         `json:"entity_type"`
	EntityID   string         `json:"entity_id"`
	Detail     map[string]any `json:"detail,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

// HistoryListResponse listado paginado del historial.
type HistoryListResponse struct {
	Items []HistoryEntryResponse `json:"items"`
	Page  PageResponse           `json:"page"`
}
