package entity

import "time"

// Acciones registradas en el historial de actividad.
const (
	ActionCreated  = "created"
	ActionUpdated  = "updated"
	ActionDeleted  = "deleted"
	ActionSold     = "sold"
	ActionAssigned = "assigned"
	ActionReturned = "returned"
	ActionAdjusted = "adjusted"
)

// HistoryEntry entrada append-only del registro de actividad de un owner.
// Detail se persiste como jsonb.
type HistoryEntry struct {
	ID         string
	OwnerID    string
	ActorID    string
	Action     string
	EntityType string // product, client, sale, assignment, user
	EntityID   string
	Detail     map[string]any
	CreatedAt  time.Time
}
