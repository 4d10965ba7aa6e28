package dto

import "time"

// CreateInvitationRequest emite una invitación. Role debe ser owner o seller;
// las invitaciones a seller quedan ligadas al owner que las emite.
type CreateInvitationRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

// InvitationResponse representación de una invitación. El token solo se
// incluye en la respuesta de creación (viaja por email al invitado).
type InvitationResponse struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	Token     string     `json:"token,omitempty"`
	OwnerID   *string    `json:"owner_id,omitempty"`
	InvitedBy string     `json:"invited_by"`
	ExpiresAt time.Time  `json:"expires_at"`
	UsedAt    *time.Time `json:"used_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// InvitationListResponse listado de invitaciones visibles.
type InvitationListResponse struct {
	Items []InvitationResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}
