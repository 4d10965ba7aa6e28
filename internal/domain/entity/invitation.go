package entity

import "time"

// Invitation es una credencial de un solo uso para auto-registro con rol
// preasignado. Solo puede otorgar los roles owner o seller; los admin se
// aprovisionan fuera de banda.
type Invitation struct {
	ID        string
	Email     string
	Role      string  // owner o seller
	Token     string  // hex de 32 bytes aleatorios, único
	OwnerID   *string // owner al que queda ligado un seller invitado
	InvitedBy string
	ExpiresAt time.Time
	UsedAt    *time.Time
	CreatedAt time.Time
}

// Used indica si la invitación ya fue consumida.
func (i *Invitation) Used() bool { return i.UsedAt != nil }

// Expired indica si la invitación venció respecto a now.
func (i *Invitation) Expired(now time.Time) bool { return now.After(i.ExpiresAt) }
