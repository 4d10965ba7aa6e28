package entity

import "time"

// Client comprador registrado por un owner.
type Client struct {
	ID        string
	OwnerID   string
	Name      string
	Email     string
	Phone     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
