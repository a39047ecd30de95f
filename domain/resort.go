package domain

import "time"

// Resort is registered alongside a reunion manager account.
type Resort struct {
	ID         string    `json:"id"`
	OwnerID    string    `json:"ownerId"`
	ResortName string    `json:"resortName"`
	Location   string    `json:"location"`
	CreatedAt  time.Time `json:"createdAt"`
}
