package entity

import "time"

// Availability ventana auto-reportada en la que un usuario puede trabajar.
type Availability struct {
	ID        string
	UserID    string
	Date      time.Time
	StartTime time.Time
	EndTime   time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
