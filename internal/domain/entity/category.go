package entity

import "time"

// Category agrupa productos del catálogo.
type Category struct {
	ID        string
	Name      string // único sin distinguir mayúsculas
	CreatedAt time.Time
}
