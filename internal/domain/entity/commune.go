package entity

import (
	"github.com/google/uuid"
	"github.com/paulmach/orb"
)

// Commune is one of Kinshasa's administrative subdivisions.
// Reference data seeded once and read-only from the application's perspective.
type Commune struct {
	ID         uuid.UUID
	Name       string    // Unique, human-entered (e.g. "Gombe", "Lemba").
	Location   orb.Point // Approximate centroid, lon/lat.
	Population int
}
