package entity

import "github.com/google/uuid"

// ProblemType is a category of urban problem (garbage, lighting, roads,
// flooding, insecurity...). Reference data seeded once, read-only afterwards.
type ProblemType struct {
	ID            uuid.UUID
	Name          string // Unique.
	Description   string
	PriorityLevel int // Ordinal 1-3, used for triage hints and charts.
}
