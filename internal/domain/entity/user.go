// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the application-level profile of an authenticated identity.
// Its ID is shared with the authentication identity: it is the join key
// between the credential store and the profile store, never a separately
// generated key. A credential may temporarily exist without a profile
// (observed drift in the original system); reconciliation heals that gap.
type User struct {
	ID        uuid.UUID  // Equal to the authentication identity's id.
	Email     string     // Unique; a collision during self-healing creation is resolved with a suffixed fallback.
	FullName  string     // Display name, supplied at signup or defaulted.
	Phone     string     // Optional contact number.
	Role      Role       // citizen, bourgmestre or admin. Defaults to citizen.
	CommuneID *uuid.UUID // Assigned commune; conceptually required when Role is bourgmestre.
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsBourgmestreOf reports whether the user is the bourgmestre of the given commune.
func (u *User) IsBourgmestreOf(communeID uuid.UUID) bool {
	return u.Role == RoleBourgmestre && u.CommuneID != nil && *u.CommuneID == communeID
}
