// Package entity contains the core business objects of the project.
package entity

import (
	"slices"

	"github.com/google/uuid"
)

// Role represents the type of role a user can have in the system.
type Role string

const (
	// RoleCitizen indicates a regular resident account.
	RoleCitizen Role = "citizen"
	// RoleBourgmestre indicates a municipal official scoped to exactly one commune.
	RoleBourgmestre Role = "bourgmestre"
	// RoleAdmin indicates a city-wide administrator.
	RoleAdmin Role = "admin"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleCitizen, RoleBourgmestre, RoleAdmin:
		return true
	default:
		return false
	}
}

// CanTransitionStatus reports whether the role may change a report's status at all.
// Scope (own commune vs. city-wide) is checked separately through ReportScope.
func (r Role) CanTransitionStatus() bool {
	return r == RoleAdmin || r == RoleBourgmestre
}

// Roles is a slice of Role for convenience.
type Roles []Role

// Contains checks if the roles slice contains a specific role.
func (rs Roles) Contains(role Role) bool {
	return slices.Contains(rs, role)
}

// ScopeKind identifies the breadth of report visibility granted to a caller.
type ScopeKind string

const (
	// ScopeOwn limits visibility to reports submitted by the caller.
	ScopeOwn ScopeKind = "own"
	// ScopeCommune limits visibility to reports of a single commune.
	ScopeCommune ScopeKind = "commune"
	// ScopeAll grants city-wide visibility.
	ScopeAll ScopeKind = "all"
)

// ReportScope is the single place where the role matrix becomes a
// query/visibility constraint. Every list query and every feed event filter
// goes through a scope instead of re-deriving role conditionals at each call site.
type ReportScope struct {
	Kind      ScopeKind
	UserID    uuid.UUID // Set when Kind == ScopeOwn.
	CommuneID uuid.UUID // Set when Kind == ScopeCommune.
}

// ScopeFor resolves the report visibility scope for a user profile.
// Citizens see their own reports, a bourgmestre sees their commune,
// an admin sees everything. A bourgmestre without an assigned commune
// has no usable scope and is treated as not authorized.
func ScopeFor(user *User) (ReportScope, bool) {
	if user == nil {
		return ReportScope{}, false
	}

	switch user.Role {
	case RoleCitizen:
		return ReportScope{Kind: ScopeOwn, UserID: user.ID}, true
	case RoleBourgmestre:
		if user.CommuneID == nil {
			return ReportScope{}, false
		}

		return ReportScope{Kind: ScopeCommune, CommuneID: *user.CommuneID}, true
	case RoleAdmin:
		return ReportScope{Kind: ScopeAll}, true
	default:
		return ReportScope{}, false
	}
}

// Allows reports whether a single report falls inside the scope.
// The change feed is not guaranteed to be pre-filtered for every field the
// consumer cares about, so consumers re-check each event against their scope.
func (s ReportScope) Allows(report *Report) bool {
	if report == nil {
		return false
	}

	switch s.Kind {
	case ScopeAll:
		return true
	case ScopeCommune:
		return report.CommuneID == s.CommuneID
	case ScopeOwn:
		return report.UserID != nil && *report.UserID == s.UserID
	default:
		return false
	}
}
