package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleCanTransitionStatus(t *testing.T) {
	assert.False(t, RoleCitizen.CanTransitionStatus())
	assert.True(t, RoleBourgmestre.CanTransitionStatus())
	assert.True(t, RoleAdmin.CanTransitionStatus())
}

func TestScopeFor(t *testing.T) {
	userID := uuid.New()
	communeID := uuid.New()

	t.Run("nil user has no scope", func(t *testing.T) {
		_, ok := ScopeFor(nil)
		assert.False(t, ok)
	})

	t.Run("citizen sees own reports", func(t *testing.T) {
		scope, ok := ScopeFor(&User{ID: userID, Role: RoleCitizen})
		require.True(t, ok)
		assert.Equal(t, ScopeOwn, scope.Kind)
		assert.Equal(t, userID, scope.UserID)
	})

	t.Run("bourgmestre sees their commune", func(t *testing.T) {
		scope, ok := ScopeFor(&User{ID: userID, Role: RoleBourgmestre, CommuneID: &communeID})
		require.True(t, ok)
		assert.Equal(t, ScopeCommune, scope.Kind)
		assert.Equal(t, communeID, scope.CommuneID)
	})

	t.Run("bourgmestre without commune is not authorized", func(t *testing.T) {
		_, ok := ScopeFor(&User{ID: userID, Role: RoleBourgmestre})
		assert.False(t, ok)
	})

	t.Run("admin sees everything", func(t *testing.T) {
		scope, ok := ScopeFor(&User{ID: userID, Role: RoleAdmin})
		require.True(t, ok)
		assert.Equal(t, ScopeAll, scope.Kind)
	})

	t.Run("unknown role has no scope", func(t *testing.T) {
		_, ok := ScopeFor(&User{ID: userID, Role: Role("moderator")})
		assert.False(t, ok)
	})
}

func TestReportScopeAllows(t *testing.T) {
	userID := uuid.New()
	otherID := uuid.New()
	communeID := uuid.New()
	otherCommuneID := uuid.New()

	ownScope := ReportScope{Kind: ScopeOwn, UserID: userID}
	communeScope := ReportScope{Kind: ScopeCommune, CommuneID: communeID}
	allScope := ReportScope{Kind: ScopeAll}

	ownReport := &Report{UserID: &userID, CommuneID: communeID}
	othersReport := &Report{UserID: &otherID, CommuneID: communeID}
	anonymousReport := &Report{CommuneID: communeID}
	foreignReport := &Report{UserID: &userID, CommuneID: otherCommuneID}

	t.Run("own scope", func(t *testing.T) {
		assert.True(t, ownScope.Allows(ownReport))
		assert.False(t, ownScope.Allows(othersReport))
		// Anonymous reports belong to nobody, not even their submitter.
		assert.False(t, ownScope.Allows(anonymousReport))
	})

	t.Run("commune scope", func(t *testing.T) {
		assert.True(t, communeScope.Allows(othersReport))
		assert.True(t, communeScope.Allows(anonymousReport))
		assert.False(t, communeScope.Allows(foreignReport))
	})

	t.Run("all scope", func(t *testing.T) {
		assert.True(t, allScope.Allows(ownReport))
		assert.True(t, allScope.Allows(foreignReport))
	})

	t.Run("nil report never allowed", func(t *testing.T) {
		assert.False(t, allScope.Allows(nil))
	})

	t.Run("zero scope never allowed", func(t *testing.T) {
		assert.False(t, ReportScope{}.Allows(ownReport))
	})
}
