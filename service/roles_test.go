package service

import (
	"context"
	"testing"

	"github.com/portcullis-bot/Portcullis/db"
	"github.com/portcullis-bot/Portcullis/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingRestrictor struct {
	restricted []string
	lifted     []string
}

func (r *recordingRestrictor) Restrict(chatID int64, userID string) error {
	r.restricted = append(r.restricted, userID)
	return nil
}

func (r *recordingRestrictor) Lift(chatID int64, userID string) error {
	r.lifted = append(r.lifted, userID)
	return nil
}

func TestRoleLedger_EnsureRequiredRoles(t *testing.T) {
	db.InitDB(t.TempDir())
	ledger := NewRoleLedger(nil)
	ident := ChatIdentifier(42)

	created, existing, err := ledger.EnsureRequiredRoles(ident)
	require.NoError(t, err)
	assert.Equal(t, model.RequiredRoles, created)
	assert.Empty(t, existing)

	// idempotent: a second run creates nothing and keeps the IDs
	first, ok, err := ledger.FindRoleByName(context.Background(), 42, model.RoleVerified)
	require.NoError(t, err)
	require.True(t, ok)

	created, existing, err = ledger.EnsureRequiredRoles(ident)
	require.NoError(t, err)
	assert.Empty(t, created)
	assert.Equal(t, model.RequiredRoles, existing)

	again, ok, err := ledger.FindRoleByName(context.Background(), 42, model.RoleVerified)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, first.ID, again.ID)

	// roles are scoped per chat
	_, ok, err = ledger.FindRoleByName(context.Background(), 43, model.RoleVerified)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRoleLedger_FindRoleByNameCaseInsensitive(t *testing.T) {
	db.InitDB(t.TempDir())
	ledger := NewRoleLedger(nil)
	_, _, err := ledger.EnsureRequiredRoles(ChatIdentifier(42))
	require.NoError(t, err)

	for _, name := range []string{"Unverified", "UNVERIFIED", "unverified"} {
		role, ok, err := ledger.FindRoleByName(context.Background(), 42, name)
		require.NoError(t, err)
		assert.True(t, ok, "lookup %v", name)
		assert.Equal(t, model.RoleUnverified, role.Name)
	}
}

func TestRoleLedger_AddRemoveRole(t *testing.T) {
	db.InitDB(t.TempDir())
	restrictor := &recordingRestrictor{}
	ledger := NewRoleLedger(restrictor)
	ctx := context.Background()
	_, _, err := ledger.EnsureRequiredRoles(ChatIdentifier(42))
	require.NoError(t, err)

	unverified, ok, err := ledger.FindRoleByName(ctx, 42, model.RoleUnverified)
	require.NoError(t, err)
	require.True(t, ok)
	verified, ok, err := ledger.FindRoleByName(ctx, 42, model.RoleVerified)
	require.NoError(t, err)
	require.True(t, ok)

	has, err := ledger.MemberHasRole(ctx, 42, "u1", unverified)
	require.NoError(t, err)
	assert.False(t, has)

	require.NoError(t, ledger.AddRole(ctx, 42, "u1", unverified))
	require.NoError(t, ledger.AddRole(ctx, 42, "u1", unverified)) // no duplicate entry
	require.NoError(t, ledger.AddRole(ctx, 42, "u1", verified))

	has, err = ledger.MemberHasRole(ctx, 42, "u1", unverified)
	require.NoError(t, err)
	assert.True(t, has)

	require.NoError(t, ledger.RemoveRole(ctx, 42, "u1", unverified))
	has, err = ledger.MemberHasRole(ctx, 42, "u1", unverified)
	require.NoError(t, err)
	assert.False(t, has)
	has, err = ledger.MemberHasRole(ctx, 42, "u1", verified)
	require.NoError(t, err)
	assert.True(t, has, "removing one role keeps the others")

	// only the gated role touches chat permissions
	assert.Equal(t, []string{"u1", "u1"}, restrictor.restricted)
	assert.Equal(t, []string{"u1"}, restrictor.lifted)
	require.NoError(t, ledger.RemoveRole(ctx, 42, "u2", verified)) // absent member, no-op
	assert.Equal(t, []string{"u1"}, restrictor.lifted)
}
