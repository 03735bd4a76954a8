package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testEvent() *Event {
	return &Event{
		ID:      "ev-1",
		Title:   "Launch party",
		OwnerID: "owner",
		InviteeRoles: []InviteeRole{
			{ID: "admin", Role: RoleAdmin},
			{ID: "editor", Role: RoleEditor},
			{ID: "viewer", Role: RoleViewer},
		},
		InviteeIDs: []string{"admin", "editor", "viewer"},
	}
}

func TestCheckPermission_OwnerAlwaysAllowed(t *testing.T) {
	e := testEvent()
	ops := []Operation{
		OpGetEvent, OpDeleteEvent, OpToggleInviteLink, OpInviteUser,
		OpRemoveInvitee, OpAddTodo, OpEditTodo, OpDeleteTodo,
		OpDuplicateTodo, OpMarkTodo,
	}
	for _, op := range ops {
		d := CheckPermission(op, "owner", e)
		assert.True(t, d.HasPermission, "op %s", op)
		assert.Equal(t, UserTypeOwner, d.UserType)
		assert.Equal(t, "owner", d.Executor)
		assert.ElementsMatch(t, []string{"admin", "editor", "viewer"}, d.NotifHosts)
	}
}

func TestCheckPermission_InviteeByRole(t *testing.T) {
	e := testEvent()

	tests := []struct {
		name    string
		op      Operation
		actor   string
		allowed bool
	}{
		{"viewer can read", OpGetEvent, "viewer", true},
		{"viewer cannot add todo", OpAddTodo, "viewer", false},
		{"viewer cannot delete event", OpDeleteEvent, "viewer", false},
		{"editor can add todo", OpAddTodo, "editor", true},
		{"editor can invite", OpInviteUser, "editor", true},
		{"editor cannot delete event", OpDeleteEvent, "editor", false},
		{"editor cannot toggle invite link", OpToggleInviteLink, "editor", false},
		{"admin can delete event", OpDeleteEvent, "admin", true},
		{"admin can toggle invite link", OpToggleInviteLink, "admin", true},
		{"stranger has no access", OpGetEvent, "stranger", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := CheckPermission(tt.op, tt.actor, e)
			assert.Equal(t, tt.allowed, d.HasPermission)
		})
	}
}

func TestCheckPermission_InviteeNotifHostsIncludeOwner(t *testing.T) {
	e := testEvent()
	d := CheckPermission(OpAddTodo, "editor", e)
	assert.True(t, d.HasPermission)
	assert.Equal(t, UserTypeInvitee, d.UserType)
	assert.ElementsMatch(t, []string{"admin", "viewer", "owner"}, d.NotifHosts)
	assert.NotContains(t, d.NotifHosts, "editor")
}

func TestCheckRemovalRank(t *testing.T) {
	e := testEvent()

	tests := []struct {
		name    string
		actor   string
		invitee string
		wantErr bool
	}{
		{"owner removes admin", "owner", "admin", false},
		{"admin removes editor", "admin", "editor", false},
		{"admin removes viewer", "admin", "viewer", false},
		{"admin cannot remove admin", "admin", "admin2", true},
		{"editor removes viewer", "editor", "viewer", false},
		{"editor cannot remove editor", "editor", "editor2", true},
		{"editor cannot remove admin", "editor", "admin", true},
	}
	e.InviteeRoles = append(e.InviteeRoles,
		InviteeRole{ID: "admin2", Role: RoleAdmin},
		InviteeRole{ID: "editor2", Role: RoleEditor},
	)
	e.InviteeIDs = append(e.InviteeIDs, "admin2", "editor2")

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := CheckPermission(OpRemoveInvitee, tt.actor, e)
			err := CheckRemovalRank(d, e, tt.invitee)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrForbidden)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRoleRank(t *testing.T) {
	assert.Greater(t, RoleAdmin.Rank(), RoleEditor.Rank())
	assert.Greater(t, RoleEditor.Rank(), RoleViewer.Rank())
	assert.Equal(t, 0, Role("Bogus").Rank())
}
