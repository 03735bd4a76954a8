package domain

// Role is an invitee's permission tier on an event. Roles are ordered:
// Viewer < Editor < Admin. The event owner sits above all three.
type Role string

const (
	RoleViewer Role = "Viewer"
	RoleEditor Role = "Editor"
	RoleAdmin  Role = "Admin"
)

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleViewer, RoleEditor, RoleAdmin:
		return true
	}
	return false
}

// Rank returns the role's position in the Viewer < Editor < Admin
// ordering. Unknown roles rank below Viewer.
func (r Role) Rank() int {
	switch r {
	case RoleViewer:
		return 1
	case RoleEditor:
		return 2
	case RoleAdmin:
		return 3
	}
	return 0
}

// Operation names a permission-checked action on an event.
type Operation string

const (
	OpGetEvent         Operation = "getEvent"
	OpDeleteEvent      Operation = "deleteEvent"
	OpToggleInviteLink Operation = "toggleInviteLink"
	OpInviteUser       Operation = "inviteUser"
	OpRemoveInvitee    Operation = "removeInvitee"
	OpAddTodo          Operation = "addTodo"
	OpEditTodo         Operation = "editTodo"
	OpDeleteTodo       Operation = "deleteTodo"
	OpDuplicateTodo    Operation = "duplicateTodo"
	OpMarkTodo         Operation = "markTodo"
)

// operationRoles is the fixed table of invitee roles allowed to perform
// each operation. Owners bypass the table entirely.
var operationRoles = map[Operation][]Role{
	OpGetEvent:         {RoleAdmin, RoleEditor, RoleViewer},
	OpDeleteEvent:      {RoleAdmin},
	OpToggleInviteLink: {RoleAdmin},
	OpInviteUser:       {RoleAdmin, RoleEditor},
	OpRemoveInvitee:    {RoleAdmin, RoleEditor},
	OpAddTodo:          {RoleAdmin, RoleEditor},
	OpEditTodo:         {RoleAdmin, RoleEditor},
	OpDeleteTodo:       {RoleAdmin, RoleEditor},
	OpDuplicateTodo:    {RoleAdmin, RoleEditor},
	OpMarkTodo:         {RoleAdmin, RoleEditor},
}

// UserType distinguishes how the actor relates to the event.
type UserType string

const (
	UserTypeOwner   UserType = "Owner"
	UserTypeInvitee UserType = "Invitee"
)

// Decision is the result of a permission check. NotifHosts lists the
// users who should be notified when the operation goes through: for an
// owner, all invitees; for an invitee, every other invitee plus the
// owner. The actor is never their own host.
type Decision struct {
	HasPermission bool
	UserType      UserType
	NotifHosts    []string
	Executor      string
}

// CheckPermission decides whether actorID may perform op on the event.
// It is pure: lack of permission is a data result, not an error.
func CheckPermission(op Operation, actorID string, e *Event) Decision {
	// Event owners are automatic Admins.
	if e.OwnerID == actorID {
		hosts := make([]string, len(e.InviteeIDs))
		copy(hosts, e.InviteeIDs)
		return Decision{
			HasPermission: true,
			UserType:      UserTypeOwner,
			NotifHosts:    hosts,
			Executor:      actorID,
		}
	}

	role, ok := e.RoleOf(actorID)
	if !ok {
		return Decision{}
	}
	for _, allowed := range operationRoles[op] {
		if role == allowed {
			hosts := make([]string, 0, len(e.InviteeIDs))
			for _, id := range e.InviteeIDs {
				if id != actorID {
					hosts = append(hosts, id)
				}
			}
			hosts = append(hosts, e.OwnerID)
			return Decision{
				HasPermission: true,
				UserType:      UserTypeInvitee,
				NotifHosts:    hosts,
				Executor:      actorID,
			}
		}
	}
	return Decision{}
}

// CheckRemovalRank is the second-stage rule for invitee-initiated
// removals, layered on top of a permitted removeInvitee Decision:
// Admins may remove Editors and Viewers but not other Admins, and
// Editors may remove only Viewers. Owners are not subject to it.
func CheckRemovalRank(d Decision, e *Event, inviteeID string) error {
	if d.UserType != UserTypeInvitee {
		return nil
	}
	executorRole, _ := e.RoleOf(d.Executor)
	executeeRole, _ := e.RoleOf(inviteeID)
	if executorRole == RoleAdmin && executeeRole == RoleAdmin {
		return ErrForbidden
	}
	if executorRole == RoleEditor && executeeRole.Rank() >= RoleEditor.Rank() {
		return ErrForbidden
	}
	return nil
}
