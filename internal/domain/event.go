package domain

import (
	"context"
	"time"
)

// Todo is a checklist item owned by its parent event. It has no lifecycle
// of its own; it is created, edited and deleted through event mutations.
type Todo struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Note        string `json:"note"`
	IsCompleted bool   `json:"is_completed"`
}

// InviteeRole maps an invitee's user id to their role on the event.
// Every entry corresponds 1:1 with an id in Event.InviteeIDs.
type InviteeRole struct {
	ID   string `json:"id"`
	Role Role   `json:"role"`
}

// Event is the collaboration aggregate: a dated event with a todo list,
// pending email invitations and role-carrying invitees.
// swagger:model Event
type Event struct {
	ID                       string        `json:"id"`
	Title                    string        `json:"title"`
	Date                     time.Time     `json:"date"`
	ReminderDate             time.Time     `json:"reminder_date"`
	DaysBtwnReminderAndEvent int           `json:"days_btwn_reminder_and_event"`
	TodoCount                int           `json:"todo_count"`
	Todos                    []Todo        `json:"todos"`
	BgCover                  string        `json:"bg_cover"`
	InviteLinkID             string        `json:"invite_link_id"`
	IsInviteLinkActive       bool          `json:"is_invite_link_active"`
	InvitedEmails            []string      `json:"invited_emails"`
	InviteeRoles             []InviteeRole `json:"invitee_roles"`
	InviteeIDs               []string      `json:"invitee_ids"`
	OwnerID                  string        `json:"owner_id"`
	Version                  int           `json:"-"`
	CreatedAt                time.Time     `json:"created_at"`
	UpdatedAt                time.Time     `json:"updated_at"`
}

// Invitee is the user-facing projection of an event participant.
// swagger:model Invitee
type Invitee struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Photo string `json:"photo"`
	Role  Role   `json:"role"`
}

// RoleOf returns the role of the given invitee, if they are one.
func (e *Event) RoleOf(userID string) (Role, bool) {
	for _, ir := range e.InviteeRoles {
		if ir.ID == userID {
			return ir.Role, true
		}
	}
	return "", false
}

// IsInvitee reports whether userID is a current invitee of the event.
func (e *Event) IsInvitee(userID string) bool {
	for _, id := range e.InviteeIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// FindTodo returns the todo with the given id.
func (e *Event) FindTodo(todoID string) (*Todo, bool) {
	for i := range e.Todos {
		if e.Todos[i].ID == todoID {
			return &e.Todos[i], true
		}
	}
	return nil, false
}

// AddTodo appends a todo and keeps TodoCount in step with len(Todos).
func (e *Event) AddTodo(t Todo) *Todo {
	e.Todos = append(e.Todos, t)
	e.TodoCount++
	return &e.Todos[len(e.Todos)-1]
}

// EditTodo replaces title and note of an existing todo in place.
// TodoCount is untouched.
func (e *Event) EditTodo(todoID, title, note string) (*Todo, error) {
	t, ok := e.FindTodo(todoID)
	if !ok {
		return nil, ErrTodoNotFound
	}
	t.Title = title
	t.Note = note
	return t, nil
}

// DeleteTodo removes an existing todo and decrements TodoCount.
func (e *Event) DeleteTodo(todoID string) (Todo, error) {
	for i := range e.Todos {
		if e.Todos[i].ID == todoID {
			removed := e.Todos[i]
			e.Todos = append(e.Todos[:i], e.Todos[i+1:]...)
			e.TodoCount--
			return removed, nil
		}
	}
	return Todo{}, ErrTodoNotFound
}

// DuplicateTodo appends a copy of an existing todo under a new id.
// The copy always starts uncompleted.
func (e *Event) DuplicateTodo(todoID, newID string) (*Todo, error) {
	src, ok := e.FindTodo(todoID)
	if !ok {
		return nil, ErrTodoNotFound
	}
	return e.AddTodo(Todo{ID: newID, Title: src.Title, Note: src.Note}), nil
}

// MarkTodo sets the completion flag of an existing todo. changed reports
// whether the flag actually flipped; idempotent re-marking must not fan
// out notifications.
func (e *Event) MarkTodo(todoID string, isCompleted bool) (t *Todo, changed bool, err error) {
	t, ok := e.FindTodo(todoID)
	if !ok {
		return nil, false, ErrTodoNotFound
	}
	changed = t.IsCompleted != isCompleted
	t.IsCompleted = isCompleted
	return t, changed, nil
}

// AddInvitee records a new invitee with the given role, keeping
// InviteeIDs and InviteeRoles in sync.
func (e *Event) AddInvitee(userID string, role Role) {
	e.InviteeIDs = append(e.InviteeIDs, userID)
	e.InviteeRoles = append(e.InviteeRoles, InviteeRole{ID: userID, Role: role})
}

// RemoveInvitee removes userID from both InviteeIDs and InviteeRoles.
func (e *Event) RemoveInvitee(userID string) error {
	if !e.IsInvitee(userID) {
		return ErrInviteeNotFound
	}
	ids := make([]string, 0, len(e.InviteeIDs)-1)
	for _, id := range e.InviteeIDs {
		if id != userID {
			ids = append(ids, id)
		}
	}
	e.InviteeIDs = ids
	roles := make([]InviteeRole, 0, len(e.InviteeRoles)-1)
	for _, ir := range e.InviteeRoles {
		if ir.ID != userID {
			roles = append(roles, ir)
		}
	}
	e.InviteeRoles = roles
	return nil
}

// AssignRole updates the role of an existing invitee.
func (e *Event) AssignRole(userID string, role Role) error {
	for i := range e.InviteeRoles {
		if e.InviteeRoles[i].ID == userID {
			e.InviteeRoles[i].Role = role
			return nil
		}
	}
	return ErrInviteeNotFound
}

// RemoveInvitedEmail drops email from the pending invitation list and
// reports whether it was present.
func (e *Event) RemoveInvitedEmail(email string) bool {
	for i, invited := range e.InvitedEmails {
		if invited == email {
			e.InvitedEmails = append(e.InvitedEmails[:i], e.InvitedEmails[i+1:]...)
			return true
		}
	}
	return false
}

// EventStatusFilter selects events relative to today when listing.
type EventStatusFilter string

const (
	EventStatusAll      EventStatusFilter = "All"
	EventStatusToday    EventStatusFilter = "Today"
	EventStatusUpcoming EventStatusFilter = "Upcoming"
	EventStatusPassed   EventStatusFilter = "Passed"
)

// EventRepository defines the read-side storage operations for events.
// Writes belong to the transactional unit and go through EventTx.
type EventRepository interface {
	GetByID(ctx context.Context, id string) (*Event, error)
	// ListForUser returns events the user owns or is invited to.
	ListForUser(ctx context.Context, userID string) ([]*Event, error)
	InviteLinkIDTaken(ctx context.Context, inviteLinkID string) (bool, error)
}

// TodoInput is a todo supplied at event creation.
type TodoInput struct {
	Title string `json:"title"`
	Note  string `json:"note"`
}

// CreateEventInput carries the fields a creator supplies for a new event.
type CreateEventInput struct {
	Title                    string      `json:"title"`
	Date                     time.Time   `json:"date"`
	DaysBtwnReminderAndEvent int         `json:"days_btwn_reminder_and_event"`
	BgCover                  string      `json:"bg_cover"`
	InviteLinkID             string      `json:"invite_link_id"`
	IsInviteLinkActive       bool        `json:"is_invite_link_active"`
	InvitedEmails            []string    `json:"invited_emails"`
	Todos                    []TodoInput `json:"todos"`
}

// EventService defines the business logic for the event aggregate.
type EventService interface {
	CreateEvent(ctx context.Context, actorID string, in CreateEventInput) (*Event, error)
	ListEvents(ctx context.Context, actorID string, status EventStatusFilter) ([]*Event, error)
	GetEventByID(ctx context.Context, actorID, eventID string) (*Event, error)
	GenerateInviteLinkID(ctx context.Context) (string, error)
	DeleteEvent(ctx context.Context, actorID, eventID string) (*Event, error)
	ToggleInviteLink(ctx context.Context, actorID, eventID string, active bool) (*Event, error)
	InviteUsers(ctx context.Context, actorID, eventID string, emails []string) (*Event, error)
	AcceptInvitation(ctx context.Context, actorID, eventID string, viaNotification bool) (*Invitee, error)
	RejectInvitation(ctx context.Context, actorID, eventID string, viaNotification bool) (*Event, error)
	RemoveInvitee(ctx context.Context, actorID, eventID, inviteeID string) (*Invitee, error)
	AssignRoleToInvitee(ctx context.Context, actorID, eventID, inviteeID string, role Role) (*Invitee, error)
	AddTodo(ctx context.Context, actorID, eventID, title, note string) (*Todo, error)
	EditTodo(ctx context.Context, actorID, eventID, todoID, title, note string) (*Todo, error)
	DeleteTodo(ctx context.Context, actorID, eventID, todoID string) (*Todo, error)
	DuplicateTodo(ctx context.Context, actorID, eventID, todoID string) (*Todo, error)
	MarkTodo(ctx context.Context, actorID, eventID, todoID string, isCompleted bool) (*Todo, error)
}
