package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/aibrid/zipo-server/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// fakeEventRepo is an in-memory EventRepository for tests.
type fakeEventRepo struct {
	byID map[string]*domain.Event
	err  error
}

func newFakeEventRepo(events ...*domain.Event) *fakeEventRepo {
	f := &fakeEventRepo{byID: make(map[string]*domain.Event)}
	for _, e := range events {
		f.byID[e.ID] = e
	}
	return f
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	if e, ok := f.byID[id]; ok {
		// Deep copy so service-side mutations only reach the store
		// through a committed transaction.
		copied := *e
		copied.Todos = append([]domain.Todo(nil), e.Todos...)
		copied.InviteeRoles = append([]domain.InviteeRole(nil), e.InviteeRoles...)
		copied.InviteeIDs = append([]string(nil), e.InviteeIDs...)
		copied.InvitedEmails = append([]string(nil), e.InvitedEmails...)
		return &copied, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) ListForUser(ctx context.Context, userID string) ([]*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.Event
	for _, e := range f.byID {
		if e.OwnerID == userID || e.IsInvitee(userID) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) InviteLinkIDTaken(ctx context.Context, id string) (bool, error) {
	for _, e := range f.byID {
		if e.InviteLinkID == id {
			return true, nil
		}
	}
	return false, nil
}

// fakeUserRepo is an in-memory UserRepository for tests.
type fakeUserRepo struct {
	byID map[string]*domain.User
	err  error
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	f := &fakeUserRepo{byID: make(map[string]*domain.User)}
	for _, u := range users {
		f.byID[u.ID] = u
	}
	return f
}

func (f *fakeUserRepo) Create(ctx context.Context, u *domain.User) error {
	if f.err != nil {
		return f.err
	}
	f.byID[u.ID] = u
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) GetByVerifyToken(ctx context.Context, tokenHash string) (*domain.User, error) {
	for _, u := range f.byID {
		if u.VerifyEmailToken == tokenHash && u.VerifyEmailExpire != nil && u.VerifyEmailExpire.After(time.Now()) {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) GetByResetToken(ctx context.Context, tokenHash string) (*domain.User, error) {
	for _, u := range f.byID {
		if u.ResetPasswordToken == tokenHash && u.ResetPasswordExpire != nil && u.ResetPasswordExpire.After(time.Now()) {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) Update(ctx context.Context, u *domain.User) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.byID[u.ID]; !ok {
		return domain.ErrNotFound
	}
	f.byID[u.ID] = u
	return nil
}

func (f *fakeUserRepo) FindByEmails(ctx context.Context, emails []string) ([]*domain.User, error) {
	var out []*domain.User
	for _, email := range emails {
		for _, u := range f.byID {
			if u.Email == email && u.IsSignupCompleted {
				out = append(out, u)
			}
		}
	}
	return out, nil
}

func (f *fakeUserRepo) FindByIDs(ctx context.Context, ids []string) ([]*domain.User, error) {
	var out []*domain.User
	for _, id := range ids {
		if u, ok := f.byID[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) ResetNewNotifications(ctx context.Context, userID string) error {
	if u, ok := f.byID[userID]; ok {
		u.NewNotifications = 0
	}
	return nil
}

// fakeTx records every write issued inside a transaction. The manager
// keeps the recorded state only when fn commits.
type fakeTx struct {
	created          []*domain.Event
	saved            []*domain.Event
	deleted          []string
	notifications    []*domain.Notification
	incremented      [][]string
	actionTakenCalls [][3]string
	saveErr          error
	createNotifErr   error
}

func (t *fakeTx) CreateEvent(ctx context.Context, e *domain.Event) error {
	t.created = append(t.created, e)
	return nil
}

func (t *fakeTx) SaveEvent(ctx context.Context, e *domain.Event) error {
	if t.saveErr != nil {
		return t.saveErr
	}
	t.saved = append(t.saved, e)
	return nil
}

func (t *fakeTx) DeleteEvent(ctx context.Context, id string) error {
	t.deleted = append(t.deleted, id)
	return nil
}

func (t *fakeTx) CreateNotifications(ctx context.Context, ns []*domain.Notification) error {
	if t.createNotifErr != nil {
		return t.createNotifErr
	}
	t.notifications = append(t.notifications, ns...)
	return nil
}

func (t *fakeTx) MarkInviteActionTaken(ctx context.Context, ownerID, initiatorID, eventID string) error {
	t.actionTakenCalls = append(t.actionTakenCalls, [3]string{ownerID, initiatorID, eventID})
	return nil
}

func (t *fakeTx) IncrementNewNotifications(ctx context.Context, userIDs []string) error {
	t.incremented = append(t.incremented, userIDs)
	return nil
}

// fakeTxManager hands out a fresh fakeTx per call and keeps it as
// committed only when fn returns nil.
type fakeTxManager struct {
	repo           *fakeEventRepo
	committed      *fakeTx
	rolledBack     bool
	saveErr        error
	createNotifErr error
}

func (m *fakeTxManager) WithinTx(ctx context.Context, fn func(tx domain.EventTx) error) error {
	tx := &fakeTx{saveErr: m.saveErr, createNotifErr: m.createNotifErr}
	if err := fn(tx); err != nil {
		m.rolledBack = true
		return err
	}
	m.committed = tx
	if m.repo != nil {
		for _, e := range tx.created {
			m.repo.byID[e.ID] = e
		}
		for _, e := range tx.saved {
			m.repo.byID[e.ID] = e
		}
		for _, id := range tx.deleted {
			delete(m.repo.byID, id)
		}
	}
	return nil
}

// fakeEmailService records sent invitations.
type fakeEmailService struct {
	invitations []*domain.EventInvitationEmailData
	err         error
}

func (f *fakeEmailService) SendEventInvitation(ctx context.Context, data *domain.EventInvitationEmailData) error {
	if f.err != nil {
		return f.err
	}
	f.invitations = append(f.invitations, data)
	return nil
}

func (f *fakeEmailService) SendVerificationCode(ctx context.Context, data *domain.VerificationCodeEmailData) error {
	return f.err
}

func (f *fakeEmailService) SendResetPasswordCode(ctx context.Context, data *domain.VerificationCodeEmailData) error {
	return f.err
}

func (f *fakeEmailService) SendWelcomeMessage(ctx context.Context, data *domain.WelcomeEmailData) error {
	return f.err
}

type eventFixture struct {
	svc       domain.EventService
	eventRepo *fakeEventRepo
	userRepo  *fakeUserRepo
	tx        *fakeTxManager
	emails    *fakeEmailService
}

func newEventFixture(events []*domain.Event, users []*domain.User) *eventFixture {
	eventRepo := newFakeEventRepo(events...)
	userRepo := newFakeUserRepo(users...)
	tx := &fakeTxManager{repo: eventRepo}
	emails := &fakeEmailService{}
	svc := NewEventService(eventRepo, userRepo, tx, emails, testLogger, 2*time.Second)
	n := 0
	svc.(*eventService).newID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	return &eventFixture{svc: svc, eventRepo: eventRepo, userRepo: userRepo, tx: tx, emails: emails}
}

func sharedEvent() *domain.Event {
	return &domain.Event{
		ID:           "ev-1",
		Title:        "Launch party",
		Date:         time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		OwnerID:      "owner",
		InviteLinkID: "link-1",
		InviteeRoles: []domain.InviteeRole{
			{ID: "admin", Role: domain.RoleAdmin},
			{ID: "editor", Role: domain.RoleEditor},
			{ID: "viewer", Role: domain.RoleViewer},
		},
		InviteeIDs: []string{"admin", "editor", "viewer"},
		Todos: []domain.Todo{
			{ID: "todo-1", Title: "Order cake"},
		},
		TodoCount: 1,
		Version:   3,
	}
}

func sharedUsers() []*domain.User {
	return []*domain.User{
		{ID: "owner", Name: "Olu", Email: "olu@example.com", IsSignupCompleted: true},
		{ID: "admin", Name: "Ada", Email: "ada@example.com", IsSignupCompleted: true},
		{ID: "editor", Name: "Eze", Email: "eze@example.com", IsSignupCompleted: true},
		{ID: "viewer", Name: "Vik", Email: "vik@example.com", IsSignupCompleted: true},
	}
}

func TestCreateEvent_ReminderDateAndOwnEmailFiltered(t *testing.T) {
	fx := newEventFixture(nil, sharedUsers())

	event, err := fx.svc.CreateEvent(context.Background(), "owner", domain.CreateEventInput{
		Title:                    "Demo day",
		Date:                     time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		DaysBtwnReminderAndEvent: 5,
		InvitedEmails:            []string{"olu@example.com", "ada@example.com", "new@example.com"},
		Todos:                    []domain.TodoInput{{Title: "Prep slides"}},
	})
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC), event.ReminderDate)
	// The creator's own email never lands on the invite list.
	assert.ElementsMatch(t, []string{"ada@example.com", "new@example.com"}, event.InvitedEmails)
	assert.Equal(t, 1, event.TodoCount)
	require.NotNil(t, fx.tx.committed)
	require.Len(t, fx.tx.committed.created, 1)

	// Only the registered recipient gets an in-app notification.
	require.Len(t, fx.tx.committed.notifications, 1)
	n := fx.tx.committed.notifications[0]
	assert.Equal(t, "admin", n.OwnerID)
	assert.Equal(t, domain.NotifEventInvite, n.Type)
	assert.Equal(t, "Invited you to an event. Demo day", n.Message)
	assert.True(t, n.IsActionRequired)

	// Both invited emails get the invitation email.
	require.Len(t, fx.emails.invitations, 1)
	assert.ElementsMatch(t, []string{"ada@example.com", "new@example.com"}, fx.emails.invitations[0].Emails)
}

func TestCreateEvent_EmailFailureDoesNotFail(t *testing.T) {
	fx := newEventFixture(nil, sharedUsers())
	fx.emails.err = errors.New("ses down")

	_, err := fx.svc.CreateEvent(context.Background(), "owner", domain.CreateEventInput{
		Title:         "Demo day",
		Date:          time.Now().AddDate(0, 1, 0),
		InvitedEmails: []string{"ada@example.com"},
	})
	assert.NoError(t, err)
	assert.NotNil(t, fx.tx.committed)
}

func TestGetEventByID_StrangerForbidden(t *testing.T) {
	fx := newEventFixture([]*domain.Event{sharedEvent()}, sharedUsers())

	_, err := fx.svc.GetEventByID(context.Background(), "stranger", "ev-1")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	event, err := fx.svc.GetEventByID(context.Background(), "viewer", "ev-1")
	require.NoError(t, err)
	assert.Equal(t, "ev-1", event.ID)
}

func TestDeleteEvent_AdminAllowedViewerForbidden(t *testing.T) {
	fx := newEventFixture([]*domain.Event{sharedEvent()}, sharedUsers())

	_, err := fx.svc.DeleteEvent(context.Background(), "viewer", "ev-1")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	event, err := fx.svc.DeleteEvent(context.Background(), "admin", "ev-1")
	require.NoError(t, err)
	assert.Equal(t, "Launch party", event.Title)
	assert.Equal(t, []string{"ev-1"}, fx.tx.committed.deleted)

	// Everyone but the admin hears about it, including the owner.
	require.Len(t, fx.tx.committed.notifications, 3)
	hosts := make([]string, 0, 3)
	for _, n := range fx.tx.committed.notifications {
		hosts = append(hosts, n.OwnerID)
		assert.Equal(t, "Deleted the event. Launch party", n.Message)
	}
	assert.ElementsMatch(t, []string{"owner", "editor", "viewer"}, hosts)
}

func TestAddTodo_CountStaysInSyncAndFanout(t *testing.T) {
	fx := newEventFixture([]*domain.Event{sharedEvent()}, sharedUsers())

	todo, err := fx.svc.AddTodo(context.Background(), "editor", "ev-1", "Book venue", "downtown")
	require.NoError(t, err)
	assert.Equal(t, "Book venue", todo.Title)

	saved := fx.tx.committed.saved[0]
	assert.Len(t, saved.Todos, 2)
	assert.Equal(t, 2, saved.TodoCount)

	require.Len(t, fx.tx.committed.notifications, 3)
	assert.Equal(t, "Added a Todo. Book venue", fx.tx.committed.notifications[0].Message)
	require.Len(t, fx.tx.committed.incremented, 1)
	assert.ElementsMatch(t, []string{"admin", "viewer", "owner"}, fx.tx.committed.incremented[0])
}

func TestDeleteTodo_CountStaysInSync(t *testing.T) {
	fx := newEventFixture([]*domain.Event{sharedEvent()}, sharedUsers())

	todo, err := fx.svc.DeleteTodo(context.Background(), "owner", "ev-1", "todo-1")
	require.NoError(t, err)
	assert.Equal(t, "Order cake", todo.Title)

	saved := fx.tx.committed.saved[0]
	assert.Len(t, saved.Todos, 0)
	assert.Equal(t, 0, saved.TodoCount)
}

func TestDeleteTodo_UnknownTodo(t *testing.T) {
	fx := newEventFixture([]*domain.Event{sharedEvent()}, sharedUsers())

	_, err := fx.svc.DeleteTodo(context.Background(), "owner", "ev-1", "nope")
	assert.ErrorIs(t, err, domain.ErrTodoNotFound)
	assert.Nil(t, fx.tx.committed)
}

func TestDuplicateTodo_CopyStartsIncomplete(t *testing.T) {
	e := sharedEvent()
	e.Todos[0].IsCompleted = true
	fx := newEventFixture([]*domain.Event{e}, sharedUsers())

	todo, err := fx.svc.DuplicateTodo(context.Background(), "owner", "ev-1", "todo-1")
	require.NoError(t, err)
	assert.Equal(t, "Order cake", todo.Title)
	assert.NotEqual(t, "todo-1", todo.ID)
	assert.False(t, todo.IsCompleted)

	saved := fx.tx.committed.saved[0]
	assert.Equal(t, 2, saved.TodoCount)
}

func TestMarkTodo_NotifiesOnlyOnChange(t *testing.T) {
	fx := newEventFixture([]*domain.Event{sharedEvent()}, sharedUsers())

	_, err := fx.svc.MarkTodo(context.Background(), "owner", "ev-1", "todo-1", true)
	require.NoError(t, err)
	require.Len(t, fx.tx.committed.notifications, 3)
	assert.Equal(t, "Completed a Todo. Order cake", fx.tx.committed.notifications[0].Message)

	// Same state again: the save happens, the fanout does not.
	_, err = fx.svc.MarkTodo(context.Background(), "owner", "ev-1", "todo-1", true)
	require.NoError(t, err)
	assert.Len(t, fx.tx.committed.saved, 1)
	assert.Empty(t, fx.tx.committed.notifications)
	assert.Empty(t, fx.tx.committed.incremented)

	// Unmarking is a change again.
	_, err = fx.svc.MarkTodo(context.Background(), "owner", "ev-1", "todo-1", false)
	require.NoError(t, err)
	require.Len(t, fx.tx.committed.notifications, 3)
	assert.Equal(t, "Unmarked a Todo. Order cake", fx.tx.committed.notifications[0].Message)
}

func TestMarkTodo_RollbackOnNotificationFailure(t *testing.T) {
	fx := newEventFixture([]*domain.Event{sharedEvent()}, sharedUsers())
	fx.tx.createNotifErr = errors.New("insert failed")

	_, err := fx.svc.MarkTodo(context.Background(), "owner", "ev-1", "todo-1", true)
	require.Error(t, err)
	assert.True(t, fx.tx.rolledBack)

	// The stored event is untouched.
	stored := fx.eventRepo.byID["ev-1"]
	assert.False(t, stored.Todos[0].IsCompleted)
}

func TestInviteUsers_FiltersMembersAndShortCircuits(t *testing.T) {
	fx := newEventFixture([]*domain.Event{sharedEvent()}, sharedUsers())

	// All candidate emails already belong to members: nothing to do.
	event, err := fx.svc.InviteUsers(context.Background(), "owner", "ev-1", []string{"olu@example.com", "ada@example.com"})
	require.NoError(t, err)
	assert.Empty(t, event.InvitedEmails)
	assert.Nil(t, fx.tx.committed)
	assert.Empty(t, fx.emails.invitations)

	event, err = fx.svc.InviteUsers(context.Background(), "owner", "ev-1", []string{"ada@example.com", "fresh@example.com"})
	require.NoError(t, err)
	assert.Equal(t, []string{"fresh@example.com"}, event.InvitedEmails)
	require.Len(t, fx.emails.invitations, 1)
	assert.Equal(t, []string{"fresh@example.com"}, fx.emails.invitations[0].Emails)
}

func TestAcceptInvitation(t *testing.T) {
	e := sharedEvent()
	e.InvitedEmails = []string{"new@example.com"}
	users := append(sharedUsers(), &domain.User{
		ID: "newbie", Name: "Nia", Email: "new@example.com", IsSignupCompleted: true,
	})
	fx := newEventFixture([]*domain.Event{e}, users)

	invitee, err := fx.svc.AcceptInvitation(context.Background(), "newbie", "ev-1", true)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleViewer, invitee.Role)
	assert.Equal(t, "Nia", invitee.Name)

	saved := fx.tx.committed.saved[0]
	assert.True(t, saved.IsInvitee("newbie"))
	assert.Empty(t, saved.InvitedEmails)

	require.Len(t, fx.tx.committed.notifications, 1)
	n := fx.tx.committed.notifications[0]
	assert.Equal(t, "owner", n.OwnerID)
	assert.Equal(t, "Nia accepted your invitation to Launch party", n.Message)

	require.Len(t, fx.tx.committed.actionTakenCalls, 1)
	assert.Equal(t, [3]string{"newbie", "owner", "ev-1"}, fx.tx.committed.actionTakenCalls[0])
}

func TestAcceptInvitation_NotInvited(t *testing.T) {
	users := append(sharedUsers(), &domain.User{
		ID: "rando", Name: "Rex", Email: "rex@example.com", IsSignupCompleted: true,
	})
	fx := newEventFixture([]*domain.Event{sharedEvent()}, users)

	_, err := fx.svc.AcceptInvitation(context.Background(), "rando", "ev-1", false)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Nil(t, fx.tx.committed)
	assert.False(t, fx.eventRepo.byID["ev-1"].IsInvitee("rando"))
}

func TestRejectInvitation(t *testing.T) {
	e := sharedEvent()
	e.InvitedEmails = []string{"new@example.com"}
	users := append(sharedUsers(), &domain.User{
		ID: "newbie", Name: "Nia", Email: "new@example.com", IsSignupCompleted: true,
	})
	fx := newEventFixture([]*domain.Event{e}, users)

	_, err := fx.svc.RejectInvitation(context.Background(), "newbie", "ev-1", false)
	require.NoError(t, err)

	saved := fx.tx.committed.saved[0]
	assert.False(t, saved.IsInvitee("newbie"))
	assert.Empty(t, saved.InvitedEmails)
	require.Len(t, fx.tx.committed.notifications, 1)
	assert.Equal(t, "Nia rejected your invitation to Launch party", fx.tx.committed.notifications[0].Message)
	assert.Empty(t, fx.tx.committed.actionTakenCalls)
}

func TestRemoveInvitee_RankRules(t *testing.T) {
	tests := []struct {
		name    string
		actor   string
		invitee string
		errIs   error
	}{
		{"no self removal", "admin", "admin", domain.ErrForbidden},
		{"editor cannot remove admin", "editor", "admin", domain.ErrForbidden},
		{"viewer cannot remove anyone", "viewer", "editor", domain.ErrForbidden},
		{"unknown invitee", "owner", "ghost", domain.ErrNotFound},
		{"admin removes viewer", "admin", "viewer", nil},
		{"owner removes admin", "owner", "admin", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newEventFixture([]*domain.Event{sharedEvent()}, sharedUsers())
			invitee, err := fx.svc.RemoveInvitee(context.Background(), tt.actor, "ev-1", tt.invitee)
			if tt.errIs != nil {
				assert.ErrorIs(t, err, tt.errIs)
				assert.Nil(t, fx.tx.committed)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.invitee, invitee.ID)
			saved := fx.tx.committed.saved[0]
			assert.False(t, saved.IsInvitee(tt.invitee))
			require.Len(t, fx.tx.committed.notifications, 1)
			n := fx.tx.committed.notifications[0]
			assert.Equal(t, tt.invitee, n.OwnerID)
			assert.Equal(t, "You were removed from the event: Launch party", n.Message)
		})
	}
}

func TestRemoveInvitee_KeepsRoleAndIDListsInSync(t *testing.T) {
	fx := newEventFixture([]*domain.Event{sharedEvent()}, sharedUsers())

	_, err := fx.svc.RemoveInvitee(context.Background(), "owner", "ev-1", "editor")
	require.NoError(t, err)

	saved := fx.tx.committed.saved[0]
	assert.NotContains(t, saved.InviteeIDs, "editor")
	for _, ir := range saved.InviteeRoles {
		assert.NotEqual(t, "editor", ir.ID)
	}
	assert.Len(t, saved.InviteeIDs, len(saved.InviteeRoles))
}

func TestAssignRole(t *testing.T) {
	fx := newEventFixture([]*domain.Event{sharedEvent()}, sharedUsers())

	// Only the owner may assign roles, even Admins cannot.
	_, err := fx.svc.AssignRoleToInvitee(context.Background(), "admin", "ev-1", "viewer", domain.RoleEditor)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	invitee, err := fx.svc.AssignRoleToInvitee(context.Background(), "owner", "ev-1", "viewer", domain.RoleEditor)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleEditor, invitee.Role)

	require.Len(t, fx.tx.committed.notifications, 1)
	n := fx.tx.committed.notifications[0]
	assert.Equal(t, "viewer", n.OwnerID)
	assert.Equal(t, "Editor Role was assigned to you on the event: Launch party", n.Message)
}

func TestToggleInviteLink(t *testing.T) {
	fx := newEventFixture([]*domain.Event{sharedEvent()}, sharedUsers())

	_, err := fx.svc.ToggleInviteLink(context.Background(), "editor", "ev-1", true)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	event, err := fx.svc.ToggleInviteLink(context.Background(), "admin", "ev-1", true)
	require.NoError(t, err)
	assert.True(t, event.IsInviteLinkActive)
	// Toggling is quiet: no notifications.
	assert.Empty(t, fx.tx.committed.notifications)
}

func TestListEvents_StatusFilter(t *testing.T) {
	today := sharedEvent()
	today.ID = "ev-today"
	today.Date = time.Now()
	past := sharedEvent()
	past.ID = "ev-past"
	past.Date = time.Now().AddDate(0, 0, -7)
	future := sharedEvent()
	future.ID = "ev-future"
	future.Date = time.Now().AddDate(0, 0, 7)

	fx := newEventFixture([]*domain.Event{today, past, future}, sharedUsers())

	all, err := fx.svc.ListEvents(context.Background(), "owner", domain.EventStatusAll)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	got, err := fx.svc.ListEvents(context.Background(), "owner", domain.EventStatusToday)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "ev-today", got[0].ID)

	got, err = fx.svc.ListEvents(context.Background(), "owner", domain.EventStatusUpcoming)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "ev-future", got[0].ID)

	got, err = fx.svc.ListEvents(context.Background(), "owner", domain.EventStatusPassed)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "ev-past", got[0].ID)
}

func TestGenerateInviteLinkID_AvoidsTakenIDs(t *testing.T) {
	e := sharedEvent()
	e.InviteLinkID = "id-1"
	fx := newEventFixture([]*domain.Event{e}, sharedUsers())

	id, err := fx.svc.GenerateInviteLinkID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "id-2", id)
}
