package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nuid"

	"github.com/aibrid/zipo-server/internal/domain"
)

type eventService struct {
	eventRepo      domain.EventRepository
	userRepo       domain.UserRepository
	tx             domain.TxManager
	emailService   domain.EmailService
	logger         *slog.Logger
	newID          func() string
	contextTimeout time.Duration
}

func NewEventService(eventRepo domain.EventRepository,
	userRepo domain.UserRepository,
	tx domain.TxManager,
	emailService domain.EmailService,
	logger *slog.Logger,
	timeout time.Duration,
) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		userRepo:       userRepo,
		tx:             tx,
		emailService:   emailService,
		logger:         logger,
		newID:          nuid.Next,
		contextTimeout: timeout,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, actorID string, in domain.CreateEventInput) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("get actor: %w", err)
	}

	inviteLinkID := in.InviteLinkID
	if inviteLinkID != "" {
		taken, err := s.eventRepo.InviteLinkIDTaken(ctx, inviteLinkID)
		if err != nil {
			return nil, fmt.Errorf("check invite link id: %w", err)
		}
		if taken {
			inviteLinkID = ""
		}
	}
	if inviteLinkID == "" {
		inviteLinkID, err = s.GenerateInviteLinkID(ctx)
		if err != nil {
			return nil, err
		}
	}

	// The creator never invites themselves.
	invitedEmails := make([]string, 0, len(in.InvitedEmails))
	for _, email := range in.InvitedEmails {
		if email != actor.Email {
			invitedEmails = append(invitedEmails, email)
		}
	}

	now := time.Now()
	event := &domain.Event{
		ID:                       s.newID(),
		Title:                    in.Title,
		Date:                     in.Date,
		ReminderDate:             in.Date.AddDate(0, 0, -in.DaysBtwnReminderAndEvent),
		DaysBtwnReminderAndEvent: in.DaysBtwnReminderAndEvent,
		BgCover:                  in.BgCover,
		InviteLinkID:             inviteLinkID,
		IsInviteLinkActive:       in.IsInviteLinkActive,
		InvitedEmails:            invitedEmails,
		InviteeRoles:             []domain.InviteeRole{},
		InviteeIDs:               []string{},
		OwnerID:                  actorID,
		CreatedAt:                now,
		UpdatedAt:                now,
	}
	event.Todos = make([]domain.Todo, 0, len(in.Todos))
	for _, t := range in.Todos {
		event.AddTodo(domain.Todo{ID: s.newID(), Title: t.Title, Note: t.Note})
	}

	// Invitation notifications go only to already-registered recipients.
	registered, err := s.userRepo.FindByEmails(ctx, invitedEmails)
	if err != nil {
		return nil, fmt.Errorf("find invited users: %w", err)
	}
	notifications := domain.Fanout(userIDs(registered), domain.Notification{
		InitiatorID:      actorID,
		Type:             domain.NotifEventInvite,
		Message:          fmt.Sprintf("Invited you to an event. %s", event.Title),
		ResourceType:     "Event",
		ResourceID:       event.ID,
		IsActionRequired: true,
		ActionType:       domain.ActionAcceptOrDecline,
	})

	err = s.tx.WithinTx(ctx, func(tx domain.EventTx) error {
		if err := tx.CreateEvent(ctx, event); err != nil {
			return fmt.Errorf("create event: %w", err)
		}
		if err := tx.CreateNotifications(ctx, notifications); err != nil {
			return fmt.Errorf("create notifications: %w", err)
		}
		return tx.IncrementNewNotifications(ctx, userIDs(registered))
	})
	if err != nil {
		return nil, err
	}

	s.sendInvitationEmails(ctx, event.InvitedEmails, event.Title, actor.Name, event.Date)
	return event, nil
}

func (s *eventService) ListEvents(ctx context.Context, actorID string, status domain.EventStatusFilter) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.ListForUser(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	if status == domain.EventStatusAll || status == "" {
		return events, nil
	}

	today := endOfDay(time.Now())
	filtered := make([]*domain.Event, 0, len(events))
	for _, e := range events {
		day := endOfDay(e.Date)
		switch status {
		case domain.EventStatusToday:
			if day.Equal(today) {
				filtered = append(filtered, e)
			}
		case domain.EventStatusUpcoming:
			if day.After(today) {
				filtered = append(filtered, e)
			}
		case domain.EventStatusPassed:
			if day.Before(today) {
				filtered = append(filtered, e)
			}
		}
	}
	return filtered, nil
}

func (s *eventService) GetEventByID(ctx context.Context, actorID, eventID string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if d := domain.CheckPermission(domain.OpGetEvent, actorID, event); !d.HasPermission {
		return nil, domain.ErrForbidden
	}
	return event, nil
}

func (s *eventService) GenerateInviteLinkID(ctx context.Context) (string, error) {
	// nuid collisions are vanishingly rare but the id is a unique key,
	// so regenerate until the store agrees.
	for {
		id := s.newID()
		taken, err := s.eventRepo.InviteLinkIDTaken(ctx, id)
		if err != nil {
			return "", fmt.Errorf("check invite link id: %w", err)
		}
		if !taken {
			return id, nil
		}
	}
}

func (s *eventService) DeleteEvent(ctx context.Context, actorID, eventID string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	decision := domain.CheckPermission(domain.OpDeleteEvent, actorID, event)
	if !decision.HasPermission {
		return nil, domain.ErrForbidden
	}

	notifications := domain.Fanout(decision.NotifHosts, domain.Notification{
		InitiatorID:  actorID,
		Type:         domain.NotifEventDelete,
		Message:      fmt.Sprintf("Deleted the event. %s", event.Title),
		ResourceType: "Event",
		ResourceID:   event.ID,
	})

	err = s.tx.WithinTx(ctx, func(tx domain.EventTx) error {
		if err := tx.DeleteEvent(ctx, eventID); err != nil {
			return fmt.Errorf("delete event: %w", err)
		}
		if err := tx.CreateNotifications(ctx, notifications); err != nil {
			return fmt.Errorf("create notifications: %w", err)
		}
		return tx.IncrementNewNotifications(ctx, decision.NotifHosts)
	})
	if err != nil {
		return nil, err
	}
	return event, nil
}

func (s *eventService) ToggleInviteLink(ctx context.Context, actorID, eventID string, active bool) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if d := domain.CheckPermission(domain.OpToggleInviteLink, actorID, event); !d.HasPermission {
		return nil, domain.ErrForbidden
	}

	event.IsInviteLinkActive = active
	err = s.tx.WithinTx(ctx, func(tx domain.EventTx) error {
		return tx.SaveEvent(ctx, event)
	})
	if err != nil {
		return nil, err
	}
	return event, nil
}

func (s *eventService) InviteUsers(ctx context.Context, actorID, eventID string, emails []string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if d := domain.CheckPermission(domain.OpInviteUser, actorID, event); !d.HasPermission {
		return nil, domain.ErrForbidden
	}

	// Emails already belonging to the owner or a current invitee are
	// dropped (exact, case-sensitive match).
	memberEmails := make(map[string]struct{})
	owner, err := s.userRepo.GetByID(ctx, event.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("get owner: %w", err)
	}
	memberEmails[owner.Email] = struct{}{}
	invitees, err := s.userRepo.FindByIDs(ctx, event.InviteeIDs)
	if err != nil {
		return nil, fmt.Errorf("find invitees: %w", err)
	}
	for _, u := range invitees {
		memberEmails[u.Email] = struct{}{}
	}

	invitedEmails := make([]string, 0, len(emails))
	for _, email := range emails {
		if _, member := memberEmails[email]; !member {
			invitedEmails = append(invitedEmails, email)
		}
	}
	if len(invitedEmails) == 0 {
		return event, nil
	}

	registered, err := s.userRepo.FindByEmails(ctx, invitedEmails)
	if err != nil {
		return nil, fmt.Errorf("find invited users: %w", err)
	}
	notifications := domain.Fanout(userIDs(registered), domain.Notification{
		InitiatorID:      actorID,
		Type:             domain.NotifEventInvite,
		Message:          fmt.Sprintf("Invited you to an event. %s", event.Title),
		ResourceType:     "Event",
		ResourceID:       event.ID,
		IsActionRequired: true,
		ActionType:       domain.ActionAcceptOrDecline,
	})

	for _, email := range invitedEmails {
		exists := false
		for _, invited := range event.InvitedEmails {
			if invited == email {
				exists = true
				break
			}
		}
		if !exists {
			event.InvitedEmails = append(event.InvitedEmails, email)
		}
	}

	err = s.tx.WithinTx(ctx, func(tx domain.EventTx) error {
		if err := tx.SaveEvent(ctx, event); err != nil {
			return fmt.Errorf("save event: %w", err)
		}
		if err := tx.CreateNotifications(ctx, notifications); err != nil {
			return fmt.Errorf("create notifications: %w", err)
		}
		return tx.IncrementNewNotifications(ctx, userIDs(registered))
	})
	if err != nil {
		return nil, err
	}

	actor, err := s.userRepo.GetByID(ctx, actorID)
	actorName := "An events app user"
	if err == nil && actor.Name != "" {
		actorName = actor.Name
	}
	s.sendInvitationEmails(ctx, invitedEmails, event.Title, actorName, event.Date)
	return event, nil
}

func (s *eventService) AcceptInvitation(ctx context.Context, actorID, eventID string, viaNotification bool) (*domain.Invitee, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("get actor: %w", err)
	}
	if !event.RemoveInvitedEmail(actor.Email) {
		return nil, domain.ErrNotInvited
	}

	const role = domain.RoleViewer
	event.AddInvitee(actorID, role)

	notification := &domain.Notification{
		InitiatorID:  actorID,
		OwnerID:      event.OwnerID,
		Type:         domain.NotifInvitationAccepted,
		Message:      fmt.Sprintf("%s accepted your invitation to %s", actor.Name, event.Title),
		ResourceType: "Event",
		ResourceID:   event.ID,
	}

	err = s.tx.WithinTx(ctx, func(tx domain.EventTx) error {
		if err := tx.SaveEvent(ctx, event); err != nil {
			return fmt.Errorf("save event: %w", err)
		}
		if viaNotification {
			if err := tx.MarkInviteActionTaken(ctx, actorID, event.OwnerID, event.ID); err != nil {
				return fmt.Errorf("mark invite action taken: %w", err)
			}
		}
		if err := tx.CreateNotifications(ctx, []*domain.Notification{notification}); err != nil {
			return fmt.Errorf("create notification: %w", err)
		}
		return tx.IncrementNewNotifications(ctx, []string{event.OwnerID})
	})
	if err != nil {
		return nil, err
	}

	return &domain.Invitee{ID: actor.ID, Name: actor.Name, Email: actor.Email, Photo: actor.Photo, Role: role}, nil
}

func (s *eventService) RejectInvitation(ctx context.Context, actorID, eventID string, viaNotification bool) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("get actor: %w", err)
	}
	if !event.RemoveInvitedEmail(actor.Email) {
		return nil, domain.ErrNotInvited
	}

	notification := &domain.Notification{
		InitiatorID:  actorID,
		OwnerID:      event.OwnerID,
		Type:         domain.NotifInvitationRejected,
		Message:      fmt.Sprintf("%s rejected your invitation to %s", actor.Name, event.Title),
		ResourceType: "Event",
		ResourceID:   event.ID,
	}

	err = s.tx.WithinTx(ctx, func(tx domain.EventTx) error {
		if err := tx.SaveEvent(ctx, event); err != nil {
			return fmt.Errorf("save event: %w", err)
		}
		if viaNotification {
			if err := tx.MarkInviteActionTaken(ctx, actorID, event.OwnerID, event.ID); err != nil {
				return fmt.Errorf("mark invite action taken: %w", err)
			}
		}
		if err := tx.CreateNotifications(ctx, []*domain.Notification{notification}); err != nil {
			return fmt.Errorf("create notification: %w", err)
		}
		return tx.IncrementNewNotifications(ctx, []string{event.OwnerID})
	})
	if err != nil {
		return nil, err
	}
	return event, nil
}

func (s *eventService) RemoveInvitee(ctx context.Context, actorID, eventID, inviteeID string) (*domain.Invitee, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	decision := domain.CheckPermission(domain.OpRemoveInvitee, actorID, event)
	if !decision.HasPermission {
		return nil, domain.ErrForbidden
	}
	if inviteeID == actorID {
		return nil, domain.ErrForbidden
	}
	removedRole, ok := event.RoleOf(inviteeID)
	if !ok {
		return nil, domain.ErrInviteeNotFound
	}
	if err := domain.CheckRemovalRank(decision, event, inviteeID); err != nil {
		return nil, err
	}

	if err := event.RemoveInvitee(inviteeID); err != nil {
		return nil, err
	}

	notification := &domain.Notification{
		InitiatorID:  actorID,
		OwnerID:      inviteeID,
		Type:         domain.NotifInviteeRemoval,
		Message:      fmt.Sprintf("You were removed from the event: %s", event.Title),
		ResourceType: "Event",
		ResourceID:   event.ID,
	}

	err = s.tx.WithinTx(ctx, func(tx domain.EventTx) error {
		if err := tx.SaveEvent(ctx, event); err != nil {
			return fmt.Errorf("save event: %w", err)
		}
		if err := tx.CreateNotifications(ctx, []*domain.Notification{notification}); err != nil {
			return fmt.Errorf("create notification: %w", err)
		}
		return tx.IncrementNewNotifications(ctx, []string{inviteeID})
	})
	if err != nil {
		return nil, err
	}

	return s.inviteeProjection(ctx, inviteeID, removedRole)
}

func (s *eventService) AssignRoleToInvitee(ctx context.Context, actorID, eventID, inviteeID string, role domain.Role) (*domain.Invitee, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !role.Valid() {
		return nil, domain.ErrInvalidInput
	}
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	// Role assignment is reserved for the event owner.
	if event.OwnerID != actorID {
		return nil, domain.ErrForbidden
	}
	if err := event.AssignRole(inviteeID, role); err != nil {
		return nil, err
	}

	notification := &domain.Notification{
		InitiatorID:  actorID,
		OwnerID:      inviteeID,
		Type:         domain.NotifInviteeRoleAssign,
		Message:      fmt.Sprintf("%s Role was assigned to you on the event: %s", role, event.Title),
		ResourceType: "Event",
		ResourceID:   event.ID,
	}

	err = s.tx.WithinTx(ctx, func(tx domain.EventTx) error {
		if err := tx.SaveEvent(ctx, event); err != nil {
			return fmt.Errorf("save event: %w", err)
		}
		if err := tx.CreateNotifications(ctx, []*domain.Notification{notification}); err != nil {
			return fmt.Errorf("create notification: %w", err)
		}
		return tx.IncrementNewNotifications(ctx, []string{inviteeID})
	})
	if err != nil {
		return nil, err
	}

	return s.inviteeProjection(ctx, inviteeID, role)
}

func (s *eventService) AddTodo(ctx context.Context, actorID, eventID, title, note string) (*domain.Todo, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	decision := domain.CheckPermission(domain.OpAddTodo, actorID, event)
	if !decision.HasPermission {
		return nil, domain.ErrForbidden
	}

	todo := event.AddTodo(domain.Todo{ID: s.newID(), Title: title, Note: note})
	if err := s.commitTodoMutation(ctx, event, decision, domain.NotifTodoAdded,
		fmt.Sprintf("Added a Todo. %s", todo.Title)); err != nil {
		return nil, err
	}
	return todo, nil
}

func (s *eventService) EditTodo(ctx context.Context, actorID, eventID, todoID, title, note string) (*domain.Todo, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	decision := domain.CheckPermission(domain.OpEditTodo, actorID, event)
	if !decision.HasPermission {
		return nil, domain.ErrForbidden
	}

	todo, err := event.EditTodo(todoID, title, note)
	if err != nil {
		return nil, err
	}
	if err := s.commitTodoMutation(ctx, event, decision, domain.NotifTodoEdited,
		fmt.Sprintf("Edited a Todo. %s", todo.Title)); err != nil {
		return nil, err
	}
	return todo, nil
}

func (s *eventService) DeleteTodo(ctx context.Context, actorID, eventID, todoID string) (*domain.Todo, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	decision := domain.CheckPermission(domain.OpDeleteTodo, actorID, event)
	if !decision.HasPermission {
		return nil, domain.ErrForbidden
	}

	removed, err := event.DeleteTodo(todoID)
	if err != nil {
		return nil, err
	}
	if err := s.commitTodoMutation(ctx, event, decision, domain.NotifTodoDeleted,
		fmt.Sprintf("Deleted a Todo. %s", removed.Title)); err != nil {
		return nil, err
	}
	return &removed, nil
}

func (s *eventService) DuplicateTodo(ctx context.Context, actorID, eventID, todoID string) (*domain.Todo, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	decision := domain.CheckPermission(domain.OpDuplicateTodo, actorID, event)
	if !decision.HasPermission {
		return nil, domain.ErrForbidden
	}

	todo, err := event.DuplicateTodo(todoID, s.newID())
	if err != nil {
		return nil, err
	}
	if err := s.commitTodoMutation(ctx, event, decision, domain.NotifTodoDuplicated,
		fmt.Sprintf("Duplicated a Todo. %s", todo.Title)); err != nil {
		return nil, err
	}
	return todo, nil
}

func (s *eventService) MarkTodo(ctx context.Context, actorID, eventID, todoID string, isCompleted bool) (*domain.Todo, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	decision := domain.CheckPermission(domain.OpMarkTodo, actorID, event)
	if !decision.HasPermission {
		return nil, domain.ErrForbidden
	}

	todo, changed, err := event.MarkTodo(todoID, isCompleted)
	if err != nil {
		return nil, err
	}

	narration := "Unmarked"
	notifType := domain.NotifTodoUnmarked
	if isCompleted {
		narration = "Completed"
		notifType = domain.NotifTodoCompleted
	}
	notifications := domain.Fanout(decision.NotifHosts, domain.Notification{
		InitiatorID:  decision.Executor,
		Type:         notifType,
		Message:      fmt.Sprintf("%s a Todo. %s", narration, todo.Title),
		ResourceType: "Event",
		ResourceID:   event.ID,
	})

	err = s.tx.WithinTx(ctx, func(tx domain.EventTx) error {
		if err := tx.SaveEvent(ctx, event); err != nil {
			return fmt.Errorf("save event: %w", err)
		}
		// Re-marking a todo with its current state is a no-op for the
		// feed: the save still happens, the fanout does not.
		if !changed {
			return nil
		}
		if err := tx.CreateNotifications(ctx, notifications); err != nil {
			return fmt.Errorf("create notifications: %w", err)
		}
		return tx.IncrementNewNotifications(ctx, decision.NotifHosts)
	})
	if err != nil {
		return nil, err
	}
	return todo, nil
}

// commitTodoMutation persists a mutated event together with the fanout
// derived from the permission decision, as one transactional unit.
func (s *eventService) commitTodoMutation(ctx context.Context, event *domain.Event, decision domain.Decision, notifType domain.NotificationType, message string) error {
	notifications := domain.Fanout(decision.NotifHosts, domain.Notification{
		InitiatorID:  decision.Executor,
		Type:         notifType,
		Message:      message,
		ResourceType: "Event",
		ResourceID:   event.ID,
	})
	return s.tx.WithinTx(ctx, func(tx domain.EventTx) error {
		if err := tx.SaveEvent(ctx, event); err != nil {
			return fmt.Errorf("save event: %w", err)
		}
		if err := tx.CreateNotifications(ctx, notifications); err != nil {
			return fmt.Errorf("create notifications: %w", err)
		}
		return tx.IncrementNewNotifications(ctx, decision.NotifHosts)
	})
}

// sendInvitationEmails is a best-effort side channel: a provider failure
// must not undo the committed mutation.
func (s *eventService) sendInvitationEmails(ctx context.Context, emails []string, eventTitle, ownerName string, date time.Time) {
	if len(emails) == 0 {
		return
	}
	err := s.emailService.SendEventInvitation(ctx, &domain.EventInvitationEmailData{
		Emails:     emails,
		OwnerName:  ownerName,
		EventTitle: eventTitle,
		EventDate:  date.Format("Mon Jan 2 2006"),
	})
	if err != nil {
		s.logger.WarnContext(ctx, "invitation email failed", "event", eventTitle, "err", err)
	}
}

func (s *eventService) inviteeProjection(ctx context.Context, userID string, role domain.Role) (*domain.Invitee, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &domain.Invitee{ID: userID, Role: role}, nil
		}
		return nil, fmt.Errorf("get invitee: %w", err)
	}
	return &domain.Invitee{ID: user.ID, Name: user.Name, Email: user.Email, Photo: user.Photo, Role: role}, nil
}

func userIDs(users []*domain.User) []string {
	ids := make([]string, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}
	return ids
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
