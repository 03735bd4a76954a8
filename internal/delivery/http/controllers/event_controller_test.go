package controllers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aibrid/zipo-server/internal/delivery/http/helpers"
	"github.com/aibrid/zipo-server/internal/delivery/http/middleware"
	"github.com/aibrid/zipo-server/internal/domain"
)

type mockEventService struct {
	event   *domain.Event
	invitee *domain.Invitee
	todo    *domain.Todo
	linkID  string
	err     error
}

func (m *mockEventService) CreateEvent(ctx context.Context, actorID string, in domain.CreateEventInput) (*domain.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.event, nil
}

func (m *mockEventService) ListEvents(ctx context.Context, actorID string, status domain.EventStatusFilter) ([]*domain.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	return []*domain.Event{m.event}, nil
}

func (m *mockEventService) GetEventByID(ctx context.Context, actorID, eventID string) (*domain.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.event, nil
}

func (m *mockEventService) GenerateInviteLinkID(ctx context.Context) (string, error) {
	return m.linkID, m.err
}

func (m *mockEventService) DeleteEvent(ctx context.Context, actorID, eventID string) (*domain.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.event, nil
}

func (m *mockEventService) ToggleInviteLink(ctx context.Context, actorID, eventID string, active bool) (*domain.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.event, nil
}

func (m *mockEventService) InviteUsers(ctx context.Context, actorID, eventID string, emails []string) (*domain.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.event, nil
}

func (m *mockEventService) AcceptInvitation(ctx context.Context, actorID, eventID string, viaNotification bool) (*domain.Invitee, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.invitee, nil
}

func (m *mockEventService) RejectInvitation(ctx context.Context, actorID, eventID string, viaNotification bool) (*domain.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.event, nil
}

func (m *mockEventService) RemoveInvitee(ctx context.Context, actorID, eventID, inviteeID string) (*domain.Invitee, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.invitee, nil
}

func (m *mockEventService) AssignRoleToInvitee(ctx context.Context, actorID, eventID, inviteeID string, role domain.Role) (*domain.Invitee, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.invitee, nil
}

func (m *mockEventService) AddTodo(ctx context.Context, actorID, eventID, title, note string) (*domain.Todo, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.todo, nil
}

func (m *mockEventService) EditTodo(ctx context.Context, actorID, eventID, todoID, title, note string) (*domain.Todo, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.todo, nil
}

func (m *mockEventService) DeleteTodo(ctx context.Context, actorID, eventID, todoID string) (*domain.Todo, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.todo, nil
}

func (m *mockEventService) DuplicateTodo(ctx context.Context, actorID, eventID, todoID string) (*domain.Todo, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.todo, nil
}

func (m *mockEventService) MarkTodo(ctx context.Context, actorID, eventID, todoID string, isCompleted bool) (*domain.Todo, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.todo, nil
}

func testEventLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

func authedRequest(method, target, body string) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	return req.WithContext(middleware.SetUserID(req.Context(), "u1"))
}

func TestEventController_CreateEvent_Success(t *testing.T) {
	svc := &mockEventService{event: &domain.Event{ID: "ev-1", Title: "Launch party"}}
	ctrl := NewEventController(testEventLogger(), svc)

	body := `{"title":"Launch party","date":"2026-03-01T00:00:00Z","days_btwn_reminder_and_event":3,"invite_link_id":"link-1"}`
	req := authedRequest(http.MethodPost, "/events", body)
	w := httptest.NewRecorder()

	ctrl.CreateEvent(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, w.Code, w.Body.String())
	}
	var resp helpers.APIResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Error != nil {
		t.Fatalf("expected no error, got %v", resp.Error)
	}
}

func TestEventController_CreateEvent_Unauthorized(t *testing.T) {
	svc := &mockEventService{}
	ctrl := NewEventController(testEventLogger(), svc)

	body := `{"title":"Launch party","date":"2026-03-01T00:00:00Z","invite_link_id":"link-1"}`
	req := httptest.NewRequest(http.MethodPost, "/events", strings.NewReader(body))
	w := httptest.NewRecorder()

	ctrl.CreateEvent(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}

func TestEventController_CreateEvent_InvalidBody(t *testing.T) {
	svc := &mockEventService{}
	ctrl := NewEventController(testEventLogger(), svc)

	req := authedRequest(http.MethodPost, "/events", `{"title":""}`)
	w := httptest.NewRecorder()

	ctrl.CreateEvent(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestEventController_DeleteEvent_Forbidden(t *testing.T) {
	svc := &mockEventService{err: domain.ErrForbidden}
	ctrl := NewEventController(testEventLogger(), svc)

	req := authedRequest(http.MethodDelete, "/events/ev-1", "")
	req.SetPathValue("eventID", "ev-1")
	w := httptest.NewRecorder()

	ctrl.DeleteEvent(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected status %d, got %d", http.StatusForbidden, w.Code)
	}
	var resp helpers.APIResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Error == nil || resp.Error.Code != helpers.ErrCodeForbidden {
		t.Fatalf("expected forbidden error code, got %v", resp.Error)
	}
}

func TestEventController_MarkTodo_RequiresIsCompleted(t *testing.T) {
	svc := &mockEventService{todo: &domain.Todo{ID: "todo-1"}}
	ctrl := NewEventController(testEventLogger(), svc)

	req := authedRequest(http.MethodPatch, "/events/ev-1/todos/todo-1/mark", `{}`)
	req.SetPathValue("eventID", "ev-1")
	req.SetPathValue("todoID", "todo-1")
	w := httptest.NewRecorder()

	ctrl.MarkTodo(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestEventController_MarkTodo_NotFound(t *testing.T) {
	svc := &mockEventService{err: domain.ErrTodoNotFound}
	ctrl := NewEventController(testEventLogger(), svc)

	req := authedRequest(http.MethodPatch, "/events/ev-1/todos/missing/mark", `{"is_completed":true}`)
	req.SetPathValue("eventID", "ev-1")
	req.SetPathValue("todoID", "missing")
	w := httptest.NewRecorder()

	ctrl.MarkTodo(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, w.Code)
	}
}

func TestEventController_InviteUsers_RejectsBadEmail(t *testing.T) {
	svc := &mockEventService{event: &domain.Event{ID: "ev-1"}}
	ctrl := NewEventController(testEventLogger(), svc)

	req := authedRequest(http.MethodPost, "/events/ev-1/invitations", `{"emails":["not-an-email"]}`)
	req.SetPathValue("eventID", "ev-1")
	w := httptest.NewRecorder()

	ctrl.InviteUsers(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestEventController_GenerateInviteLinkID(t *testing.T) {
	svc := &mockEventService{linkID: "fresh-link"}
	ctrl := NewEventController(testEventLogger(), svc)

	req := authedRequest(http.MethodGet, "/events/invite-link-id", "")
	w := httptest.NewRecorder()

	ctrl.GenerateInviteLinkID(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	if !strings.Contains(w.Body.String(), "fresh-link") {
		t.Fatalf("expected body to contain generated link ID, got %s", w.Body.String())
	}
}
