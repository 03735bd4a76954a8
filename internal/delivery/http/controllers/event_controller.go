package controllers

import (
	"log/slog"
	"net/http"
	"regexp"

	"github.com/aibrid/zipo-server/internal/delivery/http/helpers"
	"github.com/aibrid/zipo-server/internal/delivery/http/middleware"
	"github.com/aibrid/zipo-server/internal/domain"
)

// emailRegex matches a simple email format (local@domain with at least one dot in domain).
var emailRegex = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateEventRequest is the request body for POST /events.
type CreateEventRequest struct {
	domain.CreateEventInput
}

// Validate implements Validator. Returns error messages for required and format rules.
func (c CreateEventRequest) Validate() []string {
	var errs []string
	if c.Title == "" {
		errs = append(errs, "title is required")
	}
	if c.Date.IsZero() {
		errs = append(errs, "date is required")
	}
	if c.DaysBtwnReminderAndEvent < 0 {
		errs = append(errs, "days_btwn_reminder_and_event must not be negative")
	}
	for _, email := range c.InvitedEmails {
		if !emailRegex.MatchString(email) {
			errs = append(errs, "invalid email: "+email)
		}
	}
	for _, t := range c.Todos {
		if t.Title == "" {
			errs = append(errs, "todo title is required")
		}
	}
	return errs
}

// CreateEvent godoc
// @Summary Create a new event
// @Description Create a new event with optional todos and invited emails. The authenticated user becomes the event owner; their own email is never added to the invite list. Registered invitees are notified and all invited emails receive an invitation email.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event body CreateEventRequest true "Event data"
// @Success 201 {object} helpers.APIResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	event, err := c.Service.CreateEvent(r.Context(), userID, req.CreateEventInput)
	if err != nil {
		c.logError(r, err)
		helpers.WriteServiceError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, event)
}

// ListEvents godoc
// @Summary List the caller's events
// @Description Returns events the caller owns or is an invitee of, optionally filtered by status relative to today.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status filter" Enums(All, Today, Upcoming, Passed)
// @Success 200 {object} helpers.APIResponse "data contains the event list"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	status := domain.EventStatusFilter(r.URL.Query().Get("status"))
	events, err := c.Service.ListEvents(r.Context(), userID, status)
	if err != nil {
		c.logError(r, err)
		helpers.WriteServiceError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// GetEventByID godoc
// @Summary Get an event by ID
// @Description Returns the event if the caller is its owner or an invitee.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse "data contains the event"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID} [get]
func (c *EventController) GetEventByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	event, err := c.Service.GetEventByID(r.Context(), userID, r.PathValue("eventID"))
	if err != nil {
		c.logError(r, err)
		helpers.WriteServiceError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// GenerateInviteLinkID godoc
// @Summary Generate a fresh invite link id
// @Description Returns an invite link id not used by any event, for the event creation form.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the invite link id"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/invite-link-id [get]
func (c *EventController) GenerateInviteLinkID(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.UserIDFromContext(r.Context()); !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	id, err := c.Service.GenerateInviteLinkID(r.Context())
	if err != nil {
		c.logError(r, err)
		helpers.WriteServiceError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"invite_link_id": id})
}

// DeleteEvent godoc
// @Summary Delete an event
// @Description Deletes the event. Allowed for the owner and Admin invitees; every other member is notified.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse "data contains the deleted event"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID} [delete]
func (c *EventController) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	event, err := c.Service.DeleteEvent(r.Context(), userID, r.PathValue("eventID"))
	if err != nil {
		c.logError(r, err)
		helpers.WriteServiceError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// ToggleInviteLinkRequest is the request body for PATCH /events/{eventID}/invite-link.
type ToggleInviteLinkRequest struct {
	IsActive *bool `json:"is_active"`
}

func (t ToggleInviteLinkRequest) Validate() []string {
	if t.IsActive == nil {
		return []string{"is_active is required"}
	}
	return nil
}

// ToggleInviteLink godoc
// @Summary Activate or deactivate the event invite link
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param body body ToggleInviteLinkRequest true "Desired invite link state"
// @Success 200 {object} helpers.APIResponse "data contains the updated event"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/invite-link [patch]
func (c *EventController) ToggleInviteLink(w http.ResponseWriter, r *http.Request) {
	var req ToggleInviteLinkRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	event, err := c.Service.ToggleInviteLink(r.Context(), userID, r.PathValue("eventID"), *req.IsActive)
	if err != nil {
		c.logError(r, err)
		helpers.WriteServiceError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// InviteUsersRequest is the request body for POST /events/{eventID}/invitations.
type InviteUsersRequest struct {
	Emails []string `json:"emails"`
}

func (i InviteUsersRequest) Validate() []string {
	var errs []string
	if len(i.Emails) == 0 {
		errs = append(errs, "emails is required")
	}
	for _, email := range i.Emails {
		if !emailRegex.MatchString(email) {
			errs = append(errs, "invalid email: "+email)
		}
	}
	return errs
}

// InviteUsers godoc
// @Summary Invite users to an event by email
// @Description Adds the emails to the event's invite list. Emails already belonging to the owner or a current invitee are skipped. Registered recipients get an in-app notification; every newly invited email gets an invitation email.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param body body InviteUsersRequest true "Emails to invite"
// @Success 200 {object} helpers.APIResponse "data contains the updated event"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/invitations [post]
func (c *EventController) InviteUsers(w http.ResponseWriter, r *http.Request) {
	var req InviteUsersRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	event, err := c.Service.InviteUsers(r.Context(), userID, r.PathValue("eventID"), req.Emails)
	if err != nil {
		c.logError(r, err)
		helpers.WriteServiceError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// InvitationDecisionRequest is the request body for accepting or rejecting
// an invitation. ViaNotification marks the originating invite notification
// as acted on.
type InvitationDecisionRequest struct {
	ViaNotification bool `json:"via_notification"`
}

// AcceptInvitation godoc
// @Summary Accept an event invitation
// @Description The caller joins the event as a Viewer. Their email must be on the invite list. The owner is notified.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param body body InvitationDecisionRequest true "Decision context"
// @Success 200 {object} helpers.APIResponse "data contains the new invitee"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/invitations/accept [post]
func (c *EventController) AcceptInvitation(w http.ResponseWriter, r *http.Request) {
	var req InvitationDecisionRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	invitee, err := c.Service.AcceptInvitation(r.Context(), userID, r.PathValue("eventID"), req.ViaNotification)
	if err != nil {
		c.logError(r, err)
		helpers.WriteServiceError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, invitee)
}

// RejectInvitation godoc
// @Summary Reject an event invitation
// @Description Removes the caller's email from the invite list and notifies the owner.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param body body InvitationDecisionRequest true "Decision context"
// @Success 200 {object} helpers.APIResponse "data contains the updated event"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/invitations/reject [post]
func (c *EventController) RejectInvitation(w http.ResponseWriter, r *http.Request) {
	var req InvitationDecisionRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	event, err := c.Service.RejectInvitation(r.Context(), userID, r.PathValue("eventID"), req.ViaNotification)
	if err != nil {
		c.logError(r, err)
		helpers.WriteServiceError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// RemoveInvitee godoc
// @Summary Remove an invitee from an event
// @Description Removal respects role rank: nobody removes themselves, Admins cannot remove Admins, Editors can only remove Viewers. The removed user is notified.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param inviteeID path string true "Invitee user ID"
// @Success 200 {object} helpers.APIResponse "data contains the removed invitee"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/invitees/{inviteeID} [delete]
func (c *EventController) RemoveInvitee(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	invitee, err := c.Service.RemoveInvitee(r.Context(), userID, r.PathValue("eventID"), r.PathValue("inviteeID"))
	if err != nil {
		c.logError(r, err)
		helpers.WriteServiceError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, invitee)
}

// AssignRoleRequest is the request body for PATCH /events/{eventID}/invitees/{inviteeID}/role.
type AssignRoleRequest struct {
	Role domain.Role `json:"role"`
}

func (a AssignRoleRequest) Validate() []string {
	if !a.Role.Valid() {
		return []string{"role must be one of Viewer, Editor, Admin"}
	}
	return nil
}

// AssignRole godoc
// @Summary Assign a role to an invitee
// @Description Only the event owner can change invitee roles. The invitee is notified.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param inviteeID path string true "Invitee user ID"
// @Param body body AssignRoleRequest true "New role"
// @Success 200 {object} helpers.APIResponse "data contains the updated invitee"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/invitees/{inviteeID}/role [patch]
func (c *EventController) AssignRole(w http.ResponseWriter, r *http.Request) {
	var req AssignRoleRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	invitee, err := c.Service.AssignRoleToInvitee(r.Context(), userID, r.PathValue("eventID"), r.PathValue("inviteeID"), req.Role)
	if err != nil {
		c.logError(r, err)
		helpers.WriteServiceError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, invitee)
}

// TodoRequest is the request body for adding or editing a todo.
type TodoRequest struct {
	Title string `json:"title"`
	Note  string `json:"note"`
}

func (t TodoRequest) Validate() []string {
	if t.Title == "" {
		return []string{"title is required"}
	}
	return nil
}

// AddTodo godoc
// @Summary Add a todo to an event
// @Tags todos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param body body TodoRequest true "Todo fields"
// @Success 201 {object} helpers.APIResponse "data contains the created todo"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/todos [post]
func (c *EventController) AddTodo(w http.ResponseWriter, r *http.Request) {
	var req TodoRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	todo, err := c.Service.AddTodo(r.Context(), userID, r.PathValue("eventID"), req.Title, req.Note)
	if err != nil {
		c.logError(r, err)
		helpers.WriteServiceError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, todo)
}

// EditTodo godoc
// @Summary Edit a todo
// @Tags todos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param todoID path string true "Todo ID"
// @Param body body TodoRequest true "Todo fields"
// @Success 200 {object} helpers.APIResponse "data contains the updated todo"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/todos/{todoID} [patch]
func (c *EventController) EditTodo(w http.ResponseWriter, r *http.Request) {
	var req TodoRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	todo, err := c.Service.EditTodo(r.Context(), userID, r.PathValue("eventID"), r.PathValue("todoID"), req.Title, req.Note)
	if err != nil {
		c.logError(r, err)
		helpers.WriteServiceError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, todo)
}

// DeleteTodo godoc
// @Summary Delete a todo
// @Tags todos
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param todoID path string true "Todo ID"
// @Success 200 {object} helpers.APIResponse "data contains the deleted todo"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/todos/{todoID} [delete]
func (c *EventController) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	todo, err := c.Service.DeleteTodo(r.Context(), userID, r.PathValue("eventID"), r.PathValue("todoID"))
	if err != nil {
		c.logError(r, err)
		helpers.WriteServiceError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, todo)
}

// DuplicateTodo godoc
// @Summary Duplicate a todo
// @Description Creates a copy of the todo with a new id. The copy always starts incomplete.
// @Tags todos
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param todoID path string true "Todo ID"
// @Success 201 {object} helpers.APIResponse "data contains the new todo"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/todos/{todoID}/duplicate [post]
func (c *EventController) DuplicateTodo(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	todo, err := c.Service.DuplicateTodo(r.Context(), userID, r.PathValue("eventID"), r.PathValue("todoID"))
	if err != nil {
		c.logError(r, err)
		helpers.WriteServiceError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, todo)
}

// MarkTodoRequest is the request body for PATCH /events/{eventID}/todos/{todoID}/mark.
type MarkTodoRequest struct {
	IsCompleted *bool `json:"is_completed"`
}

func (m MarkTodoRequest) Validate() []string {
	if m.IsCompleted == nil {
		return []string{"is_completed is required"}
	}
	return nil
}

// MarkTodo godoc
// @Summary Mark a todo completed or not completed
// @Description Members are only notified when the completion state actually changes.
// @Tags todos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param todoID path string true "Todo ID"
// @Param body body MarkTodoRequest true "Completion state"
// @Success 200 {object} helpers.APIResponse "data contains the updated todo"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/todos/{todoID}/mark [patch]
func (c *EventController) MarkTodo(w http.ResponseWriter, r *http.Request) {
	var req MarkTodoRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	todo, err := c.Service.MarkTodo(r.Context(), userID, r.PathValue("eventID"), r.PathValue("todoID"), *req.IsCompleted)
	if err != nil {
		c.logError(r, err)
		helpers.WriteServiceError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, todo)
}

func (c *EventController) logError(r *http.Request, err error) {
	c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
}
