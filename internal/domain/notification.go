package domain

import (
	"context"
	"time"
)

// NotificationType is the closed set of notification kinds.
type NotificationType string

const (
	NotifEventInvite        NotificationType = "Event Invite"
	NotifEventDelete        NotificationType = "Event Delete"
	NotifInvitationAccepted NotificationType = "Event Invitation Accepted"
	NotifInvitationRejected NotificationType = "Event Invitation Rejected"
	NotifInviteeRemoval     NotificationType = "Invitee Removal"
	NotifInviteeRoleAssign  NotificationType = "Invitee Role Assigned"
	NotifTodoAdded          NotificationType = "Todo Added"
	NotifTodoEdited         NotificationType = "Todo Edited"
	NotifTodoDeleted        NotificationType = "Todo Deleted"
	NotifTodoDuplicated     NotificationType = "Todo Duplicated"
	NotifTodoCompleted      NotificationType = "Todo Completed"
	NotifTodoUnmarked       NotificationType = "Todo Unmarked"
)

// ActionAcceptOrDecline is the only action type a notification can request.
const ActionAcceptOrDecline = "Accept or Decline Invitation"

// NotificationTTL is how long a notification is kept before the store
// may reap it.
const NotificationTTL = 180 * 24 * time.Hour

// Notification is an immutable record of an event mutation, created only
// as a side effect of that mutation inside the same transaction. The one
// exception to immutability is ActionTaken, flipped when a requested
// action is later taken.
// swagger:model Notification
type Notification struct {
	ID               string           `json:"id"`
	OwnerID          string           `json:"owner_id"`
	InitiatorID      string           `json:"initiator_id"`
	Type             NotificationType `json:"type"`
	Message          string           `json:"message"`
	ResourceType     string           `json:"resource_type"`
	ResourceID       string           `json:"resource_id"`
	IsActionRequired bool             `json:"is_action_required"`
	ActionType       string           `json:"action_type,omitempty"`
	ActionTaken      bool             `json:"action_taken"`
	ExpiresAt        time.Time        `json:"-"`
	CreatedAt        time.Time        `json:"created_at"`
}

// Fanout produces one notification per host from the template. The
// template's OwnerID is ignored; everything else is copied verbatim.
func Fanout(hosts []string, template Notification) []*Notification {
	out := make([]*Notification, 0, len(hosts))
	for _, host := range hosts {
		n := template
		n.OwnerID = host
		out = append(out, &n)
	}
	return out
}

// NotificationWithInitiator joins a notification with the initiating
// user's public profile for the feed.
type NotificationWithInitiator struct {
	Notification
	Initiator *User `json:"initiator"`
}

// CursorPage describes one page of a cursor-paginated feed. NextCursor
// is empty on the last page.
type CursorPage struct {
	NextCursor    string `json:"next_cursor,omitempty"`
	TotalDocs     int    `json:"total_docs"`
	DocsRetrieved int    `json:"docs_retrieved"`
	HasNextPage   bool   `json:"has_next_page"`
}

// NotificationRepository defines read-side notification storage.
// Creation happens only inside the transactional unit (EventTx).
type NotificationRepository interface {
	// ListByOwner returns up to limit notifications owned by ownerID,
	// newest first, starting strictly after cursor when cursor is set.
	ListByOwner(ctx context.Context, ownerID, cursor string, limit int) ([]*NotificationWithInitiator, error)
	CountByOwner(ctx context.Context, ownerID string) (int, error)
}

// NotificationService is the notification feed.
type NotificationService interface {
	// GetNotifications pages through the caller's feed and resets their
	// unread counter.
	GetNotifications(ctx context.Context, ownerID, cursor string, limit int) ([]*NotificationWithInitiator, CursorPage, error)
}
