package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/nats-io/nuid"

	"github.com/aibrid/zipo-server/internal/domain"
)

type txManager struct {
	DB *sql.DB
}

func NewTxManager(db *sql.DB) domain.TxManager {
	return &txManager{DB: db}
}

func (m *txManager) WithinTx(ctx context.Context, fn func(tx domain.EventTx) error) error {
	tx, err := m.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(&eventTx{tx: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback (%v): %w", rbErr, err)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

type eventTx struct {
	tx *sql.Tx
}

func (t *eventTx) CreateEvent(ctx context.Context, e *domain.Event) error {
	todos, inviteeRoles, invitedEmails, err := marshalEventDocs(e)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO events (id, title, date, reminder_date, days_btwn_reminder_and_event,
			todo_count, todos, bg_cover, invite_link_id, is_invite_link_active,
			invited_emails, invitee_roles, invitee_ids, owner_id, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, 1, $15, $16)
	`
	_, err = t.tx.ExecContext(ctx, query,
		e.ID, e.Title, e.Date, e.ReminderDate, e.DaysBtwnReminderAndEvent,
		e.TodoCount, todos, e.BgCover, e.InviteLinkID, e.IsInviteLinkActive,
		invitedEmails, inviteeRoles, pq.Array(e.InviteeIDs), e.OwnerID, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return domain.ErrConflict
		}
		return err
	}
	e.Version = 1
	return nil
}

func (t *eventTx) SaveEvent(ctx context.Context, e *domain.Event) error {
	todos, inviteeRoles, invitedEmails, err := marshalEventDocs(e)
	if err != nil {
		return err
	}
	query := `
		UPDATE events
		SET title = $3, date = $4, reminder_date = $5, days_btwn_reminder_and_event = $6,
			todo_count = $7, todos = $8, bg_cover = $9, invite_link_id = $10,
			is_invite_link_active = $11, invited_emails = $12, invitee_roles = $13,
			invitee_ids = $14, version = version + 1, updated_at = NOW()
		WHERE id = $1 AND version = $2
	`
	result, err := t.tx.ExecContext(ctx, query,
		e.ID, e.Version, e.Title, e.Date, e.ReminderDate, e.DaysBtwnReminderAndEvent,
		e.TodoCount, todos, e.BgCover, e.InviteLinkID, e.IsInviteLinkActive,
		invitedEmails, inviteeRoles, pq.Array(e.InviteeIDs),
	)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		// Either the event is gone or another writer advanced the
		// version since we loaded it.
		return domain.ErrConflict
	}
	e.Version++
	return nil
}

func (t *eventTx) DeleteEvent(ctx context.Context, id string) error {
	result, err := t.tx.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (t *eventTx) CreateNotifications(ctx context.Context, notifications []*domain.Notification) error {
	query := `
		INSERT INTO notifications (id, owner_id, initiator_id, type, message, resource_type,
			resource_id, is_action_required, action_type, action_taken, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, false, $10, $11)
	`
	now := time.Now()
	for _, n := range notifications {
		if n.ID == "" {
			n.ID = nuid.Next()
		}
		n.CreatedAt = now
		n.ExpiresAt = now.Add(domain.NotificationTTL)
		_, err := t.tx.ExecContext(ctx, query,
			n.ID, n.OwnerID, n.InitiatorID, n.Type, n.Message, n.ResourceType,
			n.ResourceID, n.IsActionRequired, n.ActionType, n.ExpiresAt, n.CreatedAt,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (t *eventTx) MarkInviteActionTaken(ctx context.Context, ownerID, initiatorID, eventID string) error {
	query := `
		UPDATE notifications
		SET action_taken = true
		WHERE owner_id = $1 AND initiator_id = $2 AND resource_id = $3
			AND type = $4 AND action_taken = false
	`
	_, err := t.tx.ExecContext(ctx, query, ownerID, initiatorID, eventID, domain.NotifEventInvite)
	return err
}

func (t *eventTx) IncrementNewNotifications(ctx context.Context, userIDs []string) error {
	if len(userIDs) == 0 {
		return nil
	}
	query := `
		UPDATE users
		SET new_notifications = new_notifications + 1
		WHERE id = ANY($1)
	`
	_, err := t.tx.ExecContext(ctx, query, pq.Array(userIDs))
	return err
}

// marshalEventDocs serializes the document-shaped columns of an event.
func marshalEventDocs(e *domain.Event) (todos, inviteeRoles, invitedEmails []byte, err error) {
	if todos, err = json.Marshal(e.Todos); err != nil {
		return nil, nil, nil, fmt.Errorf("marshal todos: %w", err)
	}
	if inviteeRoles, err = json.Marshal(e.InviteeRoles); err != nil {
		return nil, nil, nil, fmt.Errorf("marshal invitee roles: %w", err)
	}
	if invitedEmails, err = json.Marshal(e.InvitedEmails); err != nil {
		return nil, nil, nil, fmt.Errorf("marshal invited emails: %w", err)
	}
	return todos, inviteeRoles, invitedEmails, nil
}
