package postgres

import (
	"context"
	"database/sql"

	"github.com/aibrid/zipo-server/internal/domain"
)

type notificationRepository struct {
	DB *sql.DB
}

func NewNotificationRepository(db *sql.DB) domain.NotificationRepository {
	return &notificationRepository{DB: db}
}

// ListByOwner pages newest-first. The cursor is the id of the last row of
// the previous page; rows are ordered by (created_at, id) descending so
// the cursor position is total.
func (r *notificationRepository) ListByOwner(ctx context.Context, ownerID, cursor string, limit int) ([]*domain.NotificationWithInitiator, error) {
	query := `
		SELECT n.id, n.owner_id, n.initiator_id, n.type, n.message, n.resource_type,
			n.resource_id, n.is_action_required, n.action_type, n.action_taken, n.created_at,
			u.id, u.name, u.email, u.photo
		FROM notifications n
		JOIN users u ON u.id = n.initiator_id
		WHERE n.owner_id = $1 AND n.expires_at > NOW()
			AND ($2 = '' OR (n.created_at, n.id) < (
				SELECT c.created_at, c.id FROM notifications c WHERE c.id = $2
			))
		ORDER BY n.created_at DESC, n.id DESC
		LIMIT $3
	`
	rows, err := r.DB.QueryContext(ctx, query, ownerID, cursor, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]*domain.NotificationWithInitiator, 0)
	for rows.Next() {
		item := &domain.NotificationWithInitiator{Initiator: &domain.User{}}
		var actionType, photo sql.NullString
		err := rows.Scan(
			&item.ID, &item.OwnerID, &item.InitiatorID, &item.Type, &item.Message,
			&item.ResourceType, &item.ResourceID, &item.IsActionRequired,
			&actionType, &item.ActionTaken, &item.CreatedAt,
			&item.Initiator.ID, &item.Initiator.Name, &item.Initiator.Email, &photo,
		)
		if err != nil {
			return nil, err
		}
		item.ActionType = actionType.String
		item.Initiator.Photo = photo.String
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *notificationRepository) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	query := `SELECT COUNT(*) FROM notifications WHERE owner_id = $1 AND expires_at > NOW()`
	var count int
	if err := r.DB.QueryRowContext(ctx, query, ownerID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
