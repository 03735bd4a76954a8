package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aibrid/zipo-server/internal/domain"
)

const defaultFeedLimit = 20

type notificationService struct {
	notifRepo      domain.NotificationRepository
	userRepo       domain.UserRepository
	logger         *slog.Logger
	contextTimeout time.Duration
}

func NewNotificationService(notifRepo domain.NotificationRepository,
	userRepo domain.UserRepository,
	logger *slog.Logger,
	timeout time.Duration,
) domain.NotificationService {
	return &notificationService{
		notifRepo:      notifRepo,
		userRepo:       userRepo,
		logger:         logger,
		contextTimeout: timeout,
	}
}

func (s *notificationService) GetNotifications(ctx context.Context, ownerID, cursor string, limit int) ([]*domain.NotificationWithInitiator, domain.CursorPage, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if limit <= 0 {
		limit = defaultFeedLimit
	}

	// Fetch one extra row to learn whether another page exists.
	items, err := s.notifRepo.ListByOwner(ctx, ownerID, cursor, limit+1)
	if err != nil {
		return nil, domain.CursorPage{}, fmt.Errorf("list notifications: %w", err)
	}
	total, err := s.notifRepo.CountByOwner(ctx, ownerID)
	if err != nil {
		return nil, domain.CursorPage{}, fmt.Errorf("count notifications: %w", err)
	}

	page := domain.CursorPage{TotalDocs: total}
	if len(items) > limit {
		items = items[:limit]
		page.HasNextPage = true
		page.NextCursor = items[len(items)-1].ID
	}
	page.DocsRetrieved = len(items)

	// Opening the feed marks everything as seen. Losing the reset is
	// tolerable; failing the feed over it is not.
	if err := s.userRepo.ResetNewNotifications(ctx, ownerID); err != nil {
		s.logger.WarnContext(ctx, "reset unread counter failed", "user", ownerID, "err", err)
	}
	return items, page, nil
}
