package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/aibrid/zipo-server/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeNotificationRepo serves a fixed newest-first feed.
type fakeNotificationRepo struct {
	feed []*domain.NotificationWithInitiator
}

func (f *fakeNotificationRepo) ListByOwner(ctx context.Context, ownerID, cursor string, limit int) ([]*domain.NotificationWithInitiator, error) {
	start := 0
	if cursor != "" {
		for i, n := range f.feed {
			if n.ID == cursor {
				start = i + 1
				break
			}
		}
	}
	end := start + limit
	if end > len(f.feed) {
		end = len(f.feed)
	}
	return f.feed[start:end], nil
}

func (f *fakeNotificationRepo) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	return len(f.feed), nil
}

func feedOf(n int) []*domain.NotificationWithInitiator {
	out := make([]*domain.NotificationWithInitiator, n)
	for i := range out {
		out[i] = &domain.NotificationWithInitiator{
			Notification: domain.Notification{
				ID:      fmt.Sprintf("n-%d", i+1),
				OwnerID: "u1",
				Type:    domain.NotifTodoAdded,
			},
		}
	}
	return out
}

func TestGetNotifications_PagesAndResetsCounter(t *testing.T) {
	repo := &fakeNotificationRepo{feed: feedOf(5)}
	userRepo := newFakeUserRepo(&domain.User{ID: "u1", NewNotifications: 4})
	svc := NewNotificationService(repo, userRepo, testLogger, 2*time.Second)
	ctx := context.Background()

	items, page, err := svc.GetNotifications(ctx, "u1", "", 2)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.True(t, page.HasNextPage)
	assert.Equal(t, "n-2", page.NextCursor)
	assert.Equal(t, 5, page.TotalDocs)
	assert.Equal(t, 2, page.DocsRetrieved)

	// Opening the feed clears the unread counter.
	assert.Equal(t, 0, userRepo.byID["u1"].NewNotifications)

	items, page, err = svc.GetNotifications(ctx, "u1", page.NextCursor, 2)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "n-3", items[0].ID)
	assert.True(t, page.HasNextPage)

	items, page, err = svc.GetNotifications(ctx, "u1", page.NextCursor, 2)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.False(t, page.HasNextPage)
	assert.Empty(t, page.NextCursor)
}

func TestGetNotifications_DefaultLimit(t *testing.T) {
	repo := &fakeNotificationRepo{feed: feedOf(3)}
	userRepo := newFakeUserRepo(&domain.User{ID: "u1"})
	svc := NewNotificationService(repo, userRepo, testLogger, 2*time.Second)

	items, page, err := svc.GetNotifications(context.Background(), "u1", "", 0)
	require.NoError(t, err)
	assert.Len(t, items, 3)
	assert.False(t, page.HasNextPage)
	assert.Equal(t, 3, page.DocsRetrieved)
}
