package admin

import (
	"context"
	"fmt"
	"time"

	"github.com/rpupo63/folio-backend/database"
	"golang.org/x/sync/errgroup"
)

// RecentWindow is how far back the "recent" dashboard counters look.
const RecentWindow = 30 * 24 * time.Hour

type Stats struct {
	TotalProjects  int64 `json:"totalProjects"`
	PublishedPosts int64 `json:"totalPosts"`
	ActiveComments int64 `json:"totalComments"`
	UnreadMessages int64 `json:"unreadMessages"`
	RecentPosts    int64 `json:"recentPosts"`
	RecentComments int64 `json:"recentComments"`
}

// Dashboard gathers the index page counters. The counts are independent, so
// they run concurrently and the first failure cancels the rest.
func Dashboard(ctx context.Context, db database.Database, now time.Time) (Stats, error) {
	var stats Stats
	since := now.Add(-RecentWindow)

	g, ctx := errgroup.WithContext(ctx)
	count := func(name string, dst *int64, fn func(context.Context) (int64, error)) {
		g.Go(func() error {
			n, err := fn(ctx)
			if err != nil {
				return fmt.Errorf("count %s: %w", name, err)
			}
			*dst = n
			return nil
		})
	}

	count("projects", &stats.TotalProjects, db.ProjectRepo().Count)
	count("published posts", &stats.PublishedPosts, db.BlogPostRepo().CountPublished)
	count("active comments", &stats.ActiveComments, db.CommentRepo().CountActive)
	count("unread messages", &stats.UnreadMessages, db.ContactMessageRepo().CountUnread)
	count("recent posts", &stats.RecentPosts, func(ctx context.Context) (int64, error) {
		return db.BlogPostRepo().CountCreatedSince(ctx, since)
	})
	count("recent comments", &stats.RecentComments, func(ctx context.Context) (int64, error) {
		return db.CommentRepo().CountCreatedSince(ctx, since)
	})

	if err := g.Wait(); err != nil {
		return Stats{}, err
	}
	return stats, nil
}
