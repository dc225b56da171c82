package admin

import (
	"context"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/folio-backend/config"
	"github.com/rpupo63/folio-backend/database"
	"github.com/rpupo63/folio-backend/errs"
	"github.com/rpupo63/folio-backend/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) database.Database {
	t.Helper()
	dsn := database.SQLiteDSN("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return database.New(db)
}

func TestSkillLevelColor(t *testing.T) {
	cases := map[int]string{
		100: LevelHighColor,
		85:  LevelHighColor,
		80:  LevelHighColor,
		79:  LevelMediumColor,
		70:  LevelMediumColor,
		60:  LevelMediumColor,
		59:  LevelLowColor,
		40:  LevelLowColor,
		0:   LevelLowColor,
	}
	for level, want := range cases {
		require.Equal(t, want, SkillLevelColor(level), "level %d", level)
	}

	badge := SkillLevelBadge(models.Skill{Name: "Go", Level: 85})
	require.Equal(t, "85%", badge.Label)
	require.Equal(t, "#22C55E", badge.Color)
	require.Contains(t, badge.HTML, "background-color: #22C55E")
	require.Contains(t, badge.HTML, ">85%</div>")
}

func TestCategoryBadgeEscapesName(t *testing.T) {
	badge := CategoryBadge(models.Category{Name: "<b>Go</b>", Color: "#3B82F6"})
	require.Equal(t, "#3B82F6", badge.Color)
	require.Contains(t, badge.HTML, "&lt;b&gt;Go&lt;/b&gt;")
}

func TestPreviews(t *testing.T) {
	require.Equal(t, "No image", ImagePreview(""))
	require.Contains(t, ImagePreview("/media/p.png"), `src="/media/p.png"`)

	require.Equal(t, "short", MessagePreview("short"))
	exact := strings.Repeat("a", 50)
	require.Equal(t, exact, MessagePreview(exact))
	long := strings.Repeat("é", 60)
	require.Equal(t, strings.Repeat("é", 50)+"...", MessagePreview(long))

	parent := uuid.New()
	require.True(t, IsReply(models.Comment{ParentID: &parent}))
	require.False(t, IsReply(models.Comment{}))
}

func TestNewSiteDefaults(t *testing.T) {
	site := NewSite(config.Config{"ADMIN_INDEX_TITLE": "Tableau de bord"})
	require.Equal(t, "Portfolio Administration", site.Header)
	require.Equal(t, "Portfolio Admin", site.Title)
	require.Equal(t, "Tableau de bord", site.IndexTitle)
}

func TestPrepareBlogPost(t *testing.T) {
	admin := uuid.New()

	post := models.BlogPost{Title: "Hello World", Content: "body"}
	require.NoError(t, PrepareBlogPost(&post, admin))
	require.Equal(t, "hello-world", post.Slug)
	require.Equal(t, models.StatusDraft, post.Status)
	require.Equal(t, admin, *post.AuthorID)

	other := uuid.New()
	post = models.BlogPost{Title: "t", Content: "c", AuthorID: &other}
	require.NoError(t, PrepareBlogPost(&post, admin))
	require.Equal(t, other, *post.AuthorID)

	post = models.BlogPost{Title: "t", Content: "c", Status: "archived"}
	require.True(t, errs.IsInvalidFieldError(PrepareBlogPost(&post, admin)))

	post = models.BlogPost{Title: "t", Content: "c", Excerpt: strings.Repeat("x", 501)}
	require.True(t, errs.IsInvalidFieldError(PrepareBlogPost(&post, admin)))

	post = models.BlogPost{Content: "c"}
	require.True(t, errs.IsMissingRequiredFieldError(PrepareBlogPost(&post, admin)))
}

func TestPrepareCategoryAndTag(t *testing.T) {
	category := models.Category{Name: "Web Dev"}
	require.NoError(t, PrepareCategory(&category))
	require.Equal(t, "web-dev", category.Slug)
	require.Equal(t, models.DefaultCategoryColor, category.Color)

	category = models.Category{Name: "x", Color: "blue"}
	require.True(t, errs.IsInvalidFieldError(PrepareCategory(&category)))

	tag := models.Tag{Name: "Go Lang", Slug: "Not A Slug"}
	require.True(t, errs.IsInvalidFieldError(PrepareTag(&tag)))
}

func TestPrepareSkill(t *testing.T) {
	require.NoError(t, PrepareSkill(&models.Skill{Name: "Go", Level: 80, Category: models.SkillBackend}))
	require.True(t, errs.IsInvalidFieldError(PrepareSkill(&models.Skill{Name: "Go", Level: 101, Category: models.SkillBackend})))
	require.True(t, errs.IsInvalidFieldError(PrepareSkill(&models.Skill{Name: "Go", Category: "cooking"})))
}

func TestActionsTable(t *testing.T) {
	require.Equal(t, []string{"blog-posts", "comments", "contact-messages"}, ActionResources())

	_, ok := FindAction("blog-posts", "make_published")
	require.True(t, ok)
	_, ok = FindAction("blog-posts", "make_active")
	require.False(t, ok)
	_, ok = FindAction("skills", "make_published")
	require.False(t, ok)
}

func TestBulkActions(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	post := models.BlogPost{Title: "t", Slug: "t", Content: "c"}
	require.NoError(t, db.BlogPostRepo().Add(ctx, &post))

	publish, _ := FindAction("blog-posts", "make_published")
	n, err := publish.Apply(ctx, db, []uuid.UUID{post.ID})
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	got, err := db.BlogPostRepo().FindPublishedBySlug(ctx, "t")
	require.NoError(t, err)
	require.Nil(t, got.PublishedAt)

	comment := models.Comment{PostID: post.ID, Name: "n", Email: "e@x.io", Content: "c", Active: true}
	require.NoError(t, db.CommentRepo().Add(ctx, &comment))
	deactivate, _ := FindAction("comments", "make_inactive")
	_, err = deactivate.Apply(ctx, db, []uuid.UUID{comment.ID})
	require.NoError(t, err)
	active, err := db.CommentRepo().CountActive(ctx)
	require.NoError(t, err)
	require.Zero(t, active)

	msg := models.ContactMessage{Name: "n", Email: "e@x.io", Subject: "s", Message: "m"}
	require.NoError(t, db.ContactMessageRepo().Add(ctx, &msg))
	read, _ := FindAction("contact-messages", "mark_as_read")
	_, err = read.Apply(ctx, db, []uuid.UUID{msg.ID})
	require.NoError(t, err)
	unread, err := db.ContactMessageRepo().CountUnread(ctx)
	require.NoError(t, err)
	require.Zero(t, unread)
}

func TestDashboard(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	require.NoError(t, db.ProjectRepo().Add(ctx, &models.Project{Title: "p", Description: "d", ShortDescription: "s"}))
	published := models.BlogPost{Title: "a", Slug: "a", Content: "c", Status: models.StatusPublished}
	require.NoError(t, db.BlogPostRepo().Add(ctx, &published))
	require.NoError(t, db.BlogPostRepo().Add(ctx, &models.BlogPost{Title: "b", Slug: "b", Content: "c"}))
	require.NoError(t, db.CommentRepo().Add(ctx, &models.Comment{PostID: published.ID, Name: "n", Email: "e", Content: "c", Active: true}))
	require.NoError(t, db.CommentRepo().Add(ctx, &models.Comment{PostID: published.ID, Name: "n", Email: "e", Content: "c"}))
	require.NoError(t, db.ContactMessageRepo().Add(ctx, &models.ContactMessage{Name: "n", Email: "e", Subject: "s", Message: "m"}))

	stats, err := Dashboard(ctx, db, time.Now())
	require.NoError(t, err)
	require.Equal(t, Stats{
		TotalProjects:  1,
		PublishedPosts: 1,
		ActiveComments: 1,
		UnreadMessages: 1,
		RecentPosts:    2,
		RecentComments: 2,
	}, stats)

	stats, err = Dashboard(ctx, db, time.Now().Add(31*24*time.Hour))
	require.NoError(t, err)
	require.Zero(t, stats.RecentPosts)
	require.Zero(t, stats.RecentComments)
}

func TestGridQuery(t *testing.T) {
	now := time.Date(2024, time.March, 15, 13, 30, 0, 0, time.UTC)
	author := uuid.New()

	q, err := Grids["blog-posts"].Query(url.Values{
		"search":   {"go"},
		"featured": {"true"},
		"author":   {author.String()},
		"created":  {SinceThisMonth},
		"page":     {"2"},
	}, now)
	require.NoError(t, err)
	require.Equal(t, "go", q.Search)
	require.Equal(t, []string{"title", "content", "excerpt"}, q.SearchColumns)
	require.Equal(t, "created_at DESC", q.Order)
	require.Equal(t, []database.GridFilter{
		{Clause: "featured = ?", Value: true},
		{Clause: "created_at >= ?", Value: time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)},
		{Clause: "author_id = ?", Value: author},
	}, q.Filters)

	_, err = Grids["comments"].Query(url.Values{"post": {"42"}}, now)
	require.True(t, errs.IsInvalidFieldError(err))

	q, err = Grids["tags"].Query(url.Values{"featured": {"yes please"}}, now)
	require.NoError(t, err)
	require.Empty(t, q.Filters)
}

func TestWindowStart(t *testing.T) {
	now := time.Date(2024, time.March, 15, 13, 30, 0, 0, time.UTC)
	cases := map[string]time.Time{
		SinceToday:     time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC),
		SincePast7Days: time.Date(2024, time.March, 8, 0, 0, 0, 0, time.UTC),
		SinceThisMonth: time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		SinceThisYear:  time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
	for window, want := range cases {
		got, ok := windowStart(window, now)
		require.True(t, ok, window)
		require.True(t, want.Equal(got), window)
	}
	_, ok := windowStart("yesterday", now)
	require.False(t, ok)
}
