package database

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/folio-backend/errs"
	"github.com/rpupo63/folio-backend/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) Database {
	t.Helper()
	dsn := SQLiteDSN("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	return New(db)
}

func addPost(t *testing.T, d Database, post models.BlogPost) models.BlogPost {
	t.Helper()
	if post.Slug == "" {
		post.Slug = uuid.NewString()
	}
	if post.Status == "" {
		post.Status = models.StatusPublished
	}
	require.NoError(t, d.BlogPostRepo().Add(context.Background(), &post))
	return post
}

func slugsOf(posts []models.BlogPost) []string {
	out := make([]string, 0, len(posts))
	for _, p := range posts {
		out = append(out, p.Slug)
	}
	return out
}

func TestPublishedFiltersCombineWithAnd(t *testing.T) {
	ctx := context.Background()
	d := openTestDB(t)

	django := models.Category{Name: "Django", Slug: "django"}
	other := models.Category{Name: "Life", Slug: "life"}
	require.NoError(t, d.CategoryRepo().Add(ctx, &django))
	require.NoError(t, d.CategoryRepo().Add(ctx, &other))
	python := models.Tag{Name: "Python", Slug: "python"}
	require.NoError(t, d.TagRepo().Add(ctx, &python))

	addPost(t, d, models.BlogPost{Title: "Forms in depth", Slug: "forms", Content: "x", CategoryID: &django.ID, Tags: []models.Tag{python}})
	addPost(t, d, models.BlogPost{Title: "Admin tricks", Slug: "admin", Content: "about FORMS too", CategoryID: &django.ID})
	addPost(t, d, models.BlogPost{Title: "Forms of life", Slug: "life", Content: "x", CategoryID: &other.ID, Tags: []models.Tag{python}})
	addPost(t, d, models.BlogPost{Title: "Forms draft", Slug: "draft", Content: "x", CategoryID: &django.ID, Status: models.StatusDraft})

	posts, err := d.BlogPostRepo().FindPublished(ctx, PostFilter{})
	require.NoError(t, err)
	require.Len(t, posts, 3)

	posts, err = d.BlogPostRepo().FindPublished(ctx, PostFilter{CategorySlug: "django", Search: "forms"})
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"forms", "admin"}, slugsOf(posts))

	posts, err = d.BlogPostRepo().FindPublished(ctx, PostFilter{CategorySlug: "django", TagSlug: "python", Search: "FORMS"})
	require.NoError(t, err)
	require.Equal(t, []string{"forms"}, slugsOf(posts))
	require.NotNil(t, posts[0].Category)
	require.Len(t, posts[0].Tags, 1)

	posts, err = d.BlogPostRepo().FindPublished(ctx, PostFilter{CategorySlug: "missing"})
	require.NoError(t, err)
	require.Empty(t, posts)

	posts, err = d.BlogPostRepo().FindPublished(ctx, PostFilter{Search: "100%"})
	require.NoError(t, err)
	require.Empty(t, posts)
}

func TestPublishedOrderPutsNullPublicationLast(t *testing.T) {
	ctx := context.Background()
	d := openTestDB(t)

	older := time.Now().Add(-48 * time.Hour)
	newer := time.Now().Add(-1 * time.Hour)
	addPost(t, d, models.BlogPost{Title: "old", Slug: "old", Content: "x", PublishedAt: &older})
	addPost(t, d, models.BlogPost{Title: "new", Slug: "new", Content: "x", PublishedAt: &newer})

	// Published through a bulk update, so it has no publication date.
	draft := addPost(t, d, models.BlogPost{Title: "bulk", Slug: "bulk", Content: "x", Status: models.StatusDraft})
	_, err := d.BlogPostRepo().SetStatus(ctx, []uuid.UUID{draft.ID}, models.StatusPublished)
	require.NoError(t, err)

	posts, err := d.BlogPostRepo().FindPublished(ctx, PostFilter{})
	require.NoError(t, err)
	require.Equal(t, []string{"new", "old", "bulk"}, slugsOf(posts))
}

func TestSetStatusBypassesPublishedAt(t *testing.T) {
	ctx := context.Background()
	d := openTestDB(t)

	post := addPost(t, d, models.BlogPost{Title: "t", Content: "x", Status: models.StatusDraft})
	n, err := d.BlogPostRepo().SetStatus(ctx, []uuid.UUID{post.ID}, models.StatusPublished)
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	got, err := d.BlogPostRepo().FindByID(ctx, post.ID)
	require.NoError(t, err)
	require.Equal(t, models.StatusPublished, got.Status)
	require.Nil(t, got.PublishedAt)
}

func TestFindPublishedBySlugHidesDrafts(t *testing.T) {
	ctx := context.Background()
	d := openTestDB(t)

	addPost(t, d, models.BlogPost{Title: "d", Slug: "secret", Content: "x", Status: models.StatusDraft})
	_, err := d.BlogPostRepo().FindPublishedBySlug(ctx, "secret")
	require.True(t, errs.IsNotFound(err))
}

func TestIncrementViews(t *testing.T) {
	ctx := context.Background()
	d := openTestDB(t)

	post := addPost(t, d, models.BlogPost{Title: "t", Content: "x"})
	require.NoError(t, d.BlogPostRepo().IncrementViews(ctx, post.ID))
	require.NoError(t, d.BlogPostRepo().IncrementViews(ctx, post.ID))

	got, err := d.BlogPostRepo().FindByID(ctx, post.ID)
	require.NoError(t, err)
	require.Equal(t, 2, got.Views)

	require.True(t, errs.IsNotFound(d.BlogPostRepo().IncrementViews(ctx, uuid.New())))
}

func TestPopularAndRelated(t *testing.T) {
	ctx := context.Background()
	d := openTestDB(t)

	cat := models.Category{Name: "Go", Slug: "go"}
	require.NoError(t, d.CategoryRepo().Add(ctx, &cat))

	a := addPost(t, d, models.BlogPost{Title: "a", Slug: "a", Content: "x", CategoryID: &cat.ID, Views: 10})
	addPost(t, d, models.BlogPost{Title: "b", Slug: "b", Content: "x", CategoryID: &cat.ID, Views: 30})
	addPost(t, d, models.BlogPost{Title: "c", Slug: "c", Content: "x", Views: 20})
	addPost(t, d, models.BlogPost{Title: "d", Slug: "d", Content: "x"})
	addPost(t, d, models.BlogPost{Title: "e", Slug: "e", Content: "x", CategoryID: &cat.ID, Status: models.StatusDraft, Views: 99})

	popular, err := d.BlogPostRepo().Popular(ctx, 2)
	require.NoError(t, err)
	require.Equal(t, []string{"b", "c"}, slugsOf(popular))

	related, err := d.BlogPostRepo().Related(ctx, &a, 3)
	require.NoError(t, err)
	require.Equal(t, []string{"b"}, slugsOf(related))

	uncategorized, err := d.BlogPostRepo().FindPublishedBySlug(ctx, "c")
	require.NoError(t, err)
	related, err = d.BlogPostRepo().Related(ctx, uncategorized, 3)
	require.NoError(t, err)
	require.Equal(t, []string{"d"}, slugsOf(related))
}

func TestCategoryDeleteKeepsPosts(t *testing.T) {
	ctx := context.Background()
	d := openTestDB(t)

	cat := models.Category{Name: "Go", Slug: "go"}
	require.NoError(t, d.CategoryRepo().Add(ctx, &cat))
	addPost(t, d, models.BlogPost{Title: "t", Slug: "kept", Content: "x", CategoryID: &cat.ID})

	n, err := d.CategoryRepo().PostCount(ctx, cat.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	require.NoError(t, d.CategoryRepo().Delete(ctx, cat.ID))

	post, err := d.BlogPostRepo().FindPublishedBySlug(ctx, "kept")
	require.NoError(t, err)
	require.Nil(t, post.CategoryID)

	require.True(t, errs.IsNotFound(d.CategoryRepo().Delete(ctx, cat.ID)))
}

func TestPostDeleteCascadesComments(t *testing.T) {
	ctx := context.Background()
	d := openTestDB(t)

	tag := models.Tag{Name: "Go", Slug: "go"}
	require.NoError(t, d.TagRepo().Add(ctx, &tag))
	post := addPost(t, d, models.BlogPost{Title: "t", Content: "x", Tags: []models.Tag{{Base: models.Base{ID: tag.ID}}}})
	require.NoError(t, d.CommentRepo().Add(ctx, &models.Comment{PostID: post.ID, Name: "n", Email: "e@x.io", Content: "c", Active: true}))

	n, err := d.TagRepo().PostCount(ctx, tag.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	require.NoError(t, d.BlogPostRepo().Delete(ctx, post.ID))

	count, err := d.CommentRepo().Count(ctx)
	require.NoError(t, err)
	require.Zero(t, count)
	n, err = d.TagRepo().PostCount(ctx, tag.ID)
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestPostUpdateReplacesTags(t *testing.T) {
	ctx := context.Background()
	d := openTestDB(t)

	goTag := models.Tag{Name: "Go", Slug: "go"}
	sqlTag := models.Tag{Name: "SQL", Slug: "sql"}
	require.NoError(t, d.TagRepo().Add(ctx, &goTag))
	require.NoError(t, d.TagRepo().Add(ctx, &sqlTag))

	post := addPost(t, d, models.BlogPost{Title: "t", Content: "x", Tags: []models.Tag{goTag}})
	post.Tags = []models.Tag{sqlTag}
	require.NoError(t, d.BlogPostRepo().Update(ctx, &post))

	got, err := d.BlogPostRepo().FindByID(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, got.Tags, 1)
	require.Equal(t, "sql", got.Tags[0].Slug)

	post.Tags = nil
	require.NoError(t, d.BlogPostRepo().Update(ctx, &post))
	got, err = d.BlogPostRepo().FindByID(ctx, post.ID)
	require.NoError(t, err)
	require.Empty(t, got.Tags)
}

func TestActiveTopLevelComments(t *testing.T) {
	ctx := context.Background()
	d := openTestDB(t)
	repo := d.CommentRepo()

	post := addPost(t, d, models.BlogPost{Title: "t", Content: "x"})
	visible := models.Comment{PostID: post.ID, Name: "a", Email: "a@x.io", Content: "hi", Active: true}
	require.NoError(t, repo.Add(ctx, &visible))
	require.NoError(t, repo.Add(ctx, &models.Comment{PostID: post.ID, Name: "b", Email: "b@x.io", Content: "hidden", Active: false}))
	require.NoError(t, repo.Add(ctx, &models.Comment{PostID: post.ID, Name: "c", Email: "c@x.io", Content: "reply", Active: true, ParentID: &visible.ID}))

	comments, err := repo.FindActiveTopLevel(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	require.Equal(t, visible.ID, comments[0].ID)

	n, err := repo.SetActive(ctx, []uuid.UUID{visible.ID}, false)
	require.NoError(t, err)
	require.Equal(t, int64(1), n)
	comments, err = repo.FindActiveTopLevel(ctx, post.ID)
	require.NoError(t, err)
	require.Empty(t, comments)
}

func TestCommentParentMustShareThePost(t *testing.T) {
	ctx := context.Background()
	d := openTestDB(t)
	repo := d.CommentRepo()

	first := addPost(t, d, models.BlogPost{Title: "1", Content: "x"})
	second := addPost(t, d, models.BlogPost{Title: "2", Content: "x"})

	parent := models.Comment{PostID: first.ID, Name: "a", Email: "a@x.io", Content: "hi", Active: true}
	require.NoError(t, repo.Add(ctx, &parent))

	err := repo.Add(ctx, &models.Comment{PostID: second.ID, Name: "b", Email: "b@x.io", Content: "no", Active: true, ParentID: &parent.ID})
	require.True(t, errs.IsInvalidFieldError(err))

	missing := uuid.New()
	err = repo.Add(ctx, &models.Comment{PostID: first.ID, Name: "b", Email: "b@x.io", Content: "no", Active: true, ParentID: &missing})
	require.True(t, errs.IsInvalidFieldError(err))

	parent.ParentID = &parent.ID
	require.True(t, errs.IsInvalidFieldError(repo.Update(ctx, &parent)))
}

func TestProjectTechnologyFilter(t *testing.T) {
	ctx := context.Background()
	d := openTestDB(t)

	django := models.Skill{Name: "Django", Level: 90, Category: models.SkillBackend}
	djangoRest := models.Skill{Name: "Django REST", Level: 70, Category: models.SkillBackend}
	react := models.Skill{Name: "React", Level: 60, Category: models.SkillFrontend}
	for _, s := range []*models.Skill{&django, &djangoRest, &react} {
		require.NoError(t, d.SkillRepo().Add(ctx, s))
	}

	api := models.Project{Title: "API", Description: "d", ShortDescription: "s", SortOrder: 1, Technologies: []models.Skill{django, djangoRest}}
	site := models.Project{Title: "Site", Description: "d", ShortDescription: "s", SortOrder: 0, Technologies: []models.Skill{react}}
	require.NoError(t, d.ProjectRepo().Add(ctx, &api))
	require.NoError(t, d.ProjectRepo().Add(ctx, &site))

	all, err := d.ProjectRepo().FindFiltered(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, "Site", all[0].Title)

	matched, err := d.ProjectRepo().FindFiltered(ctx, "djan")
	require.NoError(t, err)
	require.Len(t, matched, 1)
	require.Equal(t, api.ID, matched[0].ID)
	require.Len(t, matched[0].Technologies, 2)

	none, err := d.ProjectRepo().FindFiltered(ctx, "cobol")
	require.NoError(t, err)
	require.Empty(t, none)

	n, err := d.ProjectRepo().TechnologyCount(ctx, api.ID)
	require.NoError(t, err)
	require.Equal(t, int64(2), n)

	related, err := d.ProjectRepo().FindRelated(ctx, api.ID, 3)
	require.NoError(t, err)
	require.Len(t, related, 1)
	require.Equal(t, site.ID, related[0].ID)

	require.NoError(t, d.ProjectRepo().Delete(ctx, api.ID))
	_, err = d.ProjectRepo().FindByID(ctx, api.ID)
	require.True(t, errs.IsNotFound(err))
}

func TestSkillOrdering(t *testing.T) {
	ctx := context.Background()
	d := openTestDB(t)

	for _, s := range []models.Skill{
		{Name: "Vue", Level: 50, Category: models.SkillFrontend},
		{Name: "Go", Level: 70, Category: models.SkillBackend},
		{Name: "Django", Level: 90, Category: models.SkillBackend},
	} {
		s := s
		require.NoError(t, d.SkillRepo().Add(ctx, &s))
	}

	byCategory, err := d.SkillRepo().FindAllByCategory(ctx)
	require.NoError(t, err)
	require.Equal(t, "Django", byCategory[0].Name)
	require.Equal(t, "Go", byCategory[1].Name)
	require.Equal(t, "Vue", byCategory[2].Name)

	byName, err := d.SkillRepo().FindAllByName(ctx)
	require.NoError(t, err)
	require.Equal(t, "Django", byName[0].Name)
	require.Equal(t, "Vue", byName[2].Name)
}

func TestContactMessageReadState(t *testing.T) {
	ctx := context.Background()
	d := openTestDB(t)
	repo := d.ContactMessageRepo()

	msg := models.ContactMessage{Name: "n", Email: "e@x.io", Subject: "s", Message: "m"}
	require.NoError(t, repo.Add(ctx, &msg))
	unread, err := repo.CountUnread(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), unread)

	edited := msg
	edited.Subject = "changed"
	edited.Message = "changed"
	require.NoError(t, repo.Update(ctx, &edited))
	unread, err = repo.CountUnread(ctx)
	require.NoError(t, err)
	require.Zero(t, unread)

	stored, err := repo.FindByID(ctx, msg.ID)
	require.NoError(t, err)
	require.Equal(t, "s", stored.Subject)
	require.Equal(t, "m", stored.Message)

	missing := models.ContactMessage{Base: models.Base{ID: uuid.New()}}
	require.True(t, errs.IsNotFound(repo.Update(ctx, &missing)))

	_, err = repo.SetRead(ctx, []uuid.UUID{msg.ID}, false)
	require.NoError(t, err)
	unread, err = repo.CountUnread(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), unread)
}

func TestEnsureAdminOnlySeedsOnce(t *testing.T) {
	ctx := context.Background()
	d := openTestDB(t)

	require.NoError(t, d.UserRepo().EnsureAdmin(ctx, "admin", "secret"))
	require.NoError(t, d.UserRepo().EnsureAdmin(ctx, "other", "secret"))

	n, err := d.UserRepo().Count(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	user, err := d.UserRepo().FindByUsername(ctx, "admin")
	require.NoError(t, err)
	require.True(t, user.CheckPassword("secret"))
	require.False(t, user.CheckPassword("wrong"))
}

func TestProfileFirst(t *testing.T) {
	ctx := context.Background()
	d := openTestDB(t)

	profile, err := d.ProfileRepo().First(ctx)
	require.NoError(t, err)
	require.Nil(t, profile)

	user := models.User{Username: "me"}
	require.NoError(t, user.SetPassword("pw"))
	require.NoError(t, d.UserRepo().Add(ctx, &user))
	require.NoError(t, d.ProfileRepo().Add(ctx, &models.Profile{UserID: user.ID, Bio: "hello"}))

	profile, err = d.ProfileRepo().First(ctx)
	require.NoError(t, err)
	require.Equal(t, "hello", profile.Bio)
	require.Equal(t, "me", profile.User.Username)
}

func TestFindGrid(t *testing.T) {
	ctx := context.Background()
	d := openTestDB(t)
	repo := d.SkillRepo()

	for _, s := range []models.Skill{
		{Name: "Go", Level: 90, Category: models.SkillBackend},
		{Name: "Django", Level: 70, Category: models.SkillBackend},
		{Name: "React", Level: 60, Category: models.SkillFrontend},
		{Name: "snake_case", Level: 10, Category: models.SkillTools},
	} {
		require.NoError(t, repo.Add(ctx, &s))
	}
	names := func(skills []models.Skill) []string {
		out := make([]string, 0, len(skills))
		for _, s := range skills {
			out = append(out, s.Name)
		}
		return out
	}

	all, err := repo.FindGrid(ctx, GridQuery{})
	require.NoError(t, err)
	require.Equal(t, []string{"Django", "Go", "React", "snake_case"}, names(all))

	found, err := repo.FindGrid(ctx, GridQuery{Search: "GO", SearchColumns: []string{"name"}, Order: "level ASC"})
	require.NoError(t, err)
	require.Equal(t, []string{"Django", "Go"}, names(found))

	found, err = repo.FindGrid(ctx, GridQuery{Search: "_", SearchColumns: []string{"name"}})
	require.NoError(t, err)
	require.Equal(t, []string{"snake_case"}, names(found))

	found, err = repo.FindGrid(ctx, GridQuery{
		Filters: []GridFilter{{Clause: "category = ?", Value: models.SkillBackend}, {Clause: "level >= ?", Value: 80}},
	})
	require.NoError(t, err)
	require.Equal(t, []string{"Go"}, names(found))
}
