package errs

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewDatabaseError(t *testing.T) {
	dup := NewDatabaseError("create", "tag", errors.New("UNIQUE constraint failed: tags.slug"))
	require.True(t, IsAlreadyExists(dup))
	require.Equal(t, http.StatusConflict, dup.StatusCode)
	require.Equal(t, "tag already exists: Failed to create tag", dup.Error())

	pg := NewDatabaseError("update", "blog post", errors.New(`ERROR: duplicate key value violates unique constraint "idx_blog_posts_slug"`))
	require.True(t, IsAlreadyExists(pg))

	fk := NewDatabaseError("create", "comment", errors.New("FOREIGN KEY constraint failed"))
	require.Equal(t, http.StatusBadRequest, fk.StatusCode)
	require.True(t, errors.Is(fk, ErrForeignKey))

	other := NewDatabaseError("list", "tags", errors.New("disk I/O error"))
	require.Equal(t, http.StatusInternalServerError, StatusCode(other))
	require.Equal(t, "database query failed: Failed to list tags -> disk I/O error", other.GetFullError())

	// Errors that already carry a status pass through untouched.
	notFound := NewNotFound("tag")
	require.Same(t, notFound, NewDatabaseError("find", "tag", notFound))
	require.True(t, IsNotFound(notFound))
	require.False(t, IsAlreadyExists(notFound))
}

func TestStatusCode(t *testing.T) {
	require.Equal(t, http.StatusBadRequest, StatusCode(NewMissingRequiredFieldError("name")))
	require.Equal(t, http.StatusUnauthorized, StatusCode(NewInvalidCredentialsError()))
	require.Equal(t, http.StatusInternalServerError, StatusCode(errors.New("boom")))
}
