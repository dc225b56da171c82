package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rpupo63/folio-backend/config"
	"github.com/stretchr/testify/require"
)

func TestObjectKey(t *testing.T) {
	key := ObjectKey("projects", "My Screenshot.PNG")
	require.True(t, strings.HasPrefix(key, "projects/my-screenshot-"), key)
	require.True(t, strings.HasSuffix(key, ".png"), key)
	require.NotEqual(t, key, ObjectKey("projects", "My Screenshot.PNG"))

	require.True(t, strings.HasPrefix(ObjectKey("cv", "../../.pdf"), "cv/file-"))
}

func TestLocalStoreSave(t *testing.T) {
	root := t.TempDir()
	store := NewLocalStore(root, "/media")

	url, err := store.Save(context.Background(), "blog/cover.jpg", "image/jpeg", strings.NewReader("jpeg"))
	require.NoError(t, err)
	require.Equal(t, "/media/blog/cover.jpg", url)

	data, err := os.ReadFile(filepath.Join(root, "blog", "cover.jpg"))
	require.NoError(t, err)
	require.Equal(t, "jpeg", string(data))

	url, err = store.Save(context.Background(), "../../escape.txt", "text/plain", strings.NewReader("x"))
	require.NoError(t, err)
	require.Equal(t, "/media/escape.txt", url)
	_, err = os.Stat(filepath.Join(root, "escape.txt"))
	require.NoError(t, err)
}

func TestLocalStoreRemovesPartialFile(t *testing.T) {
	root := t.TempDir()
	store := NewLocalStore(root, "/media/")

	body := io.MultiReader(strings.NewReader("half"), iotest.ErrReader(errors.New("connection reset")))
	_, err := store.Save(context.Background(), "blog/broken.jpg", "image/jpeg", body)
	require.ErrorContains(t, err, "connection reset")

	_, err = os.Stat(filepath.Join(root, "blog", "broken.jpg"))
	require.True(t, os.IsNotExist(err))
}

type fakeS3 struct {
	input *s3.PutObjectInput
	body  string
}

func (f *fakeS3) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = params
	data, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	f.body = string(data)
	return &s3.PutObjectOutput{}, nil
}

func TestS3StoreSave(t *testing.T) {
	fake := &fakeS3{}
	store := NewS3Store(fake, "folio-media", "/uploads/", "https://cdn.example.com/")

	url, err := store.Save(context.Background(), "avatars/me.png", "image/png", strings.NewReader("png"))
	require.NoError(t, err)
	require.Equal(t, "https://cdn.example.com/uploads/avatars/me.png", url)
	require.Equal(t, "folio-media", aws.ToString(fake.input.Bucket))
	require.Equal(t, "uploads/avatars/me.png", aws.ToString(fake.input.Key))
	require.Equal(t, "image/png", aws.ToString(fake.input.ContentType))
	require.Equal(t, "png", fake.body)
}

func TestFromConfig(t *testing.T) {
	store, err := FromConfig(context.Background(), config.Config{"MEDIA_ROOT": t.TempDir()})
	require.NoError(t, err)
	local, ok := store.(*LocalStore)
	require.True(t, ok)
	require.Equal(t, "/media/", local.BaseURL())

	_, err = FromConfig(context.Background(), config.Config{"MEDIA_BACKEND": "ftp"})
	require.Error(t, err)

	_, err = FromConfig(context.Background(), config.Config{"MEDIA_BACKEND": "s3"})
	require.Error(t, err)
}
