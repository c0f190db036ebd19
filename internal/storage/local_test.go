package storage

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_PutGetDelete(t *testing.T) {
	root := t.TempDir()
	store, err := NewLocal(root)
	require.NoError(t, err)

	ctx := context.Background()
	key := "application_documents/user_5/passport.pdf"

	info, err := store.Put(ctx, key, strings.NewReader("pdf-bytes"), PutObjectOptions{ContentType: "application/pdf"})
	require.NoError(t, err)
	assert.Equal(t, key, info.Key)
	assert.Equal(t, int64(9), info.Size)

	rc, got, err := store.Get(ctx, key)
	require.NoError(t, err)
	defer rc.Close()
	content, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "pdf-bytes", string(content))
	assert.Equal(t, int64(9), got.Size)

	require.NoError(t, store.Delete(ctx, key))
	_, _, err = store.Get(ctx, key)
	assert.Error(t, err)

	// Deleting again is not an error.
	assert.NoError(t, store.Delete(ctx, key))
}

func TestLocalStorage_PresignGet(t *testing.T) {
	store, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	url, err := store.PresignGet(context.Background(), "receipts/app_1/receipt.pdf", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, "/media/receipts/app_1/receipt.pdf", url)
}

func TestLocalStorage_RejectsTraversal(t *testing.T) {
	root := t.TempDir()
	store, err := NewLocal(root)
	require.NoError(t, err)

	ctx := context.Background()
	info, err := store.Put(ctx, "../outside.txt", strings.NewReader("x"), PutObjectOptions{})
	require.NoError(t, err)
	// The cleaned key stays inside the root.
	assert.Equal(t, "../outside.txt", info.Key)

	rc, _, err := store.Get(ctx, "outside.txt")
	require.NoError(t, err)
	rc.Close()
}
