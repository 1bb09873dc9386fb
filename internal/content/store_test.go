package content

import (
	"context"
	"testing"

	"statfolio/domain/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_SeedsPosts(t *testing.T) {
	store, err := NewStore()
	require.NoError(t, err)

	posts, err := store.ListPosts(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 2)

	// Newest first.
	assert.Equal(t, "lithuanian-quarterly-trade", posts[0].Slug)
	assert.Equal(t, "binomial-normal-approximation", posts[1].Slug)
	for _, post := range posts {
		assert.NotEmpty(t, post.Body, "seed body must be embedded for %s", post.Slug)
		assert.False(t, core.ID(post.ID).IsEmpty())
	}
}

func TestStore_PostBySlug(t *testing.T) {
	store, err := NewStore()
	require.NoError(t, err)

	post, err := store.PostBySlug(context.Background(), "binomial-normal-approximation")
	require.NoError(t, err)
	assert.Contains(t, post.Body, "normal")

	_, err = store.PostBySlug(context.Background(), "no-such-post")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestStore_PublicationsNewestFirst(t *testing.T) {
	store, err := NewStore()
	require.NoError(t, err)

	pubs, err := store.ListPublications(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, pubs)
	for i := 1; i < len(pubs); i++ {
		assert.GreaterOrEqual(t, pubs[i-1].Year, pubs[i].Year)
	}
}

func TestStore_Profile(t *testing.T) {
	store, err := NewStore()
	require.NoError(t, err)

	profile, err := store.Profile(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, profile.Name)
	assert.NotEmpty(t, profile.Bio)
}
