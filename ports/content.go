package ports

import (
	"context"

	"statfolio/domain/content"
)

// ContentRepository serves the site's editorial content: the bio, the
// publication list, and the analysis posts.
type ContentRepository interface {
	Profile(ctx context.Context) (content.Profile, error)
	ListPublications(ctx context.Context) ([]content.Publication, error)
	ListPosts(ctx context.Context) ([]content.Post, error)
	PostBySlug(ctx context.Context, slug string) (content.Post, error)
}

// ContentWriter is the optional write side, implemented by stores that
// persist content (the in-memory store seeds itself instead).
type ContentWriter interface {
	SaveProfile(ctx context.Context, profile content.Profile) error
	SavePublication(ctx context.Context, pub content.Publication) error
	SavePost(ctx context.Context, post content.Post) error
}
