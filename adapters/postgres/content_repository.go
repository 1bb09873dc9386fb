// Package postgres persists site content for deployments that want
// publications and posts editable without a rebuild.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"statfolio/domain/content"
	"statfolio/domain/core"
	"statfolio/ports"

	"github.com/jmoiron/sqlx"
)

const schema = `
CREATE TABLE IF NOT EXISTS profiles (
	id          SERIAL PRIMARY KEY,
	name        TEXT NOT NULL,
	title       TEXT NOT NULL DEFAULT '',
	affiliation TEXT NOT NULL DEFAULT '',
	email       TEXT NOT NULL DEFAULT '',
	bio         TEXT NOT NULL DEFAULT '',
	links       JSONB NOT NULL DEFAULT '[]'
);

CREATE TABLE IF NOT EXISTS publications (
	id      UUID PRIMARY KEY,
	title   TEXT NOT NULL,
	authors TEXT NOT NULL,
	venue   TEXT NOT NULL DEFAULT '',
	year    INT NOT NULL,
	doi     TEXT NOT NULL DEFAULT '',
	url     TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS posts (
	id        UUID PRIMARY KEY,
	slug      TEXT NOT NULL UNIQUE,
	title     TEXT NOT NULL,
	summary   TEXT NOT NULL DEFAULT '',
	body      TEXT NOT NULL,
	tags      TEXT NOT NULL DEFAULT '',
	published TIMESTAMPTZ NOT NULL
);
`

// ContentRepositoryImpl implements ports.ContentRepository for PostgreSQL
type ContentRepositoryImpl struct {
	db *sqlx.DB
}

// NewContentRepository creates a new PostgreSQL content repository
func NewContentRepository(db *sqlx.DB) *ContentRepositoryImpl {
	return &ContentRepositoryImpl{db: db}
}

var _ ports.ContentRepository = (*ContentRepositoryImpl)(nil)
var _ ports.ContentWriter = (*ContentRepositoryImpl)(nil)

// EnsureSchema creates the content tables if they do not exist
func (r *ContentRepositoryImpl) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, schema)
	return err
}

// Profile returns the single site profile row
func (r *ContentRepositoryImpl) Profile(ctx context.Context) (content.Profile, error) {
	var row struct {
		Name        string `db:"name"`
		Title       string `db:"title"`
		Affiliation string `db:"affiliation"`
		Email       string `db:"email"`
		Bio         string `db:"bio"`
		Links       []byte `db:"links"`
	}
	err := r.db.GetContext(ctx, &row, `
		SELECT name, title, affiliation, email, bio, links
		FROM profiles
		ORDER BY id
		LIMIT 1
	`)
	if err == sql.ErrNoRows {
		return content.Profile{}, core.ErrProfileNotFound
	}
	if err != nil {
		return content.Profile{}, err
	}

	profile := content.Profile{
		Name:        row.Name,
		Title:       row.Title,
		Affiliation: row.Affiliation,
		Email:       row.Email,
		Bio:         row.Bio,
	}
	if len(row.Links) > 0 {
		if err := json.Unmarshal(row.Links, &profile.Links); err != nil {
			return content.Profile{}, err
		}
	}
	return profile, nil
}

// SaveProfile upserts the site profile
func (r *ContentRepositoryImpl) SaveProfile(ctx context.Context, profile content.Profile) error {
	links, err := json.Marshal(profile.Links)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO profiles (id, name, title, affiliation, email, bio, links)
		VALUES (1, $1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			title = EXCLUDED.title,
			affiliation = EXCLUDED.affiliation,
			email = EXCLUDED.email,
			bio = EXCLUDED.bio,
			links = EXCLUDED.links
	`, profile.Name, profile.Title, profile.Affiliation, profile.Email, profile.Bio, links)
	return err
}

// ListPublications returns all publications, newest first
func (r *ContentRepositoryImpl) ListPublications(ctx context.Context) ([]content.Publication, error) {
	var pubs []content.Publication
	err := r.db.SelectContext(ctx, &pubs, `
		SELECT id, title, authors, venue, year, doi, url
		FROM publications
		ORDER BY year DESC, title ASC
	`)
	return pubs, err
}

// SavePublication upserts a publication by ID
func (r *ContentRepositoryImpl) SavePublication(ctx context.Context, pub content.Publication) error {
	if pub.ID == "" {
		pub.ID = core.PublicationID(core.NewID())
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO publications (id, title, authors, venue, year, doi, url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			authors = EXCLUDED.authors,
			venue = EXCLUDED.venue,
			year = EXCLUDED.year,
			doi = EXCLUDED.doi,
			url = EXCLUDED.url
	`, pub.ID.String(), pub.Title, pub.Authors, pub.Venue, pub.Year, pub.DOI, pub.URL)
	return err
}

// ListPosts returns all posts, newest first
func (r *ContentRepositoryImpl) ListPosts(ctx context.Context) ([]content.Post, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, slug, title, summary, body, tags, published
		FROM posts
		ORDER BY published DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []content.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

// PostBySlug returns one post by its URL slug
func (r *ContentRepositoryImpl) PostBySlug(ctx context.Context, slug string) (content.Post, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, slug, title, summary, body, tags, published
		FROM posts
		WHERE slug = $1
	`, slug)
	if err != nil {
		return content.Post{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		return content.Post{}, core.NewNotFoundError("post", slug)
	}
	return scanPost(rows)
}

// SavePost upserts a post by slug
func (r *ContentRepositoryImpl) SavePost(ctx context.Context, post content.Post) error {
	if post.ID == "" {
		post.ID = core.PostID(core.NewID())
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO posts (id, slug, title, summary, body, tags, published)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (slug) DO UPDATE SET
			title = EXCLUDED.title,
			summary = EXCLUDED.summary,
			body = EXCLUDED.body,
			tags = EXCLUDED.tags,
			published = EXCLUDED.published
	`, post.ID.String(), post.Slug, post.Title, post.Summary, post.Body,
		strings.Join(post.Tags, ","), post.Published)
	return err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPost(rows rowScanner) (content.Post, error) {
	var (
		post content.Post
		id   string
		tags string
	)
	err := rows.Scan(&id, &post.Slug, &post.Title, &post.Summary, &post.Body, &tags, &post.Published)
	if err != nil {
		return content.Post{}, err
	}
	post.ID = core.PostID(id)
	if tags != "" {
		post.Tags = strings.Split(tags, ",")
	}
	return post, nil
}
