// Package content provides the embedded content store: the bio,
// publication list, and analysis posts compiled into the binary.
package content

import (
	"context"
	"embed"
	"fmt"
	"sort"
	"time"

	"statfolio/domain/content"
	"statfolio/domain/core"
	"statfolio/ports"
)

//go:embed seed/*.md
var seedFS embed.FS

// Store is an immutable in-memory content repository seeded at startup.
// It is the default when no DATABASE_URL is configured.
type Store struct {
	profile      content.Profile
	publications []content.Publication
	posts        map[string]content.Post // by slug
}

var _ ports.ContentRepository = (*Store)(nil)

// NewStore builds the store from the embedded seed content.
func NewStore() (*Store, error) {
	posts := make(map[string]content.Post)
	for _, seed := range seedPosts() {
		body, err := seedFS.ReadFile("seed/" + seed.file)
		if err != nil {
			return nil, fmt.Errorf("missing seed post %s: %w", seed.file, err)
		}
		post := seed.post
		post.ID = core.PostID(core.NewID())
		post.Body = string(body)
		posts[post.Slug] = post
	}

	return &Store{
		profile:      seedProfile(),
		publications: seedPublications(),
		posts:        posts,
	}, nil
}

// Profile returns the site owner's bio.
func (s *Store) Profile(ctx context.Context) (content.Profile, error) {
	return s.profile, nil
}

// ListPublications returns publications, newest first.
func (s *Store) ListPublications(ctx context.Context) ([]content.Publication, error) {
	pubs := make([]content.Publication, len(s.publications))
	copy(pubs, s.publications)
	sort.Slice(pubs, func(i, j int) bool {
		if pubs[i].Year != pubs[j].Year {
			return pubs[i].Year > pubs[j].Year
		}
		return pubs[i].Title < pubs[j].Title
	})
	return pubs, nil
}

// ListPosts returns posts, newest first.
func (s *Store) ListPosts(ctx context.Context) ([]content.Post, error) {
	posts := make([]content.Post, 0, len(s.posts))
	for _, post := range s.posts {
		posts = append(posts, post)
	}
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].Published.After(posts[j].Published)
	})
	return posts, nil
}

// PostBySlug returns one post or ErrNotFound.
func (s *Store) PostBySlug(ctx context.Context, slug string) (content.Post, error) {
	post, ok := s.posts[slug]
	if !ok {
		return content.Post{}, core.NewNotFoundError("post", slug)
	}
	return post, nil
}

type seedPost struct {
	file string
	post content.Post
}

func seedPosts() []seedPost {
	return []seedPost{
		{
			file: "binomial-normal-approximation.md",
			post: content.Post{
				Slug:      "binomial-normal-approximation",
				Title:     "How Good Is the Normal Approximation to the Binomial?",
				Summary:   "Putting numbers on the success-failure rule of thumb, from fair coins to rare defects.",
				Tags:      []string{"statistics", "probability"},
				Published: time.Date(2024, 3, 18, 0, 0, 0, 0, time.UTC),
			},
		},
		{
			file: "lithuanian-quarterly-trade.md",
			post: content.Post{
				Slug:      "lithuanian-quarterly-trade",
				Title:     "Reshaping Lithuania's Quarterly Trade Figures",
				Summary:   "From a wide spreadsheet to joined import/export series, balances, and growth rates.",
				Tags:      []string{"trade", "data-wrangling"},
				Published: time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC),
			},
		},
	}
}

func seedProfile() content.Profile {
	return content.Profile{
		Name:        "Rasa Vilkienė",
		Title:       "Applied Statistician",
		Affiliation: "Vilnius University",
		Email:       "rasa.vilkiene@example.org",
		Bio: "I work on applied probability and official statistics. This site " +
			"collects my publications and a few analysis notes where the " +
			"computations behind each figure run live.",
		Links: []content.Link{
			{Label: "ORCID", URL: "https://orcid.org/0000-0002-1825-0097"},
			{Label: "GitHub", URL: "https://github.com/rvilkiene"},
		},
	}
}

func seedPublications() []content.Publication {
	newID := func() core.PublicationID { return core.PublicationID(core.NewID()) }
	return []content.Publication{
		{
			ID:      newID(),
			Title:   "Error Bounds for Normal Approximations of Discrete Distributions in Small Samples",
			Authors: "R. Vilkienė, J. Petrauskas",
			Venue:   "Lithuanian Journal of Statistics",
			Year:    2023,
			DOI:     "10.15388/LJS.2023.31204",
		},
		{
			ID:      newID(),
			Title:   "Quarterly Trade Flow Decomposition for Small Open Economies",
			Authors: "R. Vilkienė",
			Venue:   "Baltic Journal of Economics",
			Year:    2022,
			DOI:     "10.1080/1406099X.2022.208841",
		},
		{
			ID:      newID(),
			Title:   "Teaching Hypothesis Testing with Live Computation",
			Authors: "R. Vilkienė, A. Kazlauskaitė",
			Venue:   "Journal of Statistics and Data Science Education",
			Year:    2024,
		},
	}
}
