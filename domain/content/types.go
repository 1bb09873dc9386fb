package content

import (
	"time"

	"statfolio/domain/core"
)

// Profile is the site owner's bio shown on the homepage.
type Profile struct {
	Name        string `json:"name"`
	Title       string `json:"title"`
	Affiliation string `json:"affiliation"`
	Email       string `json:"email"`
	Bio         string `json:"bio"` // markdown
	Links       []Link `json:"links,omitempty"`
}

// Link is a labelled external URL (ORCID, GitHub, ...).
type Link struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Publication is one entry of the publication list.
type Publication struct {
	ID      core.PublicationID `json:"id" db:"id"`
	Title   string             `json:"title" db:"title"`
	Authors string             `json:"authors" db:"authors"`
	Venue   string             `json:"venue" db:"venue"`
	Year    int                `json:"year" db:"year"`
	DOI     string             `json:"doi,omitempty" db:"doi"`
	URL     string             `json:"url,omitempty" db:"url"`
}

// Post is an analysis write-up. Body is markdown; rendering belongs to the
// UI layer.
type Post struct {
	ID        core.PostID `json:"id" db:"id"`
	Slug      string      `json:"slug" db:"slug"`
	Title     string      `json:"title" db:"title"`
	Summary   string      `json:"summary" db:"summary"`
	Body      string      `json:"body" db:"body"`
	Tags      []string    `json:"tags,omitempty"`
	Published time.Time   `json:"published" db:"published"`
}
