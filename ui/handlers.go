package ui

import (
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"

	"statfolio/app"
	"statfolio/domain/content"
	"statfolio/domain/core"
)

type homeData struct {
	Profile content.Profile
	BioHTML template.HTML
	Posts   []content.Post
}

func (a *App) handleHome(w http.ResponseWriter, r *http.Request) {
	profile, err := a.repo.Profile(r.Context())
	if err != nil {
		a.log.Error("load profile: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	posts, err := a.repo.ListPosts(r.Context())
	if err != nil {
		a.log.Error("list posts: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	a.renderPage(w, "index.html", homeData{
		Profile: profile,
		BioHTML: renderMarkdown(profile.Bio),
		Posts:   posts,
	})
}

func (a *App) handlePublications(w http.ResponseWriter, r *http.Request) {
	pubs, err := a.repo.ListPublications(r.Context())
	if err != nil {
		a.log.Error("list publications: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	a.renderPage(w, "publications.html", struct {
		Publications []content.Publication
	}{pubs})
}

func (a *App) handlePosts(w http.ResponseWriter, r *http.Request) {
	posts, err := a.repo.ListPosts(r.Context())
	if err != nil {
		a.log.Error("list posts: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	a.renderPage(w, "posts.html", struct {
		Posts []content.Post
	}{posts})
}

type postData struct {
	Post     content.Post
	BodyHTML template.HTML

	// Computed appendices; either may be nil depending on the post.
	Approximation *app.ApproximationReport
	Trade         *app.TradeReport
}

func (a *App) handlePost(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	post, err := a.repo.PostBySlug(r.Context(), slug)
	if core.IsNotFoundError(err) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		a.log.Error("load post %s: %v", slug, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	data := postData{Post: post, BodyHTML: renderMarkdown(post.Body)}

	// The analysis posts end with live-computed tables.
	switch slug {
	case "binomial-normal-approximation":
		report, err := a.reports.ApproximationReport(r.Context(), app.DefaultGrid())
		if err != nil {
			a.log.Error("approximation report: %v", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		data.Approximation = &report
	case "lithuanian-quarterly-trade":
		report, err := a.reports.TradeReport(r.Context())
		if err != nil {
			a.log.Error("trade report: %v", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		data.Trade = &report
	}

	a.renderPage(w, "post.html", data)
}
