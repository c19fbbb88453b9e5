package github

import (
	"context"
	"errors"
	"time"
)

// ErrNoUpstreamProfile means GitHub answered but has no listing for the
// username. Distinct from transport failures, which surface as plain errors.
var ErrNoUpstreamProfile = errors.New("no github profile found")

type RepoSummary struct {
	Name        string    `json:"name"`
	HTMLURL     string    `json:"html_url"`
	Description string    `json:"description"`
	Stars       int       `json:"stargazers_count"`
	Watchers    int       `json:"watchers_count"`
	Forks       int       `json:"forks_count"`
	CreatedAt   time.Time `json:"created_at"`
}

type Lister interface {
	ListRepos(ctx context.Context, username string) ([]RepoSummary, error)
}
