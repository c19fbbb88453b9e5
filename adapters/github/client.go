package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/minhvu/devconnect/internal/config"
	domain "github.com/minhvu/devconnect/internal/domain/github"
	"github.com/minhvu/devconnect/pkg/logger"
)

const listingPageSize = 5

// Client lists a user's public repositories, page size 5, oldest first. The
// http.Client is injected so tests can point it at a local server.
type Client struct {
	httpClient *http.Client
	logger     logger.Logger
	baseURL    string
	token      string
}

func NewClient(httpClient *http.Client, cfg config.Config, log logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log,
		baseURL:    cfg.GitHub.APIBaseURL,
		token:      cfg.GitHub.Token,
	}
}

func (c *Client) ListRepos(ctx context.Context, username string) ([]domain.RepoSummary, error) {
	reqURL, err := url.Parse(fmt.Sprintf("%s/users/%s/repos", c.baseURL, url.PathEscape(username)))
	if err != nil {
		return nil, fmt.Errorf("failed to build github listing URL: %w", err)
	}

	q := reqURL.Query()
	q.Set("per_page", fmt.Sprintf("%d", listingPageSize))
	q.Set("sort", "created")
	q.Set("direction", "asc")
	reqURL.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create github request: %w", err)
	}
	req.Header.Set("User-Agent", "devconnect-api")
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("GitHub listing request failed", err, zap.String("username", username))
		return nil, fmt.Errorf("github request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("GitHub returned non-success status",
			zap.Int("http_status", resp.StatusCode),
			zap.String("username", username),
		)
		return nil, domain.ErrNoUpstreamProfile
	}

	var repos []domain.RepoSummary
	if err := json.NewDecoder(resp.Body).Decode(&repos); err != nil {
		c.logger.Error("Failed to decode GitHub listing response", err, zap.String("username", username))
		return nil, fmt.Errorf("failed to decode github response: %w", err)
	}

	return repos, nil
}
