package artifactory

import (
	"context"
	"fmt"
	"net/url"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/devops-sherpas/jfrog-sagen/internal/api"
)

// Repository is one repository descriptor as returned by the Artifactory
// repositories endpoint.
type Repository struct {
	Key         string `json:"key"`
	Type        string `json:"type"`
	URL         string `json:"url,omitempty"`
	PackageType string `json:"packageType,omitempty"`
}

// Item is one file entry of a repository storage listing. SHA2 is the SHA-256
// checksum; the field name follows the Artifactory API.
type Item struct {
	URI  string `json:"uri"`
	SHA1 string `json:"sha1"`
	SHA2 string `json:"sha2"`
	Size int64  `json:"size,omitempty"`
}

// Client talks to the Artifactory REST API of a single site.
type Client struct {
	client *api.Client
	logger zerolog.Logger
}

// NewClient creates a client for one site authenticated with a bearer token.
func NewClient(baseURL, token string) *Client {
	return &Client{
		client: api.NewClient(baseURL, nil, api.NewBearerAuthorizer(token)),
		logger: log.With().Str("component", "artifactory").Str("url", baseURL).Logger(),
	}
}

// ListRepositories returns every repository on the site keyed by repository key.
func (c *Client) ListRepositories(ctx context.Context) (map[string]Repository, error) {
	var repositories []Repository
	if err := c.client.GetJSON(ctx, "/artifactory/api/repositories", nil, &repositories); err != nil {
		return nil, fmt.Errorf("list repositories: %w", err)
	}
	c.logger.Debug().Int("count", len(repositories)).Msg("Listed repositories")
	byKey := make(map[string]Repository, len(repositories))
	for _, repository := range repositories {
		byKey[repository.Key] = repository
	}
	return byKey, nil
}

// ListItems returns a deep file listing of one repository keyed by item URI.
// Folders and the root path entry are excluded.
func (c *Client) ListItems(ctx context.Context, repository string) (map[string]Item, error) {
	query := url.Values{}
	query.Set("list", "")
	query.Set("deep", "1")
	query.Set("listFolders", "0")
	query.Set("mdTimestamps", "0")
	query.Set("includeRootPath", "0")

	var listing struct {
		Files []Item `json:"files"`
	}
	if err := c.client.GetJSON(ctx, "/artifactory/api/storage/"+repository, query, &listing); err != nil {
		return nil, fmt.Errorf("list items of repository %s: %w", repository, err)
	}
	c.logger.Debug().Str("repository", repository).Int("count", len(listing.Files)).Msg("Listed items")
	byURI := make(map[string]Item, len(listing.Files))
	for _, item := range listing.Files {
		byURI[item.URI] = item
	}
	return byURI, nil
}
