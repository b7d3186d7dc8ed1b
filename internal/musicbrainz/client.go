package musicbrainz

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/handiism/albumrate/internal/model"
)

// ErrUnavailable is returned when the MusicBrainz lookup cannot be
// completed, whether from transport failure or an unexpected response.
// Callers treat it as recoverable and may retry the same action.
var ErrUnavailable = errors.New("musicbrainz unavailable")

// TypeAlbum is the release-group primary type this tool cares about.
const TypeAlbum = "Album"

// browsePageSize is the maximum page size the MusicBrainz browse API
// allows per request.
const browsePageSize = 100

// ReleaseGroup is one release group of an artist as reported by the
// browse API.
type ReleaseGroup struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	FirstReleaseDate string `json:"first-release-date"`
	PrimaryType      string `json:"primary-type"`
}

// Catalog defines the MusicBrainz operations the navigation controller
// consumes. Tests substitute an in-memory implementation.
type Catalog interface {
	SearchArtists(ctx context.Context, query string) ([]model.Artist, error)
	ReleaseGroups(ctx context.Context, artistID string) ([]ReleaseGroup, error)
}

// Client talks to the MusicBrainz ws/2 JSON API.
type Client struct {
	baseURL     string
	userAgent   string
	searchLimit int
	httpClient  *http.Client
}

var _ Catalog = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithSearchLimit caps the number of artist search results requested.
func WithSearchLimit(limit int) Option {
	return func(c *Client) {
		if limit > 0 {
			c.searchLimit = limit
		}
	}
}

// New creates a MusicBrainz client. The user agent is mandatory; the
// MusicBrainz API rejects anonymous clients.
func New(baseURL, userAgent string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("musicbrainz base url required")
	}
	userAgent = strings.TrimSpace(userAgent)
	if userAgent == "" {
		return nil, errors.New("musicbrainz user agent required")
	}

	client := &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		userAgent:   userAgent,
		searchLimit: 25,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

type artistSearchResponse struct {
	Artists []struct {
		ID             string `json:"id"`
		Name           string `json:"name"`
		Disambiguation string `json:"disambiguation"`
	} `json:"artists"`
}

// SearchArtists queries the artist search index and returns matches in
// relevance order.
func (c *Client) SearchArtists(ctx context.Context, query string) ([]model.Artist, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("query must not be empty")
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("fmt", "json")
	params.Set("limit", strconv.Itoa(c.searchLimit))

	var payload artistSearchResponse
	if err := c.get(ctx, "/ws/2/artist", params, &payload); err != nil {
		return nil, fmt.Errorf("search artists %q: %w", query, err)
	}

	artists := make([]model.Artist, 0, len(payload.Artists))
	for _, a := range payload.Artists {
		artists = append(artists, model.Artist{
			ID:             a.ID,
			Name:           a.Name,
			Disambiguation: a.Disambiguation,
		})
	}
	return artists, nil
}

type releaseGroupBrowseResponse struct {
	ReleaseGroups []ReleaseGroup `json:"release-groups"`
	Count         int            `json:"release-group-count"`
	Offset        int            `json:"release-group-offset"`
}

// ReleaseGroups browses every release group of an artist, following the
// API's offset pagination until the reported total is reached. No type
// filtering happens here; the caller decides which primary types matter.
func (c *Client) ReleaseGroups(ctx context.Context, artistID string) ([]ReleaseGroup, error) {
	artistID = strings.TrimSpace(artistID)
	if artistID == "" {
		return nil, errors.New("artist id must not be empty")
	}

	var groups []ReleaseGroup
	for offset := 0; ; {
		params := url.Values{}
		params.Set("artist", artistID)
		params.Set("fmt", "json")
		params.Set("limit", strconv.Itoa(browsePageSize))
		params.Set("offset", strconv.Itoa(offset))

		var payload releaseGroupBrowseResponse
		if err := c.get(ctx, "/ws/2/release-group", params, &payload); err != nil {
			return nil, fmt.Errorf("browse release groups for %s: %w", artistID, err)
		}

		groups = append(groups, payload.ReleaseGroups...)
		offset += len(payload.ReleaseGroups)
		if offset >= payload.Count || len(payload.ReleaseGroups) == 0 {
			break
		}
	}

	return groups, nil
}

// get performs one API request and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	endpoint, err := url.Parse(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("parse url: %w", err)
	}
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s returned %d", ErrUnavailable, path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
	}
	return nil
}
