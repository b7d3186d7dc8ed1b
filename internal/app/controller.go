package app

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/handiism/albumrate/internal/model"
	"github.com/handiism/albumrate/internal/musicbrainz"
	"github.com/handiism/albumrate/internal/rating"
	"github.com/handiism/albumrate/internal/selection"
	"github.com/handiism/albumrate/internal/store"
)

// defaultTimeout bounds every outbound catalog and store call so a dead
// network cannot hang the UI forever.
const defaultTimeout = 15 * time.Second

// Controller is the navigation state machine. It receives semantic key
// events (OnDown, OnRight, ...) and moves between the artist list, the
// album list, and a rating edit session.
//
// Every method takes the controller lock, so blocking port calls made
// during drill-in or commit finish before the next event mutates state.
type Controller struct {
	mu sync.Mutex

	catalog musicbrainz.Catalog
	gateway store.Gateway
	log     *logrus.Logger
	timeout time.Duration

	mode    Mode
	artists *selection.List[model.Artist]
	albums  *selection.List[*model.Album]
	rated   *selection.List[RatedAlbum]
	edit    *editSession
}

// Option configures a Controller.
type Option func(*Controller)

// WithTimeout overrides the per-call timeout applied to catalog and
// store operations.
func WithTimeout(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger overrides the default discarding logger.
func WithLogger(log *logrus.Logger) Option {
	return func(c *Controller) {
		if log != nil {
			c.log = log
		}
	}
}

// NewBrowser creates a controller browsing artist search results.
// The artists slice must be non-empty; callers surface an empty search
// result to the user before ever constructing a controller.
func NewBrowser(artists []model.Artist, catalog musicbrainz.Catalog, gateway store.Gateway, opts ...Option) *Controller {
	c := newController(gateway, opts)
	c.catalog = catalog
	c.mode = ModeArtists
	c.artists = selection.NewList(artists)
	return c
}

// NewRatedBrowser creates a controller browsing previously rated albums.
// No catalog access happens in this mode; commits rewrite existing rows.
func NewRatedBrowser(items []RatedAlbum, gateway store.Gateway, opts ...Option) *Controller {
	c := newController(gateway, opts)
	c.mode = ModeRated
	c.rated = selection.NewList(items)
	return c
}

func newController(gateway store.Gateway, opts []Option) *Controller {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	c := &Controller{
		gateway: gateway,
		log:     discard,
		timeout: defaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Mode reports the current navigation mode.
func (c *Controller) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// ArtistRows returns the artist list and the selected index for rendering.
func (c *Controller) ArtistRows() ([]model.Artist, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.artists == nil {
		return nil, 0
	}
	return c.artists.Items(), c.artists.Selected()
}

// AlbumRows returns the album list and the selected index for rendering.
func (c *Controller) AlbumRows() ([]*model.Album, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.albums == nil {
		return nil, 0
	}
	return c.albums.Items(), c.albums.Selected()
}

// RatedRows returns the rated-albums list and the selected index.
func (c *Controller) RatedRows() ([]RatedAlbum, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.rated == nil {
		return nil, 0
	}
	return c.rated.Items(), c.rated.Selected()
}

// SelectedArtist returns the artist under the cursor.
func (c *Controller) SelectedArtist() (model.Artist, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.artists == nil {
		return model.Artist{}, selection.ErrEmptyList
	}
	return c.artists.Current()
}

// CanQuit reports whether the quit key is accepted right now. Quitting is
// refused during an edit session; the user resolves it with enter or
// escape first.
func (c *Controller) CanQuit() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode != ModeEditing
}

// OnDown moves the selection down in the active list. Ignored while
// editing.
func (c *Controller) OnDown() {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.mode {
	case ModeArtists:
		c.artists.Next()
	case ModeAlbums:
		c.albums.Next()
	case ModeRated:
		c.rated.Next()
	}
}

// OnUp moves the selection up in the active list. Ignored while editing.
func (c *Controller) OnUp() {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.mode {
	case ModeArtists:
		c.artists.Prev()
	case ModeAlbums:
		c.albums.Prev()
	case ModeRated:
		c.rated.Prev()
	}
}

// OnRight handles the l / right-arrow key: drill into the selected artist,
// begin an edit on the selected album, or raise the rating mid-session.
func (c *Controller) OnRight(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.mode {
	case ModeArtists:
		return c.drillIn(ctx)
	case ModeAlbums, ModeRated:
		return c.beginEdit()
	case ModeEditing:
		rating.Increment(c.edit.album)
	}
	return nil
}

// OnLeft handles the h / left-arrow key: lower the rating mid-session, or
// drill back out of the album list. The album list is discarded whole; it
// is rebuilt from the catalog and the store on the next drill-in, so only
// committed ratings survive.
func (c *Controller) OnLeft() {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.mode {
	case ModeEditing:
		rating.Decrement(c.edit.album)
	case ModeAlbums:
		c.albums = nil
		c.mode = ModeArtists
	}
}

// OnEnter handles the enter key: drill in from the artist list, begin an
// edit on an album, or commit the active edit session.
func (c *Controller) OnEnter(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.mode {
	case ModeArtists:
		return c.drillIn(ctx)
	case ModeAlbums, ModeRated:
		return c.beginEdit()
	case ModeEditing:
		return c.commit(ctx)
	}
	return nil
}

// OnEscape cancels the active edit session, restoring the rating the
// album had when the session began. Ignored outside a session.
func (c *Controller) OnEscape() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.mode != ModeEditing {
		return
	}

	rating.Cancel(c.edit.album, c.edit.previous)
	c.mode = c.edit.from
	c.edit = nil
}

// OnDigit applies a direct rating: 1-9 set that value, 0 sets 10.
// Ignored outside an edit session.
func (c *Controller) OnDigit(digit int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.mode != ModeEditing {
		return
	}
	rating.SetDirect(c.edit.album, digit)
}

// drillIn fetches the selected artist's album-type release groups and
// merges in any ratings already on record. On failure the controller
// stays in the artist list so the user can retry.
func (c *Controller) drillIn(ctx context.Context) error {
	artist, err := c.artists.Current()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var (
		groups  []musicbrainz.ReleaseGroup
		ratings map[string]int
	)

	// The catalog fetch and the local ratings read are independent.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		groups, err = c.catalog.ReleaseGroups(gctx, artist.ID)
		return err
	})
	g.Go(func() error {
		var err error
		ratings, err = c.gateway.Ratings(gctx, artist.ID)
		return err
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("load albums for %s: %w", artist.Name, err)
	}

	albums := make([]*model.Album, 0, len(groups))
	for _, rg := range groups {
		if rg.PrimaryType != musicbrainz.TypeAlbum {
			continue
		}
		if rg.FirstReleaseDate == "" {
			// Unreleased or undated groups have nothing to show in
			// the (year) column; skip them.
			c.log.WithField("release_group", rg.ID).Warn("skipping release group without release date")
			continue
		}

		album, err := model.NewAlbum(rg.ID, rg.Title, rg.FirstReleaseDate)
		if err != nil {
			return fmt.Errorf("release group %s: %w", rg.ID, err)
		}
		if r, ok := ratings[album.ID]; ok {
			album.Rating = &r
		}
		albums = append(albums, album)
	}

	c.log.WithFields(logrus.Fields{
		"artist": artist.Name,
		"albums": len(albums),
	}).Debug("drill-in complete")

	c.albums = selection.NewList(albums)
	c.mode = ModeAlbums
	return nil
}

// beginEdit opens a rating edit session on the selected album.
func (c *Controller) beginEdit() error {
	var (
		album  *model.Album
		artist model.Artist
	)

	switch c.mode {
	case ModeAlbums:
		a, err := c.albums.Current()
		if err != nil {
			return err
		}
		owner, err := c.artists.Current()
		if err != nil {
			return err
		}
		album, artist = a, owner
	case ModeRated:
		row, err := c.rated.Current()
		if err != nil {
			return err
		}
		album, artist = row.Album, row.Artist
	default:
		return nil
	}

	previous := rating.Begin(album)
	c.edit = &editSession{
		album:    album,
		artist:   artist,
		previous: previous,
		from:     c.mode,
	}
	c.mode = ModeEditing
	return nil
}

// commit persists the session's rating. On a store failure the session
// stays open with BeingRated still set, so the user can retry enter or
// fall back to escape.
func (c *Controller) commit(ctx context.Context) error {
	s := c.edit

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.gateway.EnsureArtist(ctx, s.artist.ID, s.artist.Name); err != nil {
		return fmt.Errorf("save artist %s: %w", s.artist.Name, err)
	}
	if err := c.gateway.UpsertAlbum(ctx, s.album.ID, s.artist.ID, s.album.Title, s.album.ReleaseYear, *s.album.Rating); err != nil {
		return fmt.Errorf("save rating for %s: %w", s.album.Title, err)
	}

	c.log.WithFields(logrus.Fields{
		"album":  s.album.Title,
		"rating": *s.album.Rating,
	}).Info("rating committed")

	rating.Commit(s.album)
	c.mode = s.from
	c.edit = nil
	return nil
}
