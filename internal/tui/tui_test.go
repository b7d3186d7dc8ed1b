package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/handiism/albumrate/internal/app"
	"github.com/handiism/albumrate/internal/config"
	"github.com/handiism/albumrate/internal/model"
	"github.com/handiism/albumrate/internal/musicbrainz"
)

type stubCatalog struct {
	artists []model.Artist
	groups  []musicbrainz.ReleaseGroup
}

func (s *stubCatalog) SearchArtists(ctx context.Context, query string) ([]model.Artist, error) {
	return s.artists, nil
}

func (s *stubCatalog) ReleaseGroups(ctx context.Context, artistID string) ([]musicbrainz.ReleaseGroup, error) {
	return s.groups, nil
}

type stubGateway struct {
	ratings map[string]int
}

func (s *stubGateway) EnsureArtist(ctx context.Context, id, name string) error { return nil }

func (s *stubGateway) UpsertAlbum(ctx context.Context, albumID, artistID, title string, year, rating int) error {
	if s.ratings == nil {
		s.ratings = make(map[string]int)
	}
	s.ratings[albumID] = rating
	return nil
}

func (s *stubGateway) Ratings(ctx context.Context, artistID string) (map[string]int, error) {
	return s.ratings, nil
}

func testDeps(catalog *stubCatalog, gateway *stubGateway) Deps {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return Deps{
		Catalog:  catalog,
		Gateway:  gateway,
		Settings: config.DefaultSettings(),
		Log:      log,
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func typeQuery(m Model, query string) Model {
	for _, r := range query {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(Model)
	}
	return m
}

func TestPromptSearchEntersBrowse(t *testing.T) {
	catalog := &stubCatalog{artists: []model.Artist{{ID: "a1", Name: "Seefeel"}}}
	m := NewPromptModel(testDeps(catalog, &stubGateway{}))

	m = typeQuery(m, "seefeel")
	next, _ := m.Update(key("enter"))
	m = next.(Model)

	if m.state != StateBrowse {
		t.Fatalf("state = %v, want browse", m.state)
	}
	if m.ctrl == nil || m.ctrl.Mode() != app.ModeArtists {
		t.Fatal("controller should be browsing artists")
	}
	if !strings.Contains(m.View(), "Seefeel") {
		t.Error("view should list the found artist")
	}
}

func TestPromptEmptyResultStaysInPrompt(t *testing.T) {
	m := NewPromptModel(testDeps(&stubCatalog{}, &stubGateway{}))

	m = typeQuery(m, "nobody")
	next, _ := m.Update(key("enter"))
	m = next.(Model)

	if m.state != StatePrompt {
		t.Fatalf("state = %v, want prompt", m.state)
	}
	if !strings.Contains(m.View(), "no artists found") {
		t.Errorf("view should report empty result, got:\n%s", m.View())
	}
}

func browseModel(t *testing.T) (Model, *stubGateway) {
	t.Helper()

	catalog := &stubCatalog{
		artists: []model.Artist{{ID: "a1", Name: "Seefeel", Disambiguation: "UK"}},
		groups: []musicbrainz.ReleaseGroup{
			{ID: "rg1", Title: "Quique", FirstReleaseDate: "1993-11", PrimaryType: "Album"},
			{ID: "rg2", Title: "Succour", FirstReleaseDate: "1995", PrimaryType: "Album"},
		},
	}
	gateway := &stubGateway{}
	deps := testDeps(catalog, gateway)
	ctrl := app.NewBrowser(catalog.artists, catalog, gateway)
	return NewBrowserModel(deps, ctrl), gateway
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(Model)
	}
	return m
}

func TestBrowseDrillInAndRate(t *testing.T) {
	m, gateway := browseModel(t)

	m = press(t, m, "l")
	if m.ctrl.Mode() != app.ModeAlbums {
		t.Fatalf("mode = %v, want albums", m.ctrl.Mode())
	}
	if view := m.View(); !strings.Contains(view, "(1993) Quique") {
		t.Errorf("album list should show year and title, got:\n%s", view)
	}

	m = press(t, m, "j", "enter", "8", "enter")
	if got := gateway.ratings["rg2"]; got != 8 {
		t.Errorf("persisted rating = %d, want 8", got)
	}
	if m.ctrl.Mode() != app.ModeAlbums {
		t.Errorf("mode = %v, want albums after commit", m.ctrl.Mode())
	}
}

func TestQuitIgnoredDuringEdit(t *testing.T) {
	m, _ := browseModel(t)

	m = press(t, m, "l", "enter")
	if m.ctrl.Mode() != app.ModeEditing {
		t.Fatalf("mode = %v, want editing", m.ctrl.Mode())
	}

	next, cmd := m.Update(key("q"))
	m = next.(Model)
	if cmd != nil {
		t.Error("q during an edit session must not quit")
	}

	m = press(t, m, "esc")
	_, cmd = m.Update(key("q"))
	if cmd == nil {
		t.Error("q after the session should quit")
	}
}

func TestStarRendering(t *testing.T) {
	tests := []struct {
		rating int
		want   string
	}{
		{1, "⯪☆☆☆☆"},
		{2, "★☆☆☆☆"},
		{7, "★★★⯪☆"},
		{10, "★★★★★"},
	}

	for _, tt := range tests {
		if got := renderStars(tt.rating); got != tt.want {
			t.Errorf("renderStars(%d) = %q, want %q", tt.rating, got, tt.want)
		}
	}
}

func TestVisibleWindow(t *testing.T) {
	tests := []struct {
		name                 string
		length, selected, max int
		wantStart, wantEnd   int
	}{
		{"fits entirely", 5, 2, 10, 0, 5},
		{"selection at top", 100, 0, 10, 0, 10},
		{"selection in middle", 100, 50, 10, 45, 55},
		{"selection at bottom", 100, 99, 10, 90, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := visibleWindow(tt.length, tt.selected, tt.max)
			if start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("visibleWindow(%d, %d, %d) = (%d, %d), want (%d, %d)",
					tt.length, tt.selected, tt.max, start, end, tt.wantStart, tt.wantEnd)
			}
			if tt.selected < start || tt.selected >= end {
				t.Error("selection fell outside the window")
			}
		})
	}
}
