package app

import "github.com/handiism/albumrate/internal/model"

// Mode identifies which view the controller is in. An edit session is
// only ever open while the mode is ModeEditing; the session carries the
// album and the pre-session rating, so the illegal "editing while
// browsing artists" combination cannot be expressed.
type Mode int

const (
	// ModeArtists browses the artist search results.
	ModeArtists Mode = iota

	// ModeAlbums browses the selected artist's albums.
	ModeAlbums

	// ModeRated browses every previously rated album (--rated view).
	ModeRated

	// ModeEditing is an active rating edit session on one album.
	ModeEditing
)

// String returns the mode name for logs.
func (m Mode) String() string {
	switch m {
	case ModeArtists:
		return "artists"
	case ModeAlbums:
		return "albums"
	case ModeRated:
		return "rated"
	case ModeEditing:
		return "editing"
	default:
		return "unknown"
	}
}

// editSession exists exactly while Mode == ModeEditing.
type editSession struct {
	album *model.Album

	// artist owns the album being edited; commit persists both rows.
	artist model.Artist

	// previous is the rating at session start, nil for never-rated.
	// Cancel restores it exactly.
	previous *int

	// from is the browse mode to return to on commit or cancel.
	from Mode
}

// RatedAlbum is one row of the rated-albums view: an album joined with
// the artist it was rated under.
type RatedAlbum struct {
	Artist model.Artist
	Album  *model.Album
}
