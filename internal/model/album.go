package model

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrInvalidMetadata is returned when the metadata catalog supplies data
// the model cannot interpret, such as a release date with no leading year.
var ErrInvalidMetadata = errors.New("invalid catalog metadata")

// Album represents one album-type release group of an artist.
//
// ID and Title come from the metadata catalog and are immutable.
// Rating and BeingRated are the only mutable fields, and only the
// navigation controller and the rating editor touch them.
type Album struct {
	// ID is the opaque stable identifier assigned by the metadata catalog.
	ID string

	// Title is the album title.
	Title string

	// ReleaseYear is the year component of the album's first release date.
	ReleaseYear int

	// Rating is the user's rating in [1, 10]. Nil means never rated.
	Rating *int

	// BeingRated marks the album as the target of an active edit session.
	// Transient UI state, never persisted.
	BeingRated bool
}

// NewAlbum builds an Album from catalog fields. The release date may be a
// bare year, year-month, or a full date; the leading year component is
// extracted in every case.
func NewAlbum(id, title, releaseDate string) (*Album, error) {
	year, err := ParseReleaseYear(releaseDate)
	if err != nil {
		return nil, err
	}

	return &Album{
		ID:          id,
		Title:       title,
		ReleaseYear: year,
	}, nil
}

// ParseReleaseYear extracts the leading year from a release date string.
//
// MusicBrainz reports first-release dates at whatever precision it knows:
// "1997", "1997-06", or "1997-06-16". All three yield 1997. A string with
// no leading numeric year yields ErrInvalidMetadata.
func ParseReleaseYear(releaseDate string) (int, error) {
	end := 0
	for end < len(releaseDate) && releaseDate[end] >= '0' && releaseDate[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, fmt.Errorf("%w: release date %q has no leading year", ErrInvalidMetadata, releaseDate)
	}

	year, err := strconv.Atoi(releaseDate[:end])
	if err != nil {
		return 0, fmt.Errorf("%w: release date %q: %v", ErrInvalidMetadata, releaseDate, err)
	}

	return year, nil
}
