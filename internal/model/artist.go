package model

// Artist represents a single artist search result from the metadata catalog.
//
// Artists are value objects: they are created from catalog lookups and never
// modified afterwards. The ID is the catalog's stable identifier (a
// MusicBrainz MBID in practice) and is the key under which ratings are
// grouped in the local database.
type Artist struct {
	// ID is the opaque stable identifier assigned by the metadata catalog.
	ID string

	// Name is the artist's display name.
	Name string

	// Disambiguation is a short qualifier distinguishing same-named
	// artists ("UK rock band", "producer"). May be empty.
	Disambiguation string
}
