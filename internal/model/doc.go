// Package model defines the core entities of albumrate.
//
// # Artist
//
// Artist is an immutable value built from a catalog search result:
//
//	artist := model.Artist{ID: mbid, Name: "Boards of Canada"}
//
// # Album
//
// Album carries the catalog identity of an album-type release group plus
// the user's rating, which is the only state this program mutates:
//
//	album, err := model.NewAlbum(mbid, "Geogaddi", "2002-02-18")
//	// album.ReleaseYear == 2002, album.Rating == nil
//
// Ratings are integers in [1, 10]; a nil Rating means the album has never
// been rated. Rating mutation rules live in the rating package.
package model
