// Package rating implements the rules for mutating an album's rating
// during an edit session.
//
// A session starts with Begin and ends with either Commit or Cancel.
// Between those calls the album's BeingRated flag is set and digit or
// step mutations apply. Cancel restores the exact pre-session value,
// including the never-rated state; Commit leaves the value standing and
// the caller persists it.
package rating

import "github.com/handiism/albumrate/internal/model"

// Ratings are integers in [Min, Max]. There is no zero rating; the 0 key
// is input shorthand for Max.
const (
	Min = 1
	Max = 10
)

// Begin opens an edit session on album. A never-rated album starts at Min
// so the user always has a concrete value to adjust. The returned value is
// the rating at session start (nil when unrated) and must be handed back
// to Cancel to undo the session.
func Begin(album *model.Album) (previous *int) {
	previous = copyRating(album.Rating)
	album.BeingRated = true

	if album.Rating == nil {
		initial := Min
		album.Rating = &initial
	}

	return previous
}

// SetDirect applies a digit key press: 1 through 9 set that literal value,
// 0 sets Max. Digits outside 0..9 are ignored.
func SetDirect(album *model.Album, digit int) {
	if digit < 0 || digit > 9 {
		return
	}

	value := digit
	if digit == 0 {
		value = Max
	}
	album.Rating = &value
}

// Increment raises the rating by one, saturating at Max.
func Increment(album *model.Album) {
	if album.Rating != nil && *album.Rating < Max {
		*album.Rating++
	}
}

// Decrement lowers the rating by one, saturating at Min.
func Decrement(album *model.Album) {
	if album.Rating != nil && *album.Rating > Min {
		*album.Rating--
	}
}

// Commit ends the session keeping the current value. Persisting the value
// is the caller's responsibility.
func Commit(album *model.Album) {
	album.BeingRated = false
}

// Cancel ends the session and restores the rating captured by Begin,
// which may be nil for an album that had never been rated.
func Cancel(album *model.Album, previous *int) {
	album.Rating = copyRating(previous)
	album.BeingRated = false
}

func copyRating(r *int) *int {
	if r == nil {
		return nil
	}
	v := *r
	return &v
}
