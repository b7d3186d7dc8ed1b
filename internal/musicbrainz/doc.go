// Package musicbrainz is a minimal client for the MusicBrainz ws/2 JSON
// API, covering exactly the two lookups albumrate needs: artist search
// and release-group browse.
package musicbrainz
