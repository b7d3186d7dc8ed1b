package model

import (
	"errors"
	"testing"
)

func TestParseReleaseYear(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"1997-06-16", 1997, false},
		{"1997-06", 1997, false},
		{"1997", 1997, false},
		{"2020-01-01", 2020, false},
		{"", 0, true},
		{"unknown", 0, true},
		{"-1997", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseReleaseYear(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseReleaseYear(%q) expected error, got %d", tt.input, got)
				}
				if !errors.Is(err, ErrInvalidMetadata) {
					t.Errorf("error = %v, want ErrInvalidMetadata", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseReleaseYear(%q) failed: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseReleaseYear(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewAlbum(t *testing.T) {
	album, err := NewAlbum("mbid-1", "Geogaddi", "2002-02-18")
	if err != nil {
		t.Fatalf("NewAlbum failed: %v", err)
	}

	if album.ReleaseYear != 2002 {
		t.Errorf("ReleaseYear = %d, want 2002", album.ReleaseYear)
	}
	if album.Rating != nil {
		t.Errorf("fresh album should have nil rating, got %v", *album.Rating)
	}
	if album.BeingRated {
		t.Error("fresh album should not be marked as being rated")
	}
}

func TestNewAlbumMalformedDate(t *testing.T) {
	if _, err := NewAlbum("mbid-1", "Geogaddi", "????"); !errors.Is(err, ErrInvalidMetadata) {
		t.Fatalf("expected ErrInvalidMetadata, got %v", err)
	}
}
