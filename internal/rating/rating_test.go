package rating

import (
	"testing"

	"github.com/handiism/albumrate/internal/model"
)

func intPtr(v int) *int { return &v }

func TestBeginUnratedAlbum(t *testing.T) {
	album := &model.Album{ID: "x", Title: "X"}

	previous := Begin(album)

	if previous != nil {
		t.Errorf("previous = %v, want nil", *previous)
	}
	if !album.BeingRated {
		t.Error("BeingRated should be true after Begin")
	}
	if album.Rating == nil || *album.Rating != 1 {
		t.Errorf("Rating = %v, want 1", album.Rating)
	}
}

func TestBeginKeepsExistingRating(t *testing.T) {
	album := &model.Album{ID: "x", Rating: intPtr(7)}

	previous := Begin(album)

	if previous == nil || *previous != 7 {
		t.Errorf("previous = %v, want 7", previous)
	}
	if *album.Rating != 7 {
		t.Errorf("Rating = %d, want 7", *album.Rating)
	}
}

func TestSetDirect(t *testing.T) {
	tests := []struct {
		digit int
		want  int
	}{
		{1, 1},
		{5, 5},
		{9, 9},
		{0, 10},
	}

	for _, tt := range tests {
		album := &model.Album{Rating: intPtr(3)}
		SetDirect(album, tt.digit)
		if *album.Rating != tt.want {
			t.Errorf("SetDirect(%d): rating = %d, want %d", tt.digit, *album.Rating, tt.want)
		}
	}
}

func TestSetDirectIgnoresOutOfRange(t *testing.T) {
	album := &model.Album{Rating: intPtr(3)}
	SetDirect(album, 12)
	SetDirect(album, -1)
	if *album.Rating != 3 {
		t.Errorf("rating = %d, want 3", *album.Rating)
	}
}

func TestIncrementSaturatesAtMax(t *testing.T) {
	album := &model.Album{Rating: intPtr(9)}

	Increment(album)
	if *album.Rating != 10 {
		t.Fatalf("rating = %d, want 10", *album.Rating)
	}

	Increment(album)
	if *album.Rating != 10 {
		t.Errorf("rating = %d, want 10 (saturated)", *album.Rating)
	}
}

func TestDecrementSaturatesAtMin(t *testing.T) {
	album := &model.Album{Rating: intPtr(2)}

	Decrement(album)
	if *album.Rating != 1 {
		t.Fatalf("rating = %d, want 1", *album.Rating)
	}

	Decrement(album)
	if *album.Rating != 1 {
		t.Errorf("rating = %d, want 1 (saturated)", *album.Rating)
	}
}

func TestCommitClearsEditFlag(t *testing.T) {
	album := &model.Album{Rating: intPtr(4), BeingRated: true}

	Commit(album)

	if album.BeingRated {
		t.Error("BeingRated should be false after Commit")
	}
	if *album.Rating != 4 {
		t.Errorf("rating = %d, want 4", *album.Rating)
	}
}

func TestCancelRestoresPreviousRating(t *testing.T) {
	album := &model.Album{Rating: intPtr(7)}

	previous := Begin(album)
	SetDirect(album, 0)
	if *album.Rating != 10 {
		t.Fatalf("rating = %d, want 10", *album.Rating)
	}

	Cancel(album, previous)

	if album.BeingRated {
		t.Error("BeingRated should be false after Cancel")
	}
	if album.Rating == nil || *album.Rating != 7 {
		t.Errorf("rating = %v, want 7", album.Rating)
	}
}

func TestCancelRestoresUnratedState(t *testing.T) {
	album := &model.Album{}

	previous := Begin(album)
	Increment(album)
	Increment(album)
	Cancel(album, previous)

	if album.Rating != nil {
		t.Errorf("rating = %v, want nil", *album.Rating)
	}
}

// Fresh album, begin, three increments, commit: rating ends at 4.
func TestEditSessionFromScratch(t *testing.T) {
	album := &model.Album{ID: "a1"}

	previous := Begin(album)
	if previous != nil {
		t.Fatalf("previous = %v, want nil", *previous)
	}

	Increment(album)
	Increment(album)
	Increment(album)
	if *album.Rating != 4 {
		t.Fatalf("rating = %d, want 4", *album.Rating)
	}

	Commit(album)
	if album.BeingRated {
		t.Error("BeingRated should be cleared by Commit")
	}
	if *album.Rating != 4 {
		t.Errorf("rating = %d, want 4", *album.Rating)
	}
}
