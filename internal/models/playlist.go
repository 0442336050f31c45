package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Song is a catalog track snapshot embedded in a playlist. It has no
// lifecycle of its own; it is copied in from a search result at attach
// time.
type Song struct {
	ID        string    `json:"id" bson:"id"`
	SpotifyID string    `json:"spotifyId" bson:"spotify_id"`
	Title     string    `json:"title" bson:"title"`
	Artist    string    `json:"artist" bson:"artist"`
	Album     string    `json:"album" bson:"album"`
	AddedAt   time.Time `json:"added_at" bson:"added_at"`
}

// Playlist is a user-owned playlist with its embedded song list.
type Playlist struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	OwnerID     primitive.ObjectID `json:"user_id" bson:"owner_id"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description" bson:"description"`
	Songs       []Song             `json:"songs" bson:"songs"`
	CoverKey    string             `json:"-" bson:"cover_key,omitempty"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
}

// PlaylistRequest is the JSON body for creating or updating a playlist.
type PlaylistRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// AttachSongRequest is the JSON body for POST /playlists/{id}/songs.
type AttachSongRequest struct {
	SongID string `json:"songId"`
	Title  string `json:"title"`
	Artist string `json:"artist"`
	Album  string `json:"album"`
}

// Pagination describes a page window over a counted result set.
type Pagination struct {
	Total       int `json:"total"`
	TotalPages  int `json:"totalPages"`
	CurrentPage int `json:"currentPage"`
	Limit       int `json:"limit"`
}

// NewPagination computes the page window for total results.
func NewPagination(total, page, limit int) Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return Pagination{
		Total:       total,
		TotalPages:  totalPages,
		CurrentPage: page,
		Limit:       limit,
	}
}
