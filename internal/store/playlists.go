package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/akshat/playlist-manager/internal/models"
)

// PlaylistStore handles playlist CRUD in the playlists collection.
// Every lookup filters on owner_id as well as _id, so another user's
// playlist is indistinguishable from a missing one.
type PlaylistStore struct {
	col *mongo.Collection
}

func NewPlaylistStore(db *mongo.Database) *PlaylistStore {
	return &PlaylistStore{col: db.Collection("playlists")}
}

// ownedFilter builds the {_id, owner_id} filter. A malformed playlist
// id cannot match anything, so it reports ErrNotFound.
func ownedFilter(id, ownerID string) (bson.M, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, fmt.Errorf("invalid owner id: %w", err)
	}
	return bson.M{"_id": oid, "owner_id": owner}, nil
}

// Insert persists a new playlist with an empty song list.
func (s *PlaylistStore) Insert(ctx context.Context, ownerID, name, description string) (*models.Playlist, error) {
	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, fmt.Errorf("invalid owner id: %w", err)
	}
	p := &models.Playlist{
		OwnerID:     owner,
		Name:        name,
		Description: description,
		Songs:       []models.Song{},
		CreatedAt:   time.Now(),
	}
	res, err := s.col.InsertOne(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("insert playlist: %w", err)
	}
	p.ID = res.InsertedID.(primitive.ObjectID)
	return p, nil
}

// ListByOwner returns one page of the owner's playlists in insertion
// order, along with the owner's total playlist count.
func (s *PlaylistStore) ListByOwner(ctx context.Context, ownerID string, page, limit int) ([]models.Playlist, int, error) {
	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid owner id: %w", err)
	}
	filter := bson.M{"owner_id": owner}

	total, err := s.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))
	cur, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var playlists []models.Playlist
	if err := cur.All(ctx, &playlists); err != nil {
		return nil, 0, err
	}
	if playlists == nil {
		playlists = []models.Playlist{}
	}
	return playlists, int(total), nil
}

func (s *PlaylistStore) GetByID(ctx context.Context, id, ownerID string) (*models.Playlist, error) {
	filter, err := ownedFilter(id, ownerID)
	if err != nil {
		return nil, err
	}
	var p models.Playlist
	if err := s.col.FindOne(ctx, filter).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Update sets name and description and returns the updated document.
func (s *PlaylistStore) Update(ctx context.Context, id, ownerID, name, description string) (*models.Playlist, error) {
	filter, err := ownedFilter(id, ownerID)
	if err != nil {
		return nil, err
	}
	update := bson.M{"$set": bson.M{"name": name, "description": description}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var p models.Playlist
	if err := s.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Delete removes the playlist and returns the deleted document.
func (s *PlaylistStore) Delete(ctx context.Context, id, ownerID string) (*models.Playlist, error) {
	filter, err := ownedFilter(id, ownerID)
	if err != nil {
		return nil, err
	}
	var p models.Playlist
	if err := s.col.FindOneAndDelete(ctx, filter).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// AddSong appends a song snapshot and returns the updated document.
func (s *PlaylistStore) AddSong(ctx context.Context, id, ownerID string, song models.Song) (*models.Playlist, error) {
	filter, err := ownedFilter(id, ownerID)
	if err != nil {
		return nil, err
	}
	update := bson.M{"$push": bson.M{"songs": song}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var p models.Playlist
	if err := s.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// SetCoverKey records the object key of the playlist's cover image.
func (s *PlaylistStore) SetCoverKey(ctx context.Context, id, ownerID, key string) error {
	filter, err := ownedFilter(id, ownerID)
	if err != nil {
		return err
	}
	res, err := s.col.UpdateOne(ctx, filter, bson.M{"$set": bson.M{"cover_key": key}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
