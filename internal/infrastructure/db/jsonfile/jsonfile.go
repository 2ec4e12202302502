// Package jsonfile implements the record stores on top of three JSON documents
// in one data directory. Each store loads its document once when constructed,
// keeps the collection in memory, and rewrites the whole document after every
// mutation.
package jsonfile

import (
	"path/filepath"

	"github.com/rs/zerolog"
)

const (
	UsersFile   = "users.json"
	PlacesFile  = "places.json"
	ReviewsFile = "reviews.json"
)

// Config captures where the documents live.
type Config struct {
	Dir string
}

// Stores bundles the three repositories opened from one Config.
type Stores struct {
	Accounts *AccountRepository
	Places   *PlaceRepository
	Reviews  *ReviewRepository
}

// Open loads all three documents. Missing or unreadable documents yield empty
// collections; Open itself never fails.
func Open(cfg Config, logger zerolog.Logger) *Stores {
	dir := cfg.Dir
	if dir == "" {
		dir = "."
	}
	return &Stores{
		Accounts: NewAccountRepository(filepath.Join(dir, UsersFile), logger),
		Places:   NewPlaceRepository(filepath.Join(dir, PlacesFile), logger),
		Reviews:  NewReviewRepository(filepath.Join(dir, ReviewsFile), logger),
	}
}
