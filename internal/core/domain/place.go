package domain

import "errors"

// Place is a historical place in the catalog.
type Place struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Category    string `json:"category"`
}

var ErrPlaceNotFound = errors.New("place not found")
