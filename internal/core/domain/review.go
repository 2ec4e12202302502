package domain

import "errors"

// Rating bounds, inclusive.
const (
	MinRating = 0
	MaxRating = 9
)

// Review is a user's rating of a place. PlaceName is a copy of the place name at
// the time of writing, not a reference: renaming or deleting the place leaves
// existing reviews untouched.
type Review struct {
	ID        int    `json:"id"`
	PlaceName string `json:"placeName"`
	Text      string `json:"text"`
	Rating    int    `json:"rating"`
	Author    string `json:"author"`
}

var ErrReviewNotFound = errors.New("review not found")
