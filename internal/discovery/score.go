package discovery

import "github.com/leadscout/leadscout/pkg/places"

// Verification score weights. The rubric is additive over independent
// presence/quality signals; the attainable maximum is 110, and the sum is
// deliberately not clamped to 100.
const (
	scorePhone       = 30
	scoreWebsite     = 15
	scoreEmailDomain = 10
	scoreAddress     = 15
	scoreHasRating   = 10
	scoreHighRating  = 5
	scoreManyReviews = 10
	scoreHours       = 10
	scoreHasPhoto    = 10
	scoreManyPhotos  = 5

	highRatingFloor  = 4.0
	manyReviewsFloor = 100
	manyPhotosFloor  = 3
)

// Score computes the verification confidence for a place from its detail
// record. Deterministic and monotonic in each signal.
func Score(d *places.PlaceDetails) int {
	var score int

	if d.InternationalPhone != "" || d.FormattedPhone != "" {
		score += scorePhone
	}
	if d.Website != "" {
		score += scoreWebsite
		// A website implies a derivable email domain.
		score += scoreEmailDomain
	}
	if d.FormattedAddress != "" {
		score += scoreAddress
	}
	if d.Rating > 0 {
		score += scoreHasRating
		if d.Rating >= highRatingFloor {
			score += scoreHighRating
		}
	}
	if d.UserRatingsTotal >= manyReviewsFloor {
		score += scoreManyReviews
	}
	if d.OpeningHours != nil {
		score += scoreHours
	}
	if len(d.Photos) >= 1 {
		score += scoreHasPhoto
		if len(d.Photos) >= manyPhotosFloor {
			score += scoreManyPhotos
		}
	}

	return score
}
