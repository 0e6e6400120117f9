package discovery

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/leadscout/leadscout/internal/model"
	"github.com/leadscout/leadscout/pkg/places"
)

// maxPhotosPerLead caps how many photo references are kept per lead.
const maxPhotosPerLead = 5

// enrich fetches the detail record for one candidate and assembles a Lead.
// A provider failure for this one place is logged and reported as a skip;
// it never aborts the batch.
func (s *Service) enrich(ctx context.Context, cand places.NearbyPlace, sector, location string) (model.Lead, bool) {
	details, err := s.places.Details(ctx, cand.PlaceID)
	if err != nil {
		zap.L().Warn("detail fetch failed, skipping candidate",
			zap.String("place_id", cand.PlaceID),
			zap.String("name", cand.Name),
			zap.Error(err),
		)
		return model.Lead{}, false
	}

	phone := details.InternationalPhone
	if phone == "" {
		phone = details.FormattedPhone
	}

	address := details.FormattedAddress
	if address == "" {
		address = cand.Vicinity
	}

	photos := make([]model.Photo, 0, maxPhotosPerLead)
	for _, p := range details.Photos {
		if len(photos) == maxPhotosPerLead {
			break
		}
		photos = append(photos, model.Photo{
			Reference: p.Reference,
			URL:       s.places.PhotoURL(p.Reference),
		})
	}

	var priceLevel *int
	if details.PriceLevel != nil {
		v := *details.PriceLevel
		priceLevel = &v
	}

	return model.Lead{
		ID:           details.PlaceID,
		BusinessName: details.Name,
		BusinessType: sector,
		OwnerName:    "",
		ContactDetails: model.ContactDetails{
			Email:       DeriveEmail(details.Website),
			Phone:       phone,
			SocialMedia: map[string]string{},
			Website:     details.Website,
		},
		Address:           address,
		Location:          location,
		Description:       Describe(details),
		Source:            leadSource,
		VerificationScore: Score(details),
		GoogleMapsURL:     details.URL,
		BusinessStatus:    details.BusinessStatus,
		PriceLevel:        priceLevel,
		PlaceTypes:        details.Types,
		Photos:            photos,
	}, true
}

// DeriveEmail guesses a contact address as "info@<domain>" from a website
// URL. This is a speculative guess, not verified contact data. Returns ""
// when no domain can be derived.
func DeriveEmail(website string) string {
	domain := website
	for _, scheme := range []string{"https://", "http://"} {
		if strings.HasPrefix(strings.ToLower(domain), scheme) {
			domain = domain[len(scheme):]
			break
		}
	}
	domain = strings.TrimPrefix(strings.ToLower(domain), "www.")
	if i := strings.IndexAny(domain, "/?#"); i >= 0 {
		domain = domain[:i]
	}
	if domain == "" {
		return ""
	}
	return "info@" + domain
}
