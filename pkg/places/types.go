package places

// Status values returned in the provider's JSON status field.
const (
	StatusOK            = "OK"
	StatusZeroResults   = "ZERO_RESULTS"
	StatusRequestDenied = "REQUEST_DENIED"
	StatusOverQuota     = "OVER_QUERY_LIMIT"
)

// LatLng is a provider coordinate pair.
type LatLng struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
}

// NearbyRequest holds parameters for one nearby-search page.
type NearbyRequest struct {
	Location  LatLng
	Radius    int // meters
	Type      string
	Keyword   string
	PageToken string
}

// NearbyPlace is the minimal per-result record of a nearby search.
type NearbyPlace struct {
	PlaceID          string   `json:"place_id"`
	Name             string   `json:"name"`
	Rating           float64  `json:"rating"`
	UserRatingsTotal int      `json:"user_ratings_total"`
	Types            []string `json:"types"`
	Vicinity         string   `json:"vicinity"`
}

// NearbyResponse is one page of nearby-search results.
type NearbyResponse struct {
	Results       []NearbyPlace `json:"results"`
	Status        string        `json:"status"`
	NextPageToken string        `json:"next_page_token"`
	ErrorMessage  string        `json:"error_message"`
}

// OpeningHours holds the open-now flag and weekly hours text.
type OpeningHours struct {
	OpenNow     *bool    `json:"open_now"`
	WeekdayText []string `json:"weekday_text"`
}

// PhotoRef is a provider photo reference.
type PhotoRef struct {
	Reference string `json:"photo_reference"`
}

// PlaceDetails is the extended record fetched per place.
type PlaceDetails struct {
	PlaceID            string        `json:"place_id"`
	Name               string        `json:"name"`
	FormattedAddress   string        `json:"formatted_address"`
	FormattedPhone     string        `json:"formatted_phone_number"`
	InternationalPhone string        `json:"international_phone_number"`
	Website            string        `json:"website"`
	URL                string        `json:"url"`
	Rating             float64       `json:"rating"`
	UserRatingsTotal   int           `json:"user_ratings_total"`
	OpeningHours       *OpeningHours `json:"opening_hours"`
	BusinessStatus     string        `json:"business_status"`
	PriceLevel         *int          `json:"price_level"`
	Types              []string      `json:"types"`
	Photos             []PhotoRef    `json:"photos"`
}

type detailsResponse struct {
	Result       *PlaceDetails `json:"result"`
	Status       string        `json:"status"`
	ErrorMessage string        `json:"error_message"`
}

type geocodeResponse struct {
	Results []struct {
		Geometry struct {
			Location LatLng `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
}
