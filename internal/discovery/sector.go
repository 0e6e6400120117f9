package discovery

// sectorTypes maps business-sector labels to Places API category types.
var sectorTypes = map[string]string{
	"Retail":      "store",
	"Electronics": "electronics_store",
	"Food":        "restaurant",
	"Fashion":     "clothing_store",
	"Grocery":     "grocery_or_supermarket",
	"Healthcare":  "hospital",
	"Beauty":      "beauty_salon",
	"Automotive":  "car_repair",
	"Education":   "school",
	"Furniture":   "furniture_store",
}

// MapSectorToType maps a sector label to the provider's category token.
// Unknown sectors fall back to the generic "store" category.
func MapSectorToType(sector string) string {
	if t, ok := sectorTypes[sector]; ok {
		return t
	}
	return "store"
}
