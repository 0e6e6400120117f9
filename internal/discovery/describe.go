package discovery

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/leadscout/leadscout/pkg/places"
)

// priceLabels indexes price-level labels by the provider's 0-3 scale.
var priceLabels = [...]string{"Inexpensive", "Moderate", "Expensive", "Very Expensive"}

// statusText translates provider business statuses; unmapped statuses are
// rendered verbatim.
var statusText = map[string]string{
	"OPERATIONAL":        "Currently operational",
	"CLOSED_TEMPORARILY": "Temporarily closed",
	"CLOSED_PERMANENTLY": "Permanently closed",
}

// genericTypes are category tokens too generic to mention in a description.
var genericTypes = map[string]bool{
	"point_of_interest": true,
	"establishment":     true,
}

var titleCaser = cases.Title(language.English)

// Describe builds a human-readable summary from a place's detail record,
// appending only the clauses whose source data is present. May return "".
func Describe(d *places.PlaceDetails) string {
	var b strings.Builder

	if d.Rating > 0 {
		fmt.Fprintf(&b, "Rating: %.1f/5 stars.", d.Rating)
		if d.UserRatingsTotal > 0 {
			fmt.Fprintf(&b, " Based on %d reviews.", d.UserRatingsTotal)
		}
		b.WriteString(" ")
	}

	if d.PriceLevel != nil && *d.PriceLevel >= 0 && *d.PriceLevel < len(priceLabels) {
		b.WriteString("Price level: " + priceLabels[*d.PriceLevel])
		if *d.PriceLevel > 0 {
			b.WriteString(" " + strings.Repeat("₹", *d.PriceLevel))
		}
		b.WriteString(". ")
	}

	if d.BusinessStatus != "" {
		text, ok := statusText[d.BusinessStatus]
		if !ok {
			text = d.BusinessStatus
		}
		b.WriteString(text + ". ")
	}

	if cats := humanizeTypes(d.Types); len(cats) > 0 {
		b.WriteString("Specializes in: " + strings.Join(cats, ", ") + ". ")
	}

	if d.OpeningHours != nil {
		if d.OpeningHours.OpenNow != nil {
			if *d.OpeningHours.OpenNow {
				b.WriteString("Open now. ")
			} else {
				b.WriteString("Currently closed. ")
			}
		}
		if len(d.OpeningHours.WeekdayText) > 0 {
			b.WriteString("Hours: " + strings.Join(d.OpeningHours.WeekdayText, "; ") + ".")
		}
	}

	return strings.TrimRight(b.String(), " ")
}

// humanizeTypes converts category tokens to display form, dropping the
// generic ones ("electronics_store" -> "Electronics Store").
func humanizeTypes(types []string) []string {
	var out []string
	for _, t := range types {
		if genericTypes[t] {
			continue
		}
		out = append(out, titleCaser.String(strings.ReplaceAll(t, "_", " ")))
	}
	return out
}
