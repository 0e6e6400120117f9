// Package export writes leads to CSV and XLSX files for handoff to
// sales tooling.
package export

import (
	"strconv"
	"strings"

	"github.com/leadscout/leadscout/internal/model"
)

// LeadRow is the flat projection of a Lead used by the file exporters.
type LeadRow struct {
	ID                string `csv:"id"`
	BusinessName      string `csv:"businessName"`
	BusinessType      string `csv:"businessType"`
	OwnerName         string `csv:"ownerName"`
	Email             string `csv:"email"`
	Phone             string `csv:"phone"`
	Website           string `csv:"website"`
	Address           string `csv:"address"`
	Location          string `csv:"location"`
	Description       string `csv:"description"`
	Source            string `csv:"source"`
	VerificationScore int    `csv:"verificationScore"`
	GoogleMapsURL     string `csv:"googleMapsUrl"`
	BusinessStatus    string `csv:"businessStatus"`
	PriceLevel        string `csv:"priceLevel"`
	PlaceTypes        string `csv:"placeTypes"`
	PhotoCount        int    `csv:"photoCount"`
}

// Row flattens a Lead for export. Multi-valued fields are joined with
// semicolons so the row stays one line per lead.
func Row(lead model.Lead) LeadRow {
	price := ""
	if lead.PriceLevel != nil {
		price = strconv.Itoa(*lead.PriceLevel)
	}
	return LeadRow{
		ID:                lead.ID,
		BusinessName:      lead.BusinessName,
		BusinessType:      lead.BusinessType,
		OwnerName:         lead.OwnerName,
		Email:             lead.ContactDetails.Email,
		Phone:             lead.ContactDetails.Phone,
		Website:           lead.ContactDetails.Website,
		Address:           lead.Address,
		Location:          lead.Location,
		Description:       lead.Description,
		Source:            lead.Source,
		VerificationScore: lead.VerificationScore,
		GoogleMapsURL:     lead.GoogleMapsURL,
		BusinessStatus:    lead.BusinessStatus,
		PriceLevel:        price,
		PlaceTypes:        strings.Join(lead.PlaceTypes, ";"),
		PhotoCount:        len(lead.Photos),
	}
}

// Rows flattens a slice of leads.
func Rows(leads []model.Lead) []LeadRow {
	rows := make([]LeadRow, 0, len(leads))
	for _, lead := range leads {
		rows = append(rows, Row(lead))
	}
	return rows
}
