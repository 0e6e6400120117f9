package export

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/leadscout/leadscout/internal/model"
)

var xlsxHeader = []string{
	"id", "businessName", "businessType", "ownerName", "email", "phone",
	"website", "address", "location", "description", "source",
	"verificationScore", "googleMapsUrl", "businessStatus", "priceLevel",
	"placeTypes", "photoCount",
}

// WriteXLSXFile writes leads to an XLSX workbook with a single "Leads" sheet.
func WriteXLSXFile(path string, leads []model.Lead) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Leads")
	if err != nil {
		return eris.Wrap(err, "export: add sheet")
	}

	header := sheet.AddRow()
	for _, name := range xlsxHeader {
		header.AddCell().Value = name
	}

	for _, lead := range leads {
		r := Row(lead)
		row := sheet.AddRow()
		row.AddCell().Value = r.ID
		row.AddCell().Value = r.BusinessName
		row.AddCell().Value = r.BusinessType
		row.AddCell().Value = r.OwnerName
		row.AddCell().Value = r.Email
		row.AddCell().Value = r.Phone
		row.AddCell().Value = r.Website
		row.AddCell().Value = r.Address
		row.AddCell().Value = r.Location
		row.AddCell().Value = r.Description
		row.AddCell().Value = r.Source
		row.AddCell().SetInt(r.VerificationScore)
		row.AddCell().Value = r.GoogleMapsURL
		row.AddCell().Value = r.BusinessStatus
		row.AddCell().Value = r.PriceLevel
		row.AddCell().Value = r.PlaceTypes
		row.AddCell().SetInt(r.PhotoCount)
	}

	return eris.Wrapf(f.Save(path), "export: save %s", path)
}
