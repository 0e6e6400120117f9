package export

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/leadscout/leadscout/internal/model"
)

func exportLead() model.Lead {
	price := 2
	return model.Lead{
		ID:           "ChIJ-abc",
		BusinessName: "Sakthi Electronics",
		BusinessType: "Electronics",
		ContactDetails: model.ContactDetails{
			Email:   "info@sakthielectronics.in",
			Phone:   "+91 44 2852 1234",
			Website: "https://www.sakthielectronics.in/",
		},
		Address:           "12 Anna Salai, Chennai",
		Location:          "chennai",
		Description:       "Rating: 4.5/5 stars.",
		Source:            "Google Places (Real Data)",
		VerificationScore: 120,
		GoogleMapsURL:     "https://maps.google.com/?cid=123",
		BusinessStatus:    "OPERATIONAL",
		PriceLevel:        &price,
		PlaceTypes:        []string{"electronics_store", "point_of_interest"},
		Photos:            []model.Photo{{Reference: "r1", URL: "u1"}, {Reference: "r2", URL: "u2"}},
	}
}

func TestCSV_RoundTrip(t *testing.T) {
	lead := exportLead()

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, []model.Lead{lead}))

	rows, err := ReadCSV(&buf)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	got := rows[0]
	assert.Equal(t, "Sakthi Electronics", got.BusinessName)
	assert.Equal(t, 120, got.VerificationScore)
	assert.Equal(t, "12 Anna Salai, Chennai", got.Address)
	assert.Equal(t, "info@sakthielectronics.in", got.Email)
	assert.Equal(t, "electronics_store;point_of_interest", got.PlaceTypes)
	assert.Equal(t, "2", got.PriceLevel)
	assert.Equal(t, 2, got.PhotoCount)
}

func TestCSV_EmptyList(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))

	rows, err := ReadCSV(&buf)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestRow_NilPriceLevel(t *testing.T) {
	lead := exportLead()
	lead.PriceLevel = nil

	assert.Equal(t, "", Row(lead).PriceLevel)
}

func TestXLSX_WriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leads.xlsx")
	require.NoError(t, WriteXLSXFile(path, []model.Lead{exportLead()}))

	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	require.Len(t, f.Sheets, 1)

	sheet := f.Sheets[0]
	assert.Equal(t, "Leads", sheet.Name)
	require.Len(t, sheet.Rows, 2)
	assert.Equal(t, "id", sheet.Rows[0].Cells[0].Value)
	assert.Equal(t, "Sakthi Electronics", sheet.Rows[1].Cells[1].Value)

	score, err := sheet.Rows[1].Cells[11].Int()
	require.NoError(t, err)
	assert.Equal(t, 120, score)
}
