package export

import (
	"io"
	"os"

	"github.com/jszwec/csvutil"
	"github.com/rotisserie/eris"

	"github.com/leadscout/leadscout/internal/model"
)

// WriteCSV writes leads to w as a CSV document with a header row.
func WriteCSV(w io.Writer, leads []model.Lead) error {
	data, err := csvutil.Marshal(Rows(leads))
	if err != nil {
		return eris.Wrap(err, "export: marshal csv")
	}
	if _, err := w.Write(data); err != nil {
		return eris.Wrap(err, "export: write csv")
	}
	return nil
}

// WriteCSVFile writes leads to a CSV file at path.
func WriteCSVFile(path string, leads []model.Lead) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "export: create %s", path)
	}
	defer f.Close() //nolint:errcheck

	if err := WriteCSV(f, leads); err != nil {
		return err
	}
	return eris.Wrapf(f.Close(), "export: close %s", path)
}

// ReadCSV parses a CSV document previously produced by WriteCSV.
func ReadCSV(r io.Reader) ([]LeadRow, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, eris.Wrap(err, "export: read csv")
	}
	var rows []LeadRow
	if err := csvutil.Unmarshal(data, &rows); err != nil {
		return nil, eris.Wrap(err, "export: unmarshal csv")
	}
	return rows, nil
}
