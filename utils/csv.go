// utils/csv.go
package utils

import (
	"bytes"
	"encoding/csv"
	"io"
	"strings"

	"github.com/hieuok2710/qlsancauv6/models"
)

// PlayersToCSV serializes roster identity rows (name, phone) with a header
// line, for the export collaborator.
func PlayersToCSV(players []models.PlayerIdentity) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"name", "phone"}); err != nil {
		return nil, err
	}
	for _, p := range players {
		if err := w.Write([]string{p.Name, p.Phone}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// PlayersFromCSV parses import rows from a CSV body. The first column is
// the name, the second (optional) the phone. A header line with "name" in
// the first cell is skipped; blank names are dropped here so the roster
// manager receives a clean list.
func PlayersFromCSV(r io.Reader) ([]models.PlayerIdentity, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var rows []models.PlayerIdentity
	first := true
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(record) == 0 {
			continue
		}
		name := strings.TrimSpace(record[0])
		if first {
			first = false
			if strings.EqualFold(name, "name") || strings.EqualFold(name, "tên") {
				continue
			}
		}
		if name == "" {
			continue
		}
		phone := ""
		if len(record) > 1 {
			phone = strings.TrimSpace(record[1])
		}
		rows = append(rows, models.PlayerIdentity{Name: name, Phone: phone})
	}
	return rows, nil
}
