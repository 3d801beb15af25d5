// Package sheet reads and writes the roster and order layouts as CSV.
package sheet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/arnavshah/troop-swap-api-go/pkg/models"
)

// ReadRoster parses a roster sheet. The header must name Username, Status and
// Marches_Available; Inf_Cav is optional and a blank or malformed value reads as 0.
func ReadRoster(r io.Reader) ([]models.RosterRow, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read roster header: %w", err)
	}
	cols := make(map[string]int)
	for i, h := range header {
		cols[strings.TrimSpace(h)] = i
	}
	for _, required := range models.RosterHeader[:3] {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("roster header is missing %q", required)
		}
	}

	var rows []models.RosterRow
	for line := 0; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read roster line %d: %w", line+2, err)
		}

		row := models.RosterRow{
			Username: field(record, cols, "Username"),
			Group:    field(record, cols, "Status"),
		}
		if v := field(record, cols, "Marches_Available"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return nil, &models.InvalidEntryError{Row: line, Username: row.Username, Reason: "Marches_Available is not a number"}
			}
			row.SendCount = &n
		}
		if n, err := strconv.Atoi(field(record, cols, "Inf_Cav")); err == nil {
			strength := models.Strength(n)
			row.Strength = &strength
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func field(record []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

// WriteRoster writes entries in the roster sheet layout
func WriteRoster(w io.Writer, entries []models.PlayerEntry) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(models.RosterHeader); err != nil {
		return err
	}
	for _, e := range entries {
		if err := writer.Write([]string{e.Username, string(e.Group), strconv.Itoa(e.SendCount), strconv.Itoa(e.Strength)}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteOrders writes orders with the From, Status, Send To, Target Status header
func WriteOrders(w io.Writer, orders []models.Assignment) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(models.OrderHeader); err != nil {
		return err
	}
	for _, o := range orders {
		if err := writer.Write(o.Row()); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
