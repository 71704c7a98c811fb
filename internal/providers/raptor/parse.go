package raptor

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"statboard-service/internal/domain/players"
	"statboard-service/internal/stats"
)

// RowError locates a validation failure by CSV line number (header is line 1).
type RowError struct {
	Line int
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("raptor: line %d: %v", e.Line, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

var errEmptyDataset = errors.New("raptor: dataset has no header")

// Parse reads a RAPTOR CSV and converts every row into a typed season.
// Columns are located by header name so extra or reordered columns are tolerated.
func Parse(r io.Reader) ([]players.Season, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, errEmptyDataset
	}
	if err != nil {
		return nil, fmt.Errorf("raptor: read header: %w", err)
	}
	columns := indexColumns(header)

	var seasons []players.Season
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &RowError{Line: line, Err: err}
		}
		season, err := parseRow(columns, record, len(seasons))
		if err != nil {
			return nil, &RowError{Line: line, Err: err}
		}
		seasons = append(seasons, season)
	}
	return seasons, nil
}

func indexColumns(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, dup := columns[name]; !dup {
			columns[name] = i
		}
	}
	return columns
}

func parseRow(columns map[string]int, record []string, index int) (players.Season, error) {
	cell := func(field string) (string, error) {
		i, ok := columns[field]
		if !ok || i >= len(record) {
			return "", &stats.MissingFieldError{Field: field, Index: index}
		}
		return strings.TrimSpace(record[i]), nil
	}
	number := func(field string) (float64, error) {
		raw, err := cell(field)
		if err != nil {
			return 0, err
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return 0, &stats.NonNumericFieldError{Field: field, Index: index, Value: raw}
		}
		return v, nil
	}

	name, err := cell(players.FieldPlayerName)
	if err != nil {
		return players.Season{}, err
	}
	if name == "" {
		return players.Season{}, &stats.MissingFieldError{Field: players.FieldPlayerName, Index: index}
	}
	id, err := cell(players.FieldPlayerID)
	if err != nil {
		return players.Season{}, err
	}
	rawYear, err := cell(players.FieldSeason)
	if err != nil {
		return players.Season{}, err
	}
	year, err := strconv.Atoi(rawYear)
	if err != nil || year < 1 {
		return players.Season{}, &stats.NonNumericFieldError{Field: players.FieldSeason, Index: index, Value: rawYear}
	}

	metrics := make(map[string]float64, len(players.Metrics))
	for _, field := range players.Metrics {
		v, err := number(field)
		if err != nil {
			return players.Season{}, err
		}
		metrics[field] = v
	}

	return players.Season{
		PlayerName: name,
		PlayerID:   id,
		Season:     time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
		Metrics:    metrics,
	}, nil
}
