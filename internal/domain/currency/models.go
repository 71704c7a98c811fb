package currency

import (
	"time"

	"statboard-service/internal/stats"
)

// Record field names exposed by Line.
const (
	FieldName        = "currencyTypeName"
	FieldTotalChange = "totalChange"
)

// Line is one currency entry of an overview snapshot.
type Line struct {
	CurrencyTypeName string  `json:"currencyTypeName"`
	TotalChange      float64 `json:"totalChange"`
}

// Lookup implements stats.Record.
func (l Line) Lookup(field string) (any, bool) {
	switch field {
	case FieldName:
		return l.CurrencyTypeName, true
	case FieldTotalChange:
		return l.TotalChange, true
	}
	return nil, false
}

// Detail maps a currency name to its history id and icon.
type Detail struct {
	Name string `json:"name"`
	ID   int    `json:"id"`
	Icon string `json:"icon"`
}

// Overview is a single snapshot of recent relative price changes for a league.
type Overview struct {
	League    string    `json:"league"`
	Lines     []Line    `json:"lines"`
	Details   []Detail  `json:"currencyDetails"`
	FetchedAt time.Time `json:"fetchedAt"`
}

// DetailByName returns the detail entry for a currency name.
func (o Overview) DetailByName(name string) (Detail, bool) {
	for _, d := range o.Details {
		if d.Name == name {
			return d, true
		}
	}
	return Detail{}, false
}

// History is the daily price series of one currency, oldest sample first.
type History struct {
	CurrencyID int                     `json:"currencyId"`
	Points     []stats.TimeSeriesPoint `json:"points"`
}
