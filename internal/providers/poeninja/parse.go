package poeninja

import (
	"errors"
	"fmt"
	"math"

	"github.com/tidwall/gjson"

	"statboard-service/internal/domain/currency"
	"statboard-service/internal/stats"
)

var errInvalidJSON = errors.New("invalid json")

// parseOverview validates every line and detail of a currencyoverview payload.
func parseOverview(body []byte) (currency.Overview, error) {
	if !gjson.ValidBytes(body) {
		return currency.Overview{}, errInvalidJSON
	}
	doc := gjson.ParseBytes(body)

	linesField := doc.Get("lines")
	if !linesField.IsArray() {
		return currency.Overview{}, &stats.MissingFieldError{Field: "lines", Index: -1}
	}

	var overview currency.Overview
	for i, line := range linesField.Array() {
		name, err := stringField(line, "currencyTypeName", i)
		if err != nil {
			return currency.Overview{}, fmt.Errorf("lines: %w", err)
		}
		change, err := numberField(line, "receiveSparkLine.totalChange", i)
		if err != nil {
			return currency.Overview{}, fmt.Errorf("lines: %w", err)
		}
		overview.Lines = append(overview.Lines, currency.Line{CurrencyTypeName: name, TotalChange: change})
	}

	for i, detail := range doc.Get("currencyDetails").Array() {
		name, err := stringField(detail, "name", i)
		if err != nil {
			return currency.Overview{}, fmt.Errorf("currencyDetails: %w", err)
		}
		id, err := numberField(detail, "id", i)
		if err != nil {
			return currency.Overview{}, fmt.Errorf("currencyDetails: %w", err)
		}
		overview.Details = append(overview.Details, currency.Detail{
			Name: name,
			ID:   int(id),
			Icon: detail.Get("icon").String(),
		})
	}

	return overview, nil
}

// parseHistory returns the receive-side graph data ordered oldest first.
func parseHistory(body []byte) ([]stats.TimeSeriesPoint, error) {
	if !gjson.ValidBytes(body) {
		return nil, errInvalidJSON
	}
	graph := gjson.GetBytes(body, "receiveCurrencyGraphData")
	if !graph.IsArray() {
		return nil, &stats.MissingFieldError{Field: "receiveCurrencyGraphData", Index: -1}
	}

	points := make([]stats.TimeSeriesPoint, 0, len(graph.Array()))
	for i, sample := range graph.Array() {
		daysAgo, err := dayField(sample, "daysAgo", i)
		if err != nil {
			return nil, fmt.Errorf("receiveCurrencyGraphData: %w", err)
		}
		value, err := numberField(sample, "value", i)
		if err != nil {
			return nil, fmt.Errorf("receiveCurrencyGraphData: %w", err)
		}
		points = append(points, stats.TimeSeriesPoint{DaysAgo: daysAgo, Value: value})
	}
	return stats.SortOldestFirst(points), nil
}

func stringField(obj gjson.Result, path string, index int) (string, error) {
	v := obj.Get(path)
	if !v.Exists() || v.Type == gjson.Null {
		return "", &stats.MissingFieldError{Field: path, Index: index}
	}
	return v.String(), nil
}

func numberField(obj gjson.Result, path string, index int) (float64, error) {
	v := obj.Get(path)
	if !v.Exists() || v.Type == gjson.Null {
		return 0, &stats.MissingFieldError{Field: path, Index: index}
	}
	if v.Type != gjson.Number {
		return 0, &stats.NonNumericFieldError{Field: path, Index: index, Value: v.Raw}
	}
	return v.Float(), nil
}

// dayField reads a whole, non-negative day offset.
func dayField(obj gjson.Result, path string, index int) (int, error) {
	v, err := numberField(obj, path, index)
	if err != nil {
		return 0, err
	}
	if v < 0 || v != math.Trunc(v) {
		return 0, &stats.NonNumericFieldError{Field: path, Index: index, Value: v}
	}
	return int(v), nil
}
