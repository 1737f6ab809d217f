// Package csvstore persists season data as CSV files under a data
// directory, one file per season. It is the cached-only source: a
// season that has no file on disk is unavailable rather than fetched.
package csvstore

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// readRecords validates the header row against the expected columns and
// returns the remaining data records.
func readRecords(r io.Reader, header []string) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(header)

	first, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("file is empty")
	}
	if err != nil {
		return nil, err
	}
	for i, column := range header {
		if first[i] != column {
			return nil, fmt.Errorf("unexpected header column %d: got %q, want %q", i+1, first[i], column)
		}
	}

	return reader.ReadAll()
}

// writeFile replaces path with a header plus records, going through a
// temp file in the same directory so readers never see a partial file.
func writeFile(path string, header []string, records [][]string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	writer := csv.NewWriter(tmp)
	if err := writer.Write(header); err != nil {
		tmp.Close()
		return fmt.Errorf("write header: %w", err)
	}
	if err := writer.WriteAll(records); err != nil {
		tmp.Close()
		return fmt.Errorf("write rows: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace file: %w", err)
	}
	return nil
}

func parseInt(value string) (int, error) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("invalid integer %q", value)
	}
	return parsed, nil
}

func parseInt64(value string) (int64, error) {
	parsed, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid integer %q", value)
	}
	return parsed, nil
}

// parseCount reads a non-negative column that upstream exports may
// render in float form (38.0) or leave empty.
func parseCount(value string) (int, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, nil
	}
	parsed, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || parsed != float64(int(parsed)) || parsed < 0 {
		return 0, fmt.Errorf("invalid count %q", value)
	}
	return int(parsed), nil
}

// parseOptionalScore reads a score column where empty means no score
// yet. Float-form integers (2.0) are accepted for the same reason as
// parseCount.
func parseOptionalScore(value string) (*int, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || parsed != float64(int(parsed)) || parsed < 0 {
		return nil, fmt.Errorf("invalid score %q", value)
	}
	score := int(parsed)
	return &score, nil
}

func formatOptionalScore(score *int) string {
	if score == nil {
		return ""
	}
	return strconv.Itoa(*score)
}
