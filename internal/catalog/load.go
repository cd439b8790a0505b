package catalog

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// catalogFile is the raw YAML structure of a catalog file:
//
//	version: 2
//	steps:
//	  - id: welcome
//	    title: Welcome
//	    description: ...
//	    icon: "🏗️"
//	  - id: notes
//	    title: Notes
//	    selector: "[data-tutorial='nav-notes']"
//	    feature_key: notes
type catalogFile struct {
	Version int    `yaml:"version"`
	Steps   []Step `yaml:"steps"`
}

// ReadFromFile reads and validates a catalog file.
//
// The format is chosen by extension: .yaml/.yml are parsed with
// [ReadFromYAML], .csv with [ReadFromCSV].
func ReadFromFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ReadFromYAML(data)
	case ".csv":
		return ReadFromCSV(bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("unsupported catalog format: %s", filepath.Ext(path))
	}
}

// ReadFromYAML parses and validates a catalog from YAML bytes.
func ReadFromYAML(data []byte) (*Catalog, error) {
	var raw catalogFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	if len(raw.Steps) == 0 {
		return nil, fmt.Errorf("%w: catalog contains no steps", ErrInvalidCatalog)
	}

	c := New(raw.Version, raw.Steps)
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// ReadFromString parses a CSV catalog from a string.
// This is useful for testing and for embedding catalog data.
func ReadFromString(data string) (*Catalog, error) {
	return ReadFromCSV(strings.NewReader(data))
}

// ReadFromCSV parses and validates a catalog in CSV form:
//
//	# version: 2
//	id,title,description,icon,selector,feature_key
//	welcome,Welcome,Start here,🏗️,,
//	notes,Notes,Pin insights,📝,[data-tutorial='nav-notes'],notes
//
// The optional leading "# version: N" line sets the catalog version (default 1).
// Other lines starting with # are ignored.
func ReadFromCSV(r io.Reader) (*Catalog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	version, err := csvVersion(data)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.TrimLeadingSpace = true
	reader.Comment = '#'

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog header: %w", err)
	}

	colIndex := buildColumnIndex(header)
	if err := validateColumns(colIndex); err != nil {
		return nil, err
	}

	var steps []Step
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			line, _ := reader.FieldPos(0)
			return nil, fmt.Errorf("failed to read catalog line %d: %w", line, err)
		}

		steps = append(steps, Step{
			ID:          getField(record, colIndex, "id"),
			Title:       getField(record, colIndex, "title"),
			Description: getField(record, colIndex, "description"),
			Icon:        getField(record, colIndex, "icon"),
			Selector:    getField(record, colIndex, "selector"),
			FeatureKey:  getField(record, colIndex, "feature_key"),
		})
	}

	if len(steps) == 0 {
		return nil, fmt.Errorf("%w: catalog contains no steps", ErrInvalidCatalog)
	}

	c := New(version, steps)
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// csvVersion extracts the "# version: N" directive from the first non-blank line.
func csvVersion(data []byte) (int, error) {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		rest, ok := strings.CutPrefix(line, "#")
		if !ok {
			return 1, nil
		}
		value, ok := strings.CutPrefix(strings.TrimSpace(rest), "version:")
		if !ok {
			return 1, nil
		}
		v, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return 0, fmt.Errorf("%w: bad version directive %q", ErrInvalidCatalog, line)
		}
		return v, nil
	}
	return 1, nil
}

// requiredColumns are the columns that must be present in a CSV catalog.
var requiredColumns = []string{"id", "title"}

func buildColumnIndex(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, col := range header {
		index[strings.TrimSpace(strings.ToLower(col))] = i
	}
	return index
}

func validateColumns(colIndex map[string]int) error {
	for _, col := range requiredColumns {
		if _, ok := colIndex[col]; !ok {
			return fmt.Errorf("catalog missing required column: %s", col)
		}
	}
	return nil
}

func getField(record []string, colIndex map[string]int, column string) string {
	idx, ok := colIndex[column]
	if !ok || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}
