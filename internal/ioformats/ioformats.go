// Package ioformats reads the three input file formats: the website list
// (CSV), the checker list (plain text) and the criteria configuration
// (YAML).
package ioformats

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"

	"wasc-audit/internal/models"
)

// ReadWebsites reads a website list: one "label;url" pair per row, lines
// starting with '#' ignored, surrounding whitespace tolerated.
func ReadWebsites(path string) ([]models.Website, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("website list: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = ';'
	r.Comment = '#'
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("website list %s: %w", path, err)
	}

	var out []models.Website
	for _, row := range rows {
		if len(row) < 2 {
			return nil, fmt.Errorf("website list %s: row %q: expected label;url", path, strings.Join(row, ";"))
		}
		label := strings.TrimSpace(row[0])
		url := strings.TrimSpace(row[1])
		if label == "" && url == "" {
			continue
		}
		out = append(out, models.Website{Label: label, URL: url})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("website list %s: no website found", path)
	}
	return out, nil
}

// ReadCheckers reads a checker list: one checker name per line, blank lines
// and '#' comments skipped. Name validation happens against the registry
// when the checklist is built.
func ReadCheckers(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("checker list: %w", err)
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("checker list %s: %w", path, err)
	}
	return out, nil
}

// ReadCriteria reads a criteria configuration: a YAML mapping from criterion
// name to an ordered list of checker names.
func ReadCriteria(path string) (map[string][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("criteria config: %w", err)
	}
	var config map[string][]string
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("criteria config %s: unable to read, check the file format: %w", path, err)
	}
	return config, nil
}
