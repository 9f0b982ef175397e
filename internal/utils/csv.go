package utils

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// CSVAnalysisResult describes the detected shape of an uploaded CSV
type CSVAnalysisResult struct {
	Delimiter           rune    `json:"delimiter"` // ',' or ';'
	HasHeader           bool    `json:"has_header"`
	Columns             int     `json:"columns"`
	SampleRows          int     `json:"sample_rows"`
	DelimiterConfidence float64 `json:"delimiter_confidence"` // 0.0 to 1.0
}

// AnalyzeCSV inspects the first lines of a CSV to detect the delimiter
func AnalyzeCSV(reader io.Reader) (*CSVAnalysisResult, error) {
	scanner := bufio.NewScanner(reader)
	var lines []string
	maxLines := 10

	for i := 0; i < maxLines && scanner.Scan(); i++ {
		line := scanner.Text()
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	if len(lines) == 0 {
		return nil, fmt.Errorf("empty file")
	}

	delimiter, confidence := detectDelimiter(lines)

	return &CSVAnalysisResult{
		Delimiter:           delimiter,
		HasHeader:           true,
		Columns:             len(strings.Split(lines[0], string(delimiter))),
		SampleRows:          len(lines),
		DelimiterConfidence: confidence,
	}, nil
}

func detectDelimiter(lines []string) (rune, float64) {
	if len(lines) == 0 {
		return ',', 0.0
	}

	delimiters := []rune{',', ';'}
	scores := make(map[rune]float64)

	for _, delimiter := range delimiters {
		scores[delimiter] = delimiterConsistency(lines, delimiter)
	}

	bestDelimiter := ','
	bestScore := scores[',']
	if scores[';'] > bestScore {
		bestDelimiter = ';'
		bestScore = scores[';']
	}

	return bestDelimiter, bestScore
}

// delimiterConsistency scores how consistently a delimiter splits the
// sample lines into the same column count
func delimiterConsistency(lines []string, delimiter rune) float64 {
	if len(lines) < 2 {
		return 0.0
	}

	delimiterStr := string(delimiter)
	firstLineColumns := len(strings.Split(lines[0], delimiterStr))
	if firstLineColumns < 2 {
		return 0.0
	}

	consistentLines := 0
	for _, line := range lines {
		columns := len(strings.Split(line, delimiterStr))
		// tolerate one column of drift for quoted or empty fields
		if columns >= firstLineColumns-1 && columns <= firstLineColumns+1 {
			consistentLines++
		}
	}

	consistency := float64(consistentLines) / float64(len(lines))

	columnBonus := float64(firstLineColumns) * 0.1
	if columnBonus > 0.3 {
		columnBonus = 0.3
	}

	return consistency + columnBonus
}

// ParseCSV reads records from a CSV with automatic delimiter detection.
// The first record is the header row.
func ParseCSV(reader io.Reader) ([][]string, *CSVAnalysisResult, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read content: %w", err)
	}

	analysis, err := AnalyzeCSV(strings.NewReader(string(content)))
	if err != nil {
		return nil, nil, fmt.Errorf("csv analysis failed: %w", err)
	}

	csvReader := csv.NewReader(strings.NewReader(string(content)))
	csvReader.Comma = analysis.Delimiter
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, analysis, fmt.Errorf("failed to parse csv: %w", err)
	}

	return records, analysis, nil
}

// RecordsToRows pairs a header row with data rows into keyed maps.
// Short rows leave trailing columns absent rather than empty.
func RecordsToRows(records [][]string) []map[string]any {
	if len(records) < 2 {
		return nil
	}

	header := records[0]
	rows := make([]map[string]any, 0, len(records)-1)

	for _, record := range records[1:] {
		row := make(map[string]any, len(header))
		for i, key := range header {
			key = strings.TrimSpace(key)
			if key == "" || i >= len(record) {
				continue
			}
			row[key] = record[i]
		}
		rows = append(rows, row)
	}

	return rows
}
