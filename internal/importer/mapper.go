package importer

import (
	"fmt"
	"strconv"
	"strings"
)

// MapRow translates a raw source row into a row keyed by target field
// names using the session's field mapping. Unmapped source columns are
// dropped. Values are stringified, trimmed, and omitted entirely when
// empty or a literal "null"/"undefined" (case-insensitive), so the
// validation path and the write path always see the same shape.
func MapRow(raw map[string]any, fieldMapping map[string]string) map[string]string {
	mapped := make(map[string]string, len(fieldMapping))
	for sourceColumn, targetField := range fieldMapping {
		value, ok := raw[sourceColumn]
		if !ok {
			continue
		}
		normalized := normalizeValue(value)
		if normalized == "" {
			continue
		}
		mapped[targetField] = normalized
	}
	return mapped
}

func normalizeValue(value any) string {
	var s string
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		s = v
	case float64:
		s = strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		s = strconv.Itoa(v)
	case int64:
		s = strconv.FormatInt(v, 10)
	case bool:
		s = strconv.FormatBool(v)
	default:
		s = fmt.Sprintf("%v", v)
	}

	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "null", "undefined":
		return ""
	}
	return s
}

// SplitList splits a comma-separated multi-value field into trimmed
// tokens, dropping empty ones
func SplitList(value string) []string {
	parts := strings.Split(value, ",")
	tokens := make([]string, 0, len(parts))
	for _, part := range parts {
		token := strings.TrimSpace(part)
		if token != "" {
			tokens = append(tokens, token)
		}
	}
	return tokens
}
