package importer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"harborcrm/pkg/models"
)

var (
	// local part, domain, and a TLD after the final dot, none containing whitespace
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// optional leading +, then digits, spaces, hyphens, parentheses, periods
	phonePattern = regexp.MustCompile(`^\+?[0-9\s\-().]+$`)
)

// ValidationFailure is one failed check for a row
type ValidationFailure struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (f ValidationFailure) Error() string {
	return fmt.Sprintf("%s: %s", f.Field, f.Message)
}

// ValidateRow checks a mapped row against an entity config. All failing
// checks are collected, not just the first, so the caller can surface a
// complete picture of a bad row.
func ValidateRow(row map[string]string, cfg *ImportConfig) []ValidationFailure {
	var failures []ValidationFailure

	for _, field := range cfg.RequiredFields {
		if strings.TrimSpace(row[field]) == "" {
			failures = append(failures, ValidationFailure{
				Field:   field,
				Message: "required field is missing or empty",
			})
		}
	}

	for field, rule := range cfg.ValidationRules {
		value := row[field]
		if strings.TrimSpace(value) == "" {
			continue
		}
		if failure := applyRule(field, value, rule); failure != nil {
			failures = append(failures, *failure)
		}
	}

	failures = append(failures, structuralChecks(row, cfg)...)
	return failures
}

func applyRule(field, value string, rule ValidationRule) *ValidationFailure {
	switch rule.Kind {
	case RuleRequired:
		if strings.TrimSpace(value) == "" {
			return &ValidationFailure{Field: field, Message: "required field is missing or empty"}
		}
	case RuleEmail:
		for _, token := range SplitList(value) {
			if !emailPattern.MatchString(token) {
				return &ValidationFailure{Field: field, Message: fmt.Sprintf("invalid email address %q", token)}
			}
		}
	case RulePhone:
		for _, token := range SplitList(value) {
			if !phonePattern.MatchString(token) {
				return &ValidationFailure{Field: field, Message: fmt.Sprintf("invalid phone number %q", token)}
			}
		}
	case RuleNumber:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return &ValidationFailure{Field: field, Message: fmt.Sprintf("value %q is not a number", value)}
		}
		if rule.Min != nil && parsed < *rule.Min {
			return &ValidationFailure{Field: field, Message: fmt.Sprintf("value %v is below minimum %v", parsed, *rule.Min)}
		}
		if rule.Max != nil && parsed > *rule.Max {
			return &ValidationFailure{Field: field, Message: fmt.Sprintf("value %v is above maximum %v", parsed, *rule.Max)}
		}
	case RuleEnum:
		for _, option := range rule.Options {
			if value == option {
				return nil
			}
		}
		return &ValidationFailure{
			Field:   field,
			Message: fmt.Sprintf("value %q is not one of [%s]", value, strings.Join(rule.Options, ", ")),
		}
	}
	return nil
}

// structuralChecks are shape checks independent of the declared rules
func structuralChecks(row map[string]string, cfg *ImportConfig) []ValidationFailure {
	var failures []ValidationFailure

	if accounts := row["socialMediaAccounts"]; accounts != "" {
		for _, token := range SplitList(accounts) {
			platform, handle, ok := strings.Cut(token, ":")
			if !ok || strings.TrimSpace(platform) == "" || strings.TrimSpace(handle) == "" {
				failures = append(failures, ValidationFailure{
					Field:   "socialMediaAccounts",
					Message: fmt.Sprintf("account %q must be in platform:handle format", token),
				})
			}
		}
	}

	if cfg.EntityType == models.EntityTypeDonations {
		if amount := row["amount"]; amount != "" {
			parsed, err := strconv.ParseFloat(strings.TrimSpace(amount), 64)
			if err == nil && parsed < 0 {
				failures = append(failures, ValidationFailure{
					Field:   "amount",
					Message: "donation amount cannot be negative",
				})
			}
		}
	}

	return failures
}

// JoinFailures renders a failure list into one row-level error message
func JoinFailures(failures []ValidationFailure) string {
	messages := make([]string, 0, len(failures))
	for _, f := range failures {
		messages = append(messages, f.Error())
	}
	return strings.Join(messages, "; ")
}
