package coercer

import (
	"math"
	"strconv"
	"strings"

	"happydash/domain/happiness"
)

// TypeCoercer handles deterministic numeric coercion of raw cells
type TypeCoercer struct {
	config CoercionConfig
}

// CoercionConfig defines the coercion rules
type CoercionConfig struct {
	MissingTokens      []string `json:"missing_tokens"`       // Cells treated as absent rather than failed
	AcceptDecimalComma bool     `json:"accept_decimal_comma"` // Parse "7,25" as 7.25
}

// DefaultCoercionConfig returns sensible defaults
func DefaultCoercionConfig() CoercionConfig {
	return CoercionConfig{
		MissingTokens:      []string{"", "na", "n/a", "nan", "null", "none", "-"},
		AcceptDecimalComma: false,
	}
}

// NewTypeCoercer creates a coercer with the given config
func NewTypeCoercer(config CoercionConfig) *TypeCoercer {
	return &TypeCoercer{config: config}
}

// CoerceNumeric converts a raw cell into a Measure.
// The second result is false when a non-empty cell failed to parse; the
// value is then missing, never zero.
func (c *TypeCoercer) CoerceNumeric(raw string) (happiness.Measure, bool) {
	if c.isMissingToken(raw) {
		return happiness.Missing, true
	}

	if val, ok := c.tryParseNumeric(raw); ok {
		return happiness.Some(val), true
	}
	return happiness.Missing, false
}

// CoerceYear parses an integral year, accepting "2019" and "2019.0"
func (c *TypeCoercer) CoerceYear(raw string) (int, bool) {
	clean := strings.TrimSpace(raw)
	if clean == "" {
		return 0, false
	}
	if year, err := strconv.Atoi(clean); err == nil {
		return year, true
	}
	val, ok := c.tryParseNumeric(clean)
	if !ok || val != math.Trunc(val) {
		return 0, false
	}
	return int(val), true
}

// AnalyzeColumn counts how a column's cells coerce
func (c *TypeCoercer) AnalyzeColumn(values []string) ColumnAnalysis {
	analysis := ColumnAnalysis{TotalCount: len(values)}
	for _, v := range values {
		if c.isMissingToken(v) {
			analysis.MissingCount++
			continue
		}
		if _, ok := c.tryParseNumeric(v); ok {
			analysis.NumericCount++
		} else {
			analysis.FailureCount++
		}
	}
	if present := analysis.TotalCount - analysis.MissingCount; present > 0 {
		analysis.NumericRatio = float64(analysis.NumericCount) / float64(present)
	}
	return analysis
}

func (c *TypeCoercer) isMissingToken(raw string) bool {
	clean := strings.ToLower(strings.TrimSpace(raw))
	for _, token := range c.config.MissingTokens {
		if clean == token {
			return true
		}
	}
	return false
}

// tryParseNumeric attempts to parse as numeric with strict rules
func (c *TypeCoercer) tryParseNumeric(strVal string) (float64, bool) {
	cleanVal := strings.TrimSpace(strVal)
	if cleanVal == "" {
		return 0, false
	}

	if strings.Contains(cleanVal, ",") {
		if !c.config.AcceptDecimalComma || strings.Count(cleanVal, ",") > 1 || strings.Contains(cleanVal, ".") {
			return 0, false
		}
		cleanVal = strings.ReplaceAll(cleanVal, ",", ".")
	}

	val, err := strconv.ParseFloat(cleanVal, 64)
	if err != nil || math.IsInf(val, 0) || math.IsNaN(val) {
		return 0, false
	}
	return val, true
}

// ColumnAnalysis contains the results of coercing one column
type ColumnAnalysis struct {
	TotalCount   int     `json:"total_count"`
	MissingCount int     `json:"missing_count"`
	NumericCount int     `json:"numeric_count"`
	FailureCount int     `json:"failure_count"`
	NumericRatio float64 `json:"numeric_ratio"`
}
