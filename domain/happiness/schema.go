package happiness

import "strings"

// Field is the canonical name of a dataset column
type Field string

const (
	FieldCountry       Field = "country"
	FieldYear          Field = "year"
	FieldLifeEval      Field = "life_eval"
	FieldGDP           Field = "gdp"
	FieldSocialSupport Field = "social_support"
	FieldHealthyLife   Field = "healthy_life"
	FieldFreedom       Field = "freedom"
	FieldGenerosity    Field = "generosity"
	FieldCorruption    Field = "corruption"
)

// Column maps a raw header of the source file to its canonical field and display label
type Column struct {
	Field   Field  `json:"field"`
	Raw     string `json:"raw"`
	Label   string `json:"label"`
	Numeric bool   `json:"numeric"`
}

// Schema is the single declarative mapping used by the loader, the analyses,
// the chart renderer and the exporters.
var Schema = []Column{
	{Field: FieldCountry, Raw: "Country name", Label: "Country"},
	{Field: FieldYear, Raw: "Year", Label: "Year"},
	{Field: FieldLifeEval, Raw: "Life evaluation (3-year average)", Label: "Life evaluation (3-year average)", Numeric: true},
	{Field: FieldGDP, Raw: "Explained by: Log GDP per capita", Label: "GDP per capita", Numeric: true},
	{Field: FieldSocialSupport, Raw: "Explained by: Social support", Label: "Social support", Numeric: true},
	{Field: FieldHealthyLife, Raw: "Explained by: Healthy life expectancy", Label: "Healthy life expectancy", Numeric: true},
	{Field: FieldFreedom, Raw: "Explained by: Freedom to make life choices", Label: "Freedom", Numeric: true},
	{Field: FieldGenerosity, Raw: "Explained by: Generosity", Label: "Generosity", Numeric: true},
	{Field: FieldCorruption, Raw: "Explained by: Perceptions of corruption", Label: "Corruption", Numeric: true},
}

// Factors lists the six explained-by contributors in display order
var Factors = []Field{
	FieldGDP,
	FieldSocialSupport,
	FieldHealthyLife,
	FieldFreedom,
	FieldGenerosity,
	FieldCorruption,
}

// ColumnFor returns the schema column of a field
func ColumnFor(f Field) (Column, bool) {
	for _, c := range Schema {
		if c.Field == f {
			return c, true
		}
	}
	return Column{}, false
}

// FieldByRaw resolves a raw header to its canonical field.
// Matching ignores surrounding whitespace and case.
func FieldByRaw(raw string) (Field, bool) {
	raw = strings.TrimSpace(raw)
	for _, c := range Schema {
		if strings.EqualFold(c.Raw, raw) {
			return c.Field, true
		}
	}
	return "", false
}

// ParseField accepts either a canonical field name or a raw header
func ParseField(s string) (Field, bool) {
	s = strings.TrimSpace(s)
	for _, c := range Schema {
		if string(c.Field) == strings.ToLower(s) {
			return c.Field, true
		}
	}
	return FieldByRaw(s)
}

// Label returns the display label for the field
func (f Field) Label() string {
	if c, ok := ColumnFor(f); ok {
		return c.Label
	}
	return string(f)
}

// Raw returns the source-file header for the field
func (f Field) Raw() string {
	if c, ok := ColumnFor(f); ok {
		return c.Raw
	}
	return string(f)
}

// IsFactor reports whether the field is one of the explained-by factors
func (f Field) IsFactor() bool {
	for _, factor := range Factors {
		if factor == f {
			return true
		}
	}
	return false
}
