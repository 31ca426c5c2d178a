package analysis

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"happydash/domain/happiness"
	"happydash/internal/errors"
)

// Params carries every user-chosen input of one render cycle.
// Zero values are resolved by the Runner against the dataset and config.
type Params struct {
	YearMin        int               `json:"year_min"`
	YearMax        int               `json:"year_max"`
	Countries      []string          `json:"countries,omitempty"`
	TopN           int               `json:"top_n"`
	ChangeN        int               `json:"change_n"`
	MaxCountries   int               `json:"max_countries"`
	ScatterFactors []happiness.Field `json:"scatter_factors,omitempty"`
	ChangeFrom     int               `json:"change_from"`
	ChangeTo       int               `json:"change_to"`
}

// DefaultScatterFactors are compared side by side in the faceted scatter
var DefaultScatterFactors = []happiness.Field{happiness.FieldGDP, happiness.FieldSocialSupport}

// Validate rejects parameter combinations no analysis can interpret
func (p Params) Validate() error {
	if p.YearMin != 0 && p.YearMax != 0 && p.YearMin > p.YearMax {
		return errors.InvalidInput(fmt.Sprintf("year_min %d is after year_max %d", p.YearMin, p.YearMax))
	}
	if p.TopN < 0 || p.ChangeN < 0 || p.MaxCountries < 0 {
		return errors.InvalidInput("N parameters must not be negative")
	}
	if p.ChangeFrom != 0 && p.ChangeTo != 0 && p.ChangeFrom >= p.ChangeTo {
		return errors.InvalidInput(fmt.Sprintf("change boundary %d must precede %d", p.ChangeFrom, p.ChangeTo))
	}
	seen := make(map[happiness.Field]bool, len(p.ScatterFactors))
	for _, f := range p.ScatterFactors {
		if !f.IsFactor() {
			return errors.InvalidInput(fmt.Sprintf("%q is not an explained-by factor", f))
		}
		if seen[f] {
			return errors.InvalidInput(fmt.Sprintf("factor %q listed twice", f))
		}
		seen[f] = true
	}
	return nil
}

// Key identifies the parameter set for memoization. Country order matters
// for the trend selection so it is kept as given.
func (p Params) Key() string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(p.YearMin))
	b.WriteByte('-')
	b.WriteString(strconv.Itoa(p.YearMax))
	b.WriteString("|c=")
	b.WriteString(strings.Join(p.Countries, "\x1f"))
	fmt.Fprintf(&b, "|n=%d,%d,%d|b=%d-%d|f=", p.TopN, p.ChangeN, p.MaxCountries, p.ChangeFrom, p.ChangeTo)
	factors := make([]string, len(p.ScatterFactors))
	for i, f := range p.ScatterFactors {
		factors[i] = string(f)
	}
	b.WriteString(strings.Join(factors, ","))
	return b.String()
}

// ParseCountries splits a comma separated country list, trimming blanks
func ParseCountries(s string) []string {
	return splitList(s)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if c := strings.TrimSpace(part); c != "" {
			out = append(out, c)
		}
	}
	return out
}

// ParseFactors resolves a comma separated list of field names or labels
func ParseFactors(s string) ([]happiness.Field, error) {
	var out []happiness.Field
	for _, part := range splitList(s) {
		f, ok := happiness.ParseField(part)
		if !ok || !f.IsFactor() {
			return nil, errors.InvalidInput(fmt.Sprintf("unknown factor %q", part))
		}
		out = append(out, f)
	}
	return out, nil
}

// ParamsFromQuery reads parameters from URL query values. Countries may be
// given as a comma separated "countries" list, repeated "country" keys, or both.
func ParamsFromQuery(q url.Values) (Params, error) {
	var p Params
	ints := []struct {
		key string
		dst *int
	}{
		{"year_min", &p.YearMin},
		{"year_max", &p.YearMax},
		{"top_n", &p.TopN},
		{"change_n", &p.ChangeN},
		{"max_countries", &p.MaxCountries},
		{"change_from", &p.ChangeFrom},
		{"change_to", &p.ChangeTo},
	}
	for _, f := range ints {
		raw := strings.TrimSpace(q.Get(f.key))
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return Params{}, errors.InvalidInput(fmt.Sprintf("%s must be an integer, got %q", f.key, raw))
		}
		*f.dst = n
	}

	for _, list := range q["countries"] {
		p.Countries = append(p.Countries, splitList(list)...)
	}
	for _, c := range q["country"] {
		if c = strings.TrimSpace(c); c != "" {
			p.Countries = append(p.Countries, c)
		}
	}

	factors, err := ParseFactors(strings.Join(q["factors"], ","))
	if err != nil {
		return Params{}, err
	}
	p.ScatterFactors = factors

	return p, p.Validate()
}

// Query is the inverse of ParamsFromQuery; zero values are omitted
func (p Params) Query() url.Values {
	q := url.Values{}
	set := func(key string, v int) {
		if v != 0 {
			q.Set(key, strconv.Itoa(v))
		}
	}
	set("year_min", p.YearMin)
	set("year_max", p.YearMax)
	set("top_n", p.TopN)
	set("change_n", p.ChangeN)
	set("max_countries", p.MaxCountries)
	set("change_from", p.ChangeFrom)
	set("change_to", p.ChangeTo)
	for _, c := range p.Countries {
		q.Add("country", c)
	}
	if len(p.ScatterFactors) > 0 {
		factors := make([]string, len(p.ScatterFactors))
		for i, f := range p.ScatterFactors {
			factors[i] = string(f)
		}
		q.Set("factors", strings.Join(factors, ","))
	}
	return q
}
