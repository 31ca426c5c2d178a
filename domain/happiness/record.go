package happiness

// Measure is a nullable numeric cell. Missing values are skipped by every
// aggregation instead of being treated as zero.
type Measure struct {
	Value float64
	Valid bool
}

// Some wraps a present value
func Some(v float64) Measure {
	return Measure{Value: v, Valid: true}
}

// Missing is the absent value
var Missing = Measure{}

// ExplainedBy holds the six decomposed contributors of a life evaluation
type ExplainedBy struct {
	GDP           Measure
	SocialSupport Measure
	HealthyLife   Measure
	Freedom       Measure
	Generosity    Measure
	Corruption    Measure
}

// Record is one country-year row of the source table
type Record struct {
	Country     string
	Year        int
	LifeEval    Measure
	ExplainedBy ExplainedBy
}

// Get returns the numeric value of a field; non-numeric fields are always missing
func (r Record) Get(f Field) Measure {
	switch f {
	case FieldLifeEval:
		return r.LifeEval
	case FieldGDP:
		return r.ExplainedBy.GDP
	case FieldSocialSupport:
		return r.ExplainedBy.SocialSupport
	case FieldHealthyLife:
		return r.ExplainedBy.HealthyLife
	case FieldFreedom:
		return r.ExplainedBy.Freedom
	case FieldGenerosity:
		return r.ExplainedBy.Generosity
	case FieldCorruption:
		return r.ExplainedBy.Corruption
	case FieldYear:
		return Some(float64(r.Year))
	}
	return Missing
}

// Set assigns a numeric field and returns the updated record
func (r Record) Set(f Field, m Measure) Record {
	switch f {
	case FieldLifeEval:
		r.LifeEval = m
	case FieldGDP:
		r.ExplainedBy.GDP = m
	case FieldSocialSupport:
		r.ExplainedBy.SocialSupport = m
	case FieldHealthyLife:
		r.ExplainedBy.HealthyLife = m
	case FieldFreedom:
		r.ExplainedBy.Freedom = m
	case FieldGenerosity:
		r.ExplainedBy.Generosity = m
	case FieldCorruption:
		r.ExplainedBy.Corruption = m
	}
	return r
}
