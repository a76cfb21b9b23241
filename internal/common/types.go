package common

// IndicatorType is a well-known category of threat indicator.
type IndicatorType string

const (
	TypeIP      IndicatorType = "ip"
	TypeDomain  IndicatorType = "domain"
	TypeURL     IndicatorType = "url"
	TypeHash    IndicatorType = "hash"
	TypeEmail   IndicatorType = "email"
	TypeUnknown IndicatorType = "unknown"
)

// TypeOther labels any indicator type outside the well-known set.
const TypeOther = "other"

var knownTypes = map[IndicatorType]struct{}{
	TypeIP:      {},
	TypeDomain:  {},
	TypeURL:     {},
	TypeHash:    {},
	TypeEmail:   {},
	TypeUnknown: {},
}

// TypeLabel maps a stored indicator type to a bounded metric label value.
// Input files may carry arbitrary type strings; only the well-known ones
// get their own series.
func TypeLabel(t string) string {
	if _, ok := knownTypes[IndicatorType(t)]; ok {
		return t
	}
	return TypeOther
}
