package contract

import "strings"

// ExtractionResult is the flat field-name → value mapping produced by exactly
// one extractor call. An empty map means "nothing recognized", not an error.
type ExtractionResult map[string]string

// IsEmpty reports whether the result carries no usable value.
func (r ExtractionResult) IsEmpty() bool {
	for _, v := range r {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// Merge overlays the non-empty keys of b onto a copy of a. A key already
// filled in a is only replaced by a non-empty value from b; an empty extracted
// value never blanks out a field an earlier document filled.
func Merge(a, b ExtractionResult) ExtractionResult {
	out := make(ExtractionResult, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		if strings.TrimSpace(v) == "" {
			continue
		}
		out[k] = v
	}
	return out
}

// Apply overlays the result's non-empty values onto the partner record,
// keeping previously filled fields when the new value is empty.
func (p *PartnerRecord) Apply(res ExtractionResult) {
	for _, name := range partnerFieldNames {
		v := strings.TrimSpace(res[name])
		if v == "" {
			continue
		}
		*p.fieldPtr(name) = v
	}
}

// Apply overlays the result's non-empty values onto the company record.
func (c *CompanyRecord) Apply(res ExtractionResult) {
	for _, name := range companyFieldNames {
		v := strings.TrimSpace(res[name])
		if v == "" {
			continue
		}
		*c.fieldPtr(name) = v
	}
}
