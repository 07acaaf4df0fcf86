package contract

import "encoding/json"

// RenderContext flattens the company record into the field-name → value
// mapping consumed by the template renderer. Every placeholder the template
// references must resolve to a present key, which ApplyPlaceholders
// guarantees for incomplete drafts.
func RenderContext(c CompanyRecord) (map[string]any, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}
