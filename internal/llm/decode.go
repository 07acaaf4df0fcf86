package llm

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/Tiagolw/Automa-o-contrato-social/internal/contract"
)

// DecodeResult turns a raw provider JSON object into an ExtractionResult.
// Scalars are coerced to strings, null values dropped, arrays of scalars
// joined with ", " (CNAE lists), and a nested object is flattened one level
// without overwriting keys already present. The payload is validated against
// the extraction schema first; a reply that is not a flat-ish object is
// rejected rather than half-decoded.
func DecodeResult(raw []byte) (contract.ExtractionResult, error) {
	if err := ValidateJSONAgainstSchema(BuildExtractionSchema(), raw); err != nil {
		return nil, err
	}

	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("decode result: %w", err)
	}

	out := make(contract.ExtractionResult, len(m))
	for k, v := range m {
		switch t := v.(type) {
		case map[string]any:
			for nk, nv := range t {
				if _, exists := out[nk]; exists {
					continue
				}
				if s, ok := coerceScalar(nv); ok {
					out[nk] = s
				}
			}
		case []any:
			parts := make([]string, 0, len(t))
			for _, el := range t {
				if s, ok := coerceScalar(el); ok && s != "" {
					parts = append(parts, s)
				}
			}
			if len(parts) > 0 {
				out[k] = strings.Join(parts, ", ")
			}
		default:
			if s, ok := coerceScalar(v); ok {
				out[k] = s
			}
		}
	}
	return out, nil
}

func coerceScalar(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(t), true
	case nil:
		return "", false
	default:
		return "", false
	}
}
