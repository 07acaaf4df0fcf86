package contract

import "strings"

// ComposeAddress turns an address-proof extraction result into one formatted
// string. A non-empty full_address wins verbatim; otherwise the decomposed
// parts are joined in fixed order, skipping empty parts so the output never
// carries a bare "/" or "CEP " token.
func ComposeAddress(res ExtractionResult) string {
	if fa := strings.TrimSpace(res["full_address"]); fa != "" {
		return fa
	}

	parts := []string{
		strings.TrimSpace(res["street"]),
		strings.TrimSpace(res["number"]),
		strings.TrimSpace(res["complement"]),
		strings.TrimSpace(res["neighborhood"]),
		strings.TrimSpace(res["city"]) + "/" + strings.TrimSpace(res["state"]),
		"CEP " + strings.TrimSpace(res["zip_code"]),
	}

	kept := parts[:0]
	for _, p := range parts {
		if p == "" || p == "/" || p == "CEP " {
			continue
		}
		kept = append(kept, p)
	}
	return strings.Join(kept, ", ")
}
