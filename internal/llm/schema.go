package llm

// BuildExtractionSchema returns a JSON-Schema (draft 2020-12 subset) as a
// generic map. It constrains the reply to a flat object of scalar values,
// with the one sanctioned exception of a nested address object; extra keys
// the model volunteers are tolerated and dropped during decoding.
func BuildExtractionSchema() map[string]any {
	scalar := map[string]any{
		"type": []string{"string", "number", "integer", "boolean", "null"},
	}
	scalarOrList := map[string]any{
		"anyOf": []map[string]any{
			scalar,
			{"type": "array", "items": scalar},
		},
	}

	props := map[string]any{}
	known := []string{
		// person
		"name", "nationality", "civil_state", "regime", "profession",
		"birth_date", "cpf", "address",
		"rg", "rg_issuer", "cnh_number", "cnh_validity", "cnh_category",
		"mother_name", "father_name",
		// company
		"company_name", "company_address", "company_object",
		"start_date", "capital_currency", "total_quotas", "quota_value",
		"forum_city", "signature_date",
		// address proof
		"holder_name", "street", "number", "complement", "neighborhood",
		"city", "state", "zip_code", "full_address",
	}
	for _, k := range known {
		props[k] = scalar
	}
	// CNAE lists sometimes come back as arrays.
	props["company_cnae_list"] = scalarOrList
	// Some models nest the address parts under "address".
	props["address"] = map[string]any{
		"anyOf": []map[string]any{
			scalar,
			{"type": "object"},
		},
	}

	return map[string]any{
		"type":       "object",
		"properties": props,
	}
}
