package contract

import "strings"

// placeholderLabels holds the human-readable labels used for the common
// fields; anything else falls back to the upper-cased field name.
var placeholderLabels = map[string]string{
	"name":              "NOME COMPLETO",
	"nationality":       "NACIONALIDADE",
	"civil_state":       "ESTADO CIVIL",
	"regime":            "REGIME DE BENS",
	"profession":        "PROFISSÃO",
	"birth_date":        "DATA DE NASCIMENTO",
	"cpf":               "CPF",
	"address":           "ENDEREÇO COMPLETO",
	"quotas":            "QUOTAS",
	"amount":            "VALOR",
	"percent":           "PERCENTUAL",
	"company_name":      "RAZÃO SOCIAL",
	"company_address":   "ENDEREÇO DA SEDE",
	"company_object":    "OBJETO SOCIAL",
	"company_cnae_list": "LISTA DE CNAES",
	"start_date":        "DATA DE INÍCIO",
	"capital_currency":  "CAPITAL SOCIAL",
	"signature_date":    "DATA DE ASSINATURA",
	"total_quotas":      "TOTAL DE QUOTAS",
	"quota_value":       "VALOR DA QUOTA",
	"forum_city":        "CIDADE DO FORO",
}

// PlaceholderFor returns the bracketed placeholder for a field name.
func PlaceholderFor(field string) string {
	if label, ok := placeholderLabels[field]; ok {
		return "[" + label + "]"
	}
	generic := strings.ToUpper(strings.ReplaceAll(field, "_", " "))
	return "[" + generic + "]"
}

// ApplyPartnerPlaceholders returns a copy of the partner record with every
// empty field replaced by its bracketed placeholder, so the template renderer
// never sees a missing value.
func ApplyPartnerPlaceholders(p PartnerRecord) PartnerRecord {
	out := p
	for _, name := range partnerFieldNames {
		if FieldMissing(out.Field(name)) {
			*out.fieldPtr(name) = PlaceholderFor(name)
		}
	}
	return out
}

// ApplyPlaceholders walks the company record and its embedded partners and
// replaces every empty scalar with a placeholder. Non-empty values pass
// through untouched; partially filled partners keep their filled fields and
// only the gaps are substituted.
func ApplyPlaceholders(c CompanyRecord) CompanyRecord {
	out := c
	for _, name := range companyFieldNames {
		if FieldMissing(out.Field(name)) {
			*out.fieldPtr(name) = PlaceholderFor(name)
		}
	}
	out.Partners = make([]PartnerRecord, len(c.Partners))
	for i, p := range c.Partners {
		out.Partners[i] = ApplyPartnerPlaceholders(p)
	}
	if FieldMissing(out.AdministratorNames) {
		out.AdministratorNames = "[ADMINISTRADORES]"
	}
	return out
}
