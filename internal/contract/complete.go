package contract

import (
	"fmt"
	"strings"

	"github.com/Tiagolw/Automa-o-contrato-social/constants"
)

// requiredPartnerFields lists what every sócio must have before the contract
// counts as complete. regime is left out on purpose: it only applies when the
// civil state indicates marriage, and the check does not encode that
// conditional.
var requiredPartnerFields = []string{
	"name", "nationality", "civil_state", "profession",
	"birth_date", "cpf", "address", "quotas", "amount", "percent",
}

var requiredCompanyFields = []string{
	"company_name", "company_address", "company_object",
	"company_cnae_list", "start_date", "capital_currency",
	"signature_date",
}

// FieldMissing reports whether a value counts as unfilled: empty after
// trimming, a null-ish literal, or a "..."/"___" form placeholder.
func FieldMissing(val string) bool {
	s := strings.TrimSpace(val)
	if s == "" {
		return true
	}
	switch strings.ToLower(s) {
	case "none", "null", "undefined":
		return true
	}
	return strings.HasPrefix(s, "...") || strings.HasPrefix(s, "___")
}

// IsComplete recomputes completeness from the record's fields. It returns the
// ordered list of missing-field markers: partner_<index>_<field> for partner
// gaps, company_<field> for company gaps, no_partners_added when the partner
// list is empty and no_company_data when nothing at all was filled for the
// company.
func IsComplete(c ContractRecord) (bool, []string) {
	var missing []string

	if len(c.Partners) == 0 {
		missing = append(missing, "no_partners_added")
	}
	for i, p := range c.Partners {
		for _, field := range requiredPartnerFields {
			if FieldMissing(p.Field(field)) {
				missing = append(missing, fmt.Sprintf("partner_%d_%s", i, field))
			}
		}
	}

	if c.CompanyData.IsZero() {
		missing = append(missing, "no_company_data")
	} else {
		for _, field := range requiredCompanyFields {
			if FieldMissing(c.CompanyData.Field(field)) {
				missing = append(missing, "company_"+field)
			}
		}
	}

	return len(missing) == 0, missing
}

// EffectiveStatus derives the dashboard status from completeness, never from
// the stored status alone.
func EffectiveStatus(c ContractRecord) constants.ContractStatus {
	if ok, _ := IsComplete(c); !ok {
		return constants.StatusDraft
	}
	return constants.StatusCompleted
}
