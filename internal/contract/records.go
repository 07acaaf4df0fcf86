package contract

import (
	"time"

	"github.com/Tiagolw/Automa-o-contrato-social/constants"
)

// PartnerRecord holds everything the contract template needs about one sócio.
// All values are strings; the empty string means "not filled yet".
type PartnerRecord struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Nationality string `json:"nationality"`
	CivilState  string `json:"civil_state"`
	Regime      string `json:"regime"`
	Profession  string `json:"profession"`
	BirthDate   string `json:"birth_date"`
	CPF         string `json:"cpf"`
	Address     string `json:"address"`
	Quotas      string `json:"quotas"`
	Amount      string `json:"amount"`
	Percent     string `json:"percent"`
}

// NewPartnerRecord returns a partner with every field present and empty.
// The id is the partner's index in the contract and stays stable for the
// lifetime of one assembly session.
func NewPartnerRecord(id int) PartnerRecord {
	return PartnerRecord{ID: id}
}

// partnerFields maps extraction-result keys to record fields, in the order
// the form presents them.
var partnerFieldNames = []string{
	"name", "nationality", "civil_state", "regime", "profession",
	"birth_date", "cpf", "address", "quotas", "amount", "percent",
}

func (p *PartnerRecord) fieldPtr(name string) *string {
	switch name {
	case "name":
		return &p.Name
	case "nationality":
		return &p.Nationality
	case "civil_state":
		return &p.CivilState
	case "regime":
		return &p.Regime
	case "profession":
		return &p.Profession
	case "birth_date":
		return &p.BirthDate
	case "cpf":
		return &p.CPF
	case "address":
		return &p.Address
	case "quotas":
		return &p.Quotas
	case "amount":
		return &p.Amount
	case "percent":
		return &p.Percent
	default:
		return nil
	}
}

// Field returns the value for an extraction-result key, or "" for unknown keys.
func (p PartnerRecord) Field(name string) string {
	if ptr := p.fieldPtr(name); ptr != nil {
		return *ptr
	}
	return ""
}

// CompanyRecord holds the company-level template fields plus the embedded
// partner list. TotalQuotas, QuotaValue and ForumCity are extracted when the
// documents carry them but are not part of the completeness check.
type CompanyRecord struct {
	CompanyName     string `json:"company_name"`
	CompanyAddress  string `json:"company_address"`
	CompanyObject   string `json:"company_object"`
	CompanyCNAEList string `json:"company_cnae_list"`
	StartDate       string `json:"start_date"`
	CapitalCurrency string `json:"capital_currency"`
	SignatureDate   string `json:"signature_date"`
	TotalQuotas     string `json:"total_quotas,omitempty"`
	QuotaValue      string `json:"quota_value,omitempty"`
	ForumCity       string `json:"forum_city,omitempty"`

	AdministratorNames string          `json:"administrator_names"`
	Partners           []PartnerRecord `json:"partners"`
}

var companyFieldNames = []string{
	"company_name", "company_address", "company_object", "company_cnae_list",
	"start_date", "capital_currency", "signature_date",
	"total_quotas", "quota_value", "forum_city",
}

func (c *CompanyRecord) fieldPtr(name string) *string {
	switch name {
	case "company_name":
		return &c.CompanyName
	case "company_address":
		return &c.CompanyAddress
	case "company_object":
		return &c.CompanyObject
	case "company_cnae_list":
		return &c.CompanyCNAEList
	case "start_date":
		return &c.StartDate
	case "capital_currency":
		return &c.CapitalCurrency
	case "signature_date":
		return &c.SignatureDate
	case "total_quotas":
		return &c.TotalQuotas
	case "quota_value":
		return &c.QuotaValue
	case "forum_city":
		return &c.ForumCity
	default:
		return nil
	}
}

// Field returns the value for an extraction-result key, or "" for unknown keys.
func (c CompanyRecord) Field(name string) string {
	if ptr := c.fieldPtr(name); ptr != nil {
		return *ptr
	}
	return ""
}

// IsZero reports whether no company field has been filled at all.
func (c CompanyRecord) IsZero() bool {
	for _, name := range companyFieldNames {
		if c.Field(name) != "" {
			return false
		}
	}
	return len(c.Partners) == 0 && c.AdministratorNames == ""
}

// DeriveAdministrators sets administrator_names to the comma-joined names of
// all partners that have one.
func (c *CompanyRecord) DeriveAdministrators() {
	names := make([]string, 0, len(c.Partners))
	for _, p := range c.Partners {
		if p.Name != "" {
			names = append(names, p.Name)
		}
	}
	c.AdministratorNames = joinComma(names)
}

// ContractRecord is the persisted unit: one company plus its partners.
type ContractRecord struct {
	ID          string                   `json:"id"`
	Name        string                   `json:"name"`
	Status      constants.ContractStatus `json:"status"`
	Partners    []PartnerRecord          `json:"partners"`
	CompanyData CompanyRecord            `json:"company_data"`
	CreatedAt   time.Time                `json:"created_at"`
	UpdatedAt   time.Time                `json:"updated_at"`
}

func joinComma(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += ", "
		}
		out += p
	}
	return out
}
