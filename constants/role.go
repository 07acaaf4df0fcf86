package constants

// DocumentRole says what an uploaded file is supposed to prove.
type DocumentRole string

const (
	RoleIdentity     DocumentRole = "identity"      // CNH, CIN, RG
	RoleAddressProof DocumentRole = "address-proof" // utility bill, bank statement
	RoleCompany      DocumentRole = "company"       // contrato social, cartão CNPJ
)

// PartnerCount bounds for one contract.
const (
	MinPartners = 1
	MaxPartners = 10
)

// ClampPartnerCount forces n into the allowed partner range.
func ClampPartnerCount(n int) int {
	if n < MinPartners {
		return MinPartners
	}
	if n > MaxPartners {
		return MaxPartners
	}
	return n
}
