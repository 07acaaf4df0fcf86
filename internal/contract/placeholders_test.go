package contract

import (
	"strings"
	"testing"
)

func TestApplyPartnerPlaceholdersAllEmpty(t *testing.T) {
	got := ApplyPartnerPlaceholders(NewPartnerRecord(0))

	for _, name := range partnerFieldNames {
		v := got.Field(name)
		if v == "" {
			t.Errorf("field %q still empty after placeholder pass", name)
			continue
		}
		if !strings.HasPrefix(v, "[") || !strings.HasSuffix(v, "]") {
			t.Errorf("field %q = %q, want bracketed placeholder", name, v)
		}
	}
	if got.Name != "[NOME COMPLETO]" {
		t.Errorf("Name = %q, want [NOME COMPLETO]", got.Name)
	}
	if got.CPF != "[CPF]" {
		t.Errorf("CPF = %q, want [CPF]", got.CPF)
	}
}

func TestApplyPlaceholdersKeepsFilledValues(t *testing.T) {
	c := CompanyRecord{
		CompanyName: "Acme LTDA",
		Partners:    []PartnerRecord{{ID: 0, Name: "Maria"}},
	}
	got := ApplyPlaceholders(c)

	if got.CompanyName != "Acme LTDA" {
		t.Errorf("CompanyName = %q, want untouched", got.CompanyName)
	}
	if got.Partners[0].Name != "Maria" {
		t.Errorf("partner name = %q, want untouched", got.Partners[0].Name)
	}
	if got.Partners[0].CPF != "[CPF]" {
		t.Errorf("partner cpf = %q, want placeholder", got.Partners[0].CPF)
	}
	if got.CompanyAddress != "[ENDEREÇO DA SEDE]" {
		t.Errorf("CompanyAddress = %q, want placeholder", got.CompanyAddress)
	}
}

func TestApplyPlaceholdersDoesNotMutateInput(t *testing.T) {
	c := CompanyRecord{Partners: []PartnerRecord{{ID: 0}}}
	_ = ApplyPlaceholders(c)
	if c.CompanyName != "" || c.Partners[0].Name != "" {
		t.Error("input record was mutated")
	}
}

func TestPlaceholderForGenericFallback(t *testing.T) {
	if got := PlaceholderFor("mother_name"); got != "[MOTHER NAME]" {
		t.Errorf("PlaceholderFor = %q, want [MOTHER NAME]", got)
	}
}
