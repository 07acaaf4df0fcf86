package llm

// DocumentPrompt is the field enumeration used by the fallback text model,
// which supports a strict JSON-only response contract.
const DocumentPrompt = `Extract data from the provided text for a "Contrato Social".
Return a JSON object with keys:
- name (Full Name)
- nationality
- civil_state
- regime (if married)
- profession
- birth_date
- cpf
- address (Full address including CEP)

If it's a company document, extract:
- company_name
- company_address
- company_object
- company_cnae_list
- start_date
- capital_currency
- total_quotas
- quota_value
- forum_city

Return minimal valid JSON.`

// PrimaryTextPrompt is the field enumeration used by the primary text model,
// whose free-form replies get scanned for the first balanced JSON object.
const PrimaryTextPrompt = `Analise o texto a seguir e extraia as informações em formato JSON.

Para documentos de identidade (RG, CNH, CIN):
- name (Nome Completo)
- nationality (Nacionalidade)
- civil_state (Estado Civil, se visível)
- birth_date (Data de Nascimento no formato DD/MM/AAAA)
- cpf (CPF, se visível)
- address (Endereço completo formatado como: Rua Nome, Número, Bairro, Cidade/UF, CEP)

Para documentos de empresa (Contrato Social, Cartão CNPJ):
- company_name (Razão Social completa)
- company_address (Endereço da Sede formatado como: Logradouro, Número, Complemento, Bairro, Cidade/UF, CEP 00000-000)
- company_object (Objeto Social resumido)
- company_cnae_list (Lista de CNAEs/Atividades separadas por vírgula)
- start_date (Data de Início no formato DD/MM/AAAA)
- capital_currency (Capital Social em R$)
- total_quotas (Total de Quotas)
- quota_value (Valor por Quota)
- forum_city (Cidade do Foro)

IMPORTANTE: Formate os endereços de forma limpa e legível, removendo quebras de linha e caracteres estranhos.

Retorne APENAS o JSON. Texto do documento:`

// IdentityPrompt drives vision extraction over Brazilian identity documents.
const IdentityPrompt = `Você é um especialista em extração de dados de documentos brasileiros.

Analise esta imagem de documento de identificação (pode ser CNH, CIN, RG, ou outro documento de identidade brasileiro) e extraia TODAS as informações visíveis.

CAMPOS OBRIGATÓRIOS (extraia mesmo se parcialmente visíveis):
- name: Nome completo EXATAMENTE como aparece no documento
- birth_date: Data de nascimento no formato DD/MM/AAAA
- cpf: CPF com 11 dígitos (pode ter pontos e traço)

CAMPOS OPCIONAIS (extraia se visíveis):
- nationality: Nacionalidade (geralmente "BRASILEIRA" ou "BRASILEIRO")
- civil_state: Estado civil se visível
- rg: Número do RG/Identidade
- rg_issuer: Órgão emissor do RG (ex: SSP/SC)
- cnh_number: Número de registro da CNH se for CNH
- cnh_validity: Data de validade da CNH
- cnh_category: Categoria da CNH (A, B, AB, etc)
- address: Endereço completo se visível
- mother_name: Nome da mãe
- father_name: Nome do pai

INSTRUÇÕES IMPORTANTES:
1. Leia o documento com MUITA atenção, letra por letra
2. Para CNH digital ou física, o nome está no campo "NOME"
3. Para CIN, o nome está próximo à foto
4. Datas devem estar no formato DD/MM/AAAA
5. Se não conseguir ler um campo, omita-o do JSON
6. NÃO invente dados - só inclua o que está claramente visível

Retorne APENAS um objeto JSON válido, sem explicações.`

// AddressProofPrompt drives vision extraction over address proofs.
const AddressProofPrompt = `Você é um especialista em extração de dados de comprovantes de endereço brasileiros.

Analise esta imagem de comprovante de endereço (pode ser conta de luz, água, telefone, internet, banco, ou outro) e extraia as informações.

CAMPOS A EXTRAIR:
- holder_name: Nome do titular/cliente que aparece no documento
- street: Nome da rua/avenida/logradouro
- number: Número do imóvel
- complement: Complemento (apartamento, bloco, sala, etc) - se houver
- neighborhood: Bairro
- city: Cidade
- state: Estado (sigla UF, ex: SP, SC, RJ)
- zip_code: CEP no formato 00000-000
- full_address: Endereço completo formatado como: "Rua Nome, 123, Complemento, Bairro, Cidade/UF, CEP 00000-000"

INSTRUÇÕES:
1. Leia cuidadosamente todos os campos de endereço
2. O CEP geralmente está próximo ao endereço
3. Formate o endereço de forma limpa e legível
4. Se não conseguir ler um campo, omita-o
5. NÃO invente dados

Retorne APENAS um objeto JSON válido.`

// PromptFor returns the vision prompt text for a prompt kind.
func PromptFor(kind PromptKind) string {
	switch kind {
	case PromptAddressProof:
		return AddressProofPrompt
	case PromptIdentity:
		return IdentityPrompt
	default:
		return DocumentPrompt
	}
}
