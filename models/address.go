package models

// Address is the result of a CEP (Brazilian postal code) lookup against the
// ViaCEP API. JSON tags follow the upstream field names.
type Address struct {
	CEP        string `json:"cep"`
	Street     string `json:"logradouro"`
	Complement string `json:"complemento"`
	District   string `json:"bairro"`
	City       string `json:"localidade"`
	State      string `json:"uf"`

	// NotFound is set by ViaCEP when the CEP is well-formed but does not
	// exist. The API still answers 200 in that case.
	NotFound bool `json:"erro,omitempty"`
}
