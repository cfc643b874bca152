package model

// FormatResponse represents response for GET /currency/format
type FormatResponse struct {
	Amount    string `json:"amount"`
	Currency  string `json:"currency"`
	Language  string `json:"language"`
	Formatted string `json:"formatted"`
}

// ConvertResponse represents response for GET /currency/convert
type ConvertResponse struct {
	Amount    string `json:"amount"`
	Currency  string `json:"currency"`
	Value     string `json:"value"`
	Formatted string `json:"formatted"`
	Source    string `json:"source,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}
