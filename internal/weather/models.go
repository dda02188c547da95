package weather

import (
	"encoding/json"
)

// DescriptionFallback is reported when the provider sends no textual description.
const DescriptionFallback = "N/A"

// CreateRequest is the caller input for a weather lookup.
type CreateRequest struct {
	Date     string
	Location string
	Notes    string
}

// Record is a single weather lookup: caller input plus the provider's
// current-conditions payload, kept as-is.
type Record struct {
	ID       string          `json:"id"`
	Date     string          `json:"date"`
	Location string          `json:"location"`
	Notes    string          `json:"notes"`
	Weather  json.RawMessage `json:"weather"`
}

// Report is what the creation endpoint returns: the record plus two
// convenience fields lifted from the payload.
type Report struct {
	Record

	// Temperature is the provider's value byte for byte, null when absent.
	Temperature json.RawMessage `json:"temperature"`
	Description string          `json:"description"`
}

// CurrentConditions is the raw "current" object returned by a provider.
type CurrentConditions json.RawMessage
