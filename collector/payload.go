package collector

import (
	"encoding/json"

	"gorm.io/datatypes"
)

// Per-kind payload variants. items_raw.payload is opaque to the store, but
// each collector writes exactly one of these shapes keyed by its source kind,
// and the facts-pack builder decodes them exhaustively.

// RssPayload is written by the RSS collector.
type RssPayload struct {
	Description string   `json:"description"`
	Categories  []string `json:"categories,omitempty"`
	Creator     string   `json:"creator,omitempty"`
	IsoDate     string   `json:"isoDate,omitempty"`
}

// GithubPayload is written by the GitHub release collector.
type GithubPayload struct {
	TagName    string `json:"tag_name"`
	Name       string `json:"name"`
	Body       string `json:"body"`
	Prerelease bool   `json:"prerelease"`
	Draft      bool   `json:"draft"`
}

// RegistryPayload is written by the package-registry collector.
type RegistryPayload struct {
	Version     string   `json:"version"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords,omitempty"`
	Time        string   `json:"time"`
}

// BlogPayload is written by the blog collector.
type BlogPayload struct {
	Description string `json:"description"`
}

// MarshalPayload serializes a payload variant for the items_raw JSON column.
// Marshalling these fixed shapes cannot fail; a nil payload becomes {}.
func MarshalPayload(payload interface{}) datatypes.JSON {
	if payload == nil {
		return datatypes.JSON([]byte("{}"))
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return datatypes.JSON([]byte("{}"))
	}
	return datatypes.JSON(raw)
}
