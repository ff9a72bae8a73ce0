// File path: internal/flowchart/types.go
package flowchart

import "github.com/legol-ai/legol/internal/docs"

// NodeStatus is the three-state document badge rendered on the flowchart.
type NodeStatus string

const (
	NodeStatusVerified NodeStatus = "verified"
	NodeStatusUploaded NodeStatus = "uploaded"
	NodeStatusPending  NodeStatus = "pending"
)

// DocumentNode is the lightweight projection of a catalog document that
// appears in the left column of the flowchart.
type DocumentNode struct {
	ID       string        `json:"id"`
	Label    string        `json:"label"`
	Category docs.Category `json:"category"`
	Status   NodeStatus    `json:"status"`
}

// Analysis is a middle-column node describing one review the assistant
// performs. ApplicableCategories decides which documents feed it.
type Analysis struct {
	ID                   string          `json:"id"`
	Label                string          `json:"label"`
	Description          string          `json:"description"`
	ApplicableCategories []docs.Category `json:"applicable_categories"`
}

// LegalReference is a right-column node citing the source of law backing an
// analysis. ApplicableAnalyses decides which analyses feed it.
type LegalReference struct {
	ID                 string   `json:"id"`
	Label              string   `json:"label"`
	Subtitle           string   `json:"subtitle"`
	Description        string   `json:"description"`
	ApplicableAnalyses []string `json:"applicable_analyses"`
}

// Connection is a directed edge between two flowchart nodes. Edges always
// route document -> analysis -> legal reference; documents never connect to
// legal references directly.
type Connection struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Graph is the fully derived three-tier flowchart. It is rebuilt from
// scratch whenever the suggestion set changes, never patched in place.
type Graph struct {
	Documents   []DocumentNode   `json:"documents"`
	Analyses    []Analysis       `json:"analyses"`
	LegalTexts  []LegalReference `json:"legal_texts"`
	Connections []Connection     `json:"connections"`
}
