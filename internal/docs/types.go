// File path: internal/docs/types.go
package docs

// Category tags a document with the case area it belongs to. Categories are
// the join key between documents and the analyses in the flowchart.
type Category string

const (
	CategoryIdentity     Category = "Identity"
	CategoryStudent      Category = "Student"
	CategoryApplications Category = "Applications"
	CategoryFinancial    Category = "Financial"
	CategoryWork         Category = "Work"
	CategoryFamily       Category = "Family"
	CategoryBackground   Category = "Background"
	CategoryResidence    Category = "Residence"
)

// Status reports how far a document has progressed through intake.
type Status string

const (
	StatusVerified Status = "VERIFIED"
	StatusUploaded Status = "UPLOADED"
	StatusPending  Status = "PENDING"
)

// Document is a static checklist entry. The catalog is fixed at build time;
// documents are only ever selected or filtered, never created at runtime.
type Document struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Source      string   `json:"source"`
	DueDate     string   `json:"due_date,omitempty"`
	Description string   `json:"description"`
	Status      Status   `json:"status"`
	Category    Category `json:"category"`
}

// Message roles as they appear in a conversation transcript.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn of the conversation transcript.
type Message struct {
	Role string `json:"role"`
	Text string `json:"text"`
}
