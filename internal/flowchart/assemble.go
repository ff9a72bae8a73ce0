// File path: internal/flowchart/assemble.go
package flowchart

import (
	"strings"

	"github.com/legol-ai/legol/internal/docs"
)

const maxLabelRunes = 32

// analysisCatalog lists every review the assistant can run, joined to
// documents by category.
var analysisCatalog = []Analysis{
	{ID: "identity-verification", Label: "Identity Verification", Description: "Cross-references identity documents for authenticity and consistency", ApplicableCategories: []docs.Category{docs.CategoryIdentity}},
	{ID: "eligibility-check", Label: "Eligibility Assessment", Description: "Evaluates applicant qualifications against statutory requirements", ApplicableCategories: []docs.Category{docs.CategoryApplications, docs.CategoryFamily}},
	{ID: "financial-review", Label: "Financial Review", Description: "Analyzes financial standing and tax compliance history", ApplicableCategories: []docs.Category{docs.CategoryFinancial, docs.CategoryWork}},
	{ID: "background-analysis", Label: "Background Analysis", Description: "Reviews criminal history and moral character requirements", ApplicableCategories: []docs.Category{docs.CategoryBackground}},
	{ID: "residency-proof", Label: "Residency Verification", Description: "Confirms continuous residency and physical presence", ApplicableCategories: []docs.Category{docs.CategoryResidence, docs.CategoryFinancial}},
}

// legalCatalog lists the citations backing each analysis.
var legalCatalog = []LegalReference{
	{ID: "ina-316", Label: "INA § 316", Subtitle: "General Naturalization Requirements", Description: "Residency, physical presence, and good moral character requirements for naturalization.", ApplicableAnalyses: []string{"identity-verification", "eligibility-check", "financial-review", "residency-proof"}},
	{ID: "ina-312", Label: "INA § 312", Subtitle: "English & Civics Requirements", Description: "Language proficiency and knowledge of US history and government.", ApplicableAnalyses: []string{"eligibility-check"}},
	{ID: "ina-101", Label: "INA § 101(f)", Subtitle: "Good Moral Character", Description: "Statutory bars and conditions defining good moral character for immigration purposes.", ApplicableAnalyses: []string{"financial-review", "background-analysis"}},
	{ID: "8cfr-316", Label: "8 CFR § 316.2", Subtitle: "Continuous Residence", Description: "Regulatory definition of continuous residence and exceptions for breaks.", ApplicableAnalyses: []string{"residency-proof"}},
	{ID: "8cfr-319", Label: "8 CFR § 319.1", Subtitle: "Spouse of US Citizen", Description: "Reduced residency requirements for applicants married to US citizens.", ApplicableAnalyses: []string{"eligibility-check"}},
	{ID: "uscis-policy", Label: "USCIS Policy Manual", Subtitle: "Vol. 12, Part D", Description: "General eligibility requirements including age, residency, and moral character.", ApplicableAnalyses: []string{"background-analysis"}},
}

// Analyses returns a copy of the static analysis catalog.
func Analyses() []Analysis {
	out := make([]Analysis, len(analysisCatalog))
	copy(out, analysisCatalog)
	return out
}

// LegalReferences returns a copy of the static legal-reference catalog.
func LegalReferences() []LegalReference {
	out := make([]LegalReference, len(legalCatalog))
	copy(out, legalCatalog)
	return out
}

// Assemble derives the flowchart for a set of suggested documents. Analyses
// are included when their applicable categories intersect the categories
// present among the documents; legal references are included when they cite
// an included analysis. The function is pure: the same documents always
// yield the same graph, and an empty input yields an empty graph.
func Assemble(suggested []docs.Document) Graph {
	graph := Graph{
		Documents:   make([]DocumentNode, 0, len(suggested)),
		Analyses:    make([]Analysis, 0, len(analysisCatalog)),
		LegalTexts:  make([]LegalReference, 0, len(legalCatalog)),
		Connections: make([]Connection, 0),
	}

	presentCategories := make(map[docs.Category]struct{}, len(suggested))
	for _, doc := range suggested {
		graph.Documents = append(graph.Documents, DocumentNode{
			ID:       doc.ID,
			Label:    displayLabel(doc.Title),
			Category: doc.Category,
			Status:   mapStatus(doc.Status),
		})
		presentCategories[doc.Category] = struct{}{}
	}

	includedAnalyses := make(map[string]struct{})
	for _, analysis := range analysisCatalog {
		if !intersectsCategories(analysis.ApplicableCategories, presentCategories) {
			continue
		}
		graph.Analyses = append(graph.Analyses, analysis)
		includedAnalyses[analysis.ID] = struct{}{}
	}

	for _, legal := range legalCatalog {
		if !intersectsAnalyses(legal.ApplicableAnalyses, includedAnalyses) {
			continue
		}
		graph.LegalTexts = append(graph.LegalTexts, legal)
	}

	for _, doc := range suggested {
		for _, analysis := range graph.Analyses {
			if categoryApplies(analysis.ApplicableCategories, doc.Category) {
				graph.Connections = append(graph.Connections, Connection{From: doc.ID, To: analysis.ID})
			}
		}
	}
	for _, analysis := range graph.Analyses {
		for _, legal := range graph.LegalTexts {
			if analysisApplies(legal.ApplicableAnalyses, analysis.ID) {
				graph.Connections = append(graph.Connections, Connection{From: analysis.ID, To: legal.ID})
			}
		}
	}
	return graph
}

// displayLabel cleans a catalog title for node rendering: a trailing
// parenthetical is dropped and overly long labels are truncated.
func displayLabel(title string) string {
	label := strings.TrimSpace(title)
	if idx := strings.Index(label, " ("); idx > 0 && strings.HasSuffix(label, ")") {
		label = strings.TrimSpace(label[:idx])
	}
	runes := []rune(label)
	if len(runes) > maxLabelRunes {
		label = strings.TrimSpace(string(runes[:maxLabelRunes-1])) + "…"
	}
	return label
}

func mapStatus(status docs.Status) NodeStatus {
	switch status {
	case docs.StatusVerified:
		return NodeStatusVerified
	case docs.StatusUploaded:
		return NodeStatusUploaded
	default:
		return NodeStatusPending
	}
}

func intersectsCategories(categories []docs.Category, present map[docs.Category]struct{}) bool {
	for _, category := range categories {
		if _, ok := present[category]; ok {
			return true
		}
	}
	return false
}

func intersectsAnalyses(analyses []string, included map[string]struct{}) bool {
	for _, id := range analyses {
		if _, ok := included[id]; ok {
			return true
		}
	}
	return false
}

func categoryApplies(categories []docs.Category, category docs.Category) bool {
	for _, candidate := range categories {
		if candidate == category {
			return true
		}
	}
	return false
}

func analysisApplies(analyses []string, id string) bool {
	for _, candidate := range analyses {
		if candidate == id {
			return true
		}
	}
	return false
}
