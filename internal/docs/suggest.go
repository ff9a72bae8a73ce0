// File path: internal/docs/suggest.go
package docs

import "strings"

// defaultSuggestedIDs are the documents every international student is
// likely to need; they seed every suggestion result so the checklist never
// renders empty.
var defaultSuggestedIDs = []string{
	"passport", "i-20", "i-94", "sevis-receipt", "ds-160", "bank-statement",
}

// keywordEntry maps a set of trigger phrases to the documents they surface.
type keywordEntry struct {
	keywords []string
	docIDs   []string
}

// keywordIndex drives suggestion matching. Matching is deliberately coarse:
// plain lowercase substring containment, no tokenization or stemming, so a
// short trigger like "i-94" also fires inside longer unrelated tokens.
var keywordIndex = []keywordEntry{
	{keywords: []string{"visa", "f-1", "f1", "student visa", "entry", "consulate", "embassy", "ds-160", "ds160"}, docIDs: []string{"ds-160", "i-20", "passport", "sevis-receipt", "i-94"}},
	{keywords: []string{"i-20", "i20", "sevis", "dso", "transfer", "program"}, docIDs: []string{"i-20", "sevis-receipt", "enrollment-verify"}},
	{keywords: []string{"work", "job", "employ", "opt", "cpt", "ead", "h-1b", "h1b", "labor", "internship", "practical"}, docIDs: []string{"employment-letter", "ead-card", "cpt-letter", "opt-ead", "i-765", "i-129"}},
	{keywords: []string{"tax", "irs", "income", "w-2", "w2", "1040"}, docIDs: []string{"tax-returns"}},
	{keywords: []string{"financial", "bank", "funds", "tuition", "afford", "money", "sponsor", "support", "scholarship"}, docIDs: []string{"bank-statement", "scholarship-letter", "affidavit-support", "tax-returns"}},
	{keywords: []string{"naturalization", "citizen", "n-400", "n400", "oath"}, docIDs: []string{"n400", "birth-cert", "background-check", "tax-returns", "lease-agreement"}},
	{keywords: []string{"green card", "permanent resid", "i-485", "i485", "adjustment", "i-130", "i130"}, docIDs: []string{"i-485", "i-130", "birth-cert", "passport", "marriage-cert"}},
	{keywords: []string{"marriage", "spouse", "married", "family", "petition"}, docIDs: []string{"marriage-cert", "i-130", "birth-cert"}},
	{keywords: []string{"background", "criminal", "fbi", "moral character", "arrest"}, docIDs: []string{"background-check"}},
	{keywords: []string{"residenc", "lease", "rent", "address", "housing", "landlord"}, docIDs: []string{"lease-agreement"}},
	{keywords: []string{"identity", "id", "birth certificate", "ssn", "social security"}, docIDs: []string{"birth-cert", "passport", "ssn-card"}},
	{keywords: []string{"enroll", "full-time", "registrar", "gpa", "transcript", "academic"}, docIDs: []string{"enrollment-verify", "transcript"}},
	{keywords: []string{"travel", "reentry", "departure", "arrive", "arrival", "i-94", "i94", "cbp"}, docIDs: []string{"i-94", "passport", "i-20"}},
}

// DefaultSuggestedIDs returns a copy of the baseline suggestion set.
func DefaultSuggestedIDs() []string {
	out := make([]string, len(defaultSuggestedIDs))
	copy(out, defaultSuggestedIDs)
	return out
}

// Suggest scans a conversation transcript and returns the ids of documents
// worth surfacing. A transcript holding at most the seeded greeting yields
// the default set unchanged; otherwise every message (both roles) joins a
// lowercase corpus and each keyword entry whose triggers appear as
// substrings contributes its documents. The default set is always unioned
// in, so the result is never empty and always a superset of the baseline.
func Suggest(messages []Message) []string {
	if len(messages) <= 1 {
		return DefaultSuggestedIDs()
	}
	parts := make([]string, 0, len(messages))
	for _, msg := range messages {
		parts = append(parts, msg.Text)
	}
	corpus := strings.ToLower(strings.Join(parts, " "))

	seen := make(map[string]struct{})
	var matched []string
	add := func(id string) {
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		matched = append(matched, id)
	}
	for _, entry := range keywordIndex {
		for _, kw := range entry.keywords {
			if strings.Contains(corpus, kw) {
				for _, id := range entry.docIDs {
					add(id)
				}
				break
			}
		}
	}
	for _, id := range defaultSuggestedIDs {
		add(id)
	}
	return matched
}
