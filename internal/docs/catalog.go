// File path: internal/docs/catalog.go
package docs

// catalog holds every document the assistant knows about. Entries are
// read-only; callers receive copies.
var catalog = []Document{
	// Identity
	{ID: "birth-cert", Title: "Birth Certificate (Original)", Source: "Vital Records Office", DueDate: "Feb 1, 2026", Description: "Original or certified copy of birth certificate", Status: StatusVerified, Category: CategoryIdentity},
	{ID: "passport", Title: "Passport Copy", Source: "Department of State", Description: "Valid passport identification page copy", Status: StatusVerified, Category: CategoryIdentity},
	{ID: "ssn-card", Title: "Social Security Card", Source: "SSA", Description: "Original Social Security card or replacement letter", Status: StatusPending, Category: CategoryIdentity},
	// Student / visa
	{ID: "i-20", Title: "Form I-20 (Certificate of Eligibility)", Source: "University DSO", DueDate: "Feb 15, 2026", Description: "SEVIS certificate of eligibility for F-1 status", Status: StatusUploaded, Category: CategoryStudent},
	{ID: "ds-160", Title: "DS-160 Visa Application", Source: "U.S. Embassy / Consulate", Description: "Online non-immigrant visa application confirmation", Status: StatusPending, Category: CategoryStudent},
	{ID: "sevis-receipt", Title: "SEVIS I-901 Fee Receipt", Source: "ICE / SEVP", DueDate: "Feb 10, 2026", Description: "Payment confirmation for the I-901 SEVIS fee", Status: StatusUploaded, Category: CategoryStudent},
	{ID: "i-94", Title: "I-94 Arrival / Departure Record", Source: "CBP", Description: "Electronic record of arrival and authorized stay", Status: StatusVerified, Category: CategoryStudent},
	{ID: "enrollment-verify", Title: "Enrollment Verification Letter", Source: "University Registrar", Description: "Official letter confirming full-time enrollment status", Status: StatusPending, Category: CategoryStudent},
	{ID: "transcript", Title: "Academic Transcript", Source: "University Registrar", Description: "Official academic transcript with current GPA", Status: StatusPending, Category: CategoryStudent},
	// Applications
	{ID: "n400", Title: "Form N-400 (Naturalization)", Source: "USCIS", DueDate: "Feb 7, 2026", Description: "Application for naturalization form", Status: StatusUploaded, Category: CategoryApplications},
	{ID: "i-765", Title: "Form I-765 (EAD Application)", Source: "USCIS", Description: "Application for employment authorization document", Status: StatusPending, Category: CategoryApplications},
	{ID: "i-485", Title: "Form I-485 (Adjustment of Status)", Source: "USCIS", Description: "Application to register permanent residence", Status: StatusPending, Category: CategoryApplications},
	{ID: "i-130", Title: "Form I-130 (Relative Petition)", Source: "USCIS", Description: "Petition for alien relative", Status: StatusPending, Category: CategoryApplications},
	{ID: "i-129", Title: "Form I-129 (Worker Petition)", Source: "USCIS", Description: "Petition for a non-immigrant worker (H-1B, L-1, etc.)", Status: StatusPending, Category: CategoryApplications},
	// Financial
	{ID: "tax-returns", Title: "Tax Returns (Last 5 Years)", Source: "IRS", DueDate: "Feb 14, 2026", Description: "Federal tax return transcripts for the last 5 years", Status: StatusUploaded, Category: CategoryFinancial},
	{ID: "bank-statement", Title: "Bank Statement / Financial Proof", Source: "Financial Institution", Description: "Recent bank statements showing sufficient funds", Status: StatusPending, Category: CategoryFinancial},
	{ID: "scholarship-letter", Title: "Scholarship Award Letter", Source: "University Financial Aid", Description: "Official letter confirming scholarship or financial aid", Status: StatusPending, Category: CategoryFinancial},
	{ID: "affidavit-support", Title: "Affidavit of Support (I-134)", Source: "Sponsor", Description: "Financial sponsor affidavit guaranteeing support", Status: StatusPending, Category: CategoryFinancial},
	// Work
	{ID: "employment-letter", Title: "Employment Verification Letter", Source: "Current Employer", DueDate: "Feb 10, 2026", Description: "Letter confirming current employment status", Status: StatusUploaded, Category: CategoryWork},
	{ID: "ead-card", Title: "EAD Card (Employment Auth.)", Source: "USCIS", Description: "Employment Authorization Document card", Status: StatusPending, Category: CategoryWork},
	{ID: "cpt-letter", Title: "CPT Authorization Letter", Source: "University DSO", Description: "Curricular Practical Training authorization for off-campus work", Status: StatusPending, Category: CategoryWork},
	{ID: "opt-ead", Title: "OPT EAD Card", Source: "USCIS", Description: "Optional Practical Training employment authorization", Status: StatusPending, Category: CategoryWork},
	// Family
	{ID: "marriage-cert", Title: "Marriage Certificate", Source: "County Clerk", Description: "Certified copy of marriage certificate", Status: StatusVerified, Category: CategoryFamily},
	// Background
	{ID: "background-check", Title: "FBI Background Check", Source: "FBI", DueDate: "Mar 1, 2026", Description: "Criminal background check clearance", Status: StatusUploaded, Category: CategoryBackground},
	// Residence
	{ID: "lease-agreement", Title: "Lease Agreement", Source: "Landlord / Property Management", Description: "Current residential lease or mortgage statement", Status: StatusVerified, Category: CategoryResidence},
}

var catalogByID = buildCatalogIndex()

func buildCatalogIndex() map[string]Document {
	index := make(map[string]Document, len(catalog))
	for _, doc := range catalog {
		index[doc.ID] = doc
	}
	return index
}

// Catalog returns a copy of the full document pool in catalog order.
func Catalog() []Document {
	out := make([]Document, len(catalog))
	copy(out, catalog)
	return out
}

// ByID looks up a single catalog entry.
func ByID(id string) (Document, bool) {
	doc, ok := catalogByID[id]
	return doc, ok
}

// Resolve maps document ids to full records, preserving input order and
// dropping ids the catalog does not know.
func Resolve(ids []string) []Document {
	if len(ids) == 0 {
		return nil
	}
	out := make([]Document, 0, len(ids))
	for _, id := range ids {
		if doc, ok := catalogByID[id]; ok {
			out = append(out, doc)
		}
	}
	return out
}
