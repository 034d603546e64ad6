package help

// HelpText contains information about a field
type HelpText struct {
	Title       string
	Description string
	Details     string
}

// Texts contains help information for the Diagnose & Plan form fields
var Texts = map[string]HelpText{
	"primary": {
		Title:       "PRIMARY DIAGNOSIS",
		Description: "The main condition identified from the reviewed documents.",
		Details:     "Use the clinical name, e.g. \"Community-acquired pneumonia\".",
	},
	"evidence": {
		Title:       "SUPPORTING EVIDENCE",
		Description: "Findings that support the diagnosis.",
		Details:     "Reference the documents and annotations from the review phase.",
	},
	"diagnosis_notes": {
		Title:       "ADDITIONAL NOTES",
		Description: "Differential diagnoses, uncertainties or follow-up questions.",
	},
	"treatment": {
		Title:       "RECOMMENDED TREATMENT",
		Description: "The treatment proposed for the primary diagnosis.",
	},
	"start_date": {
		Title:       "START DATE",
		Description: "When treatment should begin.",
		Details:     "Format: YYYY-MM-DD. Leave empty if not yet scheduled.",
	},
	"duration": {
		Title:       "DURATION",
		Description: "Expected length of the treatment.",
		Details:     "A number followed by days, weeks, months or years, e.g. 4 weeks.",
	},
	"details": {
		Title:       "TREATMENT DETAILS",
		Description: "Dosage, frequency and any other instructions.",
	},
	"action": {
		Title:       "REPORT ACTIONS",
		Description: "Finalize the report, then share it or copy a secure link.",
		Details:     "Sharing is available once the report is finalized.",
	},
}
