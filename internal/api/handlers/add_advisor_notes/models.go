package add_advisor_notes

// AdvisorNotesRequest HTTP request model
type AdvisorNotesRequest struct {
	Notes string `json:"notes"`
}
