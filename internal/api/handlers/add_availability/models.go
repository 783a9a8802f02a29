package add_availability

// AddWindowRequest HTTP request model
type AddWindowRequest struct {
	Recurring    bool    `json:"recurring"`
	DayOfWeek    *int    `json:"dayOfWeek,omitempty"`    // 1-7, понедельник = 1
	SpecificDate *string `json:"specificDate,omitempty"` // "2026-03-15"
	StartTime    string  `json:"startTime"`              // "09:00"
	EndTime      string  `json:"endTime"`                // "17:00"
}
