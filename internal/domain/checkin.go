package domain

// Cadence is the periodicity of a reflection check-in.
type Cadence string

const (
	CadenceWeekly  Cadence = "weekly"  // anchor day Monday, period "YYYY-Www"
	CadenceMonthly Cadence = "monthly" // anchor day the 1st, period "YYYY-MM"
)

// ValidCadence reports whether c is a known cadence.
func ValidCadence(c Cadence) bool {
	return c == CadenceWeekly || c == CadenceMonthly
}

// CheckInState is the prompt state for one cadence on one day.
type CheckInState struct {
	Cadence        Cadence `json:"cadence"`
	Period         string  `json:"period"`
	ShowPrompt     bool    `json:"show_prompt"`
	Completed      bool    `json:"completed"` // completed this period
	Dismissed      bool    `json:"dismissed"` // dismissed this period
	OpenIntentions int     `json:"open_intentions,omitempty"`
}
