package models

// LED colors the controller can drive.
const (
	LEDRed    = "red"
	LEDYellow = "yellow"
	LEDBlue   = "blue"
	LEDOff    = "off"
)

// Fan states.
const (
	FanOn  = "on"
	FanOff = "off"
)

// Priority levels, lowest to highest.
const (
	PriorityLow      = "low"
	PriorityMedium   = "medium"
	PriorityHigh     = "high"
	PriorityCritical = "critical"
)

// Actions produced by the rule set.
const (
	ActionStartFan        = "start fan"
	ActionStopFan         = "stop fan"
	ActionTriggerGasAlert = "trigger gas alert"
)

// Decision is the control/alert verdict for one Reading. Every field is
// guaranteed valid by the oracle adapter before the Decision leaves it.
type Decision struct {
	Action    string `json:"action"`
	LED       string `json:"led"`       // red | yellow | blue | off
	Fan       string `json:"fan"`       // on | off
	GasAlert  bool   `json:"gas_alert"`
	Reasoning string `json:"reasoning"`
	Priority  string `json:"priority"` // low | medium | high | critical
}

// ValidLED reports whether s is one of the allowed LED colors.
func ValidLED(s string) bool {
	switch s {
	case LEDRed, LEDYellow, LEDBlue, LEDOff:
		return true
	}
	return false
}

// ValidFan reports whether s is an allowed fan state.
func ValidFan(s string) bool {
	return s == FanOn || s == FanOff
}

// ValidPriority reports whether s is an allowed priority level.
func ValidPriority(s string) bool {
	switch s {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// Escalated reports whether a priority is in the band that pages the operator.
func Escalated(priority string) bool {
	return priority == PriorityHigh || priority == PriorityCritical
}
