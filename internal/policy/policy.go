package policy

import (
	"fmt"

	"farmwatch/internal/config"
	"farmwatch/internal/models"
)

// Policy is the deterministic rule set over the configured thresholds.
// It is pure: no state, no I/O, and it serves as the fallback whenever the
// decision oracle is unavailable or returns garbage.
type Policy struct {
	cfg config.ThresholdConfig
}

// New returns a Policy bound to the given thresholds.
func New(cfg config.ThresholdConfig) *Policy {
	return &Policy{cfg: cfg}
}

// Thresholds returns the active threshold set.
func (p *Policy) Thresholds() config.ThresholdConfig {
	return p.cfg
}

// ClassifyLEDFan maps a temperature to (led, fan, action):
//
//	temp >= hot          → red, fan on, "start fan"
//	cold <= temp < hot   → yellow, fan off, "stop fan"
//	temp < cold          → blue, fan off, "stop fan"
func (p *Policy) ClassifyLEDFan(temperature float64) (led, fan, action string) {
	switch {
	case temperature >= p.cfg.TempHot:
		return models.LEDRed, models.FanOn, models.ActionStartFan
	case temperature < p.cfg.TempCold:
		return models.LEDBlue, models.FanOff, models.ActionStopFan
	default:
		return models.LEDYellow, models.FanOff, models.ActionStopFan
	}
}

// ClassifyGas reports whether the gas level is over the alert threshold.
func (p *Policy) ClassifyGas(gasLevel int) bool {
	return gasLevel > p.cfg.GasAlert
}

// ClassifyPriority ranks a reading. Checks run in order and the first match
// wins: gas strictly dominates temperature, which dominates humidity.
func (p *Policy) ClassifyPriority(r models.Reading) string {
	switch {
	case r.GasLevel > p.cfg.GasAlert:
		return models.PriorityCritical
	case r.Temperature >= p.cfg.TempHot || r.Temperature < p.cfg.TempCold:
		return models.PriorityHigh
	case r.Humidity > p.cfg.HumidityHigh || r.Humidity < p.cfg.HumidityLow:
		return models.PriorityMedium
	default:
		return models.PriorityLow
	}
}

// Fallback composes the rule set into a complete Decision. A gas alert
// overrides the temperature-derived action.
func (p *Policy) Fallback(r models.Reading) models.Decision {
	led, fan, action := p.ClassifyLEDFan(r.Temperature)
	gasAlert := p.ClassifyGas(r.GasLevel)
	if gasAlert {
		action = models.ActionTriggerGasAlert
	}
	return models.Decision{
		Action:    action,
		LED:       led,
		Fan:       fan,
		GasAlert:  gasAlert,
		Reasoning: fmt.Sprintf("Fallback rule-based decision: temp=%v°C, gas=%d", r.Temperature, r.GasLevel),
		Priority:  p.ClassifyPriority(r),
	}
}
