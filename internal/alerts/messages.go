package alerts

import (
	"fmt"
	"time"

	"farmwatch/internal/config"
	"farmwatch/internal/models"
)

// Renderer formats category-specific operator messages from a decision and
// the reading that produced it.
type Renderer struct {
	thresholds config.ThresholdConfig
}

// NewRenderer binds the renderer to the active thresholds.
func NewRenderer(t config.ThresholdConfig) *Renderer {
	return &Renderer{thresholds: t}
}

// Gas renders the gas-category message: an alert while the condition holds,
// a clearance confirmation otherwise.
func (r *Renderer) Gas(d models.Decision, reading models.Reading) string {
	if d.GasAlert {
		return fmt.Sprintf("🚨 GAS ALERT! Dangerous gas levels detected (%d/1023). IMMEDIATE ACTION REQUIRED! Check for gas leaks, ensure ventilation, and evacuate if necessary.", reading.GasLevel)
	}
	return fmt.Sprintf("✅ Gas levels normalized (%d/1023). Safe to resume normal operations.", reading.GasLevel)
}

// Temperature renders the temperature-category message. prevFanOn tells the
// normalized branch whether the fan was running before this decision.
func (r *Renderer) Temperature(d models.Decision, reading models.Reading, prevFanOn bool) string {
	temp := reading.Temperature
	switch {
	case temp >= r.thresholds.TempHot:
		if d.Fan == models.FanOn {
			return fmt.Sprintf("🌡️ HIGH TEMP ALERT: %v°C detected! Fan turned ON automatically. Red warning light activated. Please check your crops immediately.", temp)
		}
		return fmt.Sprintf("🌡️ HIGH TEMPERATURE: %v°C recorded. Please monitor your crops closely.", temp)
	case temp < r.thresholds.TempCold:
		return fmt.Sprintf("❄️ LOW TEMP ALERT: %v°C detected! Fan turned OFF. Blue indicator active. Consider protective measures for your crops.", temp)
	default:
		if prevFanOn {
			return fmt.Sprintf("✅ TEMP NORMALIZED: %v°C. Fan turned OFF automatically. Yellow indicator shows normal conditions.", temp)
		}
		return fmt.Sprintf("✅ Temperature normal: %v°C. All systems operating normally.", temp)
	}
}

// Priority renders the escalation message for high and critical decisions.
func (r *Renderer) Priority(d models.Decision, reading models.Reading) string {
	switch d.Priority {
	case models.PriorityCritical:
		return fmt.Sprintf("🚨 CRITICAL ALERT! Multiple issues detected - Temp: %v°C, Gas: %d, Humidity: %v%%. Immediate attention required!", reading.Temperature, reading.GasLevel, reading.Humidity)
	case models.PriorityHigh:
		return fmt.Sprintf("⚠️ HIGH PRIORITY: Environmental conditions need attention - Temp: %v°C, Gas: %d. Please check your setup.", reading.Temperature, reading.GasLevel)
	default:
		return fmt.Sprintf("📊 System Update: All sensors normal - Temp: %v°C, Humidity: %v%%, Gas: %d.", reading.Temperature, reading.Humidity, reading.GasLevel)
	}
}

// Test renders the delivery-check message used by the test endpoint.
func (r *Renderer) Test(now time.Time) string {
	return fmt.Sprintf("🧪 Test message from Farmwatch at %s. SMS alerts are working correctly!", now.Format("2006-01-02 15:04:05"))
}
