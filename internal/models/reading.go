package models

import "time"

// Sensor value bounds for the analog channels (Arduino 10-bit ADC).
const (
	AnalogMin = 0
	AnalogMax = 1023

	HumidityMin = 0.0
	HumidityMax = 100.0
)

// Reading is one timestamped set of sensor values. Immutable once built.
type Reading struct {
	Temperature    float64   `json:"temperature"`     // °C
	Humidity       float64   `json:"humidity"`        // 0–100 %
	LightIntensity int       `json:"light_intensity"` // 0–1023
	GasLevel       int       `json:"gas_level"`       // 0–1023
	Timestamp      time.Time `json:"timestamp"`
}

// ReadingRecord is a processed reading persisted to the history log.
type ReadingRecord struct {
	ID         string    `json:"id"`
	OccurredAt time.Time `json:"occurred_at"`
	Reading    Reading   `json:"reading"`
	Decision   Decision  `json:"decision"`
}
