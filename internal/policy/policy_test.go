package policy

import (
	"testing"

	"farmwatch/internal/config"
	"farmwatch/internal/models"
)

func testThresholds() config.ThresholdConfig {
	return config.ThresholdConfig{
		TempHot:      30,
		TempCold:     15,
		GasAlert:     300,
		LightBright:  700,
		LightDim:     200,
		HumidityHigh: 70,
		HumidityLow:  30,
	}
}

func TestClassifyLEDFan(t *testing.T) {
	p := New(testThresholds())
	cases := []struct {
		temp               float64
		led, fan, action   string
	}{
		{35, models.LEDRed, models.FanOn, models.ActionStartFan},
		{30, models.LEDRed, models.FanOn, models.ActionStartFan}, // boundary: >= hot
		{29.9, models.LEDYellow, models.FanOff, models.ActionStopFan},
		{15, models.LEDYellow, models.FanOff, models.ActionStopFan}, // boundary: == cold is normal band
		{14.9, models.LEDBlue, models.FanOff, models.ActionStopFan},
		{-5, models.LEDBlue, models.FanOff, models.ActionStopFan},
	}
	for _, tc := range cases {
		led, fan, action := p.ClassifyLEDFan(tc.temp)
		if led != tc.led || fan != tc.fan || action != tc.action {
			t.Errorf("temp=%.1f: got (%s,%s,%s), want (%s,%s,%s)",
				tc.temp, led, fan, action, tc.led, tc.fan, tc.action)
		}
	}
}

func TestClassifyGas_StrictlyGreater(t *testing.T) {
	p := New(testThresholds())
	if p.ClassifyGas(300) {
		t.Fatalf("gas == threshold must not alert")
	}
	if !p.ClassifyGas(301) {
		t.Fatalf("gas just over threshold must alert")
	}
}

func TestClassifyPriority_OrderOfDominance(t *testing.T) {
	p := New(testThresholds())
	cases := []struct {
		name string
		r    models.Reading
		want string
	}{
		{"gas dominates everything", models.Reading{Temperature: 20, Humidity: 50, GasLevel: 500}, models.PriorityCritical},
		{"gas dominates cold temp", models.Reading{Temperature: -10, Humidity: 10, GasLevel: 1023}, models.PriorityCritical},
		{"hot temp", models.Reading{Temperature: 30, Humidity: 50, GasLevel: 100}, models.PriorityHigh},
		{"cold temp", models.Reading{Temperature: 10, Humidity: 50, GasLevel: 100}, models.PriorityHigh},
		{"humidity high", models.Reading{Temperature: 20, Humidity: 80, GasLevel: 100}, models.PriorityMedium},
		{"humidity low", models.Reading{Temperature: 20, Humidity: 10, GasLevel: 100}, models.PriorityMedium},
		{"all normal", models.Reading{Temperature: 20, Humidity: 50, GasLevel: 100}, models.PriorityLow},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := p.ClassifyPriority(tc.r); got != tc.want {
				t.Fatalf("got %s, want %s", got, tc.want)
			}
		})
	}
}

func TestFallback_GasOverridesAction(t *testing.T) {
	p := New(testThresholds())
	d := p.Fallback(models.Reading{Temperature: 35.8, Humidity: 85.0, LightIntensity: 950, GasLevel: 520})
	if d.Action != models.ActionTriggerGasAlert {
		t.Fatalf("action = %q, want %q", d.Action, models.ActionTriggerGasAlert)
	}
	if d.LED != models.LEDRed || d.Fan != models.FanOn {
		t.Fatalf("led/fan = %s/%s, want red/on", d.LED, d.Fan)
	}
	if !d.GasAlert {
		t.Fatalf("expected gas_alert true")
	}
	if d.Priority != models.PriorityCritical {
		t.Fatalf("priority = %s, want critical", d.Priority)
	}
	if d.Reasoning == "" {
		t.Fatalf("expected deterministic reasoning text")
	}
}

func TestFallback_BoundaryValues(t *testing.T) {
	p := New(testThresholds())
	readings := []models.Reading{
		{Temperature: 20, Humidity: 0, LightIntensity: 500, GasLevel: 100},
		{Temperature: 20, Humidity: 100, LightIntensity: 500, GasLevel: 100},
		{Temperature: 20, Humidity: 50, LightIntensity: 0, GasLevel: 100},
		{Temperature: 20, Humidity: 50, LightIntensity: 1023, GasLevel: 100},
		{Temperature: 20, Humidity: 50, LightIntensity: 500, GasLevel: 1023},
	}
	for _, r := range readings {
		d := p.Fallback(r)
		if !models.ValidLED(d.LED) || !models.ValidFan(d.Fan) || !models.ValidPriority(d.Priority) {
			t.Errorf("invalid decision for boundary reading %+v: %+v", r, d)
		}
	}
}
