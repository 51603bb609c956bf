package oracle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"farmwatch/internal/logger"
	"farmwatch/internal/metrics"
	"farmwatch/internal/models"
	"farmwatch/internal/policy"
)

// Adapter turns a Reading into a validated Decision. Evaluate is total:
// whatever the oracle does, the caller always gets a Decision. A structurally
// broken reply is discarded wholesale in favor of the rule-based fallback; a
// syntactically valid reply with sloppy field values is repaired field by
// field against the same rules.
type Adapter struct {
	oracle Oracle
	rules  *policy.Policy
	log    *logger.Logger
}

// NewAdapter wires the oracle capability to the rule set.
func NewAdapter(o Oracle, rules *policy.Policy, log *logger.Logger) *Adapter {
	return &Adapter{oracle: o, rules: rules, log: log}
}

// Evaluate asks the oracle for a decision and degrades to the rule-based
// fallback on any invocation or parse failure. It never returns an error.
func (a *Adapter) Evaluate(ctx context.Context, r models.Reading) models.Decision {
	prompt := a.buildPrompt(r)

	started := time.Now()
	raw, err := a.oracle.Generate(ctx, prompt)
	metrics.OracleRequestDuration.Observe(time.Since(started).Seconds())
	if err != nil {
		a.logw("oracle_call_failed", "err", err)
		metrics.OracleRequestsTotal.WithLabelValues("fallback").Inc()
		return a.rules.Fallback(r)
	}

	decision, repaired, err := a.decodeReply(raw, r)
	if err != nil {
		a.logw("oracle_reply_rejected", "err", err, "raw", truncate(raw, 200))
		metrics.OracleRequestsTotal.WithLabelValues("fallback").Inc()
		return a.rules.Fallback(r)
	}
	if repaired {
		metrics.OracleRequestsTotal.WithLabelValues("repaired").Inc()
	} else {
		metrics.OracleRequestsTotal.WithLabelValues("ok").Inc()
	}
	return decision
}

// replyWire delays field decoding so that a wrong-typed repairable field
// degrades to repair instead of rejecting the whole reply.
type replyWire struct {
	Action    *string         `json:"action"`
	LED       json.RawMessage `json:"led"`
	Fan       json.RawMessage `json:"fan"`
	GasAlert  json.RawMessage `json:"gas_alert"`
	Reasoning *string         `json:"reasoning"`
	Priority  json.RawMessage `json:"priority"`
}

var (
	errMissingField = errors.New("reply missing required field")
	errNotObject    = errors.New("reply is not a JSON object")
)

// decodeReply parses the raw oracle text into a Decision. It returns an
// error only for structural problems (malformed JSON, missing fields,
// non-string action/reasoning); invalid values in led/fan/gas_alert/priority
// are repaired from the rule set and reported via the repaired flag.
func (a *Adapter) decodeReply(raw string, r models.Reading) (models.Decision, bool, error) {
	text := stripCodeFences(strings.TrimSpace(raw))

	var wire replyWire
	dec := json.NewDecoder(strings.NewReader(text))
	if err := dec.Decode(&wire); err != nil {
		return models.Decision{}, false, fmt.Errorf("%w: %v", errNotObject, err)
	}

	if wire.Action == nil || wire.Reasoning == nil ||
		wire.LED == nil || wire.Fan == nil || wire.GasAlert == nil || wire.Priority == nil {
		return models.Decision{}, false, errMissingField
	}

	d := models.Decision{
		Action:    *wire.Action,
		Reasoning: *wire.Reasoning,
	}
	repaired := false

	var led string
	if err := json.Unmarshal(wire.LED, &led); err != nil || !models.ValidLED(led) {
		led, _, _ = a.rules.ClassifyLEDFan(r.Temperature)
		repaired = true
		a.logw("oracle_field_repaired", "field", "led")
	}
	d.LED = led

	var fan string
	if err := json.Unmarshal(wire.Fan, &fan); err != nil || !models.ValidFan(fan) {
		fan = models.FanOff
		if r.Temperature >= a.rules.Thresholds().TempHot {
			fan = models.FanOn
		}
		repaired = true
		a.logw("oracle_field_repaired", "field", "fan")
	}
	d.Fan = fan

	var gasAlert bool
	if err := json.Unmarshal(wire.GasAlert, &gasAlert); err != nil {
		gasAlert = a.rules.ClassifyGas(r.GasLevel)
		repaired = true
		a.logw("oracle_field_repaired", "field", "gas_alert")
	}
	d.GasAlert = gasAlert

	var priority string
	if err := json.Unmarshal(wire.Priority, &priority); err != nil || !models.ValidPriority(priority) {
		priority = a.rules.ClassifyPriority(r)
		repaired = true
		a.logw("oracle_field_repaired", "field", "priority")
	}
	d.Priority = priority

	return d, repaired, nil
}

// buildPrompt embeds the reading and the active thresholds so the oracle's
// rules stay consistent with the configured ones.
func (a *Adapter) buildPrompt(r models.Reading) string {
	t := a.rules.Thresholds()
	var b strings.Builder

	b.WriteString(`You are an intelligent IoT sensor data processor for an Arduino-based environmental monitoring system.
Your role is to analyze sensor readings and make precise control decisions based on predefined rules.

DECISION RULES:
Temperature Control:
`)
	fmt.Fprintf(&b, "- If temperature >= %.1f°C: start fan, turn on red LED (hot condition)\n", t.TempHot)
	fmt.Fprintf(&b, "- If %.1f°C <= temperature < %.1f°C: stop fan, turn on yellow LED (normal condition)\n", t.TempCold, t.TempHot)
	fmt.Fprintf(&b, "- If temperature < %.1f°C: stop fan, turn on blue LED (cold condition)\n\n", t.TempCold)
	b.WriteString("Gas Safety:\n")
	fmt.Fprintf(&b, "- If gas_level > %d: trigger gas alert (immediate safety concern)\n\n", t.GasAlert)
	b.WriteString("Additional Context:\n")
	fmt.Fprintf(&b, "- Bright light threshold: %d, dim light threshold: %d (0-1023 scale)\n", t.LightBright, t.LightDim)
	fmt.Fprintf(&b, "- High humidity threshold: %.1f%%, low humidity threshold: %.1f%%\n\n", t.HumidityHigh, t.HumidityLow)

	b.WriteString(`RESPONSE FORMAT:
You must respond with a valid JSON object containing exactly these fields:
{
    "action": "string describing the main action (e.g., 'start fan', 'stop fan', 'trigger gas alert')",
    "led": "string describing LED color ('red', 'yellow', 'blue', or 'off')",
    "fan": "string describing fan state ('on' or 'off')",
    "gas_alert": "boolean indicating if gas alert should be triggered",
    "reasoning": "string explaining the decision logic",
    "priority": "string indicating urgency level ('low', 'medium', 'high', 'critical')"
}

IMPORTANT RULES:
1. Always follow the temperature thresholds exactly as specified
2. Gas alerts take priority over temperature control
3. Set priority based on safety concerns (gas alerts = critical, temperature extremes = high, normal conditions = low)
4. Respond only with valid JSON - no additional text

CURRENT SENSOR DATA:
`)
	fmt.Fprintf(&b, "- Temperature: %v°C\n", r.Temperature)
	fmt.Fprintf(&b, "- Humidity: %v%%\n", r.Humidity)
	fmt.Fprintf(&b, "- Light Intensity: %d (0-1023 scale)\n", r.LightIntensity)
	fmt.Fprintf(&b, "- Gas Level: %d (0-1023 scale)\n", r.GasLevel)
	fmt.Fprintf(&b, "- Timestamp: %s\n", r.Timestamp.Format(time.RFC3339))

	return b.String()
}

// stripCodeFences removes a surrounding markdown code block if the model
// wrapped its JSON despite the instructions.
func stripCodeFences(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func (a *Adapter) logw(msg string, kv ...interface{}) {
	if a.log != nil {
		a.log.Warnw(msg, kv...)
	}
}
