package alerts

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"farmwatch/internal/config"
	"farmwatch/internal/models"
	"farmwatch/internal/notify"
)

// fakeNotifier records sent messages and can fail selectively.
type fakeNotifier struct {
	sent    []string
	failAll bool
	failIf  func(message string) bool
}

func (f *fakeNotifier) Send(ctx context.Context, message, recipient string) (notify.SendResult, error) {
	if f.failAll || (f.failIf != nil && f.failIf(message)) {
		return notify.SendResult{}, errors.New("carrier unavailable")
	}
	f.sent = append(f.sent, message)
	return notify.SendResult{Recipient: recipient, MessageID: "ATXid_test"}, nil
}

// fakeStateRepo keeps state in memory, like a restartable store.
type fakeStateRepo struct {
	stored  models.AlertState
	loadErr error
	saveErr error
	saves   int
}

func (f *fakeStateRepo) Load(ctx context.Context) (models.AlertState, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	if f.stored == nil {
		return models.AlertState{}, nil
	}
	return f.stored.Clone(), nil
}

func (f *fakeStateRepo) Save(ctx context.Context, s models.AlertState) error {
	f.saves++
	if f.saveErr != nil {
		return f.saveErr
	}
	f.stored = s.Clone()
	return nil
}

func testThresholds() config.ThresholdConfig {
	return config.ThresholdConfig{
		TempHot: 30, TempCold: 15, GasAlert: 300,
		LightBright: 700, LightDim: 200,
		HumidityHigh: 70, HumidityLow: 30,
	}
}

func testSMS() config.SMSConfig {
	return config.SMSConfig{
		Enabled:     true,
		Recipient:   "+254700000000",
		GasCooldown: 300 * time.Second,
		Timeout:     5 * time.Second,
	}
}

func newTestDispatcher(t *testing.T, repo *fakeStateRepo, n notify.Notifier) *Dispatcher {
	t.Helper()
	d, err := NewDispatcher(context.Background(), repo, n, testThresholds(), testSMS(), nil)
	if err != nil {
		t.Fatalf("NewDispatcher: %v", err)
	}
	return d
}

func hotGasReading() models.Reading {
	return models.Reading{Temperature: 35.8, Humidity: 85, LightIntensity: 950, GasLevel: 520}
}

func hotGasDecision() models.Decision {
	return models.Decision{
		Action: models.ActionTriggerGasAlert, LED: models.LEDRed, Fan: models.FanOn,
		GasAlert: true, Reasoning: "r", Priority: models.PriorityCritical,
	}
}

func normalDecision() models.Decision {
	return models.Decision{
		Action: models.ActionStopFan, LED: models.LEDYellow, Fan: models.FanOff,
		GasAlert: false, Reasoning: "r", Priority: models.PriorityLow,
	}
}

func containsCategory(cats []models.AlertCategory, want models.AlertCategory) bool {
	for _, c := range cats {
		if c == want {
			return true
		}
	}
	return false
}

func TestDispatch_FirstAlertSendsAllThreeCategories(t *testing.T) {
	n := &fakeNotifier{}
	repo := &fakeStateRepo{}
	d := newTestDispatcher(t, repo, n)

	res := d.Dispatch(context.Background(), hotGasDecision(), hotGasReading())

	for _, cat := range models.AllCategories {
		if !containsCategory(res.Sent, cat) {
			t.Errorf("expected %s to be sent, got %v", cat, res.Sent)
		}
	}
	if len(n.sent) != 3 {
		t.Fatalf("expected 3 messages, got %d: %v", len(n.sent), n.sent)
	}
	// Fixed order: gas, temperature, priority.
	if !strings.Contains(n.sent[0], "GAS ALERT") {
		t.Errorf("first message should be the gas alert: %q", n.sent[0])
	}
	if !strings.Contains(n.sent[1], "HIGH TEMP ALERT") {
		t.Errorf("second message should be the temperature alert: %q", n.sent[1])
	}
	if !strings.Contains(n.sent[2], "CRITICAL ALERT") {
		t.Errorf("third message should be the priority alert: %q", n.sent[2])
	}
	if repo.saves != 1 {
		t.Fatalf("expected exactly one persist per dispatch, got %d", repo.saves)
	}
}

func TestDispatch_GasCooldownYieldsOneAttemptWithinWindow(t *testing.T) {
	n := &fakeNotifier{}
	d := newTestDispatcher(t, &fakeStateRepo{}, n)

	base := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	current := base
	d.now = func() time.Time { return current }

	d.Dispatch(context.Background(), hotGasDecision(), hotGasReading())
	gasSends := countContaining(n.sent, "GAS ALERT")

	// Second reading 30s later: inside cooldown, no second gas message.
	current = base.Add(30 * time.Second)
	d.Dispatch(context.Background(), hotGasDecision(), hotGasReading())
	if got := countContaining(n.sent, "GAS ALERT"); got != gasSends {
		t.Fatalf("gas re-alerted inside cooldown: %d sends", got)
	}

	// Third reading past the cooldown: re-alert.
	current = base.Add(301 * time.Second)
	d.Dispatch(context.Background(), hotGasDecision(), hotGasReading())
	if got := countContaining(n.sent, "GAS ALERT"); got != gasSends+1 {
		t.Fatalf("expected gas re-alert after cooldown, got %d sends", got)
	}
}

func TestDispatch_TemperatureOnlyOnFanLEDChange(t *testing.T) {
	n := &fakeNotifier{}
	d := newTestDispatcher(t, &fakeStateRepo{}, n)

	normal := models.Reading{Temperature: 20, Humidity: 50, LightIntensity: 400, GasLevel: 100}

	// First observation sends.
	res := d.Dispatch(context.Background(), normalDecision(), normal)
	if !containsCategory(res.Sent, models.CategoryTemperature) {
		t.Fatalf("first temperature observation must send")
	}
	// Identical (fan, led): silent.
	res = d.Dispatch(context.Background(), normalDecision(), normal)
	if containsCategory(res.Sent, models.CategoryTemperature) {
		t.Fatalf("unchanged temperature state must not re-send")
	}
	// Transition (off, yellow) → (on, red): exactly one send.
	hot := models.Decision{Action: models.ActionStartFan, LED: models.LEDRed, Fan: models.FanOn, Priority: models.PriorityHigh}
	res = d.Dispatch(context.Background(), hot, models.Reading{Temperature: 35, Humidity: 50, LightIntensity: 400, GasLevel: 100})
	if !containsCategory(res.Sent, models.CategoryTemperature) {
		t.Fatalf("fan/led transition must send")
	}
}

func TestDispatch_PriorityRisingEdgeSequence(t *testing.T) {
	n := &fakeNotifier{}
	d := newTestDispatcher(t, &fakeStateRepo{}, n)

	sequence := []string{"low", "medium", "high", "high", "critical", "low", "high"}
	wantSendAt := map[int]bool{2: true, 6: true} // medium→high and low→high

	for i, prio := range sequence {
		dec := models.Decision{Action: "x", LED: models.LEDYellow, Fan: models.FanOff, Priority: prio}
		res := d.Dispatch(context.Background(), dec, models.Reading{Temperature: 20, Humidity: 50, GasLevel: 100})
		got := containsCategory(res.Sent, models.CategoryPriority)
		if got != wantSendAt[i] {
			t.Errorf("step %d (%s): priority sent=%v, want %v", i, prio, got, wantSendAt[i])
		}
	}
}

func TestDispatch_NotifierFailureRecordedPerCategory(t *testing.T) {
	n := &fakeNotifier{failIf: func(msg string) bool { return strings.Contains(msg, "GAS ALERT") }}
	d := newTestDispatcher(t, &fakeStateRepo{}, n)

	res := d.Dispatch(context.Background(), hotGasDecision(), hotGasReading())

	if containsCategory(res.Sent, models.CategoryGasAlert) {
		t.Fatalf("failed gas send must not appear in sent")
	}
	if len(res.Errors) != 1 || res.Errors[0].Category != models.CategoryGasAlert {
		t.Fatalf("expected one gas error, got %+v", res.Errors)
	}
	// Remaining categories still processed.
	if !containsCategory(res.Sent, models.CategoryTemperature) || !containsCategory(res.Sent, models.CategoryPriority) {
		t.Fatalf("other categories must not be aborted: %+v", res)
	}
	// Failed gas send must not advance the cooldown clock.
	if !d.State()[models.CategoryGasAlert].LastSentAt.IsZero() {
		t.Fatalf("last_sent_at advanced despite delivery failure")
	}
}

func TestDispatch_RebaselinesAllCategoriesEvenWhenSilent(t *testing.T) {
	n := &fakeNotifier{}
	d := newTestDispatcher(t, &fakeStateRepo{}, n)

	d.Dispatch(context.Background(), normalDecision(), models.Reading{Temperature: 20, Humidity: 50})

	hot := models.Decision{Action: models.ActionStartFan, LED: models.LEDRed, Fan: models.FanOn, Priority: models.PriorityHigh}
	d.Dispatch(context.Background(), hot, models.Reading{Temperature: 35, Humidity: 50})

	state := d.State()
	for _, cat := range models.AllCategories {
		snap := state[cat].LastDecision
		if snap == nil || snap.LED != models.LEDRed || snap.Priority != models.PriorityHigh {
			t.Errorf("category %s not rebaselined to the latest decision: %+v", cat, snap)
		}
	}
}

func TestDispatch_PersistFailureDoesNotBlockResult(t *testing.T) {
	n := &fakeNotifier{}
	repo := &fakeStateRepo{saveErr: errors.New("disk full")}
	d := newTestDispatcher(t, repo, n)

	res := d.Dispatch(context.Background(), hotGasDecision(), hotGasReading())
	if len(res.Sent) == 0 {
		t.Fatalf("dispatch result must be returned despite persist failure")
	}
}

func TestDispatch_RestartRecoveryReproducesOutcomes(t *testing.T) {
	repo := &fakeStateRepo{}
	base := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)

	// First process: one hot/gas reading, everything fires.
	d1 := newTestDispatcher(t, repo, &fakeNotifier{})
	d1.now = func() time.Time { return base }
	d1.Dispatch(context.Background(), hotGasDecision(), hotGasReading())

	// Simulated restart: fresh dispatcher over the same persisted state.
	n2 := &fakeNotifier{}
	d2 := newTestDispatcher(t, repo, n2)
	d2.now = func() time.Time { return base.Add(30 * time.Second) }

	// Uninterrupted run would suppress everything for an identical reading.
	res := d2.Dispatch(context.Background(), hotGasDecision(), hotGasReading())
	if len(res.Sent) != 0 {
		t.Fatalf("reloaded state must reproduce suppression, sent %v", res.Sent)
	}
	if len(n2.sent) != 0 {
		t.Fatalf("unexpected messages after restart: %v", n2.sent)
	}
}

func TestSendTest_BypassesDedup(t *testing.T) {
	n := &fakeNotifier{}
	d := newTestDispatcher(t, &fakeStateRepo{}, n)

	for i := 0; i < 2; i++ {
		if _, err := d.SendTest(context.Background()); err != nil {
			t.Fatalf("send test: %v", err)
		}
	}
	if len(n.sent) != 2 {
		t.Fatalf("test messages must not be deduped, got %d", len(n.sent))
	}
}

func countContaining(msgs []string, substr string) int {
	c := 0
	for _, m := range msgs {
		if strings.Contains(m, substr) {
			c++
		}
	}
	return c
}
