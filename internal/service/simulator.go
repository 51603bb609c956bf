package service

import (
	"context"
	"math/rand"
	"time"

	"farmwatch/internal/logger"
	"farmwatch/internal/models"
)

// Baseline conditions the simulator drifts around.
const (
	simBaseTempC    = 24.0
	simBaseHumidity = 55.0
	simBaseLight    = 500
	simBaseGas      = 150

	// Roughly one reading in twenty spikes into an alert-worthy range, so a
	// dev setup exercises the whole pipeline without hardware.
	simSpikeChance = 0.05
)

// SimulatorService replaces the serial bridge in development: it fabricates
// readings on a tick and pushes them through the engine.
type SimulatorService struct {
	engine Engine
	log    *logger.Logger
	rng    *rand.Rand
}

func NewSimulatorService(engine Engine, log *logger.Logger) *SimulatorService {
	return &SimulatorService{
		engine: engine,
		log:    log,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Run ticks at the given interval until ctx is canceled.
func (s *SimulatorService) Run(ctx context.Context, tick time.Duration) {
	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			r := s.nextReading(now.UTC())
			result := s.engine.Process(ctx, r)
			if s.log != nil {
				s.log.Debugw("simulated_reading_processed",
					"temp", r.Temperature,
					"gas", r.GasLevel,
					"action", result.Decision.Action,
					"priority", result.Decision.Priority,
				)
			}
		}
	}
}

// nextReading jitters around the baseline, occasionally spiking heat or gas.
func (s *SimulatorService) nextReading(now time.Time) models.Reading {
	r := models.Reading{
		Temperature:    simBaseTempC + s.rng.Float64()*6 - 3,
		Humidity:       clampFloat(simBaseHumidity+s.rng.Float64()*20-10, models.HumidityMin, models.HumidityMax),
		LightIntensity: clampInt(simBaseLight+s.rng.Intn(200)-100, models.AnalogMin, models.AnalogMax),
		GasLevel:       clampInt(simBaseGas+s.rng.Intn(100)-50, models.AnalogMin, models.AnalogMax),
		Timestamp:      now,
	}
	if s.rng.Float64() < simSpikeChance {
		if s.rng.Intn(2) == 0 {
			r.Temperature += 15
		} else {
			r.GasLevel = clampInt(r.GasLevel+400, models.AnalogMin, models.AnalogMax)
		}
	}
	return r
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
