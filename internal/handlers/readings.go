package handlers

import (
	"fmt"
	"net/http"
	"time"

	"farmwatch/internal/metrics"
	"farmwatch/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	statusOK = "ok"

	readingAccepted = "accepted"
	readingRejected = "rejected"
)

// submitRequest is the device ingestion payload. Pointers distinguish a
// missing field from a legitimate zero.
type submitRequest struct {
	Temperature    *float64 `json:"temperature"`
	Humidity       *float64 `json:"humidity"`
	LightIntensity *int     `json:"light_intensity"`
	GasLevel       *int     `json:"gas_level"`
	Timestamp      string   `json:"timestamp,omitempty"` // optional, RFC3339
}

// SubmitRequest is an exported model for Swagger docs of the ingestion payload.
type SubmitRequest struct {
	// Air temperature in Celsius
	Temperature float64 `json:"temperature" example:"26.5"`
	// Relative humidity, 0-100 percent
	Humidity float64 `json:"humidity" example:"58.2"`
	// Light sensor value, 0-1023
	LightIntensity int `json:"light_intensity" example:"512"`
	// Gas sensor value, 0-1023
	GasLevel int `json:"gas_level" example:"140"`
	// Optional reading time (RFC3339); server time is used when absent
	Timestamp string `json:"timestamp,omitempty" example:"2026-08-25T10:30:00Z"`
}

// validate rejects payloads the decision core must never see.
func (r *submitRequest) validate() error {
	switch {
	case r.Temperature == nil:
		return fmt.Errorf("missing required field: temperature")
	case r.Humidity == nil:
		return fmt.Errorf("missing required field: humidity")
	case r.LightIntensity == nil:
		return fmt.Errorf("missing required field: light_intensity")
	case r.GasLevel == nil:
		return fmt.Errorf("missing required field: gas_level")
	}
	if *r.Humidity < models.HumidityMin || *r.Humidity > models.HumidityMax {
		return fmt.Errorf("humidity %.1f out of range [%v, %v]", *r.Humidity, models.HumidityMin, models.HumidityMax)
	}
	if *r.LightIntensity < models.AnalogMin || *r.LightIntensity > models.AnalogMax {
		return fmt.Errorf("light_intensity %d out of range [%d, %d]", *r.LightIntensity, models.AnalogMin, models.AnalogMax)
	}
	if *r.GasLevel < models.AnalogMin || *r.GasLevel > models.AnalogMax {
		return fmt.Errorf("gas_level %d out of range [%d, %d]", *r.GasLevel, models.AnalogMin, models.AnalogMax)
	}
	return nil
}

func (r *submitRequest) toReading() (models.Reading, error) {
	reading := models.Reading{
		Temperature:    *r.Temperature,
		Humidity:       *r.Humidity,
		LightIntensity: *r.LightIntensity,
		GasLevel:       *r.GasLevel,
	}
	if r.Timestamp != "" {
		ts, err := time.Parse(time.RFC3339, r.Timestamp)
		if err != nil {
			return models.Reading{}, fmt.Errorf("invalid timestamp %q, expected RFC3339", r.Timestamp)
		}
		reading.Timestamp = ts.UTC()
	}
	return reading, nil
}

// @Summary      Submit a sensor reading
// @Description  Validates ranges (humidity 0-100, light/gas 0-1023), evaluates the reading and dispatches any warranted alerts.
// @Tags         readings
// @Accept       json
// @Produce      json
// @Param        body  body   SubmitRequest  true  "Sensor reading"
// @Success      200   {object}  models.ProcessResult
// @Failure      400   {object}  map[string]string
// @Router       /submit-data [post]
func (h *Handler) submitData(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.ReadingsTotal.WithLabelValues(readingRejected).Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body: " + err.Error()})
		return
	}
	if err := req.validate(); err != nil {
		metrics.ReadingsTotal.WithLabelValues(readingRejected).Inc()
		if h.log != nil {
			h.log.Infow("reading_rejected", "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	reading, err := req.toReading()
	if err != nil {
		metrics.ReadingsTotal.WithLabelValues(readingRejected).Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	metrics.ReadingsTotal.WithLabelValues(readingAccepted).Inc()
	result := h.services.Process(c.Request.Context(), reading)
	c.JSON(http.StatusOK, result)
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      API info
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       / [get]
func (h *Handler) apiInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "farmwatch",
		"status":  "running",
		"endpoints": gin.H{
			"submit":     "POST /submit-data",
			"health":     "GET /health",
			"sms_status": "GET /sms/status",
			"sms_test":   "POST /sms/test",
			"readings":   "GET /api/v1/readings",
			"live":       "GET /ws",
		},
	})
}
