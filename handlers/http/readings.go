package httpHandler

import (
	"net/http"
	"strconv"
	"time"

	"energy-dashboard/auth"
	"energy-dashboard/entities"
	"energy-dashboard/repositories"
	"energy-dashboard/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ReadingsHandler is the ingest boundary: the external telemetry process
// posts readings here for devices it is authorized to write.
type ReadingsHandler struct {
	devices  repositories.DeviceRepository
	readings repositories.EnergyReadingRepository
	ingestor *services.ReadingIngestor
	log      *zap.Logger
}

func NewReadingsHandler(devices repositories.DeviceRepository, readings repositories.EnergyReadingRepository, ingestor *services.ReadingIngestor, logger *zap.Logger) *ReadingsHandler {
	return &ReadingsHandler{devices: devices, readings: readings, ingestor: ingestor, log: logger}
}

type ingestRequest struct {
	DeviceID     string    `json:"device_id"`
	ActivePowerP float64   `json:"active_power_p"`
	Voltage      float64   `json:"voltage"`
	Current      float64   `json:"current"`
	PowerFactor  float64   `json:"power_factor"`
	Timestamp    time.Time `json:"timestamp"`
}

// Ingest handles POST /api/readings
func (h *ReadingsHandler) Ingest(c *gin.Context) {
	userID, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
		return
	}

	var req ingestRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.DeviceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid reading payload"})
		return
	}

	device, err := h.devices.GetByID(req.DeviceID)
	if err != nil {
		h.log.Error("device lookup failed", zap.String("device_id", req.DeviceID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	if device == nil || device.UserID != userID {
		// Not distinguishing "no such device" from "not yours"
		c.JSON(http.StatusForbidden, gin.H{"message": "Device not accessible"})
		return
	}

	h.ingestor.Add(entities.EnergyReading{
		DeviceID:     req.DeviceID,
		ActivePowerP: req.ActivePowerP,
		Voltage:      req.Voltage,
		Current:      req.Current,
		PowerFactor:  req.PowerFactor,
		Timestamp:    req.Timestamp,
	})

	c.JSON(http.StatusAccepted, gin.H{"message": "Reading accepted"})
}

// ListForDevice handles GET /api/devices/:id/readings?limit=
func (h *ReadingsHandler) ListForDevice(c *gin.Context) {
	userID, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
		return
	}

	deviceID := c.Param("id")
	device, err := h.devices.GetByID(deviceID)
	if err != nil {
		h.log.Error("device lookup failed", zap.String("device_id", deviceID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	if device == nil || device.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"message": "Device not accessible"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	readings, err := h.readings.GetByDeviceID(deviceID, limit)
	if err != nil {
		h.log.Error("readings query failed", zap.String("device_id", deviceID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": readings, "count": len(readings)})
}
