package handlers

import (
	"encoding/json"
	"net/http"

	"energy-dashboard/auth"
	"energy-dashboard/entities"
	"energy-dashboard/repositories"
	"energy-dashboard/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// LatestSource answers the most recent reading ingested for a device.
type LatestSource interface {
	Latest(deviceID string) (entities.EnergyReading, bool)
}

// WSHandler upgrades dashboard viewers onto a device's live-readings feed.
type WSHandler struct {
	mgr     *ws.Manager
	devices repositories.DeviceRepository
	latest  LatestSource
	log     *zap.Logger
}

func NewWSHandler(mgr *ws.Manager, devices repositories.DeviceRepository, latest LatestSource, logger *zap.Logger) *WSHandler {
	return &WSHandler{mgr: mgr, devices: devices, latest: latest, log: logger}
}

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// HandleReadingsWS upgrades to websocket and streams readings for one device.
// GET /ws/readings?device_id=<id>, session-gated, ownership enforced.
func (h *WSHandler) HandleReadingsWS(c *gin.Context) {
	userID, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
		return
	}

	deviceID := c.Query("device_id")
	if deviceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "missing device_id"})
		return
	}

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

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	// Sent before Subscribe so the snapshot write cannot interleave with a
	// broadcast; new viewers get data immediately instead of waiting for
	// the next reading
	if h.latest != nil {
		if reading, ok := h.latest.Latest(deviceID); ok {
			if payload, err := json.Marshal(reading); err == nil {
				if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
					conn.Close()
					return
				}
			}
		}
	}

	h.mgr.Subscribe(deviceID, conn)
	h.log.Info("viewer subscribed", zap.String("device_id", deviceID))

	defer func() {
		h.mgr.Unsubscribe(deviceID, conn)
		h.log.Info("viewer unsubscribed", zap.String("device_id", deviceID))
	}()

	// The feed is one-way; the read loop only detects the client going away
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Debug("viewer read error", zap.Error(err))
			}
			return
		}
	}
}
