package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"ai-receptionist/internal/domain/interfaces/repository"
	"ai-receptionist/internal/infra/logger"
	"ai-receptionist/internal/infra/services"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

// DashboardHandlers exposes the live WebSocket feed plus read access to
// persisted call records.
type DashboardHandlers struct {
	Logger      *logger.Logger
	Hub         *services.DashboardHub
	RecordStore repository.RecordStore
	upgrader    websocket.Upgrader
}

func NewDashboardHandlers(log *logger.Logger, hub *services.DashboardHub, recordStore repository.RecordStore) *DashboardHandlers {
	return &DashboardHandlers{
		Logger:      log,
		Hub:         hub,
		RecordStore: recordStore,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// ServeWS upgrades the connection and subscribes the client to call
// events until it disconnects.
func (dh *DashboardHandlers) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := dh.upgrader.Upgrade(w, r, nil)
	if err != nil {
		dh.Logger.Error(fmt.Sprintf("WebSocket upgrade failed: %v", err))
		return
	}

	dashboardClient := services.NewDashboardClient(conn)
	dh.Hub.Register <- dashboardClient
	go dashboardClient.WritePump()

	// Read loop only to detect disconnects; the dashboard sends nothing.
	go func() {
		defer func() { dh.Hub.Unregister <- dashboardClient }()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// ListCalls returns every persisted call record.
func (dh *DashboardHandlers) ListCalls(w http.ResponseWriter, r *http.Request) {
	records, err := dh.RecordStore.FindAll(r.Context())
	if err != nil {
		dh.Logger.Error(fmt.Sprintf("Failed to list call records: %v", err))
		http.Error(w, "Failed to list call records", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(records)
}

// GetCall returns the persisted record for one call SID.
func (dh *DashboardHandlers) GetCall(w http.ResponseWriter, r *http.Request) {
	callSID := mux.Vars(r)["callSid"]
	record, err := dh.RecordStore.FindByCallSID(r.Context(), callSID)
	if err != nil {
		http.Error(w, "Call record not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(record)
}
