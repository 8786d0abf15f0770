package routes

import (
	"encoding/json"
	"net/http"

	"ai-receptionist/internal/infra/handlers"

	"github.com/gorilla/mux"
)

type Routes struct {
	Mux               *mux.Router
	TwilioHandlers    *handlers.TwilioHandlers
	DashboardHandlers *handlers.DashboardHandlers
}

func NewRoutes(mux *mux.Router, twilioHandlers *handlers.TwilioHandlers, dashboardHandlers *handlers.DashboardHandlers) *Routes {
	return &Routes{Mux: mux, TwilioHandlers: twilioHandlers, DashboardHandlers: dashboardHandlers}
}

func (r *Routes) Init() {
	r.Mux.HandleFunc("/webhook/incoming-call", r.TwilioHandlers.IncomingCall).Methods(http.MethodPost)
	r.Mux.HandleFunc("/webhook/voice-input", r.TwilioHandlers.VoiceInput).Methods(http.MethodPost)
	r.Mux.HandleFunc("/webhook/call-ended", r.TwilioHandlers.CallEnded).Methods(http.MethodPost)

	r.Mux.HandleFunc("/ws/dashboard", r.DashboardHandlers.ServeWS)
	r.Mux.HandleFunc("/calls", r.DashboardHandlers.ListCalls).Methods(http.MethodGet)
	r.Mux.HandleFunc("/calls/{callSid}", r.DashboardHandlers.GetCall).Methods(http.MethodGet)

	r.Mux.HandleFunc("/healthCheck", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		response := map[string]string{"status": "healthy"}
		json.NewEncoder(w).Encode(response)
	}).Methods(http.MethodGet)
}
