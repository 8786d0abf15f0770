package handlers

import (
	"fmt"
	"net/http"

	"ai-receptionist/internal/domain/dto"
	"ai-receptionist/internal/domain/interfaces/repository"
	Iservices "ai-receptionist/internal/domain/interfaces/services"
	"ai-receptionist/internal/infra/logger"
	"ai-receptionist/internal/infra/services"

	"github.com/sirupsen/logrus"
)

// Spoken lines for the voice webhooks. Callers always hear one of
// these, a generated reply, or the fallback apology; never a raw error.
const (
	greetingLine = "Hello! You've reached the AI assistant. How can I help you today?"
	transferLine = "Transferring you to a human support agent."
	repeatLine   = "I'm sorry, I didn't catch that. Could you please repeat?"

	voiceInputPath = "/webhook/voice-input"
)

// TwilioHandlers serves the three voice webhooks Twilio posts during a
// call: start, one per caller utterance, and end.
type TwilioHandlers struct {
	Logger             *logger.Logger
	Manager            *services.SessionManager
	Escalation         Iservices.IEscalationService
	Responder          Iservices.IResponderService
	Observer           Iservices.ICallObserver
	RecordStore        repository.RecordStore
	HumanSupportNumber string
}

func NewTwilioHandlers(log *logger.Logger, manager *services.SessionManager, escalation Iservices.IEscalationService, responder Iservices.IResponderService, observer Iservices.ICallObserver, recordStore repository.RecordStore, humanSupportNumber string) *TwilioHandlers {
	return &TwilioHandlers{
		Logger:             log,
		Manager:            manager,
		Escalation:         escalation,
		Responder:          responder,
		Observer:           observer,
		RecordStore:        recordStore,
		HumanSupportNumber: humanSupportNumber,
	}
}

// IncomingCall registers a session for the new call and answers with
// the greeting plus a speech Gather.
func (th *TwilioHandlers) IncomingCall(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form payload", http.StatusBadRequest)
		return
	}

	callSID := r.PostFormValue(dto.TwilioFieldCallSID)
	fromNumber := r.PostFormValue(dto.TwilioFieldFrom)
	if fromNumber == "" {
		fromNumber = "Unknown"
	}
	if callSID == "" {
		http.Error(w, "Missing CallSid", http.StatusBadRequest)
		return
	}

	session := services.NewCallSession(callSID, fromNumber, th.Escalation, th.Responder, th.Observer, th.Logger)
	if err := th.Manager.Add(session); err != nil {
		// Twilio retried the start webhook; keep the existing session.
		th.Logger.Warn(fmt.Sprintf("Session already registered for call %s", callSID))
	}

	if th.Observer != nil {
		th.Observer.CallStarted(callSID, fromNumber, session.StartTime)
	}
	th.Logger.Info("Incoming call", logrus.Fields{"call_sid": callSID, "from": fromNumber})

	th.writeTwiML(w, dto.VoiceResponse{
		Say:    []dto.Say{{Text: greetingLine}},
		Gather: speechGather(),
	})
}

// VoiceInput handles one transcribed caller utterance and responds with
// either the generated reply, a transfer, or the repeat prompt.
func (th *TwilioHandlers) VoiceInput(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form payload", http.StatusBadRequest)
		return
	}

	callSID := r.PostFormValue(dto.TwilioFieldCallSID)
	speech := r.PostFormValue(dto.TwilioFieldSpeechResult)

	session, ok := th.Manager.Get(callSID)
	if !ok || speech == "" {
		th.Logger.Warn(fmt.Sprintf("Voice input for unknown call %q, prompting repeat", callSID))
		th.writeTwiML(w, dto.VoiceResponse{
			Say:    []dto.Say{{Text: repeatLine}},
			Gather: speechGather(),
		})
		return
	}

	result, err := session.HandleUtterance(r.Context(), speech)
	if err != nil {
		th.Logger.Warn(fmt.Sprintf("Turn rejected for call %s: %v", callSID, err))
		th.writeTwiML(w, dto.VoiceResponse{
			Say:    []dto.Say{{Text: repeatLine}},
			Gather: speechGather(),
		})
		return
	}

	if result.Transfer {
		th.Logger.Info("Escalating call to human agent", logrus.Fields{"call_sid": callSID})
		th.writeTwiML(w, dto.VoiceResponse{
			Say:  []dto.Say{{Text: transferLine}},
			Dial: &dto.Dial{Number: th.HumanSupportNumber},
		})
		return
	}

	th.writeTwiML(w, dto.VoiceResponse{
		Say:    []dto.Say{{Text: result.Text}},
		Gather: speechGather(),
	})
}

// CallEnded finalizes and unregisters the session. Twilio expects no
// TwiML here, only a 2xx.
func (th *TwilioHandlers) CallEnded(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form payload", http.StatusBadRequest)
		return
	}

	callSID := r.PostFormValue(dto.TwilioFieldCallSID)
	session, ok := th.Manager.Get(callSID)
	if !ok {
		w.WriteHeader(http.StatusOK)
		return
	}

	if _, err := session.Finalize(r.Context(), th.RecordStore); err != nil {
		th.Logger.Warn(fmt.Sprintf("Finalize failed for call %s: %v", callSID, err))
	}
	th.Manager.Remove(callSID)
	if th.Observer != nil {
		th.Observer.CallEnded(callSID)
	}
	th.Logger.Info("Call ended", logrus.Fields{"call_sid": callSID})

	w.WriteHeader(http.StatusOK)
}

func speechGather() *dto.Gather {
	return &dto.Gather{
		Input:         "speech",
		Action:        voiceInputPath,
		Method:        http.MethodPost,
		SpeechTimeout: "auto",
	}
}

func (th *TwilioHandlers) writeTwiML(w http.ResponseWriter, response dto.VoiceResponse) {
	body, err := response.Render()
	if err != nil {
		th.Logger.Error(fmt.Sprintf("Failed to render TwiML: %v", err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/xml")
	w.Write(body)
}
