package dto

// Form field names Twilio posts to the voice webhooks.
const (
	TwilioFieldCallSID      = "CallSid"
	TwilioFieldFrom         = "From"
	TwilioFieldSpeechResult = "SpeechResult"
)

// IncomingPhoneNumber is the subset of the Twilio REST representation
// needed by the webhook setup utility.
type IncomingPhoneNumber struct {
	SID         string `json:"sid"`
	PhoneNumber string `json:"phone_number"`
	VoiceURL    string `json:"voice_url"`
}

type IncomingPhoneNumberList struct {
	IncomingPhoneNumbers []IncomingPhoneNumber `json:"incoming_phone_numbers"`
}
