package dto

import "encoding/xml"

// TwiML response markup returned to Twilio from the voice webhooks.
// Element order inside Response follows field order, so Say verbs render
// before a Gather or Dial.

type VoiceResponse struct {
	XMLName xml.Name `xml:"Response"`
	Say     []Say    `xml:"Say,omitempty"`
	Gather  *Gather  `xml:"Gather,omitempty"`
	Dial    *Dial    `xml:"Dial,omitempty"`
}

type Say struct {
	Text string `xml:",chardata"`
}

type Gather struct {
	Input         string `xml:"input,attr"`
	Action        string `xml:"action,attr"`
	Method        string `xml:"method,attr"`
	SpeechTimeout string `xml:"speechTimeout,attr,omitempty"`
}

type Dial struct {
	Number string `xml:",chardata"`
}

// Render serializes the response with the XML declaration Twilio expects.
func (v VoiceResponse) Render() ([]byte, error) {
	body, err := xml.Marshal(v)
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}
