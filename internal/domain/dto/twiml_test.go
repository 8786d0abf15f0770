package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRenderSayWithGather(t *testing.T) {
	response := VoiceResponse{
		Say: []Say{{Text: "Hello! How can I help?"}},
		Gather: &Gather{
			Input:         "speech",
			Action:        "/webhook/voice-input",
			Method:        http.MethodPost,
			SpeechTimeout: "auto",
		},
	}

	body, err := response.Render()
	require.NoError(t, err)

	out := string(body)
	require.Contains(t, out, `<?xml version="1.0" encoding="UTF-8"?>`)
	require.Contains(t, out, "<Say>Hello! How can I help?</Say>")
	require.Contains(t, out, `<Gather input="speech" action="/webhook/voice-input" method="POST" speechTimeout="auto">`)
	require.NotContains(t, out, "<Dial>")
}

func TestRenderSayWithDial(t *testing.T) {
	response := VoiceResponse{
		Say:  []Say{{Text: "Transferring you now."}},
		Dial: &Dial{Number: "+15555555555"},
	}

	body, err := response.Render()
	require.NoError(t, err)

	out := string(body)
	require.Contains(t, out, "<Say>Transferring you now.</Say>")
	require.Contains(t, out, "<Dial>+15555555555</Dial>")
	require.NotContains(t, out, "<Gather")
}

func TestRenderEscapesSpokenText(t *testing.T) {
	response := VoiceResponse{Say: []Say{{Text: "Tom & Jerry's <office>"}}}

	body, err := response.Render()
	require.NoError(t, err)
	require.Contains(t, string(body), "Tom &amp; Jerry&#39;s &lt;office&gt;")
}
