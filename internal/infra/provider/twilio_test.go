package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"ai-receptionist/internal/domain/dto"

	"github.com/stretchr/testify/require"
)

func TestListIncomingPhoneNumbersFiltersByNumber(t *testing.T) {
	var gotAuthUser, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuthUser, _, _ = r.BasicAuth()
		gotQuery = r.URL.Query().Get("PhoneNumber")
		json.NewEncoder(w).Encode(dto.IncomingPhoneNumberList{
			IncomingPhoneNumbers: []dto.IncomingPhoneNumber{{SID: "PN123", PhoneNumber: "+15550006666"}},
		})
	}))
	defer server.Close()

	twilioClient := NewTwilioClient(server.Client(), "AC123", "secret")
	twilioClient.baseURL = server.URL

	numbers, err := twilioClient.ListIncomingPhoneNumbers(context.Background(), "+15550006666", 0)
	require.NoError(t, err)
	require.Len(t, numbers, 1)
	require.Equal(t, "PN123", numbers[0].SID)
	require.Equal(t, "AC123", gotAuthUser)
	require.Equal(t, "+15550006666", gotQuery)
}

func TestUpdateVoiceURLPostsForm(t *testing.T) {
	var gotPath, gotVoiceURL, gotMethod string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		r.ParseForm()
		gotVoiceURL = r.PostFormValue("VoiceUrl")
		gotMethod = r.PostFormValue("VoiceMethod")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	twilioClient := NewTwilioClient(server.Client(), "AC123", "secret")
	twilioClient.baseURL = server.URL

	err := twilioClient.UpdateVoiceURL(context.Background(), "PN123", "https://example.com/webhook/incoming-call", http.MethodPost)
	require.NoError(t, err)
	require.Equal(t, "/Accounts/AC123/IncomingPhoneNumbers/PN123.json", gotPath)
	require.Equal(t, "https://example.com/webhook/incoming-call", gotVoiceURL)
	require.Equal(t, http.MethodPost, gotMethod)
}

func TestUpdateVoiceURLSurfacesAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"not found"}`, http.StatusNotFound)
	}))
	defer server.Close()

	twilioClient := NewTwilioClient(server.Client(), "AC123", "secret")
	twilioClient.baseURL = server.URL

	err := twilioClient.UpdateVoiceURL(context.Background(), "PN404", "https://example.com", http.MethodPost)
	require.Error(t, err)
	require.Contains(t, err.Error(), "404")
}
