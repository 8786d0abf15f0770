// Command setup-webhook points a Twilio phone number's voice webhook at
// a running ai-receptionist instance.
//
// Usage:
//
//	setup-webhook <public-base-url>
//
// The base URL is typically an ngrok tunnel; the scheme defaults to
// https when omitted. Requires TWILIO_ACCOUNT_SID, TWILIO_AUTH_TOKEN and
// TWILIO_PHONE_NUMBER.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"ai-receptionist/internal/config"
	"ai-receptionist/internal/infra/provider"
)

func main() {
	config.LoadEnv()

	accountSID := config.GetEnv("TWILIO_ACCOUNT_SID")
	authToken := config.GetEnv("TWILIO_AUTH_TOKEN")
	twilioNumber := strings.ReplaceAll(config.GetEnv("TWILIO_PHONE_NUMBER"), " ", "")

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: setup-webhook <public-base-url>")
		os.Exit(1)
	}
	baseURL := os.Args[1]
	if !strings.HasPrefix(baseURL, "http") {
		baseURL = "https://" + baseURL
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	twilioClient := provider.NewTwilioClient(&http.Client{Timeout: 30 * time.Second}, accountSID, authToken)

	numbers, err := twilioClient.ListIncomingPhoneNumbers(ctx, twilioNumber, 0)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing numbers: %v\n", err)
		os.Exit(1)
	}

	if len(numbers) == 0 {
		fmt.Fprintf(os.Stderr, "Error: Phone number %s not found in account.\n", twilioNumber)
		fmt.Fprintln(os.Stderr, "Available numbers:")
		all, err := twilioClient.ListIncomingPhoneNumbers(ctx, "", 5)
		if err == nil {
			for _, n := range all {
				fmt.Fprintf(os.Stderr, "- %s (%s)\n", n.PhoneNumber, n.SID)
			}
		}
		os.Exit(1)
	}

	numberSID := numbers[0].SID
	fmt.Printf("Found SID: %s for number %s\n", numberSID, twilioNumber)

	voiceURL := strings.TrimRight(baseURL, "/") + "/webhook/incoming-call"
	fmt.Printf("Updating Voice URL to: %s\n", voiceURL)

	if err := twilioClient.UpdateVoiceURL(ctx, numberSID, voiceURL, http.MethodPost); err != nil {
		fmt.Fprintf(os.Stderr, "Error updating webhook: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Successfully updated Twilio webhook!")
}
