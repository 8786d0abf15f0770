package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"ai-receptionist/internal/domain/dto"
)

const defaultTwilioAPIBaseURL = "https://api.twilio.com/2010-04-01"

// TwilioClient is a minimal REST client covering the two operations the
// webhook setup utility needs: resolving a phone number to its SID and
// pointing its voice URL at this service.
type TwilioClient struct {
	httpClient *http.Client
	accountSID string
	authToken  string
	baseURL    string
}

func NewTwilioClient(httpClient *http.Client, accountSID, authToken string) *TwilioClient {
	return &TwilioClient{
		httpClient: httpClient,
		accountSID: accountSID,
		authToken:  authToken,
		baseURL:    defaultTwilioAPIBaseURL,
	}
}

// ListIncomingPhoneNumbers returns the account's incoming numbers,
// filtered to phoneNumber when it is non-empty.
func (c *TwilioClient) ListIncomingPhoneNumbers(ctx context.Context, phoneNumber string, limit int) ([]dto.IncomingPhoneNumber, error) {
	endpoint := fmt.Sprintf("%s/Accounts/%s/IncomingPhoneNumbers.json", c.baseURL, c.accountSID)

	query := url.Values{}
	if phoneNumber != "" {
		query.Set("PhoneNumber", phoneNumber)
	}
	if limit > 0 {
		query.Set("PageSize", strconv.Itoa(limit))
	}
	if encoded := query.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.SetBasicAuth(c.accountSID, c.authToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("unexpected HTTP status %s: %s", resp.Status, string(body))
	}

	var list dto.IncomingPhoneNumberList
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("error decoding response JSON: %w", err)
	}
	return list.IncomingPhoneNumbers, nil
}

// UpdateVoiceURL sets the webhook Twilio calls when the number receives
// an inbound call.
func (c *TwilioClient) UpdateVoiceURL(ctx context.Context, numberSID, voiceURL, voiceMethod string) error {
	endpoint := fmt.Sprintf("%s/Accounts/%s/IncomingPhoneNumbers/%s.json", c.baseURL, c.accountSID, numberSID)

	form := url.Values{}
	form.Set("VoiceUrl", voiceURL)
	form.Set("VoiceMethod", voiceMethod)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.SetBasicAuth(c.accountSID, c.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("unexpected HTTP status %s: %s", resp.Status, string(body))
	}
	return nil
}
