package notifier

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/ErkinN/go-crm/configs"
)

type SMSResponse struct {
	SMSMessageData struct {
		Message    string `json:"Message"`
		Recipients []struct {
			StatusCode int    `json:"statusCode"`
			Number     string `json:"number"`
			Cost       string `json:"cost"`
			Status     string `json:"status"`
			MessageID  string `json:"messageId"`
		} `json:"Recipients"`
	} `json:"SMSMessageData"`
}

func SendWelcomeSMS(toPhoneNumber string, firstName string) error {

	cfg := config.LoadAfricaTalkingConfig()

	if cfg.Username == "" || cfg.APIKey == "" {
		return ErrNotConfigured
	}
	if toPhoneNumber == "" {
		return fmt.Errorf("recipient phone number is empty")
	}

	message := fmt.Sprintf("Hello %s, your customer record has been created. Keep your password safe - it is needed to edit the record.", firstName)

	data := url.Values{}
	data.Set("username", cfg.Username)
	data.Set("to", toPhoneNumber)
	data.Set("message", message)
	data.Set("from", cfg.SenderID)

	client := &http.Client{}
	req, err := http.NewRequest("POST", cfg.SMSURL, strings.NewReader(data.Encode()))

	if err != nil {
		return fmt.Errorf("failed to create SMS request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("apikey", cfg.APIKey)

	resp, err := client.Do(req)

	if err != nil {
		log.Err(err).Str("recipient", toPhoneNumber).Msg("SMS send failed")
		return fmt.Errorf("SMS send failed: %w", err)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		var smsResp SMSResponse
		if decodeErr := json.NewDecoder(resp.Body).Decode(&smsResp); decodeErr == nil {
			log.Error().
				Str("recipient", toPhoneNumber).
				Int("status", resp.StatusCode).
				Str("message", smsResp.SMSMessageData.Message).
				Msg("SMS API returned error")
		} else {
			log.Err(decodeErr).
				Str("recipient", toPhoneNumber).
				Int("status", resp.StatusCode).
				Msg("SMS API returned non-success status and response decode failed")
		}
		return fmt.Errorf("SMS API returned non-success status: %d", resp.StatusCode)
	}

	var smsResp SMSResponse
	if err := json.NewDecoder(resp.Body).Decode(&smsResp); err != nil {
		log.Err(err).Str("recipient", toPhoneNumber).Msg("Failed to decode SMS response")
		return fmt.Errorf("failed to decode SMS response: %w", err)
	}

	log.Info().Str("recipient", toPhoneNumber).Str("message", smsResp.SMSMessageData.Message).Msg("SMS sent successfully")
	return nil
}
