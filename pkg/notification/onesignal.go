package notification

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"kaamsaathi-backend/pkg/logger"

	"go.uber.org/zap"
)

// OneSignalService - OneSignal push notification client
type OneSignalService struct {
	AppID      string
	RestAPIKey string
	Client     *http.Client
}

// NotificationPayload - OneSignal notification payload
type NotificationPayload struct {
	AppID            string                 `json:"app_id"`
	IncludePlayerIDs []string               `json:"include_player_ids,omitempty"`
	Headings         map[string]string      `json:"headings,omitempty"`
	Contents         map[string]string      `json:"contents,omitempty"`
	Data             map[string]interface{} `json:"data,omitempty"`
	Sound            string                 `json:"sound,omitempty"`
	Priority         int                    `json:"priority,omitempty"`
}

// NewOneSignalService - create the push client
func NewOneSignalService(appID, restAPIKey string) *OneSignalService {
	return &OneSignalService{
		AppID:      appID,
		RestAPIKey: restAPIKey,
		Client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// IsConfigured reports whether push credentials are present
func (s *OneSignalService) IsConfigured() bool {
	return s != nil && s.AppID != "" && s.RestAPIKey != ""
}

// SendNotification delivers a push to one device
func (s *OneSignalService) SendNotification(playerID, title, content string, data map[string]interface{}) error {
	if playerID == "" {
		return fmt.Errorf("empty player_id")
	}

	payload := NotificationPayload{
		AppID:            s.AppID,
		IncludePlayerIDs: []string{playerID},
		Headings: map[string]string{
			"en": title,
		},
		Contents: map[string]string{
			"en": content,
		},
		Data:     data,
		Sound:    "default",
		Priority: 10,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, "https://onesignal.com/api/v1/notifications", bytes.NewBuffer(jsonData))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Basic %s", s.RestAPIKey))

	resp, err := s.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errorResp map[string]interface{}
		if err := json.NewDecoder(resp.Body).Decode(&errorResp); err == nil {
			logger.Error("OneSignal API error",
				zap.Int("status", resp.StatusCode),
				zap.Any("response", errorResp),
			)
		}
		return fmt.Errorf("OneSignal API error: status %d", resp.StatusCode)
	}

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err == nil {
		logger.Info("✅ Push notification sent", zap.Any("id", result["id"]))
	}

	return nil
}

// SendNotificationAsync delivers a push in the background; failures are logged
func (s *OneSignalService) SendNotificationAsync(playerID, title, content string, data map[string]interface{}) {
	go func() {
		if err := s.SendNotification(playerID, title, content, data); err != nil {
			logger.Warn("Async push notification failed", zap.Error(err))
		}
	}()
}
