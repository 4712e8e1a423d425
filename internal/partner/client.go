package partner

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/daniyarovaalmaty/lensflow-crm-sub001/internal/models"
)

// statusVocab maps internal order statuses onto the partner system's
// vocabulary. Unknown values fall back to the raw internal string so a new
// local status never silently drops an update.
var statusVocab = map[models.OrderStatus]string{
	models.StatusPending:      "NEW",
	models.StatusInProduction: "IN_WORK",
	models.StatusReady:        "READY",
	models.StatusRework:       "REWORK",
	models.StatusShipped:      "SHIPPED",
	models.StatusDelivered:    "DONE",
}

func MapStatus(st models.OrderStatus) string {
	if v, ok := statusVocab[st]; ok {
		return v
	}
	return string(st)
}

// Client pushes order status updates into the partner inventory system.
// There is no retry or queue behind it; callers are expected to swallow the
// returned error and rely on the next transition to self-correct.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 5 * time.Second},
	}
}

type statusPush struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}

func (c *Client) PushStatus(externalRef string, status models.OrderStatus) error {
	body, err := json.Marshal(statusPush{
		OrderID: externalRef,
		Status:  MapStatus(status),
	})
	if err != nil {
		return fmt.Errorf("mirror marshal: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/api/v1/orders/status", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("mirror request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("mirror call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("mirror call: partner answered %d", resp.StatusCode)
	}
	return nil
}
