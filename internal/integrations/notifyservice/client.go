package notifyservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Nimixx/Call-Scheduler-sub000/internal/events"
)

// Client доставляет события бронирований на внешний webhook.
//
// Реализует events.Handler: подписывается на шину и шлет каждое событие
// одним POST. Ошибки доставки логируются и не влияют на основной поток -
// бронирование к этому моменту уже зафиксировано.
type Client struct {
	webhookURL string
	httpClient *http.Client
	log        Logger
}

// NewClient создает клиент webhook-уведомлений
func NewClient(webhookURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		webhookURL: webhookURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Handle отправляет событие на webhook (реализация events.Handler)
func (c *Client) Handle(ctx context.Context, event events.BookingEvent) {
	if err := c.send(ctx, event); err != nil {
		c.log.Error("NotifyService: delivery failed for %s booking=%d: %v", event.Name, event.BookingID, err)
		return
	}
	c.log.Info("NotifyService: delivered %s booking=%d", event.Name, event.BookingID)
}

func (c *Client) send(ctx context.Context, event events.BookingEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal event: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	return nil
}
