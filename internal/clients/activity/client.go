// Package activity реализует HTTP-клиент внешних сервисов посещений и занятий.
// Сервис посещений отдаёт все записи пользователя без гарантии фильтрации,
// сервис занятий — карточку занятия по идентификатору.
package activity

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/gymhub/members-api/internal/config"
	"github.com/gymhub/members-api/internal/models"
)

// Client — клиент обоих внешних сервисов.
type Client struct {
	attendanceBaseURL string
	activityBaseURL   string
	httpClient        *http.Client
}

// New создаёт клиент с таймаутом из конфига.
func New(cfg config.ActivityServices) *Client {
	timeout := cfg.ClientTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		attendanceBaseURL: cfg.AttendanceBaseURL,
		activityBaseURL:   cfg.ActivityBaseURL,
		httpClient:        &http.Client{Timeout: timeout},
	}
}

// ListAttendances возвращает все записи посещений участника
// из внешнего сервиса: GET /attendances?user_id=<id>.
func (c *Client) ListAttendances(ctx context.Context, memberID string) ([]models.RemoteAttendance, error) {
	const op = "clients.activity.ListAttendances"

	u := fmt.Sprintf("%s/attendances?user_id=%s", c.attendanceBaseURL, url.QueryEscape(memberID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%s: unexpected status %d: %s", op, resp.StatusCode, body)
	}

	var result []models.RemoteAttendance
	if err = json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetActivity возвращает карточку занятия из внешнего сервиса:
// GET /activities/<id>. Формат карточки не фиксирован, поэтому
// полезная нагрузка отдаётся как есть.
func (c *Client) GetActivity(ctx context.Context, activityID string) (map[string]any, error) {
	const op = "clients.activity.GetActivity"

	u := fmt.Sprintf("%s/activities/%s", c.activityBaseURL, url.PathEscape(activityID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%s: unexpected status %d: %s", op, resp.StatusCode, body)
	}

	var result map[string]any
	if err = json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
