// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Artem Yudin

package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"

	"github.com/ayudin/go-course-keeper/internal/config"
	"github.com/ayudin/go-course-keeper/internal/logger"
	"github.com/ayudin/go-course-keeper/models"
)

type httpRemoteSource struct {
	client      *resty.Client
	maxRetries  uint64
	downloadDir string
	logger      *logger.Logger

	mu    sync.RWMutex
	token string
}

// NewHTTPRemoteSource builds a [RemoteSource] over the classroom server's
// HTTP API. Transient network failures are retried with a fibonacci
// backoff up to cfg.RetryAttempts extra attempts; HTTP-level rejections
// are never retried.
func NewHTTPRemoteSource(cfg config.Adapter, log *logger.Logger) RemoteSource {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8080"
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 15 * time.Second
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.RequestTimeout)

	return &httpRemoteSource{
		client:      cli,
		maxRetries:  uint64(cfg.RetryAttempts),
		downloadDir: filepath.Join(os.TempDir(), "course-keeper"),
		logger:      log,
	}
}

func (h *httpRemoteSource) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpRemoteSource) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *httpRemoteSource) Login(ctx context.Context, login, password string) (models.Token, models.User, error) {
	body := map[string]string{"login": login, "password": password}

	resp, err := h.execute(ctx, func() (*resty.Response, error) {
		return h.client.R().
			SetContext(ctx).
			SetHeader("Content-Type", "application/json").
			SetBody(body).
			Post("/api/auth/login")
	})
	if err != nil {
		return models.Token{}, models.User{}, err
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Token{}, models.User{}, err
	}

	var loginResp struct {
		User models.User `json:"user"`
	}
	if err = json.Unmarshal(resp.Body(), &loginResp); err != nil {
		return models.Token{}, models.User{}, fmt.Errorf("%w: decode login response: %w", ErrInvalidResponse, err)
	}

	raw, err := parseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return models.Token{}, models.User{}, fmt.Errorf("%w: login parse bearer token: %w", ErrInvalidResponse, err)
	}

	token := models.Token{SignedString: raw}
	if _, err = token.ParseUserID(); err != nil {
		return models.Token{}, models.User{}, fmt.Errorf("%w: login parse user id: %w", ErrInvalidResponse, err)
	}

	h.SetToken(raw)
	loginResp.User.UserID = token.UserID
	return token, loginResp.User, nil
}

func (h *httpRemoteSource) ListCourses(ctx context.Context) ([]models.Course, error) {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := h.execute(ctx, func() (*resty.Response, error) {
		return req.Get("/api/courses/")
	})
	if err != nil {
		return nil, err
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var courses []models.Course
	if err = json.Unmarshal(resp.Body(), &courses); err != nil {
		return nil, fmt.Errorf("%w: decode course list: %w", ErrInvalidResponse, err)
	}

	return courses, nil
}

func (h *httpRemoteSource) ListMaterials(ctx context.Context, courseID string) ([]models.Material, error) {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := h.execute(ctx, func() (*resty.Response, error) {
		return req.Get("/api/courses/" + courseID + "/materials")
	})
	if err != nil {
		return nil, err
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var materials []models.Material
	if err = json.Unmarshal(resp.Body(), &materials); err != nil {
		return nil, fmt.Errorf("%w: decode material list: %w", ErrInvalidResponse, err)
	}

	return materials, nil
}

func (h *httpRemoteSource) RefreshMaterials(ctx context.Context, courseID string) (models.RefreshOutcome, error) {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return models.RefreshOutcome{}, err
	}

	resp, err := h.execute(ctx, func() (*resty.Response, error) {
		return req.Post("/api/courses/" + courseID + "/materials/refresh")
	})
	if err != nil {
		return models.RefreshOutcome{}, err
	}
	if err = mapHTTPError(resp); err != nil {
		return models.RefreshOutcome{}, err
	}

	var outcome models.RefreshOutcome
	if err = json.Unmarshal(resp.Body(), &outcome); err != nil {
		return models.RefreshOutcome{}, fmt.Errorf("%w: decode refresh outcome: %w", ErrInvalidResponse, err)
	}

	return outcome, nil
}

func (h *httpRemoteSource) DownloadAttachment(ctx context.Context, downloadRef string) (string, error) {
	if h.Token() == "" {
		return "", ErrNoToken
	}

	if err := os.MkdirAll(h.downloadDir, 0o755); err != nil {
		return "", fmt.Errorf("create download dir: %w", err)
	}
	localPath := filepath.Join(h.downloadDir, uuid.NewString())

	resp, err := h.execute(ctx, func() (*resty.Response, error) {
		return h.client.R().
			SetContext(ctx).
			SetHeader("Authorization", "Bearer "+h.Token()).
			SetOutput(localPath).
			Get("/api/attachments/" + downloadRef)
	})
	if err != nil {
		return "", err
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return localPath, nil
}

func (h *httpRemoteSource) authedRequest(ctx context.Context) (*resty.Request, error) {
	token := h.Token()
	if token == "" {
		return nil, ErrNoToken
	}

	return h.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+token), nil
}

// execute runs one HTTP call, retrying only transport-level failures
// (no HTTP response at all). Status-code failures pass through untouched
// for mapHTTPError to classify.
func (h *httpRemoteSource) execute(ctx context.Context, call func() (*resty.Response, error)) (*resty.Response, error) {
	var resp *resty.Response

	backoff := retry.WithMaxRetries(h.maxRetries, retry.NewFibonacci(500*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		var callErr error
		resp, callErr = call()
		if callErr != nil {
			h.logger.Warn().Err(callErr).Msg("transport failure, will retry")
			return retry.RetryableError(callErr)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNetwork, err)
	}

	return resp, nil
}

func mapHTTPError(resp *resty.Response) error {
	code := resp.StatusCode()
	if code >= http.StatusOK && code < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))

	switch {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return ErrUnauthorized
	case code == http.StatusNotFound:
		return ErrNotFound
	default:
		if body == "" {
			body = http.StatusText(code)
		}
		return &ServerError{Code: code, Body: body}
	}
}

func parseBearerToken(value string) (string, error) {
	parts := strings.Split(strings.TrimSpace(value), " ")
	if len(parts) != 2 || parts[1] == "" {
		return "", fmt.Errorf("invalid authorization header")
	}
	return parts[1], nil
}
