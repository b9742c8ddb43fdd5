package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/callmepikachu/AniHub-Demo/internal/config"
	"github.com/callmepikachu/AniHub-Demo/internal/logger"
	"github.com/callmepikachu/AniHub-Demo/internal/models"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const (
	klingStatusCompleted = "completed"
	klingStatusFailed    = "failed"
)

// KlingClient talks to the Kling text-to-video API.
type KlingClient struct {
	apiKey       string
	apiURL       string
	pollInterval time.Duration
	timeout      time.Duration
	httpClient   *http.Client
	limiter      *rate.Limiter
	logger       logger.Logger
}

type klingSubmitRequest struct {
	Prompt     string `json:"prompt"`
	Duration   int    `json:"duration"`
	Style      string `json:"style"`
	Resolution string `json:"resolution"`
	FPS        int    `json:"fps"`
}

type klingSubmitResponse struct {
	VideoID string `json:"video_id"`
}

type klingStatusResponse struct {
	Status   string `json:"status"`
	VideoURL string `json:"video_url"`
	Error    string `json:"error"`
}

func NewKling(cfg config.KlingConfig, log logger.Logger) *KlingClient {
	burst := int(cfg.RateLimit)
	if burst < 1 {
		burst = 1
	}
	return &KlingClient{
		apiKey:       cfg.APIKey,
		apiURL:       strings.TrimRight(cfg.APIURL, "/"),
		pollInterval: cfg.PollInterval,
		timeout:      cfg.Timeout,
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(cfg.RateLimit), burst),
		logger:  log,
	}
}

func (c *KlingClient) Name() string { return BackendKling }

// Generate submits the scene, waits for the render and downloads it to
// {outputDir}/{scene id}.mp4.
func (c *KlingClient) Generate(ctx context.Context, scene models.Scene, outputDir string) (models.GenerationResult, error) {
	path, err := mediaPath(outputDir, scene.ID, ".mp4")
	if err != nil {
		return models.GenerationResult{}, err
	}

	videoID, err := c.Submit(ctx, scene)
	if err != nil {
		return models.GenerationResult{}, err
	}

	videoURL, err := c.Wait(ctx, videoID)
	if err != nil {
		return models.GenerationResult{}, err
	}

	if err := c.Download(ctx, videoURL, path); err != nil {
		return models.GenerationResult{}, err
	}

	return models.GenerationResult{
		Status:    models.StatusSuccess,
		VideoPath: path,
		Generator: BackendKling,
		VideoID:   videoID,
	}, nil
}

// Submit starts a render and returns its video id.
func (c *KlingClient) Submit(ctx context.Context, scene models.Scene) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}

	payload := klingSubmitRequest{
		Prompt:     scene.Prompt,
		Duration:   scene.Duration,
		Style:      scene.Style,
		Resolution: scene.Resolution,
		FPS:        scene.FPS,
	}

	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		return "", fmt.Errorf("encode kling payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, buf)
	if err != nil {
		return "", fmt.Errorf("create kling request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var out klingSubmitResponse
	if err := c.doJSON(req, &out); err != nil {
		return "", fmt.Errorf("submit scene %s: %w", scene.ID, err)
	}
	if out.VideoID == "" {
		return "", ErrMissingVideoID
	}

	c.logger.Debug(ctx, "Kling accepted scene %s as video %s", scene.ID, out.VideoID)
	return out.VideoID, nil
}

// Status fetches the current render state of videoID.
func (c *KlingClient) Status(ctx context.Context, videoID string) (string, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"/"+videoID+"/status", nil)
	if err != nil {
		return "", "", fmt.Errorf("create status request: %w", err)
	}

	var out klingStatusResponse
	if err := c.doJSON(req, &out); err != nil {
		return "", "", err
	}

	if out.Status == klingStatusFailed {
		msg := out.Error
		if msg == "" {
			msg = "unknown error"
		}
		return out.Status, "", fmt.Errorf("%w: %s", ErrGenerationFailed, msg)
	}

	return out.Status, out.VideoURL, nil
}

// Wait polls until the render completes, fails, or the configured timeout
// passes. Transport errors while polling are retried.
func (c *KlingClient) Wait(ctx context.Context, videoID string) (string, error) {
	pollCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		status, videoURL, err := c.Status(pollCtx, videoID)
		switch {
		case errors.Is(err, ErrGenerationFailed):
			return "", err
		case err != nil:
			c.logger.Warn(ctx, "Kling status check for %s failed, retrying: %v", videoID, err)
		case status == klingStatusCompleted:
			if videoURL == "" {
				return "", ErrMissingVideoURL
			}
			return videoURL, nil
		default:
			c.logger.Debug(ctx, "Kling video %s status: %s", videoID, status)
		}

		select {
		case <-pollCtx.Done():
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			return "", fmt.Errorf("%w: video %s after %s", ErrGenerationTimeout, videoID, c.timeout)
		case <-ticker.C:
		}
	}
}

// Download streams videoURL into path.
func (c *KlingClient) Download(ctx context.Context, videoURL, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, videoURL, nil)
	if err != nil {
		return fmt.Errorf("create download request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("download video: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("download video: status %d", resp.StatusCode)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create video file: %w", err)
	}

	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("write video file: %w", err)
	}

	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("close video file: %w", err)
	}

	c.logger.Info(ctx, "Video downloaded: %s", path)
	return nil
}

func (c *KlingClient) doJSON(req *http.Request, out any) error {
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("kling request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeAPIError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode kling response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	var apiErr struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err := json.Unmarshal(body, &apiErr); err == nil {
		if msg := apiErr.Message; msg != "" {
			return fmt.Errorf("kling api error: status %d message %s", resp.StatusCode, msg)
		}
		if msg := apiErr.Error; msg != "" {
			return fmt.Errorf("kling api error: status %d message %s", resp.StatusCode, msg)
		}
	}

	return fmt.Errorf("kling api error: status %d body %s", resp.StatusCode, strings.TrimSpace(string(body)))
}
