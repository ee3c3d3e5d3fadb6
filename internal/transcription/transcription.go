package transcription

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"sales-coach-go/internal/logger"
)

// MockTranscript is returned when the client runs in mock mode.
const MockTranscript = "Agent: Good morning, this is Priya from ABC Wealth. I wanted to walk you through our SIP plans. " +
	"Customer: Okay, but honestly it sounds expensive for my budget right now. " +
	"Agent: I understand. Can I share a comparison on WhatsApp? Customer: Sure, send it."

var (
	// ErrNotConfigured means no transcription host was set and mock mode is off.
	ErrNotConfigured = errors.New("TRANSCRIBE_URL not set")
	// ErrNoTranscriptURL means the job finished but the service gave no text link.
	ErrNoTranscriptURL = errors.New("status success without transcript url")
)

type PublishSuccessResponse struct {
	Code   int    `json:"Code"`
	Status string `json:"Status"`
	Data   struct {
		MediaId          string `json:"MediaId"`
		Status           string `json:"Status"`
		LanguageId       int    `json:"LanguageId"`
		TranscriptionURL string `json:"TranscriptionURL"`
		WordsCount       int    `json:"WordsCount"`
	} `json:"Data"`
	Reason   string `json:"Reason,omitempty"`
	UniqueId string `json:"UniqueId,omitempty"`
}

type StatusResponse struct {
	Code   int    `json:"Code"`
	Status string `json:"Status"`
	Data   struct {
		AudioURL             string `json:"AudioURL"`
		LanguageId           int    `json:"LanguageId"`
		Status               string `json:"Status"`
		TranscriptionTextURL string `json:"TranscriptionTextURL"`
		WordsCount           int    `json:"WordsCount"`
	} `json:"Data"`
	Reason   string `json:"Reason,omitempty"`
	UniqueId string `json:"UniqueId,omitempty"`
}

// Client talks to the speech-to-text service: publish the recording link,
// poll until the job finishes, then download the text.
type Client struct {
	Host         string
	Mock         bool
	HTTP         *http.Client
	PollInterval time.Duration
	MaxPolls     int
	RetryFor     time.Duration
	Log          *logger.Logger
}

// NewClient returns a Client with the service defaults (~60s of polling).
func NewClient(host string, mock bool, log *logger.Logger) *Client {
	if log == nil {
		log = logger.Discard()
	}
	return &Client{
		Host:         host,
		Mock:         mock,
		HTTP:         &http.Client{Timeout: 12 * time.Second},
		PollInterval: 1500 * time.Millisecond,
		MaxPolls:     40,
		RetryFor:     12 * time.Second,
		Log:          log.Component("transcription"),
	}
}

// Transcribe never fails: errors come back as an "Error in transcription"
// string so downstream stages always get text.
func (c *Client) Transcribe(ctx context.Context, audioURL string) string {
	text, err := c.GetTranscript(ctx, audioURL)
	if err != nil {
		c.Log.WithError(err).WithField("audio_url", audioURL).Warn("transcription failed")
		return fmt.Sprintf("Error in transcription: %v", err)
	}
	return strings.TrimSpace(text)
}

// GetTranscript runs publish -> poll -> download.
func (c *Client) GetTranscript(ctx context.Context, audioURL string) (string, error) {
	if c.Mock {
		return MockTranscript, nil
	}
	if c.Host == "" {
		return "", ErrNotConfigured
	}
	if !isHTTPURL(audioURL) {
		return "", fmt.Errorf("audio url must be http(s): %q", audioURL)
	}
	mediaID, existingURL, err := c.publish(ctx, audioURL)
	if err != nil {
		return "", err
	}
	if existingURL != "" {
		return c.download(ctx, existingURL)
	}
	finalURL, err := c.poll(ctx, mediaID)
	if err != nil {
		return "", err
	}
	c.Log.WithField("final_url", finalURL).Info("download final transcript")
	return c.download(ctx, finalURL)
}

func (c *Client) publish(ctx context.Context, callURL string) (string, string, error) {
	endpoint := strings.TrimRight(c.Host, "/") + "/transcribe"
	var b bytes.Buffer
	w := multipart.NewWriter(&b)
	w.WriteField("callRecordingLink", callURL)
	w.WriteField("callType", "PNS")
	_ = w.Close()
	body := b.Bytes()

	var resp PublishSuccessResponse
	newReq := func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", w.FormDataContentType())
		return req, nil
	}
	if err := c.doJSON(ctx, newReq, &resp); err != nil {
		return "", "", err
	}
	if resp.Code != 200 {
		return "", "", fmt.Errorf("transcribe publish error: code=%d reason=%s", resp.Code, resp.Reason)
	}
	if resp.Data.TranscriptionURL != "" && strings.ToLower(resp.Data.Status) == "success" {
		return "", resp.Data.TranscriptionURL, nil
	}
	if resp.Data.MediaId == "" {
		return "", "", errors.New("transcribe publish returned no media id")
	}
	return resp.Data.MediaId, "", nil
}

func (c *Client) poll(ctx context.Context, mediaID string) (string, error) {
	u, err := url.Parse(strings.TrimRight(c.Host, "/") + "/getstatus")
	if err != nil {
		return "", fmt.Errorf("status url: %w", err)
	}
	q := u.Query()
	q.Set("mediaId", mediaID)
	u.RawQuery = q.Encode()
	statusURL := u.String()

	for i := 0; i < c.MaxPolls; i++ {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(c.PollInterval):
		}
		newReq := func() (*http.Request, error) {
			return http.NewRequestWithContext(ctx, http.MethodGet, statusURL, nil)
		}
		var s StatusResponse
		if err := c.doJSON(ctx, newReq, &s); err != nil {
			c.Log.WithError(err).WithField("media_id", mediaID).Debug("status poll failed")
			continue
		}
		switch s.Data.Status {
		case "Success":
			if strings.TrimSpace(s.Data.TranscriptionTextURL) == "" {
				return "", ErrNoTranscriptURL
			}
			return s.Data.TranscriptionTextURL, nil
		case "Queued", "Processing":
			continue
		case "Failed":
			return "", fmt.Errorf("transcription failed: %s", s.Reason)
		}
	}
	return "", fmt.Errorf("transcription timeout")
}

func (c *Client) download(ctx context.Context, textURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, textURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("download failed: %s", string(b))
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("download read: %w", err)
	}
	return string(b), nil
}

// doJSON retries 5xx, empty and undecodable responses with exponential
// backoff. newReq is called per attempt so bodies can be replayed.
func (c *Client) doJSON(ctx context.Context, newReq func() (*http.Request, error), target interface{}) error {
	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = c.RetryFor
	var lastErr error
	op := func() error {
		req, err := newReq()
		if err != nil {
			lastErr = err
			return backoff.Permanent(err)
		}
		resp, err := c.HTTP.Do(req)
		if err != nil {
			lastErr = err
			return err
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		if resp.StatusCode >= 500 {
			lastErr = fmt.Errorf("server error: %s", string(body))
			return lastErr
		}
		if resp.StatusCode >= 400 {
			lastErr = fmt.Errorf("client error %d: %s", resp.StatusCode, string(body))
			return backoff.Permanent(lastErr)
		}
		if len(body) == 0 {
			lastErr = fmt.Errorf("empty body")
			return lastErr
		}
		if err := json.Unmarshal(body, target); err != nil {
			lastErr = fmt.Errorf("json decode error: %v body=%s", err, string(body))
			return lastErr
		}
		return nil
	}
	if err := backoff.Retry(op, backoff.WithContext(bo, ctx)); err != nil {
		if lastErr == nil {
			lastErr = err
		}
		return lastErr
	}
	return nil
}

func isHTTPURL(s string) bool {
	l := strings.ToLower(s)
	return strings.HasPrefix(l, "http://") || strings.HasPrefix(l, "https://")
}
