// Package audio generates narration audio through the ElevenLabs
// text-to-speech API.
package audio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"
)

const apiBase = "https://api.elevenlabs.io/v1/text-to-speech"

// Client calls the ElevenLabs TTS endpoint and writes mp3 files.
type Client struct {
	httpClient   *http.Client
	log          *zap.SugaredLogger
	apiKey       string
	voiceID      string
	model        string
	outputFormat string
}

// NewClient creates a TTS client. The API key comes from the environment
// (ELEVENLABS_API_KEY), loaded by main via dotenv.
func NewClient(log *zap.SugaredLogger, voiceID, model, outputFormat string) *Client {
	return &Client{
		httpClient:   &http.Client{Timeout: 120 * time.Second},
		log:          log,
		apiKey:       os.Getenv("ELEVENLABS_API_KEY"),
		voiceID:      voiceID,
		model:        model,
		outputFormat: outputFormat,
	}
}

type synthesizeRequest struct {
	Text    string `json:"text"`
	ModelID string `json:"model_id"`
}

// Synthesize converts text to speech and writes the audio to outputPath.
// The call blocks until the API responds; transient failures retry up to
// 3 times with linear backoff.
func (c *Client) Synthesize(ctx context.Context, text, outputPath string) error {
	if c.apiKey == "" {
		return fmt.Errorf("tts: ELEVENLABS_API_KEY not set")
	}

	var err error
	for attempt := 1; attempt <= 3; attempt++ {
		err = c.synthesizeOnce(ctx, text, outputPath)
		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.log.Warnf("[audio] TTS attempt %d failed: %v — retrying...", attempt, err)
		select {
		case <-time.After(time.Duration(attempt) * 2 * time.Second):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return fmt.Errorf("tts failed after 3 attempts: %w", err)
}

func (c *Client) synthesizeOnce(ctx context.Context, text, outputPath string) error {
	body, err := json.Marshal(synthesizeRequest{Text: text, ModelID: c.model})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/%s?output_format=%s", apiBase, c.voiceID, c.outputFormat)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("xi-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("HTTP %d from ElevenLabs: %s", resp.StatusCode, msg)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if len(data) < 100 {
		return fmt.Errorf("response too small (%d bytes) — likely an error", len(data))
	}

	return os.WriteFile(outputPath, data, 0644)
}
