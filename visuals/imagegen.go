// Package visuals generates scene images via Pollinations.ai.
package visuals

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"go.uber.org/zap"
)

// Generator fetches AI-generated images sized for the requested aspect
// ratio. Seeds are deterministic per scene so a re-run that lost an
// image file regenerates the same picture.
type Generator struct {
	httpClient *http.Client
	log        *zap.SugaredLogger
	model      string
}

// NewGenerator creates an image generator.
func NewGenerator(log *zap.SugaredLogger, model string) *Generator {
	return &Generator{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		log:        log,
		model:      model,
	}
}

// dimensionsFor maps an aspect ratio to generation dimensions. 16:9
// matches the scene clip resolution; 9:16 matches the vertical frame.
func dimensionsFor(aspectRatio string) (width, height int) {
	if aspectRatio == "9:16" {
		return 1080, 1920
	}
	return 1344, 768
}

// Generate renders prompt into an image at outputPath. Retries up to 3
// times; the API occasionally times out under load.
func (g *Generator) Generate(ctx context.Context, prompt, aspectRatio string, seed int, outputPath string) error {
	width, height := dimensionsFor(aspectRatio)

	imageURL := fmt.Sprintf(
		"https://image.pollinations.ai/prompt/%s?width=%d&height=%d&nologo=true&model=%s&seed=%d",
		url.PathEscape(prompt),
		width, height,
		g.model,
		seed,
	)

	var err error
	for attempt := 1; attempt <= 3; attempt++ {
		err = g.download(ctx, imageURL, outputPath)
		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		g.log.Warnf("[visuals] image attempt %d failed: %v", attempt, err)
		select {
		case <-time.After(time.Duration(attempt) * 3 * time.Second):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return fmt.Errorf("image generation failed after 3 attempts: %w", err)
}

func (g *Generator) download(ctx context.Context, imageURL, outputPath string) error {
	req, err := http.NewRequestWithContext(ctx, "GET", imageURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; StoryboardPipeline/1.0)")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d from Pollinations", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	// An error HTML page is far smaller than any real image.
	if len(data) < 100 {
		return fmt.Errorf("response too small (%d bytes) — likely an error", len(data))
	}

	return os.WriteFile(outputPath, data, 0644)
}
