// Package upload pushes the finished long-form video to YouTube via the
// Data API v3. It is an optional stage gated by upload.enabled.
package upload

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"storyboard-pipeline/config"
)

// Uploader handles YouTube video upload via Data API v3.
type Uploader struct {
	cfg *config.Config
	log *zap.SugaredLogger
}

// New creates a new Uploader.
func New(cfg *config.Config, log *zap.SugaredLogger) *Uploader {
	return &Uploader{cfg: cfg, log: log}
}

// Run uploads the given video file with the configured metadata and
// returns the video id and watch URL.
func (u *Uploader) Run(ctx context.Context, videoFile string) (string, string, error) {
	u.log.Infof("[upload] Authenticating with YouTube API...")

	client, err := u.oauthClient(ctx)
	if err != nil {
		return "", "", fmt.Errorf("youtube auth: %w", err)
	}

	svc, err := youtube.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return "", "", fmt.Errorf("youtube service: %w", err)
	}

	up := u.cfg.Upload
	u.log.Infof("[upload] Uploading: %q", up.Title)

	video := &youtube.Video{
		Snippet: &youtube.VideoSnippet{
			Title:                up.Title,
			Description:          up.Description,
			CategoryId:           up.CategoryID,
			DefaultLanguage:      up.DefaultLanguage,
			DefaultAudioLanguage: up.DefaultLanguage,
		},
		Status: &youtube.VideoStatus{
			PrivacyStatus:           up.Visibility,
			SelfDeclaredMadeForKids: up.MadeForKids,
		},
	}

	f, err := os.Open(videoFile)
	if err != nil {
		return "", "", fmt.Errorf("open video file: %w", err)
	}
	defer f.Close()

	if fi, err := f.Stat(); err == nil {
		u.log.Infof("[upload] File size: %.1f MB", float64(fi.Size())/1024/1024)
	}

	// Resumable upload, required for files over 5MB.
	call := svc.Videos.Insert([]string{"snippet", "status"}, video)
	call.NotifySubscribers(up.NotifySubscribers)
	call.Media(f)

	uploaded, err := call.Do()
	if err != nil {
		return "", "", fmt.Errorf("youtube upload: %w", err)
	}

	videoID := uploaded.Id
	videoURL := fmt.Sprintf("https://www.youtube.com/watch?v=%s", videoID)

	u.log.Infof("[upload] ✅ Uploaded successfully!")
	u.log.Infof("[upload] Video URL: %s", videoURL)
	return videoID, videoURL, nil
}

// oauthClient builds an OAuth2 HTTP client from env credentials using
// the offline refresh-token flow.
func (u *Uploader) oauthClient(ctx context.Context) (*http.Client, error) {
	clientID := os.Getenv("YOUTUBE_CLIENT_ID")
	clientSecret := os.Getenv("YOUTUBE_CLIENT_SECRET")
	refreshToken := os.Getenv("YOUTUBE_REFRESH_TOKEN")

	if clientID == "" || clientSecret == "" || refreshToken == "" {
		return nil, fmt.Errorf("YOUTUBE_CLIENT_ID, YOUTUBE_CLIENT_SECRET, or YOUTUBE_REFRESH_TOKEN not set")
	}

	conf := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{youtube.YoutubeUploadScope, youtube.YoutubeScope},
	}

	token := &oauth2.Token{
		RefreshToken: refreshToken,
		Expiry:       time.Now().Add(-time.Hour), // force refresh
	}
	return oauth2.NewClient(ctx, conf.TokenSource(ctx, token)), nil
}

// LogUpload saves the upload result to the logs directory so a run
// leaves an audit trail next to its artifacts.
func (u *Uploader) LogUpload(videoID, videoURL, videoFile string) error {
	entry := map[string]interface{}{
		"video_id":    videoID,
		"video_url":   videoURL,
		"title":       u.cfg.Upload.Title,
		"uploaded_at": time.Now().UTC().Format(time.RFC3339),
		"video_file":  videoFile,
	}

	logFile := filepath.Join(u.cfg.Paths.Logs, fmt.Sprintf("upload_%s.json", time.Now().Format("20060102_150405")))
	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(logFile, data, 0644); err != nil {
		return err
	}

	u.log.Infof("[upload] Upload log saved: %s", logFile)
	return nil
}
