package youtube

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"github.com/quoteforge/quoteforge/internal/utils"
)

// Required OAuth scopes for YouTube API
var requiredScopes = []string{
	"https://www.googleapis.com/auth/youtube.readonly",
	"https://www.googleapis.com/auth/youtube.upload",
	"https://www.googleapis.com/auth/youtube.force-ssl",
}

// Service implements the YouTubeService interface
type Service struct{}

// InitializeYouTubeService creates a YouTube service client
func (m *Service) InitializeYouTubeService(ctx context.Context, credentialsPath string) (*youtube.Service, error) {
	// Read credentials file
	credentials, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}

	// Create OAuth2 config
	config, err := google.ConfigFromJSON(credentials, requiredScopes...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OAuth config: %w", err)
	}

	// Initialize token storage
	tokenStorage, err := utils.NewTokenStorage()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token storage: %w", err)
	}

	// Try to load existing token
	token, err := tokenStorage.LoadToken("youtube")
	if err != nil {
		return nil, fmt.Errorf("failed to load token: %w", err)
	}

	// If no token exists or it's expired, get a new one
	if token == nil || !token.Valid() {
		// Set up callback server
		callbackServer := utils.NewOAuthCallbackServer()
		if err := callbackServer.Start(8080); err != nil {
			return nil, fmt.Errorf("failed to start callback server: %w", err)
		}
		defer func() {
			if err := callbackServer.Stop(); err != nil {
				utils.LogWarning("Failed to stop callback server: %v", err)
			}
		}()

		// Set redirect URL to localhost
		config.RedirectURL = "http://localhost:8080"

		// Get auth URL
		authURL := config.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
		if err := callbackServer.OpenURL(authURL); err != nil {
			return nil, fmt.Errorf("failed to open auth URL: %w", err)
		}

		// Wait for the authorization code
		code := callbackServer.WaitForCode()

		// Exchange authorization code for token
		token, err = config.Exchange(ctx, code)
		if err != nil {
			return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
		}

		// Save the new token
		if err := tokenStorage.SaveToken("youtube", token); err != nil {
			utils.LogWarning("Failed to save token: %v", err)
		}
	} else {
		utils.LogInfo("Using existing authorization token")
	}

	// Create YouTube service with token
	service, err := youtube.NewService(ctx, option.WithTokenSource(config.TokenSource(ctx, token)))
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}

	return service, nil
}

// ReadScheduledVideos retrieves all scheduled videos from the channel
func (m *Service) ReadScheduledVideos(ctx context.Context, service *youtube.Service) ([]ScheduledVideo, error) {
	// Verify channel access
	channelsResponse, err := service.Channels.List([]string{"id"}).Mine(true).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get channel info: %w", err)
	}

	if len(channelsResponse.Items) == 0 {
		return nil, fmt.Errorf("no channel found")
	}

	// Get videos using the search API
	searchResponse, err := service.Search.List([]string{"id"}).
		ForMine(true).
		Type("video").
		MaxResults(50).
		Do()

	if err != nil {
		return nil, fmt.Errorf("failed to search for videos: %w", err)
	}

	if len(searchResponse.Items) == 0 {
		return nil, nil
	}

	var videoIds []string
	for _, item := range searchResponse.Items {
		videoIds = append(videoIds, item.Id.VideoId)
	}

	// Get detailed video information
	videosResponse, err := service.Videos.List([]string{"snippet", "status", "contentDetails"}).
		Id(videoIds...).
		Do()

	if err != nil {
		return nil, fmt.Errorf("failed to get video details: %w", err)
	}

	var scheduledVideos []ScheduledVideo
	for _, video := range videosResponse.Items {
		// Only include scheduled videos
		if video.Status.PrivacyStatus == "private" && video.Status.PublishAt != "" {
			scheduledVideos = append(scheduledVideos, ScheduledVideo{
				Title:       video.Snippet.Title,
				PublishAt:   video.Status.PublishAt,
				Description: video.Snippet.Description,
				Privacy:     video.Status.PrivacyStatus,
				VideoID:     video.Id,
			})
		}
	}

	return scheduledVideos, nil
}

// ListScheduledVideos displays the list of scheduled videos
func (m *Service) ListScheduledVideos(videos []ScheduledVideo) error {
	utils.LogInfo("\nScheduled Videos:")
	utils.LogInfo("----------------")

	if len(videos) == 0 {
		utils.LogInfo("No scheduled videos found")
		return nil
	}

	for _, video := range videos {
		utils.LogInfo("Title: %s", video.Title)
		utils.LogInfo("Scheduled for: %s", video.PublishAt)
		utils.LogInfo("Privacy: %s", video.Privacy)
		utils.LogInfo("Video ID: %s", video.VideoID)
		utils.LogInfo("----------------")
	}

	return nil
}

// cleanTag removes special characters and converts to lowercase
func cleanTag(tag string) string {
	tag = strings.TrimSpace(tag)
	tag = strings.ToLower(tag)
	replacements := map[string]string{
		"á": "a", "é": "e", "í": "i", "ó": "o", "ú": "u",
		"ñ": "n", "ü": "u",
	}
	for old, new := range replacements {
		tag = strings.ReplaceAll(tag, old, new)
	}
	return tag
}

// processTags splits and cleans tags, ensuring YouTube compatibility
func processTags(tags string) []string {
	rawTags := strings.Split(tags, ",")
	seenTags := make(map[string]bool)
	var cleanedTags []string

	for _, tag := range rawTags {
		cleaned := cleanTag(tag)
		// Skip empty tags or tags over YouTube's length limit
		if cleaned != "" && len(cleaned) <= 30 && !seenTags[cleaned] {
			seenTags[cleaned] = true
			cleanedTags = append(cleanedTags, cleaned)
		}
	}

	// YouTube has a limit on the number of tags
	if len(cleanedTags) > 30 {
		cleanedTags = cleanedTags[:30]
	}

	return cleanedTags
}

// UploadVideos uploads videos to YouTube and returns one result per
// successful upload. A failed upload is logged and skipped so the
// remaining videos still go out.
func (m *Service) UploadVideos(ctx context.Context, service *youtube.Service, uploads []VideoUpload, privacyStatus string, categoryID string) ([]UploadResult, error) {
	var results []UploadResult

	for _, upload := range uploads {
		// Open the video file
		file, err := os.Open(upload.FilePath)
		if err != nil {
			utils.LogWarning("Failed to open video file: %v", err)
			continue
		}

		// Process and clean tags
		cleanedTags := processTags(upload.Tags)

		// Create video insert request
		video := &youtube.Video{
			Snippet: &youtube.VideoSnippet{
				Title:       upload.Title,
				Description: upload.Description,
				CategoryId:  categoryID,
				Tags:        cleanedTags,
			},
			Status: &youtube.VideoStatus{
				PrivacyStatus:           privacyStatus,
				PublishAt:               upload.PublishTime.Format(time.RFC3339),
				MadeForKids:             false,
				SelfDeclaredMadeForKids: false,
			},
		}

		// Upload the video
		call := service.Videos.Insert([]string{"snippet", "status"}, video)
		call.NotifySubscribers(false) // Don't notify subscribers for shorts
		response, err := call.Media(file).Do()
		if closeErr := file.Close(); closeErr != nil {
			utils.LogWarning("Failed to close video file: %v", closeErr)
		}
		if err != nil {
			utils.LogWarning("Failed to upload video: %v", err)
			continue
		}

		utils.LogInfo("Successfully uploaded video: %s", response.Id)
		utils.LogInfo("\t[%s] %s", upload.PublishTime.Format("2006-01-02 15:04:05"), upload.Title)

		// Set the custom thumbnail if one was produced
		if upload.ThumbnailPath != "" {
			if err := m.setThumbnail(service, response.Id, upload.ThumbnailPath); err != nil {
				utils.LogWarning("Failed to set thumbnail: %v", err)
			}
		}

		// If playlist ID is provided, add the video to the playlist
		if upload.PlaylistID != "" {
			playlistItem := &youtube.PlaylistItem{
				Snippet: &youtube.PlaylistItemSnippet{
					PlaylistId: upload.PlaylistID,
					ResourceId: &youtube.ResourceId{
						Kind:    "youtube#video",
						VideoId: response.Id,
					},
				},
			}

			_, err = service.PlaylistItems.Insert([]string{"snippet"}, playlistItem).Do()
			if err != nil {
				utils.LogWarning("Failed to add video to playlist: %v", err)
			} else {
				utils.LogInfo("Added video to playlist: %s", upload.PlaylistID)
			}
		}

		results = append(results, UploadResult{VideoID: response.Id, Upload: upload})
	}

	return results, nil
}

// setThumbnail uploads a custom thumbnail for a video
func (m *Service) setThumbnail(service *youtube.Service, videoID string, thumbnailPath string) error {
	thumb, err := os.Open(thumbnailPath)
	if err != nil {
		return fmt.Errorf("failed to open thumbnail file: %w", err)
	}
	defer func() {
		if err := thumb.Close(); err != nil {
			utils.LogWarning("Failed to close thumbnail file: %v", err)
		}
	}()

	_, err = service.Thumbnails.Set(videoID).Media(thumb).Do()
	if err != nil {
		return fmt.Errorf("failed to set thumbnail: %w", err)
	}

	utils.LogVerbose("Set thumbnail for video %s", videoID)
	return nil
}

// ListPlannedUploads displays the planned uploads and their publish times
func (m *Service) ListPlannedUploads(uploads []VideoUpload) error {
	utils.LogInfo("\nPlanned publish times (UTC):")
	utils.LogInfo("----------------")
	for _, upload := range uploads {
		utils.LogInfo("Title: %s", upload.Title)
		utils.LogInfo("File: %s", upload.FilePath)
		utils.LogInfo("Publish at: %s", upload.PublishTime.Format(time.RFC3339))
		if upload.PlaylistID != "" {
			utils.LogInfo("Playlist: %s", upload.PlaylistID)
		}
		utils.LogInfo("----------------")
	}
	return nil
}
