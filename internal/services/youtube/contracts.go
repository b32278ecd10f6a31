package youtube

import (
	"context"
	"time"

	"google.golang.org/api/youtube/v3"
)

// YouTubeService defines the interface for YouTube service operations
type YouTubeService interface {
	// InitializeYouTubeService creates a YouTube service client
	InitializeYouTubeService(ctx context.Context, credentialsPath string) (*youtube.Service, error)

	// ReadScheduledVideos retrieves all scheduled videos from the channel
	ReadScheduledVideos(ctx context.Context, service *youtube.Service) ([]ScheduledVideo, error)

	// ListScheduledVideos displays the list of scheduled videos
	ListScheduledVideos(videos []ScheduledVideo) error

	// AssignSlots picks publish times for count videos, skipping times
	// already taken by scheduled videos on the channel
	AssignSlots(scheduledVideos []ScheduledVideo, count int, opts SlotOptions) ([]time.Time, error)

	// UploadVideos uploads videos to YouTube and returns one result per
	// successful upload
	UploadVideos(ctx context.Context, service *youtube.Service, uploads []VideoUpload, privacyStatus string, categoryID string) ([]UploadResult, error)

	// ListPlannedUploads displays the planned uploads and their publish times
	ListPlannedUploads(uploads []VideoUpload) error
}

// ScheduledVideo represents a scheduled video on YouTube
type ScheduledVideo struct {
	Title       string
	PublishAt   string
	Description string
	Privacy     string
	VideoID     string
}

// VideoUpload represents the information needed to upload a video
type VideoUpload struct {
	Index         int       // Position of the quote within its deck
	FilePath      string    // Full path to the video file
	ThumbnailPath string    // Full path to the thumbnail image (optional)
	Title         string    // The video title
	Description   string    // The video description
	Tags          string    // Comma-separated tags
	PublishTime   time.Time // The scheduled publish time (UTC)
	PlaylistID    string    // The YouTube playlist ID to add the video to (optional)
}

// UploadResult records a successful upload
type UploadResult struct {
	VideoID string
	Upload  VideoUpload
}

// SlotOptions controls how publish slots are laid out across days
type SlotOptions struct {
	StartDate         string // First candidate day (2006-01-02), empty means today
	FirstSlot         string // First slot of the day (HH:MM, UTC)
	SlotsPerDay       int    // Number of slots per day
	SlotIntervalHours int    // Hours between slots within a day
	MaxDays           int    // Give up after scanning this many days
}

// DefaultSlotOptions returns the standard five-a-day layout starting at
// 09:00 UTC with two hours between slots
func DefaultSlotOptions() SlotOptions {
	return SlotOptions{
		FirstSlot:         "09:00",
		SlotsPerDay:       5,
		SlotIntervalHours: 2,
		MaxDays:           60,
	}
}
