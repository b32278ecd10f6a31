package youtube

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	modules "github.com/quoteforge/quoteforge/internal/mod"
	youtubesvc "github.com/quoteforge/quoteforge/internal/services/youtube"
	"github.com/quoteforge/quoteforge/internal/utils"
)

// baseHashtags are prepended to every video description
var baseHashtags = []string{"Inspiration", "Motivation", "DailyQuote", "Viral", "Shorts"}

// Module implements YouTube shorts upload functionality
type Module struct {
	youtubeService youtubesvc.YouTubeService
}

// Params contains the parameters for YouTube shorts upload operations
type Params struct {
	Input             string `json:"input"`             // Path to the quote deck file
	Output            string `json:"output"`            // Path to output directory
	VideosPath        string `json:"videosPath"`        // Directory holding composed videos (default: output)
	ThumbnailsPath    string `json:"thumbnailsPath"`    // Directory holding thumbnails (default: output)
	AudioPath         string `json:"audioPath"`         // Directory holding narration audio (default: output)
	ImagesPath        string `json:"imagesPath"`        // Directory holding background images (default: output)
	Credentials       string `json:"credentials"`       // Path to Google credentials file
	PlaylistID        string `json:"playlistId"`        // Optional: YouTube playlist ID
	PrivacyStatus     string `json:"privacyStatus"`     // Video privacy status (private, unlisted, public)
	CategoryID        string `json:"categoryId"`        // Video category ID
	FirstSlot         string `json:"firstSlot"`         // First publish slot of the day (HH:MM UTC)
	SlotsPerDay       int    `json:"slotsPerDay"`       // Publish slots per day (default: 5)
	SlotIntervalHours int    `json:"slotIntervalHours"` // Hours between slots (default: 2)
	MaxDays           int    `json:"maxDays"`           // Maximum number of days to search for free slots
	StartDate         string `json:"startDate"`         // Start date for scheduling (YYYY-MM-DD)
	KeepArtifacts     bool   `json:"keepArtifacts"`     // Keep local files after a confirmed upload
}

// New creates a new YouTube shorts upload module
func New() modules.Module {
	return &Module{
		youtubeService: &youtubesvc.Service{},
	}
}

// NewWithService creates a new upload module with a custom YouTube service
func NewWithService(service youtubesvc.YouTubeService) modules.Module {
	return &Module{youtubeService: service}
}

// Name returns the module name
func (m *Module) Name() string {
	return "uploadyoutubeshorts"
}

// Validate checks if the parameters are valid
func (m *Module) Validate(params map[string]interface{}) error {
	var p Params
	if err := modules.ParseParams(params, &p); err != nil {
		return err
	}

	// Validate input path
	if err := utils.ValidateInputPath(p.Input, p.Output, ""); err != nil {
		return err
	}

	// Validate output path
	if err := utils.ValidateOutputPath(p.Output); err != nil {
		return err
	}

	// Validate credentials file
	if p.Credentials == "" {
		p.Credentials = os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
		if p.Credentials == "" {
			return fmt.Errorf("credentials file path is required")
		}
	}

	// Expand home directory if present
	expandedCredentials, err := utils.ExpandHomeDir(p.Credentials)
	if err != nil {
		return fmt.Errorf("failed to expand home directory: %w", err)
	}
	p.Credentials = expandedCredentials

	if _, err := os.Stat(p.Credentials); os.IsNotExist(err) {
		return fmt.Errorf("credentials file does not exist: %s", p.Credentials)
	}

	// Validate privacy status
	if p.PrivacyStatus == "" {
		p.PrivacyStatus = "private" // Default to private
	}
	if p.PrivacyStatus != "private" && p.PrivacyStatus != "unlisted" && p.PrivacyStatus != "public" {
		return fmt.Errorf("invalid privacy status: %s", p.PrivacyStatus)
	}

	return nil
}

// Execute schedules and uploads the composed videos to YouTube
func (m *Module) Execute(ctx context.Context, params map[string]interface{}) (modules.ModuleResult, error) {
	var p Params
	if err := modules.ParseParams(params, &p); err != nil {
		return modules.ModuleResult{}, err
	}

	// Set default values
	if p.PrivacyStatus == "" {
		p.PrivacyStatus = "private"
	}
	if p.CategoryID == "" {
		p.CategoryID = "22" // People & Blogs
	}
	if p.VideosPath == "" {
		p.VideosPath = p.Output
	}
	if p.ThumbnailsPath == "" {
		p.ThumbnailsPath = p.Output
	}
	if p.AudioPath == "" {
		p.AudioPath = p.Output
	}
	if p.ImagesPath == "" {
		p.ImagesPath = p.Output
	}

	slotOpts := youtubesvc.DefaultSlotOptions()
	slotOpts.StartDate = p.StartDate
	if p.FirstSlot != "" {
		slotOpts.FirstSlot = p.FirstSlot
	}
	if p.SlotsPerDay > 0 {
		slotOpts.SlotsPerDay = p.SlotsPerDay
	}
	if p.SlotIntervalHours > 0 {
		slotOpts.SlotIntervalHours = p.SlotIntervalHours
	}
	if p.MaxDays > 0 {
		slotOpts.MaxDays = p.MaxDays
	}

	// Expand home directory if present
	expandedCredentials, err := utils.ExpandHomeDir(p.Credentials)
	if err != nil {
		return modules.ModuleResult{}, fmt.Errorf("failed to expand home directory: %w", err)
	}
	p.Credentials = expandedCredentials

	// Read the quote deck
	resolvedInput := utils.ResolveOutputPath(p.Input, p.Output)
	deck, err := utils.ReadDeckFile(resolvedInput)
	if err != nil {
		return modules.ModuleResult{}, err
	}

	videosDir := utils.ResolveOutputPath(p.VideosPath, p.Output)
	thumbnailsDir := utils.ResolveOutputPath(p.ThumbnailsPath, p.Output)
	audioDir := utils.ResolveOutputPath(p.AudioPath, p.Output)
	imagesDir := utils.ResolveOutputPath(p.ImagesPath, p.Output)

	// Initialize YouTube service
	service, err := m.youtubeService.InitializeYouTubeService(ctx, p.Credentials)
	if err != nil {
		return modules.ModuleResult{}, fmt.Errorf("failed to initialize YouTube service: %w", err)
	}

	// Read scheduled videos so their slots are not reused
	scheduledVideos, err := m.youtubeService.ReadScheduledVideos(ctx, service)
	if err != nil {
		return modules.ModuleResult{}, fmt.Errorf("failed to read scheduled videos: %w", err)
	}

	// Assign a publish slot to each quote video
	slots, err := m.youtubeService.AssignSlots(scheduledVideos, len(deck.Quotes), slotOpts)
	if err != nil {
		return modules.ModuleResult{}, fmt.Errorf("failed to assign publish slots: %w", err)
	}

	// Build the upload list
	var uploads []youtubesvc.VideoUpload
	for i, entry := range deck.Quotes {
		videoPath := filepath.Join(videosDir, fmt.Sprintf("video_%02d.mp4", i))
		if _, err := os.Stat(videoPath); err != nil {
			return modules.ModuleResult{}, fmt.Errorf("video for quote %d does not exist: %s", i, videoPath)
		}

		// The thumbnail is optional
		thumbnailPath := filepath.Join(thumbnailsDir, fmt.Sprintf("thumb_%02d.jpg", i))
		if _, err := os.Stat(thumbnailPath); err != nil {
			thumbnailPath = ""
		}

		hashtags := buildHashtags(entry.Author)
		uploads = append(uploads, youtubesvc.VideoUpload{
			Index:         i,
			FilePath:      videoPath,
			ThumbnailPath: thumbnailPath,
			Title:         entry.Title,
			Description:   entry.Narration + "\n\n" + strings.Join(hashtags, " "),
			Tags:          strings.Join(stripHashes(hashtags), ","),
			PublishTime:   slots[i],
			PlaylistID:    p.PlaylistID,
		})
	}

	// List planned uploads
	if err := m.youtubeService.ListPlannedUploads(uploads); err != nil {
		return modules.ModuleResult{}, fmt.Errorf("failed to list planned uploads: %w", err)
	}

	// Upload the videos
	results, err := m.youtubeService.UploadVideos(ctx, service, uploads, p.PrivacyStatus, p.CategoryID)
	if err != nil {
		return modules.ModuleResult{}, fmt.Errorf("failed to upload videos: %w", err)
	}

	// Remove local artifacts for each confirmed upload, including the
	// narration audio and background image the video was composed from
	if !p.KeepArtifacts {
		for _, result := range results {
			voicePath := filepath.Join(audioDir, fmt.Sprintf("voice_%02d.mp3", result.Upload.Index))
			backgroundPath := filepath.Join(imagesDir, fmt.Sprintf("background_%02d.png", result.Upload.Index))
			utils.RemoveFiles(result.Upload.FilePath, result.Upload.ThumbnailPath, voicePath, backgroundPath)
		}
	}

	if len(results) < len(uploads) {
		utils.LogWarning("Uploaded %d of %d videos", len(results), len(uploads))
	}

	startDate := p.StartDate
	if startDate == "" && len(slots) > 0 {
		startDate = slots[0].Format("2006-01-02")
	}

	return modules.ModuleResult{
		Metadata: map[string]interface{}{
			"totalVideos": len(uploads),
			"startDate":   startDate,
		},
		Statistics: map[string]interface{}{
			"uploadedVideos": len(results),
			"slotsPerDay":    slotOpts.SlotsPerDay,
		},
		NextModules: []string{}, // No next modules for this terminal operation
	}, nil
}

// buildHashtags returns the standard hashtags plus one for the author
func buildHashtags(author string) []string {
	tags := make([]string, 0, len(baseHashtags)+1)
	for _, tag := range baseHashtags {
		tags = append(tags, "#"+tag)
	}
	if authorTag := strings.ReplaceAll(author, " ", ""); authorTag != "" {
		tags = append(tags, "#"+authorTag)
	}
	return tags
}

// stripHashes removes the leading # from each hashtag
func stripHashes(hashtags []string) []string {
	stripped := make([]string, 0, len(hashtags))
	for _, tag := range hashtags {
		stripped = append(stripped, strings.TrimPrefix(tag, "#"))
	}
	return stripped
}

// GetIO returns the module's input/output specification
func (m *Module) GetIO() modules.ModuleIO {
	return modules.ModuleIO{
		RequiredInputs: []modules.ModuleInput{
			{
				Name:        "input",
				Description: "Path to the quote deck file",
				Patterns:    []string{".yaml", ".yml"},
				Type:        string(modules.InputTypeFile),
			},
			{
				Name:        "output",
				Description: "Path to output directory",
				Type:        string(modules.InputTypeDirectory),
			},
			{
				Name:        "credentials",
				Description: "Path to Google credentials file",
				Patterns:    []string{".json"},
				Type:        string(modules.InputTypeFile),
			},
		},
		OptionalInputs: []modules.ModuleInput{
			{
				Name:        "videosPath",
				Description: "Directory holding composed videos",
				Patterns:    []string{".mp4"},
				Type:        string(modules.InputTypeDirectory),
			},
			{
				Name:        "thumbnailsPath",
				Description: "Directory holding thumbnails",
				Patterns:    []string{".jpg"},
				Type:        string(modules.InputTypeDirectory),
			},
			{
				Name:        "playlistId",
				Description: "YouTube playlist ID",
				Type:        string(modules.InputTypeData),
			},
			{
				Name:        "privacyStatus",
				Description: "Video privacy status (private, unlisted, public)",
				Type:        string(modules.InputTypeData),
			},
			{
				Name:        "categoryId",
				Description: "Video category ID",
				Type:        string(modules.InputTypeData),
			},
			{
				Name:        "firstSlot",
				Description: "First publish slot of the day (HH:MM UTC)",
				Type:        string(modules.InputTypeData),
			},
			{
				Name:        "slotsPerDay",
				Description: "Publish slots per day (default: 5)",
				Type:        string(modules.InputTypeData),
			},
			{
				Name:        "slotIntervalHours",
				Description: "Hours between slots (default: 2)",
				Type:        string(modules.InputTypeData),
			},
			{
				Name:        "startDate",
				Description: "Start date for scheduling (YYYY-MM-DD)",
				Type:        string(modules.InputTypeData),
			},
			{
				Name:        "keepArtifacts",
				Description: "Keep local files after a confirmed upload",
				Type:        string(modules.InputTypeData),
			},
		},
		ProducedOutputs: []modules.ModuleOutput{},
	}
}
