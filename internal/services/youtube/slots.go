package youtube

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// timeNow is a test hook
var timeNow = time.Now

// parseSlotTime parses the first slot time string (HH:MM) into hours and minutes
func parseSlotTime(timeStr string) (int, int, error) {
	parts := strings.Split(timeStr, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid time format, expected HH:MM")
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid hour: %s", parts[0])
	}

	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid minute: %s", parts[1])
	}

	return hour, minute, nil
}

// AssignSlots picks publish times for count videos. Each UTC day offers
// SlotsPerDay slots, the first at FirstSlot and the rest SlotIntervalHours
// apart. Slots in the past or already taken by a scheduled video on the
// channel are skipped. Returned times are strictly increasing.
func (m *Service) AssignSlots(scheduledVideos []ScheduledVideo, count int, opts SlotOptions) ([]time.Time, error) {
	if count <= 0 {
		return nil, fmt.Errorf("slot count must be positive, got %d", count)
	}
	if opts.SlotsPerDay <= 0 {
		return nil, fmt.Errorf("slots per day must be positive, got %d", opts.SlotsPerDay)
	}
	if opts.SlotIntervalHours <= 0 {
		return nil, fmt.Errorf("slot interval must be positive, got %d", opts.SlotIntervalHours)
	}

	firstHour, firstMinute, err := parseSlotTime(opts.FirstSlot)
	if err != nil {
		return nil, fmt.Errorf("invalid first slot time: %w", err)
	}

	now := timeNow().UTC()

	// Start from the later of the start date or today
	startDay := now
	if opts.StartDate != "" {
		parsed, err := time.Parse("2006-01-02", opts.StartDate)
		if err != nil {
			return nil, fmt.Errorf("invalid start date format: %w", err)
		}
		if parsed.After(now) {
			startDay = parsed
		}
	}

	// Index the channel's already scheduled publish times
	occupied := make(map[time.Time]bool)
	for _, video := range scheduledVideos {
		publishTime, err := time.Parse(time.RFC3339, video.PublishAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse video publish time: %w", err)
		}
		occupied[publishTime.UTC()] = true
	}

	maxDays := opts.MaxDays
	if maxDays <= 0 {
		maxDays = 60
	}

	var assigned []time.Time
	for day := 0; day < maxDays && len(assigned) < count; day++ {
		dayStart := time.Date(startDay.Year(), startDay.Month(), startDay.Day(),
			firstHour, firstMinute, 0, 0, time.UTC).AddDate(0, 0, day)

		for slot := 0; slot < opts.SlotsPerDay && len(assigned) < count; slot++ {
			candidate := dayStart.Add(time.Duration(slot*opts.SlotIntervalHours) * time.Hour)
			if !candidate.After(now) || occupied[candidate] {
				continue
			}
			occupied[candidate] = true
			assigned = append(assigned, candidate)
		}
	}

	if len(assigned) < count {
		return nil, fmt.Errorf("found only %d of %d free slots within %d days", len(assigned), count, maxDays)
	}

	return assigned, nil
}
