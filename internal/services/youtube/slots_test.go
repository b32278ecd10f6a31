package youtube

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixClock pins the package clock for the duration of a test
func fixClock(t *testing.T, at time.Time) {
	t.Helper()
	timeNow = func() time.Time { return at }
	t.Cleanup(func() { timeNow = time.Now })
}

func TestAssignSlotsLaysOutDay(t *testing.T) {
	fixClock(t, time.Date(2026, 3, 1, 6, 0, 0, 0, time.UTC))

	service := &Service{}
	slots, err := service.AssignSlots(nil, 5, DefaultSlotOptions())
	require.NoError(t, err)
	require.Len(t, slots, 5)

	// All five slots land on the same day, two hours apart from 09:00
	for i, slot := range slots {
		expected := time.Date(2026, 3, 1, 9+2*i, 0, 0, 0, time.UTC)
		assert.Equal(t, expected, slot)
	}
}

func TestAssignSlotsRollsOverToNextDay(t *testing.T) {
	fixClock(t, time.Date(2026, 3, 1, 6, 0, 0, 0, time.UTC))

	service := &Service{}
	slots, err := service.AssignSlots(nil, 7, DefaultSlotOptions())
	require.NoError(t, err)
	require.Len(t, slots, 7)

	// The sixth video starts the next day's layout
	assert.Equal(t, time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC), slots[5])
	assert.Equal(t, time.Date(2026, 3, 2, 11, 0, 0, 0, time.UTC), slots[6])
}

func TestAssignSlotsSkipsPastTimes(t *testing.T) {
	// Mid-day: 09:00 and 11:00 are already gone
	fixClock(t, time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC))

	service := &Service{}
	slots, err := service.AssignSlots(nil, 3, DefaultSlotOptions())
	require.NoError(t, err)
	require.Len(t, slots, 3)

	assert.Equal(t, time.Date(2026, 3, 1, 13, 0, 0, 0, time.UTC), slots[0])
	assert.Equal(t, time.Date(2026, 3, 1, 15, 0, 0, 0, time.UTC), slots[1])
	assert.Equal(t, time.Date(2026, 3, 1, 17, 0, 0, 0, time.UTC), slots[2])
}

func TestAssignSlotsSkipsOccupiedSlots(t *testing.T) {
	fixClock(t, time.Date(2026, 3, 1, 6, 0, 0, 0, time.UTC))

	scheduled := []ScheduledVideo{
		{Title: "Taken", PublishAt: "2026-03-01T11:00:00Z"},
		{Title: "Also taken", PublishAt: "2026-03-01T13:00:00Z"},
	}

	service := &Service{}
	slots, err := service.AssignSlots(scheduled, 3, DefaultSlotOptions())
	require.NoError(t, err)
	require.Len(t, slots, 3)

	assert.Equal(t, time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC), slots[0])
	assert.Equal(t, time.Date(2026, 3, 1, 15, 0, 0, 0, time.UTC), slots[1])
	assert.Equal(t, time.Date(2026, 3, 1, 17, 0, 0, 0, time.UTC), slots[2])
}

func TestAssignSlotsHonorsStartDate(t *testing.T) {
	fixClock(t, time.Date(2026, 3, 1, 6, 0, 0, 0, time.UTC))

	opts := DefaultSlotOptions()
	opts.StartDate = "2026-03-15"

	service := &Service{}
	slots, err := service.AssignSlots(nil, 1, opts)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC), slots[0])
}

func TestAssignSlotsInvariants(t *testing.T) {
	fixClock(t, time.Date(2026, 3, 1, 10, 17, 0, 0, time.UTC))

	scheduled := []ScheduledVideo{
		{Title: "Taken", PublishAt: "2026-03-01T13:00:00Z"},
		{Title: "Taken tomorrow", PublishAt: "2026-03-02T09:00:00Z"},
	}

	service := &Service{}
	slots, err := service.AssignSlots(scheduled, 12, DefaultSlotOptions())
	require.NoError(t, err)
	require.Len(t, slots, 12)

	now := timeNow().UTC()
	for i, slot := range slots {
		assert.True(t, slot.After(now), "slot %d is not in the future", i)
		if i > 0 {
			assert.True(t, slot.After(slots[i-1]), "slot %d is not after slot %d", i, i-1)
		}
	}
}

func TestAssignSlotsExhaustsSearchWindow(t *testing.T) {
	fixClock(t, time.Date(2026, 3, 1, 6, 0, 0, 0, time.UTC))

	opts := DefaultSlotOptions()
	opts.MaxDays = 1

	service := &Service{}
	_, err := service.AssignSlots(nil, 6, opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "free slots")
}

func TestAssignSlotsRejectsBadOptions(t *testing.T) {
	service := &Service{}

	tests := []struct {
		name  string
		count int
		opts  SlotOptions
	}{
		{
			name:  "zero count",
			count: 0,
			opts:  DefaultSlotOptions(),
		},
		{
			name:  "zero slots per day",
			count: 1,
			opts:  SlotOptions{FirstSlot: "09:00", SlotIntervalHours: 2},
		},
		{
			name:  "bad first slot",
			count: 1,
			opts:  SlotOptions{FirstSlot: "25:00", SlotsPerDay: 5, SlotIntervalHours: 2},
		},
		{
			name:  "bad start date",
			count: 1,
			opts:  SlotOptions{FirstSlot: "09:00", SlotsPerDay: 5, SlotIntervalHours: 2, StartDate: "03/15/2026"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.AssignSlots(nil, tt.count, tt.opts)
			assert.Error(t, err)
		})
	}
}

func TestProcessTags(t *testing.T) {
	tags := "Inspiración, Motivation , motivation, , ThisTagIsWayTooLongForYouTubeToAcceptIt, Shorts"
	cleaned := processTags(tags)
	assert.Equal(t, []string{"inspiracion", "motivation", "shorts"}, cleaned)
}
