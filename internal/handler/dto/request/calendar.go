package request

import (
	"time"

	"courtdesk/internal/domain/schedule"
)

type SlotRequest struct {
	Start time.Time `json:"start" binding:"required"`
	End   time.Time `json:"end" binding:"required"`
}

type MergeSlotsRequest struct {
	Slots []SlotRequest `json:"slots" binding:"required,min=1,dive"`
}

func (r MergeSlotsRequest) ToSlots() []schedule.Slot {
	slots := make([]schedule.Slot, 0, len(r.Slots))
	for _, s := range r.Slots {
		slots = append(slots, schedule.Slot{Start: s.Start, End: s.End})
	}
	return slots
}
