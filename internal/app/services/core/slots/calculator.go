package slots

import (
	"doctor-appointment-service/internal/app/models"
	"doctor-appointment-service/internal/pkg/constvars"
	"doctor-appointment-service/internal/pkg/utils"
	"time"
)

// Descriptor is one bookable slot.
type Descriptor struct {
	DateKey string
	Time    string
	Start   time.Time
}

type DaySchedule struct {
	Date    time.Time
	DateKey string
	Slots   []Descriptor
}

// Calculate returns constvars.SlotScheduleDays ordered buckets starting with
// the calendar day of now, in now's location. Booked slots are left out.
// Today starts at the first half-hour boundary strictly after now, or at the
// opening hour if now is earlier.
func Calculate(registry models.BookedSlots, now time.Time) []DaySchedule {
	loc := now.Location()
	days := make([]DaySchedule, 0, constvars.SlotScheduleDays)

	for offset := 0; offset < constvars.SlotScheduleDays; offset++ {
		day := time.Date(now.Year(), now.Month(), now.Day()+offset, 0, 0, 0, 0, loc)
		startMinute := constvars.SlotWorkingDayStartHour * 60
		if offset == 0 {
			startMinute = firstMinuteOfToday(now)
		}

		days = append(days, DaySchedule{
			Date:    day,
			DateKey: utils.FormatDateKey(day),
			Slots:   generateSlotsBetween(day, startMinute, constvars.SlotWorkingDayEndHour*60, registry),
		})
	}
	return days
}

func firstMinuteOfToday(now time.Time) int {
	opening := constvars.SlotWorkingDayStartHour * 60
	minuteOfDay := now.Hour()*60 + now.Minute()
	if minuteOfDay < opening {
		return opening
	}
	step := int(constvars.SlotDuration / time.Minute)
	return (minuteOfDay/step + 1) * step
}

// generateSlotsBetween walks [startMinute, endMinute) of day on the slot grid.
func generateSlotsBetween(day time.Time, startMinute, endMinute int, registry models.BookedSlots) []Descriptor {
	step := int(constvars.SlotDuration / time.Minute)
	dateKey := utils.FormatDateKey(day)
	out := make([]Descriptor, 0)

	for minute := startMinute; minute < endMinute; minute += step {
		slotTime := utils.FormatSlotTime(minute/60, minute%60)
		if registry.Contains(models.SlotKey{DateKey: dateKey, Time: slotTime}) {
			continue
		}
		out = append(out, Descriptor{
			DateKey: dateKey,
			Time:    slotTime,
			Start:   atClock(day, minute/60, minute%60),
		})
	}
	return out
}

func atClock(day time.Time, h, m int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), h, m, 0, 0, day.Location())
}

// IsBookable reports whether a slot sits on the working grid. It does not
// look at the registry.
func IsBookable(hour, minute int) bool {
	step := int(constvars.SlotDuration / time.Minute)
	minuteOfDay := hour*60 + minute
	return minute%step == 0 &&
		minuteOfDay >= constvars.SlotWorkingDayStartHour*60 &&
		minuteOfDay < constvars.SlotWorkingDayEndHour*60
}

// SlotStart resolves a slot to an instant in loc.
func SlotStart(day time.Time, hour, minute int) time.Time {
	return atClock(day, hour, minute)
}
