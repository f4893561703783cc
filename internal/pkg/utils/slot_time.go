package utils

import (
	"doctor-appointment-service/internal/pkg/constvars"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatDateKey renders the calendar date of t as D_M_YYYY without padding.
func FormatDateKey(t time.Time) string {
	return fmt.Sprintf(constvars.DateKeyFormat, t.Day(), int(t.Month()), t.Year())
}

// ParseDateKey accepts D_M_YYYY (padding tolerated) or YYYY-MM-DD and returns
// midnight of that calendar date in loc.
func ParseDateKey(dateKey string, loc *time.Location) (time.Time, error) {
	raw := strings.TrimSpace(dateKey)
	if t, err := time.ParseInLocation(constvars.ISODateLayout, raw, loc); err == nil {
		return t, nil
	}

	parts := strings.Split(raw, constvars.DateKeySeparator)
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("date key %q must have day, month and year parts", dateKey)
	}

	day, errDay := strconv.Atoi(parts[0])
	month, errMonth := strconv.Atoi(parts[1])
	year, errYear := strconv.Atoi(parts[2])
	if errDay != nil || errMonth != nil || errYear != nil {
		return time.Time{}, fmt.Errorf("date key %q has non numeric parts", dateKey)
	}
	if len(parts[2]) != 4 || month < 1 || month > 12 || day < 1 {
		return time.Time{}, fmt.Errorf("date key %q is out of range", dateKey)
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
	if t.Day() != day || int(t.Month()) != month {
		return time.Time{}, fmt.Errorf("date key %q is not a calendar date", dateKey)
	}
	return t, nil
}

// NormalizeDateKey parses dateKey and renders it back in canonical form.
func NormalizeDateKey(dateKey string, loc *time.Location) (string, error) {
	t, err := ParseDateKey(dateKey, loc)
	if err != nil {
		return "", err
	}
	return FormatDateKey(t), nil
}

// ParseSlotTime accepts "10:00 AM", "3:30 pm" and similar 12-hour clock strings.
func ParseSlotTime(slotTime string) (hour, minute int, err error) {
	raw := strings.ToUpper(strings.TrimSpace(slotTime))
	t, err := time.Parse(constvars.SlotTimeLooseLayout, raw)
	if err != nil {
		return 0, 0, fmt.Errorf("slot time %q: %w", slotTime, err)
	}
	return t.Hour(), t.Minute(), nil
}

func FormatSlotTime(hour, minute int) string {
	return time.Date(2000, time.January, 1, hour, minute, 0, 0, time.UTC).Format(constvars.SlotTimeLayout)
}

// NormalizeSlotTime parses slotTime and renders it back zero padded.
func NormalizeSlotTime(slotTime string) (string, error) {
	hour, minute, err := ParseSlotTime(slotTime)
	if err != nil {
		return "", err
	}
	return FormatSlotTime(hour, minute), nil
}
