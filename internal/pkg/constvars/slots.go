package constvars

import "time"

const (
	SlotWorkingDayStartHour = 10
	SlotWorkingDayEndHour   = 21
	SlotScheduleDays        = 7
	SlotDuration            = 30 * time.Minute
)

const (
	// SlotTimeLayout renders zero-padded 12-hour clock strings such as "01:30 PM".
	SlotTimeLayout      = "03:04 PM"
	SlotTimeLooseLayout = "3:04 PM"
	DateKeyFormat       = "%d_%d_%d"
	DateKeySeparator    = "_"
	ISODateLayout       = "2006-01-02"
)
