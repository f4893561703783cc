package responses

type Slot struct {
	DateKey  string `json:"dateKey"`
	Time     string `json:"time"`
	DateTime string `json:"dateTime"`
}

type DaySchedule struct {
	DateKey string `json:"dateKey"`
	Weekday string `json:"weekday"`
	Slots   []Slot `json:"slots"`
}

type DoctorSlots struct {
	DoctorID  string        `json:"docId"`
	Available bool          `json:"available"`
	Days      []DaySchedule `json:"days"`
}
