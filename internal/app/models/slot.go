package models

import "sort"

// SlotKey identifies one bookable slot of a doctor.
type SlotKey struct {
	DateKey string
	Time    string
}

// BookedSlots is the per-doctor registry of reserved slots, keyed by date key.
// It is read-only outside of the slot registry implementations.
type BookedSlots map[string][]string

func (b BookedSlots) Contains(key SlotKey) bool {
	for _, t := range b[key.DateKey] {
		if t == key.Time {
			return true
		}
	}
	return false
}

// Keys lists every reserved slot in a stable order.
func (b BookedSlots) Keys() []SlotKey {
	keys := make([]SlotKey, 0, len(b))
	for dateKey, times := range b {
		for _, t := range times {
			keys = append(keys, SlotKey{DateKey: dateKey, Time: t})
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].DateKey != keys[j].DateKey {
			return keys[i].DateKey < keys[j].DateKey
		}
		return keys[i].Time < keys[j].Time
	})
	return keys
}

// Clone returns a deep copy so cached snapshots cannot be mutated by readers.
func (b BookedSlots) Clone() BookedSlots {
	out := make(BookedSlots, len(b))
	for dateKey, times := range b {
		out[dateKey] = append([]string(nil), times...)
	}
	return out
}

// RegistrySnapshot is the cached input of the availability endpoint.
type RegistrySnapshot struct {
	DoctorID  string
	Available bool
	Booked    BookedSlots
}

func (s RegistrySnapshot) Clone() RegistrySnapshot {
	s.Booked = s.Booked.Clone()
	return s
}
