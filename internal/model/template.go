package model

import "fmt"

type SessionType string

const (
	SessionTypeIndividual SessionType = "individual"
	SessionTypeGroup      SessionType = "group"
	SessionTypeRegulars   SessionType = "regulars"
)

// IsValid reports whether the session type is one of the known values.
func (t SessionType) IsValid() bool {
	switch t {
	case SessionTypeIndividual, SessionTypeGroup, SessionTypeRegulars:
		return true
	}
	return false
}

// TimeSlot is one entry of a tutor's weekly availability template.
// Regulars slots carry the invited student's identity; other types must not.
type TimeSlot struct {
	ID          string      `json:"id"`
	StartTime   string      `json:"start_time"` // "HH:MM"
	Duration    int         `json:"duration"`   // minutes, >= 15, multiple of 15
	SessionType SessionType `json:"session_type"`
	Location    string      `json:"location"`
	Description string      `json:"description,omitempty"`
	Color       string      `json:"color"`
	Email       string      `json:"email,omitempty"`
	StudentID   string      `json:"student_id,omitempty"`
}

// Validate checks the slot invariants enforced on template save.
func (s *TimeSlot) Validate() error {
	if _, _, err := ParseClock(s.StartTime); err != nil {
		return err
	}
	if s.Duration < 15 || s.Duration%15 != 0 {
		return fmt.Errorf("duration must be at least 15 minutes and a multiple of 15, got %d", s.Duration)
	}
	if !s.SessionType.IsValid() {
		return fmt.Errorf("unknown session type %q", s.SessionType)
	}
	if s.SessionType == SessionTypeRegulars {
		if s.Email == "" || s.StudentID == "" {
			return fmt.Errorf("regulars slot at %s requires a student email and id", s.StartTime)
		}
	} else if s.Email != "" || s.StudentID != "" {
		return fmt.Errorf("%s slot at %s must not carry a student identity", s.SessionType, s.StartTime)
	}
	return nil
}

// DaySchedule holds all slots for one weekday. Day 0 is Sunday.
type DaySchedule struct {
	Day   int        `json:"day"`
	Slots []TimeSlot `json:"slots"`
}

// WeeklyTemplate is a tutor's full recurring availability, replaced
// wholesale on every save.
type WeeklyTemplate struct {
	TutorID int64         `json:"tutor_id"`
	Days    []DaySchedule `json:"days"`
}

// Validate checks day ranges, slot invariants and the one-slot-per-start
// rule within each day.
func (t *WeeklyTemplate) Validate() error {
	for _, day := range t.Days {
		if day.Day < 0 || day.Day > 6 {
			return fmt.Errorf("day of week %d out of range", day.Day)
		}
		seen := make(map[string]struct{}, len(day.Slots))
		for i := range day.Slots {
			if err := day.Slots[i].Validate(); err != nil {
				return fmt.Errorf("day %d: %w", day.Day, err)
			}
			if _, dup := seen[day.Slots[i].StartTime]; dup {
				return fmt.Errorf("day %d has two slots starting at %s", day.Day, day.Slots[i].StartTime)
			}
			seen[day.Slots[i].StartTime] = struct{}{}
		}
	}
	return nil
}

// ParseClock parses an "HH:MM" wall-clock string.
func ParseClock(value string) (hour, minute int, err error) {
	if _, err = fmt.Sscanf(value, "%d:%d", &hour, &minute); err != nil {
		return 0, 0, fmt.Errorf("invalid time %q", value)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid time %q", value)
	}
	return hour, minute, nil
}
