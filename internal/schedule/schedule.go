package schedule

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pickupfc/matchday/internal/common/clock"
	"github.com/pickupfc/matchday/internal/models"
)

// Validation errors
var (
	ErrInvalidDate = errors.New("invalid date")
	ErrInvalidTime = errors.New("invalid time")
)

// DateLayout is the canonical date form used everywhere in storage
const DateLayout = "2006-01-02"

var (
	isoDatePattern   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	shortDatePattern = regexp.MustCompile(`^(\d{1,2})\.(\d{1,2})$`)
	fullDatePattern  = regexp.MustCompile(`^(\d{1,2})\.(\d{1,2})\.(\d{4})$`)
	timePattern      = regexp.MustCompile(`^\d{2}:\d{2}$`)
)

// relativeDays maps the accepted word tokens to an offset from today
var relativeDays = map[string]int{
	"сегодня":            0,
	"today":              0,
	"завтра":             1,
	"tomorrow":           1,
	"послезавтра":        2,
	"day-after-tomorrow": 2,
}

// Schedule parses and formats match dates and times
type Schedule struct {
	clock clock.Clock
}

// Config for the schedule helper
type Config struct {
	// Clock to resolve "today" and past-date checks; defaults to the
	// system clock
	Clock clock.Clock
}

// New creates a new schedule helper
func New(cfg *Config) *Schedule {
	var c clock.Clock
	if cfg != nil && cfg.Clock != nil {
		c = cfg.Clock
	} else {
		c = &clock.DefaultClock{}
	}

	return &Schedule{
		clock: c,
	}
}

// today returns the current day truncated to midnight in local time
func (s *Schedule) today() time.Time {
	now := s.clock.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// ParseDate parses free-form date input into canonical YYYY-MM-DD form.
// Accepted: YYYY-MM-DD, DD.MM (current year, rolled to next year if the
// date already passed), DD.MM.YYYY, and the words
// сегодня/today, завтра/tomorrow, послезавтра/day-after-tomorrow.
// Any resolved date before today is rejected.
func (s *Schedule) ParseDate(input string) (string, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return "", ErrInvalidDate
	}

	today := s.today()

	if offset, ok := relativeDays[strings.ToLower(raw)]; ok {
		return today.AddDate(0, 0, offset).Format(DateLayout), nil
	}

	if isoDatePattern.MatchString(raw) {
		parsed, err := time.ParseInLocation(DateLayout, raw, today.Location())
		if err != nil {
			return "", ErrInvalidDate
		}
		if parsed.Before(today) {
			return "", ErrInvalidDate
		}
		return parsed.Format(DateLayout), nil
	}

	if m := shortDatePattern.FindStringSubmatch(raw); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])

		resolved, err := buildDate(today.Year(), month, day, today.Location())
		if err != nil {
			return "", err
		}
		// The year was not given: a date that already passed this year
		// means next year.
		if resolved.Before(today) {
			resolved, err = buildDate(today.Year()+1, month, day, today.Location())
			if err != nil {
				return "", err
			}
		}
		return resolved.Format(DateLayout), nil
	}

	if m := fullDatePattern.FindStringSubmatch(raw); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])

		resolved, err := buildDate(year, month, day, today.Location())
		if err != nil {
			return "", err
		}
		if resolved.Before(today) {
			return "", ErrInvalidDate
		}
		return resolved.Format(DateLayout), nil
	}

	return "", ErrInvalidDate
}

// buildDate constructs a calendar date and rejects day/month values that
// do not round-trip (e.g. 00.13, or 29.02 outside a leap year)
func buildDate(year, month, day int, loc *time.Location) (time.Time, error) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, ErrInvalidDate
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
	if t.Day() != day || t.Month() != time.Month(month) || t.Year() != year {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// ParseTime validates HH:MM input and returns it unchanged. Only the
// exact two-digit form with a colon separator is accepted.
func (s *Schedule) ParseTime(input string) (string, error) {
	raw := strings.TrimSpace(input)
	if !timePattern.MatchString(raw) {
		return "", ErrInvalidTime
	}

	parts := strings.SplitN(raw, ":", 2)
	hours, _ := strconv.Atoi(parts[0])
	minutes, _ := strconv.Atoi(parts[1])
	if hours > 23 || minutes > 59 {
		return "", ErrInvalidTime
	}

	return raw, nil
}

// ResolveStatus returns the schedule certainty: an explicitly chosen
// status wins; otherwise the schedule is confirmed only when both date
// and time are known.
func ResolveStatus(explicit models.ScheduleStatus, date, timeOfDay string) models.ScheduleStatus {
	if explicit.IsValid() {
		return explicit
	}
	if date != "" && timeOfDay != "" {
		return models.ScheduleStatusConfirmed
	}
	return models.ScheduleStatusTentative
}

// FormatDateTime renders "<date> в <time>" with either part optional
func FormatDateTime(date, timeOfDay string) string {
	if date == "" && timeOfDay == "" {
		return ""
	}

	result := date
	if timeOfDay != "" {
		if result != "" {
			result += " в "
		}
		result += timeOfDay
	}
	return result
}

// RenderScheduleLine produces the status-aware schedule line shown in
// announcements
func RenderScheduleLine(date, timeOfDay string, status models.ScheduleStatus) string {
	when := FormatDateTime(date, timeOfDay)

	if status == models.ScheduleStatusConfirmed {
		if when != "" {
			return fmt.Sprintf("🗓️ %s", when)
		}
		return "🗓️ Дата подтверждена, время уточняется"
	}

	if when != "" {
		return fmt.Sprintf("🗓️ Ориентировочно: %s (может измениться)", when)
	}
	return "🗓️ Дата и время уточняются"
}
