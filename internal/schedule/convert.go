package schedule

import (
	"fmt"
	"strconv"
	"strings"
)

// dayNames are the day labels used by the raw sample dataset, Monday first.
var dayNames = []string{"Mon", "Tues", "Weds", "Thurs", "Fri", "Sat", "Sun"}

// ConvertDescription rewrites a free-form opening-hours description such as
//
//	"Mon, Weds 11 am - 2 pm / Tues 5:45 pm - 10 pm / Fri - Sun 1 pm - 9 pm"
//
// into the canonical 14-token HH:MM wire form accepted by Parse. Day lists
// may mix single days and ranges; a range whose end precedes its start wraps
// around the end of the week. Days not mentioned stay at the 00:00/00:00
// closed sentinel.
func ConvertDescription(raw string) (string, error) {
	slots := make([]string, slotCount)
	for i := range slots {
		slots[i] = "00:00"
	}

	for _, segment := range strings.Split(raw, "/") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}

		split := firstDigitIndex(segment)
		if split < 0 {
			return "", fmt.Errorf("segment %q has no time component", segment)
		}

		days, err := parseDayList(strings.TrimSpace(segment[:split]))
		if err != nil {
			return "", fmt.Errorf("segment %q: %w", segment, err)
		}

		open, close, err := parseTimeRange(strings.TrimSpace(segment[split:]))
		if err != nil {
			return "", fmt.Errorf("segment %q: %w", segment, err)
		}

		for _, day := range days {
			slots[day*2] = open
			slots[day*2+1] = close
		}
	}

	return strings.Join(slots, "/"), nil
}

// firstDigitIndex returns the index of the first ASCII digit in s, or -1.
func firstDigitIndex(s string) int {
	for i, r := range s {
		if r >= '0' && r <= '9' {
			return i
		}
	}
	return -1
}

// parseDayList expands a comma-separated list of day names and day ranges
// into Monday-based day indexes.
func parseDayList(raw string) ([]int, error) {
	var days []int

	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		if strings.Contains(part, "-") {
			bounds := strings.SplitN(part, "-", 2)
			first, err := dayIndex(strings.TrimSpace(bounds[0]))
			if err != nil {
				return nil, err
			}
			last, err := dayIndex(strings.TrimSpace(bounds[1]))
			if err != nil {
				return nil, err
			}
			if last < first {
				// Wrap-around range such as "Fri - Mon".
				for d := first; d < 7; d++ {
					days = append(days, d)
				}
				for d := 0; d <= last; d++ {
					days = append(days, d)
				}
			} else {
				for d := first; d <= last; d++ {
					days = append(days, d)
				}
			}
			continue
		}

		d, err := dayIndex(part)
		if err != nil {
			return nil, err
		}
		days = append(days, d)
	}

	return days, nil
}

// dayIndex maps a dataset day label to its Monday-based index.
func dayIndex(name string) (int, error) {
	for i, candidate := range dayNames {
		if candidate == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown day name %q", name)
}

// parseTimeRange converts "11 am - 2:30 pm" into a pair of HH:MM tokens.
func parseTimeRange(raw string) (string, string, error) {
	bounds := strings.SplitN(raw, "-", 2)
	if len(bounds) != 2 {
		return "", "", fmt.Errorf("time range %q must contain '-'", raw)
	}

	open, err := parseClockTime(strings.TrimSpace(bounds[0]))
	if err != nil {
		return "", "", err
	}
	close, err := parseClockTime(strings.TrimSpace(bounds[1]))
	if err != nil {
		return "", "", err
	}

	return open, close, nil
}

// parseClockTime converts a 12-hour dataset time such as "5:45 pm" or "11 am"
// into a zero-padded 24-hour HH:MM token.
func parseClockTime(raw string) (string, error) {
	fields := strings.Fields(raw)
	if len(fields) != 2 {
		return "", fmt.Errorf("time %q must look like '5:45 pm'", raw)
	}

	clock, meridiem := fields[0], strings.ToLower(fields[1])
	if meridiem != "am" && meridiem != "pm" {
		return "", fmt.Errorf("time %q has unknown meridiem %q", raw, meridiem)
	}

	hourStr, minuteStr, hasMinute := strings.Cut(clock, ":")
	hour, err := strconv.Atoi(hourStr)
	if err != nil {
		return "", fmt.Errorf("time %q has invalid hour", raw)
	}

	minute := 0
	if hasMinute {
		minute, err = strconv.Atoi(minuteStr)
		if err != nil {
			return "", fmt.Errorf("time %q has invalid minute", raw)
		}
	}

	if meridiem == "pm" && hour != 12 {
		hour += 12
	}

	return fmt.Sprintf("%02d:%02d", hour, minute), nil
}
