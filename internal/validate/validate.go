// Package validate checks raw profile fields coming from the conversation
// front-end. Failures wrap domain.ErrValidation and never mutate state.
package validate

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fitkz/fitcoach/internal/domain"
)

// Accepted ranges for profile fields.
const (
	MinAge    = 10
	MaxAge    = 90
	MinHeight = 120 // cm
	MaxHeight = 250 // cm
	MinWeight = 30  // kg
	MaxWeight = 300 // kg
)

// Age parses and range-checks an age value.
func Age(text string) (int, error) {
	age, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, fmt.Errorf("%w: age must be a number", domain.ErrValidation)
	}
	if age < MinAge || age > MaxAge {
		return 0, fmt.Errorf("%w: age must be between %d and %d", domain.ErrValidation, MinAge, MaxAge)
	}
	return age, nil
}

// Height parses and range-checks a height in centimeters.
func Height(text string) (int, error) {
	height, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, fmt.Errorf("%w: height must be a number", domain.ErrValidation)
	}
	if height < MinHeight || height > MaxHeight {
		return 0, fmt.Errorf("%w: height must be between %d and %d cm", domain.ErrValidation, MinHeight, MaxHeight)
	}
	return height, nil
}

// Weight parses and range-checks a weight in kilograms. A decimal comma is
// accepted because that is what users type.
func Weight(text string) (float64, error) {
	weight, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(text), ",", "."), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: weight must be a number", domain.ErrValidation)
	}
	if weight < MinWeight || weight > MaxWeight {
		return 0, fmt.Errorf("%w: weight must be between %d and %d kg", domain.ErrValidation, MinWeight, MaxWeight)
	}
	return weight, nil
}

// ReminderTime parses an HH:MM string and returns it zero-padded.
func ReminderTime(text string) (string, error) {
	parts := strings.Split(strings.TrimSpace(text), ":")
	if len(parts) != 2 {
		return "", fmt.Errorf("%w: time format is HH:MM", domain.ErrValidation)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return "", fmt.Errorf("%w: time format is HH:MM", domain.ErrValidation)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", fmt.Errorf("%w: time format is HH:MM", domain.ErrValidation)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return "", fmt.Errorf("%w: hour must be 0-23 and minute 0-59", domain.ErrValidation)
	}
	return fmt.Sprintf("%02d:%02d", hour, minute), nil
}

// ReminderDays checks that every day name is a known weekday. An empty list
// is valid and means every day.
func ReminderDays(days []string) error {
	for _, day := range days {
		known := false
		for _, w := range domain.Weekdays {
			if day == w {
				known = true
				break
			}
		}
		if !known {
			return fmt.Errorf("%w: unknown weekday %q", domain.ErrValidation, day)
		}
	}
	return nil
}
