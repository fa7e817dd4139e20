package suggest

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInput is matched by every *InvalidInputError through errors.Is.
var ErrInvalidInput = errors.New("invalid input")

// InvalidInputError reports a metric outside its documented domain, or an
// empty metric list passed to aggregate mode.
type InvalidInputError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Is lets errors.Is(err, ErrInvalidInput) match.
func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// Domain bounds for metric fields.
const (
	MinHours  = 0.0
	MaxHours  = 24.0
	MinEnergy = 1
	MaxEnergy = 10
)

// checkHours rejects values outside [0, 24], including NaN and infinities.
func checkHours(f Field, v float64) error {
	if math.IsNaN(v) || v < MinHours || v > MaxHours {
		return &InvalidInputError{
			Field:  f.Label(),
			Value:  v,
			Reason: fmt.Sprintf("must be between %g and %g, got %g", MinHours, MaxHours, v),
		}
	}
	return nil
}

// checkEnergy rejects energy ratings outside [1, 10]. Fractional values are
// allowed here because instant checks may pass an average.
func checkEnergy(v float64) error {
	if math.IsNaN(v) || v < MinEnergy || v > MaxEnergy {
		return &InvalidInputError{
			Field:  FieldEnergy.Label(),
			Value:  v,
			Reason: fmt.Sprintf("must be between %d and %d, got %g", MinEnergy, MaxEnergy, v),
		}
	}
	return nil
}

// ValidateMetric checks every field of m against its domain.
func ValidateMetric(m DailyMetric) error {
	if m.Date.IsZero() {
		return &InvalidInputError{Field: "date", Reason: "is required"}
	}
	hours := []struct {
		field Field
		value float64
	}{
		{FieldSleep, m.SleepHours},
		{FieldWork, m.WorkHours},
		{FieldSocial, m.SocialTime},
		{FieldScreen, m.ScreenTime},
	}
	for _, h := range hours {
		if err := checkHours(h.field, h.value); err != nil {
			return err
		}
	}
	return checkEnergy(float64(m.EmotionalEnergy))
}
