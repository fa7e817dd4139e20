package suggest

import "fmt"

// Aggregate validates metrics and returns the arithmetic mean of each field.
// It fails with *InvalidInputError on an empty list or an out-of-domain value,
// naming the offending day.
func Aggregate(metrics []DailyMetric) (MetricSummary, error) {
	if len(metrics) == 0 {
		return MetricSummary{}, &InvalidInputError{
			Field:  "metrics",
			Reason: "at least one daily metric is required",
		}
	}

	var sum MetricSummary
	for i, m := range metrics {
		if err := ValidateMetric(m); err != nil {
			if ie, ok := err.(*InvalidInputError); ok {
				return MetricSummary{}, &InvalidInputError{
					Field:  ie.Field,
					Value:  ie.Value,
					Reason: fmt.Sprintf("%s (sample %d, %s)", ie.Reason, i, m.Day()),
				}
			}
			return MetricSummary{}, err
		}
		sum.SleepHours += m.SleepHours
		sum.WorkHours += m.WorkHours
		sum.SocialTime += m.SocialTime
		sum.ScreenTime += m.ScreenTime
		sum.EmotionalEnergy += float64(m.EmotionalEnergy)
	}

	n := float64(len(metrics))
	return MetricSummary{
		SleepHours:      sum.SleepHours / n,
		WorkHours:       sum.WorkHours / n,
		SocialTime:      sum.SocialTime / n,
		ScreenTime:      sum.ScreenTime / n,
		EmotionalEnergy: sum.EmotionalEnergy / n,
		Samples:         len(metrics),
		Known:           allFields,
	}, nil
}

// InstantOption supplies an optional scalar to an instant check.
type InstantOption func(*MetricSummary)

// WithSleep adds sleep hours to an instant check.
func WithSleep(hours float64) InstantOption {
	return func(s *MetricSummary) {
		s.SleepHours = hours
		s.Known |= FieldSleep
	}
}

// WithSocial adds social time to an instant check.
func WithSocial(hours float64) InstantOption {
	return func(s *MetricSummary) {
		s.SocialTime = hours
		s.Known |= FieldSocial
	}
}

// WithEnergy adds an emotional energy rating to an instant check.
func WithEnergy(rating float64) InstantOption {
	return func(s *MetricSummary) {
		s.EmotionalEnergy = rating
		s.Known |= FieldEnergy
	}
}

// InstantSummary builds a summary directly from scalars, skipping
// aggregation. Work hours and screen time are always known.
func InstantSummary(workHours, screenTime float64, opts ...InstantOption) (MetricSummary, error) {
	s := MetricSummary{
		WorkHours:  workHours,
		ScreenTime: screenTime,
		Samples:    1,
		Known:      FieldWork | FieldScreen,
	}
	for _, opt := range opts {
		opt(&s)
	}

	if err := checkHours(FieldWork, s.WorkHours); err != nil {
		return MetricSummary{}, err
	}
	if err := checkHours(FieldScreen, s.ScreenTime); err != nil {
		return MetricSummary{}, err
	}
	if s.Has(FieldSleep) {
		if err := checkHours(FieldSleep, s.SleepHours); err != nil {
			return MetricSummary{}, err
		}
	}
	if s.Has(FieldSocial) {
		if err := checkHours(FieldSocial, s.SocialTime); err != nil {
			return MetricSummary{}, err
		}
	}
	if s.Has(FieldEnergy) {
		if err := checkEnergy(s.EmotionalEnergy); err != nil {
			return MetricSummary{}, err
		}
	}
	return s, nil
}
