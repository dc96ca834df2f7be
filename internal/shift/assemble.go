package shift

import "time"

type assembleConfig struct {
	location *time.Location
	grammar  LabelGrammar
}

// AssembleOption configures Assemble.
type AssembleOption func(*assembleConfig)

// WithLocation sets the time zone the wall clock times are interpreted in.
// The default is time.Local.
func WithLocation(loc *time.Location) AssembleOption {
	return func(c *assembleConfig) {
		if loc != nil {
			c.location = loc
		}
	}
}

// WithGrammar sets the shift label grammar. The default is DefaultGrammar.
func WithGrammar(g LabelGrammar) AssembleOption {
	return func(c *assembleConfig) {
		if g != nil {
			c.grammar = g
		}
	}
}

// Assemble builds a Shift from a day label and one of that day's shift labels.
//
// The date comes from the day label and the start and end times from the shift
// label. Parse errors are returned unchanged; out of range components fail with
// InvalidDateConstruction. End is not required to follow Start.
func Assemble(dayLabel, shiftLabel string, opts ...AssembleOption) (Shift, error) {
	cfg := assembleConfig{location: time.Local, grammar: DefaultGrammar}
	for _, opt := range opts {
		opt(&cfg)
	}

	date, err := ParseDateComponents(dayLabel)
	if err != nil {
		return Shift{}, err
	}

	fields, err := cfg.grammar.Parse(shiftLabel)
	if err != nil {
		return Shift{}, err
	}

	startTime, err := ParseTimeComponents(fields.StartText)
	if err != nil {
		return Shift{}, err
	}
	endTime, err := ParseTimeComponents(fields.EndText)
	if err != nil {
		return Shift{}, err
	}

	start, err := date.At(startTime, cfg.location)
	if err != nil {
		return Shift{}, err
	}
	end, err := date.At(endTime, cfg.location)
	if err != nil {
		return Shift{}, err
	}

	return Shift{
		Job:         fields.Job,
		Location:    fields.Location,
		Start:       start,
		End:         end,
		DisplayDate: fields.DisplayDate,
		DisplayTime: fields.DisplayTime(),
		Label:       shiftLabel,
	}, nil
}
