package schedule

import "time"

type DirectiveKind int

const (
	DirectiveTime DirectiveKind = iota
	DirectiveDate
	DirectiveWeather
	DirectiveQuote
	DirectiveHydration
	DirectiveRandomQuote
	DirectiveNightClock
)

func (k DirectiveKind) String() string {
	switch k {
	case DirectiveTime:
		return "time"
	case DirectiveDate:
		return "date"
	case DirectiveWeather:
		return "weather"
	case DirectiveQuote:
		return "quote"
	case DirectiveHydration:
		return "hydration"
	case DirectiveRandomQuote:
		return "random_quote"
	case DirectiveNightClock:
		return "night_clock"
	}
	return "unknown"
}

// Directive is the single render order emitted by each tick. Exactly one
// field beyond Kind is meaningful, depending on Kind.
type Directive struct {
	Kind     DirectiveKind
	Text     string      // Quote and RandomQuote
	Fraction float64     // Hydration drain animation, in [0,1]
	Weather  WeatherInfo // Weather
}

// WeatherInfo is the cached result of the last weather fetch. Valid is false
// until a fetch has ever succeeded.
type WeatherInfo struct {
	TemperatureC float64
	Description  string
	IconCode     string
	FetchedAt    time.Time
	Valid        bool
}
