// Package schedule decides, on every tick, which screen owns the display.
//
// The scheduler is a pure state machine: it holds all timing state itself,
// receives the clock and connectivity readings as tick inputs, and emits
// exactly one render directive per tick. It never touches hardware and never
// blocks, which is what keeps it testable without a display or a network.
package schedule

import (
	"math/rand"
	"time"
)

type RegularScreen int

const (
	ScreenTime RegularScreen = iota
	ScreenDate
	ScreenWeather
	ScreenQuote
)

func (s RegularScreen) String() string {
	switch s {
	case ScreenTime:
		return "time"
	case ScreenDate:
		return "date"
	case ScreenWeather:
		return "weather"
	case ScreenQuote:
		return "quote"
	}
	return "unknown"
}

type SpecialScreen int

const (
	SpecialNone SpecialScreen = iota
	SpecialHydration
	SpecialRandomQuote
)

func (s SpecialScreen) String() string {
	switch s {
	case SpecialHydration:
		return "hydration"
	case SpecialRandomQuote:
		return "random_quote"
	}
	return "none"
}

// Params is the full configuration surface of the scheduler.
type Params struct {
	Rotation  []RegularScreen
	Durations map[RegularScreen]time.Duration

	// Night window, wrapping across midnight when start > end.
	// start == end disables night mode.
	NightStartHour int
	NightEndHour   int

	HydrationEnabled  bool
	HydrationDuration time.Duration

	QuoteDuration    time.Duration
	QuoteMinInterval time.Duration
	QuoteChance      int // 1-in-N per eligible tick
	QuotePool        []string
	StaticQuote      string

	WeatherRefresh time.Duration
}

// Inputs carries one tick's worth of external readings. Now must come from
// time.Now so that elapsed-time math rides the monotonic clock; Hour is the
// wall-clock hour used only for boundary detection.
type Inputs struct {
	Now    time.Time
	Hour   int
	Synced bool
	Online bool
}

type Scheduler struct {
	params Params
	rng    *rand.Rand

	rotationIdx int
	screenSince time.Time

	special      SpecialScreen
	specialSince time.Time
	frozenQuote  string

	lastReminderHour int
	lastQuoteTrigger time.Time

	night bool

	weather WeatherInfo

	lastWeatherPoll time.Time
	weatherPolled   bool
	wasOnline       bool
}

// New builds a scheduler starting at the given boot instant and hour.
// The reminder hour starts at the boot hour so the hydration reminder first
// becomes eligible at the next hour boundary, and the quote trigger clock
// starts at boot so no quote can fire before one full minimum interval.
func New(params Params, rng *rand.Rand, now time.Time, hour int) *Scheduler {
	s := &Scheduler{
		params:           params,
		rng:              rng,
		screenSince:      now,
		lastReminderHour: hour,
		lastQuoteTrigger: now,
	}
	s.night = s.inNightWindow(hour)
	return s
}

// Tick runs one scheduling step and returns the screen to render.
func (s *Scheduler) Tick(in Inputs) Directive {
	// Night gate dominates everything. While it holds, no timer moves and
	// no special screen may trigger or expire.
	if s.inNightWindow(in.Hour) {
		if !s.night {
			s.night = true
			s.special = SpecialNone
			s.frozenQuote = ""
		}
		return Directive{Kind: DirectiveNightClock}
	}
	if s.night {
		s.night = false
		s.screenSince = in.Now
	}

	// Expire a running special screen. The interrupted regular screen gets
	// a full fresh duration, and the rotation does not advance this tick.
	if s.special != SpecialNone && in.Now.Sub(s.specialSince) > s.specialDuration() {
		s.special = SpecialNone
		s.frozenQuote = ""
		s.screenSince = in.Now
	}

	// Trigger at most one new special screen, hydration first.
	if s.special == SpecialNone {
		switch {
		case s.params.HydrationEnabled && in.Synced && in.Hour != s.lastReminderHour:
			s.lastReminderHour = in.Hour
			s.special = SpecialHydration
			s.specialSince = in.Now
		case in.Online && len(s.params.QuotePool) > 0 && s.params.QuoteChance > 0 &&
			in.Now.Sub(s.lastQuoteTrigger) >= s.params.QuoteMinInterval &&
			s.rng.Intn(s.params.QuoteChance) == 0:
			// The quote is frozen at trigger time and never re-rolled
			// while the screen is up.
			s.frozenQuote = s.params.QuotePool[s.rng.Intn(len(s.params.QuotePool))]
			s.lastQuoteTrigger = in.Now
			s.special = SpecialRandomQuote
			s.specialSince = in.Now
		}
	}

	// Advance the regular rotation only when nothing is interrupting it.
	if s.special == SpecialNone {
		current := s.params.Rotation[s.rotationIdx]
		if in.Now.Sub(s.screenSince) > s.params.Durations[current] {
			s.rotationIdx = (s.rotationIdx + 1) % len(s.params.Rotation)
			s.screenSince = in.Now
		}
	}

	return s.directive(in.Now)
}

// WeatherPollDue reports whether the weather provider should be queried now,
// and stamps the poll time when it returns true. Offline ticks reset the
// connectivity edge so the first online tick afterwards polls eagerly. A
// failed fetch is not retried before the next interval.
func (s *Scheduler) WeatherPollDue(now time.Time, online bool) bool {
	if !online {
		s.wasOnline = false
		return false
	}
	firstOnline := !s.wasOnline
	s.wasOnline = true

	if firstOnline || !s.weatherPolled || now.Sub(s.lastWeatherPoll) >= s.params.WeatherRefresh {
		s.weatherPolled = true
		s.lastWeatherPoll = now
		return true
	}
	return false
}

// SetWeather replaces the cached snapshot. Called between ticks by the
// event loop when a fetch completes.
func (s *Scheduler) SetWeather(w WeatherInfo) {
	s.weather = w
}

func (s *Scheduler) Weather() WeatherInfo {
	return s.weather
}

func (s *Scheduler) Night() bool {
	return s.night
}

func (s *Scheduler) CurrentSpecial() SpecialScreen {
	return s.special
}

func (s *Scheduler) CurrentScreen() RegularScreen {
	return s.params.Rotation[s.rotationIdx]
}

func (s *Scheduler) inNightWindow(hour int) bool {
	start, end := s.params.NightStartHour, s.params.NightEndHour
	if start == end {
		return false
	}
	if start < end {
		return hour >= start && hour < end
	}
	return hour >= start || hour < end
}

func (s *Scheduler) specialDuration() time.Duration {
	if s.special == SpecialHydration {
		return s.params.HydrationDuration
	}
	return s.params.QuoteDuration
}

func (s *Scheduler) directive(now time.Time) Directive {
	switch s.special {
	case SpecialHydration:
		f := float64(now.Sub(s.specialSince)) / float64(s.params.HydrationDuration)
		if f < 0 {
			f = 0
		} else if f > 1 {
			f = 1
		}
		return Directive{Kind: DirectiveHydration, Fraction: f}
	case SpecialRandomQuote:
		return Directive{Kind: DirectiveRandomQuote, Text: s.frozenQuote}
	}

	switch s.params.Rotation[s.rotationIdx] {
	case ScreenDate:
		return Directive{Kind: DirectiveDate}
	case ScreenWeather:
		return Directive{Kind: DirectiveWeather, Weather: s.weather}
	case ScreenQuote:
		return Directive{Kind: DirectiveQuote, Text: s.params.StaticQuote}
	default:
		return Directive{Kind: DirectiveTime}
	}
}
