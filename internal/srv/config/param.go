package config

import (
	_ "embed"
	"fmt"
	"time"

	"github.com/mar1ash/Time-Brick/internal/schedule"
)

//go:embed param_default.yaml
var ParamDefaultFile []byte

type ServerParam struct {
	TickPeriodMs int64            `yaml:"tick_period_ms"`
	Screens      ScreensParam     `yaml:"screens"`
	Night        NightParam       `yaml:"night"`
	Hydration    HydrationParam   `yaml:"hydration"`
	RandomQuote  RandomQuoteParam `yaml:"random_quote"`
	Weather      WeatherParam     `yaml:"weather"`
	ApiParam     ApiParam         `yaml:"api"`
}

type ScreensParam struct {
	Rotation    []string         `yaml:"rotation"`
	DurationsMs map[string]int64 `yaml:"durations_ms"`
	StaticQuote string           `yaml:"static_quote"`
}

type NightParam struct {
	StartHour int `yaml:"start_hour"`
	EndHour   int `yaml:"end_hour"`
}

type HydrationParam struct {
	Enabled    bool  `yaml:"enabled"`
	DurationMs int64 `yaml:"duration_ms"`
}

type RandomQuoteParam struct {
	DurationMs    int64    `yaml:"duration_ms"`
	MinIntervalMs int64    `yaml:"min_interval_ms"`
	Chance        int      `yaml:"chance"` // 1-in-N per eligible tick
	Pool          []string `yaml:"pool"`
}

type WeatherParam struct {
	ApiUrl         string `yaml:"api_url"`
	ApiKey         string `yaml:"api_key"`
	City           string `yaml:"city"`
	Units          string `yaml:"units"`
	RefreshMinutes int64  `yaml:"refresh_minutes"`
	ProbeAddress   string `yaml:"probe_address"`
}

type ApiParam struct {
	Enabled bool   `yaml:"enabled"`
	SslPort int64  `yaml:"ssl_port"`
	ApiKey  string `yaml:"api_key"`
}

var screenNames = map[string]schedule.RegularScreen{
	"time":    schedule.ScreenTime,
	"date":    schedule.ScreenDate,
	"weather": schedule.ScreenWeather,
	"quote":   schedule.ScreenQuote,
}

// Validate rejects a param file the scheduler could not run with. Config
// errors are the one fatal class in this program.
func (p *ServerParam) Validate() error {
	if p.TickPeriodMs <= 0 {
		return fmt.Errorf("tick_period_ms must be positive, got %d", p.TickPeriodMs)
	}
	if len(p.Screens.Rotation) == 0 {
		return fmt.Errorf("screens.rotation is empty")
	}
	for _, name := range p.Screens.Rotation {
		if _, ok := screenNames[name]; !ok {
			return fmt.Errorf("unknown screen %q in rotation", name)
		}
		if p.Screens.DurationsMs[name] <= 0 {
			return fmt.Errorf("screen %q has no positive duration", name)
		}
	}
	if p.Night.StartHour < 0 || p.Night.StartHour > 23 || p.Night.EndHour < 0 || p.Night.EndHour > 23 {
		return fmt.Errorf("night hours must be in [0,23], got %d-%d", p.Night.StartHour, p.Night.EndHour)
	}
	if p.Hydration.Enabled && p.Hydration.DurationMs <= 0 {
		return fmt.Errorf("hydration.duration_ms must be positive")
	}
	if p.RandomQuote.Chance > 0 {
		if p.RandomQuote.DurationMs <= 0 {
			return fmt.Errorf("random_quote.duration_ms must be positive")
		}
		if len(p.RandomQuote.Pool) == 0 {
			return fmt.Errorf("random_quote.pool is empty while chance is set")
		}
	}
	if p.Weather.RefreshMinutes <= 0 {
		return fmt.Errorf("weather.refresh_minutes must be positive")
	}
	return nil
}

// SchedulerParams converts the yaml surface into the scheduler's form.
func (p *ServerParam) SchedulerParams() schedule.Params {
	rotation := make([]schedule.RegularScreen, 0, len(p.Screens.Rotation))
	durations := make(map[schedule.RegularScreen]time.Duration, len(p.Screens.Rotation))
	for _, name := range p.Screens.Rotation {
		screen := screenNames[name]
		rotation = append(rotation, screen)
		durations[screen] = time.Duration(p.Screens.DurationsMs[name]) * time.Millisecond
	}
	return schedule.Params{
		Rotation:          rotation,
		Durations:         durations,
		NightStartHour:    p.Night.StartHour,
		NightEndHour:      p.Night.EndHour,
		HydrationEnabled:  p.Hydration.Enabled,
		HydrationDuration: time.Duration(p.Hydration.DurationMs) * time.Millisecond,
		QuoteDuration:     time.Duration(p.RandomQuote.DurationMs) * time.Millisecond,
		QuoteMinInterval:  time.Duration(p.RandomQuote.MinIntervalMs) * time.Millisecond,
		QuoteChance:       p.RandomQuote.Chance,
		QuotePool:         p.RandomQuote.Pool,
		StaticQuote:       p.Screens.StaticQuote,
		WeatherRefresh:    time.Duration(p.Weather.RefreshMinutes) * time.Minute,
	}
}

func (p *ServerParam) TickPeriod() time.Duration {
	return time.Duration(p.TickPeriodMs) * time.Millisecond
}
