package config

import (
	"testing"
	"time"

	"github.com/mar1ash/Time-Brick/internal/schedule"
	"gopkg.in/yaml.v3"
)

func defaultParam(t *testing.T) *ServerParam {
	t.Helper()
	param := &ServerParam{}
	if err := yaml.Unmarshal(ParamDefaultFile, param); err != nil {
		t.Fatalf("default param file does not parse: %v", err)
	}
	return param
}

func TestDefaultParamIsValid(t *testing.T) {
	param := defaultParam(t)
	if err := param.Validate(); err != nil {
		t.Fatalf("default param file does not validate: %v", err)
	}
}

func TestDefaultParamValues(t *testing.T) {
	param := defaultParam(t)

	if param.TickPeriod() != 250*time.Millisecond {
		t.Errorf("tick period = %v, want 250ms", param.TickPeriod())
	}

	sp := param.SchedulerParams()
	wantRotation := []schedule.RegularScreen{
		schedule.ScreenTime, schedule.ScreenDate, schedule.ScreenWeather, schedule.ScreenQuote,
	}
	if len(sp.Rotation) != len(wantRotation) {
		t.Fatalf("rotation length = %d, want %d", len(sp.Rotation), len(wantRotation))
	}
	for i, screen := range wantRotation {
		if sp.Rotation[i] != screen {
			t.Errorf("rotation[%d] = %v, want %v", i, sp.Rotation[i], screen)
		}
	}
	if sp.Durations[schedule.ScreenDate] != 5*time.Second {
		t.Errorf("date duration = %v, want 5s", sp.Durations[schedule.ScreenDate])
	}
	if sp.NightStartHour != 23 || sp.NightEndHour != 7 {
		t.Errorf("night window = %d-%d, want 23-7", sp.NightStartHour, sp.NightEndHour)
	}
	if !sp.HydrationEnabled || sp.HydrationDuration != 10*time.Second {
		t.Errorf("hydration = %v/%v, want enabled/10s", sp.HydrationEnabled, sp.HydrationDuration)
	}
	if sp.QuoteMinInterval != 10*time.Minute || sp.QuoteChance != 4 {
		t.Errorf("quote interval/chance = %v/%d, want 10m/4", sp.QuoteMinInterval, sp.QuoteChance)
	}
	if len(sp.QuotePool) == 0 {
		t.Error("quote pool is empty")
	}
	if sp.WeatherRefresh != time.Hour {
		t.Errorf("weather refresh = %v, want 1h", sp.WeatherRefresh)
	}
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ServerParam)
	}{
		{"zero tick period", func(p *ServerParam) { p.TickPeriodMs = 0 }},
		{"empty rotation", func(p *ServerParam) { p.Screens.Rotation = nil }},
		{"unknown screen", func(p *ServerParam) { p.Screens.Rotation = []string{"time", "moonphase"} }},
		{"missing duration", func(p *ServerParam) { delete(p.Screens.DurationsMs, "date") }},
		{"night hour out of range", func(p *ServerParam) { p.Night.StartHour = 24 }},
		{"hydration without duration", func(p *ServerParam) { p.Hydration.DurationMs = 0 }},
		{"quotes without pool", func(p *ServerParam) { p.RandomQuote.Pool = nil }},
		{"zero weather refresh", func(p *ServerParam) { p.Weather.RefreshMinutes = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			param := defaultParam(t)
			tt.mutate(param)
			if err := param.Validate(); err == nil {
				t.Error("Validate accepted a broken param file")
			}
		})
	}
}
