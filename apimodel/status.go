package apimodel

import "time"

// SchedulerStatus is the read-only view of the scheduler exposed by the api.
type SchedulerStatus struct {
	Screen        string `json:"screen"`
	Special       string `json:"special"`
	Night         bool   `json:"night"`
	ClockSynced   bool   `json:"clock_synced"`
	Online        bool   `json:"online"`
	UptimeSeconds int64  `json:"uptime_seconds"`
	Version       string `json:"version"`
}

// WeatherStatus mirrors the cached weather snapshot.
type WeatherStatus struct {
	Valid        bool      `json:"valid"`
	TemperatureC float64   `json:"temperature_c"`
	Description  string    `json:"description"`
	IconCode     string    `json:"icon_code"`
	FetchedAt    time.Time `json:"fetched_at,omitempty"`
}
