package device

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mar1ash/Time-Brick/internal/srv/config"
	"github.com/mar1ash/Time-Brick/internal/srv/event"
)

func newTestWeather(serverURL string) *Weather {
	return NewWeather(config.WeatherParam{
		ApiUrl:         serverURL,
		ApiKey:         "k",
		City:           "Kyiv",
		Units:          "metric",
		RefreshMinutes: 60,
	})
}

func TestFetchOnce(t *testing.T) {
	tests := []struct {
		name     string
		handler  http.HandlerFunc
		wantKind WeatherErrorKind
		wantErr  bool
	}{
		{
			name: "valid payload",
			handler: func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Query().Get("q") != "Kyiv" || r.URL.Query().Get("appid") != "k" {
					t.Errorf("unexpected query: %s", r.URL.RawQuery)
				}
				w.Write([]byte(`{"weather":[{"description":"clear sky","icon":"01d"}],"main":{"temp":21.5}}`))
			},
		},
		{
			name: "http error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "nope", http.StatusUnauthorized)
			},
			wantErr:  true,
			wantKind: WeatherErrHttp,
		},
		{
			name: "broken json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"weather":[`))
			},
			wantErr:  true,
			wantKind: WeatherErrParse,
		},
		{
			name: "missing weather block",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"weather":[],"main":{"temp":3.0}}`))
			},
			wantErr:  true,
			wantKind: WeatherErrMalformed,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			d := newTestWeather(server.URL)
			info, err := d.fetchOnce()
			if tt.wantErr {
				if err == nil {
					t.Fatal("fetchOnce succeeded, want error")
				}
				var werr *WeatherError
				if !errors.As(err, &werr) {
					t.Fatalf("error type %T, want *WeatherError", err)
				}
				if werr.Kind != tt.wantKind {
					t.Errorf("error kind = %v, want %v", werr.Kind, tt.wantKind)
				}
				return
			}
			if err != nil {
				t.Fatalf("fetchOnce failed: %v", err)
			}
			if !info.Valid || info.TemperatureC != 21.5 || info.Description != "clear sky" || info.IconCode != "01d" {
				t.Errorf("unexpected snapshot: %+v", info)
			}
		})
	}
}

func TestFetchOnceConnectivityError(t *testing.T) {
	// A closed server is as good as no network.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	d := newTestWeather(server.URL)
	_, err := d.fetchOnce()
	var werr *WeatherError
	if !errors.As(err, &werr) || werr.Kind != WeatherErrNoConnectivity {
		t.Fatalf("got %v, want connectivity error", err)
	}
}

func TestRefreshKeepsCacheOnFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"weather":[{"description":"light rain","icon":"10d"}],"main":{"temp":7.2}}`))
	}))
	defer server.Close()

	d := newTestWeather(server.URL)
	d.Refresh()
	if _, ok := (<-d.EventChannel()).Data.(event.WeatherEventUpdatedData); !ok {
		t.Fatal("first refresh did not post an update event")
	}
	if snap := d.Snapshot(); !snap.Valid || snap.Description != "light rain" {
		t.Fatalf("unexpected snapshot after success: %+v", snap)
	}

	// Point the device at a dead endpoint: the failure must not clobber
	// the last good snapshot.
	d.param.ApiUrl = "http://127.0.0.1:1"
	d.Refresh()
	if _, ok := (<-d.EventChannel()).Data.(event.WeatherEventFailedData); !ok {
		t.Fatal("failed refresh did not post a failure event")
	}
	if snap := d.Snapshot(); !snap.Valid || snap.Description != "light rain" || snap.TemperatureC != 7.2 {
		t.Fatalf("failure clobbered the cache: %+v", snap)
	}
}

func TestStopUnblocksEventDelivery(t *testing.T) {
	d := newTestWeather("http://127.0.0.1:0")
	d.StopSendingEvent()

	// Nobody reads the event channel anymore. A fetch finishing now must
	// still terminate.
	done := make(chan struct{})
	go func() {
		d.deliver(event.WeatherEvent{Data: event.WeatherEventFailedData{Err: errors.New("late fetch")}})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("event delivery blocked after stop")
	}

	// Stopping twice must not panic.
	d.StopSendingEvent()
}

func TestSnapshotUnavailableBeforeFirstFetch(t *testing.T) {
	d := newTestWeather("http://127.0.0.1:0")
	snap := d.Snapshot()
	if snap.Valid {
		t.Error("snapshot valid before any fetch")
	}
	if snap.Description != unavailableDescription {
		t.Errorf("description = %q, want %q", snap.Description, unavailableDescription)
	}
}
