package device

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/mar1ash/Time-Brick/internal/schedule"
	"github.com/mar1ash/Time-Brick/internal/srv/config"
	"github.com/mar1ash/Time-Brick/internal/srv/event"
	"github.com/sirupsen/logrus"
)

type WeatherErrorKind int

const (
	WeatherErrNoConnectivity WeatherErrorKind = iota
	WeatherErrHttp
	WeatherErrParse
	WeatherErrMalformed
)

func (k WeatherErrorKind) String() string {
	switch k {
	case WeatherErrNoConnectivity:
		return "no_connectivity"
	case WeatherErrHttp:
		return "http_error"
	case WeatherErrParse:
		return "parse_error"
	case WeatherErrMalformed:
		return "malformed_payload"
	}
	return "unknown"
}

type WeatherError struct {
	Kind   WeatherErrorKind
	Detail string
}

func (e *WeatherError) Error() string {
	return fmt.Sprintf("weather fetch failed (%s): %s", e.Kind, e.Detail)
}

// unavailableDescription is what the weather screen shows when no fetch has
// ever succeeded.
const unavailableDescription = "No WiFi"

// Weather fetches current conditions and keeps the last good snapshot.
// Fetches run on their own goroutine so a slow provider never stalls a tick;
// results come back through the event channel and the cache is swapped under
// the lock before the next weather render can read it.
type Weather struct {
	lock         sync.RWMutex
	eventChannel chan event.WeatherEvent

	param  config.WeatherParam
	client *http.Client

	snapshot schedule.WeatherInfo
	fetching bool

	stop    chan struct{}
	stopped bool
}

func NewWeather(param config.WeatherParam) *Weather {
	device := Weather{
		eventChannel: make(chan event.WeatherEvent),
		param:        param,
		client:       &http.Client{Timeout: 10 * time.Second},
		snapshot: schedule.WeatherInfo{
			Description: unavailableDescription,
			Valid:       false,
		},
		stop: make(chan struct{}),
	}
	return &device
}

func (d *Weather) Start() {
	logrus.Infof("Start weather device")
}

func (d *Weather) StopSendingEvent() {
	logrus.Infof("Stop weather device")

	d.lock.Lock()
	defer d.lock.Unlock()
	if !d.stopped {
		d.stopped = true
		close(d.stop)
	}
}

func (d *Weather) EventChannel() chan event.WeatherEvent {
	return d.eventChannel
}

func (d *Weather) Snapshot() schedule.WeatherInfo {
	d.lock.RLock()
	defer d.lock.RUnlock()
	return d.snapshot
}

// Refresh starts one fetch unless one is already in flight.
func (d *Weather) Refresh() {
	d.lock.Lock()
	if d.fetching {
		d.lock.Unlock()
		return
	}
	d.fetching = true
	d.lock.Unlock()

	go func() {
		info, err := d.fetchOnce()

		d.lock.Lock()
		d.fetching = false
		if err == nil {
			d.snapshot = info
		}
		// A failure keeps the last good snapshot; the unavailable marker
		// set at construction covers the never-succeeded case.
		d.lock.Unlock()

		if err != nil {
			logrus.Warnf("Weather refresh failed: %v", err)
			d.deliver(event.WeatherEvent{Data: event.WeatherEventFailedData{Err: err}})
			return
		}
		logrus.Debugf("Weather refreshed: %.1f°, %s", info.TemperatureC, info.Description)
		d.deliver(event.WeatherEvent{Data: event.WeatherEventUpdatedData{Info: info}})
	}()
}

// deliver hands the event to the event loop, or gives up once the device has
// been stopped. A fetch landing during shutdown must not leave its goroutine
// parked on the channel.
func (d *Weather) deliver(ev event.WeatherEvent) {
	select {
	case d.eventChannel <- ev:
	case <-d.stop:
	}
}

type owmPayload struct {
	Weather []struct {
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Main struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
}

func (d *Weather) fetchOnce() (schedule.WeatherInfo, error) {
	query := url.Values{}
	query.Set("q", d.param.City)
	query.Set("appid", d.param.ApiKey)
	query.Set("units", d.param.Units)

	resp, err := d.client.Get(d.param.ApiUrl + "?" + query.Encode())
	if err != nil {
		return schedule.WeatherInfo{}, &WeatherError{Kind: WeatherErrNoConnectivity, Detail: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return schedule.WeatherInfo{}, &WeatherError{Kind: WeatherErrHttp, Detail: resp.Status}
	}

	var payload owmPayload
	if err = json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return schedule.WeatherInfo{}, &WeatherError{Kind: WeatherErrParse, Detail: err.Error()}
	}
	if len(payload.Weather) == 0 {
		return schedule.WeatherInfo{}, &WeatherError{Kind: WeatherErrMalformed, Detail: "no weather block in payload"}
	}

	return schedule.WeatherInfo{
		TemperatureC: payload.Main.Temp,
		Description:  payload.Weather[0].Description,
		IconCode:     payload.Weather[0].Icon,
		FetchedAt:    time.Now(),
		Valid:        true,
	}, nil
}
