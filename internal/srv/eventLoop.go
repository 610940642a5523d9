package srv

import (
	"github.com/mar1ash/Time-Brick/apimodel"
	"github.com/mar1ash/Time-Brick/internal/schedule"
	"github.com/mar1ash/Time-Brick/internal/srv/event"
	"github.com/mar1ash/Time-Brick/internal/version"
	"github.com/sirupsen/logrus"
	"time"
)

// eventLoop owns the scheduler. Every mutation and every read of its state
// happens here, one event at a time; the devices only ever talk to it
// through their channels.
func (s *ServerApp) eventLoop() {
	apiEventChannel := make(chan event.ApiEvent)
	if s.apiDevice != nil {
		apiEventChannel = s.apiDevice.EventChannel()
	}

	for loop := true; loop; {
		select {
		case ev := <-s.clockDevice.EventChannel():
			switch ev.Data.(type) {
			case event.TickerEventTickData:
				s.handleTick()
			}
		case ev := <-s.weatherDevice.EventChannel():
			switch data := ev.Data.(type) {
			case event.WeatherEventUpdatedData:
				logrus.Debugf("Receive weather update event")
				s.scheduler.SetWeather(data.Info)
				if s.lastDirective.Kind == schedule.DirectiveWeather {
					s.lastDirective.Weather = data.Info
					s.refreshDisplay(s.lastDirective)
				}
			case event.WeatherEventFailedData:
				// Last good snapshot stays in place; next interval retries.
				logrus.Debugf("Receive weather failure event: %v", data.Err)
			}
		case ev := <-s.networkDevice.EventChannel():
			switch data := ev.Data.(type) {
			case event.NetworkEventStateData:
				logrus.Debugf("Receive network state event: online=%v", data.Online)
			}
		case ev := <-apiEventChannel:
			switch data := ev.Data.(type) {
			case event.ApiEventStatusRequestData:
				data.Reply <- s.currentStatus()
			case event.ApiEventWeatherRequestData:
				data.Reply <- weatherStatus(s.scheduler.Weather())
			case event.ApiEventWeatherRefreshData:
				logrus.Infof("Weather refresh requested over api")
				s.weatherDevice.Refresh()
				ev.Result <- nil
			}
		case <-s.eventLoopAskDone:
			loop = false
		}
	}
	s.eventLoopDone <- true
}

// handleTick runs one scheduling step: read the collaborators, let the
// scheduler pick a screen, render it, and kick a weather fetch when due.
func (s *ServerApp) handleTick() {
	in := schedule.Inputs{
		Now:    s.clockDevice.Now(),
		Hour:   s.clockDevice.Hour(),
		Synced: s.clockDevice.Synced(),
		Online: s.networkDevice.Online(),
	}
	directive := s.scheduler.Tick(in)

	if directive.Kind != s.lastDirective.Kind {
		logrus.Debugf("Screen change: %s -> %s", s.lastDirective.Kind, directive.Kind)
	}
	s.lastInputs = in
	s.lastDirective = directive
	s.refreshDisplay(directive)

	if s.scheduler.WeatherPollDue(in.Now, in.Online) {
		logrus.Debugf("Weather poll due")
		s.weatherDevice.Refresh()
	}
}

func (s *ServerApp) currentStatus() apimodel.SchedulerStatus {
	return apimodel.SchedulerStatus{
		Screen:        s.lastDirective.Kind.String(),
		Special:       s.scheduler.CurrentSpecial().String(),
		Night:         s.scheduler.Night(),
		ClockSynced:   s.lastInputs.Synced,
		Online:        s.lastInputs.Online,
		UptimeSeconds: int64(time.Since(s.startedAt).Seconds()),
		Version:       version.AppVersion.String(),
	}
}

func weatherStatus(info schedule.WeatherInfo) apimodel.WeatherStatus {
	return apimodel.WeatherStatus{
		Valid:        info.Valid,
		TemperatureC: info.TemperatureC,
		Description:  info.Description,
		IconCode:     info.IconCode,
		FetchedAt:    info.FetchedAt,
	}
}
