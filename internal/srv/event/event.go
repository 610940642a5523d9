package event

import (
	"github.com/mar1ash/Time-Brick/apimodel"
	"github.com/mar1ash/Time-Brick/internal/schedule"
)

// Ticker
type TickerEvent struct {
	Data interface{}
}

type TickerEventTickData struct{}

// Weather
type WeatherEvent struct {
	Data interface{}
}

type WeatherEventUpdatedData struct {
	Info schedule.WeatherInfo
}

type WeatherEventFailedData struct {
	Err error
}

// Network
type NetworkEvent struct {
	Data interface{}
}

type NetworkEventStateData struct {
	Online bool
}

// Api
type ApiEvent struct {
	Result chan error
	Data   interface{}
}

type ApiEventStatusRequestData struct {
	Reply chan apimodel.SchedulerStatus
}

type ApiEventWeatherRequestData struct {
	Reply chan apimodel.WeatherStatus
}

type ApiEventWeatherRefreshData struct{}
