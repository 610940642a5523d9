package device

import (
	"github.com/mar1ash/Time-Brick/internal/srv/event"
	"github.com/sirupsen/logrus"
	"sync"
	"time"
)

// Boards without an RTC boot in 1970 and stay there until NTP lands, so a
// wall clock reading before this year means "not synced yet".
const syncedYearFloor = 2022

// Clock drives the scheduler tick cadence and answers the synced question.
type Clock struct {
	lock         sync.RWMutex
	eventChannel chan event.TickerEvent

	tickPeriod time.Duration
	tickTicker *time.Ticker

	askDone chan bool
	done    chan bool
}

func NewClock(tickPeriod time.Duration) *Clock {
	clock := Clock{
		eventChannel: make(chan event.TickerEvent),
		tickPeriod:   tickPeriod,
		askDone:      make(chan bool),
		done:         make(chan bool),
	}
	return &clock
}

func (d *Clock) Start() {
	logrus.Infof("Start clock device")
	d.lock.Lock()
	defer d.lock.Unlock()

	d.tickTicker = time.NewTicker(d.tickPeriod)

	go func() {
		for loop := true; loop; {
			select {
			case <-d.tickTicker.C:
				d.eventChannel <- event.TickerEvent{Data: event.TickerEventTickData{}}
			case <-d.askDone:
				loop = false
			}
		}
		d.done <- true
	}()
}

func (d *Clock) StopSendingEvent() {
	logrus.Infof("Stop clock device")
	d.lock.Lock()
	defer d.lock.Unlock()

	d.tickTicker.Stop()
	d.askDone <- true
	<-d.done
}

func (d *Clock) EventChannel() chan event.TickerEvent {
	return d.eventChannel
}

// Now returns the current instant. The monotonic reading it carries is what
// the scheduler uses for all elapsed-time math, so NTP step corrections
// cannot double-fire or starve a timer.
func (d *Clock) Now() time.Time {
	return time.Now()
}

func (d *Clock) Hour() int {
	return time.Now().Hour()
}

func (d *Clock) Synced() bool {
	return time.Now().Year() >= syncedYearFloor
}
