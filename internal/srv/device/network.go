package device

import (
	"net"
	"sync"
	"time"

	"github.com/mar1ash/Time-Brick/internal/srv/event"
	"github.com/sirupsen/logrus"
)

const (
	probeInterval = 30 * time.Second
	probeTimeout  = 3 * time.Second
)

// Network keeps a cached connectivity flag from a periodic TCP probe and
// reports edges into the event loop, which drives the eager weather poll
// when the link comes back.
type Network struct {
	lock         sync.RWMutex
	eventChannel chan event.NetworkEvent

	probeAddress string
	online       bool

	askDone   chan bool
	done      chan bool
	sendEvent bool
}

func NewNetwork(probeAddress string) *Network {
	device := Network{
		eventChannel: make(chan event.NetworkEvent),
		probeAddress: probeAddress,
		askDone:      make(chan bool),
		done:         make(chan bool),
		sendEvent:    true,
	}
	return &device
}

func (d *Network) Start() {
	logrus.Infof("Start network device")

	go func() {
		ticker := time.NewTicker(probeInterval)
		defer ticker.Stop()

		d.probe()
		for loop := true; loop; {
			select {
			case <-ticker.C:
				d.probe()
			case <-d.askDone:
				loop = false
			}
		}
		d.done <- true
	}()
}

func (d *Network) StopSendingEvent() {
	logrus.Infof("Stop network device")

	d.lock.Lock()
	d.sendEvent = false
	d.lock.Unlock()

	d.askDone <- true
	<-d.done
}

func (d *Network) EventChannel() chan event.NetworkEvent {
	return d.eventChannel
}

func (d *Network) Online() bool {
	d.lock.RLock()
	defer d.lock.RUnlock()
	return d.online
}

func (d *Network) probe() {
	conn, err := net.DialTimeout("tcp", d.probeAddress, probeTimeout)
	online := err == nil
	if conn != nil {
		conn.Close()
	}

	d.lock.Lock()
	changed := online != d.online
	d.online = online
	sendEvent := d.sendEvent
	d.lock.Unlock()

	if changed {
		if online {
			logrus.Infof("Network is up")
		} else {
			logrus.Warnf("Network is down")
		}
		if sendEvent {
			d.eventChannel <- event.NetworkEvent{Data: event.NetworkEventStateData{Online: online}}
		}
	}
}
