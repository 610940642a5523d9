package srv

import (
	"math/rand"
	"os"
	"os/exec"
	"time"

	"github.com/mar1ash/Time-Brick/internal/schedule"
	"github.com/mar1ash/Time-Brick/internal/srv/config"
	"github.com/mar1ash/Time-Brick/internal/srv/device"
	"github.com/mar1ash/Time-Brick/internal/version"
	"github.com/sirupsen/logrus"
)

type ServerApp struct {
	*config.ServerConfig

	displayDevice *device.Display
	clockDevice   *device.Clock
	weatherDevice *device.Weather
	networkDevice *device.Network
	apiDevice     *device.Api

	scheduler     *schedule.Scheduler
	lastDirective schedule.Directive
	lastInputs    schedule.Inputs
	startedAt     time.Time

	eventLoopAskDone chan bool
	eventLoopDone    chan bool
}

func NewServerApp(configDir string, debugMode bool, simulationMode bool) *ServerApp {

	logrus.Debugf("Creation of timebrick server %s ...", version.AppVersion.String())

	app := &ServerApp{
		eventLoopAskDone: make(chan bool),
		eventLoopDone:    make(chan bool),
		ServerConfig:     config.NewServerConfig(configDir, debugMode, simulationMode),
	}

	app.displayDevice = device.NewDisplay(app.SimulationMode)
	app.clockDevice = device.NewClock(app.ServerParam.TickPeriod())
	app.weatherDevice = device.NewWeather(app.ServerParam.Weather)
	app.networkDevice = device.NewNetwork(app.ServerParam.Weather.ProbeAddress)
	if app.ServerParam.ApiParam.Enabled {
		app.apiDevice = device.NewApi(app.ServerConfig)
	}

	logrus.Debugln("Server created")

	return app
}

func (s *ServerApp) Start() {
	logrus.Printf("Starting timebrick server ...")

	s.startedAt = time.Now()

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	now := s.clockDevice.Now()
	s.scheduler = schedule.New(s.ServerParam.SchedulerParams(), rng, now, s.clockDevice.Hour())

	// Until the first successful fetch the weather screen shows the
	// device's unavailable marker instead of an empty line.
	s.scheduler.SetWeather(s.weatherDevice.Snapshot())

	logrus.Printf("Starting devices ...")

	// Start display device
	s.displayDevice.Start()

	// Display startup screen
	s.splashScreen()
	time.Sleep(2 * time.Second)

	// Start network device
	s.networkDevice.Start()

	// Start weather device
	s.weatherDevice.Start()

	// Start event loop
	go s.eventLoop()

	// Start clock device
	s.clockDevice.Start()

	// Start api device
	if s.apiDevice != nil {
		s.apiDevice.Start()
	}
}

func (s *ServerApp) Stop(halt bool) {
	logrus.Printf("Stopping timebrick server ...")

	// Stop api
	if s.apiDevice != nil {
		s.apiDevice.StopSendingEvent()
	}

	// Stop clock device
	s.clockDevice.StopSendingEvent()

	// Stop network device
	s.networkDevice.StopSendingEvent()

	// Stop weather device
	s.weatherDevice.StopSendingEvent()

	// Stop event loop
	logrus.Infof("Stop event loop")
	s.eventLoopAskDone <- true
	<-s.eventLoopDone

	s.farewellScreen()

	// Stop display device
	s.displayDevice.Stop()

	logrus.Printf("Server stopped")

	if halt {
		logrus.Printf("System halt")
		haltCmd := exec.Command("sudo", "halt")
		err := haltCmd.Run()
		if err != nil {
			logrus.Panicf("Unable to halt the system: %v", err)
		}
	}
	os.Exit(0)
}
