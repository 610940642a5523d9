package srv

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/mar1ash/Time-Brick/internal/images"
	"github.com/mar1ash/Time-Brick/internal/schedule"
	"github.com/mar1ash/Time-Brick/internal/version"
)

// refreshDisplay turns one scheduler directive into a 128x64 frame. The
// scheduler stays agnostic of pixels; everything layout-related lives here.
func (s *ServerApp) refreshDisplay(directive schedule.Directive) {
	s.displayDevice.SetDim(directive.Kind == schedule.DirectiveNightClock)

	img := newFrame()

	switch directive.Kind {
	case schedule.DirectiveTime:
		s.drawClock(img)
		AddCenteredLabel(img, 62, s.clockDevice.Now().Format("Monday"))
	case schedule.DirectiveNightClock:
		s.drawClock(img)
		AddIcon(img, image.Pt(128-images.MoonImage.Bounds().Dx(), 0), images.MoonImage)
	case schedule.DirectiveDate:
		now := s.clockDevice.Now()
		AddCenteredLabel(img, 20, now.Format("Monday"))
		AddCenteredLabel(img, 40, now.Format("02 Jan 2006"))
	case schedule.DirectiveWeather:
		drawWeather(img, directive.Weather)
	case schedule.DirectiveQuote, schedule.DirectiveRandomQuote:
		drawQuote(img, directive.Text)
	case schedule.DirectiveHydration:
		AddIcon(img, image.Pt((128-images.DropImage.Bounds().Dx())/2, 4), images.DropImage)
		AddCenteredLabel(img, 36, "Drink some water!")
		AddGauge(img, 1-directive.Fraction)
	}

	s.displayDevice.ShowImage(img)
}

func (s *ServerApp) drawClock(img *image.RGBA) {
	now := s.clockDevice.Now()
	AddNumber(img, image.Pt(4, 14), now.Hour()/10)
	AddNumber(img, image.Pt(4+1*24, 14), now.Hour()%10)
	AddNumber(img, image.Pt(4+2*24, 14), 10)
	AddNumber(img, image.Pt(4+3*24, 14), now.Minute()/10)
	AddNumber(img, image.Pt(4+4*24, 14), now.Minute()%10)
}

func drawWeather(img *image.RGBA, info schedule.WeatherInfo) {
	AddCenteredLabel(img, 12, "Weather")
	if !info.Valid {
		AddCenteredLabel(img, 32, "--")
		AddCenteredLabel(img, 48, info.Description)
		return
	}
	AddCenteredLabel(img, 32, fmt.Sprintf("%.0f C", info.TemperatureC))
	AddCenteredLabel(img, 48, info.Description)
	AddLabel(img, 0, 62, info.FetchedAt.Format("upd 15:04"))
}

func drawQuote(img *image.RGBA, text string) {
	lines := wrapLabel(text, 20)
	if len(lines) > 4 {
		lines = lines[:4]
	}
	y := 32 - (len(lines)-1)*7
	for _, line := range lines {
		AddCenteredLabel(img, y, line)
		y += 14
	}
}

func (s *ServerApp) splashScreen() {
	img := newFrame()
	AddCenteredLabel(img, 28, "Time-Brick")
	AddCenteredLabel(img, 44, "v"+version.AppVersion.String())
	s.displayDevice.ShowImage(img)
}

func (s *ServerApp) farewellScreen() {
	img := newFrame()
	AddCenteredLabel(img, 40, "See you!")
	s.displayDevice.ShowImage(img)
}

func newFrame() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 128, 64))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.RGBA{0, 0, 0, 255}}, image.Point{}, draw.Src)
	return img
}
