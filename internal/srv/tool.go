package srv

import (
	"github.com/hajimehoshi/bitmapfont/v2"
	"github.com/mar1ash/Time-Brick/internal/images"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"image"
	"image/color"
	"strings"
)

var col = color.RGBA{255, 255, 255, 255}
var uniformImage = image.NewUniform(col)

func AddLabel(img *image.RGBA, x, y int, label string) {

	point := fixed.Point26_6{X: fixed.Int26_6((x + 4) * 64), Y: fixed.Int26_6(y * 64)}

	d := &font.Drawer{
		Dst:  img,
		Src:  uniformImage,
		Face: bitmapfont.Face,
		Dot:  point,
	}
	d.DrawString(label)
}

func AddCenteredLabel(img *image.RGBA, y int, label string) {
	AddLabel(img, (128-len(label)*6)/2, y, label)
}

func AddNumber(img draw.Image, position image.Point, number int) {
	draw.Draw(
		img,
		image.Rect(0, 0, images.DigitWidth, images.DigitHeight).Add(position),
		images.NumbersImage,
		images.NumbersImage.Bounds().Min.Add(image.Pt(images.DigitWidth*number, 0)),
		draw.Src)
}

func AddIcon(img draw.Image, position image.Point, icon image.Image) {
	draw.Draw(img, icon.Bounds().Add(position), icon, icon.Bounds().Min, draw.Src)
}

// AddGauge draws a framed horizontal bar filled to the given fraction.
func AddGauge(img *image.RGBA, fraction float64) {
	if fraction < 0 {
		fraction = 0
	} else if fraction > 1 {
		fraction = 1
	}
	draw.Draw(img, image.Rect(13, 48, 115, 49), uniformImage, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(13, 59, 115, 60), uniformImage, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(12, 49, 13, 59), uniformImage, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(115, 49, 116, 59), uniformImage, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(14, 50, 14+int(fraction*101), 58), uniformImage, image.Point{}, draw.Src)
}

// wrapLabel splits text into lines that fit the 128px panel with the 6px
// font, breaking on spaces.
func wrapLabel(text string, maxChars int) []string {
	words := strings.Fields(text)
	var lines []string
	var current string
	for _, word := range words {
		if current == "" {
			current = word
			continue
		}
		if len(current)+1+len(word) > maxChars {
			lines = append(lines, current)
			current = word
			continue
		}
		current += " " + word
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}
