// Package images holds the sprite sheet for the large clock digits and the
// small status icons, built at init from string masks.
package images

import (
	"image"
	"image/color"
)

// NumbersImage is a sprite sheet of 24x36 cells: digits 0-9 then a colon at
// index 10.
var NumbersImage *image.RGBA

// DropImage decorates the hydration reminder screen.
var DropImage *image.RGBA

// MoonImage marks the night clock.
var MoonImage *image.RGBA

var digitMasks = [][]string{
	{
		"01110",
		"10001",
		"10011",
		"10101",
		"11001",
		"10001",
		"01110",
	},
	{
		"00100",
		"01100",
		"00100",
		"00100",
		"00100",
		"00100",
		"01110",
	},
	{
		"01110",
		"10001",
		"00001",
		"00010",
		"00100",
		"01000",
		"11111",
	},
	{
		"11111",
		"00010",
		"00100",
		"00010",
		"00001",
		"10001",
		"01110",
	},
	{
		"00010",
		"00110",
		"01010",
		"10010",
		"11111",
		"00010",
		"00010",
	},
	{
		"11111",
		"10000",
		"11110",
		"00001",
		"00001",
		"10001",
		"01110",
	},
	{
		"00110",
		"01000",
		"10000",
		"11110",
		"10001",
		"10001",
		"01110",
	},
	{
		"11111",
		"00001",
		"00010",
		"00100",
		"01000",
		"01000",
		"01000",
	},
	{
		"01110",
		"10001",
		"10001",
		"01110",
		"10001",
		"10001",
		"01110",
	},
	{
		"01110",
		"10001",
		"10001",
		"01111",
		"00001",
		"00010",
		"01100",
	},
	{
		"00000",
		"00100",
		"00100",
		"00000",
		"00100",
		"00100",
		"00000",
	},
}

var dropMask = []string{
	"0000000110000000",
	"0000000110000000",
	"0000001111000000",
	"0000001111000000",
	"0000011111100000",
	"0000111111110000",
	"0001111111111000",
	"0011111111111100",
	"0011111111111100",
	"0111111111111110",
	"0111011111111110",
	"0111011111111110",
	"0011101111111100",
	"0011111111111100",
	"0001111111111000",
	"0000011111100000",
}

var moonMask = []string{
	"0000011110000000",
	"0001111000000000",
	"0011110000000000",
	"0111100000000000",
	"0111100000000000",
	"1111000000000000",
	"1111000000000000",
	"1111000000000000",
	"1111000000000000",
	"1111000000000000",
	"1111100000000000",
	"0111100000000000",
	"0111110000000000",
	"0011111100000110",
	"0001111111111110",
	"0000011111111000",
}

const (
	DigitWidth  = 24
	DigitHeight = 36

	digitScale = 4 // 5x7 mask cell scaled up, centered in 24x36
)

var white = color.RGBA{255, 255, 255, 255}

func init() {
	NumbersImage = image.NewRGBA(image.Rect(0, 0, DigitWidth*len(digitMasks), DigitHeight))
	for i, mask := range digitMasks {
		paintMask(NumbersImage, mask, digitScale, i*DigitWidth+2, 4)
	}

	DropImage = maskImage(dropMask)
	MoonImage = maskImage(moonMask)
}

func maskImage(mask []string) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, len(mask[0]), len(mask)))
	paintMask(img, mask, 1, 0, 0)
	return img
}

func paintMask(img *image.RGBA, mask []string, scale, offsetX, offsetY int) {
	for y, row := range mask {
		for x := 0; x < len(row); x++ {
			if row[x] != '1' {
				continue
			}
			for dy := 0; dy < scale; dy++ {
				for dx := 0; dx < scale; dx++ {
					img.SetRGBA(offsetX+x*scale+dx, offsetY+y*scale+dy, white)
				}
			}
		}
	}
}
