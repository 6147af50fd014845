package roulette

import (
	"bytes"
	"fmt"
	"math"
	"time"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	log "github.com/sirupsen/logrus"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"

	"roulette/engine"
	"roulette/models"
)

const (
	wheelImageSize = 240
	wheelImageName = "wheel.png"
)

var (
	winSliceRGB  = [3]float64{0.18, 0.80, 0.44}
	loseSliceRGB = [3]float64{0.91, 0.30, 0.24}
)

// renderWheel draws the wheel at rest with the landed slice under the pointer
func renderWheel(stop models.WheelStop) ([]byte, error) {
	start := time.Now()
	defer func() {
		log.WithField("duration_ms", time.Since(start).Milliseconds()).
			Debug("Wheel image generation completed")
	}()

	if stop.SliceIndex < 0 || stop.SliceIndex >= engine.SliceCount {
		return nil, fmt.Errorf("slice index %d out of range", stop.SliceIndex)
	}

	dc := gg.NewContext(wheelImageSize, wheelImageSize)
	dc.SetRGB(0.13, 0.14, 0.16)
	dc.Clear()

	cx, cy := float64(wheelImageSize)/2, float64(wheelImageSize)/2+8
	radius := float64(wheelImageSize)/2 - 20
	sliceAngle := 2 * math.Pi / engine.SliceCount

	// Rotate so the middle of the landed slice sits at 12 o'clock
	offset := -math.Pi/2 - (float64(stop.SliceIndex)+0.5)*sliceAngle

	face, err := loadFont(gobold.TTF, 14)
	if err != nil {
		return nil, fmt.Errorf("failed to load font: %w", err)
	}
	dc.SetFontFace(face)

	for i := 0; i < engine.SliceCount; i++ {
		from := offset + float64(i)*sliceAngle
		to := from + sliceAngle

		rgb := loseSliceRGB
		label := "L"
		if engine.SliceOutcome(i) == models.OutcomeWin {
			rgb = winSliceRGB
			label = "W"
		}

		dc.MoveTo(cx, cy)
		dc.DrawArc(cx, cy, radius, from, to)
		dc.ClosePath()
		dc.SetRGB(rgb[0], rgb[1], rgb[2])
		dc.FillPreserve()
		dc.SetRGB(0.1, 0.1, 0.1)
		dc.SetLineWidth(2)
		dc.Stroke()

		mid := from + sliceAngle/2
		dc.SetRGB(1, 1, 1)
		dc.DrawStringAnchored(label, cx+math.Cos(mid)*radius*0.75, cy+math.Sin(mid)*radius*0.75, 0.5, 0.5)
	}

	// Outline the landed slice
	from := offset + float64(stop.SliceIndex)*sliceAngle
	dc.MoveTo(cx, cy)
	dc.DrawArc(cx, cy, radius, from, from+sliceAngle)
	dc.ClosePath()
	dc.SetRGB(1, 0.84, 0)
	dc.SetLineWidth(4)
	dc.Stroke()

	// Hub
	dc.DrawCircle(cx, cy, radius*0.15)
	dc.SetRGB(0.2, 0.2, 0.25)
	dc.Fill()

	// Pointer
	dc.MoveTo(cx-10, cy-radius-14)
	dc.LineTo(cx+10, cy-radius-14)
	dc.LineTo(cx, cy-radius+6)
	dc.ClosePath()
	dc.SetRGB(1, 1, 1)
	dc.Fill()

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

func loadFont(fontData []byte, size float64) (font.Face, error) {
	f, err := truetype.Parse(fontData)
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}
