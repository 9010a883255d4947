package common

import (
	"bytes"
	"fmt"
	"image/color"
	"time"

	"github.com/Freeeeeet/regatta_bot/internal/model"
	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"
)

// Константы размеров и отступов
const (
	imageWidth   = 1400
	imageHeight  = 620
	marginX      = 60.0
	headerHeight = 90.0

	legRowY      = 180.0
	legRowHeight = 70.0

	activityRowY      = 310.0
	activityRowHeight = 56.0

	barBorderRadius = 8.0
	tickLabelStep   = 3 // подпись каждые N часов

	legendY       = 470.0
	legendSwatch  = 18.0
	legendSpacing = 30.0
)

// Цветовая схема
var (
	bgColor        = color.RGBA{245, 246, 248, 255}
	textColor      = color.RGBA{60, 65, 70, 255}
	mutedTextColor = color.RGBA{120, 125, 130, 255}
	tickLineColor  = color.NRGBA{190, 190, 190, 255}

	sailingColor       = color.RGBA{90, 150, 210, 230}
	hoveToColor        = color.RGBA{235, 190, 90, 230}
	repositioningColor = color.RGBA{170, 120, 200, 230}
	climbColor         = color.RGBA{120, 185, 95, 230}
	barTextColor       = color.RGBA{25, 30, 35, 255}
)

// GenerateRaceImage рисует временную шкалу гонки: участки в верхнем ряду,
// восхождения в нижнем, общая ось времени от старта до финиша
func GenerateRaceImage(s *model.RaceSchedule) ([]byte, error) {
	if len(s.Legs) == 0 {
		return nil, fmt.Errorf("race schedule has no legs")
	}

	start := s.RaceStart
	end := raceEnd(s)
	totalHours := end.Sub(start).Hours()
	if totalHours <= 0 {
		return nil, fmt.Errorf("race schedule has zero duration")
	}

	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetFontFace(basicfont.Face7x13) // ASCII-подписи: basicfont не содержит кириллицы

	dc.SetColor(bgColor)
	dc.Clear()

	drawRaceHeader(dc, s, start, end)
	drawHourTicks(dc, start, totalHours)
	drawLegBars(dc, s, start, totalHours)
	drawActivityBars(dc, s, start, totalHours)
	drawTimelineLegend(dc)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// raceEnd возвращает самый поздний момент среди участков и восхождений
func raceEnd(s *model.RaceSchedule) time.Time {
	end := s.RaceStart
	for _, leg := range s.Legs {
		if leg.EndTime.After(end) {
			end = leg.EndTime
		}
	}
	for _, a := range s.Activities {
		if a.EndTime.After(end) {
			end = a.EndTime
		}
	}
	return end
}

// timeToX переводит момент времени в координату X на шкале
func timeToX(t, start time.Time, totalHours float64) float64 {
	offset := t.Sub(start).Hours()
	usable := float64(imageWidth) - 2*marginX
	return marginX + offset/totalHours*usable
}

func drawRaceHeader(dc *gg.Context, s *model.RaceSchedule, start, end time.Time) {
	dc.SetColor(textColor)
	dc.DrawStringAnchored(s.RaceName, imageWidth/2, 34, 0.5, 0.5)

	subtitle := fmt.Sprintf("%s - %s",
		start.Format("02.01.2006 15:04"),
		end.Format("02.01.2006 15:04"))
	dc.SetColor(mutedTextColor)
	dc.DrawStringAnchored(subtitle, imageWidth/2, 58, 0.5, 0.5)
}

func drawHourTicks(dc *gg.Context, start time.Time, totalHours float64) {
	// Тики от первого целого часа после старта
	first := start.Truncate(time.Hour)
	if first.Before(start) {
		first = first.Add(time.Hour)
	}

	for t := first; t.Sub(start).Hours() <= totalHours; t = t.Add(time.Hour) {
		x := timeToX(t, start, totalHours)

		dc.SetColor(tickLineColor)
		dc.SetLineWidth(1)
		dc.DrawLine(x, headerHeight, x, legendY-30)
		dc.Stroke()

		if t.Hour()%tickLabelStep == 0 {
			dc.SetColor(mutedTextColor)
			dc.DrawStringAnchored(t.Format("15:04"), x, legendY-16, 0.5, 0.5)
		}
	}
}

func drawLegBars(dc *gg.Context, s *model.RaceSchedule, start time.Time, totalHours float64) {
	dc.SetColor(textColor)
	dc.DrawString("Legs", marginX, legRowY-12)

	for _, leg := range s.Legs {
		x0 := timeToX(leg.StartTime, start, totalHours)
		x1 := timeToX(leg.EndTime, start, totalHours)

		dc.SetColor(boatStatusColor(leg.BoatStatus))
		dc.DrawRoundedRectangle(x0, legRowY, x1-x0, legRowHeight, barBorderRadius)
		dc.Fill()

		dc.SetColor(barTextColor)
		label := fmt.Sprintf("%d", leg.Number)
		dc.DrawStringAnchored(label, (x0+x1)/2, legRowY+legRowHeight/2-8, 0.5, 0.5)
		dc.DrawStringAnchored(leg.EndLocation, (x0+x1)/2, legRowY+legRowHeight/2+10, 0.5, 0.5)
	}
}

func drawActivityBars(dc *gg.Context, s *model.RaceSchedule, start time.Time, totalHours float64) {
	dc.SetColor(textColor)
	dc.DrawString("Climbs", marginX, activityRowY-12)

	for _, a := range s.Activities {
		x0 := timeToX(a.StartTime, start, totalHours)
		x1 := timeToX(a.EndTime, start, totalHours)

		dc.SetColor(climbColor)
		dc.DrawRoundedRectangle(x0, activityRowY, x1-x0, activityRowHeight, barBorderRadius)
		dc.Fill()

		dc.SetColor(barTextColor)
		dc.DrawStringAnchored(a.PeakName, (x0+x1)/2, activityRowY+activityRowHeight/2, 0.5, 0.5)
	}
}

func drawTimelineLegend(dc *gg.Context) {
	items := []struct {
		color color.Color
		label string
	}{
		{sailingColor, "Sailing"},
		{hoveToColor, "Hove to"},
		{repositioningColor, "Repositioning"},
		{climbColor, "Climb"},
	}

	x := marginX
	for _, item := range items {
		dc.SetColor(item.color)
		dc.DrawRoundedRectangle(x, legendY, legendSwatch, legendSwatch, 4)
		dc.Fill()

		dc.SetColor(textColor)
		dc.DrawString(item.label, x+legendSwatch+8, legendY+legendSwatch-4)

		x += legendSwatch + 8 + float64(len(item.label))*7 + legendSpacing
	}
}

func boatStatusColor(status model.BoatStatus) color.Color {
	switch status {
	case model.BoatStatusHoveTo:
		return hoveToColor
	case model.BoatStatusRepositioning:
		return repositioningColor
	default:
		return sailingColor
	}
}
