package render

import (
	"bytes"
	"fmt"
	"image/color"
	"time"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/slovko/tutor-admin/internal/model"
)

// Layout constants.
const (
	imageWidth      = 1400
	imageHeight     = 900
	headerHeight    = 80
	leftLabelsWidth = 70
	dayPaddingX     = 6
	minSlotHeight   = 10.0
	slotRadius      = 5.0
	totalDays       = 7
	defaultMinHour  = 8
	defaultMaxHour  = 20
)

// Color scheme.
var (
	bgColor        = color.RGBA{245, 246, 248, 255}
	textColor      = color.RGBA{80, 85, 90, 220}
	hourLabelColor = color.RGBA{110, 115, 120, 200}
	hourLineColor  = color.NRGBA{150, 150, 150, 255}
	todayBgColor   = color.NRGBA{255, 99, 71, 60}
	evenDayColor   = color.NRGBA{240, 240, 240, 255}
	oddDayColor    = color.NRGBA{224, 224, 224, 255}

	slotBookedColor    = color.RGBA{255, 182, 193, 255}
	slotCancelledColor = color.RGBA{158, 158, 158, 200}
	slotRegularColor   = color.RGBA{196, 181, 253, 255}
	slotTextColor      = color.RGBA{20, 24, 28, 230}
)

// block is a renderable slot, session or occurrence alike.
type block struct {
	start    time.Time
	duration int
	status   model.SessionStatus
	regular  bool
}

// WeekImage renders the tutor's current week, Sunday through Saturday, as a
// PNG. Sessions and derived occurrences are drawn the same way; derived
// ones carry the regulars accent color.
func WeekImage(now time.Time, sessions []*model.Session, occurrences []model.Occurrence) ([]byte, error) {
	weekStart := startOfWeek(now)
	weekEnd := weekStart.AddDate(0, 0, totalDays)

	var blocks []block
	for _, s := range sessions {
		if s.StartTime.Before(weekStart) || !s.StartTime.Before(weekEnd) {
			continue
		}
		blocks = append(blocks, block{start: s.StartTime, duration: s.Duration, status: s.Status})
	}
	for _, o := range occurrences {
		if o.StartTime.Before(weekStart) || !o.StartTime.Before(weekEnd) {
			continue
		}
		blocks = append(blocks, block{start: o.StartTime, duration: o.Duration, status: o.Status, regular: true})
	}

	minHour, maxHour := hourBounds(blocks)
	totalHours := maxHour - minHour + 1

	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetFontFace(basicfont.Face7x13)
	dc.SetColor(bgColor)
	dc.Clear()

	dayWidth := float64(imageWidth-leftLabelsWidth) / totalDays
	gridHeight := float64(imageHeight - headerHeight)
	hourHeight := gridHeight / float64(totalHours)

	// Day columns and headers.
	for day := 0; day < totalDays; day++ {
		x := float64(leftLabelsWidth) + float64(day)*dayWidth
		date := weekStart.AddDate(0, 0, day)

		switch {
		case sameDay(date, now):
			dc.SetColor(todayBgColor)
		case day%2 == 0:
			dc.SetColor(evenDayColor)
		default:
			dc.SetColor(oddDayColor)
		}
		dc.DrawRectangle(x, headerHeight, dayWidth, gridHeight)
		dc.Fill()

		dc.SetColor(textColor)
		label := fmt.Sprintf("%s %d.%d.", date.Weekday().String()[:3], date.Day(), int(date.Month()))
		dc.DrawStringAnchored(label, x+dayWidth/2, headerHeight/2, 0.5, 0.5)
	}

	// Hour lines and labels.
	for h := 0; h <= totalHours; h++ {
		y := float64(headerHeight) + float64(h)*hourHeight
		dc.SetColor(hourLineColor)
		dc.SetLineWidth(0.5)
		dc.DrawLine(leftLabelsWidth, y, imageWidth, y)
		dc.Stroke()

		if h < totalHours {
			dc.SetColor(hourLabelColor)
			dc.DrawStringAnchored(fmt.Sprintf("%02d:00", minHour+h), leftLabelsWidth/2, y+hourHeight/2, 0.5, 0.5)
		}
	}

	// Slots.
	for _, b := range blocks {
		day := int(b.start.Sub(weekStart).Hours() / 24)
		x := float64(leftLabelsWidth) + float64(day)*dayWidth + dayPaddingX

		startOffset := float64(b.start.Hour()-minHour) + float64(b.start.Minute())/60
		y := float64(headerHeight) + startOffset*hourHeight
		h := float64(b.duration) / 60 * hourHeight
		if h < minSlotHeight {
			h = minSlotHeight
		}

		switch {
		case b.status == model.SessionStatusCancelled:
			dc.SetColor(slotCancelledColor)
		case b.regular:
			dc.SetColor(slotRegularColor)
		default:
			dc.SetColor(slotBookedColor)
		}
		dc.DrawRoundedRectangle(x, y, dayWidth-2*dayPaddingX, h, slotRadius)
		dc.Fill()

		dc.SetColor(slotTextColor)
		dc.DrawStringAnchored(b.start.Format("15:04"), x+(dayWidth-2*dayPaddingX)/2, y+h/2, 0.5, 0.5)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode week image: %w", err)
	}
	return buf.Bytes(), nil
}

// startOfWeek returns local midnight of the Sunday of now's week, matching
// the day-of-week numbering used across the schedule model.
func startOfWeek(now time.Time) time.Time {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return midnight.AddDate(0, 0, -int(midnight.Weekday()))
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// hourBounds picks the displayed hour range so all blocks are visible while
// quiet weeks keep a sensible working-day window.
func hourBounds(blocks []block) (int, int) {
	minHour, maxHour := defaultMinHour, defaultMaxHour
	for _, b := range blocks {
		if h := b.start.Hour(); h < minHour {
			minHour = h
		}
		end := b.start.Add(time.Duration(b.duration) * time.Minute)
		if h := end.Hour(); h > maxHour {
			maxHour = h
		}
	}
	return minHour, maxHour
}
