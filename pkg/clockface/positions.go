package clockface

import (
	"fmt"
	"strings"
	"time"
)

// HandPositions holds the raw dial values for an instant.
type HandPositions struct {
	// Hours is h%12 plus the whole minute as a fraction of an hour.
	Hours float64
	// Minutes is m plus the whole second as a fraction of a minute.
	Minutes      float64
	Seconds      int
	Milliseconds int
}

// PositionsAt computes the hand positions for t in t's location.
func PositionsAt(t time.Time) HandPositions {
	return HandPositions{
		Hours:        float64(t.Hour()%12) + float64(t.Minute())/60,
		Minutes:      float64(t.Minute()) + float64(t.Second())/60,
		Seconds:      t.Second(),
		Milliseconds: t.Nanosecond() / int(time.Millisecond),
	}
}

// SecondValue is the fractional second within the minute.
func (p HandPositions) SecondValue() float64 {
	return float64(p.Seconds) + float64(p.Milliseconds)/1000
}

// Angles are hand rotations in degrees, clockwise from 12 o'clock.
type Angles struct {
	Hour   float64
	Minute float64
	Second float64
}

// Angles computes the hand angles for p under c's motion settings.
func (c Config) Angles(p HandPositions) Angles {
	motion, _ := c.secondMotion()
	return anglesFor(p, c.TickingMinutes, c.SweepingSeconds, motion)
}

func anglesFor(p HandPositions, tickingMinutes, sweepingSeconds bool, motion func(float64) float64) Angles {
	a := Angles{Hour: p.Hours * 30}

	if tickingMinutes {
		a.Minute = float64(int(p.Minutes)) * 6
	} else {
		a.Minute = p.Minutes * 6
	}

	switch {
	case motion != nil:
		a.Second = motion(p.SecondValue()) * 6
	case sweepingSeconds:
		a.Second = p.SecondValue() * 6
	default:
		a.Second = float64(p.Seconds) * 6
	}
	return a
}

// AlarmTime is a time of day. Components are not range checked; an hour of
// 25 simply wraps on the dial.
type AlarmTime struct {
	Hour   int
	Minute int
	Second int
}

// ParseAlarmTime parses "HH", "HH:MM" or "HH:MM:SS". It never fails: each
// component keeps its leading digits and anything unparseable becomes 0.
func ParseAlarmTime(s string) AlarmTime {
	parts := strings.Split(strings.TrimSpace(s), ":")
	var out [3]int
	for i := 0; i < len(parts) && i < len(out); i++ {
		out[i] = leadingInt(parts[i])
	}
	return AlarmTime{Hour: out[0], Minute: out[1], Second: out[2]}
}

func leadingInt(s string) int {
	s = strings.TrimSpace(s)
	sign := 1
	if strings.HasPrefix(s, "-") {
		sign = -1
		s = s[1:]
	} else {
		s = strings.TrimPrefix(s, "+")
	}
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
	}
	return sign * n
}

// AlarmAt returns the time of day of t.
func AlarmAt(t time.Time) AlarmTime {
	return AlarmTime{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}
}

// SecondsOfDay returns the alarm as seconds since midnight.
func (a AlarmTime) SecondsOfDay() int {
	return a.Hour*3600 + a.Minute*60 + a.Second
}

// Positions returns the alarm time as dial positions.
func (a AlarmTime) Positions() HandPositions {
	return HandPositions{
		Hours:   float64(a.Hour%12) + float64(a.Minute)/60,
		Minutes: float64(a.Minute) + float64(a.Second)/60,
		Seconds: a.Second,
	}
}

// String formats the alarm as HH:MM:SS.
func (a AlarmTime) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", a.Hour, a.Minute, a.Second)
}

func secondsOfDay(t time.Time) int {
	return t.Hour()*3600 + t.Minute()*60 + t.Second()
}
