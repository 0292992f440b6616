package models

import "fmt"

// Window selects which historical slice of a station's record feeds the
// histograms: the same month-day across all years, or a trailing span of
// days ending on the selection date.
type Window string

const (
	WindowYears Window = "years"
	Window365d  Window = "365d"
	Window180d  Window = "180d"
	Window90d   Window = "90d"
	Window30d   Window = "30d"
	Window14d   Window = "14d"
	Window7d    Window = "7d"
)

var windowDays = map[Window]int{
	Window365d: 365,
	Window180d: 180,
	Window90d:  90,
	Window30d:  30,
	Window14d:  14,
	Window7d:   7,
}

// Windows lists all supported windows in display order.
func Windows() []Window {
	return []Window{
		WindowYears, Window365d, Window180d,
		Window90d, Window30d, Window14d, Window7d,
	}
}

// ParseWindow validates a window name. Empty input defaults to WindowYears.
func ParseWindow(s string) (Window, error) {
	if s == "" {
		return WindowYears, nil
	}
	w := Window(s)
	if w == WindowYears {
		return w, nil
	}
	if _, ok := windowDays[w]; !ok {
		return "", fmt.Errorf("unknown window %q", s)
	}
	return w, nil
}

// Days returns the trailing-span length, or 0 for the month-day window.
func (w Window) Days() int {
	return windowDays[w]
}

// YLabel returns the frequency-axis label for panels in this window.
func (w Window) YLabel() string {
	if w == WindowYears {
		return "Number of Years"
	}
	return "Number of Days"
}
