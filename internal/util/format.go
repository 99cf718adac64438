package util

import (
	"fmt"
	"time"
)

// FormatDuration formats a duration as m:ss.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	m := total / 60
	s := total % 60
	return fmt.Sprintf("%d:%02d", m, s)
}

// Seconds converts a field clock reading to a Duration.
func Seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// FormatFPS formats a frame rate, or "--" before one is known.
func FormatFPS(fps float64) string {
	if fps <= 0 {
		return "-- fps"
	}
	return fmt.Sprintf("%.0f fps", fps)
}
