package manifest

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseTimecode parses a clip boundary into seconds. Accepted forms are
// plain seconds ("95", "95.5"), MM:SS ("1:35"), and HH:MM:SS ("1:02:35"),
// with an optional fractional part on the final component.
func ParseTimecode(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty timecode")
	}

	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return 0, fmt.Errorf("too many colon fields in %q", s)
	}

	var total float64
	for i, part := range parts {
		f, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return 0, fmt.Errorf("bad timecode field %q", part)
		}
		if f < 0 {
			return 0, fmt.Errorf("negative timecode field %q", part)
		}
		if i > 0 && f >= 60 {
			return 0, fmt.Errorf("timecode field %q out of range", part)
		}
		total = total*60 + f
	}
	return total, nil
}

// FormatTimecode renders seconds as H:MM:SS for display and for cleaned
// timestamp lines.
func FormatTimecode(sec float64) string {
	s := int(sec)
	h := s / 3600
	m := (s % 3600) / 60
	r := s % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, r)
	}
	return fmt.Sprintf("%d:%02d", m, r)
}
