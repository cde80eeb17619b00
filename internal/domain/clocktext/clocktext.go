// Package clocktext parses the clock strings shown by a game client.
package clocktext

import (
	"math"
	"strconv"
	"strings"
)

// Sentinel is the "effectively infinite time left" value used when a clock
// cannot be read.
const Sentinel = 9999.0

const (
	secondsPerMinute = 60
	secondsPerHour   = 3600
)

// Parse converts "H:MM:SS.s", "MM:SS.s" or a bare seconds value to seconds.
// Hour and minute fields take their leading integer, the last field its
// leading decimal number. Empty or unparsable text yields Sentinel and false.
func Parse(text string) (float64, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Sentinel, false
	}
	parts := strings.Split(text, ":")

	var secs float64
	switch len(parts) {
	case 3:
		secs = leadingInt(parts[0])*secondsPerHour + leadingInt(parts[1])*secondsPerMinute + leadingFloat(parts[2])
	case 2:
		secs = leadingInt(parts[0])*secondsPerMinute + leadingFloat(parts[1])
	default:
		secs = leadingFloat(parts[0])
	}
	if math.IsNaN(secs) || math.IsInf(secs, 0) {
		return Sentinel, false
	}
	return secs, true
}

// Seconds is Parse without the ok flag.
func Seconds(text string) float64 {
	s, _ := Parse(text)
	return s
}

// leadingInt reads an optionally signed run of digits; NaN if there is none.
func leadingInt(s string) float64 {
	s = strings.TrimSpace(s)
	end := scanSign(s)
	digits := scanDigits(s[end:])
	if digits == 0 {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s[:end+digits], 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// leadingFloat reads an optionally signed decimal prefix such as "05.3"; NaN if there is none.
func leadingFloat(s string) float64 {
	s = strings.TrimSpace(s)
	end := scanSign(s)
	intDigits := scanDigits(s[end:])
	end += intDigits
	fracDigits := 0
	if end < len(s) && s[end] == '.' {
		fracDigits = scanDigits(s[end+1:])
		if fracDigits > 0 || intDigits > 0 {
			end += 1 + fracDigits
		}
	}
	if intDigits == 0 && fracDigits == 0 {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(s[:end], "."), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

func scanSign(s string) int {
	if s != "" && (s[0] == '-' || s[0] == '+') {
		return 1
	}
	return 0
}

func scanDigits(s string) int {
	n := 0
	for n < len(s) && s[n] >= '0' && s[n] <= '9' {
		n++
	}
	return n
}
