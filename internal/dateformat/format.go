// Package dateformat renders times using moment.js style format strings,
// the notation note-taking tools use for periodic note names.
//
//	Format(t, "YYYY-[W]ww")        // 2026-W43
//	Format(t, "dddd, MMMM Do YYYY") // Monday, October 19th 2026
//
// Text inside square brackets is copied verbatim. A backslash escapes the
// next character. Anything that is not a known token passes through.
//
// Tokens are rendered by goment. Week tokens under a non-default week
// rule, k/kk, z/zz, fractional seconds and the wide year forms are
// rendered here because goment disagrees with moment on them or lacks them.
package dateformat

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/nleeper/goment"
)

// DefaultLayout is used when the layout is empty.
const DefaultLayout = "YYYY-MM-DDTHH:mm:ssZ"

// tokens ordered longest first so the scanner always takes the longest match.
var tokens = []string{
	"YYYYYY", "Hmmss", "hmmss",
	"YYYYY", "GGGGG", "ggggg",
	"YYYY", "GGGG", "gggg", "MMMM", "dddd", "DDDD", "DDDo",
	"SSSSSSSSS", "SSSSSSSS", "SSSSSSS", "SSSSSS", "SSSSS", "SSSS",
	"MMM", "ddd", "DDD", "Hmm", "hmm", "SSS",
	"YY", "GG", "gg", "Mo", "MM", "Do", "DD", "do", "dd",
	"wo", "ww", "Wo", "WW", "Qo", "HH", "hh", "kk", "mm", "ss",
	"SS", "ZZ", "zz",
	"Y", "M", "D", "d", "e", "E", "w", "W", "Q", "H", "h", "k",
	"m", "s", "S", "a", "A", "Z", "z", "X", "x",
}

// Format renders t using layout and the Sunday-start week rule.
func Format(t time.Time, layout string) string {
	return FormatWeek(t, layout, SundayStart)
}

// FormatWeek renders t using layout. Locale-dependent week tokens
// (w, ww, wo, e, gg, gggg, ggggg) follow rule.
func FormatWeek(t time.Time, layout string, rule WeekRule) string {
	if layout == "" {
		layout = DefaultLayout
	}

	// goment.New only fails for inputs it cannot parse, never a time.Time
	g, _ := goment.New(t)

	var b strings.Builder
	for i := 0; i < len(layout); {
		c := layout[i]

		if c == '[' {
			// The literal runs to the last ']' before the next '['.
			rest := layout[i+1:]
			if next := strings.IndexByte(rest, '['); next >= 0 {
				rest = rest[:next]
			}
			if end := strings.LastIndexByte(rest, ']'); end >= 0 {
				b.WriteString(rest[:end])
				i += end + 2
				continue
			}
		}

		if c == '\\' && i+1 < len(layout) {
			b.WriteByte(layout[i+1])
			i += 2
			continue
		}

		if tok := matchToken(layout[i:]); tok != "" {
			b.WriteString(render(g, t, tok, rule))
			i += len(tok)
			continue
		}

		b.WriteByte(c)
		i++
	}
	return b.String()
}

func matchToken(s string) string {
	for _, tok := range tokens {
		if strings.HasPrefix(s, tok) {
			return tok
		}
	}
	return ""
}

// render formats a single token. Tokens goment gets right go to goment.
func render(g *goment.Goment, t time.Time, tok string, rule WeekRule) string {
	switch tok {
	case "Y":
		if t.Year() > 9999 {
			return "+" + strconv.Itoa(t.Year())
		}
		return strconv.Itoa(t.Year())
	case "YYYYY":
		return pad(t.Year(), 5)
	case "YYYYYY":
		return signed(t.Year(), 6)
	case "GGGGG":
		y, _ := t.ISOWeek()
		return pad(y, 5)
	case "ggggg":
		y, _ := rule.Week(t)
		return pad(y, 5)

	// goment renders k as the hour plus one; moment uses 1-24 with 24 at midnight
	case "k":
		return strconv.Itoa(hour24(t))
	case "kk":
		return pad(hour24(t), 2)

	// moment has no zone names without moment-timezone
	case "z", "zz":
		if t.Location() == time.UTC {
			return "UTC"
		}
		return ""

	case "Hmm":
		return render(g, t, "H", rule) + render(g, t, "mm", rule)
	case "Hmmss":
		return render(g, t, "H", rule) + render(g, t, "mm", rule) + render(g, t, "ss", rule)
	case "hmm":
		return render(g, t, "h", rule) + render(g, t, "mm", rule)
	case "hmmss":
		return render(g, t, "h", rule) + render(g, t, "mm", rule) + render(g, t, "ss", rule)
	}

	if strings.Trim(tok, "S") == "" {
		return fraction(t, len(tok))
	}

	if rule != SundayStart {
		if s, ok := renderWeek(t, tok, rule); ok {
			return s
		}
	}

	if g == nil {
		return tok
	}
	return g.Format(tok)
}

// renderWeek formats the locale week tokens under rule. goment's default
// locale numbers weeks like SundayStart.
func renderWeek(t time.Time, tok string, rule WeekRule) (string, bool) {
	y, w := rule.Week(t)
	switch tok {
	case "gg":
		return pad(y%100, 2), true
	case "gggg":
		return pad(y, 4), true
	case "w":
		return strconv.Itoa(w), true
	case "wo":
		return Ordinal(w), true
	case "ww":
		return pad(w, 2), true
	case "e":
		return strconv.Itoa(rule.Weekday(t)), true
	}
	return "", false
}

// Ordinal returns n with its English ordinal suffix (1st, 2nd, 11th, ...).
func Ordinal(n int) string {
	suffix := "th"
	if (n%100)/10 != 1 {
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return strconv.Itoa(n) + suffix
}

func signed(y, width int) string {
	sign := "+"
	if y < 0 {
		sign = "-"
		y = -y
	}
	return sign + pad(y, width)
}

func pad(n, width int) string {
	if n < 0 {
		return "-" + fmt.Sprintf("%0*d", width, -n)
	}
	return fmt.Sprintf("%0*d", width, n)
}

func hour24(t time.Time) int {
	if t.Hour() == 0 {
		return 24
	}
	return t.Hour()
}

// fraction truncates the nanoseconds of t to digits places. moment only
// has milliseconds; Go times carry the full fraction.
func fraction(t time.Time, digits int) string {
	n := t.Nanosecond()
	for i := digits; i < 9; i++ {
		n /= 10
	}
	return pad(n, digits)
}
