package exegesis

import (
	"regexp"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/itchyny/timefmt-go"
)

var dateVerb = regexp.MustCompile(`%.`)

// ParseDate finds the first substring of text shaped like format and parses
// it as a calendar date.
//
// Format uses strftime verbs. Supported verbs are %Y %y %m %d %e %b %h %B %a
// %A %j %H %M %S %p and %%. The located substring must parse completely and
// name a real calendar date.
func ParseDate(format, text string) (civil.Date, error) {
	if err := checkDateFormat(format); err != nil {
		return civil.Date{}, err
	}
	re, err := dateLocator(format)
	if err != nil {
		return civil.Date{}, err
	}
	match := re.FindString(text)
	if match == "" {
		return civil.Date{}, Errorf(EINVALID, "no date found in %q", text)
	}
	return parseStrict(format, match)
}

// dateLocator builds a regexp that finds candidates for format in free text.
func dateLocator(format string) (*regexp.Regexp, error) {
	pattern := dateVerb.ReplaceAllStringFunc(regexp.QuoteMeta(format), func(verb string) string {
		switch verb {
		case "%Y", "%m", "%d":
			return `\d+`
		case "%b", "%B":
			return `\w+`
		}
		return `\S+`
	})
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, Errorf(EINVALID, "invalid date format %q: %v", format, err)
	}
	return re, nil
}

// checkDateFormat rejects verbs outside the supported set and formats that
// cannot name a single day.
func checkDateFormat(format string) error {
	var year, month, day, yday bool
	for _, verb := range dateVerb.FindAllString(format, -1) {
		switch verb[1] {
		case 'Y', 'y':
			year = true
		case 'm', 'b', 'h', 'B':
			month = true
		case 'd', 'e':
			day = true
		case 'j':
			yday = true
		case 'a', 'A', 'H', 'M', 'S', 'p', '%':
		default:
			return Errorf(EINVALID, "unsupported date verb %s in format %q", verb, format)
		}
	}
	if strings.HasSuffix(strings.ReplaceAll(format, "%%", ""), "%") {
		return Errorf(EINVALID, "date format %q ends with a lone %%", format)
	}
	if !year {
		return Errorf(EINVALID, "date format %q has no year", format)
	}
	if !yday && !(month && day) {
		return Errorf(EINVALID, "date format %q is missing a month or day", format)
	}
	return nil
}

// parseStrict parses s against format. The parser normalizes overflowing
// fields (Feb 30 becomes Mar 2), so the result is formatted back and must
// reproduce s up to zero padding and letter case.
func parseStrict(format, s string) (civil.Date, error) {
	t, err := timefmt.Parse(s, format)
	if err != nil {
		return civil.Date{}, Errorf(EINVALID, "cannot parse date %q with format %q: %v", s, format, err)
	}
	if canonicalDate(timefmt.Format(t, format)) != canonicalDate(s) {
		return civil.Date{}, Errorf(EINVALID, "date %q is out of range", s)
	}
	return civil.DateOf(t), nil
}

var leadingZeros = regexp.MustCompile(`(^|\D)0+(\d)`)

// canonicalDate lowercases s, collapses whitespace and drops leading zeros
// from numbers.
func canonicalDate(s string) string {
	s = strings.ToLower(strings.Join(strings.Fields(s), " "))
	return leadingZeros.ReplaceAllString(s, "${1}${2}")
}
