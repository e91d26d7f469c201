package detect

import (
	"regexp"
	"strconv"
	"time"

	"cloud.google.com/go/civil"
)

// datePattern matches day/month/year tokens with '.', '/' or '-' separators
// and a 2- or 4-digit year.
var datePattern = regexp.MustCompile(`(\d{1,2})[./-](\d{1,2})[./-](\d{2,4})`)

// ExtractDate finds the first date token in text. Two-digit years are
// interpreted as 2000+yy. Returns false for no token or an impossible
// calendar date.
func ExtractDate(text string) (civil.Date, bool) {
	m := datePattern.FindStringSubmatch(text)
	if m == nil {
		return civil.Date{}, false
	}

	day, err := strconv.Atoi(m[1])
	if err != nil {
		return civil.Date{}, false
	}
	month, err := strconv.Atoi(m[2])
	if err != nil {
		return civil.Date{}, false
	}
	year, err := strconv.Atoi(m[3])
	if err != nil {
		return civil.Date{}, false
	}
	if year < 100 {
		year = 2000 + year
	}

	date := civil.Date{Year: year, Month: time.Month(month), Day: day}
	if !date.IsValid() {
		return civil.Date{}, false
	}
	return date, true
}
