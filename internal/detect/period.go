package detect

import (
	"regexp"

	"github.com/hashiroii/tiyin-server/internal/subscription"
)

// periodRule pairs a compiled pattern with the period it indicates.
type periodRule struct {
	pattern *regexp.Regexp
	period  subscription.Period
}

// periodRules is tested in order; the first match wins. English and Russian
// keyword variants per pattern.
var periodRules = []periodRule{
	{regexp.MustCompile(`(?i)(monthly|ежемесячно|месяц)`), subscription.PeriodMonthly},
	{regexp.MustCompile(`(?i)(yearly|annual|годовой|ежегодно)`), subscription.PeriodYearly},
	{regexp.MustCompile(`(?i)(weekly|еженедельно|неделя)`), subscription.PeriodWeekly},
	{regexp.MustCompile(`(?i)(daily|ежедневно|день)`), subscription.PeriodDaily},
	{regexp.MustCompile(`(?i)(quarterly|квартал)`), subscription.PeriodQuarterly},
}

// DetectPeriod finds the billing period mentioned in notification text.
// Monthly is the default when nothing matches.
func DetectPeriod(title, body string) subscription.Period {
	combined := title + " " + body
	for _, rule := range periodRules {
		if rule.pattern.MatchString(combined) {
			return rule.period
		}
	}
	return subscription.PeriodMonthly
}
