package fields

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/aodesk/ao-analyzer/models"
)

// deadlineHeadWindow is scanned first; the full text is only retried when
// the head yields nothing, because a deadline buried past the head must
// still be found.
const deadlineHeadWindow = 5000

// Default minutes applied when a time pattern matched but its minute group
// came back empty. The priority and general tiers historically disagree on
// this default; both values are kept as-is. Flagged as a possible
// inconsistency, do not unify without product confirmation.
const (
	priorityTierDefaultMinute = 0
	generalTierDefaultMinute  = 59
)

// endOfDay is assumed when a deadline carries no time of day.
const (
	endOfDayHour   = 23
	endOfDayMinute = 59
)

type deadlineKind int

const (
	// numericDateTime captures day/month/year/hour and an optional minute.
	numericDateTime deadlineKind = iota
	// monthNameDateTime captures day, French month name, 4-digit year,
	// hour and minute.
	monthNameDateTime
	// dateOnly captures a single d/m/y string; time defaults to 23:59.
	dateOnly
)

// deadlinePattern is one declarative extraction rule: the shape, how its
// capture groups are read, and the minute default of its tier.
type deadlinePattern struct {
	re            *regexp.Regexp
	kind          deadlineKind
	defaultMinute int
}

// deadlineTier is an ordered pattern group. Tiers are tried strictly in
// order and the first parseable match wins; there is no cross-tier scoring.
type deadlineTier struct {
	name     string
	patterns []deadlinePattern
}

var frenchMonths = map[string]time.Month{
	"janvier": time.January, "février": time.February, "fevrier": time.February,
	"mars": time.March, "avril": time.April, "mai": time.May, "juin": time.June,
	"juillet": time.July, "août": time.August, "aout": time.August,
	"septembre": time.September, "octobre": time.October,
	"novembre": time.November, "décembre": time.December, "decembre": time.December,
}

var deadlineTiers = []deadlineTier{
	{
		// Anchored to remise/dépôt/date limite phrasing with an explicit time.
		name: "priority date+time",
		patterns: []deadlinePattern{
			{re: regexp.MustCompile(`(?i)(?:remise[:\s]+(?:des[:\s]+)?(?:offres?|plis?)[:\s]+(?:le|au|avant|au[:\s]+plus[:\s]+tard)[:\s]+)?(\d{1,2})[/-](\d{1,2})[/-](\d{2,4})[:\s]*(?:à|avant)[:\s]*(\d{1,2})[:hH.](\d{2})`), kind: numericDateTime, defaultMinute: priorityTierDefaultMinute},
			{re: regexp.MustCompile(`(?i)remise[:\s]+(?:des[:\s]+)?(?:offres?|plis?)[:\s]*:?\s*(\d{1,2})[/-](\d{1,2})[/-](\d{2,4})[:\s]*(?:à|avant)[:\s]*(\d{1,2})[:hH.](\d{2})`), kind: numericDateTime, defaultMinute: priorityTierDefaultMinute},
			{re: regexp.MustCompile(`(?i)(?:d[ée]p[ôo]t[:\s]+(?:des[:\s]+)?(?:offres?|plis?)[:\s]+(?:le|au|avant|au[:\s]+plus[:\s]+tard)[:\s]+)?(\d{1,2})[/-](\d{1,2})[/-](\d{2,4})[:\s]*(?:à|avant)[:\s]*(\d{1,2})[:hH.](\d{0,2})`), kind: numericDateTime, defaultMinute: priorityTierDefaultMinute},
			{re: regexp.MustCompile(`(?i)date[:\s]+limite[:\s]+(?:de[:\s]+)?(?:remise|d[ée]p[ôo]t)[:\s]+(?:des[:\s]+)?(?:offres?|plis?)[:\s]*:?\s*(\d{1,2})[/-](\d{1,2})[/-](\d{2,4})[:\s]*(?:à|avant)[:\s]*(\d{1,2})[:hH.](\d{2})`), kind: numericDateTime, defaultMinute: priorityTierDefaultMinute},
		},
	},
	{
		// Looser anchoring; includes the French month-name shape with an
		// optional leading weekday.
		name: "general date+time",
		patterns: []deadlinePattern{
			{re: regexp.MustCompile(`(?i)(?:(?:lundi|mardi|mercredi|jeudi|vendredi|samedi|dimanche)[\s,]+)?(\d{1,2})[\s,]+(janvier|f[ée]vrier|fevrier|mars|avril|mai|juin|juillet|ao[ûu]t|aout|septembre|octobre|novembre|d[ée]cembre|decembre)[\s,]+(\d{4})[\s,]*[àa]?\s*(\d{1,2})[:hH.](\d{2})`), kind: monthNameDateTime},
			{re: regexp.MustCompile(`(?i)(?:date[:\s]+limite[:\s]+(?:de[:\s]+)?(?:r[ée]ception|d[ée]p[ôo]t|remise)[:\s]+(?:des[:\s]+)?(?:offres?|plis?)[:\s]+)?(\d{1,2})[/-](\d{1,2})[/-](\d{2,4})[:\s]*(?:à|avant|avant\s+le)[:\s]*(\d{1,2})[hH:.]?(\d{0,2})`), kind: numericDateTime, defaultMinute: generalTierDefaultMinute},
			{re: regexp.MustCompile(`(?i)(?:r[ée]ception[:\s]+(?:des[:\s]+)?(?:offres?|plis?)[:\s]+(?:le|au|avant)[:\s]+)?(\d{1,2})[/-](\d{1,2})[/-](\d{2,4})[:\s]*(?:à|avant)[:\s]*(\d{1,2})[hH:.]?(\d{0,2})`), kind: numericDateTime, defaultMinute: generalTierDefaultMinute},
			{re: regexp.MustCompile(`(?i)(?:date[:\s]+limite[:\s]*:?[:\s]*)?(\d{1,2})[/-](\d{1,2})[/-](\d{2,4})[:\s]+(\d{1,2})[hH:.](\d{2})`), kind: numericDateTime, defaultMinute: generalTierDefaultMinute},
		},
	},
	{
		name: "priority date-only",
		patterns: []deadlinePattern{
			{re: regexp.MustCompile(`(?i)remise[:\s]+(?:des[:\s]+)?(?:offres?|plis?)[:\s]+(?:le|au|avant)[:\s]+(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`), kind: dateOnly},
			{re: regexp.MustCompile(`(?i)d[ée]p[ôo]t[:\s]+(?:des[:\s]+)?(?:offres?|plis?)[:\s]+(?:avant|le|au)[:\s]+(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`), kind: dateOnly},
			{re: regexp.MustCompile(`(?i)date[:\s]+limite[:\s]+(?:de[:\s]+)?(?:remise|d[ée]p[ôo]t)[:\s]+(?:des[:\s]+)?(?:offres?|plis?)[:\s]+(?:le|au|avant)[:\s]+(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`), kind: dateOnly},
		},
	},
	{
		name: "general date-only",
		patterns: []deadlinePattern{
			{re: regexp.MustCompile(`(?i)(?:date[:\s]+limite[:\s]+(?:de[:\s]+)?(?:r[ée]ception|d[ée]p[ôo]t|remise)[:\s]+(?:des[:\s]+)?(?:offres?|plis?)[:\s]+)?(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`), kind: dateOnly},
			{re: regexp.MustCompile(`(?i)(?:r[ée]ception[:\s]+(?:des[:\s]+)?(?:offres?|plis?)[:\s]+(?:le|au|avant)[:\s]+)?(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`), kind: dateOnly},
			{re: regexp.MustCompile(`(?i)d[ée]p[ôo]t[:\s]+(?:avant|le|au)[:\s]+(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`), kind: dateOnly},
			{re: regexp.MustCompile(`(?i)(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})[:\s]+(?:date[:\s]+limite|d[ée]p[ôo]t|r[ée]ception)`), kind: dateOnly},
		},
	},
}

// Deadline recovers the submission cutoff from free-form French prose.
// Scopes are tried outermost: the head window first, then the whole text,
// each scope running all tiers in priority order. First parseable match
// wins. Returns nil when nothing matches anywhere.
func Deadline(text string) *models.Deadline {
	if text == "" {
		return nil
	}

	scopes := []string{headWindow(text, deadlineHeadWindow), text}
	for _, scope := range scopes {
		for _, tier := range deadlineTiers {
			for _, p := range tier.patterns {
				m := p.re.FindStringSubmatch(scope)
				if m == nil {
					continue
				}
				if d := parseDeadlineMatch(p, m); d != nil {
					return d
				}
				// Malformed capture: fall through to the next pattern.
			}
		}
	}
	return nil
}

// parseDeadlineMatch turns a pattern match into a Deadline, or nil when
// the captured date is impossible (month 13, February 30th). Out-of-range
// hours and minutes are clamped rather than rejected.
func parseDeadlineMatch(p deadlinePattern, m []string) *models.Deadline {
	switch p.kind {
	case numericDateTime:
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year := expandYear(m[3])
		hour, _ := strconv.Atoi(m[4])
		minute := p.defaultMinute
		if len(m) > 5 && m[5] != "" {
			minute, _ = strconv.Atoi(m[5])
		}
		return buildDeadline(year, time.Month(month), day, hour, minute, true)

	case monthNameDateTime:
		day, _ := strconv.Atoi(m[1])
		month, ok := frenchMonths[strings.ToLower(m[2])]
		if !ok {
			return nil
		}
		year, _ := strconv.Atoi(m[3])
		hour, _ := strconv.Atoi(m[4])
		minute, _ := strconv.Atoi(m[5])
		return buildDeadline(year, month, day, hour, minute, true)

	case dateOnly:
		day, month, year, ok := splitNumericDate(m[1])
		if !ok {
			return nil
		}
		return buildDeadline(year, time.Month(month), day, endOfDayHour, endOfDayMinute, false)
	}
	return nil
}

// buildDeadline clamps the time of day, then validates the date by
// round-tripping through time.Date: a normalized shift (February 30th
// becoming March) means the capture was not a real date.
func buildDeadline(year int, month time.Month, day, hour, minute int, timeKnown bool) *models.Deadline {
	if hour > 23 {
		hour = 23
	}
	if minute > 59 {
		minute = 59
	}
	if month < time.January || month > time.December || day < 1 || day > 31 {
		return nil
	}
	at := time.Date(year, month, day, hour, minute, 0, 0, time.UTC)
	if at.Year() != year || at.Month() != month || at.Day() != day {
		return nil
	}
	return &models.Deadline{At: at, TimeKnown: timeKnown}
}

// splitNumericDate parses "d/m/y" or "d-m-y" with two-digit year expansion.
func splitNumericDate(s string) (day, month, year int, ok bool) {
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == '/' || r == '-' })
	if len(parts) != 3 {
		return 0, 0, 0, false
	}
	day, err1 := strconv.Atoi(parts[0])
	month, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return 0, 0, 0, false
	}
	year = expandYear(parts[2])
	return day, month, year, true
}

// expandYear widens two-digit years into the 2000s: "24" becomes 2024.
func expandYear(s string) int {
	year, _ := strconv.Atoi(s)
	if len(s) != 4 && year < 100 {
		year += 2000
	}
	return year
}
