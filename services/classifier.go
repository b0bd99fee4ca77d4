package services

import (
	"regexp"
	"strings"
)

// QueryType is the classified category of a natural-language question.
type QueryType string

const (
	QueryFighterRecord QueryType = "fighter_record"
	QueryFighterStats  QueryType = "fighter_stats"
	QueryEvent         QueryType = "event_query"
	QueryRankings      QueryType = "rankings"
	QueryFighterFights QueryType = "fighter_fights"
	QueryUnknown       QueryType = "unknown"
)

// Intent is the typed result of classification: the matched query type plus
// whichever named capture groups the winning pattern produced. Groups never
// contains entries for captures that did not participate in the match, so
// callers look fields up instead of indexing blindly.
type Intent struct {
	Type   QueryType
	Groups map[string]string
}

// Group returns the named capture, or "" when the pattern didn't produce it.
func (i Intent) Group(name string) string {
	if i.Groups == nil {
		return ""
	}
	return i.Groups[name]
}

type intentRule struct {
	qtype QueryType
	re    *regexp.Regexp
}

// intentRules are evaluated top to bottom, first match wins. Ordering matters:
// question vocabulary overlaps ("record" vs "fight" vs "champion"), so the
// more specific categories sit above the looser ones.
var intentRules = []intentRule{
	// "What is Jon Jones's record?", "Khabib's win-loss record"
	{QueryFighterRecord, regexp.MustCompile(`(?i)\b(?:record|win[\s-]*loss)\b`)},

	// "When is the next UFC event?", "What was the last card?"
	// Bare noun phrases like "Upcoming UFC card" deliberately stay unknown:
	// an interrogative frame is required. Sits above the fights rule so
	// "most recent fight night" doesn't read as fight history.
	{QueryEvent, regexp.MustCompile(`(?i)\b(?:when|what|where)\b[^?]*?\b(?P<direction>next|upcoming|last|previous|latest|most\s+recent)\b[^?]*?\b(?:events?|cards?|fight\s+night)\b`)},

	// "Show Islam Makhachev's last 3 fights", "Pereira's fight history"
	{QueryFighterFights, regexp.MustCompile(`(?i)\b(?:last|latest|recent|previous)\s+(?P<count>\d+)?\s*fights?\b|\bfight\s+history\b`)},

	// "Lightweight rankings", "Who is the heavyweight champion?", "p4p list"
	{QueryRankings, regexp.MustCompile(`(?i)\b(?:rankings?|ranked|top\s+\d+|champions?|title\s+holder|p4p|pound[\s-]+for[\s-]+pound)\b`)},

	// "How tall is Jon Jones?", "What is Volkanovski's reach?"
	{QueryFighterStats, regexp.MustCompile(`(?i)\b(?:how\s+tall|how\s+old|height|reach|stance|age|nationality|stats|tale\s+of\s+the\s+tape)\b`)},
}

// Classify inspects a free-text question and returns the matching intent.
// It never fails: empty, punctuation-only and unmatched input all come back
// as QueryUnknown.
func Classify(question string) Intent {
	q := strings.TrimSpace(question)
	if q == "" {
		return Intent{Type: QueryUnknown}
	}

	for _, rule := range intentRules {
		m := rule.re.FindStringSubmatch(q)
		if m == nil {
			continue
		}
		groups := make(map[string]string)
		for i, name := range rule.re.SubexpNames() {
			if name == "" || i >= len(m) || m[i] == "" {
				continue
			}
			groups[name] = m[i]
		}
		return Intent{Type: rule.qtype, Groups: groups}
	}

	return Intent{Type: QueryUnknown}
}
