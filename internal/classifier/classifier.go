package classifier

import (
	"fmt"
	"regexp"
	"strings"
)

// QueryType is the intent category of a query
type QueryType string

const (
	Date         QueryType = "date"
	Person       QueryType = "person"
	Organization QueryType = "organization"
	Amount       QueryType = "amount"
	General      QueryType = "general"
	Multi        QueryType = "multi"
)

// scored lists the categories that receive scores, in tie-break order
var scored = []QueryType{Date, Person, Organization, Amount, General}

const (
	keywordWeight = 0.15
	patternWeight = 0.3
	emailWeight   = 0.25
	generalBase   = 0.1
	highScore     = 0.3
	maxScore      = 1.0
)

var keywords = map[QueryType][]string{
	Date: {
		"when", "date", "time", "day", "month", "year", "deadline",
		"schedule", "calendar", "meeting", "january", "february",
		"march", "april", "may", "june", "july", "august",
		"september", "october", "november", "december", "monday",
		"tuesday", "wednesday", "thursday", "friday", "saturday",
		"sunday", "yesterday", "today", "tomorrow", "week", "quarter",
	},
	Person: {
		"who", "person", "people", "name", "employee", "manager",
		"director", "ceo", "cfo", "president", "executive", "staff",
		"team", "contact", "author", "sender", "recipient", "mr",
		"mrs", "ms", "dr", "sent by", "from", "to",
	},
	Organization: {
		"company", "organization", "corporation", "firm", "business",
		"enterprise", "inc", "llc", "ltd", "corp", "agency",
		"department", "institution", "foundation", "bank", "fund",
	},
	Amount: {
		"how much", "amount", "price", "cost", "value", "total",
		"sum", "payment", "invoice", "dollar", "euro", "million",
		"billion", "thousand", "revenue", "profit", "expense",
	},
}

var patterns = map[QueryType][]*regexp.Regexp{
	Date: {
		regexp.MustCompile(`\d{1,2}[/-]\d{1,2}[/-]\d{2,4}`),
		regexp.MustCompile(`\d{4}[/-]\d{1,2}[/-]\d{1,2}`),
		regexp.MustCompile(`(?i)(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)\w*\s+\d{1,2}`),
	},
	Amount: {
		regexp.MustCompile(`[$€£¥]\s*[\d,]+`),
		regexp.MustCompile(`(?i)\d+\s*(usd|eur|gbp|dollars?|euros?)`),
		regexp.MustCompile(`(?i)\d+\s*(million|billion|thousand|[MBK])\b`),
		regexp.MustCompile(`\d+(\.\d{2})?\s*%`),
	},
}

var emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

// Result is the outcome of classifying one query
type Result struct {
	Primary    QueryType             `json:"primary_type"`
	Scores     map[QueryType]float64 `json:"scores"`
	Confidence float64               `json:"confidence"`
	Signals    []string              `json:"signals"`
}

// Classify scores a query against every category. Keywords match as
// lower-cased substrings, so short ones like "to" also match inside words.
func Classify(query string) Result {
	lower := strings.ToLower(query)
	scores := map[QueryType]float64{General: generalBase}
	signals := []string{}

	for _, qt := range scored {
		for _, kw := range keywords[qt] {
			if strings.Contains(lower, kw) {
				scores[qt] += keywordWeight
				signals = append(signals, fmt.Sprintf("%s_kw:%s", signalName(qt), kw))
			}
		}
	}

	for _, qt := range scored {
		for _, re := range patterns[qt] {
			if n := len(re.FindAllStringIndex(query, -1)); n > 0 {
				scores[qt] += patternWeight * float64(n)
				signals = append(signals, fmt.Sprintf("%s_pattern:%d", signalName(qt), n))
			}
		}
	}

	if n := len(emailPattern.FindAllStringIndex(query, -1)); n > 0 {
		scores[Person] += emailWeight * float64(n)
		signals = append(signals, fmt.Sprintf("email:%d", n))
	}

	result := Result{Primary: General, Scores: scores, Signals: signals}
	high := 0
	for _, qt := range scored {
		s := min(scores[qt], maxScore)
		scores[qt] = s

		if s > result.Confidence {
			result.Confidence = s
			result.Primary = qt
		}
		if s >= highScore {
			high++
		}
	}

	if high > 1 {
		result.Primary = Multi
	}
	return result
}

// RelevantTypes lists the specific categories scoring at least threshold
func RelevantTypes(query string, threshold float64) []QueryType {
	result := Classify(query)

	var out []QueryType
	for _, qt := range scored {
		if qt != General && result.Scores[qt] >= threshold {
			out = append(out, qt)
		}
	}
	return out
}

func signalName(qt QueryType) string {
	if qt == Organization {
		return "org"
	}
	return string(qt)
}
