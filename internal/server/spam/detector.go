// Package spam scores incoming contact submissions and rate-limits the
// public endpoint. Scoring is heuristic: keyword hits, suspicious patterns,
// throwaway email domains and low-effort field values each add weight.
package spam

import (
	"regexp"
	"strings"

	"github.com/nichedigital/leaddesk/internal/server/models"
)

// LikelySpamThreshold is the score at or above which a submission is
// accepted silently but never stored.
const LikelySpamThreshold = 0.7

var spamKeywords = []string{
	"bitcoin", "cryptocurrency", "forex", "loan", "credit", "casino",
	"viagra", "cialis", "pharmacy", "weight loss", "make money",
	"work from home", "mlm", "pyramid", "investment opportunity",
	"guaranteed income", "free money", "click here", "limited time",
	"act now", "congratulations you won", "nigerian prince",
}

var suspiciousPatterns = []*regexp.Regexp{
	regexp.MustCompile(`https?://\S+`),
	regexp.MustCompile(`[A-Z]{5,}`),
	regexp.MustCompile(`!{3,}`),
	regexp.MustCompile(`[$£€¥₹]{2,}`),
	regexp.MustCompile(`\b\d{3}-\d{3}-\d{4}\b`),
}

var repeatedRunPattern = regexp.MustCompile(`(.)\1{4,}`)

var blacklistedDomains = map[string]struct{}{
	"tempmail.org":      {},
	"10minutemail.com":  {},
	"guerrillamail.com": {},
	"mailinator.com":    {},
	"throwaway.email":   {},
	"temp-mail.org":     {},
}

var throwawayNames = map[string]struct{}{
	"test": {}, "admin": {}, "user": {}, "name": {}, "asdf": {}, "qwerty": {},
}

var genericBusinessNames = map[string]struct{}{
	"test company": {}, "abc company": {}, "test": {}, "company": {},
}

// Detector computes spam scores. It has no state; the zero value is usable,
// but NewDetector keeps construction uniform with the rest of the services.
type Detector struct{}

func NewDetector() *Detector {
	return &Detector{}
}

// Score returns a spam score in [0,1] for the submission, together with the
// list of reasons that contributed to it. 0 means clean.
func (d *Detector) Score(sub *models.Submission) (float64, []string) {
	var score float64
	var reasons []string

	email := strings.ToLower(sub.Email)
	if at := strings.LastIndex(email, "@"); at >= 0 {
		domain := email[at+1:]
		if _, ok := blacklistedDomains[domain]; ok {
			score += 0.8
			reasons = append(reasons, "suspicious email domain: "+domain)
		}
	}

	combined := strings.ToLower(sub.Message + " " + sub.Name)

	keywordHits := 0
	for _, kw := range spamKeywords {
		if strings.Contains(combined, kw) {
			keywordHits++
			reasons = append(reasons, "contains spam keyword: "+kw)
		}
	}
	if keywordHits > 0 {
		score += min(float64(keywordHits)*0.2, 0.6)
	}

	// Patterns run against the raw text: the all-caps check is case
	// sensitive on purpose.
	rawCombined := sub.Message + " " + sub.Name
	patternHits := 0
	for _, p := range suspiciousPatterns {
		if p.MatchString(rawCombined) {
			patternHits++
			reasons = append(reasons, "suspicious pattern detected")
		}
	}
	if patternHits > 0 {
		score += min(float64(patternHits)*0.15, 0.4)
	}

	msgLen := len(strings.TrimSpace(sub.Message))
	if msgLen > 0 {
		if msgLen < 10 {
			score += 0.1
			reasons = append(reasons, "message too short")
		} else if msgLen > 1500 {
			score += 0.2
			reasons = append(reasons, "message too long")
		}
	}

	name := strings.TrimSpace(sub.Name)
	if len(name) < 2 {
		score += 0.3
		reasons = append(reasons, "invalid name length")
	} else if _, ok := throwawayNames[strings.ToLower(name)]; ok {
		score += 0.4
		reasons = append(reasons, "suspicious name")
	}
	if repeatedRunPattern.MatchString(name) {
		score += 0.3
		reasons = append(reasons, "repeated characters in name")
	}

	if business := strings.ToLower(sub.BusinessName); business != "" {
		if _, ok := genericBusinessNames[business]; ok {
			score += 0.2
			reasons = append(reasons, "generic business name")
		}
	}

	return min(score, 1.0), reasons
}

// LikelySpam reports whether a score crosses the silent-drop threshold.
func (d *Detector) LikelySpam(score float64) bool {
	return score >= LikelySpamThreshold
}
