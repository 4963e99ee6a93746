package filter

import (
	"strings"
	"unicode"

	"go-jobradar/internal/remoteok"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Criteria is an include/exclude keyword policy over a job's text fields.
//
// Matching is plain substring, not word-boundary: an exclude keyword like
// "lead" also hits inside "leadership". Accepted tradeoff for simplicity;
// swap this type out if token-aware matching is ever needed.
type Criteria struct {
	include      []string
	exclude      []string
	mustBeRemote bool
}

func NewCriteria(include, exclude []string, mustBeRemote bool) *Criteria {
	return &Criteria{
		include:      foldAll(include),
		exclude:      foldAll(exclude),
		mustBeRemote: mustBeRemote,
	}
}

// Matches reports whether the job passes the keyword policy: at least one
// include keyword present, no exclude keyword present, both checked against
// a single folded corpus of title, description, tags and company.
func (c *Criteria) Matches(job remoteok.Job) bool {
	// RemoteOK is remote-only by construction, so this gate is off by default
	if c.mustBeRemote && !job.Remote {
		return false
	}

	text := foldText(job.Position + " " + job.Description + " " + strings.Join(job.Tags, " ") + " " + job.Company)

	hasInclude := false
	for _, kw := range c.include {
		if strings.Contains(text, kw) {
			hasInclude = true
			break
		}
	}
	if !hasInclude {
		return false
	}

	for _, kw := range c.exclude {
		if strings.Contains(text, kw) {
			return false
		}
	}
	return true
}

// foldText lowercases and strips combining marks so "Sénior" and "senior"
// compare equal.
func foldText(str string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, str)
	return strings.ToLower(result)
}

func foldAll(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = foldText(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		out = append(out, kw)
	}
	return out
}
