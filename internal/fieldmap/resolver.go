// Package fieldmap maps trainer-defined intake form answers onto the fixed
// client schema. Matching is best-effort by construction: question labels
// are free text, so resolution works off an ordered rule table rather than
// a typed contract. The precedence order is load-bearing; reordering rules
// changes which clients count as complete.
package fieldmap

import (
	"sort"
	"strconv"
	"strings"

	"coachcrm/internal/models"
)

// Field names the client schema targets a form answer can resolve to.
type Field string

const (
	FieldFullName Field = "fullName"
	FieldPhone    Field = "phone"
	FieldEmail    Field = "email"
	FieldGender   Field = "gender"
	FieldAge      Field = "age"
	FieldSource   Field = "source"
)

// CoreFields lists every field the completeness evaluator requires.
var CoreFields = []Field{FieldFullName, FieldPhone, FieldEmail, FieldGender, FieldAge, FieldSource}

// Submission is one filled form: its question declarations (for label
// matching and answer ordering) and the submitted answers keyed by
// question id.
type Submission struct {
	Questions []models.FormQuestion
	Answers   map[string]string
}

// rule pairs a target field with a label predicate and a value-shape
// predicate. Rules are consulted in table order per field.
type rule struct {
	field         Field
	labelKeywords []string
	valueMatch    func(string) bool
}

// The rule table. Label keywords are matched as substrings of the
// lower-cased question label; value predicates are the shape fallback used
// when no label matches.
var rules = []rule{
	{FieldEmail, []string{"email"}, looksLikeEmail},
	{FieldPhone, []string{"phone", "mobile"}, looksLikePhone},
	{FieldFullName, []string{"name", "full"}, looksLikeName},
	{FieldAge, []string{"age", "years"}, looksLikeAge},
	{FieldSource, []string{"source", "hear", "referral"}, nil},
	{FieldGender, []string{"gender", "sex"}, isGenderToken},
}

func ruleFor(field Field) *rule {
	for i := range rules {
		if rules[i].field == field {
			return &rules[i]
		}
	}
	return nil
}

// Resolve produces the best available value for field. The directly
// submitted client value wins when non-empty, except a fullName that is
// literally a gender token (a known data-entry collision with gender
// questions) which falls through to the form. Submissions are consulted in
// the order given; pass them most-recent-first and resolution stops at the
// first one that yields a value.
//
// Age keeps the legacy presence check: any non-empty string counts as
// provided, whitespace included, and is stored untouched.
func Resolve(field Field, direct string, history []Submission) string {
	if field != FieldAge {
		direct = strings.TrimSpace(direct)
	}
	if direct != "" && !(field == FieldFullName && isGenderToken(direct)) {
		return direct
	}
	for _, sub := range history {
		if v := resolveFromSubmission(field, sub); v != "" {
			return v
		}
	}
	return ""
}

func resolveFromSubmission(field Field, sub Submission) string {
	r := ruleFor(field)
	if r == nil {
		return ""
	}

	// Label pass: first matching question with a non-empty answer wins.
	for _, question := range sub.Questions {
		label := strings.ToLower(question.Label)
		for _, keyword := range r.labelKeywords {
			if strings.Contains(label, keyword) {
				if answer := strings.TrimSpace(sub.Answers[question.ID]); answer != "" {
					return answer
				}
				break
			}
		}
	}

	// Shape pass: first answer whose shape fits the field.
	if r.valueMatch == nil {
		return ""
	}
	for _, answer := range orderedAnswers(sub) {
		if r.valueMatch(answer) {
			return answer
		}
	}
	return ""
}

// orderedAnswers returns answer values in question declaration order, with
// answers to undeclared question ids appended in key order so the scan
// stays deterministic.
func orderedAnswers(sub Submission) []string {
	seen := make(map[string]bool, len(sub.Questions))
	var out []string
	for _, question := range sub.Questions {
		seen[question.ID] = true
		if answer := strings.TrimSpace(sub.Answers[question.ID]); answer != "" {
			out = append(out, answer)
		}
	}
	var leftover []string
	for id := range sub.Answers {
		if !seen[id] {
			leftover = append(leftover, id)
		}
	}
	sort.Strings(leftover)
	for _, id := range leftover {
		if answer := strings.TrimSpace(sub.Answers[id]); answer != "" {
			out = append(out, answer)
		}
	}
	return out
}

var sourceTokens = map[string]bool{
	"instagram": true,
	"facebook":  true,
	"google":    true,
	"referral":  true,
	"friend":    true,
}

func isGenderToken(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "male", "female", "other":
		return true
	}
	return false
}

func looksLikeEmail(v string) bool {
	return strings.Contains(v, "@")
}

func looksLikePhone(v string) bool {
	if v == "" {
		return false
	}
	digits := 0
	for _, r := range v {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '+' || r == ' ' || r == '-':
		default:
			return false
		}
	}
	return digits >= 5
}

func looksLikeName(v string) bool {
	if len(v) <= 1 || strings.Contains(v, "@") {
		return false
	}
	if _, err := strconv.ParseFloat(v, 64); err == nil {
		return false
	}
	if isGenderToken(v) || sourceTokens[strings.ToLower(v)] {
		return false
	}
	return true
}

func looksLikeAge(v string) bool {
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return false
	}
	return n > 0 && n < 120
}
