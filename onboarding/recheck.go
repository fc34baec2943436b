package onboarding

import (
	"regexp"
	"strings"
)

var questionCues = map[Step]*regexp.Regexp{
	StepWelcome:    regexp.MustCompile(`(?i)(experience (level|as a creator)|beginner.*intermediate|how long have you been creating)`),
	StepPlatform:   regexp.MustCompile(`(?i)(which|what) (platforms?|sites?)|where do you (post|create|stream)`),
	StepNiche:      regexp.MustCompile(`(?i)(what|which) (kind|type|sort) of content|what('s| is) your niche|what (topics?|niche)`),
	StepEquipment:  regexp.MustCompile(`(?i)(what|which) (equipment|gear|setup|camera|mic)|what are you (recording|filming|streaming) with`),
	StepGoals:      regexp.MustCompile(`(?i)what are your (main |biggest )?goals|what do you (want|hope) to achieve`),
	StepChallenges: regexp.MustCompile(`(?i)(biggest|main) challenges?|what('s| is) holding you back|what do you struggle with`),
}

var sentenceEnd = regexp.MustCompile(`[.!?\n]+`)

// RepeatsAnsweredQuestion reports the first already-answered step that reply
// asks about again. Only sentences phrased as questions are considered.
func RepeatsAnsweredQuestion(c Context, reply string) (Step, bool) {
	for _, q := range questions(reply) {
		for _, step := range steps[:len(steps)-1] {
			if !c.Answered(step) {
				continue
			}
			if questionCues[step].MatchString(q) {
				return step, true
			}
		}
	}
	return "", false
}

func questions(text string) []string {
	var out []string
	idx := sentenceEnd.FindAllStringIndex(text, -1)
	start := 0
	for _, m := range idx {
		sentence := strings.TrimSpace(text[start:m[0]])
		if strings.Contains(text[m[0]:m[1]], "?") && sentence != "" {
			out = append(out, sentence)
		}
		start = m[1]
	}
	return out
}
