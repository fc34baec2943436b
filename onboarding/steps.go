// Package onboarding is the scripted creator interview. Everything here is
// pure: parsing a reply never calls out to text generation or storage.
package onboarding

import (
	"regexp"
	"strings"
)

type Step string

const (
	StepWelcome    Step = "welcome"
	StepPlatform   Step = "platform"
	StepNiche      Step = "niche"
	StepEquipment  Step = "equipment"
	StepGoals      Step = "goals"
	StepChallenges Step = "challenges"
	StepComplete   Step = "complete"
)

var steps = []Step{StepWelcome, StepPlatform, StepNiche, StepEquipment, StepGoals, StepChallenges, StepComplete}

// Steps returns the fixed interview order.
func Steps() []Step {
	return append([]Step(nil), steps...)
}

// Index is the step's position in the interview, or -1 for unknown steps.
func (s Step) Index() int {
	for i, st := range steps {
		if st == s {
			return i
		}
	}
	return -1
}

func (s Step) Valid() bool {
	return s.Index() >= 0
}

func (s Step) next() Step {
	i := s.Index()
	if i < 0 || i >= len(steps)-1 {
		return StepComplete
	}
	return steps[i+1]
}

const (
	KeyCreatorLevel       = "creatorLevel"
	KeyPreferredPlatforms = "preferredPlatforms"
	KeyPlatformNotes      = "platformNotes"
	KeyContentNiche       = "contentNiche"
	KeyEquipment          = "equipment"
	KeyGoals              = "goals"
	KeyChallenges         = "challenges"
)

// answerKey is the response key whose presence marks a step answered.
var answerKey = map[Step]string{
	StepWelcome:    KeyCreatorLevel,
	StepPlatform:   KeyPreferredPlatforms,
	StepNiche:      KeyContentNiche,
	StepEquipment:  KeyEquipment,
	StepGoals:      KeyGoals,
	StepChallenges: KeyChallenges,
}

const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"

	PlatformYouTube = "youtube"
	PlatformTikTok  = "tiktok"
	PlatformTwitch  = "twitch"
)

var allPlatforms = []string{PlatformYouTube, PlatformTikTok, PlatformTwitch}

var (
	beginnerCue     = regexp.MustCompile(`(?i)\b(1|one|beginner|newbie|new|just start(ing|ed)?|never)\b`)
	intermediateCue = regexp.MustCompile(`(?i)\b(2|two|intermediate|some experience|a while)\b`)
	advancedCue     = regexp.MustCompile(`(?i)\b(3|three|advanced|experienced|expert|pro|professional|full[- ]time)\b`)

	allPlatformsCue = regexp.MustCompile(`(?i)\b(all|multiple|variety|every|everything|several)\b`)
	platformCues    = []struct {
		name string
		re   *regexp.Regexp
	}{
		{PlatformYouTube, regexp.MustCompile(`(?i)\b(you ?tube|yt)\b`)},
		{PlatformTikTok, regexp.MustCompile(`(?i)\btik ?tok\b`)},
		{PlatformTwitch, regexp.MustCompile(`(?i)\btwitch\b`)},
	}
)

// Responses holds parsed answers keyed by the Key* constants.
type Responses map[string]any

// Transition parses text as the answer to step and returns the next step with
// the fields the answer produced. An unparseable answer returns step itself
// and no fields.
func Transition(step Step, text string) (Step, Responses) {
	text = strings.TrimSpace(text)
	if step == StepComplete || !step.Valid() || text == "" {
		return step, nil
	}

	switch step {
	case StepWelcome:
		level, ok := parseCreatorLevel(text)
		if !ok {
			return step, nil
		}
		return step.next(), Responses{KeyCreatorLevel: level}
	case StepPlatform:
		return step.next(), parsePlatforms(text)
	case StepNiche:
		return step.next(), Responses{KeyContentNiche: text}
	case StepEquipment:
		return step.next(), Responses{KeyEquipment: text}
	case StepGoals:
		return step.next(), Responses{KeyGoals: text}
	case StepChallenges:
		return step.next(), Responses{KeyChallenges: text}
	}
	return step, nil
}

// parseCreatorLevel checks the most experienced level first: beginner cues
// such as "never" or "new" also show up in replies from seasoned creators.
func parseCreatorLevel(text string) (string, bool) {
	switch {
	case advancedCue.MatchString(text):
		return LevelAdvanced, true
	case intermediateCue.MatchString(text):
		return LevelIntermediate, true
	case beginnerCue.MatchString(text):
		return LevelBeginner, true
	}
	return "", false
}

func parsePlatforms(text string) Responses {
	if allPlatformsCue.MatchString(text) {
		return Responses{KeyPreferredPlatforms: append([]string(nil), allPlatforms...)}
	}

	var found []string
	for _, cue := range platformCues {
		if cue.re.MatchString(text) {
			found = append(found, cue.name)
		}
	}
	if len(found) > 0 {
		return Responses{KeyPreferredPlatforms: found}
	}

	return Responses{
		KeyPreferredPlatforms: append([]string(nil), allPlatforms...),
		KeyPlatformNotes:      text,
	}
}
