package onboarding

import (
	"fmt"
	"strings"
)

var stepLabels = map[Step]string{
	StepWelcome:    "Experience level",
	StepPlatform:   "Platforms",
	StepNiche:      "Content niche",
	StepEquipment:  "Equipment",
	StepGoals:      "Goals",
	StepChallenges: "Challenges",
}

var stepQuestions = map[Step]string{
	StepWelcome:    "How would you describe your experience as a creator: 1) beginner, 2) intermediate or 3) advanced?",
	StepPlatform:   "Which platforms do you create for: YouTube, TikTok, Twitch, or a mix?",
	StepNiche:      "What kind of content do you make, or want to make?",
	StepEquipment:  "What equipment are you working with right now?",
	StepGoals:      "What are your main goals for the next few months?",
	StepChallenges: "What is the biggest challenge holding you back?",
}

// Question is the scripted question for step, empty for complete.
func Question(step Step) string {
	return stepQuestions[step]
}

const onboardingPersona = `You are the onboarding guide for a creator growth app. You are warm, brief and practical.
Ask exactly one question per reply and keep replies under 80 words.`

// BuildSystemPrompt renders the onboarding system prompt for the state after
// the latest transition. Every answered step is listed as ALREADY ANSWERED so
// the model never asks it again.
func BuildSystemPrompt(c Context) string {
	var b strings.Builder
	b.WriteString(onboardingPersona)
	b.WriteString("\n\nInterview progress:\n")

	for _, step := range steps[:len(steps)-1] {
		label := stepLabels[step]
		switch {
		case c.Answered(step):
			fmt.Fprintf(&b, "- %s: ALREADY ANSWERED (%s). Do not ask about this again.\n", label, describe(c, step))
		case step == c.Step:
			fmt.Fprintf(&b, "- %s: ASK NOW. Question: %q\n", label, stepQuestions[step])
		default:
			fmt.Fprintf(&b, "- %s: later\n", label)
		}
	}

	b.WriteString("\n")
	switch c.Step {
	case StepComplete:
		b.WriteString("The interview is complete. Thank the creator, summarise what you learned in two sentences ")
		b.WriteString("and suggest one concrete first step. Do not ask any of the interview questions.")
	case StepWelcome:
		b.WriteString("Greet the creator and ask the experience question. If their last reply did not say ")
		b.WriteString("beginner, intermediate or advanced, gently ask again with the numbered options.")
	default:
		fmt.Fprintf(&b, "Briefly acknowledge the last answer, then ask only the %s question.", strings.ToLower(stepLabels[c.Step]))
	}
	return b.String()
}

func describe(c Context, step Step) string {
	switch step {
	case StepPlatform:
		platforms := strings.Join(c.Responses.Strings(KeyPreferredPlatforms), ", ")
		if notes := c.Responses.String(KeyPlatformNotes); notes != "" {
			return fmt.Sprintf("%s; they said: %q", platforms, notes)
		}
		return platforms
	default:
		return c.Responses.String(answerKey[step])
	}
}
