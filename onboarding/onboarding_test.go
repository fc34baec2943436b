package onboarding

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHappyPath(t *testing.T) {
	c := NewContext()

	c, done := Apply(c, "1")
	assert.False(t, done)
	assert.Equal(t, StepPlatform, c.Step)
	assert.Equal(t, LevelBeginner, c.Responses[KeyCreatorLevel])

	c, _ = Apply(c, "Twitch")
	assert.Equal(t, StepNiche, c.Step)
	assert.Equal(t, []string{PlatformTwitch}, c.Responses[KeyPreferredPlatforms])

	c, _ = Apply(c, "gaming")
	assert.Equal(t, StepEquipment, c.Step)
	assert.Equal(t, "gaming", c.Responses[KeyContentNiche])

	c, _ = Apply(c, "a phone and a ring light")
	c, _ = Apply(c, "grow to 1k subscribers")
	assert.Equal(t, StepChallenges, c.Step)

	c, done = Apply(c, "finding time to edit")
	assert.True(t, done)
	assert.Equal(t, StepComplete, c.Step)
	assert.Len(t, c.Responses, 6)

	after, done := Apply(c, "anything else?")
	assert.False(t, done)
	assert.Empty(t, cmp.Diff(c, after))
}

func TestWelcomeLevels(t *testing.T) {
	cases := map[string]string{
		"2":                              LevelIntermediate,
		"I'd say advanced":               LevelAdvanced,
		"three":                          LevelAdvanced,
		"I'm a total beginner":           LevelBeginner,
		"I have some experience now":     LevelIntermediate,
		"I'm a pro, never had a manager": LevelAdvanced,
		"not new, pro":                   LevelAdvanced,
		"new-ish, two years in":          LevelIntermediate,
	}
	for reply, want := range cases {
		next, fields := Transition(StepWelcome, reply)
		assert.Equal(t, StepPlatform, next, reply)
		assert.Equal(t, want, fields[KeyCreatorLevel], reply)
	}
}

func TestUnparseableWelcomeStays(t *testing.T) {
	for _, reply := range []string{"hello there", "", "   ", "10 years of editing"} {
		next, fields := Transition(StepWelcome, reply)
		assert.Equal(t, StepWelcome, next, reply)
		assert.Nil(t, fields, reply)
	}
}

func TestPlatformParsing(t *testing.T) {
	_, fields := Transition(StepPlatform, "all of them honestly")
	assert.Equal(t, []string{PlatformYouTube, PlatformTikTok, PlatformTwitch}, fields[KeyPreferredPlatforms])

	_, fields = Transition(StepPlatform, "YouTube and tik tok")
	assert.Equal(t, []string{PlatformYouTube, PlatformTikTok}, fields[KeyPreferredPlatforms])

	next, fields := Transition(StepPlatform, "mostly podcasts")
	assert.Equal(t, StepNiche, next)
	assert.Equal(t, []string{PlatformYouTube, PlatformTikTok, PlatformTwitch}, fields[KeyPreferredPlatforms])
	assert.Equal(t, "mostly podcasts", fields[KeyPlatformNotes])
}

func TestStepOnlyMovesForward(t *testing.T) {
	replies := []string{"1", "maybe", "", "twitch", "cooking", "???", "a webcam", "grow", "time", "3", "all"}
	rng := rand.New(rand.NewSource(42))

	for run := 0; run < 200; run++ {
		c := NewContext()
		seen := map[string]bool{}
		for i := 0; i < 15; i++ {
			before := c
			c, _ = Apply(c, replies[rng.Intn(len(replies))])

			delta := c.Step.Index() - before.Step.Index()
			require.True(t, delta == 0 || delta == 1, "step moved from %s to %s", before.Step, c.Step)
			for k := range before.Responses {
				require.Contains(t, c.Responses, k)
			}
			if delta == 1 {
				require.False(t, seen[string(c.Step)], "step %s visited twice", c.Step)
				seen[string(c.Step)] = true
			}
		}
	}
}

func TestContextMapRoundTrip(t *testing.T) {
	c := NewContext()
	c, _ = Apply(c, "1")
	c, _ = Apply(c, "youtube")

	raw := c.Merge(map[string]any{"source": "landing"})
	assert.Equal(t, "landing", raw["source"])
	assert.True(t, IsOnboarding(raw))

	// Simulate a JSON round trip where string slices come back as []any.
	responses := raw["responses"].(map[string]any)
	responses[KeyPreferredPlatforms] = []any{"youtube"}

	back := FromMap(raw)
	if diff := cmp.Diff(c, back); diff != "" {
		t.Fatalf("context mismatch (-want +got):\n%s", diff)
	}
}

func TestFromMapIgnoresUnknownStep(t *testing.T) {
	c := FromMap(map[string]any{"type": TypeOnboarding, "step": "dance"})
	assert.Equal(t, StepWelcome, c.Step)
}

func TestBuildSystemPromptMarksAnsweredSteps(t *testing.T) {
	c := NewContext()
	c, _ = Apply(c, "1")
	c, _ = Apply(c, "i stream on twitch")

	prompt := BuildSystemPrompt(c)
	assert.Contains(t, prompt, "Experience level: ALREADY ANSWERED (beginner)")
	assert.Contains(t, prompt, "Platforms: ALREADY ANSWERED (twitch)")
	assert.Contains(t, prompt, "Content niche: ASK NOW")
	assert.Equal(t, 1, strings.Count(prompt, "ASK NOW"))
	assert.Equal(t, 2, strings.Count(prompt, "ALREADY ANSWERED"))
}

func TestBuildSystemPromptComplete(t *testing.T) {
	c := NewContext()
	for _, reply := range []string{"2", "all", "tech reviews", "dslr", "monetize", "consistency"} {
		c, _ = Apply(c, reply)
	}
	prompt := BuildSystemPrompt(c)
	assert.Equal(t, 6, strings.Count(prompt, "ALREADY ANSWERED"))
	assert.NotContains(t, prompt, "ASK NOW")
	assert.Contains(t, prompt, "interview is complete")
}

func TestRepeatsAnsweredQuestion(t *testing.T) {
	c := NewContext()
	c, _ = Apply(c, "1")
	c, _ = Apply(c, "twitch")

	step, ok := RepeatsAnsweredQuestion(c, "Awesome! Which platforms do you use most?")
	assert.True(t, ok)
	assert.Equal(t, StepPlatform, step)

	_, ok = RepeatsAnsweredQuestion(c, "Since you stream on Twitch, what kind of content do you make?")
	assert.False(t, ok, "niche is not answered yet")

	_, ok = RepeatsAnsweredQuestion(c, "You told me which platforms you use.")
	assert.False(t, ok, "statements are not questions")
}
