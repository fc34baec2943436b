package onboarding

const TypeOnboarding = "onboarding"

const (
	fieldType      = "type"
	fieldStep      = "step"
	fieldResponses = "responses"
)

// Context is the onboarding slice of a conversation's context map.
type Context struct {
	Type      string
	Step      Step
	Responses Responses
}

func NewContext() Context {
	return Context{Type: TypeOnboarding, Step: StepWelcome, Responses: Responses{}}
}

// IsOnboarding reports whether a raw conversation context drives the interview.
func IsOnboarding(raw map[string]any) bool {
	t, _ := raw[fieldType].(string)
	return t == TypeOnboarding
}

// FromMap reads a context map that may have round-tripped through JSON.
func FromMap(raw map[string]any) Context {
	c := NewContext()
	if t, ok := raw[fieldType].(string); ok {
		c.Type = t
	}
	if s, ok := raw[fieldStep].(string); ok && Step(s).Valid() {
		c.Step = Step(s)
	}
	if r, ok := raw[fieldResponses].(map[string]any); ok {
		for k, v := range r {
			c.Responses[k] = normalize(v)
		}
	}
	if r, ok := raw[fieldResponses].(Responses); ok {
		for k, v := range r {
			c.Responses[k] = normalize(v)
		}
	}
	return c
}

// Merge writes the onboarding fields into raw, keeping any other keys.
func (c Context) Merge(raw map[string]any) map[string]any {
	out := make(map[string]any, len(raw)+3)
	for k, v := range raw {
		out[k] = v
	}
	responses := make(map[string]any, len(c.Responses))
	for k, v := range c.Responses {
		responses[k] = v
	}
	out[fieldType] = c.Type
	out[fieldStep] = string(c.Step)
	out[fieldResponses] = responses
	return out
}

func normalize(v any) any {
	list, ok := v.([]any)
	if !ok {
		return v
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Answered reports whether step already has a response.
func (c Context) Answered(step Step) bool {
	key, ok := answerKey[step]
	if !ok {
		return false
	}
	_, exists := c.Responses[key]
	return exists
}

// Apply runs Transition for the current step. Responses are only ever added
// and the step never moves backwards. The bool reports whether this reply
// finished the interview.
func Apply(c Context, text string) (Context, bool) {
	if c.Step == StepComplete {
		return c, false
	}

	next, fields := Transition(c.Step, text)
	if next.Index() < c.Step.Index() {
		next = c.Step
	}

	out := Context{Type: c.Type, Step: next, Responses: make(Responses, len(c.Responses)+len(fields))}
	for k, v := range c.Responses {
		out.Responses[k] = v
	}
	for k, v := range fields {
		if _, exists := out.Responses[k]; !exists {
			out.Responses[k] = v
		}
	}
	return out, next == StepComplete
}

// String returns a text response, empty when absent.
func (r Responses) String(key string) string {
	s, _ := r[key].(string)
	return s
}

// Strings returns a list response, nil when absent.
func (r Responses) Strings(key string) []string {
	switch v := r[key].(type) {
	case []string:
		return v
	case []any:
		return normalize(v).([]string)
	}
	return nil
}
