package catalog

// Level is a row of the strictly increasing level table. Levels are derived
// from cumulative XP and never stored as the source of truth.
type Level struct {
	Number     int      `json:"level"`
	Title      string   `json:"title"`
	RequiredXP int64    `json:"required_xp"`
	Perks      []string `json:"perks,omitempty"`
	Glyph      string   `json:"badge"`
}

var levels = []Level{
	{Number: 1, Title: "Newcomer", RequiredXP: 0, Glyph: "🌱"},
	{Number: 2, Title: "Apprentice Creator", RequiredXP: 250, Perks: []string{"custom_profile_banner"}, Glyph: "🌿"},
	{Number: 3, Title: "Storyteller", RequiredXP: 600, Perks: []string{"scheduling_assistant"}, Glyph: "📝"},
	{Number: 4, Title: "Producer", RequiredXP: 1200, Glyph: "🎬"},
	{Number: 5, Title: "Rising Star", RequiredXP: 2000, Perks: []string{"analytics_lite"}, Glyph: "⭐"},
	{Number: 6, Title: "Trendsetter", RequiredXP: 3500, Glyph: "🔥"},
	{Number: 7, Title: "Influencer", RequiredXP: 5500, Perks: []string{"ai_script_doctor"}, Glyph: "📣"},
	{Number: 8, Title: "Visionary", RequiredXP: 8000, Glyph: "🔭"},
	{Number: 9, Title: "Luminary", RequiredXP: 11000, Perks: []string{"priority_queue"}, Glyph: "💡"},
	{Number: 10, Title: "Creator Elite", RequiredXP: 15000, Perks: []string{"elite_lounge"}, Glyph: "👑"},
	{Number: 11, Title: "Icon", RequiredXP: 20000, Glyph: "💎"},
	{Number: 12, Title: "Legend", RequiredXP: 27000, Perks: []string{"legend_showcase"}, Glyph: "🏆"},
}

func Levels() []Level {
	return append([]Level(nil), levels...)
}

// LevelFor returns the highest level whose threshold xp meets.
func LevelFor(xp int64) Level {
	for i := len(levels) - 1; i >= 0; i-- {
		if xp >= levels[i].RequiredXP {
			return levels[i]
		}
	}
	return levels[0]
}

// LevelByNumber returns the row for n, clamped to the table.
func LevelByNumber(n int) Level {
	if n < 1 {
		return levels[0]
	}
	if n > len(levels) {
		return levels[len(levels)-1]
	}
	return levels[n-1]
}

// NextLevel reports the level after current, if any.
func NextLevel(current Level) (Level, bool) {
	if current.Number >= len(levels) {
		return Level{}, false
	}
	return levels[current.Number], true
}

// LevelProgress is the integer percentage from the current level's threshold
// toward the next one, 100 at the top of the table.
func LevelProgress(xp int64) int {
	current := LevelFor(xp)
	next, ok := NextLevel(current)
	if !ok {
		return 100
	}
	span := next.RequiredXP - current.RequiredXP
	return int((xp - current.RequiredXP) * 100 / span)
}
