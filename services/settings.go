package services

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/lac-hong-legacy/creator_api/shared"
	"github.com/pelletier/go-toml/v2"
	log "github.com/sirupsen/logrus"
)

type BucketSettings struct {
	Capacity        int     `toml:"capacity"`
	RefillPerMinute float64 `toml:"refill_per_minute"`
}

// Settings holds the gamification tunables. Infrastructure stays in the
// environment.
type Settings struct {
	Timezone string `toml:"timezone"`

	Cascade struct {
		MaxDepth int `toml:"max_depth"`
	} `toml:"cascade"`

	Conversation struct {
		CacheSize     int     `toml:"cache_size"`
		CacheTTL      string  `toml:"cache_ttl"`
		HistoryWindow int     `toml:"history_window"`
		Temperature   float32 `toml:"temperature"`
		MaxTokens     int32   `toml:"max_tokens"`
	} `toml:"conversation"`

	Challenges struct {
		RepeatWindowDays int     `toml:"repeat_window_days"`
		Temperature      float32 `toml:"temperature"`
	} `toml:"challenges"`

	Leaderboard struct {
		DefaultLimit int `toml:"default_limit"`
		MaxLimit     int `toml:"max_limit"`
	} `toml:"leaderboard"`

	RateLimits map[string]BucketSettings `toml:"rate_limits"`
}

func DefaultSettings() *Settings {
	s := &Settings{Timezone: "UTC"}
	s.Cascade.MaxDepth = 8
	s.Conversation.CacheSize = 1024
	s.Conversation.CacheTTL = "24h"
	s.Conversation.HistoryWindow = 20
	s.Conversation.Temperature = 0.7
	s.Conversation.MaxTokens = 1024
	s.Challenges.RepeatWindowDays = 7
	s.Challenges.Temperature = 0.9
	s.Leaderboard.DefaultLimit = 50
	s.Leaderboard.MaxLimit = 100
	s.RateLimits = map[string]BucketSettings{
		BucketChat:        {Capacity: 20, RefillPerMinute: 10},
		BucketGeneration:  {Capacity: 10, RefillPerMinute: 2},
		BucketEmbedding:   {Capacity: 30, RefillPerMinute: 30},
		BucketAPIGeneral:  {Capacity: 120, RefillPerMinute: 60},
		BucketActivityAPI: {Capacity: 30, RefillPerMinute: 15},
	}
	return s
}

// LoadSettings decodes path over the defaults. A missing file is not an error.
func LoadSettings(path string) (*Settings, error) {
	s := DefaultSettings()
	file, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open settings: %w", err)
	}
	defer file.Close()

	if err := toml.NewDecoder(file).Decode(s); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}
	return s, nil
}

func (s *Settings) Location() *time.Location {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		log.WithField("timezone", s.Timezone).Warn("Unknown timezone, falling back to UTC")
		return time.UTC
	}
	return loc
}

func (s *Settings) ConversationCacheTTL() time.Duration {
	d, err := time.ParseDuration(s.Conversation.CacheTTL)
	if err != nil || d <= 0 {
		return 24 * time.Hour
	}
	return d
}

type SettingsService struct {
	context.DefaultService

	settings *Settings
	clock    shared.Clock
}

const SETTINGS_SVC = "settings_svc"

func (svc SettingsService) Id() string {
	return SETTINGS_SVC
}

func (svc *SettingsService) Configure(ctx *context.Context) error {
	path := os.Getenv("GAMIFICATION_CONFIG")
	if path == "" {
		path = "config/gamification.toml"
	}

	settings, err := LoadSettings(path)
	if err != nil {
		return err
	}
	if tz := os.Getenv("APP_TIMEZONE"); tz != "" {
		settings.Timezone = tz
	}
	svc.settings = settings
	svc.clock = shared.NewSystemClock(settings.Location())

	return svc.DefaultService.Configure(ctx)
}

func (svc *SettingsService) Start() error {
	return nil
}

func (svc *SettingsService) Settings() *Settings {
	return svc.settings
}

// Clock is shared by every service so that day boundaries agree.
func (svc *SettingsService) Clock() shared.Clock {
	return svc.clock
}
