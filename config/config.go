package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

type Config struct {
	Theme     ThemeConfig   `toml:"theme"`
	Workspace WorkspaceInfo `toml:"workspace"`
	Server    ServerConfig  `toml:"server"`
	Polling   PollingConfig `toml:"polling"`
	Display   DisplayConfig `toml:"display"`
	Log       LogConfig     `toml:"log"`

	// GameID is the game to open at startup. It comes from the -game flag or
	// TROLLEY_GAME_ID and is never saved.
	GameID string `toml:"-" env:"TROLLEY_GAME_ID"`
}

type WorkspaceInfo struct {
	Name string `toml:"name"`
}

type ServerConfig struct {
	BaseURL   string `toml:"base_url,omitempty" env:"TROLLEY_BASE_URL"`
	APIPrefix string `toml:"api_prefix,omitempty" env:"TROLLEY_API_PREFIX"`
	TimeoutMS int    `toml:"timeout_ms,omitempty" env:"TROLLEY_TIMEOUT_MS"`
}

type PollingConfig struct {
	IntervalMS         int `toml:"interval_ms,omitempty"`
	AutoTickIntervalMS int `toml:"auto_tick_interval_ms,omitempty"`
	FeedLimit          int `toml:"feed_limit,omitempty"`
}

type DisplayConfig struct {
	NerdFonts    bool  `toml:"nerd_fonts,omitempty"`
	FillerCount  int   `toml:"filler_count,omitempty"`
	MaxArguments int   `toml:"max_arguments,omitempty"`
	MaxEvents    int   `toml:"max_events,omitempty"`
	ShowSidebar  *bool `toml:"show_sidebar,omitempty"`
}

type LogConfig struct {
	Level string `toml:"level,omitempty" env:"LOG_LEVEL"`
	File  string `toml:"file,omitempty" env:"LOG_FILE"`
}

type ThemeConfig struct {
	FG          string `toml:"fg,omitempty"`
	Accent      string `toml:"accent,omitempty"`
	Accent2     string `toml:"accent2,omitempty"`
	Muted       string `toml:"muted,omitempty"`
	Dim         string `toml:"dim,omitempty"`
	Error       string `toml:"error,omitempty"`
	StatusBarBG string `toml:"status_bar_bg,omitempty"`
	StatusBarFG string `toml:"status_bar_fg,omitempty"`
	CursorBG    string `toml:"cursor_bg,omitempty"`

	// Board
	Operator      string `toml:"operator,omitempty"`
	Majority      string `toml:"majority,omitempty"`
	Minority      string `toml:"minority,omitempty"`
	LostFill      string `toml:"lost_fill,omitempty"`
	LostText      string `toml:"lost_text,omitempty"`
	ArguedMarker  string `toml:"argued_marker,omitempty"`
	TrackNeutral  string `toml:"track_neutral,omitempty"`
	TrackMuted    string `toml:"track_muted,omitempty"`
	PhaseActiveFG string `toml:"phase_active_fg,omitempty"`
	PhaseActiveBG string `toml:"phase_active_bg,omitempty"`
	PhaseDoneFG   string `toml:"phase_done_fg,omitempty"`

	SpinnerFG         string `toml:"spinner_fg,omitempty"`
	SpinnerType       string `toml:"spinner_type,omitempty"`
	FeedbackSuccessFG string `toml:"feedback_success_fg,omitempty"`
	FeedbackSuccessBG string `toml:"feedback_success_bg,omitempty"`
	FeedbackWarningFG string `toml:"feedback_warning_fg,omitempty"`
	FeedbackWarningBG string `toml:"feedback_warning_bg,omitempty"`
	FeedbackErrorFG   string `toml:"feedback_error_fg,omitempty"`
	FeedbackErrorBG   string `toml:"feedback_error_bg,omitempty"`
}

// DefaultConfigPath returns ~/.config/trolleydash/config.toml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "trolleydash", "config.toml")
}

// Load reads a TOML config file. Environment overrides are not applied; see
// ApplyEnv.
func Load(path string) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	if strings.HasPrefix(cfg.Log.File, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			cfg.Log.File = filepath.Join(home, cfg.Log.File[2:])
		}
	}

	return cfg, nil
}

// ApplyEnv overlays TROLLEY_* and LOG_* environment variables. Unset
// variables leave the file values alone.
func ApplyEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("reading environment: %w", err)
	}
	return nil
}

// WorkspaceName returns the workspace name, or "TrolleyDash" as fallback.
func (c Config) WorkspaceName() string {
	if c.Workspace.Name != "" {
		return c.Workspace.Name
	}
	return "TrolleyDash"
}

// ResolvedBaseURL returns the server root, default http://localhost:8000.
func (c Config) ResolvedBaseURL() string {
	return strings.TrimRight(pick(c.Server.BaseURL, "http://localhost:8000"), "/")
}

// ResolvedAPIPrefix returns the API path prefix, default /api.
func (c Config) ResolvedAPIPrefix() string {
	return pick(c.Server.APIPrefix, "/api")
}

// ResolvedTimeout returns the per-request timeout, default 10s.
func (c Config) ResolvedTimeout() time.Duration {
	return millis(c.Server.TimeoutMS, 10*time.Second)
}

// ResolvedPollInterval returns the primary poll interval, default 2.5s.
func (c Config) ResolvedPollInterval() time.Duration {
	return millis(c.Polling.IntervalMS, 2500*time.Millisecond)
}

// ResolvedAutoTickInterval returns the filler auto-tick interval, default 4s.
func (c Config) ResolvedAutoTickInterval() time.Duration {
	return millis(c.Polling.AutoTickIntervalMS, 4*time.Second)
}

// ResolvedFeedLimit returns how many feed items to request, default 50.
func (c Config) ResolvedFeedLimit() int {
	if c.Polling.FeedLimit > 0 && c.Polling.FeedLimit <= 200 {
		return c.Polling.FeedLimit
	}
	return 50
}

// ResolvedFillerCount returns the initial add-filler count clamped to [1,5], default 2.
func (c Config) ResolvedFillerCount() int {
	if c.Display.FillerCount == 0 {
		return 2
	}
	return max(1, min(5, c.Display.FillerCount))
}

// ResolvedMaxArguments returns how many arguments the dialogue shows, default 50.
func (c Config) ResolvedMaxArguments() int {
	if c.Display.MaxArguments > 0 {
		return c.Display.MaxArguments
	}
	return 50
}

// ResolvedMaxEvents returns how many events the feed shows, default 25.
func (c Config) ResolvedMaxEvents() int {
	if c.Display.MaxEvents > 0 {
		return c.Display.MaxEvents
	}
	return 25
}

// ResolvedShowSidebar returns the configured show_sidebar or true as default.
func (c Config) ResolvedShowSidebar() bool {
	if c.Display.ShowSidebar != nil {
		return *c.Display.ShowSidebar
	}
	return true
}

func millis(v int, def time.Duration) time.Duration {
	if v > 0 {
		return time.Duration(v) * time.Millisecond
	}
	return def
}

// DefaultTheme returns the arena palette.
func DefaultTheme() ThemeConfig {
	return ThemeConfig{
		FG:          "#ffffff",
		Accent:      "#ffc799",
		Accent2:     "#99ffe4",
		Muted:       "#505050",
		Dim:         "#a0a0a0",
		Error:       "#ff8080",
		StatusBarBG: "#1a1a1a",
		StatusBarFG: "#a0a0a0",
		CursorBG:    "#2a2a2a",

		Operator:      "#7c3aed",
		Majority:      "#22c55e",
		Minority:      "#ef4444",
		LostFill:      "#475569",
		LostText:      "#94a3b8",
		ArguedMarker:  "#fbbf24",
		TrackNeutral:  "#4a4a6a",
		TrackMuted:    "#64748b",
		PhaseActiveFG: "#101010",
		PhaseActiveBG: "#ffc799",
		PhaseDoneFG:   "#99ffe4",

		SpinnerFG:         "#ffc799",
		SpinnerType:       "minidot",
		FeedbackSuccessFG: "#99ffe4",
		FeedbackSuccessBG: "#1a3a2a",
		FeedbackWarningFG: "#ffc799",
		FeedbackWarningBG: "#2a2215",
		FeedbackErrorFG:   "#ff8080",
		FeedbackErrorBG:   "#3a1a1a",
	}
}

// ResolvedTheme merges config theme with defaults for any unset fields.
func (c Config) ResolvedTheme() ThemeConfig {
	d := DefaultTheme()
	return ThemeConfig{
		FG:          pick(c.Theme.FG, d.FG),
		Accent:      pick(c.Theme.Accent, d.Accent),
		Accent2:     pick(c.Theme.Accent2, d.Accent2),
		Muted:       pick(c.Theme.Muted, d.Muted),
		Dim:         pick(c.Theme.Dim, d.Dim),
		Error:       pick(c.Theme.Error, d.Error),
		StatusBarBG: pick(c.Theme.StatusBarBG, d.StatusBarBG),
		StatusBarFG: pick(c.Theme.StatusBarFG, d.StatusBarFG),
		CursorBG:    pick(c.Theme.CursorBG, d.CursorBG),

		Operator:      pick(c.Theme.Operator, d.Operator),
		Majority:      pick(c.Theme.Majority, d.Majority),
		Minority:      pick(c.Theme.Minority, d.Minority),
		LostFill:      pick(c.Theme.LostFill, d.LostFill),
		LostText:      pick(c.Theme.LostText, d.LostText),
		ArguedMarker:  pick(c.Theme.ArguedMarker, d.ArguedMarker),
		TrackNeutral:  pick(c.Theme.TrackNeutral, d.TrackNeutral),
		TrackMuted:    pick(c.Theme.TrackMuted, d.TrackMuted),
		PhaseActiveFG: pick(c.Theme.PhaseActiveFG, d.PhaseActiveFG),
		PhaseActiveBG: pick(c.Theme.PhaseActiveBG, d.PhaseActiveBG),
		PhaseDoneFG:   pick(c.Theme.PhaseDoneFG, d.PhaseDoneFG),

		SpinnerFG:         pick(c.Theme.SpinnerFG, d.SpinnerFG),
		SpinnerType:       pick(c.Theme.SpinnerType, d.SpinnerType),
		FeedbackSuccessFG: pick(c.Theme.FeedbackSuccessFG, d.FeedbackSuccessFG),
		FeedbackSuccessBG: pick(c.Theme.FeedbackSuccessBG, d.FeedbackSuccessBG),
		FeedbackWarningFG: pick(c.Theme.FeedbackWarningFG, d.FeedbackWarningFG),
		FeedbackWarningBG: pick(c.Theme.FeedbackWarningBG, d.FeedbackWarningBG),
		FeedbackErrorFG:   pick(c.Theme.FeedbackErrorFG, d.FeedbackErrorFG),
		FeedbackErrorBG:   pick(c.Theme.FeedbackErrorBG, d.FeedbackErrorBG),
	}
}

func pick(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
