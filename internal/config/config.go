package config

import (
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		Notebook
		Session
		Export
		Browser
	}

	Notebook struct {
		URL               string
		NavigationTimeout time.Duration // initial wait for the library sidebar
		AnnotationTimeout time.Duration // per-book wait after a click
		SettleDelay       time.Duration // render pause before capturing annotations
	}
	Session struct {
		Path string
	}
	Export struct {
		NotesDir      string
		HistoryDBPath string
	}
	Browser struct {
		Path string // alternate browser binary, empty = system default
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("kindle_notebook_url", DefaultNotebookURL)
	v.SetDefault("kindle_session_path", DefaultSessionPath)
	v.SetDefault("kindle_notes_dir", DefaultNotesDir)
	v.SetDefault("kindle_history_db", DefaultHistoryDBPath)
	v.SetDefault("kindle_browser_path", "")
	v.SetDefault("kindle_navigation_timeout", "30s")
	v.SetDefault("kindle_annotation_timeout", "15s")
	v.SetDefault("kindle_settle_delay", "1s")

	return &Config{
		Notebook: Notebook{
			URL:               v.GetString("KINDLE_NOTEBOOK_URL"),
			NavigationTimeout: v.GetDuration("KINDLE_NAVIGATION_TIMEOUT"),
			AnnotationTimeout: v.GetDuration("KINDLE_ANNOTATION_TIMEOUT"),
			SettleDelay:       v.GetDuration("KINDLE_SETTLE_DELAY"),
		},
		Session: Session{
			Path: v.GetString("KINDLE_SESSION_PATH"),
		},
		Export: Export{
			NotesDir:      v.GetString("KINDLE_NOTES_DIR"),
			HistoryDBPath: v.GetString("KINDLE_HISTORY_DB"),
		},
		Browser: Browser{
			Path: v.GetString("KINDLE_BROWSER_PATH"),
		},
	}
}
