package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"agriguard/api"
	"agriguard/config"
	"agriguard/i18n"
	"agriguard/storage"
	"agriguard/ui"
	"agriguard/voice"
)

const Version = "v0.1.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize debug logging after config is loaded
	config.InitDebugLog(cfg.DataDir())

	// Clean up old tmp dir in cache directory (crash recovery)
	if err := config.CleanupTempDir(); err != nil && config.DebugLog != nil {
		config.DebugLog.Printf("Warning: failed to cleanup old temp directory: %v", err)
	}

	if err := config.CreateTempDir(); err != nil {
		fmt.Printf("Failed to create temp directory: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := config.CleanupTempDir(); err != nil && config.DebugLog != nil {
			config.DebugLog.Printf("Warning: failed to cleanup temp directory on exit: %v", err)
		}
	}()

	sessionStorage, err := storage.NewSessionStorage(cfg.DataDir())
	if err != nil {
		fmt.Printf("Failed to initialize session storage: %v\n", err)
		os.Exit(1)
	}

	// Two clients appending to the same session store can lose messages,
	// so only one instance runs per data directory.
	isLocked, runningPID, err := sessionStorage.CheckInstanceLock()
	if err != nil {
		fmt.Printf("Failed to check instance lock: %v\n", err)
		os.Exit(1)
	}
	if isLocked {
		lockedModal := ui.NewInstanceLockedModal(runningPID)
		p := tea.NewProgram(lockedModal, tea.WithAltScreen())

		finalModel, err := p.Run()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		m, ok := finalModel.(ui.InstanceLockedModal)
		if !ok || !m.ForceDelete() {
			os.Exit(0)
		}
		if err := sessionStorage.UnlockInstance(); err != nil {
			fmt.Printf("Failed to remove stale lock: %v\n", err)
			os.Exit(1)
		}
	}

	if err := sessionStorage.LockInstance(); err != nil {
		fmt.Printf("Failed to lock instance: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := sessionStorage.UnlockInstance(); err != nil && config.DebugLog != nil {
			config.DebugLog.Printf("Warning: failed to unlock instance: %v", err)
		}
	}()

	preferences, err := storage.NewPreferences(cfg.DataDir())
	if err != nil {
		fmt.Printf("Failed to load preferences: %v\n", err)
		os.Exit(1)
	}

	searchIndex, err := storage.NewSearchIndex(cfg.DataDir())
	if err != nil {
		fmt.Printf("Failed to open search index: %v\n", err)
		os.Exit(1)
	}
	defer searchIndex.Close()

	lang := i18n.NewContext(preferences)
	if cfg.Language != "" {
		if err := lang.SetActive(cfg.Language); err != nil && config.DebugLog != nil {
			config.DebugLog.Printf("Warning: configured language %q not supported: %v", cfg.Language, err)
		}
	}

	client := api.NewClient(cfg.APIBaseURL())
	voiceAdapter := voice.Detect()

	var lastSession *storage.Session
	if lastSessionID, err := sessionStorage.LoadCurrentSessionID(); err == nil {
		lastSession, _ = sessionStorage.Load(lastSessionID)
	}

	p := tea.NewProgram(
		ui.NewAppView(cfg, client, sessionStorage, searchIndex, lang, voiceAdapter, lastSession, Version),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running agriguard: %v\n", err)
		os.Exit(1)
	}
}
