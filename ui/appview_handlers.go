package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"agriguard/config"
	"agriguard/i18n"
	"agriguard/storage"
)

func (a AppView) handleSessionManagerMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Handle delete confirmation
	if a.confirmDeleteSession != nil {
		switch msg.String() {
		case "y":
			sessionID := a.confirmDeleteSession.ID
			deletingCurrent := a.dataModel.CurrentSession != nil && a.dataModel.CurrentSession.ID == sessionID

			// Block deletion while a reply for this session is in flight
			if deletingCurrent && a.dataModel.Waiting {
				a.confirmDeleteSession = nil
				a.showInfoModal = true
				a.infoModalTitle = "Cannot Delete Session"
				a.infoModalMsg = "A reply is still on the way.\nWait for it before deleting."
				return a, nil
			}

			a.confirmDeleteSession = nil

			if deletingCurrent {
				a.dataModel.Messages = nil
				a.dataModel.CurrentSession = nil
				a.dataModel.Suggestions = nil
				a.dataModel.Actions = nil
				a.dataModel.SessionDirty = false
				a.textarea.Reset()
				a.updateViewportContent(true)

				if err := a.dataModel.SessionStorage.SaveCurrentSessionID(""); err != nil && config.DebugLog != nil {
					config.DebugLog.Printf("Failed to clear current session pointer: %v", err)
				}
			}

			return a, a.dataModel.DeleteSessionCmd(sessionID)

		case "n", "esc":
			a.confirmDeleteSession = nil
			return a, nil
		}
		return a, nil
	}

	if a.sessionRenameMode {
		return a.handleSessionRenameMode(msg)
	}

	if a.sessionFilterMode {
		switch msg.String() {
		case "esc":
			a.sessionFilterMode = false
			a.sessionFilterInput.Blur()
			a.sessionFilterInput.SetValue("")
			a.filteredSessionList = []storage.SessionMetadata{}
			a.selectedSessionIdx = 0
			return a, nil

		case "enter":
			list := a.getSessionList()
			if a.selectedSessionIdx >= 0 && a.selectedSessionIdx < len(list) {
				selectedSession := list[a.selectedSessionIdx]
				a.showSessionManager = false
				a.sessionFilterMode = false
				return a, a.dataModel.LoadSession(selectedSession.ID)
			}
			return a, nil

		case "alt+j", "alt+down", "down":
			list := a.getSessionList()
			if a.selectedSessionIdx < len(list)-1 {
				a.selectedSessionIdx++
			}
			return a, nil

		case "alt+k", "alt+up", "up":
			if a.selectedSessionIdx > 0 {
				a.selectedSessionIdx--
			}
			return a, nil
		}

		var cmd tea.Cmd
		a.sessionFilterInput, cmd = a.sessionFilterInput.Update(msg)

		filterValue := a.sessionFilterInput.Value()
		if filterValue == "" {
			a.filteredSessionList = a.sessionList
		} else {
			targets := make([]string, len(a.sessionList))
			for i, s := range a.sessionList {
				targets[i] = s.Name
			}

			matches := fuzzy.Find(filterValue, targets)
			a.filteredSessionList = make([]storage.SessionMetadata, len(matches))
			for i, match := range matches {
				a.filteredSessionList[i] = a.sessionList[match.Index]
			}
		}

		list := a.getSessionList()
		if a.selectedSessionIdx >= len(list) && len(list) > 0 {
			a.selectedSessionIdx = len(list) - 1
		}

		return a, cmd
	}

	switch msg.String() {
	case "/":
		a.sessionFilterMode = true
		a.sessionFilterInput.Focus()
		a.sessionFilterInput.SetValue("")
		a.filteredSessionList = a.sessionList
		return a, textinput.Blink

	case "esc":
		a.showSessionManager = false
		return a, nil

	case "j", "down":
		list := a.getSessionList()
		if a.selectedSessionIdx < len(list)-1 {
			a.selectedSessionIdx++
		}
		return a, nil

	case "k", "up":
		if a.selectedSessionIdx > 0 {
			a.selectedSessionIdx--
		}
		return a, nil

	case "enter":
		list := a.getSessionList()
		if a.selectedSessionIdx >= 0 && a.selectedSessionIdx < len(list) {
			selectedSession := list[a.selectedSessionIdx]
			return a, a.dataModel.LoadSession(selectedSession.ID)
		}
		return a, nil

	case "r":
		list := a.getSessionList()
		if a.selectedSessionIdx >= 0 && a.selectedSessionIdx < len(list) {
			if a.sessionRenameInput.Width == 0 {
				a.sessionRenameInput = textinput.New()
				a.sessionRenameInput.Width = 50
				a.sessionRenameInput.CharLimit = 100
			}
			a.sessionRenameMode = true
			a.sessionRenameInput.SetValue(list[a.selectedSessionIdx].Name)
			a.sessionRenameInput.Focus()
			return a, textinput.Blink
		}
		return a, nil

	case "d":
		list := a.getSessionList()
		if a.selectedSessionIdx >= 0 && a.selectedSessionIdx < len(list) {
			selected := list[a.selectedSessionIdx]
			a.confirmDeleteSession = &selected
		}
		return a, nil
	}

	return a, nil
}

func (a AppView) handleSessionRenameMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg.String() {
	case "esc":
		a.sessionRenameMode = false
		a.sessionRenameInput.Blur()
		return a, nil

	case "enter":
		newName := strings.TrimSpace(a.sessionRenameInput.Value())
		if newName == "" {
			return a, nil
		}

		list := a.getSessionList()
		if a.selectedSessionIdx < 0 || a.selectedSessionIdx >= len(list) {
			a.sessionRenameMode = false
			a.sessionRenameInput.Blur()
			return a, nil
		}

		sessionID := list[a.selectedSessionIdx].ID
		a.sessionRenameMode = false
		a.sessionRenameInput.Blur()

		// Update current session name if it's the same session being renamed
		if a.dataModel.CurrentSession != nil && a.dataModel.CurrentSession.ID == sessionID {
			a.dataModel.CurrentSession.Name = newName
		}

		return a, a.dataModel.RenameSessionCmd(sessionID, newName)

	case "alt+u":
		a.sessionRenameInput.SetValue("")
		return a, nil
	}

	a.sessionRenameInput, cmd = a.sessionRenameInput.Update(msg)
	return a, cmd
}

func (a AppView) handleLanguageSelectorMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.languageFilterMode {
		switch msg.String() {
		case "esc":
			a.languageFilterMode = false
			a.languageFilterInput.Blur()
			a.languageFilterInput.SetValue("")
			a.filteredLanguageList = []i18n.Language{}
			a.selectedLanguageIdx = 0
			return a, nil

		case "enter":
			return a.applyLanguageSelection()

		case "alt+j", "alt+down", "down":
			list := a.getLanguageList()
			if a.selectedLanguageIdx < len(list)-1 {
				a.selectedLanguageIdx++
			}
			return a, nil

		case "alt+k", "alt+up", "up":
			if a.selectedLanguageIdx > 0 {
				a.selectedLanguageIdx--
			}
			return a, nil
		}

		var cmd tea.Cmd
		a.languageFilterInput, cmd = a.languageFilterInput.Update(msg)

		filterValue := a.languageFilterInput.Value()
		if filterValue == "" {
			a.filteredLanguageList = i18n.Registry
		} else {
			targets := make([]string, len(i18n.Registry))
			for i, lang := range i18n.Registry {
				targets[i] = lang.Name + " " + lang.NativeName
			}

			matches := fuzzy.Find(filterValue, targets)
			a.filteredLanguageList = make([]i18n.Language, len(matches))
			for i, match := range matches {
				a.filteredLanguageList[i] = i18n.Registry[match.Index]
			}
		}

		list := a.getLanguageList()
		if a.selectedLanguageIdx >= len(list) && len(list) > 0 {
			a.selectedLanguageIdx = len(list) - 1
		}

		return a, cmd
	}

	switch msg.String() {
	case "/":
		a.languageFilterMode = true
		a.languageFilterInput.Focus()
		a.languageFilterInput.SetValue("")
		a.filteredLanguageList = i18n.Registry
		return a, textinput.Blink

	case "esc":
		a.showLanguageSelector = false
		return a, nil

	case "j", "down":
		list := a.getLanguageList()
		if a.selectedLanguageIdx < len(list)-1 {
			a.selectedLanguageIdx++
		}
		return a, nil

	case "k", "up":
		if a.selectedLanguageIdx > 0 {
			a.selectedLanguageIdx--
		}
		return a, nil

	case "enter":
		return a.applyLanguageSelection()
	}

	return a, nil
}

func (a AppView) applyLanguageSelection() (tea.Model, tea.Cmd) {
	list := a.getLanguageList()
	if a.selectedLanguageIdx < 0 || a.selectedLanguageIdx >= len(list) {
		return a, nil
	}
	lang := list[a.selectedLanguageIdx]

	if err := a.dataModel.SetLanguage(lang.Code); err != nil {
		a.showInfoModal = true
		a.infoModalTitle = a.dataModel.T("errorTitle")
		a.infoModalMsg = err.Error()
		return a, nil
	}

	// Subsequent replies in this session come back in the new language
	if a.dataModel.CurrentSession != nil {
		a.dataModel.CurrentSession.Language = lang.Code
		a.dataModel.SessionDirty = true
	}

	a.showLanguageSelector = false
	a.languageFilterMode = false
	a.languageFilterInput.Blur()
	a.languageFilterInput.SetValue("")
	a.filteredLanguageList = []i18n.Language{}

	a.textarea.Placeholder = a.dataModel.T("chatPlaceholder")
	a.updateViewportContent(false)
	a.refreshPane(false)

	return a, nil
}

func (a AppView) handleMessageSearchMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.showMessageSearch = false
		return a, nil

	case "up", "alt+k":
		if a.selectedSearchIdx > 0 {
			a.selectedSearchIdx--
		}
		return a, nil

	case "down", "alt+j":
		if a.selectedSearchIdx < len(a.messageSearchResults)-1 {
			a.selectedSearchIdx++
		}
		return a, nil

	case "enter":
		if a.selectedSearchIdx >= 0 && a.selectedSearchIdx < len(a.messageSearchResults) {
			match := a.messageSearchResults[a.selectedSearchIdx]

			a.highlightedMessageIdx = match.MessageIndex
			a.highlightFlashCount = 1
			a.showMessageSearch = false
			a.updateViewportContent(false)
			a.scrollToMessage(match.MessageIndex)

			return a, flashTick()
		}
		return a, nil
	}

	var cmd tea.Cmd
	a.messageSearchInput, cmd = a.messageSearchInput.Update(msg)

	query := a.messageSearchInput.Value()
	if query == "" {
		a.messageSearchResults = []storage.MessageMatch{}
		a.selectedSearchIdx = 0
		return a, cmd
	}

	return a, tea.Batch(cmd, a.dataModel.SearchCurrentSession(query))
}

func (a AppView) handleGlobalSearchMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.showGlobalSearch = false
		return a, nil

	case "up", "alt+k":
		if a.selectedGlobalIdx > 0 {
			a.selectedGlobalIdx--
		}
		return a, nil

	case "down", "alt+j":
		if a.selectedGlobalIdx < len(a.globalSearchResults)-1 {
			a.selectedGlobalIdx++
		}
		return a, nil

	case "enter":
		if a.selectedGlobalIdx >= 0 && a.selectedGlobalIdx < len(a.globalSearchResults) {
			selectedMatch := a.globalSearchResults[a.selectedGlobalIdx]
			a.showGlobalSearch = false
			a.pendingScrollToMessageIdx = selectedMatch.MessageIndex
			return a, a.dataModel.LoadSession(selectedMatch.SessionID)
		}
		return a, nil
	}

	var cmd tea.Cmd
	a.globalSearchInput, cmd = a.globalSearchInput.Update(msg)

	query := a.globalSearchInput.Value()
	if query == "" {
		a.globalSearchResults = []storage.SessionMessageMatch{}
		a.selectedGlobalIdx = 0
		return a, cmd
	}

	return a, tea.Batch(cmd, a.dataModel.SearchAllSessions(query))
}

func (a AppView) handlePhotoPickerMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" {
		a.photoPicker.Reset()
		return a, nil
	}

	// Update picker with the KeyMsg FIRST
	var cmd tea.Cmd
	a.photoPicker.Picker, cmd = a.photoPicker.Picker.Update(msg)

	// Check if Path was set and it's a FILE (not directory)
	if a.photoPicker.Picker.Path != "" {
		if info, err := os.Stat(a.photoPicker.Picker.Path); err == nil && !info.IsDir() {
			path := a.photoPicker.Picker.Path
			a.photoPicker.Reset()

			if config.DebugLog != nil {
				config.DebugLog.Printf("Photo selected: %s", path)
			}

			if a.activeTab == TabScanner {
				a.scannerImagePath = path
				a.scannerAnalyzing = true
				a.scannerErr = nil
				a.scannerAnalysis = nil
				a.startLoadingSpinner()
				a.refreshPane(true)
				return a, tea.Batch(
					a.dataModel.AnalyzeLeafCmd(path, a.dataModel.Config.CropType, ""),
					a.loadingSpinner.Tick,
				)
			}

			return a.sendPhotoMessage(path)
		}
		// If it's a directory, clear Path so we don't trigger again
		a.photoPicker.Picker.Path = ""
	}

	return a, cmd
}

func (a AppView) handleDiseaseBrowserMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.diseaseFilterMode {
		switch msg.String() {
		case "esc":
			a.diseaseFilterMode = false
			a.diseaseFilterInput.Blur()
			a.diseaseFilterInput.SetValue("")
			a.filteredDiseaseKeys = nil
			a.selectedDiseaseIdx = 0
			return a, nil

		case "enter":
			keys := a.getDiseaseKeys()
			if a.selectedDiseaseIdx >= 0 && a.selectedDiseaseIdx < len(keys) {
				return a, a.dataModel.FetchDiseaseEntry(keys[a.selectedDiseaseIdx])
			}
			return a, nil

		case "alt+j", "alt+down", "down":
			keys := a.getDiseaseKeys()
			if a.selectedDiseaseIdx < len(keys)-1 {
				a.selectedDiseaseIdx++
			}
			return a, nil

		case "alt+k", "alt+up", "up":
			if a.selectedDiseaseIdx > 0 {
				a.selectedDiseaseIdx--
			}
			return a, nil
		}

		var cmd tea.Cmd
		a.diseaseFilterInput, cmd = a.diseaseFilterInput.Update(msg)

		filterValue := a.diseaseFilterInput.Value()
		if filterValue == "" {
			a.filteredDiseaseKeys = a.diseaseKeys
		} else {
			matches := fuzzy.Find(filterValue, a.diseaseKeys)
			a.filteredDiseaseKeys = make([]string, len(matches))
			for i, match := range matches {
				a.filteredDiseaseKeys[i] = a.diseaseKeys[match.Index]
			}
		}

		keys := a.getDiseaseKeys()
		if a.selectedDiseaseIdx >= len(keys) && len(keys) > 0 {
			a.selectedDiseaseIdx = len(keys) - 1
		}

		return a, cmd
	}

	switch msg.String() {
	case "/":
		a.diseaseFilterMode = true
		a.diseaseFilterInput.Focus()
		a.diseaseFilterInput.SetValue("")
		a.filteredDiseaseKeys = a.diseaseKeys
		return a, textinput.Blink

	case "esc":
		a.showDiseaseBrowser = false
		return a, nil

	case "j", "down":
		keys := a.getDiseaseKeys()
		if a.selectedDiseaseIdx < len(keys)-1 {
			a.selectedDiseaseIdx++
		}
		return a, nil

	case "k", "up":
		if a.selectedDiseaseIdx > 0 {
			a.selectedDiseaseIdx--
		}
		return a, nil

	case "enter":
		keys := a.getDiseaseKeys()
		if a.selectedDiseaseIdx >= 0 && a.selectedDiseaseIdx < len(keys) {
			return a, a.dataModel.FetchDiseaseEntry(keys[a.selectedDiseaseIdx])
		}
		return a, nil

	case "g":
		// Prefill the strategy form with the selected disease
		keys := a.getDiseaseKeys()
		if a.selectedDiseaseIdx >= 0 && a.selectedDiseaseIdx < len(keys) {
			a.ipmDiseaseInput.SetValue(displayDiseaseName(keys[a.selectedDiseaseIdx]))
			a.showDiseaseBrowser = false
			a.diseaseFilterMode = false
			a.ipmFocusedField = 1
			a.ipmDiseaseInput.Blur()
			a.ipmCropInput.Focus()
			a.refreshPane(true)
			return a, textinput.Blink
		}
		return a, nil

	case "q":
		keys := a.getDiseaseKeys()
		if a.selectedDiseaseIdx >= 0 && a.selectedDiseaseIdx < len(keys) {
			crop := a.dataModel.Config.CropType
			if crop == "" {
				crop = "vegetables"
			}
			return a, a.dataModel.FetchQuickIPM(displayDiseaseName(keys[a.selectedDiseaseIdx]), crop)
		}
		return a, nil
	}

	return a, nil
}

func (a AppView) handleScannerKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "alt+a":
		if !a.scannerAnalyzing {
			a.photoPicker.Activate()
			return a, a.photoPicker.Picker.Init()
		}
		return a, nil

	case "alt+r":
		// Re-run the analysis on the same photo
		if a.scannerImagePath != "" && !a.scannerAnalyzing {
			if !fileExists(a.scannerImagePath) {
				a.scannerErr = fmt.Errorf("photo no longer exists: %s", a.scannerImagePath)
				a.refreshPane(true)
				return a, nil
			}
			a.scannerAnalyzing = true
			a.scannerErr = nil
			a.startLoadingSpinner()
			a.refreshPane(true)
			return a, tea.Batch(
				a.dataModel.AnalyzeLeafCmd(a.scannerImagePath, a.dataModel.Config.CropType, ""),
				a.loadingSpinner.Tick,
			)
		}
		return a, nil
	}

	return a.handlePaneScroll(msg)
}

func (a AppView) handleWeatherKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "alt+r" {
		if a.weatherLoading {
			return a, nil
		}
		if !a.dataModel.Config.HasLocation() {
			a.showInfoModal = true
			a.infoModalTitle = a.dataModel.T("weatherTitle")
			a.infoModalMsg = a.dataModel.T("noLocation")
			return a, nil
		}
		cmds := a.fetchWeatherDashboard()
		a.refreshPane(false)
		return a, tea.Batch(cmds...)
	}

	return a.handlePaneScroll(msg)
}

func (a AppView) handleIPMKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab", "alt+down", "alt+up":
		if a.ipmFocusedField == 0 {
			a.ipmFocusedField = 1
			a.ipmDiseaseInput.Blur()
			a.ipmCropInput.Focus()
		} else {
			a.ipmFocusedField = 0
			a.ipmCropInput.Blur()
			a.ipmDiseaseInput.Focus()
		}
		a.refreshPane(false)
		return a, textinput.Blink

	case "enter":
		disease := strings.TrimSpace(a.ipmDiseaseInput.Value())
		crop := strings.TrimSpace(a.ipmCropInput.Value())
		if disease == "" || a.ipmLoading {
			return a, nil
		}
		if crop == "" {
			crop = "vegetables"
		}
		a.ipmLoading = true
		a.ipmErr = nil
		a.ipmStrategy = nil
		a.startLoadingSpinner()
		a.refreshPane(false)
		return a, tea.Batch(
			a.dataModel.FetchIPMStrategy(disease, crop, ""),
			a.loadingSpinner.Tick,
		)

	case "alt+d":
		a.showDiseaseBrowser = true
		a.selectedDiseaseIdx = 0
		if a.diseaseDB == nil {
			return a, a.dataModel.FetchDiseaseDatabase()
		}
		return a, nil

	case "alt+j", "alt+k", "alt+J", "alt+K", "alt+g", "alt+G", "pgdown", "pgup":
		return a.handlePaneScroll(msg)
	}

	var cmd tea.Cmd
	if a.ipmFocusedField == 0 {
		a.ipmDiseaseInput, cmd = a.ipmDiseaseInput.Update(msg)
	} else {
		a.ipmCropInput, cmd = a.ipmCropInput.Update(msg)
	}
	a.refreshPane(false)
	return a, cmd
}

// handlePaneScroll applies the shared scroll keys to the dashboard pane.
func (a AppView) handlePaneScroll(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "alt+j", "alt+down":
		a.pane.HalfPageDown()
	case "alt+k", "alt+up":
		a.pane.HalfPageUp()
	case "alt+J", "pgdown":
		a.pane.PageDown()
	case "alt+K", "pgup":
		a.pane.PageUp()
	case "alt+g":
		a.pane.GotoTop()
	case "alt+G":
		a.pane.GotoBottom()
	}
	return a, nil
}
