package ui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"agriguard/config"
	"agriguard/i18n"
)

func (a AppView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	// Update spinner FIRST to handle TickMsg before anything else
	if a.dataModel.Waiting {
		a.loadingSpinner, cmd = a.loadingSpinner.Update(msg)
		cmds = append(cmds, cmd)
		// Update viewport to show animated spinner
		a.updateViewportContent(true)
	}

	// The dashboard tabs reuse the same spinner while a fetch runs
	if a.scannerAnalyzing || a.weatherLoading || a.ipmLoading {
		a.loadingSpinner, cmd = a.loadingSpinner.Update(msg)
		cmds = append(cmds, cmd)
		a.refreshPane(false)
	}

	// Update file picker if active (needs to receive ALL message types EXCEPT KeyMsg)
	// KeyMsg is handled in handlePhotoPickerMode to check the selection first
	if a.photoPicker.Active {
		switch msg.(type) {
		case tea.KeyMsg:
			// Skip - handled in handlePhotoPickerMode
		default:
			a.photoPicker.Picker, cmd = a.photoPicker.Picker.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

		// Reserve space for title (1), tab bar (1), separator (1),
		// textarea (3) and status bar (1)
		viewportHeight := a.height - 7
		a.viewport.Width = a.width
		a.viewport.Height = viewportHeight
		a.textarea.SetWidth(a.width)

		// The dashboard pane replaces viewport+textarea on the other tabs
		a.pane.Width = a.width
		a.pane.Height = a.height - 4

		a.ready = true
		a.updateViewportContent(true)
		a.refreshPane(true)

		// Trigger initial rendering if needed (after we have width)
		if a.dataModel.NeedsInitialRender {
			a.dataModel.NeedsInitialRender = false
			var renderCmds []tea.Cmd
			for i := len(a.dataModel.Messages) - 1; i >= 0; i-- {
				if a.dataModel.Messages[i].Role == "assistant" || a.dataModel.Messages[i].Role == "user" {
					// Skip if already rendered (cached from disk)
					if a.dataModel.Messages[i].Rendered != "" && a.dataModel.Messages[i].Rendered != a.dataModel.Messages[i].Content {
						continue
					}
					renderCmds = append(renderCmds, a.renderMarkdownAsync(i, a.dataModel.Messages[i].Content))
				}
			}
			return a, tea.Batch(renderCmds...)
		}

		return a, nil

	case tea.KeyMsg:
		if msg.String() == "alt+q" {
			if config.DebugLog != nil {
				config.DebugLog.Printf("[UI] Alt+Q pressed - quitting")
			}
			a.dataModel.Quitting = true
			if a.dataModel.SessionDirty && len(a.dataModel.Messages) > 0 {
				// Flush the transcript, then quit once the save lands
				return a, tea.Sequence(a.dataModel.AutoSaveSession(), tea.Quit)
			}
			return a, tea.Quit
		}

		// Global modal toggles work from anywhere; opening one closes the rest
		switch msg.String() {
		case "alt+h":
			wasOpen := a.showHelp
			a.closeAllModals()
			a.showHelp = !wasOpen
			return a, nil

		case "alt+n":
			a.closeAllModals()
			a.activeTab = TabChat
			var newCmds []tea.Cmd
			if a.dataModel.SessionDirty && len(a.dataModel.Messages) > 0 {
				newCmds = append(newCmds, a.dataModel.AutoSaveSession())
			}
			newCmds = append(newCmds, a.dataModel.StartNewSession())
			a.textarea.Reset()
			a.updateViewportContent(true)
			return a, tea.Batch(newCmds...)

		case "alt+s":
			wasOpen := a.showSessionManager
			a.closeAllModals()
			a.showSessionManager = !wasOpen
			if a.showSessionManager {
				return a, a.dataModel.FetchSessionList()
			}
			return a, nil

		case "alt+l":
			wasOpen := a.showLanguageSelector
			a.closeAllModals()
			a.showLanguageSelector = !wasOpen
			if a.showLanguageSelector {
				a.selectedLanguageIdx = 0
				active := a.dataModel.Lang.Active()
				for i, lang := range i18n.Registry {
					if lang.Code == active {
						a.selectedLanguageIdx = i
						break
					}
				}
			}
			return a, nil

		case "alt+f":
			wasOpen := a.showMessageSearch
			a.closeAllModals()
			a.showMessageSearch = !wasOpen
			if a.showMessageSearch {
				a.messageSearchInput.SetValue("")
				a.messageSearchInput.Focus()
				a.messageSearchResults = nil
				a.selectedSearchIdx = 0
				a.messageSearchScrollIdx = 0
				return a, textinput.Blink
			}
			return a, nil

		case "alt+F":
			wasOpen := a.showGlobalSearch
			a.closeAllModals()
			a.showGlobalSearch = !wasOpen
			if a.showGlobalSearch {
				a.globalSearchInput.SetValue("")
				a.globalSearchInput.Focus()
				a.globalSearchResults = nil
				a.selectedGlobalIdx = 0
				a.globalSearchScrollIdx = 0
				return a, textinput.Blink
			}
			return a, nil

		case "alt+S":
			wasOpen := a.showSettings
			a.closeAllModals()
			a.showSettings = !wasOpen
			if a.showSettings {
				a.initSettingsFields()
			}
			return a, nil

		case "alt+A":
			// About only from the dashboard tabs; on chat Alt+A attaches a photo
			if a.activeTab != TabChat {
				wasOpen := a.showAbout
				a.closeAllModals()
				a.showAbout = !wasOpen
				return a, nil
			}

		case "alt+1":
			a.closeAllModals()
			return a, a.setActiveTab(TabChat)
		case "alt+2":
			a.closeAllModals()
			return a, a.setActiveTab(TabScanner)
		case "alt+3":
			a.closeAllModals()
			return a, a.setActiveTab(TabWeather)
		case "alt+4":
			a.closeAllModals()
			return a, a.setActiveTab(TabIPM)
		case "alt+right":
			a.closeAllModals()
			return a, a.setActiveTab(a.activeTab.next())
		case "alt+left":
			a.closeAllModals()
			return a, a.setActiveTab(a.activeTab.prev())
		}

		// Modal-specific handlers, in the order modals render
		if a.showInfoModal {
			// Any key acknowledges
			a.showInfoModal = false
			return a, nil
		}

		if a.showHelp {
			if msg.String() == "esc" {
				a.showHelp = false
			}
			return a, nil
		}

		if a.showLanguageSelector {
			return a.handleLanguageSelectorMode(msg)
		}

		if a.showSettings {
			return a.handleSettingsMode(msg)
		}

		if a.showSessionManager {
			return a.handleSessionManagerMode(msg)
		}

		if a.showGlobalSearch {
			return a.handleGlobalSearchMode(msg)
		}

		if a.showMessageSearch {
			return a.handleMessageSearchMode(msg)
		}

		if a.photoPicker.Active {
			return a.handlePhotoPickerMode(msg)
		}

		if a.diseaseDetail != nil {
			// Any key returns to the list
			a.diseaseDetail = nil
			a.diseaseDetailKey = ""
			return a, nil
		}

		if a.showDiseaseBrowser {
			return a.handleDiseaseBrowserMode(msg)
		}

		if a.showAbout {
			if msg.String() == "esc" {
				a.showAbout = false
			}
			return a, nil
		}

		// Dashboard tabs have their own key handling
		switch a.activeTab {
		case TabScanner:
			return a.handleScannerKeys(msg)
		case TabWeather:
			return a.handleWeatherKeys(msg)
		case TabIPM:
			return a.handleIPMKeys(msg)
		}

		// Chat tab from here on.
		// Tab key inserts spaces instead of leaving the input
		if msg.String() == "tab" && !a.dataModel.Waiting {
			a.textarea.SetValue(a.textarea.Value() + "   ")
			return a, nil
		}

		// Handle Enter for sending messages - DON'T let textarea process it
		// But allow Alt+Enter to pass through for newlines
		if msg.Type == tea.KeyEnter && !msg.Alt && !a.dataModel.Waiting {
			return a.sendCurrentInput()
		}

		switch msg.String() {
		case "alt+i":
			// Open external editor (only while no request is in flight)
			if !a.dataModel.Waiting {
				return a, a.dataModel.OpenExternalEditor(a.textarea.Value())
			}
			return a, nil

		case "alt+a":
			// Attach a plant photo to the conversation
			if !a.dataModel.Waiting {
				a.photoPicker.Activate()
				return a, a.photoPicker.Picker.Init()
			}
			return a, nil

		case "alt+v":
			if a.dataModel.Dictating() {
				a.dataModel.StopDictation()
				return a, nil
			}
			dictCmd := a.dataModel.StartDictation()
			if dictCmd == nil {
				a.showInfoModal = true
				a.infoModalTitle = a.dataModel.T("errorTitle")
				a.infoModalMsg = "No recording tool found.\nInstall sox, arecord or ffmpeg to dictate messages."
				return a, nil
			}
			return a, dictCmd

		case "alt+V":
			return a, a.dataModel.SpeakLastReply()

		case "alt+X":
			a.dataModel.StopSpeaking()
			return a, nil

		case "alt+t":
			// Run the first suggested action from the last reply
			if len(a.dataModel.Actions) > 0 && !a.dataModel.Waiting {
				actionCmd := a.dataModel.RunSuggestedAction(a.dataModel.Actions[0])
				if actionCmd == nil {
					return a, nil
				}
				a.startLoadingSpinner()
				a.updateViewportContent(true)
				renderCmds := []tea.Cmd{actionCmd, a.loadingSpinner.Tick}
				if n := len(a.dataModel.Messages); n > 0 && a.dataModel.Messages[n-1].Role == "user" && a.dataModel.Messages[n-1].Rendered == "" {
					renderCmds = append(renderCmds, a.renderMarkdownAsync(n-1, a.dataModel.Messages[n-1].Content))
				}
				return a, tea.Batch(renderCmds...)
			}
			return a, nil

		case "alt+u":
			a.textarea.Reset()
			return a, nil

		case "alt+y":
			// Copy last assistant message
			for i := len(a.dataModel.Messages) - 1; i >= 0; i-- {
				if a.dataModel.Messages[i].Role == "assistant" {
					clipboard.WriteAll(a.dataModel.Messages[i].Content)
					return a, nil
				}
			}
			return a, nil

		case "alt+c":
			// Copy all messages
			var allText strings.Builder
			for _, msg := range a.dataModel.Messages {
				role := msg.Role
				switch role {
				case "user":
					role = "You"
				case "assistant":
					role = "Assistant"
				}
				allText.WriteString(fmt.Sprintf("[%s] %s:\n%s\n\n",
					msg.Timestamp.Format("15:04"),
					role,
					msg.Content))
			}
			clipboard.WriteAll(allText.String())
			return a, nil

		case "alt+j", "alt+down":
			a.viewport.HalfPageDown()
			return a, nil

		case "alt+k", "alt+up":
			a.viewport.HalfPageUp()
			return a, nil

		case "alt+J", "pgdown":
			a.viewport.PageDown()
			return a, nil

		case "alt+K", "pgup":
			a.viewport.PageUp()
			return a, nil

		case "alt+g":
			a.viewport.GotoTop()
			return a, nil

		case "alt+G":
			a.viewport.GotoBottom()
			return a, nil
		}

	case chatResponseMsg:
		return a.handleChatResponseMsg(msg)

	case ipmChatMsg:
		return a.handleIPMChatMsg(msg)

	case markdownRenderedMsg:
		return a.handleMarkdownRenderedMsg(msg)

	case voiceCaptureMsg:
		return a.handleVoiceCaptureMsg(msg)

	case speechDoneMsg:
		if msg.Err != nil && config.DebugLog != nil {
			config.DebugLog.Printf("[Voice] speech failed: %v", msg.Err)
		}
		return a, nil

	case editorContentMsg:
		a.textarea.SetValue(msg.Content)
		a.textarea.Focus()
		return a, nil

	case editorErrorMsg:
		a.showInfoModal = true
		a.infoModalTitle = "Editor Error"
		a.infoModalMsg = fmt.Sprintf("Could not open external editor:\n%v\n\nSet $EDITOR or $AGRIGUARD_EDITOR to your preferred editor.", msg.Err)
		return a, nil

	case flashTickMsg:
		return a.handleFlashTick()

	case healthMsg, aiStatusMsg, weatherSnapshotMsg, forecastMsg, sprayWindowsMsg,
		outbreakForecastMsg, leafAnalysisMsg, ipmStrategyMsg,
		quickIPMMsg, diseaseDatabaseMsg, diseaseEntryMsg:
		return a.handleDashboardMessage(msg)

	case sessionsListMsg, sessionLoadedMsg, sessionSavedMsg, sessionDeletedMsg,
		searchResultsMsg, transcriptSearchMsg:
		return a.handleSessionMessage(msg)
	}

	// Leftover messages feed the chat input: plain typing plus the cursor
	// blink ticks
	if a.activeTab == TabChat && !a.dataModel.Waiting {
		a.textarea, cmd = a.textarea.Update(msg)
		cmds = append(cmds, cmd)
	}

	return a, tea.Batch(cmds...)
}

// setActiveTab switches tab and starts whatever fetch the tab still needs.
func (a *AppView) setActiveTab(tab Tab) tea.Cmd {
	a.activeTab = tab
	a.refreshPane(true)

	if tab == TabWeather && a.weatherCurrent == nil && !a.weatherLoading {
		if a.dataModel.Config != nil && a.dataModel.Config.HasLocation() {
			return tea.Batch(a.fetchWeatherDashboard()...)
		}
	}
	return nil
}

// fetchWeatherDashboard kicks off the full set of weather requests.
func (a *AppView) fetchWeatherDashboard() []tea.Cmd {
	a.weatherLoading = true
	a.weatherErr = nil
	a.startLoadingSpinner()

	crop := ""
	if a.dataModel.Config != nil {
		crop = a.dataModel.Config.CropType
	}
	if crop == "" {
		crop = "vegetables"
	}

	return []tea.Cmd{
		a.dataModel.FetchWeatherSnapshot(),
		a.dataModel.FetchForecast(7),
		a.dataModel.FetchSprayWindows(),
		a.dataModel.FetchOutbreakForecast(crop),
		a.loadingSpinner.Tick,
	}
}

func (a *AppView) startLoadingSpinner() {
	a.loadingSpinner = spinner.New()
	a.loadingSpinner.Spinner = spinner.Dot
	a.loadingSpinner.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("15")) // Bright white
}
