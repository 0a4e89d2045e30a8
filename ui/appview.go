package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"agriguard/api"
	"agriguard/config"
	"agriguard/i18n"
	appmodel "agriguard/model"
	"agriguard/storage"
	"agriguard/voice"
)

type AppView struct {
	// Reference to core data model
	dataModel *appmodel.Model

	// UI Components
	viewport viewport.Model
	textarea textarea.Model

	// Scanner, weather and IPM tabs share one scrollable pane. Its
	// content is rebuilt by refreshPane on tab switch, data arrival
	// and resize.
	pane      viewport.Model
	activeTab Tab

	// Window state
	width  int
	height int
	ready  bool

	showHelp  bool
	showAbout bool

	// Loading spinner (bubbles/spinner)
	loadingSpinner spinner.Model

	// Backend status shown in the title bar
	serverHealthy   bool
	primaryProvider string

	// Language selector
	showLanguageSelector bool
	selectedLanguageIdx  int
	languageFilterMode   bool
	languageFilterInput  textinput.Model
	filteredLanguageList []i18n.Language

	// Session management UI
	showSessionManager   bool
	sessionList          []storage.SessionMetadata
	selectedSessionIdx   int
	sessionRenameMode    bool
	sessionRenameInput   textinput.Model
	sessionFilterMode    bool
	sessionFilterInput   textinput.Model
	filteredSessionList  []storage.SessionMetadata
	confirmDeleteSession *storage.SessionMetadata

	showMessageSearch      bool
	messageSearchInput     textinput.Model
	messageSearchResults   []storage.MessageMatch
	selectedSearchIdx      int
	messageSearchScrollIdx int

	showGlobalSearch      bool
	globalSearchInput     textinput.Model
	globalSearchResults   []storage.SessionMessageMatch
	selectedGlobalIdx     int
	globalSearchScrollIdx int

	highlightedMessageIdx     int
	highlightFlashCount       int
	pendingScrollToMessageIdx int

	// Info modal state (for simple notifications/errors)
	showInfoModal  bool
	infoModalTitle string
	infoModalMsg   string

	// Scanner tab
	photoPicker      FilePickerState
	scannerAnalysis  *api.LeafAnalysis
	scannerImagePath string
	scannerAnalyzing bool
	scannerErr       error

	// Weather tab
	weatherCurrent  *api.CurrentWeather
	weatherRisk     *api.DiseaseRisk
	weatherForecast *api.Forecast
	sprayWindows    *api.SprayWindows
	outbreak        *api.OutbreakForecast
	weatherLoading  bool
	weatherErr      error

	// IPM tab
	ipmDiseaseInput     textinput.Model
	ipmCropInput        textinput.Model
	ipmFocusedField     int
	ipmStrategy         *api.IPMStrategy
	ipmLoading          bool
	ipmErr              error
	showDiseaseBrowser  bool
	diseaseDB           *api.DiseaseDatabase
	diseaseKeys         []string
	selectedDiseaseIdx  int
	diseaseFilterMode   bool
	diseaseFilterInput  textinput.Model
	filteredDiseaseKeys []string
	diseaseDetail       *api.DiseaseInfo
	diseaseDetailKey    string

	// Farm settings modal
	showSettings       bool
	settingsFields     []SettingField
	selectedSettingIdx int
	settingsEditMode   bool
	settingsEditInput  textinput.Model
	settingsHasChanges bool
	settingsSaveError  string
}

func NewAppView(cfg *config.Config, gateway appmodel.Gateway, sessionStorage *storage.SessionStorage, searchIndex *storage.SearchIndex, lang *i18n.Context, voiceAdapter *voice.Adapter, lastSession *storage.Session, version string) AppView {
	dataModel := appmodel.NewModel(cfg, gateway, sessionStorage, searchIndex, lang, voiceAdapter, lastSession, version)

	ta := textarea.New()
	ta.Placeholder = dataModel.T("chatPlaceholder")
	ta.Focus()
	ta.CharLimit = 0
	ta.ShowLineNumbers = false
	ta.SetHeight(3)
	ta.SetWidth(80)

	// Custom KeyMap: Alt+Enter for newline, Enter alone does nothing (handled separately)
	ta.KeyMap.InsertNewline = key.NewBinding(key.WithKeys("alt+enter"))

	// Set dynamic prompt: "> " for first line, "| " for subsequent lines
	ta.SetPromptFunc(2, func(lineIdx int) string {
		if lineIdx == 0 {
			return "> "
		}
		return "| "
	})

	vp := viewport.New(0, 0)
	pane := viewport.New(0, 0)

	photoPicker := NewFilePickerState(FilePickerConfig{
		Title:        "Attach Plant Photo",
		AllowedTypes: []string{".jpg", ".jpeg", ".png", ".webp"},
		ShowHidden:   false,
	})

	languageFilterInput := textinput.New()
	languageFilterInput.Prompt = "Filter: "
	languageFilterInput.CharLimit = 64

	sessionFilterInput := textinput.New()
	sessionFilterInput.Prompt = "Filter: "
	sessionFilterInput.CharLimit = 64

	messageSearchInput := textinput.New()
	messageSearchInput.Prompt = "Search: "
	messageSearchInput.CharLimit = 100

	globalSearchInput := textinput.New()
	globalSearchInput.Prompt = "Search all: "
	globalSearchInput.CharLimit = 100

	diseaseFilterInput := textinput.New()
	diseaseFilterInput.Prompt = "Filter: "
	diseaseFilterInput.CharLimit = 64

	ipmDiseaseInput := textinput.New()
	ipmDiseaseInput.Prompt = "> "
	ipmDiseaseInput.Placeholder = "Late Blight"
	ipmDiseaseInput.CharLimit = 100

	ipmCropInput := textinput.New()
	ipmCropInput.Prompt = "> "
	ipmCropInput.Placeholder = "tomato"
	ipmCropInput.CharLimit = 64
	if cfg != nil && cfg.CropType != "" {
		ipmCropInput.SetValue(cfg.CropType)
	}

	return AppView{
		dataModel:                 dataModel,
		textarea:                  ta,
		viewport:                  vp,
		pane:                      pane,
		activeTab:                 TabChat,
		ready:                     false,
		showHelp:                  false,
		showAbout:                 false,
		photoPicker:               photoPicker,
		languageFilterInput:       languageFilterInput,
		filteredLanguageList:      []i18n.Language{},
		sessionFilterInput:        sessionFilterInput,
		filteredSessionList:       []storage.SessionMetadata{},
		messageSearchInput:        messageSearchInput,
		globalSearchInput:         globalSearchInput,
		diseaseFilterInput:        diseaseFilterInput,
		ipmDiseaseInput:           ipmDiseaseInput,
		ipmCropInput:              ipmCropInput,
		highlightedMessageIdx:     -1,
		pendingScrollToMessageIdx: -1,
	}
}

func (a AppView) Init() tea.Cmd {
	cmds := []tea.Cmd{
		textarea.Blink,
		a.dataModel.FetchHealth(),
		a.dataModel.FetchAIStatus(),
	}

	// Pre-warm the weather dashboard when the farm location is known.
	if a.dataModel.Config != nil && a.dataModel.Config.HasLocation() {
		cmds = append(cmds, a.dataModel.FetchWeatherSnapshot())
	}

	return tea.Batch(cmds...)
}

func (a AppView) View() string {
	if !a.ready {
		return "Loading AgriGuard..."
	}

	// Modal rendering order (top to bottom layers):
	// 1. Info modal
	// 2. Help (can peek while in other modals)
	// 3. Language selector
	// 4. Farm settings
	// 5. Session manager
	// 6. Search modals
	// 7. Photo picker
	// 8. Disease detail / browser
	// 9. About

	// Show info modal if active (highest priority)
	if a.showInfoModal {
		return RenderAcknowledgeModal(a.infoModalTitle, a.infoModalMsg, ModalTypeInfo, a.width, a.height)
	}

	// Show help modal if toggled (top layer - can appear over other modals)
	if a.showHelp {
		return a.renderHelpModal(a.width, a.height)
	}

	if a.showLanguageSelector {
		return a.renderLanguageSelector()
	}

	if a.showSettings {
		return renderSettings(a.settingsFields, a.selectedSettingIdx, a.settingsEditMode, a.settingsEditInput, a.settingsHasChanges, a.settingsSaveError, a.width, a.height)
	}

	// Show session manager if toggled
	if a.showSessionManager {
		currentSessionID := ""
		if a.dataModel.CurrentSession != nil {
			currentSessionID = a.dataModel.CurrentSession.ID
		}
		return renderSessionManager(a.sessionList, a.selectedSessionIdx, currentSessionID, a.sessionRenameMode, a.sessionRenameInput, a.confirmDeleteSession, a.sessionFilterMode, a.sessionFilterInput, a.filteredSessionList, a.width, a.height)
	}

	if a.showGlobalSearch {
		return renderGlobalSearch(a.globalSearchInput, a.globalSearchResults, a.selectedGlobalIdx, a.globalSearchScrollIdx, a.width, a.height)
	}

	if a.showMessageSearch {
		return renderMessageSearch(a.messageSearchInput, a.messageSearchResults, a.selectedSearchIdx, a.messageSearchScrollIdx, a.width, a.height)
	}

	if a.photoPicker.Active {
		return RenderFilePickerModal(a.photoPicker, a.width, a.height)
	}

	// Disease detail sits on top of the browser list.
	if a.diseaseDetail != nil {
		return a.renderDiseaseDetail()
	}

	if a.showDiseaseBrowser {
		return a.renderDiseaseBrowser()
	}

	// Show about modal if toggled
	if a.showAbout {
		return renderAboutModal(a.width, a.height, a.dataModel.Version)
	}

	// Title bar - "AgriGuard - provider - Session Name ●"
	appText := AssistantStyle.Render(a.dataModel.T("appName"))
	providerText := ""
	if a.primaryProvider != "" {
		providerText = TitleStyle.Render(fmt.Sprintf(" - %s", a.primaryProvider))
	}
	sessionName := "New Session"
	if a.dataModel.CurrentSession != nil && a.dataModel.CurrentSession.Name != "" {
		sessionName = a.dataModel.CurrentSession.Name
	}
	sessionText := UserStyle.Render(fmt.Sprintf(" - %s", sessionName))

	statusDot := lipgloss.NewStyle().Foreground(dangerColor).Render(" ●")
	if a.serverHealthy {
		statusDot = lipgloss.NewStyle().Foreground(successColor).Render(" ●")
	}

	title := appText + providerText + sessionText + statusDot

	if a.dataModel.Dictating() {
		title += SelectedStyle.Render("  🎤 " + a.dataModel.T("voiceListening"))
	}

	tabBar := a.renderTabBar()

	// Separator with bottom margin for header (empty line forces spacing)
	separator := ""

	switch a.activeTab {
	case TabScanner, TabWeather, TabIPM:
		return lipgloss.JoinVertical(
			lipgloss.Left,
			title,
			tabBar,
			separator,
			a.pane.View(),
			a.renderPaneStatusBar(),
		)
	}

	// Chat tab: viewport with messages over the input area
	viewportView := a.viewport.View()
	inputView := a.textarea.View()

	// Status bar with bold user green descriptions (main chat uses user green)
	descStyle := lipgloss.NewStyle().Foreground(successColor).Bold(true)
	statusBar := fmt.Sprintf("Alt+Q %s  Alt+S %s  Alt+L %s  Alt+A %s  Alt+V %s  Alt+F %s  Enter %s",
		descStyle.Render(a.dataModel.T("quit")),
		descStyle.Render(a.dataModel.T("sessionsTitle")),
		descStyle.Render(a.dataModel.T("languageTitle")),
		descStyle.Render(a.dataModel.T("attachImage")),
		descStyle.Render(a.dataModel.T("voiceOn")),
		descStyle.Render(a.dataModel.T("searchTitle")),
		descStyle.Render(a.dataModel.T("send")),
	)
	statusBar = StatusStyle.Render(statusBar)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		tabBar,
		separator,
		viewportView,
		inputView,
		statusBar,
	)
}

// renderPaneStatusBar is the footer for the dashboard tabs.
func (a AppView) renderPaneStatusBar() string {
	descStyle := lipgloss.NewStyle().Foreground(successColor).Bold(true)

	var extra string
	switch a.activeTab {
	case TabScanner:
		extra = fmt.Sprintf("  Alt+A %s", descStyle.Render(a.dataModel.T("attachImage")))
	case TabIPM:
		extra = fmt.Sprintf("  Alt+D %s  Tab %s  Enter %s",
			descStyle.Render(a.dataModel.T("ipmDatabase")),
			descStyle.Render("Field"),
			descStyle.Render(a.dataModel.T("ipmGenerate")),
		)
	}

	statusBar := fmt.Sprintf("Alt+Q %s  Alt+1..4 %s  Alt+R %s  Alt+J/K %s%s",
		descStyle.Render(a.dataModel.T("quit")),
		descStyle.Render("Tabs"),
		descStyle.Render(a.dataModel.T("refresh")),
		descStyle.Render("Scroll"),
		extra,
	)
	return StatusStyle.Render(statusBar)
}

func (a AppView) getSessionList() []storage.SessionMetadata {
	if a.sessionFilterMode && len(a.filteredSessionList) > 0 {
		return a.filteredSessionList
	}
	return a.sessionList
}

func (a AppView) getLanguageList() []i18n.Language {
	if a.languageFilterMode && len(a.filteredLanguageList) > 0 {
		return a.filteredLanguageList
	}
	return i18n.Registry
}

func (a AppView) getDiseaseKeys() []string {
	if a.diseaseFilterMode && len(a.filteredDiseaseKeys) > 0 {
		return a.filteredDiseaseKeys
	}
	return a.diseaseKeys
}

func (a *AppView) closeAllModals() {
	a.showInfoModal = false
	a.showHelp = false
	a.showSessionManager = false
	a.showLanguageSelector = false
	a.showMessageSearch = false
	a.showGlobalSearch = false
	a.showSettings = false
	a.showAbout = false
	a.showDiseaseBrowser = false
	a.diseaseDetail = nil
	a.diseaseDetailKey = ""

	a.sessionRenameMode = false
	a.sessionFilterMode = false
	a.confirmDeleteSession = nil
	a.languageFilterMode = false
	a.diseaseFilterMode = false
	a.photoPicker.Active = false

	a.settingsEditMode = false

	if a.sessionRenameInput.Focused() {
		a.sessionRenameInput.Blur()
	}
	if a.sessionFilterInput.Focused() {
		a.sessionFilterInput.Blur()
	}
	if a.languageFilterInput.Focused() {
		a.languageFilterInput.Blur()
	}
	if a.messageSearchInput.Focused() {
		a.messageSearchInput.Blur()
	}
	if a.globalSearchInput.Focused() {
		a.globalSearchInput.Blur()
	}
	if a.diseaseFilterInput.Focused() {
		a.diseaseFilterInput.Blur()
	}
	if a.settingsEditInput.Focused() {
		a.settingsEditInput.Blur()
	}
}
