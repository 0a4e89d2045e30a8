package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func (a AppView) renderHelpModal(width, height int) string {
	kb := a.dataModel.Config.Keybindings

	green := lipgloss.NewStyle().
		Bold(true).
		Foreground(successColor)

	title := green.Render("AgriGuard - Keyboard Shortcuts")

	blue := lipgloss.NewStyle().Foreground(accentColor)

	globalActions := lipgloss.JoinVertical(
		lipgloss.Left,
		blue.Render("## Global Actions"),
		fmt.Sprintf("• %-13s New chat", kb.DisplayActionKey("new_session")),
		fmt.Sprintf("• %-13s Sessions", kb.DisplayActionKey("session_manager")),
		fmt.Sprintf("• %-13s Language", kb.DisplayActionKey("language_selector")),
		fmt.Sprintf("• %-13s Search session", kb.DisplayActionKey("search_messages")),
		fmt.Sprintf("• %-13s Search all", kb.DisplayActionKey("search_all_sessions")),
		fmt.Sprintf("• %-13s Farm settings", kb.DisplayActionKey("settings")),
		fmt.Sprintf("• %-13s About", kb.DisplayActionKey("about")),
		fmt.Sprintf("• %-13s Toggle this help", kb.DisplayActionKey("help")),
		fmt.Sprintf("• %-13s Quit", kb.DisplayActionKey("quit")),
	)

	tabs := lipgloss.JoinVertical(
		lipgloss.Left,
		blue.Render("## Tabs"),
		fmt.Sprintf("• %-13s Chat", kb.DisplayActionKey("chat_tab")),
		fmt.Sprintf("• %-13s Leaf scanner", kb.DisplayActionKey("scanner_tab")),
		fmt.Sprintf("• %-13s Weather", kb.DisplayActionKey("weather_tab")),
		fmt.Sprintf("• %-13s IPM planner", kb.DisplayActionKey("ipm_tab")),
		fmt.Sprintf("• %-13s Next / previous tab", kb.DisplayActionKey("next_tab")+"/"+kb.DisplayActionKey("prev_tab")),
	)

	chatActions := lipgloss.JoinVertical(
		lipgloss.Left,
		blue.Render("## Chat Actions"),
		"• Enter         Send message",
		fmt.Sprintf("• %-13s Attach plant photo", kb.DisplayActionKey("attach_photo")),
		fmt.Sprintf("• %-13s Dictate a message", kb.DisplayActionKey("voice_capture")),
		fmt.Sprintf("• %-13s Speak last reply", kb.DisplayActionKey("speak_reply")),
		fmt.Sprintf("• %-13s Stop speaking", kb.DisplayActionKey("stop_speaking")),
		fmt.Sprintf("• %-13s Run suggested action", kb.DisplayActionKey("run_action")),
		fmt.Sprintf("• %-13s Compose in $EDITOR", kb.DisplayActionKey("external_editor")),
		fmt.Sprintf("• %-13s Copy last response", kb.DisplayActionKey("yank_last_response")),
		fmt.Sprintf("• %-13s Copy conversation", kb.DisplayActionKey("yank_conversation")),
	)

	navigation := lipgloss.JoinVertical(
		lipgloss.Left,
		blue.Render("## Navigation"),
		fmt.Sprintf("• %-13s Scroll down 1 line", kb.DisplayActionKey("scroll_down")),
		fmt.Sprintf("• %-13s Scroll up 1 line", kb.DisplayActionKey("scroll_up")),
		fmt.Sprintf("• %-13s Half page down", kb.DisplayActionKey("half_page_down")),
		fmt.Sprintf("• %-13s Half page up", kb.DisplayActionKey("half_page_up")),
		fmt.Sprintf("• %-13s Jump to top", kb.DisplayActionKey("scroll_to_top")),
		fmt.Sprintf("• %-13s Jump to bottom", kb.DisplayActionKey("scroll_to_bottom")),
	)

	dashboards := lipgloss.JoinVertical(
		lipgloss.Left,
		blue.Render("## Dashboards"),
		fmt.Sprintf("• %-13s Refresh data", kb.DisplayActionKey("refresh")),
		fmt.Sprintf("• %-13s Disease database", kb.DisplayActionKey("disease_database")),
	)

	column1 := lipgloss.JoinVertical(
		lipgloss.Left,
		globalActions,
		"",
		tabs,
		"",
		dashboards,
	)

	column2 := lipgloss.JoinVertical(
		lipgloss.Left,
		chatActions,
		"",
		navigation,
	)

	columnStyle := lipgloss.NewStyle().Width(42).PaddingLeft(8)

	twoColumns := lipgloss.JoinHorizontal(
		lipgloss.Top,
		columnStyle.Render(column1),
		"    ",
		columnStyle.Render(column2),
	)

	footer := lipgloss.NewStyle().
		Foreground(dimColor).
		Render(fmt.Sprintf("      Press %s or Esc to close this help", kb.DisplayActionKey("help")))

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		title,
		"",
		twoColumns,
		"",
		footer,
	)

	helpBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Padding(1, 2).
		Width(100)

	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		helpBox.Render(content),
	)
}
