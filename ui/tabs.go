package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type Tab int

const (
	TabChat Tab = iota
	TabScanner
	TabWeather
	TabIPM
)

const tabCount = 4

// tabLabelKeys maps each tab to its translation key so the bar follows the
// active language.
var tabLabelKeys = [tabCount]string{
	TabChat:    "tabChat",
	TabScanner: "tabScanner",
	TabWeather: "tabWeather",
	TabIPM:     "tabIPM",
}

func (t Tab) next() Tab {
	return (t + 1) % tabCount
}

func (t Tab) prev() Tab {
	return (t + tabCount - 1) % tabCount
}

// renderTabBar draws the tab strip shown under the title bar. The active tab
// is highlighted, the rest stay dim with their Alt+N shortcut.
func (a AppView) renderTabBar() string {
	activeStyle := lipgloss.NewStyle().Foreground(successColor).Bold(true)

	var parts []string
	for i := 0; i < tabCount; i++ {
		tab := Tab(i)
		label := a.dataModel.T(tabLabelKeys[tab])
		if tab == a.activeTab {
			parts = append(parts, activeStyle.Render("[ "+label+" ]"))
		} else {
			parts = append(parts, DimStyle.Render("  "+label+"  "))
		}
	}

	return strings.Join(parts, " ")
}
