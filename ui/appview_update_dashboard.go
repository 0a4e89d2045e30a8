package ui

import (
	"fmt"
	"sort"

	tea "github.com/charmbracelet/bubbletea"

	"agriguard/config"
)

// handleDashboardMessage applies data arriving for the title bar and
// the scanner/weather/IPM tabs.
func (a AppView) handleDashboardMessage(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case healthMsg:
		if msg.Err != nil {
			a.serverHealthy = false
			if config.DebugLog != nil {
				config.DebugLog.Printf("[Status] health check failed: %v", msg.Err)
			}
			return a, nil
		}
		a.serverHealthy = msg.Health.Status == "healthy"
		return a, nil

	case aiStatusMsg:
		if msg.Err != nil {
			if config.DebugLog != nil {
				config.DebugLog.Printf("[Status] AI status failed: %v", msg.Err)
			}
			return a, nil
		}
		a.primaryProvider = msg.Status.PrimaryProvider
		return a, nil

	case weatherSnapshotMsg:
		a.weatherLoading = false
		if msg.Err != nil {
			a.weatherErr = msg.Err
			a.refreshPane(false)
			return a, nil
		}
		a.weatherCurrent = msg.Current
		a.weatherRisk = msg.Risk
		a.weatherErr = nil
		a.refreshPane(false)
		return a, nil

	case forecastMsg:
		// Forecast, spray windows and outbreak are secondary cards:
		// when one fails the rest of the dashboard stays up
		if msg.Err != nil {
			if config.DebugLog != nil {
				config.DebugLog.Printf("[Weather] forecast failed: %v", msg.Err)
			}
			return a, nil
		}
		a.weatherForecast = msg.Forecast
		a.refreshPane(false)
		return a, nil

	case sprayWindowsMsg:
		if msg.Err != nil {
			if config.DebugLog != nil {
				config.DebugLog.Printf("[Weather] spray windows failed: %v", msg.Err)
			}
			return a, nil
		}
		a.sprayWindows = msg.Windows
		a.refreshPane(false)
		return a, nil

	case outbreakForecastMsg:
		if msg.Err != nil {
			if config.DebugLog != nil {
				config.DebugLog.Printf("[Weather] outbreak forecast failed: %v", msg.Err)
			}
			return a, nil
		}
		a.outbreak = msg.Forecast
		a.refreshPane(false)
		return a, nil

	case leafAnalysisMsg:
		a.scannerAnalyzing = false
		if msg.Err != nil {
			a.scannerErr = msg.Err
			a.refreshPane(true)
			return a, nil
		}
		a.scannerAnalysis = msg.Analysis
		a.scannerErr = nil
		a.refreshPane(true)
		return a, nil

	case ipmStrategyMsg:
		a.ipmLoading = false
		if msg.Err != nil {
			a.ipmErr = msg.Err
			a.refreshPane(true)
			return a, nil
		}
		a.ipmStrategy = msg.Strategy
		a.ipmErr = nil
		a.refreshPane(true)
		return a, nil

	case quickIPMMsg:
		if msg.Err != nil {
			a.showInfoModal = true
			a.infoModalTitle = a.dataModel.T("errorTitle")
			a.infoModalMsg = a.dataModel.T("connectionError")
			return a, nil
		}
		a.showInfoModal = true
		a.infoModalTitle = fmt.Sprintf("%s on %s", msg.Recommendation.Disease, msg.Recommendation.Crop)
		a.infoModalMsg = msg.Recommendation.Recommendation
		return a, nil

	case diseaseDatabaseMsg:
		if msg.Err != nil {
			a.showDiseaseBrowser = false
			a.showInfoModal = true
			a.infoModalTitle = a.dataModel.T("errorTitle")
			a.infoModalMsg = a.dataModel.T("connectionError")
			return a, nil
		}
		a.diseaseDB = msg.Database
		a.diseaseKeys = append([]string(nil), msg.Database.Diseases...)
		sort.Strings(a.diseaseKeys)
		a.selectedDiseaseIdx = 0
		return a, nil

	case diseaseEntryMsg:
		if msg.Err != nil {
			a.showInfoModal = true
			a.infoModalTitle = a.dataModel.T("errorTitle")
			a.infoModalMsg = a.dataModel.T("connectionError")
			return a, nil
		}
		a.diseaseDetail = msg.Info
		a.diseaseDetailKey = msg.Key
		return a, nil
	}

	return a, nil
}
