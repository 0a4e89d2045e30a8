package model

import (
	"os"
	"os/exec"
	"runtime"

	tea "github.com/charmbracelet/bubbletea"

	"agriguard/config"
)

// getDefaultEditor returns the user's preferred editor from environment variables
func getDefaultEditor() string {
	editor := os.Getenv("AGRIGUARD_EDITOR")
	if editor != "" {
		return editor
	}

	editor = os.Getenv("EDITOR")
	if editor == "" {
		editor = os.Getenv("VISUAL")
	}
	if editor != "" {
		return editor
	}

	if runtime.GOOS == "windows" {
		return "notepad"
	}

	preferredEditors := []string{"nano", "nvim", "vim", "vi", "emacs"}
	for _, ed := range preferredEditors {
		if _, err := exec.LookPath(ed); err == nil {
			return ed
		}
	}

	// Ultimate fallback (vi is POSIX standard)
	return "vi"
}

// OpenExternalEditor opens the user's preferred text editor to compose a message
func (m *Model) OpenExternalEditor(currentContent string) tea.Cmd {
	// Temp file lives in the cache directory, never the synced data dir
	tmpPath := config.GetEditorTempFile()

	tmpFile, err := os.OpenFile(tmpPath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return func() tea.Msg {
			return EditorErrorMsg{Err: err}
		}
	}

	if currentContent != "" {
		if _, err := tmpFile.WriteString(currentContent); err != nil {
			tmpFile.Close()
			os.Remove(tmpPath)
			return func() tea.Msg {
				return EditorErrorMsg{Err: err}
			}
		}
	}
	tmpFile.Close()

	editor := getDefaultEditor()

	cmd := exec.Command(editor, tmpPath)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	// ExecProcess suspends the TUI while the editor runs
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		content, readErr := os.ReadFile(tmpPath)

		// Keep the file around; it is cleared once the message is sent

		if err != nil {
			return EditorErrorMsg{Err: err}
		}
		if readErr != nil {
			return EditorErrorMsg{Err: readErr}
		}

		return EditorContentMsg{Content: string(content)}
	})
}
