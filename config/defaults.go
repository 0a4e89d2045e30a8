package config

func DefaultSystemConfig() *SystemConfig {
	return &SystemConfig{
		DataDirectory: "~/.local/share/agriguard",
	}
}

func DefaultUserConfig() *UserConfig {
	return &UserConfig{
		Server: ServerConfig{
			URL: DefaultServerURL,
		},
		SpeakReplies: false,
	}
}

func GenerateSystemConfigTemplate() string {
	return `# AgriGuard System Configuration
# Location: ~/.config/agriguard/settings.toml
# This file uses TOML format: https://toml.io

# Directory where sessions and user config are stored
data_directory = "~/.local/share/agriguard"
`
}

func GenerateUserConfigTemplate() string {
	return `# AgriGuard User Configuration
# Location: <data_directory>/config.toml
# This file uses TOML format: https://toml.io

[server]
# AgriGuard backend URL
url = "http://localhost:8000"

[farm]
# Farm coordinates, used for weather dashboards, disease risk and
# spray windows. Leave commented to keep location features off.
# latitude = 12.97
# longitude = 77.59

# Main crop grown on this farm (optional)
# Example: "tomato", "potato", "corn", "rice"
# crop_type = ""

# Interface language (optional, picked interactively when unset)
# Example: "hi-IN", "es-ES", "fr-FR"
# language = ""

# Read assistant replies aloud when a speech engine is installed
speak_replies = false
`
}
