package agronomist

import "fmt"

// languageNames maps the client's locale codes to the names used when
// instructing the model which language to answer in.
var languageNames = map[string]string{
	"en-US": "English",
	"hi-IN": "Hindi",
	"es-ES": "Spanish",
	"fr-FR": "French",
	"pt-BR": "Portuguese",
	"de-DE": "German",
	"zh-CN": "Chinese (Simplified)",
	"ar-SA": "Arabic",
	"bn-IN": "Bengali",
	"ta-IN": "Tamil",
	"te-IN": "Telugu",
	"mr-IN": "Marathi",
	"gu-IN": "Gujarati",
	"kn-IN": "Kannada",
	"pa-IN": "Punjabi",
}

// languageInstruction builds the prompt prefix that pins the reply
// language. Unknown codes fall back to English.
func languageInstruction(code string) string {
	name, ok := languageNames[code]
	if !ok {
		name = "English"
	}
	return fmt.Sprintf("IMPORTANT: Respond in %s. The user speaks %s.", name, name)
}
