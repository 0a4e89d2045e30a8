package i18n

import "strings"

// Language describes one entry in the fixed language registry.
type Language struct {
	Code       string
	Name       string
	NativeName string
	Flag       string
	Greeting   string
}

// DefaultLanguage is the code whose catalog carries every key.
const DefaultLanguage = "en-US"

// Registry lists every language the UI offers, in display order.
// The first entry doubles as the fallback when an active code is
// not registered.
var Registry = []Language{
	{Code: "en-US", Name: "English", NativeName: "English", Flag: "🇺🇸", Greeting: "Hello! I'm your AI agronomist. How can I help your farm today?"},
	{Code: "hi-IN", Name: "Hindi", NativeName: "हिन्दी", Flag: "🇮🇳", Greeting: "नमस्ते! मैं आपका AI कृषि सलाहकार हूँ। आज आपके खेत की कैसे मदद करूँ?"},
	{Code: "es-ES", Name: "Spanish", NativeName: "Español", Flag: "🇪🇸", Greeting: "¡Hola! Soy tu agrónomo de IA. ¿Cómo puedo ayudar a tu campo hoy?"},
	{Code: "fr-FR", Name: "French", NativeName: "Français", Flag: "🇫🇷", Greeting: "Bonjour ! Je suis votre agronome IA. Comment puis-je aider votre ferme aujourd'hui ?"},
	{Code: "pt-BR", Name: "Portuguese", NativeName: "Português", Flag: "🇧🇷", Greeting: "Olá! Sou seu agrônomo de IA. Como posso ajudar sua fazenda hoje?"},
	{Code: "de-DE", Name: "German", NativeName: "Deutsch", Flag: "🇩🇪", Greeting: "Hallo! Ich bin Ihr KI-Agronom. Wie kann ich Ihrem Hof heute helfen?"},
	{Code: "zh-CN", Name: "Chinese (Simplified)", NativeName: "简体中文", Flag: "🇨🇳", Greeting: "你好！我是您的AI农艺师。今天我能为您的农田做些什么？"},
	{Code: "ar-SA", Name: "Arabic", NativeName: "العربية", Flag: "🇸🇦", Greeting: "مرحباً! أنا مستشارك الزراعي الذكي. كيف يمكنني مساعدة مزرعتك اليوم؟"},
	{Code: "bn-IN", Name: "Bengali", NativeName: "বাংলা", Flag: "🇮🇳", Greeting: "নমস্কার! আমি আপনার AI কৃষি পরামর্শদাতা। আজ আপনার খামারে কীভাবে সাহায্য করতে পারি?"},
	{Code: "ta-IN", Name: "Tamil", NativeName: "தமிழ்", Flag: "🇮🇳", Greeting: "வணக்கம்! நான் உங்கள் AI வேளாண் ஆலோசகர். இன்று உங்கள் பண்ணைக்கு எப்படி உதவலாம்?"},
	{Code: "te-IN", Name: "Telugu", NativeName: "తెలుగు", Flag: "🇮🇳", Greeting: "నమస్కారం! నేను మీ AI వ్యవసాయ సలహాదారుని. ఈరోజు మీ పొలానికి ఎలా సహాయం చేయగలను?"},
	{Code: "mr-IN", Name: "Marathi", NativeName: "मराठी", Flag: "🇮🇳", Greeting: "नमस्कार! मी तुमचा AI कृषी सल्लागार आहे. आज तुमच्या शेतीला कशी मदत करू?"},
	{Code: "gu-IN", Name: "Gujarati", NativeName: "ગુજરાતી", Flag: "🇮🇳", Greeting: "નમસ્તે! હું તમારો AI કૃષિ સલાહકાર છું. આજે તમારા ખેતરમાં કેવી રીતે મદદ કરી શકું?"},
	{Code: "kn-IN", Name: "Kannada", NativeName: "ಕನ್ನಡ", Flag: "🇮🇳", Greeting: "ನಮಸ್ಕಾರ! ನಾನು ನಿಮ್ಮ AI ಕೃಷಿ ಸಲಹೆಗಾರ. ಇಂದು ನಿಮ್ಮ ಹೊಲಕ್ಕೆ ಹೇಗೆ ಸಹಾಯ ಮಾಡಲಿ?"},
	{Code: "pa-IN", Name: "Punjabi", NativeName: "ਪੰਜਾਬੀ", Flag: "🇮🇳", Greeting: "ਸਤ ਸ੍ਰੀ ਅਕਾਲ! ਮੈਂ ਤੁਹਾਡਾ AI ਖੇਤੀ ਸਲਾਹਕਾਰ ਹਾਂ। ਅੱਜ ਤੁਹਾਡੇ ਖੇਤ ਦੀ ਕਿਵੇਂ ਮਦਦ ਕਰਾਂ?"},
}

// Lookup returns the registry entry for code.
func Lookup(code string) (Language, bool) {
	for _, l := range Registry {
		if l.Code == code {
			return l, true
		}
	}
	return Language{}, false
}

// BaseSubtag returns the language portion of a locale code,
// e.g. "en" for "en-US". Underscore separators are tolerated.
func BaseSubtag(code string) string {
	code = strings.TrimSpace(strings.ReplaceAll(code, "_", "-"))
	if i := strings.IndexByte(code, '-'); i >= 0 {
		code = code[:i]
	}
	return strings.ToLower(code)
}

// matchBase returns the first registered language sharing code's base
// subtag, so "es" and "es-MX" both resolve through "es-ES".
func matchBase(code string) (string, bool) {
	base := BaseSubtag(code)
	if base == "" {
		return "", false
	}
	for _, l := range Registry {
		if BaseSubtag(l.Code) == base {
			return l.Code, true
		}
	}
	return "", false
}
