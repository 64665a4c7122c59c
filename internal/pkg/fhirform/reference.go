package fhirform

// Language is one entry of the supported-language reference list used
// to populate language-selection inputs.
type Language struct {
	Code    string `json:"code"`
	Display string `json:"display"`
}

// Country is one entry of the country reference list used to populate
// address country inputs.
type Country struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// supportedLanguages is fixed configuration data: BCP 47 code plus the
// display name shown in the UI. Loaded once, never recomputed.
var supportedLanguages = []Language{
	{Code: "ar", Display: "Arabic"},
	{Code: "bn", Display: "Bengali"},
	{Code: "cs", Display: "Czech"},
	{Code: "da", Display: "Danish"},
	{Code: "de", Display: "German"},
	{Code: "el", Display: "Greek"},
	{Code: "en", Display: "English"},
	{Code: "es", Display: "Spanish"},
	{Code: "fi", Display: "Finnish"},
	{Code: "fr", Display: "French"},
	{Code: "he", Display: "Hebrew"},
	{Code: "hi", Display: "Hindi"},
	{Code: "id", Display: "Indonesian"},
	{Code: "it", Display: "Italian"},
	{Code: "ja", Display: "Japanese"},
	{Code: "ko", Display: "Korean"},
	{Code: "ms", Display: "Malay"},
	{Code: "nl", Display: "Dutch"},
	{Code: "no", Display: "Norwegian"},
	{Code: "pl", Display: "Polish"},
	{Code: "pt", Display: "Portuguese"},
	{Code: "ru", Display: "Russian"},
	{Code: "sv", Display: "Swedish"},
	{Code: "sw", Display: "Swahili"},
	{Code: "ta", Display: "Tamil"},
	{Code: "th", Display: "Thai"},
	{Code: "tl", Display: "Tagalog"},
	{Code: "tr", Display: "Turkish"},
	{Code: "uk", Display: "Ukrainian"},
	{Code: "ur", Display: "Urdu"},
	{Code: "vi", Display: "Vietnamese"},
	{Code: "zh", Display: "Chinese"},
}

var languageDisplayByCode = func() map[string]string {
	index := make(map[string]string, len(supportedLanguages))
	for _, language := range supportedLanguages {
		index[language.Code] = language.Display
	}
	return index
}()

// countries is fixed configuration data: ISO 3166-1 alpha-2 code plus
// the short English name.
var countries = []Country{
	{Code: "AR", Name: "Argentina"},
	{Code: "AT", Name: "Austria"},
	{Code: "AU", Name: "Australia"},
	{Code: "BD", Name: "Bangladesh"},
	{Code: "BE", Name: "Belgium"},
	{Code: "BR", Name: "Brazil"},
	{Code: "CA", Name: "Canada"},
	{Code: "CH", Name: "Switzerland"},
	{Code: "CL", Name: "Chile"},
	{Code: "CN", Name: "China"},
	{Code: "CO", Name: "Colombia"},
	{Code: "CZ", Name: "Czechia"},
	{Code: "DE", Name: "Germany"},
	{Code: "DK", Name: "Denmark"},
	{Code: "EG", Name: "Egypt"},
	{Code: "ES", Name: "Spain"},
	{Code: "ET", Name: "Ethiopia"},
	{Code: "FI", Name: "Finland"},
	{Code: "FR", Name: "France"},
	{Code: "GB", Name: "United Kingdom"},
	{Code: "GH", Name: "Ghana"},
	{Code: "GR", Name: "Greece"},
	{Code: "HK", Name: "Hong Kong"},
	{Code: "HU", Name: "Hungary"},
	{Code: "ID", Name: "Indonesia"},
	{Code: "IE", Name: "Ireland"},
	{Code: "IL", Name: "Israel"},
	{Code: "IN", Name: "India"},
	{Code: "IT", Name: "Italy"},
	{Code: "JP", Name: "Japan"},
	{Code: "KE", Name: "Kenya"},
	{Code: "KR", Name: "South Korea"},
	{Code: "LK", Name: "Sri Lanka"},
	{Code: "MA", Name: "Morocco"},
	{Code: "MX", Name: "Mexico"},
	{Code: "MY", Name: "Malaysia"},
	{Code: "NG", Name: "Nigeria"},
	{Code: "NL", Name: "Netherlands"},
	{Code: "NO", Name: "Norway"},
	{Code: "NP", Name: "Nepal"},
	{Code: "NZ", Name: "New Zealand"},
	{Code: "PE", Name: "Peru"},
	{Code: "PH", Name: "Philippines"},
	{Code: "PK", Name: "Pakistan"},
	{Code: "PL", Name: "Poland"},
	{Code: "PT", Name: "Portugal"},
	{Code: "RO", Name: "Romania"},
	{Code: "SA", Name: "Saudi Arabia"},
	{Code: "SE", Name: "Sweden"},
	{Code: "SG", Name: "Singapore"},
	{Code: "TH", Name: "Thailand"},
	{Code: "TR", Name: "Turkey"},
	{Code: "TW", Name: "Taiwan"},
	{Code: "TZ", Name: "Tanzania"},
	{Code: "UA", Name: "Ukraine"},
	{Code: "US", Name: "United States"},
	{Code: "VN", Name: "Vietnam"},
	{Code: "ZA", Name: "South Africa"},
}

// SupportedLanguages returns a copy of the supported-language list so
// callers cannot mutate the package data.
func SupportedLanguages() []Language {
	out := make([]Language, len(supportedLanguages))
	copy(out, supportedLanguages)
	return out
}

// LanguageDisplay returns the display name for a supported language
// code, or an empty string for codes outside the list.
func LanguageDisplay(code string) string {
	return languageDisplayByCode[code]
}

// Countries returns a copy of the country list.
func Countries() []Country {
	out := make([]Country, len(countries))
	copy(out, countries)
	return out
}
