// Package i18n holds the translation catalog for the UI-facing strings.
// English is the source language; Hindi and Gujarati cover the shop floor.
package i18n

import "strings"

const defaultLang = "en"

var translations = map[string]map[string]string{
	"en": {
		"customers":             "Customers",
		"measurements":          "Measurements",
		"orders":                "Orders",
		"team":                  "Team",
		"settings":              "Settings",
		"dashboard":             "Dashboard",
		"pending":               "Pending",
		"working":               "Working",
		"delivered":             "Delivered",
		"unknown":               "Unknown",
		"required":              "Required",
		"add_customer":          "Add Customer",
		"add_measurement":       "Add Measurement",
		"add_order":             "Add Order",
		"add_team_member":       "Add Team Member",
		"update_status":         "Update Status",
		"settings_updated":      "Settings updated",
		"field_added":           "Field added",
		"field_removed":         "Field removed",
		"field_exists":          "This field already exists",
		"data_imported":         "Data imported successfully",
		"data_reset":            "All data has been reset",
		"invalid_data_file":     "Invalid data file",
		"no_customers":          "No customers found",
		"no_team_members":       "No team members found",
		"total_customers":       "Total Customers",
		"pending_orders":        "Pending Orders",
		"completed_orders":      "Completed Orders",
		"total_revenue":         "Total Revenue",
		"clothing_type_shirt":   "Shirt",
		"clothing_type_pant":    "Pant",
		"clothing_type_suit":    "Suit",
		"clothing_type_dress":   "Dress",
		"clothing_type_other":   "Other",
	},
	"hi": {
		"customers":           "ग्राहक",
		"measurements":        "माप",
		"orders":              "ऑर्डर",
		"team":                "टीम",
		"settings":            "सेटिंग्स",
		"dashboard":           "डैशबोर्ड",
		"pending":             "लंबित",
		"working":             "चालू",
		"delivered":           "वितरित",
		"unknown":             "अज्ञात",
		"required":            "आवश्यक",
		"add_customer":        "ग्राहक जोड़ें",
		"add_measurement":     "माप जोड़ें",
		"add_order":           "ऑर्डर जोड़ें",
		"add_team_member":     "टीम सदस्य जोड़ें",
		"update_status":       "स्थिति बदलें",
		"settings_updated":    "सेटिंग्स अपडेट हुईं",
		"field_added":         "फ़ील्ड जोड़ी गई",
		"field_removed":       "फ़ील्ड हटाई गई",
		"field_exists":        "यह फ़ील्ड पहले से मौजूद है",
		"data_imported":       "डेटा आयात हो गया",
		"data_reset":          "सारा डेटा रीसेट हो गया",
		"invalid_data_file":   "अमान्य डेटा फ़ाइल",
		"no_customers":        "कोई ग्राहक नहीं मिला",
		"no_team_members":     "कोई टीम सदस्य नहीं मिला",
		"total_customers":     "कुल ग्राहक",
		"pending_orders":      "लंबित ऑर्डर",
		"completed_orders":    "पूर्ण ऑर्डर",
		"total_revenue":       "कुल आय",
		"clothing_type_shirt": "कमीज़",
		"clothing_type_pant":  "पैंट",
		"clothing_type_suit":  "सूट",
		"clothing_type_dress": "पोशाक",
		"clothing_type_other": "अन्य",
	},
	"gu": {
		"customers":           "ગ્રાહકો",
		"measurements":        "માપ",
		"orders":              "ઓર્ડર",
		"team":                "ટીમ",
		"settings":            "સેટિંગ્સ",
		"dashboard":           "ડેશબોર્ડ",
		"pending":             "બાકી",
		"working":             "ચાલુ",
		"delivered":           "પહોંચાડેલ",
		"unknown":             "અજાણ્યું",
		"required":            "જરૂરી",
		"add_customer":        "ગ્રાહક ઉમેરો",
		"add_measurement":     "માપ ઉમેરો",
		"add_order":           "ઓર્ડર ઉમેરો",
		"add_team_member":     "ટીમ સભ્ય ઉમેરો",
		"update_status":       "સ્થિતિ બદલો",
		"settings_updated":    "સેટિંગ્સ અપડેટ થઈ",
		"field_added":         "ફીલ્ડ ઉમેરાઈ",
		"field_removed":       "ફીલ્ડ દૂર થઈ",
		"field_exists":        "આ ફીલ્ડ પહેલેથી હાજર છે",
		"data_imported":       "ડેટા આયાત થયો",
		"data_reset":          "બધો ડેટા રીસેટ થયો",
		"invalid_data_file":   "અમાન્ય ડેટા ફાઈલ",
		"no_customers":        "કોઈ ગ્રાહક મળ્યા નથી",
		"no_team_members":     "કોઈ ટીમ સભ્ય મળ્યા નથી",
		"total_customers":     "કુલ ગ્રાહકો",
		"pending_orders":      "બાકી ઓર્ડર",
		"completed_orders":    "પૂર્ણ ઓર્ડર",
		"total_revenue":       "કુલ આવક",
		"clothing_type_shirt": "શર્ટ",
		"clothing_type_pant":  "પેન્ટ",
		"clothing_type_suit":  "સૂટ",
		"clothing_type_dress": "ડ્રેસ",
		"clothing_type_other": "અન્ય",
	},
}

// Languages returns the supported language codes.
func Languages() []string { return []string{"en", "hi", "gu"} }

// Supported reports whether lang has a catalog.
func Supported(lang string) bool {
	_, ok := translations[lang]
	return ok
}

// DetectLanguage picks a supported language from an Accept-Language header,
// falling back to English.
func DetectLanguage(header string) string {
	for _, part := range strings.Split(header, ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if tag == "" {
			continue
		}
		code := strings.ToLower(strings.SplitN(tag, "-", 2)[0])
		if Supported(code) {
			return code
		}
	}
	return defaultLang
}

// T translates a code. Unknown languages fall back to English; unknown codes
// fall back to the code itself.
func T(lang, code string) string {
	if m, ok := translations[lang]; ok {
		if msg, ok := m[code]; ok {
			return msg
		}
	}
	if msg, ok := translations[defaultLang][code]; ok {
		return msg
	}
	return code
}

// Catalog returns the full catalog for a language, with English filling any
// untranslated codes. Clients use it to translate page text wholesale.
func Catalog(lang string) map[string]string {
	out := make(map[string]string, len(translations[defaultLang]))
	for code, msg := range translations[defaultLang] {
		out[code] = msg
	}
	if lang == defaultLang {
		return out
	}
	for code, msg := range translations[lang] {
		out[code] = msg
	}
	return out
}
