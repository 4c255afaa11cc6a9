package i18n

import "testing"

func TestDetectLanguage(t *testing.T) {
	if DetectLanguage("en-US,en;q=0.9") != "en" {
		t.Fatalf("expected en")
	}
	if DetectLanguage("hi-IN,hi;q=0.8") != "hi" {
		t.Fatalf("expected hi")
	}
	if DetectLanguage("GU-in") != "gu" {
		t.Fatalf("expected gu for GU-in")
	}
	if DetectLanguage("fr-FR,fr;q=0.8") != "en" {
		t.Fatalf("expected en fallback")
	}
	if DetectLanguage("") != "en" {
		t.Fatalf("expected default en")
	}
}

func TestTranslations(t *testing.T) {
	if T("en", "required") != "Required" {
		t.Fatalf("expected Required")
	}
	if T("hi", "customers") != "ग्राहक" {
		t.Fatalf("expected Hindi customers label")
	}
	// unknown code -> fallback to code
	if T("en", "__nope__") != "__nope__" {
		t.Fatalf("expected fallback to code")
	}
	// unknown language -> fallback to en translation if exists
	if T("fr", "required") != "Required" {
		t.Fatalf("expected en fallback for fr lang")
	}
}

func TestCatalogFillsGapsFromEnglish(t *testing.T) {
	catalog := Catalog("hi")
	if catalog["customers"] != "ग्राहक" {
		t.Fatalf("expected translated entry")
	}
	if len(catalog) != len(Catalog("en")) {
		t.Fatalf("expected catalog to cover every english code")
	}
}
