package locale

import (
	"strings"
	"testing"
)

var allKeys = []Key{
	KeyChooseLanguage,
	KeyChooseService,
	KeySendLink,
	KeyInvalidLink,
	KeyChooseKind,
	KeyDownloading,
	KeyLinkFirst,
	KeyUpstreamFailed,
	KeyNotFound,
	KeySendFailed,
	KeyDoneCaption,
	KeyPremiumInfo,
	KeyAdsInfo,
	KeyBtnDownload,
	KeyBtnPremium,
	KeyBtnAds,
	KeyBtnVideo,
	KeyBtnAudio,
}

func TestDefaultLanguageIsTotal(t *testing.T) {
	for _, key := range allKeys {
		if _, ok := messages[Default][key]; !ok {
			t.Errorf("default language %q is missing key %q", Default, key)
		}
	}
}

func TestLookupEveryLanguage(t *testing.T) {
	for _, lang := range Supported() {
		for _, key := range allKeys {
			if got := T(lang, key); got == "" || got == string(key) {
				t.Errorf("T(%q, %q) = %q, expected localized text", lang, key, got)
			}
		}
	}
}

func TestUnsupportedLanguageFallsBack(t *testing.T) {
	got := T("de", KeyChooseService)
	want := T(Default, KeyChooseService)
	if got != want {
		t.Fatalf("T(de) = %q, expected default-language text %q", got, want)
	}
}

func TestMissingKeyFallsBack(t *testing.T) {
	// choose_language exists only in the default language.
	got := T("en", KeyChooseLanguage)
	want := T(Default, KeyChooseLanguage)
	if got != want {
		t.Fatalf("T(en, choose_language) = %q, expected fallback %q", got, want)
	}
}

func TestContactHandleInterpolation(t *testing.T) {
	for _, lang := range Supported() {
		for _, key := range []Key{KeyPremiumInfo, KeyAdsInfo, KeyDoneCaption} {
			got := T(lang, key, "AdInboxBot")
			if !strings.Contains(got, "@AdInboxBot") {
				t.Errorf("T(%q, %q) = %q, expected interpolated @AdInboxBot", lang, key, got)
			}
		}
	}
}

func TestSupportedSet(t *testing.T) {
	if len(Supported()) != 3 {
		t.Fatalf("expected 3 supported languages, got %d", len(Supported()))
	}
	for _, code := range Supported() {
		if !IsSupported(code) {
			t.Errorf("IsSupported(%q) = false", code)
		}
		if Name(code) == "" {
			t.Errorf("Name(%q) is empty", code)
		}
	}
	if IsSupported("de") {
		t.Error("IsSupported(de) = true, expected false")
	}
}
