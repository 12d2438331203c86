package callbacks

import (
	"testing"

	tele "gopkg.in/telebot.v4"
)

func TestParseCallbackDataPrefersUnique(t *testing.T) {
	cb := &tele.Callback{Unique: "get_video", Data: "payload"}
	key, payload := ParseCallbackData(cb)
	if key != "get_video" || payload != "payload" {
		t.Fatalf("ParseCallbackData = (%q, %q), want (get_video, payload)", key, payload)
	}
}

func TestParseCallbackDataFromEncodedData(t *testing.T) {
	cases := []struct {
		data    string
		key     string
		payload string
	}{
		{`\flang_en`, "lang_en", ""},
		{`\fdownload|`, "download", ""},
		{`\fget_audio|extra|parts`, "get_audio", "extra|parts"},
	}
	for _, tc := range cases {
		key, payload := ParseCallbackData(&tele.Callback{Data: tc.data})
		if key != tc.key || payload != tc.payload {
			t.Errorf("ParseCallbackData(%q) = (%q, %q), want (%q, %q)",
				tc.data, key, payload, tc.key, tc.payload)
		}
	}
}

func TestParseCallbackDataNil(t *testing.T) {
	key, payload := ParseCallbackData(nil)
	if key != "" || payload != "" {
		t.Fatalf("ParseCallbackData(nil) = (%q, %q), want empty", key, payload)
	}
}
