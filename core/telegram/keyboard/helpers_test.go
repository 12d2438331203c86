package keyboard

import "testing"

func TestInlineButtonsRowsLayout(t *testing.T) {
	markup := InlineButtonsRows(
		[]InlineBtn{{Text: "🎥 Video", Unique: "get_video"}, {Text: "🎵 Audio", Unique: "get_audio"}},
		[]InlineBtn{{Text: "Back", Unique: "back", Data: "menu"}},
	)

	if len(markup.InlineKeyboard) != 2 {
		t.Fatalf("rows = %d, want 2", len(markup.InlineKeyboard))
	}
	if len(markup.InlineKeyboard[0]) != 2 || len(markup.InlineKeyboard[1]) != 1 {
		t.Fatalf("row sizes = %d, %d, want 2, 1",
			len(markup.InlineKeyboard[0]), len(markup.InlineKeyboard[1]))
	}

	first := markup.InlineKeyboard[0][0]
	if first.Text != "🎥 Video" {
		t.Errorf("button text = %q", first.Text)
	}
	if first.Unique != "get_video" {
		t.Errorf("button unique = %q", first.Unique)
	}
}
