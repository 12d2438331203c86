// Package locale holds the static localization table of the bot.
// Lookups fall back to the default language, which carries every key.
package locale

import "fmt"

// Default is the language applied before a user picks one.
const Default = "uz"

// Key identifies a localized message.
type Key string

// Message keys.
const (
	KeyChooseLanguage Key = "choose_language"
	KeyChooseService  Key = "choose_service"
	KeySendLink       Key = "send_link"
	KeyInvalidLink    Key = "invalid_link"
	KeyChooseKind     Key = "choose_kind"
	KeyDownloading    Key = "downloading"
	KeyLinkFirst      Key = "link_first"
	KeyUpstreamFailed Key = "upstream_failed"
	KeyNotFound       Key = "not_found"
	KeySendFailed     Key = "send_failed"
	KeyDoneCaption    Key = "done_caption"
	KeyPremiumInfo    Key = "premium_info"
	KeyAdsInfo        Key = "ads_info"
	KeyBtnDownload    Key = "btn_download"
	KeyBtnPremium     Key = "btn_premium"
	KeyBtnAds         Key = "btn_ads"
	KeyBtnVideo       Key = "btn_video"
	KeyBtnAudio       Key = "btn_audio"
)

// supported lists language codes in menu order.
var supported = []string{"uz", "ru", "en"}

var names = map[string]string{
	"uz": "🇺🇿 O'zbekcha",
	"ru": "🇷🇺 Русский",
	"en": "🇬🇧 English",
}

var messages = map[string]map[Key]string{
	"uz": {
		KeyChooseLanguage: "Tilni tanlang / Choose your language / Выберите язык:",
		KeyChooseService:  "Xizmatlardan birini tanlang:",
		KeySendLink:       "🔗 Video yoki audio havolasini yuboring:",
		KeyInvalidLink:    "❌ Iltimos, to'g'ri havola yuboring.",
		KeyChooseKind:     "Yuklash turini tanlang:",
		KeyDownloading:    "⏳ Yuklanmoqda...",
		KeyLinkFirst:      "❌ Avval havola yuboring.",
		KeyUpstreamFailed: "❌ Yuklab bo'lmadi.",
		KeyNotFound:       "❌ Tegishli fayl topilmadi.",
		KeySendFailed:     "❌ Yuklab bo'lmadi: %s",
		KeyDoneCaption:    "🔗 Yuklangan. 🤝 @%s orqali yuklandi.",
		KeyPremiumInfo:    "👑 Premium olish uchun @%s ga murojaat qiling.\nNarxi: 10 000 so'm\nReklama chiqmaydi.",
		KeyAdsInfo:        "📣 Reklama berish uchun @%s ga yozing. Admin siz bilan bog'lanadi.",
		KeyBtnDownload:    "📄 YouTube/Instagram/TikTok",
		KeyBtnPremium:     "🖖 Premium",
		KeyBtnAds:         "🗣 Reklama",
		KeyBtnVideo:       "🎥 Video",
		KeyBtnAudio:       "🎵 Audio",
	},
	"ru": {
		KeyChooseService:  "Выберите услугу:",
		KeySendLink:       "🔗 Отправьте ссылку на видео или аудио:",
		KeyInvalidLink:    "❌ Пожалуйста, отправьте корректную ссылку.",
		KeyChooseKind:     "Выберите тип загрузки:",
		KeyDownloading:    "⏳ Загрузка...",
		KeyLinkFirst:      "❌ Сначала отправьте ссылку.",
		KeyUpstreamFailed: "❌ Не удалось скачать.",
		KeyNotFound:       "❌ Подходящий файл не найден.",
		KeySendFailed:     "❌ Не удалось отправить файл: %s",
		KeyDoneCaption:    "🔗 Готово. 🤝 Скачано через @%s.",
		KeyPremiumInfo:    "👑 Чтобы получить премиум, напишите @%s.\nЦена: 10 000 сум\nРеклама отключена.",
		KeyAdsInfo:        "📣 Для размещения рекламы напишите @%s. Админ свяжется с вами.",
		KeyBtnDownload:    "📄 YouTube/Instagram/TikTok",
		KeyBtnPremium:     "🖖 Премиум",
		KeyBtnAds:         "🗣 Реклама",
		KeyBtnVideo:       "🎥 Видео",
		KeyBtnAudio:       "🎵 Аудио",
	},
	"en": {
		KeyChooseService:  "Choose a service:",
		KeySendLink:       "🔗 Send a video or audio link:",
		KeyInvalidLink:    "❌ Please send a valid link.",
		KeyChooseKind:     "Choose a download type:",
		KeyDownloading:    "⏳ Downloading...",
		KeyLinkFirst:      "❌ Send a link first.",
		KeyUpstreamFailed: "❌ Download failed.",
		KeyNotFound:       "❌ No matching file found.",
		KeySendFailed:     "❌ Could not send the file: %s",
		KeyDoneCaption:    "🔗 Done. 🤝 Downloaded via @%s.",
		KeyPremiumInfo:    "👑 To get premium, contact @%s.\nPrice: 10,000 UZS\nNo ads will be shown.",
		KeyAdsInfo:        "📣 To place an ad, contact @%s. Admin will reply to you.",
		KeyBtnDownload:    "📄 YouTube/Instagram/TikTok",
		KeyBtnPremium:     "🖖 Premium",
		KeyBtnAds:         "🗣 Ads",
		KeyBtnVideo:       "🎥 Video",
		KeyBtnAudio:       "🎵 Audio",
	},
}

// T resolves a message for the given language, interpolating args when
// present. Unknown languages and keys missing from a language fall back to
// the default language.
func T(lang string, key Key, args ...interface{}) string {
	msg, ok := messages[lang][key]
	if !ok {
		msg = messages[Default][key]
	}
	if msg == "" {
		return string(key)
	}
	if len(args) > 0 {
		return fmt.Sprintf(msg, args...)
	}
	return msg
}

// Supported returns the enumerated language codes in display order.
func Supported() []string {
	return append([]string(nil), supported...)
}

// IsSupported reports whether code belongs to the enumerated set.
func IsSupported(code string) bool {
	_, ok := messages[code]
	return ok
}

// Name returns the display name for a supported language code.
func Name(code string) string {
	return names[code]
}
