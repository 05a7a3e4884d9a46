// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package i18n

import (
	"golang.org/x/text/language"
)

// =============================================================================
// LANGUAGES
// =============================================================================

// Language identifies one of the built-in string packs.
type Language string

const (
	LangIndonesian Language = "id"
	LangEnglish    Language = "en"
	LangJapanese   Language = "jp"
)

// DefaultLanguage is used when no preference is stored.
const DefaultLanguage = LangIndonesian

// Supported lists the available languages in display order.
var Supported = []Language{LangIndonesian, LangEnglish, LangJapanese}

// matcher resolves arbitrary BCP 47 preference strings ("en-US", "ja",
// "id-ID") to the nearest built-in pack. Order mirrors Supported so the
// default wins on no match.
var matcher = language.NewMatcher([]language.Tag{
	language.Indonesian,
	language.English,
	language.Japanese,
})

// Resolve maps a raw preference string to a supported language. Exact pack
// codes resolve directly; anything else goes through BCP 47 matching, and
// unparseable or unmatched input falls back to the default.
func Resolve(pref string) Language {
	switch Language(pref) {
	case LangIndonesian, LangEnglish, LangJapanese:
		return Language(pref)
	}

	tag, err := language.Parse(pref)
	if err != nil {
		return DefaultLanguage
	}
	_, index, conf := matcher.Match(tag)
	if conf == language.No {
		return DefaultLanguage
	}
	switch index {
	case 1:
		return LangEnglish
	case 2:
		return LangJapanese
	default:
		return LangIndonesian
	}
}

// =============================================================================
// STRING PACKS
// =============================================================================

// Strings is one complete pack of translated interface text.
type Strings struct {
	Greeting           string
	PlaceholderDefault string
	PlaceholderImage   string
	FileAttached       string

	NewChat       string
	Recent        string
	NoHistory     string
	Settings      string
	DeleteConfirm string
	ClearHistory  string
	ConfirmDelete string

	ThinkingHeader  string
	AnalysisHeader  string
	SourcesHeader   string
	ThinkingStatus  []string
	SearchingStatus []string
	GeneratingImage []string
	Copy            string

	// FailureHeader is the bold label in the error template shown in
	// place of a failed response.
	FailureHeader string

	// ImageReady is the text accompanying a generated image.
	ImageReady string

	SelectModel string
}

var packs = map[Language]*Strings{
	LangIndonesian: {
		Greeting:           "Halo, ada yang bisa saya bantu?",
		PlaceholderDefault: "Ketik pesan ke GenzAI...",
		PlaceholderImage:   "Deskripsikan gambar yang ingin dibuat...",
		FileAttached:       "File terlampir",
		NewChat:            "Obrolan Baru",
		Recent:             "Terkini",
		NoHistory:          "Belum ada riwayat chat.\nMulai percakapan baru!",
		Settings:           "Pengaturan",
		DeleteConfirm:      "Hapus Chat?",
		ClearHistory:       "Hapus Semua Riwayat",
		ConfirmDelete:      "Yakin Hapus?",
		ThinkingHeader:     "Proses Berpikir",
		AnalysisHeader:     "Analisis Stream",
		SourcesHeader:      "Sumber Ditemukan",
		ThinkingStatus: []string{
			"Sedang berpikir...", "Menganalisis permintaan...", "Menghubungkan konteks...",
			"Memproses data...", "Memahami maksud...", "Merumuskan logika...",
		},
		SearchingStatus: []string{
			"Mencari di Google...", "Mengumpulkan informasi...", "Memverifikasi fakta...",
			"Menjelajahi web...", "Mengakses data real-time...", "Mengekstrak detail...",
		},
		GeneratingImage: []string{
			"Creating masterpiece...", "Mixing colors...", "Sketching outlines...",
			"Applying textures...", "Rendering lighting...", "Adding details...",
		},
		Copy:          "Salin",
		FailureHeader: "Gagal",
		ImageReady:    "Berikut adalah gambar yang Anda minta:",
		SelectModel:   "Pilih Model",
	},
	LangEnglish: {
		Greeting:           "Hello, how can I help you?",
		PlaceholderDefault: "Message GenzAI...",
		PlaceholderImage:   "Describe the image you want to create...",
		FileAttached:       "File attached",
		NewChat:            "New Chat",
		Recent:             "Recent",
		NoHistory:          "No chat history yet.\nStart a conversation!",
		Settings:           "Settings",
		DeleteConfirm:      "Delete Chat?",
		ClearHistory:       "Clear All History",
		ConfirmDelete:      "Are you sure?",
		ThinkingHeader:     "Thinking Process",
		AnalysisHeader:     "Analysis Stream",
		SourcesHeader:      "Sources Found",
		ThinkingStatus: []string{
			"Deep reasoning...", "Analyzing request...", "Connecting nodes...",
			"Processing context...", "Understanding intent...", "Formulating logic...",
		},
		SearchingStatus: []string{
			"Searching Google...", "Gathering information...", "Verifying facts...",
			"Browsing the web...", "Accessing real-time data...", "Looking for sources...",
		},
		GeneratingImage: []string{
			"Creating masterpiece...", "Mixing colors...", "Sketching outlines...",
			"Applying textures...", "Rendering lighting...", "Adding details...",
		},
		Copy:          "Copy",
		FailureHeader: "Failed",
		ImageReady:    "Here is the image you asked for:",
		SelectModel:   "Select Model",
	},
	LangJapanese: {
		Greeting:           "こんにちは、どうなさいましたか？",
		PlaceholderDefault: "GenzAIにメッセージを送る...",
		PlaceholderImage:   "作成したい画像を説明してください...",
		FileAttached:       "ファイルが添付されました",
		NewChat:            "新しいチャット",
		Recent:             "最近",
		NoHistory:          "チャット履歴はまだありません。\n会話を始めましょう！",
		Settings:           "設定",
		DeleteConfirm:      "削除しますか？",
		ClearHistory:       "履歴をすべて消去",
		ConfirmDelete:      "本当に削除しますか？",
		ThinkingHeader:     "思考プロセス",
		AnalysisHeader:     "分析ストリーム",
		SourcesHeader:      "見つかったソース",
		ThinkingStatus: []string{
			"深く考えています...", "リクエストを分析中...", "コンテキストを処理中...",
			"意図を理解中...", "論理を構築中...", "データを確認中...",
		},
		SearchingStatus: []string{
			"Googleで検索中...", "情報を収集中...", "事実を確認中...",
			"ウェブを閲覧中...", "リアルタイムデータにアクセス中...", "ソースを探しています...",
		},
		GeneratingImage: []string{
			"傑作を作成中...", "色を混ぜています...", "アウトラインをスケッチ中...",
			"テクスチャを適用中...", "詳細を追加中...",
		},
		Copy:          "コピー",
		FailureHeader: "失敗",
		ImageReady:    "ご希望の画像はこちらです：",
		SelectModel:   "モデルを選択",
	},
}

// Catalog returns the string pack for lang, falling back to the default
// pack for unknown values. The returned pointer is shared; callers must
// treat it as read-only.
func Catalog(lang Language) *Strings {
	if p, ok := packs[lang]; ok {
		return p
	}
	return packs[DefaultLanguage]
}
