package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Orchestration level messages (info)
		"Saved %s (%d bytes)":           "%s に保存しました (%d バイト)",
		"Interrupted, shutting down...": "中断されました。終了します...",
		"Summary written to %s":         "サマリーを %s に書き出しました",

		// Capture stage
		"Capturing in %d seconds":                             "%d 秒後にキャプチャします",
		"Capturing the whole screen":                          "画面全体をキャプチャ中",
		"Click a window to capture it, right-click to cancel": "キャプチャするウィンドウをクリックしてください (右クリックでキャンセル)",
		"Capturing window 0x%x":                               "ウィンドウ 0x%x をキャプチャ中",
		"Captured %dx%d pixels":                               "%dx%d ピクセルをキャプチャしました",

		// X11 adapter
		"Crosshair cursor unavailable: %s":   "十字カーソルを使用できません: %s",
		"Pointer grabbed, waiting for click": "ポインタを取得しました。クリックを待っています",
		"Window 0x%x covers %v":              "ウィンドウ 0x%x の範囲: %v",
		"Got %d bytes at depth %d, %d bpp":   "%d バイトを取得 (深度 %d, %d bpp)",

		// Encode stage
		"Encoding %dx%d PNG with %d workers": "%dx%d の PNG を %d ワーカーでエンコード中",
		"Wrote %d bytes in %d ms":            "%d バイトを %d ms で書き込みました",

		// Deliver stage
		"Copied to clipboard":                      "クリップボードにコピーしました",
		"Screenshot saved":                         "スクリーンショットを保存しました",
		"Failed to copy to clipboard: %s":          "クリップボードへのコピーに失敗しました: %s",
		"Failed to create thumbnail: %s":           "サムネイルの作成に失敗しました: %s",
		"Failed to send notification: %s":          "通知の送信に失敗しました: %s",
		"Delivery skipped: %s":                     "配信をスキップしました: %s",
		"D-Bus unavailable, using notify-send: %s": "D-Bus を使用できないため notify-send を使います: %s",

		// Debug output
		"Failed to save debug output: %s": "デバッグ出力の保存に失敗しました: %s",

		// Errors
		"Error: %s":                  "エラー: %s",
		"Window selection cancelled": "ウィンドウの選択がキャンセルされました",
	})
}
