// Package main provides localization for the xsnap CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Flag categories
		"Capture":  "キャプチャ",
		"Output":   "出力",
		"Delivery": "クリップボードと通知",
		"Debug":    "デバッグ",
		"Logging":  "ログ",

		// Root command
		"Take screenshots of X11 screens and windows": "X11 の画面やウィンドウのスクリーンショットを撮影",
		"xsnap saves the screen, a clicked window or the focused window as a PNG file, copies it to the clipboard and shows a notification.": "xsnap は画面全体、クリックしたウィンドウ、またはフォーカス中のウィンドウを PNG ファイルに保存し、クリップボードにコピーして通知を表示します。",

		// Capture flags
		"Capture immediately (default)":             "すぐにキャプチャ (デフォルト)",
		"Capture after 5 seconds":                   "5 秒後にキャプチャ",
		"Capture after 10 seconds":                  "10 秒後にキャプチャ",
		"Capture after the given number of seconds": "指定した秒数の後にキャプチャ",
		"Click the window to capture":               "クリックしたウィンドウをキャプチャ",
		"Capture the focused window":                "フォーカス中のウィンドウをキャプチャ",
		"X display to connect to":                   "接続する X ディスプレイ",

		// Output flags
		"Output PNG path ({time} is replaced with the capture time)": "出力 PNG パス ({time} はキャプチャ時刻に置換)",
		"Row conversion workers (0 = number of CPUs)":                "行変換のワーカー数 (0 = CPU 数)",
		"Compression level: default, none, fast or best":             "圧縮レベル: default, none, fast, best",
		"Config file (default: $XDG_CONFIG_HOME/xsnap/config.yaml)":  "設定ファイル (デフォルト: $XDG_CONFIG_HOME/xsnap/config.yaml)",
		"Write a Markdown summary to this path":                      "Markdown のサマリーをこのパスに書き出す",

		// Delivery flags
		"Do not copy the PNG to the clipboard": "PNG をクリップボードにコピーしない",
		"Do not show a desktop notification":   "デスクトップ通知を表示しない",

		// Debug flags
		"Save intermediate results":  "中間結果を保存",
		"Directory for debug output": "デバッグ出力のディレクトリ",

		// Logging flags
		"Log level (debug, info, warn, error)": "ログレベル (debug, info, warn, error)",
		"Suppress all log output":              "すべてのログ出力を抑制",
	})
}
