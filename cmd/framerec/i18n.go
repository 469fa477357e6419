// Package main provides localization for the framerec CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Flag categories
		"Config":    "設定",
		"Recording": "録画",
		"Target":    "キャプチャ対象",
		"Encoding":  "エンコード",
		"Output":    "出力",
		"Debug":     "デバッグ",
		"Logging":   "ログ",

		// Commands
		"Record the screen to an H.264 video":            "画面をH.264動画として録画",
		"Record frames from a display, region or window": "ディスプレイ、領域またはウィンドウからフレームを録画",
		"List active displays":                           "接続中のディスプレイを一覧表示",
		"Display %d: %dx%d at (%d, %d)":                  "ディスプレイ %d: %dx%d (%d, %d)",
		"no active displays":                             "接続中のディスプレイがありません",
		"Error: %s":                                      "エラー: %s",

		// Flags
		"YAML config file; flags override its values":               "YAML設定ファイル（フラグの値が優先）",
		"Number of frames to record (0 = until interrupted)":        "録画するフレーム数（0 = 中断されるまで）",
		"Frames per second":                                         "1秒あたりのフレーム数",
		"Output video width":                                        "出力動画の幅",
		"Output video height":                                       "出力動画の高さ",
		"Capture and encode each frame before waiting for the next": "各フレームをキャプチャ・エンコードしてから次を待つ",
		"Display index to capture":                                  "キャプチャするディスプレイ番号",
		"Screen region to capture as x,y,w,h":                       "キャプチャする画面領域（x,y,w,h）",
		"Title of the window to capture (Windows only)":             "キャプチャするウィンドウのタイトル（Windowsのみ）",
		"Video bitrate in kbps":                                     "動画のビットレート（kbps）",
		"x264 speed preset":                                         "x264の速度プリセット",
		"Path to ffmpeg (falls back to FFMPEG_PATH env, then PATH)": "ffmpegのパス（未指定時はFFMPEG_PATH環境変数、次にPATH）",
		"Write a recording summary (.md or .json)":                  "録画サマリーを書き出す（.md または .json）",
		"Save captured and composed frames as PNG":                  "キャプチャ・合成したフレームをPNGで保存",
		"Directory for debug output":                                "デバッグ出力先ディレクトリ",
		"Log level (debug, info, warn, error)":                      "ログレベル（debug, info, warn, error）",
		"Suppress all log output":                                   "すべてのログ出力を抑制",
		"Serve Prometheus metrics on this address":                  "このアドレスでPrometheusメトリクスを公開",

		// Summary labels
		"Recording Summary": "録画サマリー",
		"Generated":         "生成日時",
		"Session":           "セッション",
		"Session ID":        "セッションID",
		"Started":           "開始日時",
		"Frames Recorded":   "録画フレーム数",
		"Frames Dropped":    "破棄フレーム数",
		"Wall Duration":     "実時間",
		"Average Interval":  "平均フレーム間隔",
		"Max Interval":      "最大フレーム間隔",
		"Settings":          "設定",
		"Frame Rate":        "フレームレート",
		"Output Size":       "出力サイズ",
		"Source Size":       "ソースサイズ",
		"Padding":           "パディング",
		"Display Scale":     "表示スケール",
		"Container":         "コンテナ",
		"Bitrate":           "ビットレート",
		"GOP Size":          "GOPサイズ",
		"Max B-Frames":      "最大Bフレーム数",
		"Preset":            "プリセット",
		"Video Details":     "動画の詳細",
		"Video File Size":   "動画ファイルサイズ",
		"Codec":             "コーデック",
		"Resolution":        "解像度",
		"Samples":           "サンプル数",
		"Video Duration":    "動画の長さ",
		"Item":              "項目",
		"Value":             "値",
		"Generated by":      "生成元",
	})
}
