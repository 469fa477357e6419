package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Session lifecycle (info)
		"Recording %d frames at %.0f fps to %s": "%d フレームを %.0f fps で %s に録画中",
		"Session %s opened: %dx%d -> %dx%d":     "セッション %s を開始: %dx%d -> %dx%d",
		"Session %s stopped after %d frames":    "セッション %s を %d フレームで停止しました",
		"Output saved to %s (%s)":               "出力を %s に保存しました (%s)",
		"Summary written to %s":                 "サマリーを %s に書き出しました",
		"Interrupted, finishing recording...":   "中断されました。録画を終了しています...",
		"Serving metrics on %s":                 "%s でメトリクスを公開中",

		// Capture stage
		"Capture target resolved to %v (scale %.2f)": "キャプチャ対象を %v に解決しました (スケール %.2f)",
		"Captured frame %d in %s":                    "フレーム %d を %s でキャプチャしました",

		// Layout
		"Padding source %dx%d by %dx%d": "ソース %dx%d に %dx%d のパディングを追加",

		// Encode stage
		"Starting encoder: %s, %d kbps, preset %s":   "エンコーダーを開始: %s, %d kbps, プリセット %s",
		"Frame %d: %d ms since previous frame":       "フレーム %d: 前フレームから %d ms",
		"Video encoded: %s":                          "動画エンコード完了: %s",
		"Probed output: %s %dx%d, %d samples, %d ms": "出力を解析: %s %dx%d, %d サンプル, %d ms",

		// Warnings
		"Encoder queue full, dropped frame %d":             "エンコーダーキューが満杯のためフレーム %d を破棄しました",
		"Output has %d samples but %d frames were encoded": "出力のサンプル数 %d がエンコードしたフレーム数 %d と一致しません",
		"Failed to probe output: %s":                       "出力の解析に失敗しました: %s",
		"No frames were recorded":                          "フレームが録画されませんでした",
		"Failed to save debug output: %s":                  "デバッグ出力の保存に失敗しました: %s",

		// Errors
		"Failed to record frame %d: %s": "フレーム %d の録画に失敗しました: %s",
		"Metrics server failed: %s":     "メトリクスサーバーが失敗しました: %s",
		"Failed to stop session: %s":    "セッションの停止に失敗しました: %s",
	})
}
