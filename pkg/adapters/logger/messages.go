package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Orchestration level messages (info)
		"Found %d images, processing frames %d-%d": "%d 枚の画像を検出、フレーム %d-%d を処理します",
		"Output: %s (%s)":                          "出力: %s (%s)",
		"Keyframes %s: %s":                         "キーフレーム %s: %s",
		"Crop: %s":                                 "切り抜き: %s",
		"Video: %d fps, CRF %d":                    "動画: %d fps, CRF %d",
		"Resolution: %s":                           "解像度: %s",
		"Output saved to %s":                       "出力を %s に保存しました",
		"Dry run processed %d frames in %s":        "ドライランで %d フレームを %s で処理しました",
		"Interrupted, shutting down...":            "中断されました。シャットダウン中...",

		// Plan stage
		"Reading %d image headers":      "%d 枚の画像ヘッダーを読み込み中",
		"Planned %d frames, output %s":  "%d フレームを計画しました。出力 %s",
		"Memory check skipped: %v":      "メモリチェックをスキップしました: %v",
		"Worst-case frame buffer %d MiB exceeds available memory %d MiB; consider fewer threads or a smaller crop": "最悪時のフレームバッファ %d MiB が空きメモリ %d MiB を超えています。スレッド数を減らすか切り抜きを小さくしてください",
		"Frame %d: crop %s, exposure %.3f, brightness %.2f, contrast %.3f, saturation %.3f": "フレーム %d: 切り抜き %s, 露出 %.3f, 明るさ %.2f, コントラスト %.3f, 彩度 %.3f",

		// Render stage
		"Rendering %d frames with %d workers":                 "%d フレームを %d ワーカーで処理中",
		"Rendered %d frames in %s (peak reorder buffer %d)":   "%d フレームを %s で処理しました (並べ替えバッファ最大 %d)",
		"Processed %d/%d frames (%d%%)":                       "%d/%d フレームを処理しました (%d%%)",

		// Image output
		"Wrote frame %d to %s":            "フレーム %d を %s に書き出しました",
		"Wrote %d images (%d bytes)":      "%d 枚の画像を書き出しました (%d バイト)",
		"Removed %d partial outputs":      "途中の出力 %d 件を削除しました",

		// Video output
		"Starting %s %v":                                          "%s %v を開始します",
		"Starting %s stream %s -> %s at %d fps, crf %d":           "%s ストリームを開始します %s -> %s, %d fps, crf %d",
		"Encoded %d frames to %s":                                 "%d フレームを %s にエンコードしました",
		"Verified %s: %d samples, %dx%d":                          "%s を検証しました: %d サンプル, %dx%d",
		"Frame aspect %s differs from target %s; fitting inside it": "フレームの縦横比 %s が指定の %s と異なります。内側に収めます",

		// Reports
		"Wrote contact sheet with %d frames to %s": "%d フレームのコンタクトシートを %s に書き出しました",

		// Warnings
		"Failed to save debug plan: %v":         "デバッグ用の計画を保存できませんでした: %v",
		"Failed to save debug frame: %v":        "デバッグ用のフレームを保存できませんでした: %v",
		"Failed to clean up partial output: %v": "途中の出力を削除できませんでした: %v",
		"Failed to remove unverified video %s: %v": "検証に失敗した動画 %s を削除できませんでした: %v",

		// Errors
		"Failed to plan frames: %s":     "フレームの計画に失敗しました: %s",
		"Failed to render frames: %s":   "フレームの処理に失敗しました: %s",
		"Failed to finalize output: %s": "出力の確定に失敗しました: %s",
		"Error: %s":                     "エラー: %s",
	})
}
