// Package main provides localization for the timelapse CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Flag categories
		"Adjustments":   "補正",
		"Geometry":      "切り抜きと移動",
		"Output":        "出力",
		"Range":         "範囲",
		"Performance":   "パフォーマンス",
		"Configuration": "設定ファイル",
		"Reports":       "レポート",
		"Run Mode":      "実行モード",
		"Logging":       "ログ",

		// Root command
		"Process image sequences into timelapse stills or video": "連番画像をタイムラプスの静止画または動画に変換",
		"timelapse crops, pans and color-grades a numbered image sequence with keyframed adjustments and writes the result as images or an H.264 video.": "timelapseはキーフレームで指定した補正により連番画像の切り抜き・パン・色調整を行い、画像またはH.264動画として書き出します。",

		// Process command
		"Process an image sequence": "連番画像を処理",
		"Read every image in the input directory in natural order, apply keyframed adjustments and write stills or a video to the output directory.": "入力ディレクトリの画像を自然順に読み込み、キーフレーム補正を適用して静止画または動画を出力ディレクトリに書き出します。",

		// Input/Output flags
		"Input directory of source images": "元画像の入力ディレクトリ",
		"Output directory":                 "出力ディレクトリ",

		// Adjustment flags
		"Exposure keyframes in EV stops, comma-separated (-3 to 3)":   "露出のキーフレーム（EV、カンマ区切り、-3〜3）",
		"Brightness keyframes, comma-separated (-100 to 100)":         "明るさのキーフレーム（カンマ区切り、-100〜100）",
		"Contrast keyframes, comma-separated (0 to 3, 1 = unchanged)": "コントラストのキーフレーム（カンマ区切り、0〜3、1 = 変更なし）",
		"Saturation keyframes, comma-separated (0 to 2, 1 = unchanged)": "彩度のキーフレーム（カンマ区切り、0〜2、1 = 変更なし）",
		"Keyframe interpolation (linear, bezier)":                       "キーフレーム補間（linear, bezier）",

		// Geometry flags
		"Crop as WIDTH:HEIGHT:X:Y in pixels or percent": "切り抜き WIDTH:HEIGHT:X:Y（ピクセルまたはパーセント）",
		"Horizontal crop offset keyframes in pixels":    "切り抜きの水平オフセットのキーフレーム（ピクセル）",
		"Vertical crop offset keyframes in pixels":      "切り抜きの垂直オフセットのキーフレーム（ピクセル）",

		// Output flags
		"Output format (jpg, png, tiff, mp4, mov, avi)":                       "出力形式（jpg, png, tiff, mp4, mov, avi）",
		"Video frame rate (1-120)":                                            "動画のフレームレート（1〜120）",
		"Quality preset (low, medium, high)":                                  "品質プリセット（low, medium, high）",
		"JPEG quality (1-100) or video CRF (0-51), overrides preset":           "JPEG品質（1〜100）または動画のCRF（0〜51）、プリセットを上書き",
		"Video resolution (WIDTHxHEIGHT, 4k, hd, 1080p, 720p)":                "動画の解像度（WIDTHxHEIGHT, 4k, hd, 1080p, 720p）",
		"Path to ffmpeg executable (falls back to FFMPEG_PATH env, then PATH)": "ffmpeg実行ファイルのパス（未指定時は FFMPEG_PATH 環境変数、次に PATH）",

		// Range flags
		"First frame to process (0-based)":                       "処理する最初のフレーム（0始まり）",
		"Last frame to process (inclusive, default: last image)": "処理する最後のフレーム（含む、デフォルト: 最後の画像）",

		// Performance flags
		"Number of worker threads (0 = one per CPU)": "ワーカースレッド数（0 = CPUごとに1つ）",

		// Configuration flags
		"YAML run file, overridden by flags": "YAML設定ファイル（フラグが優先）",

		// Report flags
		"Output execution summary to file (Markdown format)":      "実行サマリーをファイルに出力（Markdown形式）",
		"Write a contact sheet of sampled frames to this PNG file": "抜粋フレームのコンタクトシートをこのPNGファイルに書き出し",
		"Directory for debug output":                               "デバッグ出力のディレクトリ",

		// Run mode flags
		"Decode and process every frame without writing output": "出力せずに全フレームのデコードと処理のみ行う",

		// Logging flags
		"Log level (debug, info, warn, error)": "ログレベル（debug, info, warn, error）",
		"Suppress all log output":              "全てのログ出力を抑制",
		"Disable the progress bar":             "プログレスバーを表示しない",

		// Runtime messages
		"Summary saved to %s":         "サマリーを %s に保存しました",
		"Failed to write summary: %s": "サマリーの書き込みに失敗しました: %s",

		// Summary content
		"Timelapse Summary": "タイムラプス処理サマリー",
		"Item":              "項目",
		"Value":             "値",
		"Run":               "実行",
		"Input":             "入力",
		"Settings":          "設定",
		"Processing":        "処理",
		"Generated by":      "生成:",

		// Run section
		"Run ID":       "実行ID",
		"Generated At": "生成日時",
		"Mode":         "モード",
		"Dry run":      "ドライラン",

		// Input section
		"Directory":     "ディレクトリ",
		"Source Images": "元画像数",
		"Frame Range":   "フレーム範囲",

		// Settings section
		"Format":        "形式",
		"Interpolation": "補間",
		"Crop":          "切り抜き",
		"Exposure":      "露出",
		"Brightness":    "明るさ",
		"Contrast":      "コントラスト",
		"Saturation":    "彩度",
		"Offset X":      "オフセットX",
		"Offset Y":      "オフセットY",
		"Resolution":    "解像度",
		"Frame Rate":    "フレームレート",
		"CRF":           "CRF値",
		"JPEG Quality":  "JPEG品質",

		// Processing section
		"Frames":              "フレーム数",
		"Workers":             "ワーカー数",
		"Peak Reorder Buffer": "並べ替えバッファ最大数",
		"Planning Time":       "計画時間",
		"Rendering Time":      "処理時間",
		"Processing Time":     "合計時間",
		"Throughput":          "スループット",

		// Output section
		"Path":           "パス",
		"Codec":          "コーデック",
		"Files":          "ファイル数",
		"Size":           "サイズ",
		"Frame Size":     "フレームサイズ",
		"Video Duration": "動画再生時間",
	})
}
