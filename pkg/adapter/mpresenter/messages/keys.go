// 指示: miu200521358
// Package messages はUI表示に使うメッセージキーと翻訳カタログを提供する。
package messages

// メッセージキー一覧。キーは日本語表示文と同一。
const (
	StatusAvatarUploadRequired = "VRMファイルをアップロードしてください"
	StatusAvatarRequired       = "先にVRMモデルを読み込んでください"
	StatusAvatarLoading        = "%s を読み込み中..."
	StatusAvatarLoaded         = "%s を読み込みました"
	StatusAvatarLoadFailed     = "VRMファイルの読み込みに失敗しました"
	StatusMotionLoading        = "アニメーションファイル %s を読み込み中..."
	StatusMotionPlaying        = "アニメーション %s を再生中"
	StatusMotionBound          = "アニメーション %s を読み込みました"
	StatusPaused               = "アニメーションを一時停止しました"
	StatusResumed              = "アニメーションを再生中"
	StatusMotionLoadFailed     = "アニメーションファイルの読み込みに失敗しました"
	StatusNoAnimation          = "VRMアニメーションが見つかりませんでした"
	StatusNoUsableMotion       = "再生可能なモーションが見つかりませんでした"
	StatusBindFailed           = "アニメーションの適用に失敗しました"
	StatusUnbound              = "アニメーションを解除しました"
	StatusOperationRejected    = "現在の状態では %s を実行できません"

	LogMotionReloaded    = "アニメーションを再読み込みします: %s"
	LogMetricsListening  = "メトリクス公開開始: %s"
	LogWatchStarted      = "ファイル監視開始: %s"
	LogConfigInitialized = "設定ファイルを作成しました: %s"

	ReportSource   = "入力形状: %s (%s)"
	ReportAccepted = "採用トラック数: %d"
	ReportDropped  = "棄却トラック: %s (%s)"
	ReportWarning  = "警告: %s %s"
	ReportDuration = "再生時間: %.3f秒"
	ReportPose     = "%s 回転(xyzw)=[%.4f %.4f %.4f %.4f]"
	ReportPosition = "%s 位置=[%.4f %.4f %.4f]"
	ReportGaze     = "視線 yaw=%.2f pitch=%.2f"
	ReportState    = "再生状態: %s 時刻=%.3f秒"
)

// englishMessages は英語翻訳を保持する。
var englishMessages = map[string]string{
	StatusAvatarUploadRequired: "Please upload a VRM file",
	StatusAvatarRequired:       "Please load a VRM model first",
	StatusAvatarLoading:        "Loading %s...",
	StatusAvatarLoaded:         "Loaded %s",
	StatusAvatarLoadFailed:     "Failed to load the VRM file",
	StatusMotionLoading:        "Loading animation file %s...",
	StatusMotionPlaying:        "Playing animation %s",
	StatusMotionBound:          "Animation %s loaded",
	StatusPaused:               "Animation paused",
	StatusResumed:              "Animation playing",
	StatusMotionLoadFailed:     "Failed to load the animation file",
	StatusNoAnimation:          "No VRM animation was found",
	StatusNoUsableMotion:       "No playable motion was found",
	StatusBindFailed:           "Failed to apply the animation",
	StatusUnbound:              "Animation released",
	StatusOperationRejected:    "Cannot %s in the current state",

	LogMotionReloaded:    "Reloading animation: %s",
	LogMetricsListening:  "Serving metrics on %s",
	LogWatchStarted:      "Watching files: %s",
	LogConfigInitialized: "Created config file: %s",

	ReportSource:   "Source: %s (%s)",
	ReportAccepted: "Accepted tracks: %d",
	ReportDropped:  "Dropped track: %s (%s)",
	ReportWarning:  "Warning: %s %s",
	ReportDuration: "Duration: %.3fs",
	ReportPose:     "%s rotation(xyzw)=[%.4f %.4f %.4f %.4f]",
	ReportPosition: "%s position=[%.4f %.4f %.4f]",
	ReportGaze:     "Gaze yaw=%.2f pitch=%.2f",
	ReportState:    "State: %s time=%.3fs",
}

// Keys は定義済みメッセージキー一覧を返す。
func Keys() []string {
	keys := make([]string, 0, len(englishMessages))
	for key := range englishMessages {
		keys = append(keys, key)
	}
	return keys
}
