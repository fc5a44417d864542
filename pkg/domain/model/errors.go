// 指示: miu200521358
package model

import "errors"

// トラック単位の回復可能エラー。該当トラックを捨てて処理を続ける。
var (
	// ErrMalformedTrackName はトラック名が "<対象>.<属性>" 形式でないことを表す。
	ErrMalformedTrackName = errors.New("トラック名の形式が不正です")
	// ErrUnknownProperty は属性名が移動/回転のどちらでもないことを表す。
	ErrUnknownProperty = errors.New("未対応のトラック属性です")
	// ErrUnknownBone は対象名がhumanoidボーンでないことを表す。
	ErrUnknownBone = errors.New("humanoidボーンではありません")
	// ErrUnsupportedTranslationTarget はhips以外への移動トラックを表す。
	ErrUnsupportedTranslationTarget = errors.New("移動トラックはhipsのみ対応しています")
)

// 構築単位の回復可能エラー。
var (
	// ErrEmptyMotionModel は再生可能なトラックがないことを表す。
	ErrEmptyMotionModel = errors.New("再生可能なモーションがありません")
	// ErrMixerUnavailable はアバターがミキサーを持たないことを表す。
	ErrMixerUnavailable = errors.New("アバターのミキサーが設定されていません")
	// ErrAvatarRequired はアバター未読込での操作を表す。
	ErrAvatarRequired = errors.New("アバターが読み込まれていません")
)

// 再生状態遷移の呼び出し順違反。
var (
	// ErrNotPlaying は再生中以外での一時停止を表す。
	ErrNotPlaying = errors.New("再生中ではありません")
	// ErrNotPaused は一時停止中以外での再開を表す。
	ErrNotPaused = errors.New("一時停止中ではありません")
	// ErrNotBound はバインド直後以外での開始を表す。
	ErrNotBound = errors.New("開始待ちのセッションではありません")
	// ErrNoActiveSession はセッションがない状態での切替を表す。
	ErrNoActiveSession = errors.New("再生セッションがありません")
)

// IsTrackRejection はトラック単位の棄却エラーか判定する。
func IsTrackRejection(err error) bool {
	return errors.Is(err, ErrMalformedTrackName) ||
		errors.Is(err, ErrUnknownProperty) ||
		errors.Is(err, ErrUnknownBone) ||
		errors.Is(err, ErrUnsupportedTranslationTarget)
}

// RejectionReason は棄却エラーの理由IDを返す。
func RejectionReason(err error) string {
	switch {
	case errors.Is(err, ErrMalformedTrackName):
		return RejectionMalformedTrackName
	case errors.Is(err, ErrUnknownProperty):
		return RejectionUnknownProperty
	case errors.Is(err, ErrUnknownBone):
		return RejectionUnknownBone
	case errors.Is(err, ErrUnsupportedTranslationTarget):
		return RejectionUnsupportedTranslationTarget
	default:
		return ""
	}
}
