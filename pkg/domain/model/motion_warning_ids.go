// 指示: miu200521358
package model

const (
	// RejectionMalformedTrackName はトラック名形式不正の棄却ID。
	RejectionMalformedTrackName = "MalformedTrackName"
	// RejectionUnknownProperty は属性未対応の棄却ID。
	RejectionUnknownProperty = "UnknownProperty"
	// RejectionUnknownBone はボーン未登録の棄却ID。
	RejectionUnknownBone = "UnknownBone"
	// RejectionUnsupportedTranslationTarget はhips以外の移動の棄却ID。
	RejectionUnsupportedTranslationTarget = "UnsupportedTranslationTarget"

	// MotionWarningDuplicateBoneTrack は同一ボーン・チャンネルのトラック上書き警告。
	MotionWarningDuplicateBoneTrack = "DuplicateBoneTrack"
	// MotionWarningDuplicateLookAtTrack は視線トラック上書き警告。
	MotionWarningDuplicateLookAtTrack = "DuplicateLookAtTrack"
	// MotionWarningExtraClipsIgnored は2本目以降のクリップ未使用警告。
	MotionWarningExtraClipsIgnored = "ExtraClipsIgnored"
	// MotionWarningGazeProxyMissing は視線プロキシなしで視線トラックをバインドした警告。
	MotionWarningGazeProxyMissing = "GazeProxyMissing"
	// MotionWarningCloneFailed は対応済みモーションを複製できなかった警告。
	MotionWarningCloneFailed = "CloneFailed"
	// MotionWarningNonRootTranslation はVRMAでhips以外の移動を捨てた警告。
	MotionWarningNonRootTranslation = "NonRootTranslation"
)

// RejectionReasons は棄却ID一覧を返す。
func RejectionReasons() []string {
	return []string{
		RejectionMalformedTrackName,
		RejectionUnknownProperty,
		RejectionUnknownBone,
		RejectionUnsupportedTranslationTarget,
	}
}
