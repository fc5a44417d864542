// 指示: miu200521358
package minteractor

import (
	"fmt"
	"strings"

	"github.com/miu200521358/mu_vrma_player/pkg/domain/humanoid"
	"github.com/miu200521358/mu_vrma_player/pkg/domain/model"
)

// translationPropertyKeywords は移動チャンネルを示す属性名の部分文字列を保持する。
var translationPropertyKeywords = []string{"position", "translation"}

// rotationPropertyKeywords は回転チャンネルを示す属性名の部分文字列を保持する。
var rotationPropertyKeywords = []string{"quaternion", "rotation"}

// ClassifiedTrack は分類済みトラックを表す。
type ClassifiedTrack struct {
	BoneId  humanoid.BoneId
	Channel model.Channel
	Track   *model.Track
}

// ClassifyTrack は生トラックの対象ボーンとチャンネルを判定する。
// 判定できない場合はトラック単位の棄却エラーを返す。
func ClassifyTrack(track *model.Track) (ClassifiedTrack, error) {
	if track == nil {
		return ClassifiedTrack{}, fmt.Errorf("%w: トラックが未設定です", model.ErrMalformedTrackName)
	}

	subject, property, ok := track.SplitName()
	if !ok {
		return ClassifiedTrack{}, fmt.Errorf("%w: %s", model.ErrMalformedTrackName, track.Name)
	}

	channel, ok := classifyTrackProperty(property)
	if !ok {
		return ClassifiedTrack{}, fmt.Errorf("%w: %s", model.ErrUnknownProperty, track.Name)
	}

	boneId, ok := humanoid.ParseBoneId(subject)
	if !ok {
		return ClassifiedTrack{}, fmt.Errorf("%w: %s", model.ErrUnknownBone, track.Name)
	}

	if channel == model.ChannelTranslation && !boneId.IsRoot() {
		return ClassifiedTrack{}, fmt.Errorf("%w: %s", model.ErrUnsupportedTranslationTarget, track.Name)
	}

	return ClassifiedTrack{
		BoneId:  boneId,
		Channel: channel,
		Track:   track,
	}, nil
}

// classifyTrackProperty は属性名からチャンネルを判定する。移動を先に判定する。
func classifyTrackProperty(property string) (model.Channel, bool) {
	lower := strings.ToLower(property)
	if containsAnyKeyword(lower, translationPropertyKeywords) {
		return model.ChannelTranslation, true
	}
	if containsAnyKeyword(lower, rotationPropertyKeywords) {
		return model.ChannelRotation, true
	}
	return 0, false
}

// isRotationProperty は属性名が回転チャンネルか判定する。
func isRotationProperty(property string) bool {
	channel, ok := classifyTrackProperty(property)
	return ok && channel == model.ChannelRotation
}

// containsAnyKeyword はいずれかのキーワードを含むか判定する。
func containsAnyKeyword(value string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(value, keyword) {
			return true
		}
	}
	return false
}
