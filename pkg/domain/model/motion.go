// 指示: miu200521358
package model

import (
	"fmt"
	"sort"

	"github.com/tiendc/go-deepcopy"

	"github.com/miu200521358/mu_vrma_player/pkg/domain/humanoid"
)

// Channel はトラックが駆動する変換成分を表す。
type Channel int

const (
	// ChannelTranslation は移動成分を表す。
	ChannelTranslation Channel = iota
	// ChannelRotation は回転成分を表す。
	ChannelRotation
)

// String はチャンネル名を返す。
func (c Channel) String() string {
	switch c {
	case ChannelTranslation:
		return "translation"
	case ChannelRotation:
		return "rotation"
	default:
		return fmt.Sprintf("channel(%d)", int(c))
	}
}

// MotionModel はボーン識別子で索引されたhumanoidモーションを表す。
// 各チャンネルでボーンは高々1トラックを持つ。トラックがないボーンはその成分を動かさない。
type MotionModel struct {
	Name              string
	TranslationTracks map[humanoid.BoneId]*Track
	RotationTracks    map[humanoid.BoneId]*Track
	LookAtTrack       *Track
	Duration          float64
}

// NewMotionModel は空のモーションを生成する。
func NewMotionModel(name string) *MotionModel {
	return &MotionModel{
		Name:              name,
		TranslationTracks: map[humanoid.BoneId]*Track{},
		RotationTracks:    map[humanoid.BoneId]*Track{},
	}
}

// Tracks は指定チャンネルのトラック辞書を返す。
func (m *MotionModel) Tracks(channel Channel) map[humanoid.BoneId]*Track {
	if m == nil {
		return nil
	}
	switch channel {
	case ChannelTranslation:
		return m.TranslationTracks
	case ChannelRotation:
		return m.RotationTracks
	default:
		return nil
	}
}

// SetTrack は指定チャンネルへトラックを設定し、上書きした場合は以前のトラックを返す。
func (m *MotionModel) SetTrack(channel Channel, boneId humanoid.BoneId, track *Track) (*Track, bool) {
	if m == nil {
		return nil, false
	}
	var tracks map[humanoid.BoneId]*Track
	switch channel {
	case ChannelTranslation:
		if m.TranslationTracks == nil {
			m.TranslationTracks = map[humanoid.BoneId]*Track{}
		}
		tracks = m.TranslationTracks
	case ChannelRotation:
		if m.RotationTracks == nil {
			m.RotationTracks = map[humanoid.BoneId]*Track{}
		}
		tracks = m.RotationTracks
	default:
		return nil, false
	}
	previous, exists := tracks[boneId]
	tracks[boneId] = track
	return previous, exists
}

// Track は指定ボーン・チャンネルのトラックを返す。
func (m *MotionModel) Track(channel Channel, boneId humanoid.BoneId) (*Track, bool) {
	tracks := m.Tracks(channel)
	if tracks == nil {
		return nil, false
	}
	track, ok := tracks[boneId]
	return track, ok && track != nil
}

// TrackCount は保持トラック総数を返す。
func (m *MotionModel) TrackCount() int {
	if m == nil {
		return 0
	}
	count := len(m.TranslationTracks) + len(m.RotationTracks)
	if m.LookAtTrack != nil {
		count++
	}
	return count
}

// IsEmpty はトラックを1本も持たないか判定する。
func (m *MotionModel) IsEmpty() bool {
	return m.TrackCount() == 0
}

// BoneIds は指定チャンネルのボーン識別子を登録順で返す。
func (m *MotionModel) BoneIds(channel Channel) []humanoid.BoneId {
	tracks := m.Tracks(channel)
	out := make([]humanoid.BoneId, 0, len(tracks))
	for boneId := range tracks {
		out = append(out, boneId)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Order() < out[j].Order()
	})
	return out
}

// Clone はトラックを含めて複製する。
func (m *MotionModel) Clone() (*MotionModel, error) {
	if m == nil {
		return nil, nil
	}
	out := &MotionModel{}
	if err := deepcopy.Copy(out, m); err != nil {
		return nil, fmt.Errorf("モーションの複製に失敗しました: %w", err)
	}
	if out.TranslationTracks == nil {
		out.TranslationTracks = map[humanoid.BoneId]*Track{}
	}
	if out.RotationTracks == nil {
		out.RotationTracks = map[humanoid.BoneId]*Track{}
	}
	return out, nil
}
