// 指示: miu200521358
package model

// SourceKind は入力クリップの形状種別を表す。
type SourceKind string

const (
	// SourceKindEmpty はモーションを持たない入力を表す。
	SourceKindEmpty SourceKind = "empty"
	// SourceKindNormalized はhumanoidトラック対応済みの入力を表す。
	SourceKindNormalized SourceKind = "normalized"
	// SourceKindGeneric は名前付き生トラックのみの入力を表す。
	SourceKindGeneric SourceKind = "generic"
)

// RawClip は名前付きトラック群と長さを持つ生クリップを表す。
type RawClip struct {
	Name     string
	Tracks   []*Track
	Duration float64
}

// NewRawClip はトラックの最終時刻から長さを求めて生クリップを生成する。
func NewRawClip(name string, tracks []*Track) *RawClip {
	duration := 0.0
	for _, track := range tracks {
		if end := track.EndTime(); end > duration {
			duration = end
		}
	}
	return &RawClip{Name: name, Tracks: tracks, Duration: duration}
}

// SourceClip は読み込み境界で一度だけ形状を確定した入力クリップを表す。
type SourceClip struct {
	kind       SourceKind
	name       string
	normalized *MotionModel
	clips      []*RawClip
}

// NewNormalizedSource はhumanoidトラック対応済みの入力を生成する。
func NewNormalizedSource(name string, motion *MotionModel) SourceClip {
	if motion == nil {
		return SourceClip{kind: SourceKindEmpty, name: name}
	}
	return SourceClip{kind: SourceKindNormalized, name: name, normalized: motion}
}

// NewGenericSource は生クリップ群の入力を生成する。
func NewGenericSource(name string, clips ...*RawClip) SourceClip {
	nonNil := make([]*RawClip, 0, len(clips))
	for _, clip := range clips {
		if clip != nil {
			nonNil = append(nonNil, clip)
		}
	}
	if len(nonNil) == 0 {
		return SourceClip{kind: SourceKindEmpty, name: name}
	}
	return SourceClip{kind: SourceKindGeneric, name: name, clips: nonNil}
}

// NewEmptySource はモーションを持たない入力を生成する。
func NewEmptySource(name string) SourceClip {
	return SourceClip{kind: SourceKindEmpty, name: name}
}

// Kind は入力形状種別を返す。ゼロ値は空入力として扱う。
func (s SourceClip) Kind() SourceKind {
	if s.kind == "" {
		return SourceKindEmpty
	}
	return s.kind
}

// Name は入力名を返す。
func (s SourceClip) Name() string {
	return s.name
}

// Normalized は対応済みモーションを返す。
func (s SourceClip) Normalized() (*MotionModel, bool) {
	if s.Kind() != SourceKindNormalized {
		return nil, false
	}
	return s.normalized, true
}

// Clips は生クリップ群を返す。
func (s SourceClip) Clips() []*RawClip {
	if s.Kind() != SourceKindGeneric {
		return nil
	}
	return s.clips
}

// FirstClip は最初の生クリップを返す。
func (s SourceClip) FirstClip() (*RawClip, bool) {
	clips := s.Clips()
	if len(clips) == 0 {
		return nil, false
	}
	return clips[0], true
}
