// 指示: miu200521358
package model

import (
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	// TrackValueSizeVec3 は移動キーの要素数。
	TrackValueSizeVec3 = 3
	// TrackValueSizeQuat は回転キーの要素数。
	TrackValueSizeQuat = 4
	// trackNameSeparator はトラック名の対象と属性の区切り文字。
	trackNameSeparator = "."
)

// Interpolation はキー間の補間方式を表す。
type Interpolation string

const (
	// InterpolationLinear は線形補間を表す。
	InterpolationLinear Interpolation = "LINEAR"
	// InterpolationStep は階段補間を表す。
	InterpolationStep Interpolation = "STEP"
	// InterpolationCubicSpline はエルミートスプライン補間を表す。
	InterpolationCubicSpline Interpolation = "CUBICSPLINE"
)

// Track は名前付きのアニメーションチャンネルを表す。
// Name は "<対象名>.<属性名>" 形式。
type Track struct {
	Name          string
	Times         []float64
	Values        []float64
	ValueSize     int
	Interpolation Interpolation
}

// NewVec3Track は移動キー配列からトラックを生成する。
func NewVec3Track(name string, times []float64, values []r3.Vec) *Track {
	flat := make([]float64, 0, len(values)*TrackValueSizeVec3)
	for _, v := range values {
		flat = append(flat, v.X, v.Y, v.Z)
	}
	return &Track{
		Name:          name,
		Times:         append([]float64(nil), times...),
		Values:        flat,
		ValueSize:     TrackValueSizeVec3,
		Interpolation: InterpolationLinear,
	}
}

// NewQuatTrack は回転キー配列からトラックを生成する。値はglTFと同じ xyzw 順で保持する。
func NewQuatTrack(name string, times []float64, values []mgl64.Quat) *Track {
	flat := make([]float64, 0, len(values)*TrackValueSizeQuat)
	for _, q := range values {
		flat = append(flat, q.V[0], q.V[1], q.V[2], q.W)
	}
	return &Track{
		Name:          name,
		Times:         append([]float64(nil), times...),
		Values:        flat,
		ValueSize:     TrackValueSizeQuat,
		Interpolation: InterpolationLinear,
	}
}

// SplitName はトラック名を最初の区切り文字で対象名と属性名に分割する。
func (t *Track) SplitName() (subject string, property string, ok bool) {
	if t == nil {
		return "", "", false
	}
	return SplitTrackName(t.Name)
}

// SplitTrackName はトラック名を最初の区切り文字で対象名と属性名に分割する。
func SplitTrackName(name string) (subject string, property string, ok bool) {
	parts := strings.SplitN(name, trackNameSeparator, 2)
	if len(parts) < 2 {
		return name, "", false
	}
	return parts[0], parts[1], true
}

// JoinTrackName は対象名と属性名からトラック名を生成する。
func JoinTrackName(subject string, property string) string {
	return subject + trackNameSeparator + property
}

// KeyCount はキー数を返す。
func (t *Track) KeyCount() int {
	if t == nil {
		return 0
	}
	return len(t.Times)
}

// EndTime は最終キー時刻を返す。
func (t *Track) EndTime() float64 {
	if t == nil || len(t.Times) == 0 {
		return 0
	}
	return t.Times[len(t.Times)-1]
}

// valueOffset はi番目キーの値の開始位置を返す。CUBICSPLINEは接線を飛ばした値部分を指す。
func (t *Track) valueOffset(i int) (int, bool) {
	if t == nil || t.ValueSize <= 0 || i < 0 || i >= len(t.Times) {
		return 0, false
	}
	stride := t.ValueSize
	offset := i * stride
	if t.Interpolation == InterpolationCubicSpline {
		stride = t.ValueSize * 3
		offset = i*stride + t.ValueSize
	}
	if offset+t.ValueSize > len(t.Values) {
		return 0, false
	}
	return offset, true
}

// Vec3At はi番目キーを移動量として返す。
func (t *Track) Vec3At(i int) (r3.Vec, bool) {
	if t == nil || t.ValueSize != TrackValueSizeVec3 {
		return r3.Vec{}, false
	}
	offset, ok := t.valueOffset(i)
	if !ok {
		return r3.Vec{}, false
	}
	return r3.Vec{X: t.Values[offset], Y: t.Values[offset+1], Z: t.Values[offset+2]}, true
}

// QuatAt はi番目キーを回転として返す。
func (t *Track) QuatAt(i int) (mgl64.Quat, bool) {
	if t == nil || t.ValueSize != TrackValueSizeQuat {
		return mgl64.QuatIdent(), false
	}
	offset, ok := t.valueOffset(i)
	if !ok {
		return mgl64.QuatIdent(), false
	}
	return mgl64.Quat{
		W: t.Values[offset+3],
		V: mgl64.Vec3{t.Values[offset], t.Values[offset+1], t.Values[offset+2]},
	}, true
}

// Renamed は同じキーを共有したまま名前だけ変えたトラックを返す。
func (t *Track) Renamed(name string) *Track {
	if t == nil {
		return nil
	}
	out := *t
	out.Name = name
	return &out
}
