// 指示: miu200521358
// Package headless は描画を伴わないアバター・ミキサー実装を提供する。
package headless

import (
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/miu200521358/mu_vrma_player/pkg/domain/model"
)

// keySpan は時刻を挟む2キーと補間率を表す。
type keySpan struct {
	from  int
	to    int
	alpha float64
}

// findKeySpan は時刻を挟むキー区間を返す。範囲外は端のキーに張り付く。
func findKeySpan(track *model.Track, t float64) (keySpan, bool) {
	count := track.KeyCount()
	if count == 0 {
		return keySpan{}, false
	}
	times := track.Times
	if count == 1 || t <= times[0] {
		return keySpan{from: 0, to: 0}, true
	}
	if t >= times[count-1] {
		return keySpan{from: count - 1, to: count - 1}, true
	}
	// times[next] > t を満たす最初のキー
	next := sort.Search(count, func(i int) bool { return times[i] > t })
	prev := next - 1
	span := times[next] - times[prev]
	if span <= 0 {
		return keySpan{from: next, to: next}, true
	}
	alpha := (t - times[prev]) / span
	if track.Interpolation == model.InterpolationStep {
		alpha = 0
	}
	return keySpan{from: prev, to: next, alpha: alpha}, true
}

// SampleVec3 は移動トラックを時刻tで評価する。CUBICSPLINEは値キー間の線形補間で近似する。
func SampleVec3(track *model.Track, t float64) (r3.Vec, bool) {
	span, ok := findKeySpan(track, t)
	if !ok {
		return r3.Vec{}, false
	}
	from, ok := track.Vec3At(span.from)
	if !ok {
		return r3.Vec{}, false
	}
	if span.alpha == 0 || span.from == span.to {
		return from, true
	}
	to, ok := track.Vec3At(span.to)
	if !ok {
		return r3.Vec{}, false
	}
	return lerpVec3(from, to, span.alpha), true
}

// SampleQuat は回転トラックを時刻tで評価する。
func SampleQuat(track *model.Track, t float64) (mgl64.Quat, bool) {
	span, ok := findKeySpan(track, t)
	if !ok {
		return mgl64.QuatIdent(), false
	}
	from, ok := track.QuatAt(span.from)
	if !ok {
		return mgl64.QuatIdent(), false
	}
	if span.alpha == 0 || span.from == span.to {
		return normalizeQuat(from), true
	}
	to, ok := track.QuatAt(span.to)
	if !ok {
		return mgl64.QuatIdent(), false
	}
	return slerpShortest(from, to, span.alpha), true
}

// lerpVec3 はベクトルを線形補間する。
func lerpVec3(from r3.Vec, to r3.Vec, alpha float64) r3.Vec {
	return r3.Add(from, r3.Scale(alpha, r3.Sub(to, from)))
}

// slerpShortest は最短経路で球面線形補間する。
func slerpShortest(from mgl64.Quat, to mgl64.Quat, alpha float64) mgl64.Quat {
	from = normalizeQuat(from)
	to = normalizeQuat(to)
	if from.Dot(to) < 0 {
		to = to.Scale(-1)
	}
	return normalizeQuat(mgl64.QuatSlerp(from, to, alpha))
}

// normalizeQuat は長さ0の回転を単位回転として正規化する。
func normalizeQuat(q mgl64.Quat) mgl64.Quat {
	if q.Len() == 0 {
		return mgl64.QuatIdent()
	}
	return q.Normalize()
}
