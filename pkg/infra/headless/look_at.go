// 指示: miu200521358
package headless

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/miu200521358/mu_vrma_player/pkg/domain/model"
)

// LookAt は視線回転を水平角・垂直角として保持する。
type LookAt struct {
	lookAtType string
	yaw        float64
	pitch      float64
	quaternion mgl64.Quat
}

// NewLookAt は骨格情報の視線種別からLookAtを生成する。
func NewLookAt(spec *model.LookAtSpec) *LookAt {
	lookAt := &LookAt{quaternion: mgl64.QuatIdent()}
	if spec != nil {
		lookAt.lookAtType = spec.Type
	}
	return lookAt
}

// ApplyQuaternion は正面(+Z)を回転させた向きから水平角・垂直角を求める。
func (l *LookAt) ApplyQuaternion(q mgl64.Quat) {
	q = normalizeQuat(q)
	l.quaternion = q
	forward := q.Rotate(mgl64.Vec3{0, 0, 1})
	horizontal := math.Hypot(forward.X(), forward.Z())
	l.yaw = mgl64.RadToDeg(math.Atan2(forward.X(), forward.Z()))
	l.pitch = mgl64.RadToDeg(math.Atan2(forward.Y(), horizontal))
}

// Yaw は水平角(度)を返す。
func (l *LookAt) Yaw() float64 {
	return l.yaw
}

// Pitch は垂直角(度)を返す。
func (l *LookAt) Pitch() float64 {
	return l.pitch
}

// Quaternion は最後に反映した回転を返す。
func (l *LookAt) Quaternion() mgl64.Quat {
	return l.quaternion
}

// Type は視線種別を返す。
func (l *LookAt) Type() string {
	return l.lookAtType
}

// GazeProxy は視線トラックの回転を視線機能へ中継するノードを表す。
type GazeProxy struct {
	marker     string
	lookAt     *LookAt
	quaternion mgl64.Quat
}

// NewGazeProxy はGazeProxyを生成する。
func NewGazeProxy(marker string, lookAt *LookAt) *GazeProxy {
	return &GazeProxy{marker: marker, lookAt: lookAt, quaternion: mgl64.QuatIdent()}
}

// Marker はノードの識別マーカーを返す。
func (p *GazeProxy) Marker() string {
	return p.marker
}

// SetQuaternion は回転を設定し視線機能へ中継する。
func (p *GazeProxy) SetQuaternion(q mgl64.Quat) {
	p.quaternion = normalizeQuat(q)
	if p.lookAt != nil {
		p.lookAt.ApplyQuaternion(p.quaternion)
	}
}

// Quaternion は現在の回転を返す。
func (p *GazeProxy) Quaternion() mgl64.Quat {
	return p.quaternion
}
