// 指示: miu200521358
package model

import (
	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/miu200521358/mu_vrma_player/pkg/domain/humanoid"
)

// GazeProxyMarker は視線プロキシノードの識別マーカー。
// 生トラックの対象名としても使われ、"lookAtQuaternionProxy.quaternion" は視線トラックを表す。
const GazeProxyMarker = "lookAtQuaternionProxy"

// VrmVersion はアバター元データのVRMバージョンを表す。
type VrmVersion string

const (
	// VrmVersionUnknown は判定不能を表す。
	VrmVersionUnknown VrmVersion = ""
	// VrmVersion0 はVRM 0.x を表す。
	VrmVersion0 VrmVersion = "0.x"
	// VrmVersion1 はVRM 1.0 を表す。
	VrmVersion1 VrmVersion = "1.0"
)

// RigBone はhumanoidボーンの初期姿勢を表す。
type RigBone struct {
	BoneId      humanoid.BoneId
	NodeIndex   int
	NodeName    string
	Translation r3.Vec
	Rotation    mgl64.Quat
}

// LookAtSpec はアバターの視線機能を表す。
type LookAtSpec struct {
	Type string
}

// AvatarRig はモーション再生に必要なアバター骨格情報を表す。
type AvatarRig struct {
	Name    string
	Path    string
	Version VrmVersion
	Bones   map[humanoid.BoneId]RigBone
	LookAt  *LookAtSpec
}

// NewAvatarRig は空の骨格情報を生成する。
func NewAvatarRig(name string) *AvatarRig {
	return &AvatarRig{
		Name:  name,
		Bones: map[humanoid.BoneId]RigBone{},
	}
}

// HasLookAt は視線機能を持つか判定する。
func (r *AvatarRig) HasLookAt() bool {
	return r != nil && r.LookAt != nil
}

// Bone は指定ボーンの初期姿勢を返す。
func (r *AvatarRig) Bone(boneId humanoid.BoneId) (RigBone, bool) {
	if r == nil {
		return RigBone{}, false
	}
	bone, ok := r.Bones[boneId]
	return bone, ok
}
