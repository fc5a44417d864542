// 指示: miu200521358
package headless

import (
	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/miu200521358/mu_vrma_player/pkg/domain/humanoid"
	"github.com/miu200521358/mu_vrma_player/pkg/domain/model"
)

// BonePose はボーン1本の現在姿勢を表す。
type BonePose struct {
	Translation r3.Vec
	Rotation    mgl64.Quat
}

// Pose はアバター全体の現在姿勢を表す。
type Pose struct {
	rest  map[humanoid.BoneId]BonePose
	bones map[humanoid.BoneId]BonePose

	// vrm0 はVRM 0.x 骨格 (Z軸反転) かどうか
	vrm0 bool
}

// NewPose は骨格の初期姿勢からPoseを生成する。
func NewPose(rig *model.AvatarRig) *Pose {
	pose := &Pose{
		rest:  map[humanoid.BoneId]BonePose{},
		bones: map[humanoid.BoneId]BonePose{},
	}
	if rig == nil {
		return pose
	}
	pose.vrm0 = rig.Version == model.VrmVersion0
	for boneId, bone := range rig.Bones {
		pose.rest[boneId] = BonePose{Translation: bone.Translation, Rotation: normalizeQuat(bone.Rotation)}
	}
	pose.Reset()
	return pose
}

// Reset は全ボーンを初期姿勢へ戻す。
func (p *Pose) Reset() {
	for boneId, rest := range p.rest {
		p.bones[boneId] = rest
	}
}

// Bone は指定ボーンの現在姿勢を返す。
func (p *Pose) Bone(boneId humanoid.BoneId) (BonePose, bool) {
	bone, ok := p.bones[boneId]
	return bone, ok
}

// BoneIds は姿勢を持つボーン一覧を登録順で返す。
func (p *Pose) BoneIds() []humanoid.BoneId {
	out := make([]humanoid.BoneId, 0, len(p.bones))
	for _, boneId := range humanoid.BoneIds() {
		if _, ok := p.bones[boneId]; ok {
			out = append(out, boneId)
		}
	}
	return out
}

// blendRotation は現在の回転から指定回転へ重みで寄せる。骨格にないボーンは無視する。
func (p *Pose) blendRotation(boneId humanoid.BoneId, q mgl64.Quat, weight float64) {
	current, ok := p.bones[boneId]
	if !ok {
		return
	}
	if weight >= 1 {
		current.Rotation = normalizeQuat(q)
	} else {
		current.Rotation = slerpShortest(current.Rotation, q, weight)
	}
	p.bones[boneId] = current
}

// blendTranslation は現在の位置から指定位置へ重みで寄せる。骨格にないボーンは無視する。
func (p *Pose) blendTranslation(boneId humanoid.BoneId, v r3.Vec, weight float64) {
	current, ok := p.bones[boneId]
	if !ok {
		return
	}
	if weight >= 1 {
		current.Translation = v
	} else {
		current.Translation = lerpVec3(current.Translation, v, weight)
	}
	p.bones[boneId] = current
}

// IsVrm0 はVRM 0.x 骨格か判定する。
func (p *Pose) IsVrm0() bool {
	return p.vrm0
}

// toRigRotation は正規化済み回転を骨格の座標系へ変換する。VRM 0.x ではX/Zを反転する。
func (p *Pose) toRigRotation(q mgl64.Quat) mgl64.Quat {
	if !p.vrm0 {
		return q
	}
	return mgl64.Quat{W: q.W, V: mgl64.Vec3{-q.V[0], q.V[1], -q.V[2]}}
}

// toRigTranslation は正規化済み位置を骨格の座標系へ変換する。VRM 0.x ではX/Zを反転する。
func (p *Pose) toRigTranslation(v r3.Vec) r3.Vec {
	if !p.vrm0 {
		return v
	}
	return r3.Vec{X: -v.X, Y: v.Y, Z: -v.Z}
}
