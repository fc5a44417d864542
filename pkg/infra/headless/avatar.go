// 指示: miu200521358
package headless

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/miu200521358/mu_vrma_player/pkg/domain/model"
	"github.com/miu200521358/mu_vrma_player/pkg/usecase/port/moutput"
)

// Avatar は描画を持たない再生対象アバターを表す。
type Avatar struct {
	id     string
	rig    *model.AvatarRig
	scene  *SceneGraph
	pose   *Pose
	mixer  *Mixer
	lookAt *LookAt
}

// NewAvatar は骨格情報からAvatarを生成する。
func NewAvatar(rig *model.AvatarRig) *Avatar {
	scene := NewSceneGraph()
	pose := NewPose(rig)
	avatar := &Avatar{
		id:    uuid.NewString(),
		rig:   rig,
		scene: scene,
		pose:  pose,
		mixer: NewMixer(pose, scene),
	}
	if rig.HasLookAt() {
		avatar.lookAt = NewLookAt(rig.LookAt)
	}
	return avatar
}

// ID はアバター識別子を返す。
func (a *Avatar) ID() string {
	return a.id
}

// Name はアバター名を返す。
func (a *Avatar) Name() string {
	if a.rig == nil {
		return ""
	}
	return a.rig.Name
}

// LookAt は視線機能を返す。持たない場合はnil。
func (a *Avatar) LookAt() moutput.ILookAt {
	if a.lookAt == nil {
		return nil
	}
	return a.lookAt
}

// Scene はシーングラフを返す。
func (a *Avatar) Scene() moutput.ISceneGraph {
	return a.scene
}

// Mixer はミキサーを返す。
func (a *Avatar) Mixer() moutput.IMixer {
	return a.mixer
}

// NewGazeProxy は視線機能へ結び付いたプロキシを生成する。
func (a *Avatar) NewGazeProxy(marker string) moutput.IGazeProxy {
	return NewGazeProxy(marker, a.lookAt)
}

// Rig は骨格情報を返す。
func (a *Avatar) Rig() *model.AvatarRig {
	return a.rig
}

// Pose は現在姿勢を返す。
func (a *Avatar) Pose() *Pose {
	return a.pose
}

// HeadlessMixer は具象ミキサーを返す。
func (a *Avatar) HeadlessMixer() *Mixer {
	return a.mixer
}

// SceneGraph は具象シーングラフを返す。
func (a *Avatar) SceneGraph() *SceneGraph {
	return a.scene
}

// Factory は骨格情報からheadlessアバターを組み立てる。
type Factory struct{}

// NewFactory はFactoryを生成する。
func NewFactory() *Factory {
	return &Factory{}
}

// Build はアバターを生成する。
func (f *Factory) Build(rig *model.AvatarRig) (moutput.IAvatar, error) {
	if rig == nil {
		return nil, fmt.Errorf("アバターを生成できません: %w", model.ErrAvatarRequired)
	}
	avatar := NewAvatar(rig)
	logHeadlessDebug("headlessアバターを生成しました: name=%s id=%s bones=%d lookAt=%t",
		avatar.Name(), avatar.ID(), len(rig.Bones), avatar.lookAt != nil)
	return avatar, nil
}
