// 指示: miu200521358
package headless

import (
	"fmt"

	"github.com/miu200521358/mu_vrma_player/pkg/domain/model"
	"github.com/miu200521358/mu_vrma_player/pkg/usecase/port/moutput"
)

// Mixer はアクションの時刻を進めて姿勢と視線へ反映する。
type Mixer struct {
	pose    *Pose
	scene   moutput.ISceneGraph
	actions []*Action
}

// NewMixer はMixerを生成する。視線トラックはsceneの視線プロキシへ反映する。
func NewMixer(pose *Pose, scene moutput.ISceneGraph) *Mixer {
	return &Mixer{pose: pose, scene: scene}
}

// ClipAction はモーションからアクションを生成する。同じモーションには同じアクションを返す。
func (m *Mixer) ClipAction(motion *model.MotionModel) (moutput.IAction, error) {
	if motion.IsEmpty() {
		return nil, fmt.Errorf("アクションを生成できません: %w", model.ErrEmptyMotionModel)
	}
	kept := m.actions[:0]
	var found *Action
	for _, action := range m.actions {
		if action.motion == motion {
			found = action
		}
		// 停止済みアクションは破棄する
		if action.enabled || action == found {
			kept = append(kept, action)
		}
	}
	m.actions = kept
	if found != nil {
		return found, nil
	}
	action := newAction(motion)
	m.actions = append(m.actions, action)
	return action, nil
}

// Actions は生成済みアクション一覧を返す。
func (m *Mixer) Actions() []*Action {
	return append([]*Action(nil), m.actions...)
}

// Update は経過時間だけアクションを進め、姿勢を評価し直す。
func (m *Mixer) Update(delta float64) {
	for _, action := range m.actions {
		action.advance(delta)
	}
	m.Evaluate()
}

// Evaluate は現在時刻で全アクションを評価して姿勢へ反映する。
func (m *Mixer) Evaluate() {
	if m.pose != nil {
		m.pose.Reset()
	}
	for _, action := range m.actions {
		if !action.contributes() {
			continue
		}
		m.applyAction(action)
	}
}

// applyAction は1アクションの現在時刻の値を姿勢と視線へ反映する。
func (m *Mixer) applyAction(action *Action) {
	motion := action.motion
	t := action.time
	if m.pose != nil {
		for boneId, track := range motion.RotationTracks {
			if q, ok := SampleQuat(track, t); ok {
				m.pose.blendRotation(boneId, m.pose.toRigRotation(q), action.weight)
			}
		}
		for boneId, track := range motion.TranslationTracks {
			if v, ok := SampleVec3(track, t); ok {
				m.pose.blendTranslation(boneId, m.pose.toRigTranslation(v), action.weight)
			}
		}
	}
	if motion.LookAtTrack == nil || m.scene == nil {
		return
	}
	node, ok := m.scene.FindByMarker(model.GazeProxyMarker)
	if !ok {
		return
	}
	proxy, ok := node.(moutput.IGazeProxy)
	if !ok {
		return
	}
	if q, ok := SampleQuat(motion.LookAtTrack, t); ok {
		proxy.SetQuaternion(q)
	}
}
