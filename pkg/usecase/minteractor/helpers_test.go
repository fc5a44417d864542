// 指示: miu200521358
package minteractor

import (
	"errors"

	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/miu200521358/mu_vrma_player/pkg/domain/humanoid"
	"github.com/miu200521358/mu_vrma_player/pkg/domain/model"
	"github.com/miu200521358/mu_vrma_player/pkg/usecase/port/moutput"
)

// newQuatTrackForTest はテスト用の回転トラックを生成する。
func newQuatTrackForTest(name string, keyCount int) *model.Track {
	times := make([]float64, keyCount)
	values := make([]mgl64.Quat, keyCount)
	for i := 0; i < keyCount; i++ {
		times[i] = float64(i) * 0.5
		values[i] = mgl64.QuatRotate(float64(i)*0.1, mgl64.Vec3{0, 1, 0})
	}
	return model.NewQuatTrack(name, times, values)
}

// newVec3TrackForTest はテスト用の移動トラックを生成する。
func newVec3TrackForTest(name string, keyCount int) *model.Track {
	times := make([]float64, keyCount)
	values := make([]r3.Vec, keyCount)
	for i := 0; i < keyCount; i++ {
		times[i] = float64(i) * 0.5
		values[i] = r3.Vec{X: 0, Y: float64(i), Z: 0}
	}
	return model.NewVec3Track(name, times, values)
}

// newBoundableMotionForTest はhips回転のみを持つモーションを生成する。
func newBoundableMotionForTest(name string) *model.MotionModel {
	motion := model.NewMotionModel(name)
	motion.SetTrack(model.ChannelRotation, humanoid.Hips, newQuatTrackForTest("hips.quaternion", 2))
	motion.Duration = 0.5
	return motion
}

type fakeAction struct {
	playCount int
	stopCount int
	paused    bool
	running   bool
	loop      moutput.LoopMode
	timeScale float64
	weight    float64
	time      float64
}

func (a *fakeAction) Play() {
	a.playCount++
	a.running = true
}

func (a *fakeAction) Stop() {
	a.stopCount++
	a.running = false
	a.time = 0
}

func (a *fakeAction) SetPaused(paused bool) { a.paused = paused }
func (a *fakeAction) IsPaused() bool { return a.paused }
func (a *fakeAction) IsRunning() bool { return a.running && !a.paused }
func (a *fakeAction) SetLoop(mode moutput.LoopMode) { a.loop = mode }
func (a *fakeAction) SetTimeScale(scale float64) { a.timeScale = scale }
func (a *fakeAction) SetWeight(weight float64) { a.weight = weight }
func (a *fakeAction) Time() float64 { return a.time }

type fakeMixer struct {
	actions []*fakeAction
	err     error
	updated float64
}

func (m *fakeMixer) ClipAction(motion *model.MotionModel) (moutput.IAction, error) {
	if m.err != nil {
		return nil, m.err
	}
	action := &fakeAction{}
	m.actions = append(m.actions, action)
	return action, nil
}

func (m *fakeMixer) Update(delta float64) {
	m.updated += delta
}

type fakeSceneNode struct {
	marker string
}

func (n *fakeSceneNode) Marker() string { return n.marker }

type fakeScene struct {
	nodes []moutput.ISceneNode
}

func (s *fakeScene) Attach(node moutput.ISceneNode) {
	s.nodes = append(s.nodes, node)
}

func (s *fakeScene) FindByMarker(marker string) (moutput.ISceneNode, bool) {
	for _, node := range s.nodes {
		if node.Marker() == marker {
			return node, true
		}
	}
	return nil, false
}

func (s *fakeScene) Detach(marker string) bool {
	for i, node := range s.nodes {
		if node.Marker() == marker {
			s.nodes = append(s.nodes[:i], s.nodes[i+1:]...)
			return true
		}
	}
	return false
}

func (s *fakeScene) countMarker(marker string) int {
	count := 0
	for _, node := range s.nodes {
		if node.Marker() == marker {
			count++
		}
	}
	return count
}

type fakeLookAt struct {
	applied []mgl64.Quat
}

func (l *fakeLookAt) ApplyQuaternion(q mgl64.Quat) { l.applied = append(l.applied, q) }
func (l *fakeLookAt) Yaw() float64 { return 0 }
func (l *fakeLookAt) Pitch() float64 { return 0 }

type fakeGazeProxy struct {
	marker string
	lookAt *fakeLookAt
	q      mgl64.Quat
}

func (p *fakeGazeProxy) Marker() string { return p.marker }

func (p *fakeGazeProxy) SetQuaternion(q mgl64.Quat) {
	p.q = q
	p.lookAt.ApplyQuaternion(q)
}

func (p *fakeGazeProxy) Quaternion() mgl64.Quat { return p.q }

type fakeAvatar struct {
	id           string
	name         string
	lookAt       *fakeLookAt
	scene        *fakeScene
	mixer        *fakeMixer
	proxyCreated int
}

// newFakeAvatarForTest は視線機能とミキサーを持つテスト用アバターを生成する。
func newFakeAvatarForTest(id string) *fakeAvatar {
	return &fakeAvatar{
		id:     id,
		name:   "avatar-" + id,
		lookAt: &fakeLookAt{},
		scene:  &fakeScene{},
		mixer:  &fakeMixer{},
	}
}

func (a *fakeAvatar) ID() string { return a.id }
func (a *fakeAvatar) Name() string { return a.name }

func (a *fakeAvatar) LookAt() moutput.ILookAt {
	if a.lookAt == nil {
		return nil
	}
	return a.lookAt
}

func (a *fakeAvatar) Scene() moutput.ISceneGraph {
	if a.scene == nil {
		return nil
	}
	return a.scene
}

func (a *fakeAvatar) Mixer() moutput.IMixer {
	if a.mixer == nil {
		return nil
	}
	return a.mixer
}

func (a *fakeAvatar) NewGazeProxy(marker string) moutput.IGazeProxy {
	a.proxyCreated++
	return &fakeGazeProxy{marker: marker, lookAt: a.lookAt, q: mgl64.QuatIdent()}
}

type fakeMotionReader struct {
	source model.SourceClip
	err    error
	paths  []string
}

func (r *fakeMotionReader) CanLoad(path string) bool { return path != "" }

func (r *fakeMotionReader) Load(path string) (model.SourceClip, error) {
	r.paths = append(r.paths, path)
	if r.err != nil {
		return model.SourceClip{}, r.err
	}
	return r.source, nil
}

type fakeAvatarReader struct {
	rig *model.AvatarRig
	err error
}

func (r *fakeAvatarReader) CanLoad(path string) bool { return path != "" }

func (r *fakeAvatarReader) Load(path string) (*model.AvatarRig, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.rig, nil
}

type fakeAvatarFactory struct {
	built []*fakeAvatar
}

func (f *fakeAvatarFactory) Build(rig *model.AvatarRig) (moutput.IAvatar, error) {
	if rig == nil {
		return nil, errors.New("rig is nil")
	}
	avatar := newFakeAvatarForTest(rig.Name)
	if !rig.HasLookAt() {
		avatar.lookAt = nil
	}
	f.built = append(f.built, avatar)
	return avatar, nil
}

type recordingObserver struct {
	events []PlaybackEvent
}

func (o *recordingObserver) OnPlaybackEvent(event PlaybackEvent) {
	o.events = append(o.events, event)
}

func (o *recordingObserver) countType(eventType PlaybackEventType) int {
	count := 0
	for _, event := range o.events {
		if event.Type == eventType {
			count++
		}
	}
	return count
}

type recordingReporter struct {
	events []RetargetProgressEvent
}

func (r *recordingReporter) ReportRetargetProgress(event RetargetProgressEvent) {
	r.events = append(r.events, event)
}
