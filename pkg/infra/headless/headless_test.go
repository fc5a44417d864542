// 指示: miu200521358
package headless

import (
	"context"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/miu200521358/mu_vrma_player/pkg/domain/humanoid"
	"github.com/miu200521358/mu_vrma_player/pkg/domain/model"
	"github.com/miu200521358/mu_vrma_player/pkg/usecase/minteractor"
	"github.com/miu200521358/mu_vrma_player/pkg/usecase/port/moutput"
)

func newRigForTest(withLookAt bool) *model.AvatarRig {
	rig := model.NewAvatarRig("test")
	rig.Bones[humanoid.Hips] = model.RigBone{
		BoneId:      humanoid.Hips,
		Translation: r3.Vec{Y: 1},
		Rotation:    mgl64.QuatIdent(),
	}
	rig.Bones[humanoid.Head] = model.RigBone{BoneId: humanoid.Head, Rotation: mgl64.QuatIdent()}
	if withLookAt {
		rig.LookAt = &model.LookAtSpec{Type: "bone"}
	}
	return rig
}

func newMotionForTest() *model.MotionModel {
	motion := model.NewMotionModel("walk")
	motion.SetTrack(model.ChannelRotation, humanoid.Head, model.NewQuatTrack(
		"head.quaternion",
		[]float64{0, 1},
		[]mgl64.Quat{mgl64.QuatIdent(), mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 1, 0})},
	))
	motion.SetTrack(model.ChannelTranslation, humanoid.Hips, model.NewVec3Track(
		"hips.position",
		[]float64{0, 1},
		[]r3.Vec{{Y: 1}, {X: 2, Y: 1}},
	))
	motion.Duration = 1
	return motion
}

func TestSampleVec3LinearAndStep(t *testing.T) {
	track := model.NewVec3Track("hips.position", []float64{0, 1, 2}, []r3.Vec{{}, {X: 2}, {X: 4}})

	v, ok := SampleVec3(track, 0.5)
	require.True(t, ok)
	assert.InDelta(t, 1, v.X, 1e-9)
	v, _ = SampleVec3(track, -1)
	assert.InDelta(t, 0, v.X, 1e-9)
	v, _ = SampleVec3(track, 5)
	assert.InDelta(t, 4, v.X, 1e-9)

	track.Interpolation = model.InterpolationStep
	v, _ = SampleVec3(track, 1.9)
	assert.InDelta(t, 2, v.X, 1e-9)

	_, ok = SampleVec3(&model.Track{ValueSize: model.TrackValueSizeVec3}, 0)
	assert.False(t, ok)
}

func TestSampleQuatTakesShortestPath(t *testing.T) {
	a := mgl64.QuatRotate(math.Pi/4, mgl64.Vec3{0, 1, 0})
	b := a.Scale(-1)
	track := model.NewQuatTrack("head.quaternion", []float64{0, 1}, []mgl64.Quat{a, b})

	q, ok := SampleQuat(track, 0.5)
	require.True(t, ok)
	assert.InDelta(t, 1, math.Abs(q.Dot(a)), 1e-9)

	track = model.NewQuatTrack("head.quaternion", []float64{0, 1},
		[]mgl64.Quat{mgl64.QuatIdent(), mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 1, 0})})
	q, _ = SampleQuat(track, 0.5)
	expected := mgl64.QuatRotate(math.Pi/4, mgl64.Vec3{0, 1, 0})
	assert.InDelta(t, 1, math.Abs(q.Dot(expected)), 1e-9)
}

func TestSceneGraphAttachFindDetach(t *testing.T) {
	scene := NewSceneGraph()
	scene.Attach(NewSceneNode("a"))
	scene.Attach(NewSceneNode("b"))
	scene.Attach(NewSceneNode("a"))
	scene.Attach(nil)

	assert.Equal(t, 2, scene.Len())
	assert.Equal(t, []string{"a", "b"}, scene.Markers())
	_, ok := scene.FindByMarker("b")
	assert.True(t, ok)
	assert.True(t, scene.Detach("a"))
	assert.False(t, scene.Detach("a"))
	assert.Equal(t, []string{"b"}, scene.Markers())
}

func TestLookAtApplyQuaternion(t *testing.T) {
	lookAt := NewLookAt(&model.LookAtSpec{Type: "bone"})
	lookAt.ApplyQuaternion(mgl64.QuatRotate(mgl64.DegToRad(30), mgl64.Vec3{0, 1, 0}))
	assert.InDelta(t, 30, lookAt.Yaw(), 1e-6)
	assert.InDelta(t, 0, lookAt.Pitch(), 1e-6)

	lookAt.ApplyQuaternion(mgl64.QuatRotate(mgl64.DegToRad(-20), mgl64.Vec3{1, 0, 0}))
	assert.InDelta(t, 0, lookAt.Yaw(), 1e-6)
	assert.InDelta(t, 20, lookAt.Pitch(), 1e-6)
	assert.Equal(t, "bone", lookAt.Type())
}

func TestActionLoopRepeatAndOnce(t *testing.T) {
	motion := newMotionForTest()
	action := newAction(motion)
	action.Play()
	action.advance(1.25)
	assert.InDelta(t, 0.25, action.Time(), 1e-9)
	assert.Equal(t, 1, action.LoopCount())

	action.SetPaused(true)
	assert.False(t, action.IsRunning())
	action.advance(0.5)
	assert.InDelta(t, 0.25, action.Time(), 1e-9)

	once := newAction(motion)
	once.SetLoop(moutput.LoopOnce)
	once.SetTimeScale(2)
	once.Play()
	once.advance(0.75)
	assert.InDelta(t, 1, once.Time(), 1e-9)
	assert.False(t, once.IsRunning())
	assert.False(t, once.contributes())

	once.Stop()
	assert.InDelta(t, 0, once.Time(), 1e-9)
	once.SetWeight(3)
	assert.InDelta(t, 1, once.weight, 1e-9)
}

func TestMixerUpdatesPoseAndGaze(t *testing.T) {
	avatar := NewAvatar(newRigForTest(true))
	motion := newMotionForTest()
	motion.LookAtTrack = model.NewQuatTrack(
		model.JoinTrackName(model.GazeProxyMarker, "quaternion"),
		[]float64{0, 1},
		[]mgl64.Quat{mgl64.QuatIdent(), mgl64.QuatRotate(mgl64.DegToRad(40), mgl64.Vec3{0, 1, 0})},
	)
	proxy, ok := minteractor.EnsureGazeProxy(avatar)
	require.True(t, ok)

	action, err := avatar.Mixer().ClipAction(motion)
	require.NoError(t, err)
	action.Play()
	avatar.Mixer().Update(0.5)

	head, ok := avatar.Pose().Bone(humanoid.Head)
	require.True(t, ok)
	expected := mgl64.QuatRotate(math.Pi/4, mgl64.Vec3{0, 1, 0})
	assert.InDelta(t, 1, math.Abs(head.Rotation.Dot(expected)), 1e-9)
	hips, _ := avatar.Pose().Bone(humanoid.Hips)
	assert.InDelta(t, 1, hips.Translation.X, 1e-9)
	assert.InDelta(t, 20, avatar.LookAt().Yaw(), 1e-6)
	assert.InDelta(t, 1, math.Abs(proxy.Quaternion().Dot(mgl64.QuatRotate(mgl64.DegToRad(20), mgl64.Vec3{0, 1, 0}))), 1e-9)

	action.SetWeight(0.5)
	action.SetPaused(true)
	avatar.Mixer().Update(0.1)
	hips, _ = avatar.Pose().Bone(humanoid.Hips)
	assert.InDelta(t, 0.5, hips.Translation.X, 1e-9)

	action.Stop()
	avatar.Mixer().Update(0.1)
	hips, _ = avatar.Pose().Bone(humanoid.Hips)
	assert.InDelta(t, 0, hips.Translation.X, 1e-9)
}

func TestMixerMirrorsNormalizedValuesForVrm0Rig(t *testing.T) {
	rig := newRigForTest(false)
	rig.Version = model.VrmVersion0
	avatar := NewAvatar(rig)
	assert.True(t, avatar.Pose().IsVrm0())

	motion := newMotionForTest()
	motion.SetTrack(model.ChannelRotation, humanoid.Hips, model.NewQuatTrack(
		"hips.quaternion",
		[]float64{0, 1},
		[]mgl64.Quat{{W: 0.5, V: mgl64.Vec3{0.5, 0.5, 0.5}}, {W: 0.5, V: mgl64.Vec3{0.5, 0.5, 0.5}}},
	))
	motion.SetTrack(model.ChannelTranslation, humanoid.Hips, model.NewVec3Track(
		"hips.position",
		[]float64{0, 1},
		[]r3.Vec{{Y: 1}, {X: 2, Y: 1, Z: 3}},
	))
	action, err := avatar.Mixer().ClipAction(motion)
	require.NoError(t, err)
	action.SetLoop(moutput.LoopOnce)
	action.Play()
	avatar.Mixer().Update(0.999999999)

	hips, ok := avatar.Pose().Bone(humanoid.Hips)
	require.True(t, ok)
	assert.InDelta(t, -2, hips.Translation.X, 1e-6)
	assert.InDelta(t, 1, hips.Translation.Y, 1e-6)
	assert.InDelta(t, -3, hips.Translation.Z, 1e-6)
	assert.InDelta(t, -0.5, hips.Rotation.V[0], 1e-9)
	assert.InDelta(t, 0.5, hips.Rotation.V[1], 1e-9)
	assert.InDelta(t, -0.5, hips.Rotation.V[2], 1e-9)
	assert.InDelta(t, 0.5, hips.Rotation.W, 1e-9)

	vrm1 := NewAvatar(newRigForTest(false))
	action, err = vrm1.Mixer().ClipAction(motion)
	require.NoError(t, err)
	action.Play()
	vrm1.Mixer().Update(0.5)
	hips, _ = vrm1.Pose().Bone(humanoid.Hips)
	assert.InDelta(t, 1, hips.Translation.X, 1e-9)
	assert.InDelta(t, 1.5, hips.Translation.Z, 1e-9)
}

func TestMixerClipActionReusesAndPrunes(t *testing.T) {
	avatar := NewAvatar(newRigForTest(false))
	mixer := avatar.HeadlessMixer()
	first := newMotionForTest()

	a1, err := mixer.ClipAction(first)
	require.NoError(t, err)
	a2, err := mixer.ClipAction(first)
	require.NoError(t, err)
	assert.Same(t, a1, a2)

	a1.Play()
	a1.Stop()
	_, err = mixer.ClipAction(newMotionForTest())
	require.NoError(t, err)
	assert.Len(t, mixer.Actions(), 1)

	_, err = mixer.ClipAction(model.NewMotionModel("empty"))
	assert.ErrorIs(t, err, model.ErrEmptyMotionModel)
}

func TestAvatarWithoutLookAt(t *testing.T) {
	avatar, err := NewFactory().Build(newRigForTest(false))
	require.NoError(t, err)
	assert.Nil(t, avatar.LookAt())
	assert.NotEmpty(t, avatar.ID())
	assert.Equal(t, "test", avatar.Name())

	_, ok := minteractor.EnsureGazeProxy(avatar)
	assert.False(t, ok)

	_, err = NewFactory().Build(nil)
	assert.ErrorIs(t, err, model.ErrAvatarRequired)
}

func TestPlaybackControllerDrivesHeadlessAvatar(t *testing.T) {
	avatar := NewAvatar(newRigForTest(true))
	controller := minteractor.NewPlaybackController(minteractor.DefaultPlaybackOptions(), nil)

	session, err := controller.Bind(avatar, newMotionForTest())
	require.NoError(t, err)
	assert.Equal(t, minteractor.PlaybackStatePlaying, session.State)
	require.NotNil(t, session.GazeProxy)

	clock, err := NewFrameClock(10)
	require.NoError(t, err)
	frames, err := clock.Run(context.Background(), 0.5, func(frame int, delta float64) bool {
		avatar.Mixer().Update(delta)
		return true
	})
	require.NoError(t, err)
	assert.Equal(t, 5, frames)
	assert.InDelta(t, 0.5, session.Action.Time(), 1e-9)

	state, err := controller.Toggle(avatar)
	require.NoError(t, err)
	assert.Equal(t, minteractor.PlaybackStatePaused, state)
	avatar.Mixer().Update(0.2)
	assert.InDelta(t, 0.5, session.Action.Time(), 1e-9)
}

func TestFrameClock(t *testing.T) {
	_, err := NewFrameClock(0)
	assert.Error(t, err)

	clock, err := NewFrameClock(60)
	require.NoError(t, err)
	assert.Equal(t, 60, clock.FrameCount(1))
	assert.Equal(t, 0, clock.FrameCount(-1))
	assert.InDelta(t, 1.0/60, clock.Step(), 1e-12)

	frames, err := clock.Run(context.Background(), 1, func(frame int, delta float64) bool {
		return frame < 3
	})
	require.NoError(t, err)
	assert.Equal(t, 3, frames)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	frames, err = clock.Run(ctx, 1, func(int, float64) bool { return true })
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, frames)
}
