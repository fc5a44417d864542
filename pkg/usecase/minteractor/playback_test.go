// 指示: miu200521358
package minteractor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miu200521358/mu_vrma_player/pkg/domain/model"
	"github.com/miu200521358/mu_vrma_player/pkg/usecase/port/moutput"
)

func TestPlaybackBindAutoplays(t *testing.T) {
	avatar := newFakeAvatarForTest("a")
	observer := &recordingObserver{}
	controller := NewPlaybackController(DefaultPlaybackOptions(), observer)

	session, err := controller.Bind(avatar, newBoundableMotionForTest("clip"))
	require.NoError(t, err)

	assert.NotEmpty(t, session.ID)
	assert.True(t, session.IsPlaying())
	assert.Equal(t, PlaybackStatePlaying, controller.State(avatar))
	require.Len(t, avatar.mixer.actions, 1)
	action := avatar.mixer.actions[0]
	assert.Equal(t, 1, action.playCount)
	assert.Equal(t, moutput.LoopRepeat, action.loop)
	assert.InDelta(t, 1, action.timeScale, 1e-9)
	assert.InDelta(t, 1, action.weight, 1e-9)
	assert.NotNil(t, session.GazeProxy)
	assert.Equal(t, 1, avatar.scene.countMarker(model.GazeProxyMarker))
	assert.Equal(t, 1, observer.countType(PlaybackEventTypeBound))
	assert.Equal(t, 1, observer.countType(PlaybackEventTypeStarted))
}

func TestPlaybackBindWithoutAutoplay(t *testing.T) {
	avatar := newFakeAvatarForTest("a")
	options := DefaultPlaybackOptions()
	options.Autoplay = false
	options.Loop = moutput.LoopOnce
	options.TimeScale = 0.5
	controller := NewPlaybackController(options, nil)

	session, err := controller.Bind(avatar, newBoundableMotionForTest("clip"))
	require.NoError(t, err)

	assert.Equal(t, PlaybackStateBound, session.State)
	assert.False(t, session.IsPlaying())
	action := avatar.mixer.actions[0]
	assert.Zero(t, action.playCount)
	assert.Equal(t, moutput.LoopOnce, action.loop)
	assert.InDelta(t, 0.5, action.timeScale, 1e-9)

	assert.ErrorIs(t, controller.Pause(avatar), model.ErrNotPlaying)
	require.NoError(t, controller.Start(avatar))
	assert.Equal(t, PlaybackStatePlaying, controller.State(avatar))
	assert.ErrorIs(t, controller.Start(avatar), model.ErrNotBound)
}

func TestPlaybackBindTwiceStopsFirstActionOnce(t *testing.T) {
	avatar := newFakeAvatarForTest("a")
	observer := &recordingObserver{}
	controller := NewPlaybackController(DefaultPlaybackOptions(), observer)

	first, err := controller.Bind(avatar, newBoundableMotionForTest("first"))
	require.NoError(t, err)
	second, err := controller.Bind(avatar, newBoundableMotionForTest("second"))
	require.NoError(t, err)

	require.Len(t, avatar.mixer.actions, 2)
	assert.Equal(t, 1, avatar.mixer.actions[0].stopCount)
	assert.Zero(t, avatar.mixer.actions[1].stopCount)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, 1, controller.SessionCount())
	current, ok := controller.Session(avatar)
	require.True(t, ok)
	assert.Same(t, second, current)
	assert.Equal(t, 1, avatar.proxyCreated)
	assert.Equal(t, 1, observer.countType(PlaybackEventTypeStopped))
}

func TestPlaybackBindRejectsEmptyMotion(t *testing.T) {
	avatar := newFakeAvatarForTest("a")
	controller := NewPlaybackController(DefaultPlaybackOptions(), nil)

	emptyMotion, _ := BuildMotionModel(model.NewGenericSource("empty", model.NewRawClip("empty", nil)), DefaultRetargetOptions())

	_, err := controller.Bind(avatar, emptyMotion)
	assert.ErrorIs(t, err, model.ErrEmptyMotionModel)
	_, err = controller.Bind(avatar, nil)
	assert.ErrorIs(t, err, model.ErrEmptyMotionModel)
	assert.Equal(t, PlaybackStateIdle, controller.State(avatar))
	assert.Empty(t, avatar.mixer.actions)
	assert.Empty(t, avatar.scene.nodes)
}

func TestPlaybackBindRequiresMixerAndAvatar(t *testing.T) {
	controller := NewPlaybackController(DefaultPlaybackOptions(), nil)

	_, err := controller.Bind(nil, newBoundableMotionForTest("clip"))
	assert.ErrorIs(t, err, model.ErrAvatarRequired)

	avatar := newFakeAvatarForTest("a")
	avatar.mixer = nil
	_, err = controller.Bind(avatar, newBoundableMotionForTest("clip"))
	assert.ErrorIs(t, err, model.ErrMixerUnavailable)
}

func TestPlaybackBindFailureKeepsPreviousSession(t *testing.T) {
	avatar := newFakeAvatarForTest("a")
	controller := NewPlaybackController(DefaultPlaybackOptions(), nil)
	first, err := controller.Bind(avatar, newBoundableMotionForTest("first"))
	require.NoError(t, err)

	avatar.mixer.err = errors.New("bind failed")
	_, err = controller.Bind(avatar, newBoundableMotionForTest("second"))
	require.Error(t, err)

	current, ok := controller.Session(avatar)
	require.True(t, ok)
	assert.Same(t, first, current)
	assert.Zero(t, avatar.mixer.actions[0].stopCount)
	assert.True(t, current.IsPlaying())
}

func TestPlaybackToggleBeforeBind(t *testing.T) {
	avatar := newFakeAvatarForTest("a")
	observer := &recordingObserver{}
	controller := NewPlaybackController(DefaultPlaybackOptions(), observer)

	state, err := controller.Toggle(avatar)
	assert.ErrorIs(t, err, model.ErrNoActiveSession)
	assert.Equal(t, PlaybackStateIdle, state)
	assert.Equal(t, 1, observer.countType(PlaybackEventTypeRejected))

	_, err = controller.Toggle(nil)
	assert.ErrorIs(t, err, model.ErrNoActiveSession)
}

func TestPlaybackToggleAlternates(t *testing.T) {
	avatar := newFakeAvatarForTest("a")
	controller := NewPlaybackController(DefaultPlaybackOptions(), nil)
	session, err := controller.Bind(avatar, newBoundableMotionForTest("clip"))
	require.NoError(t, err)

	want := []bool{false, true, false, true, false}
	for i, expected := range want {
		_, err := controller.Toggle(avatar)
		require.NoErrorf(t, err, "toggle %d", i)
		assert.Equalf(t, expected, session.IsPlaying(), "toggle %d", i)
		assert.Equalf(t, !expected, avatar.mixer.actions[0].IsPaused(), "toggle %d", i)
	}
}

func TestPlaybackPauseResumeRules(t *testing.T) {
	avatar := newFakeAvatarForTest("a")
	controller := NewPlaybackController(DefaultPlaybackOptions(), nil)

	assert.ErrorIs(t, controller.Pause(avatar), model.ErrNotPlaying)
	assert.ErrorIs(t, controller.Resume(avatar), model.ErrNotPaused)

	_, err := controller.Bind(avatar, newBoundableMotionForTest("clip"))
	require.NoError(t, err)
	assert.ErrorIs(t, controller.Resume(avatar), model.ErrNotPaused)
	require.NoError(t, controller.Pause(avatar))
	assert.ErrorIs(t, controller.Pause(avatar), model.ErrNotPlaying)
	require.NoError(t, controller.Resume(avatar))
	assert.Equal(t, PlaybackStatePlaying, controller.State(avatar))
}

func TestPlaybackUnbind(t *testing.T) {
	avatar := newFakeAvatarForTest("a")
	other := newFakeAvatarForTest("b")
	controller := NewPlaybackController(DefaultPlaybackOptions(), nil)
	session, err := controller.Bind(avatar, newBoundableMotionForTest("clip"))
	require.NoError(t, err)
	_, err = controller.Bind(other, newBoundableMotionForTest("clip"))
	require.NoError(t, err)

	controller.Unbind(avatar)

	assert.Equal(t, PlaybackStateIdle, controller.State(avatar))
	assert.Equal(t, PlaybackStateIdle, session.State)
	assert.Nil(t, session.GazeProxy)
	assert.Equal(t, 1, avatar.mixer.actions[0].stopCount)
	assert.Equal(t, PlaybackStatePlaying, controller.State(other))
	assert.Equal(t, 1, controller.SessionCount())

	controller.Unbind(avatar)
	assert.Equal(t, 1, avatar.mixer.actions[0].stopCount)
	_, err = controller.Toggle(avatar)
	assert.ErrorIs(t, err, model.ErrNoActiveSession)
}

func TestPlaybackBindWithoutLookAt(t *testing.T) {
	avatar := newFakeAvatarForTest("a")
	avatar.lookAt = nil
	controller := NewPlaybackController(DefaultPlaybackOptions(), nil)
	motion := newBoundableMotionForTest("clip")
	motion.LookAtTrack = newQuatTrackForTest(model.GazeProxyMarker+".quaternion", 2)

	session, err := controller.Bind(avatar, motion)
	require.NoError(t, err)
	assert.Nil(t, session.GazeProxy)
	assert.True(t, session.IsPlaying())
}
