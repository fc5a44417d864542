// 指示: miu200521358
package minteractor

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/miu200521358/mu_vrma_player/pkg/domain/model"
	"github.com/miu200521358/mu_vrma_player/pkg/usecase/port/moutput"
)

// PlaybackState はアバター単位の再生状態を表す。
type PlaybackState string

const (
	// PlaybackStateIdle はセッションなしを表す。
	PlaybackStateIdle PlaybackState = "idle"
	// PlaybackStateBound はバインド済みで未開始を表す。
	PlaybackStateBound PlaybackState = "bound"
	// PlaybackStatePlaying は再生中を表す。
	PlaybackStatePlaying PlaybackState = "playing"
	// PlaybackStatePaused は一時停止中を表す。
	PlaybackStatePaused PlaybackState = "paused"
)

// PlaybackOptions はバインド時に適用する再生設定を表す。
type PlaybackOptions struct {
	Autoplay  bool
	Loop      moutput.LoopMode
	TimeScale float64
	Weight    float64
}

// DefaultPlaybackOptions は既定の再生設定を返す。
func DefaultPlaybackOptions() PlaybackOptions {
	return PlaybackOptions{
		Autoplay:  true,
		Loop:      moutput.LoopRepeat,
		TimeScale: 1,
		Weight:    1,
	}
}

// PlaybackSession はアバターへバインドしたモーションの再生単位を表す。
type PlaybackSession struct {
	ID        string
	Avatar    moutput.IAvatar
	Clip      *model.MotionModel
	Action    moutput.IAction
	GazeProxy moutput.IGazeProxy
	State     PlaybackState
}

// IsPlaying は再生中か判定する。
func (s *PlaybackSession) IsPlaying() bool {
	return s != nil && s.State == PlaybackStatePlaying
}

// PlaybackController はアバターごとに1つの再生セッションを管理する。
type PlaybackController struct {
	options  PlaybackOptions
	observer IPlaybackObserver
	sessions map[string]*PlaybackSession
}

// NewPlaybackController は再生コントローラーを生成する。
func NewPlaybackController(options PlaybackOptions, observer IPlaybackObserver) *PlaybackController {
	return &PlaybackController{
		options:  options,
		observer: observer,
		sessions: map[string]*PlaybackSession{},
	}
}

// Options は再生設定を返す。
func (c *PlaybackController) Options() PlaybackOptions {
	return c.options
}

// SessionCount は保持セッション数を返す。
func (c *PlaybackController) SessionCount() int {
	return len(c.sessions)
}

// Session はアバターの再生セッションを返す。
func (c *PlaybackController) Session(avatar moutput.IAvatar) (*PlaybackSession, bool) {
	if avatar == nil {
		return nil, false
	}
	session, ok := c.sessions[avatar.ID()]
	return session, ok
}

// State はアバターの再生状態を返す。
func (c *PlaybackController) State(avatar moutput.IAvatar) PlaybackState {
	session, ok := c.Session(avatar)
	if !ok {
		return PlaybackStateIdle
	}
	return session.State
}

// Bind はモーションをアバターへバインドし、以前のセッションを置き換える。
// バインドに失敗した場合は以前のセッションを変更しない。
func (c *PlaybackController) Bind(avatar moutput.IAvatar, motion *model.MotionModel) (*PlaybackSession, error) {
	if motion.IsEmpty() {
		return nil, c.reject(avatar, "bind", model.ErrEmptyMotionModel)
	}
	if avatar == nil {
		return nil, c.reject(nil, "bind", model.ErrAvatarRequired)
	}
	mixer := avatar.Mixer()
	if mixer == nil {
		return nil, c.reject(avatar, "bind", model.ErrMixerUnavailable)
	}

	proxy, hasProxy := EnsureGazeProxy(avatar)
	if motion.LookAtTrack != nil && !hasProxy {
		logMotionWarn("視線プロキシがないため視線トラックは反映されません: avatar=%s warning=%s",
			avatar.Name(), model.MotionWarningGazeProxyMissing)
	}

	action, err := mixer.ClipAction(motion)
	if err != nil {
		return nil, c.reject(avatar, "bind", fmt.Errorf("アクションの生成に失敗しました: %w", err))
	}

	if previous, ok := c.sessions[avatar.ID()]; ok {
		c.stopSession(previous)
	}

	action.SetLoop(c.options.Loop)
	action.SetTimeScale(c.options.TimeScale)
	action.SetWeight(c.options.Weight)

	session := &PlaybackSession{
		ID:        uuid.NewString(),
		Avatar:    avatar,
		Clip:      motion,
		Action:    action,
		GazeProxy: proxy,
		State:     PlaybackStateBound,
	}
	c.sessions[avatar.ID()] = session
	c.notify(PlaybackEventTypeBound, session, "bind", nil)
	logMotionInfo("モーションをバインドしました: avatar=%s clip=%s session=%s", avatar.Name(), motion.Name, session.ID)

	if c.options.Autoplay {
		c.play(session)
	}
	return session, nil
}

// Start はバインド済みセッションの再生を開始する。
func (c *PlaybackController) Start(avatar moutput.IAvatar) error {
	session, ok := c.Session(avatar)
	if !ok || session.State != PlaybackStateBound {
		return c.reject(avatar, "start", model.ErrNotBound)
	}
	c.play(session)
	return nil
}

// Pause は再生中のセッションを一時停止する。
func (c *PlaybackController) Pause(avatar moutput.IAvatar) error {
	session, ok := c.Session(avatar)
	if !ok || session.State != PlaybackStatePlaying {
		return c.reject(avatar, "pause", model.ErrNotPlaying)
	}
	session.Action.SetPaused(true)
	session.State = PlaybackStatePaused
	c.notify(PlaybackEventTypePaused, session, "pause", nil)
	return nil
}

// Resume は一時停止中のセッションを再開する。
func (c *PlaybackController) Resume(avatar moutput.IAvatar) error {
	session, ok := c.Session(avatar)
	if !ok || session.State != PlaybackStatePaused {
		return c.reject(avatar, "resume", model.ErrNotPaused)
	}
	session.Action.SetPaused(false)
	session.State = PlaybackStatePlaying
	c.notify(PlaybackEventTypeResumed, session, "resume", nil)
	return nil
}

// Toggle は現在の状態に応じて一時停止と再開を切り替える。
func (c *PlaybackController) Toggle(avatar moutput.IAvatar) (PlaybackState, error) {
	session, ok := c.Session(avatar)
	if !ok {
		return PlaybackStateIdle, c.reject(avatar, "toggle", model.ErrNoActiveSession)
	}
	var err error
	switch session.State {
	case PlaybackStatePlaying:
		err = c.Pause(avatar)
	case PlaybackStatePaused:
		err = c.Resume(avatar)
	case PlaybackStateBound:
		err = c.Start(avatar)
	default:
		err = c.reject(avatar, "toggle", model.ErrNoActiveSession)
	}
	return session.State, err
}

// Unbind はセッションを停止して破棄する。セッションがない場合は何もしない。
func (c *PlaybackController) Unbind(avatar moutput.IAvatar) {
	session, ok := c.Session(avatar)
	if !ok {
		return
	}
	c.stopSession(session)
	delete(c.sessions, avatar.ID())
	session.GazeProxy = nil
	session.State = PlaybackStateIdle
	c.notify(PlaybackEventTypeUnbound, session, "unbind", nil)
	logMotionInfo("再生セッションを破棄しました: avatar=%s session=%s", avatar.Name(), session.ID)
}

// play はアクションを再生状態にする。
func (c *PlaybackController) play(session *PlaybackSession) {
	session.Action.SetPaused(false)
	session.Action.Play()
	session.State = PlaybackStatePlaying
	c.notify(PlaybackEventTypeStarted, session, "start", nil)
}

// stopSession はセッションのアクションを停止する。
func (c *PlaybackController) stopSession(session *PlaybackSession) {
	if session.Action != nil {
		session.Action.Stop()
	}
	c.notify(PlaybackEventTypeStopped, session, "stop", nil)
}

// reject は呼び出し順違反を通知してエラーを返す。
func (c *PlaybackController) reject(avatar moutput.IAvatar, operation string, err error) error {
	event := PlaybackEvent{
		Type:      PlaybackEventTypeRejected,
		State:     c.State(avatar),
		Operation: operation,
		Err:       err,
	}
	if avatar != nil {
		event.AvatarID = avatar.ID()
	}
	c.emit(event)
	logMotionDebug("再生操作を拒否しました: operation=%s err=%v", operation, err)
	return err
}

// notify はセッションの状態変化を通知する。
func (c *PlaybackController) notify(eventType PlaybackEventType, session *PlaybackSession, operation string, err error) {
	event := PlaybackEvent{
		Type:      eventType,
		SessionID: session.ID,
		State:     session.State,
		Operation: operation,
		Err:       err,
	}
	if session.Avatar != nil {
		event.AvatarID = session.Avatar.ID()
	}
	if session.Clip != nil {
		event.ClipName = session.Clip.Name
	}
	c.emit(event)
}

// emit は監視者へイベントを渡す。
func (c *PlaybackController) emit(event PlaybackEvent) {
	if c.observer == nil {
		return
	}
	c.observer.OnPlaybackEvent(event)
}
