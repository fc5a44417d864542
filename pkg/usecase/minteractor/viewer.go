// 指示: miu200521358
package minteractor

import "github.com/miu200521358/mu_vrma_player/pkg/usecase/port/moutput"

// MotionPlayerUsecaseDeps はモーション再生ユースケースの依存を表す。
type MotionPlayerUsecaseDeps struct {
	MotionReader     moutput.IMotionReader
	AvatarReader     moutput.IAvatarReader
	AvatarFactory    moutput.IAvatarFactory
	PlaybackOptions  *PlaybackOptions
	RetargetOptions  *RetargetOptions
	PlaybackObserver IPlaybackObserver
}

// MotionPlayerUsecase はアバター読込とモーション再生をまとめたユースケースを表す。
type MotionPlayerUsecase struct {
	motionReader    moutput.IMotionReader
	avatarReader    moutput.IAvatarReader
	avatarFactory   moutput.IAvatarFactory
	retargetOptions RetargetOptions
	controller      *PlaybackController
	avatar          moutput.IAvatar
}

// NewMotionPlayerUsecase はモーション再生ユースケースを生成する。
func NewMotionPlayerUsecase(deps MotionPlayerUsecaseDeps) *MotionPlayerUsecase {
	playbackOptions := DefaultPlaybackOptions()
	if deps.PlaybackOptions != nil {
		playbackOptions = *deps.PlaybackOptions
	}
	retargetOptions := DefaultRetargetOptions()
	if deps.RetargetOptions != nil {
		retargetOptions = *deps.RetargetOptions
	}
	return &MotionPlayerUsecase{
		motionReader:    deps.MotionReader,
		avatarReader:    deps.AvatarReader,
		avatarFactory:   deps.AvatarFactory,
		retargetOptions: retargetOptions,
		controller:      NewPlaybackController(playbackOptions, deps.PlaybackObserver),
	}
}

// Controller は再生コントローラーを返す。
func (uc *MotionPlayerUsecase) Controller() *PlaybackController {
	return uc.controller
}

// Avatar は現在のアバターを返す。
func (uc *MotionPlayerUsecase) Avatar() moutput.IAvatar {
	return uc.avatar
}

// State は現在のアバターの再生状態を返す。
func (uc *MotionPlayerUsecase) State() PlaybackState {
	return uc.controller.State(uc.avatar)
}

// TogglePlayback は現在のアバターの再生と一時停止を切り替える。
func (uc *MotionPlayerUsecase) TogglePlayback() (PlaybackState, error) {
	return uc.controller.Toggle(uc.avatar)
}

// Tick は現在のアバターのミキサーを経過時間だけ進める。
func (uc *MotionPlayerUsecase) Tick(delta float64) {
	if uc.avatar == nil || uc.avatar.Mixer() == nil {
		return
	}
	uc.avatar.Mixer().Update(delta)
}
