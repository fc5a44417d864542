// 指示: miu200521358
package minteractor

import (
	"fmt"
	"strings"

	"github.com/miu200521358/mu_vrma_player/pkg/domain/model"
	"github.com/miu200521358/mu_vrma_player/pkg/usecase/port/moutput"
)

// LoadMotion はモーション入力を読み込む。
func (uc *MotionPlayerUsecase) LoadMotion(rep moutput.IMotionReader, path string) (model.SourceClip, error) {
	repo := rep
	if repo == nil {
		repo = uc.motionReader
	}
	if repo == nil {
		return model.SourceClip{}, fmt.Errorf("モーション読み込みリポジトリが設定されていません")
	}
	if strings.TrimSpace(path) == "" {
		return model.SourceClip{}, fmt.Errorf("モーションファイルパスが未指定です")
	}
	if !repo.CanLoad(path) {
		return model.SourceClip{}, fmt.Errorf("モーションファイルとして読み込めません: %s", path)
	}
	return repo.Load(path)
}

// BuildMotion は入力クリップをhumanoidモーションへ変換する。
func (uc *MotionPlayerUsecase) BuildMotion(source model.SourceClip) (*model.MotionModel, *RetargetReport) {
	return BuildMotionModel(source, uc.retargetOptions)
}

// LoadAvatar はアバター骨格を読み込み、現在のアバターを置き換える。
func (uc *MotionPlayerUsecase) LoadAvatar(rep moutput.IAvatarReader, path string) (moutput.IAvatar, error) {
	repo := rep
	if repo == nil {
		repo = uc.avatarReader
	}
	if repo == nil {
		return nil, fmt.Errorf("アバター読み込みリポジトリが設定されていません")
	}
	if uc.avatarFactory == nil {
		return nil, fmt.Errorf("アバター生成処理が設定されていません")
	}
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("アバターファイルパスが未指定です")
	}
	if !repo.CanLoad(path) {
		return nil, fmt.Errorf("アバターファイルとして読み込めません: %s", path)
	}

	// 読み込み前に旧アバターの再生を止める
	uc.ReplaceAvatar(nil)

	rig, err := repo.Load(path)
	if err != nil {
		return nil, err
	}
	avatar, err := uc.avatarFactory.Build(rig)
	if err != nil {
		return nil, fmt.Errorf("アバターの生成に失敗しました: %w", err)
	}
	uc.ReplaceAvatar(avatar)
	logMotionInfo("アバターを読み込みました: name=%s bones=%d lookAt=%t", rig.Name, len(rig.Bones), rig.HasLookAt())
	return avatar, nil
}

// ReplaceAvatar は旧アバターのセッションを破棄してから現在のアバターを差し替える。
func (uc *MotionPlayerUsecase) ReplaceAvatar(avatar moutput.IAvatar) {
	if uc.avatar != nil {
		uc.controller.Unbind(uc.avatar)
		if scene := uc.avatar.Scene(); scene != nil {
			scene.Detach(model.GazeProxyMarker)
		}
	}
	uc.avatar = avatar
}

// LoadAndBindMotion はモーションを読み込み、アバターへバインドする。
// 失敗時は既存の再生セッションを変更しない。
func (uc *MotionPlayerUsecase) LoadAndBindMotion(request LoadMotionRequest) (*LoadMotionResult, error) {
	avatar := request.Avatar
	if avatar == nil {
		avatar = uc.avatar
	}
	if avatar == nil {
		return &LoadMotionResult{Status: LoadMotionStatusAvatarRequired}, model.ErrAvatarRequired
	}

	logMotionInfo("モーションを読み込みます: %s", request.Path)
	source, err := uc.LoadMotion(request.Reader, request.Path)
	if err != nil {
		return &LoadMotionResult{Status: LoadMotionStatusLoadFailed}, err
	}
	result := &LoadMotionResult{ClipName: source.Name()}
	if source.Kind() == model.SourceKindEmpty {
		result.Status = LoadMotionStatusNoAnimation
		return result, fmt.Errorf("%w: アニメーションが含まれていません: %s", model.ErrEmptyMotionModel, request.Path)
	}

	motion, report := uc.BuildMotion(source)
	result.Motion = motion
	result.Report = report
	if motion.Name != "" {
		result.ClipName = motion.Name
	}
	if motion.IsEmpty() {
		result.Status = LoadMotionStatusNoUsableMotion
		return result, model.ErrEmptyMotionModel
	}

	session, err := uc.controller.Bind(avatar, motion)
	if err != nil {
		result.Status = LoadMotionStatusBindFailed
		return result, err
	}
	result.Session = session
	if session.IsPlaying() {
		result.Status = LoadMotionStatusPlaying
	} else {
		result.Status = LoadMotionStatusBound
	}
	return result, nil
}
