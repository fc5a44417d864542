// 指示: miu200521358
package moutput

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/miu200521358/mu_vrma_player/pkg/domain/model"
)

// IMotionReader はモーション入力の読み込み契約を表す。
type IMotionReader interface {
	// CanLoad は読み込み可否を判定する。
	CanLoad(path string) bool
	// Load は入力クリップを読み込む。
	Load(path string) (model.SourceClip, error)
}

// IAvatarReader はアバター骨格の読み込み契約を表す。
type IAvatarReader interface {
	// CanLoad は読み込み可否を判定する。
	CanLoad(path string) bool
	// Load はアバター骨格を読み込む。
	Load(path string) (*model.AvatarRig, error)
}

// ISceneNode はシーングラフ上のノードを表す。
type ISceneNode interface {
	// Marker はノードの識別マーカーを返す。
	Marker() string
}

// ISceneGraph はアバターのシーングラフ操作契約を表す。
type ISceneGraph interface {
	// Attach はノードを追加する。
	Attach(node ISceneNode)
	// FindByMarker はマーカーでノードを検索する。
	FindByMarker(marker string) (ISceneNode, bool)
	// Detach はマーカーに一致するノードを外す。
	Detach(marker string) bool
}

// ILookAt はアバターの視線機能を表す。
type ILookAt interface {
	// ApplyQuaternion は回転を視線角度へ反映する。
	ApplyQuaternion(q mgl64.Quat)
	// Yaw は水平角(度)を返す。
	Yaw() float64
	// Pitch は垂直角(度)を返す。
	Pitch() float64
}

// IGazeProxy は視線機能へ回転を中継するノードを表す。
type IGazeProxy interface {
	ISceneNode
	// SetQuaternion は回転を設定し視線機能へ中継する。
	SetQuaternion(q mgl64.Quat)
	// Quaternion は現在の回転を返す。
	Quaternion() mgl64.Quat
}

// LoopMode はアクションの繰り返し方式を表す。
type LoopMode string

const (
	// LoopRepeat は末尾から先頭へ戻って繰り返す。
	LoopRepeat LoopMode = "repeat"
	// LoopOnce は1回で停止する。
	LoopOnce LoopMode = "once"
)

// IAction はミキサー上の再生可能アクションを表す。
type IAction interface {
	// Play は再生を開始する。
	Play()
	// Stop は停止し時刻を先頭へ戻す。
	Stop()
	// SetPaused は一時停止状態を設定する。
	SetPaused(paused bool)
	// IsPaused は一時停止中か返す。
	IsPaused() bool
	// IsRunning は時刻が進む状態か返す。
	IsRunning() bool
	// SetLoop は繰り返し方式を設定する。
	SetLoop(mode LoopMode)
	// SetTimeScale は再生速度倍率を設定する。
	SetTimeScale(scale float64)
	// SetWeight は影響度を設定する。
	SetWeight(weight float64)
	// Time は現在時刻を返す。
	Time() float64
}

// IMixer はモーションをアクションへ結び付ける契約を表す。
type IMixer interface {
	// ClipAction はモーションからアクションを生成する。
	ClipAction(motion *model.MotionModel) (IAction, error)
	// Update は経過時間だけアクションを進める。
	Update(delta float64)
}

// IAvatar は再生対象アバターを表す。
type IAvatar interface {
	// ID はアバター識別子を返す。
	ID() string
	// Name はアバター名を返す。
	Name() string
	// LookAt は視線機能を返す。持たない場合はnil。
	LookAt() ILookAt
	// Scene はシーングラフを返す。
	Scene() ISceneGraph
	// Mixer はミキサーを返す。持たない場合はnil。
	Mixer() IMixer
	// NewGazeProxy は視線機能へ結び付いたプロキシを生成する。
	NewGazeProxy(marker string) IGazeProxy
}

// IAvatarFactory は骨格情報から再生対象アバターを組み立てる契約を表す。
type IAvatarFactory interface {
	// Build はアバターを生成する。
	Build(rig *model.AvatarRig) (IAvatar, error)
}
