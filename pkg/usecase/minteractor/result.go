// 指示: miu200521358
package minteractor

import (
	"github.com/miu200521358/mu_vrma_player/pkg/domain/humanoid"
	"github.com/miu200521358/mu_vrma_player/pkg/domain/model"
	"github.com/miu200521358/mu_vrma_player/pkg/usecase/port/moutput"
)

// RetargetProgressEventType はリターゲット処理の進捗イベント種別を表す。
type RetargetProgressEventType string

const (
	// RetargetProgressEventTypeSourceResolved は入力形状確定イベントを表す。
	RetargetProgressEventTypeSourceResolved RetargetProgressEventType = "source_resolved"
	// RetargetProgressEventTypeTrackAccepted はトラック採用イベントを表す。
	RetargetProgressEventTypeTrackAccepted RetargetProgressEventType = "track_accepted"
	// RetargetProgressEventTypeTrackDropped はトラック棄却イベントを表す。
	RetargetProgressEventTypeTrackDropped RetargetProgressEventType = "track_dropped"
	// RetargetProgressEventTypeLookAtAccepted は視線トラック採用イベントを表す。
	RetargetProgressEventTypeLookAtAccepted RetargetProgressEventType = "look_at_accepted"
	// RetargetProgressEventTypeCompleted はリターゲット完了イベントを表す。
	RetargetProgressEventTypeCompleted RetargetProgressEventType = "completed"
)

// RetargetProgressEvent はリターゲット処理の進捗イベントを表す。
type RetargetProgressEvent struct {
	Type       RetargetProgressEventType
	SourceKind model.SourceKind
	TrackName  string
	BoneId     humanoid.BoneId
	Channel    model.Channel
	Reason     string
	TrackTotal int
	TrackDone  int
}

// IRetargetProgressReporter はリターゲット処理の進捗通知契約を表す。
type IRetargetProgressReporter interface {
	// ReportRetargetProgress はリターゲット処理進捗を通知する。
	ReportRetargetProgress(event RetargetProgressEvent)
}

// RetargetProgressReporters は複数の進捗通知先へ配信する。
type RetargetProgressReporters []IRetargetProgressReporter

// ReportRetargetProgress は全通知先へ進捗を配信する。
func (r RetargetProgressReporters) ReportRetargetProgress(event RetargetProgressEvent) {
	for _, reporter := range r {
		if reporter != nil {
			reporter.ReportRetargetProgress(event)
		}
	}
}

// DroppedTrack は棄却したトラックを表す。
type DroppedTrack struct {
	Name   string
	Reason string
	Err    error
}

// RetargetWarning はリターゲット時の警告を表す。
type RetargetWarning struct {
	ID           string
	BoneId       humanoid.BoneId
	Channel      model.Channel
	TrackName    string
	ReplacedName string
}

// RetargetReport はリターゲット結果の内訳を表す。
type RetargetReport struct {
	SourceKind model.SourceKind
	SourceName string
	Accepted   int
	Dropped    []DroppedTrack
	Warnings   []RetargetWarning
}

// DroppedByReason は棄却理由ごとの件数を返す。
func (r *RetargetReport) DroppedByReason() map[string]int {
	out := map[string]int{}
	if r == nil {
		return out
	}
	for _, dropped := range r.Dropped {
		out[dropped.Reason]++
	}
	return out
}

// HasWarning は指定IDの警告を含むか判定する。
func (r *RetargetReport) HasWarning(id string) bool {
	if r == nil {
		return false
	}
	for _, warning := range r.Warnings {
		if warning.ID == id {
			return true
		}
	}
	return false
}

// PlaybackEventType は再生操作イベント種別を表す。
type PlaybackEventType string

const (
	// PlaybackEventTypeBound はバインド完了イベントを表す。
	PlaybackEventTypeBound PlaybackEventType = "bound"
	// PlaybackEventTypeStarted は再生開始イベントを表す。
	PlaybackEventTypeStarted PlaybackEventType = "started"
	// PlaybackEventTypePaused は一時停止イベントを表す。
	PlaybackEventTypePaused PlaybackEventType = "paused"
	// PlaybackEventTypeResumed は再開イベントを表す。
	PlaybackEventTypeResumed PlaybackEventType = "resumed"
	// PlaybackEventTypeStopped は旧セッション停止イベントを表す。
	PlaybackEventTypeStopped PlaybackEventType = "stopped"
	// PlaybackEventTypeUnbound はセッション破棄イベントを表す。
	PlaybackEventTypeUnbound PlaybackEventType = "unbound"
	// PlaybackEventTypeRejected は呼び出し順違反イベントを表す。
	PlaybackEventTypeRejected PlaybackEventType = "rejected"
)

// PlaybackEvent は再生操作イベントを表す。
type PlaybackEvent struct {
	Type      PlaybackEventType
	AvatarID  string
	SessionID string
	ClipName  string
	State     PlaybackState
	Operation string
	Err       error
}

// IPlaybackObserver は再生操作イベントの通知契約を表す。
type IPlaybackObserver interface {
	// OnPlaybackEvent は再生操作イベントを通知する。
	OnPlaybackEvent(event PlaybackEvent)
}

// PlaybackObservers は複数の監視者へ配信する。
type PlaybackObservers []IPlaybackObserver

// OnPlaybackEvent は全監視者へイベントを配信する。
func (o PlaybackObservers) OnPlaybackEvent(event PlaybackEvent) {
	for _, observer := range o {
		if observer != nil {
			observer.OnPlaybackEvent(event)
		}
	}
}

// LoadMotionStatus はモーション読込・バインド結果の状態を表す。
type LoadMotionStatus string

const (
	// LoadMotionStatusPlaying はバインドして再生中を表す。
	LoadMotionStatusPlaying LoadMotionStatus = "playing"
	// LoadMotionStatusBound はバインド済みで開始待ちを表す。
	LoadMotionStatusBound LoadMotionStatus = "bound"
	// LoadMotionStatusAvatarRequired はアバター未読込を表す。
	LoadMotionStatusAvatarRequired LoadMotionStatus = "avatar_required"
	// LoadMotionStatusLoadFailed は読込失敗を表す。
	LoadMotionStatusLoadFailed LoadMotionStatus = "load_failed"
	// LoadMotionStatusNoAnimation は入力にアニメーションがないことを表す。
	LoadMotionStatusNoAnimation LoadMotionStatus = "no_animation"
	// LoadMotionStatusNoUsableMotion は採用トラックがないことを表す。
	LoadMotionStatusNoUsableMotion LoadMotionStatus = "no_usable_motion"
	// LoadMotionStatusBindFailed はバインド失敗を表す。
	LoadMotionStatusBindFailed LoadMotionStatus = "bind_failed"
)

// LoadMotionRequest はモーション読込・バインド要求を表す。
type LoadMotionRequest struct {
	Path   string
	Avatar moutput.IAvatar
	Reader moutput.IMotionReader
}

// LoadMotionResult はモーション読込・バインド結果を表す。
type LoadMotionResult struct {
	Status   LoadMotionStatus
	ClipName string
	Motion   *model.MotionModel
	Report   *RetargetReport
	Session  *PlaybackSession
}
