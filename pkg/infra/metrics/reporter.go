// 指示: miu200521358
package metrics

import (
	"github.com/miu200521358/mu_vrma_player/pkg/usecase/minteractor"
)

const (
	// TrackResultAccepted は採用トラックのラベル値。
	TrackResultAccepted = "accepted"
	// TrackResultLookAt は視線トラックのラベル値。
	TrackResultLookAt = "look_at"
)

// Reporter はリターゲット進捗と再生イベントをメトリクスへ反映する。
type Reporter struct {
	recorder *Recorder
	avatars  map[string]struct{}
}

// NewReporter はメトリクス反映用の通知先を生成する。
func NewReporter(recorder *Recorder) *Reporter {
	return &Reporter{
		recorder: recorder,
		avatars:  map[string]struct{}{},
	}
}

// ReportRetargetProgress はリターゲット進捗を記録する。
func (r *Reporter) ReportRetargetProgress(event minteractor.RetargetProgressEvent) {
	switch event.Type {
	case minteractor.RetargetProgressEventTypeTrackAccepted:
		r.recorder.RecordTrack(TrackResultAccepted)
	case minteractor.RetargetProgressEventTypeLookAtAccepted:
		r.recorder.RecordTrack(TrackResultLookAt)
	case minteractor.RetargetProgressEventTypeTrackDropped:
		r.recorder.RecordTrack(event.Reason)
	case minteractor.RetargetProgressEventTypeCompleted:
		r.recorder.RecordMotion(string(event.SourceKind))
	}
}

// OnPlaybackEvent は再生イベントを記録する。
func (r *Reporter) OnPlaybackEvent(event minteractor.PlaybackEvent) {
	switch event.Type {
	case minteractor.PlaybackEventTypeRejected:
		r.recorder.RecordPlaybackError(event.Operation)
		return
	case minteractor.PlaybackEventTypeBound:
		r.avatars[event.AvatarID] = struct{}{}
	case minteractor.PlaybackEventTypeUnbound:
		delete(r.avatars, event.AvatarID)
	case minteractor.PlaybackEventTypeStopped:
		return
	}
	r.recorder.RecordTransition(string(event.State))
	r.recorder.SetActiveSessions(len(r.avatars))
}
