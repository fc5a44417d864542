// 指示: miu200521358
package minteractor

import (
	"github.com/miu200521358/mu_vrma_player/pkg/domain/model"
)

// cloneMotionModel は対応済みモーションの複製処理。
var cloneMotionModel = func(motion *model.MotionModel) (*model.MotionModel, error) {
	return motion.Clone()
}

// RetargetOptions はリターゲット処理の設定を表す。
type RetargetOptions struct {
	ReportDuplicates bool
	Reporter         IRetargetProgressReporter
}

// DefaultRetargetOptions は既定のリターゲット設定を返す。
func DefaultRetargetOptions() RetargetOptions {
	return RetargetOptions{ReportDuplicates: true}
}

// BuildMotionModel は入力クリップからhumanoidモーションを構築する。
// 棄却したトラックは報告に記録し、失敗として返さない。
func BuildMotionModel(source model.SourceClip, opts RetargetOptions) (*model.MotionModel, *RetargetReport) {
	report := &RetargetReport{
		SourceKind: source.Kind(),
		SourceName: source.Name(),
	}
	reportRetargetProgress(opts.Reporter, RetargetProgressEvent{
		Type:       RetargetProgressEventTypeSourceResolved,
		SourceKind: source.Kind(),
	})

	var motion *model.MotionModel
	switch source.Kind() {
	case model.SourceKindNormalized:
		motion = passThroughNormalized(source, report)
	case model.SourceKindGeneric:
		motion = retargetGeneric(source, opts, report)
	default:
		motion = model.NewMotionModel(source.Name())
		logMotionDebug("モーションを持たない入力です: %s", source.Name())
	}

	reportRetargetProgress(opts.Reporter, RetargetProgressEvent{
		Type:       RetargetProgressEventTypeCompleted,
		SourceKind: source.Kind(),
		TrackTotal: report.Accepted + len(report.Dropped),
		TrackDone:  report.Accepted,
	})
	logMotionInfo("リターゲット完了: 入力=%s 形状=%s 採用=%d 棄却=%d 長さ=%.3f",
		source.Name(), source.Kind(), report.Accepted, len(report.Dropped), motion.Duration)
	return motion, report
}

// passThroughNormalized は対応済みモーションを分類せずに複製する。
func passThroughNormalized(source model.SourceClip, report *RetargetReport) *model.MotionModel {
	normalized, _ := source.Normalized()
	motion, err := cloneMotionModel(normalized)
	if err != nil {
		report.Warnings = append(report.Warnings, RetargetWarning{
			ID:        model.MotionWarningCloneFailed,
			TrackName: source.Name(),
		})
		logMotionWarn("対応済みモーションの複製に失敗したため空のモーションを返します: %v", err)
		return model.NewMotionModel(source.Name())
	}
	if motion.Name == "" {
		motion.Name = source.Name()
	}
	report.Accepted = motion.TrackCount()
	return motion
}

// retargetGeneric は最初の生クリップの各トラックを分類してモーションを構築する。
func retargetGeneric(source model.SourceClip, opts RetargetOptions, report *RetargetReport) *model.MotionModel {
	clip, _ := source.FirstClip()
	name := clip.Name
	if name == "" {
		name = source.Name()
	}
	motion := model.NewMotionModel(name)
	motion.Duration = clip.Duration
	if motion.Duration < 0 {
		motion.Duration = 0
	}
	if extra := len(source.Clips()) - 1; extra > 0 {
		report.Warnings = append(report.Warnings, RetargetWarning{
			ID:        model.MotionWarningExtraClipsIgnored,
			TrackName: clip.Name,
		})
		logMotionWarn("2本目以降のクリップは使用しません: 入力=%s 無視=%d", source.Name(), extra)
	}

	total := len(clip.Tracks)
	for _, track := range clip.Tracks {
		if acceptLookAtTrack(motion, track, opts, report) {
			reportRetargetProgress(opts.Reporter, RetargetProgressEvent{
				Type:       RetargetProgressEventTypeLookAtAccepted,
				SourceKind: model.SourceKindGeneric,
				TrackName:  track.Name,
				Channel:    model.ChannelRotation,
				TrackTotal: total,
				TrackDone:  report.Accepted,
			})
			continue
		}

		classified, err := ClassifyTrack(track)
		if err != nil {
			dropped := DroppedTrack{Name: trackNameOf(track), Reason: model.RejectionReason(err), Err: err}
			report.Dropped = append(report.Dropped, dropped)
			logMotionDebug("トラックを棄却しました: %s (%s)", dropped.Name, dropped.Reason)
			reportRetargetProgress(opts.Reporter, RetargetProgressEvent{
				Type:       RetargetProgressEventTypeTrackDropped,
				SourceKind: model.SourceKindGeneric,
				TrackName:  dropped.Name,
				Reason:     dropped.Reason,
				TrackTotal: total,
				TrackDone:  report.Accepted,
			})
			continue
		}

		previous, overwritten := motion.SetTrack(classified.Channel, classified.BoneId, classified.Track)
		report.Accepted++
		if overwritten && opts.ReportDuplicates {
			report.Warnings = append(report.Warnings, RetargetWarning{
				ID:           model.MotionWarningDuplicateBoneTrack,
				BoneId:       classified.BoneId,
				Channel:      classified.Channel,
				TrackName:    classified.Track.Name,
				ReplacedName: previous.Name,
			})
			logMotionWarn("同一ボーンのトラックを後勝ちで上書きしました: bone=%s channel=%s 採用=%s 破棄=%s",
				classified.BoneId, classified.Channel, classified.Track.Name, previous.Name)
		}
		reportRetargetProgress(opts.Reporter, RetargetProgressEvent{
			Type:       RetargetProgressEventTypeTrackAccepted,
			SourceKind: model.SourceKindGeneric,
			TrackName:  classified.Track.Name,
			BoneId:     classified.BoneId,
			Channel:    classified.Channel,
			TrackTotal: total,
			TrackDone:  report.Accepted,
		})
	}
	return motion
}

// acceptLookAtTrack は視線プロキシ宛ての回転トラックを視線トラックとして採用する。
func acceptLookAtTrack(
	motion *model.MotionModel,
	track *model.Track,
	opts RetargetOptions,
	report *RetargetReport,
) bool {
	if track == nil {
		return false
	}
	subject, property, ok := track.SplitName()
	if !ok || subject != model.GazeProxyMarker || !isRotationProperty(property) {
		return false
	}
	if motion.LookAtTrack != nil && opts.ReportDuplicates {
		report.Warnings = append(report.Warnings, RetargetWarning{
			ID:           model.MotionWarningDuplicateLookAtTrack,
			Channel:      model.ChannelRotation,
			TrackName:    track.Name,
			ReplacedName: motion.LookAtTrack.Name,
		})
		logMotionWarn("視線トラックを後勝ちで上書きしました: 採用=%s 破棄=%s", track.Name, motion.LookAtTrack.Name)
	}
	motion.LookAtTrack = track
	report.Accepted++
	return true
}

// trackNameOf はnilを許容してトラック名を返す。
func trackNameOf(track *model.Track) string {
	if track == nil {
		return ""
	}
	return track.Name
}

// reportRetargetProgress はリターゲット進捗を通知する。
func reportRetargetProgress(reporter IRetargetProgressReporter, event RetargetProgressEvent) {
	if reporter == nil {
		return
	}
	reporter.ReportRetargetProgress(event)
}
