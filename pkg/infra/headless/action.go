// 指示: miu200521358
package headless

import (
	"math"

	"github.com/miu200521358/mu_vrma_player/pkg/domain/model"
	"github.com/miu200521358/mu_vrma_player/pkg/usecase/port/moutput"
)

// Action はミキサー上で1つのモーションを再生する単位を表す。
type Action struct {
	motion    *model.MotionModel
	time      float64
	enabled   bool
	paused    bool
	finished  bool
	loop      moutput.LoopMode
	timeScale float64
	weight    float64
	loopCount int
}

// newAction は既定設定のActionを生成する。
func newAction(motion *model.MotionModel) *Action {
	return &Action{
		motion:    motion,
		loop:      moutput.LoopRepeat,
		timeScale: 1,
		weight:    1,
	}
}

// Play は再生を開始する。終了済みの場合は先頭から再生する。
func (a *Action) Play() {
	if a.finished {
		a.time = 0
		a.finished = false
	}
	a.enabled = true
}

// Stop は停止し時刻を先頭へ戻す。
func (a *Action) Stop() {
	a.enabled = false
	a.paused = false
	a.finished = false
	a.time = 0
	a.loopCount = 0
}

// SetPaused は一時停止状態を設定する。
func (a *Action) SetPaused(paused bool) {
	a.paused = paused
}

// IsPaused は一時停止中か返す。
func (a *Action) IsPaused() bool {
	return a.paused
}

// IsRunning は時刻が進む状態か返す。
func (a *Action) IsRunning() bool {
	return a.enabled && !a.paused && !a.finished && a.timeScale != 0
}

// SetLoop は繰り返し方式を設定する。
func (a *Action) SetLoop(mode moutput.LoopMode) {
	a.loop = mode
}

// SetTimeScale は再生速度倍率を設定する。
func (a *Action) SetTimeScale(scale float64) {
	a.timeScale = scale
}

// SetWeight は影響度を設定する。
func (a *Action) SetWeight(weight float64) {
	a.weight = math.Max(0, math.Min(1, weight))
}

// Time は現在時刻を返す。
func (a *Action) Time() float64 {
	return a.time
}

// LoopCount は先頭へ戻った回数を返す。
func (a *Action) LoopCount() int {
	return a.loopCount
}

// Motion は再生対象モーションを返す。
func (a *Action) Motion() *model.MotionModel {
	return a.motion
}

// contributes は姿勢へ反映する状態か返す。一時停止中は現在時刻の姿勢を保つ。
func (a *Action) contributes() bool {
	return a.enabled && !a.finished && a.weight > 0
}

// advance は経過時間だけ時刻を進める。
func (a *Action) advance(delta float64) {
	if !a.IsRunning() {
		return
	}
	duration := a.motion.Duration
	if duration <= 0 {
		a.time = 0
		return
	}
	next := a.time + delta*a.timeScale
	switch a.loop {
	case moutput.LoopOnce:
		if next >= duration || next < 0 {
			// 終了時に最終姿勢へ固定しない
			a.time = math.Max(0, math.Min(duration, next))
			a.finished = true
			return
		}
		a.time = next
	default:
		if next >= duration || next < 0 {
			a.loopCount += int(math.Abs(math.Floor(next / duration)))
			next = math.Mod(next, duration)
			if next < 0 {
				next += duration
			}
		}
		a.time = next
	}
}
