// 指示: miu200521358
package headless

import (
	"context"
	"fmt"
	"time"

	"github.com/miu200521358/mu_vrma_player/pkg/infra/mlogging"
)

// FrameClock は固定fpsのフレーム刻みを表す。
type FrameClock struct {
	fps float64
}

// NewFrameClock はFrameClockを生成する。
func NewFrameClock(fps float64) (*FrameClock, error) {
	if fps <= 0 {
		return nil, fmt.Errorf("fpsは正の値を指定してください: %f", fps)
	}
	return &FrameClock{fps: fps}, nil
}

// Step は1フレームの秒数を返す。
func (c *FrameClock) Step() float64 {
	return 1 / c.fps
}

// Interval は1フレームの時間間隔を返す。
func (c *FrameClock) Interval() time.Duration {
	return time.Duration(float64(time.Second) / c.fps)
}

// FrameCount は指定秒数に含まれるフレーム数を返す。
func (c *FrameClock) FrameCount(seconds float64) int {
	if seconds <= 0 {
		return 0
	}
	// 浮動小数の誤差で1フレーム欠けないよう丸める
	return int(seconds*c.fps + 1e-9)
}

// Run は指定秒数分のフレームを待たずに順に進める。tickがfalseを返すと中断する。
func (c *FrameClock) Run(ctx context.Context, seconds float64, tick func(frame int, delta float64) bool) (int, error) {
	frames := c.FrameCount(seconds)
	step := c.Step()
	for frame := 1; frame <= frames; frame++ {
		if err := ctx.Err(); err != nil {
			return frame - 1, err
		}
		if !tick(frame, step) {
			return frame, nil
		}
	}
	return frames, nil
}

// logHeadlessDebug はheadless処理のDEBUGログを出力する。
func logHeadlessDebug(format string, params ...any) {
	logger := mlogging.DefaultLogger()
	if logger == nil {
		return
	}
	logger.Debug().Msgf(format, params...)
}
