// 指示: miu200521358
package main

import (
	"fmt"
	"io"

	"github.com/urfave/cli/v2"

	"github.com/miu200521358/mu_vrma_player/pkg/adapter/io_model/vrm"
	"github.com/miu200521358/mu_vrma_player/pkg/adapter/io_motion/vrma"
	"github.com/miu200521358/mu_vrma_player/pkg/adapter/mpresenter"
	"github.com/miu200521358/mu_vrma_player/pkg/adapter/mpresenter/messages"
	"github.com/miu200521358/mu_vrma_player/pkg/infra/config"
	"github.com/miu200521358/mu_vrma_player/pkg/infra/headless"
	"github.com/miu200521358/mu_vrma_player/pkg/infra/metrics"
	"github.com/miu200521358/mu_vrma_player/pkg/infra/mlogging"
	"github.com/miu200521358/mu_vrma_player/pkg/usecase/minteractor"
	"github.com/miu200521358/mu_vrma_player/pkg/usecase/port/moutput"
)

// cliRuntime はコマンド間で共有する設定と出力先を表す。
type cliRuntime struct {
	out       io.Writer
	errOut    io.Writer
	cfg       *config.Config
	localizer *messages.Localizer
	recorder  *metrics.Recorder
}

// setup は設定読込、フラグ上書き、ロガーと翻訳の初期化を行う。
func (rt *cliRuntime) setup(c *cli.Context) error {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return err
	}
	if lang := c.String("lang"); lang != "" {
		cfg.General.Language = lang
	}
	if level := c.String("log-level"); level != "" {
		cfg.General.LogLevel = level
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("設定が不正です: %w", err)
	}
	localizer, err := messages.NewLocalizer(cfg.General.Language)
	if err != nil {
		return err
	}
	mlogging.SetDefaultLogger(mlogging.NewLogger(rt.errOut, cfg.General.LogLevel))

	rt.cfg = cfg
	rt.localizer = localizer
	rt.recorder = metrics.NewRecorder()
	return nil
}

// presenter は状態表示の出力先を生成する。
func (rt *cliRuntime) presenter() *mpresenter.StatusPresenter {
	return mpresenter.NewStatusPresenter(rt.out, rt.localizer)
}

// printf は翻訳済みの1行を出力する。
func (rt *cliRuntime) printf(key string, params ...any) {
	fmt.Fprintln(rt.out, rt.localizer.T(key, params...))
}

// playbackOptions は設定値から再生設定を生成する。
func (rt *cliRuntime) playbackOptions() minteractor.PlaybackOptions {
	return minteractor.PlaybackOptions{
		Autoplay:  rt.cfg.Playback.Autoplay,
		Loop:      moutput.LoopMode(rt.cfg.Playback.Loop),
		TimeScale: rt.cfg.Playback.TimeScale,
		Weight:    rt.cfg.Playback.Weight,
	}
}

// retargetOptions は設定値からリターゲット設定を生成する。
func (rt *cliRuntime) retargetOptions(reporter minteractor.IRetargetProgressReporter) minteractor.RetargetOptions {
	return minteractor.RetargetOptions{
		ReportDuplicates: rt.cfg.Retarget.ReportDuplicates,
		Reporter:         reporter,
	}
}

// newUsecase は読込・再生ユースケースを組み立てる。
func (rt *cliRuntime) newUsecase(observer minteractor.IPlaybackObserver) *minteractor.MotionPlayerUsecase {
	metricsReporter := metrics.NewReporter(rt.recorder)
	playbackOptions := rt.playbackOptions()
	retargetOptions := rt.retargetOptions(metricsReporter)
	return minteractor.NewMotionPlayerUsecase(minteractor.MotionPlayerUsecaseDeps{
		MotionReader:     vrma.NewVrmaRepository(),
		AvatarReader:     vrm.NewVrmRepository(),
		AvatarFactory:    headless.NewFactory(),
		PlaybackOptions:  &playbackOptions,
		RetargetOptions:  &retargetOptions,
		PlaybackObserver: minteractor.PlaybackObservers{observer, metricsReporter},
	})
}
