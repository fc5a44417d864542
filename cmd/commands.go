// 指示: miu200521358
package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/urfave/cli/v2"
	"golang.org/x/text/language"

	"github.com/miu200521358/mu_vrma_player/pkg/adapter/mpresenter"
	"github.com/miu200521358/mu_vrma_player/pkg/adapter/mpresenter/messages"
	"github.com/miu200521358/mu_vrma_player/pkg/domain/humanoid"
	"github.com/miu200521358/mu_vrma_player/pkg/domain/model"
	"github.com/miu200521358/mu_vrma_player/pkg/infra/config"
	"github.com/miu200521358/mu_vrma_player/pkg/infra/headless"
	"github.com/miu200521358/mu_vrma_player/pkg/usecase/minteractor"
)

// inspectCommand はリターゲット結果の内訳を表示するコマンドを返す。
func inspectCommand(rt *cliRuntime) *cli.Command {
	return &cli.Command{
		Name:      "inspect",
		Usage:     "モーションファイルのリターゲット結果を表示する",
		ArgsUsage: "<clip>",
		Action: func(c *cli.Context) error {
			path := c.Args().First()
			if path == "" {
				return fmt.Errorf("モーションファイルを指定してください")
			}
			uc := rt.newUsecase(nil)
			source, err := uc.LoadMotion(nil, path)
			if err != nil {
				return fmt.Errorf("モーション読み込みに失敗しました: %w", err)
			}
			if source.Kind() == model.SourceKindEmpty {
				rt.printf(messages.StatusNoAnimation)
				return nil
			}
			motion, report := uc.BuildMotion(source)
			printReport(rt, motion, report)
			return nil
		},
	}
}

// printReport はリターゲット結果を出力する。
func printReport(rt *cliRuntime, motion *model.MotionModel, report *minteractor.RetargetReport) {
	rt.printf(messages.ReportSource, report.SourceName, string(report.SourceKind))
	rt.printf(messages.ReportAccepted, report.Accepted)
	for _, dropped := range report.Dropped {
		rt.printf(messages.ReportDropped, dropped.Name, dropped.Reason)
	}
	for _, warning := range report.Warnings {
		rt.printf(messages.ReportWarning, warning.ID, warning.TrackName)
	}
	rt.printf(messages.ReportDuration, motion.Duration)
	if motion.IsEmpty() {
		rt.printf(messages.StatusNoUsableMotion)
	}
}

// playCommand はheadless再生を行うコマンドを返す。
func playCommand(rt *cliRuntime) *cli.Command {
	return &cli.Command{
		Name:  "play",
		Usage: "アバターへモーションをバインドしてheadless再生する",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "avatar", Usage: "VRMファイル", Required: true},
			&cli.StringFlag{Name: "clip", Usage: "VRMAファイル", Required: true},
			&cli.Float64Flag{Name: "seconds", Usage: "再生秒数", Value: 1},
			&cli.Float64Flag{Name: "toggle-at", Usage: "再生/一時停止を切り替える経過秒数"},
		},
		Action: func(c *cli.Context) error {
			presenter := rt.presenter()
			uc := rt.newUsecase(presenter)
			if err := loadAvatar(uc, presenter, c.String("avatar")); err != nil {
				return err
			}
			if err := bindClip(rt, uc, presenter, c.String("clip")); err != nil {
				return err
			}

			clock, err := headless.NewFrameClock(rt.cfg.Playback.FPS)
			if err != nil {
				return err
			}
			toggleAt := -1.0
			if c.IsSet("toggle-at") {
				toggleAt = c.Float64("toggle-at")
			}
			elapsed := 0.0
			_, err = clock.Run(c.Context, c.Float64("seconds"), func(frame int, delta float64) bool {
				if toggleAt >= 0 && elapsed <= toggleAt && toggleAt < elapsed+delta {
					if _, toggleErr := uc.TogglePlayback(); toggleErr != nil {
						logCliWarn("再生切替に失敗しました: %v", toggleErr)
					}
				}
				uc.Tick(delta)
				elapsed += delta
				return true
			})
			if err != nil {
				return err
			}
			printFinalPose(rt, uc)
			return nil
		},
	}
}

// loadAvatar はアバターを読み込み、結果を表示する。
func loadAvatar(uc *minteractor.MotionPlayerUsecase, presenter *mpresenter.StatusPresenter, path string) error {
	fileName := filepath.Base(path)
	presenter.ShowAvatarLoading(fileName)
	if _, err := uc.LoadAvatar(nil, path); err != nil {
		presenter.ShowAvatarLoadFailed()
		return fmt.Errorf("VRM読み込みに失敗しました: %w", err)
	}
	presenter.ShowAvatarLoaded(fileName)
	return nil
}

// bindClip はモーションを読み込んで現在のアバターへバインドし、状態を表示する。
func bindClip(rt *cliRuntime, uc *minteractor.MotionPlayerUsecase, presenter *mpresenter.StatusPresenter, path string) error {
	presenter.ShowLoading(filepath.Base(path))
	result, err := uc.LoadAndBindMotion(minteractor.LoadMotionRequest{Path: path})
	if result != nil {
		presenter.ShowLoadResult(*result)
	}
	if err != nil {
		if errors.Is(err, model.ErrEmptyMotionModel) {
			logCliWarn("再生可能なモーションがありません: %s", path)
		}
		return fmt.Errorf("モーションのバインドに失敗しました: %w", err)
	}
	if result.Status == minteractor.LoadMotionStatusBound {
		return uc.Controller().Start(uc.Avatar())
	}
	return nil
}

// printFinalPose は再生後の状態と姿勢を出力する。
func printFinalPose(rt *cliRuntime, uc *minteractor.MotionPlayerUsecase) {
	session, ok := uc.Controller().Session(uc.Avatar())
	if !ok {
		return
	}
	rt.printf(messages.ReportState, string(session.State), session.Action.Time())
	avatar, ok := uc.Avatar().(*headless.Avatar)
	if !ok {
		return
	}
	pose := avatar.Pose()
	for _, boneId := range pose.BoneIds() {
		bone, _ := pose.Bone(boneId)
		if _, moved := session.Clip.Track(model.ChannelRotation, boneId); moved {
			q := bone.Rotation
			rt.printf(messages.ReportPose, rt.boneLabel(boneId), q.V[0], q.V[1], q.V[2], q.W)
		}
		if _, moved := session.Clip.Track(model.ChannelTranslation, boneId); moved {
			v := bone.Translation
			rt.printf(messages.ReportPosition, rt.boneLabel(boneId), v.X, v.Y, v.Z)
		}
	}
	if lookAt := avatar.LookAt(); lookAt != nil && session.Clip.LookAtTrack != nil {
		rt.printf(messages.ReportGaze, lookAt.Yaw(), lookAt.Pitch())
	}
}

// boneLabel はボーンの表示名を返す。日本語表示ではMMD標準ボーン名を併記する。
func (rt *cliRuntime) boneLabel(boneId humanoid.BoneId) string {
	if rt.localizer.Language() == language.Japanese {
		return fmt.Sprintf("%s(%s)", boneId.String(), boneId.JapaneseName())
	}
	return boneId.String()
}

// configCommand は設定ファイル操作コマンドを返す。
func configCommand(rt *cliRuntime) *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "設定ファイルを管理する",
		Subcommands: []*cli.Command{
			{
				Name:      "init",
				Usage:     "設定ファイルの雛形を作成する",
				ArgsUsage: "<path>",
				Action: func(c *cli.Context) error {
					path := c.Args().First()
					if path == "" {
						path = config.DefaultFileName
					}
					if err := config.InitConfig(path); err != nil {
						return fmt.Errorf("設定ファイルの作成に失敗しました: %w", err)
					}
					rt.printf(messages.LogConfigInitialized, path)
					return nil
				},
			},
		},
	}
}
