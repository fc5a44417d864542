// 指示: miu200521358
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/urfave/cli/v2"

	"github.com/miu200521358/mu_vrma_player/pkg/adapter/mpresenter"
	"github.com/miu200521358/mu_vrma_player/pkg/adapter/mpresenter/messages"
	"github.com/miu200521358/mu_vrma_player/pkg/infra/headless"
	"github.com/miu200521358/mu_vrma_player/pkg/infra/mlogging"
	"github.com/miu200521358/mu_vrma_player/pkg/usecase/minteractor"
)

// watchCommand はファイル変更に追従して再バインドするコマンドを返す。
func watchCommand(rt *cliRuntime) *cli.Command {
	return &cli.Command{
		Name:  "watch",
		Usage: "VRM/VRMAファイルの変更を監視して再読み込みしながら再生する",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "avatar", Usage: "VRMファイル", Required: true},
			&cli.StringFlag{Name: "clip", Usage: "VRMAファイル", Required: true},
			&cli.DurationFlag{Name: "duration", Usage: "監視時間 (0で中断まで継続)"},
		},
		Action: func(c *cli.Context) error {
			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()
			if duration := c.Duration("duration"); duration > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, duration)
				defer cancel()
			}

			presenter := rt.presenter()
			w := &motionWatcher{
				rt:         rt,
				presenter:  presenter,
				uc:         rt.newUsecase(presenter),
				avatarPath: c.String("avatar"),
				clipPath:   c.String("clip"),
			}
			if err := w.reloadAvatar(); err != nil {
				return err
			}
			if err := bindClip(rt, w.uc, presenter, w.clipPath); err != nil {
				return err
			}

			shutdown := rt.serveMetrics()
			defer shutdown()
			return w.run(ctx)
		},
	}
}

// motionWatcher はファイル変更イベントとフレーム更新を1つのループで処理する。
type motionWatcher struct {
	rt         *cliRuntime
	presenter  *mpresenter.StatusPresenter
	uc         *minteractor.MotionPlayerUsecase
	avatarPath string
	clipPath   string
}

// run は監視ループを実行する。
func (w *motionWatcher) run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("ファイル監視の開始に失敗しました: %w", err)
	}
	defer watcher.Close()

	// エディタの置換保存に追従するためディレクトリ単位で監視する
	dirs := map[string]struct{}{}
	for _, path := range []string{w.avatarPath, w.clipPath} {
		dir, err := filepath.Abs(filepath.Dir(path))
		if err != nil {
			return err
		}
		if _, ok := dirs[dir]; ok {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("ディレクトリを監視できません: %s: %w", dir, err)
		}
		dirs[dir] = struct{}{}
		w.rt.printf(messages.LogWatchStarted, dir)
	}

	clock, err := headless.NewFrameClock(w.rt.cfg.Playback.FPS)
	if err != nil {
		return err
	}
	ticker := time.NewTicker(clock.Interval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logCliWarn("ファイル監視エラー: %v", err)
		case <-ticker.C:
			w.uc.Tick(clock.Step())
		}
	}
}

// handleEvent は対象ファイルの作成・更新時に再読み込みする。
func (w *motionWatcher) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}
	switch {
	case samePath(event.Name, w.avatarPath):
		if err := w.reloadAvatar(); err != nil {
			logCliWarn("アバターの再読み込みに失敗しました: %v", err)
			return
		}
		w.rebind()
	case samePath(event.Name, w.clipPath):
		w.rebind()
	}
}

// reloadAvatar はアバターを読み込み直す。
func (w *motionWatcher) reloadAvatar() error {
	return loadAvatar(w.uc, w.presenter, w.avatarPath)
}

// rebind はモーションを読み込み直してバインドする。失敗時は既存の再生を維持する。
func (w *motionWatcher) rebind() {
	w.rt.printf(messages.LogMotionReloaded, filepath.Base(w.clipPath))
	if err := bindClip(w.rt, w.uc, w.presenter, w.clipPath); err != nil {
		logCliWarn("モーションの再読み込みに失敗しました: %v", err)
	}
}

// serveMetrics は設定されたアドレスで /metrics を公開し、停止関数を返す。
func (rt *cliRuntime) serveMetrics() func() {
	addr := rt.cfg.Metrics.Addr
	if addr == "" {
		return func() {}
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", rt.recorder.Handler())
	server := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logCliWarn("メトリクス公開に失敗しました: %v", err)
		}
	}()
	rt.printf(messages.LogMetricsListening, addr)
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = server.Shutdown(ctx)
	}
}

// samePath は2つのパスが同じファイルを指すか判定する。
func samePath(a string, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}

// logCliWarn はCLIの警告ログを出力する。
func logCliWarn(format string, params ...any) {
	logger := mlogging.DefaultLogger()
	if logger == nil {
		return
	}
	logger.Warn().Msgf(format, params...)
}
