// 指示: miu200521358
// Package mpresenter は再生状態と読込結果を利用者向けの表示文へ変換する。
package mpresenter

import (
	"fmt"
	"io"

	"github.com/miu200521358/mu_vrma_player/pkg/adapter/mpresenter/messages"
	"github.com/miu200521358/mu_vrma_player/pkg/usecase/minteractor"
)

// StatusPresenter は状態表示を出力先へ書き出す。
type StatusPresenter struct {
	out       io.Writer
	localizer *messages.Localizer
	last      string
}

// NewStatusPresenter はStatusPresenterを生成する。
func NewStatusPresenter(out io.Writer, localizer *messages.Localizer) *StatusPresenter {
	if out == nil {
		out = io.Discard
	}
	return &StatusPresenter{out: out, localizer: localizer}
}

// Last は最後に表示した文言を返す。
func (p *StatusPresenter) Last() string {
	if p == nil {
		return ""
	}
	return p.last
}

// Show はメッセージキーを翻訳して1行出力する。
func (p *StatusPresenter) Show(key string, params ...any) {
	if p == nil {
		return
	}
	p.last = p.localizer.T(key, params...)
	fmt.Fprintln(p.out, p.last)
}

// ShowAvatarLoading はアバター読込開始を表示する。
func (p *StatusPresenter) ShowAvatarLoading(fileName string) {
	p.Show(messages.StatusAvatarLoading, fileName)
}

// ShowAvatarLoaded はアバター読込完了を表示する。
func (p *StatusPresenter) ShowAvatarLoaded(fileName string) {
	p.Show(messages.StatusAvatarLoaded, fileName)
}

// ShowAvatarLoadFailed はアバター読込失敗を表示する。
func (p *StatusPresenter) ShowAvatarLoadFailed() {
	p.Show(messages.StatusAvatarLoadFailed)
}

// ShowLoading はモーション読込開始を表示する。
func (p *StatusPresenter) ShowLoading(fileName string) {
	p.Show(messages.StatusMotionLoading, fileName)
}

// ShowLoadResult はモーション読込・バインド結果を表示する。
func (p *StatusPresenter) ShowLoadResult(result minteractor.LoadMotionResult) {
	key, params := LoadStatusKey(result)
	if key == "" {
		return
	}
	p.Show(key, params...)
}

// OnPlaybackEvent は再生操作イベントを状態表示へ変換する。
func (p *StatusPresenter) OnPlaybackEvent(event minteractor.PlaybackEvent) {
	switch event.Type {
	case minteractor.PlaybackEventTypeStarted:
		p.Show(messages.StatusMotionPlaying, event.ClipName)
	case minteractor.PlaybackEventTypePaused:
		p.Show(messages.StatusPaused)
	case minteractor.PlaybackEventTypeResumed:
		p.Show(messages.StatusResumed)
	case minteractor.PlaybackEventTypeUnbound:
		p.Show(messages.StatusUnbound)
	case minteractor.PlaybackEventTypeRejected:
		p.Show(messages.StatusOperationRejected, event.Operation)
	}
}

// LoadStatusKey は読込結果に対応するメッセージキーと引数を返す。
// 再生開始の表示は再生イベント側で行うため、Playingは空キーを返す。
func LoadStatusKey(result minteractor.LoadMotionResult) (string, []any) {
	switch result.Status {
	case minteractor.LoadMotionStatusAvatarRequired:
		return messages.StatusAvatarRequired, nil
	case minteractor.LoadMotionStatusLoadFailed:
		return messages.StatusMotionLoadFailed, nil
	case minteractor.LoadMotionStatusNoAnimation:
		return messages.StatusNoAnimation, nil
	case minteractor.LoadMotionStatusNoUsableMotion:
		return messages.StatusNoUsableMotion, nil
	case minteractor.LoadMotionStatusBindFailed:
		return messages.StatusBindFailed, nil
	case minteractor.LoadMotionStatusBound:
		return messages.StatusMotionBound, []any{result.ClipName}
	default:
		return "", nil
	}
}
