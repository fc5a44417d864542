// 指示: miu200521358
package minteractor

import (
	"github.com/miu200521358/mu_vrma_player/pkg/domain/model"
	"github.com/miu200521358/mu_vrma_player/pkg/usecase/port/moutput"
)

// EnsureGazeProxy はアバターの視線プロキシを1つだけ用意して返す。
// 視線機能を持たないアバターでは (nil, false) を返す。
func EnsureGazeProxy(avatar moutput.IAvatar) (moutput.IGazeProxy, bool) {
	if avatar == nil || avatar.LookAt() == nil {
		return nil, false
	}
	scene := avatar.Scene()
	if scene == nil {
		return nil, false
	}
	if node, ok := scene.FindByMarker(model.GazeProxyMarker); ok {
		if proxy, ok := node.(moutput.IGazeProxy); ok {
			return proxy, true
		}
		logMotionWarn("視線プロキシのマーカーを持つノードがプロキシではありません: avatar=%s", avatar.Name())
		return nil, false
	}

	proxy := avatar.NewGazeProxy(model.GazeProxyMarker)
	if proxy == nil {
		return nil, false
	}
	scene.Attach(proxy)
	logMotionDebug("視線プロキシを追加しました: avatar=%s", avatar.Name())
	return proxy, true
}
