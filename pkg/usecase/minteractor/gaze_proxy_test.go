// 指示: miu200521358
package minteractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miu200521358/mu_vrma_player/pkg/domain/model"
)

func TestEnsureGazeProxyIdempotent(t *testing.T) {
	avatar := newFakeAvatarForTest("a")

	first, ok := EnsureGazeProxy(avatar)
	require.True(t, ok)
	second, ok := EnsureGazeProxy(avatar)
	require.True(t, ok)

	assert.Same(t, first, second)
	assert.Equal(t, 1, avatar.proxyCreated)
	assert.Equal(t, 1, avatar.scene.countMarker(model.GazeProxyMarker))
}

func TestEnsureGazeProxyWithoutLookAt(t *testing.T) {
	avatar := newFakeAvatarForTest("a")
	avatar.lookAt = nil

	proxy, ok := EnsureGazeProxy(avatar)

	assert.False(t, ok)
	assert.Nil(t, proxy)
	assert.Zero(t, avatar.proxyCreated)
	assert.Empty(t, avatar.scene.nodes)
}

func TestEnsureGazeProxyPerAvatar(t *testing.T) {
	a := newFakeAvatarForTest("a")
	b := newFakeAvatarForTest("b")

	proxyA, _ := EnsureGazeProxy(a)
	proxyB, _ := EnsureGazeProxy(b)

	assert.NotSame(t, proxyA, proxyB)
	assert.Equal(t, 1, a.scene.countMarker(model.GazeProxyMarker))
	assert.Equal(t, 1, b.scene.countMarker(model.GazeProxyMarker))
}

func TestEnsureGazeProxyRejectsForeignNode(t *testing.T) {
	avatar := newFakeAvatarForTest("a")
	avatar.scene.Attach(&fakeSceneNode{marker: model.GazeProxyMarker})

	proxy, ok := EnsureGazeProxy(avatar)

	assert.False(t, ok)
	assert.Nil(t, proxy)
	assert.Zero(t, avatar.proxyCreated)
}

func TestEnsureGazeProxyForwardsToLookAt(t *testing.T) {
	avatar := newFakeAvatarForTest("a")
	proxy, ok := EnsureGazeProxy(avatar)
	require.True(t, ok)

	q := newQuatTrackForTest("x.quaternion", 2)
	value, _ := q.QuatAt(1)
	proxy.SetQuaternion(value)

	require.Len(t, avatar.lookAt.applied, 1)
	assert.Equal(t, value, avatar.lookAt.applied[0])
}
