// 指示: miu200521358
package headless

import (
	"github.com/miu200521358/mu_vrma_player/pkg/usecase/port/moutput"
)

// SceneNode はマーカーだけを持つ汎用ノードを表す。
type SceneNode struct {
	marker string
}

// NewSceneNode はSceneNodeを生成する。
func NewSceneNode(marker string) *SceneNode {
	return &SceneNode{marker: marker}
}

// Marker はノードの識別マーカーを返す。
func (n *SceneNode) Marker() string {
	return n.marker
}

// SceneGraph はアバター配下のノード集合を表す。同一マーカーのノードは1つに限る。
type SceneGraph struct {
	nodes  map[string]moutput.ISceneNode
	orders []string
}

// NewSceneGraph は空のシーングラフを生成する。
func NewSceneGraph() *SceneGraph {
	return &SceneGraph{nodes: map[string]moutput.ISceneNode{}}
}

// Attach はノードを追加する。同一マーカーのノードは置き換える。
func (s *SceneGraph) Attach(node moutput.ISceneNode) {
	if node == nil {
		return
	}
	marker := node.Marker()
	if _, exists := s.nodes[marker]; !exists {
		s.orders = append(s.orders, marker)
	}
	s.nodes[marker] = node
}

// FindByMarker はマーカーでノードを検索する。
func (s *SceneGraph) FindByMarker(marker string) (moutput.ISceneNode, bool) {
	node, ok := s.nodes[marker]
	return node, ok
}

// Detach はマーカーに一致するノードを外す。
func (s *SceneGraph) Detach(marker string) bool {
	if _, ok := s.nodes[marker]; !ok {
		return false
	}
	delete(s.nodes, marker)
	for i, m := range s.orders {
		if m == marker {
			s.orders = append(s.orders[:i], s.orders[i+1:]...)
			break
		}
	}
	return true
}

// Markers は追加順のマーカー一覧を返す。
func (s *SceneGraph) Markers() []string {
	return append([]string(nil), s.orders...)
}

// Len はノード数を返す。
func (s *SceneGraph) Len() int {
	return len(s.nodes)
}
