// 指示: miu200521358
package io_common

import (
	"encoding/json"
	"strconv"

	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/spatial/r3"
)

// GltfDocument はモーション・骨格読込に必要なglTFトップレベル要素を表す。
type GltfDocument struct {
	Asset          GltfAsset                  `json:"asset"`
	Buffers        []GltfBuffer               `json:"buffers"`
	BufferViews    []GltfBufferView           `json:"bufferViews"`
	Accessors      []GltfAccessor             `json:"accessors"`
	Nodes          []GltfNode                 `json:"nodes"`
	Animations     []GltfAnimation            `json:"animations"`
	ExtensionsUsed []string                   `json:"extensionsUsed"`
	Extensions     map[string]json.RawMessage `json:"extensions"`
}

// GltfAsset はglTF asset要素を表す。
type GltfAsset struct {
	Version   string `json:"version"`
	Generator string `json:"generator"`
}

// GltfBuffer はglTF buffer要素を表す。
type GltfBuffer struct {
	ByteLength int `json:"byteLength"`
}

// GltfBufferView はglTF bufferView要素を表す。
type GltfBufferView struct {
	Buffer     int `json:"buffer"`
	ByteOffset int `json:"byteOffset"`
	ByteLength int `json:"byteLength"`
	ByteStride int `json:"byteStride"`
}

// GltfAccessor はglTF accessor要素を表す。
type GltfAccessor struct {
	BufferView    *int   `json:"bufferView"`
	ByteOffset    int    `json:"byteOffset"`
	ComponentType int    `json:"componentType"`
	Count         int    `json:"count"`
	Type          string `json:"type"`
	Normalized    bool   `json:"normalized"`
}

// GltfNode はglTF node要素を表す。
type GltfNode struct {
	Name        string    `json:"name"`
	Children    []int     `json:"children"`
	Translation []float64 `json:"translation"`
	Rotation    []float64 `json:"rotation"`
	Scale       []float64 `json:"scale"`
}

// GltfAnimation はglTF animation要素を表す。
type GltfAnimation struct {
	Name     string                 `json:"name"`
	Channels []GltfAnimationChannel `json:"channels"`
	Samplers []GltfAnimationSampler `json:"samplers"`
}

// GltfAnimationChannel はglTF animation.channels要素を表す。
type GltfAnimationChannel struct {
	Sampler int                        `json:"sampler"`
	Target  GltfAnimationChannelTarget `json:"target"`
}

// GltfAnimationChannelTarget はチャンネルの対象ノードと属性を表す。
type GltfAnimationChannelTarget struct {
	Node *int   `json:"node"`
	Path string `json:"path"`
}

// GltfAnimationSampler はglTF animation.samplers要素を表す。
type GltfAnimationSampler struct {
	Input         int    `json:"input"`
	Output        int    `json:"output"`
	Interpolation string `json:"interpolation"`
}

// HasExtension は拡張が宣言または定義されているか判定する。
func (d *GltfDocument) HasExtension(name string) bool {
	if d == nil {
		return false
	}
	if _, ok := d.Extensions[name]; ok {
		return true
	}
	for _, used := range d.ExtensionsUsed {
		if used == name {
			return true
		}
	}
	return false
}

// NodeName は指定ノードの名前を返す。名前がない場合は node_<index> を返す。
func (d *GltfDocument) NodeName(index int) string {
	if d != nil && index >= 0 && index < len(d.Nodes) && d.Nodes[index].Name != "" {
		return d.Nodes[index].Name
	}
	return "node_" + strconv.Itoa(index)
}

// BuildNodeParentIndexes はnode配列から親インデックス配列を生成する。
func BuildNodeParentIndexes(nodes []GltfNode) ([]int, error) {
	parentIndexes := make([]int, len(nodes))
	for i := range parentIndexes {
		parentIndexes[i] = -1
	}
	for parentIndex, node := range nodes {
		for _, childIndex := range node.Children {
			if childIndex < 0 || childIndex >= len(nodes) {
				return nil, NewIoParseFailed("node.children のindexが不正です: %d", nil, childIndex)
			}
			if parentIndexes[childIndex] == -1 {
				parentIndexes[childIndex] = parentIndex
			}
		}
	}
	return parentIndexes, nil
}

// ParseVec3 はスライスをVec3へ変換する。
func ParseVec3(values []float64, defaultValue r3.Vec, label string) (r3.Vec, error) {
	if len(values) == 0 {
		return defaultValue, nil
	}
	if len(values) != 3 {
		return r3.Vec{}, NewIoParseFailed("%s の要素数が不正です: %d", nil, label, len(values))
	}
	return r3.Vec{X: values[0], Y: values[1], Z: values[2]}, nil
}

// ParseQuaternion はxyzw順のスライスを正規化済みクォータニオンへ変換する。
func ParseQuaternion(values []float64, label string) (mgl64.Quat, error) {
	if len(values) == 0 {
		return mgl64.QuatIdent(), nil
	}
	if len(values) != 4 {
		return mgl64.QuatIdent(), NewIoParseFailed("%s の要素数が不正です: %d", nil, label, len(values))
	}
	q := mgl64.Quat{W: values[3], V: mgl64.Vec3{values[0], values[1], values[2]}}
	if q.Len() == 0 {
		return mgl64.QuatIdent(), nil
	}
	return q.Normalize(), nil
}
