// 指示: miu200521358
package main

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "player.toml")
	out := &bytes.Buffer{}
	require.NoError(t, run([]string{"config", "init", path}, out, &bytes.Buffer{}))
	assert.FileExists(t, path)
	assert.Contains(t, out.String(), "設定ファイルを作成しました")

	assert.Error(t, run([]string{"config", "init", path}, out, &bytes.Buffer{}))
}

func TestRunRejectsUnsupportedLanguage(t *testing.T) {
	err := run([]string{"--lang", "fr", "config", "init", filepath.Join(t.TempDir(), "a.toml")}, &bytes.Buffer{}, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestRunInspect(t *testing.T) {
	dir := t.TempDir()
	clipPath := writeDanceVrmaForTest(t, dir)

	out := &bytes.Buffer{}
	require.NoError(t, run([]string{"inspect", clipPath}, out, &bytes.Buffer{}))
	assert.Contains(t, out.String(), "入力形状: dance (normalized)")
	assert.Contains(t, out.String(), "採用トラック数: 3")
	assert.Contains(t, out.String(), "再生時間: 1.000秒")
}

func TestRunPlay(t *testing.T) {
	dir := t.TempDir()
	avatarPath := writeAvatarVrmForTest(t, dir)
	clipPath := writeDanceVrmaForTest(t, dir)

	out := &bytes.Buffer{}
	err := run([]string{"play", "--avatar", avatarPath, "--clip", clipPath, "--seconds", "0.5"}, out, &bytes.Buffer{})
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "avatar.vrm を読み込み中...")
	assert.Contains(t, text, "avatar.vrm を読み込みました")
	assert.Contains(t, text, "アニメーションファイル dance.vrma を読み込み中...")
	assert.Contains(t, text, "アニメーション clip を再生中")
	assert.Contains(t, text, "再生状態: playing")
	assert.Contains(t, text, "hips(下半身) 回転(xyzw)=")
	assert.Contains(t, text, "0.3827")
	assert.Contains(t, text, "視線 yaw=")
}

func TestRunPlayWithToggleInEnglish(t *testing.T) {
	dir := t.TempDir()
	avatarPath := writeAvatarVrmForTest(t, dir)
	clipPath := writeDanceVrmaForTest(t, dir)

	out := &bytes.Buffer{}
	err := run([]string{
		"--lang", "en",
		"play", "--avatar", avatarPath, "--clip", clipPath, "--seconds", "0.5", "--toggle-at", "0.25",
	}, out, &bytes.Buffer{})
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "Playing animation clip")
	assert.Contains(t, text, "Animation paused")
	assert.Contains(t, text, "State: paused")
}

func TestRunPlayReportsFailures(t *testing.T) {
	dir := t.TempDir()
	avatarPath := writeAvatarVrmForTest(t, dir)

	out := &bytes.Buffer{}
	err := run([]string{"play", "--avatar", filepath.Join(dir, "missing.vrm"), "--clip", "a.vrma"}, out, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, out.String(), "missing.vrm を読み込み中...")
	assert.Contains(t, out.String(), "VRMファイルの読み込みに失敗しました")

	emptyPath := filepath.Join(dir, "empty.vrma")
	writeGLBForTest(t, emptyPath, map[string]any{"asset": map[string]any{"version": "2.0"}}, nil)
	out.Reset()
	err = run([]string{"play", "--avatar", avatarPath, "--clip", emptyPath}, out, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, out.String(), "VRMアニメーションが見つかりませんでした")
}

func TestRunWatchStopsAfterDuration(t *testing.T) {
	dir := t.TempDir()
	avatarPath := writeAvatarVrmForTest(t, dir)
	clipPath := writeDanceVrmaForTest(t, dir)

	out := &bytes.Buffer{}
	err := run([]string{"watch", "--avatar", avatarPath, "--clip", clipPath, "--duration", "100ms"}, out, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "ファイル監視開始")
	assert.Contains(t, out.String(), "アニメーション clip を再生中")
}

func TestSamePath(t *testing.T) {
	assert.True(t, samePath("a/../b.vrma", "b.vrma"))
	assert.False(t, samePath("a.vrma", "b.vrma"))
}

// writeAvatarVrmForTest はhipsと視線を持つVRM1アバターを書き込む。
func writeAvatarVrmForTest(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "avatar.vrm")
	writeGLBForTest(t, path, map[string]any{
		"asset": map[string]any{"version": "2.0"},
		"nodes": []any{
			map[string]any{"name": "J_Hips", "translation": []float64{0, 0.9, 0}, "children": []int{1}},
			map[string]any{"name": "J_Head"},
		},
		"extensionsUsed": []string{"VRMC_vrm"},
		"extensions": map[string]any{
			"VRMC_vrm": map[string]any{
				"specVersion": "1.0",
				"meta":        map[string]any{"name": "Alicia"},
				"humanoid": map[string]any{"humanBones": map[string]any{
					"hips": map[string]any{"node": 0},
					"head": map[string]any{"node": 1},
				}},
				"lookAt": map[string]any{"type": "bone"},
			},
		},
	}, nil)
	return path
}

// writeDanceVrmaForTest はhips回転・移動と視線を持つVRMAを書き込む。
func writeDanceVrmaForTest(t *testing.T, dir string) string {
	t.Helper()
	s := math.Sqrt(0.5)
	var bin []byte
	views := []any{}
	accessors := []any{}
	addAccessor := func(accessorType string, count int, values ...float64) int {
		offset := len(bin)
		for _, v := range values {
			bin = binary.LittleEndian.AppendUint32(bin, math.Float32bits(float32(v)))
		}
		views = append(views, map[string]any{"buffer": 0, "byteOffset": offset, "byteLength": len(values) * 4})
		accessors = append(accessors, map[string]any{
			"bufferView": len(views) - 1, "componentType": 5126, "count": count, "type": accessorType,
		})
		return len(accessors) - 1
	}
	times := addAccessor("SCALAR", 2, 0, 1)
	hipsRotation := addAccessor("VEC4", 2, 0, 0, 0, 1, 0, s, 0, s)
	hipsTranslation := addAccessor("VEC3", 2, 0, 0.9, 0, 0, 1.1, 0)
	gaze := addAccessor("VEC4", 2, 0, 0, 0, 1, 0, s, 0, s)

	doc := map[string]any{
		"asset":       map[string]any{"version": "2.0"},
		"nodes":       []any{map[string]any{"name": "hips"}, map[string]any{"name": "lookAt"}},
		"buffers":     []any{map[string]any{"byteLength": len(bin)}},
		"bufferViews": views,
		"accessors":   accessors,
		"animations": []any{map[string]any{
			"name": "clip",
			"samplers": []any{
				map[string]any{"input": times, "output": hipsRotation},
				map[string]any{"input": times, "output": hipsTranslation},
				map[string]any{"input": times, "output": gaze},
			},
			"channels": []any{
				map[string]any{"sampler": 0, "target": map[string]any{"node": 0, "path": "rotation"}},
				map[string]any{"sampler": 1, "target": map[string]any{"node": 0, "path": "translation"}},
				map[string]any{"sampler": 2, "target": map[string]any{"node": 1, "path": "rotation"}},
			},
		}},
		"extensionsUsed": []string{"VRMC_vrm_animation"},
		"extensions": map[string]any{
			"VRMC_vrm_animation": map[string]any{
				"specVersion": "1.0",
				"humanoid":    map[string]any{"humanBones": map[string]any{"hips": map[string]any{"node": 0}}},
				"lookAt":      map[string]any{"node": 1},
			},
		},
	}
	path := filepath.Join(dir, "dance.vrma")
	writeGLBForTest(t, path, doc, bin)
	return path
}

// writeGLBForTest はテスト用のJSON/BINをGLBとして書き込む。
func writeGLBForTest(t *testing.T, path string, doc map[string]any, binChunk []byte) {
	t.Helper()
	jsonBytes, err := json.Marshal(doc)
	require.NoError(t, err)
	if pad := (4 - len(jsonBytes)%4) % 4; pad > 0 {
		jsonBytes = append(jsonBytes, bytes.Repeat([]byte(" "), pad)...)
	}
	binBytes := append([]byte(nil), binChunk...)
	if pad := (4 - len(binBytes)%4) % 4; pad > 0 {
		binBytes = append(binBytes, bytes.Repeat([]byte{0x00}, pad)...)
	}
	totalLength := 12 + 8 + len(jsonBytes)
	if len(binBytes) > 0 {
		totalLength += 8 + len(binBytes)
	}

	var buf bytes.Buffer
	_ = binary.Write(&buf, binary.LittleEndian, uint32(0x46546C67))
	_ = binary.Write(&buf, binary.LittleEndian, uint32(2))
	_ = binary.Write(&buf, binary.LittleEndian, uint32(totalLength))
	_ = binary.Write(&buf, binary.LittleEndian, uint32(len(jsonBytes)))
	_ = binary.Write(&buf, binary.LittleEndian, uint32(0x4E4F534A))
	buf.Write(jsonBytes)
	if len(binBytes) > 0 {
		_ = binary.Write(&buf, binary.LittleEndian, uint32(len(binBytes)))
		_ = binary.Write(&buf, binary.LittleEndian, uint32(0x004E4942))
		buf.Write(binBytes)
	}
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}
