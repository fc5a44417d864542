// 指示: miu200521358
package io_common

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadGLBFileReturnsFileNotFound(t *testing.T) {
	_, err := ReadGLBFile(filepath.Join(t.TempDir(), "missing.glb"))
	require.Error(t, err)
	assert.Equal(t, ErrorIDFileNotFound, ExtractErrorID(err))
}

func TestParseGLBChunksRejectsInvalidHeaders(t *testing.T) {
	valid := encodeGLBForTest(t, map[string]any{"asset": map[string]any{"version": "2.0"}}, nil)

	badMagic := append([]byte(nil), valid...)
	binary.LittleEndian.PutUint32(badMagic[0:4], 0x12345678)

	badVersion := append([]byte(nil), valid...)
	binary.LittleEndian.PutUint32(badVersion[4:8], 1)

	badLength := append([]byte(nil), valid...)
	binary.LittleEndian.PutUint32(badLength[8:12], uint32(len(valid)+100))

	cases := []struct {
		name string
		data []byte
		id   string
	}{
		{name: "short", data: valid[:10], id: ErrorIDParseFailed},
		{name: "magic", data: badMagic, id: ErrorIDParseFailed},
		{name: "version", data: badVersion, id: ErrorIDFormatNotSupported},
		{name: "length", data: badLength, id: ErrorIDParseFailed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := ParseGLBChunks(tc.data)
			require.Error(t, err)
			assert.Equal(t, tc.id, ExtractErrorID(err))
		})
	}
}

func TestReadGLBFileParsesDocumentAndBin(t *testing.T) {
	bin := appendFloat32sForTest(nil, 0, 0.5, 1.0)
	doc := map[string]any{
		"asset":       map[string]any{"version": "2.0", "generator": "test"},
		"nodes":       []any{map[string]any{"name": "hips"}, map[string]any{}},
		"bufferViews": []any{map[string]any{"buffer": 0, "byteOffset": 0, "byteLength": len(bin)}},
		"accessors": []any{
			map[string]any{"bufferView": 0, "componentType": 5126, "count": 3, "type": "SCALAR"},
		},
		"extensionsUsed": []string{"VRMC_vrm_animation"},
	}
	path := filepath.Join(t.TempDir(), "anim.glb")
	writeGLBFileForTestWithBin(t, path, doc, bin)

	glb, err := ReadGLBFile(path)
	require.NoError(t, err)
	assert.Equal(t, "test", glb.Document.Asset.Generator)
	assert.True(t, glb.Document.HasExtension("VRMC_vrm_animation"))
	assert.False(t, glb.Document.HasExtension("VRMC_vrm"))
	assert.Equal(t, "hips", glb.Document.NodeName(0))
	assert.Equal(t, "node_1", glb.Document.NodeName(1))

	values, err := ReadAccessorScalars(glb.Document, 0, glb.Bin)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0.5, 1.0}, values)
}

func TestReadAccessorFloatValuesWithStrideAndNormalized(t *testing.T) {
	bin := appendFloat32sForTest(nil, 1, 2, 3, 99, 4, 5, 6, 99)
	bin = append(bin, 0, 255, 0, 0)
	viewStride := 16
	doc := &GltfDocument{
		BufferViews: []GltfBufferView{
			{Buffer: 0, ByteOffset: 0, ByteLength: 32, ByteStride: viewStride},
			{Buffer: 0, ByteOffset: 32, ByteLength: 4},
		},
		Accessors: []GltfAccessor{
			{BufferView: intPtrForTest(0), ComponentType: gltfComponentTypeFloat, Count: 2, Type: "VEC3"},
			{BufferView: intPtrForTest(1), ComponentType: gltfComponentTypeUnsignedByte, Count: 2, Type: "VEC2", Normalized: true},
			{BufferView: intPtrForTest(0), ComponentType: gltfComponentTypeFloat, Count: 3, Type: "VEC3"},
			{ComponentType: gltfComponentTypeFloat, Count: 1, Type: "VEC3"},
			{BufferView: intPtrForTest(0), ComponentType: gltfComponentTypeFloat, Count: 1, Type: "MAT4"},
		},
	}

	vec3, err := ReadAccessorFloatValues(doc, 0, bin)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{1, 2, 3}, {4, 5, 6}}, vec3)

	normalized, err := ReadAccessorFloatValues(doc, 1, bin)
	require.NoError(t, err)
	assert.InDelta(t, 0, normalized[0][0], 1e-9)
	assert.InDelta(t, 1, normalized[0][1], 1e-9)

	_, err = ReadAccessorFloatValues(doc, 2, bin)
	assert.Equal(t, ErrorIDParseFailed, ExtractErrorID(err))
	_, err = ReadAccessorFloatValues(doc, 3, bin)
	assert.Equal(t, ErrorIDParseFailed, ExtractErrorID(err))
	_, err = ReadAccessorFloatValues(doc, 4, bin)
	assert.Equal(t, ErrorIDFormatNotSupported, ExtractErrorID(err))
	_, err = ReadAccessorFloatValues(doc, 9, bin)
	assert.Equal(t, ErrorIDParseFailed, ExtractErrorID(err))
}

func TestExtractErrorIDThroughWrapping(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", NewIoExtInvalid("a.txt", nil))
	assert.Equal(t, ErrorIDExtInvalid, ExtractErrorID(err))
	assert.Contains(t, err.Error(), "[14102]")
	assert.Empty(t, ExtractErrorID(fmt.Errorf("plain")))
}

func TestParseQuaternionNormalizes(t *testing.T) {
	q, err := ParseQuaternion([]float64{0, 0, 0, 2}, "rotation")
	require.NoError(t, err)
	assert.InDelta(t, 1, q.W, 1e-9)

	_, err = ParseQuaternion([]float64{0, 0, 1}, "rotation")
	assert.Equal(t, ErrorIDParseFailed, ExtractErrorID(err))

	_, err = BuildNodeParentIndexes([]GltfNode{{Children: []int{3}}})
	assert.Equal(t, ErrorIDParseFailed, ExtractErrorID(err))
}

func intPtrForTest(v int) *int {
	return &v
}

// appendFloat32sForTest はfloat32のリトルエンディアン列を追加する。
func appendFloat32sForTest(dst []byte, values ...float64) []byte {
	for _, v := range values {
		dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(float32(v)))
	}
	return dst
}

// encodeGLBForTest はテスト用のJSON/BINをGLBバイト列にする。
func encodeGLBForTest(t *testing.T, doc map[string]any, binChunk []byte) []byte {
	t.Helper()
	jsonBytes, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("json marshal failed: %v", err)
	}
	if pad := (4 - len(jsonBytes)%4) % 4; pad > 0 {
		jsonBytes = append(jsonBytes, bytes.Repeat([]byte(" "), pad)...)
	}
	binBytes := append([]byte(nil), binChunk...)
	if pad := (4 - len(binBytes)%4) % 4; pad > 0 {
		binBytes = append(binBytes, bytes.Repeat([]byte{0x00}, pad)...)
	}
	totalLength := uint32(12 + 8 + len(jsonBytes))
	if len(binBytes) > 0 {
		totalLength += uint32(8 + len(binBytes))
	}

	var buf bytes.Buffer
	_ = binary.Write(&buf, binary.LittleEndian, uint32(0x46546C67))
	_ = binary.Write(&buf, binary.LittleEndian, uint32(2))
	_ = binary.Write(&buf, binary.LittleEndian, totalLength)
	_ = binary.Write(&buf, binary.LittleEndian, uint32(len(jsonBytes)))
	_ = binary.Write(&buf, binary.LittleEndian, uint32(0x4E4F534A))
	buf.Write(jsonBytes)
	if len(binBytes) > 0 {
		_ = binary.Write(&buf, binary.LittleEndian, uint32(len(binBytes)))
		_ = binary.Write(&buf, binary.LittleEndian, uint32(0x004E4942))
		buf.Write(binBytes)
	}
	return buf.Bytes()
}

// writeGLBFileForTestWithBin はテスト用のJSON/BINをGLBとして書き込む。
func writeGLBFileForTestWithBin(t *testing.T, path string, doc map[string]any, binChunk []byte) {
	t.Helper()
	if err := os.WriteFile(path, encodeGLBForTest(t, doc, binChunk), 0o644); err != nil {
		t.Fatalf("write file failed: %v", err)
	}
}
