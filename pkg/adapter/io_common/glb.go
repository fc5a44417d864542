// 指示: miu200521358
package io_common

import (
	"encoding/binary"
	"encoding/json"
	"math"
	"os"
)

const (
	glbHeaderLength   = 12
	glbChunkHeadSize  = 8
	glbMagic          = 0x46546C67
	glbJSONChunkType  = 0x4E4F534A
	glbBINChunkType   = 0x004E4942
	glbMinValidLength = glbHeaderLength + glbChunkHeadSize

	gltfComponentTypeByte          = 5120
	gltfComponentTypeUnsignedByte  = 5121
	gltfComponentTypeShort         = 5122
	gltfComponentTypeUnsignedShort = 5123
	gltfComponentTypeUnsignedInt   = 5125
	gltfComponentTypeFloat         = 5126
)

// GlbFile はGLBファイルの解析結果を表す。
type GlbFile struct {
	Document *GltfDocument
	Bin      []byte
	Size     int
}

// ReadGLBFile はGLBファイルを読み込み、JSONとBINチャンクを解析する。
func ReadGLBFile(path string) (*GlbFile, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NewIoFileNotFound(path, err)
		}
		return nil, NewIoParseFailed("ファイルの読み取りに失敗しました: %s", err, path)
	}
	jsonChunk, binChunk, err := ParseGLBChunks(b)
	if err != nil {
		return nil, err
	}
	doc := &GltfDocument{}
	if err := json.Unmarshal(jsonChunk, doc); err != nil {
		return nil, NewIoParseFailed("GLB JSONチャンクの解析に失敗しました", err)
	}
	return &GlbFile{Document: doc, Bin: binChunk, Size: len(b)}, nil
}

// ParseGLBChunks はGLBバイト列からJSON/BINチャンクを抽出する。
func ParseGLBChunks(b []byte) ([]byte, []byte, error) {
	if len(b) < glbMinValidLength {
		return nil, nil, NewIoParseFailed("GLBヘッダが不足しています", nil)
	}
	if binary.LittleEndian.Uint32(b[0:4]) != glbMagic {
		return nil, nil, NewIoParseFailed("GLBマジックが不正です", nil)
	}
	version := binary.LittleEndian.Uint32(b[4:8])
	if version != 2 {
		return nil, nil, NewIoFormatNotSupported("GLBバージョンが未対応です: %d", nil, version)
	}
	totalLength := int(binary.LittleEndian.Uint32(b[8:12]))
	if totalLength <= 0 || totalLength > len(b) {
		return nil, nil, NewIoParseFailed("GLB全体長が不正です", nil)
	}

	var jsonChunk []byte
	var binChunk []byte
	offset := glbHeaderLength
	for offset+glbChunkHeadSize <= totalLength {
		chunkLength := int(binary.LittleEndian.Uint32(b[offset : offset+4]))
		chunkType := binary.LittleEndian.Uint32(b[offset+4 : offset+8])
		chunkStart := offset + glbChunkHeadSize
		chunkEnd := chunkStart + chunkLength
		if chunkLength < 0 || chunkEnd > totalLength {
			return nil, nil, NewIoParseFailed("GLBチャンク長が不正です", nil)
		}
		switch chunkType {
		case glbJSONChunkType:
			if jsonChunk == nil {
				jsonChunk = b[chunkStart:chunkEnd]
			}
		case glbBINChunkType:
			if binChunk == nil {
				binChunk = b[chunkStart:chunkEnd]
			}
		}
		offset = chunkEnd
	}
	if len(jsonChunk) == 0 {
		return nil, nil, NewIoParseFailed("GLB JSONチャンクが見つかりません", nil)
	}
	return jsonChunk, binChunk, nil
}

// accessorReadPlan はaccessor読み取りの検証済み情報を表す。
type accessorReadPlan struct {
	Accessor      GltfAccessor
	ComponentSize int
	ComponentNum  int
	Stride        int
	BaseOffset    int
}

// ReadAccessorFloatValues はaccessorをfloat値配列として読み取る。
func ReadAccessorFloatValues(doc *GltfDocument, accessorIndex int, binChunk []byte) ([][]float64, error) {
	plan, err := prepareAccessorRead(doc, accessorIndex, binChunk)
	if err != nil {
		return nil, err
	}
	values := make([][]float64, plan.Accessor.Count)
	for i := 0; i < plan.Accessor.Count; i++ {
		row := make([]float64, plan.ComponentNum)
		elementBase := plan.BaseOffset + i*plan.Stride
		for c := 0; c < plan.ComponentNum; c++ {
			value, readErr := readComponentAsFloat(plan.Accessor, binChunk, elementBase+c*plan.ComponentSize)
			if readErr != nil {
				return nil, readErr
			}
			row[c] = value
		}
		values[i] = row
	}
	return values, nil
}

// ReadAccessorScalars はSCALAR accessorを1次元配列として読み取る。
func ReadAccessorScalars(doc *GltfDocument, accessorIndex int, binChunk []byte) ([]float64, error) {
	rows, err := ReadAccessorFloatValues(doc, accessorIndex, binChunk)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(rows))
	for i, row := range rows {
		if len(row) != 1 {
			return nil, NewIoParseFailed("SCALAR accessor ではありません: %d", nil, accessorIndex)
		}
		out[i] = row[0]
	}
	return out, nil
}

// prepareAccessorRead はaccessor読み取りに必要な情報を検証して返す。
func prepareAccessorRead(doc *GltfDocument, accessorIndex int, binChunk []byte) (accessorReadPlan, error) {
	if doc == nil {
		return accessorReadPlan{}, NewIoParseFailed("gltf document が未設定です", nil)
	}
	if accessorIndex < 0 || accessorIndex >= len(doc.Accessors) {
		return accessorReadPlan{}, NewIoParseFailed("accessor index が不正です: %d", nil, accessorIndex)
	}
	accessor := doc.Accessors[accessorIndex]
	if accessor.BufferView == nil {
		return accessorReadPlan{}, NewIoParseFailed("sparse accessor は未対応です", nil)
	}
	if accessor.Count < 0 {
		return accessorReadPlan{}, NewIoParseFailed("accessor.count が不正です: %d", nil, accessor.Count)
	}

	viewIndex := *accessor.BufferView
	if viewIndex < 0 || viewIndex >= len(doc.BufferViews) {
		return accessorReadPlan{}, NewIoParseFailed("bufferView index が不正です: %d", nil, viewIndex)
	}
	view := doc.BufferViews[viewIndex]
	if view.Buffer != 0 {
		return accessorReadPlan{}, NewIoParseFailed("bufferView.buffer が未対応です: %d", nil, view.Buffer)
	}
	if view.ByteLength < 0 || view.ByteOffset < 0 {
		return accessorReadPlan{}, NewIoParseFailed("bufferView の byteOffset/byteLength が不正です", nil)
	}
	if view.ByteOffset+view.ByteLength > len(binChunk) {
		return accessorReadPlan{}, NewIoParseFailed("bufferView 範囲がBINチャンク外です", nil)
	}

	componentNum, err := accessorComponentNum(accessor.Type)
	if err != nil {
		return accessorReadPlan{}, err
	}
	componentSize, err := accessorComponentSize(accessor.ComponentType)
	if err != nil {
		return accessorReadPlan{}, err
	}
	elementSize := componentNum * componentSize
	stride := view.ByteStride
	if stride <= 0 {
		stride = elementSize
	}
	if stride < elementSize {
		return accessorReadPlan{}, NewIoParseFailed("bufferView.byteStride が要素サイズより小さいです", nil)
	}
	baseOffset := view.ByteOffset + accessor.ByteOffset
	if baseOffset < view.ByteOffset || baseOffset > view.ByteOffset+view.ByteLength {
		return accessorReadPlan{}, NewIoParseFailed("accessor.byteOffset が不正です", nil)
	}
	if accessor.Count > 0 {
		lastEnd := baseOffset + (accessor.Count-1)*stride + elementSize
		if lastEnd > view.ByteOffset+view.ByteLength {
			return accessorReadPlan{}, NewIoParseFailed("accessor 範囲がbufferViewを超えています", nil)
		}
	}

	return accessorReadPlan{
		Accessor:      accessor,
		ComponentSize: componentSize,
		ComponentNum:  componentNum,
		Stride:        stride,
		BaseOffset:    baseOffset,
	}, nil
}

// accessorComponentNum はaccessor.typeから要素次元数を返す。
func accessorComponentNum(typeName string) (int, error) {
	switch typeName {
	case "SCALAR":
		return 1, nil
	case "VEC2":
		return 2, nil
	case "VEC3":
		return 3, nil
	case "VEC4":
		return 4, nil
	default:
		return 0, NewIoFormatNotSupported("accessor.type が未対応です: %s", nil, typeName)
	}
}

// accessorComponentSize はcomponentTypeのバイト幅を返す。
func accessorComponentSize(componentType int) (int, error) {
	switch componentType {
	case gltfComponentTypeByte, gltfComponentTypeUnsignedByte:
		return 1, nil
	case gltfComponentTypeShort, gltfComponentTypeUnsignedShort:
		return 2, nil
	case gltfComponentTypeUnsignedInt, gltfComponentTypeFloat:
		return 4, nil
	default:
		return 0, NewIoFormatNotSupported("accessor.componentType が未対応です: %d", nil, componentType)
	}
}

// readComponentAsFloat はcomponentTypeをfloat64へ変換する。
func readComponentAsFloat(accessor GltfAccessor, data []byte, offset int) (float64, error) {
	switch accessor.ComponentType {
	case gltfComponentTypeByte:
		value := float64(int8(data[offset]))
		if accessor.Normalized {
			return math.Max(value/127.0, -1.0), nil
		}
		return value, nil
	case gltfComponentTypeUnsignedByte:
		value := float64(data[offset])
		if accessor.Normalized {
			return value / 255.0, nil
		}
		return value, nil
	case gltfComponentTypeShort:
		value := float64(int16(binary.LittleEndian.Uint16(data[offset : offset+2])))
		if accessor.Normalized {
			return math.Max(value/32767.0, -1.0), nil
		}
		return value, nil
	case gltfComponentTypeUnsignedShort:
		value := float64(binary.LittleEndian.Uint16(data[offset : offset+2]))
		if accessor.Normalized {
			return value / 65535.0, nil
		}
		return value, nil
	case gltfComponentTypeUnsignedInt:
		value := float64(binary.LittleEndian.Uint32(data[offset : offset+4]))
		if accessor.Normalized {
			return value / 4294967295.0, nil
		}
		return value, nil
	case gltfComponentTypeFloat:
		return float64(math.Float32frombits(binary.LittleEndian.Uint32(data[offset : offset+4]))), nil
	default:
		return 0, NewIoFormatNotSupported("float componentType が未対応です: %d", nil, accessor.ComponentType)
	}
}
