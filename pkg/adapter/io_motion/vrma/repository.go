// 指示: miu200521358
package vrma

import (
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/miu200521358/mu_vrma_player/pkg/adapter/io_common"
	"github.com/miu200521358/mu_vrma_player/pkg/domain/humanoid"
	"github.com/miu200521358/mu_vrma_player/pkg/domain/model"
	"github.com/miu200521358/mu_vrma_player/pkg/infra/mlogging"
)

const (
	// VrmAnimationExtensionName はVRMアニメーション拡張名。
	VrmAnimationExtensionName = "VRMC_vrm_animation"

	gltfPathTranslation = "translation"
	gltfPathRotation    = "rotation"
	gltfPathWeights     = "weights"
)

// LoadProgressEventType はモーション読込進捗イベント種別を表す。
type LoadProgressEventType string

const (
	// LoadProgressEventTypeFileReadComplete はファイル読込完了イベントを表す。
	LoadProgressEventTypeFileReadComplete LoadProgressEventType = "file_read_complete"
	// LoadProgressEventTypeChannelProcessed はチャンネル変換進行イベントを表す。
	LoadProgressEventTypeChannelProcessed LoadProgressEventType = "channel_processed"
	// LoadProgressEventTypeCompleted はモーション読込完了イベントを表す。
	LoadProgressEventTypeCompleted LoadProgressEventType = "completed"
)

// LoadProgressEvent はモーション読込進捗イベントを表す。
type LoadProgressEvent struct {
	Type           LoadProgressEventType
	FileSizeBytes  int
	AnimationCount int
	ChannelTotal   int
	ChannelDone    int
}

// VrmaRepository はVRMA/glTFモーション入力の読み込みを表す。
type VrmaRepository struct {
	loadProgressReporter func(LoadProgressEvent)
}

// NewVrmaRepository はVrmaRepositoryを生成する。
func NewVrmaRepository() *VrmaRepository {
	return &VrmaRepository{}
}

// SetLoadProgressReporter は読込進捗受信コールバックを設定する。
func (r *VrmaRepository) SetLoadProgressReporter(reporter func(LoadProgressEvent)) {
	if r == nil {
		return
	}
	r.loadProgressReporter = reporter
}

// CanLoad は拡張子に応じて読み込み可否を判定する。
func (r *VrmaRepository) CanLoad(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".vrma" || ext == ".glb"
}

// InferName はパスから表示名を推定する。
func (r *VrmaRepository) InferName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Load はモーション入力を読み込み、形状を確定した入力クリップを返す。
// VRMアニメーション拡張を持つ場合はhumanoid対応済み、持たない場合は生トラックの入力になる。
func (r *VrmaRepository) Load(path string) (model.SourceClip, error) {
	if !r.CanLoad(path) {
		return model.SourceClip{}, io_common.NewIoExtInvalid(path, nil)
	}
	name := r.InferName(path)
	logVrmaInfo("モーション読込開始: file=%s", filepath.Base(path))

	glb, err := io_common.ReadGLBFile(path)
	if err != nil {
		return model.SourceClip{}, err
	}
	doc := glb.Document
	r.reportLoadProgress(LoadProgressEvent{
		Type:           LoadProgressEventTypeFileReadComplete,
		FileSizeBytes:  glb.Size,
		AnimationCount: len(doc.Animations),
	})
	logVrmaInfo("モーション読込ステップ: GLB解析完了 nodes=%d animations=%d accessors=%d",
		len(doc.Nodes), len(doc.Animations), len(doc.Accessors))

	if len(doc.Animations) == 0 {
		logVrmaWarn("アニメーションが含まれていません: file=%s", filepath.Base(path))
		return model.NewEmptySource(name), nil
	}

	var source model.SourceClip
	if doc.HasExtension(VrmAnimationExtensionName) {
		source, err = r.loadNormalized(name, glb)
	} else {
		source, err = r.loadGeneric(name, glb)
	}
	if err != nil {
		return model.SourceClip{}, err
	}
	r.reportLoadProgress(LoadProgressEvent{
		Type:           LoadProgressEventTypeCompleted,
		FileSizeBytes:  glb.Size,
		AnimationCount: len(doc.Animations),
	})
	logVrmaInfo("モーション読込完了: file=%s kind=%s", filepath.Base(path), source.Kind())
	return source, nil
}

// loadNormalized はVRMアニメーション拡張のhumanoid対応から対応済みモーションを構築する。
func (r *VrmaRepository) loadNormalized(name string, glb *io_common.GlbFile) (model.SourceClip, error) {
	doc := glb.Document
	ext, err := parseVrmAnimationExtension(doc.Extensions)
	if err != nil {
		return model.SourceClip{}, err
	}
	nodeToBone := map[int]humanoid.BoneId{}
	for boneName, bone := range ext.Humanoid.HumanBones {
		if bone.Node == nil {
			continue
		}
		boneId, ok := humanoid.ParseBoneId(boneName)
		if !ok {
			logVrmaWarn("VRMアニメーションのhumanBoneが未対応のため無視します: %s", boneName)
			continue
		}
		nodeToBone[*bone.Node] = boneId
	}
	lookAtNode := -1
	if ext.LookAt != nil && ext.LookAt.Node != nil {
		lookAtNode = *ext.LookAt.Node
	}
	logVrmaInfo("モーション読込ステップ: VRMアニメーション拡張解析完了 humanBones=%d lookAt=%t",
		len(nodeToBone), lookAtNode >= 0)

	animation := doc.Animations[0]
	if len(doc.Animations) > 1 {
		logVrmaWarn("2本目以降のアニメーションは使用しません: count=%d", len(doc.Animations))
	}
	motionName := animation.Name
	if motionName == "" {
		motionName = name
	}
	motion := model.NewMotionModel(motionName)

	for i, channel := range animation.Channels {
		r.reportLoadProgress(LoadProgressEvent{
			Type:           LoadProgressEventTypeChannelProcessed,
			FileSizeBytes:  glb.Size,
			AnimationCount: len(doc.Animations),
			ChannelTotal:   len(animation.Channels),
			ChannelDone:    i + 1,
		})
		if channel.Target.Node == nil {
			continue
		}
		node := *channel.Target.Node
		if node == lookAtNode && channel.Target.Path == gltfPathRotation {
			track, err := readChannelTrack(doc, animation, channel, glb.Bin,
				model.JoinTrackName(model.GazeProxyMarker, "quaternion"))
			if err != nil {
				return model.SourceClip{}, err
			}
			motion.LookAtTrack = track
			motion.Duration = maxDuration(motion.Duration, track)
			continue
		}
		boneId, ok := nodeToBone[node]
		if !ok {
			logVrmaDebug("humanoid外のノードのチャンネルを無視します: node=%s path=%s",
				doc.NodeName(node), channel.Target.Path)
			continue
		}

		switch channel.Target.Path {
		case gltfPathRotation:
			track, err := readChannelTrack(doc, animation, channel, glb.Bin,
				model.JoinTrackName(boneId.String(), "quaternion"))
			if err != nil {
				return model.SourceClip{}, err
			}
			motion.SetTrack(model.ChannelRotation, boneId, track)
			motion.Duration = maxDuration(motion.Duration, track)
		case gltfPathTranslation:
			if !boneId.IsRoot() {
				logVrmaWarn("hips以外の移動チャンネルを無視します: bone=%s warning=%s",
					boneId, model.MotionWarningNonRootTranslation)
				continue
			}
			track, err := readChannelTrack(doc, animation, channel, glb.Bin,
				model.JoinTrackName(boneId.String(), "position"))
			if err != nil {
				return model.SourceClip{}, err
			}
			motion.SetTrack(model.ChannelTranslation, boneId, track)
			motion.Duration = maxDuration(motion.Duration, track)
		default:
			logVrmaDebug("未対応のチャンネルを無視します: bone=%s path=%s", boneId, channel.Target.Path)
		}
	}
	return model.NewNormalizedSource(name, motion), nil
}

// loadGeneric はアニメーションごとに "<ノード名>.<属性>" の生トラックを持つ入力を構築する。
func (r *VrmaRepository) loadGeneric(name string, glb *io_common.GlbFile) (model.SourceClip, error) {
	doc := glb.Document
	clips := make([]*model.RawClip, 0, len(doc.Animations))
	for animationIndex, animation := range doc.Animations {
		tracks := make([]*model.Track, 0, len(animation.Channels))
		for _, channel := range animation.Channels {
			if channel.Target.Node == nil {
				continue
			}
			trackName := model.JoinTrackName(doc.NodeName(*channel.Target.Node), channel.Target.Path)
			track, err := readChannelTrack(doc, animation, channel, glb.Bin, trackName)
			if err != nil {
				return model.SourceClip{}, err
			}
			tracks = append(tracks, track)
		}
		clipName := animation.Name
		if clipName == "" {
			clipName = name
		}
		clips = append(clips, model.NewRawClip(clipName, tracks))
		logVrmaDebug("生クリップを構築しました: index=%d name=%s tracks=%d", animationIndex, clipName, len(tracks))
	}
	return model.NewGenericSource(name, clips...), nil
}

// readChannelTrack はチャンネルのサンプラーからトラックを読み取る。
func readChannelTrack(
	doc *io_common.GltfDocument,
	animation io_common.GltfAnimation,
	channel io_common.GltfAnimationChannel,
	bin []byte,
	trackName string,
) (*model.Track, error) {
	if channel.Sampler < 0 || channel.Sampler >= len(animation.Samplers) {
		return nil, io_common.NewIoParseFailed("animation.sampler index が不正です: %d", nil, channel.Sampler)
	}
	sampler := animation.Samplers[channel.Sampler]
	times, err := io_common.ReadAccessorScalars(doc, sampler.Input, bin)
	if err != nil {
		return nil, io_common.NewIoParseFailed("サンプラー入力の読み取りに失敗しました(track=%s)", err, trackName)
	}
	rows, err := io_common.ReadAccessorFloatValues(doc, sampler.Output, bin)
	if err != nil {
		return nil, io_common.NewIoParseFailed("サンプラー出力の読み取りに失敗しました(track=%s)", err, trackName)
	}

	interpolation := model.Interpolation(strings.ToUpper(sampler.Interpolation))
	switch interpolation {
	case model.InterpolationLinear, model.InterpolationStep, model.InterpolationCubicSpline:
	case "":
		interpolation = model.InterpolationLinear
	default:
		return nil, io_common.NewIoFormatNotSupported("補間方式が未対応です: %s", nil, sampler.Interpolation)
	}

	values := make([]float64, 0, len(rows)*4)
	for _, row := range rows {
		values = append(values, row...)
	}
	keyRows := len(times)
	if interpolation == model.InterpolationCubicSpline {
		keyRows *= 3
	}
	valueSize := 0
	switch {
	case keyRows == 0:
	case channel.Target.Path == gltfPathWeights && len(rows)%keyRows == 0:
		// モーフ重みはキーごとに対象数ぶんの行が並ぶ
		valueSize = len(values) / keyRows
	case len(rows) == keyRows:
		valueSize = len(rows[0])
	default:
		return nil, io_common.NewIoParseFailed("キー数が一致しません(track=%s times=%d values=%d)", nil,
			trackName, len(times), len(rows))
	}
	return &model.Track{
		Name:          trackName,
		Times:         times,
		Values:        values,
		ValueSize:     valueSize,
		Interpolation: interpolation,
	}, nil
}

// maxDuration はトラック終端と現在の長さの大きい方を返す。
func maxDuration(current float64, track *model.Track) float64 {
	if end := track.EndTime(); end > current {
		return end
	}
	return current
}

// vrmAnimationExtension はVRMアニメーション拡張の必要要素を表す。
type vrmAnimationExtension struct {
	SpecVersion string               `json:"specVersion"`
	Humanoid    vrmAnimationHumanoid `json:"humanoid"`
	LookAt      *vrmAnimationNodeRef `json:"lookAt"`
}

// vrmAnimationHumanoid はVRMアニメーション拡張のhumanoid要素を表す。
type vrmAnimationHumanoid struct {
	HumanBones map[string]vrmAnimationNodeRef `json:"humanBones"`
}

// vrmAnimationNodeRef はノード参照を表す。
type vrmAnimationNodeRef struct {
	Node *int `json:"node"`
}

// parseVrmAnimationExtension はextensionsからVRMアニメーション拡張を抽出する。
func parseVrmAnimationExtension(extensions map[string]json.RawMessage) (*vrmAnimationExtension, error) {
	raw, ok := extensions[VrmAnimationExtensionName]
	if !ok {
		return nil, io_common.NewIoFormatNotSupported("VRMアニメーション拡張が存在しません", nil)
	}
	ext := vrmAnimationExtension{}
	if err := json.Unmarshal(raw, &ext); err != nil {
		return nil, io_common.NewIoParseFailed("VRMアニメーション拡張のJSON解析に失敗しました", err)
	}
	return &ext, nil
}

// reportLoadProgress は読込進捗イベントを通知する。
func (r *VrmaRepository) reportLoadProgress(event LoadProgressEvent) {
	if r == nil || r.loadProgressReporter == nil {
		return
	}
	r.loadProgressReporter(event)
}

// logVrmaInfo はモーション読込のINFOログを出力する。
func logVrmaInfo(format string, params ...any) {
	logger := mlogging.DefaultLogger()
	if logger == nil {
		return
	}
	logger.Info().Msgf(format, params...)
}

// logVrmaDebug はモーション読込のデバッグログを出力する。
func logVrmaDebug(format string, params ...any) {
	logger := mlogging.DefaultLogger()
	if logger == nil {
		return
	}
	logger.Debug().Msgf(format, params...)
}

// logVrmaWarn はモーション読込の警告ログを出力する。
func logVrmaWarn(format string, params ...any) {
	logger := mlogging.DefaultLogger()
	if logger == nil {
		return
	}
	logger.Warn().Msgf(format, params...)
}
