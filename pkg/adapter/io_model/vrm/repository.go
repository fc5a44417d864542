// 指示: miu200521358
package vrm

import (
	"encoding/json"
	"path/filepath"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/miu200521358/mu_vrma_player/pkg/adapter/io_common"
	"github.com/miu200521358/mu_vrma_player/pkg/domain/humanoid"
	"github.com/miu200521358/mu_vrma_player/pkg/domain/model"
	"github.com/miu200521358/mu_vrma_player/pkg/infra/mlogging"
)

const (
	vrm0ExtensionName = "VRM"
	vrm1ExtensionName = "VRMC_vrm"
)

// LoadProgressEventType はVRM読込進捗イベント種別を表す。
type LoadProgressEventType string

const (
	// LoadProgressEventTypeFileReadComplete はファイル読込完了イベントを表す。
	LoadProgressEventTypeFileReadComplete LoadProgressEventType = "file_read_complete"
	// LoadProgressEventTypeHumanoidParsed はhumanoid解析完了イベントを表す。
	LoadProgressEventTypeHumanoidParsed LoadProgressEventType = "humanoid_parsed"
	// LoadProgressEventTypeCompleted はVRM読込完了イベントを表す。
	LoadProgressEventTypeCompleted LoadProgressEventType = "completed"
)

// LoadProgressEvent はVRM読込進捗イベントを表す。
type LoadProgressEvent struct {
	Type          LoadProgressEventType
	FileSizeBytes int
	NodeCount     int
	BoneCount     int
}

// VrmRepository はVRMアバター骨格の読み込みを表す。
type VrmRepository struct {
	loadProgressReporter func(LoadProgressEvent)
}

// NewVrmRepository はVrmRepositoryを生成する。
func NewVrmRepository() *VrmRepository {
	return &VrmRepository{}
}

// SetLoadProgressReporter はVRM読込進捗受信コールバックを設定する。
func (r *VrmRepository) SetLoadProgressReporter(reporter func(LoadProgressEvent)) {
	if r == nil {
		return
	}
	r.loadProgressReporter = reporter
}

// CanLoad は拡張子に応じて読み込み可否を判定する。
func (r *VrmRepository) CanLoad(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".vrm")
}

// InferName はパスから表示名を推定する。
func (r *VrmRepository) InferName(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	if ext == "" {
		return base
	}
	return strings.TrimSuffix(base, ext)
}

// Load はVRMを読み込み、humanoid骨格と視線情報を返す。
func (r *VrmRepository) Load(path string) (*model.AvatarRig, error) {
	if !r.CanLoad(path) {
		return nil, io_common.NewIoExtInvalid(path, nil)
	}
	loadTargetName := filepath.Base(path)
	logVrmInfo("VRM読込開始: file=%s", loadTargetName)

	glb, err := io_common.ReadGLBFile(path)
	if err != nil {
		return nil, err
	}
	doc := glb.Document
	r.reportLoadProgress(LoadProgressEvent{
		Type:          LoadProgressEventTypeFileReadComplete,
		FileSizeBytes: glb.Size,
		NodeCount:     len(doc.Nodes),
	})
	logVrmInfo("VRM読込ステップ: GLB解析完了 bytes=%d nodes=%d", glb.Size, len(doc.Nodes))

	if _, err := io_common.BuildNodeParentIndexes(doc.Nodes); err != nil {
		return nil, err
	}

	rig := model.NewAvatarRig(r.InferName(path))
	rig.Path = path
	rig.Version = detectVrmVersion(doc)
	switch rig.Version {
	case model.VrmVersion1:
		err = applyVRM1Extension(rig, doc)
	case model.VrmVersion0:
		err = applyVRM0Extension(rig, doc)
	default:
		return nil, io_common.NewIoFormatNotSupported("VRM拡張が見つかりません", nil)
	}
	if err != nil {
		return nil, err
	}
	if _, ok := rig.Bone(humanoid.Hips); !ok {
		return nil, io_common.NewIoFormatNotSupported("humanoidにhipsが定義されていません", nil)
	}
	r.reportLoadProgress(LoadProgressEvent{
		Type:          LoadProgressEventTypeHumanoidParsed,
		FileSizeBytes: glb.Size,
		NodeCount:     len(doc.Nodes),
		BoneCount:     len(rig.Bones),
	})
	logVrmInfo("VRM読込ステップ: humanoid解析完了 version=%s bones=%d lookAt=%t",
		rig.Version, len(rig.Bones), rig.HasLookAt())

	r.reportLoadProgress(LoadProgressEvent{
		Type:          LoadProgressEventTypeCompleted,
		FileSizeBytes: glb.Size,
		NodeCount:     len(doc.Nodes),
		BoneCount:     len(rig.Bones),
	})
	logVrmInfo("VRM読込完了: file=%s name=%s", loadTargetName, rig.Name)
	return rig, nil
}

// reportLoadProgress は読込進捗イベントを通知する。
func (r *VrmRepository) reportLoadProgress(event LoadProgressEvent) {
	if r == nil || r.loadProgressReporter == nil {
		return
	}
	r.loadProgressReporter(event)
}

// vrm0Extension はVRM0拡張の必要要素を表す。
type vrm0Extension struct {
	ExporterVersion string           `json:"exporterVersion"`
	Meta            vrm0Meta         `json:"meta"`
	Humanoid        vrm0Humanoid     `json:"humanoid"`
	FirstPerson     *vrm0FirstPerson `json:"firstPerson"`
}

// vrm0Meta はVRM0 meta要素を表す。
type vrm0Meta struct {
	Title string `json:"title"`
}

// vrm0Humanoid はVRM0 humanoid要素を表す。
type vrm0Humanoid struct {
	HumanBones []vrm0HumanBone `json:"humanBones"`
}

// vrm0HumanBone はVRM0 humanBones要素を表す。
type vrm0HumanBone struct {
	Bone string `json:"bone"`
	Node *int   `json:"node"`
}

// vrm0FirstPerson はVRM0 firstPerson要素を表す。
type vrm0FirstPerson struct {
	LookAtTypeName string `json:"lookAtTypeName"`
}

// vrm1Extension はVRM1拡張の必要要素を表す。
type vrm1Extension struct {
	SpecVersion string       `json:"specVersion"`
	Meta        vrm1Meta     `json:"meta"`
	Humanoid    vrm1Humanoid `json:"humanoid"`
	LookAt      *vrm1LookAt  `json:"lookAt"`
}

// vrm1Meta はVRM1 meta要素を表す。
type vrm1Meta struct {
	Name string `json:"name"`
}

// vrm1Humanoid はVRM1 humanoid要素を表す。
type vrm1Humanoid struct {
	HumanBones map[string]vrm1HumanBone `json:"humanBones"`
}

// vrm1HumanBone はVRM1 humanBones要素を表す。
type vrm1HumanBone struct {
	Node *int `json:"node"`
}

// vrm1LookAt はVRM1 lookAt要素を表す。
type vrm1LookAt struct {
	Type string `json:"type"`
}

// applyVRM1Extension はVRM1拡張からhumanoid骨格と視線情報を設定する。
func applyVRM1Extension(rig *model.AvatarRig, doc *io_common.GltfDocument) error {
	ext := vrm1Extension{}
	if err := json.Unmarshal(doc.Extensions[vrm1ExtensionName], &ext); err != nil {
		return io_common.NewIoParseFailed("VRM1拡張のJSON解析に失敗しました", err)
	}
	if ext.Meta.Name != "" {
		rig.Name = ext.Meta.Name
	}
	for boneName, bone := range ext.Humanoid.HumanBones {
		if bone.Node == nil {
			continue
		}
		boneId, ok := humanoid.ParseBoneId(boneName)
		if !ok {
			logVrmWarn("VRM1 humanBoneが未対応のため無視します: %s", boneName)
			continue
		}
		if err := addRigBone(rig, doc, boneId, *bone.Node); err != nil {
			return err
		}
	}
	if ext.LookAt != nil {
		rig.LookAt = &model.LookAtSpec{Type: ext.LookAt.Type}
	}
	return nil
}

// applyVRM0Extension はVRM0拡張からhumanoid骨格と視線情報を設定する。
func applyVRM0Extension(rig *model.AvatarRig, doc *io_common.GltfDocument) error {
	ext := vrm0Extension{}
	if err := json.Unmarshal(doc.Extensions[vrm0ExtensionName], &ext); err != nil {
		return io_common.NewIoParseFailed("VRM0拡張のJSON解析に失敗しました", err)
	}
	if ext.Meta.Title != "" {
		rig.Name = ext.Meta.Title
	}
	for _, bone := range ext.Humanoid.HumanBones {
		if bone.Node == nil {
			continue
		}
		// VRM0の親指はVRM1識別子へ読み替える
		boneId, ok := humanoid.ParseVrm0BoneId(bone.Bone)
		if !ok {
			logVrmWarn("VRM0 humanBoneが未対応のため無視します: %s", bone.Bone)
			continue
		}
		if err := addRigBone(rig, doc, boneId, *bone.Node); err != nil {
			return err
		}
	}
	if ext.FirstPerson != nil {
		lookAtType := strings.ToLower(ext.FirstPerson.LookAtTypeName)
		if lookAtType == "blendshape" {
			lookAtType = "expression"
		}
		rig.LookAt = &model.LookAtSpec{Type: lookAtType}
	}
	return nil
}

// addRigBone はノードの初期姿勢をhumanoidボーンとして登録する。
func addRigBone(rig *model.AvatarRig, doc *io_common.GltfDocument, boneId humanoid.BoneId, nodeIndex int) error {
	if nodeIndex < 0 || nodeIndex >= len(doc.Nodes) {
		return io_common.NewIoParseFailed("humanBone のnode indexが不正です: %s=%d", nil, boneId, nodeIndex)
	}
	node := doc.Nodes[nodeIndex]
	translation, err := io_common.ParseVec3(node.Translation, r3.Vec{}, "node.translation")
	if err != nil {
		return err
	}
	rotation, err := io_common.ParseQuaternion(node.Rotation, "node.rotation")
	if err != nil {
		return err
	}
	if previous, exists := rig.Bones[boneId]; exists {
		logVrmWarn("humanBoneが重複しているため後勝ちで上書きします: bone=%s node=%d->%d",
			boneId, previous.NodeIndex, nodeIndex)
	}
	rig.Bones[boneId] = model.RigBone{
		BoneId:      boneId,
		NodeIndex:   nodeIndex,
		NodeName:    doc.NodeName(nodeIndex),
		Translation: translation,
		Rotation:    rotation,
	}
	return nil
}

// detectVrmVersion は拡張宣言から優先バージョンを判定する。VRM0/1同時宣言時はVRM1を優先する。
func detectVrmVersion(doc *io_common.GltfDocument) model.VrmVersion {
	if _, ok := doc.Extensions[vrm1ExtensionName]; ok {
		return model.VrmVersion1
	}
	if _, ok := doc.Extensions[vrm0ExtensionName]; ok {
		return model.VrmVersion0
	}
	return model.VrmVersionUnknown
}

// logVrmInfo はVRM読込のINFOログを出力する。
func logVrmInfo(format string, params ...any) {
	logger := mlogging.DefaultLogger()
	if logger == nil {
		return
	}
	logger.Info().Msgf(format, params...)
}

// logVrmWarn はVRM読込の警告ログを出力する。
func logVrmWarn(format string, params ...any) {
	logger := mlogging.DefaultLogger()
	if logger == nil {
		return
	}
	logger.Warn().Msgf(format, params...)
}
