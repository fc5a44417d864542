// 指示: miu200521358
// Package humanoid はVRM humanoid ボーン識別子の閉じた集合を提供する。
package humanoid

// BoneId はVRM humanoid ボーン識別子を表す。
type BoneId string

// VRM 1.0 humanoid ボーン識別子一覧。
const (
	Hips       BoneId = "hips"
	Spine      BoneId = "spine"
	Chest      BoneId = "chest"
	UpperChest BoneId = "upperChest"
	Neck       BoneId = "neck"
	Head       BoneId = "head"
	LeftEye    BoneId = "leftEye"
	RightEye   BoneId = "rightEye"
	Jaw        BoneId = "jaw"

	LeftUpperLeg  BoneId = "leftUpperLeg"
	LeftLowerLeg  BoneId = "leftLowerLeg"
	LeftFoot      BoneId = "leftFoot"
	LeftToes      BoneId = "leftToes"
	RightUpperLeg BoneId = "rightUpperLeg"
	RightLowerLeg BoneId = "rightLowerLeg"
	RightFoot     BoneId = "rightFoot"
	RightToes     BoneId = "rightToes"

	LeftShoulder  BoneId = "leftShoulder"
	LeftUpperArm  BoneId = "leftUpperArm"
	LeftLowerArm  BoneId = "leftLowerArm"
	LeftHand      BoneId = "leftHand"
	RightShoulder BoneId = "rightShoulder"
	RightUpperArm BoneId = "rightUpperArm"
	RightLowerArm BoneId = "rightLowerArm"
	RightHand     BoneId = "rightHand"

	LeftThumbMetacarpal    BoneId = "leftThumbMetacarpal"
	LeftThumbProximal      BoneId = "leftThumbProximal"
	LeftThumbDistal        BoneId = "leftThumbDistal"
	LeftIndexProximal      BoneId = "leftIndexProximal"
	LeftIndexIntermediate  BoneId = "leftIndexIntermediate"
	LeftIndexDistal        BoneId = "leftIndexDistal"
	LeftMiddleProximal     BoneId = "leftMiddleProximal"
	LeftMiddleIntermediate BoneId = "leftMiddleIntermediate"
	LeftMiddleDistal       BoneId = "leftMiddleDistal"
	LeftRingProximal       BoneId = "leftRingProximal"
	LeftRingIntermediate   BoneId = "leftRingIntermediate"
	LeftRingDistal         BoneId = "leftRingDistal"
	LeftLittleProximal     BoneId = "leftLittleProximal"
	LeftLittleIntermediate BoneId = "leftLittleIntermediate"
	LeftLittleDistal       BoneId = "leftLittleDistal"

	RightThumbMetacarpal    BoneId = "rightThumbMetacarpal"
	RightThumbProximal      BoneId = "rightThumbProximal"
	RightThumbDistal        BoneId = "rightThumbDistal"
	RightIndexProximal      BoneId = "rightIndexProximal"
	RightIndexIntermediate  BoneId = "rightIndexIntermediate"
	RightIndexDistal        BoneId = "rightIndexDistal"
	RightMiddleProximal     BoneId = "rightMiddleProximal"
	RightMiddleIntermediate BoneId = "rightMiddleIntermediate"
	RightMiddleDistal       BoneId = "rightMiddleDistal"
	RightRingProximal       BoneId = "rightRingProximal"
	RightRingIntermediate   BoneId = "rightRingIntermediate"
	RightRingDistal         BoneId = "rightRingDistal"
	RightLittleProximal     BoneId = "rightLittleProximal"
	RightLittleIntermediate BoneId = "rightLittleIntermediate"
	RightLittleDistal       BoneId = "rightLittleDistal"
)

// RootBoneId はルートモーションを持てる唯一のボーンを表す。
const RootBoneId = Hips

// boneDefinition はボーン識別子と表示名の対応を表す。
type boneDefinition struct {
	Id           BoneId
	JapaneseName string
}

// boneDefinitions は登録順のボーン定義を保持する。
var boneDefinitions = []boneDefinition{
	{Id: Hips, JapaneseName: "下半身"},
	{Id: Spine, JapaneseName: "上半身"},
	{Id: Chest, JapaneseName: "上半身2"},
	{Id: UpperChest, JapaneseName: "上半身3"},
	{Id: Neck, JapaneseName: "首"},
	{Id: Head, JapaneseName: "頭"},
	{Id: LeftEye, JapaneseName: "左目"},
	{Id: RightEye, JapaneseName: "右目"},
	{Id: Jaw, JapaneseName: "あご"},
	{Id: LeftUpperLeg, JapaneseName: "左足"},
	{Id: LeftLowerLeg, JapaneseName: "左ひざ"},
	{Id: LeftFoot, JapaneseName: "左足首"},
	{Id: LeftToes, JapaneseName: "左つま先"},
	{Id: RightUpperLeg, JapaneseName: "右足"},
	{Id: RightLowerLeg, JapaneseName: "右ひざ"},
	{Id: RightFoot, JapaneseName: "右足首"},
	{Id: RightToes, JapaneseName: "右つま先"},
	{Id: LeftShoulder, JapaneseName: "左肩"},
	{Id: LeftUpperArm, JapaneseName: "左腕"},
	{Id: LeftLowerArm, JapaneseName: "左ひじ"},
	{Id: LeftHand, JapaneseName: "左手首"},
	{Id: RightShoulder, JapaneseName: "右肩"},
	{Id: RightUpperArm, JapaneseName: "右腕"},
	{Id: RightLowerArm, JapaneseName: "右ひじ"},
	{Id: RightHand, JapaneseName: "右手首"},
	{Id: LeftThumbMetacarpal, JapaneseName: "左親指０"},
	{Id: LeftThumbProximal, JapaneseName: "左親指１"},
	{Id: LeftThumbDistal, JapaneseName: "左親指２"},
	{Id: LeftIndexProximal, JapaneseName: "左人指１"},
	{Id: LeftIndexIntermediate, JapaneseName: "左人指２"},
	{Id: LeftIndexDistal, JapaneseName: "左人指３"},
	{Id: LeftMiddleProximal, JapaneseName: "左中指１"},
	{Id: LeftMiddleIntermediate, JapaneseName: "左中指２"},
	{Id: LeftMiddleDistal, JapaneseName: "左中指３"},
	{Id: LeftRingProximal, JapaneseName: "左薬指１"},
	{Id: LeftRingIntermediate, JapaneseName: "左薬指２"},
	{Id: LeftRingDistal, JapaneseName: "左薬指３"},
	{Id: LeftLittleProximal, JapaneseName: "左小指１"},
	{Id: LeftLittleIntermediate, JapaneseName: "左小指２"},
	{Id: LeftLittleDistal, JapaneseName: "左小指３"},
	{Id: RightThumbMetacarpal, JapaneseName: "右親指０"},
	{Id: RightThumbProximal, JapaneseName: "右親指１"},
	{Id: RightThumbDistal, JapaneseName: "右親指２"},
	{Id: RightIndexProximal, JapaneseName: "右人指１"},
	{Id: RightIndexIntermediate, JapaneseName: "右人指２"},
	{Id: RightIndexDistal, JapaneseName: "右人指３"},
	{Id: RightMiddleProximal, JapaneseName: "右中指１"},
	{Id: RightMiddleIntermediate, JapaneseName: "右中指２"},
	{Id: RightMiddleDistal, JapaneseName: "右中指３"},
	{Id: RightRingProximal, JapaneseName: "右薬指１"},
	{Id: RightRingIntermediate, JapaneseName: "右薬指２"},
	{Id: RightRingDistal, JapaneseName: "右薬指３"},
	{Id: RightLittleProximal, JapaneseName: "右小指１"},
	{Id: RightLittleIntermediate, JapaneseName: "右小指２"},
	{Id: RightLittleDistal, JapaneseName: "右小指３"},
}

// boneOrderById はボーン識別子から登録順indexへの辞書を保持する。
var boneOrderById = buildBoneOrderById()

// vrm0BoneAliases はVRM0の親指命名からVRM1識別子への対応を保持する。
var vrm0BoneAliases = map[string]BoneId{
	"leftThumbProximal":      LeftThumbMetacarpal,
	"leftThumbIntermediate":  LeftThumbProximal,
	"leftThumbDistal":        LeftThumbDistal,
	"rightThumbProximal":     RightThumbMetacarpal,
	"rightThumbIntermediate": RightThumbProximal,
	"rightThumbDistal":       RightThumbDistal,
}

// buildBoneOrderById は登録順辞書を構築する。
func buildBoneOrderById() map[BoneId]int {
	out := make(map[BoneId]int, len(boneDefinitions))
	for i, def := range boneDefinitions {
		out[def.Id] = i
	}
	return out
}

// IsValidBoneId は名前がhumanoidボーン識別子か判定する。
func IsValidBoneId(name string) bool {
	_, ok := boneOrderById[BoneId(name)]
	return ok
}

// ParseBoneId は名前をボーン識別子へ変換する。
func ParseBoneId(name string) (BoneId, bool) {
	if !IsValidBoneId(name) {
		return "", false
	}
	return BoneId(name), true
}

// ParseVrm0BoneId はVRM0 humanoid の名前をVRM1識別子へ変換する。
func ParseVrm0BoneId(name string) (BoneId, bool) {
	if alias, ok := vrm0BoneAliases[name]; ok {
		return alias, true
	}
	return ParseBoneId(name)
}

// BoneIds は登録順のボーン識別子一覧を返す。
func BoneIds() []BoneId {
	out := make([]BoneId, len(boneDefinitions))
	for i, def := range boneDefinitions {
		out[i] = def.Id
	}
	return out
}

// BoneCount は登録ボーン数を返す。
func BoneCount() int {
	return len(boneDefinitions)
}

// String は識別子文字列を返す。
func (id BoneId) String() string {
	return string(id)
}

// IsValid は識別子が登録済みか判定する。
func (id BoneId) IsValid() bool {
	return IsValidBoneId(string(id))
}

// IsRoot はルートボーンか判定する。
func (id BoneId) IsRoot() bool {
	return id == RootBoneId
}

// Order は登録順indexを返す。未登録は-1。
func (id BoneId) Order() int {
	order, ok := boneOrderById[id]
	if !ok {
		return -1
	}
	return order
}

// JapaneseName はMMD標準ボーン名を返す。未登録は識別子をそのまま返す。
func (id BoneId) JapaneseName() string {
	order := id.Order()
	if order < 0 {
		return string(id)
	}
	return boneDefinitions[order].JapaneseName
}
