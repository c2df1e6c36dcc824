package types

// LawBroken 违反的 HypnoSpace 法规类别
// 内部用 -1 表示“无”，1~6 为六个类别
type LawBroken int

const (
	// LawNone 未违反任何法规
	LawNone LawBroken = -1

	LawContent   LawBroken = 1 // C: Content Infringement
	LawHarass    LawBroken = 2 // H: Harassment
	LawIllegal   LawBroken = 3 // I: Illegal or Profane Activity
	LawMalicious LawBroken = 4 // M: Malicious Software
	LawCommerce  LawBroken = 5 // E: Extralegal Commerce
	LawEvidence  LawBroken = 6 // S: Submit Evidence
)

// AllLaws 按界面顺序列出所有可选值（包含 LawNone）
var AllLaws = []LawBroken{LawNone, LawContent, LawHarass, LawIllegal, LawMalicious, LawCommerce, LawEvidence}

// ParseLawBroken 读取文件中的整数
// 0、-1 以及任何超出范围的值都视为 LawNone
func ParseLawBroken(v int) LawBroken {
	if v < int(LawContent) || v > int(LawEvidence) {
		return LawNone
	}
	return LawBroken(v)
}

// IsNone 是否为“无”
func (l LawBroken) IsNone() bool {
	return l == LawNone
}

// Code 返回单字母代码，LawNone 返回空字符串
func (l LawBroken) Code() string {
	switch l {
	case LawContent:
		return "C"
	case LawHarass:
		return "H"
	case LawIllegal:
		return "I"
	case LawMalicious:
		return "M"
	case LawCommerce:
		return "E"
	case LawEvidence:
		return "S"
	default:
		return ""
	}
}

// String 返回界面显示用的标签
func (l LawBroken) String() string {
	switch l {
	case LawContent:
		return "C: Content Infringement"
	case LawHarass:
		return "H: Harassment"
	case LawIllegal:
		return "I: Illegal or Profane Activity"
	case LawMalicious:
		return "M: Malicious Software"
	case LawCommerce:
		return "E: Extralegal Commerce"
	case LawEvidence:
		return "S: Submit Evidence"
	default:
		return "None"
	}
}
