package codec

// Text 事件行各列
const (
	textEvent = iota
	textXOffset
	textY
	textWidth
	textCaseTag
	textString
	textFontColor
	textFontFamily
	textFontStyle
	textAlign
	textScript
	textLaw
	textAnimation
	textAnimationSpeed
	textFadeColor
	textFadeSpeed
	textNoContent

	textColumns
)

// Gif 事件行各列
const (
	gifEvent = iota
	gifX
	gifY
	gifHSL
	gifCaseTag
	gifImage
	gifScale
	gifRotation
	gifMirror
	gifFlip
	gifScript
	gifLaw
	gifFlip3DX
	gifFlip3DY
	gifFade
	gifTurn
	gifTurnSpeed
	gifFPS // 未使用，总是写 "0"
	gifFrameOffset
	gifSync
	gifPlayback

	gifColumns
)

// Webpage 事件行各列
const (
	pageEvent = iota
	pageTitle
	pageOwner
	pageRowCount
	pageMusic
	pageBackground
	pageMouseFX
	pageBackgroundColor
	pageDescription
	pageStyle
	pageIsHome
	pageOnLoadScript

	pageColumns
)

// 定义头各列
const (
	headerType = iota
	headerID
	headerName
)

// 缺省值在文件中的写法；读取时 "0"、"-1" 和空字符串都表示缺省
const absent = "-1"

func isAbsent(s string) bool {
	return s == "" || s == "0" || s == "-1"
}
