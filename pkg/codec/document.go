// Package codec 在内存中的页面模型与 .hsp 文件的位置数组格式之间转换
//
// 文件是一个 JSON 对象：
//
//	{"flag":true,"size":[rows,21,21],"data":[[header,line,line,...,0,0],...]}
//
// data 的每一行对应一个元素，第 0 行固定是 Webpage。
// 行内第一个单元格是定义头 [type, id, name]，其后每个单元格是一个事件行，
// 属性完全由列下标决定；不足 21 个单元格的部分用 0 占位。
package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// RowWidth 每行固定的单元格数
const RowWidth = 21

// Document 文件的顶层结构
type Document struct {
	Flag bool     `json:"flag"`
	Size [3]int   `json:"size"`
	Data [][]Cell `json:"data"`
}

// Cell 一个单元格：字符串数组，或空占位（nil）
//
// 写出时空占位编码为 0；读取时 0 和 null 都视为空占位。
// 数组中的数字会按原样转换为字符串。
type Cell []string

// MarshalJSON 实现 json.Marshaler
func (c Cell) MarshalJSON() ([]byte, error) {
	if c == nil {
		return []byte("0"), nil
	}
	return json.Marshal([]string(c))
}

// UnmarshalJSON 实现 json.Unmarshaler
func (c *Cell) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '[' {
		// 0 / null / 其它标量都是空占位
		*c = nil
		return nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("cell: %w", err)
	}

	out := make(Cell, len(raw))
	for i, r := range raw {
		s, err := cellString(r)
		if err != nil {
			return fmt.Errorf("cell[%d]: %w", i, err)
		}
		out[i] = s
	}
	*c = out
	return nil
}

func cellString(r json.RawMessage) (string, error) {
	r = bytes.TrimSpace(r)
	if len(r) == 0 {
		return "", nil
	}
	switch r[0] {
	case '"':
		var s string
		err := json.Unmarshal(r, &s)
		return s, err
	case 'n':
		return "", nil
	case 't':
		return "1", nil
	case 'f':
		return "0", nil
	default:
		var n json.Number
		if err := json.Unmarshal(r, &n); err != nil {
			return "", err
		}
		return n.String(), nil
	}
}

// blank 事件行是否为空（结束一个元素的事件列表）
func (c Cell) blank() bool {
	return len(c) == 0 || c[0] == ""
}

// col 读取第 i 列，越界时返回空字符串
func (c Cell) col(i int) string {
	if i < 0 || i >= len(c) {
		return ""
	}
	return c[i]
}

// atoi 无效数字视为 0
func atoi(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil {
			return 0
		}
		return int(f)
	}
	return v
}

// atoiOr 无效数字时返回 fallback
func atoiOr(s string, fallback int) int {
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return fallback
}

func atof(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func itoa(v int) string { return strconv.Itoa(v) }

func btoa(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func atob(s string) bool { return atoi(s) != 0 }
