package wizard

import "strings"

// ── 入库前的字段归一化 ──
//
// 仅对特定标识字段做大小写/空白归一化，不做其他隐式转换：
//   - 人名字段：首字母大写（title case）
//   - 代码字段（PAN/IFSC/UAN 等）：去空白 + 大写

// normalizeName 去除首尾空白并将每个单词首字母大写
func normalizeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(strings.ToLower(w))
		r[0] = []rune(strings.ToUpper(string(r[0])))[0]
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

// normalizeCode 去除所有空白并转为大写
func normalizeCode(s string) string {
	return strings.ToUpper(strings.Join(strings.Fields(s), ""))
}

// normalizeDigits 去除所有空白（数字型标识字段）
func normalizeDigits(s string) string {
	return strings.Join(strings.Fields(s), "")
}
