package classifier

import (
	"strings"
	"unicode"
)

// maxTitleLength 标题长度上限（超长标题截断后参与匹配）
const maxTitleLength = 300

// normTitle 归一化标题的双重表示
// raw 用于容忍标点的子串匹配（如 `18"`），padded 用于字母数字词条的
// 整词边界匹配
type normTitle struct {
	raw    string // 小写、去首尾空白、截断
	padded string // 非字母数字连续段折叠为单个空格，两端补空格
}

// normalizeTitle 归一化变体标题（幂等）
func normalizeTitle(title string) normTitle {
	t := strings.ToLower(strings.TrimSpace(title))
	if r := []rune(t); len(r) > maxTitleLength {
		t = strings.TrimSpace(string(r[:maxTitleLength]))
	}
	return normTitle{raw: t, padded: padFold(t)}
}

// padFold 整词匹配表示：非字母数字一律视作分隔
func padFold(s string) string {
	var b strings.Builder
	b.WriteByte(' ')
	space := true
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			space = false
		} else if !space {
			b.WriteByte(' ')
			space = true
		}
	}
	if !space {
		b.WriteByte(' ')
	}
	return b.String()
}

// wordy 词条是否仅含字母数字与空格（可用整词边界匹配）
func wordy(tok string) bool {
	for _, r := range tok {
		if r != ' ' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// tokenMatches 单个 include/exclude 词条是否命中标题
// 纯字母数字词条走 padded 整词匹配，含标点词条走 raw 子串匹配
func tokenMatches(t normTitle, token string) bool {
	tok := strings.Join(strings.Fields(strings.ToLower(token)), " ")
	if tok == "" {
		return false
	}
	if wordy(tok) {
		return strings.Contains(t.padded, " "+tok+" ")
	}
	return strings.Contains(t.raw, tok)
}

// tokenSpecificity 词条特异度：去除全部空白后的字符长度
func tokenSpecificity(token string) int {
	n := 0
	for _, r := range strings.TrimSpace(token) {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n
}
