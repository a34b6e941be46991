package suggest

import (
	"fmt"
	"regexp"
	"strings"

	"vcp/catsync/internal/catconfig"
)

// maxAliasesPerRule 单条规则别名数上限
const maxAliasesPerRule = 25

// unicodeReplacer 破折号/弯引号归一到 ASCII 形态
var unicodeReplacer = strings.NewReplacer(
	"–", "-", // en dash
	"—", "-", // em dash
	"−", "-", // minus sign
	"“", `"`,
	"”", `"`,
	"‘", "'",
	"’", "'",
)

// lengthToken 数值 + 长度单位（18", 18 inch, 46cm ...）
var lengthToken = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*("|”|''|inches|inch|in|cm|mm)`)

// metalToken 金属成色记法（14ct / 14 ct）
var metalToken = regexp.MustCompile(`(\d+)\s*(ct|k)\b`)

// parenSegment 括号附注
var parenSegment = regexp.MustCompile(`\s*\([^)]*\)`)

// AliasVariants 由观测到的选项值生成规则 include 别名
// 从字面值出发，叠加 unicode 归一、长度单位展开、金属记法互换、
// 去括号等拼写变体；大小写不敏感去重并截断
func AliasVariants(value string, lengthLike bool) []string {
	base := catconfig.FoldTitle(value)
	if base == "" {
		return nil
	}

	candidates := []string{base}

	ascii := catconfig.FoldTitle(unicodeReplacer.Replace(base))
	candidates = append(candidates, ascii)

	if lengthLike || lengthToken.MatchString(ascii) {
		candidates = append(candidates, unitSpellings(ascii)...)
	}

	candidates = append(candidates, metalSpellings(ascii)...)

	if stripped := catconfig.FoldTitle(parenSegment.ReplaceAllString(ascii, " ")); stripped != "" {
		candidates = append(candidates, stripped)
	}

	seen := make(map[string]bool, len(candidates))
	var out []string
	for _, c := range candidates {
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
		if len(out) >= maxAliasesPerRule {
			break
		}
	}
	return out
}

// unitSpellings 把数值+单位展开为等价拼写族
func unitSpellings(s string) []string {
	m := lengthToken.FindStringSubmatch(s)
	if m == nil {
		return nil
	}
	num, unit := m[1], m[2]

	switch unit {
	case `"`, "”", "''", "in", "inch", "inches":
		return []string{
			fmt.Sprintf(`%s"`, num),
			fmt.Sprintf("%sin", num),
			fmt.Sprintf("%s in", num),
			fmt.Sprintf("%s inch", num),
			fmt.Sprintf("%s inches", num),
			fmt.Sprintf("%sinches", num),
		}
	case "cm", "mm":
		return []string{
			fmt.Sprintf("%s%s", num, unit),
			fmt.Sprintf("%s %s", num, unit),
		}
	}
	return nil
}

// metalSpellings 金属成色记法互换（14ct ↔ 14 ct）
func metalSpellings(s string) []string {
	m := metalToken.FindStringSubmatch(s)
	if m == nil {
		return nil
	}
	num, unit := m[1], m[2]
	return []string{
		fmt.Sprintf("%s%s", num, unit),
		fmt.Sprintf("%s %s", num, unit),
	}
}

// pluralize 朴素英文复数（建议表名用）
func pluralize(s string) string {
	switch {
	case s == "":
		return s
	case strings.HasSuffix(s, "s"), strings.HasSuffix(s, "x"), strings.HasSuffix(s, "ch"), strings.HasSuffix(s, "sh"):
		return s + "es"
	case strings.HasSuffix(s, "y") && len(s) > 1 && !strings.ContainsRune("aeiou", rune(s[len(s)-2])):
		return s[:len(s)-1] + "ies"
	default:
		return s + "s"
	}
}

// titleCase 单词首字母大写（表名展示用）
func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
