package classifier

import (
	"regexp"
	"strings"

	"vcp/catsync/internal/catconfig"
)

// tableKind 表的类别域，由表 id/名称/别名中的关键词判定
type tableKind int

const (
	kindGeneric tableKind = iota
	kindLength
	kindStyle
	kindFinish
)

// lengthPattern 长度值：数字（可带小数、可为区间）+ 单位
// 覆盖 `18"`、`18 inch`、`18in`、`46cm`、`5mm`、`16-18 inches` 等写法
var lengthPattern = regexp.MustCompile(`\d+(?:\.\d+)?\s*(?:-\s*\d+(?:\.\d+)?\s*)?(?:"|''|inches\b|inch\b|in\b|cm\b|mm\b)`)

// finishKeywords 材质/镀层域关键词
var finishKeywords = []string{"gold", "silver", "vermeil", "sterling", "solid"}

// kindOf 判定表的类别域
func kindOf(table *catconfig.Table) tableKind {
	probe := strings.ToLower(table.ID + " " + table.Name + " " + strings.Join(table.Aliases, " "))
	switch {
	case strings.Contains(probe, "length"):
		return kindLength
	case strings.Contains(probe, "style"):
		return kindStyle
	case strings.Contains(probe, "finish"), strings.Contains(probe, "metal"):
		return kindFinish
	default:
		return kindGeneric
	}
}

// inScope 范围门控：判断标题是否属于该表的类别域
// 已配置规则的 include 命中时无条件通过（配置优先于启发式），否则按
// 表类别域做结构启发式判断；未通过门控的标题判为 out_of_scope，
// 避免无关类别（颜色、字母尺码等）污染 unmapped 诊断
func inScope(table *catconfig.Table, t normTitle) bool {
	for i := range table.Rules {
		for _, tok := range table.Rules[i].Include {
			if tokenMatches(t, tok) {
				return true
			}
		}
	}

	switch kindOf(table) {
	case kindLength:
		return lengthPattern.MatchString(t.raw)
	case kindStyle:
		return strings.Contains(t.padded, " style ")
	case kindFinish:
		for _, kw := range finishKeywords {
			if strings.Contains(t.padded, " "+kw+" ") {
				return true
			}
		}
		return false
	default:
		return true
	}
}
