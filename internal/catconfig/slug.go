package catconfig

import (
	"fmt"
	"strings"
)

// maxSlugLength slug 长度上限
const maxSlugLength = 40

// Slugify 将名称转换为稳定 slug（小写字母数字 + 连字符，截断）
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))

	var b strings.Builder
	dash := true
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		default:
			if !dash {
				b.WriteByte('-')
				dash = true
			}
		}
	}

	out := strings.Trim(b.String(), "-")
	if len(out) > maxSlugLength {
		out = strings.Trim(out[:maxSlugLength], "-")
	}
	return out
}

// SlugPool slug 去重池（冲突时追加数字后缀）
type SlugPool struct {
	used map[string]bool
}

// NewSlugPool 创建 slug 去重池
func NewSlugPool() *SlugPool {
	return &SlugPool{used: make(map[string]bool)}
}

// Reserve 登记已占用的 slug
func (p *SlugPool) Reserve(slug string) {
	p.used[slug] = true
}

// Has 判断 slug 是否已占用
func (p *SlugPool) Has(slug string) bool {
	return p.used[slug]
}

// Take 获取唯一 slug；base 为空时使用 fallback
func (p *SlugPool) Take(base, fallback string) string {
	if base == "" {
		base = fallback
	}
	if base == "" {
		base = "item"
	}
	if !p.used[base] {
		p.used[base] = true
		return base
	}
	for i := 2; ; i++ {
		cand := fmt.Sprintf("%s-%d", base, i)
		if !p.used[cand] {
			p.used[cand] = true
			return cand
		}
	}
}

// FoldSpace 压缩空白（任意空白序列折叠为单个空格并去首尾）
func FoldSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// FoldTitle 忽略标题比较键（小写 + 空白折叠）
// ignored 列表与观测标题都经此折叠后做精确比较
func FoldTitle(s string) string {
	return FoldSpace(strings.ToLower(s))
}
