package catconfig

import (
	"fmt"
	"strings"
)

// ValidationError 保存期结构校验错误（硬阻断，调用方必须拒绝写入）
type ValidationError struct {
	TableID string `json:"table_id,omitempty"`
	RuleID  string `json:"rule_id,omitempty"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error 实现 error 接口
func (e ValidationError) Error() string {
	var b strings.Builder
	if e.TableID != "" {
		fmt.Fprintf(&b, "table %q: ", e.TableID)
	}
	if e.RuleID != "" {
		fmt.Fprintf(&b, "rule %q: ", e.RuleID)
	}
	fmt.Fprintf(&b, "%s: %s", e.Field, e.Message)
	return b.String()
}

// ValidateForSave 保存期结构校验
// 读取期归一化对持久化文档是宽容的（坏文档降级可读），写入则必须
// 结构正确：任何返回的错误都应阻断保存
func ValidateForSave(cfg *VariantsConfig) []ValidationError {
	var errs []ValidationError

	if cfg == nil {
		return append(errs, ValidationError{Field: "config", Message: "config document is required"})
	}
	if cfg.Version != ConfigVersion {
		errs = append(errs, ValidationError{
			Field:   "version",
			Message: fmt.Sprintf("unsupported version %d, want %d", cfg.Version, ConfigVersion),
		})
	}

	seenTable := make(map[string]bool)
	for _, t := range cfg.Tables {
		if strings.TrimSpace(t.Name) == "" {
			errs = append(errs, ValidationError{TableID: t.ID, Field: "name", Message: "table name is required"})
		}
		if strings.TrimSpace(t.ID) == "" {
			errs = append(errs, ValidationError{TableID: t.ID, Field: "id", Message: "table id is required"})
		} else if seenTable[t.ID] {
			errs = append(errs, ValidationError{TableID: t.ID, Field: "id", Message: "duplicate table id"})
		}
		seenTable[t.ID] = true

		seenRule := make(map[string]bool)
		for _, r := range t.Rules {
			if strings.TrimSpace(r.ID) == "" {
				errs = append(errs, ValidationError{TableID: t.ID, RuleID: r.ID, Field: "id", Message: "rule id is required"})
			} else if seenRule[r.ID] {
				errs = append(errs, ValidationError{TableID: t.ID, RuleID: r.ID, Field: "id", Message: "duplicate rule id"})
			}
			seenRule[r.ID] = true

			if countNonEmpty(r.Include) == 0 {
				errs = append(errs, ValidationError{
					TableID: t.ID, RuleID: r.ID,
					Field:   "include",
					Message: "rule requires at least one include token",
				})
			}
		}
	}

	return errs
}

// countNonEmpty 统计非空词条数
func countNonEmpty(in []string) int {
	n := 0
	for _, s := range in {
		if strings.TrimSpace(s) != "" {
			n++
		}
	}
	return n
}
