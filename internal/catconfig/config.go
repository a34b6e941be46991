package catconfig

// ConfigVersion 当前配置文档版本
// 版本不匹配的持久化文档在读取时回退为默认空配置
const ConfigVersion = 2

// 归一化上限
const (
	maxTables        = 50
	maxRulesPerTable = 200
	maxListEntries   = 100
	maxEntryLength   = 120
)

// VariantsConfig 变体分类配置文档
// 操作者编辑、外部持久化，单次计算内视为不可变
type VariantsConfig struct {
	Version int     `json:"version"`
	Tables  []Table `json:"tables"`
}

// Table 报表分类表（如 Finishes / Lengths / Styles）
type Table struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Enabled bool     `json:"enabled"`
	Order   int      `json:"order"`
	Aliases []string `json:"aliases,omitempty"`
	Icon    string   `json:"icon,omitempty"`
	Rules   []Rule   `json:"rules"`
	Ignored []string `json:"ignored,omitempty"` // 精确标题黑名单（大小写/空白折叠后比较）
}

// Rule 分类规则（include/exclude 词表，纯数据，无类型层级）
type Rule struct {
	ID      string   `json:"id"`
	Label   string   `json:"label"`
	Include []string `json:"include"`
	Exclude []string `json:"exclude,omitempty"`
}

// DefaultConfig 默认空配置
func DefaultConfig() *VariantsConfig {
	return &VariantsConfig{Version: ConfigVersion}
}

// FindTable 按 id 查找表
func (c *VariantsConfig) FindTable(id string) *Table {
	for i := range c.Tables {
		if c.Tables[i].ID == id {
			return &c.Tables[i]
		}
	}
	return nil
}

// FindRule 按 id 查找规则
func (t *Table) FindRule(id string) *Rule {
	for i := range t.Rules {
		if t.Rules[i].ID == id {
			return &t.Rules[i]
		}
	}
	return nil
}
