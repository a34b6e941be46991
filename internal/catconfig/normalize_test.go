package catconfig

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeFallback(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr error
	}{
		{"empty document", "", ErrEmptyDocument},
		{"whitespace only", "   \n\t", ErrEmptyDocument},
		{"malformed json", "{not json", ErrMalformedDocument},
		{"non-document payload", `"just a string"`, ErrMalformedDocument},
		{"version mismatch", `{"version": 1, "tables": []}`, ErrVersionMismatch},
		{"missing version", `{"tables": []}`, ErrVersionMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Normalize(json.RawMessage(tt.raw))
			require.NotNil(t, cfg)
			assert.True(t, errors.Is(err, tt.wantErr))

			// 回退为默认空配置
			assert.Equal(t, ConfigVersion, cfg.Version)
			assert.Empty(t, cfg.Tables)
		})
	}
}

func TestNormalizeWellFormed(t *testing.T) {
	raw := json.RawMessage(`{
		"version": 2,
		"tables": [
			{"id": "", "name": "Finishes", "enabled": true, "order": 1,
			 "rules": [
				{"id": "", "label": "Gold", "include": ["gold", "18k gold"]},
				{"id": "", "label": "Gold", "include": ["gold vermeil"]},
				{"id": "", "label": "Empty", "include": []}
			 ]},
			{"id": "finishes", "name": "Duplicate", "enabled": true, "order": 2, "rules": []}
		]
	}`)

	cfg, err := Normalize(raw)
	require.NoError(t, err)
	require.Len(t, cfg.Tables, 1, "duplicate table id dropped, first wins")

	table := cfg.Tables[0]
	assert.Equal(t, "finishes", table.ID)
	assert.Equal(t, "Finishes", table.Name)

	// 无 include 的规则被丢弃，重名规则 id 追加数字后缀
	require.Len(t, table.Rules, 2)
	assert.Equal(t, "gold", table.Rules[0].ID)
	assert.Equal(t, "gold-2", table.Rules[1].ID)
}

func TestNormalizeConfigIdempotent(t *testing.T) {
	doc := &VariantsConfig{
		Version: ConfigVersion,
		Tables: []Table{
			{Name: "  Necklace   Lengths ", Enabled: true, Order: 3,
				Aliases: []string{" LENGTH ", "length", ""},
				Ignored: []string{"Default  Title", "default title"},
				Rules: []Rule{
					{Label: "18 inch", Include: []string{` 18" `, `18"`, "18 INCH"}},
				}},
			{Name: "Styles", Enabled: true, Order: 1,
				Rules: []Rule{{Label: "Style 1", Include: []string{"style 1"}}}},
		},
	}

	once := NormalizeConfig(doc)
	twice := NormalizeConfig(once)
	assert.Equal(t, once, twice)

	// 表按 order 排序
	require.Len(t, once.Tables, 2)
	assert.Equal(t, "styles", once.Tables[0].ID)
	assert.Equal(t, "necklace-lengths", once.Tables[1].ID)

	// 列表折叠去重
	lengths := once.Tables[1]
	assert.Equal(t, []string{"length"}, lengths.Aliases)
	assert.Equal(t, []string{"default title"}, lengths.Ignored)
	assert.Equal(t, []string{`18"`, "18 inch"}, lengths.Rules[0].Include)
}

func TestNormalizeConfigNilAndCaps(t *testing.T) {
	assert.Equal(t, DefaultConfig(), NormalizeConfig(nil))

	long := strings.Repeat("x", 300)
	doc := &VariantsConfig{
		Version: ConfigVersion,
		Tables: []Table{
			{Name: "T", Enabled: true, Rules: []Rule{{Label: "r", Include: []string{long}}}},
		},
	}
	out := NormalizeConfig(doc)
	require.Len(t, out.Tables[0].Rules, 1)
	assert.LessOrEqual(t, len([]rune(out.Tables[0].Rules[0].Include[0])), maxEntryLength)
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Necklace Lengths", "necklace-lengths"},
		{"  Fancy -- Name!  ", "fancy-name"},
		{"___", ""},
		{strings.Repeat("a", 60), strings.Repeat("a", maxSlugLength)},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.in), "Slugify(%q)", tt.in)
	}
}

func TestSlugPoolTake(t *testing.T) {
	pool := NewSlugPool()
	assert.Equal(t, "gold", pool.Take("gold", "rule-0"))
	assert.Equal(t, "gold-2", pool.Take("gold", "rule-1"))
	assert.Equal(t, "gold-3", pool.Take("gold", "rule-2"))
	assert.Equal(t, "rule-3", pool.Take("", "rule-3"))
}
