package schema

import (
	"fmt"
	"strings"
)

// Column 声明一个语义字段：字段名、表头单元格与默认值。
// 列的物理位置由其在 Table.Columns 中的声明顺序决定（1 起始）。
type Column struct {
	Name    string
	Header  string
	Default string
}

// Table 描述一张工作表的完整列布局。
// Key 是用于行定位的语义字段名（目前均为 email / key）。
type Table struct {
	Name    string
	Key     string
	Columns []Column
}

// Normalize 统一表头与键值的比较口径：去空白并小写。
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Width 返回声明的列数。
func (t *Table) Width() int { return len(t.Columns) }

// Position 按声明顺序解析字段的物理列号（1 起始）。
func (t *Table) Position(name string) (int, bool) {
	for i, col := range t.Columns {
		if col.Name == name {
			return i + 1, true
		}
	}
	return 0, false
}

// Headers 返回声明的表头行，供建表时写入。
func (t *Table) Headers() []string {
	headers := make([]string, 0, len(t.Columns))
	for _, col := range t.Columns {
		headers = append(headers, col.Header)
	}
	return headers
}

// Resolver 把语义字段名映射到物理列号。
// 两种构建方式：按声明位置（表头缺失/不可靠时），或按归一化后的实际表头。
type Resolver struct {
	byName map[string]int
}

// PositionalResolver 按声明顺序构建解析器，列序固定由约定保证。
func (t *Table) PositionalResolver() *Resolver {
	byName := make(map[string]int, len(t.Columns))
	for i, col := range t.Columns {
		byName[col.Name] = i + 1
	}
	return &Resolver{byName: byName}
}

// HeaderResolver 按实际表头行构建解析器。
// 表头先归一化再比对，因此对列顺序调整与大小写/空白差异保持稳定。
// 实际表头中找不到的字段视为“尚未开通”，Lookup 时返回 false。
func (t *Table) HeaderResolver(headers []string) *Resolver {
	position := make(map[string]int, len(headers))
	for i, h := range headers {
		normalized := Normalize(h)
		if normalized == "" {
			continue
		}
		if _, ok := position[normalized]; !ok {
			position[normalized] = i + 1
		}
	}

	byName := make(map[string]int, len(t.Columns))
	for _, col := range t.Columns {
		if pos, ok := position[Normalize(col.Header)]; ok {
			byName[col.Name] = pos
		}
	}
	return &Resolver{byName: byName}
}

// Lookup 返回字段的物理列号；字段未开通时 ok 为 false。
func (r *Resolver) Lookup(name string) (int, bool) {
	pos, ok := r.byName[name]
	return pos, ok
}

// Missing 返回声明里有、但解析器中不存在的字段名，供启动时记录日志。
// 缺列不视为错误：部署的表结构会随版本逐步增列。
func (t *Table) Missing(r *Resolver) []string {
	var missing []string
	for _, col := range t.Columns {
		if _, ok := r.Lookup(col.Name); !ok {
			missing = append(missing, col.Name)
		}
	}
	return missing
}

// Default 返回字段的声明默认值。
func (t *Table) Default(name string) string {
	for _, col := range t.Columns {
		if col.Name == name {
			return col.Default
		}
	}
	return ""
}

// NewRow 生成一行完整宽度的值：先填默认值，再套用 overrides。
// overrides 中不认识的字段名返回错误，避免拼错字段悄悄丢数据。
func (t *Table) NewRow(overrides map[string]string) ([]string, error) {
	row := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		row[i] = col.Default
	}
	for name, value := range overrides {
		pos, ok := t.Position(name)
		if !ok {
			return nil, fmt.Errorf("unknown field %q for table %q", name, t.Name)
		}
		row[pos-1] = value
	}
	return row, nil
}
