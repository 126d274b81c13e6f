package sheetstore

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/xuri/excelize/v2"

	"hiregate/internal/schema"
)

// ExcelStore 用 xlsx 工作簿承载三张表。
// 工作簿是多会话共享的唯一资源，进程内用互斥锁串行化读改写窗口；
// 跨进程没有额外一致性保证，最后完成的写入获胜。
type ExcelStore struct {
	path            string
	resolveByHeader bool
	logger          *slog.Logger

	mu sync.Mutex
}

// Option 配置 ExcelStore。
type Option func(*ExcelStore)

// WithPositionalResolution 关闭按表头解析，退回声明位置约定。
// 用于表头缺失或不可靠的旧工作簿。
func WithPositionalResolution() Option {
	return func(s *ExcelStore) { s.resolveByHeader = false }
}

// NewExcelStore 构造工作簿存储。
func NewExcelStore(path string, logger *slog.Logger, opts ...Option) *ExcelStore {
	if logger == nil {
		logger = slog.Default()
	}
	s := &ExcelStore{
		path:            path,
		resolveByHeader: true,
		logger:          logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateWorkbook 建立一个带表头行的空工作簿。
// 目标文件已存在时直接覆盖由调用方负责避免。
func CreateWorkbook(path string, tables ...*schema.Table) error {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	for _, t := range tables {
		if _, err := f.NewSheet(t.Name); err != nil {
			return fmt.Errorf("create sheet %q: %w", t.Name, err)
		}
		headers := make([]interface{}, 0, t.Width())
		for _, h := range t.Headers() {
			headers = append(headers, h)
		}
		if err := f.SetSheetRow(t.Name, "A1", &headers); err != nil {
			return fmt.Errorf("write header row for %q: %w", t.Name, err)
		}
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("drop default sheet: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook %q: %w", path, err)
	}
	return nil
}

// LoadTable 实现 Store。
func (s *ExcelStore) LoadTable(ctx context.Context, table *schema.Table) ([]Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadTableLocked(ctx, table)
}

func (s *ExcelStore) loadTableLocked(ctx context.Context, table *schema.Table) ([]Row, error) {
	const op = "load_table"
	if err := ctx.Err(); err != nil {
		return nil, newError(KindUnreachable, op, table.Name, err)
	}

	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, newError(KindUnreachable, op, table.Name, err)
	}
	defer func() {
		_ = f.Close()
	}()

	rows, err := f.GetRows(table.Name)
	if err != nil {
		return nil, newError(KindInvalid, op, table.Name, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	resolver := s.resolver(table, rows[0])
	result := make([]Row, 0, len(rows)-1)
	for i, raw := range rows[1:] {
		result = append(result, materializeRow(table, resolver, raw, i+2))
	}
	return result, nil
}

// FindRow 实现 Store。
func (s *ExcelStore) FindRow(ctx context.Context, table *schema.Table, keyValue string) (Row, error) {
	const op = "find_row"

	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.loadTableLocked(ctx, table)
	if err != nil {
		return Row{}, err
	}

	want := schema.Normalize(keyValue)
	for _, row := range rows {
		if schema.Normalize(row.Get(table.Key)) == want {
			return row, nil
		}
	}
	return Row{}, newError(KindNotFound, op, table.Name, fmt.Errorf("no row with %s=%q", table.Key, keyValue))
}

// WriteFields 实现 Store：整行读出、覆盖、整行写回，单次落盘。
func (s *ExcelStore) WriteFields(ctx context.Context, table *schema.Table, rowIndex int, fields map[string]string) error {
	const op = "write_fields"

	s.mu.Lock()
	defer s.mu.Unlock()

	if rowIndex < 2 {
		return newError(KindInvalid, op, table.Name, fmt.Errorf("row index %d is not a data row", rowIndex))
	}
	if err := ctx.Err(); err != nil {
		return newError(KindUnreachable, op, table.Name, err)
	}

	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return newError(KindUnreachable, op, table.Name, err)
	}
	defer func() {
		_ = f.Close()
	}()

	rows, err := f.GetRows(table.Name)
	if err != nil {
		return newError(KindInvalid, op, table.Name, err)
	}
	if rowIndex > len(rows) {
		return newError(KindNotFound, op, table.Name, fmt.Errorf("row %d beyond table end %d", rowIndex, len(rows)))
	}

	var headers []string
	if len(rows) > 0 {
		headers = rows[0]
	}
	resolver := s.resolver(table, headers)

	current := make([]string, table.Width())
	copy(current, rows[rowIndex-1])

	for name, value := range fields {
		pos, ok := resolver.Lookup(name)
		if !ok {
			// 尚未开通的列：跳过写入是既定策略，但必须留下日志。
			s.logger.Warn("skip write to unprovisioned column",
				slog.String("table", table.Name),
				slog.String("field", name),
			)
			continue
		}
		if pos > len(current) {
			grown := make([]string, pos)
			copy(grown, current)
			current = grown
		}
		current[pos-1] = value
	}

	out := make([]interface{}, len(current))
	for i, v := range current {
		out[i] = v
	}
	cell, err := excelize.CoordinatesToCellName(1, rowIndex)
	if err != nil {
		return newError(KindInvalid, op, table.Name, err)
	}
	if err := f.SetSheetRow(table.Name, cell, &out); err != nil {
		return newError(KindUnreachable, op, table.Name, err)
	}
	if err := f.Save(); err != nil {
		return newError(KindUnreachable, op, table.Name, err)
	}
	return nil
}

// AppendRow 实现 Store。
func (s *ExcelStore) AppendRow(ctx context.Context, table *schema.Table, values []string) error {
	const op = "append_row"

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return newError(KindUnreachable, op, table.Name, err)
	}
	if len(values) > table.Width() {
		return newError(KindInvalid, op, table.Name,
			fmt.Errorf("got %d values for %d declared columns", len(values), table.Width()))
	}

	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return newError(KindUnreachable, op, table.Name, err)
	}
	defer func() {
		_ = f.Close()
	}()

	rows, err := f.GetRows(table.Name)
	if err != nil {
		return newError(KindInvalid, op, table.Name, err)
	}

	padded := make([]string, table.Width())
	copy(padded, values)
	out := make([]interface{}, len(padded))
	for i, v := range padded {
		out[i] = v
	}

	cell, err := excelize.CoordinatesToCellName(1, len(rows)+1)
	if err != nil {
		return newError(KindInvalid, op, table.Name, err)
	}
	if err := f.SetSheetRow(table.Name, cell, &out); err != nil {
		return newError(KindUnreachable, op, table.Name, err)
	}
	if err := f.Save(); err != nil {
		return newError(KindUnreachable, op, table.Name, err)
	}
	return nil
}

// ValidateHeaders 对照声明布局检查实际表头，返回尚未开通的字段名。
// 只在启动时调用一次并记录日志，不阻断启动。
func (s *ExcelStore) ValidateHeaders(ctx context.Context, table *schema.Table) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, newError(KindUnreachable, "validate_headers", table.Name, err)
	}

	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, newError(KindUnreachable, "validate_headers", table.Name, err)
	}
	defer func() {
		_ = f.Close()
	}()

	rows, err := f.GetRows(table.Name)
	if err != nil {
		return nil, newError(KindInvalid, "validate_headers", table.Name, err)
	}
	var headers []string
	if len(rows) > 0 {
		headers = rows[0]
	}
	return table.Missing(s.resolver(table, headers)), nil
}

func (s *ExcelStore) resolver(table *schema.Table, headers []string) *schema.Resolver {
	if s.resolveByHeader {
		return table.HeaderResolver(headers)
	}
	return table.PositionalResolver()
}

func materializeRow(table *schema.Table, resolver *schema.Resolver, raw []string, index int) Row {
	values := make(map[string]string, table.Width())
	for _, col := range table.Columns {
		pos, ok := resolver.Lookup(col.Name)
		if !ok || pos > len(raw) {
			values[col.Name] = ""
			continue
		}
		values[col.Name] = raw[pos-1]
	}
	return Row{Index: index, Values: values}
}
