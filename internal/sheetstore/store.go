package sheetstore

import (
	"context"
	"errors"
	"fmt"

	"hiregate/internal/schema"
)

// Kind 划分存储层错误类别，调用方按类别自行决定降级策略，
// 而不是在适配层把所有失败压平成“空结果”。
type Kind int

const (
	KindUnreachable Kind = iota + 1
	KindNotFound
	KindConflict
	KindInvalid
)

func (k Kind) String() string {
	switch k {
	case KindUnreachable:
		return "unreachable"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// Error 携带错误类别与出错的表/操作信息。
type Error struct {
	Kind  Kind
	Op    string
	Table string
	Err   error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s %s: %s", e.Op, e.Table, e.Kind)
	}
	return fmt.Sprintf("%s %s: %s: %v", e.Op, e.Table, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind Kind, op, table string, err error) *Error {
	return &Error{Kind: kind, Op: op, Table: table, Err: err}
}

// KindOf 提取错误类别；非本包错误返回 0。
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// IsNotFound 判断错误是否为“记录不存在”。
func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }

// IsUnreachable 判断错误是否为“后端不可达”。
func IsUnreachable(err error) bool { return KindOf(err) == KindUnreachable }

// IsConflict 判断错误是否为“记录已存在”。
func IsConflict(err error) bool { return KindOf(err) == KindConflict }

// Row 是按字段名物化后的一行数据。
// Index 是该行在工作表中的行号（表头为第 1 行，数据从第 2 行起），
// 供 WriteFields 做读改写时定位。
type Row struct {
	Index  int
	Values map[string]string
}

// Get 返回字段值；未开通的字段一律返回空串。
func (r Row) Get(name string) string { return r.Values[name] }

// Store 是表格后端的统一访问接口。
type Store interface {
	// LoadTable 读取整张表，表头归一化后按字段名物化为 Row 列表。
	LoadTable(ctx context.Context, table *schema.Table) ([]Row, error)

	// FindRow 按键字段精确定位一行。两侧都先 trim+小写再比较，
	// 避免 email 大小写造成的匹配失败；多行命中时取第一行。
	FindRow(ctx context.Context, table *schema.Table, keyValue string) (Row, error)

	// WriteFields 以读改写方式更新一行：读出整行、按解析到的列覆盖
	// 指定字段、再把整行一次写回。禁止逐单元格写入。
	WriteFields(ctx context.Context, table *schema.Table, rowIndex int, fields map[string]string) error

	// AppendRow 追加一行，values 的顺序必须与声明布局一致，
	// 末尾未用的列由调用方补空串。
	AppendRow(ctx context.Context, table *schema.Table, values []string) error
}
