package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// ── 表格读取 ──
//
// 导入接受 .xlsx 与 .csv 两种格式，统一解析为有序行序列。
// 行号从 1 起、不含表头，贯穿校验与错误报告

// SchemaError 批次级错误：文件不可读、缺少必需列或超过行数上限
// 出现即中止整个批次，不处理任何数据行
type SchemaError struct {
	Reason string
}

func (e *SchemaError) Error() string { return e.Reason }

// SheetRow 一行数据，列名已归一化为 snake_case
type SheetRow struct {
	Number int // 数据区行号，1 起
	cells  map[string]string
}

// Get 取列值并去除首尾空白；列不存在时返回空串
func (r SheetRow) Get(column string) string {
	return strings.TrimSpace(r.cells[column])
}

// Sheet 解析后的表格
type Sheet struct {
	Columns []string
	Rows    []SheetRow
}

// Require 校验必需列是否齐全，缺列返回 SchemaError
func (s *Sheet) Require(columns ...string) error {
	colSet := make(map[string]bool, len(s.Columns))
	for _, c := range s.Columns {
		colSet[c] = true
	}
	var missing []string
	for _, c := range columns {
		if !colSet[c] {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return &SchemaError{Reason: fmt.Sprintf("缺少必需列: %s", strings.Join(missing, ", "))}
	}
	return nil
}

// Alias 列别名：目标列缺失而别名列存在时，将别名列的值并入目标列
// 用于兼容不同来源对同一字段的表头命名
func (s *Sheet) Alias(canonical, alias string) {
	has := func(name string) bool {
		for _, c := range s.Columns {
			if c == name {
				return true
			}
		}
		return false
	}
	if has(canonical) || !has(alias) {
		return
	}
	s.Columns = append(s.Columns, canonical)
	for i := range s.Rows {
		s.Rows[i].cells[canonical] = s.Rows[i].cells[alias]
	}
}

// ReadSheet 按扩展名解析上传文件
func ReadSheet(r io.Reader, filename string) (*Sheet, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		return readXLSX(r)
	case ".csv":
		return readCSV(r)
	default:
		return nil, &SchemaError{Reason: fmt.Sprintf("不支持的文件格式: %s（仅支持 .xlsx / .csv）", filepath.Ext(filename))}
	}
}

func readXLSX(r io.Reader) (*Sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, &SchemaError{Reason: fmt.Sprintf("读取 Excel 文件失败: %v", err)}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &SchemaError{Reason: "Excel 文件不包含工作表"}
	}

	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, &SchemaError{Reason: fmt.Sprintf("读取工作表失败: %v", err)}
	}
	return buildSheet(records)
}

func readCSV(r io.Reader) (*Sheet, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, &SchemaError{Reason: fmt.Sprintf("读取 CSV 文件失败: %v", err)}
	}
	return buildSheet(records)
}

func buildSheet(records [][]string) (*Sheet, error) {
	if len(records) == 0 {
		return nil, &SchemaError{Reason: "文件为空或缺少表头"}
	}

	columns := make([]string, 0, len(records[0]))
	for _, h := range records[0] {
		columns = append(columns, normalizeColumn(h))
	}

	sheet := &Sheet{Columns: columns}
	for i, record := range records[1:] {
		cells := make(map[string]string, len(columns))
		empty := true
		for j, col := range columns {
			if j < len(record) {
				cells[col] = record[j]
				if strings.TrimSpace(record[j]) != "" {
					empty = false
				}
			}
		}
		// 全空行跳过，但保留原始行号
		if empty {
			continue
		}
		sheet.Rows = append(sheet.Rows, SheetRow{Number: i + 1, cells: cells})
	}
	return sheet, nil
}

// normalizeColumn 列名归一化：小写，非字母数字的连续段折叠为单个下划线
// "Employee - ID" 与 "employee_id" 归一后等价，兼容不同来源的表头写法
func normalizeColumn(name string) string {
	var b strings.Builder
	lastUnderscore := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	return strings.TrimRight(b.String(), "_")
}

// ── 字段类型归一 ──

// excelEpoch Excel 序列日期的零点（1900 日期系统，含著名的 1900 闰年错位）
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01-02-06",
	"1/2/06",
	"1/2/2006",
	"01/02/2006",
}

// parseDate 把多种文本形态的日期归一为 time.Time（仅日期部分，UTC）
// 接受 ISO 日期、常见斜杠写法以及 Excel 序列数值
func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("日期为空")
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}

	// Excel 序列日期：自 1899-12-30 起的天数
	if serial, err := strconv.ParseFloat(raw, 64); err == nil && serial >= 1 {
		t := excelEpoch.AddDate(0, 0, int(serial))
		return t, nil
	}

	return time.Time{}, fmt.Errorf("无法解析日期 %q", raw)
}

var clockLayouts = []string{
	"15:04",
	"15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// parseClock 把多种文本形态的时刻归一为 "HH:MM"
// 接受 HH:MM、HH:MM:SS、带日期的时间戳以及 Excel 的小数序列（一天的比例）
func parseClock(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("时间为空")
	}

	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("15:04"), nil
		}
	}

	// Excel 序列时间：小数部分为一天内的比例（0.5 → 12:00）
	if serial, err := strconv.ParseFloat(raw, 64); err == nil && serial >= 0 {
		frac := serial - math.Floor(serial)
		totalMinutes := int(math.Round(frac * 24 * 60))
		hours := (totalMinutes / 60) % 24
		minutes := totalMinutes % 60
		return fmt.Sprintf("%02d:%02d", hours, minutes), nil
	}

	return "", fmt.Errorf("无法解析时间 %q", raw)
}
