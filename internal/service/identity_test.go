package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rafael7ms/operations-db/internal/model"
)

// ── DeriveLookupCode 测试 ──

func TestDeriveLookupCode(t *testing.T) {
	cases := []struct {
		first, last, want string
	}{
		{"John", "Smith", "jsmith"},
		{"Maria", "Garcia", "mgarcia"},
		{"  Ana ", " Lopez ", "alopez"},
		{"DAVID", "CHEN", "dchen"},
		{"", "Smith", ""},
		{"John", "", ""},
	}
	for _, c := range cases {
		if got := DeriveLookupCode(c.first, c.last); got != c.want {
			t.Errorf("DeriveLookupCode(%q, %q) = %q，期望 %q", c.first, c.last, got, c.want)
		}
	}
}

// ── Resolve 测试 ──

func seedEmployee(repo *mockEmployeeRepo, id int64, first, last string) {
	repo.employees[id] = &model.Employee{
		EmployeeID: id,
		FirstName:  first,
		LastName:   last,
		FullName:   first + " " + last,
		RuexID:     DeriveLookupCode(first, last),
		Status:     model.EmployeeStatusActive,
	}
}

func TestResolver_NumericToken(t *testing.T) {
	repo := newMockEmployeeRepo()
	seedEmployee(repo, 41031748911, "John", "Smith")

	r := NewResolver(repo, nil)
	employee, err := r.Resolve(context.Background(), "41031748911")
	if err != nil {
		t.Fatalf("数字标识应直查主键: %v", err)
	}
	if employee.EmployeeID != 41031748911 {
		t.Errorf("期望员工 41031748911，实际 %d", employee.EmployeeID)
	}
}

func TestResolver_NumericToken_NotFound(t *testing.T) {
	repo := newMockEmployeeRepo()

	r := NewResolver(repo, nil)
	_, err := r.Resolve(context.Background(), "999")
	if !errors.Is(err, ErrIdentityNotFound) {
		t.Errorf("期望 ErrIdentityNotFound，实际: %v", err)
	}
}

func TestResolver_LookupMapFirst(t *testing.T) {
	repo := newMockEmployeeRepo()
	seedEmployee(repo, 100, "John", "Smith")
	seedEmployee(repo, 200, "Jane", "Smith") // 库内 jsmith 碰撞

	// 辅助映射优先于库内查找码匹配
	lookup := map[string]int64{"jsmith": 200}
	r := NewResolver(repo, lookup)

	employee, err := r.Resolve(context.Background(), "JSmith")
	if err != nil {
		t.Fatalf("映射命中应成功: %v", err)
	}
	if employee.EmployeeID != 200 {
		t.Errorf("期望映射指向的员工 200，实际 %d", employee.EmployeeID)
	}
}

func TestResolver_FallbackDeterministic(t *testing.T) {
	repo := newMockEmployeeRepo()
	// 两名员工派生出同一查找码，回退匹配必须稳定取编号较小者
	seedEmployee(repo, 300, "Jack", "Smith")
	seedEmployee(repo, 100, "John", "Smith")

	r := NewResolver(repo, nil)
	for i := 0; i < 5; i++ {
		employee, err := r.Resolve(context.Background(), "jsmith")
		if err != nil {
			t.Fatalf("查找码匹配应成功: %v", err)
		}
		if employee.EmployeeID != 100 {
			t.Fatalf("第 %d 次解析期望员工 100，实际 %d", i+1, employee.EmployeeID)
		}
	}
}

func TestResolver_NotFound(t *testing.T) {
	repo := newMockEmployeeRepo()
	seedEmployee(repo, 100, "John", "Smith")

	r := NewResolver(repo, nil)
	_, err := r.Resolve(context.Background(), "nobody")
	if !errors.Is(err, ErrIdentityNotFound) {
		t.Errorf("期望 ErrIdentityNotFound，实际: %v", err)
	}

	_, err = r.Resolve(context.Background(), "   ")
	if !errors.Is(err, ErrIdentityNotFound) {
		t.Errorf("空白标识期望 ErrIdentityNotFound，实际: %v", err)
	}
}

// ── BuildLookupFromSheet 测试 ──

func TestBuildLookupFromSheet(t *testing.T) {
	csvData := strings.Join([]string{
		"Employee - ID,First Name,Last Name",
		"100,John,Smith",
		"300,Jack,Smith", // 与上一行同查找码，应保留编号较小者
		"200,Maria,Garcia",
		",Missing,ID", // 无编号，跳过
	}, "\n")

	sheet, err := ReadSheet(strings.NewReader(csvData), "employees.csv")
	if err != nil {
		t.Fatalf("解析员工名单失败: %v", err)
	}

	lookup := BuildLookupFromSheet(sheet)
	if len(lookup) != 2 {
		t.Fatalf("期望 2 个查找码，实际 %d", len(lookup))
	}
	if lookup["jsmith"] != 100 {
		t.Errorf("jsmith 碰撞应保留较小编号 100，实际 %d", lookup["jsmith"])
	}
	if lookup["mgarcia"] != 200 {
		t.Errorf("mgarcia 期望 200，实际 %d", lookup["mgarcia"])
	}
}

func TestBuildLookupFromSheet_OdooIDFallback(t *testing.T) {
	csvData := strings.Join([]string{
		"Odoo ID,First Name,Last Name",
		"555,Ana,Lopez",
	}, "\n")

	sheet, err := ReadSheet(strings.NewReader(csvData), "roster.csv")
	if err != nil {
		t.Fatalf("解析员工名单失败: %v", err)
	}

	lookup := BuildLookupFromSheet(sheet)
	if lookup["alopez"] != 555 {
		t.Errorf("缺少 employee_id 列时应回退 odoo_id，期望 555，实际 %d", lookup["alopez"])
	}
}
