package stats

import (
	"math"
	"testing"

	"github.com/bgalitsky/nurse-scheduling/pkg/model"
)

func intPtr(v int) *int { return &v }

func approx(a, b float64) bool { return math.Abs(a-b) < 0.01 }

func TestCoverageAnalyze(t *testing.T) {
	slots := []model.SlotResult{
		{Day: "Mon", RoomID: "R1", RoomName: "ICU-1", Shift: "Day", RequiredNurses: 2,
			AssignedNurses: []string{"N01", "N02"}, Understaff: intPtr(0)},
		{Day: "Mon", RoomID: "R2", RoomName: "Ward-1", Shift: "Day", RequiredNurses: 2,
			AssignedNurses: []string{"N01"}, Understaff: intPtr(1)},
		{Day: "Mon", RoomID: "R1", RoomName: "ICU-1", Shift: "Night", RequiredNurses: 0,
			AssignedNurses: []string{}},
		// 没有松弛诊断时退化为 required − assigned
		{Day: "Tue", RoomID: "R1", RoomName: "ICU-1", Shift: "Day", RequiredNurses: 1,
			AssignedNurses: []string{}},
	}

	m := NewCoverageAnalyzer().Analyze(slots)

	if m.TotalSlots != 4 || m.DemandedSlots != 3 || m.FilledSlots != 1 {
		t.Errorf("槽位计数错误: total=%d demanded=%d filled=%d", m.TotalSlots, m.DemandedSlots, m.FilledSlots)
	}
	if !approx(m.FillRate, 100.0/3) {
		t.Errorf("满足率 = %.2f, expected 33.33", m.FillRate)
	}
	if m.TotalRequired != 5 || m.TotalAssigned != 3 || m.TotalUnderstaff != 2 {
		t.Errorf("人力汇总错误: required=%d assigned=%d understaff=%d",
			m.TotalRequired, m.TotalAssigned, m.TotalUnderstaff)
	}

	if len(m.UnderstaffedSlots) != 2 {
		t.Fatalf("缺员槽位数 = %d, expected 2", len(m.UnderstaffedSlots))
	}
	u := m.UnderstaffedSlots[0]
	if u.RoomID != "R2" || u.Shortage != 1 || u.Required != 2 || u.Assigned != 1 {
		t.Errorf("缺员槽位明细错误: %+v", u)
	}

	if !approx(m.RoomCoverage["R1"], 50) || !approx(m.RoomCoverage["R2"], 0) {
		t.Errorf("房间满足率错误: %v", m.RoomCoverage)
	}
	if !approx(m.ShiftCoverage["Day"], 100.0/3) {
		t.Errorf("班次满足率错误: %v", m.ShiftCoverage)
	}

	mon := m.DailyCoverage["Mon"]
	if mon.Required != 4 || mon.Assigned != 3 || mon.Understaff != 1 || !approx(mon.FillRate, 75) {
		t.Errorf("Mon 覆盖错误: %+v", mon)
	}
	tue := m.DailyCoverage["Tue"]
	if tue.Understaff != 1 || !approx(tue.FillRate, 0) {
		t.Errorf("Tue 覆盖错误: %+v", tue)
	}
}

func TestCoverageAnalyze_Overstaff(t *testing.T) {
	slots := []model.SlotResult{
		{Day: "Mon", RoomID: "R1", Shift: "Day", RequiredNurses: 1,
			AssignedNurses: []string{"N01", "N02", "N03"}, Understaff: intPtr(0), Overstaff: intPtr(2)},
	}

	m := NewCoverageAnalyzer().Analyze(slots)

	if m.TotalOverstaff != 2 {
		t.Errorf("总超员 = %d, expected 2", m.TotalOverstaff)
	}
	if m.FilledSlots != 1 {
		t.Error("超员槽位仍算作满足需求")
	}
}

func TestCoverageAnalyze_FallbackClamped(t *testing.T) {
	// 无诊断值、分配多于需求时缺员不应为负
	slots := []model.SlotResult{
		{Day: "Mon", RoomID: "R1", Shift: "Day", RequiredNurses: 1,
			AssignedNurses: []string{"N01", "N02"}},
	}

	m := NewCoverageAnalyzer().Analyze(slots)

	if m.TotalUnderstaff != 0 {
		t.Errorf("总缺员 = %d, expected 0", m.TotalUnderstaff)
	}
	if m.FilledSlots != 1 || !approx(m.FillRate, 100) {
		t.Errorf("满足率 = %.2f, expected 100", m.FillRate)
	}
}

func TestCoverageAnalyze_Empty(t *testing.T) {
	m := NewCoverageAnalyzer().Analyze(nil)
	if m.TotalSlots != 0 || !approx(m.FillRate, 100) {
		t.Errorf("空输入满足率 = %.2f, expected 100", m.FillRate)
	}
}

func TestCoverageAnalyze_NoDemand(t *testing.T) {
	slots := []model.SlotResult{
		{Day: "Mon", RoomID: "R1", Shift: "Day", RequiredNurses: 0, AssignedNurses: []string{}},
	}
	m := NewCoverageAnalyzer().Analyze(slots)
	if !approx(m.FillRate, 100) {
		t.Errorf("零需求满足率 = %.2f, expected 100", m.FillRate)
	}
	if len(m.UnderstaffedSlots) != 0 {
		t.Error("零需求槽位不应计入缺员列表")
	}
}
