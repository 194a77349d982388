package stats

import (
	"testing"

	"github.com/bgalitsky/nurse-scheduling/pkg/model"
)

func TestFairnessAnalyze(t *testing.T) {
	slots := []model.SlotResult{
		{Day: "Mon", Shift: "Day", AssignedNurses: []string{"N01", "N02"}},
		{Day: "Sat", Shift: "Day", AssignedNurses: []string{"N01"}},
		{Day: "Sat", Shift: "Night", AssignedNurses: []string{"N01"}},
	}
	// N03 在名单里但未被排班，以 0 班次计入分布
	m := NewFairnessAnalyzer().Analyze(slots, []string{"N01", "N02", "N03"})

	if m.Max != 3 || m.Min != 0 || m.Range != 3 {
		t.Errorf("极值错误: max=%d min=%d range=%d", m.Max, m.Min, m.Range)
	}
	if !approx(m.Avg, 4.0/3) {
		t.Errorf("平均班次 = %.4f, expected 1.3333", m.Avg)
	}

	// 分布 [0,1,3]：gini = 2*(1*0+2*1+3*3)/(3*4) − 4/3 = 0.5
	if !approx(m.Gini, 0.5) {
		t.Errorf("基尼系数 = %.4f, expected 0.5", m.Gini)
	}
	if !approx(m.Variance, 14.0/9) {
		t.Errorf("方差 = %.4f, expected 1.5556", m.Variance)
	}

	// 周末班次占比：4次分配中2次在周六
	if !approx(m.WeekendShare, 50) {
		t.Errorf("周末占比 = %.2f, expected 50", m.WeekendShare)
	}

	if len(m.NurseStats) != 3 {
		t.Fatalf("护士明细数 = %d, expected 3", len(m.NurseStats))
	}
	n1 := m.NurseStats[0]
	if n1.NurseID != "N01" || n1.TotalShifts != 3 || n1.WeekendShifts != 2 || n1.NightShifts != 1 {
		t.Errorf("N01 明细错误: %+v", n1)
	}
	if !approx(n1.Deviation, 3-4.0/3) {
		t.Errorf("N01 偏差 = %.4f, expected 1.6667", n1.Deviation)
	}
	n3 := m.NurseStats[2]
	if n3.NurseID != "N03" || n3.TotalShifts != 0 {
		t.Errorf("N03 明细错误: %+v", n3)
	}
}

func TestFairnessAnalyze_Uniform(t *testing.T) {
	slots := []model.SlotResult{
		{Day: "Mon", Shift: "Day", AssignedNurses: []string{"N01", "N02"}},
		{Day: "Tue", Shift: "Day", AssignedNurses: []string{"N01", "N02"}},
	}
	m := NewFairnessAnalyzer().Analyze(slots, []string{"N01", "N02"})

	if !approx(m.Gini, 0) || !approx(m.StdDev, 0) {
		t.Errorf("均匀分布应无离散: gini=%.4f stddev=%.4f", m.Gini, m.StdDev)
	}
	if !approx(m.OverallFairnessScore, 100) {
		t.Errorf("均匀分布评分 = %.2f, expected 100", m.OverallFairnessScore)
	}
}

func TestFairnessAnalyze_Empty(t *testing.T) {
	m := NewFairnessAnalyzer().Analyze(nil, nil)
	if !approx(m.OverallFairnessScore, 100) {
		t.Errorf("空输入评分 = %.2f, expected 100", m.OverallFairnessScore)
	}
	if len(m.NurseStats) != 0 {
		t.Error("空输入不应有护士明细")
	}
}

func TestFairnessScoreBounds(t *testing.T) {
	tests := []struct {
		name   string
		gini   float64
		avg    float64
		stdDev float64
		want   float64
	}{
		{"完全公平", 0, 2, 0, 100},
		{"完全不公平", 1, 2, 4, 0}, // 下限截断
		{"中等离散", 0.2, 2, 1, 100*0.8 - 0.5*20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fairnessScore(tt.gini, tt.avg, tt.stdDev)
			if !approx(got, tt.want) {
				t.Errorf("fairnessScore(%v,%v,%v) = %.2f, expected %.2f", tt.gini, tt.avg, tt.stdDev, got, tt.want)
			}
		})
	}
}
