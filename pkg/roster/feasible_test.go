package roster

import (
	"testing"

	"github.com/bgalitsky/nurse-scheduling/pkg/model"
)

func TestFeasible(t *testing.T) {
	tests := []struct {
		name     string
		nurse    map[string]bool
		room     map[string]bool
		expected bool
	}{
		{"完全匹配", map[string]bool{"ICU": true}, map[string]bool{"ICU": true}, true},
		{"超集匹配", map[string]bool{"ICU": true, "Charge": true}, map[string]bool{"ICU": true}, true},
		{"缺少资质", map[string]bool{"ER": true}, map[string]bool{"ICU": true}, false},
		{"部分满足", map[string]bool{"ICU": true}, map[string]bool{"ICU": true, "Surgical": true}, false},
		{"无要求房间对所有护士可行", nil, map[string]bool{}, true},
		{"无资质护士对无要求房间可行", map[string]bool{}, map[string]bool{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := &model.Nurse{ID: "N01", Qualifications: tt.nurse}
			r := &model.Room{ID: "R1", RequiredQualifications: tt.room}
			if result := Feasible(n, r); result != tt.expected {
				t.Errorf("Feasible() = %v, expected %v", result, tt.expected)
			}
		})
	}
}

func TestFeasibility_Matrix(t *testing.T) {
	e := &model.Entities{
		Nurses: []*model.Nurse{
			{ID: "N01", Qualifications: map[string]bool{"ICU": true, "Charge": true}},
			{ID: "N02", Qualifications: map[string]bool{"ER": true}},
		},
		Rooms: []*model.Room{
			{ID: "R1", RequiredQualifications: map[string]bool{"ICU": true}},
			{ID: "R2", RequiredQualifications: map[string]bool{}},
		},
	}

	f := NewFeasibility(e)

	if !f.Eligible("N01", "R1") {
		t.Error("N01 应对 R1 可行")
	}
	if f.Eligible("N02", "R1") {
		t.Error("N02 不应对 R1 可行")
	}
	if !f.Eligible("N01", "R2") || !f.Eligible("N02", "R2") {
		t.Error("无要求房间应对所有护士可行")
	}

	// 未知ID返回false而非panic
	if f.Eligible("N99", "R1") || f.Eligible("N01", "R99") {
		t.Error("未知ID应返回false")
	}

	if got := f.EligibleNurseCount("R1"); got != 1 {
		t.Errorf("R1 可行护士数 = %d, expected 1", got)
	}
	if got := f.EligibleNurseCount("R2"); got != 2 {
		t.Errorf("R2 可行护士数 = %d, expected 2", got)
	}
	if got := f.EligibleNurseCount("R99"); got != 0 {
		t.Errorf("未知房间可行护士数 = %d, expected 0", got)
	}
}
