package model

import (
	"reflect"
	"testing"

	"github.com/bgalitsky/nurse-scheduling/pkg/errors"
)

func TestDefaultWeights(t *testing.T) {
	w := DefaultWeights()
	if w.Preference != 5 || w.Understaff != 200 || w.Overstaff != 5 || w.Fairness != 3 || w.Weekend != 2 {
		t.Errorf("默认权重错误: %+v", w)
	}
}

func TestSolveConfig_Normalize_EmptyHorizon(t *testing.T) {
	tests := []struct {
		name string
		cfg  SolveConfig
	}{
		{"空天集", SolveConfig{Days: nil, Shifts: []string{"Day"}}},
		{"空班次集", SolveConfig{Days: []string{"Mon"}, Shifts: nil}},
		{"全空", SolveConfig{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Normalize()
			if err == nil {
				t.Fatal("期望返回错误")
			}
			if !errors.Is(err, errors.CodeEmptyHorizon) {
				t.Errorf("错误码 = %s, expected EMPTY_HORIZON", errors.GetCode(err))
			}
		})
	}
}

func TestSolveConfig_Normalize_DayOrder(t *testing.T) {
	cfg := SolveConfig{
		Days:   []string{"Fri", "Mon", "Wed", "Mon"},
		Shifts: []string{"Night", "Day", "Night"},
	}
	if err := cfg.Normalize(); err != nil {
		t.Fatalf("Normalize失败: %v", err)
	}

	// 天按规范顺序去重
	if !reflect.DeepEqual(cfg.Days, []string{"Mon", "Wed", "Fri"}) {
		t.Errorf("天顺序 = %v, expected [Mon Wed Fri]", cfg.Days)
	}
	// 班次去重但保留传入顺序
	if !reflect.DeepEqual(cfg.Shifts, []string{"Night", "Day"}) {
		t.Errorf("班次 = %v, expected [Night Day]", cfg.Shifts)
	}
}

func TestSolveConfig_Normalize_UnknownLabels(t *testing.T) {
	cfg := SolveConfig{Days: []string{"Monday"}, Shifts: []string{"Day"}}
	if err := cfg.Normalize(); err == nil {
		t.Error("未知天标签应被拒绝")
	}

	cfg = SolveConfig{Days: []string{"Mon"}, Shifts: []string{"Graveyard"}}
	if err := cfg.Normalize(); err == nil {
		t.Error("未知班次标签应被拒绝")
	}
}

func TestSolveConfig_Normalize_Defaults(t *testing.T) {
	cfg := SolveConfig{Days: []string{"Mon"}, Shifts: []string{"Day"}}
	if err := cfg.Normalize(); err != nil {
		t.Fatalf("Normalize失败: %v", err)
	}
	if cfg.TimeLimitSeconds != 20 {
		t.Errorf("时间上限默认值 = %d, expected 20", cfg.TimeLimitSeconds)
	}
	if cfg.Workers != 8 {
		t.Errorf("并行度默认值 = %d, expected 8", cfg.Workers)
	}
}

func TestSolveConfig_Normalize_NegativeWeights(t *testing.T) {
	cfg := SolveConfig{
		Days:    []string{"Mon"},
		Shifts:  []string{"Day"},
		Weights: Weights{Understaff: -1},
	}
	if err := cfg.Normalize(); err == nil {
		t.Error("负权重应被拒绝")
	}
}

func TestSolveConfig_Normalize_FairnessTarget(t *testing.T) {
	neg := -1
	cfg := SolveConfig{Days: []string{"Mon"}, Shifts: []string{"Day"}, FairnessTarget: &neg}
	if err := cfg.Normalize(); err == nil {
		t.Error("负公平性目标应被拒绝")
	}

	zero := 0
	cfg = SolveConfig{Days: []string{"Mon"}, Shifts: []string{"Day"}, FairnessTarget: &zero}
	if err := cfg.Normalize(); err != nil {
		t.Errorf("目标为0应合法: %v", err)
	}
}

func TestSolveConfig_IsChargeRoomTag(t *testing.T) {
	cfg := DefaultSolveConfig()

	tests := []struct {
		tag      string
		expected bool
	}{
		{"ICU", true},
		{"ER", true},
		{"OR", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			if result := cfg.IsChargeRoomTag(tt.tag); result != tt.expected {
				t.Errorf("IsChargeRoomTag(%s) = %v, expected %v", tt.tag, result, tt.expected)
			}
		})
	}
}
