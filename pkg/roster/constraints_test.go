package roster

import (
	"testing"

	"github.com/bgalitsky/nurse-scheduling/pkg/errors"
	"github.com/bgalitsky/nurse-scheduling/pkg/model"
	"github.com/bgalitsky/nurse-scheduling/pkg/solver"
)

// fixture 约束测试的标准环境
// N01 {ICU, Charge} 持有 CNOR 认证，可行房间 R1(ICU类)/R2；
// N02 无资质，仅可行于无要求的 R2。
type fixture struct {
	e   *model.Entities
	cfg model.SolveConfig
	m   *solver.Model
	vs  *VarSpace
}

func newFixture(t *testing.T, mutate func(e *model.Entities, cfg *model.SolveConfig)) *fixture {
	t.Helper()

	e := &model.Entities{
		Nurses: []*model.Nurse{
			{ID: "N01", Qualifications: map[string]bool{"ICU": true, "Charge": true}, Certification: "CNOR", MaxShiftsPerDay: 1, MaxShiftsPerWeek: 5},
			{ID: "N02", Qualifications: map[string]bool{}, MaxShiftsPerDay: 2, MaxShiftsPerWeek: 6},
		},
		Rooms: []*model.Room{
			{ID: "R1", Name: "ICU-1", RequiredQualifications: map[string]bool{"ICU": true}, Tag: "ICU"},
			{ID: "R2", Name: "Ward-1", RequiredQualifications: map[string]bool{}},
		},
		Demand: map[model.DemandKey]int{
			{Day: "Mon", RoomID: "R1", Shift: "Day"}: 1,
			{Day: "Mon", RoomID: "R2", Shift: "Day"}: 2,
		},
		Preferences: make(map[model.PrefKey]int),
		Locks:       make(map[model.LockKey]bool),
	}

	cfg := model.SolveConfig{
		Days:           []string{"Mon", "Tue"},
		Shifts:         []string{"Day", "Night"},
		Weights:        model.DefaultWeights(),
		ChargeRoomTags: []string{"ICU", "ER"},
		SpecialRoomTag: "OR",
	}
	if mutate != nil {
		mutate(e, &cfg)
	}
	if err := cfg.Normalize(); err != nil {
		t.Fatalf("配置归一化失败: %v", err)
	}

	m := solver.NewModel()
	vs := BuildVariables(m, e, NewFeasibility(e), &cfg)
	return &fixture{e: e, cfg: cfg, m: m, vs: vs}
}

func TestAddDailyCaps(t *testing.T) {
	f := newFixture(t, nil)
	before := f.m.NumConstraints()

	addDailyCaps(f.m, f.e, f.vs, &f.cfg)

	// 每护士每天一条：2护士 × 2天
	added := f.m.NumConstraints() - before
	if added != 4 {
		t.Fatalf("每日上限约束数 = %d, expected 4", added)
	}

	c := f.m.Constraints()[before]
	if c.Lb != solver.NoLowerBound || c.Ub != 1 {
		t.Errorf("N01 每日上限边界错误: lb=%d ub=%d", c.Lb, c.Ub)
	}
}

func TestAddWeeklyCaps(t *testing.T) {
	f := newFixture(t, nil)
	before := f.m.NumConstraints()

	addWeeklyCaps(f.m, f.e, f.vs)

	added := f.m.NumConstraints() - before
	if added != 2 {
		t.Fatalf("每周上限约束数 = %d, expected 2", added)
	}

	cs := f.m.Constraints()
	if cs[before].Ub != 5 {
		t.Errorf("N01 每周上限 = %d, expected 5", cs[before].Ub)
	}
	if cs[before+1].Ub != 6 {
		t.Errorf("N02 每周上限 = %d, expected 6", cs[before+1].Ub)
	}
	// N01 变量数：2房间 × 2班次 × 2天 = 8
	if len(cs[before].Terms) != 8 {
		t.Errorf("N01 每周约束项数 = %d, expected 8", len(cs[before].Terms))
	}
}

func TestAddCoverage_WithOverstaff(t *testing.T) {
	f := newFixture(t, func(e *model.Entities, cfg *model.SolveConfig) {
		cfg.AllowOverstaff = true
	})
	before := f.m.NumConstraints()

	slacks := addCoverage(f.m, f.e, f.vs, &f.cfg)

	// 每个 (天, 房间, 班次) 一条等式，含零需求槽位：2 × 2 × 2
	added := f.m.NumConstraints() - before
	if added != 8 {
		t.Fatalf("覆盖约束数 = %d, expected 8", added)
	}
	if len(slacks.Understaff) != 8 {
		t.Errorf("缺员变量数 = %d, expected 8", len(slacks.Understaff))
	}
	if len(slacks.Overstaff) != 8 {
		t.Errorf("超员变量数 = %d, expected 8", len(slacks.Overstaff))
	}

	// (Mon, R1, Day)：需求1，可行护士仅 N01 → x + u - o = 1
	c := f.m.Constraints()[before]
	if c.Lb != 1 || c.Ub != 1 {
		t.Errorf("覆盖等式值 = [%d,%d], expected [1,1]", c.Lb, c.Ub)
	}
	if len(c.Terms) != 3 {
		t.Fatalf("覆盖等式项数 = %d, expected 3 (x + u - o)", len(c.Terms))
	}
	if c.Terms[1].Coeff != 1 || c.Terms[2].Coeff != -1 {
		t.Errorf("松弛系数错误: u=%d o=%d", c.Terms[1].Coeff, c.Terms[2].Coeff)
	}

	// 松弛变量边界 0..100
	key := model.DemandKey{Day: "Mon", RoomID: "R1", Shift: "Day"}
	ud := f.m.VarDefAt(slacks.Understaff[key])
	if ud.Lb != 0 || ud.Ub != 100 {
		t.Errorf("缺员变量边界 = [%d,%d], expected [0,100]", ud.Lb, ud.Ub)
	}
}

func TestAddCoverage_NoOverstaff(t *testing.T) {
	f := newFixture(t, nil) // AllowOverstaff = false
	before := f.m.NumConstraints()

	slacks := addCoverage(f.m, f.e, f.vs, &f.cfg)

	if slacks.Overstaff != nil {
		t.Error("不允许超员时不应创建超员变量")
	}

	// (Mon, R1, Day)：x + u = 1，没有超员项——结构上禁止超配
	c := f.m.Constraints()[before]
	if len(c.Terms) != 2 {
		t.Errorf("覆盖等式项数 = %d, expected 2 (x + u)", len(c.Terms))
	}
}

func TestAddRestRule(t *testing.T) {
	f := newFixture(t, func(e *model.Entities, cfg *model.SolveConfig) {
		cfg.EnforceRestNightToDay = true
	})
	before := f.m.NumConstraints()

	addRestRule(f.m, f.e, f.vs, &f.cfg)

	// 每护士每对相邻天一条：2护士 × 1对 (Mon→Tue)
	added := f.m.NumConstraints() - before
	if added != 2 {
		t.Fatalf("休息规则约束数 = %d, expected 2", added)
	}

	// Σ night(i) + Σ day(i+1) <= 1
	c := f.m.Constraints()[before]
	if c.Ub != 1 || c.Lb != solver.NoLowerBound {
		t.Errorf("休息规则边界错误: lb=%d ub=%d", c.Lb, c.Ub)
	}
	// N01：Mon夜班2房间 + Tue白班2房间 = 4 项
	if len(c.Terms) != 4 {
		t.Errorf("休息规则项数 = %d, expected 4", len(c.Terms))
	}
}

func TestAddRestRule_Disabled(t *testing.T) {
	f := newFixture(t, nil) // EnforceRestNightToDay = false
	before := f.m.NumConstraints()
	addRestRule(f.m, f.e, f.vs, &f.cfg)
	if f.m.NumConstraints() != before {
		t.Error("规则关闭时不应添加约束")
	}
}

func TestAddRestRule_NightNotSelected(t *testing.T) {
	f := newFixture(t, func(e *model.Entities, cfg *model.SolveConfig) {
		cfg.EnforceRestNightToDay = true
		cfg.Shifts = []string{"Day", "Evening"}
	})
	before := f.m.NumConstraints()
	addRestRule(f.m, f.e, f.vs, &f.cfg)
	if f.m.NumConstraints() != before {
		t.Error("夜班未选择时休息规则应省略")
	}
}

func TestAddChargeCoverage(t *testing.T) {
	f := newFixture(t, func(e *model.Entities, cfg *model.SolveConfig) {
		cfg.RequireChargeNurse = true
	})
	before := f.m.NumConstraints()

	addChargeCoverage(f.m, f.e, f.vs, &f.cfg)

	// charge 类别房间只有 R1，仅 (Mon, Day) 有需求 → 1 条
	added := f.m.NumConstraints() - before
	if added != 1 {
		t.Fatalf("Charge 覆盖约束数 = %d, expected 1", added)
	}

	c := f.m.Constraints()[before]
	if c.Lb != 1 || c.Ub != solver.NoUpperBound {
		t.Errorf("Charge 覆盖边界错误: lb=%d ub=%d", c.Lb, c.Ub)
	}
	// 仅 N01 持有 Charge 资质且对 R1 可行 → 1 项
	if len(c.Terms) != 1 {
		t.Errorf("Charge 覆盖项数 = %d, expected 1", len(c.Terms))
	}
}

func TestAddChargeCoverage_NoChargeNurse(t *testing.T) {
	f := newFixture(t, func(e *model.Entities, cfg *model.SolveConfig) {
		cfg.RequireChargeNurse = true
		delete(e.Nurses[0].Qualifications, "Charge")
	})
	before := f.m.NumConstraints()
	addChargeCoverage(f.m, f.e, f.vs, &f.cfg)
	if f.m.NumConstraints() != before {
		t.Error("无 Charge 护士时约束应整体省略")
	}
}

func TestAddSpecialRoleCoverage(t *testing.T) {
	f := newFixture(t, func(e *model.Entities, cfg *model.SolveConfig) {
		cfg.RequireSpecialRole = true
		cfg.SpecialCertification = "CNOR"
		e.Rooms[0].Tag = "OR"
		e.Rooms[0].RequiredQualifications = map[string]bool{"ICU": true}
	})
	before := f.m.NumConstraints()

	addSpecialRoleCoverage(f.m, f.e, f.vs, &f.cfg)

	// OR 房间 R1 仅 (Mon, Day) 有需求，N01 持有 CNOR 且可行 → 1 条
	added := f.m.NumConstraints() - before
	if added != 1 {
		t.Fatalf("特殊角色约束数 = %d, expected 1", added)
	}
	c := f.m.Constraints()[before]
	if c.Lb != 1 || len(c.Terms) != 1 {
		t.Errorf("特殊角色约束错误: lb=%d 项数=%d", c.Lb, len(c.Terms))
	}
}

func TestAddSpecialRoleCoverage_NoCertifiedNurse(t *testing.T) {
	f := newFixture(t, func(e *model.Entities, cfg *model.SolveConfig) {
		cfg.RequireSpecialRole = true
		cfg.SpecialCertification = "CNOR"
		e.Rooms[0].Tag = "OR"
		e.Nurses[0].Certification = "" // 没有持证护士
	})
	before := f.m.NumConstraints()

	addSpecialRoleCoverage(f.m, f.e, f.vs, &f.cfg)

	// 无持证护士时静默省略，覆盖退化为普通人力配置
	if f.m.NumConstraints() != before {
		t.Error("无持证护士时约束应静默省略")
	}
}

func TestAddLocks(t *testing.T) {
	f := newFixture(t, func(e *model.Entities, cfg *model.SolveConfig) {
		e.Locks[model.LockKey{Day: "Mon", Shift: "Day", RoomID: "R1", NurseID: "N01"}] = true
		e.Locks[model.LockKey{Day: "Tue", Shift: "Day", RoomID: "R2", NurseID: "N02"}] = false // 未锁定行忽略
	})
	before := f.m.NumConstraints()

	if err := addLocks(f.m, f.e, f.vs); err != nil {
		t.Fatalf("addLocks失败: %v", err)
	}

	added := f.m.NumConstraints() - before
	if added != 1 {
		t.Fatalf("锁定约束数 = %d, expected 1", added)
	}
	c := f.m.Constraints()[before]
	if c.Lb != 1 || c.Ub != 1 || len(c.Terms) != 1 {
		t.Errorf("锁定约束应为 x == 1: %+v", c)
	}
}

func TestAddLocks_Infeasible(t *testing.T) {
	tests := []struct {
		name string
		key  model.LockKey
	}{
		{"资质不匹配", model.LockKey{Day: "Mon", Shift: "Day", RoomID: "R1", NurseID: "N02"}},
		{"未知护士", model.LockKey{Day: "Mon", Shift: "Day", RoomID: "R1", NurseID: "N99"}},
		{"未知房间", model.LockKey{Day: "Mon", Shift: "Day", RoomID: "R9", NurseID: "N01"}},
		{"未选择的天", model.LockKey{Day: "Sun", Shift: "Day", RoomID: "R1", NurseID: "N01"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, func(e *model.Entities, cfg *model.SolveConfig) {
				e.Locks[tt.key] = true
			})
			err := addLocks(f.m, f.e, f.vs)
			if err == nil {
				t.Fatal("期望返回错误")
			}
			if !errors.Is(err, errors.CodeInfeasibleLock) {
				t.Errorf("错误码 = %s, expected INFEASIBLE_LOCK", errors.GetCode(err))
			}
		})
	}
}

func TestAddFairness(t *testing.T) {
	target := 4
	f := newFixture(t, func(e *model.Entities, cfg *model.SolveConfig) {
		cfg.FairnessTarget = &target
	})
	before := f.m.NumConstraints()
	slacks := &SlackVars{Deviation: make(map[string]solver.Var)}

	addFairness(f.m, f.e, f.vs, &f.cfg, slacks)

	// 每护士：total 等式 + 两条偏差不等式 = 3 条
	added := f.m.NumConstraints() - before
	if added != 6 {
		t.Fatalf("公平性约束数 = %d, expected 6", added)
	}
	if len(slacks.Deviation) != 2 {
		t.Errorf("偏差变量数 = %d, expected 2", len(slacks.Deviation))
	}

	cs := f.m.Constraints()
	// N01: Σx - total == 0
	if cs[before].Lb != 0 || cs[before].Ub != 0 {
		t.Errorf("total 等式错误: lb=%d ub=%d", cs[before].Lb, cs[before].Ub)
	}
	// dev - total >= -target
	if cs[before+1].Lb != -4 {
		t.Errorf("偏差下界 = %d, expected -4", cs[before+1].Lb)
	}
	// dev + total >= target
	if cs[before+2].Lb != 4 {
		t.Errorf("偏差下界 = %d, expected 4", cs[before+2].Lb)
	}

	// 偏差变量边界 0..1000
	dd := f.m.VarDefAt(slacks.Deviation["N01"])
	if dd.Lb != 0 || dd.Ub != 1000 {
		t.Errorf("偏差变量边界 = [%d,%d], expected [0,1000]", dd.Lb, dd.Ub)
	}
}

func TestAddFairness_Disabled(t *testing.T) {
	f := newFixture(t, nil) // FairnessTarget = nil
	before := f.m.NumConstraints()
	slacks := &SlackVars{Deviation: make(map[string]solver.Var)}

	addFairness(f.m, f.e, f.vs, &f.cfg, slacks)

	if f.m.NumConstraints() != before || len(slacks.Deviation) != 0 {
		t.Error("未配置目标时不应添加公平性约束")
	}
}

func TestAssembleConstraints_LockErrorBeforeSolve(t *testing.T) {
	f := newFixture(t, func(e *model.Entities, cfg *model.SolveConfig) {
		e.Locks[model.LockKey{Day: "Mon", Shift: "Day", RoomID: "R1", NurseID: "N02"}] = true
	})

	_, err := assembleConstraints(f.m, f.e, f.vs, &f.cfg)
	if err == nil {
		t.Fatal("不可行锁定应在组装阶段失败")
	}
	if !errors.Is(err, errors.CodeInfeasibleLock) {
		t.Errorf("错误码 = %s, expected INFEASIBLE_LOCK", errors.GetCode(err))
	}
}
