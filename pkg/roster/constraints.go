// Package roster 将病房人力数据构建为周排班优化模型并求解
package roster

import (
	"fmt"
	"sort"

	"github.com/bgalitsky/nurse-scheduling/pkg/errors"
	"github.com/bgalitsky/nurse-scheduling/pkg/model"
	"github.com/bgalitsky/nurse-scheduling/pkg/solver"
)

// 松弛变量上界
const (
	slackBound    = 100  // 缺员/超员松弛上界
	fairnessBound = 1000 // 护士周总量及偏差上界
)

// SlackVars 软约束松弛变量
// 仅在对应特性启用时存在：超员变量要求允许超员，偏差变量要求配置了公平性目标。
type SlackVars struct {
	Understaff map[model.DemandKey]solver.Var
	Overstaff  map[model.DemandKey]solver.Var
	Deviation  map[string]solver.Var // 按护士ID
}

// assembleConstraints 发射全部硬约束和软约束松弛变量
// 所有约束都作用在稀疏变量空间上：引用不存在变量的约束直接省略该项，
// 对空集合的求和为0，完全为空的约束被跳过。
func assembleConstraints(m *solver.Model, e *model.Entities, vs *VarSpace, cfg *model.SolveConfig) (*SlackVars, error) {
	addDailyCaps(m, e, vs, cfg)
	addWeeklyCaps(m, e, vs)
	slacks := addCoverage(m, e, vs, cfg)
	addRestRule(m, e, vs, cfg)
	addChargeCoverage(m, e, vs, cfg)
	addSpecialRoleCoverage(m, e, vs, cfg)
	if err := addLocks(m, e, vs); err != nil {
		return nil, err
	}
	addFairness(m, e, vs, cfg, slacks)
	return slacks, nil
}

// addDailyCaps 每护士每天的班次数上限
func addDailyCaps(m *solver.Model, e *model.Entities, vs *VarSpace, cfg *model.SolveConfig) {
	for ni, n := range e.Nurses {
		for di := range cfg.Days {
			terms := vs.ForNurseDay(ni, di)
			if len(terms) > 0 {
				m.AddAtMost(terms, int64(n.MaxShiftsPerDay))
			}
		}
	}
}

// addWeeklyCaps 每护士在整个选择范围内的班次数上限
func addWeeklyCaps(m *solver.Model, e *model.Entities, vs *VarSpace) {
	for ni, n := range e.Nurses {
		terms := vs.ForNurse(ni)
		if len(terms) > 0 {
			m.AddAtMost(terms, int64(n.MaxShiftsPerWeek))
		}
	}
}

// addCoverage 覆盖平衡等式（带松弛）
// 每个 (天, 房间, 班次)：Σ x + understaff − overstaff = demand。
// 不允许超员时等式中没有超员项，缺员松弛单独吸收缺口——
// 此时等式在结构上禁止分配数超过需求数。
func addCoverage(m *solver.Model, e *model.Entities, vs *VarSpace, cfg *model.SolveConfig) *SlackVars {
	slacks := &SlackVars{
		Understaff: make(map[model.DemandKey]solver.Var),
		Deviation:  make(map[string]solver.Var),
	}
	if cfg.AllowOverstaff {
		slacks.Overstaff = make(map[model.DemandKey]solver.Var)
	}

	for di, day := range cfg.Days {
		for ri, room := range e.Rooms {
			for si, shift := range cfg.Shifts {
				key := model.DemandKey{Day: day, RoomID: room.ID, Shift: shift}
				demand := e.Demand[key]

				terms := vs.ForSlot(di, ri, si)

				u := m.NewIntVar(0, slackBound, fmt.Sprintf("under_%s_%s_%s", room.ID, shift, day))
				slacks.Understaff[key] = u
				terms = append(terms, solver.Term{Var: u, Coeff: 1})

				if cfg.AllowOverstaff {
					o := m.NewIntVar(0, slackBound, fmt.Sprintf("over_%s_%s_%s", room.ID, shift, day))
					slacks.Overstaff[key] = o
					terms = append(terms, solver.Term{Var: o, Coeff: -1})
				}

				m.AddEquality(terms, int64(demand))
			}
		}
	}
	return slacks
}

// addRestRule 休息规则：夜班后下一个选择日不排白班
// 相邻性按选择序列的顺序（下标 i 与 i+1）判断，天子集非连续时
// 也按选择顺序生效。仅当 Night 和 Day 班次都在选择集内时启用。
func addRestRule(m *solver.Model, e *model.Entities, vs *VarSpace, cfg *model.SolveConfig) {
	if !cfg.EnforceRestNightToDay {
		return
	}
	nightIdx, hasNight := vs.shiftIdx[model.ShiftNight]
	dayShiftIdx, hasDay := vs.shiftIdx[model.ShiftDay]
	if !hasNight || !hasDay {
		return
	}

	for ni := range e.Nurses {
		for di := 0; di+1 < len(cfg.Days); di++ {
			nightTerms := vs.ForNurseShiftDay(ni, nightIdx, di)
			dayTerms := vs.ForNurseShiftDay(ni, dayShiftIdx, di+1)
			if len(nightTerms) == 0 || len(dayTerms) == 0 {
				continue
			}
			m.AddAtMost(append(nightTerms, dayTerms...), 1)
		}
	}
}

// addChargeCoverage Charge 护士覆盖
// 对每个 (天, 班次)，若 charge 类别房间的总需求 > 0，
// 则至少一名持有 Charge 资质的护士被分配到其中一个房间。
// 没有此类需求或没有可行的 charge 护士时整条约束省略。
func addChargeCoverage(m *solver.Model, e *model.Entities, vs *VarSpace, cfg *model.SolveConfig) {
	if !cfg.RequireChargeNurse {
		return
	}

	var chargeNurses []int
	for ni, n := range e.Nurses {
		if n.HasQualification("Charge") {
			chargeNurses = append(chargeNurses, ni)
		}
	}
	var chargeRooms []int
	for ri, r := range e.Rooms {
		if cfg.IsChargeRoomTag(r.Tag) {
			chargeRooms = append(chargeRooms, ri)
		}
	}
	if len(chargeNurses) == 0 || len(chargeRooms) == 0 {
		return
	}

	for di, day := range cfg.Days {
		for si, shift := range cfg.Shifts {
			totalDemand := 0
			for _, ri := range chargeRooms {
				totalDemand += e.Demand[model.DemandKey{Day: day, RoomID: e.Rooms[ri].ID, Shift: shift}]
			}
			if totalDemand <= 0 {
				continue
			}

			var terms []solver.Term
			for _, ri := range chargeRooms {
				for _, ni := range chargeNurses {
					if idx, ok := vs.index[varKey{nurse: ni, room: ri, shift: si, day: di}]; ok {
						terms = append(terms, solver.Term{Var: vs.entries[idx].v, Coeff: 1})
					}
				}
			}
			if len(terms) > 0 {
				m.AddAtLeast(terms, 1)
			}
		}
	}
}

// addSpecialRoleCoverage 特殊角色（认证）覆盖
// 对每个特殊类别房间有需求的 (天, 班次)：若存在持有要求认证且
// 对该房间可行的护士，则至少分配一名；若无此类护士则静默省略，
// 覆盖退化为普通人力配置。
func addSpecialRoleCoverage(m *solver.Model, e *model.Entities, vs *VarSpace, cfg *model.SolveConfig) {
	if !cfg.RequireSpecialRole || cfg.SpecialRoomTag == "" {
		return
	}

	for ri, r := range e.Rooms {
		if r.Tag != cfg.SpecialRoomTag {
			continue
		}
		for di, day := range cfg.Days {
			for si, shift := range cfg.Shifts {
				if e.Demand[model.DemandKey{Day: day, RoomID: r.ID, Shift: shift}] <= 0 {
					continue
				}
				var terms []solver.Term
				for ni, n := range e.Nurses {
					if n.Certification != cfg.SpecialCertification {
						continue
					}
					if idx, ok := vs.index[varKey{nurse: ni, room: ri, shift: si, day: di}]; ok {
						terms = append(terms, solver.Term{Var: vs.entries[idx].v, Coeff: 1})
					}
				}
				if len(terms) > 0 {
					m.AddAtLeast(terms, 1)
				}
			}
		}
	}
}

// addLocks 锁定指派强制为1
// 锁定行引用的变量不存在时（护士对房间不可行，或标识符无法解析）
// 在调用后端之前立即失败。锁定行按键排序遍历，保证报错确定性。
func addLocks(m *solver.Model, e *model.Entities, vs *VarSpace) error {
	for _, key := range sortedLockKeys(e.Locks) {
		v, ok := vs.Lookup(key.NurseID, key.RoomID, key.Shift, key.Day)
		if !ok {
			return errors.InfeasibleLock(key.Day, key.Shift, key.RoomID, key.NurseID)
		}
		m.FixVar(v, 1)
	}
	return nil
}

// sortedLockKeys 返回启用的锁定键，按 (天, 班次, 房间, 护士) 排序
func sortedLockKeys(locks map[model.LockKey]bool) []model.LockKey {
	keys := make([]model.LockKey, 0, len(locks))
	for key, locked := range locks {
		if locked {
			keys = append(keys, key)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.Day != b.Day {
			return a.Day < b.Day
		}
		if a.Shift != b.Shift {
			return a.Shift < b.Shift
		}
		if a.RoomID != b.RoomID {
			return a.RoomID < b.RoomID
		}
		return a.NurseID < b.NurseID
	})
	return keys
}

// addFairness 公平性偏差（线性化绝对差）
// 配置了周目标班次数时，对每位护士引入 total 与 deviation 变量：
// deviation >= total − target 且 deviation >= target − total。
func addFairness(m *solver.Model, e *model.Entities, vs *VarSpace, cfg *model.SolveConfig, slacks *SlackVars) {
	if cfg.FairnessTarget == nil {
		return
	}
	target := int64(*cfg.FairnessTarget)

	for ni, n := range e.Nurses {
		total := m.NewIntVar(0, fairnessBound, fmt.Sprintf("tot_%s", n.ID))
		terms := vs.ForNurse(ni)
		eq := append(append([]solver.Term(nil), terms...), solver.Term{Var: total, Coeff: -1})
		m.AddEquality(eq, 0)

		dev := m.NewIntVar(0, fairnessBound, fmt.Sprintf("dev_%s", n.ID))
		// dev - total >= -target  (即 dev >= total - target)
		m.AddAtLeast([]solver.Term{{Var: dev, Coeff: 1}, {Var: total, Coeff: -1}}, -target)
		// dev + total >= target   (即 dev >= target - total)
		m.AddAtLeast([]solver.Term{{Var: dev, Coeff: 1}, {Var: total, Coeff: 1}}, target)

		slacks.Deviation[n.ID] = dev
	}
}
