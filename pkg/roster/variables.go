// Package roster 将病房人力数据构建为周排班优化模型并求解
package roster

import (
	"fmt"

	"github.com/bgalitsky/nurse-scheduling/pkg/model"
	"github.com/bgalitsky/nurse-scheduling/pkg/solver"
)

// varKey 变量复合键（全部为下标，避免字符串元组哈希开销）
type varKey struct {
	nurse int
	room  int
	shift int
	day   int
}

// varEntry 稀疏变量空间中的一个条目
type varEntry struct {
	key varKey
	v   solver.Var
}

// VarSpace 稀疏决策变量空间
// 只为可行的 (护士, 房间) 对创建变量——空间按构造即稀疏，不是事后过滤。
// 不可行组合的查询返回"变量不存在"，与"变量固定为0"在语义上不同：
// 锁定一个不存在的变量是硬错误，而已存在变量取值为0只是未分配。
type VarSpace struct {
	nurses []*model.Nurse
	rooms  []*model.Room
	days   []string
	shifts []string

	nurseIdx map[string]int
	roomIdx  map[string]int
	shiftIdx map[string]int
	dayIdx   map[string]int

	entries []varEntry
	index   map[varKey]int // varKey -> entries 下标
}

// BuildVariables 构建稀疏变量空间
// 变量总数 = |天| × |班次| × Σ_房间(对该房间可行的护士数)。
func BuildVariables(m *solver.Model, e *model.Entities, f *Feasibility, cfg *model.SolveConfig) *VarSpace {
	vs := &VarSpace{
		nurses:   e.Nurses,
		rooms:    e.Rooms,
		days:     cfg.Days,
		shifts:   cfg.Shifts,
		nurseIdx: make(map[string]int, len(e.Nurses)),
		roomIdx:  make(map[string]int, len(e.Rooms)),
		shiftIdx: make(map[string]int, len(cfg.Shifts)),
		dayIdx:   make(map[string]int, len(cfg.Days)),
		index:    make(map[varKey]int),
	}
	for i, n := range e.Nurses {
		vs.nurseIdx[n.ID] = i
	}
	for j, r := range e.Rooms {
		vs.roomIdx[r.ID] = j
	}
	for k, s := range cfg.Shifts {
		vs.shiftIdx[s] = k
	}
	for l, d := range cfg.Days {
		vs.dayIdx[d] = l
	}

	for ni, n := range e.Nurses {
		for ri, r := range e.Rooms {
			if !f.EligibleAt(ni, ri) {
				continue
			}
			for si, shift := range cfg.Shifts {
				for di, day := range cfg.Days {
					key := varKey{nurse: ni, room: ri, shift: si, day: di}
					v := m.NewBoolVar(fmt.Sprintf("x_%s_%s_%s_%s", n.ID, r.ID, shift, day))
					vs.index[key] = len(vs.entries)
					vs.entries = append(vs.entries, varEntry{key: key, v: v})
				}
			}
		}
	}
	return vs
}

// Count 返回变量总数
func (vs *VarSpace) Count() int {
	return len(vs.entries)
}

// Lookup 查找变量，第二个返回值指示变量是否存在
func (vs *VarSpace) Lookup(nurseID, roomID, shift, day string) (solver.Var, bool) {
	ni, ok := vs.nurseIdx[nurseID]
	if !ok {
		return solver.Var{}, false
	}
	ri, ok := vs.roomIdx[roomID]
	if !ok {
		return solver.Var{}, false
	}
	si, ok := vs.shiftIdx[shift]
	if !ok {
		return solver.Var{}, false
	}
	di, ok := vs.dayIdx[day]
	if !ok {
		return solver.Var{}, false
	}
	idx, ok := vs.index[varKey{nurse: ni, room: ri, shift: si, day: di}]
	if !ok {
		return solver.Var{}, false
	}
	return vs.entries[idx].v, true
}

// ForNurseDay 返回某护士某天的全部变量项
func (vs *VarSpace) ForNurseDay(nurseIdx, dayIdx int) []solver.Term {
	var terms []solver.Term
	for _, ent := range vs.entries {
		if ent.key.nurse == nurseIdx && ent.key.day == dayIdx {
			terms = append(terms, solver.Term{Var: ent.v, Coeff: 1})
		}
	}
	return terms
}

// ForNurse 返回某护士在整个选择范围内的全部变量项
func (vs *VarSpace) ForNurse(nurseIdx int) []solver.Term {
	var terms []solver.Term
	for _, ent := range vs.entries {
		if ent.key.nurse == nurseIdx {
			terms = append(terms, solver.Term{Var: ent.v, Coeff: 1})
		}
	}
	return terms
}

// ForNurseShiftDay 返回某护士某班次某天的全部变量项（跨房间）
func (vs *VarSpace) ForNurseShiftDay(nurseIdx, shiftIdx, dayIdx int) []solver.Term {
	var terms []solver.Term
	for _, ent := range vs.entries {
		if ent.key.nurse == nurseIdx && ent.key.shift == shiftIdx && ent.key.day == dayIdx {
			terms = append(terms, solver.Term{Var: ent.v, Coeff: 1})
		}
	}
	return terms
}

// ForSlot 返回某 (天, 房间, 班次) 槽位的全部变量项（跨护士）
func (vs *VarSpace) ForSlot(dayIdx, roomIdx, shiftIdx int) []solver.Term {
	var terms []solver.Term
	for _, ent := range vs.entries {
		if ent.key.day == dayIdx && ent.key.room == roomIdx && ent.key.shift == shiftIdx {
			terms = append(terms, solver.Term{Var: ent.v, Coeff: 1})
		}
	}
	return terms
}

// Each 按创建顺序遍历全部变量
func (vs *VarSpace) Each(fn func(nurse *model.Nurse, room *model.Room, shift, day string, v solver.Var)) {
	for _, ent := range vs.entries {
		fn(vs.nurses[ent.key.nurse], vs.rooms[ent.key.room], vs.shifts[ent.key.shift], vs.days[ent.key.day], ent.v)
	}
}
