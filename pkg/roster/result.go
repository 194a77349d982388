// Package roster 将病房人力数据构建为周排班优化模型并求解
package roster

import (
	"sort"

	"github.com/bgalitsky/nurse-scheduling/pkg/model"
	"github.com/bgalitsky/nurse-scheduling/pkg/solver"
)

// materialize 从求解结果重建排班表
// 对选择的天 × 全部房间 × 选择的班次的完整叉积（含零需求槽位）
// 各生成一条记录；松弛诊断值仅在找到解时填充。
func materialize(e *model.Entities, vs *VarSpace, slacks *SlackVars, cfg *model.SolveConfig, sol *solver.Solution) []model.SlotResult {
	slots := make([]model.SlotResult, 0, len(cfg.Days)*len(e.Rooms)*len(cfg.Shifts))

	for _, day := range cfg.Days {
		for _, room := range e.Rooms {
			for _, shift := range cfg.Shifts {
				key := model.DemandKey{Day: day, RoomID: room.ID, Shift: shift}
				slot := model.SlotResult{
					Day:            day,
					RoomID:         room.ID,
					RoomName:       room.Name,
					Shift:          shift,
					RequiredNurses: e.Demand[key],
					AssignedNurses: []string{},
				}

				if sol != nil && sol.HasValues() {
					for _, n := range e.Nurses {
						if v, ok := vs.Lookup(n.ID, room.ID, shift, day); ok && sol.BoolValue(v) {
							slot.AssignedNurses = append(slot.AssignedNurses, n.ID)
						}
					}
					sort.Strings(slot.AssignedNurses)

					u := int(sol.Value(slacks.Understaff[key]))
					slot.Understaff = &u
					if slacks.Overstaff != nil {
						o := int(sol.Value(slacks.Overstaff[key]))
						slot.Overstaff = &o
					}
				}

				slots = append(slots, slot)
			}
		}
	}
	return slots
}
