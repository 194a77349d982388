// Package roster 将病房人力数据构建为周排班优化模型并求解
package roster

import "github.com/bgalitsky/nurse-scheduling/pkg/model"

// Feasible 可行性判定：房间要求的资质集合是护士资质集合的子集
// 纯谓词；要求集合为空的房间对所有护士都可行。
func Feasible(nurse *model.Nurse, room *model.Room) bool {
	for q := range room.RequiredQualifications {
		if !nurse.HasQualification(q) {
			return false
		}
	}
	return true
}

// Feasibility (护士, 房间) 可行性矩阵
// 每对只判定一次，结果在所有 (班次, 天) 组合间复用。
type Feasibility struct {
	nurseIdx map[string]int
	roomIdx  map[string]int
	eligible [][]bool // [护士下标][房间下标]
}

// NewFeasibility 基于实体快照构建可行性矩阵
func NewFeasibility(e *model.Entities) *Feasibility {
	f := &Feasibility{
		nurseIdx: make(map[string]int, len(e.Nurses)),
		roomIdx:  make(map[string]int, len(e.Rooms)),
		eligible: make([][]bool, len(e.Nurses)),
	}
	for i, n := range e.Nurses {
		f.nurseIdx[n.ID] = i
	}
	for j, r := range e.Rooms {
		f.roomIdx[r.ID] = j
	}
	for i, n := range e.Nurses {
		f.eligible[i] = make([]bool, len(e.Rooms))
		for j, r := range e.Rooms {
			f.eligible[i][j] = Feasible(n, r)
		}
	}
	return f
}

// Eligible 检查 (护士, 房间) 对是否可行，未知ID返回 false
func (f *Feasibility) Eligible(nurseID, roomID string) bool {
	i, ok := f.nurseIdx[nurseID]
	if !ok {
		return false
	}
	j, ok := f.roomIdx[roomID]
	if !ok {
		return false
	}
	return f.eligible[i][j]
}

// EligibleAt 按下标检查可行性
func (f *Feasibility) EligibleAt(nurseIdx, roomIdx int) bool {
	return f.eligible[nurseIdx][roomIdx]
}

// EligibleNurseCount 统计对某房间可行的护士数
func (f *Feasibility) EligibleNurseCount(roomID string) int {
	j, ok := f.roomIdx[roomID]
	if !ok {
		return 0
	}
	count := 0
	for i := range f.eligible {
		if f.eligible[i][j] {
			count++
		}
	}
	return count
}
