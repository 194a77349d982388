// Package model 定义排班引擎的核心数据模型
package model

import (
	"strings"
	"time"
)

// SlotResult 单个 (天, 房间, 班次) 槽位的排班结果
// 选择的完整叉积都有一条记录，包括零需求槽位。
type SlotResult struct {
	Day            string   `json:"day"`
	RoomID         string   `json:"room_id"`
	RoomName       string   `json:"room_name"`
	Shift          string   `json:"shift"`
	RequiredNurses int      `json:"required_nurses"`
	AssignedNurses []string `json:"assigned_nurses"`

	// 松弛诊断值，仅在找到解时存在
	Understaff *int `json:"understaff,omitempty"`
	Overstaff  *int `json:"overstaff,omitempty"`
}

// AssignedJoined 返回分号连接的护士ID列表（顺序稳定）
func (s *SlotResult) AssignedJoined() string {
	return strings.Join(s.AssignedNurses, ";")
}

// AssignedCount 返回分配的护士数
func (s *SlotResult) AssignedCount() int {
	return len(s.AssignedNurses)
}

// SolveSummary 求解摘要
type SolveSummary struct {
	Status      string        `json:"status"` // OPTIMAL/FEASIBLE/INFEASIBLE/UNKNOWN/MODEL_INVALID
	Objective   *float64      `json:"objective,omitempty"`
	Variables   int           `json:"variables"`
	Constraints int           `json:"constraints"`
	Duration    time.Duration `json:"-"`
	DurationStr string        `json:"duration"`
}

// HasSolution 检查是否找到了解
func (s *SolveSummary) HasSolution() bool {
	return s.Status == "OPTIMAL" || s.Status == "FEASIBLE"
}

// RosterResult 完整求解结果
type RosterResult struct {
	Summary SolveSummary `json:"summary"`
	Slots   []SlotResult `json:"slots"`
}

// SlotAt 查找指定槽位的结果，不存在返回 nil
func (r *RosterResult) SlotAt(day, roomID, shift string) *SlotResult {
	for i := range r.Slots {
		s := &r.Slots[i]
		if s.Day == day && s.RoomID == roomID && s.Shift == shift {
			return s
		}
	}
	return nil
}

// NurseTotals 统计每位护士在整个结果中的分配次数
func (r *RosterResult) NurseTotals() map[string]int {
	totals := make(map[string]int)
	for i := range r.Slots {
		for _, n := range r.Slots[i].AssignedNurses {
			totals[n]++
		}
	}
	return totals
}
