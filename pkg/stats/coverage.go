// Package stats 提供排班统计分析功能
package stats

import (
	"github.com/bgalitsky/nurse-scheduling/pkg/model"
)

// CoverageMetrics 覆盖率指标
type CoverageMetrics struct {
	// 整体覆盖率
	TotalSlots    int     `json:"total_slots"`    // 总槽位数（含零需求）
	DemandedSlots int     `json:"demanded_slots"` // 有需求的槽位数
	FilledSlots   int     `json:"filled_slots"`   // 完全满足需求的槽位数
	FillRate      float64 `json:"fill_rate"`      // 满足率 (%)

	// 人力汇总
	TotalRequired   int `json:"total_required"`   // 总需求人次
	TotalAssigned   int `json:"total_assigned"`   // 总分配人次
	TotalUnderstaff int `json:"total_understaff"` // 总缺员人次
	TotalOverstaff  int `json:"total_overstaff"`  // 总超员人次

	// 按维度统计
	DailyCoverage map[string]DayCoverage `json:"daily_coverage"` // 每日覆盖情况
	RoomCoverage  map[string]float64     `json:"room_coverage"`  // 按房间满足率 (%)
	ShiftCoverage map[string]float64     `json:"shift_coverage"` // 按班次满足率 (%)

	// 问题识别
	UnderstaffedSlots []UnderstaffedSlot `json:"understaffed_slots"` // 缺员槽位
}

// DayCoverage 每日覆盖情况
type DayCoverage struct {
	Day        string  `json:"day"`
	Required   int     `json:"required"`
	Assigned   int     `json:"assigned"`
	Understaff int     `json:"understaff"`
	FillRate   float64 `json:"fill_rate"`
}

// UnderstaffedSlot 缺员槽位
type UnderstaffedSlot struct {
	Day      string `json:"day"`
	RoomID   string `json:"room_id"`
	RoomName string `json:"room_name"`
	Shift    string `json:"shift"`
	Required int    `json:"required"`
	Assigned int    `json:"assigned"`
	Shortage int    `json:"shortage"`
}

// CoverageAnalyzer 覆盖率分析器
type CoverageAnalyzer struct{}

// NewCoverageAnalyzer 创建覆盖率分析器
func NewCoverageAnalyzer() *CoverageAnalyzer {
	return &CoverageAnalyzer{}
}

// Analyze 分析排班结果的覆盖率
// 缺员优先取求解器的松弛诊断值；没有诊断值时退化为 required−assigned。
func (c *CoverageAnalyzer) Analyze(slots []model.SlotResult) *CoverageMetrics {
	metrics := &CoverageMetrics{
		DailyCoverage: make(map[string]DayCoverage),
		RoomCoverage:  make(map[string]float64),
		ShiftCoverage: make(map[string]float64),
	}
	if len(slots) == 0 {
		metrics.FillRate = 100
		return metrics
	}

	roomRequired := make(map[string]int)
	roomFilled := make(map[string]int)
	shiftRequired := make(map[string]int)
	shiftFilled := make(map[string]int)

	for i := range slots {
		s := &slots[i]
		assigned := s.AssignedCount()

		metrics.TotalSlots++
		metrics.TotalRequired += s.RequiredNurses
		metrics.TotalAssigned += assigned

		understaff := s.RequiredNurses - assigned
		if s.Understaff != nil {
			understaff = *s.Understaff
		}
		if understaff < 0 {
			understaff = 0
		}
		metrics.TotalUnderstaff += understaff
		if s.Overstaff != nil {
			metrics.TotalOverstaff += *s.Overstaff
		}

		day := metrics.DailyCoverage[s.Day]
		day.Day = s.Day
		day.Required += s.RequiredNurses
		day.Assigned += assigned
		day.Understaff += understaff
		metrics.DailyCoverage[s.Day] = day

		if s.RequiredNurses > 0 {
			metrics.DemandedSlots++
			roomRequired[s.RoomID]++
			shiftRequired[s.Shift]++
			if understaff == 0 {
				metrics.FilledSlots++
				roomFilled[s.RoomID]++
				shiftFilled[s.Shift]++
			} else {
				metrics.UnderstaffedSlots = append(metrics.UnderstaffedSlots, UnderstaffedSlot{
					Day:      s.Day,
					RoomID:   s.RoomID,
					RoomName: s.RoomName,
					Shift:    s.Shift,
					Required: s.RequiredNurses,
					Assigned: assigned,
					Shortage: understaff,
				})
			}
		}
	}

	if metrics.DemandedSlots > 0 {
		metrics.FillRate = float64(metrics.FilledSlots) / float64(metrics.DemandedSlots) * 100
	} else {
		metrics.FillRate = 100
	}

	for day, stats := range metrics.DailyCoverage {
		if stats.Required > 0 {
			stats.FillRate = float64(stats.Required-stats.Understaff) / float64(stats.Required) * 100
		} else {
			stats.FillRate = 100
		}
		metrics.DailyCoverage[day] = stats
	}

	for roomID, total := range roomRequired {
		metrics.RoomCoverage[roomID] = float64(roomFilled[roomID]) / float64(total) * 100
	}
	for shift, total := range shiftRequired {
		metrics.ShiftCoverage[shift] = float64(shiftFilled[shift]) / float64(total) * 100
	}

	return metrics
}
