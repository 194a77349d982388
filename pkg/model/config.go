// Package model 定义排班引擎的核心数据模型
package model

import (
	"github.com/bgalitsky/nurse-scheduling/pkg/errors"
)

// Weights 目标函数权重
// 权重为非负整数，不做归一化，相对大小直接决定各软约束之间的权衡优先级。
type Weights struct {
	Preference int `json:"w_pref"`       // 偏好满足奖励
	Understaff int `json:"w_understaff"` // 缺员惩罚
	Overstaff  int `json:"w_overstaff"`  // 超员惩罚
	Fairness   int `json:"w_fairness"`   // 公平性偏差惩罚
	Weekend    int `json:"w_weekend"`    // 周末排班惩罚
}

// DefaultWeights 返回默认权重
func DefaultWeights() Weights {
	return Weights{
		Preference: 5,
		Understaff: 200,
		Overstaff:  5,
		Fairness:   3,
		Weekend:    2,
	}
}

// SolveConfig 单次求解的不可变配置
// 所有开关和权重由调用方按次传入，模型构建只读取不修改。
type SolveConfig struct {
	Days   []string `json:"days"`   // 选择的天子集
	Shifts []string `json:"shifts"` // 选择的班次子集

	EnforceRestNightToDay bool `json:"enforce_rest"`    // 休息规则：夜班后次日不排白班
	RequireChargeNurse    bool `json:"require_charge"`  // Charge 护士覆盖
	RequireSpecialRole    bool `json:"require_special"` // 特殊角色（认证）覆盖
	AllowOverstaff        bool `json:"allow_overstaff"` // 是否允许超员

	Weights          Weights `json:"weights"`
	TimeLimitSeconds int     `json:"time_limit_seconds"`
	Workers          int     `json:"workers"` // 求解器内部搜索并行度

	// 每护士每周目标班次数，nil 表示不启用公平性
	FairnessTarget *int `json:"fairness_target,omitempty"`

	// 需要 Charge 护士的房间类别集合
	ChargeRoomTags []string `json:"charge_room_tags"`

	// 特殊手术房间类别及其要求的认证
	SpecialRoomTag       string `json:"special_room_tag"`
	SpecialCertification string `json:"special_certification"`
}

// DefaultSolveConfig 返回默认配置（完整一周、全部班次）
func DefaultSolveConfig() SolveConfig {
	return SolveConfig{
		Days:                  append([]string(nil), AllDays...),
		Shifts:                append([]string(nil), AllShifts...),
		EnforceRestNightToDay: true,
		RequireChargeNurse:    true,
		RequireSpecialRole:    true,
		AllowOverstaff:        true,
		Weights:               DefaultWeights(),
		TimeLimitSeconds:      20,
		Workers:               8,
		ChargeRoomTags:        []string{"ICU", "ER"},
		SpecialRoomTag:        "OR",
		SpecialCertification:  "CNOR",
	}
}

// Normalize 校验并归一化配置
// 空的天集或班次集在模型构建前被拒绝；天按 Mon..Sun 规范顺序去重排序，
// 使得休息规则的相邻性和周末标签不依赖调用方传入的顺序。
func (c *SolveConfig) Normalize() error {
	if len(c.Days) == 0 || len(c.Shifts) == 0 {
		return errors.ErrEmptyHorizon
	}

	seen := make(map[string]bool, len(c.Days))
	days := make([]string, 0, len(c.Days))
	for _, d := range AllDays {
		for _, sel := range c.Days {
			if sel == d && !seen[d] {
				seen[d] = true
				days = append(days, d)
			}
		}
	}
	for _, sel := range c.Days {
		if DayIndex(sel) < 0 {
			return errors.InvalidInput("days", "未知的天标签: "+sel)
		}
	}
	c.Days = days

	seenShift := make(map[string]bool, len(c.Shifts))
	shifts := make([]string, 0, len(c.Shifts))
	for _, s := range c.Shifts {
		if !IsKnownShift(s) {
			return errors.InvalidInput("shifts", "未知的班次标签: "+s)
		}
		if !seenShift[s] {
			seenShift[s] = true
			shifts = append(shifts, s)
		}
	}
	c.Shifts = shifts

	if c.Weights.Preference < 0 || c.Weights.Understaff < 0 || c.Weights.Overstaff < 0 ||
		c.Weights.Fairness < 0 || c.Weights.Weekend < 0 {
		return errors.InvalidInput("weights", "权重必须为非负整数")
	}
	if c.TimeLimitSeconds <= 0 {
		c.TimeLimitSeconds = 20
	}
	if c.Workers <= 0 {
		c.Workers = 8
	}
	if c.FairnessTarget != nil && *c.FairnessTarget < 0 {
		return errors.InvalidInput("fairness_target", "目标班次数必须为非负整数")
	}
	return nil
}

// HasShift 检查班次是否在选择集内
func (c *SolveConfig) HasShift(shift string) bool {
	for _, s := range c.Shifts {
		if s == shift {
			return true
		}
	}
	return false
}

// IsChargeRoomTag 检查房间类别是否需要 Charge 护士
func (c *SolveConfig) IsChargeRoomTag(tag string) bool {
	if tag == "" {
		return false
	}
	for _, t := range c.ChargeRoomTags {
		if t == tag {
			return true
		}
	}
	return false
}
