// Package model 定义排班引擎的核心数据模型
package model

import (
	"time"

	"github.com/google/uuid"
)

// BaseModel 基础模型（包含通用字段）
type BaseModel struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt *time.Time `json:"-" db:"deleted_at"`
}

// NewBaseModel 创建新的基础模型
func NewBaseModel() BaseModel {
	now := time.Now()
	return BaseModel{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// JSONMap 用于存储 JSONB 数据
type JSONMap map[string]interface{}

// 周排班的封闭词汇表：天按 Mon..Sun 排序，班次为 Day/Evening/Night。
// 选择的天子集会按此顺序归一化，休息规则的相邻性按归一化后的选择顺序计算。
var (
	// AllDays 一周内所有天（规范顺序）
	AllDays = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

	// AllShifts 所有班次
	AllShifts = []string{"Day", "Evening", "Night"}
)

const (
	// ShiftDay 白班
	ShiftDay = "Day"
	// ShiftEvening 晚班
	ShiftEvening = "Evening"
	// ShiftNight 夜班
	ShiftNight = "Night"
)

// IsWeekend 检查某天是否为周末
func IsWeekend(day string) bool {
	return day == "Sat" || day == "Sun"
}

// DayIndex 返回某天在规范顺序中的下标，未知返回 -1
func DayIndex(day string) int {
	for i, d := range AllDays {
		if d == day {
			return i
		}
	}
	return -1
}

// IsKnownShift 检查班次是否在词汇表内
func IsKnownShift(shift string) bool {
	for _, s := range AllShifts {
		if s == shift {
			return true
		}
	}
	return false
}
