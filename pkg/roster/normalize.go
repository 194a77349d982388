// Package roster 将病房人力数据构建为周排班优化模型并求解
package roster

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bgalitsky/nurse-scheduling/pkg/errors"
	"github.com/bgalitsky/nurse-scheduling/pkg/model"
)

// Input 一次求解的原始输入快照
type Input struct {
	Nurses      []model.RawNurseRow      `json:"nurses"`
	Rooms       []model.RawRoomRow       `json:"rooms"`
	Demand      []model.RawDemandRow     `json:"demand"`
	Preferences []model.RawPreferenceRow `json:"preferences"`
	Locks       []model.RawLockRow       `json:"locks"`
}

// Normalize 将原始表格行解析为类型化实体
// 资质/要求字符串按分号切分、去空白、丢弃空项、集合去重。
// 数值字段缺失或无法解析时立即失败，错误定位到表、行和字段。
func Normalize(in *Input) (*model.Entities, error) {
	e := &model.Entities{
		Demand:      make(map[model.DemandKey]int),
		Preferences: make(map[model.PrefKey]int),
		Locks:       make(map[model.LockKey]bool),
	}

	seenNurse := make(map[string]bool)
	for _, row := range in.Nurses {
		id := strings.TrimSpace(row.NurseID)
		if id == "" {
			return nil, errors.MalformedInput("nurses", row.NurseID, "nurse_id", "不能为空")
		}
		if seenNurse[id] {
			return nil, errors.MalformedInput("nurses", id, "nurse_id", "重复的护士ID")
		}
		seenNurse[id] = true

		maxDay, err := parseNonNegInt(row.MaxShiftsPerDay)
		if err != nil {
			return nil, errors.MalformedInput("nurses", id, "max_shifts_per_day", err.Error())
		}
		maxWeek, err := parseNonNegInt(row.MaxShiftsPerWeek)
		if err != nil {
			return nil, errors.MalformedInput("nurses", id, "max_shifts_per_week", err.Error())
		}

		e.Nurses = append(e.Nurses, &model.Nurse{
			ID:               id,
			Qualifications:   SplitSemicolonSet(row.Qualifications),
			Certification:    strings.TrimSpace(row.Certification),
			MaxShiftsPerDay:  maxDay,
			MaxShiftsPerWeek: maxWeek,
		})
	}

	seenRoom := make(map[string]bool)
	for _, row := range in.Rooms {
		id := strings.TrimSpace(row.RoomID)
		if id == "" {
			return nil, errors.MalformedInput("rooms", row.RoomID, "room_id", "不能为空")
		}
		if seenRoom[id] {
			return nil, errors.MalformedInput("rooms", id, "room_id", "重复的房间ID")
		}
		seenRoom[id] = true

		e.Rooms = append(e.Rooms, &model.Room{
			ID:                     id,
			Name:                   strings.TrimSpace(row.RoomName),
			RequiredQualifications: SplitSemicolonSet(row.RequiredQualifications),
			Tag:                    strings.TrimSpace(row.Tag),
		})
	}

	for i, row := range in.Demand {
		rowID := fmt.Sprintf("%d(%s,%s,%s)", i+1, row.Day, row.RoomID, row.Shift)
		required, err := parseNonNegInt(row.RequiredNurses)
		if err != nil {
			return nil, errors.MalformedInput("demand", rowID, "required_nurses", err.Error())
		}
		key := model.DemandKey{
			Day:    strings.TrimSpace(row.Day),
			RoomID: strings.TrimSpace(row.RoomID),
			Shift:  strings.TrimSpace(row.Shift),
		}
		e.Demand[key] = required
	}

	for i, row := range in.Preferences {
		rowID := fmt.Sprintf("%d(%s,%s,%s)", i+1, row.NurseID, row.Day, row.Shift)
		score, err := parseInt(row.Preference)
		if err != nil {
			return nil, errors.MalformedInput("preferences", rowID, "preference", err.Error())
		}
		key := model.PrefKey{
			NurseID: strings.TrimSpace(row.NurseID),
			Day:     strings.TrimSpace(row.Day),
			Shift:   strings.TrimSpace(row.Shift),
		}
		e.Preferences[key] = score
	}

	for i, row := range in.Locks {
		rowID := fmt.Sprintf("%d(%s,%s,%s,%s)", i+1, row.Day, row.Shift, row.RoomID, row.NurseID)
		locked, err := parseLockedFlag(row.Locked)
		if err != nil {
			return nil, errors.MalformedInput("locks", rowID, "locked", err.Error())
		}
		key := model.LockKey{
			Day:     strings.TrimSpace(row.Day),
			Shift:   strings.TrimSpace(row.Shift),
			RoomID:  strings.TrimSpace(row.RoomID),
			NurseID: strings.TrimSpace(row.NurseID),
		}
		e.Locks[key] = locked
	}

	return e, nil
}

// SplitSemicolonSet 按分号切分为字符串集合
// 每项去空白，空项丢弃，重复项合并。
func SplitSemicolonSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, token := range strings.Split(s, ";") {
		token = strings.TrimSpace(token)
		if token != "" {
			set[token] = true
		}
	}
	return set
}

// parseInt 解析整数单元格，空值视为缺失
func parseInt(cell string) (int, error) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return 0, fmt.Errorf("数值字段缺失")
	}
	v, err := strconv.Atoi(cell)
	if err != nil {
		return 0, fmt.Errorf("无法解析为整数: %q", cell)
	}
	return v, nil
}

// parseNonNegInt 解析非负整数单元格
func parseNonNegInt(cell string) (int, error) {
	v, err := parseInt(cell)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, fmt.Errorf("必须为非负整数，实际为 %d", v)
	}
	return v, nil
}

// parseLockedFlag 解析锁定标志，空值视为未锁定
func parseLockedFlag(cell string) (bool, error) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return false, nil
	}
	v, err := strconv.Atoi(cell)
	if err != nil {
		return false, fmt.Errorf("锁定标志必须为 0 或 1: %q", cell)
	}
	return v != 0, nil
}
