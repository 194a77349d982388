// Package model 定义排班引擎的核心数据模型
package model

// RawDemandRow 人力需求原始输入行
type RawDemandRow struct {
	Day            string `json:"day"`
	RoomID         string `json:"room_id"`
	Shift          string `json:"shift"`
	RequiredNurses string `json:"required_nurses"`
}

// RawPreferenceRow 偏好原始输入行
type RawPreferenceRow struct {
	NurseID    string `json:"nurse_id"`
	Day        string `json:"day"`
	Shift      string `json:"shift"`
	Preference string `json:"preference"`
}

// RawLockRow 锁定指派原始输入行
type RawLockRow struct {
	Day     string `json:"day"`
	Shift   string `json:"shift"`
	RoomID  string `json:"room_id"`
	NurseID string `json:"nurse_id"`
	Locked  string `json:"locked"` // 0/1
}

// DemandKey 需求槽位键 (天, 房间, 班次)
type DemandKey struct {
	Day    string `json:"day"`
	RoomID string `json:"room_id"`
	Shift  string `json:"shift"`
}

// PrefKey 偏好键 (护士, 天, 班次)
type PrefKey struct {
	NurseID string `json:"nurse_id"`
	Day     string `json:"day"`
	Shift   string `json:"shift"`
}

// LockKey 锁定键 (天, 班次, 房间, 护士)
type LockKey struct {
	Day     string `json:"day"`
	Shift   string `json:"shift"`
	RoomID  string `json:"room_id"`
	NurseID string `json:"nurse_id"`
}

// Entities 归一化后的实体快照
// 每次求解从不可变输入重新构建，求解之间不共享可变状态。
type Entities struct {
	Nurses      []*Nurse
	Rooms       []*Room
	Demand      map[DemandKey]int
	Preferences map[PrefKey]int
	Locks       map[LockKey]bool
}

// NurseByID 根据ID查找护士，不存在返回 nil
func (e *Entities) NurseByID(id string) *Nurse {
	for _, n := range e.Nurses {
		if n.ID == id {
			return n
		}
	}
	return nil
}

// RoomByID 根据ID查找房间，不存在返回 nil
func (e *Entities) RoomByID(id string) *Room {
	for _, r := range e.Rooms {
		if r.ID == id {
			return r
		}
	}
	return nil
}

// DemandAt 返回槽位需求，缺失记录默认为 0
func (e *Entities) DemandAt(day, roomID, shift string) int {
	return e.Demand[DemandKey{Day: day, RoomID: roomID, Shift: shift}]
}

// PreferenceAt 返回偏好分数，缺失记录默认为 0
func (e *Entities) PreferenceAt(nurseID, day, shift string) int {
	return e.Preferences[PrefKey{NurseID: nurseID, Day: day, Shift: shift}]
}
