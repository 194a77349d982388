// Package model 定义排班引擎的核心数据模型
package model

import "sort"

// RawRoomRow 房间原始输入行
type RawRoomRow struct {
	RoomID                 string `json:"room_id"`
	RoomName               string `json:"room_name"`
	RequiredQualifications string `json:"required_qualifications"` // 分号分隔
	Tag                    string `json:"tag"`                     // 房间类别，如 ICU/ER/OR，可为空
}

// Room 房间实体
type Room struct {
	ID                     string          `json:"room_id"`
	Name                   string          `json:"room_name"`
	RequiredQualifications map[string]bool `json:"-"`
	Tag                    string          `json:"tag"`
}

// RequirementList 返回排序后的资质要求列表（用于序列化）
func (r *Room) RequirementList() []string {
	list := make([]string, 0, len(r.RequiredQualifications))
	for q := range r.RequiredQualifications {
		list = append(list, q)
	}
	sort.Strings(list)
	return list
}
