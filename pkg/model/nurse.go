// Package model 定义排班引擎的核心数据模型
package model

import "sort"

// RawNurseRow 护士原始输入行（表格一行，单元格为字符串）
type RawNurseRow struct {
	NurseID          string `json:"nurse_id"`
	Qualifications   string `json:"qualifications"` // 分号分隔
	Certification    string `json:"certification"`
	MaxShiftsPerDay  string `json:"max_shifts_per_day"`
	MaxShiftsPerWeek string `json:"max_shifts_per_week"`
}

// Nurse 护士实体
type Nurse struct {
	ID               string          `json:"nurse_id"`
	Qualifications   map[string]bool `json:"-"`
	Certification    string          `json:"certification"`
	MaxShiftsPerDay  int             `json:"max_shifts_per_day"`
	MaxShiftsPerWeek int             `json:"max_shifts_per_week"`
}

// HasQualification 检查护士是否持有某资质
func (n *Nurse) HasQualification(q string) bool {
	return n.Qualifications[q]
}

// QualificationList 返回排序后的资质列表（用于序列化）
func (n *Nurse) QualificationList() []string {
	list := make([]string, 0, len(n.Qualifications))
	for q := range n.Qualifications {
		list = append(list, q)
	}
	sort.Strings(list)
	return list
}
