package model

import (
	"time"

	"github.com/google/uuid"
)

// Dataset 排班数据集
// 一个数据集打包一次排班所需的全部输入行（护士、房间、需求、偏好、锁定）。
type Dataset struct {
	ID          uuid.UUID          `json:"id" db:"id"`
	OrgID       uuid.UUID          `json:"org_id" db:"org_id"`
	Name        string             `json:"name" db:"name"`
	Description string             `json:"description,omitempty" db:"description"`
	Nurses      []RawNurseRow      `json:"nurses" db:"nurses"`
	Rooms       []RawRoomRow       `json:"rooms" db:"rooms"`
	Demand      []RawDemandRow     `json:"demand" db:"demand"`
	Preferences []RawPreferenceRow `json:"preferences" db:"preferences"`
	Locks       []RawLockRow       `json:"locks" db:"locks"`
	CreatedAt   time.Time          `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" db:"updated_at"`
}

// RosterRun 求解运行记录
// 每次成功进入求解器的请求落一条记录，含状态与诊断摘要。
type RosterRun struct {
	ID          uuid.UUID    `json:"id" db:"id"`
	OrgID       uuid.UUID    `json:"org_id" db:"org_id"`
	DatasetID   *uuid.UUID   `json:"dataset_id,omitempty" db:"dataset_id"`
	Status      string       `json:"status" db:"status"`
	Objective   *float64     `json:"objective,omitempty" db:"objective"`
	Variables   int          `json:"variables" db:"variables"`
	Constraints int          `json:"constraints" db:"constraints"`
	DurationMs  int64        `json:"duration_ms" db:"duration_ms"`
	Config      SolveConfig  `json:"config" db:"config"`
	Slots       []SlotResult `json:"slots" db:"slots"`
	CreatedAt   time.Time    `json:"created_at" db:"created_at"`
}

// HasSolution 判断运行是否产出可行解
func (r *RosterRun) HasSolution() bool {
	return r.Status == "OPTIMAL" || r.Status == "FEASIBLE"
}
