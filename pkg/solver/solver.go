// Package solver 定义能力受限的求解后端接口
package solver

import "context"

// Status 求解状态
type Status string

const (
	StatusOptimal      Status = "OPTIMAL"
	StatusFeasible     Status = "FEASIBLE"
	StatusInfeasible   Status = "INFEASIBLE"
	StatusUnknown      Status = "UNKNOWN"
	StatusModelInvalid Status = "MODEL_INVALID"
)

// HasSolution 检查状态是否带有可用解
func (s Status) HasSolution() bool {
	return s == StatusOptimal || s == StatusFeasible
}

// Options 求解选项
// 时间上限是唯一的取消机制：超时的求解仍返回迄今找到的最优可行解
// （状态 FEASIBLE），没有找到任何解则返回 UNKNOWN。
type Options struct {
	TimeLimitSeconds int
	Workers          int // 内部搜索并行度
}

// Solution 求解结果
type Solution struct {
	Status    Status
	Objective float64
	values    []int64
}

// NewSolution 构造带变量取值的解（由后端适配器调用）
func NewSolution(status Status, objective float64, values []int64) *Solution {
	return &Solution{Status: status, Objective: objective, values: values}
}

// HasValues 检查解是否携带变量取值
func (s *Solution) HasValues() bool {
	return s.Status.HasSolution() && s.values != nil
}

// Value 返回变量取值（仅在 HasValues 时有意义）
func (s *Solution) Value(v Var) int64 {
	return s.values[v.Index()]
}

// BoolValue 返回布尔变量取值
func (s *Solution) BoolValue(v Var) bool {
	return s.values[v.Index()] != 0
}

// Backend 求解后端
// 调用方阻塞直到后端返回，受时间上限约束。
type Backend interface {
	// Solve 求解模型
	Solve(ctx context.Context, m *Model, opts Options) (*Solution, error)

	// Name 返回后端名称
	Name() string
}
