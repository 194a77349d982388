// Package solver 定义能力受限的求解后端接口
// 后端只需支持：布尔/有界整数决策变量、线性等式和不等式约束、
// 单个线性最大化目标、时间预算和搜索并行度提示、状态枚举报告。
// 任何满足该契约的后端（CP 或 MIP）都可以替换使用。
package solver

import "math"

// 无界约束边界哨兵值
const (
	NoLowerBound int64 = math.MinInt64
	NoUpperBound int64 = math.MaxInt64
)

// Var 决策变量句柄
type Var struct {
	index int
}

// Index 返回变量在模型中的下标
func (v Var) Index() int {
	return v.index
}

// VarDef 变量定义
type VarDef struct {
	Name   string
	Lb     int64
	Ub     int64
	IsBool bool
}

// Term 线性项 coeff * var
type Term struct {
	Var   Var
	Coeff int64
}

// LinearConstraint 线性约束 lb <= Σ terms <= ub
type LinearConstraint struct {
	Terms []Term
	Lb    int64
	Ub    int64
}

// Model 与后端无关的线性模型
// 变量、约束和目标在构建期累积，之后整体交给后端求解。
type Model struct {
	vars        []VarDef
	constraints []LinearConstraint
	objective   []Term
}

// NewModel 创建空模型
func NewModel() *Model {
	return &Model{}
}

// NewBoolVar 创建布尔决策变量
func (m *Model) NewBoolVar(name string) Var {
	m.vars = append(m.vars, VarDef{Name: name, Lb: 0, Ub: 1, IsBool: true})
	return Var{index: len(m.vars) - 1}
}

// NewIntVar 创建有界整数变量
func (m *Model) NewIntVar(lb, ub int64, name string) Var {
	m.vars = append(m.vars, VarDef{Name: name, Lb: lb, Ub: ub})
	return Var{index: len(m.vars) - 1}
}

// AddLinearConstraint 添加约束 lb <= Σ terms <= ub
func (m *Model) AddLinearConstraint(terms []Term, lb, ub int64) {
	m.constraints = append(m.constraints, LinearConstraint{Terms: terms, Lb: lb, Ub: ub})
}

// AddAtMost 添加约束 Σ terms <= ub
func (m *Model) AddAtMost(terms []Term, ub int64) {
	m.AddLinearConstraint(terms, NoLowerBound, ub)
}

// AddAtLeast 添加约束 Σ terms >= lb
func (m *Model) AddAtLeast(terms []Term, lb int64) {
	m.AddLinearConstraint(terms, lb, NoUpperBound)
}

// AddEquality 添加约束 Σ terms == value
func (m *Model) AddEquality(terms []Term, value int64) {
	m.AddLinearConstraint(terms, value, value)
}

// FixVar 将变量固定为给定值
func (m *Model) FixVar(v Var, value int64) {
	m.AddEquality([]Term{{Var: v, Coeff: 1}}, value)
}

// AddObjectiveTerm 向最大化目标累加一项 coeff * var
func (m *Model) AddObjectiveTerm(v Var, coeff int64) {
	if coeff == 0 {
		return
	}
	m.objective = append(m.objective, Term{Var: v, Coeff: coeff})
}

// NumVariables 返回变量数
func (m *Model) NumVariables() int {
	return len(m.vars)
}

// NumConstraints 返回约束数
func (m *Model) NumConstraints() int {
	return len(m.constraints)
}

// Variables 返回全部变量定义
func (m *Model) Variables() []VarDef {
	return m.vars
}

// Constraints 返回全部约束
func (m *Model) Constraints() []LinearConstraint {
	return m.constraints
}

// Objective 返回目标函数各项
func (m *Model) Objective() []Term {
	return m.objective
}

// VarDefAt 返回指定变量的定义
func (m *Model) VarDefAt(v Var) VarDef {
	return m.vars[v.index]
}
