// Package cpsat 提供基于 OR-Tools CP-SAT 的求解后端
package cpsat

import (
	"context"
	"fmt"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"
	cmpb "github.com/google/or-tools/ortools/sat/proto/cpmodel"
	sppb "github.com/google/or-tools/ortools/sat/proto/satparameters"
	"google.golang.org/protobuf/proto"

	"github.com/bgalitsky/nurse-scheduling/pkg/solver"
)

// Backend CP-SAT 后端适配器
type Backend struct{}

// New 创建 CP-SAT 后端
func New() *Backend {
	return &Backend{}
}

// Name 返回后端名称
func (b *Backend) Name() string {
	return "cp-sat"
}

// Solve 将中立模型翻译为 CP-SAT 模型并求解
func (b *Backend) Solve(ctx context.Context, m *solver.Model, opts solver.Options) (*solver.Solution, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	builder := cpmodel.NewCpModelBuilder()

	vars := make([]cpmodel.LinearArgument, m.NumVariables())
	for i, def := range m.Variables() {
		if def.IsBool {
			vars[i] = builder.NewBoolVar().WithName(def.Name)
		} else {
			vars[i] = builder.NewIntVar(def.Lb, def.Ub).WithName(def.Name)
		}
	}

	for _, c := range m.Constraints() {
		expr := cpmodel.NewLinearExpr()
		for _, t := range c.Terms {
			expr.AddTerm(vars[t.Var.Index()], t.Coeff)
		}
		builder.AddLinearConstraint(expr, c.Lb, c.Ub)
	}

	obj := cpmodel.NewLinearExpr()
	for _, t := range m.Objective() {
		obj.AddTerm(vars[t.Var.Index()], t.Coeff)
	}
	builder.Maximize(obj)

	modelProto, err := builder.Model()
	if err != nil {
		return nil, fmt.Errorf("构建 CP-SAT 模型失败: %w", err)
	}

	params := &sppb.SatParameters{
		MaxTimeInSeconds: proto.Float64(float64(opts.TimeLimitSeconds)),
		NumSearchWorkers: proto.Int32(int32(opts.Workers)),
	}

	res, err := cpmodel.SolveCpModelWithParameters(modelProto, params)
	if err != nil {
		return nil, fmt.Errorf("调用 CP-SAT 求解失败: %w", err)
	}

	status := mapStatus(res.GetStatus())
	if !status.HasSolution() {
		return solver.NewSolution(status, 0, nil), nil
	}

	values := make([]int64, m.NumVariables())
	for i := range values {
		values[i] = cpmodel.SolutionIntegerValue(res, vars[i])
	}
	return solver.NewSolution(status, res.GetObjectiveValue(), values), nil
}

// mapStatus CP-SAT 状态转换为中立状态枚举
func mapStatus(s cmpb.CpSolverStatus) solver.Status {
	switch s {
	case cmpb.CpSolverStatus_OPTIMAL:
		return solver.StatusOptimal
	case cmpb.CpSolverStatus_FEASIBLE:
		return solver.StatusFeasible
	case cmpb.CpSolverStatus_INFEASIBLE:
		return solver.StatusInfeasible
	case cmpb.CpSolverStatus_MODEL_INVALID:
		return solver.StatusModelInvalid
	default:
		return solver.StatusUnknown
	}
}
