// Package roster 将病房人力数据构建为周排班优化模型并求解
//
// 流水线从调用方视角是同步单线程的：实体归一化、模型组装、结果重建
// 顺序执行，唯一的并行在求解后端内部。每次求解基于不可变输入快照
// 重新构建全部实体，求解之间不共享可变状态。
package roster

import (
	"context"
	"time"

	"github.com/bgalitsky/nurse-scheduling/pkg/errors"
	"github.com/bgalitsky/nurse-scheduling/pkg/logger"
	"github.com/bgalitsky/nurse-scheduling/pkg/model"
	"github.com/bgalitsky/nurse-scheduling/pkg/solver"
)

// Engine 排班引擎
type Engine struct {
	backend solver.Backend
	log     *logger.SolveLogger
}

// NewEngine 创建排班引擎
func NewEngine(backend solver.Backend) *Engine {
	return &Engine{
		backend: backend,
		log:     logger.NewSolveLogger(),
	}
}

// Solve 从原始表格行求解排班
func (eng *Engine) Solve(ctx context.Context, in *Input, cfg model.SolveConfig) (*model.RosterResult, error) {
	if err := cfg.Normalize(); err != nil {
		return nil, err
	}
	entities, err := Normalize(in)
	if err != nil {
		return nil, err
	}
	return eng.SolveEntities(ctx, entities, cfg)
}

// SolveEntities 从已归一化的实体求解排班
// 配置校验失败、不可行锁定等硬错误在调用后端之前返回；
// INFEASIBLE/UNKNOWN 等求解状态作为元数据返回，不作为错误。
func (eng *Engine) SolveEntities(ctx context.Context, e *model.Entities, cfg model.SolveConfig) (*model.RosterResult, error) {
	if err := cfg.Normalize(); err != nil {
		return nil, err
	}

	start := time.Now()
	eng.log.StartSolve(len(e.Nurses), len(e.Rooms), len(cfg.Days), len(cfg.Shifts))

	f := NewFeasibility(e)
	m := solver.NewModel()
	vs := BuildVariables(m, e, f, &cfg)

	slacks, err := assembleConstraints(m, e, vs, &cfg)
	if err != nil {
		return nil, err
	}
	composeObjective(m, e, vs, slacks, &cfg)

	eng.log.ModelBuilt(m.NumVariables(), m.NumConstraints())

	sol, err := eng.backend.Solve(ctx, m, solver.Options{
		TimeLimitSeconds: cfg.TimeLimitSeconds,
		Workers:          cfg.Workers,
	})
	if err != nil {
		eng.log.SolveFailed(err, time.Since(start))
		return nil, errors.Wrap(err, errors.CodeSolverFailure, "求解后端调用失败")
	}

	duration := time.Since(start)
	summary := model.SolveSummary{
		Status:      string(sol.Status),
		Variables:   m.NumVariables(),
		Constraints: m.NumConstraints(),
		Duration:    duration,
		DurationStr: duration.String(),
	}
	if sol.Status.HasSolution() {
		obj := sol.Objective
		summary.Objective = &obj
	}

	eng.log.SolveComplete(summary.Status, sol.Objective, duration)

	return &model.RosterResult{
		Summary: summary,
		Slots:   materialize(e, vs, slacks, &cfg, sol),
	}, nil
}

// RoomEligibility 房间可行性摘要
type RoomEligibility struct {
	RoomID         string `json:"room_id"`
	RoomName       string `json:"room_name"`
	EligibleNurses int    `json:"eligible_nurses"`
}

// ValidationReport 校验报告（不触发求解）
type ValidationReport struct {
	Nurses        int               `json:"nurses"`
	Rooms         int               `json:"rooms"`
	VariableCount int               `json:"variable_count"`
	Eligibility   []RoomEligibility `json:"eligibility"`
	LockErrors    []string          `json:"lock_errors,omitempty"`
}

// Validate 归一化输入并检查可行性与锁定，但不调用求解后端
// 对某房间可行护士数为0不是错误——求解时缺口由缺员松弛吸收，
// 作为经济结果反映在目标函数和诊断值中；这里只如实报告。
func (eng *Engine) Validate(in *Input, cfg model.SolveConfig) (*ValidationReport, error) {
	if err := cfg.Normalize(); err != nil {
		return nil, err
	}
	e, err := Normalize(in)
	if err != nil {
		return nil, err
	}

	f := NewFeasibility(e)
	m := solver.NewModel()
	vs := BuildVariables(m, e, f, &cfg)

	report := &ValidationReport{
		Nurses:        len(e.Nurses),
		Rooms:         len(e.Rooms),
		VariableCount: vs.Count(),
	}
	for _, r := range e.Rooms {
		report.Eligibility = append(report.Eligibility, RoomEligibility{
			RoomID:         r.ID,
			RoomName:       r.Name,
			EligibleNurses: f.EligibleNurseCount(r.ID),
		})
	}

	for _, key := range sortedLockKeys(e.Locks) {
		if _, ok := vs.Lookup(key.NurseID, key.RoomID, key.Shift, key.Day); !ok {
			report.LockErrors = append(report.LockErrors,
				errors.InfeasibleLock(key.Day, key.Shift, key.RoomID, key.NurseID).Message)
		}
	}

	return report, nil
}
