// Package repository 提供数据访问层
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bgalitsky/nurse-scheduling/pkg/model"
)

// RunRepository 求解运行仓储
type RunRepository struct {
	db DB
}

// NewRunRepository 创建求解运行仓储
func NewRunRepository(db DB) *RunRepository {
	return &RunRepository{db: db}
}

// Create 记录一次求解运行
func (r *RunRepository) Create(ctx context.Context, run *model.RosterRun) error {
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	run.CreatedAt = time.Now()

	configJSON, _ := json.Marshal(run.Config)
	slotsJSON, _ := json.Marshal(run.Slots)

	query := `
		INSERT INTO roster_runs (
			id, org_id, dataset_id, status, objective,
			variables, constraints, duration_ms, config, slots, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.ExecContext(ctx, query,
		run.ID, run.OrgID, run.DatasetID, run.Status, run.Objective,
		run.Variables, run.Constraints, run.DurationMs, configJSON, slotsJSON, run.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("记录求解运行失败: %w", err)
	}

	return nil
}

// GetByID 根据ID获取运行记录
func (r *RunRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.RosterRun, error) {
	query := `
		SELECT id, org_id, dataset_id, status, objective,
			variables, constraints, duration_ms, config, slots, created_at
		FROM roster_runs
		WHERE id = $1
	`

	run := &model.RosterRun{}
	var configJSON, slotsJSON []byte

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&run.ID, &run.OrgID, &run.DatasetID, &run.Status, &run.Objective,
		&run.Variables, &run.Constraints, &run.DurationMs, &configJSON, &slotsJSON, &run.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("扫描运行记录失败: %w", err)
	}

	json.Unmarshal(configJSON, &run.Config)
	json.Unmarshal(slotsJSON, &run.Slots)

	return run, nil
}

// List 查询运行记录列表
func (r *RunRepository) List(ctx context.Context, filter ListFilter) ([]*model.RosterRun, int, error) {
	var conditions []string
	var args []interface{}
	argIndex := 1

	conditions = append(conditions, "1=1")

	if filter.OrgID != nil {
		conditions = append(conditions, fmt.Sprintf("org_id = $%d", argIndex))
		args = append(args, *filter.OrgID)
		argIndex++
	}

	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIndex))
		args = append(args, filter.Status)
		argIndex++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM roster_runs WHERE %s", whereClause)
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("查询总数失败: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, org_id, dataset_id, status, objective,
			variables, constraints, duration_ms, config, slots, created_at
		FROM roster_runs
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, argIndex, argIndex+1)

	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("查询列表失败: %w", err)
	}
	defer rows.Close()

	var runs []*model.RosterRun
	for rows.Next() {
		run := &model.RosterRun{}
		var configJSON, slotsJSON []byte
		if err := rows.Scan(
			&run.ID, &run.OrgID, &run.DatasetID, &run.Status, &run.Objective,
			&run.Variables, &run.Constraints, &run.DurationMs, &configJSON, &slotsJSON, &run.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("扫描运行记录失败: %w", err)
		}
		json.Unmarshal(configJSON, &run.Config)
		json.Unmarshal(slotsJSON, &run.Slots)
		runs = append(runs, run)
	}

	return runs, total, nil
}
