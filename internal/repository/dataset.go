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

// DatasetRepository 数据集仓储
type DatasetRepository struct {
	db DB
}

// NewDatasetRepository 创建数据集仓储
func NewDatasetRepository(db DB) *DatasetRepository {
	return &DatasetRepository{db: db}
}

// Create 创建数据集
func (r *DatasetRepository) Create(ctx context.Context, ds *model.Dataset) error {
	if ds.ID == uuid.Nil {
		ds.ID = uuid.New()
	}
	now := time.Now()
	ds.CreatedAt = now
	ds.UpdatedAt = now

	nursesJSON, _ := json.Marshal(ds.Nurses)
	roomsJSON, _ := json.Marshal(ds.Rooms)
	demandJSON, _ := json.Marshal(ds.Demand)
	prefsJSON, _ := json.Marshal(ds.Preferences)
	locksJSON, _ := json.Marshal(ds.Locks)

	query := `
		INSERT INTO datasets (
			id, org_id, name, description,
			nurses, rooms, demand, preferences, locks,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.ExecContext(ctx, query,
		ds.ID, ds.OrgID, ds.Name, ds.Description,
		nursesJSON, roomsJSON, demandJSON, prefsJSON, locksJSON,
		ds.CreatedAt, ds.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("创建数据集失败: %w", err)
	}

	return nil
}

// GetByID 根据ID获取数据集
func (r *DatasetRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Dataset, error) {
	query := `
		SELECT id, org_id, name, description,
			nurses, rooms, demand, preferences, locks,
			created_at, updated_at
		FROM datasets
		WHERE id = $1 AND deleted_at IS NULL
	`

	return r.scanDataset(r.db.QueryRowContext(ctx, query, id))
}

// Update 更新数据集
func (r *DatasetRepository) Update(ctx context.Context, ds *model.Dataset) error {
	ds.UpdatedAt = time.Now()

	nursesJSON, _ := json.Marshal(ds.Nurses)
	roomsJSON, _ := json.Marshal(ds.Rooms)
	demandJSON, _ := json.Marshal(ds.Demand)
	prefsJSON, _ := json.Marshal(ds.Preferences)
	locksJSON, _ := json.Marshal(ds.Locks)

	query := `
		UPDATE datasets SET
			name = $2, description = $3,
			nurses = $4, rooms = $5, demand = $6, preferences = $7, locks = $8,
			updated_at = $9
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.ExecContext(ctx, query,
		ds.ID, ds.Name, ds.Description,
		nursesJSON, roomsJSON, demandJSON, prefsJSON, locksJSON,
		ds.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("更新数据集失败: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("数据集不存在")
	}

	return nil
}

// Delete 软删除数据集
func (r *DatasetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE datasets SET deleted_at = $2 WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, id, time.Now())
	if err != nil {
		return fmt.Errorf("删除数据集失败: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("数据集不存在")
	}

	return nil
}

// List 查询数据集列表
func (r *DatasetRepository) List(ctx context.Context, filter ListFilter) ([]*model.Dataset, int, error) {
	var conditions []string
	var args []interface{}
	argIndex := 1

	conditions = append(conditions, "deleted_at IS NULL")

	if filter.OrgID != nil {
		conditions = append(conditions, fmt.Sprintf("org_id = $%d", argIndex))
		args = append(args, *filter.OrgID)
		argIndex++
	}

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(name ILIKE $%d OR description ILIKE $%d)", argIndex, argIndex))
		args = append(args, "%"+filter.Search+"%")
		argIndex++
	}

	whereClause := strings.Join(conditions, " AND ")

	// 查询总数
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM datasets WHERE %s", whereClause)
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("查询总数失败: %w", err)
	}

	// 查询列表
	orderBy := filter.OrderBy
	if orderBy == "" {
		orderBy = "created_at"
	}
	orderDir := filter.OrderDir
	if orderDir == "" {
		orderDir = "desc"
	}

	query := fmt.Sprintf(`
		SELECT id, org_id, name, description,
			nurses, rooms, demand, preferences, locks,
			created_at, updated_at
		FROM datasets
		WHERE %s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d
	`, whereClause, orderBy, orderDir, argIndex, argIndex+1)

	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("查询列表失败: %w", err)
	}
	defer rows.Close()

	var datasets []*model.Dataset
	for rows.Next() {
		ds, err := r.scanDatasetRow(rows)
		if err != nil {
			return nil, 0, err
		}
		datasets = append(datasets, ds)
	}

	return datasets, total, nil
}

// scanDataset 扫描单行数据集数据
func (r *DatasetRepository) scanDataset(row *sql.Row) (*model.Dataset, error) {
	ds := &model.Dataset{}
	var nursesJSON, roomsJSON, demandJSON, prefsJSON, locksJSON []byte

	err := row.Scan(
		&ds.ID, &ds.OrgID, &ds.Name, &ds.Description,
		&nursesJSON, &roomsJSON, &demandJSON, &prefsJSON, &locksJSON,
		&ds.CreatedAt, &ds.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("扫描数据集失败: %w", err)
	}

	json.Unmarshal(nursesJSON, &ds.Nurses)
	json.Unmarshal(roomsJSON, &ds.Rooms)
	json.Unmarshal(demandJSON, &ds.Demand)
	json.Unmarshal(prefsJSON, &ds.Preferences)
	json.Unmarshal(locksJSON, &ds.Locks)

	return ds, nil
}

// scanDatasetRow 扫描Rows中的数据集数据
func (r *DatasetRepository) scanDatasetRow(rows *sql.Rows) (*model.Dataset, error) {
	ds := &model.Dataset{}
	var nursesJSON, roomsJSON, demandJSON, prefsJSON, locksJSON []byte

	err := rows.Scan(
		&ds.ID, &ds.OrgID, &ds.Name, &ds.Description,
		&nursesJSON, &roomsJSON, &demandJSON, &prefsJSON, &locksJSON,
		&ds.CreatedAt, &ds.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("扫描数据集失败: %w", err)
	}

	json.Unmarshal(nursesJSON, &ds.Nurses)
	json.Unmarshal(roomsJSON, &ds.Rooms)
	json.Unmarshal(demandJSON, &ds.Demand)
	json.Unmarshal(prefsJSON, &ds.Preferences)
	json.Unmarshal(locksJSON, &ds.Locks)

	return ds, nil
}
