// Package handler 提供HTTP请求处理器
package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bgalitsky/nurse-scheduling/internal/metrics"
	"github.com/bgalitsky/nurse-scheduling/internal/repository"
	"github.com/bgalitsky/nurse-scheduling/pkg/errors"
	"github.com/bgalitsky/nurse-scheduling/pkg/model"
	"github.com/bgalitsky/nurse-scheduling/pkg/roster"
)

// DatasetHandler 数据集处理器
type DatasetHandler struct {
	engine   *roster.Engine
	datasets *repository.DatasetRepository
	runs     *repository.RunRepository
}

// NewDatasetHandler 创建数据集处理器
func NewDatasetHandler(engine *roster.Engine, datasets *repository.DatasetRepository, runs *repository.RunRepository) *DatasetHandler {
	return &DatasetHandler{engine: engine, datasets: datasets, runs: runs}
}

// DatasetRequest 数据集创建/更新请求
type DatasetRequest struct {
	OrgID       string                   `json:"org_id"`
	Name        string                   `json:"name"`
	Description string                   `json:"description,omitempty"`
	Nurses      []model.RawNurseRow      `json:"nurses"`
	Rooms       []model.RawRoomRow       `json:"rooms"`
	Demand      []model.RawDemandRow     `json:"demand"`
	Preferences []model.RawPreferenceRow `json:"preferences,omitempty"`
	Locks       []model.RawLockRow       `json:"locks,omitempty"`
}

// Collection 处理 /api/v1/datasets（POST创建，GET列表）
func (h *DatasetHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.create(w, r)
	case http.MethodGet:
		h.list(w, r)
	default:
		respondError(w, errors.New(errors.CodeInvalidInput, "仅支持GET/POST方法"))
	}
}

// Item 处理 /api/v1/datasets/{id} 及其 /solve 子路径
func (h *DatasetHandler) Item(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/v1/datasets/")
	parts := strings.Split(strings.Trim(rest, "/"), "/")

	id, err := uuid.Parse(parts[0])
	if err != nil {
		respondError(w, errors.Wrap(err, errors.CodeInvalidInput, "无效的数据集ID格式"))
		return
	}

	if len(parts) == 2 && parts[1] == "solve" {
		if r.Method != http.MethodPost {
			respondError(w, errors.New(errors.CodeInvalidInput, "仅支持POST方法"))
			return
		}
		h.solveStored(w, r, id)
		return
	}
	if len(parts) != 1 {
		respondError(w, errors.ErrNotFound)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodPut:
		h.update(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		respondError(w, errors.New(errors.CodeInvalidInput, "仅支持GET/PUT/DELETE方法"))
	}
}

func (h *DatasetHandler) create(w http.ResponseWriter, r *http.Request) {
	var req DatasetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, errors.Wrap(err, errors.CodeInvalidInput, "解析请求失败"))
		return
	}

	orgID, err := uuid.Parse(req.OrgID)
	if err != nil {
		respondError(w, errors.Wrap(err, errors.CodeInvalidInput, "无效的组织ID格式"))
		return
	}
	if req.Name == "" {
		respondError(w, errors.InvalidInput("name", "名称不能为空"))
		return
	}

	ds := &model.Dataset{
		OrgID:       orgID,
		Name:        req.Name,
		Description: req.Description,
		Nurses:      req.Nurses,
		Rooms:       req.Rooms,
		Demand:      req.Demand,
		Preferences: req.Preferences,
		Locks:       req.Locks,
	}
	if err := h.datasets.Create(r.Context(), ds); err != nil {
		respondError(w, errors.Wrap(err, errors.CodeDatabaseError, "创建数据集失败"))
		return
	}

	respondJSON(w, http.StatusCreated, ds)
}

func (h *DatasetHandler) list(w http.ResponseWriter, r *http.Request) {
	filter := repository.DefaultListFilter()
	if org := r.URL.Query().Get("org_id"); org != "" {
		orgID, err := uuid.Parse(org)
		if err != nil {
			respondError(w, errors.Wrap(err, errors.CodeInvalidInput, "无效的组织ID格式"))
			return
		}
		filter = filter.WithOrgID(orgID)
	}
	if limit := r.URL.Query().Get("limit"); limit != "" {
		if n, err := strconv.Atoi(limit); err == nil && n > 0 {
			filter = filter.WithLimit(n)
		}
	}
	if offset := r.URL.Query().Get("offset"); offset != "" {
		if n, err := strconv.Atoi(offset); err == nil && n >= 0 {
			filter = filter.WithOffset(n)
		}
	}

	datasets, total, err := h.datasets.List(r.Context(), filter)
	if err != nil {
		respondError(w, errors.Wrap(err, errors.CodeDatabaseError, "查询数据集失败"))
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"items": datasets,
		"total": total,
	})
}

func (h *DatasetHandler) get(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	ds, err := h.datasets.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, errors.Wrap(err, errors.CodeDatabaseError, "查询数据集失败"))
		return
	}
	if ds == nil {
		respondError(w, errors.NotFound("数据集", id.String()))
		return
	}
	respondJSON(w, http.StatusOK, ds)
}

func (h *DatasetHandler) update(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	var req DatasetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, errors.Wrap(err, errors.CodeInvalidInput, "解析请求失败"))
		return
	}

	ds, err := h.datasets.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, errors.Wrap(err, errors.CodeDatabaseError, "查询数据集失败"))
		return
	}
	if ds == nil {
		respondError(w, errors.NotFound("数据集", id.String()))
		return
	}

	if req.Name != "" {
		ds.Name = req.Name
	}
	ds.Description = req.Description
	ds.Nurses = req.Nurses
	ds.Rooms = req.Rooms
	ds.Demand = req.Demand
	ds.Preferences = req.Preferences
	ds.Locks = req.Locks

	if err := h.datasets.Update(r.Context(), ds); err != nil {
		respondError(w, errors.Wrap(err, errors.CodeDatabaseError, "更新数据集失败"))
		return
	}

	respondJSON(w, http.StatusOK, ds)
}

func (h *DatasetHandler) delete(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	if err := h.datasets.Delete(r.Context(), id); err != nil {
		respondError(w, errors.Wrap(err, errors.CodeDatabaseError, "删除数据集失败"))
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"deleted": true})
}

// SolveStoredRequest 存储数据求解请求
type SolveStoredRequest struct {
	Config *model.SolveConfig `json:"config,omitempty"`
}

// solveStored 从存储的数据集求解排班并记录运行
func (h *DatasetHandler) solveStored(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	ds, err := h.datasets.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, errors.Wrap(err, errors.CodeDatabaseError, "查询数据集失败"))
		return
	}
	if ds == nil {
		respondError(w, errors.NotFound("数据集", id.String()))
		return
	}

	var req SolveStoredRequest
	if r.Body != nil {
		// 空请求体使用默认配置
		json.NewDecoder(r.Body).Decode(&req)
	}
	cfg := model.DefaultSolveConfig()
	if req.Config != nil {
		cfg = *req.Config
	}

	in := &roster.Input{
		Nurses:      ds.Nurses,
		Rooms:       ds.Rooms,
		Demand:      ds.Demand,
		Preferences: ds.Preferences,
		Locks:       ds.Locks,
	}

	start := time.Now()
	result, err := h.engine.Solve(r.Context(), in, cfg)
	if err != nil {
		metrics.RecordSolve("ERROR", 0, 0, time.Since(start))
		respondAnyError(w, err)
		return
	}

	metrics.RecordSolve(result.Summary.Status, result.Summary.Variables,
		result.Summary.Constraints, result.Summary.Duration)

	run := &model.RosterRun{
		OrgID:       ds.OrgID,
		DatasetID:   &ds.ID,
		Status:      result.Summary.Status,
		Objective:   result.Summary.Objective,
		Variables:   result.Summary.Variables,
		Constraints: result.Summary.Constraints,
		DurationMs:  result.Summary.Duration.Milliseconds(),
		Config:      cfg,
		Slots:       result.Slots,
	}
	resp := SolveResponse{
		Success: result.Summary.HasSolution(),
		Summary: result.Summary,
		Slots:   result.Slots,
	}
	if h.runs != nil {
		if err := h.runs.Create(r.Context(), run); err == nil {
			resp.RunID = run.ID.String()
		}
	}

	respondJSON(w, http.StatusOK, resp)
}
