// Package handler 提供HTTP请求处理器
package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/bgalitsky/nurse-scheduling/internal/metrics"
	"github.com/bgalitsky/nurse-scheduling/internal/repository"
	"github.com/bgalitsky/nurse-scheduling/pkg/errors"
	"github.com/bgalitsky/nurse-scheduling/pkg/model"
	"github.com/bgalitsky/nurse-scheduling/pkg/roster"
)

// RosterHandler 排班处理器
type RosterHandler struct {
	engine *roster.Engine
	runs   *repository.RunRepository // 可为 nil（无数据库部署）
}

// NewRosterHandler 创建排班处理器
func NewRosterHandler(engine *roster.Engine, runs *repository.RunRepository) *RosterHandler {
	return &RosterHandler{engine: engine, runs: runs}
}

// SolveRequest 求解请求
type SolveRequest struct {
	OrgID       string                   `json:"org_id,omitempty"`
	Nurses      []model.RawNurseRow      `json:"nurses"`
	Rooms       []model.RawRoomRow       `json:"rooms"`
	Demand      []model.RawDemandRow     `json:"demand"`
	Preferences []model.RawPreferenceRow `json:"preferences,omitempty"`
	Locks       []model.RawLockRow       `json:"locks,omitempty"`
	Config      *model.SolveConfig       `json:"config,omitempty"` // 缺省使用默认配置
}

// SolveResponse 求解响应
type SolveResponse struct {
	Success bool               `json:"success"`
	RunID   string             `json:"run_id,omitempty"`
	Summary model.SolveSummary `json:"summary"`
	Slots   []model.SlotResult `json:"slots"`
}

// Solve 求解排班
func (h *RosterHandler) Solve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, errors.New(errors.CodeInvalidInput, "仅支持POST方法"))
		return
	}

	var req SolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, errors.Wrap(err, errors.CodeInvalidInput, "解析请求失败"))
		return
	}

	cfg := model.DefaultSolveConfig()
	if req.Config != nil {
		cfg = *req.Config
	}

	in := &roster.Input{
		Nurses:      req.Nurses,
		Rooms:       req.Rooms,
		Demand:      req.Demand,
		Preferences: req.Preferences,
		Locks:       req.Locks,
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

	resp := SolveResponse{
		Success: result.Summary.HasSolution(),
		Summary: result.Summary,
		Slots:   result.Slots,
	}
	if runID := h.recordRun(r, req.OrgID, nil, cfg, result); runID != "" {
		resp.RunID = runID
	}

	respondJSON(w, http.StatusOK, resp)
}

// Validate 校验输入但不求解
func (h *RosterHandler) Validate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, errors.New(errors.CodeInvalidInput, "仅支持POST方法"))
		return
	}

	var req SolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, errors.Wrap(err, errors.CodeInvalidInput, "解析请求失败"))
		return
	}

	cfg := model.DefaultSolveConfig()
	if req.Config != nil {
		cfg = *req.Config
	}

	in := &roster.Input{
		Nurses:      req.Nurses,
		Rooms:       req.Rooms,
		Demand:      req.Demand,
		Preferences: req.Preferences,
		Locks:       req.Locks,
	}

	report, err := h.engine.Validate(in, cfg)
	if err != nil {
		respondAnyError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, report)
}

// DefaultsResponse 默认配置响应
type DefaultsResponse struct {
	Config  model.SolveConfig `json:"config"`
	Weights model.Weights     `json:"weights"`
	Days    []string          `json:"days"`
	Shifts  []string          `json:"shifts"`
}

// Defaults 返回默认配置（权重、开关、完整一周）
func (h *RosterHandler) Defaults(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, errors.New(errors.CodeInvalidInput, "仅支持GET方法"))
		return
	}

	respondJSON(w, http.StatusOK, DefaultsResponse{
		Config:  model.DefaultSolveConfig(),
		Weights: model.DefaultWeights(),
		Days:    model.AllDays,
		Shifts:  model.AllShifts,
	})
}

// recordRun 将求解运行写入数据库，失败只记日志不影响响应
func (h *RosterHandler) recordRun(r *http.Request, orgID string, datasetID *uuid.UUID, cfg model.SolveConfig, result *model.RosterResult) string {
	if h.runs == nil {
		return ""
	}
	org, err := uuid.Parse(orgID)
	if err != nil {
		return ""
	}

	run := &model.RosterRun{
		OrgID:       org,
		DatasetID:   datasetID,
		Status:      result.Summary.Status,
		Objective:   result.Summary.Objective,
		Variables:   result.Summary.Variables,
		Constraints: result.Summary.Constraints,
		DurationMs:  result.Summary.Duration.Milliseconds(),
		Config:      cfg,
		Slots:       result.Slots,
	}
	if err := h.runs.Create(r.Context(), run); err != nil {
		return ""
	}
	if result.Summary.Objective != nil {
		metrics.SetObjectiveValue(orgID, *result.Summary.Objective)
	}
	return run.ID.String()
}

// respondJSON 返回JSON响应
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError 返回错误响应
func respondError(w http.ResponseWriter, err *errors.AppError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.HTTPStatus)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error":   true,
		"code":    err.Code,
		"message": err.Message,
		"details": err.Details,
		"fields":  err.Fields,
	})
}

// respondAnyError 兼容非AppError的错误
func respondAnyError(w http.ResponseWriter, err error) {
	if appErr, ok := err.(*errors.AppError); ok {
		respondError(w, appErr)
		return
	}
	respondError(w, errors.Wrap(err, errors.CodeInternal, "内部错误"))
}
