// Package handler 提供HTTP请求处理器
package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/bgalitsky/nurse-scheduling/internal/repository"
	"github.com/bgalitsky/nurse-scheduling/pkg/errors"
)

// RunHandler 求解运行记录处理器
type RunHandler struct {
	runs *repository.RunRepository
}

// NewRunHandler 创建运行记录处理器
func NewRunHandler(runs *repository.RunRepository) *RunHandler {
	return &RunHandler{runs: runs}
}

// List 处理 GET /api/v1/runs
func (h *RunHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, errors.New(errors.CodeInvalidInput, "仅支持GET方法"))
		return
	}

	filter := repository.DefaultListFilter()
	if org := r.URL.Query().Get("org_id"); org != "" {
		orgID, err := uuid.Parse(org)
		if err != nil {
			respondError(w, errors.Wrap(err, errors.CodeInvalidInput, "无效的组织ID格式"))
			return
		}
		filter = filter.WithOrgID(orgID)
	}
	if status := r.URL.Query().Get("status"); status != "" {
		filter = filter.WithStatus(status)
	}
	if limit := r.URL.Query().Get("limit"); limit != "" {
		if n, err := strconv.Atoi(limit); err == nil && n > 0 {
			filter = filter.WithLimit(n)
		}
	}

	runs, total, err := h.runs.List(r.Context(), filter)
	if err != nil {
		respondError(w, errors.Wrap(err, errors.CodeDatabaseError, "查询运行记录失败"))
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"items": runs,
		"total": total,
	})
}

// Item 处理 GET /api/v1/runs/{id}
func (h *RunHandler) Item(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, errors.New(errors.CodeInvalidInput, "仅支持GET方法"))
		return
	}

	idStr := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/v1/runs/"), "/")
	id, err := uuid.Parse(idStr)
	if err != nil {
		respondError(w, errors.Wrap(err, errors.CodeInvalidInput, "无效的运行ID格式"))
		return
	}

	run, err := h.runs.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, errors.Wrap(err, errors.CodeDatabaseError, "查询运行记录失败"))
		return
	}
	if run == nil {
		respondError(w, errors.NotFound("运行记录", id.String()))
		return
	}

	respondJSON(w, http.StatusOK, run)
}
