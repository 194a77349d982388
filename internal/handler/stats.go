// Package handler 提供HTTP请求处理器
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/bgalitsky/nurse-scheduling/internal/metrics"
	"github.com/bgalitsky/nurse-scheduling/pkg/errors"
	"github.com/bgalitsky/nurse-scheduling/pkg/model"
	"github.com/bgalitsky/nurse-scheduling/pkg/stats"
)

// StatsHandler 统计分析处理器
type StatsHandler struct {
	coverage *stats.CoverageAnalyzer
	fairness *stats.FairnessAnalyzer
}

// NewStatsHandler 创建统计分析处理器
func NewStatsHandler() *StatsHandler {
	return &StatsHandler{
		coverage: stats.NewCoverageAnalyzer(),
		fairness: stats.NewFairnessAnalyzer(),
	}
}

// CoverageRequest 覆盖率分析请求
type CoverageRequest struct {
	OrgID string             `json:"org_id,omitempty"`
	Slots []model.SlotResult `json:"slots"`
}

// Coverage 分析排班结果的覆盖率
func (h *StatsHandler) Coverage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, errors.New(errors.CodeInvalidInput, "仅支持POST方法"))
		return
	}

	var req CoverageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, errors.Wrap(err, errors.CodeInvalidInput, "解析请求失败"))
		return
	}

	result := h.coverage.Analyze(req.Slots)
	if req.OrgID != "" {
		metrics.SetCoverageRate(req.OrgID, result.FillRate)
	}

	respondJSON(w, http.StatusOK, result)
}

// FairnessRequest 公平性分析请求
type FairnessRequest struct {
	OrgID string             `json:"org_id,omitempty"`
	Slots []model.SlotResult `json:"slots"`
	// 完整护士名单；缺省时只统计结果中出现过的护士
	NurseIDs []string `json:"nurse_ids,omitempty"`
}

// Fairness 分析排班结果的公平性
func (h *StatsHandler) Fairness(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, errors.New(errors.CodeInvalidInput, "仅支持POST方法"))
		return
	}

	var req FairnessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, errors.Wrap(err, errors.CodeInvalidInput, "解析请求失败"))
		return
	}

	result := h.fairness.Analyze(req.Slots, req.NurseIDs)
	if req.OrgID != "" {
		metrics.SetFairnessGini(req.OrgID, result.Gini)
	}

	respondJSON(w, http.StatusOK, result)
}
