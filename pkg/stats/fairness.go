package stats

import (
	"math"
	"sort"

	"github.com/bgalitsky/nurse-scheduling/pkg/model"
)

// NurseStat 单个护士的工作量统计
type NurseStat struct {
	NurseID       string  `json:"nurse_id"`
	TotalShifts   int     `json:"total_shifts"`
	WeekendShifts int     `json:"weekend_shifts"`
	NightShifts   int     `json:"night_shifts"`
	Deviation     float64 `json:"deviation"` // 与平均值的偏差
}

// FairnessMetrics 公平性指标
type FairnessMetrics struct {
	Gini     float64 `json:"gini"`     // 基尼系数 (0=完全公平)
	Variance float64 `json:"variance"` // 方差
	StdDev   float64 `json:"std_dev"`  // 标准差
	Avg      float64 `json:"avg"`      // 平均班次数
	Max      int     `json:"max"`      // 最多班次数
	Min      int     `json:"min"`      // 最少班次数
	Range    int     `json:"range"`    // 极差

	WeekendShare float64 `json:"weekend_share"` // 周末班占比 (%)

	NurseStats []NurseStat `json:"nurse_stats"` // 按护士明细（按 ID 排序）

	// 综合公平性评分 (0-100，越高越公平)
	OverallFairnessScore float64 `json:"overall_fairness_score"`
}

// FairnessAnalyzer 公平性分析器
type FairnessAnalyzer struct{}

// NewFairnessAnalyzer 创建公平性分析器
func NewFairnessAnalyzer() *FairnessAnalyzer {
	return &FairnessAnalyzer{}
}

// Analyze 分析排班结果的公平性
// nurseIDs 给出完整护士名单，未被排班的护士以 0 班次计入分布。
func (f *FairnessAnalyzer) Analyze(slots []model.SlotResult, nurseIDs []string) *FairnessMetrics {
	totals := make(map[string]int)
	weekend := make(map[string]int)
	night := make(map[string]int)
	for _, id := range nurseIDs {
		totals[id] = 0
	}

	totalShifts := 0
	weekendShifts := 0
	for i := range slots {
		s := &slots[i]
		for _, nurseID := range s.AssignedNurses {
			totals[nurseID]++
			totalShifts++
			if model.IsWeekend(s.Day) {
				weekend[nurseID]++
				weekendShifts++
			}
			if s.Shift == model.ShiftNight {
				night[nurseID]++
			}
		}
	}

	metrics := &FairnessMetrics{}
	if len(totals) == 0 {
		metrics.OverallFairnessScore = 100
		return metrics
	}

	counts := make([]int, 0, len(totals))
	ids := make([]string, 0, len(totals))
	for id, n := range totals {
		ids = append(ids, id)
		counts = append(counts, n)
	}
	sort.Strings(ids)

	sum := 0
	metrics.Min = counts[0]
	metrics.Max = counts[0]
	for _, n := range counts {
		sum += n
		if n > metrics.Max {
			metrics.Max = n
		}
		if n < metrics.Min {
			metrics.Min = n
		}
	}
	metrics.Range = metrics.Max - metrics.Min
	metrics.Avg = float64(sum) / float64(len(counts))

	variance := 0.0
	for _, n := range counts {
		d := float64(n) - metrics.Avg
		variance += d * d
	}
	variance /= float64(len(counts))
	metrics.Variance = variance
	metrics.StdDev = math.Sqrt(variance)
	metrics.Gini = calcGini(counts)

	if totalShifts > 0 {
		metrics.WeekendShare = float64(weekendShifts) / float64(totalShifts) * 100
	}

	for _, id := range ids {
		metrics.NurseStats = append(metrics.NurseStats, NurseStat{
			NurseID:       id,
			TotalShifts:   totals[id],
			WeekendShifts: weekend[id],
			NightShifts:   night[id],
			Deviation:     float64(totals[id]) - metrics.Avg,
		})
	}

	metrics.OverallFairnessScore = fairnessScore(metrics.Gini, metrics.Avg, metrics.StdDev)
	return metrics
}

// calcGini 计算基尼系数
func calcGini(counts []int) float64 {
	n := len(counts)
	if n == 0 {
		return 0
	}
	sorted := make([]int, n)
	copy(sorted, counts)
	sort.Ints(sorted)

	sum := 0
	weighted := 0
	for i, c := range sorted {
		sum += c
		weighted += (i + 1) * c
	}
	if sum == 0 {
		return 0
	}
	return float64(2*weighted)/float64(n*sum) - float64(n+1)/float64(n)
}

// fairnessScore 将分散程度折算为 0-100 的评分
func fairnessScore(gini, avg, stdDev float64) float64 {
	score := 100 * (1 - gini)
	if avg > 0 {
		// 变异系数越大扣分越多
		cv := stdDev / avg
		score -= cv * 20
	}
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}
