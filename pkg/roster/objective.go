// Package roster 将病房人力数据构建为周排班优化模型并求解
package roster

import (
	"github.com/bgalitsky/nurse-scheduling/pkg/model"
	"github.com/bgalitsky/nurse-scheduling/pkg/solver"
)

// composeObjective 组装单一线性最大化目标
//
//	objective = Σ (w_pref · preference · x)      仅偏好非零的变量
//	          − Σ (w_understaff · understaff)    全部覆盖槽位
//	          − Σ (w_overstaff · overstaff)      仅允许超员时
//	          − Σ (w_fairness · deviation)       仅启用公平性时
//	          − Σ (w_weekend · x)                周末天的变量，仅 w_weekend > 0 时
//
// 权重不做归一化，相对大小直接决定权衡优先级。
func composeObjective(m *solver.Model, e *model.Entities, vs *VarSpace, slacks *SlackVars, cfg *model.SolveConfig) {
	w := cfg.Weights

	vs.Each(func(nurse *model.Nurse, room *model.Room, shift, day string, v solver.Var) {
		if p := e.PreferenceAt(nurse.ID, day, shift); p != 0 {
			m.AddObjectiveTerm(v, int64(w.Preference)*int64(p))
		}
		if w.Weekend > 0 && model.IsWeekend(day) {
			m.AddObjectiveTerm(v, -int64(w.Weekend))
		}
	})

	for _, u := range slacks.Understaff {
		m.AddObjectiveTerm(u, -int64(w.Understaff))
	}
	for _, o := range slacks.Overstaff {
		m.AddObjectiveTerm(o, -int64(w.Overstaff))
	}
	for _, dev := range slacks.Deviation {
		m.AddObjectiveTerm(dev, -int64(w.Fairness))
	}
}
