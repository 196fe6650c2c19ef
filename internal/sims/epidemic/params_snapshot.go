package epidemic

import "epigrid/internal/core"

// Parameters reports the engine settings for HUD and terminal panels.
func (e *Engine) Parameters() core.ParameterSnapshot {
	p := e.Params()
	groups := []core.ParameterGroup{
		{
			Name: "Grid",
			Params: []core.Parameter{
				core.IntParam("Width", e.w),
				core.IntParam("Height", e.h),
				core.Int64Param("Seed", e.seed),
			},
		},
		{
			Name: "Daily probabilities",
			Params: []core.Parameter{
				core.FloatParam("Recovery", p.Recovery),
				core.FloatParam("Infection", p.Infection),
				core.FloatParam("Death", p.Death),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}
