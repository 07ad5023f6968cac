package discharge

import (
	"fmt"
	"log/slog"

	"discharge-analyzer/internal/analysis"
	"discharge-analyzer/internal/config"
	"discharge-analyzer/internal/data"
)

// Engine runs the discharge pipeline (load, filter, integrate, summarize)
// for every configured condition.
type Engine struct {
	cfg *config.Config
	log *slog.Logger
}

// New returns an engine for cfg. A nil logger falls back to slog.Default().
func New(cfg *config.Config, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		cfg: cfg,
		log: logger.With(slog.String("component", "discharge")),
	}
}

// Run processes all conditions at the configured cutoff voltage.
func (e *Engine) Run() (*Result, error) {
	if e.cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}
	return e.RunWithCutoff(e.cfg.CutoffVoltage)
}

// RunWithCutoff processes all conditions at cutoffVolts.
//
// A condition with no samples at or above the cutoff is recorded in
// Result.Skipped and logged once; it never aborts the run. Load and format
// errors do abort it.
func (e *Engine) RunWithCutoff(cutoffVolts float64) (*Result, error) {
	if e.cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}
	if len(e.cfg.Conditions) == 0 {
		return nil, fmt.Errorf("no conditions")
	}

	res := &Result{
		CutoffVoltage: cutoffVolts,
		Conditions:    make([]ConditionResult, 0, len(e.cfg.Conditions)),
	}
	for _, cond := range e.cfg.Conditions {
		cr, err := e.ProcessCondition(cond, cutoffVolts)
		if err != nil {
			return nil, fmt.Errorf("condition %s: %w", cond.Label, err)
		}
		if cr == nil {
			e.log.Warn("no data above cut-off voltage",
				slog.String("condition", cond.Label),
				slog.Float64("cutoff_v", cutoffVolts))
			res.Skipped = append(res.Skipped, cond.Label)
			continue
		}
		res.Conditions = append(res.Conditions, *cr)
	}
	return res, nil
}

// ProcessCondition runs the pipeline for a single condition. It returns a nil
// result (and nil error) when no sample reaches cutoffVolts.
func (e *Engine) ProcessCondition(cond config.ConditionConfig, cutoffVolts float64) (*ConditionResult, error) {
	samples, err := data.LoadTable(cond.File, data.TableOptions{Sheet: cond.Sheet})
	if err != nil {
		return nil, err
	}
	if err := analysis.ValidateTimeOrder(cond.File, samples); err != nil {
		return nil, err
	}

	kept := analysis.FilterByMinVoltage(samples, cutoffVolts)
	e.log.Debug("filtered samples",
		slog.String("condition", cond.Label),
		slog.Int("loaded", len(samples)),
		slog.Int("kept", len(kept)))
	if len(kept) == 0 {
		return nil, nil
	}

	series := analysis.Integrate(kept)
	summary := analysis.Summarize(series)
	e.log.Info("processed condition",
		slog.String("condition", cond.Label),
		slog.Int("samples", series.Len()),
		slog.Float64("capacity_mah", summary.TotalCapacityMAh),
		slog.Float64("energy_wh", summary.TotalEnergyWh))

	return &ConditionResult{
		Label:      cond.Label,
		Source:     cond.File,
		LoadedRows: len(samples),
		Series:     series,
		Summary:    summary,
	}, nil
}
