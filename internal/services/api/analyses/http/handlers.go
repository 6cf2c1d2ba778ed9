// Package http provides http transport for analyses
package http

import (
	stdhttp "net/http"

	"rrational/internal/modkit/httpkit"
	andom "rrational/internal/services/analysis/domain"
	"rrational/internal/services/api/analyses/domain"
)

// Register mounts analyses endpoints on the given router
func Register(r httpkit.Router, runner andom.RunnerPort) {
	h := &handlers{runner: runner}
	httpkit.PostJSON[domain.RunInput](r, "/run", h.run)
	httpkit.PostJSON[domain.RunRangeInput](r, "/run-range", h.runRange)
}

type handlers struct{ runner andom.RunnerPort }

// swagger:route POST /analyses/run Analyses analysesRun
// @Summary Analyze one recording and persist its report
// @Tags Analyses
// @Accept json
// @Produce json
// @Param payload body domain.RunInput true "Run"
// @Success 200 {object} domain.RunOutput "ok"
// @Failure 422 {object} httpkit.Envelope "too short to analyze"
// @Router /analyses/run [post]
func (h *handlers) run(r *stdhttp.Request, in domain.RunInput) (any, error) {
	if err := h.runner.RunOne(r.Context(), in.RecordingID); err != nil {
		return nil, err
	}
	return domain.RunOutput{RecordingID: in.RecordingID, OK: true}, nil
}

// swagger:route POST /analyses/run-range Analyses analysesRunRange
// @Summary Analyze every recording recorded in a window
// @Tags Analyses
// @Accept json
// @Produce json
// @Param payload body domain.RunRangeInput true "Window"
// @Success 200 {object} domain.RunRangeOutput "ok"
// @Router /analyses/run-range [post]
func (h *handlers) runRange(r *stdhttp.Request, in domain.RunRangeInput) (any, error) {
	stats, err := h.runner.RunRange(r.Context(), in.Since, in.Until)
	if err != nil {
		return nil, err
	}
	return domain.RunRangeOutput{
		Scanned: stats.Scanned,
		Written: stats.Written,
		Skipped: stats.Skipped,
	}, nil
}
