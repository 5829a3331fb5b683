package report

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/de-tools/instance-atlas/pkg/export"
	"github.com/de-tools/instance-atlas/pkg/models/api"
	"github.com/de-tools/instance-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
)

// Generator produces a fresh utilization report on demand.
type Generator interface {
	Generate(ctx context.Context) (*domain.UtilizationReport, error)
}

type Handler struct {
	generator Generator
}

func NewHandler(generator Generator) *Handler {
	return &Handler{generator: generator}
}

func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	rep, ok := h.generate(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(toAPIReport(rep)); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to encode report")
	}
}

func (h *Handler) GetReportCSV(w http.ResponseWriter, r *http.Request) {
	rep, ok := h.generate(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="ec2_underutilized_report.csv"`)
	if err := export.WriteCSV(w, rep); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to write CSV report")
	}
}

func (h *Handler) GetReportHTML(w http.ResponseWriter, r *http.Request) {
	rep, ok := h.generate(w, r)
	if !ok {
		return
	}

	html, err := export.RenderHTML(rep)
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to render HTML report")
		http.Error(w, "failed to render report", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(html))
}

func (h *Handler) generate(w http.ResponseWriter, r *http.Request) (*domain.UtilizationReport, bool) {
	rep, err := h.generator.Generate(r.Context())
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to generate report")
		http.Error(w, "failed to generate report", http.StatusInternalServerError)
		return nil, false
	}
	return rep, true
}

func toAPIReport(rep *domain.UtilizationReport) api.UtilizationReport {
	records := make([]api.UtilizationRecord, 0, len(rep.Records))
	for _, record := range rep.Records {
		records = append(records, api.UtilizationRecord{
			InstanceID:     record.InstanceID,
			InstanceType:   record.InstanceType,
			Name:           record.Name,
			CPUAvgPct:      record.CPUAvgPct,
			MemAvgPct:      record.MemAvgPct,
			Recommendation: string(record.Recommendation),
		})
	}
	return api.UtilizationReport{
		Region:      rep.Region,
		WindowStart: rep.Window.Start,
		WindowEnd:   rep.Window.End,
		GeneratedAt: rep.GeneratedAt,
		Records:     records,
	}
}
