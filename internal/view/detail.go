// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package view

import (
	"context"
	"time"

	"github.com/pdiddy/paper2notion/internal/notion"
	"github.com/pdiddy/paper2notion/pkg/types"
)

// Fetcher loads one paper's details.
type Fetcher interface {
	FetchDetail(ctx context.Context, id string) (types.PaperDetail, error)
}

// SettingsSource supplies the export settings snapshot.
type SettingsSource interface {
	Load(ctx context.Context) (types.ExportSettings, error)
}

// DetailView holds one paper and the settings snapshot read alongside it.
type DetailView struct {
	machine
	fetcher  Fetcher
	settings SettingsSource

	detail      types.PaperDetail
	snapshot    types.ExportSettings
	settingsErr error
}

// NewDetailView returns an Idle detail view. settings may be nil, in which
// case export is never offered.
func NewDetailView(f Fetcher, settings SettingsSource) *DetailView {
	return &DetailView{fetcher: f, settings: settings}
}

// Load fetches paper id and then reads the export settings. A settings
// read failure does not fail the load; it only disables export.
func (v *DetailView) Load(ctx context.Context, id string) error {
	if err := v.begin(); err != nil {
		return err
	}

	d, err := v.fetcher.FetchDetail(ctx, id)

	var (
		snap    types.ExportSettings
		snapErr error
	)
	if v.settings != nil {
		snap, snapErr = v.settings.Load(ctx)
	}

	v.finish(err, func() {
		v.snapshot, v.settingsErr = snap, snapErr
		if err != nil {
			v.detail = types.PaperDetail{}
			return
		}
		v.detail = d
	})
	return err
}

// Detail returns the loaded paper.
func (v *DetailView) Detail() types.PaperDetail {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.detail
}

// Settings returns the settings snapshot taken by the last Load.
func (v *DetailView) Settings() types.ExportSettings {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.snapshot
}

// SettingsErr returns the error from reading settings during the last Load.
func (v *DetailView) SettingsErr() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.settingsErr
}

// CanExport reports whether a paper is loaded and the settings allow saving.
func (v *DetailView) CanExport() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state == Loaded && v.snapshot.Complete()
}

// PageExporter creates the Notion page.
type PageExporter interface {
	Export(ctx context.Context, d types.PaperDetail, es types.ExportSettings) (notion.Result, error)
}

// Recorder logs successful exports.
type Recorder interface {
	RecordExport(ctx context.Context, rec types.ExportRecord) error
}

// ExportView tracks one save action.
type ExportView struct {
	machine
	exporter PageExporter
	recorder Recorder

	result     notion.Result
	historyErr error
}

// NewExportView returns an Idle export view. recorder may be nil.
func NewExportView(e PageExporter, recorder Recorder) *ExportView {
	return &ExportView{exporter: e, recorder: recorder}
}

// Save exports d with es. After a successful export the page is recorded
// in history; a history failure is kept in HistoryErr and does not turn
// the export into a failure.
func (v *ExportView) Save(ctx context.Context, d types.PaperDetail, es types.ExportSettings) (notion.Result, error) {
	if err := v.begin(); err != nil {
		return notion.Result{}, err
	}

	res, err := v.exporter.Export(ctx, d, es)

	var histErr error
	if err == nil && v.recorder != nil {
		histErr = v.recorder.RecordExport(ctx, types.ExportRecord{
			PaperID:    d.ID,
			Title:      d.Title,
			PageURL:    res.PageURL,
			DatabaseID: es.DatabaseID,
			SavedAt:    time.Now(),
		})
	}

	v.finish(err, func() {
		v.historyErr = histErr
		if err != nil {
			v.result = notion.Result{}
			return
		}
		v.result = res
	})
	return res, err
}

// Result returns the last created page.
func (v *ExportView) Result() notion.Result {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.result
}

// HistoryErr returns the error from recording the last export, if any.
func (v *ExportView) HistoryErr() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.historyErr
}
