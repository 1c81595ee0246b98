// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package view

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paper2notion/internal/notion"
	"github.com/pdiddy/paper2notion/pkg/types"
)

// --- fakes ---

type searchCall struct {
	query  string
	offset int
}

type fakeSearcher struct {
	total int
	err   error
	calls []searchCall
	block chan struct{}
}

func (f *fakeSearcher) Search(ctx context.Context, query string, offset int) (types.SearchPage, error) {
	f.calls = append(f.calls, searchCall{query, offset})
	if f.block != nil {
		<-f.block
	}
	if f.err != nil {
		return types.SearchPage{}, f.err
	}
	var results []types.SearchResult
	for i := offset; i < offset+types.PageSize && i < f.total; i++ {
		results = append(results, types.SearchResult{ID: fmt.Sprintf("p%d", i), Title: fmt.Sprintf("Paper %d", i)})
	}
	return types.SearchPage{Results: results, Total: f.total, Offset: offset}, nil
}

type fakeFetcher struct {
	detail types.PaperDetail
	err    error
}

func (f *fakeFetcher) FetchDetail(ctx context.Context, id string) (types.PaperDetail, error) {
	if f.err != nil {
		return types.PaperDetail{}, f.err
	}
	d := f.detail
	d.ID = id
	return d, nil
}

type fakeSettings struct {
	es  types.ExportSettings
	err error
}

func (f *fakeSettings) Load(ctx context.Context) (types.ExportSettings, error) {
	return f.es, f.err
}

type fakeExporter struct {
	res   notion.Result
	err   error
	calls int
}

func (f *fakeExporter) Export(ctx context.Context, d types.PaperDetail, es types.ExportSettings) (notion.Result, error) {
	f.calls++
	return f.res, f.err
}

type fakeRecorder struct {
	records []types.ExportRecord
	err     error
}

func (f *fakeRecorder) RecordExport(ctx context.Context, rec types.ExportRecord) error {
	if f.err != nil {
		return f.err
	}
	f.records = append(f.records, rec)
	return nil
}

// --- State ---

func TestStateTransitions(t *testing.T) {
	tests := []struct {
		from, to State
		want     bool
	}{
		{Idle, Loading, true},
		{Loaded, Loading, true},
		{Failed, Loading, true},
		{Loading, Loaded, true},
		{Loading, Failed, true},
		{Loading, Loading, false},
		{Idle, Loaded, false},
		{Idle, Failed, false},
		{Loaded, Failed, false},
		{Failed, Loaded, false},
		{Loaded, Idle, false},
	}
	for _, tt := range tests {
		t.Run(tt.from.String()+"->"+tt.to.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransition(tt.to))
		})
	}
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "state(9)", State(9).String())
}

// --- SearchView ---

func TestSearchViewPaging(t *testing.T) {
	s := &fakeSearcher{total: 12}
	v := NewSearchView(s)
	ctx := context.Background()

	assert.Equal(t, Idle, v.State())

	require.NoError(t, v.Submit(ctx, "transformers"))
	assert.Equal(t, Loaded, v.State())
	assert.Len(t, v.Results(), 5)
	p := v.Pagination()
	assert.Equal(t, 1, p.CurrentPage())
	assert.Equal(t, 3, p.TotalPages())
	assert.False(t, p.HasPrev())
	assert.True(t, p.HasNext())

	assert.ErrorIs(t, v.Prev(ctx), ErrNoPrevPage)

	require.NoError(t, v.Next(ctx))
	require.NoError(t, v.Next(ctx))
	p = v.Pagination()
	assert.Equal(t, 3, p.CurrentPage())
	assert.Len(t, v.Results(), 2)
	assert.False(t, p.HasNext())
	assert.ErrorIs(t, v.Next(ctx), ErrNoNextPage)

	require.NoError(t, v.Prev(ctx))
	assert.Equal(t, 2, v.Pagination().CurrentPage())

	assert.Equal(t, []searchCall{
		{"transformers", 0}, {"transformers", 5}, {"transformers", 10}, {"transformers", 5},
	}, s.calls)
}

func TestSearchViewSubmitResetsOffset(t *testing.T) {
	s := &fakeSearcher{total: 30}
	v := NewSearchView(s)
	ctx := context.Background()

	require.NoError(t, v.Submit(ctx, "a"))
	require.NoError(t, v.Next(ctx))
	require.NoError(t, v.Submit(ctx, "b"))

	assert.Equal(t, 0, v.Pagination().Offset)
	assert.Equal(t, "b", v.Query())
}

func TestSearchViewFailureClearsResults(t *testing.T) {
	s := &fakeSearcher{total: 12}
	v := NewSearchView(s)
	ctx := context.Background()

	require.NoError(t, v.Submit(ctx, "ok"))
	require.NotEmpty(t, v.Results())

	boom := errors.New("boom")
	s.err = boom
	err := v.Next(ctx)
	require.ErrorIs(t, err, boom)

	assert.Equal(t, Failed, v.State())
	assert.ErrorIs(t, v.Err(), boom)
	assert.Empty(t, v.Results())
	assert.Equal(t, 0, v.Pagination().Offset, "pagination only moves on success")

	s.err = nil
	require.NoError(t, v.Next(ctx), "a failed view can be retried by the user")
	assert.Equal(t, Loaded, v.State())
	assert.NoError(t, v.Err())
}

func TestSearchViewFailedNewQueryDropsOldPaging(t *testing.T) {
	s := &fakeSearcher{total: 12}
	v := NewSearchView(s)
	ctx := context.Background()

	require.NoError(t, v.Submit(ctx, "good"))
	require.True(t, v.Pagination().HasNext())

	s.err = errors.New("boom")
	require.Error(t, v.Submit(ctx, "bad"))
	s.err = nil

	assert.Equal(t, "bad", v.Query())
	assert.False(t, v.Pagination().HasNext())
	assert.ErrorIs(t, v.Next(ctx), ErrNoNextPage)
	assert.Equal(t, []searchCall{{"good", 0}, {"bad", 0}}, s.calls, "next must not reload the replaced query")

	require.NoError(t, v.Submit(ctx, "bad"))
	assert.Equal(t, Loaded, v.State())
}

func TestSearchViewNoResults(t *testing.T) {
	v := NewSearchView(&fakeSearcher{total: 0})
	require.NoError(t, v.Submit(context.Background(), "nothing"))

	p := v.Pagination()
	assert.Empty(t, v.Results())
	assert.False(t, p.HasNext())
	assert.False(t, p.HasPrev())
}

func TestSearchViewRejectsConcurrentTrigger(t *testing.T) {
	s := &fakeSearcher{total: 12, block: make(chan struct{})}
	v := NewSearchView(s)
	ctx := context.Background()

	done := make(chan error, 1)
	go func() { done <- v.Submit(ctx, "slow") }()

	require.Eventually(t, func() bool { return v.State() == Loading }, time.Second, time.Millisecond)
	assert.ErrorIs(t, v.Submit(ctx, "again"), ErrBusy)

	close(s.block)
	require.NoError(t, <-done)
	assert.Equal(t, Loaded, v.State())
	assert.Len(t, s.calls, 1)
}

// --- DetailView ---

func TestDetailViewLoad(t *testing.T) {
	f := &fakeFetcher{detail: types.PaperDetail{Title: "T"}}
	st := &fakeSettings{es: types.ExportSettings{APIToken: "tok", DatabaseID: "db"}}
	v := NewDetailView(f, st)

	assert.False(t, v.CanExport())
	require.NoError(t, v.Load(context.Background(), "p1"))

	assert.Equal(t, Loaded, v.State())
	assert.Equal(t, "p1", v.Detail().ID)
	assert.Equal(t, "db", v.Settings().DatabaseID)
	assert.True(t, v.CanExport())
}

func TestDetailViewIncompleteSettings(t *testing.T) {
	v := NewDetailView(&fakeFetcher{}, &fakeSettings{es: types.ExportSettings{DatabaseID: "db"}})
	require.NoError(t, v.Load(context.Background(), "p"))
	assert.False(t, v.CanExport())
}

func TestDetailViewSettingsErrorDoesNotFailLoad(t *testing.T) {
	v := NewDetailView(&fakeFetcher{}, &fakeSettings{err: errors.New("db locked")})
	require.NoError(t, v.Load(context.Background(), "p"))
	assert.Equal(t, Loaded, v.State())
	assert.Error(t, v.SettingsErr())
	assert.False(t, v.CanExport())
}

func TestDetailViewFetchFailure(t *testing.T) {
	boom := errors.New("404")
	v := NewDetailView(&fakeFetcher{err: boom}, &fakeSettings{es: types.ExportSettings{APIToken: "t", DatabaseID: "d"}})
	require.ErrorIs(t, v.Load(context.Background(), "p"), boom)
	assert.Equal(t, Failed, v.State())
	assert.False(t, v.CanExport())
	assert.Empty(t, v.Detail().ID)
}

func TestDetailViewNilSettings(t *testing.T) {
	v := NewDetailView(&fakeFetcher{}, nil)
	require.NoError(t, v.Load(context.Background(), "p"))
	assert.False(t, v.CanExport())
}

// --- ExportView ---

func TestExportViewSaveRecordsHistory(t *testing.T) {
	e := &fakeExporter{res: notion.Result{PageID: "pg", PageURL: "https://www.notion.so/pg"}}
	r := &fakeRecorder{}
	v := NewExportView(e, r)

	d := types.PaperDetail{ID: "p1", Title: "Title"}
	es := types.ExportSettings{APIToken: "t", DatabaseID: "db"}
	res, err := v.Save(context.Background(), d, es)
	require.NoError(t, err)

	assert.Equal(t, "https://www.notion.so/pg", res.PageURL)
	assert.Equal(t, res, v.Result())
	assert.Equal(t, Loaded, v.State())
	require.Len(t, r.records, 1)
	assert.Equal(t, "p1", r.records[0].PaperID)
	assert.Equal(t, "db", r.records[0].DatabaseID)
	assert.Equal(t, "https://www.notion.so/pg", r.records[0].PageURL)
	assert.False(t, r.records[0].SavedAt.IsZero())
}

func TestExportViewFailureRecordsNothing(t *testing.T) {
	e := &fakeExporter{err: notion.ErrMissingConfiguration}
	r := &fakeRecorder{}
	v := NewExportView(e, r)

	_, err := v.Save(context.Background(), types.PaperDetail{ID: "p"}, types.ExportSettings{})
	require.ErrorIs(t, err, notion.ErrMissingConfiguration)
	assert.Equal(t, Failed, v.State())
	assert.Empty(t, r.records)
	assert.Empty(t, v.Result().PageURL)
}

func TestExportViewHistoryFailureKeepsSuccess(t *testing.T) {
	e := &fakeExporter{res: notion.Result{PageURL: "https://www.notion.so/x"}}
	v := NewExportView(e, &fakeRecorder{err: errors.New("disk full")})

	res, err := v.Save(context.Background(), types.PaperDetail{ID: "p"}, types.ExportSettings{APIToken: "t", DatabaseID: "d"})
	require.NoError(t, err)
	assert.Equal(t, "https://www.notion.so/x", res.PageURL)
	assert.Equal(t, Loaded, v.State())
	assert.Error(t, v.HistoryErr())
}
