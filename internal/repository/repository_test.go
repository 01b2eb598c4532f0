package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/lk16/reversi/internal/models"
	"github.com/lk16/reversi/internal/search"
	"github.com/lk16/reversi/internal/services"
	"github.com/stretchr/testify/require"
)

func TestParseStats(t *testing.T) {
	tests := []struct {
		name    string
		hash    map[string]string
		want    []models.SearchStats
		wantErr bool
	}{
		{
			name: "empty",
			hash: map[string]string{},
			want: []models.SearchStats{},
		},
		{
			name: "sorted by policy",
			hash: map[string]string{
				"minimax:searches":   "2",
				"minimax:nodes":      "900",
				"alphabeta:searches": "5",
				"alphabeta:nodes":    "1200",
			},
			want: []models.SearchStats{
				{Policy: "alphabeta", Searches: 5, Nodes: 1200},
				{Policy: "minimax", Searches: 2, Nodes: 900},
			},
		},
		{
			name:    "key without counter",
			hash:    map[string]string{"alphabeta": "1"},
			wantErr: true,
		},
		{
			name:    "unknown counter",
			hash:    map[string]string{"alphabeta:depth": "1"},
			wantErr: true,
		},
		{
			name:    "value not a number",
			hash:    map[string]string{"alphabeta:nodes": "many"},
			wantErr: true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			stats, err := parseStats(test.hash)
			if test.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.Equal(t, test.want, stats)
		})
	}
}

func TestClampReportLimit(t *testing.T) {
	require.Equal(t, DefaultReportLimit, ClampReportLimit(0))
	require.Equal(t, DefaultReportLimit, ClampReportLimit(-3))
	require.Equal(t, 7, ClampReportLimit(7))
	require.Equal(t, MaxReportLimit, ClampReportLimit(MaxReportLimit+1))
}

func TestRepositoriesWithoutServices(t *testing.T) {
	ctx := context.Background()
	services := &services.Services{}

	reports := NewReportRepositoryFromServices(services)
	require.False(t, reports.Enabled())
	require.ErrorIs(t, reports.EnsureSchema(ctx), ErrServiceUnavailable)
	require.ErrorIs(t, reports.Insert(ctx, models.SearchReport{ID: uuid.New()}), ErrServiceUnavailable)

	_, err := reports.Recent(ctx, 10)
	require.ErrorIs(t, err, ErrServiceUnavailable)

	stats := NewStatsRepositoryFromServices(services)
	require.False(t, stats.Enabled())
	require.ErrorIs(t, stats.Record(ctx, search.Result{Policy: search.AlphaBeta}), ErrServiceUnavailable)

	_, err = stats.GetStats(ctx)
	require.ErrorIs(t, err, ErrServiceUnavailable)

	require.False(t, NewStatsRepositoryFromServices(nil).Enabled())
}
