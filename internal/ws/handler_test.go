package ws

import (
	"encoding/json"
	"testing"

	"github.com/lk16/reversi/internal/analysis"
	"github.com/lk16/reversi/internal/config"
	"github.com/lk16/reversi/internal/models"
	"github.com/lk16/reversi/internal/othello"
	"github.com/lk16/reversi/internal/services"
	"github.com/stretchr/testify/require"
)

func newTestHandler() *Handler {
	cfg := config.DefaultSearchConfig()
	cfg.DefaultDepth = 2

	analyzer := analysis.NewAnalyzer(othello.NewEngineMust(8, 8), cfg, &services.Services{})
	return NewHandler(nil, analyzer)
}

func mustMarshal(t *testing.T, v any) json.RawMessage {
	t.Helper()

	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}

func TestHandler_LegalMoves(t *testing.T) {
	h := newTestHandler()
	board := othello.NewBoardStartMust(8, 8)

	resp, err := h.handleMessage(&Incoming{
		Event: EventLegalMoves,
		ID:    7,
		Data:  mustMarshal(t, models.MovesRequest{Board: board.String()}),
	})
	require.NoError(t, err)
	require.Equal(t, 7, resp.ID)
	require.Equal(t, models.MovesResponse{Moves: []string{"d3", "c4", "f5", "e6"}}, resp.Data)
}

func TestHandler_Choose(t *testing.T) {
	h := newTestHandler()
	board := othello.NewBoardStartMust(8, 8)

	resp, err := h.handleMessage(&Incoming{
		Event: EventChoose,
		ID:    3,
		Data:  mustMarshal(t, models.ChooseRequest{Board: board.String(), Evaluator: "discs"}),
	})
	require.NoError(t, err)
	require.Equal(t, 3, resp.ID)

	response, ok := resp.Data.(models.ChooseResponse)
	require.True(t, ok)
	require.Contains(t, []string{"d3", "c4", "f5", "e6"}, response.Move)
	require.Equal(t, 2, response.Depth)
	require.Equal(t, "alphabeta", response.Policy)
}

func TestHandler_Errors(t *testing.T) {
	h := newTestHandler()

	tests := []struct {
		name    string
		req     *Incoming
		wantErr error
	}{
		{name: "missing event", req: &Incoming{}},
		{name: "unknown event", req: &Incoming{Event: "evaluation_request"}, wantErr: ErrUnknownEvent},
		{name: "bad data", req: &Incoming{Event: EventLegalMoves, Data: json.RawMessage(`[1]`)}},
		{
			name:    "invalid request",
			req:     &Incoming{Event: EventChoose, Data: json.RawMessage(`{"board": ""}`)},
			wantErr: models.ErrInvalidRequest,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := h.handleMessage(test.req)
			require.Error(t, err)
			if test.wantErr != nil {
				require.ErrorIs(t, err, test.wantErr)
			}
		})
	}
}
