package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/lk16/reversi/internal/analysis"
	"github.com/lk16/reversi/internal/models"
)

const (
	recordTimeout = 2 * time.Second
)

var ErrUnknownEvent = errors.New("unknown event")

type Handler struct {
	analyzer *analysis.Analyzer
	ws       *websocket.Conn
}

// NewHandler creates a new Handler.
func NewHandler(ws *websocket.Conn, analyzer *analysis.Analyzer) *Handler {
	return &Handler{analyzer: analyzer, ws: ws}
}

func (h *Handler) readMessage() (*Incoming, error) {
	var req Incoming

	msgType, msg, err := h.ws.ReadMessage()
	if err != nil {
		return nil, fmt.Errorf("ws read error: %w", err)
	}

	slog.Debug("read ws message", "msgType", msgType, "msg", string(msg))

	if msgType != websocket.TextMessage {
		return nil, fmt.Errorf("unexpected message type: %d", msgType)
	}

	if err = json.Unmarshal(msg, &req); err != nil {
		return nil, fmt.Errorf("unmarshal error: %w", err)
	}

	return &req, nil
}

func (h *Handler) writeMessage(outgoing *Outgoing) error {
	msg, err := json.Marshal(outgoing)
	if err != nil {
		return fmt.Errorf("marshal error: %w", err)
	}

	slog.Debug("write ws message", "msg", string(msg))

	if err = h.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
		return fmt.Errorf("write error: %w", err)
	}

	return nil
}

func (h *Handler) handleMessage(req *Incoming) (*Outgoing, error) {
	if req.Event == "" {
		return nil, errors.New("event field is either empty or missing")
	}

	switch req.Event {
	case EventLegalMoves:
		return h.handleLegalMovesRequest(req)
	case EventChoose:
		return h.handleChooseRequest(req)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownEvent, req.Event)
	}
}

// Handle handles the websocket connection. Malformed or rejected requests are answered
// with an error message, the connection is only closed on transport errors.
func (h *Handler) Handle() error {
	for {
		req, err := h.readMessage()
		if err != nil {
			return fmt.Errorf("ws read error: %w", err)
		}

		resp, err := h.handleMessage(req)
		if err != nil {
			slog.Debug("ws request failed", "event", req.Event, "id", req.ID, "error", err)
			resp = &Outgoing{ID: req.ID, Error: err.Error()}
		}

		if err = h.writeMessage(resp); err != nil {
			return fmt.Errorf("ws write error: %w", err)
		}
	}
}

func (h *Handler) handleLegalMovesRequest(req *Incoming) (*Outgoing, error) {
	var reqData models.MovesRequest
	if err := json.Unmarshal(req.Data, &reqData); err != nil {
		return nil, fmt.Errorf("ws legal moves request unmarshal error: %w", err)
	}

	response, err := h.analyzer.Moves(reqData)
	if err != nil {
		return nil, err
	}

	return &Outgoing{ID: req.ID, Data: response}, nil
}

func (h *Handler) handleChooseRequest(req *Incoming) (*Outgoing, error) {
	var reqData models.ChooseRequest
	if err := json.Unmarshal(req.Data, &reqData); err != nil {
		return nil, fmt.Errorf("ws choose request unmarshal error: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()

	response, err := h.analyzer.Choose(ctx, reqData)
	if err != nil {
		return nil, err
	}

	return &Outgoing{ID: req.ID, Data: response}, nil
}
