package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"
)

const writeWait = time.Second

var upgrader = websocket.Upgrader{}

// handleStream upgrades to a websocket and publishes one StepResponse per
// StepInterval until the session is done or the client goes away.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	ready := s.session != nil
	s.mu.Unlock()
	if !ready {
		s.fail(w, r, http.StatusBadRequest, ErrNoSession)
		return
	}

	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer ws.Close()

	if err := s.stream(r.Context(), ws); err != nil && !isClosure(err) {
		s.logger.Warn("stream ended", "error", err)
	}
}

func (s *Server) stream(ctx context.Context, ws *websocket.Conn) error {
	group, groupCtx := errgroup.WithContext(ctx)

	// Reads only detect the client going away.
	group.Go(func() error {
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return err
			}
		}
	})
	group.Go(func() error {
		defer ws.Close()
		return s.publish(groupCtx, ws)
	})

	err := group.Wait()
	if errors.Is(err, errStreamDone) {
		return nil
	}
	return err
}

var errStreamDone = errors.New("stream done")

func (s *Server) publish(ctx context.Context, ws *websocket.Conn) error {
	interval := s.cfg.Server.StepInterval
	if interval <= 0 {
		interval = time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			resp, err := s.advance(1)
			if err != nil {
				return err
			}
			if err := ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return fmt.Errorf("failed to set deadline: %w", err)
			}
			if err := ws.WriteJSON(resp); err != nil {
				return fmt.Errorf("publish failed: %w", err)
			}
			if resp.Done {
				_ = ws.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "done"),
					time.Now().Add(writeWait))
				return errStreamDone
			}
		}
	}
}

func isClosure(err error) bool {
	return err != nil && websocket.IsCloseError(
		err,
		websocket.CloseNormalClosure,
		websocket.CloseGoingAway)
}
