package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"

	"github.com/example/go-tokviz/internal/controller"
	"github.com/example/go-tokviz/internal/render"
	"github.com/example/go-tokviz/internal/viewmode"
)

// FrameType names a session frame.
type FrameType string

const (
	// Client to server.
	FrameInput FrameType = "input"
	FrameMode  FrameType = "mode"

	// Server to client.
	FrameRender FrameType = "render"
	FrameError  FrameType = "error"
)

// ClientFrame is sent by the browser on every edit or mode selection.
type ClientFrame struct {
	Type FrameType `json:"type"`
	Text string    `json:"text,omitempty"`
	Mode string    `json:"mode,omitempty"`
}

// ServerFrame carries either a fresh render or an error. An error frame
// never implies the previous render is gone.
type ServerFrame struct {
	Type      FrameType      `json:"type"`
	SessionID string         `json:"session_id,omitempty"`
	Output    *render.Output `json:"output,omitempty"`
	Error     string         `json:"error,omitempty"`
}

// frameSlack covers the JSON envelope around the text of an input frame.
const frameSlack = 4096

var errUnknownFrame = errors.New("unknown frame type")

func (h *handler) handleSession(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		h.log.WarnContext(r.Context(), "ws accept", slog.String("error", err.Error()))
		return
	}
	defer func() { _ = conn.CloseNow() }()

	if h.opts.maxTextBytes > 0 {
		conn.SetReadLimit(int64(h.opts.maxTextBytes) + frameSlack)
	}

	s := newSession(conn, h)
	if err := s.run(r.Context()); err != nil {
		h.log.DebugContext(r.Context(), "ws session ended",
			slog.String("session_id", s.id),
			slog.String("error", err.Error()),
		)
		return
	}

	_ = conn.Close(websocket.StatusNormalClosure, "")
}

// session owns one browser connection. Frames are handled one at a time on
// the read loop, so the controller is never used concurrently.
type session struct {
	id   string
	conn *websocket.Conn
	h    *handler
	log  *slog.Logger

	ctx      context.Context
	writeErr error
	ctrl     *controller.Session
}

func newSession(conn *websocket.Conn, h *handler) *session {
	s := &session{
		id:   uuid.NewString(),
		conn: conn,
		h:    h,
	}
	s.log = h.log.With(slog.String("session_id", s.id))
	s.ctrl = controller.NewSession(h.tok, h.opts.defaultMode,
		controller.DisplayFunc(s.commit), controller.WithLogger(s.log))

	return s
}

// commit implements controller.Display by pushing a render frame.
func (s *session) commit(out render.Output) error {
	err := wsjson.Write(s.ctx, s.conn, ServerFrame{
		Type:      FrameRender,
		SessionID: s.id,
		Output:    &out,
	})
	if err != nil {
		s.writeErr = err
	}

	return err
}

// run sends the initial render, then serves frames until the peer closes
// the connection or ctx ends. A clean close returns nil.
func (s *session) run(ctx context.Context) error {
	s.ctx = ctx
	s.log.InfoContext(ctx, "ws session opened")
	defer s.log.InfoContext(ctx, "ws session closed", slog.Int("renders", s.ctrl.Renders()))

	if err := s.report(s.ctrl.Start()); err != nil {
		return err
	}

	for {
		var f ClientFrame
		if err := wsjson.Read(ctx, s.conn, &f); err != nil {
			if websocket.CloseStatus(err) == websocket.StatusNormalClosure ||
				websocket.CloseStatus(err) == websocket.StatusGoingAway {
				return nil
			}
			return fmt.Errorf("read frame: %w", err)
		}

		if err := s.report(s.handle(f)); err != nil {
			return err
		}
	}
}

func (s *session) handle(f ClientFrame) error {
	switch f.Type {
	case FrameInput:
		// Oversize text is still stored so a later mode frame cannot
		// re-render what the user has already replaced.
		if s.h.tooLarge(f.Text) {
			s.ctrl.Input.Set(f.Text)
			return s.errTooLarge()
		}
		return s.ctrl.SetText(f.Text)
	case FrameMode:
		m, err := viewmode.ParseMode(f.Mode)
		if err != nil {
			return err
		}
		if s.h.tooLarge(s.ctrl.Input.Text()) {
			s.ctrl.Modes.Select(m)
			return s.errTooLarge()
		}
		return s.ctrl.SelectMode(m)
	default:
		return fmt.Errorf("%w %q", errUnknownFrame, f.Type)
	}
}

func (s *session) errTooLarge() error {
	return fmt.Errorf("text exceeds maximum size of %d bytes", s.h.opts.maxTextBytes)
}

// report turns a failed cycle into an error frame. Only a broken
// connection is returned to end the session.
func (s *session) report(err error) error {
	if err == nil {
		return nil
	}

	if s.writeErr != nil {
		return s.writeErr
	}

	s.log.DebugContext(s.ctx, "ws render failed", slog.String("error", err.Error()))

	if werr := wsjson.Write(s.ctx, s.conn, ServerFrame{
		Type:      FrameError,
		SessionID: s.id,
		Error:     err.Error(),
	}); werr != nil {
		return werr
	}

	return nil
}
