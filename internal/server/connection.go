package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/GhostOf0days/casino/internal/game"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 4096

	sendBuffer = 256
)

// ErrConnectionClosed is returned when sending on a closed connection
var ErrConnectionClosed = errors.New("connection closed")

// Connection pairs one websocket client with its own game session
type Connection struct {
	conn        *websocket.Conn
	session     *game.Session
	send        chan *Message
	logger      *log.Logger
	ctx         context.Context
	cancel      context.CancelFunc
	closeOnce   sync.Once
	unsubscribe func()
}

// NewConnection wraps a websocket and subscribes to the session. The
// connection owns the session and closes it on Close.
func NewConnection(ctx context.Context, conn *websocket.Conn, session *game.Session, logger *log.Logger) *Connection {
	ctx, cancel := context.WithCancel(ctx)
	c := &Connection{
		conn:    conn,
		session: session,
		send:    make(chan *Message, sendBuffer),
		logger:  logger.WithPrefix("conn").With("session", session.ID().String()[:8]),
		ctx:     ctx,
		cancel:  cancel,
	}
	c.unsubscribe = session.Subscribe(game.SubscriberFunc(c.onEvent))
	return c
}

// Start sends the welcome message and begins pumping frames
func (c *Connection) Start() {
	snap := c.session.Snapshot()
	c.sendData(MessageTypeWelcome, WelcomeData{
		SessionID: snap.ID,
		Games:     gameInfos(),
		Opponent: OpponentInfo{
			Name:        game.House.Name,
			Difficulty:  game.House.Difficulty,
			Description: game.House.Description,
			Modifier:    game.House.Modifier,
		},
		State: &snap,
	})

	go c.writePump()
	go c.readPump()
}

// Done is closed once the connection has shut down
func (c *Connection) Done() <-chan struct{} {
	return c.ctx.Done()
}

// Close tears down the session and the socket
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.unsubscribe()
		c.cancel()
		if cerr := c.session.Close(); cerr != nil && !errors.Is(cerr, game.ErrSessionClosed) {
			c.logger.Debug("Session close failed", "error", cerr)
		}
		err = c.conn.Close()
	})
	return err
}

// SendMessage queues a message for the client. A client that cannot keep
// up with its buffer is disconnected.
func (c *Connection) SendMessage(msg *Message) error {
	select {
	case <-c.ctx.Done():
		return ErrConnectionClosed
	default:
	}

	select {
	case c.send <- msg:
		return nil
	case <-c.ctx.Done():
		return ErrConnectionClosed
	default:
		c.logger.Warn("Connection send buffer full, closing connection")
		_ = c.Close()
		return ErrConnectionClosed
	}
}

func (c *Connection) sendData(t MessageType, data any) {
	msg, err := NewMessage(t, data)
	if err != nil {
		c.logger.Error("Failed to encode message", "type", t, "error", err)
		return
	}
	_ = c.SendMessage(msg)
}

func (c *Connection) sendError(code, message string) {
	c.sendData(MessageTypeError, ErrorData{Code: code, Message: message})
}

func (c *Connection) sendState() {
	snap := c.session.Snapshot()
	c.sendData(MessageTypeState, &snap)
}

// onEvent forwards session events. It runs on whichever goroutine drove
// the session, including pacing timers.
func (c *Connection) onEvent(e game.Event) {
	switch ev := e.(type) {
	case game.NoticeEvent:
		c.sendData(MessageTypeNotice, NoticeData{Severity: ev.Notice.Severity, Message: ev.Notice.Message})
	default:
		snap := e.Snapshot()
		c.sendData(MessageTypeState, &snap)
	}
}

// readPump pumps messages from the websocket connection to the session
func (c *Connection) readPump() {
	defer func() { _ = c.Close() }()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var msg Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Error("WebSocket error", "error", err)
			}
			return
		}
		c.handleMessage(&msg)
	}
}

// writePump pumps messages to the websocket connection
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.Close()
	}()

	for {
		select {
		case message := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(message); err != nil {
				c.logger.Debug("Failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.ctx.Done():
			_ = c.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))
			return
		}
	}
}

// handleMessage runs one client request against the session
func (c *Connection) handleMessage(msg *Message) {
	c.logger.Debug("Received message", "type", msg.Type)

	err := c.dispatch(msg)
	var decodeErr *decodeError
	switch {
	case err == nil:
	case errors.As(err, &decodeErr):
		c.sendError(ErrorCodeInvalidMessage, err.Error())
	case game.IsNotice(err):
		// the session already published a notice
	case errors.Is(err, game.ErrInvalidTransition):
		c.logger.Debug("Ignored action", "type", msg.Type, "error", err)
		c.sendState()
	case errors.Is(err, game.ErrInvalidInput):
		c.sendError(ErrorCodeInvalidInput, err.Error())
	case errors.Is(err, game.ErrNoCollaborator), errors.Is(err, game.ErrSessionClosed):
		c.sendError(ErrorCodeUnavailable, err.Error())
	default:
		c.logger.Warn("Action failed", "type", msg.Type, "error", err)
		c.sendError(ErrorCodeInternal, err.Error())
	}
}

type decodeError struct {
	msgType MessageType
	err     error
}

func (e *decodeError) Error() string {
	return fmt.Sprintf("invalid %s message: %v", e.msgType, e.err)
}

func (e *decodeError) Unwrap() error { return e.err }

func decode[T any](msg *Message) (T, error) {
	var v T
	if len(msg.Data) == 0 {
		return v, &decodeError{msgType: msg.Type, err: errors.New("missing data")}
	}
	if err := json.Unmarshal(msg.Data, &v); err != nil {
		return v, &decodeError{msgType: msg.Type, err: err}
	}
	return v, nil
}

func (c *Connection) dispatch(msg *Message) error {
	s := c.session
	switch msg.Type {
	case MessageTypeSelect:
		data, err := decode[SelectData](msg)
		if err != nil {
			return err
		}
		return s.SelectVariant(data.Game)

	case MessageTypeBet:
		data, err := decode[BetData](msg)
		if err != nil {
			return err
		}
		return s.PlaceBet(data.Amount)

	case MessageTypeStart:
		return s.StartGame()

	case MessageTypePredict:
		data, err := decode[PredictData](msg)
		if err != nil {
			return err
		}
		p, err := game.ParsePrediction(data.Prediction)
		if err != nil {
			return &decodeError{msgType: msg.Type, err: err}
		}
		return s.Predict(p)

	case MessageTypeChoose:
		data, err := decode[ChooseData](msg)
		if err != nil {
			return err
		}
		side, err := game.ParseSide(data.Side)
		if err != nil {
			return &decodeError{msgType: msg.Type, err: err}
		}
		return s.Choose(side)

	case MessageTypeReveal:
		data, err := decode[PositionData](msg)
		if err != nil {
			return err
		}
		return s.Reveal(data.Index)

	case MessageTypeSpin:
		return s.Spin()

	case MessageTypeHold:
		data, err := decode[PositionData](msg)
		if err != nil {
			return err
		}
		return s.ToggleHold(data.Index)

	case MessageTypeDraw:
		return s.Draw()

	case MessageTypeDelegate:
		return s.Delegate(c.ctx)

	case MessageTypeReport:
		data, err := decode[ReportData](msg)
		if err != nil {
			return err
		}
		return s.Report(data.Win, data.Multiplier)

	case MessageTypeAgain:
		return s.PlayAgain()

	case MessageTypeChange:
		return s.ChangeGame()

	case MessageTypeReset:
		return s.Reset()

	default:
		return &decodeError{msgType: msg.Type, err: errors.New("unknown message type")}
	}
}
