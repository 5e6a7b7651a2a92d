package server

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/GhostOf0days/casino/internal/game"
)

// MessageType identifies a websocket message
type MessageType string

// Client → Server
const (
	MessageTypeSelect   MessageType = "select"
	MessageTypeBet      MessageType = "bet"
	MessageTypeStart    MessageType = "start"
	MessageTypePredict  MessageType = "predict"
	MessageTypeChoose   MessageType = "choose"
	MessageTypeReveal   MessageType = "reveal"
	MessageTypeSpin     MessageType = "spin"
	MessageTypeHold     MessageType = "hold"
	MessageTypeDraw     MessageType = "draw"
	MessageTypeDelegate MessageType = "delegate"
	MessageTypeReport   MessageType = "report"
	MessageTypeAgain    MessageType = "again"
	MessageTypeChange   MessageType = "change"
	MessageTypeReset    MessageType = "reset"
)

// Server → Client
const (
	MessageTypeWelcome MessageType = "welcome"
	MessageTypeState   MessageType = "state"
	MessageTypeNotice  MessageType = "notice"
	MessageTypeError   MessageType = "error"
)

// String returns the string representation of the message type
func (mt MessageType) String() string {
	return string(mt)
}

// Message is the envelope for every websocket frame
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewMessage creates a new message with the current timestamp
func NewMessage(messageType MessageType, data any) (*Message, error) {
	var raw json.RawMessage
	if data != nil {
		b, err := json.Marshal(data)
		if err != nil {
			return nil, err
		}
		raw = b
	}

	return &Message{
		Type:      messageType,
		Data:      raw,
		Timestamp: time.Now(),
	}, nil
}

// Client → Server Messages

type SelectData struct {
	Game game.Variant `json:"game"`
}

type BetData struct {
	Amount int `json:"amount"`
}

type PredictData struct {
	Prediction string `json:"prediction"`
}

type ChooseData struct {
	Side string `json:"side"`
}

// PositionData addresses a memory board position or a poker card, 0-based.
type PositionData struct {
	Index int `json:"index"`
}

type ReportData struct {
	Win        bool            `json:"win"`
	Multiplier decimal.Decimal `json:"multiplier"`
}

// Server → Client Messages

type WelcomeData struct {
	SessionID string         `json:"sessionId"`
	Games     []GameInfo     `json:"games"`
	Opponent  OpponentInfo   `json:"opponent"`
	State     *game.Snapshot `json:"state"`
}

type GameInfo struct {
	Key   game.Variant `json:"key"`
	Title string       `json:"title"`
}

type OpponentInfo struct {
	Name        string          `json:"name"`
	Difficulty  string          `json:"difficulty"`
	Description string          `json:"description"`
	Modifier    decimal.Decimal `json:"modifier"`
}

type NoticeData struct {
	Severity game.Severity `json:"severity"`
	Message  string        `json:"message"`
}

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes
const (
	ErrorCodeInvalidMessage = "invalid_message"
	ErrorCodeInvalidInput   = "invalid_input"
	ErrorCodeUnavailable    = "unavailable"
	ErrorCodeInternal       = "internal"
)

func gameInfos() []GameInfo {
	out := make([]GameInfo, 0, len(game.Variants))
	for _, v := range game.Variants {
		out = append(out, GameInfo{Key: v, Title: v.Title()})
	}
	return out
}
