package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ID 聊天室 / 使用者識別碼
// server 端可能回傳數字、數字字串或 null
type ID int64

// IsZero 未設定
func (id ID) IsZero() bool {
	return id == 0
}

func (id ID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// ParseID 解析文字輸入
func ParseID(s string) (ID, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: %w", s, err)
	}
	return ID(v), nil
}

// UnmarshalJSON 接受 number / "123" / null
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*id = 0
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if s == "" {
			*id = 0
			return nil
		}
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid id %q: %w", s, err)
		}
		*id = ID(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	v, err := n.Int64()
	if err != nil {
		return fmt.Errorf("invalid id %s: %w", n, err)
	}
	*id = ID(v)
	return nil
}

// Flag sqlite 的 seen 欄位是 0/1，也接受 bool
type Flag bool

// Bool 轉回 bool，方便與其他條件組合
func (f Flag) Bool() bool {
	return bool(f)
}

// UnmarshalJSON 接受 true/false/0/1/null
func (f *Flag) UnmarshalJSON(b []byte) error {
	switch string(bytes.TrimSpace(b)) {
	case "true", "1", `"1"`, `"true"`:
		*f = true
	case "false", "0", "null", `"0"`, `"false"`, `""`:
		*f = false
	default:
		return fmt.Errorf("invalid flag %s", b)
	}
	return nil
}

// Message 一則聊天訊息
type Message struct {
	ClientID ID     `json:"client_id"`
	AdminID  ID     `json:"admin_id"`
	SenderID ID     `json:"sender_id"`
	Text     string `json:"text"`
	Date     string `json:"date"`
	Seen     Flag   `json:"seen"`
}

// FromClient 由客戶端發送 (非管理員自己的訊息)
func (m Message) FromClient() bool {
	return m.ClientID == m.SenderID
}

// dateLayouts server 端可能出現的時間格式
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006.01.02 15:04",
	"2006-01-02",
}

// Time 解析 Date，失敗時 ok=false
func (m Message) Time() (time.Time, bool) {
	s := strings.TrimSpace(m.Date)
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDate 畫面顯示用，無法解析時原樣回傳
func (m Message) FormatDate() string {
	t, ok := m.Time()
	if !ok {
		return m.Date
	}
	return t.Format("2006-01-02 15:04")
}

// Chatroom 聊天室
type Chatroom struct {
	ChatroomID        ID        `json:"chatroom_id"`
	Email             string    `json:"email"`
	UserID            ID        `json:"user_id"`
	Messages          []Message `json:"messages"`
	HasUnreadMessages Flag      `json:"has_unread_messages"`
	LatestDate        string    `json:"latest_date"`
}

// LastMessage 最後一則訊息
func (c Chatroom) LastMessage() (Message, bool) {
	if len(c.Messages) == 0 {
		return Message{}, false
	}
	return c.Messages[len(c.Messages)-1], true
}

// UnreadCount 聊天室未讀數
func (c Chatroom) UnreadCount() int {
	return UnreadCount(c.Messages)
}

// UnreadCount 未讀且由客戶端發送的訊息數
func UnreadCount(messages []Message) int {
	count := 0
	for _, m := range messages {
		if !m.Seen.Bool() && m.FromClient() {
			count++
		}
	}
	return count
}

// Selection 目前選取的聊天室
type Selection struct {
	ChatroomID ID
	ClientID   ID
	AdminID    ID
}

// Complete 三個 id 都有值才可以送訊息 / 同步
func (s Selection) Complete() bool {
	return !s.ChatroomID.IsZero() && !s.ClientID.IsZero() && !s.AdminID.IsZero()
}

// user-facing messages
const (
	ErrMsgEmptyText        = "메시지 내용이 없습니다."
	ErrMsgNoSelection      = "채팅방 정보가 없습니다."
	ErrMsgLoadMessages     = "메시지를 불러오는 데 실패했습니다."
	ErrMsgLoadChatrooms    = "채팅방 목록을 불러오는 데 실패했습니다."
	ErrMsgMarkRead         = "메시지 읽음 처리 실패"
	ErrMsgSend             = "메시지 전송 실패"
	ErrMsgSync             = "채팅 내역 동기화 실패"
	ErrMsgChatroomRequired = "채팅방 ID가 없습니다."
)
