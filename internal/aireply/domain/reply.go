package domain

// ReplyType AI 建議回覆的種類
type ReplyType string

// 固定五種回覆
const (
	PositiveBasic       ReplyType = "positive_basic"
	PositiveDetailed    ReplyType = "positive_detailed"
	NegativeBasic       ReplyType = "negative_basic"
	NegativeWithMargin  ReplyType = "negative_with_margin"
	AlternativeSolution ReplyType = "alternative_solution"
)

// ReplyTypes 顯示順序
var ReplyTypes = []ReplyType{
	PositiveBasic,
	PositiveDetailed,
	NegativeBasic,
	NegativeWithMargin,
	AlternativeSolution,
}

// 固定文字
const (
	Placeholder    = "로딩 중..."
	FailedText     = "답변을 불러오는 데 실패했습니다."
	EmptyAnswer    = "답변이 생성되지 않았습니다."
	UnknownReply   = "답변을 불러올 수 없습니다."
	ErrMsgNoRoomID = "채팅방 ID가 없습니다."
)

var labels = map[ReplyType]string{
	PositiveBasic:       "기본 긍정",
	PositiveDetailed:    "상세 긍정",
	NegativeBasic:       "기본 거절",
	NegativeWithMargin:  "여지 있는 거절",
	AlternativeSolution: "대안 제시",
}

// Label 畫面顯示名稱
func (t ReplyType) Label() string {
	if l, ok := labels[t]; ok {
		return l
	}
	return string(t)
}

// Valid 是否為五種之一
func (t ReplyType) Valid() bool {
	_, ok := labels[t]
	return ok
}

// ParseReplyType 文字轉 ReplyType
func ParseReplyType(s string) (ReplyType, bool) {
	t := ReplyType(s)
	return t, t.Valid()
}

// Replies 永遠包含五個 key
type Replies map[ReplyType]string

// NewReplies 五個 key 都是 placeholder
func NewReplies() Replies {
	r := make(Replies, len(ReplyTypes))
	for _, t := range ReplyTypes {
		r[t] = Placeholder
	}
	return r
}

// Get 未知 key 回傳 UnknownReply
func (r Replies) Get(t ReplyType) string {
	if v, ok := r[t]; ok && v != "" {
		return v
	}
	return UnknownReply
}

// Clone 複製
func (r Replies) Clone() Replies {
	out := make(Replies, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// State AI 回覆模組狀態
type State struct {
	Replies Replies
	Loading bool
}

// Clone 深複製
func (s State) Clone() State {
	return State{Replies: s.Replies.Clone(), Loading: s.Loading}
}

// IsUsable 可以被帶入輸入框的回覆
func IsUsable(text string) bool {
	switch text {
	case "", Placeholder, FailedText, UnknownReply:
		return false
	}
	return true
}
