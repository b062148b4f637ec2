package domain

import (
	messagedomain "operator_console/internal/message/domain"
)

// MinRefreshInterval 刷新週期下限 (秒)
const MinRefreshInterval = 5

// RefreshInterval 三個輪詢週期 (秒)
type RefreshInterval struct {
	ParseUnreadMessagesInDB      int `json:"parseUnReadMessagesinDB"`
	SendUnreadMessagesViaTelebot int `json:"sendUnReadMessagesViaTelebot"`
	ReplyViaTeleBot              int `json:"replyViaTeleBot"`
}

// Telegram bot 設定
type Telegram struct {
	BotToken string `json:"botToken"`
	ChatID   string `json:"chatId"`
}

// Settings server 端設定
type Settings struct {
	RefreshInterval    RefreshInterval    `json:"refreshInterval"`
	Telegram           Telegram           `json:"telegram"`
	CheckedChatroomIDs []messagedomain.ID `json:"checkedChatroomIds"`
}

// State settings 模組狀態，IDCheckActive 只存在 client 端
type State struct {
	Settings      Settings
	IDCheckActive bool
}

// Default server 尚未回應前的預設值
func Default() Settings {
	return Settings{
		RefreshInterval: DeriveIntervals(30),
	}
}

// DeriveIntervals 由單一輸入推導三個週期
// 前兩個等於輸入，reply 週期為 max(5, seconds/3)
func DeriveIntervals(seconds int) RefreshInterval {
	reply := seconds / 3
	if reply < MinRefreshInterval {
		reply = MinRefreshInterval
	}
	return RefreshInterval{
		ParseUnreadMessagesInDB:      seconds,
		SendUnreadMessagesViaTelebot: seconds,
		ReplyViaTeleBot:              reply,
	}
}

// IsChecked 聊天室是否勾選
func (s Settings) IsChecked(id messagedomain.ID) bool {
	for _, v := range s.CheckedChatroomIDs {
		if v == id {
			return true
		}
	}
	return false
}

// WithChecked 回傳新的勾選列表；重複加入或移除不存在的 id 都不會改變內容
func WithChecked(ids []messagedomain.ID, id messagedomain.ID, checked bool) []messagedomain.ID {
	out := make([]messagedomain.ID, 0, len(ids)+1)
	found := false
	for _, v := range ids {
		if v == id {
			found = true
			if !checked {
				continue
			}
		}
		out = append(out, v)
	}
	if checked && !found {
		out = append(out, id)
	}
	return out
}

// Clone 深複製
func (s State) Clone() State {
	out := s
	if s.Settings.CheckedChatroomIDs != nil {
		out.Settings.CheckedChatroomIDs = append([]messagedomain.ID(nil), s.Settings.CheckedChatroomIDs...)
	}
	return out
}

// DefaultTestMessage sendTestMessage 沒有給內容時使用
const DefaultTestMessage = "🔔 이것은 테스트 메시지입니다."

// user-facing messages
const (
	ErrMsgIntervalTooSmall   = "5초 이상의 값을 입력해주세요."
	ErrMsgIntervalUpdate     = "갱신주기 업데이트 실패"
	ErrMsgTelegramRequired   = "텔레그램 봇 토큰과 채팅 ID를 입력해주세요."
	ErrMsgTelegramUpdate     = "텔레그램 설정 업데이트 실패"
	ErrMsgIDCheckActive      = "텔레그램 ID 확인 모드를 먼저 종료해주세요."
	ErrMsgTokenRequired      = "텔레그램 봇 토큰을 입력해주세요."
	ErrMsgIDCheckStart       = "텔레그램 ID 확인 모드 시작 실패"
	ErrMsgIDCheckStop        = "텔레그램 ID 확인 모드 종료 실패"
	ErrMsgChatroomCheck      = "채팅방 체크 상태 업데이트 실패"
	ErrMsgTestMessage        = "테스트 메시지 전송 실패"
	ErrMsgLoadSettings       = "설정을 불러오는 데 실패했습니다."
	ErrMsgChatroomIDRequired = "채팅방 ID가 없습니다."
)
