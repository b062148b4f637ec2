package testtool

import (
	"net"
	"sync"
	"time"

	accountdomain "operator_console/internal/account/domain"
	accountrepo "operator_console/internal/account/repository"
	aireplyrepo "operator_console/internal/aireply/repository"
	messagedomain "operator_console/internal/message/domain"
	messagerepo "operator_console/internal/message/repository"
	settingsdomain "operator_console/internal/settings/domain"
	settingsrepo "operator_console/internal/settings/repository"
	"operator_console/pkg/logger"
	"operator_console/pkg/metrics"
	"operator_console/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RouteLoadChatHistory fiber route pattern
const RouteLoadChatHistory = messagerepo.PathLoadChatHistory + ":chatroomId"

const dateLayout = "2006-01-02 15:04:05"

// Failure 注入到某個 route 的失敗
// Status != 0 時回傳該狀態碼；否則回傳 200 + success:false
type Failure struct {
	Status  int
	Message string
}

// MockBackend in-memory 後端，實作 console 使用的所有 API
type MockBackend struct {
	app       *fiber.App
	suggester Suggester

	mu           sync.Mutex
	accounts     []accountdomain.Account
	chatrooms    []*messagedomain.Chatroom
	settings     settingsdomain.Settings
	idCheck      bool
	testMessages []string
	calls        map[string]int
	failures     map[string]Failure
	delays       map[string]time.Duration
}

// NewMockBackend create mock backend; suggester 為 nil 時使用固定回覆
func NewMockBackend(suggester Suggester) *MockBackend {
	if suggester == nil {
		suggester = CannedSuggester{}
	}
	b := &MockBackend{
		suggester: suggester,
		settings:  settingsdomain.Default(),
		calls:     make(map[string]int),
		failures:  make(map[string]Failure),
		delays:    make(map[string]time.Duration),
	}
	b.app = b.routes()
	return b
}

// App fiber app (app.Test 用)
func (b *MockBackend) App() *fiber.App {
	return b.app
}

// Listen 以 ln 提供服務 (blocking)
func (b *MockBackend) Listen(ln net.Listener) error {
	return b.app.Listener(ln)
}

// Start 在隨機 port 啟動，回傳 base URL
func (b *MockBackend) Start() (string, error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", err
	}
	go func() {
		if err := b.app.Listener(ln); err != nil {
			logger.Log.Error("mock backend stopped", zap.Error(err))
		}
	}()
	return "http://" + ln.Addr().String(), nil
}

// Close shutdown
func (b *MockBackend) Close() error {
	return b.app.Shutdown()
}

func (b *MockBackend) routes() *fiber.App {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use(middlewares.RequestIDMiddleware(), middlewares.AccessLogMiddleware(), metrics.FiberMiddleware())

	app.Get(accountrepo.PathLoadAccountList, b.handle(accountrepo.PathLoadAccountList, b.loadAccountList))
	app.Post(accountrepo.PathCreateAccount, b.handle(accountrepo.PathCreateAccount, b.createAccount))
	app.Post(accountrepo.PathUpdateAccount, b.handle(accountrepo.PathUpdateAccount, b.updateAccount))
	app.Post(accountrepo.PathDeleteAccount, b.handle(accountrepo.PathDeleteAccount, b.deleteAccount))

	app.Get(messagerepo.PathUpdateChatroomList, b.handle(messagerepo.PathUpdateChatroomList, b.chatroomList))
	app.Get(RouteLoadChatHistory, b.handle(RouteLoadChatHistory, b.loadChatHistory))
	app.Post(messagerepo.PathUpdateClientUnreadMsg, b.handle(messagerepo.PathUpdateClientUnreadMsg, b.markRead))
	app.Post(messagerepo.PathSendMessageInWeb, b.handle(messagerepo.PathSendMessageInWeb, b.sendMessage))
	app.Post(messagerepo.PathSyncChatHistory, b.handle(messagerepo.PathSyncChatHistory, b.syncChatHistory))
	app.Post(aireplyrepo.PathGetGptSuggestions, b.handle(aireplyrepo.PathGetGptSuggestions, b.gptSuggestions))

	app.Get(settingsrepo.PathLoadSettings, b.handle(settingsrepo.PathLoadSettings, b.loadSettings))
	app.Post(settingsrepo.PathUpdateRefreshInterval, b.handle(settingsrepo.PathUpdateRefreshInterval, b.updateRefreshInterval))
	app.Post(settingsrepo.PathUpdateTelegramSettings, b.handle(settingsrepo.PathUpdateTelegramSettings, b.updateTelegram))
	app.Post(settingsrepo.PathUpdateChatroomCheck, b.handle(settingsrepo.PathUpdateChatroomCheck, b.updateChatroomCheck))
	app.Post(settingsrepo.PathStartTelegramIDCheck, b.handle(settingsrepo.PathStartTelegramIDCheck, b.startIDCheck))
	app.Post(settingsrepo.PathStopTelegramIDCheck, b.handle(settingsrepo.PathStopTelegramIDCheck, b.stopIDCheck))
	app.Post(settingsrepo.PathTestTelegramMessage, b.handle(settingsrepo.PathTestTelegramMessage, b.testTelegramMessage))

	return app
}

// handle 計數 + 延遲 + 失敗注入
func (b *MockBackend) handle(route string, h fiber.Handler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		b.mu.Lock()
		b.calls[route]++
		failure, failing := b.failures[route]
		delay := b.delays[route]
		b.mu.Unlock()

		if delay > 0 {
			time.Sleep(delay)
		}
		if failing {
			if failure.Status != 0 {
				return c.Status(failure.Status).JSON(fiber.Map{"success": false, "message": failure.Message})
			}
			return c.JSON(fiber.Map{"success": false, "message": failure.Message})
		}
		return h(c)
	}
}

// Calls route 被呼叫的次數 (route 為 repository 的 Path 常數或 RouteLoadChatHistory)
func (b *MockBackend) Calls(route string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[route]
}

// ResetCalls 清除計數
func (b *MockBackend) ResetCalls() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = make(map[string]int)
}

// Fail 讓 route 回傳失敗直到 ClearFailures
func (b *MockBackend) Fail(route string, f Failure) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures[route] = f
}

// Delay route 回應前等待
func (b *MockBackend) Delay(route string, d time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.delays[route] = d
}

// ClearFailures 清除所有失敗注入與延遲
func (b *MockBackend) ClearFailures() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures = make(map[string]Failure)
	b.delays = make(map[string]time.Duration)
}

// SeedAccount 加入帳號
func (b *MockBackend) SeedAccount(a accountdomain.Account) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.accounts = append(b.accounts, a)
}

// SeedChatroom 加入聊天室
func (b *MockBackend) SeedChatroom(room messagedomain.Chatroom) {
	b.mu.Lock()
	defer b.mu.Unlock()
	cp := room
	cp.Messages = append([]messagedomain.Message(nil), room.Messages...)
	cp.HasUnreadMessages = messagedomain.Flag(messagedomain.UnreadCount(cp.Messages) > 0)
	b.chatrooms = append(b.chatrooms, &cp)
}

// SeedDemo 本地開發用的假資料
func (b *MockBackend) SeedDemo() {
	b.SeedAccount(accountdomain.Account{Email: "seller@kmong.test", Password: "demo1234", UserID: "3"})
	b.SeedAccount(accountdomain.Account{Email: "support@kmong.test", Password: "demo5678", UserID: "4"})

	b.SeedChatroom(messagedomain.Chatroom{
		ChatroomID: 101, Email: "seller@kmong.test", UserID: 3, LatestDate: "2024-11-02 10:25:00",
		Messages: []messagedomain.Message{
			{ClientID: 7, AdminID: 3, SenderID: 7, Text: "안녕하세요, 로고 작업 문의드립니다.", Date: "2024-11-02 10:20:00"},
			{ClientID: 7, AdminID: 3, SenderID: 3, Text: "네, 어떤 스타일을 원하시나요?", Date: "2024-11-02 10:22:00", Seen: true},
			{ClientID: 7, AdminID: 3, SenderID: 7, Text: "수정은 몇 번까지 가능한가요?", Date: "2024-11-02 10:25:00"},
		},
	})
	b.SeedChatroom(messagedomain.Chatroom{
		ChatroomID: 102, Email: "support@kmong.test", UserID: 4, LatestDate: "2024-11-01 18:00:00",
		Messages: []messagedomain.Message{
			{ClientID: 8, AdminID: 4, SenderID: 8, Text: "환불 가능한가요?", Date: "2024-11-01 17:50:00", Seen: true},
			{ClientID: 8, AdminID: 4, SenderID: 4, Text: "확인 후 안내드리겠습니다.", Date: "2024-11-01 18:00:00", Seen: true},
		},
	})
}

// Settings 目前設定
func (b *MockBackend) Settings() settingsdomain.Settings {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.settings
}

// IDCheckActive ID 確認模式
func (b *MockBackend) IDCheckActive() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.idCheck
}

// TestMessages 已送出的 telegram 測試訊息
func (b *MockBackend) TestMessages() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.testMessages...)
}

// Messages 某聊天室目前的訊息
func (b *MockBackend) Messages(id messagedomain.ID) []messagedomain.Message {
	b.mu.Lock()
	defer b.mu.Unlock()
	if room := b.findRoomLocked(id); room != nil {
		return append([]messagedomain.Message(nil), room.Messages...)
	}
	return nil
}

func (b *MockBackend) findRoomLocked(id messagedomain.ID) *messagedomain.Chatroom {
	for _, room := range b.chatrooms {
		if room.ChatroomID == id {
			return room
		}
	}
	return nil
}

func (b *MockBackend) findAccountLocked(email string) int {
	for i, a := range b.accounts {
		if a.Email == email {
			return i
		}
	}
	return -1
}

func ack(c *fiber.Ctx, success bool, message string) error {
	return c.JSON(fiber.Map{"success": success, "message": message})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": message})
}

// --- account ---

func (b *MockBackend) loadAccountList(c *fiber.Ctx) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	accounts := append([]accountdomain.Account{}, b.accounts...)
	return c.JSON(accounts)
}

func (b *MockBackend) createAccount(c *fiber.Ctx) error {
	var req accountrepo.CredentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "잘못된 요청입니다.")
	}
	if req.Email == "" || req.Password == "" {
		return ack(c, false, "이메일과 비밀번호가 필요합니다.")
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.findAccountLocked(req.Email) >= 0 {
		return ack(c, false, "이미 존재하는 계정입니다.")
	}
	b.accounts = append(b.accounts, accountdomain.Account{Email: req.Email, Password: req.Password})
	return ack(c, true, "계정이 추가되었습니다.")
}

func (b *MockBackend) updateAccount(c *fiber.Ctx) error {
	var req accountrepo.CredentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "잘못된 요청입니다.")
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	i := b.findAccountLocked(req.Email)
	if i < 0 {
		return ack(c, false, "존재하지 않는 계정입니다.")
	}
	b.accounts[i].Password = req.Password
	return ack(c, true, "계정이 수정되었습니다.")
}

func (b *MockBackend) deleteAccount(c *fiber.Ctx) error {
	var req accountrepo.DeleteRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "잘못된 요청입니다.")
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	i := b.findAccountLocked(req.Email)
	if i < 0 {
		return ack(c, false, "존재하지 않는 계정입니다.")
	}
	b.accounts = append(b.accounts[:i], b.accounts[i+1:]...)
	return ack(c, true, "계정이 삭제되었습니다.")
}

// --- message ---

func (b *MockBackend) chatroomList(c *fiber.Ctx) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	rooms := make([]messagedomain.Chatroom, 0, len(b.chatrooms))
	for _, room := range b.chatrooms {
		cp := *room
		cp.Messages = append([]messagedomain.Message(nil), room.Messages...)
		rooms = append(rooms, cp)
	}
	return c.JSON(rooms)
}

func (b *MockBackend) loadChatHistory(c *fiber.Ctx) error {
	id, err := messagedomain.ParseID(c.Params("chatroomId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "채팅방 ID가 필요합니다."})
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	room := b.findRoomLocked(id)
	if room == nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "채팅 내역을 불러오는 중 오류가 발생했습니다"})
	}
	return c.JSON(append([]messagedomain.Message{}, room.Messages...))
}

func (b *MockBackend) markRead(c *fiber.Ctx) error {
	var req messagerepo.MarkReadRequest
	if err := c.BodyParser(&req); err != nil || req.ChatroomID.IsZero() {
		return badRequest(c, "채팅방 ID가 필요합니다.")
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	room := b.findRoomLocked(req.ChatroomID)
	if room == nil {
		return ack(c, false, "메시지 읽음 처리에 실패했습니다.")
	}
	for i := range room.Messages {
		if room.Messages[i].FromClient() {
			room.Messages[i].Seen = true
		}
	}
	room.HasUnreadMessages = false
	return ack(c, true, "메시지가 읽음 처리되었습니다.")
}

func (b *MockBackend) sendMessage(c *fiber.Ctx) error {
	var req messagerepo.SendRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "잘못된 요청입니다.")
	}
	if req.ChatroomID.IsZero() || req.ClientID.IsZero() || req.AdminID.IsZero() || req.Text == "" {
		return ack(c, false, "필수 필드가 누락되었습니다.")
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	room := b.findRoomLocked(req.ChatroomID)
	if room == nil {
		return ack(c, false, "해당 admin_id의 계정을 찾을 수 없음")
	}
	now := time.Now().Format(dateLayout)
	room.Messages = append(room.Messages, messagedomain.Message{
		ClientID: req.ClientID,
		AdminID:  req.AdminID,
		SenderID: req.AdminID,
		Text:     req.Text,
		Date:     now,
		Seen:     true,
	})
	room.LatestDate = now
	return ack(c, true, "메시지가 전송되었습니다.")
}

func (b *MockBackend) syncChatHistory(c *fiber.Ctx) error {
	var req messagerepo.SyncRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "잘못된 요청입니다.")
	}
	if req.ChatroomID.IsZero() || req.ClientID.IsZero() || req.AdminID.IsZero() {
		return ack(c, false, "필수 필드가 누락되었습니다.")
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.findRoomLocked(req.ChatroomID) == nil {
		return ack(c, false, "해당 admin_id의 계정을 찾을 수 없음")
	}
	return ack(c, true, "채팅 내역이 동기화되었습니다.")
}

func (b *MockBackend) gptSuggestions(c *fiber.Ctx) error {
	var req aireplyrepo.SuggestionRequest
	if err := c.BodyParser(&req); err != nil || req.ChatroomID.IsZero() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "chatroom_id is required"})
	}
	if !req.Type.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "잘못된 response_type: " + string(req.Type)})
	}

	b.mu.Lock()
	var conversation []messagedomain.Message
	if room := b.findRoomLocked(req.ChatroomID); room != nil {
		conversation = append(conversation, room.Messages...)
	}
	b.mu.Unlock()

	answer, err := b.suggester.Suggest(c.UserContext(), req.Type, conversation)
	if err != nil {
		logger.Log.Error("suggestion failed", zap.String("type", string(req.Type)), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "답변을 생성하는 데 오류가 발생했습니다."})
	}
	return c.JSON(aireplyrepo.SuggestionResponse{Answer: answer})
}

// --- settings ---

func (b *MockBackend) loadSettings(c *fiber.Ctx) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	s := b.settings
	s.CheckedChatroomIDs = append([]messagedomain.ID{}, b.settings.CheckedChatroomIDs...)
	return c.JSON(s)
}

func (b *MockBackend) updateRefreshInterval(c *fiber.Ctx) error {
	var req settingsrepo.IntervalRequest
	if err := c.BodyParser(&req); err != nil || req.Interval < settingsdomain.MinRefreshInterval {
		return badRequest(c, "유효하지 않은 간격 값입니다. 5초 이상의 값을 입력하세요.")
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.settings.RefreshInterval = settingsdomain.DeriveIntervals(req.Interval)
	return ack(c, true, "갱신주기가 업데이트되었습니다.")
}

func (b *MockBackend) updateTelegram(c *fiber.Ctx) error {
	var req settingsrepo.TelegramRequest
	if err := c.BodyParser(&req); err != nil || req.Token == "" || req.ChatID == "" {
		return badRequest(c, "텔레그램 봇 토큰과 채팅 ID가 필요합니다.")
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.settings.Telegram = settingsdomain.Telegram{BotToken: req.Token, ChatID: req.ChatID}
	return ack(c, true, "텔레그램 설정이 업데이트되었습니다.")
}

func (b *MockBackend) updateChatroomCheck(c *fiber.Ctx) error {
	var req settingsrepo.ChatroomCheckRequest
	if err := c.BodyParser(&req); err != nil || req.ChatroomID.IsZero() {
		return badRequest(c, "채팅방 ID가 필요합니다.")
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.settings.CheckedChatroomIDs = settingsdomain.WithChecked(b.settings.CheckedChatroomIDs, req.ChatroomID, req.IsChecked)
	return ack(c, true, "채팅방 체크 상태가 업데이트되었습니다.")
}

func (b *MockBackend) startIDCheck(c *fiber.Ctx) error {
	var req settingsrepo.TokenRequest
	if err := c.BodyParser(&req); err != nil || req.Token == "" {
		return badRequest(c, "텔레그램 봇 토큰이 필요합니다.")
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.idCheck = true
	return ack(c, true, "봇에게 메시지를 보내면 채팅 ID가 표시됩니다.")
}

func (b *MockBackend) stopIDCheck(c *fiber.Ctx) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.idCheck = false
	return ack(c, true, "텔레그램 ID 확인 모드가 종료되었습니다.")
}

func (b *MockBackend) testTelegramMessage(c *fiber.Ctx) error {
	var req settingsrepo.TestMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "잘못된 요청입니다.")
	}
	if req.Message == "" {
		req.Message = settingsdomain.DefaultTestMessage
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.testMessages = append(b.testMessages, req.Message)
	return ack(c, true, "테스트 메시지가 성공적으로 전송되었습니다.")
}

// AllRoutes 所有 API route (測試用)
func AllRoutes() []string {
	return []string{
		accountrepo.PathLoadAccountList,
		accountrepo.PathCreateAccount,
		accountrepo.PathUpdateAccount,
		accountrepo.PathDeleteAccount,
		messagerepo.PathUpdateChatroomList,
		RouteLoadChatHistory,
		messagerepo.PathUpdateClientUnreadMsg,
		messagerepo.PathSendMessageInWeb,
		messagerepo.PathSyncChatHistory,
		aireplyrepo.PathGetGptSuggestions,
		settingsrepo.PathLoadSettings,
		settingsrepo.PathUpdateRefreshInterval,
		settingsrepo.PathUpdateTelegramSettings,
		settingsrepo.PathUpdateChatroomCheck,
		settingsrepo.PathStartTelegramIDCheck,
		settingsrepo.PathStopTelegramIDCheck,
		settingsrepo.PathTestTelegramMessage,
	}
}
