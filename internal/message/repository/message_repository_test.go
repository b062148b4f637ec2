package repository

import (
	"context"
	"net"
	"testing"
	"time"

	"operator_console/internal/message/domain"
	"operator_console/pkg/apiclient"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T, setup func(app *fiber.App)) MessageRepository {
	t.Helper()

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	setup(app)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = app.Listener(ln) }()
	t.Cleanup(func() { _ = app.Shutdown() })

	return NewHTTPMessageRepository(apiclient.New("http://"+ln.Addr().String(), time.Second))
}

func TestListChatrooms_SqliteRowShapes(t *testing.T) {
	repo := newTestRepo(t, func(app *fiber.App) {
		app.Get(PathUpdateChatroomList, func(c *fiber.Ctx) error {
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			return c.SendString(`[{
				"chatroom_id": "101", "email": "seller@kmong.test", "user_id": 3,
				"has_unread_messages": 1, "latest_date": "2024-11-02 10:25:00",
				"messages": [{"client_id": "7", "admin_id": 3, "sender_id": 7, "text": "hi", "date": "2024-11-02 10:25:00", "seen": 0}]
			}]`)
		})
	})

	rooms, err := repo.ListChatrooms(context.Background())
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, domain.ID(101), rooms[0].ChatroomID)
	assert.True(t, bool(rooms[0].HasUnreadMessages))
	assert.Equal(t, 1, rooms[0].UnreadCount())
}

func TestLoadHistory_BuildsPath(t *testing.T) {
	var gotID string
	repo := newTestRepo(t, func(app *fiber.App) {
		app.Get(PathLoadChatHistory+":chatroomId", func(c *fiber.Ctx) error {
			gotID = c.Params("chatroomId")
			return c.JSON([]domain.Message{{ClientID: 7, SenderID: 3, Text: "네"}})
		})
	})

	messages, err := repo.LoadHistory(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, "42", gotID)
	assert.Equal(t, "네", messages[0].Text)
}

func TestSend_Body(t *testing.T) {
	var got SendRequest
	repo := newTestRepo(t, func(app *fiber.App) {
		app.Post(PathSendMessageInWeb, func(c *fiber.Ctx) error {
			if err := c.BodyParser(&got); err != nil {
				return err
			}
			return c.JSON(apiclient.Ack{Success: true, Message: "ok"})
		})
	})

	ack, err := repo.Send(context.Background(), domain.Selection{ChatroomID: 1, ClientID: 2, AdminID: 3}, "hello")
	require.NoError(t, err)
	assert.True(t, ack.Success)
	assert.Equal(t, SendRequest{ChatroomID: 1, ClientID: 2, AdminID: 3, Text: "hello"}, got)
}

func TestMarkRead_NonSuccessStatus(t *testing.T) {
	repo := newTestRepo(t, func(app *fiber.App) {
		app.Post(PathUpdateClientUnreadMsg, func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "채팅방 ID가 필요합니다."})
		})
	})

	_, err := repo.MarkRead(context.Background(), 1)
	var statusErr *apiclient.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, fiber.StatusBadRequest, statusErr.Status)
	assert.Equal(t, "채팅방 ID가 필요합니다.", statusErr.Message)
}
