package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sample() *Node {
	return VBox("root",
		TextNode("title", "채팅방").Prop("style", "title"),
		List("rooms",
			Item("room-1", Badge("bell-1", "🔔 a@b.com (2)"), TextNode("last-1", "hello")),
			Item("room-2", TextNode("last-2", "새 메시지가 없습니다.(2)")).PropBool("selected", true),
		),
		HBox("actions", Checkbox("check-1", "", true), Button("send", "전송", "send")),
	)
}

func TestFindAndTexts(t *testing.T) {
	root := sample()

	assert.Equal(t, "room-2", Find(root, "room-2").ID)
	assert.True(t, Find(root, "room-2").Bool("selected"))
	assert.Nil(t, Find(root, "missing"))

	assert.Equal(t,
		[]string{"채팅방", "🔔 a@b.com (2)", "hello", "새 메시지가 없습니다.(2)", "전송"},
		Texts(root),
	)
}

func TestRenderText(t *testing.T) {
	out := RenderText(sample(), 0)

	assert.Contains(t, out, "채팅방")
	assert.Contains(t, out, "🔔 a@b.com (2)")
	assert.Contains(t, out, "[x]")
	assert.Contains(t, out, "[전송]")
	assert.Empty(t, RenderText(nil, 0))
}

func TestRenderModal(t *testing.T) {
	out := RenderText(Modal("ai", "AI 답변", TextNode("r", "로딩 중...")), 0)
	assert.Contains(t, out, "AI 답변")
	assert.Contains(t, out, "로딩 중...")
}
