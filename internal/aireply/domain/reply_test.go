package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewReplies(t *testing.T) {
	r := NewReplies()
	assert.Len(t, r, 5)
	for _, typ := range ReplyTypes {
		assert.Equal(t, Placeholder, r.Get(typ))
	}
	assert.Equal(t, UnknownReply, r.Get("unknown"))
}

func TestIsUsable(t *testing.T) {
	assert.False(t, IsUsable(Placeholder))
	assert.False(t, IsUsable(FailedText))
	assert.False(t, IsUsable(""))
	assert.True(t, IsUsable(EmptyAnswer))
	assert.True(t, IsUsable("네, 가능합니다."))
}

func TestParseReplyType(t *testing.T) {
	typ, ok := ParseReplyType("negative_with_margin")
	assert.True(t, ok)
	assert.Equal(t, NegativeWithMargin, typ)
	assert.Equal(t, "여지 있는 거절", typ.Label())

	_, ok = ParseReplyType("rude")
	assert.False(t, ok)
}

func TestStateClone(t *testing.T) {
	st := State{Replies: NewReplies(), Loading: true}
	cp := st.Clone()
	cp.Replies[PositiveBasic] = "changed"
	assert.Equal(t, Placeholder, st.Replies[PositiveBasic])
	assert.True(t, cp.Loading)
}
