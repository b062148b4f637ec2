package repository

import (
	"context"

	"operator_console/internal/aireply/domain"
	messagedomain "operator_console/internal/message/domain"
	"operator_console/pkg/apiclient"
)

// PathGetGptSuggestions AI 建議回覆
const PathGetGptSuggestions = "/api/message/get_gpt_suggestions"

// SuggestionRequest body
type SuggestionRequest struct {
	Type       domain.ReplyType `json:"type"`
	ChatroomID messagedomain.ID `json:"chatroom_id"`
}

// SuggestionResponse {answer}
type SuggestionResponse struct {
	Answer string `json:"answer"`
}

// SuggestionRepository definition AI suggestion gateway
type SuggestionRepository interface {
	Suggest(ctx context.Context, replyType domain.ReplyType, chatroomID messagedomain.ID) (string, error)
}

type suggestionRepository struct {
	client *apiclient.Client
}

// NewHTTPSuggestionRepository create suggestion gateway over http
func NewHTTPSuggestionRepository(client *apiclient.Client) SuggestionRepository {
	return &suggestionRepository{client: client}
}

// Suggest 取得單一種類的建議回覆，answer 為空時回傳空字串
func (r *suggestionRepository) Suggest(ctx context.Context, replyType domain.ReplyType, chatroomID messagedomain.ID) (string, error) {
	var resp SuggestionResponse
	err := r.client.PostJSON(ctx, PathGetGptSuggestions, SuggestionRequest{Type: replyType, ChatroomID: chatroomID}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Answer, nil
}
