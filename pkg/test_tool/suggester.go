package testtool

import (
	"context"
	"fmt"
	"strings"

	aireplydomain "operator_console/internal/aireply/domain"
	messagedomain "operator_console/internal/message/domain"
	"operator_console/pkg/config"

	"github.com/pkg/errors"
	openai "github.com/sashabaranov/go-openai"
)

// Suggester 依對話內容產生建議回覆
type Suggester interface {
	Suggest(ctx context.Context, replyType aireplydomain.ReplyType, conversation []messagedomain.Message) (string, error)
}

// CannedSuggester 固定回覆，不需要 API key
type CannedSuggester struct{}

var cannedAnswers = map[aireplydomain.ReplyType]string{
	aireplydomain.PositiveBasic:       "예, 가능합니다.",
	aireplydomain.PositiveDetailed:    "예, 가능합니다. 요청하신 내용은 오늘 중으로 진행해 드리겠습니다.",
	aireplydomain.NegativeBasic:       "죄송하지만 처리할 수 없습니다.",
	aireplydomain.NegativeWithMargin:  "현재는 어렵지만, 추후 검토 가능합니다.",
	aireplydomain.AlternativeSolution: "현재는 어렵지만, 다른 옵션으로 진행하는 방법이 있습니다.",
}

// Suggest canned answer
func (CannedSuggester) Suggest(_ context.Context, replyType aireplydomain.ReplyType, _ []messagedomain.Message) (string, error) {
	answer, ok := cannedAnswers[replyType]
	if !ok {
		return "", fmt.Errorf("잘못된 response_type: %s", replyType)
	}
	return answer, nil
}

// promptTemplates 每種回覆的提示
var promptTemplates = map[aireplydomain.ReplyType]string{
	aireplydomain.PositiveBasic:       "기본적인 긍정 답변: '예, 가능합니다.'",
	aireplydomain.PositiveDetailed:    "상세한 긍정 답변: '예, 가능합니다. 이렇게 진행하면 해결됩니다.'",
	aireplydomain.NegativeBasic:       "기본적인 거절 답변: '죄송하지만 처리할 수 없습니다.'",
	aireplydomain.NegativeWithMargin:  "여지를 남기는 거절 답변: '현재 어렵지만, 추후 검토 가능합니다.'",
	aireplydomain.AlternativeSolution: "대체 가능한 방법 제시: '현재는 어렵지만, 이런 방법이 있습니다.'",
}

// OpenAISuggester 透過 chat completion 產生回覆
type OpenAISuggester struct {
	client *openai.Client
	model  string
}

// NewOpenAISuggester create openai suggester
func NewOpenAISuggester(cfg config.OpenAIConfig) *OpenAISuggester {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	model := cfg.Model
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAISuggester{
		client: openai.NewClientWithConfig(clientConfig),
		model:  model,
	}
}

// NewSuggester 有 API key 時使用 OpenAI，否則用固定回覆
func NewSuggester(cfg config.OpenAIConfig) Suggester {
	if cfg.APIKey == "" {
		return CannedSuggester{}
	}
	return NewOpenAISuggester(cfg)
}

// Suggest chat completion
func (s *OpenAISuggester) Suggest(ctx context.Context, replyType aireplydomain.ReplyType, conversation []messagedomain.Message) (string, error) {
	prompt, err := BuildPrompt(replyType, conversation)
	if err != nil {
		return "", err
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       s.model,
		MaxTokens:   300,
		Temperature: 0.7,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", errors.Wrap(err, "chat completion")
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("empty chat response")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// BuildPrompt 對話內容 + 回覆種類提示
func BuildPrompt(replyType aireplydomain.ReplyType, conversation []messagedomain.Message) (string, error) {
	template, ok := promptTemplates[replyType]
	if !ok {
		return "", fmt.Errorf("잘못된 response_type: %s", replyType)
	}
	return fmt.Sprintf("대화 내용: %s\n대답 시 고려할 사항:\n%s", formatConversation(conversation), template), nil
}

func formatConversation(conversation []messagedomain.Message) string {
	if len(conversation) == 0 {
		return "대화 기록이 없습니다."
	}
	lines := make([]string, 0, len(conversation))
	for _, m := range conversation {
		role := "me"
		if m.FromClient() {
			role = "client"
		}
		lines = append(lines, role+": "+m.Text)
	}
	return strings.Join(lines, "\n")
}
