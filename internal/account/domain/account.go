package domain

// Account 後台管理的帳號
type Account struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	UserID   string `json:"user_id,omitempty"`
}

// user-facing messages
const (
	ErrMsgEmailPasswordRequired = "이메일과 비밀번호를 입력해주세요."
	ErrMsgEmailRequired         = "이메일을 입력해주세요."
	ErrMsgCreateFailed          = "계정 추가 실패"
	ErrMsgUpdateFailed          = "계정 수정 실패"
	ErrMsgDeleteFailed          = "계정 삭제 실패"
	ErrMsgLoadFailed            = "계정 목록을 불러오는 데 실패했습니다."
)
