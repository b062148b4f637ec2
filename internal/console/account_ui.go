package console

import (
	"context"

	"operator_console/internal/account/domain"
	"operator_console/pkg/logger"
	"operator_console/pkg/observable"
	"operator_console/pkg/view"

	"go.uber.org/zap"
)

// AccountUI 帳號管理
type AccountUI struct {
	model    AccountModel
	surface  Surface
	notifier Notifier
	handle   observable.Handle
}

// NewAccountUI 建立並訂閱 account state
func NewAccountUI(model AccountModel, surface Surface, notifier Notifier) *AccountUI {
	ui := &AccountUI{model: model, surface: surface, notifier: notifier}
	ui.handle = model.Subscribe(ui.render)
	return ui
}

// Close 取消訂閱
func (ui *AccountUI) Close() {
	ui.model.Unsubscribe(ui.handle)
}

// Initialize 載入帳號列表
func (ui *AccountUI) Initialize(ctx context.Context) error {
	if err := ui.model.LoadAccounts(ctx); err != nil {
		logger.Log.Error("Error initializing account UI", zap.Error(err))
		return err
	}
	return nil
}

// HandleCreate 新增帳號
func (ui *AccountUI) HandleCreate(ctx context.Context, email, password string) error {
	if err := ui.model.CreateAccount(ctx, email, password); err != nil {
		fail(ui.notifier, domain.ErrMsgCreateFailed, err)
		return err
	}
	ui.notifier.Alert("계정이 추가되었습니다.")
	return nil
}

// HandleUpdate 修改帳號
func (ui *AccountUI) HandleUpdate(ctx context.Context, email, password string) error {
	if err := ui.model.UpdateAccount(ctx, email, password); err != nil {
		fail(ui.notifier, domain.ErrMsgUpdateFailed, err)
		return err
	}
	ui.notifier.Alert("계정이 수정되었습니다.")
	return nil
}

// HandleDelete 刪除帳號
func (ui *AccountUI) HandleDelete(ctx context.Context, email string) error {
	if err := ui.model.DeleteAccount(ctx, email); err != nil {
		fail(ui.notifier, domain.ErrMsgDeleteFailed, err)
		return err
	}
	ui.notifier.Alert("계정이 삭제되었습니다.")
	return nil
}

func (ui *AccountUI) render(accounts []domain.Account) {
	list := view.List("account-list")
	for _, a := range accounts {
		id := "account-" + a.Email
		list.Child(view.Item(id,
			view.TextNode(id+"-email", a.Email),
			view.TextNode(id+"-password", a.Password).Prop("style", "muted"),
			view.Button(id+"-edit", "수정", "update"),
			view.Button(id+"-delete", "삭제", "delete"),
		))
	}
	if len(accounts) == 0 {
		list.Child(view.TextNode("account-empty", "등록된 계정이 없습니다.").Prop("style", "muted"))
	}

	ui.surface.Render(RegionAccounts, view.VBox("accounts",
		view.TextNode("accounts-title", "계정 관리").Prop("style", "title"),
		list,
	))
}
