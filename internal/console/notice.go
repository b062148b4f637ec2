package console

import (
	errprocess "operator_console/pkg/err"
	"operator_console/pkg/logger"

	"go.uber.org/zap"
)

// fail 顯示失敗提示並記錄
// 本地驗證錯誤直接顯示訊息，其他錯誤加上操作名稱前綴
func fail(n Notifier, prefix string, err error) {
	msg := err.Error()
	if !errprocess.IsValidation(err) && msg != prefix {
		msg = prefix + ": " + msg
	}
	logger.Log.Error(prefix,
		zap.String("kind", errprocess.KindOf(err).String()),
		zap.String("detail", errprocess.Describe(err)),
	)
	n.Alert(msg)
}
