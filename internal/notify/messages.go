package notify

import "fmt"

// 標準通知信。主旨與內文沿用既有系統的措辭，候選人收到的內容保持不變。

// InviteMessage 邀請候選人填寫履歷。
func InviteMessage(name, email, loginURL string) (subject, body string) {
	subject = fmt.Sprintf("【面試邀請】請填寫您的履歷資料 - %s", name)
	body = fmt.Sprintf(
		"%s 您好，\n\n誠摯邀請您參加面試。\n請點擊以下連結登入系統填寫履歷：\n%s\n\n登入帳號：%s\n預設密碼：%s\n\n填寫完畢請按「送出審核」。",
		name, loginURL, email, email,
	)
	return subject, body
}

// SubmittedMessage 通知審核人有新履歷送審。
func SubmittedMessage(candidateName string) (subject, body string) {
	subject = fmt.Sprintf("【履歷送審】%s 已提交履歷", candidateName)
	body = "請登入系統進行審閱。"
	return subject, body
}

// ApprovedMessage 通知候選人審核通過。
func ApprovedMessage(comment string) (subject, body string) {
	subject = "【通知】履歷審核通過"
	body = fmt.Sprintf("恭喜，您的履歷已通過。\nHR 留言：%s", comment)
	return subject, body
}

// ReturnedMessage 通知候選人履歷被退回。
func ReturnedMessage(comment string) (subject, body string) {
	subject = "【通知】履歷需補件/修改"
	body = fmt.Sprintf("您的履歷被退回。\n原因：%s\n請修正後重新送出。", comment)
	return subject, body
}
