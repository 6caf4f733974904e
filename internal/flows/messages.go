package flows

const (
	MsgInvalidCredentials = "Email hoặc mật khẩu không đúng"
	MsgLoginWelcome       = "Chào mừng %s trở lại"
	MsgRegisterSuccess    = "Đăng ký thành công!"
	MsgRegisterFailed     = "Đăng ký thất bại"
	MsgLogoutSuccess      = "Bạn đã đăng xuất thành công"
	MsgLogoutFailed       = "Đăng xuất thất bại"
	MsgDepositSuccess     = "Nạp thành công %sđ vào tài khoản"
	MsgDepositFailed      = "Có lỗi xảy ra khi xử lý thẻ. Vui lòng thử lại"
	MsgPasswordChanged    = "Đổi mật khẩu thành công"
	MsgPasswordFailed     = "Đổi mật khẩu thất bại"
	MsgAccountLoadFailed  = "Không thể tải thông tin tài khoản"
	MsgHistoryEmpty       = "Chưa có giao dịch nạp tiền"
	MsgHistoryFailed      = "Lỗi khi tải lịch sử giao dịch"
	MsgHistorySuccess     = "Thành công"
	MsgForgotPasswordSent = "Yêu cầu đặt lại mật khẩu đã được gửi đến email của bạn!"
)
