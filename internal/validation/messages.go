package validation

const (
	MsgEmailRequired      = "Vui lòng nhập email"
	MsgEmailInvalid       = "Email không hợp lệ"
	MsgPasswordRequired   = "Vui lòng nhập mật khẩu"
	MsgPasswordShort      = "Mật khẩu phải có ít nhất 6 ký tự"
	MsgNameRequired       = "Vui lòng nhập họ tên"
	MsgConfirmRequired    = "Vui lòng nhập lại mật khẩu"
	MsgConfirmMismatch    = "Mật khẩu không khớp"
	MsgCardNumberRequired = "Vui lòng nhập mã thẻ"
	MsgCardNumberInvalid  = "Mã thẻ phải có ít nhất 10 chữ số"
	MsgSerialRequired     = "Vui lòng nhập số serial"
	MsgSerialInvalid      = "Số serial phải có ít nhất 5 chữ số"
	MsgAmountRequired     = "Vui lòng chọn mệnh giá"
	MsgCardTypeRequired   = "Vui lòng chọn loại thẻ"
	MsgNewPasswordMatch   = "Mật khẩu mới không khớp"
	MsgInvalidField       = "Giá trị không hợp lệ"
)

// messages[поле][тег]
var messages = map[string]map[string]string{
	FieldEmail: {
		"required":      MsgEmailRequired,
		"email_address": MsgEmailInvalid,
	},
	FieldPassword: {
		"required": MsgPasswordRequired,
		"min":      MsgPasswordShort,
	},
	FieldName: {
		"required": MsgNameRequired,
	},
	FieldConfirm: {
		"required": MsgConfirmRequired,
		"eqfield":  MsgConfirmMismatch,
	},
	FieldCardNumber: {
		"required": MsgCardNumberRequired,
		"digits":   MsgCardNumberInvalid,
		"min":      MsgCardNumberInvalid,
	},
	FieldCardSerial: {
		"required": MsgSerialRequired,
		"digits":   MsgSerialInvalid,
		"min":      MsgSerialInvalid,
	},
	FieldAmount: {
		"required":     MsgAmountRequired,
		"denomination": MsgAmountRequired,
	},
	FieldCardType: {
		"required":  MsgCardTypeRequired,
		"card_type": MsgCardTypeRequired,
	},
	FieldNewPassword: {
		"min": MsgPasswordShort,
	},
	FieldConfirmPassword: {
		"eqfield": MsgNewPasswordMatch,
	},
}

func message(field, tag string) string {
	if byTag, ok := messages[field]; ok {
		if msg, ok := byTag[tag]; ok {
			return msg
		}
	}
	return MsgInvalidField
}
