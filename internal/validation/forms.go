package validation

// Имена полей форм
const (
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldName            = "name"
	FieldConfirm         = "confirm"
	FieldCardNumber      = "cardNumber"
	FieldCardSerial      = "cardSerial"
	FieldAmount          = "amount"
	FieldCardType        = "cardType"
	FieldCurrentPassword = "currentPassword"
	FieldNewPassword     = "newPassword"
	FieldConfirmPassword = "confirmNewPassword"
)

type LoginForm struct {
	Email    string `form:"email" validate:"required,email_address"`
	Password string `form:"password" validate:"required,min=6"`
	Remember bool   `form:"remember"`
}

type RegisterForm struct {
	Name     string `form:"name" validate:"required"`
	Email    string `form:"email" validate:"required,email_address"`
	Password string `form:"password" validate:"required,min=6"`
	Confirm  string `form:"confirm" validate:"required,eqfield=Password"`
}

type ForgotPasswordForm struct {
	Email string `form:"email" validate:"required,email_address"`
}

// DepositForm - значения полей как введены; Amount - выбранный номинал строкой
type DepositForm struct {
	CardNumber string `form:"cardNumber" validate:"required,digits,min=10"`
	CardSerial string `form:"cardSerial" validate:"required,digits,min=5"`
	Amount     string `form:"amount" validate:"required,denomination"`
	CardType   string `form:"cardType" validate:"required,card_type"`
}

// ChangePasswordForm: несовпадение проверяется раньше длины
type ChangePasswordForm struct {
	CurrentPassword    string `form:"currentPassword"`
	ConfirmNewPassword string `form:"confirmNewPassword" validate:"eqfield=NewPassword"`
	NewPassword        string `form:"newPassword" validate:"min=6"`
}
