package models

// Типы предоплаченных карт, которые принимает форма пополнения
const (
	CardTypeViettel   = "viettel"
	CardTypeMobifone  = "mobifone"
	CardTypeVinaphone = "vinaphone"
	CardTypeGarena    = "garena"
	CardTypeZing      = "zing"
)

// CardTypes - варианты для выбора типа карты
var CardTypes = []string{CardTypeViettel, CardTypeMobifone, CardTypeVinaphone, CardTypeGarena, CardTypeZing}

// Denominations - номиналы карт в VND
var Denominations = []int64{10000, 20000, 50000, 100000, 200000, 500000}

// Deposit представляет запрос на пополнение баланса кодом предоплаченной карты
type Deposit struct {
	CardNumber string `json:"cardNumber"`
	CardSerial string `json:"cardSerial"`
	CardType   string `json:"cardType"`
	Amount     int64  `json:"amount"`
}
