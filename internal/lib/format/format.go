// Package format форматирование цен, номеров карт и дат для вывода пользователю.
package format

import (
	"strconv"
	"time"
	"unicode/utf8"
)

// Currency - суффикс валюты после суммы
const Currency = "đ"

// Price разбивает число на группы по три цифры через точку: 1234567 -> "1.234.567"
func Price(amount int64) string {
	s := strconv.FormatInt(amount, 10)
	sign := ""
	if amount < 0 {
		sign, s = "-", s[1:]
	}
	if len(s) <= 3 {
		return sign + s
	}

	out := make([]byte, 0, len(s)+len(s)/3)
	head := len(s) % 3
	if head > 0 {
		out = append(out, s[:head]...)
	}
	for i := head; i < len(s); i += 3 {
		if len(out) > 0 {
			out = append(out, '.')
		}
		out = append(out, s[i:i+3]...)
	}
	return sign + string(out)
}

// VND - сумма с валютой: 100000 -> "100.000đ"
func VND(amount int64) string {
	return Price(amount) + Currency
}

// MaskCard оставляет только последние четыре символа номера карты
func MaskCard(number string) string {
	n := utf8.RuneCountInString(number)
	if n <= 4 {
		return "••••" + number
	}
	runes := []rune(number)
	return "••••" + string(runes[n-4:])
}

var vnLocation = func() *time.Location {
	loc, err := time.LoadLocation("Asia/Ho_Chi_Minh")
	if err != nil {
		return time.FixedZone("ICT", 7*60*60)
	}
	return loc
}()

// DateTime форматирует время как в локали vi-VN: "15:04:05 2/1/2006"
func DateTime(t time.Time) string {
	return t.In(vnLocation).Format("15:04:05 2/1/2006")
}
