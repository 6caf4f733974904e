package models

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// User представляет пользователя магазина в том виде, в котором его отдает API
type User struct {
	ID         string `json:"_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	AvatarText string `json:"avatarText,omitempty"`
}

// Avatar возвращает текст аватара: avatarText либо первая буква имени в верхнем регистре
func (u *User) Avatar() string {
	if u == nil {
		return ""
	}
	if u.AvatarText != "" {
		return u.AvatarText
	}
	name := strings.TrimSpace(u.Name)
	if name == "" {
		return ""
	}
	r, _ := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(r))
}
