// Package validation содержит функции валидации входных данных форм.
// Эти проверки выполняются до любого сетевого вызова.
package validation

import (
	"regexp"
	"strings"
)

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe = regexp.MustCompile(`^(\+33|0)[1-9](\d{8})$`)
)

// IsValidEmail проверяет адрес электронной почты.
func IsValidEmail(email string) bool {
	return emailRe.MatchString(email)
}

// IsValidPhone проверяет номер телефона во французском формате;
// пробелы игнорируются.
func IsValidPhone(phone string) bool {
	return phoneRe.MatchString(strings.ReplaceAll(phone, " ", ""))
}

// IsValidPassword проверяет минимальную длину пароля.
func IsValidPassword(password string) bool {
	return len(password) >= 6
}
