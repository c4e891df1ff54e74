// Package common содержит общие утилиты, используемые во всём проекте.
// Сюда входят: русская плюрализация и форматирование времени.
package common

import (
	"fmt"
	"math"
	"time"
)

// PluralizePetals возвращает правильную форму слова «листик» для числа n.
//
// Правила русского языка:
//   - n%10==1 И n%100!=11 → "листик" (1, 21, 31, 101, ...)
//   - n%10 в [2,3,4] И n%100 НЕ в [12,13,14] → "листика" (2, 3, 4, 22, 23, ...)
//   - Остальные случаи → "листиков" (0, 5-20, 25-30, 100, ...)
//
// Примеры:
//
//	PluralizePetals(1)  → "листик"
//	PluralizePetals(3)  → "листика"
//	PluralizePetals(5)  → "листиков"
//	PluralizePetals(21) → "листик"
func PluralizePetals(n int64) string {
	// Берём абсолютное значение для отрицательных чисел
	absN := int64(math.Abs(float64(n)))
	lastDigit := absN % 10
	lastTwoDigits := absN % 100

	if lastDigit == 1 && lastTwoDigits != 11 {
		return "листик"
	}
	if lastDigit >= 2 && lastDigit <= 4 && (lastTwoDigits < 12 || lastTwoDigits > 14) {
		return "листика"
	}
	return "листиков"
}

// FormatBalance форматирует баланс в читабельную строку.
// Пример: FormatBalance(150) → "150 листиков"
func FormatBalance(balance int64) string {
	return fmt.Sprintf("%d %s", balance, PluralizePetals(balance))
}

// FormatDateTime форматирует время в формат "02.01.2006 15:04".
// Используется для отображения дат в истории операций.
func FormatDateTime(t time.Time) string {
	loc, err := time.LoadLocation("Europe/Moscow")
	if err != nil {
		loc = time.FixedZone("MSK", 3*60*60)
	}
	return t.In(loc).Format("02.01.2006 15:04")
}
