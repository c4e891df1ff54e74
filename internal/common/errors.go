// Package common — errors.go определяет пользовательские ошибки,
// которые используются во всех модулях приложения.
// Все бизнес-ошибки — sentinel-значения: обработчики различают их
// через errors.Is и превращают в понятные HTTP-ответы.
package common

import "errors"

// Ошибки проверки подписи initData (слой авторизации)
var (
	// ErrMalformedInitData — строка initData не распарсилась или нет обязательных полей
	ErrMalformedInitData = errors.New("некорректная строка initData")
	// ErrInvalidSignature — подпись hash не совпала с вычисленной
	ErrInvalidSignature = errors.New("подпись initData не прошла проверку")
	// ErrExpiredAuth — auth_date старше 24 часов (защита от повторного использования)
	ErrExpiredAuth = errors.New("данные авторизации устарели")
	// ErrMissingUser — в initData отсутствуют данные пользователя
	ErrMissingUser = errors.New("в initData отсутствуют данные пользователя")
)

// Ошибки экономики (листики, скины)
var (
	// ErrInsufficientBalance — недостаточно листиков на счёте
	ErrInsufficientBalance = errors.New("недостаточно листиков на счёте")
	// ErrInvalidAmount — некорректная сумма (ноль или отрицательная)
	ErrInvalidAmount = errors.New("сумма должна быть положительной")
	// ErrUserNotFound — пользователь не найден в базе
	ErrUserNotFound = errors.New("пользователь не найден")
	// ErrSkinNotFound — скин с таким ID не существует
	ErrSkinNotFound = errors.New("скин не найден")
	// ErrDefaultSkin — дефолтный скин нельзя купить, он и так доступен всем
	ErrDefaultSkin = errors.New("дефолтный скин покупать не нужно")
	// ErrAlreadyOwned — скин уже куплен этим пользователем
	ErrAlreadyOwned = errors.New("скин уже куплен")
	// ErrSkinNotOwned — попытка выбрать скин, который не куплен
	ErrSkinNotOwned = errors.New("скин не куплен")
)

// Ошибки кастомных текстов
var (
	// ErrTooManyTexts — больше трёх текстов
	ErrTooManyTexts = errors.New("можно сохранить максимум 3 текста")
	// ErrTextTooLong — текст длиннее 20 символов
	ErrTextTooLong = errors.New("текст слишком длинный (максимум 20 символов)")
	// ErrEmptyText — пустой текст (после обрезки пробелов)
	ErrEmptyText = errors.New("текст не может быть пустым")
)

// Ошибки рефералов
var (
	// ErrInvalidReferralCode — код не формата ref<id>
	ErrInvalidReferralCode = errors.New("некорректный реферальный код")
	// ErrSelfReferral — попытка применить собственный код
	ErrSelfReferral = errors.New("нельзя пригласить самого себя")
	// ErrReferralAlreadyApplied — этот аккаунт уже был приглашён
	ErrReferralAlreadyApplied = errors.New("реферальный код уже применён")
	// ErrInviterNotFound — пригласившего с таким ID не существует
	ErrInviterNotFound = errors.New("пригласивший пользователь не найден")
)

// Ошибки игры
var (
	// ErrNoDaisiesLeft — бесплатные ромашки на сегодня закончились
	ErrNoDaisiesLeft = errors.New("бесплатные ромашки на сегодня закончились")
)
