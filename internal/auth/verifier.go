// Package auth — verifier.go реализует проверку подписи initData.
//
// Алгоритм Telegram WebApp:
//  1. initData — это query-строка вида key=value&key=value.
//  2. Из неё извлекается поле hash, остальные пары сортируются по ключу
//     и склеиваются в data-check-string через \n (значения — декодированные).
//  3. secret = HMAC-SHA256(key="WebAppData", msg=токен бота).
//  4. Подпись = hex(HMAC-SHA256(key=secret, msg=data-check-string)).
//
// Важно: в старых ревизиях встречался вариант secret = SHA-256(токен) —
// он НЕ совпадает с боевым протоколом. Правильный вариант закреплён
// эталонными векторами в verifier_test.go.
package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"serotonyl.ru/daisy-game/internal/common"
)

// InitDataTTL — окно свежести auth_date.
// Ровно 86400 секунд ещё валидно, 86401 — уже нет.
// Это осознанная граница защиты от повтора, не подстройка под клиентские часы.
const InitDataTTL = 86400 * time.Second

// Verifier проверяет подпись initData для одного бота.
// Чистая функция над своими входами: без состояния, без логов секретов.
type Verifier struct {
	secret []byte // HMAC-SHA256("WebAppData", botToken), вычисляется один раз
}

// NewVerifier создаёт Verifier для указанного токена бота.
// Токен нигде не сохраняется — только производный от него секрет.
func NewVerifier(botToken string) *Verifier {
	mac := hmac.New(sha256.New, []byte("WebAppData"))
	mac.Write([]byte(botToken))
	return &Verifier{secret: mac.Sum(nil)}
}

// Verify проверяет подпись initData и возвращает проверенные данные.
//
// Возможные ошибки:
//   - common.ErrMalformedInitData — строка не парсится, нет hash или auth_date
//   - common.ErrInvalidSignature — подпись не сошлась
//   - common.ErrExpiredAuth — auth_date старше 24 часов относительно now
//
// Битое поле user ошибкой не считается: подпись покрывает сырые байты,
// а отсутствие пользователя отлавливается при резолве аккаунта.
func (v *Verifier) Verify(initData string, now time.Time) (*Identity, error) {
	// Стандартный декодер query-строк: процентное декодирование,
	// «+» как пробел, повторяющиеся ключи складываются в слайс.
	values, err := url.ParseQuery(initData)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrMalformedInitData, err)
	}

	receivedHash := values.Get("hash")
	if receivedHash == "" {
		return nil, fmt.Errorf("%w: отсутствует hash", common.ErrMalformedInitData)
	}
	values.Del("hash")

	// data-check-string: пары key=value, отсортированные по ключу,
	// через \n, со значениями после декодирования.
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var parts []string
	for _, key := range keys {
		for _, value := range values[key] {
			parts = append(parts, key+"="+value)
		}
	}
	checkString := strings.Join(parts, "\n")

	mac := hmac.New(sha256.New, v.secret)
	mac.Write([]byte(checkString))
	calculated := hex.EncodeToString(mac.Sum(nil))

	// Сравнение за постоянное время, чтобы не утекала длина совпавшего префикса
	if !hmac.Equal([]byte(calculated), []byte(receivedHash)) {
		return nil, common.ErrInvalidSignature
	}

	authDate, err := strconv.ParseInt(values.Get("auth_date"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: некорректный auth_date", common.ErrMalformedInitData)
	}
	if now.Unix()-authDate > int64(InitDataTTL.Seconds()) {
		return nil, common.ErrExpiredAuth
	}

	identity := &Identity{
		AuthDate: authDate,
		QueryID:  values.Get("query_id"),
	}

	// Поле user — JSON-объект. Если он не парсится, работаем как будто
	// пользователя нет: данные не выдумываем.
	if userJSON := values.Get("user"); userJSON != "" {
		var user TelegramUser
		if err := json.Unmarshal([]byte(userJSON), &user); err == nil {
			identity.User = &user
		}
	}

	return identity, nil
}
