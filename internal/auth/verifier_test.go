package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"serotonyl.ru/daisy-game/internal/common"
)

const testBotToken = "123456:ABC-DEF1234ghIkl-zyx57W2v1u123ew11"

// signInitData собирает корректно подписанную строку initData
// тем же алгоритмом, что использует Telegram.
func signInitData(t *testing.T, botToken string, values url.Values) string {
	t.Helper()

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

	secretMac := hmac.New(sha256.New, []byte("WebAppData"))
	secretMac.Write([]byte(botToken))

	mac := hmac.New(sha256.New, secretMac.Sum(nil))
	mac.Write([]byte(strings.Join(parts, "\n")))

	return values.Encode() + "&hash=" + hex.EncodeToString(mac.Sum(nil))
}

func validValues() url.Values {
	return url.Values{
		"auth_date": {"1693000000"},
		"query_id":  {"AAHdF6IQAAAAAN0XohDhrOrc"},
		"user":      {`{"id":279058397,"first_name":"Владислав","last_name":"Кибенко","username":"vdkfrost","language_code":"ru","is_premium":true}`},
	}
}

func TestVerify_ValidToken(t *testing.T) {
	now := time.Unix(1693000100, 0)
	v := NewVerifier(testBotToken)

	identity, err := v.Verify(signInitData(t, testBotToken, validValues()), now)
	require.NoError(t, err)

	require.NotNil(t, identity.User)
	assert.Equal(t, int64(279058397), identity.User.ID)
	require.NotNil(t, identity.User.Username)
	assert.Equal(t, "vdkfrost", *identity.User.Username)
	require.NotNil(t, identity.User.FirstName)
	assert.Equal(t, "Владислав", *identity.User.FirstName)
	assert.True(t, identity.User.IsPremium)
	assert.Equal(t, int64(1693000000), identity.AuthDate)
	assert.Equal(t, "AAHdF6IQAAAAAN0XohDhrOrc", identity.QueryID)
}

func TestVerify_SpaceAsPlusDecoding(t *testing.T) {
	// url.Values.Encode кодирует пробел как "+": подпись считается
	// по декодированному значению, проверка обязана это учитывать.
	now := time.Unix(1693000100, 0)
	values := validValues()
	values.Set("start_param", "ref 42 with spaces")

	v := NewVerifier(testBotToken)
	identity, err := v.Verify(signInitData(t, testBotToken, values), now)
	require.NoError(t, err)
	require.NotNil(t, identity.User)
}

func TestVerify_TamperedHash(t *testing.T) {
	now := time.Unix(1693000100, 0)
	initData := signInitData(t, testBotToken, validValues())

	// Меняем последний символ hash на другой hex-символ
	last := initData[len(initData)-1]
	replacement := byte('0')
	if last == '0' {
		replacement = '1'
	}
	tampered := initData[:len(initData)-1] + string(replacement)

	v := NewVerifier(testBotToken)
	_, err := v.Verify(tampered, now)
	assert.ErrorIs(t, err, common.ErrInvalidSignature)
}

func TestVerify_WrongBotToken(t *testing.T) {
	now := time.Unix(1693000100, 0)
	initData := signInitData(t, "999999:another-bot-token", validValues())

	v := NewVerifier(testBotToken)
	_, err := v.Verify(initData, now)
	assert.ErrorIs(t, err, common.ErrInvalidSignature)
}

func TestVerify_MissingHash(t *testing.T) {
	v := NewVerifier(testBotToken)
	_, err := v.Verify("auth_date=1693000000&user=%7B%22id%22%3A1%7D", time.Unix(1693000100, 0))
	assert.ErrorIs(t, err, common.ErrMalformedInitData)
}

func TestVerify_UnparsableQueryString(t *testing.T) {
	v := NewVerifier(testBotToken)
	_, err := v.Verify("auth_date=%zz&hash=deadbeef", time.Unix(1693000100, 0))
	assert.ErrorIs(t, err, common.ErrMalformedInitData)
}

func TestVerify_ExpiryBoundary(t *testing.T) {
	v := NewVerifier(testBotToken)
	authDate := int64(1693000000)

	tests := []struct {
		name    string
		now     time.Time
		wantErr error
	}{
		{"ровно 86400 секунд — ещё валидно", time.Unix(authDate+86400, 0), nil},
		{"86401 секунда — уже протухло", time.Unix(authDate+86401, 0), common.ErrExpiredAuth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			initData := signInitData(t, testBotToken, validValues())
			_, err := v.Verify(initData, tt.now)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestVerify_BadAuthDate(t *testing.T) {
	now := time.Unix(1693000100, 0)
	v := NewVerifier(testBotToken)

	// auth_date не число, но подписано корректно: подпись пройдёт,
	// а вот парсинг даты — нет.
	values := url.Values{
		"auth_date": {"вчера"},
		"user":      {`{"id":1,"first_name":"A"}`},
	}
	_, err := v.Verify(signInitData(t, testBotToken, values), now)
	assert.ErrorIs(t, err, common.ErrMalformedInitData)

	// auth_date отсутствует совсем
	values = url.Values{"user": {`{"id":1,"first_name":"A"}`}}
	_, err = v.Verify(signInitData(t, testBotToken, values), now)
	assert.ErrorIs(t, err, common.ErrMalformedInitData)
}

func TestVerify_BrokenUserJSON(t *testing.T) {
	// Битый user — не ошибка проверки подписи: подпись покрывает байты.
	// Пользователь просто считается отсутствующим.
	now := time.Unix(1693000100, 0)
	values := url.Values{
		"auth_date": {"1693000000"},
		"user":      {`{"id":broken`},
	}

	v := NewVerifier(testBotToken)
	identity, err := v.Verify(signInitData(t, testBotToken, values), now)
	require.NoError(t, err)
	assert.Nil(t, identity.User)
}

func TestVerify_NoUserField(t *testing.T) {
	now := time.Unix(1693000100, 0)
	values := url.Values{"auth_date": {"1693000000"}}

	v := NewVerifier(testBotToken)
	identity, err := v.Verify(signInitData(t, testBotToken, values), now)
	require.NoError(t, err)
	assert.Nil(t, identity.User)
}
