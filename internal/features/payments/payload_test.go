package payments

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"serotonyl.ru/daisy-game/internal/common"
)

func TestFormatPayload(t *testing.T) {
	assert.Equal(t, "balance_42_100", FormatPayload(42, 100))
}

func TestParsePayload(t *testing.T) {
	tests := []struct {
		name       string
		payload    string
		wantUser   int64
		wantAmount int64
		wantErr    bool
	}{
		{name: "валидная нагрузка", payload: "balance_42_100", wantUser: 42, wantAmount: 100},
		{name: "минимальная сумма", payload: "balance_1_10", wantUser: 1, wantAmount: 10},
		{name: "чужой префикс", payload: "karma_42_100", wantErr: true},
		{name: "мало частей", payload: "balance_42", wantErr: true},
		{name: "много частей", payload: "balance_42_100_7", wantErr: true},
		{name: "нечисловой ID", payload: "balance_abc_100", wantErr: true},
		{name: "нечисловая сумма", payload: "balance_42_сто", wantErr: true},
		{name: "нулевая сумма", payload: "balance_42_0", wantErr: true},
		{name: "отрицательная сумма", payload: "balance_42_-5", wantErr: true},
		{name: "нулевой ID", payload: "balance_0_100", wantErr: true},
		{name: "пустая строка", payload: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userID, amount, err := ParsePayload(tt.payload)
			if tt.wantErr {
				assert.ErrorIs(t, err, common.ErrInvalidAmount)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantUser, userID)
			assert.Equal(t, tt.wantAmount, amount)
		})
	}
}

func TestPayload_RoundTrip(t *testing.T) {
	payload := FormatPayload(7, 250)
	userID, amount, err := ParsePayload(payload)
	require.NoError(t, err)
	assert.Equal(t, int64(7), userID)
	assert.Equal(t, int64(250), amount)
}
