package service_test

import (
	"regexp"
	"testing"
	"time"

	"canteen/canteen-svc/internal/domain"
	"canteen/canteen-svc/internal/service"

	"github.com/stretchr/testify/assert"
)

func TestNewToken(t *testing.T) {
	now := time.Date(2026, 3, 7, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		existing []domain.Order
		want     string
	}{
		{
			name: "first order of the day",
			want: "TKN-20260307-0001",
		},
		{
			name:     "counts existing orders",
			existing: []domain.Order{{Token: "TKN-20260307-0001"}, {Token: "TKN-20260307-0002"}},
			want:     "TKN-20260307-0003",
		},
		{
			name:     "continues after the highest issued sequence",
			existing: []domain.Order{{Token: "TKN-20260307-0001"}, {Token: "TKN-20260307-0005"}},
			want:     "TKN-20260307-0006",
		},
		{
			name:     "ignores tokens from other days",
			existing: []domain.Order{{Token: "TKN-20260306-0042"}},
			want:     "TKN-20260307-0002",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.want, service.NewToken(now, testCase.existing))
		})
	}
}

func TestNewTokenFormat(t *testing.T) {
	token := service.NewToken(time.Now(), nil)
	assert.Regexp(t, regexp.MustCompile(`^TKN-\d{8}-\d{4}$`), token)
}

func TestTokenSequence(t *testing.T) {
	n, ok := service.TokenSequence("TKN-20260307-0012", "20260307")
	assert.True(t, ok)
	assert.Equal(t, 12, n)

	_, ok = service.TokenSequence("TKN-20260307-abcd", "20260307")
	assert.False(t, ok)

	_, ok = service.TokenSequence("TKN-20260308-0001", "20260307")
	assert.False(t, ok)
}

func TestNewID(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := service.NewID()
		assert.NotEmpty(t, id)
		assert.False(t, seen[id])
		seen[id] = true
	}
}
