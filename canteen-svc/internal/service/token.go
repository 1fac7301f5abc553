package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"canteen/canteen-svc/internal/domain"

	"github.com/google/uuid"
)

const tokenPrefix = "TKN-"

func NewID() string {
	return uuid.NewString()
}

// NewToken issues the next pickup token for the day of now.
// The sequence continues from the highest token already issued that day, so it never
// repeats even if the day's order count and its token numbers disagree.
func NewToken(now time.Time, existingToday []domain.Order) string {
	day := now.Format("20060102")
	seq := len(existingToday)
	for _, order := range existingToday {
		if n, ok := TokenSequence(order.Token, day); ok && n > seq {
			seq = n
		}
	}
	return fmt.Sprintf("%s%s-%04d", tokenPrefix, day, seq+1)
}

// TokenSequence extracts NNNN from a TKN-YYYYMMDD-NNNN token issued on day.
func TokenSequence(token, day string) (int, bool) {
	prefix := tokenPrefix + day + "-"
	if !strings.HasPrefix(token, prefix) {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimPrefix(token, prefix))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func dayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02")
}

func ordersOnDay(orders []domain.Order, day string, loc *time.Location) []domain.Order {
	var matched []domain.Order
	for _, order := range orders {
		if dayKey(order.CreatedAt, loc) == day {
			matched = append(matched, order)
		}
	}
	return matched
}
