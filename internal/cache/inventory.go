package cache

import (
	"context"
	"fmt"
	"time"
)

// Key formats. Keep every cache key the application uses in this inventory
// so invalidation stays auditable.
const (
	UserKeyPrefix      = "user:%d"
	SessionKeyPrefix   = "session:%d"
	CategoriesKey      = "categories:active"
	DashboardKeyPrefix = "dashboard:%d:%s"
	StreakKeyPrefix    = "streak:%d"
	JWTBlacklistPrefix = "blacklist:%s"
)

const (
	UserTTL       = 5 * time.Minute
	SessionTTL    = 10 * time.Minute
	CategoriesTTL = 30 * time.Minute
	DashboardTTL  = 2 * time.Minute
	StreakTTL     = 2 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func SessionKey(sessionID uint) string {
	return fmt.Sprintf(SessionKeyPrefix, sessionID)
}

func DashboardKey(userID uint, period string) string {
	return fmt.Sprintf(DashboardKeyPrefix, userID, period)
}

func StreakKey(userID uint) string {
	return fmt.Sprintf(StreakKeyPrefix, userID)
}

func JWTBlacklistKey(jti string) string {
	return fmt.Sprintf(JWTBlacklistPrefix, jti)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidateSession(ctx context.Context, sessionID uint) {
	Invalidate(ctx, SessionKey(sessionID))
}

func InvalidateCategories(ctx context.Context) {
	Invalidate(ctx, CategoriesKey)
}

// InvalidateDashboard drops every cached period for the user. Called after a
// completion is recorded so the next dashboard read reflects it.
func InvalidateDashboard(ctx context.Context, userID uint) {
	for _, period := range []string{"week", "month", "year"} {
		Invalidate(ctx, DashboardKey(userID, period))
	}
	Invalidate(ctx, StreakKey(userID))
}
