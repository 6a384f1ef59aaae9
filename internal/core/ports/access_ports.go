package ports

import "context"

// AccessService gates every user-facing interaction. IsSubscribed fails
// closed: a transport error during any channel check reads as "not
// subscribed".
type AccessService interface {
	IsSubscribed(ctx context.Context, userID int64) bool
	IsAdmin(ctx context.Context, userID int64) bool
}
