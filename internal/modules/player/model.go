package player

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type Player struct {
	ID               uuid.UUID     `db:"id"`
	Name             string        `db:"name"`
	Picture          int           `db:"picture"`
	Money            int           `db:"money"`
	CurrentSessionID uuid.NullUUID `db:"current_session_id"`
	AssignedFlowerID sql.NullInt64 `db:"assigned_flower_id"`
	CreatedAt        time.Time     `db:"created_at"`
}

type InventoryItem struct {
	PotionID int64 `db:"potion_id"`
	Amount   int   `db:"amount"`
}
