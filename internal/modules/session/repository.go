package session

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/mylittlegrimoire/server/internal/modules/core"
	"github.com/mylittlegrimoire/server/internal/modules/session/domain"

	"github.com/eskrenkovic/tql"
	"github.com/google/uuid"
)

// The session table doubles as the session directory: lookup by id for
// members, lookup by code for joiners. Mutating paths take the row lock
// first so flower assignment is exactly-once.

func Get(ctx context.Context, q core.DB, id uuid.UUID) (domain.Session, error) {
	const query = `
		SELECT *
		FROM session
		WHERE id = $1;`

	s, err := tql.QueryFirst[domain.Session](ctx, q, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return s, domain.ErrSessionNotFound
	}
	return s, err
}

func GetForUpdate(ctx context.Context, q core.DB, id uuid.UUID) (domain.Session, error) {
	const query = `
		SELECT *
		FROM session
		WHERE id = $1
		FOR UPDATE;`

	s, err := tql.QueryFirst[domain.Session](ctx, q, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return s, domain.ErrSessionNotFound
	}
	return s, err
}

func GetByCodeForUpdate(ctx context.Context, q core.DB, code string) (domain.Session, error) {
	const query = `
		SELECT *
		FROM session
		WHERE code = $1
		FOR UPDATE;`

	s, err := tql.QueryFirst[domain.Session](ctx, q, query, code)
	if errors.Is(err, sql.ErrNoRows) {
		return s, domain.ErrSessionNotFound
	}
	return s, err
}

func CodeExists(ctx context.Context, q core.DB, code string) (bool, error) {
	const query = `
		SELECT count(id)
		FROM session
		WHERE code = $1;`

	count, err := tql.QueryFirst[int](ctx, q, query, code)
	return count > 0, err
}

func Insert(ctx context.Context, q core.DB, s domain.Session) error {
	const stmt = `
		INSERT INTO
			session (id, code, recipe_id, status, initial_player_id, lat, lng, unassigned_flowers, collected_flowers, created_at)
		VALUES
			(:id, :code, :recipe_id, :status, :initial_player_id, :lat, :lng, :unassigned_flowers, :collected_flowers, :created_at);`

	_, err := tql.Exec(ctx, q, stmt, s)
	return err
}

func Update(ctx context.Context, q core.DB, s domain.Session) error {
	const stmt = `
		UPDATE
			session
		SET
			status = :status,
			lat = :lat,
			lng = :lng,
			unassigned_flowers = :unassigned_flowers,
			collected_flowers = :collected_flowers
		WHERE
			id = :id;`

	_, err := tql.Exec(ctx, q, stmt, s)
	return err
}

func Delete(ctx context.Context, q core.DB, id uuid.UUID) error {
	const stmt = `
		DELETE FROM session
		WHERE id = :id;`

	_, err := tql.Exec(ctx, q, stmt, map[string]any{"id": id})
	return err
}

type Member struct {
	PlayerID       uuid.UUID     `db:"id"`
	Name           string        `db:"name"`
	Picture        int           `db:"picture"`
	AssignedFlower sql.NullInt64 `db:"assigned_flower_id"`
}

func Members(ctx context.Context, q core.DB, sessionID uuid.UUID) ([]Member, error) {
	const query = `
		SELECT
			id, name, picture, assigned_flower_id
		FROM
			player
		WHERE
			current_session_id = $1
		ORDER BY
			created_at;`

	return tql.Query[Member](ctx, q, query, sessionID)
}

func MemberCount(ctx context.Context, q core.DB, sessionID uuid.UUID) (int, error) {
	const query = `
		SELECT count(id)
		FROM player
		WHERE current_session_id = $1;`

	return tql.QueryFirst[int](ctx, q, query, sessionID)
}

// DetachMembers clears the membership columns of everyone still in the
// session. Run before deleting the session row.
func DetachMembers(ctx context.Context, q core.DB, sessionID uuid.UUID) error {
	const stmt = `
		UPDATE
			player
		SET
			current_session_id = NULL,
			assigned_flower_id = NULL
		WHERE
			current_session_id = :session_id;`

	_, err := tql.Exec(ctx, q, stmt, map[string]any{"session_id": sessionID})
	return err
}

// StaleIDs lists sessions eligible for the maintenance sweep: created
// before the cutoff, or with no remaining members.
func StaleIDs(ctx context.Context, q core.DB, cutoff time.Time) ([]uuid.UUID, error) {
	const query = `
		SELECT id
		FROM session
		WHERE
			created_at < $1
			OR NOT EXISTS (
				SELECT 1
				FROM player
				WHERE player.current_session_id = session.id
			)
		FOR UPDATE;`

	return tql.Query[uuid.UUID](ctx, q, query, cutoff)
}
