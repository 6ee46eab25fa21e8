package db

import (
	"context"
)

const userColumns = `id, username, password_hash, email, eth_address, is_active, created_at`

type InsertUserParams struct {
	Username     string
	PasswordHash string
	Email        string
	EthAddress   string
	IsActive     bool
}

const insertUser = `INSERT INTO users (username, password_hash, email, eth_address, is_active)
VALUES ($1, $2, $3, $4, $5)
RETURNING id`

func (q *Queries) InsertUser(ctx context.Context, arg InsertUserParams) (int64, error) {
	var id int64
	err := q.db.QueryRow(ctx, insertUser, arg.Username, arg.PasswordHash, arg.Email, arg.EthAddress, arg.IsActive).Scan(&id)
	return id, err
}

const getUser = `SELECT ` + userColumns + ` FROM users WHERE id = $1`

func (q *Queries) GetUser(ctx context.Context, id int64) (User, error) {
	return scanUser(q.db.QueryRow(ctx, getUser, id))
}

const getUserByUsername = `SELECT ` + userColumns + ` FROM users WHERE lower(username) = lower($1)`

func (q *Queries) GetUserByUsername(ctx context.Context, username string) (User, error) {
	return scanUser(q.db.QueryRow(ctx, getUserByUsername, username))
}

const userHasPerm = `SELECT EXISTS (
	SELECT 1 FROM users u
	WHERE u.id = $1 AND u.is_active AND (
		EXISTS (SELECT 1 FROM user_permissions up WHERE up.user_id = u.id AND up.permission = $2)
		OR EXISTS (
			SELECT 1 FROM user_groups ug
			JOIN group_permissions gp ON gp.group_id = ug.group_id
			WHERE ug.user_id = u.id AND gp.permission = $2
		)
	)
)`

func (q *Queries) UserHasPerm(ctx context.Context, userID int64, permission string) (bool, error) {
	var ok bool
	err := q.db.QueryRow(ctx, userHasPerm, userID, permission).Scan(&ok)
	return ok, err
}

const groupHasPerm = `SELECT EXISTS (
	SELECT 1 FROM groups g
	JOIN group_permissions gp ON gp.group_id = g.id
	WHERE g.name = $1 AND gp.permission = $2
)`

func (q *Queries) GroupHasPerm(ctx context.Context, group, permission string) (bool, error) {
	var ok bool
	err := q.db.QueryRow(ctx, groupHasPerm, group, permission).Scan(&ok)
	return ok, err
}

const upsertGroup = `INSERT INTO groups (name) VALUES ($1)
ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
RETURNING id`

func (q *Queries) UpsertGroup(ctx context.Context, name string) (int64, error) {
	var id int64
	err := q.db.QueryRow(ctx, upsertGroup, name).Scan(&id)
	return id, err
}

const grantGroupPermission = `INSERT INTO group_permissions (group_id, permission) VALUES ($1, $2)
ON CONFLICT DO NOTHING`

func (q *Queries) GrantGroupPermission(ctx context.Context, groupID int64, permission string) error {
	_, err := q.db.Exec(ctx, grantGroupPermission, groupID, permission)
	return err
}

const addUserToGroup = `INSERT INTO user_groups (user_id, group_id)
SELECT $1, g.id FROM groups g WHERE g.name = $2
ON CONFLICT DO NOTHING`

// AddUserToGroup reports false when the group does not exist.
func (q *Queries) AddUserToGroup(ctx context.Context, userID int64, group string) (bool, error) {
	var exists bool
	if err := q.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM groups WHERE name = $1)`, group).Scan(&exists); err != nil {
		return false, err
	}
	if !exists {
		return false, nil
	}

	_, err := q.db.Exec(ctx, addUserToGroup, userID, group)
	return true, err
}

const grantUserPermission = `INSERT INTO user_permissions (user_id, permission) VALUES ($1, $2)
ON CONFLICT DO NOTHING`

func (q *Queries) GrantUserPermission(ctx context.Context, userID int64, permission string) error {
	_, err := q.db.Exec(ctx, grantUserPermission, userID, permission)
	return err
}

func scanUser(row scanner) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Email, &u.EthAddress, &u.IsActive, &u.CreatedAt)
	return u, err
}
