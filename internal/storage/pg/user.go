package pg

import (
	"database/sql"
	"errors"
	"time"

	"github.com/converse-dev/converse/internal/domain"
	internal_errors "github.com/converse-dev/converse/internal/errors"

	"github.com/lib/pq"
)

const pqUniqueViolation = "23505"

func (s *Storage) CreateUser(user *domain.User) (*domain.User, error) {
	createdTs := time.Now().UTC().Round(time.Microsecond) // database anyway round to microsecond
	err := s.db.QueryRow(`
	INSERT INTO users(username, email, password_hash, avatar, created_at)
	VALUES($1, $2, $3, $4, $5)
	RETURNING id`,
		user.Username, user.Email, user.PassHash, user.Avatar, createdTs).Scan(&user.Id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return nil, internal_errors.UserAlreadyExists
		}
		return nil, err
	}
	user.CreatedAt = createdTs
	return user, nil
}

func (s *Storage) GetUser(id domain.UserId) (*domain.User, error) {
	var user domain.User
	err := s.db.QueryRow(`
	SELECT id, username, email, password_hash, avatar, created_at
	FROM users
	WHERE id = $1`, id).Scan(&user.Id, &user.Username, &user.Email, &user.PassHash, &user.Avatar, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, internal_errors.UserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *Storage) GetUserByUsernameOrEmail(usernameOrEmail string) (*domain.User, error) {
	var user domain.User
	err := s.db.QueryRow(`
	SELECT id, username, email, password_hash, avatar, created_at
	FROM users
	WHERE username = $1 OR email = $1`, usernameOrEmail).Scan(&user.Id, &user.Username, &user.Email, &user.PassHash, &user.Avatar, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, internal_errors.UserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *Storage) SearchUsers(query string) ([]*domain.User, error) {
	rows, err := s.db.Query(`
	SELECT id, username, email, password_hash, avatar, created_at
	FROM users
	WHERE username ILIKE '%' || $1 || '%'
	ORDER BY username
	LIMIT 20`, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(&user.Id, &user.Username, &user.Email, &user.PassHash, &user.Avatar, &user.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, &user)
	}
	return users, rows.Err()
}
