package user

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type PostgresRepository struct {
	db *sql.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

const (
	getUserByIDQuery = `
		SELECT id, username, email, password, gender, profile_pic, bio, location, is_onboarded, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	getUserByEmailQuery = `
		SELECT id, username, email, password, gender, profile_pic, bio, location, is_onboarded, created_at, updated_at
		FROM users
		WHERE email = $1
	`
	insertUserQuery = `
		INSERT INTO users (id, username, email, password, gender, profile_pic, bio, location, is_onboarded, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	updateProfileQuery = `
		UPDATE users
		SET username = $1,
			gender = $2,
			bio = $3,
			location = $4,
			is_onboarded = $5,
			updated_at = $6
		WHERE id = $7
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByID(id string) (User, error) {
	row := r.db.QueryRow(getUserByIDQuery, id)
	user, err := scanUser(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return User{}, ErrNotFound
		}
		return User{}, err
	}

	return user, nil
}

func (r *PostgresRepository) GetByEmail(email string) (User, error) {
	row := r.db.QueryRow(getUserByEmailQuery, email)
	user, err := scanUser(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return User{}, ErrNotFound
		}
		return User{}, err
	}

	return user, nil
}

func (r *PostgresRepository) Create(user User) (User, error) {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := time.Now().UTC().Format(time.RFC3339)
	if user.CreatedAt == "" {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	// uniqueness of email is enforced by the unique index on users(email);
	// a violation surfaces as a driver error rather than ErrEmailExists, so
	// callers should check GetByEmail first for a friendly conflict.
	_, err := r.db.Exec(
		insertUserQuery,
		user.ID,
		user.Username,
		user.Email,
		user.Password,
		user.Gender,
		user.ProfilePic,
		user.Bio,
		user.Location,
		user.Onboarded,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		return User{}, err
	}

	return user, nil
}

func (r *PostgresRepository) UpdateProfile(id string, update ProfileUpdate) (User, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	result, err := r.db.Exec(
		updateProfileQuery,
		update.Username,
		update.Gender,
		update.Bio,
		update.Location,
		update.Onboarded,
		now,
		id,
	)
	if err != nil {
		return User{}, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return User{}, err
	}
	if affected == 0 {
		return User{}, ErrNotFound
	}

	return r.GetByID(id)
}

func scanUser(scanner rowScanner) (User, error) {
	user := User{}
	var gender sql.NullString
	var profilePic sql.NullString
	var bio sql.NullString
	var location sql.NullString
	var createdAt sql.NullString
	var updatedAt sql.NullString

	if err := scanner.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.Password,
		&gender,
		&profilePic,
		&bio,
		&location,
		&user.Onboarded,
		&createdAt,
		&updatedAt,
	); err != nil {
		return User{}, err
	}

	if gender.Valid {
		user.Gender = gender.String
	}
	if profilePic.Valid {
		user.ProfilePic = profilePic.String
	}
	if bio.Valid {
		user.Bio = bio.String
	}
	if location.Valid {
		user.Location = location.String
	}
	if createdAt.Valid {
		user.CreatedAt = createdAt.String
	}
	if updatedAt.Valid {
		user.UpdatedAt = updatedAt.String
	}

	return user, nil
}
