package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"sports-portal/internal/approval"
	"sports-portal/internal/identity"
	"sports-portal/internal/model"
)

// StatusChange records one account moved by an administrator.
type StatusChange struct {
	UserID         uuid.UUID
	From           approval.Status
	To             approval.Status
	NotificationID uuid.UUID
	Title          string
	Message        string
}

type UserRepository interface {
	CreatePlayerAccount(ctx context.Context, user *model.User, player *model.Player) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	UpdateProfile(ctx context.Context, user *model.User, player *model.Player) error
	SetStatus(ctx context.Context, ids []uuid.UUID, to approval.Status) ([]StatusChange, error)
}

type postgresUserRepository struct {
	db *sqlx.DB
}

func NewPostgresUserRepository(db *sqlx.DB) UserRepository {
	return &postgresUserRepository{db: db}
}

const userColumns = `id, email, handle, first_name, last_name, cnic, phone_number, password_hash,
	is_player, is_coach, is_staff, is_active, status, is_approved, profile_picture, last_login, created_at, updated_at`

const insertUserQuery = `
		INSERT INTO users (email, handle, first_name, last_name, cnic, phone_number, password_hash, is_player, is_coach, status, profile_picture)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (handle) DO NOTHING
		RETURNING id, is_active, is_approved, created_at, updated_at
	`

const insertPlayerQuery = `
		INSERT INTO players (user_id, father_name, father_cnic, dob, whatsapp_number, province, city, address,
			sport_id, height, weight, college_roll_no, blood_group, disability, disability_detail)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id, created_at
	`

// CreatePlayerAccount inserts the user and its player profile in one transaction.
// user.Handle is taken as the base; a taken handle is retried as base1, base2, ...
// up to identity.MaxHandleAttempts.
func (r *postgresUserRepository) CreatePlayerAccount(ctx context.Context, user *model.User, player *model.Player) error {
	base := user.Handle

	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		inserted := false
		for attempt := 0; attempt < identity.MaxHandleAttempts; attempt++ {
			handle := identity.HandleCandidate(base, attempt)
			row := tx.QueryRowxContext(ctx, insertUserQuery,
				user.Email, handle, user.FirstName, user.LastName, user.CNIC, user.PhoneNumber,
				user.PasswordHash, user.IsPlayer, user.IsCoach, string(user.Status), user.ProfilePicture,
			)
			err := row.Scan(&user.ID, &user.IsActive, &user.IsApproved, &user.CreatedAt, &user.UpdatedAt)
			if errors.Is(err, sql.ErrNoRows) {
				continue
			}
			if err != nil {
				return mapUniqueViolation(err)
			}
			user.Handle = handle
			inserted = true
			break
		}
		if !inserted {
			return &UniquenessConflict{Field: "handle"}
		}

		player.UserID = user.ID
		row := tx.QueryRowxContext(ctx, insertPlayerQuery,
			player.UserID, player.FatherName, player.FatherCNIC, player.DOB, player.WhatsAppNumber,
			player.Province, player.City, player.Address, player.SportID, player.Height, player.Weight,
			player.CollegeRollNo, player.BloodGroup, player.Disability, player.DisabilityDetail,
		)
		if err := row.Scan(&player.ID, &player.CreatedAt); err != nil {
			return mapUniqueViolation(err)
		}

		return nil
	})
}

func (r *postgresUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	query := `SELECT ` + userColumns + ` FROM users WHERE lower(email) = lower($1)`
	err := r.db.GetContext(ctx, &user, query, email)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &user, nil
}

func (r *postgresUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	err := r.db.GetContext(ctx, &user, query, id)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &user, nil
}

func (r *postgresUserRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `UPDATE users SET last_login = now() WHERE id = $1`, id)
	return err
}

func (r *postgresUserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET password_hash = $1, updated_at = now() WHERE id = $2`, passwordHash, id)
	if err != nil {
		return err
	}
	return expectOneRow(res)
}

// UpdateProfile writes the editable user fields and the player's personal fields together.
func (r *postgresUserRepository) UpdateProfile(ctx context.Context, user *model.User, player *model.Player) error {
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE users SET first_name = $1, cnic = $2, phone_number = $3, profile_picture = $4, updated_at = now()
			WHERE id = $5
		`, user.FirstName, user.CNIC, user.PhoneNumber, user.ProfilePicture, user.ID)
		if err != nil {
			return mapUniqueViolation(err)
		}
		if err := expectOneRow(res); err != nil {
			return err
		}

		res, err = tx.ExecContext(ctx, `
			UPDATE players SET father_name = $1, dob = $2, address = $3 WHERE user_id = $4
		`, player.FatherName, player.DOB, player.Address, user.ID)
		if err != nil {
			return err
		}
		return expectOneRow(res)
	})
}

// SetStatus moves every listed account to status to inside one transaction and leaves
// a personal notification for each account that actually changed. Unchanged accounts
// are skipped; an unknown id aborts the whole batch.
func (r *postgresUserRepository) SetStatus(ctx context.Context, ids []uuid.UUID, to approval.Status) ([]StatusChange, error) {
	var changes []StatusChange

	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		for _, id := range ids {
			var current approval.Status
			err := tx.GetContext(ctx, &current, `SELECT status FROM users WHERE id = $1 FOR UPDATE`, id)
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("user %s: %w", id, ErrNotFound)
			}
			if err != nil {
				return err
			}

			changed, err := approval.Transition(current, to)
			if err != nil {
				return err
			}
			if !changed {
				continue
			}

			if _, err := tx.ExecContext(ctx, `UPDATE users SET status = $1, updated_at = now() WHERE id = $2`, string(to), id); err != nil {
				return err
			}

			title, message := approval.Notice(to)
			var notificationID uuid.UUID
			err = tx.QueryRowxContext(ctx, insertNotificationQuery, title, message, false, id).Scan(&notificationID, new(time.Time))
			if err != nil {
				return err
			}

			changes = append(changes, StatusChange{
				UserID:         id,
				From:           current,
				To:             to,
				NotificationID: notificationID,
				Title:          title,
				Message:        message,
			})
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	return changes, nil
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
