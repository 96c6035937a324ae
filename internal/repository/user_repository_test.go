package repository_test

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"sports-portal/internal/approval"
	"sports-portal/internal/model"
	repo "sports-portal/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

func newAccount() (*model.User, *model.Player) {
	user := &model.User{
		Email:        "ali@college.edu.pk",
		Handle:       "ali",
		FirstName:    "Ali",
		LastName:     "Khan",
		CNIC:         "35202-1234567-1",
		PhoneNumber:  "03001234567",
		PasswordHash: "hash",
		IsPlayer:     true,
		Status:       approval.StatusPending,
	}
	player := &model.Player{
		FatherName:     "Imran Khan",
		FatherCNIC:     "35202-7654321-1",
		DOB:            time.Date(2003, 4, 12, 0, 0, 0, 0, time.UTC),
		WhatsAppNumber: "+923001234567",
		Province:       "Punjab",
		City:           "Lahore",
		Address:        "12 Mall Road",
		SportID:        uuid.New(),
		Height:         5.9,
		Weight:         70,
		CollegeRollNo:  "CS-101",
		BloodGroup:     "B+",
		Disability:     "No",
	}
	return user, player
}

func userReturning(id uuid.UUID) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{"id", "is_active", "is_approved", "created_at", "updated_at"}).
		AddRow(id.String(), true, false, now, now)
}

func TestPostgresUserRepository_CreatePlayerAccount_RetriesTakenHandle(t *testing.T) {
	db, mock := newMock(t)
	r := repo.NewPostgresUserRepository(db)
	user, player := newAccount()

	userID := uuid.New()
	playerID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users`)).
		WithArgs(user.Email, "ali", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
			sqlmock.AnyArg(), true, false, "pending", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "is_active", "is_approved", "created_at", "updated_at"}))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users`)).
		WithArgs(user.Email, "ali1", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
			sqlmock.AnyArg(), true, false, "pending", sqlmock.AnyArg()).
		WillReturnRows(userReturning(userID))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO players`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(playerID.String(), time.Now()))
	mock.ExpectCommit()

	err := r.CreatePlayerAccount(context.Background(), user, player)
	require.NoError(t, err)
	assert.Equal(t, "ali1", user.Handle)
	assert.Equal(t, userID, user.ID)
	assert.Equal(t, userID, player.UserID)
	assert.Equal(t, playerID, player.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUserRepository_CreatePlayerAccount_EmailConflictRollsBack(t *testing.T) {
	db, mock := newMock(t)
	r := repo.NewPostgresUserRepository(db)
	user, player := newAccount()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users`)).
		WillReturnError(&pgconn.PgError{Code: "23505", TableName: "users", ConstraintName: "users_email_key"})
	mock.ExpectRollback()

	err := r.CreatePlayerAccount(context.Background(), user, player)

	var conflict *repo.UniquenessConflict
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, "email", conflict.Field)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUserRepository_CreatePlayerAccount_PlayerFailureRollsBack(t *testing.T) {
	db, mock := newMock(t)
	r := repo.NewPostgresUserRepository(db)
	user, player := newAccount()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users`)).WillReturnRows(userReturning(uuid.New()))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO players`)).WillReturnError(errors.New("check constraint violated"))
	mock.ExpectRollback()

	err := r.CreatePlayerAccount(context.Background(), user, player)
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUserRepository_FindByEmail_NotFound(t *testing.T) {
	db, mock := newMock(t)
	r := repo.NewPostgresUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE lower(email) = lower($1)`)).
		WithArgs("nobody@x.com").WillReturnError(sql.ErrNoRows)

	u, err := r.FindByEmail(context.Background(), "nobody@x.com")
	assert.Nil(t, u)
	assert.ErrorIs(t, err, repo.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUserRepository_UpdatePassword_UnknownUser(t *testing.T) {
	db, mock := newMock(t)
	r := repo.NewPostgresUserRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE users SET password_hash = $1`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := r.UpdatePassword(context.Background(), uuid.New(), "hash")
	assert.ErrorIs(t, err, repo.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUserRepository_SetStatus(t *testing.T) {
	db, mock := newMock(t)
	r := repo.NewPostgresUserRepository(db)

	pending := uuid.New()
	alreadyApproved := uuid.New()
	notificationID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT status FROM users WHERE id = $1 FOR UPDATE`)).
		WithArgs(pending).WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("pending"))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE users SET status = $1`)).
		WithArgs("approved", pending).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO notifications`)).
		WithArgs("Account approved", sqlmock.AnyArg(), false, pending).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(notificationID.String(), time.Now()))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT status FROM users WHERE id = $1 FOR UPDATE`)).
		WithArgs(alreadyApproved).WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("approved"))
	mock.ExpectCommit()

	changes, err := r.SetStatus(context.Background(), []uuid.UUID{pending, alreadyApproved}, approval.StatusApproved)
	require.NoError(t, err)
	require.Len(t, changes, 1)
	assert.Equal(t, pending, changes[0].UserID)
	assert.Equal(t, approval.StatusPending, changes[0].From)
	assert.Equal(t, notificationID, changes[0].NotificationID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUserRepository_SetStatus_UnknownIDAbortsBatch(t *testing.T) {
	db, mock := newMock(t)
	r := repo.NewPostgresUserRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT status FROM users WHERE id = $1 FOR UPDATE`)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	changes, err := r.SetStatus(context.Background(), []uuid.UUID{uuid.New()}, approval.StatusDeclined)
	assert.Nil(t, changes)
	assert.ErrorIs(t, err, repo.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
