package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/contacts-api/internal/domain"
	"github.com/phrazzld/contacts-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var contactRowColumns = []string{"id", "name", "email", "phone_number"}

func newMockStore(t *testing.T) (*PostgresContactStore, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})

	return NewPostgresContactStore(db, nil), mock
}

func newTestContact() *domain.Contact {
	return domain.NewContact("João Silva", domain.MustPhoneNumber("11-99999-9999"), "joao@example.com")
}

func TestPostgresContactStore_Save(t *testing.T) {
	s, mock := newMockStore(t)
	contact := newTestContact()

	mock.ExpectQuery("INSERT INTO contacts").
		WithArgs("João Silva", "joao@example.com", "11999999999", "11", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(15)))

	err := s.Save(context.Background(), contact)

	require.NoError(t, err)
	assert.Equal(t, int64(15), contact.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresContactStore_Save_MapsConstraintErrors(t *testing.T) {
	tests := []struct {
		name    string
		pgErr   *pgconn.PgError
		wantErr error
	}{
		{name: "unique", pgErr: &pgconn.PgError{Code: "23505"}, wantErr: store.ErrDuplicate},
		{name: "check", pgErr: &pgconn.PgError{Code: "23514", ConstraintName: "contacts_name_check"}, wantErr: store.ErrInvalidEntity},
		{name: "not null", pgErr: &pgconn.PgError{Code: "23502", ColumnName: "email"}, wantErr: store.ErrInvalidEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, mock := newMockStore(t)

			mock.ExpectQuery("INSERT INTO contacts").WillReturnError(tt.pgErr)

			err := s.Save(context.Background(), newTestContact())

			assert.ErrorIs(t, err, tt.wantErr)
			var storeErr *store.StoreError
			require.ErrorAs(t, err, &storeErr)
			assert.Equal(t, "contact", storeErr.Entity)
			assert.Equal(t, "save", storeErr.Operation)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostgresContactStore_Update(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		s, mock := newMockStore(t)
		contact := domain.NewContactWithID(3, "Maria", "maria@example.com", domain.MustPhoneNumber("2133334444"))

		mock.ExpectExec("UPDATE contacts SET").
			WithArgs("Maria", "maria@example.com", "2133334444", "21", sqlmock.AnyArg(), int64(3)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, s.Update(context.Background(), contact))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		s, mock := newMockStore(t)
		contact := domain.NewContactWithID(404, "Maria", "maria@example.com", domain.MustPhoneNumber("2133334444"))

		mock.ExpectExec("UPDATE contacts SET").WillReturnResult(sqlmock.NewResult(0, 0))

		err := s.Update(context.Background(), contact)

		assert.ErrorIs(t, err, store.ErrContactNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unique violation", func(t *testing.T) {
		s, mock := newMockStore(t)
		contact := domain.NewContactWithID(3, "Maria", "maria@example.com", domain.MustPhoneNumber("2133334444"))

		mock.ExpectExec("UPDATE contacts SET").
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "contacts_email_key"})

		err := s.Update(context.Background(), contact)

		assert.ErrorIs(t, err, store.ErrDuplicate)
		var storeErr *store.StoreError
		require.ErrorAs(t, err, &storeErr)
		assert.Equal(t, "update", storeErr.Operation)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresContactStore_Delete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		s, mock := newMockStore(t)
		contact := domain.NewContactWithID(3, "Maria", "maria@example.com", domain.MustPhoneNumber("2133334444"))

		mock.ExpectExec(`DELETE FROM contacts WHERE id = \$1`).
			WithArgs(int64(3)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, s.Delete(context.Background(), contact))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		s, mock := newMockStore(t)
		contact := domain.NewContactWithID(3, "Maria", "maria@example.com", domain.MustPhoneNumber("2133334444"))

		mock.ExpectExec("DELETE FROM contacts").WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, s.Delete(context.Background(), contact), store.ErrContactNotFound)
	})

	t.Run("database error", func(t *testing.T) {
		s, mock := newMockStore(t)
		dbErr := errors.New("connection reset by peer")

		mock.ExpectExec("DELETE FROM contacts").WillReturnError(dbErr)

		err := s.Delete(context.Background(), newTestContact())
		assert.ErrorIs(t, err, dbErr)
		var storeErr *store.StoreError
		require.ErrorAs(t, err, &storeErr)
		assert.Equal(t, "delete", storeErr.Operation)
	})
}

func TestPostgresContactStore_GetByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		s, mock := newMockStore(t)

		mock.ExpectQuery(`FROM contacts WHERE id = \$1`).
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows(contactRowColumns).
				AddRow(int64(1), "Ana", "ana@example.com", "11999999999"))

		contact, err := s.GetByID(context.Background(), 1)

		require.NoError(t, err)
		assert.Equal(t, int64(1), contact.ID)
		assert.Equal(t, "Ana", contact.Name)
		assert.Equal(t, "11999999999", contact.PhoneNumber.Value())
		assert.Equal(t, "11", contact.DDD())
	})

	t.Run("not found", func(t *testing.T) {
		s, mock := newMockStore(t)

		mock.ExpectQuery(`FROM contacts WHERE id = \$1`).
			WithArgs(int64(9)).
			WillReturnRows(sqlmock.NewRows(contactRowColumns))

		contact, err := s.GetByID(context.Background(), 9)

		assert.Nil(t, contact)
		assert.ErrorIs(t, err, store.ErrContactNotFound)
	})

	t.Run("corrupt phone number", func(t *testing.T) {
		s, mock := newMockStore(t)

		mock.ExpectQuery(`FROM contacts WHERE id = \$1`).
			WillReturnRows(sqlmock.NewRows(contactRowColumns).
				AddRow(int64(2), "Ana", "ana@example.com", "12"))

		_, err := s.GetByID(context.Background(), 2)

		assert.ErrorIs(t, err, store.ErrInvalidEntity)
	})
}

func TestPostgresContactStore_GetByDDD(t *testing.T) {
	t.Run("filters by ddd", func(t *testing.T) {
		s, mock := newMockStore(t)

		mock.ExpectQuery(`FROM contacts WHERE ddd = \$1 ORDER BY id`).
			WithArgs("11").
			WillReturnRows(sqlmock.NewRows(contactRowColumns).
				AddRow(int64(1), "Ana", "ana@example.com", "11999999999").
				AddRow(int64(2), "Bruno", "bruno@example.com", "1133333333"))

		contacts, err := s.GetByDDD(context.Background(), "11")

		require.NoError(t, err)
		require.Len(t, contacts, 2)
		for _, c := range contacts {
			assert.Equal(t, "11", c.DDD())
		}
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty ddd returns all", func(t *testing.T) {
		s, mock := newMockStore(t)

		mock.ExpectQuery(`FROM contacts ORDER BY id`).
			WillReturnRows(sqlmock.NewRows(contactRowColumns).
				AddRow(int64(1), "Ana", "ana@example.com", "11999999999").
				AddRow(int64(3), "Carla", "carla@example.com", "21988887777"))

		contacts, err := s.GetByDDD(context.Background(), "")

		require.NoError(t, err)
		assert.Len(t, contacts, 2)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no rows yields empty slice", func(t *testing.T) {
		s, mock := newMockStore(t)

		mock.ExpectQuery(`FROM contacts WHERE ddd = \$1`).
			WithArgs("99").
			WillReturnRows(sqlmock.NewRows(contactRowColumns))

		contacts, err := s.GetByDDD(context.Background(), "99")

		require.NoError(t, err)
		assert.NotNil(t, contacts)
		assert.Empty(t, contacts)
	})
}

func TestPostgresContactStore_GetAll_RowError(t *testing.T) {
	s, mock := newMockStore(t)
	rowErr := errors.New("network failure mid-stream")

	mock.ExpectQuery(`FROM contacts ORDER BY id`).
		WillReturnRows(sqlmock.NewRows(contactRowColumns).
			AddRow(int64(1), "Ana", "ana@example.com", "11999999999").
			RowError(0, rowErr))

	contacts, err := s.GetAll(context.Background())

	assert.Nil(t, contacts)
	assert.ErrorIs(t, err, rowErr)
}
