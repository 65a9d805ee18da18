package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/contacts-api/internal/domain"
	"github.com/phrazzld/contacts-api/internal/platform/logger"
	"github.com/phrazzld/contacts-api/internal/store"
)

const contactColumns = `id, name, email, phone_number`

// PostgresContactStore implements the store.ContactStore interface
// using a PostgreSQL database as the storage backend.
type PostgresContactStore struct {
	db     store.DBTX
	uow    *UnitOfWork
	logger *slog.Logger
}

// NewPostgresContactStore creates a new PostgreSQL implementation of the ContactStore interface.
// The returned store owns a UnitOfWork that begins transactions on db.
// If logger is nil, a default logger will be used.
func NewPostgresContactStore(db *sql.DB, logger *slog.Logger) *PostgresContactStore {
	if db == nil {
		// ALLOW-PANIC: constructor precondition
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresContactStore{
		db:     db,
		uow:    NewUnitOfWork(db, logger),
		logger: logger.With(slog.String("component", "contact_store")),
	}
}

// Ensure PostgresContactStore implements store.ContactStore interface
var _ store.ContactStore = (*PostgresContactStore)(nil)

// UnitOfWork implements store.ContactStore.UnitOfWork.
func (s *PostgresContactStore) UnitOfWork() store.UnitOfWork {
	return s.uow
}

// Save implements store.ContactStore.Save.
// It inserts the contact and sets contact.ID to the generated identity.
func (s *PostgresContactStore) Save(ctx context.Context, contact *domain.Contact) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	now := time.Now().UTC()
	query := `
		INSERT INTO contacts (name, email, phone_number, ddd, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		RETURNING id
	`

	var id int64
	err := store.Executor(ctx, s.db).QueryRowContext(
		ctx,
		query,
		contact.Name,
		contact.Email,
		contact.PhoneNumber.Value(),
		contact.DDD(),
		now,
	).Scan(&id)
	if err != nil {
		log.Error("failed to insert contact", slog.String("error", err.Error()))
		return store.NewStoreError("contact", "save", "failed to insert contact", MapError(err))
	}

	contact.ID = id
	log.Debug("contact inserted", slog.Int64("contact_id", id))
	return nil
}

// Update implements store.ContactStore.Update.
// Returns store.ErrContactNotFound if no row has the contact's ID.
func (s *PostgresContactStore) Update(ctx context.Context, contact *domain.Contact) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE contacts
		SET name = $1, email = $2, phone_number = $3, ddd = $4, updated_at = $5
		WHERE id = $6
	`

	result, err := store.Executor(ctx, s.db).ExecContext(
		ctx,
		query,
		contact.Name,
		contact.Email,
		contact.PhoneNumber.Value(),
		contact.DDD(),
		time.Now().UTC(),
		contact.ID,
	)
	if err != nil {
		log.Error("failed to update contact",
			slog.String("error", err.Error()),
			slog.Int64("contact_id", contact.ID))
		return store.NewStoreError("contact", "update", "failed to update contact", MapError(err))
	}

	if err := contactRowsAffected(result); err != nil {
		return err
	}

	log.Debug("contact updated", slog.Int64("contact_id", contact.ID))
	return nil
}

// Delete implements store.ContactStore.Delete.
// Returns store.ErrContactNotFound if no row has the contact's ID.
func (s *PostgresContactStore) Delete(ctx context.Context, contact *domain.Contact) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := store.Executor(ctx, s.db).ExecContext(
		ctx,
		`DELETE FROM contacts WHERE id = $1`,
		contact.ID,
	)
	if err != nil {
		log.Error("failed to delete contact",
			slog.String("error", err.Error()),
			slog.Int64("contact_id", contact.ID))
		return store.NewStoreError("contact", "delete", "failed to delete contact", MapError(err))
	}

	if err := contactRowsAffected(result); err != nil {
		return err
	}

	log.Debug("contact deleted", slog.Int64("contact_id", contact.ID))
	return nil
}

// GetByID implements store.ContactStore.GetByID.
// Returns store.ErrContactNotFound if the contact does not exist.
func (s *PostgresContactStore) GetByID(ctx context.Context, id int64) (*domain.Contact, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + contactColumns + ` FROM contacts WHERE id = $1`

	contact, err := scanContact(store.Executor(ctx, s.db).QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("contact not found", slog.Int64("contact_id", id))
			return nil, store.ErrContactNotFound
		}
		log.Error("failed to get contact by ID",
			slog.String("error", err.Error()),
			slog.Int64("contact_id", id))
		return nil, MapError(err)
	}

	return contact, nil
}

// GetAll implements store.ContactStore.GetAll.
// Contacts are returned in ID order.
func (s *PostgresContactStore) GetAll(ctx context.Context) ([]*domain.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts ORDER BY id`
	return s.queryContacts(ctx, query)
}

// GetByDDD implements store.ContactStore.GetByDDD.
// An empty ddd returns every contact.
func (s *PostgresContactStore) GetByDDD(ctx context.Context, ddd string) ([]*domain.Contact, error) {
	if ddd == "" {
		return s.GetAll(ctx)
	}

	query := `SELECT ` + contactColumns + ` FROM contacts WHERE ddd = $1 ORDER BY id`
	return s.queryContacts(ctx, query, ddd)
}

func (s *PostgresContactStore) queryContacts(
	ctx context.Context,
	query string,
	args ...any,
) ([]*domain.Contact, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := store.Executor(ctx, s.db).QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query contacts", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Error("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	contacts := make([]*domain.Contact, 0)
	for rows.Next() {
		contact, err := scanContact(rows)
		if err != nil {
			log.Error("failed to scan contact row", slog.String("error", err.Error()))
			return nil, err
		}
		contacts = append(contacts, contact)
	}

	if err := rows.Err(); err != nil {
		log.Error("error iterating contact rows", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	log.Debug("contacts retrieved", slog.Int("count", len(contacts)))
	return contacts, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanContact reads one contact row. A stored phone number that no longer
// parses is reported as store.ErrInvalidEntity rather than skipped.
func scanContact(row rowScanner) (*domain.Contact, error) {
	var (
		id                 int64
		name, email, phone string
	)
	if err := row.Scan(&id, &name, &email, &phone); err != nil {
		return nil, err
	}

	phoneNumber, err := domain.NewPhoneNumber(phone)
	if err != nil {
		return nil, fmt.Errorf("%w: contact %d has an invalid stored phone number", store.ErrInvalidEntity, id)
	}

	return domain.NewContactWithID(id, name, email, phoneNumber), nil
}

// contactRowsAffected converts a zero-row result into store.ErrContactNotFound.
func contactRowsAffected(result sql.Result) error {
	if err := CheckRowsAffected(result, "contact"); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.ErrContactNotFound
		}
		return err
	}
	return nil
}
