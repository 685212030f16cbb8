package repository

import (
	"fmt"

	"github.com/mentcare/records/pkg/csvstore"
	"github.com/mentcare/records/pkg/logger"
	"github.com/mentcare/records/pkg/monitoring"
	"github.com/mentcare/records/pkg/types"
)

// UserHeader is the column layout of the user store
var UserHeader = []string{"userId", "username", "password", "role", "fullName", "contactInfo"}

// UserRepository implements user persistence over the flat-file store
type UserRepository struct {
	store  *csvstore.Store
	file   string
	logger *logger.Logger
}

// NewUserRepository creates a new user repository
func NewUserRepository(store *csvstore.Store, file string, log *logger.Logger) *UserRepository {
	return &UserRepository{
		store:  store,
		file:   file,
		logger: log,
	}
}

// GetAll loads every user from the store in file order. Malformed rows are
// logged and dropped one at a time; they never block the rest of the store
// from loading.
func (r *UserRepository) GetAll() []*types.User {
	rows, err := r.store.ReadAll(r.file)
	if err != nil {
		r.logger.WithStore(r.file).WithError(err).Error("Failed to read user store")
		return nil
	}

	if len(rows) > 0 && rows[0][0] == UserHeader[0] {
		rows = rows[1:]
	}

	var users []*types.User
	for _, row := range rows {
		user, err := r.fromRow(row)
		if err != nil {
			r.logger.RowSkipped(r.file, row, err)
			monitoring.RecordRowSkipped(r.file)
			continue
		}
		users = append(users, user)
	}

	return users
}

// FindByID returns the user with the given id; absent is a normal outcome
func (r *UserRepository) FindByID(id string) (*types.User, bool) {
	for _, user := range r.GetAll() {
		if user.ID == id {
			return user, true
		}
	}
	return nil, false
}

// FindByUsername returns the user with the given username
func (r *UserRepository) FindByUsername(username string) (*types.User, bool) {
	for _, user := range r.GetAll() {
		if user.Username == username {
			return user, true
		}
	}
	return nil, false
}

// Authenticate returns the user whose username and password both match the
// supplied values exactly. Comparison is case-sensitive plaintext equality
// against the stored value; this is the sole authentication check in the
// system.
func (r *UserRepository) Authenticate(username, password string) (*types.User, bool) {
	for _, user := range r.GetAll() {
		if user.Username == username && user.Password == password {
			r.logger.AuthAttempt(username, true)
			monitoring.RecordAuthAttempt(true)
			return user, true
		}
	}

	r.logger.AuthAttempt(username, false)
	monitoring.RecordAuthAttempt(false)
	return nil, false
}

// Save writes the user, replacing any existing row with the same id. The
// whole store is rewritten from the full in-memory collection; last full
// write wins.
func (r *UserRepository) Save(user *types.User) {
	users := r.GetAll()

	kept := users[:0]
	for _, u := range users {
		if u.ID != user.ID {
			kept = append(kept, u)
		}
	}
	kept = append(kept, user)

	r.writeAll(kept)
}

// Delete removes the user with the given id
func (r *UserRepository) Delete(id string) {
	users := r.GetAll()

	kept := users[:0]
	for _, u := range users {
		if u.ID != id {
			kept = append(kept, u)
		}
	}

	r.writeAll(kept)
}

func (r *UserRepository) writeAll(users []*types.User) {
	rows := [][]string{UserHeader}
	for _, u := range users {
		rows = append(rows, userToRow(u))
	}

	if err := r.store.WriteAll(r.file, rows); err != nil {
		// Best-effort by contract: the caller is not informed.
		r.logger.WithStore(r.file).WithError(err).Error("Failed to write user store")
	}
}

// fromRow maps a stored row to a user. Columns are positional; contactInfo
// is a trailing optional. An unknown role does not fail the row — it falls
// back to the documented default.
func (r *UserRepository) fromRow(row []string) (*types.User, error) {
	if len(row) < 5 {
		return nil, fmt.Errorf("user row has %d fields, want at least 5", len(row))
	}

	role, ok := types.ParseUserRole(row[3])
	if !ok {
		r.logger.EnumFallback(r.file, "role", row[3], string(types.DefaultUserRole))
	}

	user := types.NewUser(row[0], row[1], row[2], role, row[4])
	if len(row) > 5 {
		user.ContactInfo = row[5]
	}

	return user, nil
}

func userToRow(u *types.User) []string {
	return []string{
		u.ID,
		u.Username,
		u.Password,
		string(u.Role),
		u.FullName,
		u.ContactInfo,
	}
}
