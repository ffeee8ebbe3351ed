package services

import (
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/selimv/vitrine/internal/models"
)

// account is a record in the mock directory. The credential is a bcrypt hash
// and never leaves this file.
type account struct {
	ID           string
	Name         string
	Email        string
	PasswordHash []byte
}

// accountDirectory stands in for a real backend's account database. It is an
// in-memory test double: accounts created at runtime do not survive a process
// restart, and the directory is only reachable through the session service.
type accountDirectory struct {
	mu       sync.Mutex
	accounts []account
	now      func() time.Time
}

// newAccountDirectory builds the directory pre-loaded with the well-known
// demo accounts.
func newAccountDirectory() *accountDirectory {
	d := &accountDirectory{now: time.Now}

	seeds := []struct {
		id, name, email, password string
	}{
		{"1", "Daniel", "test@example.com", "password123"},
		{"2", "Admin User", "admin@example.com", "adminpass"},
	}
	for _, s := range seeds {
		hash, err := bcrypt.GenerateFromPassword([]byte(s.password), bcrypt.DefaultCost)
		if err != nil {
			// bcrypt only fails on absurd cost/length; unreachable with seeds
			panic(err)
		}
		d.accounts = append(d.accounts, account{ID: s.id, Name: s.name, Email: s.email, PasswordHash: hash})
	}
	return d
}

// authenticate verifies the credentials and returns the account's public
// identity. Both an unknown email and a wrong password yield
// ErrInvalidCredentials, without revealing which one it was.
func (d *accountDirectory) authenticate(email, password string) (*models.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	i := d.indexOfEmail(email)
	if i < 0 {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(d.accounts[i].PasswordHash, []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	a := d.accounts[i]
	return &models.User{ID: a.ID, Name: a.Name, Email: a.Email}, nil
}

// create adds a new account. Emails are unique case-insensitively.
func (d *accountDirectory) create(name, email, password string) (*models.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.indexOfEmail(email) >= 0 {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	a := account{ID: d.nextID(), Name: name, Email: email, PasswordHash: hash}
	d.accounts = append(d.accounts, a)

	return &models.User{ID: a.ID, Name: a.Name, Email: a.Email}, nil
}

// updateProfile keeps the directory record in line with a profile edit, so a
// later login returns the current name/email. Unknown ids are ignored.
func (d *accountDirectory) updateProfile(id string, patch models.UserPatch) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for i := range d.accounts {
		if d.accounts[i].ID != id {
			continue
		}
		if patch.Name != nil {
			d.accounts[i].Name = *patch.Name
		}
		if patch.Email != nil {
			d.accounts[i].Email = *patch.Email
		}
		return
	}
}

// indexOfEmail does a case-insensitive lookup. Callers must hold d.mu.
func (d *accountDirectory) indexOfEmail(email string) int {
	for i := range d.accounts {
		if strings.EqualFold(d.accounts[i].Email, email) {
			return i
		}
	}
	return -1
}

// nextID mirrors the product store's decimal-timestamp ids. Callers must
// hold d.mu.
func (d *accountDirectory) nextID() string {
	n := d.now().UnixMilli()
	for {
		id := strconv.FormatInt(n, 10)
		taken := false
		for i := range d.accounts {
			if d.accounts[i].ID == id {
				taken = true
				break
			}
		}
		if !taken {
			return id
		}
		n++
	}
}
