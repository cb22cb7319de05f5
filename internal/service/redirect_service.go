package service

import (
	"errors"
	"strings"

	"github.com/startupsaga/internal/db"
	"gorm.io/gorm"
)

// ErrRedirectNotFound signals that no redirect is recorded for a path.
var ErrRedirectNotFound = errors.New("redirect not found")

// RedirectService owns the ledger of slug-change redirects. Records are
// append-only: once a from_path is claimed it is never overwritten, so an
// established redirect cannot be clobbered by later slug churn.
type RedirectService struct {
	db *gorm.DB
}

// NewRedirectService returns a new RedirectService instance.
func NewRedirectService(gdb *gorm.DB) *RedirectService {
	return &RedirectService{db: gdb}
}

// entityPath builds the canonical public path for a slug. The format is
// exactly /{prefix}/{slug}/ with single leading and trailing slashes.
func entityPath(prefix, slug string) string {
	return "/" + strings.Trim(prefix, "/") + "/" + slug + "/"
}

// NormalizeRedirectPath canonicalizes an incoming path to the stored form:
// a leading slash and a single trailing slash.
func NormalizeRedirectPath(path string) string {
	p := strings.TrimSpace(path)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	p = strings.TrimSuffix(p, "/")
	if p == "" {
		return "/"
	}
	return p + "/"
}

// Register records a permanent redirect from the old slug's path to the new
// one. Empty or equal slugs are defined no-ops. Creation is idempotent:
// when a record for from_path already exists it is left untouched.
// tx is the transaction of the entity mutation that triggered the change.
func (s *RedirectService) Register(tx *gorm.DB, oldSlug, newSlug, prefix string) error {
	if oldSlug == "" || newSlug == "" || oldSlug == newSlug {
		return nil
	}

	fromPath := entityPath(prefix, oldSlug)
	toPath := entityPath(prefix, newSlug)
	if fromPath == toPath {
		return nil
	}

	var record db.Redirect
	return tx.Where(db.Redirect{FromPath: fromPath}).
		Attrs(db.Redirect{ToPath: toPath, IsPermanent: true}).
		FirstOrCreate(&record).Error
}

// Resolve looks up a redirect for path. Resolution is a single hop; chains
// are never followed. A miss returns ErrRedirectNotFound, which callers
// treat as "proceed to normal not-found handling".
func (s *RedirectService) Resolve(path string) (*db.Redirect, error) {
	var record db.Redirect
	if err := s.db.Where("from_path = ?", NormalizeRedirectPath(path)).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRedirectNotFound
		}
		return nil, err
	}
	return &record, nil
}

// List returns the whole ledger ordered by from_path, for the dashboard.
func (s *RedirectService) List() ([]db.Redirect, error) {
	var records []db.Redirect
	if err := s.db.Order("from_path asc").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
