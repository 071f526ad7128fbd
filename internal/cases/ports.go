package cases

import (
	"context"
	"io"

	"aquiestoy/pkg/types"
)

// Store is the persistence surface the workflow drives. The concrete
// implementation lives in internal/store.
type Store interface {
	// InTx runs fn inside a single transaction: committed when fn returns
	// nil, rolled back otherwise.
	InTx(ctx context.Context, fn func(Tx) error) error

	CaseByID(ctx context.Context, casoID int64) (*types.CasoRow, error)
	AllCases(ctx context.Context) ([]*types.CasoRow, error)
}

// Tx is the set of writes available inside a case transaction.
type Tx interface {
	InsertCaseShell(ctx context.Context, caso *types.Caso) (int64, error)
	PatchImageURLs(ctx context.Context, casoID int64, urls map[int]string) error
	UpsertCategoryLink(ctx context.Context, casoID, categoriaID int64) error
	UpdateCaseFields(ctx context.Context, casoID int64, upd *types.CasoUpdate) error
	DeleteCategoryLink(ctx context.Context, casoID int64) error
	DeleteCase(ctx context.Context, casoID int64) error
}

// BlobStore is the object storage surface. It owns the key naming convention
// for caso images.
type BlobStore interface {
	ObjectKey(casoID int64, slot int, filename string) string
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}
