package cases

import (
	"context"
	"io"
	"strings"
	"time"

	"aquiestoy/pkg/types"

	"github.com/sirupsen/logrus"
)

// Workflow sequences the multi-step caso operations across the relational
// store and the blob store.
type Workflow struct {
	store  Store
	blobs  BlobStore
	logger *logrus.Logger
}

func NewWorkflow(store Store, blobs BlobStore, logger *logrus.Logger) *Workflow {
	return &Workflow{
		store:  store,
		blobs:  blobs,
		logger: logger,
	}
}

// ImageUpload is one optional image slot of a create request. Slots with an
// empty filename are skipped.
type ImageUpload struct {
	Slot        int
	Filename    string
	ContentType string
	Body        io.Reader
}

type CreateCaseInput struct {
	IDBeneficiario int64
	IDCategoria    int64
	Titulo         string
	Descripcion    string
	MontoObjetivo  float64
	Entidad        string
	Direccion      string
	FechaLimite    string
	Imagenes       []ImageUpload
}

type CreateCaseResult struct {
	CasoID          int64
	ImagenesSubidas int
	Caso            *types.CaseView
}

// Create inserts the caso shell, uploads the supplied images, patches the
// generated URLs onto the row, and links the category, all inside one
// transaction. Any failure rolls the whole sequence back and triggers a
// best-effort delete of blobs uploaded so far, so a caso either exists fully
// imaged and categorized or not at all.
func (w *Workflow) Create(ctx context.Context, input CreateCaseInput) (*CreateCaseResult, error) {

	fechaLimite, err := parseFechaLimite(input.FechaLimite)
	if err != nil {
		return nil, err
	}

	var (
		casoID   int64
		uploaded []string
		subidas  int
	)

	err = w.store.InTx(ctx, func(tx Tx) error {
		caso := &types.Caso{
			IDBeneficiario: input.IDBeneficiario,
			IDEstado:       int(types.CasoEstadoActivo),
			Titulo:         input.Titulo,
			Descripcion:    input.Descripcion,
			MontoObjetivo:  input.MontoObjetivo,
			Entidad:        input.Entidad,
			Direccion:      input.Direccion,
			FechaLimite:    fechaLimite,
		}

		id, err := tx.InsertCaseShell(ctx, caso)
		if err != nil {
			return err
		}
		casoID = id

		urls := make(map[int]string, len(input.Imagenes))
		for _, img := range input.Imagenes {
			if img.Slot < 1 || img.Slot > 4 {
				return &types.ValidationError{Field: "imagen", Reason: "slot must be between 1 and 4"}
			}
			if img.Filename == "" {
				continue
			}

			key := w.blobs.ObjectKey(casoID, img.Slot, img.Filename)
			url, err := w.blobs.Upload(ctx, key, img.Body, img.ContentType)
			if err != nil {
				return err
			}

			uploaded = append(uploaded, key)
			urls[img.Slot] = url
			subidas++
		}

		if len(urls) > 0 {
			if err := tx.PatchImageURLs(ctx, casoID, urls); err != nil {
				return err
			}
		}

		return tx.UpsertCategoryLink(ctx, casoID, input.IDCategoria)
	})
	if err != nil {
		w.deleteUploaded(ctx, uploaded)
		if verr, ok := err.(*types.ValidationError); ok {
			return nil, verr
		}
		return nil, &types.CaseCreationError{Err: err}
	}

	row, err := w.store.CaseByID(ctx, casoID)
	if err != nil {
		return nil, err
	}

	return &CreateCaseResult{
		CasoID:          casoID,
		ImagenesSubidas: subidas,
		Caso:            BuildCaseView(row),
	}, nil
}

// deleteUploaded compensates an aborted creation by removing blobs that made
// it to storage before the failure. Failures here leave orphans; they are
// logged, never surfaced.
func (w *Workflow) deleteUploaded(ctx context.Context, keys []string) {
	for _, key := range keys {
		if err := w.blobs.Delete(ctx, key); err != nil {
			w.logger.WithError(err).
				WithField("object_key", key).
				Error("failed to delete uploaded image after aborted caso creation")
		}
	}
}

// Update applies the supplied fields to an existing caso. An empty field set
// skips the transaction entirely and just re-reads the row.
func (w *Workflow) Update(ctx context.Context, casoID int64, upd *types.CasoUpdate) (*types.CaseView, error) {

	if _, err := w.store.CaseByID(ctx, casoID); err != nil {
		return nil, err
	}

	if !upd.Empty() {
		err := w.store.InTx(ctx, func(tx Tx) error {
			if err := tx.UpdateCaseFields(ctx, casoID, upd); err != nil {
				return err
			}
			if upd.IDCategoria != nil {
				return tx.UpsertCategoryLink(ctx, casoID, *upd.IDCategoria)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	row, err := w.store.CaseByID(ctx, casoID)
	if err != nil {
		return nil, err
	}

	return BuildCaseView(row), nil
}

// Delete removes the caso and its category link, link first to satisfy the
// foreign key. Returns the deleted caso's title for confirmation messaging.
func (w *Workflow) Delete(ctx context.Context, casoID int64) (string, error) {

	row, err := w.store.CaseByID(ctx, casoID)
	if err != nil {
		return "", err
	}

	err = w.store.InTx(ctx, func(tx Tx) error {
		if err := tx.DeleteCategoryLink(ctx, casoID); err != nil {
			return err
		}
		return tx.DeleteCase(ctx, casoID)
	})
	if err != nil {
		return "", err
	}

	return row.Titulo, nil
}

func (w *Workflow) Get(ctx context.Context, casoID int64) (*types.CaseView, error) {
	row, err := w.store.CaseByID(ctx, casoID)
	if err != nil {
		return nil, err
	}
	return BuildCaseView(row), nil
}

func (w *Workflow) List(ctx context.Context) ([]*types.CaseView, error) {
	rows, err := w.store.AllCases(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]*types.CaseView, 0, len(rows))
	for _, row := range rows {
		views = append(views, BuildCaseView(row))
	}
	return views, nil
}

// Accepted deadline layouts, broadest first. Bare dates mean midnight UTC.
var fechaLimiteLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseFechaLimite(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, &types.ValidationError{Field: "fechaLimite", Reason: "must not be empty"}
	}

	for _, layout := range fechaLimiteLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, &types.ValidationError{Field: "fechaLimite", Reason: "must be an ISO-8601 timestamp"}
}
