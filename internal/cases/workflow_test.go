package cases

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"aquiestoy/internal/utils"
	"aquiestoy/pkg/types"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeState is the committed contents of the fake store. InTx hands a clone to
// the transaction body and only swaps it in when the body returns nil, which
// gives the fakes real rollback behavior.
type fakeState struct {
	nextID int64
	now    time.Time
	rows   map[int64]*types.CasoRow
	links  map[int64]int64
}

func (s *fakeState) clone() *fakeState {
	c := &fakeState{
		nextID: s.nextID,
		now:    s.now,
		rows:   make(map[int64]*types.CasoRow, len(s.rows)),
		links:  make(map[int64]int64, len(s.links)),
	}
	for id, row := range s.rows {
		copied := *row
		c.rows[id] = &copied
	}
	for caso, categoria := range s.links {
		c.links[caso] = categoria
	}
	return c
}

type fakeStore struct {
	state      *fakeState
	categorias map[int64]string
	txCount    int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		state: &fakeState{
			nextID: 1,
			now:    time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
			rows:   make(map[int64]*types.CasoRow),
			links:  make(map[int64]int64),
		},
		categorias: map[int64]string{
			1: "Salud",
			2: "Educación",
		},
	}
}

func (s *fakeStore) InTx(ctx context.Context, fn func(Tx) error) error {
	s.txCount++
	work := s.state.clone()
	if err := fn(&fakeTx{state: work, categorias: s.categorias}); err != nil {
		return err
	}
	s.state = work
	return nil
}

func (s *fakeStore) CaseByID(ctx context.Context, casoID int64) (*types.CasoRow, error) {
	row, ok := s.state.rows[casoID]
	if !ok {
		return nil, types.ErrCasoNotFound
	}
	copied := *row
	return &copied, nil
}

func (s *fakeStore) AllCases(ctx context.Context) ([]*types.CasoRow, error) {
	rows := make([]*types.CasoRow, 0, len(s.state.rows))
	for _, row := range s.state.rows {
		copied := *row
		rows = append(rows, &copied)
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].FechaCreacion.Equal(rows[j].FechaCreacion) {
			return rows[i].FechaCreacion.After(rows[j].FechaCreacion)
		}
		return rows[i].ID < rows[j].ID
	})
	return rows, nil
}

type fakeTx struct {
	state      *fakeState
	categorias map[int64]string
}

func (t *fakeTx) InsertCaseShell(ctx context.Context, caso *types.Caso) (int64, error) {
	caso.FechaCreacion = t.state.now
	t.state.now = t.state.now.Add(time.Minute)

	id := t.state.nextID
	t.state.nextID++
	caso.ID = id

	t.state.rows[id] = &types.CasoRow{Caso: *caso}
	return id, nil
}

func (t *fakeTx) PatchImageURLs(ctx context.Context, casoID int64, urls map[int]string) error {
	row, ok := t.state.rows[casoID]
	if !ok {
		return types.ErrCasoNotFound
	}
	for slot, url := range urls {
		u := url
		switch slot {
		case 1:
			row.Imagen1 = &u
		case 2:
			row.Imagen2 = &u
		case 3:
			row.Imagen3 = &u
		case 4:
			row.Imagen4 = &u
		}
	}
	return nil
}

func (t *fakeTx) UpsertCategoryLink(ctx context.Context, casoID, categoriaID int64) error {
	row, ok := t.state.rows[casoID]
	if !ok {
		return types.ErrCasoNotFound
	}
	t.state.links[casoID] = categoriaID

	id := categoriaID
	row.IDCategoria = &id
	if nombre, ok := t.categorias[categoriaID]; ok {
		row.NombreCategoria = &nombre
	} else {
		row.NombreCategoria = nil
	}
	return nil
}

func (t *fakeTx) UpdateCaseFields(ctx context.Context, casoID int64, upd *types.CasoUpdate) error {
	row, ok := t.state.rows[casoID]
	if !ok {
		return types.ErrCasoNotFound
	}
	if upd.Titulo != nil {
		row.Titulo = *upd.Titulo
	}
	if upd.Descripcion != nil {
		row.Descripcion = *upd.Descripcion
	}
	if upd.MontoObjetivo != nil {
		row.MontoObjetivo = *upd.MontoObjetivo
	}
	if upd.Entidad != nil {
		row.Entidad = *upd.Entidad
	}
	if upd.Direccion != nil {
		row.Direccion = *upd.Direccion
	}
	if upd.FechaLimite != nil {
		row.FechaLimite = *upd.FechaLimite
	}
	if upd.IDEstado != nil {
		row.IDEstado = *upd.IDEstado
	}
	if upd.EstaAbierto != nil {
		row.EstaAbierto = utils.IntPtr(*upd.EstaAbierto)
	}
	return nil
}

func (t *fakeTx) DeleteCategoryLink(ctx context.Context, casoID int64) error {
	delete(t.state.links, casoID)
	if row, ok := t.state.rows[casoID]; ok {
		row.IDCategoria = nil
		row.NombreCategoria = nil
	}
	return nil
}

func (t *fakeTx) DeleteCase(ctx context.Context, casoID int64) error {
	delete(t.state.rows, casoID)
	return nil
}

// fakeBlob records uploads and deletes, and can reject a single slot to
// simulate a mid-sequence storage failure.
type fakeBlob struct {
	failSlot int
	slotFor  map[string]int
	uploads  []string
	deletes  []string
}

func newFakeBlob() *fakeBlob {
	return &fakeBlob{slotFor: make(map[string]int)}
}

func (b *fakeBlob) ObjectKey(casoID int64, slot int, filename string) string {
	ext := strings.TrimPrefix(filepath.Ext(filename), ".")
	key := fmt.Sprintf("cases/case_%d/image_%d_fake.%s", casoID, slot, ext)
	b.slotFor[key] = slot
	return key
}

func (b *fakeBlob) Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	if b.failSlot != 0 && b.slotFor[key] == b.failSlot {
		return "", &types.StorageError{Key: key, Err: errors.New("upload rejected")}
	}
	b.uploads = append(b.uploads, key)
	return "https://bucket.test/" + key, nil
}

func (b *fakeBlob) Delete(ctx context.Context, key string) error {
	b.deletes = append(b.deletes, key)
	return nil
}

func newTestWorkflow() (*Workflow, *fakeStore, *fakeBlob) {
	store := newFakeStore()
	blob := newFakeBlob()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	return NewWorkflow(store, blob, logger), store, blob
}

func validInput() CreateCaseInput {
	return CreateCaseInput{
		IDBeneficiario: 7,
		IDCategoria:    1,
		Titulo:         "Tratamiento médico",
		Descripcion:    "Apoyo para cirugía",
		MontoObjetivo:  25000,
		Entidad:        "Hospital General",
		Direccion:      "Av. Reforma 100",
		FechaLimite:    "2026-12-31",
	}
}

func TestCreateCaseWithoutImages(t *testing.T) {
	wf, _, blob := newTestWorkflow()

	result, err := wf.Create(context.Background(), validInput())
	require.NoError(t, err)

	assert.Equal(t, int64(1), result.CasoID)
	assert.Zero(t, result.ImagenesSubidas)
	assert.Empty(t, blob.uploads)

	assert.Equal(t, "Tratamiento médico", result.Caso.Titulo)
	assert.Equal(t, "Activo", result.Caso.Estado.Nombre)
	assert.Equal(t, "Salud", utils.PtrString(result.Caso.Categoria.Nombre))
	assert.Nil(t, result.Caso.Imagenes.Imagen1)
}

func TestCreateCaseUploadsOnlySuppliedSlots(t *testing.T) {
	wf, _, blob := newTestWorkflow()

	input := validInput()
	input.Imagenes = []ImageUpload{
		{Slot: 2, Filename: "frente.jpg", ContentType: "image/jpeg", Body: strings.NewReader("x")},
		{Slot: 4, Filename: "detalle.png", ContentType: "image/png", Body: strings.NewReader("y")},
	}

	result, err := wf.Create(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, 2, result.ImagenesSubidas)
	assert.Len(t, blob.uploads, 2)

	assert.Nil(t, result.Caso.Imagenes.Imagen1)
	assert.Equal(t, "https://bucket.test/cases/case_1/image_2_fake.jpg", utils.PtrString(result.Caso.Imagenes.Imagen2))
	assert.Nil(t, result.Caso.Imagenes.Imagen3)
	assert.Equal(t, "https://bucket.test/cases/case_1/image_4_fake.png", utils.PtrString(result.Caso.Imagenes.Imagen4))
}

func TestCreateCaseSkipsEmptyFilenames(t *testing.T) {
	wf, _, blob := newTestWorkflow()

	input := validInput()
	input.Imagenes = []ImageUpload{
		{Slot: 1, Filename: ""},
		{Slot: 3, Filename: "foto.jpg", ContentType: "image/jpeg", Body: strings.NewReader("x")},
	}

	result, err := wf.Create(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, 1, result.ImagenesSubidas)
	assert.Len(t, blob.uploads, 1)
	assert.Nil(t, result.Caso.Imagenes.Imagen1)
	assert.NotNil(t, result.Caso.Imagenes.Imagen3)
}

func TestCreateCaseUploadFailureRollsBackAndCompensates(t *testing.T) {
	wf, store, blob := newTestWorkflow()
	blob.failSlot = 3

	input := validInput()
	input.Imagenes = []ImageUpload{
		{Slot: 1, Filename: "a.jpg", ContentType: "image/jpeg", Body: strings.NewReader("a")},
		{Slot: 2, Filename: "b.jpg", ContentType: "image/jpeg", Body: strings.NewReader("b")},
		{Slot: 3, Filename: "c.jpg", ContentType: "image/jpeg", Body: strings.NewReader("c")},
	}

	_, err := wf.Create(context.Background(), input)
	require.Error(t, err)

	var creationErr *types.CaseCreationError
	require.ErrorAs(t, err, &creationErr)
	var storageErr *types.StorageError
	assert.ErrorAs(t, err, &storageErr)

	// No caso survives the aborted transaction.
	_, err = wf.Get(context.Background(), 1)
	assert.ErrorIs(t, err, types.ErrCasoNotFound)
	assert.Empty(t, store.state.links)

	// The two blobs that made it to storage get cleaned up.
	assert.ElementsMatch(t, blob.uploads, blob.deletes)
	assert.Len(t, blob.deletes, 2)
}

func TestCreateCaseRejectsOutOfRangeSlot(t *testing.T) {
	wf, _, _ := newTestWorkflow()

	input := validInput()
	input.Imagenes = []ImageUpload{
		{Slot: 5, Filename: "x.jpg", ContentType: "image/jpeg", Body: strings.NewReader("x")},
	}

	_, err := wf.Create(context.Background(), input)

	var verr *types.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "imagen", verr.Field)
}

func TestCreateCaseRejectsBadFechaLimite(t *testing.T) {
	wf, store, _ := newTestWorkflow()

	input := validInput()
	input.FechaLimite = "31/12/2026"

	_, err := wf.Create(context.Background(), input)

	var verr *types.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "fechaLimite", verr.Field)
	assert.Zero(t, store.txCount)
}

func TestUpdatePartialLeavesOtherFields(t *testing.T) {
	wf, _, _ := newTestWorkflow()

	created, err := wf.Create(context.Background(), validInput())
	require.NoError(t, err)

	view, err := wf.Update(context.Background(), created.CasoID, &types.CasoUpdate{
		Titulo: utils.StringPtr("Título corregido"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Título corregido", view.Titulo)
	assert.Equal(t, created.Caso.Descripcion, view.Descripcion)
	assert.Equal(t, created.Caso.MontoObjetivo, view.MontoObjetivo)
	assert.Equal(t, created.Caso.Estado, view.Estado)
	assert.Equal(t, created.Caso.Categoria, view.Categoria)
}

func TestUpdateEmptyIsNoop(t *testing.T) {
	wf, store, _ := newTestWorkflow()

	created, err := wf.Create(context.Background(), validInput())
	require.NoError(t, err)
	txAfterCreate := store.txCount

	for i := 0; i < 2; i++ {
		view, err := wf.Update(context.Background(), created.CasoID, &types.CasoUpdate{})
		require.NoError(t, err)
		assert.Equal(t, created.Caso, view)
	}

	assert.Equal(t, txAfterCreate, store.txCount)
}

func TestUpdateMovesCategoryLink(t *testing.T) {
	wf, store, _ := newTestWorkflow()

	created, err := wf.Create(context.Background(), validInput())
	require.NoError(t, err)

	view, err := wf.Update(context.Background(), created.CasoID, &types.CasoUpdate{
		IDCategoria: utils.Int64Ptr(2),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(2), *view.Categoria.ID)
	assert.Equal(t, "Educación", utils.PtrString(view.Categoria.Nombre))
	assert.Equal(t, int64(2), store.state.links[created.CasoID])
}

func TestUpdateUnknownCaso(t *testing.T) {
	wf, _, _ := newTestWorkflow()

	_, err := wf.Update(context.Background(), 999, &types.CasoUpdate{
		Titulo: utils.StringPtr("no importa"),
	})
	assert.ErrorIs(t, err, types.ErrCasoNotFound)
}

func TestDeleteRemovesCasoAndLink(t *testing.T) {
	wf, store, _ := newTestWorkflow()

	created, err := wf.Create(context.Background(), validInput())
	require.NoError(t, err)

	titulo, err := wf.Delete(context.Background(), created.CasoID)
	require.NoError(t, err)
	assert.Equal(t, "Tratamiento médico", titulo)

	_, err = wf.Get(context.Background(), created.CasoID)
	assert.ErrorIs(t, err, types.ErrCasoNotFound)
	assert.Empty(t, store.state.links)
}

func TestDeleteUnknownCaso(t *testing.T) {
	wf, _, _ := newTestWorkflow()

	_, err := wf.Delete(context.Background(), 404)
	assert.ErrorIs(t, err, types.ErrCasoNotFound)
}

func TestListNewestFirst(t *testing.T) {
	wf, _, _ := newTestWorkflow()

	for i := 1; i <= 3; i++ {
		input := validInput()
		input.Titulo = fmt.Sprintf("Caso %d", i)
		_, err := wf.Create(context.Background(), input)
		require.NoError(t, err)
	}

	views, err := wf.List(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 3)

	assert.Equal(t, "Caso 3", views[0].Titulo)
	assert.Equal(t, "Caso 2", views[1].Titulo)
	assert.Equal(t, "Caso 1", views[2].Titulo)
}
