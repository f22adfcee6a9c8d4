package provision

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codetroops/pos-lebanon/internal/models"
	"github.com/codetroops/pos-lebanon/internal/storage"
)

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestStore(t *testing.T) *storage.GormStore {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	uri, err := storage.ParseDatabaseURI(fmt.Sprintf("sqlite://file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)

	store, err := storage.NewGormStore(uri, newTestLogger())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestProvisioner_CreatesAndLinks(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	shop := models.NewPosConfig("Main Shop")
	bar := models.NewPosConfig("Bar")
	require.NoError(t, store.CreatePosConfig(ctx, shop))
	require.NoError(t, store.CreatePosConfig(ctx, bar))

	p := New(store, newTestLogger(), "")
	report, err := p.Run(ctx)
	require.NoError(t, err)

	assert.True(t, report.Created)
	assert.Equal(t, "Cash (LBP)", report.MethodName)
	assert.ElementsMatch(t, []uint{shop.ID, bar.ID}, report.Linked)
	assert.Empty(t, report.Skipped)

	method, err := store.FindPaymentMethodByName(ctx, "Cash (LBP)")
	require.NoError(t, err)
	assert.True(t, method.IsCashCount)

	for _, id := range []uint{shop.ID, bar.ID} {
		linked, err := store.LinkedPaymentMethodIDs(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, []uint{method.ID}, linked)
	}
}

func TestProvisioner_Idempotent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.CreatePosConfig(ctx, models.NewPosConfig("Main Shop")))

	p := New(store, newTestLogger(), "")
	first, err := p.Run(ctx)
	require.NoError(t, err)

	second, err := p.Run(ctx)
	require.NoError(t, err)

	assert.False(t, second.Created)
	assert.Equal(t, first.MethodID, second.MethodID)
	assert.Empty(t, second.Linked)
	assert.Equal(t, first.Linked, second.Skipped)
}

func TestProvisioner_ReusesExistingMethodCaseInsensitively(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	existing := &models.PaymentMethod{Name: "Shop cash (lbp)", IsCashCount: true}
	require.NoError(t, store.CreatePaymentMethod(ctx, existing))

	cfg := models.NewPosConfig("Main Shop")
	require.NoError(t, store.CreatePosConfig(ctx, cfg))
	require.NoError(t, store.LinkPaymentMethod(ctx, cfg.ID, existing.ID))

	added := models.NewPosConfig("Added Later")
	require.NoError(t, store.CreatePosConfig(ctx, added))

	report, err := New(store, newTestLogger(), "").Run(ctx)
	require.NoError(t, err)

	assert.False(t, report.Created)
	assert.Equal(t, existing.ID, report.MethodID)
	assert.Equal(t, []uint{cfg.ID}, report.Skipped)
	assert.Equal(t, []uint{added.ID}, report.Linked)
}

func TestProvisioner_NoConfigs(t *testing.T) {
	store := newTestStore(t)

	report, err := New(store, newTestLogger(), "Cash LBP").Run(context.Background())
	require.NoError(t, err)
	assert.True(t, report.Created)
	assert.Equal(t, "Cash LBP", report.MethodName)
	assert.Empty(t, report.Linked)
}

type failingStore struct {
	*storage.GormStore
}

func (failingStore) ListPosConfigs(ctx context.Context) ([]*models.PosConfig, error) {
	return nil, storage.ErrStorageUnavailable
}

func TestProvisioner_StoreFailure(t *testing.T) {
	store := failingStore{newTestStore(t)}

	_, err := New(store, newTestLogger(), "").Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, storage.ErrStorageUnavailable))
}
