package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codetroops/pos-lebanon/internal/models"
)

func newTestStore(t *testing.T) *GormStore {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	uri, err := ParseDatabaseURI(fmt.Sprintf("sqlite://file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)

	store, err := NewGormStore(uri, logger)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestGormStore_FindUserByLogin(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := models.NewUser("alice", "Alice", "secret")
	require.NoError(t, store.CreateUser(ctx, alice))

	inactive := models.NewUser("bob", "Bob", "secret")
	inactive.Active = false
	require.NoError(t, store.CreateUser(ctx, inactive))

	tests := []struct {
		name      string
		login     string
		wantID    uint
		wantError error
	}{
		{name: "exact match", login: "alice", wantID: alice.ID},
		{name: "case-sensitive", login: "Alice", wantError: ErrNotFound},
		{name: "unknown login", login: "carol", wantError: ErrNotFound},
		{name: "empty login", login: "", wantError: ErrNotFound},
		{name: "inactive user", login: "bob", wantError: ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := store.FindUserByLogin(ctx, tt.login)
			if tt.wantError != nil {
				assert.ErrorIs(t, err, tt.wantError)
				assert.Nil(t, user)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, user.ID)
			assert.Equal(t, "Alice", user.Name)
			assert.Nil(t, user.Password, "password column must not be loaded by the lookup")
		})
	}
}

func TestGormStore_CreateUser_DuplicateLogin(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.CreateUser(ctx, models.NewUser("alice", "Alice", "")))
	err := store.CreateUser(ctx, models.NewUser("alice", "Alice Again", ""))
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestGormStore_GetPasswordHash(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	withHash := models.NewUser("alice", "Alice", "$pbkdf2-sha512$1000$abc$def")
	require.NoError(t, store.CreateUser(ctx, withHash))

	withoutHash := models.NewUser("bob", "Bob", "")
	require.NoError(t, store.CreateUser(ctx, withoutHash))

	hash, err := store.GetPasswordHash(ctx, withHash.ID)
	require.NoError(t, err)
	assert.Equal(t, "$pbkdf2-sha512$1000$abc$def", hash)

	hash, err = store.GetPasswordHash(ctx, withoutHash.ID)
	require.NoError(t, err)
	assert.Equal(t, "", hash)

	_, err = store.GetPasswordHash(ctx, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGormStore_FindEmployeeByUserID(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := models.NewUser("alice", "Alice", "secret")
	require.NoError(t, store.CreateUser(ctx, alice))
	bob := models.NewUser("bob", "Bob", "secret")
	require.NoError(t, store.CreateUser(ctx, bob))

	archived := models.NewEmployee("Alice (archived)", &alice.ID)
	archived.Active = false
	require.NoError(t, store.CreateEmployee(ctx, archived))

	first := models.NewEmployee("Alice", &alice.ID)
	require.NoError(t, store.CreateEmployee(ctx, first))
	second := models.NewEmployee("Alice Second", &alice.ID)
	require.NoError(t, store.CreateEmployee(ctx, second))

	employee, err := store.FindEmployeeByUserID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, employee.ID)

	_, err = store.FindEmployeeByUserID(ctx, bob.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGormStore_PosConfigs(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	shop := models.NewPosConfig("Shop")
	require.NoError(t, store.CreatePosConfig(ctx, shop))
	bar := models.NewPosConfig("Bar")
	require.NoError(t, store.CreatePosConfig(ctx, bar))

	got, err := store.GetPosConfig(ctx, shop.ID)
	require.NoError(t, err)
	assert.Equal(t, "Shop", got.Name)
	assert.Equal(t, models.DefaultLBPUSDRate, got.LBPUSDRate)
	assert.True(t, got.DisplayLBPTotal)

	configs, err := store.ListPosConfigs(ctx)
	require.NoError(t, err)
	require.Len(t, configs, 2)
	assert.Equal(t, shop.ID, configs[0].ID)

	_, err = store.GetPosConfig(ctx, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGormStore_UpdateCurrencySettings(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	shop := models.NewPosConfig("Shop")
	require.NoError(t, store.CreatePosConfig(ctx, shop))

	updated, err := store.UpdateCurrencySettings(ctx, shop.ID, models.CurrencySettings{
		LBPUSDRate:      90000.5,
		DisplayLBPTotal: false,
	})
	require.NoError(t, err)
	assert.Equal(t, 90000.5, updated.LBPUSDRate)
	assert.False(t, updated.DisplayLBPTotal)

	_, err = store.UpdateCurrencySettings(ctx, 9999, models.CurrencySettings{LBPUSDRate: 1})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGormStore_PaymentMethods(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.FindPaymentMethodByName(ctx, "Cash (LBP)")
	assert.ErrorIs(t, err, ErrNotFound)

	usd := &models.PaymentMethod{Name: "Cash (USD)", IsCashCount: true}
	require.NoError(t, store.CreatePaymentMethod(ctx, usd))
	lbp := models.NewLBPPaymentMethod("")
	require.NoError(t, store.CreatePaymentMethod(ctx, lbp))

	// Case-insensitive substring match, like ilike
	found, err := store.FindPaymentMethodByName(ctx, "cash (lbp)")
	require.NoError(t, err)
	assert.Equal(t, lbp.ID, found.ID)

	// Wildcards in the search are literal
	_, err = store.FindPaymentMethodByName(ctx, "Cash _LBP_")
	assert.ErrorIs(t, err, ErrNotFound)

	shop := models.NewPosConfig("Shop")
	require.NoError(t, store.CreatePosConfig(ctx, shop))

	require.NoError(t, store.LinkPaymentMethod(ctx, shop.ID, lbp.ID))
	require.NoError(t, store.LinkPaymentMethod(ctx, shop.ID, lbp.ID), "linking twice is a no-op")
	require.NoError(t, store.LinkPaymentMethod(ctx, shop.ID, usd.ID))

	ids, err := store.LinkedPaymentMethodIDs(ctx, shop.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{usd.ID, lbp.ID}, ids)

	got, err := store.GetPosConfig(ctx, shop.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{usd.ID, lbp.ID}, got.PaymentMethodIDs())

	assert.ErrorIs(t, store.LinkPaymentMethod(ctx, 9999, lbp.ID), ErrNotFound)
	assert.ErrorIs(t, store.LinkPaymentMethod(ctx, shop.ID, 9999), ErrNotFound)
}

func TestGormStore_Ping(t *testing.T) {
	store := newTestStore(t)
	assert.NoError(t, store.Ping(context.Background()))
}
