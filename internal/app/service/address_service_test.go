package service

import (
	"testing"

	"github.com/adhivedhanlr-maker/ecommerce-backend/internal/app/model"
	"github.com/adhivedhanlr-maker/ecommerce-backend/internal/app/repository"
	"github.com/adhivedhanlr-maker/ecommerce-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupAddressServiceTest(t *testing.T) (AddressService, *model.User, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	addressRepo := repository.NewAddressRepository(testDB)
	addressService := NewAddressService(addressRepo)

	user := &model.User{
		Email:        "addr@example.com",
		PasswordHash: "hash",
		Name:         "Address User",
		Role:         model.RoleUser,
	}
	require.NoError(t, testDB.Create(user).Error)

	return addressService, user, testDB
}

func validAddressInput() AddressInput {
	return AddressInput{
		Label:     "Home",
		Recipient: "Address User",
		Phone:     "9876543210",
		Line1:     "12 MG Road",
		City:      "Bengaluru",
		State:     "Karnataka",
		Pincode:   "560001",
	}
}

func TestAddressService_CreateAddress(t *testing.T) {
	addressService, user, _ := setupAddressServiceTest(t)

	address, err := addressService.CreateAddress(user.ID, validAddressInput())
	require.NoError(t, err)
	assert.Equal(t, user.ID, address.UserID)
	assert.Equal(t, "560001", address.Pincode)
	assert.False(t, address.IsDefault)
}

func TestAddressService_CreateAddress_Invalid(t *testing.T) {
	addressService, user, _ := setupAddressServiceTest(t)

	missingRecipient := validAddressInput()
	missingRecipient.Recipient = ""
	_, err := addressService.CreateAddress(user.ID, missingRecipient)
	assert.ErrorIs(t, err, ErrInvalidAddress)

	badPincode := validAddressInput()
	badPincode.Pincode = "0123"
	_, err = addressService.CreateAddress(user.ID, badPincode)
	assert.ErrorIs(t, err, ErrInvalidAddress)
}

func TestAddressService_DefaultIsExclusive(t *testing.T) {
	addressService, user, _ := setupAddressServiceTest(t)

	first := validAddressInput()
	first.IsDefault = true
	a1, err := addressService.CreateAddress(user.ID, first)
	require.NoError(t, err)
	assert.True(t, a1.IsDefault)

	second := validAddressInput()
	second.Label = "Office"
	second.Pincode = "560095"
	second.IsDefault = true
	a2, err := addressService.CreateAddress(user.ID, second)
	require.NoError(t, err)
	assert.True(t, a2.IsDefault)

	addresses, err := addressService.ListAddresses(user.ID)
	require.NoError(t, err)
	require.Len(t, addresses, 2)

	defaults := 0
	for _, a := range addresses {
		if a.IsDefault {
			defaults++
			assert.Equal(t, a2.ID, a.ID)
		}
	}
	assert.Equal(t, 1, defaults)
}

func TestAddressService_SetDefaultAddress(t *testing.T) {
	addressService, user, testDB := setupAddressServiceTest(t)

	first := validAddressInput()
	first.IsDefault = true
	a1, err := addressService.CreateAddress(user.ID, first)
	require.NoError(t, err)

	second := validAddressInput()
	second.Label = "Office"
	a2, err := addressService.CreateAddress(user.ID, second)
	require.NoError(t, err)

	promoted, err := addressService.SetDefaultAddress(user.ID, a2.ID)
	require.NoError(t, err)
	assert.True(t, promoted.IsDefault)

	var reloaded model.Address
	require.NoError(t, testDB.First(&reloaded, a1.ID).Error)
	assert.False(t, reloaded.IsDefault)

	// Promoting an address someone else owns is refused
	stranger := &model.User{
		Email:        "stranger@example.com",
		PasswordHash: "hash",
		Name:         "Stranger",
		Role:         model.RoleUser,
	}
	require.NoError(t, testDB.Create(stranger).Error)

	_, err = addressService.SetDefaultAddress(stranger.ID, a2.ID)
	assert.ErrorIs(t, err, ErrNotAddressOwner)

	_, err = addressService.SetDefaultAddress(user.ID, 9999)
	assert.ErrorIs(t, err, ErrAddressNotFound)
}

func TestAddressService_UpdateAndDelete(t *testing.T) {
	addressService, user, testDB := setupAddressServiceTest(t)

	address, err := addressService.CreateAddress(user.ID, validAddressInput())
	require.NoError(t, err)

	updated, err := addressService.UpdateAddress(user.ID, address.ID, AddressInput{
		Label: "Weekend Home",
		City:  "Mysuru",
	})
	require.NoError(t, err)
	assert.Equal(t, "Weekend Home", updated.Label)
	assert.Equal(t, "Mysuru", updated.City)
	assert.Equal(t, "12 MG Road", updated.Line1)

	stranger := &model.User{
		Email:        "stranger@example.com",
		PasswordHash: "hash",
		Name:         "Stranger",
		Role:         model.RoleUser,
	}
	require.NoError(t, testDB.Create(stranger).Error)

	err = addressService.DeleteAddress(stranger.ID, address.ID)
	assert.ErrorIs(t, err, ErrNotAddressOwner)

	require.NoError(t, addressService.DeleteAddress(user.ID, address.ID))

	addresses, err := addressService.ListAddresses(user.ID)
	require.NoError(t, err)
	assert.Empty(t, addresses)
}
