package service

import (
	"errors"

	"github.com/adhivedhanlr-maker/ecommerce-backend/internal/app/model"
	"github.com/adhivedhanlr-maker/ecommerce-backend/internal/app/repository"
	"github.com/adhivedhanlr-maker/ecommerce-backend/pkg/logger"
	"github.com/adhivedhanlr-maker/ecommerce-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrAddressNotFound = errors.New("address not found")
	ErrNotAddressOwner = errors.New("user does not own this address")
	ErrInvalidAddress  = errors.New("invalid address details")
)

// AddressInput carries the writable address fields from the API layer.
type AddressInput struct {
	Label     string
	Recipient string
	Phone     string
	Line1     string
	Line2     string
	City      string
	State     string
	Pincode   string
	IsDefault bool
}

type AddressService interface {
	ListAddresses(userID uint) ([]model.Address, error)
	CreateAddress(userID uint, input AddressInput) (*model.Address, error)
	UpdateAddress(userID, addressID uint, input AddressInput) (*model.Address, error)
	SetDefaultAddress(userID, addressID uint) (*model.Address, error)
	DeleteAddress(userID, addressID uint) error
}

type addressService struct {
	addressRepo repository.AddressRepository
}

func NewAddressService(addressRepo repository.AddressRepository) AddressService {
	return &addressService{addressRepo: addressRepo}
}

func (s *addressService) ListAddresses(userID uint) ([]model.Address, error) {
	addresses, err := s.addressRepo.FindByUserID(userID)
	if err != nil {
		logger.Error("Failed to list addresses", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return addresses, nil
}

func (s *addressService) CreateAddress(userID uint, input AddressInput) (*model.Address, error) {
	logger.Info("Creating address", map[string]interface{}{
		"user_id": userID,
		"label":   input.Label,
	})

	if input.Recipient == "" || input.Line1 == "" || input.City == "" || input.State == "" {
		return nil, ErrInvalidAddress
	}
	if !util.IsValidPincode(input.Pincode) {
		return nil, ErrInvalidAddress
	}

	if input.IsDefault {
		if err := s.addressRepo.ClearDefault(userID); err != nil {
			logger.Error("Failed to clear default address flag", err, map[string]interface{}{
				"user_id": userID,
			})
			return nil, err
		}
	}

	address := &model.Address{
		UserID:    userID,
		Label:     input.Label,
		Recipient: input.Recipient,
		Phone:     input.Phone,
		Line1:     input.Line1,
		Line2:     input.Line2,
		City:      input.City,
		State:     input.State,
		Pincode:   input.Pincode,
		IsDefault: input.IsDefault,
	}

	if err := s.addressRepo.Create(address); err != nil {
		logger.Error("Failed to create address", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Info("Address created", map[string]interface{}{
		"address_id": address.ID,
		"user_id":    userID,
	})
	return address, nil
}

func (s *addressService) UpdateAddress(userID, addressID uint, input AddressInput) (*model.Address, error) {
	logger.Info("Updating address", map[string]interface{}{
		"address_id": addressID,
		"user_id":    userID,
	})

	address, err := s.addressRepo.FindByID(addressID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAddressNotFound
		}
		return nil, err
	}
	if address.UserID != userID {
		return nil, ErrNotAddressOwner
	}

	if input.Pincode != "" && !util.IsValidPincode(input.Pincode) {
		return nil, ErrInvalidAddress
	}

	if input.Label != "" {
		address.Label = input.Label
	}
	if input.Recipient != "" {
		address.Recipient = input.Recipient
	}
	if input.Phone != "" {
		address.Phone = input.Phone
	}
	if input.Line1 != "" {
		address.Line1 = input.Line1
	}
	if input.Line2 != "" {
		address.Line2 = input.Line2
	}
	if input.City != "" {
		address.City = input.City
	}
	if input.State != "" {
		address.State = input.State
	}
	if input.Pincode != "" {
		address.Pincode = input.Pincode
	}

	if input.IsDefault && !address.IsDefault {
		if err := s.addressRepo.ClearDefault(userID); err != nil {
			return nil, err
		}
		address.IsDefault = true
	}

	if err := s.addressRepo.Update(address); err != nil {
		logger.Error("Failed to update address", err, map[string]interface{}{
			"address_id": addressID,
		})
		return nil, err
	}

	return address, nil
}

func (s *addressService) SetDefaultAddress(userID, addressID uint) (*model.Address, error) {
	logger.Info("Setting default address", map[string]interface{}{
		"address_id": addressID,
		"user_id":    userID,
	})

	address, err := s.addressRepo.FindByID(addressID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAddressNotFound
		}
		return nil, err
	}
	if address.UserID != userID {
		return nil, ErrNotAddressOwner
	}

	if address.IsDefault {
		return address, nil
	}

	if err := s.addressRepo.ClearDefault(userID); err != nil {
		return nil, err
	}
	address.IsDefault = true
	if err := s.addressRepo.Update(address); err != nil {
		logger.Error("Failed to set default address", err, map[string]interface{}{
			"address_id": addressID,
		})
		return nil, err
	}

	return address, nil
}

func (s *addressService) DeleteAddress(userID, addressID uint) error {
	logger.Info("Deleting address", map[string]interface{}{
		"address_id": addressID,
		"user_id":    userID,
	})

	address, err := s.addressRepo.FindByID(addressID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAddressNotFound
		}
		return err
	}
	if address.UserID != userID {
		return ErrNotAddressOwner
	}

	if err := s.addressRepo.Delete(addressID); err != nil {
		logger.Error("Failed to delete address", err, map[string]interface{}{
			"address_id": addressID,
		})
		return err
	}
	return nil
}
