package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/adhivedhanlr-maker/ecommerce-backend/internal/app/service"
	apperrors "github.com/adhivedhanlr-maker/ecommerce-backend/internal/errors"
	"github.com/adhivedhanlr-maker/ecommerce-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type AddressController struct {
	addressService service.AddressService
}

func NewAddressController(addressService service.AddressService) *AddressController {
	return &AddressController{addressService: addressService}
}

type AddressRequest struct {
	Label     string `json:"label"`
	Recipient string `json:"recipient"`
	Phone     string `json:"phone"`
	Line1     string `json:"line1"`
	Line2     string `json:"line2"`
	City      string `json:"city"`
	State     string `json:"state"`
	Pincode   string `json:"pincode"`
	IsDefault bool   `json:"is_default"`
}

func (r AddressRequest) toInput() service.AddressInput {
	return service.AddressInput{
		Label:     r.Label,
		Recipient: r.Recipient,
		Phone:     r.Phone,
		Line1:     r.Line1,
		Line2:     r.Line2,
		City:      r.City,
		State:     r.State,
		Pincode:   r.Pincode,
		IsDefault: r.IsDefault,
	}
}

func (ctrl *AddressController) respondAddressError(c *gin.Context, err error, userID uint) {
	log := middleware.GetLoggerFromContext(c)

	switch {
	case errors.Is(err, service.ErrAddressNotFound):
		apperrors.NotFound(c, apperrors.ResourceNotFound, "Address not found")
	case errors.Is(err, service.ErrNotAddressOwner):
		apperrors.RespondWithError(c, http.StatusForbidden, apperrors.AuthzOwnerOnly, "You do not own this address")
	case errors.Is(err, service.ErrInvalidAddress):
		apperrors.BadRequest(c, apperrors.ValidationInvalidFormat, "Invalid address details")
	default:
		log.Error("Address operation failed", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "")
	}
}

// ListAddresses returns the caller's saved addresses
// GET /api/addresses
func (ctrl *AddressController) ListAddresses(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	addresses, err := ctrl.addressService.ListAddresses(userID)
	if err != nil {
		ctrl.respondAddressError(c, err, userID)
		return
	}

	respond(c, http.StatusOK, "Addresses fetched", gin.H{"addresses": addresses})
}

// CreateAddress saves a new address
// POST /api/addresses
func (ctrl *AddressController) CreateAddress(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid address details")
		return
	}

	address, err := ctrl.addressService.CreateAddress(userID, req.toInput())
	if err != nil {
		ctrl.respondAddressError(c, err, userID)
		return
	}

	respond(c, http.StatusCreated, "Address saved", gin.H{"address": address})
}

// UpdateAddress edits a saved address
// PUT /api/addresses/:id
func (ctrl *AddressController) UpdateAddress(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	addressID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid address ID")
		return
	}

	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid address details")
		return
	}

	address, err := ctrl.addressService.UpdateAddress(userID, uint(addressID), req.toInput())
	if err != nil {
		ctrl.respondAddressError(c, err, userID)
		return
	}

	respond(c, http.StatusOK, "Address updated", gin.H{"address": address})
}

// SetDefaultAddress marks one address as the default shipping choice
// PUT /api/addresses/:id/default
func (ctrl *AddressController) SetDefaultAddress(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	addressID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid address ID")
		return
	}

	address, err := ctrl.addressService.SetDefaultAddress(userID, uint(addressID))
	if err != nil {
		ctrl.respondAddressError(c, err, userID)
		return
	}

	respond(c, http.StatusOK, "Default address set", gin.H{"address": address})
}

// DeleteAddress removes a saved address
// DELETE /api/addresses/:id
func (ctrl *AddressController) DeleteAddress(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	addressID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid address ID")
		return
	}

	if err := ctrl.addressService.DeleteAddress(userID, uint(addressID)); err != nil {
		ctrl.respondAddressError(c, err, userID)
		return
	}

	respond(c, http.StatusOK, "Address deleted", nil)
}
