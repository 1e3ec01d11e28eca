package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tebele-dev/tailor-made-couture/models"
	"github.com/tebele-dev/tailor-made-couture/services"
)

type AddressBookController struct {
	addresses services.AddressBookService
}

func NewAddressBookController(addresses services.AddressBookService) *AddressBookController {
	return &AddressBookController{addresses: addresses}
}

func (ac *AddressBookController) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"addresses": ac.addresses.List(c.Request.Context(), account(c))})
}

// Create handles POST /api/address-book.
func (ac *AddressBookController) Create(c *gin.Context) {
	ac.save(c, "", http.StatusCreated)
}

// Update handles PUT /api/address-book/:id.
func (ac *AddressBookController) Update(c *gin.Context) {
	ac.save(c, c.Param("id"), http.StatusOK)
}

func (ac *AddressBookController) save(c *gin.Context, id string, status int) {
	var form models.AddressForm
	if !bindJSON(c, &form) {
		return
	}
	saved, err := ac.addresses.Save(c.Request.Context(), account(c), id, form)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(status, gin.H{"address": saved})
}

func (ac *AddressBookController) Delete(c *gin.Context) {
	if err := ac.addresses.Delete(c.Request.Context(), account(c), c.Param("id")); err != nil {
		handleServiceError(c, err)
		return
	}
	ac.List(c)
}

func (ac *AddressBookController) SetDefault(c *gin.Context) {
	if err := ac.addresses.SetDefault(c.Request.Context(), account(c), c.Param("id")); err != nil {
		handleServiceError(c, err)
		return
	}
	ac.List(c)
}
