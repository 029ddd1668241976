package handler

import (
	"net/http"

	"github.com/deppfellow/dispenser-api/internal/model"
	"github.com/deppfellow/dispenser-api/internal/server"
	"github.com/deppfellow/dispenser-api/internal/service"
	"github.com/deppfellow/dispenser-api/internal/validation"
	"github.com/labstack/echo/v4"
)

// GetDrinksRequest is the body of a drinks lookup.
type GetDrinksRequest struct {
	DispenserID string `json:"dispenserId" form:"dispenserId" validate:"required"`
}

func (r *GetDrinksRequest) Validate() error {
	return validation.Struct(r)
}

type DispenserHandler struct {
	Handler
	dispenserService *service.DispenserService
}

func NewDispenserHandler(s *server.Server, dispenserService *service.DispenserService) *DispenserHandler {
	return &DispenserHandler{
		Handler:          NewHandler(s),
		dispenserService: dispenserService,
	}
}

// GetDrinksByDispenserID returns the populated pumps of a dispenser and
// every drink linked to it.
func (h *DispenserHandler) GetDrinksByDispenserID() echo.HandlerFunc {
	return Handle(
		func(c echo.Context, req *GetDrinksRequest) (*model.DrinkMapping, error) {
			return h.dispenserService.GetDrinkMapping(c.Request().Context(), req.DispenserID)
		},
		http.StatusOK,
		func() *GetDrinksRequest { return &GetDrinksRequest{} },
	)
}
