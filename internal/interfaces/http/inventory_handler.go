package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Vestuario-api/internal/application/dto"
	"github.com/jhoicas/Vestuario-api/internal/application/inventory"
	"github.com/jhoicas/Vestuario-api/internal/domain/repository"
)

// InventoryHandler maneja movimientos, niveles de stock y alertas (protegido).
type InventoryHandler struct {
	apply *inventory.ApplyMovementUseCase
	query *inventory.StockQueryUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(apply *inventory.ApplyMovementUseCase, query *inventory.StockQueryUseCase) *InventoryHandler {
	return &InventoryHandler{apply: apply, query: query}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de inventario
// @Description  in suma, out resta (falla con stock insuficiente), adjust fija
//
//	la cantidad absoluta. Movimiento y nivel se escriben en la misma
//	transacción.
//
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "product_id, type (in|out|adjust), quantity, location (opcional), reference_id, notes"
// @Success      201   {object}  dto.StockMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	t, ok := inventory.ParseMovementType(in.Type)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "type debe ser in, out o adjust"})
	}
	out, err := h.apply.ApplyMovement(c.Context(), inventory.MovementInput{
		ProductID:   in.ProductID,
		Location:    in.Location,
		Type:        t,
		Quantity:    in.Quantity,
		ReferenceID: in.ReferenceID,
		Notes:       in.Notes,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListMovements godoc
// @Summary      Listar movimientos
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  false  "Filtrar por producto"
// @Param        type        query  string  false  "Filtrar por tipo (in|out|adjust)"
// @Param        limit       query  int     false  "Límite"  default(20)
// @Param        offset      query  int     false  "Offset"  default(0)
// @Success      200  {array}   dto.StockMovementResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválido"})
	}
	page.DefaultPage()
	filter := repository.MovementFilter{
		ProductID: c.Query("product_id"),
		Limit:     page.Limit,
		Offset:    page.Offset,
	}
	if s := c.Query("type"); s != "" {
		t, ok := inventory.ParseMovementType(s)
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "type debe ser in, out o adjust"})
		}
		filter.Type = t
	}
	out, err := h.query.ListMovements(c.Context(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetMovement godoc
// @Summary      Obtener movimiento por ID
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.StockMovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements/{id} [get]
func (h *InventoryHandler) GetMovement(c *fiber.Ctx) error {
	out, err := h.query.GetMovement(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListStockLevels godoc
// @Summary      Listar niveles de stock
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  false  "Filtrar por producto"
// @Param        location    query  string  false  "Filtrar por ubicación"
// @Param        low_stock   query  bool    false  "Solo filas con quantity <= min_stock"
// @Param        limit       query  int     false  "Límite"  default(20)
// @Param        offset      query  int     false  "Offset"  default(0)
// @Success      200  {array}   dto.StockLevelResponse
// @Router       /api/inventory/stock [get]
func (h *InventoryHandler) ListStockLevels(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválido"})
	}
	page.DefaultPage()
	out, err := h.query.ListStockLevels(c.Context(), repository.StockLevelFilter{
		ProductID:    c.Query("product_id"),
		Location:     c.Query("location"),
		LowStockOnly: c.QueryBool("low_stock"),
		Limit:        page.Limit,
		Offset:       page.Offset,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// LowStockAlerts godoc
// @Summary      Alertas de stock bajo
// @Description  Productos cuyo stock agregado (todas las ubicaciones) está en
//
//	o bajo su min_stock, incluidos los que aún no tienen stock.
//
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.LowStockAlertsResponse
// @Router       /api/inventory/alerts [get]
func (h *InventoryHandler) LowStockAlerts(c *fiber.Ctx) error {
	out, err := h.query.LowStockAlerts(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
