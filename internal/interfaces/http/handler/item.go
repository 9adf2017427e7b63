package handler

import (
	"net/http"

	catalogapp "github.com/erp/catalog/internal/application/catalog"
	"github.com/erp/catalog/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// ItemHandler handles item endpoints
type ItemHandler struct {
	BaseHandler
	itemService    *catalogapp.ItemService
	envelopeSearch bool
}

// NewItemHandler creates a new ItemHandler. When envelopeSearch is false,
// search results are written as a bare JSON array.
func NewItemHandler(itemService *catalogapp.ItemService, envelopeSearch bool) *ItemHandler {
	return &ItemHandler{
		itemService:    itemService,
		envelopeSearch: envelopeSearch,
	}
}

// Create handles POST /items
// @Summary      Create an item
// @Description  Create an item under a category or a subcategory. totalAmount is derived.
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.CreateItemRequest true "Item to create"
// @Success      201 {object} dto.Envelope{data=catalogapp.ItemResponse}
// @Failure      400 {object} dto.ErrorBody
// @Failure      404 {object} dto.ErrorBody
// @Failure      500 {object} dto.ErrorBody
// @Router       /api/v1/items [post]
func (h *ItemHandler) Create(c *gin.Context) {
	var req catalogapp.CreateItemRequest
	if !h.Bind(c, &req) {
		return
	}

	item, err := h.itemService.Create(c.Request.Context(), req)
	if err != nil {
		h.Fail(c, err)
		return
	}
	h.Created(c, dto.MsgItemCreated, item)
}

// List handles GET /items
// @Summary      List items
// @Description  List every item in insertion order
// @Tags         items
// @Produce      json
// @Success      200 {object} dto.Envelope{data=[]catalogapp.ItemResponse}
// @Failure      500 {object} dto.ErrorBody
// @Router       /api/v1/items [get]
func (h *ItemHandler) List(c *gin.Context) {
	items, err := h.itemService.List(c.Request.Context())
	if err != nil {
		h.Fail(c, err)
		return
	}
	h.OK(c, dto.MsgItemsFound, items)
}

// ListByCategory handles GET /items/category/:categoryId
// @Summary      List items of a category
// @Description  List the items attached directly to a category
// @Tags         items
// @Produce      json
// @Param        categoryId path string true "Category ObjectId"
// @Success      200 {object} dto.Envelope{data=[]catalogapp.ItemResponse}
// @Failure      400 {object} dto.ErrorBody
// @Failure      500 {object} dto.ErrorBody
// @Router       /api/v1/items/category/{categoryId} [get]
func (h *ItemHandler) ListByCategory(c *gin.Context) {
	items, err := h.itemService.ListByCategory(c.Request.Context(), c.Param("categoryId"))
	if err != nil {
		h.Fail(c, err)
		return
	}
	h.OK(c, dto.MsgItemsFound, items)
}

// ListBySubcategory handles GET /items/subcategory/:subcategoryId
// @Summary      List items of a subcategory
// @Description  List the items attached to a subcategory
// @Tags         items
// @Produce      json
// @Param        subcategoryId path string true "Subcategory ObjectId"
// @Success      200 {object} dto.Envelope{data=[]catalogapp.ItemResponse}
// @Failure      400 {object} dto.ErrorBody
// @Failure      500 {object} dto.ErrorBody
// @Router       /api/v1/items/subcategory/{subcategoryId} [get]
func (h *ItemHandler) ListBySubcategory(c *gin.Context) {
	items, err := h.itemService.ListBySubcategory(c.Request.Context(), c.Param("subcategoryId"))
	if err != nil {
		h.Fail(c, err)
		return
	}
	h.OK(c, dto.MsgItemsFound, items)
}

// Search handles GET /items/search?name=
// @Summary      Search items by name
// @Description  Case-insensitive substring match on item names. Without the search envelope the body is a bare array.
// @Tags         items
// @Produce      json
// @Param        name query string false "Substring to match"
// @Success      200 {object} dto.Envelope{data=[]catalogapp.ItemResponse}
// @Failure      500 {object} dto.ErrorBody
// @Router       /api/v1/items/search [get]
func (h *ItemHandler) Search(c *gin.Context) {
	items, err := h.itemService.Search(c.Request.Context(), c.Query("name"))
	if err != nil {
		h.Fail(c, err)
		return
	}
	if h.envelopeSearch {
		h.OK(c, dto.MsgItemsFound, items)
		return
	}
	c.JSON(http.StatusOK, items)
}

// Get handles GET /items/:idOrName
// @Summary      Get an item
// @Description  Find an item by ObjectId or by exact name
// @Tags         items
// @Produce      json
// @Param        idOrName path string true "Item ObjectId or exact name"
// @Success      200 {object} dto.Envelope{data=catalogapp.ItemResponse}
// @Failure      404 {object} dto.ErrorBody
// @Failure      500 {object} dto.ErrorBody
// @Router       /api/v1/items/{idOrName} [get]
func (h *ItemHandler) Get(c *gin.Context) {
	item, err := h.itemService.Get(c.Request.Context(), c.Param("idOrName"))
	if err != nil {
		h.Fail(c, err)
		return
	}
	h.OK(c, dto.MsgItemFound, item)
}

// Update handles PUT /items/:id
// @Summary      Update an item
// @Description  Update an item and recompute totalAmount. The parent never changes.
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        id path string true "Item ObjectId"
// @Param        request body catalogapp.UpdateItemRequest true "Fields to write"
// @Success      200 {object} dto.Envelope{data=catalogapp.ItemResponse}
// @Failure      400 {object} dto.ErrorBody
// @Failure      404 {object} dto.ErrorBody
// @Failure      500 {object} dto.ErrorBody
// @Router       /api/v1/items/{id} [put]
func (h *ItemHandler) Update(c *gin.Context) {
	var req catalogapp.UpdateItemRequest
	if !h.Bind(c, &req) {
		return
	}

	item, err := h.itemService.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.Fail(c, err)
		return
	}
	h.OK(c, dto.MsgItemUpdated, item)
}
