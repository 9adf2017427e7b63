package handler

import (
	catalogapp "github.com/erp/catalog/internal/application/catalog"
	"github.com/erp/catalog/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// SubcategoryHandler handles subcategory endpoints
type SubcategoryHandler struct {
	BaseHandler
	subcategoryService *catalogapp.SubcategoryService
}

// NewSubcategoryHandler creates a new SubcategoryHandler
func NewSubcategoryHandler(subcategoryService *catalogapp.SubcategoryService) *SubcategoryHandler {
	return &SubcategoryHandler{
		subcategoryService: subcategoryService,
	}
}

// Create handles POST /subcategories
// @Summary      Create a subcategory
// @Description  Create a subcategory under an existing category
// @Tags         subcategories
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.CreateSubcategoryRequest true "Subcategory to create"
// @Success      201 {object} dto.Envelope{data=catalogapp.SubcategoryResponse}
// @Failure      400 {object} dto.ErrorBody
// @Failure      404 {object} dto.ErrorBody
// @Failure      500 {object} dto.ErrorBody
// @Router       /api/v1/subcategories [post]
func (h *SubcategoryHandler) Create(c *gin.Context) {
	var req catalogapp.CreateSubcategoryRequest
	if !h.Bind(c, &req) {
		return
	}

	subcategory, err := h.subcategoryService.Create(c.Request.Context(), req)
	if err != nil {
		h.Fail(c, err)
		return
	}
	h.Created(c, dto.MsgSubcategoryCreated, subcategory)
}

// List handles GET /subcategories
// @Summary      List subcategories
// @Description  List every subcategory in insertion order
// @Tags         subcategories
// @Produce      json
// @Success      200 {object} dto.Envelope{data=[]catalogapp.SubcategoryResponse}
// @Failure      500 {object} dto.ErrorBody
// @Router       /api/v1/subcategories [get]
func (h *SubcategoryHandler) List(c *gin.Context) {
	subcategories, err := h.subcategoryService.List(c.Request.Context())
	if err != nil {
		h.Fail(c, err)
		return
	}
	h.OK(c, dto.MsgSubcategoriesFound, subcategories)
}

// ListByCategory handles GET /subcategories/category/:categoryId
// @Summary      List subcategories of a category
// @Description  List the subcategories owned by a category
// @Tags         subcategories
// @Produce      json
// @Param        categoryId path string true "Category ObjectId"
// @Success      200 {object} dto.Envelope{data=[]catalogapp.SubcategoryResponse}
// @Failure      400 {object} dto.ErrorBody
// @Failure      500 {object} dto.ErrorBody
// @Router       /api/v1/subcategories/category/{categoryId} [get]
func (h *SubcategoryHandler) ListByCategory(c *gin.Context) {
	subcategories, err := h.subcategoryService.ListByCategory(c.Request.Context(), c.Param("categoryId"))
	if err != nil {
		h.Fail(c, err)
		return
	}
	h.OK(c, dto.MsgSubcategoriesFound, subcategories)
}

// Get handles GET /subcategories/:idOrName
// @Summary      Get a subcategory
// @Description  Find a subcategory by ObjectId or by exact name
// @Tags         subcategories
// @Produce      json
// @Param        idOrName path string true "Subcategory ObjectId or exact name"
// @Success      200 {object} dto.Envelope{data=catalogapp.SubcategoryResponse}
// @Failure      404 {object} dto.ErrorBody
// @Failure      500 {object} dto.ErrorBody
// @Router       /api/v1/subcategories/{idOrName} [get]
func (h *SubcategoryHandler) Get(c *gin.Context) {
	subcategory, err := h.subcategoryService.Get(c.Request.Context(), c.Param("idOrName"))
	if err != nil {
		h.Fail(c, err)
		return
	}
	h.OK(c, dto.MsgSubcategoryFound, subcategory)
}

// Update handles PUT /subcategories/:id
// @Summary      Update a subcategory
// @Description  Update a subcategory. The owning category never changes.
// @Tags         subcategories
// @Accept       json
// @Produce      json
// @Param        id path string true "Subcategory ObjectId"
// @Param        request body catalogapp.UpdateSubcategoryRequest true "Fields to write"
// @Success      200 {object} dto.Envelope{data=catalogapp.SubcategoryResponse}
// @Failure      400 {object} dto.ErrorBody
// @Failure      404 {object} dto.ErrorBody
// @Failure      500 {object} dto.ErrorBody
// @Router       /api/v1/subcategories/{id} [put]
func (h *SubcategoryHandler) Update(c *gin.Context) {
	var req catalogapp.UpdateSubcategoryRequest
	if !h.Bind(c, &req) {
		return
	}

	subcategory, err := h.subcategoryService.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.Fail(c, err)
		return
	}
	h.OK(c, dto.MsgSubcategoryUpdated, subcategory)
}
