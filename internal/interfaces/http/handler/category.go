package handler

import (
	catalogapp "github.com/erp/catalog/internal/application/catalog"
	"github.com/erp/catalog/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// CategoryHandler handles category endpoints
type CategoryHandler struct {
	BaseHandler
	categoryService *catalogapp.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService *catalogapp.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
	}
}

// Create handles POST /categories
// @Summary      Create a category
// @Description  Create a category. Names are unique.
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.CreateCategoryRequest true "Category to create"
// @Success      201 {object} dto.Envelope{data=catalogapp.CategoryResponse}
// @Failure      400 {object} dto.ErrorBody
// @Failure      409 {object} dto.ErrorBody
// @Failure      500 {object} dto.ErrorBody
// @Router       /api/v1/categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	var req catalogapp.CreateCategoryRequest
	if !h.Bind(c, &req) {
		return
	}

	category, err := h.categoryService.Create(c.Request.Context(), req)
	if err != nil {
		h.Fail(c, err)
		return
	}
	h.Created(c, dto.MsgCategoryCreated, category)
}

// List handles GET /categories
// @Summary      List categories
// @Description  List every category in insertion order
// @Tags         categories
// @Produce      json
// @Success      200 {object} dto.Envelope{data=[]catalogapp.CategoryResponse}
// @Failure      500 {object} dto.ErrorBody
// @Router       /api/v1/categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.categoryService.List(c.Request.Context())
	if err != nil {
		h.Fail(c, err)
		return
	}
	h.OK(c, dto.MsgCategoriesFound, categories)
}

// Get handles GET /categories/:idOrName
// @Summary      Get a category
// @Description  Find a category by ObjectId or by exact name
// @Tags         categories
// @Produce      json
// @Param        idOrName path string true "Category ObjectId or exact name"
// @Success      200 {object} dto.Envelope{data=catalogapp.CategoryResponse}
// @Failure      404 {object} dto.ErrorBody
// @Failure      500 {object} dto.ErrorBody
// @Router       /api/v1/categories/{idOrName} [get]
func (h *CategoryHandler) Get(c *gin.Context) {
	category, err := h.categoryService.Get(c.Request.Context(), c.Param("idOrName"))
	if err != nil {
		h.Fail(c, err)
		return
	}
	h.OK(c, dto.MsgCategoryFound, category)
}

// Update handles PUT /categories/:id
// @Summary      Update a category
// @Description  Update a category. Replace mode unsets omitted fields.
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        id path string true "Category ObjectId"
// @Param        request body catalogapp.UpdateCategoryRequest true "Fields to write"
// @Success      200 {object} dto.Envelope{data=catalogapp.CategoryResponse}
// @Failure      400 {object} dto.ErrorBody
// @Failure      404 {object} dto.ErrorBody
// @Failure      409 {object} dto.ErrorBody
// @Failure      500 {object} dto.ErrorBody
// @Router       /api/v1/categories/{id} [put]
func (h *CategoryHandler) Update(c *gin.Context) {
	var req catalogapp.UpdateCategoryRequest
	if !h.Bind(c, &req) {
		return
	}

	category, err := h.categoryService.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.Fail(c, err)
		return
	}
	h.OK(c, dto.MsgCategoryUpdated, category)
}
