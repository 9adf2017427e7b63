// Package dto holds the wire shapes shared by every HTTP endpoint.
package dto

// Envelope is the body of every successful response
type Envelope struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Data       any    `json:"data"`
}

// ErrorBody is the body of every failed response
type ErrorBody struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

// NewEnvelope creates a success envelope
func NewEnvelope(statusCode int, message string, data any) Envelope {
	return Envelope{
		StatusCode: statusCode,
		Message:    message,
		Data:       data,
	}
}

// NewErrorBody creates an error body
func NewErrorBody(statusCode int, message string) ErrorBody {
	return ErrorBody{
		StatusCode: statusCode,
		Message:    message,
	}
}

// Success messages
const (
	MsgCategoryCreated    = "Category created successfully"
	MsgCategoriesFound    = "Categories found successfully"
	MsgCategoryFound      = "Category found successfully"
	MsgCategoryUpdated    = "Category updated successfully"
	MsgSubcategoryCreated = "Subcategory created successfully"
	MsgSubcategoriesFound = "Sub-categories found successfully"
	MsgSubcategoryFound   = "Subcategory found successfully"
	MsgSubcategoryUpdated = "Subcategory updated successfully"
	MsgItemCreated        = "Item created successfully"
	MsgItemsFound         = "Items found successfully"
	MsgItemFound          = "Item found successfully"
	MsgItemUpdated        = "Item updated successfully"
)
