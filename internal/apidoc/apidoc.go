// Package apidoc describes the catalog HTTP API as an OpenAPI 3 document.
package apidoc

import (
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/gin-gonic/gin"
)

const cookieAuth = "cookieAuth"

var (
	fieldError = openapi3.NewObjectSchema().
		WithProperty("field", openapi3.NewStringSchema()).
		WithProperty("message", openapi3.NewStringSchema())

	validationError = openapi3.NewObjectSchema().
		WithProperty("error", openapi3.NewArraySchema().WithItems(fieldError))

	messageBody = openapi3.NewObjectSchema().
		WithProperty("message", openapi3.NewStringSchema())

	category = openapi3.NewObjectSchema().
		WithProperty("id", openapi3.NewInt64Schema()).
		WithProperty("name", openapi3.NewStringSchema().WithMinLength(3).WithMaxLength(50)).
		WithProperty("createdAt", openapi3.NewDateTimeSchema()).
		WithProperty("updatedAt", openapi3.NewDateTimeSchema())

	product = openapi3.NewObjectSchema().
		WithProperty("id", openapi3.NewInt64Schema()).
		WithProperty("name", openapi3.NewStringSchema()).
		WithProperty("description", openapi3.NewStringSchema()).
		WithProperty("price", openapi3.NewFloat64Schema().WithNullable()).
		WithProperty("currency", openapi3.NewStringSchema()).
		WithProperty("imageUrl", openapi3.NewStringSchema()).
		WithProperty("availability", openapi3.NewBoolSchema()).
		WithProperty("preparationTimeInMinute", openapi3.NewIntegerSchema()).
		WithProperty("discount", openapi3.NewFloat64Schema()).
		WithProperty("ingredients", openapi3.NewStringSchema()).
		WithProperty("size", openapi3.NewStringSchema().WithNullable()).
		WithProperty("category", openapi3.NewStringSchema().WithNullable()).
		WithProperty("createdAt", openapi3.NewDateTimeSchema()).
		WithProperty("updatedAt", openapi3.NewDateTimeSchema())
)

// New builds the document for the routes registered by the router.
func New(version string) *openapi3.T {
	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:       "Catalog API",
			Description: "Product and category catalog. Mutating routes require an admin access token.",
			Version:     version,
		},
		Components: &openapi3.Components{
			Schemas: openapi3.Schemas{
				"Category":   openapi3.NewSchemaRef("", category),
				"Product":    openapi3.NewSchemaRef("", product),
				"FieldError": openapi3.NewSchemaRef("", fieldError),
			},
			SecuritySchemes: openapi3.SecuritySchemes{
				cookieAuth: &openapi3.SecuritySchemeRef{Value: &openapi3.SecurityScheme{
					Type: "apiKey",
					In:   "cookie",
					Name: "accessToken",
				}},
			},
		},
		Paths: openapi3.NewPaths(
			openapi3.WithPath("/api/category", &openapi3.PathItem{
				Get: operation("listCategories", "List every category",
					respond(http.StatusOK, "Categories", object("categories", openapi3.NewArraySchema().WithItems(category))),
				),
				Put: secured(withJSONBody(operation("createCategory", "Create a category",
					respond(http.StatusCreated, "Created", entityMessage("category", category)),
					respond(http.StatusBadRequest, "Validation failed", validationError),
				), categoryBody())),
			}),
			openapi3.WithPath("/api/category/{categoryId}", &openapi3.PathItem{
				Parameters: openapi3.Parameters{idParam("categoryId")},
				Post: secured(withJSONBody(operation("updateCategory", "Rename a category",
					respond(http.StatusOK, "Updated", entityMessage("category", category)),
					respond(http.StatusBadRequest, "Invalid id, unknown category or validation failure", messageBody),
				), categoryBody())),
				Delete: secured(operation("deleteCategory", "Delete a category",
					respond(http.StatusOK, "Deleted", entityMessage("id", openapi3.NewInt64Schema())),
					respond(http.StatusBadRequest, "Invalid id or unknown category", messageBody),
				)),
			}),
			openapi3.WithPath("/api/product", &openapi3.PathItem{
				Get: operation("listProducts", "List every product",
					respond(http.StatusOK, "Products", entityMessage("products", openapi3.NewArraySchema().WithItems(product))),
				),
			}),
			openapi3.WithPath("/api/product/create", &openapi3.PathItem{
				Post: secured(withFormBody(operation("createProduct", "Create a product with its image",
					respond(http.StatusCreated, "Created", entityMessage("product", product)),
					respond(http.StatusBadRequest, "Missing image or validation failure", validationError),
					respond(http.StatusRequestEntityTooLarge, "Image too large", messageBody),
				), true)),
			}),
			openapi3.WithPath("/api/product/update/{productId}", &openapi3.PathItem{
				Parameters: openapi3.Parameters{idParam("productId")},
				Post: secured(withFormBody(operation("updateProduct", "Replace a product, optionally with a new image",
					respond(http.StatusOK, "Updated", entityMessage("product", product)),
					respond(http.StatusBadRequest, "Invalid id, unknown product or validation failure", validationError),
					respond(http.StatusRequestEntityTooLarge, "Image too large", messageBody),
				), false)),
			}),
			openapi3.WithPath("/api/product/{productId}", &openapi3.PathItem{
				Parameters: openapi3.Parameters{idParam("productId")},
				Get: operation("getProduct", "Get one product",
					respond(http.StatusOK, "Product", object("product", product)),
					respond(http.StatusBadRequest, "Invalid id or unknown product", messageBody),
				),
				Delete: secured(operation("deleteProduct", "Delete a product",
					respond(http.StatusOK, "Deleted", entityMessage("productId", openapi3.NewInt64Schema())),
					respond(http.StatusBadRequest, "Invalid id or unknown product", messageBody),
				)),
			}),
		),
	}
	return doc
}

// Handler serves doc as JSON.
func Handler(doc *openapi3.T) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, doc)
	}
}

type response struct {
	code int
	ref  *openapi3.ResponseRef
}

func respond(code int, description string, schema *openapi3.Schema) response {
	return response{code: code, ref: &openapi3.ResponseRef{
		Value: openapi3.NewResponse().WithDescription(description).WithJSONSchema(schema),
	}}
}

func operation(id, summary string, responses ...response) *openapi3.Operation {
	opts := make([]openapi3.NewResponsesOption, 0, len(responses))
	for _, r := range responses {
		opts = append(opts, openapi3.WithStatus(r.code, r.ref))
	}
	return &openapi3.Operation{
		OperationID: id,
		Summary:     summary,
		Responses:   openapi3.NewResponses(opts...),
	}
}

func secured(op *openapi3.Operation) *openapi3.Operation {
	op.Security = openapi3.NewSecurityRequirements().With(openapi3.NewSecurityRequirement().Authenticate(cookieAuth))
	op.AddResponse(http.StatusUnauthorized, openapi3.NewResponse().WithDescription("Missing or invalid access token").WithJSONSchema(messageBody))
	op.AddResponse(http.StatusForbidden, openapi3.NewResponse().WithDescription("Caller is not an admin").WithJSONSchema(messageBody))
	return op
}

func withJSONBody(op *openapi3.Operation, schema *openapi3.Schema) *openapi3.Operation {
	op.RequestBody = &openapi3.RequestBodyRef{Value: openapi3.NewRequestBody().WithRequired(true).WithJSONSchema(schema)}
	return op
}

func withFormBody(op *openapi3.Operation, imageRequired bool) *openapi3.Operation {
	schema := openapi3.NewObjectSchema().
		WithProperty("image", openapi3.NewStringSchema().WithFormat("binary")).
		WithProperty("ingredients", openapi3.NewArraySchema().WithItems(openapi3.NewStringSchema()))
	required := []string{"name", "description", "size", "price", "discount", "currency", "availability", "preparationTimeInMinute", "category", "ingredients"}
	for _, f := range required[:len(required)-1] {
		schema.WithProperty(f, openapi3.NewStringSchema())
	}
	if imageRequired {
		required = append(required, "image")
	}
	schema.Required = required
	op.RequestBody = &openapi3.RequestBodyRef{Value: openapi3.NewRequestBody().WithRequired(true).WithFormDataSchema(schema)}
	return op
}

func categoryBody() *openapi3.Schema {
	return openapi3.NewObjectSchema().
		WithProperty("name", openapi3.NewStringSchema().WithMinLength(3).WithMaxLength(50)).
		WithRequired([]string{"name"})
}

func idParam(name string) *openapi3.ParameterRef {
	return &openapi3.ParameterRef{Value: openapi3.NewPathParameter(name).WithSchema(openapi3.NewInt64Schema().WithMin(1))}
}

func object(key string, schema *openapi3.Schema) *openapi3.Schema {
	return openapi3.NewObjectSchema().WithProperty(key, schema)
}

func entityMessage(key string, schema *openapi3.Schema) *openapi3.Schema {
	return object(key, schema).WithProperty("message", openapi3.NewStringSchema())
}
