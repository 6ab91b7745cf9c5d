// Package swagger registers the API document served under /swagger.
package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Pet Adoption Platform API",
        "description": "Catalog, adoption workflow, reviews and accounts.",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "session": {
            "type": "apiKey",
            "in": "header",
            "name": "Authorization"
        }
    },
    "tags": [
        {
            "name": "Accounts"
        },
        {
            "name": "Catalog"
        },
        {
            "name": "Adoptions"
        },
        {
            "name": "Reviews"
        }
    ],
    "paths": {
        "/": {
            "get": {
                "tags": [
                    "General"
                ],
                "summary": "Welcome text",
                "responses": {
                    "200": {
                        "description": "Welcome"
                    }
                }
            }
        },
        "/healthz": {
            "get": {
                "tags": [
                    "General"
                ],
                "summary": "Health check",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/register": {
            "post": {
                "tags": [
                    "Accounts"
                ],
                "summary": "Register a user",
                "consumes": [
                    "application/x-www-form-urlencoded"
                ],
                "parameters": [
                    {
                        "name": "username",
                        "in": "formData",
                        "type": "string",
                        "required": true
                    },
                    {
                        "name": "email",
                        "in": "formData",
                        "type": "string",
                        "required": true
                    },
                    {
                        "name": "password",
                        "in": "formData",
                        "type": "string",
                        "required": true
                    },
                    {
                        "name": "role",
                        "in": "formData",
                        "type": "string",
                        "required": true
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created"
                    },
                    "400": {
                        "description": "Validation error or email taken",
                        "schema": {
                            "$ref": "#/definitions/Problem"
                        }
                    }
                }
            }
        },
        "/login": {
            "post": {
                "tags": [
                    "Accounts"
                ],
                "summary": "Log in and receive a session token",
                "consumes": [
                    "application/x-www-form-urlencoded"
                ],
                "parameters": [
                    {
                        "name": "email",
                        "in": "formData",
                        "type": "string",
                        "required": true
                    },
                    {
                        "name": "password",
                        "in": "formData",
                        "type": "string",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Session"
                    },
                    "401": {
                        "description": "Invalid credentials",
                        "schema": {
                            "$ref": "#/definitions/Problem"
                        }
                    },
                    "429": {
                        "description": "Too many attempts",
                        "schema": {
                            "$ref": "#/definitions/Problem"
                        }
                    }
                }
            }
        },
        "/logout": {
            "post": {
                "tags": [
                    "Accounts"
                ],
                "summary": "End the current session",
                "responses": {
                    "200": {
                        "description": "Logged out"
                    },
                    "401": {
                        "description": "Login required",
                        "schema": {
                            "$ref": "#/definitions/Problem"
                        }
                    }
                }
            }
        },
        "/me": {
            "get": {
                "tags": [
                    "Accounts"
                ],
                "summary": "Current user",
                "responses": {
                    "200": {
                        "description": "User"
                    },
                    "401": {
                        "description": "Login required",
                        "schema": {
                            "$ref": "#/definitions/Problem"
                        }
                    }
                }
            }
        },
        "/get_users": {
            "get": {
                "tags": [
                    "Accounts"
                ],
                "summary": "List users (admin)",
                "responses": {
                    "200": {
                        "description": "Users"
                    },
                    "403": {
                        "description": "Admin only",
                        "schema": {
                            "$ref": "#/definitions/Problem"
                        }
                    }
                }
            }
        },
        "/delete_user": {
            "post": {
                "tags": [
                    "Accounts"
                ],
                "summary": "Delete a user (admin)",
                "consumes": [
                    "application/x-www-form-urlencoded"
                ],
                "parameters": [
                    {
                        "name": "user_id",
                        "in": "formData",
                        "type": "integer",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Deleted"
                    },
                    "403": {
                        "description": "Admin only or self-delete",
                        "schema": {
                            "$ref": "#/definitions/Problem"
                        }
                    },
                    "404": {
                        "description": "Unknown user",
                        "schema": {
                            "$ref": "#/definitions/Problem"
                        }
                    }
                }
            }
        },
        "/add_pet_type": {
            "post": {
                "tags": [
                    "Catalog"
                ],
                "summary": "Add a pet type (admin)",
                "consumes": [
                    "application/x-www-form-urlencoded"
                ],
                "parameters": [
                    {
                        "name": "type_name",
                        "in": "formData",
                        "type": "string",
                        "required": true
                    },
                    {
                        "name": "description",
                        "in": "formData",
                        "type": "string",
                        "required": false
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created"
                    },
                    "400": {
                        "description": "Missing name or duplicate type",
                        "schema": {
                            "$ref": "#/definitions/Problem"
                        }
                    }
                }
            }
        },
        "/get_pet_types": {
            "get": {
                "tags": [
                    "Catalog"
                ],
                "summary": "List pet types",
                "responses": {
                    "200": {
                        "description": "Pet types"
                    }
                }
            }
        },
        "/delete_pet_type": {
            "post": {
                "tags": [
                    "Catalog"
                ],
                "summary": "Delete a pet type (admin)",
                "consumes": [
                    "application/x-www-form-urlencoded"
                ],
                "parameters": [
                    {
                        "name": "pet_type_id",
                        "in": "formData",
                        "type": "integer",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Deleted"
                    },
                    "404": {
                        "description": "Unknown pet type",
                        "schema": {
                            "$ref": "#/definitions/Problem"
                        }
                    }
                }
            }
        },
        "/add_pet": {
            "post": {
                "tags": [
                    "Catalog"
                ],
                "summary": "Add a pet (admin)",
                "consumes": [
                    "multipart/form-data"
                ],
                "parameters": [
                    {
                        "name": "name",
                        "in": "formData",
                        "type": "string",
                        "required": true
                    },
                    {
                        "name": "breed",
                        "in": "formData",
                        "type": "string",
                        "required": false
                    },
                    {
                        "name": "age",
                        "in": "formData",
                        "type": "integer",
                        "required": false
                    },
                    {
                        "name": "gender",
                        "in": "formData",
                        "type": "string",
                        "required": false
                    },
                    {
                        "name": "pet_type_id",
                        "in": "formData",
                        "type": "integer",
                        "required": false
                    },
                    {
                        "name": "description",
                        "in": "formData",
                        "type": "string",
                        "required": false
                    },
                    {
                        "name": "image_url",
                        "in": "formData",
                        "type": "file",
                        "required": false
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created"
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/Problem"
                        }
                    },
                    "404": {
                        "description": "Unknown pet type",
                        "schema": {
                            "$ref": "#/definitions/Problem"
                        }
                    }
                }
            }
        },
        "/get_pets": {
            "get": {
                "tags": [
                    "Catalog"
                ],
                "summary": "List pets",
                "parameters": [
                    {
                        "name": "available",
                        "in": "query",
                        "type": "boolean",
                        "required": false
                    },
                    {
                        "name": "pet_type_id",
                        "in": "query",
                        "type": "integer",
                        "required": false
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Pets"
                    }
                }
            }
        },
        "/get_pet/{id}": {
            "get": {
                "tags": [
                    "Catalog"
                ],
                "summary": "Get a pet",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "integer",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Pet"
                    },
                    "404": {
                        "description": "Unknown pet",
                        "schema": {
                            "$ref": "#/definitions/Problem"
                        }
                    }
                }
            }
        },
        "/delete_pet": {
            "post": {
                "tags": [
                    "Catalog"
                ],
                "summary": "Delete a pet (admin)",
                "consumes": [
                    "application/x-www-form-urlencoded"
                ],
                "parameters": [
                    {
                        "name": "pet_id",
                        "in": "formData",
                        "type": "integer",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Deleted"
                    },
                    "404": {
                        "description": "Unknown pet",
                        "schema": {
                            "$ref": "#/definitions/Problem"
                        }
                    }
                }
            }
        },
        "/adopt_pet": {
            "post": {
                "tags": [
                    "Adoptions"
                ],
                "summary": "Apply to adopt a pet",
                "consumes": [
                    "application/x-www-form-urlencoded"
                ],
                "parameters": [
                    {
                        "name": "pet_id",
                        "in": "formData",
                        "type": "integer",
                        "required": true
                    },
                    {
                        "name": "user_id",
                        "in": "formData",
                        "type": "integer",
                        "required": false
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Pending request created"
                    },
                    "400": {
                        "description": "Already applied or pet unavailable",
                        "schema": {
                            "$ref": "#/definitions/Problem"
                        }
                    },
                    "404": {
                        "description": "Unknown user or pet",
                        "schema": {
                            "$ref": "#/definitions/Problem"
                        }
                    }
                }
            }
        },
        "/get_adoptions": {
            "get": {
                "tags": [
                    "Adoptions"
                ],
                "summary": "List adoption requests",
                "parameters": [
                    {
                        "name": "user_id",
                        "in": "query",
                        "type": "integer",
                        "required": false
                    },
                    {
                        "name": "pet_id",
                        "in": "query",
                        "type": "integer",
                        "required": false
                    },
                    {
                        "name": "status",
                        "in": "query",
                        "type": "string",
                        "required": false
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Adoptions"
                    }
                }
            }
        },
        "/approve_adoption": {
            "post": {
                "tags": [
                    "Adoptions"
                ],
                "summary": "Approve a pending request (admin)",
                "consumes": [
                    "application/x-www-form-urlencoded"
                ],
                "parameters": [
                    {
                        "name": "adoption_id",
                        "in": "formData",
                        "type": "integer",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Approved or unchanged"
                    },
                    "404": {
                        "description": "Unknown adoption",
                        "schema": {
                            "$ref": "#/definitions/Problem"
                        }
                    }
                }
            }
        },
        "/reject_adoption": {
            "post": {
                "tags": [
                    "Adoptions"
                ],
                "summary": "Reject a pending request (admin)",
                "consumes": [
                    "application/x-www-form-urlencoded"
                ],
                "parameters": [
                    {
                        "name": "adoption_id",
                        "in": "formData",
                        "type": "integer",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Rejected or unchanged"
                    },
                    "404": {
                        "description": "Unknown adoption",
                        "schema": {
                            "$ref": "#/definitions/Problem"
                        }
                    }
                }
            }
        },
        "/cancel_adoption": {
            "post": {
                "tags": [
                    "Adoptions"
                ],
                "summary": "Cancel an adoption",
                "consumes": [
                    "application/x-www-form-urlencoded"
                ],
                "parameters": [
                    {
                        "name": "adoption_id",
                        "in": "formData",
                        "type": "integer",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Cancelled"
                    },
                    "403": {
                        "description": "Not the applicant",
                        "schema": {
                            "$ref": "#/definitions/Problem"
                        }
                    },
                    "404": {
                        "description": "Unknown adoption",
                        "schema": {
                            "$ref": "#/definitions/Problem"
                        }
                    }
                }
            }
        },
        "/add_review": {
            "post": {
                "tags": [
                    "Reviews"
                ],
                "summary": "Review an adopted pet",
                "consumes": [
                    "application/x-www-form-urlencoded"
                ],
                "parameters": [
                    {
                        "name": "pet_id",
                        "in": "formData",
                        "type": "integer",
                        "required": true
                    },
                    {
                        "name": "rating",
                        "in": "formData",
                        "type": "integer",
                        "required": true
                    },
                    {
                        "name": "comment",
                        "in": "formData",
                        "type": "string",
                        "required": false
                    },
                    {
                        "name": "user_id",
                        "in": "formData",
                        "type": "integer",
                        "required": false
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created"
                    },
                    "403": {
                        "description": "No approved adoption",
                        "schema": {
                            "$ref": "#/definitions/Problem"
                        }
                    }
                }
            }
        },
        "/get_reviews": {
            "get": {
                "tags": [
                    "Reviews"
                ],
                "summary": "List reviews",
                "parameters": [
                    {
                        "name": "user_id",
                        "in": "query",
                        "type": "integer",
                        "required": false
                    },
                    {
                        "name": "pet_id",
                        "in": "query",
                        "type": "integer",
                        "required": false
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Reviews"
                    }
                }
            }
        }
    },
    "definitions": {
        "Problem": {
            "type": "object",
            "properties": {
                "type": {
                    "type": "string"
                },
                "title": {
                    "type": "string"
                },
                "status": {
                    "type": "integer"
                },
                "detail": {
                    "type": "string"
                },
                "instance": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                },
                "error": {
                    "type": "string"
                }
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
