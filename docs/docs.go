// Package docs registra la especificación OpenAPI del servicio.
// Regenerar con: swag init -g cmd/api/main.go -o docs
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "tags": ["ops"],
                "summary": "Liveness",
                "responses": {"200": {"description": "ok"}}
            }
        },
        "/horses": {
            "get": {
                "tags": ["horses"],
                "summary": "Listar caballos propios",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            },
            "post": {
                "tags": ["horses"],
                "summary": "Crear caballo",
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/horses/import/rimondo": {
            "post": {
                "tags": ["horses"],
                "summary": "Prefill desde el registro rimondo",
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "502": {"description": "Bad Gateway"}}
            }
        },
        "/horses/{horseID}": {
            "get": {
                "tags": ["horses"],
                "summary": "Detalle de un caballo",
                "parameters": [{"type": "string", "name": "horseID", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            },
            "put": {
                "tags": ["horses"],
                "summary": "Actualizar caballo",
                "parameters": [{"type": "string", "name": "horseID", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}
            },
            "delete": {
                "tags": ["horses"],
                "summary": "Borrar caballo",
                "parameters": [{"type": "string", "name": "horseID", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}, "403": {"description": "Forbidden"}}
            }
        },
        "/horses/{horseID}/history": {
            "get": {
                "tags": ["horses"],
                "summary": "Historial agrupado por año",
                "parameters": [{"type": "string", "name": "horseID", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/horses/{horseID}/vaccinations": {
            "post": {
                "tags": ["horses"],
                "summary": "Añadir vacuna",
                "parameters": [{"type": "string", "name": "horseID", "in": "path", "required": true}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}
            }
        },
        "/horses/{horseID}/vaccinations/{vaccID}": {
            "put": {
                "tags": ["horses"],
                "summary": "Editar vacuna",
                "parameters": [
                    {"type": "string", "name": "horseID", "in": "path", "required": true},
                    {"type": "string", "name": "vaccID", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            },
            "delete": {
                "tags": ["horses"],
                "summary": "Borrar vacuna",
                "parameters": [
                    {"type": "string", "name": "horseID", "in": "path", "required": true},
                    {"type": "string", "name": "vaccID", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/horses/{horseID}/services": {
            "post": {
                "tags": ["horses"],
                "summary": "Añadir servicio al historial",
                "parameters": [{"type": "string", "name": "horseID", "in": "path", "required": true}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}
            }
        },
        "/horses/{horseID}/services/{recordID}": {
            "delete": {
                "tags": ["horses"],
                "summary": "Borrar servicio del historial",
                "parameters": [
                    {"type": "string", "name": "horseID", "in": "path", "required": true},
                    {"type": "string", "name": "recordID", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/horses/{horseID}/compliance": {
            "get": {
                "tags": ["compliance"],
                "summary": "Chequeo de conformidad de un caballo",
                "parameters": [
                    {"type": "string", "name": "horseID", "in": "path", "required": true},
                    {"type": "string", "name": "as_of", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/dashboard/actions": {
            "get": {
                "tags": ["compliance"],
                "summary": "Panel consolidado de acciones",
                "parameters": [{"type": "string", "name": "type", "in": "query"}],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/notifications/check": {
            "post": {
                "tags": ["notifications"],
                "summary": "Chequeo interactivo del dueño autenticado",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/cron/daily-due-checks": {
            "post": {
                "tags": ["notifications"],
                "summary": "Pasada diaria sobre todos los dueños suscritos",
                "parameters": [{"type": "string", "name": "X-Cron-Secret", "in": "header", "required": true}],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/profile": {
            "get": {
                "tags": ["profiles"],
                "summary": "Perfil del usuario autenticado",
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            },
            "put": {
                "tags": ["profiles"],
                "summary": "Crear o reemplazar el perfil",
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/profile/notifications": {
            "put": {
                "tags": ["profiles"],
                "summary": "Actualizar avisos por correo",
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/vets": {
            "get": {
                "tags": ["profiles"],
                "summary": "Buscar veterinarios por código postal",
                "parameters": [{"type": "string", "name": "zip", "in": "query", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/appointments": {
            "get": {
                "tags": ["appointments"],
                "summary": "Solicitudes enviadas por el dueño",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["appointments"],
                "summary": "Solicitar cita a un veterinario",
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}
            }
        },
        "/appointments/inbox": {
            "get": {
                "tags": ["appointments"],
                "summary": "Bandeja de entrada del veterinario",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/appointments/{requestID}": {
            "delete": {
                "tags": ["appointments"],
                "summary": "Retirar una solicitud pendiente",
                "parameters": [{"type": "string", "name": "requestID", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}, "409": {"description": "Conflict"}}
            }
        },
        "/appointments/{requestID}/accept": {
            "post": {
                "tags": ["appointments"],
                "summary": "Aceptar una solicitud con fecha propuesta",
                "parameters": [{"type": "string", "name": "requestID", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict"}}
            }
        },
        "/appointments/{requestID}/reject": {
            "post": {
                "tags": ["appointments"],
                "summary": "Rechazar una solicitud",
                "parameters": [{"type": "string", "name": "requestID", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict"}}
            }
        },
        "/appointments/{requestID}/confirm": {
            "post": {
                "tags": ["appointments"],
                "summary": "Confirmar la fecha propuesta",
                "parameters": [{"type": "string", "name": "requestID", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "EquiManage API",
	Description:      "Gestión de caballos: conformidad de vacunación, herrador, avisos y citas.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
