package handlers

// @title Movie Reviews API
// @version 1.0
// @description Movie catalog, cast and review API with review translation

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name token
// @description Session token issued by POST /dev/token outside production.

// @tag.name movies
// @tag.description Movie catalog operations

// @tag.name cast
// @tag.description Cast listings

// @tag.name reviews
// @tag.description Review queries and mutations

// @tag.name translation
// @tag.description Review translation

// @tag.name auth
// @tag.description Authentication operations
