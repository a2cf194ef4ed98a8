package middleware

import (
	"bytes"
	"io"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nmoreno/tallerplus/backend/internal/services"
)

// sensitiveFields lists JSON keys whose values never reach the audit trail.
var sensitiveFields = []string{"password", "newPassword", "token", "refreshToken", "secret"}

// AuditWrites records every write operation (POST/PUT/PATCH/DELETE) to the
// audit log, with credential fields masked out of the captured body.
func AuditWrites() gin.HandlerFunc {
	return func(c *gin.Context) {
		method := c.Request.Method
		if method == "GET" || method == "HEAD" || method == "OPTIONS" {
			c.Next()
			return
		}

		var bodySnippet string
		if c.Request.Body != nil {
			bodyBytes, _ := io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
			bodySnippet = string(bodyBytes)
			if len(bodySnippet) > 2000 {
				bodySnippet = bodySnippet[:2000] + "...[truncated]"
			}
			bodySnippet = maskSensitiveFields(bodySnippet)
		}

		c.Next()

		status := c.Writer.Status()
		module, action := routeInfo(c.FullPath(), method)

		var userID *string
		if id := GetUserID(c); id != "" {
			userID = &id
		}

		outcome := "failed"
		if status >= 200 && status < 300 {
			outcome = "ok"
		}

		services.LogInfo(module, action,
			method+" "+c.Request.URL.Path+" "+outcome,
			userID, c.ClientIP(), c.Request.UserAgent(),
			map[string]interface{}{
				"method": method,
				"path":   c.Request.URL.Path,
				"status": status,
				"body":   bodySnippet,
			})
	}
}

// routeInfo derives an audit module and action from the route pattern, e.g.
// "/api/vehicles/:id" + PUT becomes ("vehicles", "update").
func routeInfo(fullPath, method string) (string, string) {
	path := strings.TrimPrefix(fullPath, "/api/")
	module := strings.SplitN(path, "/", 2)[0]
	if module == "" {
		module = "unknown"
	}

	action := strings.ToLower(method)
	switch method {
	case "POST":
		action = "create"
	case "PUT", "PATCH":
		action = "update"
	case "DELETE":
		action = "delete"
	}
	return module, action
}

// maskSensitiveFields blanks the values of credential keys in a JSON body.
// Best effort on the raw text, malformed bodies are passed through untouched.
func maskSensitiveFields(body string) string {
	for _, key := range sensitiveFields {
		body = maskJSONValue(body, key)
	}
	return body
}

// maskJSONValue blanks every occurrence of the key, not just the first; a
// repeated key would otherwise leak its later values.
func maskJSONValue(body, key string) string {
	needle := "\"" + strings.ToLower(key) + "\""
	offset := 0

	for {
		idx := strings.Index(strings.ToLower(body[offset:]), needle)
		if idx == -1 {
			return body
		}
		idx += offset
		offset = idx + len(needle)

		colonIdx := strings.Index(body[offset:], ":")
		if colonIdx == -1 {
			return body
		}
		valueStart := offset + colonIdx + 1

		for valueStart < len(body) && (body[valueStart] == ' ' || body[valueStart] == '\t') {
			valueStart++
		}
		if valueStart >= len(body) || body[valueStart] != '"' {
			continue
		}

		endQuote := strings.Index(body[valueStart+1:], "\"")
		if endQuote == -1 {
			return body
		}
		body = body[:valueStart+1] + "***" + body[valueStart+1+endQuote:]
	}
}
