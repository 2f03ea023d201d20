package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// stripJSONExtension removes a .json extension from a path parameter if
// present, rewriting it in place so downstream handlers see the bare value.
func stripJSONExtension(c *gin.Context, paramName string) {
	value := c.Param(paramName)
	if strings.HasSuffix(value, ".json") {
		for i, param := range c.Params {
			if param.Key == paramName {
				c.Params[i].Value = strings.TrimSuffix(value, ".json")
				break
			}
		}
	}
}
