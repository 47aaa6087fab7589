package utils

import "github.com/gin-gonic/gin"

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// RespondError writes {"error": message}. 400 means bad input, 404 a
// missing key or id, 500 everything unexpected (message passed through).
func RespondError(c *gin.Context, code int, err error) {
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// RespondMessage writes {"message": text} for operations that have no
// entity to return, like deletes and the menu import.
func RespondMessage(c *gin.Context, code int, message string) {
	c.JSON(code, MessageResponse{Message: message})
}
