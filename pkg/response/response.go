package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/sma-roster/pkg/errors"
)

// Envelope represents the common response contract. Code mirrors the HTTP status and
// 200 is the only success value.
type Envelope struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// JSON sends an envelope with the given status as both HTTP status and code.
func JSON(c *gin.Context, status int, message string, data interface{}) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(status, Envelope{Code: status, Message: message, Data: data})
}

// OK responds with a success envelope.
func OK(c *gin.Context, message string, data interface{}) {
	JSON(c, http.StatusOK, message, data)
}

// Error sends an error envelope converting the error to the common structure. Only the
// message of the typed error reaches the client.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	JSON(c, appErr.Status, appErr.Message, nil)
}

// Abort writes the error envelope and stops the handler chain.
func Abort(c *gin.Context, err error) {
	Error(c, err)
	c.Abort()
}
