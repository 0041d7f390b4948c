package sugar

import (
	"net/http"

	"github.com/gin-gonic/gin"
	jsoniter "github.com/json-iterator/go"
)

const (
	jsonContentType = "application/json; charset=us-ascii"
	htmlContentType = "text/html; charset=us-ascii"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	// Body403 is sent with every 403.
	Body403 = `<html>
 <head>
  <title>403 Forbidden</title>
 </head>
 <body>
  <h1>403 Forbidden</h1>
  Invalid AWS credentials.<br/><br/>
 </body>
</html>
`

	// Body404 is sent with every 404.
	Body404 = `<html>
 <head>
  <title>404 Not Found</title>
 </head>
 <body>
  <h1>404 Not Found</h1>
  The resource could not be found.<br/><br/>
 </body>
</html>
`
)

// SuccessResponse writes value as an ASCII JSON body.
func SuccessResponse(c *gin.Context, code int, value interface{}) {
	body, err := json.Marshal(value)
	if err != nil {
		InternalError(c, err)
		return
	}
	c.Data(code, jsonContentType, body)
}

// Forbidden writes the static 403 page.
func Forbidden(c *gin.Context) {
	c.Data(http.StatusForbidden, htmlContentType, []byte(Body403))
}

// NotFound writes the static 404 page. It doubles as the router's NoRoute
// handler so malformed paths look like any other missing resource.
func NotFound(c *gin.Context) {
	c.Data(http.StatusNotFound, htmlContentType, []byte(Body404))
}

// InternalError records err on the context and answers 500.
func InternalError(c *gin.Context, err error) {
	c.Error(err)
	c.Data(http.StatusInternalServerError, htmlContentType, []byte(http.StatusText(http.StatusInternalServerError)))
}
