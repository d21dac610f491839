package handlers

import (
	"invoicing/pkg"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

var errInvalidID = pkg.NewDomainErrorSimple("INVALID_ID", "Invalid id", http.StatusBadRequest)

// pathID reads a positive integer path parameter, answering 400 itself when
// it is not one.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(errInvalidID.HTTPStatus, errInvalidID.ToHTTPError())
		return 0, false
	}
	return id, true
}

func respondError(c *gin.Context, appErr *pkg.AppError) {
	if appErr.Err != nil {
		_ = c.Error(appErr)
	}
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}
