package middleware

import (
	"context"
	"log"
	"net/http"

	"happydash/domain/happiness"

	"github.com/gin-gonic/gin"
)

// DatasetKey is the gin context key holding the loaded dataset
const DatasetKey = "dataset"

// DatasetLoader yields the process-wide dataset
type DatasetLoader interface {
	Dataset(ctx context.Context) (*happiness.Dataset, error)
}

// FailureHandler writes the response for a request whose dataset failed to load
type FailureHandler func(c *gin.Context, err error)

// DatasetReady is middleware that loads the dataset before the handler runs.
// A failed load aborts the request through onFailure, or with a JSON 503 when
// onFailure is nil. The load is retried on the next request.
func DatasetReady(loader DatasetLoader, onFailure FailureHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		ds, err := loader.Dataset(c.Request.Context())
		if err != nil {
			log.Printf("[DatasetReady] Dataset unavailable: %v", err)
			if onFailure != nil {
				onFailure(c, err)
				c.Abort()
				return
			}
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
				"error":   "dataset unavailable",
				"details": err.Error(),
			})
			return
		}
		c.Set(DatasetKey, ds)
		c.Next()
	}
}

// Dataset returns the dataset stored by DatasetReady
func Dataset(c *gin.Context) (*happiness.Dataset, bool) {
	v, ok := c.Get(DatasetKey)
	if !ok {
		return nil, false
	}
	ds, ok := v.(*happiness.Dataset)
	return ds, ok
}
