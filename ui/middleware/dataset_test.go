package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"happydash/domain/happiness"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type loaderFunc func(ctx context.Context) (*happiness.Dataset, error)

func (f loaderFunc) Dataset(ctx context.Context) (*happiness.Dataset, error) {
	return f(ctx)
}

func newRouter(loader DatasetLoader, onFailure FailureHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/", DatasetReady(loader, onFailure), func(c *gin.Context) {
		ds, ok := Dataset(c)
		if !ok {
			c.String(http.StatusInternalServerError, "missing")
			return
		}
		c.String(http.StatusOK, ds.Source())
	})
	return r
}

func TestDatasetReady_StoresDataset(t *testing.T) {
	ds := happiness.NewCompleteDataset(nil, "fixture")
	r := newRouter(loaderFunc(func(context.Context) (*happiness.Dataset, error) { return ds, nil }), nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "fixture", w.Body.String())
}

func TestDatasetReady_FailedLoad(t *testing.T) {
	r := newRouter(loaderFunc(func(context.Context) (*happiness.Dataset, error) {
		return nil, errors.New("file not found")
	}), nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "file not found")
}

func TestDatasetReady_FailureHandler(t *testing.T) {
	r := newRouter(loaderFunc(func(context.Context) (*happiness.Dataset, error) {
		return nil, errors.New("file not found")
	}), func(c *gin.Context, err error) {
		c.Data(http.StatusServiceUnavailable, "text/html; charset=utf-8", []byte("<p>"+err.Error()+"</p>"))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "<p>file not found</p>", w.Body.String(), "the handler after the middleware does not run")
}
