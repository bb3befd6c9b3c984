package httpserver

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	h := http.NewServeMux()
	srv := New(":9090", h)

	assert.Equal(t, ":9090", srv.Addr)
	assert.Same(t, h, srv.Handler)
	assert.Equal(t, readHeaderTimeout, srv.ReadHeaderTimeout)
	assert.NotZero(t, srv.WriteTimeout)
}
