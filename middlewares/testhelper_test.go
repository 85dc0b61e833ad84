package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/dmitrymomot/mailforge/internal"
)

type routes func(r internal.Router)

func (f routes) Routes(r internal.Router) { f(r) }

// serve runs req through an app with mw installed globally and a single
// route at /test accepting GET and POST.
func serve(req *http.Request, h internal.HandlerFunc, mw ...internal.Middleware) *httptest.ResponseRecorder {
	app := internal.New(
		internal.WithMiddleware(mw...),
		internal.WithHandlers(routes(func(r internal.Router) {
			r.GET("/test", h)
			r.POST("/test", h)
		})),
	)
	rec := httptest.NewRecorder()
	app.Handler().ServeHTTP(rec, req)
	return rec
}

func ok(c internal.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

type observation struct {
	method string
	route  string
	status int
}

type recordingObserver struct {
	got []observation
	mu  sync.Mutex
}

func (o *recordingObserver) HTTP(method, route string, status int, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.got = append(o.got, observation{method: method, route: route, status: status})
}
