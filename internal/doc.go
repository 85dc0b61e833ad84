// Package internal is the HTTP core of mailforge: a chi router wrapped with
// a context type, JSON error rendering, middleware adaptation and a
// graceful server runtime.
//
// # Handlers
//
// Handlers return errors instead of writing failure responses themselves:
//
//	func (h *Email) send(c internal.Context) error {
//	    var req welcome.SendRequest
//	    ve, err := c.BindJSON(&req)
//	    if err != nil {
//	        return internal.ErrBadRequest("Invalid JSON", internal.WithError(err))
//	    }
//	    if ve != nil {
//	        return ve
//	    }
//	    ...
//	}
//
// The ErrorHandler turns the returned error into a JSON body of the shape
// {"error": "...", "details": ..., "fields": [...]}. HTTPError keeps its
// status; ValidationErrors become 400; anything else becomes a generic 500.
//
// # Context as context.Context
//
// Context embeds context.Context, so it can be passed straight to the
// mailer, cache and template packages. Values stored with Set are visible
// to everything downstream, including later middleware.
//
// # Unmatched routes
//
// Global middleware (WithMiddleware) runs before route matching, so it also
// sees unknown paths and wrong methods. A known path with the wrong method
// gets 405 with an Allow header that always includes OPTIONS.
//
// # Running
//
//	app := internal.New(opts...)
//	err := app.Run(
//	    internal.Address(":8080"),
//	    internal.ShutdownHook(redis.Shutdown(client)),
//	)
//
// Run blocks until SIGINT, SIGTERM or cancellation of the WithContext
// context, then drains the server and runs shutdown hooks in order.
package internal
