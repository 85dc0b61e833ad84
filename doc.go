// Package mailforge composes, previews and sends welcome emails over HTTP.
//
// The root package re-exports the HTTP application API so binaries only
// import one package for wiring:
//
//	svc := welcome.NewService(template.New(), mailer.New(sender, mailer.Config{}))
//
//	app := mailforge.New(
//	    mailforge.WithMiddleware(
//	        middlewares.CORS(),
//	        middlewares.RequestID(),
//	        middlewares.Recover(),
//	    ),
//	    mailforge.WithErrorHandler(handlers.ErrorHandler),
//	    mailforge.WithHandlers(handlers.NewEmail(svc)),
//	)
//
//	if err := app.Run(mailforge.Address(":8080")); err != nil {
//	    log.Fatal(err)
//	}
//
// # Endpoints
//
//	POST /email/preview   {username?, message?, blocks?, design?} -> {html}
//	POST /email/send      {to, username?, message?, html?, blocks?} -> {message, data: {id}}
//	GET  /health/live     liveness probe
//	GET  /health/ready    readiness probe
//	GET  /metrics         Prometheus metrics
//
// Every error response is JSON with an "error" field. Validation failures
// add "fields"; provider failures add "details" with the provider's
// message and status code.
package mailforge
