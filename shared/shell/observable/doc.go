// Package observable decorates command and query handlers with metrics, tracing and logging,
// so the handlers themselves stay free of those concerns.
//
// Wrapping happens where the application is wired:
//
//	handler := observable.NewCommandWrapper[borrowtitle.Command](
//		borrowtitle.NewCommandHandler(engine),
//		shell.Observers{Metrics: metrics, Tracing: tracing, ContextualLogger: logger},
//	)
//
// Tests of the business rules use the core handlers directly.
package observable
