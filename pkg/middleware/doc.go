// Package middleware provides observability hooks for grid binders.
//
// Both constructors return a grid.Observer to pass to grid.WithObserver:
//
//	binder := grid.New[string](
//	    grid.WithObserver[string](middleware.Prometheus()),
//	    grid.WithObserver[string](middleware.OTel()),
//	)
//
// Prometheus records update counts, row-edit counts and update durations.
// OTel opens one trace span per update, annotated with the edit totals.
package middleware
