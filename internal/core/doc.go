// Package core provides the business logic for browsing and exporting
// form submissions.
//
// This package contains the whole in-memory presentation pipeline,
// independent of any UI or transport layer. It can be used by web handlers,
// CLI tools, or tests without modification.
//
// # Pipeline
//
// Every function below is pure and leaves its input untouched:
//
//   - [Filter]: search, industry and inclusive date bounds, AND-combined.
//   - [Sort]: stable, locale-aware, nulls last in ascending order.
//   - [Paginate]: 1-based page slices plus [VisiblePages] for the page control.
//   - [Serialize]: CSV, JSON or XML with a fixed field order.
//
// # Navigator
//
// [Navigator] is the explicit state container of one browsing session. It
// composes filter, sort and paginate on every change and exposes a [View]:
//
//	nav := core.NewNavigator(records, core.WithPageSize(20))
//	nav.SetFilter(core.FilterCriteria{Industry: "Finance"})
//	nav.ToggleSort(core.FieldLastName)
//	nav.SelectAll()
//	payload, err := nav.Export(core.ScopeSelected, core.FormatCSV, time.Now())
//
// Changing the filter or the page clears the selection. Changing the sort
// does not.
//
// # Error Handling
//
// Technical errors are mapped to user-friendly messages using [MapError].
// Each error category has a unique code for support reference:
//
//   - SRC001-SRC003: data source errors
//   - EXP001-EXP002: export errors
//   - NAV001-NAV004: navigation input errors
//   - SES001: session errors
package core
