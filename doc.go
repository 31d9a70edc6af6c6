// Package pnl is the aggregation engine behind a brokerage portfolio
// dashboard: it turns per-account position and transaction records into
// grouped, merged, ranked and currency-normalized summaries ready for
// drill-down charts and activity tables.
//
// The engine is purely synchronous and side-effect free: every function is a
// transformation over immutable inputs producing fresh output structures,
// so identical inputs always produce identical output and callers may
// memoize freely. Arithmetic edge cases (zero cost basis, missing prices)
// surface as explicit undefined values, never as panics.
//
// Fetching data from Wealthica and the snapshot file codec live at the
// package boundary; the wpnl command ties everything together.
package pnl
