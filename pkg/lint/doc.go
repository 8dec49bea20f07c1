// Package lint provides static analysis of rendered SQL text and the
// suggestion catalog.
//
// # Analysis
//
// Analyze works on surface text only: it never builds a syntax tree, so it
// covers custom SQL that bypassed the builders exactly like generated SQL.
// The detected features feed a coarse complexity classification:
//
//   - complex: a window function (OVER (...)), or joins and subqueries together
//   - moderate: any one of joins, subqueries or aggregation (COUNT, SUM, AVG,
//     MIN, MAX, GROUP BY)
//   - simple: everything else
//
// # Suggestions
//
// Suggestions are a static catalog keyed by query type. Each entry carries a
// stable ID (SEL01, INS01, ...) so callers can reference or filter tips.
// Suggestions do not depend on the query text.
package lint
