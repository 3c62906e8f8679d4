// Package investilearn provides the core types and computations for an
// educational stock-research tool. It is designed to help a long-term
// investor learn fundamental analysis by looking at real company data,
// not to produce investment advice.
//
// The core functionalities include:
//   - Company Snapshots: A Quote captures the company profile and the
//     fundamental fields (margins, returns, multiples) reported by the
//     market-data provider, with absent values kept distinct from zeros.
//   - Financial Statements: The income statement, balance sheet, and cash
//     flow statement as named line items over fiscal years, with tolerant
//     lookup across the alternative spellings providers use.
//   - Ratio Analysis: Exact-decimal computation of the classic fundamental
//     ratios across five categories (profitability, liquidity, efficiency,
//     leverage, valuation), plus the display metadata to present them.
//   - News: Headline records and the keyword classification used to filter
//     them into earnings, press-release, and market-analysis buckets.
//
// This package holds no I/O. Market data comes from the yahoo package,
// flow-diagram construction lives in sankey, and the web dashboard in
// server. The ivl command-line tool ties them together.
package investilearn
