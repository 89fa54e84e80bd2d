// Package fuzzy matches typed plate queries against known plates, tolerating
// characters that are easy to confuse on a photographed plate and ignoring
// formatting noise such as dashes and spaces.
//
// Key functions:
//   - IsSimilar: reports whether two characters are a known confusable pair
//   - Normalize: strips dashes and whitespace and upper-cases
//   - Match: decides match/no-match and tags every plate character
//   - Highlight / RenderHTML: turn a tag sequence into marked-up output
package fuzzy
