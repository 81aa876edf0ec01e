// Package catalog searches a product catalog served as a single JSON array.
//
// Matching rules (see Match):
//   - the lowercased query is a substring of title, description or category, or
//   - any whitespace-separated token of the query is a substring of title or
//     description. Category is not consulted for tokens.
//
// Results keep catalog order and scanning stops once the cap is reached.
// The whole catalog is fetched on every search; nothing is cached.
package catalog
