// Package exegesis extracts semantically typed content (titles, dates,
// paragraphs, links, images, lists) from parsed HTML trees, driven by
// declarative, priority-ordered CSS selector rules chosen per URL.
//
// This package contains domain types, interfaces and the pure core logic
// following Ben Johnson's Standard Package Layout. Implementations that
// depend on third-party libraries live in subdirectories named after their
// primary dependency (e.g., goquery/, sqlite/, rod/).
package exegesis
