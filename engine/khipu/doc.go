// Package khipu is about encoding text into paragraph elements.
//
// "Khipu were recording devices fashioned from strings
// historically used by a number of cultures in the region of
// Andean South America.
// Khipu is the word for "knot" in Cusco Quechua.
// A khipu usually consisted of cotton or camelid fiber strings. The Inca
// people used them for collecting data and keeping records, monitoring tax
// obligations, properly collecting census records, calendrical information,
// and for military organization. The cords stored numeric and other values
// encoded as knots, often in a base ten positional system. A khipu could
// have only a few or thousands of cords."
// ––Excerpt from a Wikipedia article about khipus
//
// We keep the analogy for naming, even though a khipu here is a flat Go
// slice of fixed-size Element records rather than a string of knot
// objects: every code point or inline object in an inline container
// becomes one strung-together element, counted and classified exactly
// like the knots on a cord.
//
// The overall pipeline from text to a breakable paragraph looks like
// this:
//
// (1) Find word boundaries (UAX#29)
//
// 	https://godoc.org/github.com/npillmayer/uax/uax29
//
// (2) Hyphenate long words using Liang patterns
//
// (3) Attach measured advances from the back-end text measurer
//
// At this point text has been fully reduced to paragraph elements, ready
// for the line breaker. Text is encoded as given; no Unicode
// normalization is applied.
/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package khipu
