// Package classifier guesses what kind of entity a search query asks about:
// dates, people, organizations or amounts. Scoring is keyword and pattern
// based, cheap enough to run on every query before retrieval.
//
// Each category score is the sum of keyword hits (0.15 each) and pattern
// matches (0.3 each, 0.25 per e-mail address for people), capped at 1.0.
// General starts at 0.1. When two or more categories reach 0.3 the query
// is classified as Multi.
package classifier
