// Package listview implements the virtualized list the indicator wraps.
//
// Only the visible window of items is rendered, so collections with
// 10,000+ entries stay responsive. The model reports its layout, content
// size and visible index range through registered callbacks; those three
// event streams are independent and carry no ordering guarantee, which is
// exactly the contract the indicator controller is built against.
package listview
