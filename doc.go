// Package hxcontent clones chunks of markup in and out of a live
// golang.org/x/net/html tree and keeps track of where each clone lives.
//
// A Registry turns a container element into a repeater: its original
// children are extracted once into a template, and every Insert drops a
// fresh deep copy of that template back into the container. Clones are
// addressed by a 0-based index, so they can be moved, removed and patched
// later without the caller holding on to nodes.
//
// # Core Concepts
//
// The registry remembers the first node of every clone (its anchor). The
// i-th anchor is always the first node of the i-th clone in tree order; a
// clone spans from its anchor up to the next clone's anchor.
//
//	reg := hxcontent.NewRegistry(key)
//	tpl, _ := hxcontent.ParseFragment(strings.NewReader(`<li>row</li>`))
//	reg.Normalize(tpl)
//	hxcontent.AdoptChildren(list, tpl)
//	reg.Extract(list)
//
//	reg.Insert(list, hxcontent.End, map[string]any{"id": 1})
//	reg.Insert(list, 0, map[string]any{"id": 0})
//	reg.Move(list, 0, 1, nil)
//	reg.Remove(list, hxcontent.End)
//
// # Context State
//
// Each clone can carry a State. It inherits from the container's own state
// (set with SetState): reads fall back to the container for keys the clone
// never set, writes stay local. The fallback is live, so later changes to
// the container's state show through unless the clone shadows the key.
//
// # Normalization
//
// Normalize strips whitespace-only text and comments from parsed markup
// and stamps every element with a unique clone-id attribute, so the first
// node of a clone is always meaningful.
//
// # Snapshots
//
// A clone's resolved context can be sealed into a string, signed (visible
// but tamper-proof) or encrypted, and stamped onto its anchor element. The
// value comes back with HTMX requests and is opened with DecodeContext.
//
// # Concurrency
//
// Operations run to completion synchronously. The registry guards its own
// tables, but the steps of a multi-call edit on one container must be
// ordered by the caller.
package hxcontent
