// Package layout computes mind-map geometry for a title tree.
//
// # Overview
//
// [Compute] assigns every title a box. The diagram grows to the right from a
// root on the left; each parent's children are stacked vertically and centred
// on the parent, and no two subtrees overlap. Computation runs in three steps:
//
//  1. Subtree height (bottom-up): a leaf needs [BaseHeight]; an internal node
//     needs the sum of its children's heights, but never less than BaseHeight.
//  2. Placement (top-down): the root sits at [RootX] with its centre on the
//     viewport's vertical midpoint. Children are stacked contiguously by
//     subtree height around the parent's centre and start [ChildSpacing]
//     units to the right of the parent's box.
//  3. Recentering: the bounding box of all boxes is centred inside the
//     viewport minus [Margin] on every side. Content larger than the viewport
//     overflows; it is never scaled.
//
// # Result
//
// A [Layout] is a flat arena of [Node] values. Parent and child links are
// indices into that arena, so connector endpoints are always derived from the
// current positions and a translation can never leave them stale. Only the
// two shallowest depths get a bordered box ([Node.HasBox]); deeper titles are
// drawn as plain text.
//
// # Multiple Roots
//
// Compute lays out the first tree of the forest. Callers that want another
// top-level tree pass a forest holding just that tree.
//
// Layouts are built fresh for every render and never cached across viewport
// sizes.
package layout
